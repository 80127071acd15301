package domain

// BudgetPeriod is the recurrence window of a budget.
type BudgetPeriod string

const (
	BudgetDaily   BudgetPeriod = "daily"
	BudgetWeekly  BudgetPeriod = "weekly"
	BudgetMonthly BudgetPeriod = "monthly"
	BudgetYearly  BudgetPeriod = "yearly"
)

// Budget is a spending limit for a category over a period.
// Spent is denominated in the same currency as Limit.
type Budget struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	Category string         `json:"category"`
	Limit    MonetaryAmount `json:"limit"`
	Spent    MonetaryAmount `json:"spent"`
	Period   BudgetPeriod   `json:"period"`
}
