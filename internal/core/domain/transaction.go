package domain

// DefaultCategory groups transactions that carry no category.
const DefaultCategory = "Other"

// Transaction is a single dated income (positive) or expense (negative) entry.
type Transaction struct {
	ID       string         `json:"id"`
	Date     Date           `json:"date"`
	Amount   MonetaryAmount `json:"amount"`
	Category string         `json:"category,omitempty"`
	Note     string         `json:"note,omitempty"`
}

// IsIncome reports a strictly positive amount.
func (t Transaction) IsIncome() bool { return t.Amount.IsPositive() }

// IsExpense reports a strictly negative amount.
func (t Transaction) IsExpense() bool { return t.Amount.IsNegative() }

// CategoryOrDefault returns the category, or DefaultCategory when absent.
func (t Transaction) CategoryOrDefault() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}
