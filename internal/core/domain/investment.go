package domain

import "github.com/shopspring/decimal"

// InvestmentStatus is the lifecycle state of an investment.
type InvestmentStatus string

const (
	InvestmentActive  InvestmentStatus = "active"
	InvestmentMatured InvestmentStatus = "matured"
	InvestmentSold    InvestmentStatus = "sold"
)

// Investment is a position with an initial cost and an optional current valuation.
// CurrentValue shares the currency of InitialAmount.
type Investment struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Platform       string           `json:"platform,omitempty"`
	InvestmentType string           `json:"investmentType,omitempty"`
	InitialAmount  MonetaryAmount   `json:"initialAmount"`
	CurrentValue   *decimal.Decimal `json:"currentValue,omitempty"`
	Status         InvestmentStatus `json:"status"`
	PurchaseDate   Date             `json:"purchaseDate"`
	MaturityDate   *Date            `json:"maturityDate,omitempty"`
}

func (i Investment) IsActive() bool { return i.Status == InvestmentActive }

// Valuation returns the current value when known, otherwise the initial amount.
func (i Investment) Valuation() MonetaryAmount {
	if i.CurrentValue == nil {
		return i.InitialAmount
	}
	return i.InitialAmount.WithValue(*i.CurrentValue)
}
