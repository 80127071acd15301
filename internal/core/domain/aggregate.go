package domain

import "github.com/shopspring/decimal"

// AggregateResult holds the folded totals of one aggregation pass, in the
// reporting currency. Balance is always Income minus Expenses.
type AggregateResult struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Balance     decimal.Decimal `json:"balance"`
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
}

// NewAggregateResult derives Balance from income and expenses.
func NewAggregateResult(income, expenses decimal.Decimal) AggregateResult {
	return AggregateResult{
		Income:      income,
		Expenses:    expenses,
		Balance:     income.Sub(expenses),
		Assets:      decimal.Zero,
		Liabilities: decimal.Zero,
	}
}

// WithHoldings returns a copy carrying assets and liabilities.
func (r AggregateResult) WithHoldings(assets, liabilities decimal.Decimal) AggregateResult {
	r.Assets = assets
	r.Liabilities = liabilities
	return r
}

// CategoryTotal is the converted absolute sum of one category's transactions.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}
