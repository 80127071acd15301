package aggregation

import (
	"context"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AlertLevel grades how much of a budget has been used.
type AlertLevel string

const (
	AlertNotice   AlertLevel = "notice"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

var (
	warningThreshold  = decimal.NewFromInt(75)
	criticalThreshold = decimal.NewFromInt(90)
)

// AlertFor returns critical above 90%, warning above 75%, notice otherwise.
func AlertFor(percentUsed decimal.Decimal) AlertLevel {
	switch {
	case percentUsed.GreaterThan(criticalThreshold):
		return AlertCritical
	case percentUsed.GreaterThan(warningThreshold):
		return AlertWarning
	default:
		return AlertNotice
	}
}

// BudgetStatus is one budget expressed in the reporting currency.
type BudgetStatus struct {
	Budget      domain.Budget   `json:"budget"`
	Limit       decimal.Decimal `json:"limit"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
	Alert       AlertLevel      `json:"alert"`
}

// BudgetProgress converts each budget's limit and spent amount and grades it.
// A zero limit reports zero percent used.
func BudgetProgress(ctx context.Context, conv Converter, budgets []domain.Budget) []BudgetStatus {
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		limit := convert(ctx, conv, b.Limit)
		spent := convert(ctx, conv, b.Spent)
		percent := decimal.Zero
		if !limit.IsZero() {
			percent = spent.Div(limit).Mul(hundred)
		}
		out = append(out, BudgetStatus{
			Budget:      b,
			Limit:       limit,
			Spent:       spent,
			Remaining:   limit.Sub(spent),
			PercentUsed: percent,
			Alert:       AlertFor(percent),
		})
	}
	return out
}
