package presentation_test

import (
	"context"
	"testing"

	"github.com/SscSPs/captainledger_insights/internal/core/aggregation"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/SscSPs/captainledger_insights/internal/core/presentation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dollars struct{}

func (dollars) FormatCurrency(_ context.Context, v decimal.Decimal) string {
	if v.IsNegative() {
		return "-$" + v.Abs().StringFixed(2)
	}
	return "$" + v.StringFixed(2)
}

func newFormatter() *presentation.Formatter {
	return presentation.NewFormatter(dollars{})
}

func TestGate(t *testing.T) {
	assert.Equal(t, "...", presentation.Gate(false, "$0.00"))
	assert.Equal(t, "$0.00", presentation.Gate(true, "$0.00"))
}

func TestSigned(t *testing.T) {
	ctx := context.Background()
	f := newFormatter()

	tests := []struct {
		value decimal.Decimal
		want  string
	}{
		{decimal.NewFromInt(200), "+$200.00"},
		{decimal.Zero, "+$0.00"},
		{decimal.NewFromInt(-75), "-$75.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Signed(ctx, tt.value))
	}
}

func TestPercentAndROI(t *testing.T) {
	assert.Equal(t, "20.00%", presentation.Percent(decimal.NewFromInt(20)))
	assert.Equal(t, "+20.00%", presentation.SignedPercent(decimal.NewFromInt(20)))
	assert.Equal(t, "-3.50%", presentation.SignedPercent(decimal.NewFromFloat(-3.5)))

	current := decimal.NewFromInt(1200)
	roi := aggregation.InvestmentROI(domain.Investment{
		InitialAmount: domain.NewMonetaryAmount(decimal.NewFromInt(1000), "USD"),
		CurrentValue:  &current,
	})
	assert.Equal(t, "20.00%", presentation.ROI(roi))
	assert.Equal(t, "+$200.00", newFormatter().Signed(context.Background(), roi.Gain))

	zero := aggregation.InvestmentROI(domain.Investment{InitialAmount: domain.NewMonetaryAmount(decimal.Zero, "USD")})
	assert.Equal(t, presentation.Undefined, presentation.ROI(zero))
}

func TestDashboard_PlaceholderUntilReady(t *testing.T) {
	ctx := context.Background()
	f := newFormatter()
	figures := presentation.DashboardFigures{
		Monthly:     domain.NewAggregateResult(decimal.NewFromInt(3000), decimal.NewFromInt(1200)),
		NetBalance:  decimal.NewFromInt(-40),
		DailyBudget: decimal.NewFromInt(150),
	}

	pending := f.Dashboard(ctx, false, "USD", figures)
	assert.False(t, pending.Ready)
	for _, fig := range []presentation.Figure{pending.Income, pending.Expenses, pending.Balance, pending.NetBalance, pending.DailyBudget} {
		assert.Equal(t, presentation.Placeholder, fig.Display)
	}
	assert.True(t, decimal.NewFromInt(3000).Equal(pending.Income.Value))

	ready := f.Dashboard(ctx, true, "USD", figures)
	assert.Equal(t, "$3000.00", ready.Income.Display)
	assert.Equal(t, "+$1800.00", ready.Balance.Display)
	assert.Equal(t, "-$40.00", ready.NetBalance.Display)
	assert.Equal(t, "$150.00", ready.DailyBudget.Display)
}

func TestPlaceholderDashboard(t *testing.T) {
	view := newFormatter().PlaceholderDashboard(context.Background(), "EUR")

	assert.False(t, view.Ready)
	assert.Equal(t, "EUR", view.Currency)
	assert.Equal(t, presentation.Placeholder, view.Assets.Display)
	assert.True(t, view.Assets.Value.IsZero())
}

func TestAnalytics(t *testing.T) {
	view := newFormatter().Analytics(context.Background(), true, "USD", presentation.AnalyticsFigures{
		Window: aggregation.Window{Label: "April 2024"},
		Stats:  domain.NewAggregateResult(decimal.NewFromInt(10), decimal.NewFromInt(30)),
		TopCategories: []domain.CategoryTotal{
			{Category: "Rent", Amount: decimal.NewFromInt(500), Count: 1},
		},
	})

	assert.Equal(t, "April 2024", view.Window)
	assert.Equal(t, "-$20.00", view.Balance.Display)
	require.Len(t, view.TopCategories, 1)
	assert.Equal(t, "$500.00", view.TopCategories[0].Amount.Display)
	assert.Empty(t, view.Breakdown)
}

func TestBudgets(t *testing.T) {
	statuses := []aggregation.BudgetStatus{{
		Budget:      domain.Budget{ID: "b1", Category: "Food", Period: domain.BudgetMonthly},
		Limit:       decimal.NewFromInt(100),
		Spent:       decimal.NewFromInt(95),
		Remaining:   decimal.NewFromInt(5),
		PercentUsed: decimal.NewFromInt(95),
		Alert:       aggregation.AlertCritical,
	}}
	f := newFormatter()

	view := f.Budgets(context.Background(), true, "USD", statuses, 0)
	require.Len(t, view.Budgets, 1)
	assert.Equal(t, "95.00%", view.Budgets[0].PercentUsed)
	assert.Equal(t, "+$5.00", view.Budgets[0].Remaining.Display)

	pending := f.Budgets(context.Background(), false, "USD", statuses, 0)
	assert.Equal(t, presentation.Placeholder, pending.Budgets[0].PercentUsed)
}

func TestInvestments(t *testing.T) {
	current := decimal.NewFromInt(1200)
	inv := domain.Investment{
		ID:            "i1",
		Name:          "Index fund",
		Status:        domain.InvestmentActive,
		InitialAmount: domain.NewMonetaryAmount(decimal.NewFromInt(1000), "USD"),
		CurrentValue:  &current,
	}
	roi := aggregation.InvestmentROI(inv)
	analytics := aggregation.InvestmentAnalytics(context.Background(), identity{}, []domain.Investment{inv})

	view := newFormatter().Investments(context.Background(), true, "USD", []presentation.InvestmentLineFigures{{
		Investment: inv,
		Initial:    roi.Initial,
		Current:    roi.Current,
		Gain:       roi.Gain,
		ROI:        roi,
	}}, analytics, 0)

	require.Len(t, view.Investments, 1)
	assert.Equal(t, "20.00%", view.Investments[0].ROI)
	assert.Equal(t, "+$200.00", view.Investments[0].Gain.Display)
	assert.Equal(t, "20.00%", view.TotalROI)
	require.NotNil(t, view.Best)
	assert.Equal(t, "Index fund", view.Best.Name)
}

type identity struct{}

func (identity) TryConvert(_ context.Context, a domain.MonetaryAmount) domain.Conversion {
	return domain.Conversion{Value: a.Value, WasConverted: true}
}
