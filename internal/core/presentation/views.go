package presentation

import (
	"context"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/core/aggregation"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Figure pairs a raw value (for color-by-sign) with its gated display string.
type Figure struct {
	Value   decimal.Decimal `json:"value"`
	Display string          `json:"display"`
}

func (f *Formatter) figure(ctx context.Context, ready bool, v decimal.Decimal) Figure {
	return Figure{Value: v, Display: Gate(ready, f.Amount(ctx, v))}
}

func (f *Formatter) signedFigure(ctx context.Context, ready bool, v decimal.Decimal) Figure {
	return Figure{Value: v, Display: Gate(ready, f.Signed(ctx, v))}
}

// DashboardView is the home screen.
type DashboardView struct {
	Ready       bool      `json:"ready"`
	Currency    string    `json:"currency"`
	Period      string    `json:"period"`
	Income      Figure    `json:"income"`
	Expenses    Figure    `json:"expenses"`
	Balance     Figure    `json:"balance"`
	NetBalance  Figure    `json:"netBalance"`
	Assets      Figure    `json:"assets"`
	Liabilities Figure    `json:"liabilities"`
	DailyBudget Figure    `json:"dailyBudget"`
	Fallbacks   int       `json:"unconvertedRecords"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// DashboardFigures are the folded dashboard numbers of one pass.
type DashboardFigures struct {
	Monthly     domain.AggregateResult
	NetBalance  decimal.Decimal
	DailyBudget decimal.Decimal
	Period      string
	Fallbacks   int
	GeneratedAt time.Time
}

// Dashboard builds the dashboard view.
func (f *Formatter) Dashboard(ctx context.Context, ready bool, currency string, d DashboardFigures) DashboardView {
	return DashboardView{
		Ready:       ready,
		Currency:    currency,
		Period:      d.Period,
		Income:      f.figure(ctx, ready, d.Monthly.Income),
		Expenses:    f.figure(ctx, ready, d.Monthly.Expenses),
		Balance:     f.signedFigure(ctx, ready, d.Monthly.Balance),
		NetBalance:  f.signedFigure(ctx, ready, d.NetBalance),
		Assets:      f.figure(ctx, ready, d.Monthly.Assets),
		Liabilities: f.figure(ctx, ready, d.Monthly.Liabilities),
		DailyBudget: f.figure(ctx, ready, d.DailyBudget),
		Fallbacks:   d.Fallbacks,
		GeneratedAt: d.GeneratedAt,
	}
}

// PlaceholderDashboard is shown before the first pass completes.
func (f *Formatter) PlaceholderDashboard(ctx context.Context, currency string) DashboardView {
	return f.Dashboard(ctx, false, currency, DashboardFigures{
		Monthly:     domain.NewAggregateResult(decimal.Zero, decimal.Zero),
		NetBalance:  decimal.Zero,
		DailyBudget: decimal.Zero,
	})
}

// CategoryLine is one row of a category ranking.
type CategoryLine struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Amount   Figure `json:"amount"`
}

// AnalyticsView is the analytics screen for one window.
type AnalyticsView struct {
	Ready         bool           `json:"ready"`
	Currency      string         `json:"currency"`
	Window        string         `json:"window"`
	Income        Figure         `json:"income"`
	Expenses      Figure         `json:"expenses"`
	Balance       Figure         `json:"balance"`
	TopCategories []CategoryLine `json:"topCategories"`
	Breakdown     []CategoryLine `json:"expenseBreakdown"`
	Fallbacks     int            `json:"unconvertedRecords"`
}

// AnalyticsFigures are the folded analytics numbers of one pass.
type AnalyticsFigures struct {
	Window        aggregation.Window
	Stats         domain.AggregateResult
	TopCategories []domain.CategoryTotal
	Breakdown     []domain.CategoryTotal
	Fallbacks     int
}

// Analytics builds the analytics view.
func (f *Formatter) Analytics(ctx context.Context, ready bool, currency string, a AnalyticsFigures) AnalyticsView {
	return AnalyticsView{
		Ready:         ready,
		Currency:      currency,
		Window:        a.Window.Label,
		Income:        f.figure(ctx, ready, a.Stats.Income),
		Expenses:      f.figure(ctx, ready, a.Stats.Expenses),
		Balance:       f.signedFigure(ctx, ready, a.Stats.Balance),
		TopCategories: f.categoryLines(ctx, ready, a.TopCategories),
		Breakdown:     f.categoryLines(ctx, ready, a.Breakdown),
		Fallbacks:     a.Fallbacks,
	}
}

func (f *Formatter) categoryLines(ctx context.Context, ready bool, totals []domain.CategoryTotal) []CategoryLine {
	lines := make([]CategoryLine, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, CategoryLine{
			Category: t.Category,
			Count:    t.Count,
			Amount:   f.figure(ctx, ready, t.Amount),
		})
	}
	return lines
}

// BudgetLine is one budget's progress.
type BudgetLine struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name,omitempty"`
	Category    string                 `json:"category"`
	Period      domain.BudgetPeriod    `json:"period"`
	Limit       Figure                 `json:"limit"`
	Spent       Figure                 `json:"spent"`
	Remaining   Figure                 `json:"remaining"`
	PercentUsed string                 `json:"percentUsed"`
	Alert       aggregation.AlertLevel `json:"alert"`
}

// BudgetView lists budget progress.
type BudgetView struct {
	Ready     bool         `json:"ready"`
	Currency  string       `json:"currency"`
	Budgets   []BudgetLine `json:"budgets"`
	Fallbacks int          `json:"unconvertedRecords"`
}

// Budgets builds the budget view.
func (f *Formatter) Budgets(ctx context.Context, ready bool, currency string, statuses []aggregation.BudgetStatus, fallbacks int) BudgetView {
	lines := make([]BudgetLine, 0, len(statuses))
	for _, s := range statuses {
		lines = append(lines, BudgetLine{
			ID:          s.Budget.ID,
			Name:        s.Budget.Name,
			Category:    s.Budget.Category,
			Period:      s.Budget.Period,
			Limit:       f.figure(ctx, ready, s.Limit),
			Spent:       f.figure(ctx, ready, s.Spent),
			Remaining:   f.signedFigure(ctx, ready, s.Remaining),
			PercentUsed: Gate(ready, Percent(s.PercentUsed)),
			Alert:       s.Alert,
		})
	}
	return BudgetView{Ready: ready, Currency: currency, Budgets: lines, Fallbacks: fallbacks}
}

// InvestmentLine is one investment with its return.
type InvestmentLine struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	InvestmentType string                  `json:"investmentType,omitempty"`
	Status         domain.InvestmentStatus `json:"status"`
	Initial        Figure                  `json:"initial"`
	Current        Figure                  `json:"current"`
	Gain           Figure                  `json:"gain"`
	ROI            string                  `json:"roi"`
}

// InvestmentLineFigures carries the converted amounts of one investment and
// its unconverted ROI.
type InvestmentLineFigures struct {
	Investment domain.Investment
	Initial    decimal.Decimal
	Current    decimal.Decimal
	Gain       decimal.Decimal
	ROI        aggregation.ROI
}

// TypeLine is one investment-type breakdown row.
type TypeLine struct {
	InvestmentType string `json:"investmentType"`
	Count          int    `json:"count"`
	Invested       Figure `json:"invested"`
	CurrentValue   Figure `json:"currentValue"`
	AverageROI     string `json:"averageRoi"`
}

// PerformerLine names the best or worst investment.
type PerformerLine struct {
	Name string `json:"name"`
	ROI  string `json:"roi"`
}

// InvestmentView is the investments screen.
type InvestmentView struct {
	Ready         bool             `json:"ready"`
	Currency      string           `json:"currency"`
	Investments   []InvestmentLine `json:"investments"`
	TotalInvested Figure           `json:"totalInvested"`
	TotalCurrent  Figure           `json:"totalCurrentValue"`
	TotalGainLoss Figure           `json:"totalGainLoss"`
	TotalROI      string           `json:"totalRoi"`
	ByType        []TypeLine       `json:"byType"`
	Best          *PerformerLine   `json:"bestPerformer,omitempty"`
	Worst         *PerformerLine   `json:"worstPerformer,omitempty"`
	Fallbacks     int              `json:"unconvertedRecords"`
}

// Investments builds the investments view.
func (f *Formatter) Investments(ctx context.Context, ready bool, currency string, items []InvestmentLineFigures, analytics aggregation.PortfolioAnalytics, fallbacks int) InvestmentView {
	view := InvestmentView{
		Ready:         ready,
		Currency:      currency,
		Investments:   make([]InvestmentLine, 0, len(items)),
		TotalInvested: f.figure(ctx, ready, analytics.TotalInvested),
		TotalCurrent:  f.figure(ctx, ready, analytics.TotalCurrentValue),
		TotalGainLoss: f.signedFigure(ctx, ready, analytics.TotalGainLoss),
		TotalROI:      Gate(ready, Percent(analytics.TotalROIPercent)),
		ByType:        make([]TypeLine, 0, len(analytics.ByType)),
		Fallbacks:     fallbacks,
	}
	for _, it := range items {
		view.Investments = append(view.Investments, InvestmentLine{
			ID:             it.Investment.ID,
			Name:           it.Investment.Name,
			InvestmentType: it.Investment.InvestmentType,
			Status:         it.Investment.Status,
			Initial:        f.figure(ctx, ready, it.Initial),
			Current:        f.figure(ctx, ready, it.Current),
			Gain:           f.signedFigure(ctx, ready, it.Gain),
			ROI:            Gate(ready, ROI(it.ROI)),
		})
	}
	for _, t := range analytics.ByType {
		view.ByType = append(view.ByType, TypeLine{
			InvestmentType: t.InvestmentType,
			Count:          t.Count,
			Invested:       f.figure(ctx, ready, t.TotalInvested),
			CurrentValue:   f.figure(ctx, ready, t.TotalCurrentValue),
			AverageROI:     Gate(ready, Percent(t.AverageROI)),
		})
	}
	if analytics.Best != nil {
		view.Best = &PerformerLine{Name: analytics.Best.Name, ROI: Gate(ready, ROI(analytics.Best.ROI))}
	}
	if analytics.Worst != nil {
		view.Worst = &PerformerLine{Name: analytics.Worst.Name, ROI: Gate(ready, ROI(analytics.Worst.ROI))}
	}
	return view
}
