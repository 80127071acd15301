package services

import (
	"context"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/SscSPs/captainledger_insights/internal/core/presentation"
	"github.com/shopspring/decimal"
)

// RecordSource fetches a user's records from the records backend.
type RecordSource interface {
	Transactions(ctx context.Context, session domain.Session) ([]domain.Transaction, error)
	Loans(ctx context.Context, session domain.Session) ([]domain.Loan, error)
	Investments(ctx context.Context, session domain.Session) ([]domain.Investment, error)
	Budgets(ctx context.Context, session domain.Session, period domain.BudgetPeriod) ([]domain.Budget, error)
}

// ConversionQuote is the result of converting a single amount for display.
type ConversionQuote struct {
	From         domain.MonetaryAmount `json:"from"`
	To           string                `json:"to"`
	Value        decimal.Decimal       `json:"value"`
	Display      string                `json:"display"`
	WasConverted bool                  `json:"wasConverted"`
	Error        string                `json:"error,omitempty"`
}

// InsightsSvc runs aggregation passes and renders their views.
// Record fetch failures degrade to empty collections. Passes fail only on
// context cancellation or an unknown window or budget period.
type InsightsSvc interface {
	// Snapshot fetches every record collection for the session concurrently.
	Snapshot(ctx context.Context, session domain.Session) (domain.RecordSet, error)

	// Dashboard runs a dashboard pass.
	Dashboard(ctx context.Context, session domain.Session) (presentation.DashboardView, error)

	// PlaceholderDashboard is the view shown before the first pass completes.
	PlaceholderDashboard(ctx context.Context, session domain.Session) presentation.DashboardView

	// Analytics runs an analytics pass over the named window ("month", "week", "30d", "all").
	Analytics(ctx context.Context, session domain.Session, window string) (presentation.AnalyticsView, error)

	// Budgets runs a budget progress pass for a period.
	Budgets(ctx context.Context, session domain.Session, period domain.BudgetPeriod) (presentation.BudgetView, error)

	// Investments runs an investments pass.
	Investments(ctx context.Context, session domain.Session) (presentation.InvestmentView, error)

	// Convert converts one amount into the user's primary currency.
	Convert(ctx context.Context, userID string, amount domain.MonetaryAmount) ConversionQuote
}
