package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	"github.com/SscSPs/captainledger_insights/internal/core/aggregation"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/SscSPs/captainledger_insights/internal/core/presentation"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type insightsService struct {
	BaseService
	records     portssvc.RecordSource
	conversion  portssvc.ConversionSvc
	preferences portssvc.PreferenceSvc
	now         func() time.Time
}

// InsightsOption configures the insights service.
type InsightsOption func(*insightsService)

// WithInsightsClock overrides time.Now.
func WithInsightsClock(now func() time.Time) InsightsOption {
	return func(s *insightsService) { s.now = now }
}

// NewInsightsService creates the service that runs aggregation passes.
func NewInsightsService(records portssvc.RecordSource, conversion portssvc.ConversionSvc, preferences portssvc.PreferenceSvc, opts ...InsightsOption) portssvc.InsightsSvc {
	s := &insightsService{
		records:     records,
		conversion:  conversion,
		preferences: preferences,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.InsightsSvc = (*insightsService)(nil)

type collections uint8

const (
	wantTransactions collections = 1 << iota
	wantLoans
	wantInvestments
	wantBudgets

	wantAll = wantTransactions | wantLoans | wantInvestments | wantBudgets
)

// fetch loads the requested collections concurrently. A failed fetch leaves
// its collection empty.
func (s *insightsService) fetch(ctx context.Context, session domain.Session, want collections, period domain.BudgetPeriod) (domain.RecordSet, error) {
	set := domain.RecordSet{
		Transactions: []domain.Transaction{},
		Loans:        []domain.Loan{},
		Investments:  []domain.Investment{},
		Budgets:      []domain.Budget{},
	}

	var g errgroup.Group
	if want&wantTransactions != 0 {
		g.Go(func() error {
			txns, err := s.records.Transactions(ctx, session)
			if err != nil {
				s.LogWarn(ctx, err, "Failed to fetch transactions, folding none", slog.String("user_id", session.UserID))
				return nil
			}
			set.Transactions = nilToEmpty(txns)
			return nil
		})
	}
	if want&wantLoans != 0 {
		g.Go(func() error {
			loans, err := s.records.Loans(ctx, session)
			if err != nil {
				s.LogWarn(ctx, err, "Failed to fetch loans, folding none", slog.String("user_id", session.UserID))
				return nil
			}
			set.Loans = nilToEmpty(loans)
			return nil
		})
	}
	if want&wantInvestments != 0 {
		g.Go(func() error {
			investments, err := s.records.Investments(ctx, session)
			if err != nil {
				s.LogWarn(ctx, err, "Failed to fetch investments, folding none", slog.String("user_id", session.UserID))
				return nil
			}
			set.Investments = nilToEmpty(investments)
			return nil
		})
	}
	if want&wantBudgets != 0 {
		g.Go(func() error {
			budgets, err := s.records.Budgets(ctx, session, period)
			if err != nil {
				s.LogWarn(ctx, err, "Failed to fetch budgets, folding none", slog.String("user_id", session.UserID))
				return nil
			}
			set.Budgets = nilToEmpty(budgets)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return domain.RecordSet{}, err
	}
	set.FetchedAt = s.now()
	return set, nil
}

// nilToEmpty keeps views serialising as [] rather than null.
func nilToEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func (s *insightsService) Snapshot(ctx context.Context, session domain.Session) (domain.RecordSet, error) {
	return s.fetch(ctx, session, wantAll, "")
}

// converterFor returns the session's reporting converter and its formatter.
func (s *insightsService) converterFor(ctx context.Context, userID string) (portssvc.CurrencyConverter, *presentation.Formatter) {
	conv := s.conversion.For(s.preferences.PrimaryCurrency(ctx, userID))
	return conv, presentation.NewFormatter(conv)
}

func (s *insightsService) PlaceholderDashboard(ctx context.Context, session domain.Session) presentation.DashboardView {
	conv, f := s.converterFor(ctx, session.UserID)
	return f.PlaceholderDashboard(ctx, conv.PrimaryCurrency())
}

func (s *insightsService) Dashboard(ctx context.Context, session domain.Session) (presentation.DashboardView, error) {
	set, err := s.fetch(ctx, session, wantTransactions|wantLoans|wantInvestments, "")
	if err != nil {
		return presentation.DashboardView{}, err
	}
	conv, f := s.converterFor(ctx, session.UserID)
	tally := aggregation.NewTally(conv)
	now := s.now()
	window := aggregation.MonthOf(now)

	var (
		monthly             domain.AggregateResult
		assets, liabilities decimal.Decimal
	)
	figures := presentation.DashboardFigures{Period: window.Label, GeneratedAt: now}
	var g errgroup.Group
	g.Go(func() error {
		monthly = aggregation.MonthlyStats(ctx, tally, set.Transactions, window)
		return nil
	})
	g.Go(func() error {
		figures.NetBalance = aggregation.NetBalance(ctx, tally, set.Transactions, set.Loans)
		return nil
	})
	g.Go(func() error {
		figures.DailyBudget = aggregation.DailyBudget(ctx, tally, set.Transactions, set.Loans, now)
		return nil
	})
	g.Go(func() error {
		assets, liabilities = aggregation.AssetsAndLiabilities(ctx, tally, set.Loans, set.Investments)
		return nil
	})
	_ = g.Wait()

	figures.Monthly = monthly.WithHoldings(assets, liabilities)
	figures.Fallbacks = tally.Fallbacks()
	s.logPass(ctx, "dashboard", session, conv.PrimaryCurrency(), figures.Fallbacks)
	return f.Dashboard(ctx, true, conv.PrimaryCurrency(), figures), nil
}

func (s *insightsService) Analytics(ctx context.Context, session domain.Session, windowName string) (presentation.AnalyticsView, error) {
	window, err := aggregation.WindowByName(windowName, s.now())
	if err != nil {
		return presentation.AnalyticsView{}, err
	}
	set, err := s.fetch(ctx, session, wantTransactions, "")
	if err != nil {
		return presentation.AnalyticsView{}, err
	}
	conv, f := s.converterFor(ctx, session.UserID)
	tally := aggregation.NewTally(conv)
	inWindow := aggregation.FilterTransactions(set.Transactions, window)

	figures := presentation.AnalyticsFigures{Window: window}
	var g errgroup.Group
	g.Go(func() error {
		figures.Stats = aggregation.MonthlyStats(ctx, tally, inWindow, aggregation.AllTime())
		return nil
	})
	g.Go(func() error {
		figures.TopCategories = aggregation.TopCategories(ctx, tally, inWindow, aggregation.DefaultTopCategories)
		return nil
	})
	g.Go(func() error {
		figures.Breakdown = aggregation.CategoryBreakdown(ctx, tally, inWindow, aggregation.AllTime())
		return nil
	})
	_ = g.Wait()

	figures.Fallbacks = tally.Fallbacks()
	s.logPass(ctx, "analytics", session, conv.PrimaryCurrency(), figures.Fallbacks)
	return f.Analytics(ctx, true, conv.PrimaryCurrency(), figures), nil
}

func (s *insightsService) Budgets(ctx context.Context, session domain.Session, period domain.BudgetPeriod) (presentation.BudgetView, error) {
	switch period {
	case "", domain.BudgetDaily, domain.BudgetWeekly, domain.BudgetMonthly, domain.BudgetYearly:
	default:
		return presentation.BudgetView{}, fmt.Errorf("%w: unknown budget period %q", apperrors.ErrValidation, period)
	}
	set, err := s.fetch(ctx, session, wantBudgets, period)
	if err != nil {
		return presentation.BudgetView{}, err
	}
	conv, f := s.converterFor(ctx, session.UserID)
	tally := aggregation.NewTally(conv)

	statuses := aggregation.BudgetProgress(ctx, tally, set.Budgets)
	s.logPass(ctx, "budgets", session, conv.PrimaryCurrency(), tally.Fallbacks())
	return f.Budgets(ctx, true, conv.PrimaryCurrency(), statuses, tally.Fallbacks()), nil
}

func (s *insightsService) Investments(ctx context.Context, session domain.Session) (presentation.InvestmentView, error) {
	set, err := s.fetch(ctx, session, wantInvestments, "")
	if err != nil {
		return presentation.InvestmentView{}, err
	}
	conv, f := s.converterFor(ctx, session.UserID)
	tally := aggregation.NewTally(conv)

	items := make([]presentation.InvestmentLineFigures, len(set.Investments))
	var analytics aggregation.PortfolioAnalytics
	var g errgroup.Group
	g.Go(func() error {
		for i, inv := range set.Investments {
			initial := tally.TryConvert(ctx, inv.InitialAmount).Value
			current := tally.TryConvert(ctx, inv.Valuation()).Value
			items[i] = presentation.InvestmentLineFigures{
				Investment: inv,
				Initial:    initial,
				Current:    current,
				Gain:       current.Sub(initial),
				ROI:        aggregation.InvestmentROI(inv),
			}
		}
		return nil
	})
	g.Go(func() error {
		analytics = aggregation.InvestmentAnalytics(ctx, tally, set.Investments)
		return nil
	})
	_ = g.Wait()

	s.logPass(ctx, "investments", session, conv.PrimaryCurrency(), tally.Fallbacks())
	return f.Investments(ctx, true, conv.PrimaryCurrency(), items, analytics, tally.Fallbacks()), nil
}

func (s *insightsService) Convert(ctx context.Context, userID string, amount domain.MonetaryAmount) portssvc.ConversionQuote {
	conv := s.conversion.For(s.preferences.PrimaryCurrency(ctx, userID))
	c := conv.TryConvert(ctx, amount)
	quote := portssvc.ConversionQuote{
		From:         amount,
		To:           conv.PrimaryCurrency(),
		Value:        c.Value,
		Display:      conv.FormatCurrency(ctx, c.Value),
		WasConverted: c.WasConverted,
	}
	if c.Err != nil {
		quote.Error = c.Err.Error()
	}
	return quote
}

func (s *insightsService) logPass(ctx context.Context, report string, session domain.Session, currency string, fallbacks int) {
	s.LogDebug(ctx, "Aggregation pass complete",
		slog.String("report", report),
		slog.String("user_id", session.UserID),
		slog.String("currency", currency),
		slog.Int("unconverted_records", fallbacks))
}
