package refresh_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/SscSPs/captainledger_insights/internal/core/presentation"
	"github.com/SscSPs/captainledger_insights/internal/refresh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInsights answers dashboard passes through a function and ignores the rest.
type stubInsights struct {
	mu        sync.Mutex
	calls     []string
	dashboard func(ctx context.Context, session domain.Session) (presentation.DashboardView, error)
}

var _ portssvc.InsightsSvc = (*stubInsights)(nil)

func (s *stubInsights) Dashboard(ctx context.Context, session domain.Session) (presentation.DashboardView, error) {
	s.mu.Lock()
	s.calls = append(s.calls, session.UserID)
	s.mu.Unlock()
	return s.dashboard(ctx, session)
}

func (s *stubInsights) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubInsights) Snapshot(context.Context, domain.Session) (domain.RecordSet, error) {
	return domain.RecordSet{}, nil
}

func (s *stubInsights) PlaceholderDashboard(context.Context, domain.Session) presentation.DashboardView {
	return presentation.DashboardView{}
}

func (s *stubInsights) Analytics(context.Context, domain.Session, string) (presentation.AnalyticsView, error) {
	return presentation.AnalyticsView{}, nil
}

func (s *stubInsights) Budgets(context.Context, domain.Session, domain.BudgetPeriod) (presentation.BudgetView, error) {
	return presentation.BudgetView{}, nil
}

func (s *stubInsights) Investments(context.Context, domain.Session) (presentation.InvestmentView, error) {
	return presentation.InvestmentView{}, nil
}

func (s *stubInsights) Convert(context.Context, string, domain.MonetaryAmount) portssvc.ConversionQuote {
	return portssvc.ConversionQuote{}
}

func readyView(period string) presentation.DashboardView {
	return presentation.DashboardView{Ready: true, Currency: "USD", Period: period}
}

func TestStore_LastWriteWins(t *testing.T) {
	store := refresh.NewStore[string]()

	assert.False(t, store.Put("u1", refresh.ReportDashboard, 2, "newer"))
	assert.True(t, store.Put("u1", refresh.ReportDashboard, 1, "older"))

	snap, ok := store.Get("u1", refresh.ReportDashboard)
	require.True(t, ok)
	assert.Equal(t, "older", snap.Value)
	assert.Equal(t, uint64(1), snap.Seq)
	assert.False(t, snap.StoredAt.IsZero())
}

func TestStore_KeyedByUserAndReport(t *testing.T) {
	store := refresh.NewStore[int]()
	store.Put("u1", "dashboard", 1, 10)
	store.Put("u1", "budgets", 2, 20)
	store.Put("u2", "dashboard", 3, 30)

	snap, ok := store.Get("u1", "budgets")
	require.True(t, ok)
	assert.Equal(t, 20, snap.Value)
	assert.Equal(t, 3, store.Len())

	store.Delete("u1")
	_, ok = store.Get("u1", "dashboard")
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestRefresher_KickStoresResult(t *testing.T) {
	insights := &stubInsights{dashboard: func(ctx context.Context, s domain.Session) (presentation.DashboardView, error) {
		return readyView("April 2024"), nil
	}}
	r := refresh.NewRefresher(insights, refresh.NewStore[presentation.DashboardView]())

	r.Kick(domain.Session{UserID: "u1", Token: "tok"})
	r.Wait()

	snap, ok := r.Dashboard("u1")
	require.True(t, ok)
	assert.True(t, snap.Value.Ready)
	assert.Equal(t, "April 2024", snap.Value.Period)
}

func TestRefresher_FailedPassKeepsPreviousResult(t *testing.T) {
	fail := false
	insights := &stubInsights{dashboard: func(ctx context.Context, s domain.Session) (presentation.DashboardView, error) {
		if fail {
			return presentation.DashboardView{}, errors.New("backend down")
		}
		return readyView("first"), nil
	}}
	r := refresh.NewRefresher(insights, refresh.NewStore[presentation.DashboardView]())
	session := domain.Session{UserID: "u1"}

	_, err := r.RunPass(context.Background(), session)
	require.NoError(t, err)
	fail = true
	r.Kick(session)
	r.Wait()

	snap, ok := r.Dashboard("u1")
	require.True(t, ok)
	assert.Equal(t, "first", snap.Value.Period)
}

func TestRefresher_SlowOlderPassWins(t *testing.T) {
	release := make(chan struct{})
	insights := &stubInsights{dashboard: func(ctx context.Context, s domain.Session) (presentation.DashboardView, error) {
		if s.Token == "slow" {
			<-release
			return readyView("slow"), nil
		}
		return readyView("fast"), nil
	}}
	r := refresh.NewRefresher(insights, refresh.NewStore[presentation.DashboardView]())

	r.Kick(domain.Session{UserID: "u1", Token: "slow"})
	_, err := r.RunPass(context.Background(), domain.Session{UserID: "u1", Token: "fast"})
	require.NoError(t, err)
	close(release)
	r.Wait()

	snap, ok := r.Dashboard("u1")
	require.True(t, ok)
	assert.Equal(t, "slow", snap.Value.Period)
	assert.Equal(t, uint64(1), snap.Seq)
}

func TestRefresher_TickRefreshesFocusedUsersOnly(t *testing.T) {
	now := time.Date(2024, 4, 21, 12, 0, 0, 0, time.UTC)
	var clockMu sync.Mutex
	clock := func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		return now
	}
	insights := &stubInsights{dashboard: func(ctx context.Context, s domain.Session) (presentation.DashboardView, error) {
		return readyView(s.UserID), nil
	}}
	r := refresh.NewRefresher(insights, refresh.NewStore[presentation.DashboardView](),
		refresh.WithClock(clock), refresh.WithFocusTTL(5*time.Minute))

	r.Touch(domain.Session{UserID: "stale"})
	clockMu.Lock()
	now = now.Add(4 * time.Minute)
	clockMu.Unlock()
	r.Touch(domain.Session{UserID: "fresh"})
	r.Touch(domain.Session{})
	clockMu.Lock()
	now = now.Add(2 * time.Minute)
	clockMu.Unlock()

	started := r.Tick()
	r.Wait()

	assert.Equal(t, 1, started)
	assert.Equal(t, 1, r.Focused())
	_, ok := r.Dashboard("fresh")
	assert.True(t, ok)
	_, ok = r.Dashboard("stale")
	assert.False(t, ok)
}

func TestRefresher_TickEvictsExpiredUsers(t *testing.T) {
	now := time.Date(2024, 4, 21, 12, 0, 0, 0, time.UTC)
	insights := &stubInsights{dashboard: func(ctx context.Context, s domain.Session) (presentation.DashboardView, error) {
		return readyView(s.UserID), nil
	}}
	store := refresh.NewStore[presentation.DashboardView]()
	r := refresh.NewRefresher(insights, store,
		refresh.WithClock(func() time.Time { return now }), refresh.WithFocusTTL(time.Minute))

	session := domain.Session{UserID: "u1"}
	r.Touch(session)
	_, err := r.RunPass(context.Background(), session)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, r.Tick())
	r.Wait()

	assert.Equal(t, 0, r.Focused())
	assert.Equal(t, 0, store.Len())
	_, ok := r.Dashboard("u1")
	assert.False(t, ok)
}

func TestRefresher_KickAfterStopIsRefused(t *testing.T) {
	insights := &stubInsights{dashboard: func(ctx context.Context, s domain.Session) (presentation.DashboardView, error) {
		return readyView("late"), nil
	}}
	r := refresh.NewRefresher(insights, refresh.NewStore[presentation.DashboardView](),
		refresh.WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, r.Run(ctx))

	assert.False(t, r.Kick(domain.Session{UserID: "u1"}))
	r.Touch(domain.Session{UserID: "u1"})
	assert.Equal(t, 0, r.Tick())
	r.Wait()

	assert.Equal(t, 0, insights.callCount())
	_, ok := r.Dashboard("u1")
	assert.False(t, ok)
}

func TestRefresher_KickRacesShutdown(t *testing.T) {
	insights := &stubInsights{dashboard: func(ctx context.Context, s domain.Session) (presentation.DashboardView, error) {
		return readyView("x"), nil
	}}
	r := refresh.NewRefresher(insights, refresh.NewStore[presentation.DashboardView](),
		refresh.WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.Kick(domain.Session{UserID: "u1"})
			}
		}()
	}
	cancel()
	wg.Wait()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
	r.Wait()
	assert.False(t, r.Kick(domain.Session{UserID: "u1"}))
}

func TestRefresher_RunStopsWithContext(t *testing.T) {
	insights := &stubInsights{dashboard: func(ctx context.Context, s domain.Session) (presentation.DashboardView, error) {
		return readyView("tick"), nil
	}}
	r := refresh.NewRefresher(insights, refresh.NewStore[presentation.DashboardView](),
		refresh.WithInterval(10*time.Millisecond))
	r.Touch(domain.Session{UserID: "u1"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return insights.callCount() > 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}
