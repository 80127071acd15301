package refresh

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/SscSPs/captainledger_insights/internal/core/presentation"
	"github.com/SscSPs/captainledger_insights/internal/middleware"
)

const (
	DefaultInterval    = 30 * time.Second
	DefaultFocusTTL    = 5 * time.Minute
	DefaultPassTimeout = time.Minute
)

type focus struct {
	session  domain.Session
	lastSeen time.Time
}

// Refresher reruns the dashboard pass for focused users on a fixed interval.
// Passes are never cancelled by newer ones; whichever finishes last wins the slot.
type Refresher struct {
	insights    portssvc.InsightsSvc
	store       *Store[presentation.DashboardView]
	interval    time.Duration
	focusTTL    time.Duration
	passTimeout time.Duration
	now         func() time.Time
	logger      *slog.Logger

	seq atomic.Uint64
	wg  sync.WaitGroup

	mu      sync.Mutex
	focused map[string]focus
	baseCtx context.Context
	stopped bool
}

// Option configures a Refresher.
type Option func(*Refresher)

// WithInterval sets how often focused users are refreshed.
func WithInterval(d time.Duration) Option {
	return func(r *Refresher) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithFocusTTL sets how long a user stays focused after their last request.
func WithFocusTTL(d time.Duration) Option {
	return func(r *Refresher) {
		if d > 0 {
			r.focusTTL = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Refresher) { r.now = now }
}

// WithLogger sets the logger passes run with.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Refresher) { r.logger = logger }
}

// NewRefresher creates a refresher writing dashboard views into store.
func NewRefresher(insights portssvc.InsightsSvc, store *Store[presentation.DashboardView], opts ...Option) *Refresher {
	r := &Refresher{
		insights:    insights,
		store:       store,
		interval:    DefaultInterval,
		focusTTL:    DefaultFocusTTL,
		passTimeout: DefaultPassTimeout,
		now:         time.Now,
		logger:      slog.Default(),
		focused:     make(map[string]focus),
		baseCtx:     context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Touch marks the session's user as focused.
func (r *Refresher) Touch(session domain.Session) {
	if session.UserID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.focused[session.UserID] = focus{session: session, lastSeen: r.now()}
}

// Focused reports how many users are currently focused.
func (r *Refresher) Focused() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.focused)
}

// Dashboard returns the latest stored dashboard for the user.
func (r *Refresher) Dashboard(userID string) (Snapshot[presentation.DashboardView], bool) {
	return r.store.Get(userID, ReportDashboard)
}

// Kick starts a dashboard pass for the session in the background. It reports
// false once the context passed to Run is done.
func (r *Refresher) Kick(session domain.Session) bool {
	r.mu.Lock()
	base := r.baseCtx
	if r.stopped || base.Err() != nil {
		r.mu.Unlock()
		r.logger.Debug("Refresher stopped, dropping dashboard pass", slog.String("user_id", session.UserID))
		return false
	}
	r.wg.Add(1)
	r.mu.Unlock()

	seq := r.seq.Add(1)
	go func() {
		defer r.wg.Done()
		r.pass(base, session, seq)
	}()
	return true
}

// RunPass runs a dashboard pass synchronously and stores its result.
func (r *Refresher) RunPass(ctx context.Context, session domain.Session) (presentation.DashboardView, error) {
	seq := r.seq.Add(1)
	view, err := r.insights.Dashboard(ctx, session)
	if err != nil {
		return presentation.DashboardView{}, err
	}
	r.put(ctx, session.UserID, seq, view)
	return view, nil
}

// Run refreshes focused users every interval until ctx is done, then waits
// for in-flight passes.
func (r *Refresher) Run(ctx context.Context) error {
	r.mu.Lock()
	r.baseCtx = ctx
	r.mu.Unlock()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Dashboard refresher started",
		slog.Duration("interval", r.interval),
		slog.Duration("focus_ttl", r.focusTTL))

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			r.stopped = true
			r.mu.Unlock()
			r.Wait()
			r.logger.Info("Dashboard refresher stopped")
			return nil
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick drops expired focus along with the user's stored results and kicks a
// pass for every user still focused. It returns the number of passes started.
func (r *Refresher) Tick() int {
	now := r.now()
	r.mu.Lock()
	sessions := make([]domain.Session, 0, len(r.focused))
	var expired []string
	for userID, f := range r.focused {
		if now.Sub(f.lastSeen) > r.focusTTL {
			delete(r.focused, userID)
			expired = append(expired, userID)
			continue
		}
		sessions = append(sessions, f.session)
	}
	r.mu.Unlock()

	for _, userID := range expired {
		r.store.Delete(userID)
	}

	started := 0
	for _, s := range sessions {
		if r.Kick(s) {
			started++
		}
	}
	return started
}

// Wait blocks until every kicked pass has finished.
func (r *Refresher) Wait() {
	r.wg.Wait()
}

func (r *Refresher) pass(base context.Context, session domain.Session, seq uint64) {
	logger := r.logger.With(slog.String("user_id", session.UserID), slog.Uint64("pass", seq))
	ctx, cancel := context.WithTimeout(middleware.WithLogger(base, logger), r.passTimeout)
	defer cancel()

	view, err := r.insights.Dashboard(ctx, session)
	if err != nil {
		logger.Warn("Dashboard pass failed", slog.String("error", err.Error()))
		return
	}
	r.put(ctx, session.UserID, seq, view)
}

func (r *Refresher) put(ctx context.Context, userID string, seq uint64, view presentation.DashboardView) {
	if r.store.Put(userID, ReportDashboard, seq, view) {
		middleware.LoggerOrDefault(ctx).Debug("Older dashboard pass replaced a newer result",
			slog.String("user_id", userID), slog.Uint64("pass", seq))
	}
}
