package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	portsrepo "github.com/SscSPs/captainledger_insights/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// BridgeCurrency is used to triangulate pairs that have no direct rate.
	BridgeCurrency = "USD"

	// SystemUserID is recorded as the author of rates the resolver persists.
	SystemUserID = "system"

	defaultFreshFor = 6 * time.Hour
	defaultStaleFor = 48 * time.Hour
)

var one = decimal.NewFromInt(1)

type rateResolver struct {
	BaseService
	repo     portsrepo.ExchangeRateRepositoryFacade
	remote   portssvc.RemoteRateProvider
	now      func() time.Time
	freshFor time.Duration
	staleFor time.Duration
}

// ResolverOption configures the rate resolver.
type ResolverOption func(*rateResolver)

// WithResolverClock overrides time.Now.
func WithResolverClock(now func() time.Time) ResolverOption {
	return func(r *rateResolver) { r.now = now }
}

// WithRateFreshness sets how long a stored rate is fresh, and how long it may
// still be used as a fallback before the remote provider is consulted.
func WithRateFreshness(fresh, stale time.Duration) ResolverOption {
	return func(r *rateResolver) {
		if fresh > 0 {
			r.freshFor = fresh
		}
		if stale > 0 {
			r.staleFor = stale
		}
	}
}

// WithRemoteProvider sets the live exchange rate API.
func WithRemoteProvider(remote portssvc.RemoteRateProvider) ResolverOption {
	return func(r *rateResolver) { r.remote = remote }
}

// NewRateResolver creates a RateSource backed by stored rates and, when
// configured, a remote provider. repo may be nil, in which case only the
// remote provider is consulted.
func NewRateResolver(repo portsrepo.ExchangeRateRepositoryFacade, opts ...ResolverOption) portssvc.RateSource {
	r := &rateResolver{
		repo:     repo,
		now:      time.Now,
		freshFor: defaultFreshFor,
		staleFor: defaultStaleFor,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rate resolves from→to in order: stored direct rate (fresh, then stale),
// stored inverse rate, a USD bridge, the remote pair endpoint, the remote
// latest-rates endpoint, and finally the newest stored direct rate of any age.
func (r *rateResolver) Rate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	from := strings.ToUpper(fromCode)
	to := strings.ToUpper(toCode)
	if from == to {
		return one, nil
	}
	logger := r.GetLogger(ctx).With(slog.String("from", from), slog.String("to", to))

	direct := r.latest(ctx, from, to)
	if direct != nil && r.usable(direct) {
		if direct.Age(r.now()) < r.freshFor {
			logger.Debug("Using fresh stored rate", slog.String("source", string(direct.Source)))
		} else {
			logger.Debug("Using stale stored rate", slog.Duration("age", direct.Age(r.now())))
		}
		return direct.Rate, nil
	}

	if inverse := r.latest(ctx, to, from); inverse != nil && r.usable(inverse) {
		rate := one.Div(inverse.Rate)
		logger.Debug("Using inverted stored rate")
		r.store(ctx, from, to, rate, domain.RateSourceCalculated)
		return rate, nil
	}

	if from != BridgeCurrency && to != BridgeCurrency {
		toBridge := r.latest(ctx, from, BridgeCurrency)
		fromBridge := r.latest(ctx, BridgeCurrency, to)
		if toBridge != nil && fromBridge != nil && r.usable(toBridge) && r.usable(fromBridge) {
			rate := toBridge.Rate.Mul(fromBridge.Rate)
			logger.Debug("Using USD bridge rate")
			r.store(ctx, from, to, rate, domain.RateSourceCalculatedBridge)
			return rate, nil
		}
	}

	if r.remote != nil {
		rate, err := r.remote.PairRate(ctx, from, to)
		if err == nil && rate.IsPositive() {
			r.store(ctx, from, to, rate, domain.RateSourceAPI)
			return rate, nil
		}
		if err != nil {
			logger.Debug("Pair rate lookup failed", slog.String("error", err.Error()))
		}

		rates, err := r.remote.LatestRates(ctx, from)
		if err == nil {
			if rate, ok := rates[to]; ok && rate.IsPositive() {
				r.store(ctx, from, to, rate, domain.RateSourceFallback)
				return rate, nil
			}
		} else {
			logger.Warn("Latest rates lookup failed", slog.String("error", err.Error()))
		}
	}

	if direct != nil && direct.Rate.IsPositive() {
		logger.Warn("Using historical stored rate", slog.Time("recorded_at", direct.CreatedAt))
		return direct.Rate, nil
	}

	return decimal.Zero, fmt.Errorf("%w: %s to %s", apperrors.ErrRateUnavailable, from, to)
}

func (r *rateResolver) usable(rate *domain.ExchangeRate) bool {
	return rate.Rate.IsPositive() && rate.Age(r.now()) < r.staleFor
}

// latest returns the newest stored direct rate, or nil when none is stored
// or the lookup fails.
func (r *rateResolver) latest(ctx context.Context, from, to string) *domain.ExchangeRate {
	if r.repo == nil {
		return nil
	}
	rate, err := r.repo.FindLatestExchangeRate(ctx, from, to)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			r.LogWarn(ctx, err, "Failed to read stored exchange rate", slog.String("from", from), slog.String("to", to))
		}
		return nil
	}
	return rate
}

// store persists a resolved rate. Failures are logged and otherwise ignored.
func (r *rateResolver) store(ctx context.Context, from, to string, rate decimal.Decimal, source domain.RateSource) {
	if r.repo == nil {
		return
	}
	now := r.now()
	err := r.repo.SaveExchangeRate(ctx, domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             rate,
		Source:           source,
		DateEffective:    now,
		AuditFields:      domain.NewAuditFields(SystemUserID, now),
	})
	if err != nil {
		r.LogWarn(ctx, err, "Failed to persist resolved exchange rate",
			slog.String("from", from), slog.String("to", to), slog.String("source", string(source)))
	}
}
