package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/captainledger_insights/internal/backend"
	portsrepo "github.com/SscSPs/captainledger_insights/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/SscSPs/captainledger_insights/internal/core/services"
	"github.com/SscSPs/captainledger_insights/internal/platform/config"
	"github.com/SscSPs/captainledger_insights/internal/ratesapi"
	"github.com/SscSPs/captainledger_insights/internal/repositories/database/pgsql"
	"github.com/SscSPs/captainledger_insights/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// app holds the wired services shared by every command.
type app struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
	remote   *ratesapi.Client
}

// newApp wires repositories, the backend client, the rate API client and the
// services. Without requireDB a missing PGSQL_URL leaves rates, currencies and
// preferences unpersisted.
func newApp(ctx context.Context, cfg *config.Config, requireDB bool) (*app, error) {
	a := &app{cfg: cfg}

	var repos portsrepo.RepositoryProvider
	switch {
	case cfg.DatabaseURL != "":
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		a.pool = pool
		repos = pgsql.NewRepositoryProvider(pool)
	case requireDB:
		return nil, fmt.Errorf("PGSQL_URL must be set")
	}

	records := backend.NewClient(cfg.BackendBaseURL, backend.WithTimeout(cfg.BackendTimeout))

	a.remote = ratesapi.NewClient(cfg.ExchangeRateAPIKey,
		ratesapi.WithBaseURL(cfg.ExchangeRateBaseURL),
		ratesapi.WithFallbackURL(cfg.ExchangeRateFallbackURL),
		ratesapi.WithHTTPClient(&http.Client{Timeout: cfg.ExchangeRateTimeout}),
		ratesapi.WithRateLimit(cfg.RateAPIRequestsPerSec),
	)

	a.services = services.NewServiceContainer(cfg, repos, records, a.remote, services.NewRateTable())

	if a.pool != nil {
		a.registerCatalogue(ctx)
	}
	return a, nil
}

// registerCatalogue makes every stored currency outside ISO 4217 convertible.
func (a *app) registerCatalogue(ctx context.Context) {
	currencies, err := a.services.Currency.ListCurrencies(ctx)
	if err != nil {
		slog.Warn("Failed to load currency catalogue", slog.String("error", err.Error()))
		return
	}
	if added := services.RegisterCurrencies(currencies); len(added) > 0 {
		slog.Info("Registered custom currencies", slog.Any("codes", added))
	}
}

func (a *app) Close() {
	database.ClosePgxPool(a.pool)
}
