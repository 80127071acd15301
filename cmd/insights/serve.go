package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/core/presentation"
	"github.com/SscSPs/captainledger_insights/internal/handlers"
	"github.com/SscSPs/captainledger_insights/internal/middleware"
	"github.com/SscSPs/captainledger_insights/internal/platform/config"
	"github.com/SscSPs/captainledger_insights/internal/refresh"
	"github.com/SscSPs/captainledger_insights/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the dashboard refresher",
		RunE:  runServe,
	}

	cmd.Flags().String("port", "", "port to listen on (overrides PORT)")
	cmd.Flags().Bool("skip-migrations", false, "do not apply pending migrations on start-up")
	_ = viper.BindPFlag("PORT", cmd.Flags().Lookup("port"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if skip, _ := cmd.Flags().GetBool("skip-migrations"); !skip && cfg.DatabaseURL != "" {
		logger.Info("Running database migrations...")
		applied, err := database.RunMigrations(cfg.DatabaseURL, database.DefaultMigrationsPath)
		if err != nil {
			return err
		}
		if applied {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}
	}

	a, err := newApp(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	refresher := refresh.NewRefresher(a.services.Insights, refresh.NewStore[presentation.DashboardView](),
		refresh.WithInterval(cfg.RefreshInterval),
		refresh.WithFocusTTL(cfg.FocusTTL),
		refresh.WithLogger(logger),
	)

	router, err := newRouter(cfg, logger, a, refresher)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return refresher.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newRouter builds the gin engine with global middleware and every route.
func newRouter(cfg *config.Config, logger *slog.Logger, a *app, refresher *refresh.Refresher) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")
	corsCfg.ExposeHeaders = []string{"X-Request-ID", "X-Generated-At", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	if cfg.RateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
		}
		r.Use(middleware.RateLimit(limiter))
	}

	handlers.RegisterRoutes(r, cfg, a.services, refresher)
	return r, nil
}
