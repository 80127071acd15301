package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Multi-currency dashboards over the CaptainLedger records backend",
	Long: `insights fetches a user's transactions, loans, investments and budgets from the
records backend, converts every amount into the user's primary currency and serves
the folded dashboard, analytics, budget and investment views.`,
	PersistentPreRunE: initLogging,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(codesCmd())
	rootCmd.AddCommand(summaryCmd())
}

// @title CaptainLedger Insights API
// @version 1.0
// @description Multi-currency dashboards, analytics, budgets and investment returns over the CaptainLedger records backend.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogging installs the JSON slog handler as the default logger.
func initLogging(_ *cobra.Command, _ []string) error {
	viper.AutomaticEnv()

	var level slog.Level
	switch strings.ToLower(viper.GetString("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", viper.GetString("LOG_LEVEL"))
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
