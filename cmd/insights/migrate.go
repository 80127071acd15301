package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/captainledger_insights/internal/platform/config"
	"github.com/SscSPs/captainledger_insights/pkg/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Create or update the currencies, exchange_rates and currency_preferences
tables. serve applies the same migrations on start-up unless --skip-migrations is set.`,
		RunE: runMigrate,
	}

	cmd.Flags().String("path", database.DefaultMigrationsPath, "migration source URL")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("path")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("PGSQL_URL must be set")
	}

	slog.Info("Starting database migration", slog.String("source", path))
	applied, err := database.RunMigrations(cfg.DatabaseURL, path)
	if err != nil {
		return err
	}
	if applied {
		slog.Info("Database migrations applied successfully.")
	} else {
		slog.Info("No new migrations to apply.")
	}
	return nil
}
