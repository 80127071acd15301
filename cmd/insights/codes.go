package main

import (
	"fmt"
	"strings"

	"github.com/SscSPs/captainledger_insights/internal/platform/config"
	"github.com/spf13/cobra"
)

func codesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the currency codes the exchange rate API can convert",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a, err := newApp(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer a.Close()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(a.remote.SupportedCodes(cmd.Context()), " "))
			return err
		},
	}
}
