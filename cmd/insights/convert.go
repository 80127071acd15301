package main

import (
	"fmt"
	"strings"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/SscSPs/captainledger_insights/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert AMOUNT",
		Short: "Convert an amount using the rate resolver",
		Long: `Convert an amount into another currency using stored rates, derived rates
and the exchange rate API, in that order. On failure the amount is printed unchanged.`,
		Example: "  insights convert 12.50 --from EUR --to USD",
		Args:    cobra.ExactArgs(1),
		RunE:    runConvert,
	}

	cmd.Flags().String("from", "", "currency of the amount (required)")
	cmd.Flags().String("to", "", "target currency (defaults to DEFAULT_CURRENCY)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if to == "" {
		to = cfg.DefaultCurrency
	}

	a, err := newApp(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	conv := a.services.Conversion.For(strings.ToUpper(to))
	result := conv.TryConvert(ctx, domain.NewMonetaryAmount(amount, from))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, conv.FormatCurrency(ctx, result.Value))
	if !result.WasConverted {
		fmt.Fprintf(out, "not converted: %v\n", result.Err)
	}
	return nil
}
