package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/SscSPs/captainledger_insights/internal/core/presentation"
	"github.com/SscSPs/captainledger_insights/internal/platform/config"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a dashboard, spending and portfolio summary for a user",
		Long: `Fetch a user's records from the records backend with their bearer token,
run the dashboard, analytics, budget and investment passes and print the result
as rendered markdown.`,
		RunE: runSummary,
	}

	cmd.Flags().String("token", "", "bearer token forwarded to the records backend (or INSIGHTS_TOKEN)")
	cmd.Flags().String("user", "cli", "user id whose currency preferences apply")
	cmd.Flags().String("window", "month", "analytics window (month, week, 30d, all)")
	cmd.Flags().Bool("raw", false, "print markdown without terminal styling")
	_ = viper.BindPFlag("INSIGHTS_TOKEN", cmd.Flags().Lookup("token"))

	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	window, _ := cmd.Flags().GetString("window")
	raw, _ := cmd.Flags().GetBool("raw")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := newApp(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	session := domain.Session{UserID: userID, Token: viper.GetString("INSIGHTS_TOKEN")}
	insights := a.services.Insights

	set, err := insights.Snapshot(ctx, session)
	if err != nil {
		return err
	}
	dashboard, err := insights.Dashboard(ctx, session)
	if err != nil {
		return err
	}
	analytics, err := insights.Analytics(ctx, session, window)
	if err != nil {
		return err
	}
	budgets, err := insights.Budgets(ctx, session, domain.BudgetMonthly)
	if err != nil {
		return err
	}
	investments, err := insights.Investments(ctx, session)
	if err != nil {
		return err
	}

	slog.Debug("Summary passes complete", slog.Int("cached_rates", a.services.Conversion.CachedRates()))

	md := summaryMarkdown(dashboard, analytics, budgets, investments) + recordsFooter(set)
	return renderMarkdown(cmd.OutOrStdout(), md, raw)
}

func renderMarkdown(w io.Writer, md string, raw bool) error {
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func recordsFooter(set domain.RecordSet) string {
	return fmt.Sprintf("\n---\n%d transactions, %d loans, %d investments, %d budgets\n",
		len(set.Transactions), len(set.Loans), len(set.Investments), len(set.Budgets))
}

// summaryMarkdown lays the four views out as one markdown document.
func summaryMarkdown(d presentation.DashboardView, a presentation.AnalyticsView, b presentation.BudgetView, inv presentation.InvestmentView) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s (%s)\n\n", d.Period, d.Currency)
	sb.WriteString("| | |\n|---|---:|\n")
	fmt.Fprintf(&sb, "| Income | %s |\n", d.Income.Display)
	fmt.Fprintf(&sb, "| Expenses | %s |\n", d.Expenses.Display)
	fmt.Fprintf(&sb, "| Balance | %s |\n", d.Balance.Display)
	fmt.Fprintf(&sb, "| Net balance | %s |\n", d.NetBalance.Display)
	fmt.Fprintf(&sb, "| Lent out | %s |\n", d.Assets.Display)
	fmt.Fprintf(&sb, "| Owed | %s |\n", d.Liabilities.Display)
	fmt.Fprintf(&sb, "| Daily budget | %s |\n\n", d.DailyBudget.Display)

	fmt.Fprintf(&sb, "## Spending: %s\n\n", a.Window)
	if len(a.TopCategories) == 0 {
		sb.WriteString("No transactions.\n\n")
	} else {
		sb.WriteString("| Category | Transactions | Amount |\n|---|---:|---:|\n")
		for _, c := range a.TopCategories {
			fmt.Fprintf(&sb, "| %s | %d | %s |\n", c.Category, c.Count, c.Amount.Display)
		}
		sb.WriteString("\n")
	}

	if len(b.Budgets) > 0 {
		sb.WriteString("## Budgets\n\n| Category | Spent | Limit | Used |\n|---|---:|---:|---:|\n")
		for _, l := range b.Budgets {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", l.Category, l.Spent.Display, l.Limit.Display, l.PercentUsed)
		}
		sb.WriteString("\n")
	}

	if len(inv.Investments) > 0 {
		sb.WriteString("## Investments\n\n| Name | Invested | Current | ROI |\n|---|---:|---:|---:|\n")
		for _, l := range inv.Investments {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", l.Name, l.Initial.Display, l.Current.Display, l.ROI)
		}
		fmt.Fprintf(&sb, "\nTotal return %s (%s)\n\n", inv.TotalGainLoss.Display, inv.TotalROI)
	}

	if n := d.Fallbacks + a.Fallbacks + b.Fallbacks + inv.Fallbacks; n > 0 {
		fmt.Fprintf(&sb, "_%d amounts could not be converted and are shown in their own currency._\n", n)
	}
	return sb.String()
}
