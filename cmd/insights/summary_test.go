package main

import (
	"bytes"
	"testing"

	"github.com/SscSPs/captainledger_insights/internal/core/presentation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryMarkdown(t *testing.T) {
	d := presentation.DashboardView{
		Ready:      true,
		Currency:   "USD",
		Period:     "April 2024",
		Income:     presentation.Figure{Display: "$3,000.00"},
		NetBalance: presentation.Figure{Display: "+$1,500.00"},
		Fallbacks:  1,
	}
	a := presentation.AnalyticsView{
		Window:        "April 2024",
		TopCategories: []presentation.CategoryLine{{Category: "Rent", Count: 1, Amount: presentation.Figure{Display: "$1,000.00"}}},
	}
	b := presentation.BudgetView{Budgets: []presentation.BudgetLine{{Category: "Food", PercentUsed: "50.00%"}}}
	inv := presentation.InvestmentView{
		Investments:   []presentation.InvestmentLine{{Name: "Index fund", ROI: "20.00%"}},
		TotalGainLoss: presentation.Figure{Display: "+$200.00"},
		TotalROI:      "20.00%",
	}

	md := summaryMarkdown(d, a, b, inv)

	assert.Contains(t, md, "# April 2024 (USD)")
	assert.Contains(t, md, "| Income | $3,000.00 |")
	assert.Contains(t, md, "| Net balance | +$1,500.00 |")
	assert.Contains(t, md, "| Rent | 1 | $1,000.00 |")
	assert.Contains(t, md, "| Food |")
	assert.Contains(t, md, "50.00%")
	assert.Contains(t, md, "Total return +$200.00 (20.00%)")
	assert.Contains(t, md, "_1 amounts could not be converted")
}

func TestSummaryMarkdown_EmptySections(t *testing.T) {
	md := summaryMarkdown(presentation.DashboardView{Period: "May 2024", Currency: "EUR"},
		presentation.AnalyticsView{Window: "May 2024"}, presentation.BudgetView{}, presentation.InvestmentView{})

	assert.Contains(t, md, "No transactions.")
	assert.NotContains(t, md, "## Budgets")
	assert.NotContains(t, md, "## Investments")
	assert.NotContains(t, md, "could not be converted")
}

func TestRenderMarkdown_Raw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderMarkdown(&buf, "# Title\n", true))
	assert.Equal(t, "# Title\n", buf.String())
}
