package aggregation

import (
	"context"
	"sort"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultTopCategories is the number of categories shown on the analytics screen.
const DefaultTopCategories = 5

// TopCategories groups transactions by category (missing → "Other"), sums the
// converted absolute amounts and returns the limit largest, descending.
// Equal totals keep first-seen order. A limit <= 0 returns every category.
func TopCategories(ctx context.Context, conv Converter, txns []domain.Transaction, limit int) []domain.CategoryTotal {
	totals := groupByCategory(ctx, conv, txns, func(domain.Transaction) bool { return true })
	if limit > 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

// CategoryBreakdown totals expenses per category within w, largest first.
func CategoryBreakdown(ctx context.Context, conv Converter, txns []domain.Transaction, w Window) []domain.CategoryTotal {
	return groupByCategory(ctx, conv, txns, func(t domain.Transaction) bool {
		return t.IsExpense() && w.Contains(t.Date)
	})
}

func groupByCategory(ctx context.Context, conv Converter, txns []domain.Transaction, keep func(domain.Transaction) bool) []domain.CategoryTotal {
	index := map[string]int{}
	totals := []domain.CategoryTotal{}
	for _, t := range txns {
		if !keep(t) {
			continue
		}
		v := convert(ctx, conv, t.Amount).Abs()
		name := t.CategoryOrDefault()
		i, ok := index[name]
		if !ok {
			index[name] = len(totals)
			totals = append(totals, domain.CategoryTotal{Category: name, Amount: decimal.Zero})
			i = len(totals) - 1
		}
		totals[i].Amount = totals[i].Amount.Add(v)
		totals[i].Count++
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount.GreaterThan(totals[j].Amount)
	})
	return totals
}
