// Package presentation turns folded figures into display strings.
//
// Every string produced for a view is gated by a ready flag: until a pass has
// completed, the view shows Placeholder instead of a number, even when a
// number (including zero) is already known.
package presentation

import (
	"context"
	"strings"

	"github.com/SscSPs/captainledger_insights/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// Placeholder is shown for every figure until its pass is ready.
const Placeholder = "..."

// Undefined is shown for ratios whose denominator is zero.
const Undefined = "n/a"

// CurrencyFormatter renders an amount in the reporting currency.
type CurrencyFormatter interface {
	FormatCurrency(ctx context.Context, amount decimal.Decimal) string
}

// Formatter renders amounts, signed amounts and percentages.
type Formatter struct {
	currency CurrencyFormatter
}

// NewFormatter builds a Formatter over the reporting-currency formatter.
func NewFormatter(currency CurrencyFormatter) *Formatter {
	return &Formatter{currency: currency}
}

// Gate returns Placeholder until ready.
func Gate(ready bool, s string) string {
	if !ready {
		return Placeholder
	}
	return s
}

// Amount formats v in the reporting currency.
func (f *Formatter) Amount(ctx context.Context, v decimal.Decimal) string {
	return f.currency.FormatCurrency(ctx, v)
}

// Signed prefixes non-negative amounts with "+". Negative amounts keep the
// single "-" produced by the currency formatter.
func (f *Formatter) Signed(ctx context.Context, v decimal.Decimal) string {
	s := f.Amount(ctx, v)
	if v.Sign() < 0 || strings.HasPrefix(s, "+") {
		return s
	}
	return "+" + s
}

// Percent renders v with two decimals and a percent sign, e.g. "20.00%".
func Percent(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}

// SignedPercent renders v like Percent with a leading "+" when non-negative.
func SignedPercent(v decimal.Decimal) string {
	if v.Sign() < 0 {
		return Percent(v)
	}
	return "+" + Percent(v)
}

// ROI renders the ROI percentage, or Undefined when the initial amount is zero.
func ROI(roi aggregation.ROI) string {
	if !roi.Defined {
		return Undefined
	}
	return Percent(roi.Percent)
}
