// Package aggregation folds financial records into reporting-currency totals.
//
// Every function converts record amounts one at a time, in slice order,
// through the supplied Converter. A record whose conversion fails is folded
// with its original amount; nothing is ever dropped.
package aggregation

import (
	"context"
	"sync/atomic"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Converter converts an amount into the reporting currency without failing.
type Converter interface {
	TryConvert(ctx context.Context, amount domain.MonetaryAmount) domain.Conversion
}

// Tally wraps a Converter and counts conversions that fell back to the
// unconverted value. It is safe for concurrent use.
type Tally struct {
	conv      Converter
	fallbacks atomic.Int64
}

// NewTally wraps conv.
func NewTally(conv Converter) *Tally {
	return &Tally{conv: conv}
}

func (t *Tally) TryConvert(ctx context.Context, amount domain.MonetaryAmount) domain.Conversion {
	c := t.conv.TryConvert(ctx, amount)
	if !c.WasConverted {
		t.fallbacks.Add(1)
	}
	return c
}

// Fallbacks returns how many amounts were folded unconverted so far.
func (t *Tally) Fallbacks() int {
	return int(t.fallbacks.Load())
}

func convert(ctx context.Context, conv Converter, amount domain.MonetaryAmount) decimal.Decimal {
	return conv.TryConvert(ctx, amount).Value
}
