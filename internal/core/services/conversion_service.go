package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type conversionService struct {
	BaseService
	table  *RateTable
	source portssvc.RateSource
}

// NewConversionService creates a conversion service over a shared rate table.
// Rates missing from the table are resolved through source and cached.
func NewConversionService(table *RateTable, source portssvc.RateSource) portssvc.ConversionSvc {
	if table == nil {
		table = NewRateTable()
	}
	return &conversionService{table: table, source: source}
}

func (s *conversionService) For(primaryCurrency string) portssvc.CurrencyConverter {
	return &converter{svc: s, primary: strings.ToUpper(strings.TrimSpace(primaryCurrency))}
}

func (s *conversionService) CachedRates() int {
	return s.table.Len()
}

// rate returns the from→to rate, consulting the table before the source.
func (s *conversionService) rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if lookupCurrency(from) == nil {
		return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrUnknownCurrency, from)
	}
	if lookupCurrency(to) == nil {
		return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrUnknownCurrency, to)
	}
	if r, ok := s.table.Get(from, to); ok {
		return r, nil
	}
	if s.source == nil {
		return decimal.Zero, fmt.Errorf("%w: no rate source configured", apperrors.ErrRateUnavailable)
	}
	r, err := s.source.Rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve rate %s to %s: %w", from, to, err)
	}
	if !r.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate %s for %s to %s", apperrors.ErrRateUnavailable, r, from, to)
	}
	s.table.Put(from, to, r)
	return r, nil
}

// converter is bound to one primary currency.
type converter struct {
	svc     *conversionService
	primary string
}

func (c *converter) PrimaryCurrency() string {
	return c.primary
}

func (c *converter) TryConvert(ctx context.Context, amount domain.MonetaryAmount) domain.Conversion {
	from := strings.ToUpper(amount.CurrencyCode)
	if from == "" || from == c.primary {
		return domain.Conversion{Value: amount.Value, WasConverted: true}
	}

	rate, err := c.svc.rate(ctx, from, c.primary)
	if err != nil {
		c.svc.LogWarn(ctx, err, "Currency conversion failed, using unconverted amount",
			slog.String("from", from),
			slog.String("to", c.primary),
			slog.String("amount", amount.Value.String()))
		return domain.Conversion{Value: amount.Value, Err: err}
	}
	return domain.Conversion{Value: amount.Value.Mul(rate), WasConverted: true}
}

func (c *converter) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency string) decimal.Decimal {
	return c.TryConvert(ctx, domain.NewMonetaryAmount(amount, fromCurrency)).Value
}

func (c *converter) FormatCurrency(ctx context.Context, amount decimal.Decimal) string {
	cur := lookupCurrency(c.primary)
	if cur == nil {
		c.svc.LogDebug(ctx, "No formatter for primary currency, using plain format", slog.String("currency", c.primary))
		return amount.StringFixed(2)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	if !minor.Equal(decimal.NewFromInt(minor.IntPart())) {
		// does not fit in int64 minor units
		return amount.StringFixed(2)
	}
	return displayMinor(minor.IntPart(), cur.Code)
}
