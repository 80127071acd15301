package services

import (
	"context"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSource resolves the rate that converts one unit of from into to.
type RateSource interface {
	Rate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)
}

// RemoteRateProvider fetches live rates from an external exchange rate API.
type RemoteRateProvider interface {
	// PairRate fetches the rate for a single pair.
	PairRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)

	// LatestRates fetches every rate quoted against base.
	LatestRates(ctx context.Context, baseCode string) (map[string]decimal.Decimal, error)
}

// CurrencyConverter converts amounts into a fixed primary currency.
type CurrencyConverter interface {
	// PrimaryCurrency is the ISO code every amount is converted into.
	PrimaryCurrency() string

	// TryConvert converts amount, reporting whether conversion happened.
	TryConvert(ctx context.Context, amount domain.MonetaryAmount) domain.Conversion

	// Convert never fails: on any error it returns the amount unchanged.
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency string) decimal.Decimal

	// FormatCurrency renders amount with the primary currency's symbol and
	// separators, falling back to a plain two-decimal string.
	FormatCurrency(ctx context.Context, amount decimal.Decimal) string
}

// ConversionSvc hands out converters sharing one rate table.
type ConversionSvc interface {
	// For returns a converter bound to primaryCurrency.
	For(primaryCurrency string) CurrencyConverter

	// CachedRates reports how many pairs the shared table holds.
	CachedRates() int
}
