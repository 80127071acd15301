package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol        string `json:"symbol"`       // e.g., "$"
	Name          string `json:"name"`         // e.g., "US Dollar"
	Country       string `json:"country,omitempty"`
	DecimalPlaces int    `json:"decimalPlaces"`
	IsActive      bool   `json:"isActive"`
	AuditFields
}

// CurrencyPreference is a currency a user tracks; exactly one may be primary.
type CurrencyPreference struct {
	UserID       string `json:"userID"`
	CurrencyCode string `json:"currencyCode"`
	IsPrimary    bool   `json:"isPrimary"`
	DisplayOrder int    `json:"displayOrder"`
	AuditFields
}

// RateSource records where a stored exchange rate came from.
type RateSource string

const (
	RateSourceManual           RateSource = "manual"
	RateSourceAPI              RateSource = "api"
	RateSourceFallback         RateSource = "fallback"
	RateSourceCalculated       RateSource = "calculated"
	RateSourceCalculatedBridge RateSource = "calculated_bridge"
)

// ExchangeRate stores the conversion rate between two currencies.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           RateSource      `json:"source"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

// Age is the time elapsed since the rate was recorded.
func (r ExchangeRate) Age(now time.Time) time.Duration {
	return now.Sub(r.CreatedAt)
}
