package services

import (
	"context"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/SscSPs/captainledger_insights/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all active currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// PreferenceSvc manages the currencies a user tracks and their reporting currency.
type PreferenceSvc interface {
	// ListPreferences returns the user's tracked currencies.
	ListPreferences(ctx context.Context, userID string) ([]domain.CurrencyPreference, error)

	// SetPreference adds or updates a tracked currency.
	SetPreference(ctx context.Context, userID string, req dto.SetPreferenceRequest) (*domain.CurrencyPreference, error)

	// PrimaryCurrency returns the user's reporting currency, falling back to
	// the configured default. It never fails.
	PrimaryCurrency(ctx context.Context, userID string) string
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate retrieves the stored exchange rate between two currencies.
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a manually entered exchange rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
