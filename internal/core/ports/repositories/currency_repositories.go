package repositories

import (
	"context"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves currencies, optionally only the active ones.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency inserts or updates a currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}

// PreferenceReader defines read operations for per-user currency preferences.
type PreferenceReader interface {
	// ListPreferences returns a user's tracked currencies ordered by display order.
	ListPreferences(ctx context.Context, userID string) ([]domain.CurrencyPreference, error)

	// FindPrimaryPreference returns the user's primary currency, or ErrNotFound.
	FindPrimaryPreference(ctx context.Context, userID string) (*domain.CurrencyPreference, error)
}

// PreferenceWriter defines write operations for per-user currency preferences.
type PreferenceWriter interface {
	// SavePreference upserts a preference. Saving a primary preference clears
	// the primary flag on the user's other preferences.
	SavePreference(ctx context.Context, pref domain.CurrencyPreference) error
}

// PreferenceRepositoryFacade combines the preference repository interfaces.
type PreferenceRepositoryFacade interface {
	PreferenceReader
	PreferenceWriter
}
