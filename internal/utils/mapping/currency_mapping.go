package mapping

import (
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/SscSPs/captainledger_insights/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode:  d.CurrencyCode,
		Symbol:        d.Symbol,
		Name:          d.Name,
		Country:       d.Country,
		DecimalPlaces: d.DecimalPlaces,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode:  m.CurrencyCode,
		Symbol:        m.Symbol,
		Name:          m.Name,
		Country:       m.Country,
		DecimalPlaces: m.DecimalPlaces,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}

// ToModelCurrencyPreference converts a domain CurrencyPreference to its model.
func ToModelCurrencyPreference(d domain.CurrencyPreference) models.CurrencyPreference {
	return models.CurrencyPreference{
		UserID:       d.UserID,
		CurrencyCode: d.CurrencyCode,
		IsPrimary:    d.IsPrimary,
		DisplayOrder: d.DisplayOrder,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrencyPreference converts a model CurrencyPreference to its domain type.
func ToDomainCurrencyPreference(m models.CurrencyPreference) domain.CurrencyPreference {
	return domain.CurrencyPreference{
		UserID:       m.UserID,
		CurrencyCode: m.CurrencyCode,
		IsPrimary:    m.IsPrimary,
		DisplayOrder: m.DisplayOrder,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencyPreferenceSlice converts model preferences to domain preferences.
func ToDomainCurrencyPreferenceSlice(ms []models.CurrencyPreference) []domain.CurrencyPreference {
	ds := make([]domain.CurrencyPreference, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrencyPreference(m)
	}
	return ds
}
