package dto

import (
	"time"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode  string `json:"currencyCode" binding:"required,uppercase,len=3"`
	Symbol        string `json:"symbol" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Country       string `json:"country"`
	DecimalPlaces *int   `json:"decimalPlaces" binding:"omitempty,min=0,max=8"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string    `json:"currencyCode"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Country       string    `json:"country,omitempty"`
	DecimalPlaces int       `json:"decimalPlaces"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Symbol:        curr.Symbol,
		Name:          curr.Name,
		Country:       curr.Country,
		DecimalPlaces: curr.DecimalPlaces,
		IsActive:      curr.IsActive,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}

// SetPreferenceRequest adds or updates a tracked currency for the caller.
type SetPreferenceRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,len=3"`
	IsPrimary    bool   `json:"isPrimary"`
	DisplayOrder int    `json:"displayOrder" binding:"min=0"`
}

// PreferenceResponse describes one tracked currency.
type PreferenceResponse struct {
	CurrencyCode string `json:"currencyCode"`
	IsPrimary    bool   `json:"isPrimary"`
	DisplayOrder int    `json:"displayOrder"`
}

// PreferencesResponse lists the caller's tracked currencies.
type PreferencesResponse struct {
	PrimaryCurrency string               `json:"primaryCurrency"`
	Preferences     []PreferenceResponse `json:"preferences"`
}

// ToPreferenceResponse converts a domain.CurrencyPreference to its DTO.
func ToPreferenceResponse(p domain.CurrencyPreference) PreferenceResponse {
	return PreferenceResponse{
		CurrencyCode: p.CurrencyCode,
		IsPrimary:    p.IsPrimary,
		DisplayOrder: p.DisplayOrder,
	}
}

// ToPreferencesResponse converts a user's preferences and primary currency.
func ToPreferencesResponse(primary string, prefs []domain.CurrencyPreference) PreferencesResponse {
	out := PreferencesResponse{PrimaryCurrency: primary, Preferences: make([]PreferenceResponse, len(prefs))}
	for i, p := range prefs {
		out.Preferences[i] = ToPreferenceResponse(p)
	}
	return out
}
