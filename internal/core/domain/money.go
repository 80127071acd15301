package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MonetaryAmount is a signed value tagged with the ISO 4217 code it is denominated in.
// An empty CurrencyCode means the amount is already in the reporting currency.
type MonetaryAmount struct {
	Value        decimal.Decimal `json:"value"`
	CurrencyCode string          `json:"currencyCode"`
}

// NewMonetaryAmount normalizes the currency code to upper case.
func NewMonetaryAmount(value decimal.Decimal, currencyCode string) MonetaryAmount {
	return MonetaryAmount{
		Value:        value,
		CurrencyCode: strings.ToUpper(strings.TrimSpace(currencyCode)),
	}
}

// Abs returns the amount with a non-negative value.
func (m MonetaryAmount) Abs() MonetaryAmount {
	return MonetaryAmount{Value: m.Value.Abs(), CurrencyCode: m.CurrencyCode}
}

// WithValue returns a copy carrying a different value in the same currency.
func (m MonetaryAmount) WithValue(v decimal.Decimal) MonetaryAmount {
	return MonetaryAmount{Value: v, CurrencyCode: m.CurrencyCode}
}

func (m MonetaryAmount) IsZero() bool     { return m.Value.IsZero() }
func (m MonetaryAmount) IsPositive() bool { return m.Value.IsPositive() }
func (m MonetaryAmount) IsNegative() bool { return m.Value.IsNegative() }

func (m MonetaryAmount) String() string {
	if m.CurrencyCode == "" {
		return m.Value.String()
	}
	return m.Value.String() + " " + m.CurrencyCode
}
