package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of the exchange_rates table. Several rows may exist
// per pair; the newest by created_at wins.
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`   // Primary Key (UUID)
	FromCurrencyCode string          `db:"from_currency_code"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `db:"to_currency_code"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `db:"rate"`
	Source           string          `db:"source"`
	DateEffective    time.Time       `db:"date_effective"`
	AuditFields
}
