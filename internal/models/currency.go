package models

// Currency is a row of the currencies table.
type Currency struct {
	CurrencyCode  string `db:"currency_code"` // Primary Key (e.g., "USD")
	Symbol        string `db:"symbol"`        // e.g., "$"
	Name          string `db:"name"`          // e.g., "US Dollar"
	Country       string `db:"country"`
	DecimalPlaces int    `db:"decimal_places"`
	IsActive      bool   `db:"is_active"`
	AuditFields
}

// CurrencyPreference is a row of the currency_preferences table.
type CurrencyPreference struct {
	UserID       string `db:"user_id"`
	CurrencyCode string `db:"currency_code"` // FK -> Currency.currencyCode
	IsPrimary    bool   `db:"is_primary"`
	DisplayOrder int    `db:"display_order"`
	AuditFields
}
