package domain

import "github.com/shopspring/decimal"

// Conversion is the outcome of a fallible currency conversion.
// When WasConverted is false, Value is the original unconverted amount and
// Err holds the cause.
type Conversion struct {
	Value        decimal.Decimal
	WasConverted bool
	Err          error
}
