// Package types provides common type aliases and money utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// MoneyPlaces is the display precision for amounts.
// Prices are quoted in a subunit currency with 3 fractional digits (OMR).
const MoneyPlaces = 3

// NewMoneyFromString creates a Money value from a string.
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// MoneyFromQty converts an integer quantity to Money for line arithmetic.
func MoneyFromQty(qty int) Money {
	return decimal.NewFromInt(int64(qty))
}

// FormatMoney renders an amount with exactly 3 fractional digits.
// All presentation (invoices, API totals) uses this format.
func FormatMoney(m Money) string {
	return m.StringFixed(MoneyPlaces)
}
