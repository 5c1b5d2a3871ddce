// Package money provides exact decimal arithmetic for currency amounts.
// All aggregation accumulates in decimals; float64 appears only at the JSON
// boundary where the upstream API reports numbers.
package money

import "github.com/shopspring/decimal"

// Amount is an exact currency value.
type Amount = decimal.Decimal

// Zero is the zero amount.
var Zero = decimal.Zero

// FromFloat converts an upstream float into an exact amount.
func FromFloat(f float64) Amount {
	return decimal.NewFromFloat(f)
}

// FromFloatPtr converts a nullable upstream float, treating nil as zero.
func FromFloatPtr(f *float64) Amount {
	if f == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*f)
}

// Round2 rounds half away from zero to 2 decimal places. Used once at the
// end of aggregation, never per item.
func Round2(a Amount) Amount {
	return a.Round(2)
}

// Truncate2 truncates toward zero to 2 decimal places. Used by the exact
// service-charge distributor, which redistributes the remainder itself.
func Truncate2(a Amount) Amount {
	return a.Truncate(2)
}

// Ratio returns a/b, or zero when b is zero.
func Ratio(a, b Amount) Amount {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// Float renders an amount as a float64 for JSON output after rounding.
func Float(a Amount) float64 {
	f, _ := a.Float64()
	return f
}
