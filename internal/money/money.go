package money

import (
	"fmt"
	"math"
)

// All monetary amounts in this codebase are integer paise (1/100 rupee).
// Percentage math happens in float64 but every persisted amount is rounded
// back to whole paise exactly once, here. Equality checks always compare
// integers, never floats.

// ApplyRate multiplies an amount by a fractional rate and rounds half away
// from zero to whole paise.
func ApplyRate(amountPaise int64, rate float64) int64 {
	return int64(math.Round(float64(amountPaise) * rate))
}

// IsPositive reports whether the amount is strictly greater than zero.
func IsPositive(amountPaise int64) bool {
	return amountPaise > 0
}

// FormatINR renders paise as a rupee string with two decimal places,
// e.g. 1234550 -> "12345.50". Used in notes and operator emails.
func FormatINR(amountPaise int64) string {
	sign := ""
	if amountPaise < 0 {
		sign = "-"
		amountPaise = -amountPaise
	}
	return fmt.Sprintf("%s%d.%02d", sign, amountPaise/100, amountPaise%100)
}
