// Package money provides the fixed-precision arithmetic policy shared by
// every engine: amounts are decimals with two fractional digits, and all
// comparisons happen at that precision. Binary floating point never touches
// monetary values; conversion to and from storage happens only at the
// persistence boundary.
package money

import (
	"fmt"
	"strings"

	"github.com/dharmawipraja/accounting-api-sub000/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits carried by every amount.
const Precision = 2

// Zero returns the zero amount.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// Parse converts a textual amount into a decimal. Empty input is treated as
// zero; unparsable input fails with apperrors.ErrInvalidAmount.
func Parse(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrInvalidAmount, s)
	}
	return Round(d), nil
}

// Round rounds an amount to the configured precision (half away from zero).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// Equal compares two amounts at the configured precision.
func Equal(a, b decimal.Decimal) bool {
	return Round(a).Equal(Round(b))
}

// IsPositive reports whether the amount is strictly greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}

// Display renders an amount with exactly Precision fractional digits.
func Display(d decimal.Decimal) string {
	return d.StringFixed(Precision)
}
