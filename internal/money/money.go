// Package money represents monetary amounts as integer cents.
//
// Amounts enter and leave the system as decimals with two fractional digits
// (github.com/shopspring/decimal); all arithmetic inside the ledger happens on
// Cents so no fraction of a cent is ever created or lost.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a decimal cannot be represented as cents.
var ErrInvalidAmount = errors.New("invalid amount")

// Cents is an amount of money in hundredths of the currency unit.
type Cents int64

var hundred = decimal.NewFromInt(100)

// FromDecimal converts d to cents. It fails when d has more than two
// fractional digits instead of rounding.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	scaled := d.Mul(hundred)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s has more than two decimal places", ErrInvalidAmount, d.String())
	}
	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidAmount, d.String())
	}
	return Cents(scaled.IntPart()), nil
}

// Parse reads a decimal string such as "12.50" or "12,50".
func Parse(s string) (Cents, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

// Decimal returns c as a decimal with exactly two fractional digits.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats c with a dot decimal separator, e.g. "133.34".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// PtBR formats c with a comma decimal separator, e.g. "133,34".
func (c Cents) PtBR() string {
	return strings.Replace(c.String(), ".", ",", 1)
}

// Min returns the smaller of a and b.
func Min(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}
