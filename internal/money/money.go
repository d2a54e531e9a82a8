// Package money provides exact fixed-point monetary arithmetic.
//
// Amounts are held as an integer count of minor units (cents), so addition,
// subtraction and comparison never go through binary floating point.
package money

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits carried by every amount.
const Scale = 2

// ErrInvalidAmount is returned when an input is not a valid non-negative
// decimal with at most Scale fractional digits.
var ErrInvalidAmount = errors.New("invalid amount")

// Money is a fixed-point monetary amount in minor units (cents).
type Money int64

// Zero is the zero amount.
const Zero Money = 0

// FromMinorUnits wraps a raw minor-unit count.
func FromMinorUnits(units int64) Money {
	return Money(units)
}

// Parse converts a decimal string such as "200.00" into Money.
// The input must be a non-negative decimal with at most two fractional
// digits; anything else fails with ErrInvalidAmount.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	if d.Exponent() < -Scale {
		return 0, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, s, Scale)
	}
	units := d.Shift(Scale)
	if !units.IsInteger() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !units.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidAmount, s)
	}
	return Money(units.IntPart()), nil
}

// MinorUnits returns the raw minor-unit count.
func (m Money) MinorUnits() int64 {
	return int64(m)
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return m + o
}

// Sub returns m - o. The result may be negative; callers that must not go
// below zero compare first.
func (m Money) Sub(o Money) Money {
	return m - o
}

// Cmp returns -1, 0 or 1 as m is less than, equal to or greater than o.
func (m Money) Cmp(o Money) int {
	switch {
	case m < o:
		return -1
	case m > o:
		return 1
	default:
		return 0
	}
}

func (m Money) IsNegative() bool { return m < 0 }

func (m Money) IsZero() bool { return m == 0 }

func (m Money) IsPositive() bool { return m > 0 }

// String renders the amount with exactly two fractional digits, e.g.
// "1234.56" or "-0.05".
func (m Money) String() string {
	units := int64(m)
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	return fmt.Sprintf("%s%d.%02d", sign, units/100, units%100)
}

// MarshalJSON encodes the amount as a quoted decimal string so clients
// never see a binary float.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
