// Package money provides the immutable monetary value types used by every
// ledger aggregate. All arithmetic is exact decimal arithmetic; operations
// never mutate their receiver and always return new values.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money-specific validation errors
var (
	// ErrInvalidAmount is returned when an amount string cannot be parsed.
	ErrInvalidAmount = errors.New("invalid monetary amount")
)

// Money is an immutable signed decimal monetary amount.
// The zero value is usable and represents zero.
type Money struct {
	amount decimal.Decimal
}

// New creates a Money from a decimal value.
func New(d decimal.Decimal) Money {
	return Money{amount: d}
}

// Zero returns a zero-valued Money.
func Zero() Money {
	return Money{}
}

// FromString parses a decimal string (e.g. "-50.00") into Money.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{amount: d}, nil
}

// FromCents creates a Money from an integer number of cents.
func FromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -2)}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether m is strictly negative.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether m is strictly positive.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Equal reports whether two amounts are exactly equal.
// "2.50" and "2.5" compare equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Cmp compares m and other, returning -1, 0 or 1.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// String returns the amount formatted with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON implements json.Marshaler, encoding the amount as a JSON
// string to avoid float rounding in clients.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.amount.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting either a JSON
// string or a bare number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, data)
	}
	m.amount = d
	return nil
}
