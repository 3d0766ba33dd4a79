package money

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCurrency is returned when a currency code is not a 3-letter
// ISO 4217 style code.
var ErrInvalidCurrency = errors.New("invalid currency code")

// Currency is a validated, upper-cased 3-letter currency code.
type Currency string

// USD is the default currency for accounts that do not specify one.
const USD Currency = "USD"

// ParseCurrency validates and normalizes a currency code.
// The code must be exactly three ASCII letters; it is upper-cased.
func ParseCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
		}
	}
	return Currency(code), nil
}

// String returns the code as a plain string.
func (c Currency) String() string {
	return string(c)
}
