package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Value implements driver.Valuer so Money binds to NUMERIC columns.
func (m Money) Value() (driver.Value, error) {
	return m.amount.Value()
}

// Scan implements sql.Scanner so Money reads back from NUMERIC columns.
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	m.amount = d
	return nil
}
