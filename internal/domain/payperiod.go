package domain

import "time"

// PayPeriodConfig deterministically derives recurring pay periods from an
// anchor date and a fixed period length. Any date maps to exactly one
// period by integer-dividing the elapsed days since the anchor.
type PayPeriodConfig struct {
	Anchor     time.Time `json:"anchor"`
	LengthDays int       `json:"length_days"`
}

// NewPayPeriodConfig validates the period length (1-31 days).
func NewPayPeriodConfig(anchor time.Time, lengthDays int) (PayPeriodConfig, error) {
	if anchor.IsZero() {
		return PayPeriodConfig{}, NewValidationError("anchor", "cannot be zero", nil)
	}
	if lengthDays < 1 || lengthDays > 31 {
		return PayPeriodConfig{}, NewValidationError("length_days", "must be between 1 and 31", nil)
	}
	return PayPeriodConfig{Anchor: anchor, LengthDays: lengthDays}, nil
}
