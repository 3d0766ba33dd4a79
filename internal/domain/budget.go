package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain/money"
)

// BudgetPeriodType classifies the dated window a budget applies to.
type BudgetPeriodType string

const (
	BudgetPeriodMonthly     BudgetPeriodType = "monthly"
	BudgetPeriodWeekly      BudgetPeriodType = "weekly"
	BudgetPeriodBiWeekly    BudgetPeriodType = "biweekly"
	BudgetPeriodSemiMonthly BudgetPeriodType = "semimonthly"
	BudgetPeriodCustom      BudgetPeriodType = "custom"
	BudgetPeriodPayPeriod   BudgetPeriodType = "pay_period"
)

// ParseBudgetPeriodType validates a budget period type string.
func ParseBudgetPeriodType(s string) (BudgetPeriodType, error) {
	t := BudgetPeriodType(s)
	switch t {
	case BudgetPeriodMonthly, BudgetPeriodWeekly, BudgetPeriodBiWeekly,
		BudgetPeriodSemiMonthly, BudgetPeriodCustom, BudgetPeriodPayPeriod:
		return t, nil
	default:
		return "", NewValidationError("period_type", "unknown budget period type: "+s, nil)
	}
}

// BudgetPeriod is the dated window a budget applies to. Start must be
// strictly before End; both bounds are inclusive for containment.
type BudgetPeriod struct {
	Type  BudgetPeriodType `json:"type"`
	Start time.Time        `json:"start"`
	End   time.Time        `json:"end"`
}

// NewBudgetPeriod creates a BudgetPeriod, rejecting end <= start.
func NewBudgetPeriod(periodType BudgetPeriodType, start, end time.Time) (BudgetPeriod, error) {
	if _, err := ParseBudgetPeriodType(string(periodType)); err != nil {
		return BudgetPeriod{}, err
	}
	if !start.Before(end) {
		return BudgetPeriod{}, NewValidationError("end", "must be after start", nil)
	}
	return BudgetPeriod{Type: periodType, Start: start, End: end}, nil
}

// Key derives a deterministic lookup key from the period type and start
// date, so that the same logical period always maps to the same budget row.
func (p BudgetPeriod) Key() string {
	return string(p.Type) + ":" + p.Start.UTC().Format("2006-01-02")
}

// Contains reports whether the date falls within [Start, End] inclusive.
func (p BudgetPeriod) Contains(date time.Time) bool {
	return !date.Before(p.Start) && !date.After(p.End)
}

// Budget is a category-scoped spending envelope for one period.
// SpentAmount is derived and recalculated from transactions; RolloverAmount
// is the unspent remainder carried from a prior period, computed by the
// caller and passed in explicitly.
type Budget struct {
	ID             uuid.UUID    `json:"id"`
	Period         BudgetPeriod `json:"period"`
	CategoryID     uuid.UUID    `json:"category_id"`
	BudgetedAmount money.Money  `json:"budgeted_amount"`
	SpentAmount    money.Money  `json:"spent_amount"`
	RolloverAmount money.Money  `json:"rollover_amount"`
	Notes          string       `json:"notes,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewBudget creates a Budget with zero spent and the given rollover.
// Rejects negative budgeted amounts.
func NewBudget(period BudgetPeriod, categoryID uuid.UUID, budgeted, rollover money.Money) (Budget, error) {
	if categoryID == uuid.Nil {
		return Budget{}, NewValidationError("category_id", "cannot be empty", nil)
	}
	if budgeted.IsNegative() {
		return Budget{}, NewValidationError("budgeted_amount", "cannot be negative", nil)
	}
	now := time.Now().UTC()
	return Budget{
		ID:             uuid.New(),
		Period:         period,
		CategoryID:     categoryID,
		BudgetedAmount: budgeted,
		SpentAmount:    money.Zero(),
		RolloverAmount: rollover,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// RemainingAmount is budgeted + rollover - spent.
func (b Budget) RemainingAmount() money.Money {
	return b.BudgetedAmount.Add(b.RolloverAmount).Sub(b.SpentAmount)
}

// IsOverBudget reports whether the remaining amount is negative.
func (b Budget) IsOverBudget() bool {
	return b.RemainingAmount().IsNegative()
}

// WithBudgetedAmount returns a copy with a new budgeted amount.
// Rejects negative values.
func (b Budget) WithBudgetedAmount(amount money.Money) (Budget, error) {
	if amount.IsNegative() {
		return Budget{}, NewValidationError("budgeted_amount", "cannot be negative", nil)
	}
	b.BudgetedAmount = amount
	b.UpdatedAt = time.Now().UTC()
	return b, nil
}

// WithSpent returns a copy with the derived spent amount replaced.
func (b Budget) WithSpent(spent money.Money) Budget {
	b.SpentAmount = spent
	b.UpdatedAt = time.Now().UTC()
	return b
}
