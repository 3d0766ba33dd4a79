package ledger

import (
	"time"

	"github.com/hearthapp/ledger-api/internal/domain"
)

// PayPeriodService computes which recurring pay period contains a date,
// and multi-period budget windows aligned to N paychecks.
type PayPeriodService interface {
	// PeriodContaining returns the pay period [start, start+length-1]
	// containing the date. Dates before the anchor are handled: elapsed
	// days floor-divide toward negative infinity, and the start is
	// corrected one period back if rounding placed it after the date.
	PeriodContaining(config domain.PayPeriodConfig, date time.Time) domain.BudgetPeriod

	// MultiPeriod extends the containing period's end by count additional
	// period lengths, producing one combined window.
	MultiPeriod(config domain.PayPeriodConfig, date time.Time, count int) (domain.BudgetPeriod, error)
}

// NewPayPeriodService returns the standard pay period service.
func NewPayPeriodService() PayPeriodService {
	return payPeriodService{}
}

type payPeriodService struct{}

func (payPeriodService) PeriodContaining(config domain.PayPeriodConfig, date time.Time) domain.BudgetPeriod {
	anchor := truncateToDay(config.Anchor)
	day := truncateToDay(date)

	elapsedDays := int(day.Sub(anchor).Hours() / 24)
	periodsElapsed := elapsedDays / config.LengthDays
	if elapsedDays < 0 && elapsedDays%config.LengthDays != 0 {
		// integer division truncates toward zero; floor toward -inf instead
		periodsElapsed--
	}

	start := anchor.AddDate(0, 0, periodsElapsed*config.LengthDays)
	if start.After(day) {
		start = start.AddDate(0, 0, -config.LengthDays)
	}
	end := start.AddDate(0, 0, config.LengthDays-1)

	return domain.BudgetPeriod{
		Type:  domain.BudgetPeriodPayPeriod,
		Start: start,
		End:   end,
	}
}

func (s payPeriodService) MultiPeriod(
	config domain.PayPeriodConfig,
	date time.Time,
	count int,
) (domain.BudgetPeriod, error) {
	if count < 0 {
		return domain.BudgetPeriod{}, domain.NewValidationError(
			"count", "cannot be negative", nil)
	}
	period := s.PeriodContaining(config, date)
	period.End = period.End.AddDate(0, 0, count*config.LengthDays)
	return period, nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
