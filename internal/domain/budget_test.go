package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain/money"
)

func monthlyPeriod(t *testing.T, year int, month time.Month) BudgetPeriod {
	t.Helper()
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	period, err := NewBudgetPeriod(BudgetPeriodMonthly, start, start.AddDate(0, 1, 0).Add(-time.Second))
	if err != nil {
		t.Fatalf("NewBudgetPeriod failed: %v", err)
	}
	return period
}

func TestNewBudgetPeriod(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, err := NewBudgetPeriod(BudgetPeriodMonthly, start, start); !errors.Is(err, ErrValidation) {
		t.Errorf("start == end: expected ErrValidation, got %v", err)
	}
	if _, err := NewBudgetPeriod(BudgetPeriodMonthly, start.AddDate(0, 1, 0), start); !errors.Is(err, ErrValidation) {
		t.Errorf("end before start: expected ErrValidation, got %v", err)
	}
	if _, err := NewBudgetPeriod(BudgetPeriodType("quarterly"), start, start.AddDate(0, 1, 0)); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown type: expected ErrValidation, got %v", err)
	}
}

func TestBudgetPeriodKeyAndContains(t *testing.T) {
	t.Parallel()

	period := monthlyPeriod(t, 2025, time.June)

	if got := period.Key(); got != "monthly:2025-06-01" {
		t.Errorf("Key() = %q, want monthly:2025-06-01", got)
	}

	// both bounds are inclusive
	if !period.Contains(period.Start) {
		t.Error("Contains should include the start")
	}
	if !period.Contains(period.End) {
		t.Error("Contains should include the end")
	}
	if period.Contains(period.Start.Add(-time.Second)) {
		t.Error("Contains should exclude times before start")
	}
	if period.Contains(period.End.Add(time.Second)) {
		t.Error("Contains should exclude times after end")
	}
}

func TestNewBudget(t *testing.T) {
	t.Parallel()

	period := monthlyPeriod(t, 2025, time.June)
	categoryID := uuid.New()

	budget, err := NewBudget(period, categoryID, mustMoney(t, "500"), mustMoney(t, "25"))
	if err != nil {
		t.Fatalf("NewBudget failed: %v", err)
	}
	if !budget.SpentAmount.IsZero() {
		t.Error("New budgets start with zero spent")
	}
	if !budget.RolloverAmount.Equal(mustMoney(t, "25")) {
		t.Errorf("RolloverAmount = %s, want 25.00", budget.RolloverAmount)
	}

	if _, err := NewBudget(period, uuid.Nil, mustMoney(t, "500"), money.Zero()); !errors.Is(err, ErrValidation) {
		t.Errorf("nil category: expected ErrValidation, got %v", err)
	}
	if _, err := NewBudget(period, categoryID, mustMoney(t, "-1"), money.Zero()); !errors.Is(err, ErrValidation) {
		t.Errorf("negative budget: expected ErrValidation, got %v", err)
	}
}

func TestBudgetRemainingAndOverBudget(t *testing.T) {
	t.Parallel()

	period := monthlyPeriod(t, 2025, time.June)
	budget, err := NewBudget(period, uuid.New(), mustMoney(t, "500"), mustMoney(t, "50"))
	if err != nil {
		t.Fatalf("NewBudget failed: %v", err)
	}

	// remaining = budgeted + rollover - spent
	spent := budget.WithSpent(mustMoney(t, "200"))
	if !spent.RemainingAmount().Equal(mustMoney(t, "350")) {
		t.Errorf("RemainingAmount = %s, want 350.00", spent.RemainingAmount())
	}
	if spent.IsOverBudget() {
		t.Error("350 remaining should not be over budget")
	}

	blown := budget.WithSpent(mustMoney(t, "600.01"))
	if !blown.IsOverBudget() {
		t.Error("Spending past budgeted + rollover should be over budget")
	}
	if !blown.RemainingAmount().Equal(mustMoney(t, "-50.01")) {
		t.Errorf("RemainingAmount = %s, want -50.01", blown.RemainingAmount())
	}
}

func TestBudgetWithBudgetedAmount(t *testing.T) {
	t.Parallel()

	budget, err := NewBudget(monthlyPeriod(t, 2025, time.June), uuid.New(), mustMoney(t, "100"), money.Zero())
	if err != nil {
		t.Fatalf("NewBudget failed: %v", err)
	}

	raised, err := budget.WithBudgetedAmount(mustMoney(t, "150"))
	if err != nil {
		t.Fatalf("WithBudgetedAmount failed: %v", err)
	}
	if !raised.BudgetedAmount.Equal(mustMoney(t, "150")) {
		t.Errorf("BudgetedAmount = %s, want 150.00", raised.BudgetedAmount)
	}
	if !budget.BudgetedAmount.Equal(mustMoney(t, "100")) {
		t.Error("WithBudgetedAmount mutated the original budget")
	}

	if _, err := budget.WithBudgetedAmount(mustMoney(t, "-1")); !errors.Is(err, ErrValidation) {
		t.Errorf("negative amount: expected ErrValidation, got %v", err)
	}
}

func TestNewPayPeriodConfig(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	if _, err := NewPayPeriodConfig(anchor, 14); err != nil {
		t.Errorf("14-day config rejected: %v", err)
	}
	if _, err := NewPayPeriodConfig(anchor, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("zero length: expected ErrValidation, got %v", err)
	}
	if _, err := NewPayPeriodConfig(anchor, 32); !errors.Is(err, ErrValidation) {
		t.Errorf("32-day length: expected ErrValidation, got %v", err)
	}
	if _, err := NewPayPeriodConfig(time.Time{}, 14); !errors.Is(err, ErrValidation) {
		t.Errorf("zero anchor: expected ErrValidation, got %v", err)
	}
}
