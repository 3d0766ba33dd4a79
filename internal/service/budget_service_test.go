package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthapp/ledger-api/internal/domain"
)

func junePeriod(t *testing.T) domain.BudgetPeriod {
	t.Helper()
	period, err := domain.NewBudgetPeriod(
		domain.BudgetPeriodMonthly,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return period
}

func categorizedExpense(t *testing.T, categoryID uuid.UUID, amount string, day int) domain.Transaction {
	t.Helper()
	tx, err := domain.NewTransaction(
		uuid.New(), mustMoney(t, amount), "Groceries",
		time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC), domain.TransactionStatusPosted)
	require.NoError(t, err)
	tx.CategoryID = &categoryID
	return tx
}

func TestGetBudgetSummary(t *testing.T) {
	ctx := context.Background()
	period := junePeriod(t)
	groceries := uuid.New()

	t.Run("recomputes spent from transaction history", func(t *testing.T) {
		budget, err := domain.NewBudget(period, groceries, mustMoney(t, "500.00"), mustMoney(t, "50.00"))
		require.NoError(t, err)

		budgets := new(MockBudgetStore)
		budgets.On("ListByPeriod", ctx, period).Return([]domain.Budget{budget}, nil)

		txs := new(MockTransactionStore)
		txs.On("ListByCategoryAndDateRange", ctx, groceries, period.Start, period.End).
			Return([]domain.Transaction{
				categorizedExpense(t, groceries, "-120.00", 5),
				categorizedExpense(t, groceries, "-80.00", 20),
			}, nil)

		svc := NewBudgetService(nil, budgets, txs, nil)
		summary, err := svc.GetBudgetSummary(ctx, period)

		require.NoError(t, err)
		require.Len(t, summary.Budgets, 1)
		assert.Equal(t, "200.00", summary.Budgets[0].SpentAmount.String())
		assert.Equal(t, "550.00", summary.TotalBudgeted.String())
		assert.Equal(t, "350.00", summary.TotalRemaining.String())
	})

	t.Run("empty period yields an empty summary", func(t *testing.T) {
		budgets := new(MockBudgetStore)
		budgets.On("ListByPeriod", ctx, period).Return([]domain.Budget{}, nil)

		svc := NewBudgetService(nil, budgets, new(MockTransactionStore), nil)
		summary, err := svc.GetBudgetSummary(ctx, period)

		require.NoError(t, err)
		assert.Empty(t, summary.Budgets)
		assert.True(t, summary.TotalBudgeted.IsZero())
	})

	t.Run("wraps store failures in a ServiceError", func(t *testing.T) {
		budgets := new(MockBudgetStore)
		budgets.On("ListByPeriod", ctx, period).
			Return(nil, errors.New("connection refused"))

		svc := NewBudgetService(nil, budgets, new(MockTransactionStore), nil)
		_, err := svc.GetBudgetSummary(ctx, period)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "budget", svcErr.Service)
	})
}

func TestPriorPeriod(t *testing.T) {
	tests := []struct {
		name      string
		period    domain.BudgetPeriod
		wantOK    bool
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name: "monthly steps back one calendar month",
			period: domain.BudgetPeriod{
				Type:  domain.BudgetPeriodMonthly,
				Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			},
			wantOK:    true,
			wantStart: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "biweekly steps back its own length",
			period: domain.BudgetPeriod{
				Type:  domain.BudgetPeriodBiWeekly,
				Start: time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC),
			},
			wantOK:    true,
			wantStart: time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "semimonthly first half steps to the prior month's 16th",
			period: domain.BudgetPeriod{
				Type:  domain.BudgetPeriodSemiMonthly,
				Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			},
			wantOK:    true,
			wantStart: time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "semimonthly second half steps to the month's 1st",
			period: domain.BudgetPeriod{
				Type:  domain.BudgetPeriodSemiMonthly,
				Start: time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			},
			wantOK:    true,
			wantStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "weekly steps back seven days",
			period: domain.BudgetPeriod{
				Type:  domain.BudgetPeriodWeekly,
				Start: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			},
			wantOK:    true,
			wantStart: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "custom has no predecessor",
			period: domain.BudgetPeriod{
				Type:  domain.BudgetPeriodCustom,
				Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prior, ok := priorPeriod(tt.period)

			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.True(t, prior.Start.Equal(tt.wantStart),
				"Start = %s, want %s", prior.Start, tt.wantStart)
			assert.True(t, prior.End.Equal(tt.wantEnd),
				"End = %s, want %s", prior.End, tt.wantEnd)
			assert.Equal(t, tt.period.Type, prior.Type)
		})
	}
}
