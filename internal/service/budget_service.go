package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/domain/ledger"
	"github.com/hearthapp/ledger-api/internal/domain/money"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
	"github.com/hearthapp/ledger-api/internal/store"
)

// UpsertBudgetCommand is the flat, validated input for creating or
// updating a category's budget in one period.
type UpsertBudgetCommand struct {
	Period         domain.BudgetPeriod
	CategoryID     uuid.UUID
	BudgetedAmount money.Money
}

// BudgetService exposes the budgeting use cases.
type BudgetService interface {
	// UpsertBudget updates the budgeted amount for an existing
	// (category, period) budget or creates a new one. New budgets carry
	// the prior period's remaining amount forward as rollover.
	UpsertBudget(ctx context.Context, cmd UpsertBudgetCommand) (domain.Budget, error)

	// GetBudgetSummary recomputes spent for every budget of the period
	// from transaction history and aggregates the totals.
	GetBudgetSummary(ctx context.Context, period domain.BudgetPeriod) (ledger.BudgetSummary, error)
}

type budgetService struct {
	db      *sql.DB
	budgets store.BudgetStore
	txs     store.TransactionStore
	engine  ledger.BudgetService
	logger  *slog.Logger
}

// NewBudgetService creates a BudgetService over the given stores.
func NewBudgetService(
	db *sql.DB,
	budgets store.BudgetStore,
	txs store.TransactionStore,
	log *slog.Logger,
) BudgetService {
	if log == nil {
		log = slog.Default()
	}
	return &budgetService{
		db:      db,
		budgets: budgets,
		txs:     txs,
		engine:  ledger.NewBudgetService(),
		logger:  log.With(slog.String("component", "budget_service")),
	}
}

func (s *budgetService) UpsertBudget(ctx context.Context, cmd UpsertBudgetCommand) (domain.Budget, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var saved domain.Budget
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		budgets := s.budgets.WithTx(tx)
		txStore := s.txs.WithTx(tx)

		var existing *domain.Budget
		found, err := budgets.GetByCategoryAndPeriod(ctx, cmd.CategoryID, cmd.Period)
		switch {
		case err == nil:
			existing = &found
		case errors.Is(err, store.ErrNotFound):
			// first budget for this category+period
		default:
			return NewServiceError("budget", "upsert", "failed to look up budget", err)
		}

		budget, err := s.engine.Upsert(cmd.Period, cmd.CategoryID, cmd.BudgetedAmount, existing)
		if err != nil {
			return err
		}

		if existing != nil {
			saved = budget
			return budgets.Update(ctx, budget)
		}

		rollover, err := s.priorPeriodRemaining(ctx, budgets, txStore, cmd.CategoryID, cmd.Period)
		if err != nil {
			return err
		}
		budget.RolloverAmount = rollover

		saved = budget
		return budgets.Create(ctx, budget)
	})
	if err != nil {
		return domain.Budget{}, err
	}

	log.Info("budget upserted",
		slog.String("budget_id", saved.ID.String()),
		slog.String("category_id", cmd.CategoryID.String()),
		slog.String("period", cmd.Period.Key()))
	return saved, nil
}

func (s *budgetService) GetBudgetSummary(ctx context.Context, period domain.BudgetPeriod) (ledger.BudgetSummary, error) {
	budgets, err := s.budgets.ListByPeriod(ctx, period)
	if err != nil {
		return ledger.BudgetSummary{}, NewServiceError("budget", "summary", "failed to list budgets", err)
	}

	var transactions []domain.Transaction
	for _, b := range budgets {
		txs, err := s.txs.ListByCategoryAndDateRange(ctx, b.CategoryID, period.Start, period.End)
		if err != nil {
			return ledger.BudgetSummary{}, NewServiceError("budget", "summary", "failed to list transactions", err)
		}
		transactions = append(transactions, txs...)
	}

	return s.engine.Summary(period, budgets, transactions), nil
}

// priorPeriodRemaining computes the rollover for a new budget: the
// remaining amount of the same category's budget in the immediately
// preceding period, with its spent recomputed from transaction history.
// Budgets without a predecessor roll nothing over.
func (s *budgetService) priorPeriodRemaining(
	ctx context.Context,
	budgets store.BudgetStore,
	txStore store.TransactionStore,
	categoryID uuid.UUID,
	period domain.BudgetPeriod,
) (money.Money, error) {
	prior, ok := priorPeriod(period)
	if !ok {
		return money.Zero(), nil
	}

	prev, err := budgets.GetByCategoryAndPeriod(ctx, categoryID, prior)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return money.Zero(), nil
		}
		return money.Money{}, NewServiceError("budget", "upsert", "failed to look up prior budget", err)
	}

	txs, err := txStore.ListByCategoryAndDateRange(ctx, categoryID, prior.Start, prior.End)
	if err != nil {
		return money.Money{}, NewServiceError("budget", "upsert", "failed to list prior transactions", err)
	}

	spent := s.engine.CalculateSpent(txs, categoryID, prior)
	return prev.WithSpent(spent).RemainingAmount(), nil
}

// priorPeriod derives the immediately preceding period of the same type.
// Custom periods have no well-defined predecessor.
func priorPeriod(period domain.BudgetPeriod) (domain.BudgetPeriod, bool) {
	switch period.Type {
	case domain.BudgetPeriodMonthly:
		return domain.BudgetPeriod{
			Type:  period.Type,
			Start: period.Start.AddDate(0, -1, 0),
			End:   period.Start.AddDate(0, 0, -1),
		}, true
	case domain.BudgetPeriodSemiMonthly:
		// Semimonthly halves run 1st-15th and 16th-end of month, so the
		// prior start is calendar-derived; a fixed 15-day step would miss
		// the 16th boundary in 31-day months.
		prevEnd := period.Start.AddDate(0, 0, -1)
		startDay := 1
		if prevEnd.Day() >= 16 {
			startDay = 16
		}
		return domain.BudgetPeriod{
			Type: period.Type,
			Start: time.Date(prevEnd.Year(), prevEnd.Month(), startDay,
				0, 0, 0, 0, prevEnd.Location()),
			End: prevEnd,
		}, true
	case domain.BudgetPeriodWeekly, domain.BudgetPeriodBiWeekly, domain.BudgetPeriodPayPeriod:
		length := int(period.End.Sub(period.Start).Hours()/24) + 1
		return domain.BudgetPeriod{
			Type:  period.Type,
			Start: period.Start.AddDate(0, 0, -length),
			End:   period.Start.AddDate(0, 0, -1),
		}, true
	default:
		return domain.BudgetPeriod{}, false
	}
}
