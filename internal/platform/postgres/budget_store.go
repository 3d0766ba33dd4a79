package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
	"github.com/hearthapp/ledger-api/internal/store"
)

const budgetColumns = `id, category_id, period_type, period_start, period_end,
	budgeted_amount, spent_amount, rollover_amount, notes, created_at, updated_at`

// BudgetStore implements store.BudgetStore over PostgreSQL. The
// (category_id, period_type, period_start) unique index makes upserts
// idempotent per logical period.
type BudgetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewBudgetStore creates a PostgreSQL-backed budget store.
func NewBudgetStore(db store.DBTX, logger *slog.Logger) *BudgetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BudgetStore{
		db:     db,
		logger: logger.With(slog.String("component", "budget_store")),
	}
}

// Ensure BudgetStore implements store.BudgetStore
var _ store.BudgetStore = (*BudgetStore)(nil)

// WithTx implements store.BudgetStore.WithTx
func (s *BudgetStore) WithTx(tx *sql.Tx) store.BudgetStore {
	return &BudgetStore{db: tx, logger: s.logger}
}

// Create implements store.BudgetStore.Create
func (s *BudgetStore) Create(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		budget.ID,
		budget.CategoryID,
		string(budget.Period.Type),
		budget.Period.Start,
		budget.Period.End,
		budget.BudgetedAmount,
		budget.SpentAmount,
		budget.RolloverAmount,
		budget.Notes,
		budget.CreatedAt,
		budget.UpdatedAt,
	)
	if err != nil {
		logger.FromContext(ctx).Error("failed to create budget",
			slog.String("budget_id", budget.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// GetByID implements store.BudgetStore.GetByID
func (s *BudgetStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1`
	budget, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return domain.Budget{}, fmt.Errorf("%w: %v", store.ErrBudgetNotFound, err)
		}
		return domain.Budget{}, MapError(err)
	}
	return budget, nil
}

// GetByCategoryAndPeriod implements store.BudgetStore.GetByCategoryAndPeriod
func (s *BudgetStore) GetByCategoryAndPeriod(
	ctx context.Context,
	categoryID uuid.UUID,
	period domain.BudgetPeriod,
) (domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE category_id = $1 AND period_type = $2 AND period_start = $3
	`
	budget, err := scanBudget(s.db.QueryRowContext(ctx, query,
		categoryID, string(period.Type), period.Start))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return domain.Budget{}, fmt.Errorf("%w: %v", store.ErrBudgetNotFound, err)
		}
		return domain.Budget{}, MapError(err)
	}
	return budget, nil
}

// ListByPeriod implements store.BudgetStore.ListByPeriod
func (s *BudgetStore) ListByPeriod(ctx context.Context, period domain.BudgetPeriod) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE period_type = $1 AND period_start = $2
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, string(period.Type), period.Start)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, MapError(err)
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return budgets, nil
}

// Update implements store.BudgetStore.Update
func (s *BudgetStore) Update(ctx context.Context, budget domain.Budget) error {
	query := `
		UPDATE budgets
		SET budgeted_amount = $2, spent_amount = $3, rollover_amount = $4,
			notes = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		budget.ID,
		budget.BudgetedAmount,
		budget.SpentAmount,
		budget.RolloverAmount,
		budget.Notes,
		budget.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row rowScanner) (domain.Budget, error) {
	var (
		budget     domain.Budget
		periodType string
	)
	err := row.Scan(
		&budget.ID,
		&budget.CategoryID,
		&periodType,
		&budget.Period.Start,
		&budget.Period.End,
		&budget.BudgetedAmount,
		&budget.SpentAmount,
		&budget.RolloverAmount,
		&budget.Notes,
		&budget.CreatedAt,
		&budget.UpdatedAt,
	)
	if err != nil {
		return domain.Budget{}, err
	}
	budget.Period.Type = domain.BudgetPeriodType(periodType)
	return budget, nil
}
