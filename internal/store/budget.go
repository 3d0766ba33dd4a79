package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
)

// BudgetStore defines the persistence port for budgets. Budgets are unique
// per (category, period type, period start); Create returns ErrDuplicate
// on a second insert for the same key.
type BudgetStore interface {
	// Create saves a new budget.
	Create(ctx context.Context, budget domain.Budget) error

	// GetByID retrieves a budget by id.
	// Returns ErrBudgetNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Budget, error)

	// GetByCategoryAndPeriod retrieves the budget for one category and
	// period key. Returns ErrBudgetNotFound if none exists.
	GetByCategoryAndPeriod(ctx context.Context, categoryID uuid.UUID, period domain.BudgetPeriod) (domain.Budget, error)

	// ListByPeriod retrieves every budget of one period.
	ListByPeriod(ctx context.Context, period domain.BudgetPeriod) ([]domain.Budget, error)

	// Update replaces the stored state of an existing budget.
	// Returns ErrBudgetNotFound if it does not exist.
	Update(ctx context.Context, budget domain.Budget) error

	// WithTx returns a BudgetStore bound to the given transaction.
	WithTx(tx *sql.Tx) BudgetStore
}
