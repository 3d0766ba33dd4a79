package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
)

// ReconciliationStore defines the persistence port for reconciliations.
type ReconciliationStore interface {
	// Create saves a new reconciliation.
	Create(ctx context.Context, rec domain.Reconciliation) error

	// GetByID retrieves a reconciliation by id.
	// Returns ErrReconciliationNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Reconciliation, error)

	// Update replaces the stored state of an existing reconciliation.
	// Returns ErrReconciliationNotFound if it does not exist.
	Update(ctx context.Context, rec domain.Reconciliation) error

	// WithTx returns a ReconciliationStore bound to the given transaction.
	WithTx(tx *sql.Tx) ReconciliationStore
}
