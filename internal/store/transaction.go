package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
)

// TransactionStore defines the persistence port for transactions.
// Transactions are never deleted; voiding is an Update.
type TransactionStore interface {
	// Create saves a new transaction.
	Create(ctx context.Context, tx domain.Transaction) error

	// CreateMultiple saves several transactions. Callers that need the
	// writes to be atomic (both legs of a transfer) must run this through
	// WithTx inside RunInTransaction.
	CreateMultiple(ctx context.Context, txs []domain.Transaction) error

	// GetByID retrieves a transaction by id.
	// Returns ErrTransactionNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error)

	// Update replaces the stored state of an existing transaction.
	// Returns ErrTransactionNotFound if it does not exist.
	Update(ctx context.Context, tx domain.Transaction) error

	// UpdateMultiple updates several transactions; used by reconciliation
	// completion to flip every matched transaction at once.
	UpdateMultiple(ctx context.Context, txs []domain.Transaction) error

	// ListByAccount retrieves every transaction of an account, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)

	// ListByDateRange retrieves an account's transactions with posted_at in
	// [from, to] inclusive.
	ListByDateRange(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]domain.Transaction, error)

	// ListByCategoryAndDateRange retrieves all transactions of a category
	// with posted_at in [from, to] inclusive, across accounts.
	ListByCategoryAndDateRange(ctx context.Context, categoryID uuid.UUID, from, to time.Time) ([]domain.Transaction, error)

	// ListByIDs retrieves the transactions with the given ids. Missing ids
	// surface as ErrTransactionNotFound.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Transaction, error)

	// WithTx returns a TransactionStore bound to the given transaction.
	WithTx(tx *sql.Tx) TransactionStore
}
