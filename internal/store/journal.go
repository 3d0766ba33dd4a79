package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
)

// JournalEntryStore defines the persistence port for journal entries.
// Entries are append-only: no update or delete methods exist.
type JournalEntryStore interface {
	// CreateMultiple appends every entry of a journal entry set. Must run
	// through WithTx inside the same RunInTransaction as the transaction
	// and account writes it belongs to.
	CreateMultiple(ctx context.Context, entries []domain.JournalEntry) error

	// ListByTransaction retrieves the entries recorded for a transaction.
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.JournalEntry, error)

	// WithTx returns a JournalEntryStore bound to the given transaction.
	WithTx(tx *sql.Tx) JournalEntryStore
}
