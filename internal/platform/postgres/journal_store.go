package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
	"github.com/hearthapp/ledger-api/internal/store"
)

// JournalEntryStore implements store.JournalEntryStore over PostgreSQL.
// The journal_entries table is append-only; no update or delete statement
// exists in this package.
type JournalEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewJournalEntryStore creates a PostgreSQL-backed journal entry store.
func NewJournalEntryStore(db store.DBTX, logger *slog.Logger) *JournalEntryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JournalEntryStore{
		db:     db,
		logger: logger.With(slog.String("component", "journal_entry_store")),
	}
}

// Ensure JournalEntryStore implements store.JournalEntryStore
var _ store.JournalEntryStore = (*JournalEntryStore)(nil)

// WithTx implements store.JournalEntryStore.WithTx
func (s *JournalEntryStore) WithTx(tx *sql.Tx) store.JournalEntryStore {
	return &JournalEntryStore{db: tx, logger: s.logger}
}

// CreateMultiple implements store.JournalEntryStore.CreateMultiple
func (s *JournalEntryStore) CreateMultiple(ctx context.Context, entries []domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (id, transaction_id, account_id, debit,
			credit, entry_date, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, entry := range entries {
		_, err := s.db.ExecContext(ctx, query,
			entry.ID,
			entry.TransactionID,
			entry.AccountID,
			entry.Debit,
			entry.Credit,
			entry.EntryDate,
			entry.Memo,
			entry.CreatedAt,
		)
		if err != nil {
			logger.FromContext(ctx).Error("failed to create journal entry",
				slog.String("entry_id", entry.ID.String()),
				slog.String("error", err.Error()))
			return MapError(err)
		}
	}
	return nil
}

// ListByTransaction implements store.JournalEntryStore.ListByTransaction
func (s *JournalEntryStore) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.JournalEntry, error) {
	query := `
		SELECT id, transaction_id, account_id, debit, credit, entry_date,
			memo, created_at
		FROM journal_entries
		WHERE transaction_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.JournalEntry
	for rows.Next() {
		var entry domain.JournalEntry
		err := rows.Scan(
			&entry.ID,
			&entry.TransactionID,
			&entry.AccountID,
			&entry.Debit,
			&entry.Credit,
			&entry.EntryDate,
			&entry.Memo,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return entries, nil
}
