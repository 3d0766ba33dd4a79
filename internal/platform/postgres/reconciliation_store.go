package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
	"github.com/hearthapp/ledger-api/internal/store"
)

const reconciliationColumns = `id, account_id, statement_date, statement_balance,
	cleared_balance, difference, status, matched_transaction_ids, notes,
	completed_at, created_at, updated_at`

// ReconciliationStore implements store.ReconciliationStore over PostgreSQL.
type ReconciliationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReconciliationStore creates a PostgreSQL-backed reconciliation store.
func NewReconciliationStore(db store.DBTX, logger *slog.Logger) *ReconciliationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconciliationStore{
		db:     db,
		logger: logger.With(slog.String("component", "reconciliation_store")),
	}
}

// Ensure ReconciliationStore implements store.ReconciliationStore
var _ store.ReconciliationStore = (*ReconciliationStore)(nil)

// WithTx implements store.ReconciliationStore.WithTx
func (s *ReconciliationStore) WithTx(tx *sql.Tx) store.ReconciliationStore {
	return &ReconciliationStore{db: tx, logger: s.logger}
}

// Create implements store.ReconciliationStore.Create
func (s *ReconciliationStore) Create(ctx context.Context, rec domain.Reconciliation) error {
	query := `
		INSERT INTO reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	matched, err := json.Marshal(rec.MatchedTransactionIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal matched transaction ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query,
		rec.ID,
		rec.AccountID,
		rec.StatementDate,
		rec.StatementBalance,
		rec.ClearedBalance,
		rec.Difference,
		string(rec.Status),
		matched,
		rec.Notes,
		nullableTime(rec.CompletedAt),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		logger.FromContext(ctx).Error("failed to create reconciliation",
			slog.String("reconciliation_id", rec.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// GetByID implements store.ReconciliationStore.GetByID
func (s *ReconciliationStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Reconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliations WHERE id = $1`
	rec, err := scanReconciliation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return domain.Reconciliation{}, fmt.Errorf("%w: %v", store.ErrReconciliationNotFound, err)
		}
		return domain.Reconciliation{}, MapError(err)
	}
	return rec, nil
}

// Update implements store.ReconciliationStore.Update
func (s *ReconciliationStore) Update(ctx context.Context, rec domain.Reconciliation) error {
	query := `
		UPDATE reconciliations
		SET statement_date = $2, statement_balance = $3, cleared_balance = $4,
			difference = $5, status = $6, matched_transaction_ids = $7,
			notes = $8, completed_at = $9, updated_at = $10
		WHERE id = $1
	`
	matched, err := json.Marshal(rec.MatchedTransactionIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal matched transaction ids: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.StatementDate,
		rec.StatementBalance,
		rec.ClearedBalance,
		rec.Difference,
		string(rec.Status),
		matched,
		rec.Notes,
		nullableTime(rec.CompletedAt),
		rec.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrReconciliationNotFound
	}
	return nil
}

func scanReconciliation(row rowScanner) (domain.Reconciliation, error) {
	var (
		rec         domain.Reconciliation
		status      string
		matched     []byte
		completedAt sql.NullTime
	)
	err := row.Scan(
		&rec.ID,
		&rec.AccountID,
		&rec.StatementDate,
		&rec.StatementBalance,
		&rec.ClearedBalance,
		&rec.Difference,
		&status,
		&matched,
		&rec.Notes,
		&completedAt,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return domain.Reconciliation{}, err
	}

	rec.Status = domain.ReconciliationStatus(status)
	if completedAt.Valid {
		at := completedAt.Time
		rec.CompletedAt = &at
	}
	if len(matched) > 0 {
		if err := json.Unmarshal(matched, &rec.MatchedTransactionIDs); err != nil {
			return domain.Reconciliation{}, fmt.Errorf("failed to unmarshal matched transaction ids: %w", err)
		}
	}
	return rec, nil
}
