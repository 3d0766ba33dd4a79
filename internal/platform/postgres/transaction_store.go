package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
	"github.com/hearthapp/ledger-api/internal/store"
)

const transactionColumns = `id, account_id, merchant_id, category_id, amount,
	description, memo, posted_at, authorized_at, status, external_id,
	check_number, tags, receipt_url, reconciliation_id, created_at, updated_at`

// TransactionStore implements store.TransactionStore over PostgreSQL.
type TransactionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTransactionStore creates a PostgreSQL-backed transaction store.
func NewTransactionStore(db store.DBTX, logger *slog.Logger) *TransactionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionStore{
		db:     db,
		logger: logger.With(slog.String("component", "transaction_store")),
	}
}

// Ensure TransactionStore implements store.TransactionStore
var _ store.TransactionStore = (*TransactionStore)(nil)

// WithTx implements store.TransactionStore.WithTx
func (s *TransactionStore) WithTx(tx *sql.Tx) store.TransactionStore {
	return &TransactionStore{db: tx, logger: s.logger}
}

// Create implements store.TransactionStore.Create
func (s *TransactionStore) Create(ctx context.Context, tx domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	tags, err := json.Marshal(tx.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query,
		tx.ID,
		tx.AccountID,
		nullableUUID(tx.MerchantID),
		nullableUUID(tx.CategoryID),
		tx.Amount,
		tx.Description,
		tx.Memo,
		tx.PostedAt,
		nullableTime(tx.AuthorizedAt),
		string(tx.Status),
		tx.ExternalID,
		tx.CheckNumber,
		tags,
		tx.ReceiptURL,
		nullableUUID(tx.ReconciliationID),
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		logger.FromContext(ctx).Error("failed to create transaction",
			slog.String("transaction_id", tx.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// CreateMultiple implements store.TransactionStore.CreateMultiple
func (s *TransactionStore) CreateMultiple(ctx context.Context, txs []domain.Transaction) error {
	for _, tx := range txs {
		if err := s.Create(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

// GetByID implements store.TransactionStore.GetByID
func (s *TransactionStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return domain.Transaction{}, fmt.Errorf("%w: %v", store.ErrTransactionNotFound, err)
		}
		return domain.Transaction{}, MapError(err)
	}
	return tx, nil
}

// Update implements store.TransactionStore.Update
func (s *TransactionStore) Update(ctx context.Context, tx domain.Transaction) error {
	query := `
		UPDATE transactions
		SET merchant_id = $2, category_id = $3, amount = $4, description = $5,
			memo = $6, posted_at = $7, authorized_at = $8, status = $9,
			external_id = $10, check_number = $11, tags = $12,
			receipt_url = $13, reconciliation_id = $14, updated_at = $15
		WHERE id = $1
	`
	tags, err := json.Marshal(tx.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query,
		tx.ID,
		nullableUUID(tx.MerchantID),
		nullableUUID(tx.CategoryID),
		tx.Amount,
		tx.Description,
		tx.Memo,
		tx.PostedAt,
		nullableTime(tx.AuthorizedAt),
		string(tx.Status),
		tx.ExternalID,
		tx.CheckNumber,
		tags,
		tx.ReceiptURL,
		nullableUUID(tx.ReconciliationID),
		tx.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrTransactionNotFound
	}
	return nil
}

// UpdateMultiple implements store.TransactionStore.UpdateMultiple
func (s *TransactionStore) UpdateMultiple(ctx context.Context, txs []domain.Transaction) error {
	for _, tx := range txs {
		if err := s.Update(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

// ListByAccount implements store.TransactionStore.ListByAccount
func (s *TransactionStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY posted_at DESC, created_at DESC
	`
	return s.queryTransactions(ctx, query, accountID)
}

// ListByDateRange implements store.TransactionStore.ListByDateRange
func (s *TransactionStore) ListByDateRange(
	ctx context.Context,
	accountID uuid.UUID,
	from, to time.Time,
) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1 AND posted_at >= $2 AND posted_at <= $3
		ORDER BY posted_at DESC, created_at DESC
	`
	return s.queryTransactions(ctx, query, accountID, from, to)
}

// ListByCategoryAndDateRange implements store.TransactionStore.ListByCategoryAndDateRange
func (s *TransactionStore) ListByCategoryAndDateRange(
	ctx context.Context,
	categoryID uuid.UUID,
	from, to time.Time,
) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE category_id = $1 AND posted_at >= $2 AND posted_at <= $3
		ORDER BY posted_at DESC, created_at DESC
	`
	return s.queryTransactions(ctx, query, categoryID, from, to)
}

// ListByIDs implements store.TransactionStore.ListByIDs
func (s *TransactionStore) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Transaction, error) {
	txs := make([]domain.Transaction, 0, len(ids))
	for _, id := range ids {
		tx, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (s *TransactionStore) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, MapError(err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return txs, nil
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		tx               domain.Transaction
		merchantID       uuid.NullUUID
		categoryID       uuid.NullUUID
		reconciliationID uuid.NullUUID
		authorizedAt     sql.NullTime
		status           string
		tags             []byte
	)
	err := row.Scan(
		&tx.ID,
		&tx.AccountID,
		&merchantID,
		&categoryID,
		&tx.Amount,
		&tx.Description,
		&tx.Memo,
		&tx.PostedAt,
		&authorizedAt,
		&status,
		&tx.ExternalID,
		&tx.CheckNumber,
		&tags,
		&tx.ReceiptURL,
		&reconciliationID,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return domain.Transaction{}, err
	}

	tx.Status = domain.TransactionStatus(status)
	if merchantID.Valid {
		id := merchantID.UUID
		tx.MerchantID = &id
	}
	if categoryID.Valid {
		id := categoryID.UUID
		tx.CategoryID = &id
	}
	if reconciliationID.Valid {
		id := reconciliationID.UUID
		tx.ReconciliationID = &id
	}
	if authorizedAt.Valid {
		at := authorizedAt.Time
		tx.AuthorizedAt = &at
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &tx.Tags); err != nil {
			return domain.Transaction{}, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	return tx, nil
}

func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
