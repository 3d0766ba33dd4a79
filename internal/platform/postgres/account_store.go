package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/domain/money"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
	"github.com/hearthapp/ledger-api/internal/store"
)

// AccountStore implements store.AccountStore over PostgreSQL.
type AccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAccountStore creates a PostgreSQL-backed account store. The caller
// owns the connection. If logger is nil, the default logger is used.
func NewAccountStore(db store.DBTX, logger *slog.Logger) *AccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure AccountStore implements store.AccountStore
var _ store.AccountStore = (*AccountStore)(nil)

// WithTx implements store.AccountStore.WithTx
func (s *AccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &AccountStore{db: tx, logger: s.logger}
}

// Create implements store.AccountStore.Create
func (s *AccountStore) Create(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (id, name, type, institution, last_four, currency,
			opening_balance, current_balance, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		string(account.Type),
		account.Institution,
		account.LastFour,
		account.Currency.String(),
		account.OpeningBalance,
		account.CurrentBalance,
		account.Active,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		logger.FromContext(ctx).Error("failed to create account",
			slog.String("account_id", account.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// GetByID implements store.AccountStore.GetByID
func (s *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	query := `
		SELECT id, name, type, institution, last_four, currency,
			opening_balance, current_balance, active, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	account, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return domain.Account{}, fmt.Errorf("%w: %v", store.ErrAccountNotFound, err)
		}
		return domain.Account{}, MapError(err)
	}
	return account, nil
}

// List implements store.AccountStore.List
func (s *AccountStore) List(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT id, name, type, institution, last_four, currency,
			opening_balance, current_balance, active, created_at, updated_at
		FROM accounts
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, MapError(err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return accounts, nil
}

// Update implements store.AccountStore.Update
func (s *AccountStore) Update(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, type = $3, institution = $4, last_four = $5,
			currency = $6, opening_balance = $7, current_balance = $8,
			active = $9, updated_at = $10
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		string(account.Type),
		account.Institution,
		account.LastFour,
		account.Currency.String(),
		account.OpeningBalance,
		account.CurrentBalance,
		account.Active,
		account.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrAccountNotFound
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		account  domain.Account
		accType  string
		currency string
	)
	err := row.Scan(
		&account.ID,
		&account.Name,
		&accType,
		&account.Institution,
		&account.LastFour,
		&currency,
		&account.OpeningBalance,
		&account.CurrentBalance,
		&account.Active,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}
	account.Type = domain.AccountType(accType)
	account.Currency = money.Currency(currency)
	return account, nil
}
