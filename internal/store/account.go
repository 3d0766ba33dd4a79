package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
)

// AccountStore defines the persistence port for accounts.
// Accounts are never deleted; deactivation is an Update.
type AccountStore interface {
	// Create saves a new account.
	Create(ctx context.Context, account domain.Account) error

	// GetByID retrieves an account by id.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Account, error)

	// List retrieves all accounts, active and inactive, ordered by name.
	List(ctx context.Context) ([]domain.Account, error)

	// Update replaces the stored state of an existing account.
	// Returns ErrAccountNotFound if the account does not exist.
	Update(ctx context.Context, account domain.Account) error

	// WithTx returns an AccountStore bound to the given transaction, for
	// use inside RunInTransaction.
	WithTx(tx *sql.Tx) AccountStore
}
