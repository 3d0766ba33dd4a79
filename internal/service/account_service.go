package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/domain/ledger"
	"github.com/hearthapp/ledger-api/internal/domain/money"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
	"github.com/hearthapp/ledger-api/internal/store"
)

// CreateAccountCommand is the flat, validated input for opening an account.
type CreateAccountCommand struct {
	Name           string
	Type           domain.AccountType
	Institution    string
	LastFour       string
	Currency       money.Currency
	OpeningBalance money.Money
}

// AccountService manages the account aggregate's lifecycle.
type AccountService interface {
	// CreateAccount opens a new account with its current balance equal to
	// the opening balance.
	CreateAccount(ctx context.Context, cmd CreateAccountCommand) (domain.Account, error)

	// GetAccount retrieves an account by id.
	GetAccount(ctx context.Context, id uuid.UUID) (domain.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// DeactivateAccount soft-deactivates an account. Accounts are never
	// physically deleted.
	DeactivateAccount(ctx context.Context, id uuid.UUID) (domain.Account, error)

	// ReactivateAccount reverses a deactivation.
	ReactivateAccount(ctx context.Context, id uuid.UUID) (domain.Account, error)

	// RecalculateBalance repairs balance drift by recomputing the current
	// balance from the full transaction history.
	RecalculateBalance(ctx context.Context, id uuid.UUID) (domain.Account, error)
}

type accountService struct {
	db       *sql.DB
	accounts store.AccountStore
	txs      store.TransactionStore
	balances ledger.BalanceService
	logger   *slog.Logger
}

// NewAccountService creates an AccountService over the given stores.
func NewAccountService(
	db *sql.DB,
	accounts store.AccountStore,
	txs store.TransactionStore,
	log *slog.Logger,
) AccountService {
	if log == nil {
		log = slog.Default()
	}
	return &accountService{
		db:       db,
		accounts: accounts,
		txs:      txs,
		balances: ledger.NewBalanceService(),
		logger:   log.With(slog.String("component", "account_service")),
	}
}

func (s *accountService) CreateAccount(ctx context.Context, cmd CreateAccountCommand) (domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := domain.NewAccount(
		cmd.Name, cmd.Type, cmd.Institution, cmd.LastFour, cmd.Currency, cmd.OpeningBalance)
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		log.Error("failed to create account",
			slog.String("name", cmd.Name),
			slog.String("error", err.Error()))
		return domain.Account{}, NewServiceError("account", "create", "failed to save account", err)
	}

	log.Info("account created",
		slog.String("account_id", account.ID.String()),
		slog.String("type", string(account.Type)))
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

func (s *accountService) DeactivateAccount(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	deactivated := account.Deactivate()
	if err := s.accounts.Update(ctx, deactivated); err != nil {
		return domain.Account{}, NewServiceError("account", "deactivate", "failed to update account", err)
	}
	return deactivated, nil
}

func (s *accountService) ReactivateAccount(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	reactivated := account.Reactivate()
	if err := s.accounts.Update(ctx, reactivated); err != nil {
		return domain.Account{}, NewServiceError("account", "reactivate", "failed to update account", err)
	}
	return reactivated, nil
}

func (s *accountService) RecalculateBalance(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var repaired domain.Account
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)
		txStore := s.txs.WithTx(tx)

		account, err := accounts.GetByID(ctx, id)
		if err != nil {
			return err
		}

		history, err := txStore.ListByAccount(ctx, id)
		if err != nil {
			return NewServiceError("account", "recalculate", "failed to load transaction history", err)
		}

		repaired = s.balances.RecalculateBalance(account, history)
		if repaired.CurrentBalance.Equal(account.CurrentBalance) {
			repaired = account
			return nil
		}

		log.Warn("balance drift repaired",
			slog.String("account_id", id.String()),
			slog.String("stored_balance", account.CurrentBalance.String()),
			slog.String("recalculated_balance", repaired.CurrentBalance.String()))
		return accounts.Update(ctx, repaired)
	})
	if err != nil {
		return domain.Account{}, err
	}
	return repaired, nil
}
