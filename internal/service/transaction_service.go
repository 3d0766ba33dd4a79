package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/domain/ledger"
	"github.com/hearthapp/ledger-api/internal/domain/money"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
	"github.com/hearthapp/ledger-api/internal/store"
)

// CreateTransactionCommand is the flat, validated input for posting a
// transaction. Amount is signed: negative for expenses, positive for
// income.
type CreateTransactionCommand struct {
	AccountID    uuid.UUID
	MerchantID   *uuid.UUID
	CategoryID   *uuid.UUID
	Amount       money.Money
	Description  string
	Memo         string
	PostedAt     time.Time
	AuthorizedAt *time.Time
	ExternalID   string
	CheckNumber  string
	Tags         []string
	Pending      bool
}

// TransactionService exposes the transaction posting use cases.
type TransactionService interface {
	// CreateTransaction posts a transaction and persists the transaction,
	// its journal entries, and the updated account atomically.
	CreateTransaction(ctx context.Context, cmd CreateTransactionCommand) (domain.Transaction, error)

	// UpdateTransactionAmount changes a pending transaction's amount and
	// applies the delta to the account balance.
	UpdateTransactionAmount(ctx context.Context, id uuid.UUID, newAmount money.Money) (domain.Transaction, error)

	// SettleTransaction transitions a pending transaction to posted and
	// persists the journal entry deferred at creation.
	SettleTransaction(ctx context.Context, id uuid.UUID) (domain.Transaction, error)

	// ClearTransaction transitions a posted transaction to cleared, making
	// it eligible for statement reconciliation.
	ClearTransaction(ctx context.Context, id uuid.UUID) (domain.Transaction, error)

	// VoidTransaction voids a transaction and reverses its balance impact.
	VoidTransaction(ctx context.Context, id uuid.UUID) (domain.Transaction, error)

	// GetTransaction retrieves a transaction by id.
	GetTransaction(ctx context.Context, id uuid.UUID) (domain.Transaction, error)

	// ListTransactions retrieves an account's transactions posted within
	// [from, to] inclusive.
	ListTransactions(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]domain.Transaction, error)
}

type transactionService struct {
	db       *sql.DB
	accounts store.AccountStore
	txs      store.TransactionStore
	journal  store.JournalEntryStore
	posting  ledger.TransactionService
	logger   *slog.Logger
}

// NewTransactionService creates a TransactionService over the given stores.
func NewTransactionService(
	db *sql.DB,
	accounts store.AccountStore,
	txs store.TransactionStore,
	journal store.JournalEntryStore,
	log *slog.Logger,
) TransactionService {
	if log == nil {
		log = slog.Default()
	}
	return &transactionService{
		db:       db,
		accounts: accounts,
		txs:      txs,
		journal:  journal,
		posting:  ledger.NewTransactionService(),
		logger:   log.With(slog.String("component", "transaction_service")),
	}
}

func (s *transactionService) CreateTransaction(ctx context.Context, cmd CreateTransactionCommand) (domain.Transaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created domain.Transaction
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)
		txStore := s.txs.WithTx(tx)
		journal := s.journal.WithTx(tx)

		account, err := accounts.GetByID(ctx, cmd.AccountID)
		if err != nil {
			return err
		}

		input := ledger.CreateTransactionInput{
			MerchantID:   cmd.MerchantID,
			CategoryID:   cmd.CategoryID,
			Amount:       cmd.Amount,
			Description:  cmd.Description,
			Memo:         cmd.Memo,
			PostedAt:     cmd.PostedAt,
			AuthorizedAt: cmd.AuthorizedAt,
			ExternalID:   cmd.ExternalID,
			CheckNumber:  cmd.CheckNumber,
			Tags:         cmd.Tags,
		}

		var result ledger.TransactionResult
		if cmd.Pending {
			result, err = s.posting.CreatePending(account, input)
		} else {
			result, err = s.posting.Create(account, input)
		}
		if err != nil {
			return err
		}

		if err := txStore.Create(ctx, result.Transaction); err != nil {
			return NewServiceError("transaction", "create", "failed to save transaction", err)
		}
		if len(result.Entries.Entries) > 0 {
			if err := journal.CreateMultiple(ctx, result.Entries.Entries); err != nil {
				return NewServiceError("transaction", "create", "failed to save journal entries", err)
			}
		}
		if err := accounts.Update(ctx, result.Account); err != nil {
			return NewServiceError("transaction", "create", "failed to update account balance", err)
		}

		created = result.Transaction
		return nil
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	log.Info("transaction created",
		slog.String("transaction_id", created.ID.String()),
		slog.String("account_id", cmd.AccountID.String()),
		slog.String("amount", created.Amount.String()))
	return created, nil
}

func (s *transactionService) UpdateTransactionAmount(
	ctx context.Context,
	id uuid.UUID,
	newAmount money.Money,
) (domain.Transaction, error) {
	var updated domain.Transaction
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)
		txStore := s.txs.WithTx(tx)

		existing, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}
		account, err := accounts.GetByID(ctx, existing.AccountID)
		if err != nil {
			return err
		}

		result, err := s.posting.UpdateAmount(account, existing, newAmount)
		if err != nil {
			return err
		}

		if err := txStore.Update(ctx, result.Transaction); err != nil {
			return NewServiceError("transaction", "update_amount", "failed to save transaction", err)
		}
		if err := accounts.Update(ctx, result.Account); err != nil {
			return NewServiceError("transaction", "update_amount", "failed to update account balance", err)
		}

		updated = result.Transaction
		return nil
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	return updated, nil
}

func (s *transactionService) SettleTransaction(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var settled domain.Transaction
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)
		txStore := s.txs.WithTx(tx)
		journal := s.journal.WithTx(tx)

		existing, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}
		account, err := accounts.GetByID(ctx, existing.AccountID)
		if err != nil {
			return err
		}

		result, err := s.posting.Settle(account, existing)
		if err != nil {
			return err
		}

		if err := txStore.Update(ctx, result.Transaction); err != nil {
			return NewServiceError("transaction", "settle", "failed to save transaction", err)
		}
		if err := journal.CreateMultiple(ctx, result.Entries.Entries); err != nil {
			return NewServiceError("transaction", "settle", "failed to save journal entries", err)
		}

		settled = result.Transaction
		return nil
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	log.Info("transaction settled",
		slog.String("transaction_id", settled.ID.String()))
	return settled, nil
}

func (s *transactionService) ClearTransaction(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	existing, err := s.txs.GetByID(ctx, id)
	if err != nil {
		return domain.Transaction{}, err
	}

	cleared, err := s.posting.Clear(existing)
	if err != nil {
		return domain.Transaction{}, err
	}

	if err := s.txs.Update(ctx, cleared); err != nil {
		return domain.Transaction{}, NewServiceError("transaction", "clear", "failed to save transaction", err)
	}
	return cleared, nil
}

func (s *transactionService) VoidTransaction(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var voided domain.Transaction
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)
		txStore := s.txs.WithTx(tx)

		existing, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}
		account, err := accounts.GetByID(ctx, existing.AccountID)
		if err != nil {
			return err
		}

		result, err := s.posting.Void(account, existing)
		if err != nil {
			return err
		}

		if err := txStore.Update(ctx, result.Transaction); err != nil {
			return NewServiceError("transaction", "void", "failed to save transaction", err)
		}
		if err := accounts.Update(ctx, result.Account); err != nil {
			return NewServiceError("transaction", "void", "failed to update account balance", err)
		}

		voided = result.Transaction
		return nil
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	log.Info("transaction voided",
		slog.String("transaction_id", voided.ID.String()))
	return voided, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	return s.txs.GetByID(ctx, id)
}

func (s *transactionService) ListTransactions(
	ctx context.Context,
	accountID uuid.UUID,
	from, to time.Time,
) ([]domain.Transaction, error) {
	return s.txs.ListByDateRange(ctx, accountID, from, to)
}
