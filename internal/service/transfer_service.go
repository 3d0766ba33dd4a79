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

// ExecuteTransferCommand is the flat, validated input for moving funds
// between two accounts. Amount is a positive magnitude.
type ExecuteTransferCommand struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        money.Money
	Description   string
	PostedAt      time.Time
}

// TransferService executes inter-account transfers.
type TransferService interface {
	// ExecuteTransfer moves funds between two accounts, persisting both
	// transaction legs, the balanced journal entry pair, and both updated
	// accounts in one unit of work.
	ExecuteTransfer(ctx context.Context, cmd ExecuteTransferCommand) (domain.Transfer, error)
}

type transferService struct {
	db        *sql.DB
	accounts  store.AccountStore
	txs       store.TransactionStore
	journal   store.JournalEntryStore
	transfers ledger.TransferService
	logger    *slog.Logger
}

// NewTransferService creates a TransferService over the given stores.
func NewTransferService(
	db *sql.DB,
	accounts store.AccountStore,
	txs store.TransactionStore,
	journal store.JournalEntryStore,
	log *slog.Logger,
) TransferService {
	if log == nil {
		log = slog.Default()
	}
	return &transferService{
		db:        db,
		accounts:  accounts,
		txs:       txs,
		journal:   journal,
		transfers: ledger.NewTransferService(),
		logger:    log.With(slog.String("component", "transfer_service")),
	}
}

func (s *transferService) ExecuteTransfer(ctx context.Context, cmd ExecuteTransferCommand) (domain.Transfer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var transfer domain.Transfer
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)
		txStore := s.txs.WithTx(tx)
		journal := s.journal.WithTx(tx)

		from, err := accounts.GetByID(ctx, cmd.FromAccountID)
		if err != nil {
			return err
		}
		to, err := accounts.GetByID(ctx, cmd.ToAccountID)
		if err != nil {
			return err
		}

		result, err := s.transfers.Execute(from, to, cmd.Amount, cmd.Description, cmd.PostedAt)
		if err != nil {
			return err
		}

		legs := []domain.Transaction{result.Transfer.Withdrawal, result.Transfer.Deposit}
		if err := txStore.CreateMultiple(ctx, legs); err != nil {
			return NewServiceError("transfer", "execute", "failed to save transfer legs", err)
		}
		if err := journal.CreateMultiple(ctx, result.Entries.Entries); err != nil {
			return NewServiceError("transfer", "execute", "failed to save journal entries", err)
		}
		if err := accounts.Update(ctx, result.FromAccount); err != nil {
			return NewServiceError("transfer", "execute", "failed to update source account", err)
		}
		if err := accounts.Update(ctx, result.ToAccount); err != nil {
			return NewServiceError("transfer", "execute", "failed to update destination account", err)
		}

		transfer = result.Transfer
		return nil
	})
	if err != nil {
		return domain.Transfer{}, err
	}

	log.Info("transfer executed",
		slog.String("transfer_id", transfer.ID.String()),
		slog.String("from_account_id", cmd.FromAccountID.String()),
		slog.String("to_account_id", cmd.ToAccountID.String()),
		slog.String("amount", transfer.Amount.String()))
	return transfer, nil
}
