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

// StartReconciliationCommand opens a new statement reconciliation.
type StartReconciliationCommand struct {
	AccountID        uuid.UUID
	StatementDate    time.Time
	StatementBalance money.Money
}

// ReconciliationService exposes the statement reconciliation use cases.
type ReconciliationService interface {
	// StartReconciliation opens a reconciliation against an existing account.
	StartReconciliation(ctx context.Context, cmd StartReconciliationCommand) (domain.Reconciliation, error)

	// GetReconciliation retrieves a reconciliation by id.
	GetReconciliation(ctx context.Context, id uuid.UUID) (domain.Reconciliation, error)

	// MatchTransactions folds a batch of transactions into the cleared
	// balance. A single failure aborts the batch without applying anything.
	MatchTransactions(ctx context.Context, reconciliationID uuid.UUID, transactionIDs []uuid.UUID) (domain.Reconciliation, error)

	// UnmatchTransaction removes a previously matched transaction.
	UnmatchTransaction(ctx context.Context, reconciliationID, transactionID uuid.UUID) (domain.Reconciliation, error)

	// CompleteReconciliation completes the reconciliation and flips every
	// matched transaction from cleared to reconciled, atomically.
	CompleteReconciliation(ctx context.Context, reconciliationID uuid.UUID) (domain.Reconciliation, error)

	// AbandonReconciliation terminally abandons an in-progress reconciliation.
	AbandonReconciliation(ctx context.Context, reconciliationID uuid.UUID) (domain.Reconciliation, error)
}

type reconciliationService struct {
	db       *sql.DB
	recs     store.ReconciliationStore
	accounts store.AccountStore
	txs      store.TransactionStore
	matching ledger.ReconciliationService
	logger   *slog.Logger
}

// NewReconciliationService creates a ReconciliationService over the given
// stores.
func NewReconciliationService(
	db *sql.DB,
	recs store.ReconciliationStore,
	accounts store.AccountStore,
	txs store.TransactionStore,
	log *slog.Logger,
) ReconciliationService {
	if log == nil {
		log = slog.Default()
	}
	return &reconciliationService{
		db:       db,
		recs:     recs,
		accounts: accounts,
		txs:      txs,
		matching: ledger.NewReconciliationService(),
		logger:   log.With(slog.String("component", "reconciliation_service")),
	}
}

func (s *reconciliationService) StartReconciliation(ctx context.Context, cmd StartReconciliationCommand) (domain.Reconciliation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.accounts.GetByID(ctx, cmd.AccountID); err != nil {
		if store.IsNotFoundError(err) {
			return domain.Reconciliation{}, err
		}
		return domain.Reconciliation{}, NewServiceError("reconciliation", "start", "failed to look up account", err)
	}

	rec, err := s.matching.Start(cmd.AccountID, cmd.StatementDate, cmd.StatementBalance)
	if err != nil {
		return domain.Reconciliation{}, err
	}

	if err := s.recs.Create(ctx, rec); err != nil {
		return domain.Reconciliation{}, NewServiceError("reconciliation", "start", "failed to save reconciliation", err)
	}

	log.Info("reconciliation started",
		slog.String("reconciliation_id", rec.ID.String()),
		slog.String("account_id", cmd.AccountID.String()),
		slog.String("statement_balance", cmd.StatementBalance.String()))
	return rec, nil
}

func (s *reconciliationService) GetReconciliation(ctx context.Context, id uuid.UUID) (domain.Reconciliation, error) {
	return s.recs.GetByID(ctx, id)
}

func (s *reconciliationService) MatchTransactions(ctx context.Context, reconciliationID uuid.UUID, transactionIDs []uuid.UUID) (domain.Reconciliation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var matched domain.Reconciliation
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		recs := s.recs.WithTx(tx)
		txStore := s.txs.WithTx(tx)

		rec, err := recs.GetByID(ctx, reconciliationID)
		if err != nil {
			return err
		}

		transactions, err := txStore.ListByIDs(ctx, transactionIDs)
		if err != nil {
			return err
		}

		matched, err = s.matching.MatchAll(rec, transactions)
		if err != nil {
			return err
		}

		return recs.Update(ctx, matched)
	})
	if err != nil {
		return domain.Reconciliation{}, err
	}

	log.Debug("transactions matched",
		slog.String("reconciliation_id", reconciliationID.String()),
		slog.Int("count", len(transactionIDs)),
		slog.String("difference", matched.Difference.String()))
	return matched, nil
}

func (s *reconciliationService) UnmatchTransaction(ctx context.Context, reconciliationID, transactionID uuid.UUID) (domain.Reconciliation, error) {
	var unmatched domain.Reconciliation
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		recs := s.recs.WithTx(tx)
		txStore := s.txs.WithTx(tx)

		rec, err := recs.GetByID(ctx, reconciliationID)
		if err != nil {
			return err
		}

		transaction, err := txStore.GetByID(ctx, transactionID)
		if err != nil {
			return err
		}

		unmatched, err = s.matching.Unmatch(rec, transaction)
		if err != nil {
			return err
		}

		return recs.Update(ctx, unmatched)
	})
	if err != nil {
		return domain.Reconciliation{}, err
	}
	return unmatched, nil
}

func (s *reconciliationService) CompleteReconciliation(ctx context.Context, reconciliationID uuid.UUID) (domain.Reconciliation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var completed domain.Reconciliation
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		recs := s.recs.WithTx(tx)
		txStore := s.txs.WithTx(tx)

		rec, err := recs.GetByID(ctx, reconciliationID)
		if err != nil {
			return err
		}

		matched, err := txStore.ListByIDs(ctx, rec.MatchedTransactionIDs)
		if err != nil {
			return err
		}

		result, err := s.matching.Complete(rec, matched, time.Now().UTC())
		if err != nil {
			return err
		}

		if err := recs.Update(ctx, result.Reconciliation); err != nil {
			return err
		}
		if err := txStore.UpdateMultiple(ctx, result.Transactions); err != nil {
			return err
		}

		completed = result.Reconciliation
		return nil
	})
	if err != nil {
		return domain.Reconciliation{}, err
	}

	log.Info("reconciliation completed",
		slog.String("reconciliation_id", reconciliationID.String()),
		slog.Int("matched_count", len(completed.MatchedTransactionIDs)))
	return completed, nil
}

func (s *reconciliationService) AbandonReconciliation(ctx context.Context, reconciliationID uuid.UUID) (domain.Reconciliation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var abandoned domain.Reconciliation
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		recs := s.recs.WithTx(tx)

		rec, err := recs.GetByID(ctx, reconciliationID)
		if err != nil {
			return err
		}

		abandoned, err = s.matching.Abandon(rec)
		if err != nil {
			return err
		}

		return recs.Update(ctx, abandoned)
	})
	if err != nil {
		return domain.Reconciliation{}, err
	}

	log.Info("reconciliation abandoned",
		slog.String("reconciliation_id", reconciliationID.String()))
	return abandoned, nil
}
