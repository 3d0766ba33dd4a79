package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/domain/money"
)

// CompleteReconciliationResult carries the completed reconciliation plus
// every matched transaction flipped from cleared to reconciled.
type CompleteReconciliationResult struct {
	Reconciliation domain.Reconciliation
	Transactions   []domain.Transaction
}

// ReconciliationService matches cleared transactions against a bank
// statement until the computed difference is zero.
type ReconciliationService interface {
	// Start opens a reconciliation with zero cleared balance.
	Start(accountID uuid.UUID, statementDate time.Time, statementBalance money.Money) (domain.Reconciliation, error)

	// Match folds one transaction into the cleared balance.
	Match(rec domain.Reconciliation, tx domain.Transaction) (domain.Reconciliation, error)

	// MatchAll folds a batch of transactions. A single failure aborts the
	// whole batch; the partial result is discarded, never applied.
	MatchAll(rec domain.Reconciliation, txs []domain.Transaction) (domain.Reconciliation, error)

	// Unmatch removes a previously matched transaction.
	Unmatch(rec domain.Reconciliation, tx domain.Transaction) (domain.Reconciliation, error)

	// Complete finishes the reconciliation (difference must be exactly
	// zero) and transitions every matched transaction from cleared to
	// reconciled, linking it to the reconciliation.
	Complete(rec domain.Reconciliation, matched []domain.Transaction, now time.Time) (CompleteReconciliationResult, error)

	// Abandon terminally abandons an in-progress reconciliation.
	Abandon(rec domain.Reconciliation) (domain.Reconciliation, error)
}

// NewReconciliationService returns the standard reconciliation service.
func NewReconciliationService() ReconciliationService {
	return reconciliationService{}
}

type reconciliationService struct{}

func (reconciliationService) Start(
	accountID uuid.UUID,
	statementDate time.Time,
	statementBalance money.Money,
) (domain.Reconciliation, error) {
	return domain.NewReconciliation(accountID, statementDate, statementBalance)
}

func (reconciliationService) Match(rec domain.Reconciliation, tx domain.Transaction) (domain.Reconciliation, error) {
	return rec.WithMatch(tx)
}

func (reconciliationService) MatchAll(rec domain.Reconciliation, txs []domain.Transaction) (domain.Reconciliation, error) {
	result := rec
	for _, tx := range txs {
		var err error
		result, err = result.WithMatch(tx)
		if err != nil {
			return domain.Reconciliation{}, err
		}
	}
	return result, nil
}

func (reconciliationService) Unmatch(rec domain.Reconciliation, tx domain.Transaction) (domain.Reconciliation, error) {
	return rec.WithUnmatch(tx)
}

func (reconciliationService) Complete(
	rec domain.Reconciliation,
	matched []domain.Transaction,
	now time.Time,
) (CompleteReconciliationResult, error) {
	completed, err := rec.WithCompleted(now)
	if err != nil {
		return CompleteReconciliationResult{}, err
	}

	reconciled := make([]domain.Transaction, 0, len(matched))
	for _, tx := range matched {
		next, err := tx.WithStatus(domain.TransactionStatusReconciled)
		if err != nil {
			return CompleteReconciliationResult{}, err
		}
		reconciled = append(reconciled, next.WithReconciliation(rec.ID))
	}

	return CompleteReconciliationResult{
		Reconciliation: completed,
		Transactions:   reconciled,
	}, nil
}

func (reconciliationService) Abandon(rec domain.Reconciliation) (domain.Reconciliation, error) {
	return rec.WithAbandoned()
}
