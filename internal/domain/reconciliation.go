package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain/money"
)

// ReconciliationStatus is the lifecycle state of a statement reconciliation.
// in_progress is the only non-terminal state.
type ReconciliationStatus string

const (
	ReconciliationInProgress ReconciliationStatus = "in_progress"
	ReconciliationCompleted  ReconciliationStatus = "completed"
	ReconciliationAbandoned  ReconciliationStatus = "abandoned"
)

// ParseReconciliationStatus validates a reconciliation status string.
func ParseReconciliationStatus(s string) (ReconciliationStatus, error) {
	st := ReconciliationStatus(s)
	switch st {
	case ReconciliationInProgress, ReconciliationCompleted, ReconciliationAbandoned:
		return st, nil
	default:
		return "", NewValidationError("status", "unknown reconciliation status: "+s, nil)
	}
}

// Reconciliation matches an account's cleared transactions against a bank
// statement. Difference is always StatementBalance - ClearedBalance;
// completion requires it to be exactly zero.
type Reconciliation struct {
	ID                    uuid.UUID            `json:"id"`
	AccountID             uuid.UUID            `json:"account_id"`
	StatementDate         time.Time            `json:"statement_date"`
	StatementBalance      money.Money          `json:"statement_balance"`
	ClearedBalance        money.Money          `json:"cleared_balance"`
	Difference            money.Money          `json:"difference"`
	Status                ReconciliationStatus `json:"status"`
	MatchedTransactionIDs []uuid.UUID          `json:"matched_transaction_ids"`
	Notes                 string               `json:"notes,omitempty"`
	CompletedAt           *time.Time           `json:"completed_at,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

// NewReconciliation opens a reconciliation with zero cleared balance, so
// the initial difference equals the statement balance.
func NewReconciliation(accountID uuid.UUID, statementDate time.Time, statementBalance money.Money) (Reconciliation, error) {
	if accountID == uuid.Nil {
		return Reconciliation{}, NewValidationError("account_id", "cannot be empty", nil)
	}
	if statementDate.IsZero() {
		return Reconciliation{}, NewValidationError("statement_date", "cannot be zero", nil)
	}
	now := time.Now().UTC()
	return Reconciliation{
		ID:               uuid.New(),
		AccountID:        accountID,
		StatementDate:    statementDate,
		StatementBalance: statementBalance,
		ClearedBalance:   money.Zero(),
		Difference:       statementBalance,
		Status:           ReconciliationInProgress,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// InProgress reports whether matching and completion are still legal.
func (r Reconciliation) InProgress() bool {
	return r.Status == ReconciliationInProgress
}

// IsMatched reports whether a transaction id is already matched.
func (r Reconciliation) IsMatched(transactionID uuid.UUID) bool {
	for _, id := range r.MatchedTransactionIDs {
		if id == transactionID {
			return true
		}
	}
	return false
}

// WithMatch returns a copy with the transaction's amount folded into the
// cleared balance and its id appended to the matched list.
// Fails unless in progress; fails on a double match; only cleared
// transactions are matchable, so the cleared→reconciled flip at completion
// cannot fail on status.
func (r Reconciliation) WithMatch(tx Transaction) (Reconciliation, error) {
	if !r.InProgress() {
		return Reconciliation{}, NewBusinessRuleError(
			"reconciliation-in-progress",
			"cannot match transactions on a "+string(r.Status)+" reconciliation",
		)
	}
	if tx.Status != TransactionStatusCleared {
		return Reconciliation{}, NewBusinessRuleError(
			"reconciliation-cleared-only",
			"transaction "+tx.ID.String()+" is "+string(tx.Status)+", only cleared transactions can be matched",
		)
	}
	if r.IsMatched(tx.ID) {
		return Reconciliation{}, NewBusinessRuleError(
			"reconciliation-single-match",
			"transaction "+tx.ID.String()+" is already matched",
		)
	}
	r.ClearedBalance = r.ClearedBalance.Add(tx.Amount)
	r.Difference = r.StatementBalance.Sub(r.ClearedBalance)
	r.MatchedTransactionIDs = append(append([]uuid.UUID(nil), r.MatchedTransactionIDs...), tx.ID)
	r.UpdatedAt = time.Now().UTC()
	return r, nil
}

// WithUnmatch is the symmetric subtraction of WithMatch.
func (r Reconciliation) WithUnmatch(tx Transaction) (Reconciliation, error) {
	if !r.InProgress() {
		return Reconciliation{}, NewBusinessRuleError(
			"reconciliation-in-progress",
			"cannot unmatch transactions on a "+string(r.Status)+" reconciliation",
		)
	}
	if !r.IsMatched(tx.ID) {
		return Reconciliation{}, NewBusinessRuleError(
			"reconciliation-single-match",
			"transaction "+tx.ID.String()+" is not matched",
		)
	}
	remaining := make([]uuid.UUID, 0, len(r.MatchedTransactionIDs)-1)
	for _, id := range r.MatchedTransactionIDs {
		if id != tx.ID {
			remaining = append(remaining, id)
		}
	}
	r.ClearedBalance = r.ClearedBalance.Sub(tx.Amount)
	r.Difference = r.StatementBalance.Sub(r.ClearedBalance)
	r.MatchedTransactionIDs = remaining
	r.UpdatedAt = time.Now().UTC()
	return r, nil
}

// WithCompleted returns a completed copy. Fails unless in progress with a
// difference of exactly zero.
func (r Reconciliation) WithCompleted(completedAt time.Time) (Reconciliation, error) {
	if !r.InProgress() {
		return Reconciliation{}, NewBusinessRuleError(
			"reconciliation-in-progress",
			"cannot complete a "+string(r.Status)+" reconciliation",
		)
	}
	if !r.Difference.IsZero() {
		return Reconciliation{}, NewBusinessRuleError(
			"reconciliation-zero-difference",
			"difference is "+r.Difference.String()+", must be exactly zero",
		)
	}
	at := completedAt.UTC()
	r.Status = ReconciliationCompleted
	r.CompletedAt = &at
	r.UpdatedAt = at
	return r, nil
}

// WithAbandoned returns an abandoned copy. Fails unless in progress.
func (r Reconciliation) WithAbandoned() (Reconciliation, error) {
	if !r.InProgress() {
		return Reconciliation{}, NewBusinessRuleError(
			"reconciliation-in-progress",
			"cannot abandon a "+string(r.Status)+" reconciliation",
		)
	}
	r.Status = ReconciliationAbandoned
	r.UpdatedAt = time.Now().UTC()
	return r, nil
}
