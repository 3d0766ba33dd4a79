package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain/money"
)

// TransactionStatus is the lifecycle state of a posted financial event.
//
// Legal transitions:
//
//	pending → posted | void
//	posted  → cleared | void
//	cleared → reconciled | void
//	reconciled, void: terminal
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusPosted     TransactionStatus = "posted"
	TransactionStatusCleared    TransactionStatus = "cleared"
	TransactionStatusReconciled TransactionStatus = "reconciled"
	TransactionStatusVoid       TransactionStatus = "void"
)

// ParseTransactionStatus validates a transaction status string.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	st := TransactionStatus(s)
	switch st {
	case TransactionStatusPending, TransactionStatusPosted,
		TransactionStatusCleared, TransactionStatusReconciled,
		TransactionStatusVoid:
		return st, nil
	default:
		return "", NewValidationError("status", "unknown transaction status: "+s, nil)
	}
}

// CanTransitionTo reports whether the status machine permits moving from s
// to target. This single exhaustive switch is the only encoding of the
// transition table; every status change goes through it.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	switch s {
	case TransactionStatusPending:
		return target == TransactionStatusPosted || target == TransactionStatusVoid
	case TransactionStatusPosted:
		return target == TransactionStatusCleared || target == TransactionStatusVoid
	case TransactionStatusCleared:
		return target == TransactionStatusReconciled || target == TransactionStatusVoid
	case TransactionStatusReconciled, TransactionStatusVoid:
		return false
	default:
		return false
	}
}

// Transaction is one posted financial event against a single account.
// Amount is signed: negative for expenses/withdrawals, positive for
// income/deposits. Amount is mutable only while the status is pending.
type Transaction struct {
	ID               uuid.UUID         `json:"id"`
	AccountID        uuid.UUID         `json:"account_id"`
	MerchantID       *uuid.UUID        `json:"merchant_id,omitempty"`
	CategoryID       *uuid.UUID        `json:"category_id,omitempty"`
	Amount           money.Money       `json:"amount"`
	Description      string            `json:"description"`
	Memo             string            `json:"memo,omitempty"`
	PostedAt         time.Time         `json:"posted_at"`
	AuthorizedAt     *time.Time        `json:"authorized_at,omitempty"`
	Status           TransactionStatus `json:"status"`
	ExternalID       string            `json:"external_id,omitempty"`
	CheckNumber      string            `json:"check_number,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	ReceiptURL       string            `json:"receipt_url,omitempty"`
	ReconciliationID *uuid.UUID        `json:"reconciliation_id,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewTransaction creates a Transaction in the given initial status.
// Returns a ValidationError if the amount is zero or the description empty.
func NewTransaction(
	accountID uuid.UUID,
	amount money.Money,
	description string,
	postedAt time.Time,
	status TransactionStatus,
) (Transaction, error) {
	if accountID == uuid.Nil {
		return Transaction{}, NewValidationError("account_id", "cannot be empty", nil)
	}
	if amount.IsZero() {
		return Transaction{}, NewValidationError("amount", "cannot be zero", nil)
	}
	if description == "" {
		return Transaction{}, NewValidationError("description", "cannot be empty", nil)
	}
	if _, err := ParseTransactionStatus(string(status)); err != nil {
		return Transaction{}, err
	}

	now := time.Now().UTC()
	return Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		Amount:      amount,
		Description: description,
		PostedAt:    postedAt,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// AffectsBalance reports whether this transaction contributes to its
// account's current balance. Only void transactions do not.
func (t Transaction) AffectsBalance() bool {
	return t.Status != TransactionStatusVoid
}

// WithStatus returns a copy of the transaction in the target status.
// Returns a BusinessRuleError if the status machine forbids the transition.
func (t Transaction) WithStatus(target TransactionStatus) (Transaction, error) {
	if !t.Status.CanTransitionTo(target) {
		return Transaction{}, NewBusinessRuleError(
			"transaction-status-transition",
			"cannot transition from "+string(t.Status)+" to "+string(target),
		)
	}
	t.Status = target
	t.UpdatedAt = time.Now().UTC()
	return t, nil
}

// WithAmount returns a copy with a new amount. Only legal while pending.
func (t Transaction) WithAmount(amount money.Money) (Transaction, error) {
	if t.Status != TransactionStatusPending {
		return Transaction{}, NewBusinessRuleError(
			"transaction-amount-mutable-while-pending",
			"amount can only change while status is pending, not "+string(t.Status),
		)
	}
	if amount.IsZero() {
		return Transaction{}, NewValidationError("amount", "cannot be zero", nil)
	}
	t.Amount = amount
	t.UpdatedAt = time.Now().UTC()
	return t, nil
}

// WithReconciliation returns a copy linked to the given reconciliation.
func (t Transaction) WithReconciliation(reconciliationID uuid.UUID) Transaction {
	id := reconciliationID
	t.ReconciliationID = &id
	t.UpdatedAt = time.Now().UTC()
	return t
}

// WithTags returns a copy carrying the given tags.
func (t Transaction) WithTags(tags ...string) Transaction {
	t.Tags = append([]string(nil), tags...)
	t.UpdatedAt = time.Now().UTC()
	return t
}

// HasTag reports whether the transaction carries the given tag.
func (t Transaction) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}
