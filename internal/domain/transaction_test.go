package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain/money"
)

func TestNewTransaction(t *testing.T) {
	t.Parallel()

	accountID := uuid.New()
	postedAt := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	tx, err := NewTransaction(accountID, mustMoney(t, "-45.99"), "Groceries", postedAt, TransactionStatusPosted)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tx.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if tx.Status != TransactionStatusPosted {
		t.Errorf("Status = %s, want posted", tx.Status)
	}
	if !tx.AffectsBalance() {
		t.Error("Posted transaction should affect balance")
	}

	// validation failures
	if _, err := NewTransaction(uuid.Nil, mustMoney(t, "1"), "x", postedAt, TransactionStatusPosted); !errors.Is(err, ErrValidation) {
		t.Errorf("nil account: expected ErrValidation, got %v", err)
	}
	if _, err := NewTransaction(accountID, money.Zero(), "x", postedAt, TransactionStatusPosted); !errors.Is(err, ErrValidation) {
		t.Errorf("zero amount: expected ErrValidation, got %v", err)
	}
	if _, err := NewTransaction(accountID, mustMoney(t, "1"), "", postedAt, TransactionStatusPosted); !errors.Is(err, ErrValidation) {
		t.Errorf("empty description: expected ErrValidation, got %v", err)
	}
}

// TestStatusTransitions exercises every (from, to) pair of the status
// machine against the documented transition table.
func TestStatusTransitions(t *testing.T) {
	t.Parallel()

	all := []TransactionStatus{
		TransactionStatusPending,
		TransactionStatusPosted,
		TransactionStatusCleared,
		TransactionStatusReconciled,
		TransactionStatusVoid,
	}

	allowed := map[TransactionStatus]map[TransactionStatus]bool{
		TransactionStatusPending: {
			TransactionStatusPosted: true,
			TransactionStatusVoid:   true,
		},
		TransactionStatusPosted: {
			TransactionStatusCleared: true,
			TransactionStatusVoid:    true,
		},
		TransactionStatusCleared: {
			TransactionStatusReconciled: true,
			TransactionStatusVoid:       true,
		},
		TransactionStatusReconciled: {},
		TransactionStatusVoid:       {},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestWithStatus(t *testing.T) {
	t.Parallel()

	tx, err := NewTransaction(uuid.New(), mustMoney(t, "-10"), "Coffee", time.Now(), TransactionStatusPending)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}

	posted, err := tx.WithStatus(TransactionStatusPosted)
	if err != nil {
		t.Fatalf("pending -> posted should be legal: %v", err)
	}
	if posted.Status != TransactionStatusPosted {
		t.Errorf("Status = %s, want posted", posted.Status)
	}
	if tx.Status != TransactionStatusPending {
		t.Error("WithStatus mutated the original transaction")
	}

	// pending cannot jump straight to cleared
	if _, err := tx.WithStatus(TransactionStatusCleared); !errors.Is(err, ErrBusinessRule) {
		t.Errorf("pending -> cleared: expected ErrBusinessRule, got %v", err)
	}

	// reconciled is terminal
	cleared, err := posted.WithStatus(TransactionStatusCleared)
	if err != nil {
		t.Fatalf("posted -> cleared failed: %v", err)
	}
	reconciled, err := cleared.WithStatus(TransactionStatusReconciled)
	if err != nil {
		t.Fatalf("cleared -> reconciled failed: %v", err)
	}
	if _, err := reconciled.WithStatus(TransactionStatusVoid); !errors.Is(err, ErrBusinessRule) {
		t.Errorf("reconciled -> void: expected ErrBusinessRule, got %v", err)
	}
}

func TestWithAmountPendingOnly(t *testing.T) {
	t.Parallel()

	pending, err := NewTransaction(uuid.New(), mustMoney(t, "-10"), "Dinner", time.Now(), TransactionStatusPending)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}

	updated, err := pending.WithAmount(mustMoney(t, "-12.50"))
	if err != nil {
		t.Fatalf("WithAmount on pending failed: %v", err)
	}
	if !updated.Amount.Equal(mustMoney(t, "-12.50")) {
		t.Errorf("Amount = %s, want -12.50", updated.Amount)
	}

	if _, err := pending.WithAmount(money.Zero()); !errors.Is(err, ErrValidation) {
		t.Errorf("zero amount: expected ErrValidation, got %v", err)
	}

	posted, err := pending.WithStatus(TransactionStatusPosted)
	if err != nil {
		t.Fatalf("pending -> posted failed: %v", err)
	}
	if _, err := posted.WithAmount(mustMoney(t, "-99")); !errors.Is(err, ErrBusinessRule) {
		t.Errorf("WithAmount on posted: expected ErrBusinessRule, got %v", err)
	}
}

func TestAffectsBalance(t *testing.T) {
	t.Parallel()

	tx, err := NewTransaction(uuid.New(), mustMoney(t, "-10"), "Lunch", time.Now(), TransactionStatusPosted)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	voided, err := tx.WithStatus(TransactionStatusVoid)
	if err != nil {
		t.Fatalf("posted -> void failed: %v", err)
	}
	if voided.AffectsBalance() {
		t.Error("Void transaction must not affect balance")
	}
}

func TestTags(t *testing.T) {
	t.Parallel()

	tx, err := NewTransaction(uuid.New(), mustMoney(t, "100"), "Paycheck", time.Now(), TransactionStatusPosted)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}

	tagged := tx.WithTags(TransferTag, TransferCorrelationTag(uuid.New()))
	if !tagged.HasTag(TransferTag) {
		t.Error("Expected transfer tag")
	}
	if tx.HasTag(TransferTag) {
		t.Error("WithTags mutated the original transaction")
	}
}

func TestWithReconciliation(t *testing.T) {
	t.Parallel()

	tx, err := NewTransaction(uuid.New(), mustMoney(t, "-5"), "Fee", time.Now(), TransactionStatusPosted)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	recID := uuid.New()
	linked := tx.WithReconciliation(recID)
	if linked.ReconciliationID == nil || *linked.ReconciliationID != recID {
		t.Error("WithReconciliation did not set the reconciliation id")
	}
	if tx.ReconciliationID != nil {
		t.Error("WithReconciliation mutated the original transaction")
	}
}
