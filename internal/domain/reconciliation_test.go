package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain/money"
)

func newTestReconciliation(t *testing.T, statementBalance string) Reconciliation {
	t.Helper()
	rec, err := NewReconciliation(uuid.New(), time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), mustMoney(t, statementBalance))
	if err != nil {
		t.Fatalf("NewReconciliation failed: %v", err)
	}
	return rec
}

func newClearedTransaction(t *testing.T, amount string) Transaction {
	t.Helper()
	tx, err := NewTransaction(uuid.New(), mustMoney(t, amount), "statement item", time.Now(), TransactionStatusCleared)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	return tx
}

func TestNewReconciliation(t *testing.T) {
	t.Parallel()

	rec := newTestReconciliation(t, "500")
	if rec.Status != ReconciliationInProgress {
		t.Errorf("Status = %s, want in_progress", rec.Status)
	}
	if !rec.ClearedBalance.IsZero() {
		t.Error("New reconciliation should start with zero cleared balance")
	}
	if !rec.Difference.Equal(mustMoney(t, "500")) {
		t.Errorf("Initial difference = %s, want the statement balance", rec.Difference)
	}

	if _, err := NewReconciliation(uuid.Nil, time.Now(), money.Zero()); !errors.Is(err, ErrValidation) {
		t.Errorf("nil account: expected ErrValidation, got %v", err)
	}
	if _, err := NewReconciliation(uuid.New(), time.Time{}, money.Zero()); !errors.Is(err, ErrValidation) {
		t.Errorf("zero statement date: expected ErrValidation, got %v", err)
	}
}

func TestWithMatchAndUnmatch(t *testing.T) {
	t.Parallel()

	rec := newTestReconciliation(t, "100")
	tx := newClearedTransaction(t, "100")

	matched, err := rec.WithMatch(tx)
	if err != nil {
		t.Fatalf("WithMatch failed: %v", err)
	}
	if !matched.ClearedBalance.Equal(mustMoney(t, "100")) {
		t.Errorf("ClearedBalance = %s, want 100.00", matched.ClearedBalance)
	}
	if !matched.Difference.IsZero() {
		t.Errorf("Difference = %s, want zero", matched.Difference)
	}
	if !matched.IsMatched(tx.ID) {
		t.Error("Transaction should be in the matched list")
	}
	if rec.IsMatched(tx.ID) {
		t.Error("WithMatch mutated the original reconciliation")
	}

	// double-match is rejected
	if _, err := matched.WithMatch(tx); !errors.Is(err, ErrBusinessRule) {
		t.Errorf("double match: expected ErrBusinessRule, got %v", err)
	}

	unmatched, err := matched.WithUnmatch(tx)
	if err != nil {
		t.Fatalf("WithUnmatch failed: %v", err)
	}
	if !unmatched.ClearedBalance.IsZero() {
		t.Errorf("ClearedBalance after unmatch = %s, want zero", unmatched.ClearedBalance)
	}
	if unmatched.IsMatched(tx.ID) {
		t.Error("Transaction should no longer be matched")
	}

	// unmatching something never matched is rejected
	if _, err := rec.WithUnmatch(tx); !errors.Is(err, ErrBusinessRule) {
		t.Errorf("unmatch of unmatched: expected ErrBusinessRule, got %v", err)
	}
}

func TestWithMatchRejectsNonClearedStatuses(t *testing.T) {
	t.Parallel()

	rec := newTestReconciliation(t, "100")

	for _, status := range []TransactionStatus{
		TransactionStatusPending,
		TransactionStatusPosted,
		TransactionStatusReconciled,
		TransactionStatusVoid,
	} {
		tx, err := NewTransaction(uuid.New(), mustMoney(t, "100"), "statement item", time.Now(), status)
		if err != nil {
			t.Fatalf("NewTransaction failed: %v", err)
		}
		if _, err := rec.WithMatch(tx); !errors.Is(err, ErrBusinessRule) {
			t.Errorf("matching a %s transaction: expected ErrBusinessRule, got %v", status, err)
		}
	}
}

func TestWithCompleted(t *testing.T) {
	t.Parallel()

	rec := newTestReconciliation(t, "250")
	tx := newClearedTransaction(t, "250")

	// completion with nonzero difference is rejected
	if _, err := rec.WithCompleted(time.Now()); !errors.Is(err, ErrBusinessRule) {
		t.Errorf("nonzero difference: expected ErrBusinessRule, got %v", err)
	}

	matched, err := rec.WithMatch(tx)
	if err != nil {
		t.Fatalf("WithMatch failed: %v", err)
	}

	now := time.Now().UTC()
	completed, err := matched.WithCompleted(now)
	if err != nil {
		t.Fatalf("WithCompleted failed: %v", err)
	}
	if completed.Status != ReconciliationCompleted {
		t.Errorf("Status = %s, want completed", completed.Status)
	}
	if completed.CompletedAt == nil || !completed.CompletedAt.Equal(now) {
		t.Error("CompletedAt should be stamped")
	}

	// completed is terminal
	if _, err := completed.WithMatch(tx); !errors.Is(err, ErrBusinessRule) {
		t.Errorf("match on completed: expected ErrBusinessRule, got %v", err)
	}
	if _, err := completed.WithCompleted(now); !errors.Is(err, ErrBusinessRule) {
		t.Errorf("double complete: expected ErrBusinessRule, got %v", err)
	}
	if _, err := completed.WithAbandoned(); !errors.Is(err, ErrBusinessRule) {
		t.Errorf("abandon after complete: expected ErrBusinessRule, got %v", err)
	}
}

func TestWithAbandoned(t *testing.T) {
	t.Parallel()

	rec := newTestReconciliation(t, "75.25")
	abandoned, err := rec.WithAbandoned()
	if err != nil {
		t.Fatalf("WithAbandoned failed: %v", err)
	}
	if abandoned.Status != ReconciliationAbandoned {
		t.Errorf("Status = %s, want abandoned", abandoned.Status)
	}
	if _, err := abandoned.WithMatch(newClearedTransaction(t, "1")); !errors.Is(err, ErrBusinessRule) {
		t.Errorf("match on abandoned: expected ErrBusinessRule, got %v", err)
	}
}
