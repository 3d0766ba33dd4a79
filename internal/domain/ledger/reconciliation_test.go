package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
)

func clearedTx(t *testing.T, amount string) domain.Transaction {
	t.Helper()
	tx, err := domain.NewTransaction(uuid.New(), mustMoney(t, amount), "statement item", time.Now().UTC(), domain.TransactionStatusCleared)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	return tx
}

// TestReconciliationScenario walks the worked example: a $500 statement
// matched by cleared transactions summing to $500 completes, and every
// matched transaction flips from cleared to reconciled.
func TestReconciliationScenario(t *testing.T) {
	t.Parallel()

	svc := NewReconciliationService()
	accountID := uuid.New()

	rec, err := svc.Start(accountID, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), mustMoney(t, "500"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !rec.Difference.Equal(mustMoney(t, "500")) {
		t.Errorf("Initial difference = %s, want 500.00", rec.Difference)
	}

	deposits := []domain.Transaction{
		clearedTx(t, "650"),
		clearedTx(t, "-150"),
	}

	matched, err := svc.MatchAll(rec, deposits)
	if err != nil {
		t.Fatalf("MatchAll failed: %v", err)
	}
	if !matched.ClearedBalance.Equal(mustMoney(t, "500")) {
		t.Errorf("ClearedBalance = %s, want 500.00", matched.ClearedBalance)
	}
	if !matched.Difference.IsZero() {
		t.Errorf("Difference = %s, want zero", matched.Difference)
	}

	result, err := svc.Complete(matched, deposits, time.Now().UTC())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if result.Reconciliation.Status != domain.ReconciliationCompleted {
		t.Errorf("Status = %s, want completed", result.Reconciliation.Status)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("Expected 2 flipped transactions, got %d", len(result.Transactions))
	}
	for _, tx := range result.Transactions {
		if tx.Status != domain.TransactionStatusReconciled {
			t.Errorf("Transaction %s status = %s, want reconciled", tx.ID, tx.Status)
		}
		if tx.ReconciliationID == nil || *tx.ReconciliationID != matched.ID {
			t.Errorf("Transaction %s not linked to the reconciliation", tx.ID)
		}
	}
}

// TestPostedTransactionLifecycleReconciles walks the full path an ordinary
// transaction takes to reconciliation: posted at creation, cleared against
// the statement, matched to zero difference, completed.
func TestPostedTransactionLifecycleReconciles(t *testing.T) {
	t.Parallel()

	posting := NewTransactionService()
	matching := NewReconciliationService()
	account := newTestAccount(t, "1000")

	created, err := posting.Create(account, CreateTransactionInput{
		Amount:      mustMoney(t, "-250"),
		Description: "Rent",
		PostedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cleared, err := posting.Clear(created.Transaction)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	rec, err := matching.Start(account.ID, time.Now().UTC(), mustMoney(t, "-250"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	matched, err := matching.Match(rec, cleared)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !matched.Difference.IsZero() {
		t.Fatalf("Difference = %s, want zero", matched.Difference)
	}

	result, err := matching.Complete(matched, []domain.Transaction{cleared}, time.Now().UTC())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if result.Transactions[0].Status != domain.TransactionStatusReconciled {
		t.Errorf("Status = %s, want reconciled", result.Transactions[0].Status)
	}
}

func TestMatchRequiresClearedTransaction(t *testing.T) {
	t.Parallel()

	svc := NewReconciliationService()
	rec, err := svc.Start(uuid.New(), time.Now().UTC(), mustMoney(t, "-250"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// posted transactions cannot be matched: they would pass matching but
	// break the cleared-to-reconciled flip at completion
	posted, err := domain.NewTransaction(uuid.New(), mustMoney(t, "-250"), "Rent", time.Now().UTC(), domain.TransactionStatusPosted)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	if _, err := svc.Match(rec, posted); !errors.Is(err, domain.ErrBusinessRule) {
		t.Errorf("matching a posted transaction: expected ErrBusinessRule, got %v", err)
	}

	pending, err := domain.NewTransaction(uuid.New(), mustMoney(t, "-250"), "Rent", time.Now().UTC(), domain.TransactionStatusPending)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	if _, err := svc.Match(rec, pending); !errors.Is(err, domain.ErrBusinessRule) {
		t.Errorf("matching a pending transaction: expected ErrBusinessRule, got %v", err)
	}
}

func TestCompleteRequiresZeroDifference(t *testing.T) {
	t.Parallel()

	svc := NewReconciliationService()
	rec, err := svc.Start(uuid.New(), time.Now().UTC(), mustMoney(t, "500"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	tx := clearedTx(t, "499.99")
	matched, err := svc.Match(rec, tx)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}

	// a one-cent gap blocks completion
	if _, err := svc.Complete(matched, []domain.Transaction{tx}, time.Now().UTC()); !errors.Is(err, domain.ErrBusinessRule) {
		t.Errorf("nonzero difference: expected ErrBusinessRule, got %v", err)
	}
}

func TestMatchAllIsAllOrNothing(t *testing.T) {
	t.Parallel()

	svc := NewReconciliationService()
	rec, err := svc.Start(uuid.New(), time.Now().UTC(), mustMoney(t, "100"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	tx := clearedTx(t, "60")
	matched, err := svc.Match(rec, tx)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}

	// the batch re-matches tx, so the whole batch must fail and the
	// partial result (the 40 match) must be discarded
	batch := []domain.Transaction{clearedTx(t, "40"), tx}
	if _, err := svc.MatchAll(matched, batch); !errors.Is(err, domain.ErrBusinessRule) {
		t.Errorf("batch with duplicate: expected ErrBusinessRule, got %v", err)
	}
	if !matched.ClearedBalance.Equal(mustMoney(t, "60")) {
		t.Errorf("ClearedBalance = %s, batch failure must not apply partially", matched.ClearedBalance)
	}
}

func TestUnmatchRestoresDifference(t *testing.T) {
	t.Parallel()

	svc := NewReconciliationService()
	rec, err := svc.Start(uuid.New(), time.Now().UTC(), mustMoney(t, "100"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	tx := clearedTx(t, "100")
	matched, err := svc.Match(rec, tx)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	unmatched, err := svc.Unmatch(matched, tx)
	if err != nil {
		t.Fatalf("Unmatch failed: %v", err)
	}
	if !unmatched.Difference.Equal(mustMoney(t, "100")) {
		t.Errorf("Difference after unmatch = %s, want 100.00", unmatched.Difference)
	}
}

func TestAbandon(t *testing.T) {
	t.Parallel()

	svc := NewReconciliationService()
	rec, err := svc.Start(uuid.New(), time.Now().UTC(), mustMoney(t, "100"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	abandoned, err := svc.Abandon(rec)
	if err != nil {
		t.Fatalf("Abandon failed: %v", err)
	}
	if abandoned.Status != domain.ReconciliationAbandoned {
		t.Errorf("Status = %s, want abandoned", abandoned.Status)
	}
	if _, err := svc.Abandon(abandoned); !errors.Is(err, domain.ErrBusinessRule) {
		t.Errorf("double abandon: expected ErrBusinessRule, got %v", err)
	}
}
