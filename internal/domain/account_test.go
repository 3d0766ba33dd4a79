package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain/money"
)

func mustMoney(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.FromString(s)
	if err != nil {
		t.Fatalf("money.FromString(%q) returned error: %v", s, err)
	}
	return m
}

func TestNewAccount(t *testing.T) {
	t.Parallel()

	opening := mustMoney(t, "1000.00")
	account, err := NewAccount("Everyday Checking", AccountTypeChecking, "First National", "1234", money.USD, opening)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if account.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if !account.Active {
		t.Error("New accounts should be active")
	}
	if !account.CurrentBalance.Equal(opening) {
		t.Errorf("CurrentBalance = %s, want opening balance %s", account.CurrentBalance, opening)
	}
	if !account.CanAcceptTransactions() {
		t.Error("Active account should accept transactions")
	}
	if account.CreatedAt.IsZero() || account.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
}

func TestNewAccountValidation(t *testing.T) {
	t.Parallel()

	opening := money.Zero()
	tests := []struct {
		name        string
		accountName string
		accountType AccountType
		lastFour    string
		currency    money.Currency
	}{
		{name: "empty name", accountName: "", accountType: AccountTypeChecking, currency: money.USD},
		{name: "unknown type", accountName: "A", accountType: AccountType("margin"), currency: money.USD},
		{name: "bad currency", accountName: "A", accountType: AccountTypeSavings, currency: money.Currency("DOLLAR")},
		{name: "short last four", accountName: "A", accountType: AccountTypeSavings, lastFour: "123", currency: money.USD},
		{name: "alpha last four", accountName: "A", accountType: AccountTypeSavings, lastFour: "12ab", currency: money.USD},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewAccount(tt.accountName, tt.accountType, "", tt.lastFour, tt.currency, opening)
			if err == nil {
				t.Fatal("Expected validation error, got none")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}

	// empty last four is allowed
	if _, err := NewAccount("A", AccountTypeSavings, "", "", money.USD, opening); err != nil {
		t.Errorf("Empty last four should be allowed, got %v", err)
	}
}

func TestAccountBalanceMethods(t *testing.T) {
	t.Parallel()

	account, err := NewAccount("Checking", AccountTypeChecking, "", "", money.USD, mustMoney(t, "100"))
	if err != nil {
		t.Fatalf("NewAccount failed: %v", err)
	}

	applied := account.ApplyAmount(mustMoney(t, "-25.50"))
	if !applied.CurrentBalance.Equal(mustMoney(t, "74.50")) {
		t.Errorf("ApplyAmount: balance = %s, want 74.50", applied.CurrentBalance)
	}

	reversed := applied.ReverseAmount(mustMoney(t, "-25.50"))
	if !reversed.CurrentBalance.Equal(mustMoney(t, "100")) {
		t.Errorf("ReverseAmount: balance = %s, want 100.00", reversed.CurrentBalance)
	}

	// original is untouched
	if !account.CurrentBalance.Equal(mustMoney(t, "100")) {
		t.Error("ApplyAmount mutated the original account")
	}

	set := account.WithBalance(mustMoney(t, "42"))
	if !set.CurrentBalance.Equal(mustMoney(t, "42")) {
		t.Errorf("WithBalance: balance = %s, want 42.00", set.CurrentBalance)
	}
}

func TestAccountDeactivateReactivate(t *testing.T) {
	t.Parallel()

	account, err := NewAccount("Old Savings", AccountTypeSavings, "", "", money.USD, money.Zero())
	if err != nil {
		t.Fatalf("NewAccount failed: %v", err)
	}

	inactive := account.Deactivate()
	if inactive.Active {
		t.Error("Deactivate should clear Active")
	}
	if inactive.CanAcceptTransactions() {
		t.Error("Inactive account must not accept transactions")
	}
	if !account.Active {
		t.Error("Deactivate mutated the original account")
	}

	restored := inactive.Reactivate()
	if !restored.Active {
		t.Error("Reactivate should set Active")
	}
}
