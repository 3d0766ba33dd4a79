package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain/money"
)

// AccountType classifies a balance-bearing account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeCash       AccountType = "cash"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeAsset      AccountType = "asset"
	AccountTypeLiability  AccountType = "liability"
)

// ParseAccountType validates an account type string.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard,
		AccountTypeCash, AccountTypeLoan, AccountTypeInvestment,
		AccountTypeAsset, AccountTypeLiability:
		return t, nil
	default:
		return "", NewValidationError("type", "unknown account type: "+s, nil)
	}
}

// Account is a balance-bearing aggregate. CurrentBalance is maintained
// incrementally and must always equal OpeningBalance plus the sum of all
// non-void transaction amounts; ledger.BalanceService.RecalculateBalance
// recovers it exactly from history.
//
// Accounts are never physically deleted; Deactivate soft-disables them.
type Account struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Type           AccountType    `json:"type"`
	Institution    string         `json:"institution,omitempty"`
	LastFour       string         `json:"last_four,omitempty"`
	Currency       money.Currency `json:"currency"`
	OpeningBalance money.Money    `json:"opening_balance"`
	CurrentBalance money.Money    `json:"current_balance"`
	Active         bool           `json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewAccount creates an active Account with its current balance equal to the
// opening balance. Returns a ValidationError if any field is malformed.
func NewAccount(
	name string,
	accountType AccountType,
	institution string,
	lastFour string,
	currency money.Currency,
	openingBalance money.Money,
) (Account, error) {
	if name == "" {
		return Account{}, NewValidationError("name", "cannot be empty", nil)
	}
	if _, err := ParseAccountType(string(accountType)); err != nil {
		return Account{}, err
	}
	if _, err := money.ParseCurrency(string(currency)); err != nil {
		return Account{}, NewValidationError("currency", "invalid currency code", err)
	}
	if lastFour != "" && !isFourDigits(lastFour) {
		return Account{}, NewValidationError("last_four", "must be exactly 4 digits", nil)
	}

	now := time.Now().UTC()
	return Account{
		ID:             uuid.New(),
		Name:           name,
		Type:           accountType,
		Institution:    institution,
		LastFour:       lastFour,
		Currency:       currency,
		OpeningBalance: openingBalance,
		CurrentBalance: openingBalance,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// CanAcceptTransactions reports whether new transactions may be posted
// against this account.
func (a Account) CanAcceptTransactions() bool {
	return a.Active
}

// ApplyAmount returns a copy of the account with the amount added to its
// current balance.
func (a Account) ApplyAmount(amount money.Money) Account {
	a.CurrentBalance = a.CurrentBalance.Add(amount)
	a.UpdatedAt = time.Now().UTC()
	return a
}

// ReverseAmount returns a copy of the account with the amount subtracted
// from its current balance.
func (a Account) ReverseAmount(amount money.Money) Account {
	a.CurrentBalance = a.CurrentBalance.Sub(amount)
	a.UpdatedAt = time.Now().UTC()
	return a
}

// WithBalance returns a copy of the account with the given current balance.
// Used by balance recalculation.
func (a Account) WithBalance(balance money.Money) Account {
	a.CurrentBalance = balance
	a.UpdatedAt = time.Now().UTC()
	return a
}

// Deactivate returns a soft-deactivated copy of the account.
func (a Account) Deactivate() Account {
	a.Active = false
	a.UpdatedAt = time.Now().UTC()
	return a
}

// Reactivate returns a reactivated copy of the account.
func (a Account) Reactivate() Account {
	a.Active = true
	a.UpdatedAt = time.Now().UTC()
	return a
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
