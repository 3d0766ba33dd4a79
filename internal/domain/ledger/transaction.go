package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/domain/money"
)

// CreateTransactionInput carries the caller-supplied fields for a new
// transaction. Amount is signed: negative for expenses, positive for income.
type CreateTransactionInput struct {
	MerchantID   *uuid.UUID
	CategoryID   *uuid.UUID
	Amount       money.Money
	Description  string
	Memo         string
	PostedAt     time.Time
	AuthorizedAt *time.Time
	ExternalID   string
	CheckNumber  string
	Tags         []string
}

// TransactionResult is the atomic output of posting a transaction: the new
// transaction, its journal entry set, and the account with the balance
// impact applied. Callers must persist all three in one unit of work.
type TransactionResult struct {
	Transaction domain.Transaction
	Entries     domain.JournalEntrySet
	Account     domain.Account
}

// TransactionService posts, amends, and voids transactions against a single
// account, enforcing the status machine and the balance invariant.
type TransactionService interface {
	// Create posts a new transaction (initial status posted) against the
	// account, producing the transaction, a one-entry journal set (debit for
	// negative amounts, credit for positive), and the updated account.
	Create(account domain.Account, input CreateTransactionInput) (TransactionResult, error)

	// CreatePending is Create with initial status pending, for imported or
	// authorized-but-unsettled entries. Pending transactions affect the
	// balance but are not journaled until they settle.
	CreatePending(account domain.Account, input CreateTransactionInput) (TransactionResult, error)

	// UpdateAmount changes a pending transaction's amount and applies the
	// delta (new - old) to the account balance.
	UpdateAmount(account domain.Account, tx domain.Transaction, newAmount money.Money) (TransactionResult, error)

	// Settle transitions a pending transaction to posted and mints the
	// journal entry deferred at creation. The balance was applied when the
	// transaction was created, so the account is unchanged.
	Settle(account domain.Account, tx domain.Transaction) (TransactionResult, error)

	// Clear transitions a posted transaction to cleared, making it
	// eligible for statement reconciliation. No balance or journal impact.
	Clear(tx domain.Transaction) (domain.Transaction, error)

	// Void transitions the transaction to void and reverses its balance
	// impact. Fails if the transaction is already void or reconciled.
	Void(account domain.Account, tx domain.Transaction) (TransactionResult, error)
}

// NewTransactionService returns the standard transaction service.
func NewTransactionService() TransactionService {
	return transactionService{balances: NewBalanceService()}
}

type transactionService struct {
	balances BalanceService
}

func (s transactionService) Create(account domain.Account, input CreateTransactionInput) (TransactionResult, error) {
	return s.create(account, input, domain.TransactionStatusPosted)
}

func (s transactionService) CreatePending(account domain.Account, input CreateTransactionInput) (TransactionResult, error) {
	return s.create(account, input, domain.TransactionStatusPending)
}

func (s transactionService) create(
	account domain.Account,
	input CreateTransactionInput,
	status domain.TransactionStatus,
) (TransactionResult, error) {
	if !account.CanAcceptTransactions() {
		return TransactionResult{}, domain.NewBusinessRuleError(
			"account-active",
			"account "+account.ID.String()+" is inactive and cannot accept transactions",
		)
	}

	tx, err := domain.NewTransaction(account.ID, input.Amount, input.Description, input.PostedAt, status)
	if err != nil {
		return TransactionResult{}, err
	}
	tx.MerchantID = input.MerchantID
	tx.CategoryID = input.CategoryID
	tx.Memo = input.Memo
	tx.AuthorizedAt = input.AuthorizedAt
	tx.ExternalID = input.ExternalID
	tx.CheckNumber = input.CheckNumber
	if len(input.Tags) > 0 {
		tx = tx.WithTags(input.Tags...)
	}

	result := TransactionResult{
		Transaction: tx,
		Account:     s.balances.ApplyTransaction(account, tx),
	}
	if status == domain.TransactionStatusPosted {
		entries, err := singleEntrySet(tx)
		if err != nil {
			return TransactionResult{}, err
		}
		result.Entries = entries
	}
	return result, nil
}

func (s transactionService) UpdateAmount(
	account domain.Account,
	tx domain.Transaction,
	newAmount money.Money,
) (TransactionResult, error) {
	oldAmount := tx.Amount
	updated, err := tx.WithAmount(newAmount)
	if err != nil {
		return TransactionResult{}, err
	}

	// Journal entries are append-only and pending transactions have not
	// been journaled yet, so only the balance delta moves here.
	return TransactionResult{
		Transaction: updated,
		Account:     account.ApplyAmount(newAmount.Sub(oldAmount)),
	}, nil
}

func (s transactionService) Settle(account domain.Account, tx domain.Transaction) (TransactionResult, error) {
	if tx.Status != domain.TransactionStatusPending {
		return TransactionResult{}, domain.NewBusinessRuleError(
			"transaction-settle-pending-only",
			"transaction "+tx.ID.String()+" is "+string(tx.Status)+", only pending transactions settle",
		)
	}

	settled, err := tx.WithStatus(domain.TransactionStatusPosted)
	if err != nil {
		return TransactionResult{}, err
	}
	entries, err := singleEntrySet(settled)
	if err != nil {
		return TransactionResult{}, err
	}

	return TransactionResult{
		Transaction: settled,
		Entries:     entries,
		Account:     account,
	}, nil
}

func (s transactionService) Clear(tx domain.Transaction) (domain.Transaction, error) {
	return tx.WithStatus(domain.TransactionStatusCleared)
}

func (s transactionService) Void(account domain.Account, tx domain.Transaction) (TransactionResult, error) {
	// Reverse before transitioning: a void transaction no longer affects
	// the balance, so the reversal must see the pre-void state.
	reversed := s.balances.ReverseTransaction(account, tx)

	voided, err := tx.WithStatus(domain.TransactionStatusVoid)
	if err != nil {
		return TransactionResult{}, err
	}

	return TransactionResult{
		Transaction: voided,
		Account:     reversed,
	}, nil
}

// singleEntrySet builds the one-entry journal set for a simple transaction:
// a debit of |amount| when the amount is negative, a credit otherwise.
func singleEntrySet(tx domain.Transaction) (domain.JournalEntrySet, error) {
	var (
		entry domain.JournalEntry
		err   error
	)
	if tx.Amount.IsNegative() {
		entry, err = domain.NewDebitEntry(tx.ID, tx.AccountID, tx.Amount.Abs(), tx.PostedAt, tx.Description)
	} else {
		entry, err = domain.NewCreditEntry(tx.ID, tx.AccountID, tx.Amount.Abs(), tx.PostedAt, tx.Description)
	}
	if err != nil {
		return domain.JournalEntrySet{}, err
	}
	return domain.NewJournalEntrySet(entry)
}
