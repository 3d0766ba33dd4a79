package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/domain/money"
)

// TransferResult is the atomic output of an inter-account transfer: the
// transfer with both underlying transactions, the two-entry balanced
// journal set, and both accounts with balances updated. Callers must
// persist everything in one unit of work.
type TransferResult struct {
	Transfer    domain.Transfer
	Entries     domain.JournalEntrySet
	FromAccount domain.Account
	ToAccount   domain.Account
}

// TransferService moves funds between two accounts as a correlated
// withdrawal+deposit pair with balanced journal entries.
type TransferService interface {
	// Execute builds the withdrawal (-|amount|) on the source account and
	// the deposit (+|amount|) on the destination, tags both legs with the
	// shared transfer id, debits the source and credits the destination in
	// a balanced two-entry journal set, and applies both balance changes.
	Execute(
		from, to domain.Account,
		amount money.Money,
		description string,
		postedAt time.Time,
	) (TransferResult, error)
}

// NewTransferService returns the standard transfer service.
func NewTransferService() TransferService {
	return transferService{balances: NewBalanceService()}
}

type transferService struct {
	balances BalanceService
}

func (s transferService) Execute(
	from, to domain.Account,
	amount money.Money,
	description string,
	postedAt time.Time,
) (TransferResult, error) {
	if !from.CanAcceptTransactions() {
		return TransferResult{}, domain.NewBusinessRuleError(
			"account-active",
			"source account "+from.ID.String()+" is inactive and cannot accept transactions",
		)
	}
	if !to.CanAcceptTransactions() {
		return TransferResult{}, domain.NewBusinessRuleError(
			"account-active",
			"destination account "+to.ID.String()+" is inactive and cannot accept transactions",
		)
	}
	if from.ID == to.ID {
		return TransferResult{}, domain.NewValidationError(
			"to_account_id", "cannot transfer to the same account", nil)
	}
	if !amount.IsPositive() {
		return TransferResult{}, domain.NewValidationError(
			"amount", "must be strictly positive", nil)
	}
	if from.Currency != to.Currency {
		// the core performs no currency conversion
		return TransferResult{}, domain.NewValidationError(
			"amount", "accounts have different currencies", nil)
	}

	transferID := uuid.New()
	tags := []string{domain.TransferTag, domain.TransferCorrelationTag(transferID)}

	withdrawal, err := domain.NewTransaction(
		from.ID, amount.Neg(), description, postedAt, domain.TransactionStatusPosted)
	if err != nil {
		return TransferResult{}, err
	}
	withdrawal = withdrawal.WithTags(tags...)

	deposit, err := domain.NewTransaction(
		to.ID, amount, description, postedAt, domain.TransactionStatusPosted)
	if err != nil {
		return TransferResult{}, err
	}
	deposit = deposit.WithTags(tags...)

	debit, err := domain.NewDebitEntry(withdrawal.ID, from.ID, amount, postedAt, description)
	if err != nil {
		return TransferResult{}, err
	}
	credit, err := domain.NewCreditEntry(deposit.ID, to.ID, amount, postedAt, description)
	if err != nil {
		return TransferResult{}, err
	}
	entries, err := domain.NewJournalEntrySet(debit, credit)
	if err != nil {
		return TransferResult{}, err
	}

	return TransferResult{
		Transfer: domain.Transfer{
			ID:            transferID,
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        amount,
			Description:   description,
			Withdrawal:    withdrawal,
			Deposit:       deposit,
		},
		Entries:     entries,
		FromAccount: s.balances.ApplyTransaction(from, withdrawal),
		ToAccount:   s.balances.ApplyTransaction(to, deposit),
	}, nil
}
