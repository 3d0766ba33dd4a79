package ledger

import (
	"github.com/hearthapp/ledger-api/internal/domain"
)

// BalanceService maintains the account-balance invariant:
// CurrentBalance == OpeningBalance + sum of all non-void transaction amounts.
type BalanceService interface {
	// ApplyTransaction adds the transaction's balance impact to the account.
	// Void transactions leave the account unchanged.
	ApplyTransaction(account domain.Account, tx domain.Transaction) domain.Account

	// ReverseTransaction negates a previously applied transaction, used for
	// voids and corrections.
	ReverseTransaction(account domain.Account, tx domain.Transaction) domain.Account

	// RecalculateBalance recomputes the balance from scratch out of the full
	// transaction history. Used for drift repair and audits.
	RecalculateBalance(account domain.Account, transactions []domain.Transaction) domain.Account
}

// NewBalanceService returns the standard balance service.
func NewBalanceService() BalanceService {
	return balanceService{}
}

type balanceService struct{}

func (balanceService) ApplyTransaction(account domain.Account, tx domain.Transaction) domain.Account {
	if !tx.AffectsBalance() {
		return account
	}
	return account.ApplyAmount(tx.Amount)
}

func (balanceService) ReverseTransaction(account domain.Account, tx domain.Transaction) domain.Account {
	if !tx.AffectsBalance() {
		return account
	}
	return account.ReverseAmount(tx.Amount)
}

func (balanceService) RecalculateBalance(account domain.Account, transactions []domain.Transaction) domain.Account {
	balance := account.OpeningBalance
	for _, tx := range transactions {
		if tx.AffectsBalance() {
			balance = balance.Add(tx.Amount)
		}
	}
	return account.WithBalance(balance)
}
