// Package api provides HTTP handlers for the ledger API.
package api

import (
	"time"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/domain/ledger"
	"github.com/hearthapp/ledger-api/internal/domain/money"
)

// AccountResponse represents the response data for an account.
type AccountResponse struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Type           string      `json:"type"`
	Institution    string      `json:"institution,omitempty"`
	LastFour       string      `json:"last_four,omitempty"`
	Currency       string      `json:"currency"`
	OpeningBalance money.Money `json:"opening_balance"`
	CurrentBalance money.Money `json:"current_balance"`
	Active         bool        `json:"active"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func accountToResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID.String(),
		Name:           a.Name,
		Type:           string(a.Type),
		Institution:    a.Institution,
		LastFour:       a.LastFour,
		Currency:       string(a.Currency),
		OpeningBalance: a.OpeningBalance,
		CurrentBalance: a.CurrentBalance,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// TransactionResponse represents the response data for a transaction.
type TransactionResponse struct {
	ID               string      `json:"id"`
	AccountID        string      `json:"account_id"`
	MerchantID       string      `json:"merchant_id,omitempty"`
	CategoryID       string      `json:"category_id,omitempty"`
	Amount           money.Money `json:"amount"`
	Description      string      `json:"description"`
	Memo             string      `json:"memo,omitempty"`
	PostedAt         time.Time   `json:"posted_at"`
	AuthorizedAt     *time.Time  `json:"authorized_at,omitempty"`
	Status           string      `json:"status"`
	ExternalID       string      `json:"external_id,omitempty"`
	CheckNumber      string      `json:"check_number,omitempty"`
	Tags             []string    `json:"tags,omitempty"`
	ReceiptURL       string      `json:"receipt_url,omitempty"`
	ReconciliationID string      `json:"reconciliation_id,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func transactionToResponse(tx domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:           tx.ID.String(),
		AccountID:    tx.AccountID.String(),
		Amount:       tx.Amount,
		Description:  tx.Description,
		Memo:         tx.Memo,
		PostedAt:     tx.PostedAt,
		AuthorizedAt: tx.AuthorizedAt,
		Status:       string(tx.Status),
		ExternalID:   tx.ExternalID,
		CheckNumber:  tx.CheckNumber,
		Tags:         tx.Tags,
		ReceiptURL:   tx.ReceiptURL,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
	if tx.MerchantID != nil {
		resp.MerchantID = tx.MerchantID.String()
	}
	if tx.CategoryID != nil {
		resp.CategoryID = tx.CategoryID.String()
	}
	if tx.ReconciliationID != nil {
		resp.ReconciliationID = tx.ReconciliationID.String()
	}
	return resp
}

func transactionsToResponse(txs []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, transactionToResponse(tx))
	}
	return out
}

// TransferResponse represents the two correlated legs of a transfer.
type TransferResponse struct {
	ID            string              `json:"id"`
	FromAccountID string              `json:"from_account_id"`
	ToAccountID   string              `json:"to_account_id"`
	Amount        money.Money         `json:"amount"`
	Description   string              `json:"description"`
	Withdrawal    TransactionResponse `json:"withdrawal"`
	Deposit       TransactionResponse `json:"deposit"`
}

func transferToResponse(t domain.Transfer) TransferResponse {
	return TransferResponse{
		ID:            t.ID.String(),
		FromAccountID: t.FromAccountID.String(),
		ToAccountID:   t.ToAccountID.String(),
		Amount:        t.Amount,
		Description:   t.Description,
		Withdrawal:    transactionToResponse(t.Withdrawal),
		Deposit:       transactionToResponse(t.Deposit),
	}
}

// BudgetResponse represents the response data for a budget.
type BudgetResponse struct {
	ID              string      `json:"id"`
	PeriodType      string      `json:"period_type"`
	PeriodStart     time.Time   `json:"period_start"`
	PeriodEnd       time.Time   `json:"period_end"`
	CategoryID      string      `json:"category_id"`
	BudgetedAmount  money.Money `json:"budgeted_amount"`
	SpentAmount     money.Money `json:"spent_amount"`
	RolloverAmount  money.Money `json:"rollover_amount"`
	RemainingAmount money.Money `json:"remaining_amount"`
	OverBudget      bool        `json:"over_budget"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func budgetToResponse(b domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:              b.ID.String(),
		PeriodType:      string(b.Period.Type),
		PeriodStart:     b.Period.Start,
		PeriodEnd:       b.Period.End,
		CategoryID:      b.CategoryID.String(),
		BudgetedAmount:  b.BudgetedAmount,
		SpentAmount:     b.SpentAmount,
		RolloverAmount:  b.RolloverAmount,
		RemainingAmount: b.RemainingAmount(),
		OverBudget:      b.IsOverBudget(),
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// BudgetSummaryResponse aggregates a period's budgets with totals.
type BudgetSummaryResponse struct {
	PeriodType     string           `json:"period_type"`
	PeriodStart    time.Time        `json:"period_start"`
	PeriodEnd      time.Time        `json:"period_end"`
	Budgets        []BudgetResponse `json:"budgets"`
	TotalBudgeted  money.Money      `json:"total_budgeted"`
	TotalSpent     money.Money      `json:"total_spent"`
	TotalRemaining money.Money      `json:"total_remaining"`
}

func budgetSummaryToResponse(s ledger.BudgetSummary) BudgetSummaryResponse {
	budgets := make([]BudgetResponse, 0, len(s.Budgets))
	for _, b := range s.Budgets {
		budgets = append(budgets, budgetToResponse(b))
	}
	return BudgetSummaryResponse{
		PeriodType:     string(s.Period.Type),
		PeriodStart:    s.Period.Start,
		PeriodEnd:      s.Period.End,
		Budgets:        budgets,
		TotalBudgeted:  s.TotalBudgeted,
		TotalSpent:     s.TotalSpent,
		TotalRemaining: s.TotalRemaining,
	}
}

// ReconciliationResponse represents the response data for a reconciliation.
type ReconciliationResponse struct {
	ID                    string      `json:"id"`
	AccountID             string      `json:"account_id"`
	StatementDate         time.Time   `json:"statement_date"`
	StatementBalance      money.Money `json:"statement_balance"`
	ClearedBalance        money.Money `json:"cleared_balance"`
	Difference            money.Money `json:"difference"`
	Status                string      `json:"status"`
	MatchedTransactionIDs []string    `json:"matched_transaction_ids"`
	Notes                 string      `json:"notes,omitempty"`
	CompletedAt           *time.Time  `json:"completed_at,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

func reconciliationToResponse(r domain.Reconciliation) ReconciliationResponse {
	matched := make([]string, 0, len(r.MatchedTransactionIDs))
	for _, id := range r.MatchedTransactionIDs {
		matched = append(matched, id.String())
	}
	return ReconciliationResponse{
		ID:                    r.ID.String(),
		AccountID:             r.AccountID.String(),
		StatementDate:         r.StatementDate,
		StatementBalance:      r.StatementBalance,
		ClearedBalance:        r.ClearedBalance,
		Difference:            r.Difference,
		Status:                string(r.Status),
		MatchedTransactionIDs: matched,
		Notes:                 r.Notes,
		CompletedAt:           r.CompletedAt,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}
