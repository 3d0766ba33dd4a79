package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain/money"
)

// JournalEntry is one debit-or-credit leg of a double-entry posting.
// Exactly one of Debit/Credit is strictly positive; the other is exactly
// zero. Entries are append-only: once created they are never mutated.
type JournalEntry struct {
	ID            uuid.UUID   `json:"id"`
	TransactionID uuid.UUID   `json:"transaction_id"`
	AccountID     uuid.UUID   `json:"account_id"`
	Debit         money.Money `json:"debit"`
	Credit        money.Money `json:"credit"`
	EntryDate     time.Time   `json:"entry_date"`
	Memo          string      `json:"memo,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// NewDebitEntry creates a journal entry debiting the account for amount.
// The amount must be strictly positive.
func NewDebitEntry(transactionID, accountID uuid.UUID, amount money.Money, entryDate time.Time, memo string) (JournalEntry, error) {
	if !amount.IsPositive() {
		return JournalEntry{}, NewValidationError("debit", "must be strictly positive", nil)
	}
	return JournalEntry{
		ID:            uuid.New(),
		TransactionID: transactionID,
		AccountID:     accountID,
		Debit:         amount,
		Credit:        money.Zero(),
		EntryDate:     entryDate,
		Memo:          memo,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// NewCreditEntry creates a journal entry crediting the account for amount.
// The amount must be strictly positive.
func NewCreditEntry(transactionID, accountID uuid.UUID, amount money.Money, entryDate time.Time, memo string) (JournalEntry, error) {
	if !amount.IsPositive() {
		return JournalEntry{}, NewValidationError("credit", "must be strictly positive", nil)
	}
	return JournalEntry{
		ID:            uuid.New(),
		TransactionID: transactionID,
		AccountID:     accountID,
		Debit:         money.Zero(),
		Credit:        amount,
		EntryDate:     entryDate,
		Memo:          memo,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// Validate checks the single-sided invariant on an entry.
func (e JournalEntry) Validate() error {
	if e.Debit.IsNegative() || e.Credit.IsNegative() {
		return NewValidationError("journal_entry", "debit and credit must be non-negative", nil)
	}
	debitSet := e.Debit.IsPositive()
	creditSet := e.Credit.IsPositive()
	if debitSet == creditSet {
		return NewValidationError("journal_entry", "exactly one of debit/credit must be positive", nil)
	}
	return nil
}

// JournalEntrySet is a non-empty group of journal entries for one
// transaction or transfer. A simple transaction yields one entry whose
// counter-party lies outside the ledger; a transfer yields two entries,
// and any set with two or more entries must balance exactly (total debits
// equal total credits, no rounding tolerance).
type JournalEntrySet struct {
	Entries []JournalEntry `json:"entries"`
}

// NewJournalEntrySet validates each entry and, for sets of two or more
// entries, the balance invariant.
func NewJournalEntrySet(entries ...JournalEntry) (JournalEntrySet, error) {
	if len(entries) == 0 {
		return JournalEntrySet{}, NewValidationError("entries", "cannot be empty", nil)
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return JournalEntrySet{}, err
		}
	}
	set := JournalEntrySet{Entries: append([]JournalEntry(nil), entries...)}
	if len(set.Entries) > 1 && !set.Balanced() {
		return JournalEntrySet{}, NewValidationError(
			"entries",
			"total debits must equal total credits exactly",
			nil,
		)
	}
	return set, nil
}

// TotalDebits sums the debit side of every entry.
func (s JournalEntrySet) TotalDebits() money.Money {
	total := money.Zero()
	for _, e := range s.Entries {
		total = total.Add(e.Debit)
	}
	return total
}

// TotalCredits sums the credit side of every entry.
func (s JournalEntrySet) TotalCredits() money.Money {
	total := money.Zero()
	for _, e := range s.Entries {
		total = total.Add(e.Credit)
	}
	return total
}

// Balanced reports whether total debits equal total credits exactly.
// There is no rounding tolerance.
func (s JournalEntrySet) Balanced() bool {
	return s.TotalDebits().Equal(s.TotalCredits())
}
