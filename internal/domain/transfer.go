package domain

import (
	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain/money"
)

// TransferTag marks both legs of an inter-account transfer. Each leg also
// carries a correlation tag of the form "transfer:{id}".
const TransferTag = "transfer"

// TransferCorrelationTag builds the correlation tag for a transfer id.
func TransferCorrelationTag(id uuid.UUID) string {
	return TransferTag + ":" + id.String()
}

// Transfer is a derived, non-persisted concept: a correlated
// withdrawal+deposit transaction pair moving funds between two accounts.
// The pair is reconstructed from the shared correlation tag; only the two
// underlying transactions and their journal entries are stored.
type Transfer struct {
	ID            uuid.UUID   `json:"id"`
	FromAccountID uuid.UUID   `json:"from_account_id"`
	ToAccountID   uuid.UUID   `json:"to_account_id"`
	Amount        money.Money `json:"amount"` // absolute magnitude
	Description   string      `json:"description"`
	Withdrawal    Transaction `json:"withdrawal"`
	Deposit       Transaction `json:"deposit"`
}
