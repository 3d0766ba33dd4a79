package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/api/shared"
	"github.com/hearthapp/ledger-api/internal/domain/money"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
	"github.com/hearthapp/ledger-api/internal/service"
)

// ExecuteTransferRequest is the request body for moving funds between two
// accounts. Amount is a positive decimal string.
type ExecuteTransferRequest struct {
	FromAccountID string    `json:"from_account_id" validate:"required,uuid"`
	ToAccountID   string    `json:"to_account_id"   validate:"required,uuid"`
	Amount        string    `json:"amount"          validate:"required"`
	Description   string    `json:"description"`
	PostedAt      time.Time `json:"posted_at"       validate:"required"`
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferService service.TransferService
	logger          *slog.Logger
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferService service.TransferService, logger *slog.Logger) *TransferHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TransferHandler")
	}
	return &TransferHandler{
		transferService: transferService,
		logger:          logger.With(slog.String("component", "transfer_handler")),
	}
}

// ExecuteTransfer handles POST /transfers requests.
func (h *TransferHandler) ExecuteTransfer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ExecuteTransferRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	fromID, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid from_account_id format")
		return
	}
	toID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid to_account_id format")
		return
	}
	amount, err := money.FromString(req.Amount)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid amount")
		return
	}

	transfer, err := h.transferService.ExecuteTransfer(r.Context(), service.ExecuteTransferCommand{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		Description:   req.Description,
		PostedAt:      req.PostedAt,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("transfer executed",
		slog.String("transfer_id", transfer.ID.String()),
		slog.String("from_account_id", fromID.String()),
		slog.String("to_account_id", toID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, transferToResponse(transfer))
}
