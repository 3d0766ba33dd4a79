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

// StartReconciliationRequest is the request body for opening a statement
// reconciliation.
type StartReconciliationRequest struct {
	AccountID        string    `json:"account_id"        validate:"required,uuid"`
	StatementDate    time.Time `json:"statement_date"    validate:"required"`
	StatementBalance string    `json:"statement_balance" validate:"required"`
}

// MatchTransactionsRequest carries the batch of transaction ids to match.
type MatchTransactionsRequest struct {
	TransactionIDs []string `json:"transaction_ids" validate:"required,min=1,dive,uuid"`
}

// UnmatchTransactionRequest names the transaction to unmatch.
type UnmatchTransactionRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,uuid"`
}

// ReconciliationHandler handles reconciliation-related HTTP requests.
type ReconciliationHandler struct {
	recService service.ReconciliationService
	logger     *slog.Logger
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(recService service.ReconciliationService, logger *slog.Logger) *ReconciliationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReconciliationHandler")
	}
	return &ReconciliationHandler{
		recService: recService,
		logger:     logger.With(slog.String("component", "reconciliation_handler")),
	}
}

// StartReconciliation handles POST /reconciliations requests.
func (h *ReconciliationHandler) StartReconciliation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartReconciliationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid account_id format")
		return
	}
	balance, err := money.FromString(req.StatementBalance)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid statement balance")
		return
	}

	rec, err := h.recService.StartReconciliation(r.Context(), service.StartReconciliationCommand{
		AccountID:        accountID,
		StatementDate:    req.StatementDate,
		StatementBalance: balance,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("reconciliation started", slog.String("reconciliation_id", rec.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, reconciliationToResponse(rec))
}

// GetReconciliation handles GET /reconciliations/{id} requests.
func (h *ReconciliationHandler) GetReconciliation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	rec, err := h.recService.GetReconciliation(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reconciliationToResponse(rec))
}

// MatchTransactions handles POST /reconciliations/{id}/match requests.
func (h *ReconciliationHandler) MatchTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req MatchTransactionsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	txIDs := make([]uuid.UUID, 0, len(req.TransactionIDs))
	for _, raw := range req.TransactionIDs {
		txID, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid transaction_id format")
			return
		}
		txIDs = append(txIDs, txID)
	}

	rec, err := h.recService.MatchTransactions(r.Context(), id, txIDs)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reconciliationToResponse(rec))
}

// UnmatchTransaction handles POST /reconciliations/{id}/unmatch requests.
func (h *ReconciliationHandler) UnmatchTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req UnmatchTransactionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	txID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid transaction_id format")
		return
	}

	rec, err := h.recService.UnmatchTransaction(r.Context(), id, txID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reconciliationToResponse(rec))
}

// CompleteReconciliation handles POST /reconciliations/{id}/complete requests.
func (h *ReconciliationHandler) CompleteReconciliation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	rec, err := h.recService.CompleteReconciliation(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("reconciliation completed", slog.String("reconciliation_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, reconciliationToResponse(rec))
}

// AbandonReconciliation handles POST /reconciliations/{id}/abandon requests.
func (h *ReconciliationHandler) AbandonReconciliation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	rec, err := h.recService.AbandonReconciliation(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reconciliationToResponse(rec))
}
