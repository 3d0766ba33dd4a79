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

// CreateTransactionRequest is the request body for posting a transaction.
// Amount is a signed decimal string: negative for expenses, positive for
// income.
type CreateTransactionRequest struct {
	AccountID    string     `json:"account_id"    validate:"required,uuid"`
	MerchantID   string     `json:"merchant_id"   validate:"omitempty,uuid"`
	CategoryID   string     `json:"category_id"   validate:"omitempty,uuid"`
	Amount       string     `json:"amount"        validate:"required"`
	Description  string     `json:"description"   validate:"required"`
	Memo         string     `json:"memo"`
	PostedAt     time.Time  `json:"posted_at"     validate:"required"`
	AuthorizedAt *time.Time `json:"authorized_at"`
	ExternalID   string     `json:"external_id"`
	CheckNumber  string     `json:"check_number"`
	Tags         []string   `json:"tags"`
	Pending      bool       `json:"pending"`
}

// UpdateAmountRequest is the request body for changing a pending
// transaction's amount.
type UpdateAmountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	txService service.TransactionService
	logger    *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txService service.TransactionService, logger *slog.Logger) *TransactionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TransactionHandler")
	}
	return &TransactionHandler{
		txService: txService,
		logger:    logger.With(slog.String("component", "transaction_handler")),
	}
}

// CreateTransaction handles POST /transactions requests.
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTransactionRequest
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
	amount, err := money.FromString(req.Amount)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid amount")
		return
	}
	merchantID, err := parseOptionalUUID(req.MerchantID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid merchant_id format")
		return
	}
	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category_id format")
		return
	}

	tx, err := h.txService.CreateTransaction(r.Context(), service.CreateTransactionCommand{
		AccountID:    accountID,
		MerchantID:   merchantID,
		CategoryID:   categoryID,
		Amount:       amount,
		Description:  req.Description,
		Memo:         req.Memo,
		PostedAt:     req.PostedAt,
		AuthorizedAt: req.AuthorizedAt,
		ExternalID:   req.ExternalID,
		CheckNumber:  req.CheckNumber,
		Tags:         req.Tags,
		Pending:      req.Pending,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("transaction created",
		slog.String("transaction_id", tx.ID.String()),
		slog.String("account_id", accountID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, transactionToResponse(tx))
}

// GetTransaction handles GET /transactions/{id} requests.
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	tx, err := h.txService.GetTransaction(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, transactionToResponse(tx))
}

// ListTransactions handles GET /transactions?account_id=&from=&to= requests.
// from/to are RFC 3339 timestamps bounding posted_at inclusively.
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(r.URL.Query().Get("account_id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing account_id")
		return
	}
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing from timestamp")
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing to timestamp")
		return
	}

	txs, err := h.txService.ListTransactions(r.Context(), accountID, from, to)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, transactionsToResponse(txs))
}

// UpdateAmount handles PATCH /transactions/{id}/amount requests.
func (h *TransactionHandler) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req UpdateAmountRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	amount, err := money.FromString(req.Amount)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid amount")
		return
	}

	tx, err := h.txService.UpdateTransactionAmount(r.Context(), id, amount)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, transactionToResponse(tx))
}

// SettleTransaction handles POST /transactions/{id}/settle requests.
func (h *TransactionHandler) SettleTransaction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	tx, err := h.txService.SettleTransaction(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("transaction settled", slog.String("transaction_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, transactionToResponse(tx))
}

// ClearTransaction handles POST /transactions/{id}/clear requests.
func (h *TransactionHandler) ClearTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	tx, err := h.txService.ClearTransaction(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, transactionToResponse(tx))
}

// VoidTransaction handles POST /transactions/{id}/void requests.
func (h *TransactionHandler) VoidTransaction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	tx, err := h.txService.VoidTransaction(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("transaction voided", slog.String("transaction_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, transactionToResponse(tx))
}

// parseOptionalUUID parses an optional UUID string, mapping "" to nil.
func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
