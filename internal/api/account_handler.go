package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/api/shared"
	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/domain/money"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
	"github.com/hearthapp/ledger-api/internal/service"
)

// CreateAccountRequest is the request body for opening an account.
type CreateAccountRequest struct {
	Name           string `json:"name"            validate:"required"`
	Type           string `json:"type"            validate:"required"`
	Institution    string `json:"institution"`
	LastFour       string `json:"last_four"       validate:"omitempty,len=4,numeric"`
	Currency       string `json:"currency"        validate:"required,len=3"`
	OpeningBalance string `json:"opening_balance" validate:"required"`
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService service.AccountService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AccountHandler")
	}
	return &AccountHandler{
		accountService: accountService,
		logger:         logger.With(slog.String("component", "account_handler")),
	}
}

// CreateAccount handles POST /accounts requests.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateAccountRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	accountType, err := domain.ParseAccountType(req.Type)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}
	currency, err := money.ParseCurrency(req.Currency)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}
	opening, err := money.FromString(req.OpeningBalance)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid opening balance")
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), service.CreateAccountCommand{
		Name:           req.Name,
		Type:           accountType,
		Institution:    req.Institution,
		LastFour:       req.LastFour,
		Currency:       currency,
		OpeningBalance: opening,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("account created", slog.String("account_id", account.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, accountToResponse(account))
}

// GetAccount handles GET /accounts/{id} requests.
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(account))
}

// ListAccounts handles GET /accounts requests.
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.ListAccounts(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, accountToResponse(a))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// DeactivateAccount handles POST /accounts/{id}/deactivate requests.
func (h *AccountHandler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.accountService.DeactivateAccount)
}

// ReactivateAccount handles POST /accounts/{id}/reactivate requests.
func (h *AccountHandler) ReactivateAccount(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.accountService.ReactivateAccount)
}

// RecalculateBalance handles POST /accounts/{id}/recalculate requests.
func (h *AccountHandler) RecalculateBalance(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.accountService.RecalculateBalance)
}

// transition runs a by-id account operation and writes the updated account.
func (h *AccountHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id uuid.UUID) (domain.Account, error),
) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	account, err := op(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(account))
}

// parseIDParam extracts and parses a UUID path parameter, writing a 400
// response on failure.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
