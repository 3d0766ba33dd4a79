package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/api/shared"
	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/domain/ledger"
	"github.com/hearthapp/ledger-api/internal/domain/money"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
	"github.com/hearthapp/ledger-api/internal/service"
)

// UpsertBudgetRequest is the request body for creating or updating a
// category's budget for one period.
type UpsertBudgetRequest struct {
	PeriodType     string    `json:"period_type"     validate:"required"`
	PeriodStart    time.Time `json:"period_start"    validate:"required"`
	PeriodEnd      time.Time `json:"period_end"      validate:"required"`
	CategoryID     string    `json:"category_id"     validate:"required,uuid"`
	BudgetedAmount string    `json:"budgeted_amount" validate:"required"`
}

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetService service.BudgetService
	payPeriods    ledger.PayPeriodService
	logger        *slog.Logger
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService service.BudgetService, logger *slog.Logger) *BudgetHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BudgetHandler")
	}
	return &BudgetHandler{
		budgetService: budgetService,
		payPeriods:    ledger.NewPayPeriodService(),
		logger:        logger.With(slog.String("component", "budget_handler")),
	}
}

// UpsertBudget handles PUT /budgets requests.
func (h *BudgetHandler) UpsertBudget(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UpsertBudgetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	periodType, err := domain.ParseBudgetPeriodType(req.PeriodType)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}
	period, err := domain.NewBudgetPeriod(periodType, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category_id format")
		return
	}
	budgeted, err := money.FromString(req.BudgetedAmount)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid budgeted amount")
		return
	}

	budget, err := h.budgetService.UpsertBudget(r.Context(), service.UpsertBudgetCommand{
		Period:         period,
		CategoryID:     categoryID,
		BudgetedAmount: budgeted,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("budget upserted",
		slog.String("budget_id", budget.ID.String()),
		slog.String("period", period.Key()))
	shared.RespondWithJSON(w, r, http.StatusOK, budgetToResponse(budget))
}

// GetBudgetSummary handles GET /budgets/summary requests.
//
// Explicit windows pass type, start, and end (RFC 3339). Pay periods may
// instead pass type=pay_period with anchor, length_days, and date, and the
// window is derived from the pay schedule.
func (h *BudgetHandler) GetBudgetSummary(w http.ResponseWriter, r *http.Request) {
	period, ok := h.parsePeriodQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.budgetService.GetBudgetSummary(r.Context(), period)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, budgetSummaryToResponse(summary))
}

func (h *BudgetHandler) parsePeriodQuery(w http.ResponseWriter, r *http.Request) (domain.BudgetPeriod, bool) {
	q := r.URL.Query()

	periodType, err := domain.ParseBudgetPeriodType(q.Get("type"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing period type")
		return domain.BudgetPeriod{}, false
	}

	if periodType == domain.BudgetPeriodPayPeriod && q.Get("anchor") != "" {
		return h.parsePayPeriodQuery(w, r, q)
	}

	start, err := time.Parse(time.RFC3339, q.Get("start"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing start timestamp")
		return domain.BudgetPeriod{}, false
	}
	end, err := time.Parse(time.RFC3339, q.Get("end"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing end timestamp")
		return domain.BudgetPeriod{}, false
	}

	period, err := domain.NewBudgetPeriod(periodType, start, end)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return domain.BudgetPeriod{}, false
	}
	return period, true
}

func (h *BudgetHandler) parsePayPeriodQuery(w http.ResponseWriter, r *http.Request, q url.Values) (domain.BudgetPeriod, bool) {
	anchor, err := time.Parse(time.RFC3339, q.Get("anchor"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid anchor timestamp")
		return domain.BudgetPeriod{}, false
	}
	lengthDays, err := strconv.Atoi(q.Get("length_days"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid length_days")
		return domain.BudgetPeriod{}, false
	}
	config, err := domain.NewPayPeriodConfig(anchor, lengthDays)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return domain.BudgetPeriod{}, false
	}

	date := time.Now().UTC()
	if raw := q.Get("date"); raw != "" {
		date, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid date timestamp")
			return domain.BudgetPeriod{}, false
		}
	}

	return h.payPeriods.PeriodContaining(config, date), true
}
