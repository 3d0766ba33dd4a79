package api

import (
	"errors"
	"net/http"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error taxonomy: validation failures are the caller's fault (400),
// business rule violations are conflicts with current state (409), missing
// aggregates are 404, everything else is a server fault.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrBusinessRule),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for the error.
// Validation and business rule errors carry messages written for the
// caller, so those pass through; anything else is sanitized.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	var ruleErr *domain.BusinessRuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Error()
	}

	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		return "Account not found"
	case errors.Is(err, store.ErrTransactionNotFound):
		return "Transaction not found"
	case errors.Is(err, store.ErrBudgetNotFound):
		return "Budget not found"
	case errors.Is(err, store.ErrReconciliationNotFound):
		return "Reconciliation not found"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"
	default:
		return "An unexpected error occurred"
	}
}
