// Package domain defines the core ledger aggregates, value objects, and
// the error taxonomy shared by every layer above it.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors. Every expected failure in the domain layer is one of
// these three kinds; callers match with errors.Is and never see panics or
// untyped failures for the conditions enumerated here.
var (
	// ErrValidation is returned when an input is malformed (empty name,
	// negative budget, invalid currency code, zero transfer amount, ...).
	ErrValidation = errors.New("validation failed")

	// ErrBusinessRule is returned when an input is well-formed but violates
	// a domain rule (illegal status transition, voiding a reconciled
	// transaction, completing a reconciliation with nonzero difference, ...).
	ErrBusinessRule = errors.New("business rule violation")

	// ErrNotFound is returned when a referenced aggregate does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError carries the field and reason for a malformed input.
// It unwraps to ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// Unwrap exposes the underlying cause, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is supports errors.Is(err, ErrValidation) regardless of the wrapped cause.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
// If err is non-nil it is preserved for errors.Is matching.
func NewValidationError(field, reason string, err error) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Err: err}
}

// BusinessRuleError names the rule a well-formed input violated.
// It unwraps to ErrBusinessRule.
type BusinessRuleError struct {
	Rule   string
	Reason string
}

// Error implements the error interface for BusinessRuleError.
func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule %s violated: %s", e.Rule, e.Reason)
}

// Unwrap supports errors.Is(err, ErrBusinessRule).
func (e *BusinessRuleError) Unwrap() error {
	return ErrBusinessRule
}

// NewBusinessRuleError creates a BusinessRuleError for the named rule.
func NewBusinessRuleError(rule, reason string) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Reason: reason}
}
