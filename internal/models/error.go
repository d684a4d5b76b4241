package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConflictData       = errors.New("data conflicts with existing data")
	ErrDataNotFound       = errors.New("data not found")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInternalError      = errors.New("internal error")

	ErrNotAuthenticated       = errors.New("user is not authenticated")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInvalidCartLine        = errors.New("invalid cart line")
	ErrNoLoyaltyAccount       = errors.New("no active loyalty card")
	ErrInsufficientBonus      = errors.New("insufficient bonus balance")
	ErrBonusExceedsTotal      = errors.New("bonus amount exceeds order total")
	ErrNegativeBonus          = errors.New("bonus amount is negative")
	ErrInvalidAmount          = errors.New("invalid bonus amount")
	ErrInvalidTable           = errors.New("invalid table number")
	ErrTableOccupied          = errors.New("table is occupied")
	ErrDuplicateCheckout      = errors.New("checkout has already been submitted")
	ErrCancellationNotAllowed = errors.New("order cancellation is not allowed")
	ErrInvalidCardNumber      = errors.New("invalid loyalty card number")
)

// ValidationError carries the full itemized list of validation failures
// of a single entity. All reasons are reported at once.
type ValidationError struct {
	Entity  string
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(e.Reasons, "; "))
}

// NewValidationError creates ValidationError for entity with reasons
func NewValidationError(entity string, reasons []string) *ValidationError {
	return &ValidationError{Entity: entity, Reasons: reasons}
}
