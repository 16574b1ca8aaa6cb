package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrRunNotFound    = fmt.Errorf("%w: run", ErrNotFound)
	ErrColumnNotFound = errors.New("column not found")

	// Validation errors
	ErrUnknownMethod    = errors.New("unknown scoring method")
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrEmptyFrame       = errors.New("frame has no columns")
	ErrLengthMismatch   = errors.New("column length mismatch")

	// Invariant errors - indicate a broken preparer or encoder, not bad input
	ErrDataShape = errors.New("prepared pair contains missing or non-numeric values")
)

// NewColumnNotFoundError reports a missing column by name
func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// NewValidationError reports a failed validation with field context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// IsNotFoundError checks whether err is a not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrColumnNotFound)
}

// IsInvariantError checks whether err indicates an internal invariant violation
func IsInvariantError(err error) bool {
	return errors.Is(err, ErrDataShape)
}
