package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound           = errors.New("resource not found")
	ErrClientNotFound     = fmt.Errorf("%w: client", ErrNotFound)
	ErrPredictionNotFound = fmt.Errorf("%w: prediction", ErrNotFound)
	ErrAnalysisNotFound   = fmt.Errorf("%w: analysis", ErrNotFound)

	// Validation errors
	ErrInvalidStage       = errors.New("unrecognized pipeline stage")
	ErrNegativeValue      = errors.New("estimated value cannot be negative")
	ErrEmptyClientList    = errors.New("client list is empty")
	ErrMalformedRecord    = errors.New("malformed client record")
	ErrUnknownInsightType = errors.New("unknown insight type")

	// Data source errors
	ErrSourceUnavailable = errors.New("client source unavailable")
	ErrRosterUnreadable  = errors.New("client roster file unreadable")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidStage) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrMalformedRecord)
}
