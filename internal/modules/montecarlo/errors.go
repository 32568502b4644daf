package montecarlo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest marks requests rejected before any computation runs
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNumericDegenerate marks parameters that would collapse the sampling distribution
	ErrNumericDegenerate = errors.New("numeric degenerate")
)

// ValidationError describes which request field was rejected and why
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidRequest, e.Message)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidRequest, e.Field, e.Message)
}

// Unwrap lets callers match any validation failure with errors.Is(err, ErrInvalidRequest)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
