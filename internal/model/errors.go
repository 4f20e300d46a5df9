package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entity lookup finds nothing.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness constraint would be violated.
	ErrConflict = errors.New("already exists")
	// ErrUnauthorized is returned for bad credentials or an unknown principal.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidToken is returned when a bearer token fails validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrValidation is returned for malformed input.
	ErrValidation = errors.New("validation failed")
)

// ValidationError describes which input field was rejected.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
