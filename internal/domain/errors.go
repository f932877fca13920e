package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource (unknown settings section or field).
	ErrNotFound = errors.New("not found")
	// ErrValidation signals a value outside its declared domain.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence signals a settings snapshot that could not be loaded or saved.
	ErrPersistence = errors.New("persistence error")
)

// ValidationError wraps ErrValidation with the offending field, value and permitted domain.
type ValidationError struct {
	Field   string
	Value   any
	Allowed string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s=%v, allowed %s", ErrValidation.Error(), e.Field, e.Value, e.Allowed)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error.
func NewValidationError(field string, value any, allowed string) error {
	return &ValidationError{Field: field, Value: value, Allowed: allowed}
}
