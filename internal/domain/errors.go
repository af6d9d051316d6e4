package domain

import (
	"errors"
	"fmt"
)

// Sentinels for matching the two failure kinds with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrStateConflict = errors.New("state conflict")
)

// ValidationError reports a violated structural constraint. Field names the
// offending attribute using its wire name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// StateConflictError reports an operation attempted from a status that does
// not allow it. The entity is left unchanged.
type StateConflictError struct {
	Entity string
	Action string
	Status string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("cannot %s %s in status %q", e.Action, e.Entity, e.Status)
}

func (e *StateConflictError) Is(target error) bool {
	return target == ErrStateConflict
}
