package perrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound covers both missing entities and entities owned by someone else.
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRateLimited       = errors.New("rate limited")
)

// ConflictError is returned when a create/activate would break one of the plan invariants.
type ConflictError struct {
	Reason           string
	ExistingPlanID   string
	ExistingPlanName string
}

func NewConflictError(reason, existingPlanID, existingPlanName string) *ConflictError {
	return &ConflictError{
		Reason:           reason,
		ExistingPlanID:   existingPlanID,
		ExistingPlanName: existingPlanName,
	}
}

func (e *ConflictError) Error() string {
	if e.ExistingPlanName != "" {
		return fmt.Sprintf("%s: existing plan [%s]", e.Reason, e.ExistingPlanName)
	}
	return e.Reason
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns nil when no field failed, so it can be returned directly as an error.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
