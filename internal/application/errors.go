package application

import (
	"fmt"

	"gardenbook/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound   = domain.ErrNotFound
	ErrConstraint = domain.ErrConstraint
	ErrBadRequest = domain.ErrBadRequest
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets validation failures match ErrBadRequest like storage failures do
func (e *ValidationError) Is(target error) bool {
	return target == ErrBadRequest
}

// NotFoundError names the record that does not exist
type NotFoundError struct {
	Kind domain.Kind
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s #%d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
