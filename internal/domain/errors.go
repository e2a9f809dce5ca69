package domain

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrNotFound indicates a resource id did not resolve in the store
	ErrNotFound = errors.New("resource not found")

	// ErrBlobNotFound indicates a blob was not found in the blob store
	ErrBlobNotFound = errors.New("blob not found")
)

// ValidationError carries the field-level error messages produced when request
// validation fails. Callers surface Fields directly as the 422 response body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// NewValidationError creates a validation error from a field->message mapping.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
