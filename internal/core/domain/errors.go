package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown normaliser or store type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrStoreUnavailable indicates the durable summary store could not be reached.
	// The in-process cache keeps serving when this happens.
	ErrStoreUnavailable = errors.New("summary store unavailable")

	// ErrContentRequired indicates a document had no content after normalisation.
	ErrContentRequired = &ValidationError{Field: "content", Message: "Document content is required"}
)

// ValidationError describes a rejected field.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap allows errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
