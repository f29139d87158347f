package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested movie does not exist
	ErrNotFound = errors.New("movie not found")

	// ErrIDRequired indicates an operation was called with an empty ID
	ErrIDRequired = errors.New("movie ID is required")

	// ErrServerOffline indicates the remote backend is unreachable
	ErrServerOffline = errors.New("movie server is unreachable")
)

// ValidationError reports a single field-level business rule violation.
// It carries the offending field and value so callers can surface both.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
