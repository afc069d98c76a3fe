package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrInvalidColumn signals a column name that failed identifier validation.
	ErrInvalidColumn = errors.New("invalid column")
	// ErrInvalidOperator signals an unknown filter operator or one the column does not support.
	ErrInvalidOperator = errors.New("invalid operator")
	// ErrInvalidFilter signals a filter whose value does not fit its operator.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidField signals a suggestion field outside the allow-list.
	ErrInvalidField = errors.New("invalid field")
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrQueryTimeout signals a query aborted by the pool or statement timeout. Retryable.
	ErrQueryTimeout = errors.New("query timed out")
	// ErrStorage signals a contact store failure.
	ErrStorage = errors.New("storage error")
	// ErrDecrypt signals an undecryptable campaign payload.
	ErrDecrypt = errors.New("decrypt failed")
	// ErrAssistantUnavailable signals a failed query-assistant call.
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)

// ValidationError names the offending part of a request.
type ValidationError struct {
	Kind  error
	Field string
	Cause string
}

func (e *ValidationError) Error() string {
	if e.Cause == "" {
		return fmt.Sprintf("%s: %q", e.Kind.Error(), e.Field)
	}
	return fmt.Sprintf("%s: %q: %s", e.Kind.Error(), e.Field, e.Cause)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// NewValidationError creates a validation error of the given kind.
func NewValidationError(kind error, field, cause string) error {
	return &ValidationError{Kind: kind, Field: field, Cause: cause}
}

// IsValidation reports whether err is a request validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, s := range []error{ErrInvalidColumn, ErrInvalidOperator, ErrInvalidFilter, ErrInvalidField, ErrInvalidQuery} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
