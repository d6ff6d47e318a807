/*
errors.go - Error taxonomy for the ledger core

ERROR CATEGORIES:
  1. Structural validation - required field missing or not numeric
  2. Date validation - a date field does not parse to a calendar date
  3. Unknown type - an event tag outside the recognized set

All validation happens before either store is touched, so a validation error
never leaves partial state. The transport maps client errors to 400 responses
and everything else to a generic 500.
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingField is returned when a required field is absent from a
	// request. Wrapped by FieldError with the field name.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidDate is returned when a date string does not parse to a
	// valid calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnknownEventType is returned when an event's type tag is not one
	// of SALES, TAX_PAYMENT or SALES_AMENDMENT.
	ErrUnknownEventType = errors.New("unknown event type")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError reports which request field failed validation.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missingField(field string) error {
	return &FieldError{Field: field, Err: ErrMissingField}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrUnknownEventType)
}
