package schema

import (
	"fmt"
)

// SchemaValidationError reports a malformed or incomplete schema. Field is
// empty for type-level problems.
type SchemaValidationError struct {
	Field  string
	Reason string
	cause  error
}

func (e *SchemaValidationError) Error() string {
	if e.Field == "" {
		return "invalid schema: " + e.Reason
	}

	return fmt.Sprintf("invalid schema: field %q: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *SchemaValidationError) Unwrap() error {
	return e.cause
}

func invalidf(field, format string, args ...any) *SchemaValidationError {
	return &SchemaValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedFieldKindError reports a field kind with no defined strategy.
type UnsupportedFieldKindError struct {
	Kind string
}

func (e *UnsupportedFieldKindError) Error() string {
	return fmt.Sprintf("unsupported field kind %q", e.Kind)
}
