package diagnostic

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"boxgen/internal/common"
)

// Diagnostics holds all diagnostic information from schema ingestion.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Field names the schema field this relates to (if any).
	Field string
	// Err is the typed error behind an error diagnostic.
	Err error
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticWarning DiagnosticSeverity = iota
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic backed by err.
func (d *Diagnostics) AddError(code, field string, err error) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  err.Error(),
		Field:    field,
		Err:      err,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, field, message string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Field:    field,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return !common.IsEmpty(d.Errors)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Err returns the first error diagnostic, or nil if valid. Each remaining
// error is attached as one detail.
func (d *Diagnostics) Err() error {
	if d.IsValid() {
		return nil
	}

	first := d.Errors[0].Err
	if common.IsSingle(d.Errors) {
		return first
	}

	// Outermost detail first, so details read in schema order.
	err := first
	for i := len(d.Errors) - 1; i > 0; i-- {
		err = errors.WithDetail(err, d.Errors[i].String())
	}

	return err
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Field != "" && d.Err == nil {
		return d.Field + ": " + msg
	}

	return msg
}
