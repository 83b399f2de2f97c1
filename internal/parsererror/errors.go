// Package parsererror defines the typed errors returned when an imported,
// restored or persisted document cannot be accepted.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSyncCode marks any failure to turn a sync code into a state.
	ErrInvalidSyncCode = errors.New("invalid sync code")
	// ErrInvalidBackup marks any failure to restore a backup document.
	ErrInvalidBackup = errors.New("invalid backup document")
)

// ParseError represents an error during parsing
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: failed to parse: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldError is a single schema violation at a JSON path such as
// "transactions[3].amount".
type FieldError struct {
	Path   string
	Reason string
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: %s", f.Path, f.Reason)
}

// ValidationError represents a validation failure with field-level detail
type ValidationError struct {
	Source string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Source, strings.Join(parts, "; "))
}

// InvalidFormatError represents a document that does not have the expected
// overall shape.
type InvalidFormatError struct {
	Source   string
	Expected string
	Msg      string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in %s: %s. Expected: %s", e.Source, e.Msg, e.Expected)
}

// IsRejection reports whether err is one of the document rejection errors
// defined here.
func IsRejection(err error) bool {
	var (
		pe *ParseError
		ve *ValidationError
		fe *InvalidFormatError
	)
	return errors.As(err, &pe) || errors.As(err, &ve) || errors.As(err, &fe) ||
		errors.Is(err, ErrInvalidSyncCode) || errors.Is(err, ErrInvalidBackup)
}
