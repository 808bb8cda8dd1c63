package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration or deck schema validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EmptyInputError reports that a generation reply was empty or whitespace.
type EmptyInputError struct {
	Backend string
}

// NewEmptyInputError constructs an EmptyInputError.
func NewEmptyInputError(backend string) error {
	return &EmptyInputError{Backend: backend}
}

func (e *EmptyInputError) Error() string {
	if e == nil {
		return ""
	}
	if e.Backend != "" {
		return fmt.Sprintf("empty generation reply from %s", e.Backend)
	}
	return "empty generation reply"
}

// UnparsableError reports that a reply stayed unparsable after the single
// repair round-trip. Raw preserves the offending text for operator inspection.
type UnparsableError struct {
	Backend string
	Raw     string
	Err     error
}

// NewUnparsableError constructs an UnparsableError carrying the raw reply.
func NewUnparsableError(backend, raw string, err error) error {
	return &UnparsableError{Backend: backend, Raw: raw, Err: err}
}

func (e *UnparsableError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unparsable reply from %s after repair: %v", e.Backend, e.Err)
}

// Unwrap exposes the underlying parse error.
func (e *UnparsableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SchemaError reports valid JSON that violates the deck schema. Raw preserves
// the reply for debugging.
type SchemaError struct {
	Message string
	Raw     string
}

// NewSchemaError constructs a SchemaError.
func NewSchemaError(message, raw string) error {
	return &SchemaError{Message: message, Raw: raw}
}

func (e *SchemaError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("deck schema error: %s", e.Message)
}

// BackendUnavailableError reports that every backend in the fallback chain
// failed. Attempts maps each backend identifier to its failure reason.
type BackendUnavailableError struct {
	Attempts map[string]string
}

// NewBackendUnavailableError constructs a BackendUnavailableError from the
// per-backend failure reasons.
func NewBackendUnavailableError(attempts map[string]string) error {
	return &BackendUnavailableError{Attempts: attempts}
}

func (e *BackendUnavailableError) Error() string {
	if e == nil {
		return ""
	}
	ids := make([]string, 0, len(e.Attempts))
	for id := range e.Attempts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString("all generation backends unavailable")
	for _, id := range ids {
		fmt.Fprintf(&b, "; %s: %s", id, e.Attempts[id])
	}
	return b.String()
}
