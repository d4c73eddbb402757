package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the lookup matched no document.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID means a caller-supplied id could not be parsed into an
	// ObjectID. Handlers map it to the same 404 as ErrNotFound, but callers
	// that care can tell the two apart.
	ErrInvalidID = errors.New("invalid id")
)

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed a shape check. No partial
// write happens when one is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
