// Package errs defines the error taxonomy shared by the core, the services and
// the adapters. Match with errors.As; every type wraps an underlying error.
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError is a client-detectable problem with the request itself.
// Fields maps a field (or question id) to the reason it was rejected.
type ValidationError struct {
	error
	Fields map[string]string
}

// NewValidationError builds a ValidationError from a field map.
func NewValidationError(fields map[string]string) *ValidationError {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fields[k]))
	}
	return &ValidationError{
		error:  fmt.Errorf("validation failed: %s", strings.Join(parts, "; ")),
		Fields: fields,
	}
}

// NewFieldError is shorthand for a single-field ValidationError.
func NewFieldError(field, reason string) *ValidationError {
	return NewValidationError(map[string]string{field: reason})
}

// NotFoundError means the referenced entity does not exist (or vanished).
type NotFoundError struct {
	error
	Kind string
	ID   string
}

func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{
		error: fmt.Errorf("%s %s not found", kind, id),
		Kind:  kind,
		ID:    id,
	}
}

// DuplicateSlugError means a job title derives a slug that is already taken.
type DuplicateSlugError struct {
	error
	Slug string
}

func NewDuplicateSlugError(slug string) *DuplicateSlugError {
	return &DuplicateSlugError{
		error: fmt.Errorf("job with slug %q already exists", slug),
		Slug:  slug,
	}
}

// CyclicConditionalError means conditional questions depend on each other in a loop.
type CyclicConditionalError struct {
	error
	Cycle []string
}

func NewCyclicConditionalError(cycle []string) *CyclicConditionalError {
	return &CyclicConditionalError{
		error: fmt.Errorf("cyclic conditional dependency: %s", strings.Join(cycle, " -> ")),
		Cycle: cycle,
	}
}

// ServerError is an opaque failure on the far side of the boundary.
type ServerError struct {
	error
	Status int
}

func NewServerError(status int, message string) *ServerError {
	if message == "" {
		message = "server error"
	}
	return &ServerError{error: errors.New(message), Status: status}
}

// NetworkError is a transport failure or timeout talking to the API.
type NetworkError struct {
	error
}

func NewNetworkError(err error) *NetworkError {
	return &NetworkError{error: fmt.Errorf("network error: %w", err)}
}

func (e *NetworkError) Unwrap() error { return errors.Unwrap(e.error) }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Retryable reports whether the user may re-issue the same intent.
// Only server and network failures qualify; nothing retries automatically.
func Retryable(err error) bool {
	var se *ServerError
	var ne *NetworkError
	return errors.As(err, &se) || errors.As(err, &ne)
}
