// Package apperr defines the error taxonomy shared by the store, the
// authorization policy and the HTTP handlers.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	ErrForbidden       = errors.New("permission denied")
	ErrConflict        = errors.New("conflict")
)

type notFoundError struct {
	entity string
}

func (e *notFoundError) Error() string { return e.entity + " not found" }

func (e *notFoundError) Unwrap() error { return ErrNotFound }

// NotFound returns an error matching ErrNotFound whose message names the entity.
func NotFound(entity string) error {
	return &notFoundError{entity: entity}
}

type forbiddenError struct {
	reason string
}

func (e *forbiddenError) Error() string { return e.reason }

func (e *forbiddenError) Unwrap() error { return ErrForbidden }

// Forbidden returns an error matching ErrForbidden with a client facing reason.
func Forbidden(reason string) error {
	return &forbiddenError{reason: reason}
}

// ConflictError reports a unique constraint hit on a client supplied field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string { return e.Field + " already exists" }

func (e *ConflictError) Unwrap() error { return ErrConflict }

func Conflict(field string) error {
	return &ConflictError{Field: field}
}

// ValidationError collects field keyed messages. Keys are JSON field names.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Invalid is shorthand for a single field error.
func Invalid(field, message string) *ValidationError {
	v := NewValidationError()
	v.Add(field, message)
	return v
}

// Add records the first message for a field.
func (v *ValidationError) Add(field, message string) {
	if _, exists := v.Fields[field]; !exists {
		v.Fields[field] = message
	}
}

func (v *ValidationError) Empty() bool {
	return len(v.Fields) == 0
}

// OrNil returns nil when no field was recorded.
func (v *ValidationError) OrNil() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
