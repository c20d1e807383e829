// Package service implements the business rules for the event catalog and the
// booking lifecycle, independent of transport. Handlers translate the errors
// defined here into HTTP status codes.
package service

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when a requested entity does not exist
// or is not visible to the caller.
var ErrNotFound = errors.New("not found")

// ErrAlreadyBooked is returned when a user already holds a booking
// for the event.
var ErrAlreadyBooked = errors.New("you have already booked this event")

// ErrCategoryInUse is returned when a category still has events
// referencing it and cannot be deleted.
var ErrCategoryInUse = errors.New("category still has events")

// ErrStorage is returned when the blob store failed to persist or
// verify an uploaded image. No entity row is persisted in that case.
var ErrStorage = errors.New("file failed to upload")

// ValidationError carries per-field validation messages.
type ValidationError struct {
	Fields map[string]string // Field name to message
}

// NewValidationError returns an empty ValidationError ready to collect fields.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records a message for a field, keeping only the first one per field.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Empty reports whether no field failed validation.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Error joins the field messages in a stable order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e.Fields[f]
	}
	return strings.Join(parts, "; ")
}
