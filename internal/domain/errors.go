package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound maps to a 404 at the API boundary.
	ErrNotFound = errors.New("not found")
	// ErrBlacklisted rejects bookings from blacklisted customers before the
	// commit protocol runs.
	ErrBlacklisted = errors.New("customer is blacklisted")
	// ErrInvalidTransition rejects booking status changes outside the
	// lifecycle table.
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// FieldError is one per-field validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field messages and maps to a 400. It is
// raised before any store access.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed on %d fields", len(e.Fields))
}

// Add appends a field message and returns the error for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ConflictError signals a lost availability race or a genuinely full window
// at commit time. It maps to a 409, distinct from validation failures, so
// callers can prompt the user to re-pick dates rather than fix a field.
type ConflictError struct {
	VehicleID int32
	Message   string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("vehicle %d has no free unit for the requested dates", e.VehicleID)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
