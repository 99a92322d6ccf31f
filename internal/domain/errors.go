// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidItemKind is returned for an unknown generated item kind.
	ErrInvalidItemKind = errors.New("invalid item kind")

	// ErrInvalidOption is returned when a choice marker is not one of A-D.
	ErrInvalidOption = errors.New("invalid option")

	// ErrEmptyContent is returned when required text is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrPasswordTooShort is returned when a password is below the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")

	// ErrPasswordTooLong is returned when a password exceeds what bcrypt accepts.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters long")

	// ErrInvalidUserType is returned for user types other than student or parent.
	ErrInvalidUserType = errors.New("invalid user type")

	// ErrInvalidScore is returned when a progress update carries impossible counts.
	ErrInvalidScore = errors.New("invalid score")
)

// ValidationError describes an invalid field. It wraps a sentinel so callers
// can match with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
