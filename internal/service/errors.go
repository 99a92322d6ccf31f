package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected failure conditions. The API layer maps them to
// HTTP status codes.
var (
	// ErrInvalidCredentials is returned when the email or password does not match.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidOTP is returned for a wrong, missing or expired passcode.
	ErrInvalidOTP = errors.New("invalid or expired one-time passcode")

	// ErrResetLimitReached is returned when a chapter's attempts were already
	// reset the maximum number of times.
	ErrResetLimitReached = errors.New("reset limit reached for this chapter")
)

// ServiceError wraps unexpected failures with the operation that produced
// them.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
