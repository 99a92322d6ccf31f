package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/generation"
	"github.com/ncert-revision/revision-api/internal/platform/mailer"
	"github.com/ncert-revision/revision-api/internal/service"
	"github.com/ncert-revision/revision-api/internal/service/auth"
	"github.com/ncert-revision/revision-api/internal/store"
)

// User-facing messages that clients match on.
const (
	MsgQuotaExceeded       = "You've exceeded today's limit of %d AI requests. Please try again tomorrow!"
	MsgProviderRateLimited = "AI daily quota exceeded. Try again tomorrow or use existing questions."
	MsgInvalidCredentials  = "Incorrect email or password"
	MsgEmailExists         = "The user with this email already exists in the system."
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Generation errors. Rate limiting is a provider failure, so it is
	// checked first.
	case errors.Is(err, generation.ErrQuotaExceeded),
		errors.Is(err, generation.ErrProviderRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, generation.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, generation.ErrProviderFailure),
		errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, mailer.ErrSendFailed):
		return http.StatusBadGateway
	case errors.Is(err, generation.ErrPersistence):
		return http.StatusInternalServerError

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, generation.ErrContextNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, service.ErrResetLimitReached):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidItemKind),
		errors.Is(err, domain.ErrInvalidOption),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrInvalidUserType),
		errors.Is(err, domain.ErrInvalidScore):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Could not validate credentials"
	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, service.ErrInvalidOTP):
		return "Invalid or expired OTP"

	// Generation errors
	case errors.Is(err, generation.ErrQuotaExceeded):
		var quotaErr *generation.QuotaExceededError
		if errors.As(err, &quotaErr) {
			return fmt.Sprintf(MsgQuotaExceeded, quotaErr.Limit)
		}
		return "You've exceeded today's limit of AI requests. Please try again tomorrow!"
	case errors.Is(err, generation.ErrProviderRateLimited):
		return MsgProviderRateLimited
	case errors.Is(err, generation.ErrProviderUnavailable):
		return "AI generation is not available right now"
	case errors.Is(err, generation.ErrProviderFailure):
		return "AI generation failed. Please try again later"
	case errors.Is(err, generation.ErrMalformedResponse):
		return "AI returned an unusable response. Please try again"
	case errors.Is(err, generation.ErrPersistence):
		return "Failed to save generated content"

	// Not found errors
	case errors.Is(err, store.ErrChapterNotFound):
		return "Chapter not found"
	case errors.Is(err, store.ErrSubjectNotFound):
		return "Subject not found"
	case errors.Is(err, store.ErrClassNotFound):
		return "Class not found"
	case errors.Is(err, store.ErrMCQNotFound):
		return "MCQ not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, generation.ErrContextNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return MsgEmailExists
	case errors.Is(err, service.ErrResetLimitReached):
		return fmt.Sprintf("Reset limit reached: a chapter can be reset at most %d times",
			domain.MaxResetsPerChapter)

	// Bad request errors
	case errors.Is(err, domain.ErrPasswordTooShort):
		return "Password must be at least 6 characters long"
	case errors.Is(err, domain.ErrPasswordTooLong):
		return "Password is too long"
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email format"
	case errors.Is(err, domain.ErrInvalidUserType):
		return "User type must be student or parent"
	case errors.Is(err, domain.ErrInvalidOption):
		return "Selected option must be one of A, B, C or D"
	case errors.Is(err, domain.ErrInvalidScore):
		return "Scores must satisfy 0 <= correct_answers <= total_questions and total_questions >= 1"
	case errors.Is(err, domain.ErrInvalidItemKind):
		return "Unknown item kind"
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyContent):
		return "Invalid entity data"

	case errors.Is(err, mailer.ErrSendFailed):
		return "Failed to send the login code"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a short message naming
// the first failing field by its JSON name.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	case "len", "numeric":
		return "invalid format"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
