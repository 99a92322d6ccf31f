package generation

import (
	"errors"
	"fmt"

	"github.com/ncert-revision/revision-api/internal/domain"
)

// Common errors returned by the generation package and its adapters.
var (
	// ErrProviderUnavailable is returned when no provider is configured.
	ErrProviderUnavailable = errors.New("content provider is not configured")

	// ErrProviderFailure is returned when the provider call fails: transport
	// errors, timeouts, error responses.
	ErrProviderFailure = errors.New("content provider request failed")

	// ErrProviderRateLimited is a provider failure caused by the provider's
	// own rate limit or quota.
	ErrProviderRateLimited = fmt.Errorf("%w: rate limited", ErrProviderFailure)

	// ErrMalformedResponse is returned when provider output is empty or does
	// not parse into valid items.
	ErrMalformedResponse = errors.New("malformed response from content provider")

	// ErrContentBlocked is returned when the provider withholds output
	// because of its safety filters.
	ErrContentBlocked = fmt.Errorf("%w: content blocked by safety filters", ErrMalformedResponse)

	// ErrInvalidConfig is returned when an adapter's configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrQuotaExceeded is returned when the user has used up the day's
	// generation requests.
	ErrQuotaExceeded = errors.New("daily generation quota exceeded")

	// ErrContextNotFound is returned when the chapter, its subject or its
	// class cannot be resolved.
	ErrContextNotFound = errors.New("chapter context not found")

	// ErrPersistence is returned when generated items could not be committed.
	ErrPersistence = errors.New("failed to persist generated content")
)

// QuotaExceededError carries the items that already exist for the chapter so
// callers can still show something useful.
type QuotaExceededError struct {
	Limit    int
	Existing domain.ItemSet
}

// Error implements the error interface.
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s: limit of %d requests reached", ErrQuotaExceeded, e.Limit)
}

// Is makes errors.Is(err, ErrQuotaExceeded) match.
func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}
