package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. The plaintext Password is hashed by the store
	// and cleared from the struct. Returns store.ErrEmailExists when the
	// email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns store.ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail returns store.ErrUserNotFound if no user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile writes the editable profile fields and UpdatedAt.
	UpdateProfile(ctx context.Context, user *domain.User) error

	// SetOTP stores or, with a nil code, clears the pending login passcode.
	SetOTP(ctx context.Context, id uuid.UUID, code *string, expiresAt *time.Time) error
}
