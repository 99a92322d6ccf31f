package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		u, err := NewUser("  Student@Example.com ", "password123", now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.Equal(t, "student@example.com", u.Email)
		assert.Equal(t, UserTypeStudent, u.UserType)
		assert.Equal(t, now, u.CreatedAt)
	})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"bad email", "not-an-email", "password123", ErrInvalidEmail},
		{"short password", "a@b.co", "12345", ErrPasswordTooShort},
		{"long password", "a@b.co", strings.Repeat("x", 73), ErrPasswordTooLong},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.email, tc.password, now)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserValidateType(t *testing.T) {
	u := &User{Email: "a@b.co", UserType: "admin"}
	assert.ErrorIs(t, u.Validate(), ErrInvalidUserType)
	u.UserType = UserTypeParent
	assert.NoError(t, u.Validate())
}

func TestOTPValid(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	code := "123456"
	expires := now.Add(10 * time.Minute)
	u := &User{OTPCode: &code, OTPExpiresAt: &expires}

	assert.True(t, u.OTPValid("123456", now))
	assert.False(t, u.OTPValid("654321", now))
	assert.False(t, u.OTPValid("123456", expires))
	assert.False(t, (&User{}).OTPValid("123456", now))
}
