package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserType distinguishes learners from the parents following them.
type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeParent  UserType = "parent"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	return t == UserTypeStudent || t == UserTypeParent
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User is a registered account.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Username       *string    `json:"username"`
	Phone          *string    `json:"phone"`
	ClassID        *int64     `json:"class_id"`
	UserType       UserType   `json:"user_type"`
	Password       string     `json:"-"` // plaintext, only during signup
	HashedPassword string     `json:"-"`
	OTPCode        *string    `json:"-"`
	OTPExpiresAt   *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewUser creates a student account with a fresh ID. The caller hashes the
// password before storing the user.
func NewUser(email, password string, now time.Time) (*User, error) {
	u := &User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  password,
		UserType:  UserTypeStudent,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the user's email, password length and type.
func (u *User) Validate() error {
	if !emailPattern.MatchString(u.Email) {
		return ErrInvalidEmail
	}
	if u.Password != "" {
		if len(u.Password) < 6 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	}
	if !u.UserType.Valid() {
		return ErrInvalidUserType
	}
	return nil
}

// OTPValid reports whether code matches the pending passcode and has not expired.
func (u *User) OTPValid(code string, now time.Time) bool {
	if u.OTPCode == nil || u.OTPExpiresAt == nil {
		return false
	}
	return *u.OTPCode == code && now.Before(*u.OTPExpiresAt)
}
