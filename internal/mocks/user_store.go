package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/store"
)

// MockUserStore implements store.UserStore for testing. Without function
// overrides it keeps users in memory keyed by email.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfileFn func(ctx context.Context, user *domain.User) error
	SetOTPFn        func(ctx context.Context, id uuid.UUID, code *string, expiresAt *time.Time) error

	// Data for default implementation
	Users       map[string]*domain.User
	LastUserID  uuid.UUID
	CreateError error

	mu sync.Mutex
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Add stores user directly, bypassing Create.
func (m *MockUserStore) Add(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[user.Email] = user
}

// Create implements the UserStore interface. The plaintext password is
// moved into HashedPassword unchanged.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}
	user.HashedPassword = "hashed:" + user.Password
	user.Password = ""
	m.Users[user.Email] = user
	m.LastUserID = user.ID
	return nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, exists := m.Users[strings.ToLower(strings.TrimSpace(email))]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// UpdateProfile implements the UserStore interface
func (m *MockUserStore) UpdateProfile(ctx context.Context, user *domain.User) error {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for email, existing := range m.Users {
		if existing.ID == user.ID {
			updated := *existing
			updated.Username = user.Username
			updated.Phone = user.Phone
			updated.ClassID = user.ClassID
			updated.UserType = user.UserType
			updated.UpdatedAt = user.UpdatedAt
			m.Users[email] = &updated
			return nil
		}
	}
	return store.ErrUserNotFound
}

// SetOTP implements the UserStore interface
func (m *MockUserStore) SetOTP(ctx context.Context, id uuid.UUID, code *string, expiresAt *time.Time) error {
	if m.SetOTPFn != nil {
		return m.SetOTPFn(ctx, id, code, expiresAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Users {
		if existing.ID == id {
			existing.OTPCode = code
			existing.OTPExpiresAt = expiresAt
			return nil
		}
	}
	return store.ErrUserNotFound
}
