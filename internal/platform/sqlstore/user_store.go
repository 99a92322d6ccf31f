package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `id, email, username, phone, class_id, user_type, hashed_password,
	otp_code, otp_expires_at, created_at, updated_at`

// UserStore implements store.UserStore.
type UserStore struct {
	db         store.DBTX
	dialect    store.Dialect
	bcryptCost int
	logger     *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a user store that hashes passwords with bcryptCost.
func NewUserStore(db store.DBTX, dialect store.Dialect, bcryptCost int, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserStore{
		db:         db,
		dialect:    dialect,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "user_store")),
	}
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return err
	}
	if user.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			return store.NewStoreError("user", "create", "failed to hash password", err)
		}
		user.HashedPassword = string(hash)
		user.Password = ""
	}
	if user.HashedPassword == "" {
		return store.NewStoreError("user", "create", "missing password", store.ErrInvalidEntity)
	}

	_, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		INSERT INTO users (id, email, username, phone, class_id, user_type, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`),
		user.ID, user.Email, user.Username, user.Phone, user.ClassID, string(user.UserType),
		user.HashedPassword, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrDuplicate) {
			log.Debug("email already registered")
			return store.ErrEmailExists
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return store.NewStoreError("user", "create", "failed to insert user", mapped)
	}
	log.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var (
		u        domain.User
		username sql.NullString
		phone    sql.NullString
		classID  sql.NullInt64
		userType string
		otpCode  sql.NullString
		otpExp   sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &username, &phone, &classID, &userType,
		&u.HashedPassword, &otpCode, &otpExp, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.UserType = domain.UserType(userType)
	if username.Valid {
		u.Username = &username.String
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if classID.Valid {
		u.ClassID = &classID.Int64
	}
	if otpCode.Valid {
		u.OTPCode = &otpCode.String
	}
	if otpExp.Valid {
		u.OTPExpiresAt = &otpExp.Time
	}
	return &u, nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT `+userColumns+` FROM users WHERE id = $1`), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "get", "failed to get user by id", MapError(err))
	}
	return u, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT `+userColumns+` FROM users WHERE email = $1`),
		strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "get", "failed to get user by email", MapError(err))
	}
	return u, nil
}

// UpdateProfile implements store.UserStore.UpdateProfile.
func (s *UserStore) UpdateProfile(ctx context.Context, user *domain.User) error {
	if !user.UserType.Valid() {
		return domain.ErrInvalidUserType
	}
	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		UPDATE users
		SET username = $2, phone = $3, class_id = $4, user_type = $5, updated_at = $6
		WHERE id = $1`),
		user.ID, user.Username, user.Phone, user.ClassID, string(user.UserType), user.UpdatedAt)
	if err != nil {
		return store.NewStoreError("user", "update", "failed to update profile", MapError(err))
	}
	return checkRowsAffected(result, store.ErrUserNotFound)
}

// SetOTP implements store.UserStore.SetOTP.
func (s *UserStore) SetOTP(ctx context.Context, id uuid.UUID, code *string, expiresAt *time.Time) error {
	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		UPDATE users SET otp_code = $2, otp_expires_at = $3 WHERE id = $1`),
		id, code, expiresAt)
	if err != nil {
		return store.NewStoreError("user", "update", "failed to store passcode", MapError(err))
	}
	return checkRowsAffected(result, store.ErrUserNotFound)
}
