package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/platform/mailer"
	"github.com/ncert-revision/revision-api/internal/redact"
	"github.com/ncert-revision/revision-api/internal/service/auth"
	"github.com/ncert-revision/revision-api/internal/store"
)

const otpSubject = "Your login code"

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	Email    string
	Password string
	Username *string
	Phone    *string
	ClassID  *int64
	UserType domain.UserType
}

// ProfileUpdate is a partial profile change. Nil fields are left untouched.
type ProfileUpdate struct {
	Username *string
	Phone    *string
	ClassID  *int64
	UserType *domain.UserType
}

// LoginResult is either an access token or a pending passcode challenge.
type LoginResult struct {
	Token       string
	RequiresOTP bool
	UserID      uuid.UUID
}

// UserConfig holds UserService settings.
type UserConfig struct {
	OTPLifetime time.Duration
	Now         func() time.Time
}

// UserService provides registration, login and profile operations.
type UserService interface {
	// Signup registers a new account. Returns store.ErrEmailExists for a
	// taken email.
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)

	// Login checks the password. With a mailer configured it mails a
	// passcode and returns RequiresOTP, otherwise it returns a token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// VerifyOTP exchanges a valid passcode for an access token.
	VerifyOTP(ctx context.Context, userID uuid.UUID, code string) (string, error)

	// GetProfile returns the user.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile applies a partial update and returns the result.
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*domain.User, error)
}

type userServiceImpl struct {
	users    store.UserStore
	tokens   auth.JWTService
	verifier auth.PasswordVerifier
	mailer   mailer.Mailer
	otp      auth.OTPGenerator
	cfg      UserConfig
	logger   *slog.Logger
}

// NewUserService creates a UserService. mail may be nil, which disables the
// passcode step at login.
func NewUserService(
	users store.UserStore,
	tokens auth.JWTService,
	verifier auth.PasswordVerifier,
	mail mailer.Mailer,
	otp auth.OTPGenerator,
	cfg UserConfig,
	logger *slog.Logger,
) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if otp == nil {
		otp = auth.NewOTPGenerator(nil)
	}
	if cfg.OTPLifetime <= 0 {
		cfg.OTPLifetime = 10 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
		mailer:   mail,
		otp:      otp,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "user_service")),
	}, nil
}

// Signup implements UserService.Signup.
func (s *userServiceImpl) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(in.Email, in.Password, s.cfg.Now())
	if err != nil {
		return nil, err
	}
	user.Username = in.Username
	user.Phone = in.Phone
	user.ClassID = in.ClassID
	if in.UserType != "" {
		user.UserType = in.UserType
		if !user.UserType.Valid() {
			return nil, domain.ErrInvalidUserType
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("signup with existing email")
		} else {
			log.Error("failed to create user", slog.String("error", redact.Error(err)))
		}
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Login implements UserService.Login.
func (s *userServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, NewServiceError("login", "failed to look up user", err)
	}
	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			log.Error("password comparison failed", slog.String("error", redact.Error(err)))
		}
		return nil, ErrInvalidCredentials
	}

	if s.mailer == nil {
		token, err := s.tokens.GenerateToken(ctx, user.ID)
		if err != nil {
			return nil, NewServiceError("login", "failed to issue token", err)
		}
		return &LoginResult{Token: token, UserID: user.ID}, nil
	}

	code, err := s.otp()
	if err != nil {
		return nil, NewServiceError("login", "failed to generate passcode", err)
	}
	expires := s.cfg.Now().UTC().Add(s.cfg.OTPLifetime)
	if err := s.users.SetOTP(ctx, user.ID, &code, &expires); err != nil {
		return nil, NewServiceError("login", "failed to store passcode", err)
	}

	body := fmt.Sprintf("Your login code is %s. It expires in %d minutes.",
		code, int(s.cfg.OTPLifetime.Minutes()))
	if err := s.mailer.Send(ctx, user.Email, otpSubject, body); err != nil {
		return nil, NewServiceError("login", "failed to deliver passcode", err)
	}

	log.Info("login passcode sent", slog.String("user_id", user.ID.String()))
	return &LoginResult{RequiresOTP: true, UserID: user.ID}, nil
}

// VerifyOTP implements UserService.VerifyOTP.
func (s *userServiceImpl) VerifyOTP(ctx context.Context, userID uuid.UUID, code string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrInvalidOTP
		}
		return "", NewServiceError("verify_otp", "failed to look up user", err)
	}
	if !user.OTPValid(code, s.cfg.Now()) {
		return "", ErrInvalidOTP
	}

	if err := s.users.SetOTP(ctx, user.ID, nil, nil); err != nil {
		return "", NewServiceError("verify_otp", "failed to clear passcode", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", NewServiceError("verify_otp", "failed to issue token", err)
	}
	return token, nil
}

// GetProfile implements UserService.GetProfile.
func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// UpdateProfile implements UserService.UpdateProfile.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if upd.Username != nil {
		user.Username = upd.Username
	}
	if upd.Phone != nil {
		user.Phone = upd.Phone
	}
	if upd.ClassID != nil {
		user.ClassID = upd.ClassID
	}
	if upd.UserType != nil {
		if !upd.UserType.Valid() {
			return nil, domain.ErrInvalidUserType
		}
		user.UserType = *upd.UserType
	}
	user.UpdatedAt = s.cfg.Now().UTC()

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		log.Error("failed to update profile",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
