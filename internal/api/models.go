package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
)

// SignupRequest defines the payload for the registration endpoint.
type SignupRequest struct {
	Email    string  `json:"email"     validate:"required,email"`
	Password string  `json:"password"  validate:"required,min=6,max=72"`
	Username *string `json:"username"  validate:"omitempty,max=100"`
	Phone    *string `json:"phone"     validate:"omitempty,max=32"`
	ClassID  *int64  `json:"class_id"  validate:"omitempty,gt=0"`
	UserType string  `json:"user_type" validate:"omitempty,oneof=student parent"`
}

// LoginRequest defines the credentials accepted by the login endpoint. The
// form-encoded variant carries the email in the username field.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

// login returns the email the client supplied in either field.
func (r LoginRequest) login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// VerifyOTPRequest defines the payload for the passcode check.
type VerifyOTPRequest struct {
	UserID  uuid.UUID `json:"user_id"  validate:"required"`
	OTPCode string    `json:"otp_code" validate:"required,len=6,numeric"`
}

// TokenResponse is returned when a login completes.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// OTPChallengeResponse is returned when login needs a mailed passcode.
type OTPChallengeResponse struct {
	RequiresOTP bool      `json:"requires_otp"`
	UserID      uuid.UUID `json:"user_id"`
	Message     string    `json:"message"`
}

// UpdateProfileRequest is a partial profile update; absent fields are kept.
type UpdateProfileRequest struct {
	Username *string `json:"username"  validate:"omitempty,max=100"`
	Phone    *string `json:"phone"     validate:"omitempty,max=32"`
	ClassID  *int64  `json:"class_id"  validate:"omitempty,gt=0"`
	UserType *string `json:"user_type" validate:"omitempty,oneof=student parent"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	Username  *string         `json:"username"`
	Phone     *string         `json:"phone"`
	ClassID   *int64          `json:"class_id"`
	UserType  domain.UserType `json:"user_type"`
	CreatedAt time.Time       `json:"created_at"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Phone:     u.Phone,
		ClassID:   u.ClassID,
		UserType:  u.UserType,
		CreatedAt: u.CreatedAt,
	}
}

// ProgressUpdateRequest carries one quiz result for a chapter.
type ProgressUpdateRequest struct {
	ChapterID      int64 `json:"chapter_id"      validate:"required,gt=0"`
	CorrectAnswers *int  `json:"correct_answers" validate:"required,gte=0"`
	TotalQuestions int   `json:"total_questions" validate:"required,gte=1"`
}

// AttemptRequest carries the answer given to one question.
type AttemptRequest struct {
	MCQID          int64  `json:"mcq_id"          validate:"required,gt=0"`
	SelectedOption string `json:"selected_option" validate:"required,max=8"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
