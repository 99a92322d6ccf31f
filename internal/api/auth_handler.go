package api

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/ncert-revision/revision-api/internal/api/shared"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/service"
)

const otpSentMessage = "A login code has been sent to your email"

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	users service.UserService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Signup(r.Context(), service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Phone:    req.Phone,
		ClassID:  req.ClassID,
		UserType: domain.UserType(req.UserType),
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newUserResponse(user))
}

// Login handles POST /auth/login. It accepts either an OAuth2-style
// form body (username, password) or JSON.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := parseLoginRequest(w, r)
	if !ok {
		return
	}

	res, err := h.users.Login(r.Context(), req.login(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			HandleAPIError(w, r, err, "", shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	if res.RequiresOTP {
		shared.RespondWithJSON(w, r, http.StatusOK, OTPChallengeResponse{
			RequiresOTP: true,
			UserID:      res.UserID,
			Message:     otpSentMessage,
		})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: res.Token,
		TokenType:   "bearer",
	})
}

func parseLoginRequest(w http.ResponseWriter, r *http.Request) (LoginRequest, bool) {
	var req LoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, shared.MaxRequestBodyBytes)
		if err := r.ParseForm(); err != nil {
			logger.FromContext(r.Context()).Debug("failed to parse login form",
				slog.String("error", err.Error()))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return req, false
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
		if err := shared.ValidateRequest(&req); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
			return req, false
		}
	default:
		if !decodeAndValidate(w, r, &req) {
			return req, false
		}
	}

	if strings.TrimSpace(req.login()) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid username: required field")
		return req, false
	}
	return req, true
}

// VerifyOTP handles POST /auth/verify-otp.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.users.VerifyOTP(r.Context(), req.UserID, req.OTPCode)
	if err != nil {
		HandleAPIError(w, r, err, "", shared.WithElevatedLogLevel())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}

// UpdateMe handles PATCH /auth/me.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	upd := service.ProfileUpdate{
		Username: req.Username,
		Phone:    req.Phone,
		ClassID:  req.ClassID,
	}
	if req.UserType != nil {
		t := domain.UserType(*req.UserType)
		upd.UserType = &t
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}
