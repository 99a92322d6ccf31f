package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/service"
)

// MockGenerationService implements service.GenerationService for handler tests.
type MockGenerationService struct {
	GenerateFn func(ctx context.Context, chapterID int64, userID uuid.UUID, kind domain.ItemKind) (*service.GenerationResult, error)
}

var _ service.GenerationService = (*MockGenerationService)(nil)

// Generate implements service.GenerationService.
func (m *MockGenerationService) Generate(
	ctx context.Context,
	chapterID int64,
	userID uuid.UUID,
	kind domain.ItemKind,
) (*service.GenerationResult, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, chapterID, userID, kind)
	}
	return &service.GenerationResult{
		ItemSet: domain.ItemSet{Kind: kind},
		Outcome: service.OutcomeAlreadySatisfied,
	}, nil
}

// MockUserService implements service.UserService for handler tests. Unset
// functions return zero values.
type MockUserService struct {
	SignupFn        func(ctx context.Context, in service.SignupInput) (*domain.User, error)
	LoginFn         func(ctx context.Context, email, password string) (*service.LoginResult, error)
	VerifyOTPFn     func(ctx context.Context, userID uuid.UUID, code string) (string, error)
	GetProfileFn    func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfileFn func(ctx context.Context, userID uuid.UUID, upd service.ProfileUpdate) (*domain.User, error)
}

var _ service.UserService = (*MockUserService)(nil)

// Signup implements service.UserService.
func (m *MockUserService) Signup(ctx context.Context, in service.SignupInput) (*domain.User, error) {
	if m.SignupFn != nil {
		return m.SignupFn(ctx, in)
	}
	return &domain.User{ID: uuid.New(), Email: in.Email, UserType: domain.UserTypeStudent}, nil
}

// Login implements service.UserService.
func (m *MockUserService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return &service.LoginResult{}, nil
}

// VerifyOTP implements service.UserService.
func (m *MockUserService) VerifyOTP(ctx context.Context, userID uuid.UUID, code string) (string, error) {
	if m.VerifyOTPFn != nil {
		return m.VerifyOTPFn(ctx, userID, code)
	}
	return "", nil
}

// GetProfile implements service.UserService.
func (m *MockUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetProfileFn != nil {
		return m.GetProfileFn(ctx, userID)
	}
	return &domain.User{ID: userID}, nil
}

// UpdateProfile implements service.UserService.
func (m *MockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, upd service.ProfileUpdate) (*domain.User, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, userID, upd)
	}
	return &domain.User{ID: userID}, nil
}

// MockRevisionService implements service.RevisionService for handler tests.
type MockRevisionService struct {
	UpdateProgressFn func(ctx context.Context, userID uuid.UUID, chapterID int64, correct, total int) (*domain.Progress, error)
	DailyRevisionFn  func(ctx context.Context, userID uuid.UUID) ([]domain.MCQ, error)
	ProgressStatsFn  func(ctx context.Context, userID uuid.UUID) (domain.ProgressStats, error)
	RecordAttemptFn  func(ctx context.Context, userID uuid.UUID, mcqID int64, selected string) (*service.AttemptResult, error)
	ResetChapterFn   func(ctx context.Context, userID uuid.UUID, chapterID int64) (*service.ResetResult, error)
}

var _ service.RevisionService = (*MockRevisionService)(nil)

// UpdateProgress implements service.RevisionService.
func (m *MockRevisionService) UpdateProgress(
	ctx context.Context,
	userID uuid.UUID,
	chapterID int64,
	correct, total int,
) (*domain.Progress, error) {
	if m.UpdateProgressFn != nil {
		return m.UpdateProgressFn(ctx, userID, chapterID, correct, total)
	}
	return &domain.Progress{UserID: userID, ChapterID: chapterID}, nil
}

// DailyRevision implements service.RevisionService.
func (m *MockRevisionService) DailyRevision(ctx context.Context, userID uuid.UUID) ([]domain.MCQ, error) {
	if m.DailyRevisionFn != nil {
		return m.DailyRevisionFn(ctx, userID)
	}
	return []domain.MCQ{}, nil
}

// ProgressStats implements service.RevisionService.
func (m *MockRevisionService) ProgressStats(ctx context.Context, userID uuid.UUID) (domain.ProgressStats, error) {
	if m.ProgressStatsFn != nil {
		return m.ProgressStatsFn(ctx, userID)
	}
	return domain.ProgressStats{}, nil
}

// RecordAttempt implements service.RevisionService.
func (m *MockRevisionService) RecordAttempt(
	ctx context.Context,
	userID uuid.UUID,
	mcqID int64,
	selected string,
) (*service.AttemptResult, error) {
	if m.RecordAttemptFn != nil {
		return m.RecordAttemptFn(ctx, userID, mcqID, selected)
	}
	return &service.AttemptResult{}, nil
}

// ResetChapter implements service.RevisionService.
func (m *MockRevisionService) ResetChapter(ctx context.Context, userID uuid.UUID, chapterID int64) (*service.ResetResult, error) {
	if m.ResetChapterFn != nil {
		return m.ResetChapterFn(ctx, userID, chapterID)
	}
	return &service.ResetResult{}, nil
}
