package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/redact"
	"github.com/ncert-revision/revision-api/internal/store"
)

// DailyRevisionSize is the number of questions in the daily revision set.
const DailyRevisionSize = 10

// AttemptResult reports whether an answer was correct.
type AttemptResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectOption string `json:"correct_option"`
}

// ResetResult reports the reset counter after a successful reset.
type ResetResult struct {
	ResetCount      int `json:"reset_count"`
	ResetsRemaining int `json:"resets_remaining"`
}

// RevisionService tracks practice on chapters.
type RevisionService interface {
	// UpdateProgress folds a quiz score into the user's chapter progress.
	UpdateProgress(ctx context.Context, userID uuid.UUID, chapterID int64, correct, total int) (*domain.Progress, error)

	// DailyRevision returns up to DailyRevisionSize random questions from the
	// user's class, or from any class when that yields nothing.
	DailyRevision(ctx context.Context, userID uuid.UUID) ([]domain.MCQ, error)

	// ProgressStats summarizes the user's progress records.
	ProgressStats(ctx context.Context, userID uuid.UUID) (domain.ProgressStats, error)

	// RecordAttempt stores an answer to a question and grades it.
	RecordAttempt(ctx context.Context, userID uuid.UUID, mcqID int64, selected string) (*AttemptResult, error)

	// ResetChapter wipes the user's attempts and the chapter's questions so
	// they can be generated again. Returns ErrResetLimitReached after
	// domain.MaxResetsPerChapter resets.
	ResetChapter(ctx context.Context, userID uuid.UUID, chapterID int64) (*ResetResult, error)
}

type revisionServiceImpl struct {
	db       *sql.DB
	users    store.UserStore
	catalog  store.CatalogStore
	items    store.ItemStore
	progress store.ProgressStore
	attempts store.AttemptStore
	now      func() time.Time
	logger   *slog.Logger
}

// NewRevisionService creates a RevisionService. now defaults to time.Now.
func NewRevisionService(
	db *sql.DB,
	users store.UserStore,
	catalog store.CatalogStore,
	items store.ItemStore,
	progress store.ProgressStore,
	attempts store.AttemptStore,
	now func() time.Time,
	logger *slog.Logger,
) (RevisionService, error) {
	switch {
	case db == nil:
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	case users == nil:
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	case catalog == nil:
		return nil, domain.NewValidationError("catalog", "cannot be nil", domain.ErrValidation)
	case items == nil:
		return nil, domain.NewValidationError("items", "cannot be nil", domain.ErrValidation)
	case progress == nil:
		return nil, domain.NewValidationError("progress", "cannot be nil", domain.ErrValidation)
	case attempts == nil:
		return nil, domain.NewValidationError("attempts", "cannot be nil", domain.ErrValidation)
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &revisionServiceImpl{
		db:       db,
		users:    users,
		catalog:  catalog,
		items:    items,
		progress: progress,
		attempts: attempts,
		now:      now,
		logger:   logger.With(slog.String("component", "revision_service")),
	}, nil
}

// UpdateProgress implements RevisionService.UpdateProgress.
func (s *revisionServiceImpl) UpdateProgress(
	ctx context.Context,
	userID uuid.UUID,
	chapterID int64,
	correct, total int,
) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	accuracy, err := domain.ScoreAccuracy(correct, total)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetChapter(ctx, chapterID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p, err := s.progress.Get(ctx, userID, chapterID)
	switch {
	case errors.Is(err, store.ErrProgressNotFound):
		p = &domain.Progress{
			UserID:        userID,
			ChapterID:     chapterID,
			Accuracy:      accuracy,
			Streak:        1,
			LastPracticed: now,
		}
		err = s.progress.Create(ctx, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, store.ErrDuplicate) {
			log.Error("failed to create progress", slog.String("error", redact.Error(err)))
			return nil, NewServiceError("update_progress", "failed to create progress", err)
		}
		// A concurrent first update created the row; fold into it.
		if p, err = s.progress.Get(ctx, userID, chapterID); err != nil {
			return nil, NewServiceError("update_progress", "failed to reload progress", err)
		}
	case err != nil:
		return nil, NewServiceError("update_progress", "failed to load progress", err)
	}

	p.Record(accuracy, now)
	if err := s.progress.Update(ctx, p); err != nil {
		log.Error("failed to update progress", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("update_progress", "failed to update progress", err)
	}
	return p, nil
}

// DailyRevision implements RevisionService.DailyRevision.
func (s *revisionServiceImpl) DailyRevision(ctx context.Context, userID uuid.UUID) ([]domain.MCQ, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if user.ClassID != nil {
		mcqs, err := s.items.RandomMCQs(ctx, user.ClassID, DailyRevisionSize)
		if err != nil {
			return nil, NewServiceError("daily_revision", "failed to pick class questions", err)
		}
		if len(mcqs) > 0 {
			return mcqs, nil
		}
	}

	mcqs, err := s.items.RandomMCQs(ctx, nil, DailyRevisionSize)
	if err != nil {
		return nil, NewServiceError("daily_revision", "failed to pick questions", err)
	}
	if mcqs == nil {
		mcqs = []domain.MCQ{}
	}
	return mcqs, nil
}

// ProgressStats implements RevisionService.ProgressStats.
func (s *revisionServiceImpl) ProgressStats(ctx context.Context, userID uuid.UUID) (domain.ProgressStats, error) {
	records, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return domain.ProgressStats{}, NewServiceError("progress_stats", "failed to list progress", err)
	}
	return domain.SummarizeProgress(records), nil
}

// RecordAttempt implements RevisionService.RecordAttempt.
func (s *revisionServiceImpl) RecordAttempt(
	ctx context.Context,
	userID uuid.UUID,
	mcqID int64,
	selected string,
) (*AttemptResult, error) {
	if strings.TrimSpace(selected) == "" {
		return nil, fmt.Errorf("%w: no option selected", domain.ErrInvalidOption)
	}
	option, err := domain.NormalizeOption(selected)
	if err != nil {
		return nil, err
	}

	mcq, err := s.items.GetMCQ(ctx, mcqID)
	if err != nil {
		return nil, err
	}

	attempt := &domain.MCQAttempt{
		UserID:         userID,
		ChapterID:      mcq.ChapterID,
		MCQID:          mcq.ID,
		SelectedAnswer: option,
		IsCorrect:      option == mcq.Correct,
		AttemptedAt:    s.now().UTC(),
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to record attempt",
			slog.String("error", redact.Error(err)),
			slog.Int64("mcq_id", mcqID))
		return nil, NewServiceError("record_attempt", "failed to record attempt", err)
	}

	return &AttemptResult{IsCorrect: attempt.IsCorrect, CorrectOption: mcq.Correct}, nil
}

// ResetChapter implements RevisionService.ResetChapter.
func (s *revisionServiceImpl) ResetChapter(ctx context.Context, userID uuid.UUID, chapterID int64) (*ResetResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.Int64("chapter_id", chapterID))

	if _, err := s.catalog.GetChapter(ctx, chapterID); err != nil {
		return nil, err
	}

	var result ResetResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		attempts := s.attempts.WithTx(tx)

		count, err := attempts.ResetCount(ctx, userID, chapterID)
		if err != nil {
			return err
		}
		if count >= domain.MaxResetsPerChapter {
			return ErrResetLimitReached
		}

		cleared, err := attempts.DeleteByUserChapter(ctx, userID, chapterID)
		if err != nil {
			return err
		}
		deleted, err := s.items.WithTx(tx).DeleteMCQsByChapter(ctx, chapterID)
		if err != nil {
			return err
		}
		if err := attempts.RecordReset(ctx, userID, chapterID); err != nil {
			return err
		}

		log.Info("chapter attempts reset",
			slog.Int64("attempts_cleared", cleared),
			slog.Int64("mcqs_deleted", deleted))
		result.ResetCount = count + 1
		result.ResetsRemaining = domain.MaxResetsPerChapter - result.ResetCount
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrResetLimitReached) {
			return nil, err
		}
		log.Error("failed to reset chapter", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("reset_chapter", "failed to reset chapter", err)
	}
	return &result, nil
}
