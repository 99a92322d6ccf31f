package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
)

// ProgressStore persists per-chapter practice progress.
type ProgressStore interface {
	// Get returns store.ErrProgressNotFound when the user has not practiced the chapter.
	Get(ctx context.Context, userID uuid.UUID, chapterID int64) (*domain.Progress, error)
	Create(ctx context.Context, p *domain.Progress) error
	Update(ctx context.Context, p *domain.Progress) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Progress, error)
}

// AttemptStore persists MCQ answers and the reset log that bounds how often
// a user may clear them.
type AttemptStore interface {
	Create(ctx context.Context, attempt *domain.MCQAttempt) error

	// DeleteByUserChapter removes a user's attempts for a chapter.
	DeleteByUserChapter(ctx context.Context, userID uuid.UUID, chapterID int64) (int64, error)

	// ResetCount returns how many resets the user has done on the chapter.
	ResetCount(ctx context.Context, userID uuid.UUID, chapterID int64) (int, error)

	// RecordReset increments the reset counter, creating the log row if needed.
	RecordReset(ctx context.Context, userID uuid.UUID, chapterID int64) error

	// WithTx returns a new store instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AttemptStore
}
