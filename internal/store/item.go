package store

import (
	"context"
	"database/sql"

	"github.com/ncert-revision/revision-api/internal/domain"
)

// ItemStore persists generated multiple-choice questions and flashcards.
type ItemStore interface {
	// List returns the chapter's items of the given kind ordered by id.
	List(ctx context.Context, chapterID int64, kind domain.ItemKind) (domain.ItemSet, error)

	// Insert stores every item in the set and fills in their IDs.
	// Items are validated first; an invalid item aborts the insert with
	// store.ErrInvalidEntity.
	Insert(ctx context.Context, set *domain.ItemSet) error

	// GetMCQ returns store.ErrMCQNotFound if the question does not exist.
	GetMCQ(ctx context.Context, id int64) (*domain.MCQ, error)

	// RandomMCQs returns up to limit random questions. A non-nil classID
	// restricts the draw to chapters of that class.
	RandomMCQs(ctx context.Context, classID *int64, limit int) ([]domain.MCQ, error)

	// DeleteMCQsByChapter removes every question of a chapter and reports
	// how many were deleted.
	DeleteMCQsByChapter(ctx context.Context, chapterID int64) (int64, error)

	// WithTx returns a new store instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ItemStore
}
