package store

import (
	"context"
	"database/sql"

	"github.com/ncert-revision/revision-api/internal/domain"
)

// CatalogStore provides access to the read-mostly class/subject/chapter tree.
type CatalogStore interface {
	// ListClasses returns every class ordered by id.
	ListClasses(ctx context.Context) ([]domain.SchoolClass, error)

	// ListSubjects returns the subjects of a class ordered by id.
	ListSubjects(ctx context.Context, classID int64) ([]domain.Subject, error)

	// ListChapters returns the chapters of a subject ordered by id.
	ListChapters(ctx context.Context, subjectID int64) ([]domain.Chapter, error)

	// GetClass returns store.ErrClassNotFound if the class does not exist.
	GetClass(ctx context.Context, id int64) (*domain.SchoolClass, error)

	// GetSubject returns store.ErrSubjectNotFound if the subject does not exist.
	GetSubject(ctx context.Context, id int64) (*domain.Subject, error)

	// GetChapter returns store.ErrChapterNotFound if the chapter does not exist.
	GetChapter(ctx context.Context, id int64) (*domain.Chapter, error)

	// EnsureClass returns the class with the given name, creating it if needed.
	EnsureClass(ctx context.Context, name string) (*domain.SchoolClass, error)

	// EnsureSubject returns the named subject of a class, creating it if needed.
	EnsureSubject(ctx context.Context, classID int64, name string) (*domain.Subject, error)

	// EnsureChapter returns the titled chapter of a subject, creating it if needed.
	EnsureChapter(ctx context.Context, subjectID int64, title string) (*domain.Chapter, error)

	// WithTx returns a new store instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CatalogStore
}
