package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/store"
)

// CatalogStore implements store.CatalogStore.
type CatalogStore struct {
	db      store.DBTX
	dialect store.Dialect
	logger  *slog.Logger
}

var _ store.CatalogStore = (*CatalogStore)(nil)

// NewCatalogStore creates a catalog store over db.
func NewCatalogStore(db store.DBTX, dialect store.Dialect, logger *slog.Logger) *CatalogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "catalog_store")),
	}
}

// WithTx implements store.CatalogStore.WithTx.
func (s *CatalogStore) WithTx(tx *sql.Tx) store.CatalogStore {
	return &CatalogStore{db: tx, dialect: s.dialect, logger: s.logger}
}

// ListClasses implements store.CatalogStore.ListClasses.
func (s *CatalogStore) ListClasses(ctx context.Context) ([]domain.SchoolClass, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM classes ORDER BY id`)
	if err != nil {
		return nil, store.NewStoreError("class", "list", "failed to query classes", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	classes := []domain.SchoolClass{}
	for rows.Next() {
		var c domain.SchoolClass
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, store.NewStoreError("class", "list", "failed to scan class", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// ListSubjects implements store.CatalogStore.ListSubjects.
func (s *CatalogStore) ListSubjects(ctx context.Context, classID int64) ([]domain.Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		s.dialect.Rebind(`SELECT id, class_id, name FROM subjects WHERE class_id = $1 ORDER BY id`),
		classID)
	if err != nil {
		return nil, store.NewStoreError("subject", "list", "failed to query subjects", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	subjects := []domain.Subject{}
	for rows.Next() {
		var sub domain.Subject
		if err := rows.Scan(&sub.ID, &sub.ClassID, &sub.Name); err != nil {
			return nil, store.NewStoreError("subject", "list", "failed to scan subject", err)
		}
		subjects = append(subjects, sub)
	}
	return subjects, rows.Err()
}

// ListChapters implements store.CatalogStore.ListChapters.
func (s *CatalogStore) ListChapters(ctx context.Context, subjectID int64) ([]domain.Chapter, error) {
	rows, err := s.db.QueryContext(ctx,
		s.dialect.Rebind(`SELECT id, subject_id, title FROM chapters WHERE subject_id = $1 ORDER BY id`),
		subjectID)
	if err != nil {
		return nil, store.NewStoreError("chapter", "list", "failed to query chapters", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	chapters := []domain.Chapter{}
	for rows.Next() {
		var ch domain.Chapter
		if err := rows.Scan(&ch.ID, &ch.SubjectID, &ch.Title); err != nil {
			return nil, store.NewStoreError("chapter", "list", "failed to scan chapter", err)
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

// GetClass implements store.CatalogStore.GetClass.
func (s *CatalogStore) GetClass(ctx context.Context, id int64) (*domain.SchoolClass, error) {
	var c domain.SchoolClass
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT id, name FROM classes WHERE id = $1`), id).
		Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, s.lookupError(ctx, "class", id, err, store.ErrClassNotFound)
	}
	return &c, nil
}

// GetSubject implements store.CatalogStore.GetSubject.
func (s *CatalogStore) GetSubject(ctx context.Context, id int64) (*domain.Subject, error) {
	var sub domain.Subject
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT id, class_id, name FROM subjects WHERE id = $1`), id).
		Scan(&sub.ID, &sub.ClassID, &sub.Name)
	if err != nil {
		return nil, s.lookupError(ctx, "subject", id, err, store.ErrSubjectNotFound)
	}
	return &sub, nil
}

// GetChapter implements store.CatalogStore.GetChapter.
func (s *CatalogStore) GetChapter(ctx context.Context, id int64) (*domain.Chapter, error) {
	var ch domain.Chapter
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT id, subject_id, title FROM chapters WHERE id = $1`), id).
		Scan(&ch.ID, &ch.SubjectID, &ch.Title)
	if err != nil {
		return nil, s.lookupError(ctx, "chapter", id, err, store.ErrChapterNotFound)
	}
	return &ch, nil
}

func (s *CatalogStore) lookupError(ctx context.Context, entity string, id int64, err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		logger.FromContextOrDefault(ctx, s.logger).Debug(entity+" not found", slog.Int64("id", id))
		return notFound
	}
	return store.NewStoreError(entity, "get", fmt.Sprintf("failed to get %s %d", entity, id), MapError(err))
}

// EnsureClass implements store.CatalogStore.EnsureClass.
func (s *CatalogStore) EnsureClass(ctx context.Context, name string) (*domain.SchoolClass, error) {
	c := domain.SchoolClass{Name: name}
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT id FROM classes WHERE name = $1`), name).Scan(&c.ID)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("class", "ensure", "failed to look up class", MapError(err))
	}
	err = s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`INSERT INTO classes (name) VALUES ($1) RETURNING id`), name).Scan(&c.ID)
	if err != nil {
		return nil, store.NewStoreError("class", "ensure", "failed to create class", MapError(err))
	}
	return &c, nil
}

// EnsureSubject implements store.CatalogStore.EnsureSubject.
func (s *CatalogStore) EnsureSubject(ctx context.Context, classID int64, name string) (*domain.Subject, error) {
	sub := domain.Subject{ClassID: classID, Name: name}
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT id FROM subjects WHERE class_id = $1 AND name = $2`),
		classID, name).Scan(&sub.ID)
	if err == nil {
		return &sub, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("subject", "ensure", "failed to look up subject", MapError(err))
	}
	err = s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`INSERT INTO subjects (class_id, name) VALUES ($1, $2) RETURNING id`),
		classID, name).Scan(&sub.ID)
	if err != nil {
		return nil, store.NewStoreError("subject", "ensure", "failed to create subject", MapError(err))
	}
	return &sub, nil
}

// EnsureChapter implements store.CatalogStore.EnsureChapter.
func (s *CatalogStore) EnsureChapter(ctx context.Context, subjectID int64, title string) (*domain.Chapter, error) {
	ch := domain.Chapter{SubjectID: subjectID, Title: title}
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT id FROM chapters WHERE subject_id = $1 AND title = $2`),
		subjectID, title).Scan(&ch.ID)
	if err == nil {
		return &ch, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("chapter", "ensure", "failed to look up chapter", MapError(err))
	}
	err = s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`INSERT INTO chapters (subject_id, title) VALUES ($1, $2) RETURNING id`),
		subjectID, title).Scan(&ch.ID)
	if err != nil {
		return nil, store.NewStoreError("chapter", "ensure", "failed to create chapter", MapError(err))
	}
	return &ch, nil
}
