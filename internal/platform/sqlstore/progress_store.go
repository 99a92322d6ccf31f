package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/store"
)

// ProgressStore implements store.ProgressStore.
type ProgressStore struct {
	db      store.DBTX
	dialect store.Dialect
	logger  *slog.Logger
}

var _ store.ProgressStore = (*ProgressStore)(nil)

// NewProgressStore creates a progress store over db.
func NewProgressStore(db store.DBTX, dialect store.Dialect, logger *slog.Logger) *ProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "progress_store")),
	}
}

const progressColumns = `id, user_id, chapter_id, accuracy, streak, last_practiced`

func scanProgress(row interface{ Scan(...any) error }) (*domain.Progress, error) {
	var p domain.Progress
	if err := row.Scan(&p.ID, &p.UserID, &p.ChapterID, &p.Accuracy, &p.Streak, &p.LastPracticed); err != nil {
		return nil, err
	}
	return &p, nil
}

// Get implements store.ProgressStore.Get.
func (s *ProgressStore) Get(ctx context.Context, userID uuid.UUID, chapterID int64) (*domain.Progress, error) {
	p, err := scanProgress(s.db.QueryRowContext(ctx, s.dialect.Rebind(
		`SELECT `+progressColumns+` FROM progress WHERE user_id = $1 AND chapter_id = $2`),
		userID, chapterID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressNotFound
		}
		return nil, store.NewStoreError("progress", "get", "failed to get progress", MapError(err))
	}
	return p, nil
}

// Create implements store.ProgressStore.Create.
func (s *ProgressStore) Create(ctx context.Context, p *domain.Progress) error {
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(`
		INSERT INTO progress (user_id, chapter_id, accuracy, streak, last_practiced)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`),
		p.UserID, p.ChapterID, p.Accuracy, p.Streak, p.LastPracticed).Scan(&p.ID)
	if err != nil {
		return store.NewStoreError("progress", "create", "failed to create progress", MapError(err))
	}
	return nil
}

// Update implements store.ProgressStore.Update.
func (s *ProgressStore) Update(ctx context.Context, p *domain.Progress) error {
	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		UPDATE progress SET accuracy = $2, streak = $3, last_practiced = $4
		WHERE id = $1`),
		p.ID, p.Accuracy, p.Streak, p.LastPracticed)
	if err != nil {
		return store.NewStoreError("progress", "update", "failed to update progress", MapError(err))
	}
	return checkRowsAffected(result, store.ErrProgressNotFound)
}

// ListByUser implements store.ProgressStore.ListByUser.
func (s *ProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Progress, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(
		`SELECT `+progressColumns+` FROM progress WHERE user_id = $1 ORDER BY chapter_id`), userID)
	if err != nil {
		return nil, store.NewStoreError("progress", "list", "failed to query progress", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var records []domain.Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, store.NewStoreError("progress", "list", "failed to scan progress", err)
		}
		records = append(records, *p)
	}
	return records, rows.Err()
}
