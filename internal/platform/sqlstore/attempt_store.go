package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/store"
)

// AttemptStore implements store.AttemptStore.
type AttemptStore struct {
	db      store.DBTX
	dialect store.Dialect
	logger  *slog.Logger
}

var _ store.AttemptStore = (*AttemptStore)(nil)

// NewAttemptStore creates an attempt store over db.
func NewAttemptStore(db store.DBTX, dialect store.Dialect, logger *slog.Logger) *AttemptStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttemptStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "attempt_store")),
	}
}

// WithTx implements store.AttemptStore.WithTx.
func (s *AttemptStore) WithTx(tx *sql.Tx) store.AttemptStore {
	return &AttemptStore{db: tx, dialect: s.dialect, logger: s.logger}
}

// Create implements store.AttemptStore.Create.
func (s *AttemptStore) Create(ctx context.Context, a *domain.MCQAttempt) error {
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(`
		INSERT INTO user_mcq_attempts (user_id, chapter_id, mcq_id, selected_answer, is_correct, attempted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`),
		a.UserID, a.ChapterID, a.MCQID, a.SelectedAnswer, a.IsCorrect, a.AttemptedAt).Scan(&a.ID)
	if err != nil {
		return store.NewStoreError("attempt", "create", "failed to record attempt", MapError(err))
	}
	return nil
}

// DeleteByUserChapter implements store.AttemptStore.DeleteByUserChapter.
func (s *AttemptStore) DeleteByUserChapter(ctx context.Context, userID uuid.UUID, chapterID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(
		`DELETE FROM user_mcq_attempts WHERE user_id = $1 AND chapter_id = $2`),
		userID, chapterID)
	if err != nil {
		return 0, store.NewStoreError("attempt", "delete", "failed to delete attempts", MapError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

// ResetCount implements store.AttemptStore.ResetCount.
func (s *AttemptStore) ResetCount(ctx context.Context, userID uuid.UUID, chapterID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(
		`SELECT reset_count FROM user_reset_logs WHERE user_id = $1 AND chapter_id = $2`),
		userID, chapterID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, store.NewStoreError("reset_log", "get", "failed to read reset count", MapError(err))
	}
	return count, nil
}

// RecordReset implements store.AttemptStore.RecordReset.
func (s *AttemptStore) RecordReset(ctx context.Context, userID uuid.UUID, chapterID int64) error {
	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		UPDATE user_reset_logs SET reset_count = reset_count + 1
		WHERE user_id = $1 AND chapter_id = $2`),
		userID, chapterID)
	if err != nil {
		return store.NewStoreError("reset_log", "update", "failed to bump reset count", MapError(err))
	}
	if err := checkRowsAffected(result, store.ErrNotFound); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.dialect.Rebind(`
		INSERT INTO user_reset_logs (user_id, chapter_id, reset_count)
		VALUES ($1, $2, 1)`),
		userID, chapterID)
	if err != nil {
		return store.NewStoreError("reset_log", "create", "failed to create reset log", MapError(err))
	}
	return nil
}
