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

const mcqColumns = `id, chapter_id, question, option_a, option_b, option_c, option_d, correct`

// ItemStore implements store.ItemStore.
type ItemStore struct {
	db      store.DBTX
	dialect store.Dialect
	logger  *slog.Logger
}

var _ store.ItemStore = (*ItemStore)(nil)

// NewItemStore creates an item store over db.
func NewItemStore(db store.DBTX, dialect store.Dialect, logger *slog.Logger) *ItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "item_store")),
	}
}

// WithTx implements store.ItemStore.WithTx.
func (s *ItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &ItemStore{db: tx, dialect: s.dialect, logger: s.logger}
}

// List implements store.ItemStore.List.
func (s *ItemStore) List(ctx context.Context, chapterID int64, kind domain.ItemKind) (domain.ItemSet, error) {
	set := domain.ItemSet{Kind: kind}
	var err error
	switch kind {
	case domain.KindMultipleChoice:
		set.MCQs, err = s.queryMCQs(ctx,
			`SELECT `+mcqColumns+` FROM mcqs WHERE chapter_id = $1 ORDER BY id`, chapterID)
	case domain.KindFlashcard:
		set.Flashcards, err = s.listFlashcards(ctx, chapterID)
	default:
		return set, fmt.Errorf("%w: %q", domain.ErrInvalidItemKind, kind)
	}
	if err != nil {
		return set, err
	}
	return set, nil
}

func (s *ItemStore) queryMCQs(ctx context.Context, query string, args ...any) ([]domain.MCQ, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return nil, store.NewStoreError("mcq", "list", "failed to query mcqs", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	mcqs := []domain.MCQ{}
	for rows.Next() {
		var m domain.MCQ
		if err := rows.Scan(&m.ID, &m.ChapterID, &m.Question,
			&m.OptionA, &m.OptionB, &m.OptionC, &m.OptionD, &m.Correct); err != nil {
			return nil, store.NewStoreError("mcq", "list", "failed to scan mcq", err)
		}
		mcqs = append(mcqs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("mcq", "list", "failed to iterate mcqs", err)
	}
	return mcqs, nil
}

func (s *ItemStore) listFlashcards(ctx context.Context, chapterID int64) ([]domain.Flashcard, error) {
	rows, err := s.db.QueryContext(ctx,
		s.dialect.Rebind(`SELECT id, chapter_id, question, answer FROM flashcards WHERE chapter_id = $1 ORDER BY id`),
		chapterID)
	if err != nil {
		return nil, store.NewStoreError("flashcard", "list", "failed to query flashcards", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	cards := []domain.Flashcard{}
	for rows.Next() {
		var f domain.Flashcard
		if err := rows.Scan(&f.ID, &f.ChapterID, &f.Question, &f.Answer); err != nil {
			return nil, store.NewStoreError("flashcard", "list", "failed to scan flashcard", err)
		}
		cards = append(cards, f)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("flashcard", "list", "failed to iterate flashcards", err)
	}
	return cards, nil
}

// Insert implements store.ItemStore.Insert.
func (s *ItemStore) Insert(ctx context.Context, set *domain.ItemSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	switch set.Kind {
	case domain.KindMultipleChoice:
		for i := range set.MCQs {
			m := &set.MCQs[i]
			if err := m.Validate(); err != nil {
				return fmt.Errorf("%w: mcq %d: %v", store.ErrInvalidEntity, i, err)
			}
			err := s.db.QueryRowContext(ctx, s.dialect.Rebind(`
				INSERT INTO mcqs (chapter_id, question, option_a, option_b, option_c, option_d, correct)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id`),
				m.ChapterID, m.Question, m.OptionA, m.OptionB, m.OptionC, m.OptionD, m.Correct,
			).Scan(&m.ID)
			if err != nil {
				log.Error("failed to insert mcq",
					slog.String("error", err.Error()),
					slog.Int64("chapter_id", m.ChapterID))
				return store.NewStoreError("mcq", "insert", "failed to insert mcq", MapError(err))
			}
		}
	case domain.KindFlashcard:
		for i := range set.Flashcards {
			f := &set.Flashcards[i]
			if err := f.Validate(); err != nil {
				return fmt.Errorf("%w: flashcard %d: %v", store.ErrInvalidEntity, i, err)
			}
			err := s.db.QueryRowContext(ctx, s.dialect.Rebind(`
				INSERT INTO flashcards (chapter_id, question, answer)
				VALUES ($1, $2, $3)
				RETURNING id`),
				f.ChapterID, f.Question, f.Answer,
			).Scan(&f.ID)
			if err != nil {
				log.Error("failed to insert flashcard",
					slog.String("error", err.Error()),
					slog.Int64("chapter_id", f.ChapterID))
				return store.NewStoreError("flashcard", "insert", "failed to insert flashcard", MapError(err))
			}
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidItemKind, set.Kind)
	}

	log.Debug("items inserted",
		slog.String("kind", string(set.Kind)),
		slog.Int("count", set.Len()))
	return nil
}

// GetMCQ implements store.ItemStore.GetMCQ.
func (s *ItemStore) GetMCQ(ctx context.Context, id int64) (*domain.MCQ, error) {
	var m domain.MCQ
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT `+mcqColumns+` FROM mcqs WHERE id = $1`), id).
		Scan(&m.ID, &m.ChapterID, &m.Question, &m.OptionA, &m.OptionB, &m.OptionC, &m.OptionD, &m.Correct)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMCQNotFound
		}
		return nil, store.NewStoreError("mcq", "get", "failed to get mcq", MapError(err))
	}
	return &m, nil
}

// RandomMCQs implements store.ItemStore.RandomMCQs.
func (s *ItemStore) RandomMCQs(ctx context.Context, classID *int64, limit int) ([]domain.MCQ, error) {
	if classID == nil {
		return s.queryMCQs(ctx,
			`SELECT `+mcqColumns+` FROM mcqs ORDER BY RANDOM() LIMIT $1`, limit)
	}
	return s.queryMCQs(ctx, `
		SELECT m.id, m.chapter_id, m.question, m.option_a, m.option_b, m.option_c, m.option_d, m.correct
		FROM mcqs m
		JOIN chapters c ON c.id = m.chapter_id
		JOIN subjects sub ON sub.id = c.subject_id
		WHERE sub.class_id = $1
		ORDER BY RANDOM()
		LIMIT $2`, *classID, limit)
}

// DeleteMCQsByChapter implements store.ItemStore.DeleteMCQsByChapter.
func (s *ItemStore) DeleteMCQsByChapter(ctx context.Context, chapterID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		s.dialect.Rebind(`DELETE FROM mcqs WHERE chapter_id = $1`), chapterID)
	if err != nil {
		return 0, store.NewStoreError("mcq", "delete", "failed to delete chapter mcqs", MapError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}
