package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/store"
)

const (
	demoEmail    = "test@example.com"
	demoPassword = "password123"
)

type seeder struct {
	catalog store.CatalogStore
	items   store.ItemStore
	users   store.UserStore
	logger  *slog.Logger
}

// seedBase creates the demo account and the Class 10 / Mathematics / Real
// Numbers chapter with its sample items.
func (s *seeder) seedBase(ctx context.Context) error {
	if err := s.ensureDemoUser(ctx); err != nil {
		return err
	}

	chapter, err := s.ensureChapter(ctx, "Class 10", "Mathematics", "Real Numbers")
	if err != nil {
		return err
	}

	if err := s.ensureItems(ctx, domain.ItemSet{
		Kind: domain.KindFlashcard,
		Flashcards: []domain.Flashcard{
			{Question: "What is a rational number?", Answer: "A number expressed as p/q where q is not 0."},
			{Question: "What is Euclid's Division Lemma?", Answer: "a = bq + r, 0 <= r < b"},
		},
	}, chapter.ID); err != nil {
		return err
	}

	return s.ensureItems(ctx, domain.ItemSet{
		Kind: domain.KindMultipleChoice,
		MCQs: []domain.MCQ{
			{
				Question: "Which is a rational number?",
				OptionA:  "√2",
				OptionB:  "π",
				OptionC:  "0.333...",
				OptionD:  "√3",
				Correct:  domain.OptionC,
			},
			{
				Question: "Product of non-zero rational and irrational is:",
				OptionA:  "always rational",
				OptionB:  "always irrational",
				OptionC:  "rational or irrational",
				OptionD:  "one",
				Correct:  domain.OptionB,
			},
		},
	}, chapter.ID)
}

// seedExtended adds every class in extendedCatalog with its subjects and
// chapters.
func (s *seeder) seedExtended(ctx context.Context) error {
	for _, class := range extendedCatalog {
		for _, subject := range class.Subjects {
			for _, title := range subject.Chapters {
				if _, err := s.ensureChapter(ctx, class.Name, subject.Name, title); err != nil {
					return err
				}
			}
		}
		s.logger.Info("class seeded", slog.String("class", class.Name))
	}
	return nil
}

func (s *seeder) ensureDemoUser(ctx context.Context) error {
	_, err := s.users.GetByEmail(ctx, demoEmail)
	if err == nil {
		s.logger.Debug("demo user already exists")
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("failed to look up demo user: %w", err)
	}

	user, err := domain.NewUser(demoEmail, demoPassword, time.Now())
	if err != nil {
		return err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}
	s.logger.Info("demo user created", slog.String("email", demoEmail))
	return nil
}

func (s *seeder) ensureChapter(ctx context.Context, className, subjectName, title string) (*domain.Chapter, error) {
	class, err := s.catalog.EnsureClass(ctx, className)
	if err != nil {
		return nil, err
	}
	subject, err := s.catalog.EnsureSubject(ctx, class.ID, subjectName)
	if err != nil {
		return nil, err
	}
	return s.catalog.EnsureChapter(ctx, subject.ID, title)
}

// ensureItems stores set for the chapter unless it already has items of
// that kind.
func (s *seeder) ensureItems(ctx context.Context, set domain.ItemSet, chapterID int64) error {
	existing, err := s.items.List(ctx, chapterID, set.Kind)
	if err != nil {
		return err
	}
	if existing.Len() > 0 {
		return nil
	}

	set = set.WithChapter(chapterID)
	if err := s.items.Insert(ctx, &set); err != nil {
		return fmt.Errorf("failed to insert %s items: %w", set.Kind, err)
	}
	return nil
}
