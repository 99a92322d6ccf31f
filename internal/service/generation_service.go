package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/config"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/generation"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/quota"
	"github.com/ncert-revision/revision-api/internal/redact"
	"github.com/ncert-revision/revision-api/internal/store"
)

// Outcome describes how a generation request was satisfied.
type Outcome string

const (
	// OutcomeGenerated means new items were produced and committed.
	OutcomeGenerated Outcome = "generated"
	// OutcomeAlreadySatisfied means the chapter already had enough items.
	OutcomeAlreadySatisfied Outcome = "already_satisfied"
	// OutcomeDegradedFallback means generation failed and existing items were served.
	OutcomeDegradedFallback Outcome = "degraded_fallback"
)

// snippetLength bounds how much provider output reaches the logs.
const snippetLength = 200

// errQuotaDenied aborts the commit transaction when the ledger refuses the
// reservation.
var errQuotaDenied = errors.New("quota reservation denied")

// GenerationResult is the item set returned to the caller and how it was obtained.
type GenerationResult struct {
	domain.ItemSet
	Outcome Outcome
}

// GenerationConfig holds the limits applied by GenerationService.
type GenerationConfig struct {
	// ItemsPerChapter is both the "enough items" threshold and the cap on
	// items persisted per call.
	ItemsPerChapter int
	// DailyQuota is the per-user ceiling of successful generations per day.
	DailyQuota int
	// ProviderTimeout bounds a single provider call.
	ProviderTimeout time.Duration
	// Now is the clock used to pick the quota day. Defaults to time.Now.
	Now func() time.Time
}

// GenerationConfigFrom builds a GenerationConfig from the llm settings.
func GenerationConfigFrom(cfg config.LLMConfig) GenerationConfig {
	return GenerationConfig{
		ItemsPerChapter: cfg.ItemsPerChapter,
		DailyQuota:      cfg.DailyQuota,
		ProviderTimeout: cfg.Timeout(),
	}
}

// GenerationService produces study items for a chapter on demand.
type GenerationService interface {
	// Generate returns items of kind for chapterID, calling the content
	// provider only when the chapter has fewer than ItemsPerChapter items.
	//
	// Errors: ErrProviderUnavailable when no provider is configured,
	// *generation.QuotaExceededError when the user's daily quota is used up,
	// ErrContextNotFound when the chapter chain cannot be resolved,
	// ErrProviderFailure / ErrMalformedResponse when generation fails and
	// there is nothing to fall back to, ErrPersistence when the commit fails.
	Generate(ctx context.Context, chapterID int64, userID uuid.UUID, kind domain.ItemKind) (*GenerationResult, error)
}

type generationServiceImpl struct {
	db       *sql.DB
	catalog  store.CatalogStore
	items    store.ItemStore
	ledger   *quota.Ledger
	provider generation.Provider
	cfg      GenerationConfig
	logger   *slog.Logger
}

// NewGenerationService creates a GenerationService. provider may be nil, in
// which case every request fails with ErrProviderUnavailable.
func NewGenerationService(
	db *sql.DB,
	catalog store.CatalogStore,
	items store.ItemStore,
	ledger *quota.Ledger,
	provider generation.Provider,
	cfg GenerationConfig,
	logger *slog.Logger,
) (GenerationService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if catalog == nil {
		return nil, domain.NewValidationError("catalog", "cannot be nil", domain.ErrValidation)
	}
	if items == nil {
		return nil, domain.NewValidationError("items", "cannot be nil", domain.ErrValidation)
	}
	if ledger == nil {
		return nil, domain.NewValidationError("ledger", "cannot be nil", domain.ErrValidation)
	}
	if cfg.ItemsPerChapter <= 0 {
		return nil, domain.NewValidationError("ItemsPerChapter", "must be positive", domain.ErrValidation)
	}
	if cfg.ProviderTimeout <= 0 {
		return nil, domain.NewValidationError("ProviderTimeout", "must be positive", domain.ErrValidation)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &generationServiceImpl{
		db:       db,
		catalog:  catalog,
		items:    items,
		ledger:   ledger,
		provider: provider,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "generation_service")),
	}, nil
}

// Generate implements GenerationService.Generate.
func (s *generationServiceImpl) Generate(
	ctx context.Context,
	chapterID int64,
	userID uuid.UUID,
	kind domain.ItemKind,
) (*GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.Int64("chapter_id", chapterID),
		slog.String("user_id", userID.String()),
		slog.String("kind", string(kind)),
	)
	ctx = logger.WithLogger(ctx, log)

	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidItemKind, kind)
	}
	if s.provider == nil {
		return nil, generation.ErrProviderUnavailable
	}

	existing, err := s.items.List(ctx, chapterID, kind)
	if err != nil {
		log.Error("failed to list existing items", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("generate", "failed to list existing items", err)
	}
	if existing.Len() >= s.cfg.ItemsPerChapter {
		log.Debug("chapter already has enough items", slog.Int("count", existing.Len()))
		return &GenerationResult{ItemSet: existing, Outcome: OutcomeAlreadySatisfied}, nil
	}

	day := domain.DayOf(s.cfg.Now())
	used, err := s.ledger.Peek(ctx, userID, day)
	if err != nil {
		log.Error("failed to read quota", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("generate", "failed to read quota", err)
	}
	if used >= s.cfg.DailyQuota {
		log.Info("daily generation quota exhausted", slog.Int("used", used))
		return nil, &generation.QuotaExceededError{Limit: s.cfg.DailyQuota, Existing: existing}
	}

	cc, err := s.resolveContext(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	generated, err := s.produce(ctx, cc, kind)
	if err != nil {
		if !errors.Is(err, generation.ErrProviderFailure) && !errors.Is(err, generation.ErrMalformedResponse) {
			return nil, err
		}
		if existing.Len() > 0 {
			log.Warn("generation failed, serving existing items",
				slog.String("error", redact.Error(err)),
				slog.Int("count", existing.Len()))
			return &GenerationResult{ItemSet: existing, Outcome: OutcomeDegradedFallback}, nil
		}
		log.Warn("generation failed with nothing to fall back to",
			slog.String("error", redact.Error(err)))
		return nil, err
	}

	return s.commit(ctx, userID, day, generated, existing)
}

// resolveContext walks chapter -> subject -> class.
func (s *generationServiceImpl) resolveContext(ctx context.Context, chapterID int64) (domain.ChapterContext, error) {
	var cc domain.ChapterContext

	chapter, err := s.catalog.GetChapter(ctx, chapterID)
	if err != nil {
		return cc, contextError(err)
	}
	subject, err := s.catalog.GetSubject(ctx, chapter.SubjectID)
	if err != nil {
		return cc, contextError(err)
	}
	class, err := s.catalog.GetClass(ctx, subject.ClassID)
	if err != nil {
		return cc, contextError(err)
	}

	cc.Chapter = *chapter
	cc.Subject = *subject
	cc.Class = *class
	return cc, nil
}

func contextError(err error) error {
	if store.IsNotFoundError(err) {
		return fmt.Errorf("%w: %w", generation.ErrContextNotFound, err)
	}
	return NewServiceError("generate", "failed to resolve chapter context", err)
}

// produce asks the provider for items and parses its reply.
func (s *generationServiceImpl) produce(
	ctx context.Context,
	cc domain.ChapterContext,
	kind domain.ItemKind,
) (domain.ItemSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt, err := generation.BuildPrompt(kind, cc, s.cfg.ItemsPerChapter)
	if err != nil {
		return domain.ItemSet{}, NewServiceError("generate", "failed to build prompt", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	defer cancel()

	start := time.Now()
	raw, err := s.provider.Complete(callCtx, prompt)
	if err != nil {
		if !errors.Is(err, generation.ErrProviderFailure) && !errors.Is(err, generation.ErrMalformedResponse) {
			err = fmt.Errorf("%w: %w", generation.ErrProviderFailure, err)
		}
		return domain.ItemSet{}, err
	}
	log.Debug("provider replied",
		slog.String("provider", s.provider.Name()),
		slog.Duration("elapsed", time.Since(start)))

	set, err := generation.Parse(kind, raw, cc.Chapter.ID)
	if err != nil {
		log.Warn("discarding unparseable provider output",
			slog.String("error", err.Error()),
			slog.String("snippet", redact.Snippet(raw, snippetLength)))
		return domain.ItemSet{}, err
	}
	return set.Truncate(s.cfg.ItemsPerChapter), nil
}

// commit inserts the items and counts the request in one transaction, holding
// the per-(user, day) lock.
func (s *generationServiceImpl) commit(
	ctx context.Context,
	userID uuid.UUID,
	day string,
	set domain.ItemSet,
	existing domain.ItemSet,
) (*GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlock := s.ledger.Lock(userID, day)
	defer unlock()

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.items.WithTx(tx).Insert(ctx, &set); err != nil {
			return err
		}
		decision, err := s.ledger.ReserveAndIncrement(ctx, tx, userID, day, s.cfg.DailyQuota)
		if err != nil {
			return err
		}
		if decision == quota.Denied {
			return errQuotaDenied
		}
		return nil
	})

	switch {
	case errors.Is(err, errQuotaDenied):
		log.Info("quota reservation denied at commit")
		return nil, &generation.QuotaExceededError{Limit: s.cfg.DailyQuota, Existing: existing}
	case err != nil:
		log.Error("failed to commit generated items", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("%w: %w", generation.ErrPersistence, err)
	}

	log.Info("generated items committed", slog.Int("count", set.Len()))
	return &GenerationResult{ItemSet: set, Outcome: OutcomeGenerated}, nil
}
