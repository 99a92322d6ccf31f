package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ncert-revision/revision-api/internal/api/shared"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/generation"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/service"
)

// GenerationOutcomeHeader reports how a generation request was satisfied.
const GenerationOutcomeHeader = "X-Generation-Outcome"

// AIHandler serves the item generation endpoints.
type AIHandler struct {
	generator service.GenerationService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(generator service.GenerationService) *AIHandler {
	return &AIHandler{generator: generator}
}

// GenerateMCQs handles POST /ai/generate-mcq/{chapterId}.
func (h *AIHandler) GenerateMCQs(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, domain.KindMultipleChoice)
}

// GenerateFlashcards handles POST /ai/generate-flashcard/{chapterId}.
func (h *AIHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, domain.KindFlashcard)
}

func (h *AIHandler) generate(w http.ResponseWriter, r *http.Request, kind domain.ItemKind) {
	userID, chapterID, ok := handleUserIDAndPathInt64(w, r, "chapterId")
	if !ok {
		return
	}

	res, err := h.generator.Generate(r.Context(), chapterID, userID, kind)
	if err != nil {
		var quotaErr *generation.QuotaExceededError
		if errors.As(err, &quotaErr) {
			existing := quotaErr.Existing
			existing.Kind = kind
			HandleAPIError(w, r, err, "", shared.WithItems(itemsPayload(existing)))
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	if res.Outcome == service.OutcomeDegradedFallback {
		logger.FromContext(r.Context()).Warn("serving existing items after generation failure",
			slog.Int64("chapter_id", chapterID),
			slog.String("kind", string(kind)))
	}

	w.Header().Set(GenerationOutcomeHeader, string(res.Outcome))
	res.ItemSet.Kind = kind
	shared.RespondWithJSON(w, r, http.StatusOK, itemsPayload(res.ItemSet))
}
