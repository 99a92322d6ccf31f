package api

import (
	"net/http"

	"github.com/ncert-revision/revision-api/internal/api/shared"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/store"
)

// ContentHandler serves the read-only catalog: classes, subjects, chapters
// and the items stored for a chapter.
type ContentHandler struct {
	catalog store.CatalogStore
	items   store.ItemStore
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(catalog store.CatalogStore, items store.ItemStore) *ContentHandler {
	return &ContentHandler{catalog: catalog, items: items}
}

// ListClasses handles GET /classes.
func (h *ContentHandler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.catalog.ListClasses(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list classes")
		return
	}
	if classes == nil {
		classes = []domain.SchoolClass{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, classes)
}

// ListSubjects handles GET /subjects/{classId}.
func (h *ContentHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	_, classID, ok := handleUserIDAndPathInt64(w, r, "classId")
	if !ok {
		return
	}

	if _, err := h.catalog.GetClass(r.Context(), classID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	subjects, err := h.catalog.ListSubjects(r.Context(), classID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list subjects")
		return
	}
	if subjects == nil {
		subjects = []domain.Subject{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, subjects)
}

// ListChapters handles GET /chapters/{subjectId}.
func (h *ContentHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	_, subjectID, ok := handleUserIDAndPathInt64(w, r, "subjectId")
	if !ok {
		return
	}

	if _, err := h.catalog.GetSubject(r.Context(), subjectID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	chapters, err := h.catalog.ListChapters(r.Context(), subjectID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list chapters")
		return
	}
	if chapters == nil {
		chapters = []domain.Chapter{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, chapters)
}

// ListFlashcards handles GET /flashcards/{chapterId}.
func (h *ContentHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	set, ok := h.chapterItems(w, r, domain.KindFlashcard)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, itemsPayload(set))
}

// ListMCQs handles GET /mcqs/{chapterId}.
func (h *ContentHandler) ListMCQs(w http.ResponseWriter, r *http.Request) {
	set, ok := h.chapterItems(w, r, domain.KindMultipleChoice)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, itemsPayload(set))
}

func (h *ContentHandler) chapterItems(w http.ResponseWriter, r *http.Request, kind domain.ItemKind) (domain.ItemSet, bool) {
	_, chapterID, ok := handleUserIDAndPathInt64(w, r, "chapterId")
	if !ok {
		return domain.ItemSet{}, false
	}

	if _, err := h.catalog.GetChapter(r.Context(), chapterID); err != nil {
		HandleAPIError(w, r, err, "")
		return domain.ItemSet{}, false
	}
	set, err := h.items.List(r.Context(), chapterID, kind)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list items")
		return domain.ItemSet{}, false
	}
	return set, true
}

// itemsPayload returns the populated slice of set, never nil.
func itemsPayload(set domain.ItemSet) any {
	if set.Kind == domain.KindFlashcard {
		if set.Flashcards == nil {
			return []domain.Flashcard{}
		}
		return set.Flashcards
	}
	if set.MCQs == nil {
		return []domain.MCQ{}
	}
	return set.MCQs
}
