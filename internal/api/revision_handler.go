package api

import (
	"net/http"

	"github.com/ncert-revision/revision-api/internal/api/shared"
	"github.com/ncert-revision/revision-api/internal/service"
)

// RevisionHandler serves progress tracking, daily revision, attempts and
// chapter resets.
type RevisionHandler struct {
	revision service.RevisionService
}

// NewRevisionHandler creates a new RevisionHandler.
func NewRevisionHandler(revision service.RevisionService) *RevisionHandler {
	return &RevisionHandler{revision: revision}
}

// UpdateProgress handles POST /revision/progress/update.
func (h *RevisionHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ProgressUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	progress, err := h.revision.UpdateProgress(r.Context(), userID, req.ChapterID, *req.CorrectAnswers, req.TotalQuestions)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// Daily handles GET /revision/daily.
func (h *RevisionHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	mcqs, err := h.revision.DailyRevision(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, mcqs)
}

// Stats handles GET /revision/progress/stats.
func (h *RevisionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.revision.ProgressStats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// RecordAttempt handles POST /revision/attempts.
func (h *RevisionHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AttemptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.revision.RecordAttempt(r.Context(), userID, req.MCQID, req.SelectedOption)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// ResetChapter handles POST /revision/reset/{chapterId}.
func (h *RevisionHandler) ResetChapter(w http.ResponseWriter, r *http.Request) {
	userID, chapterID, ok := handleUserIDAndPathInt64(w, r, "chapterId")
	if !ok {
		return
	}

	res, err := h.revision.ResetChapter(r.Context(), userID, chapterID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, res)
}
