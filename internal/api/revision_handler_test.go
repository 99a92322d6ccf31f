package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/api/shared"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/mocks"
	"github.com/ncert-revision/revision-api/internal/service"
	"github.com/ncert-revision/revision-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProgressHandler(t *testing.T) {
	userID := uuid.New()
	practiced := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	var gotCorrect, gotTotal int
	rev := &mocks.MockRevisionService{
		UpdateProgressFn: func(_ context.Context, uid uuid.UUID, chapterID int64, correct, total int) (*domain.Progress, error) {
			gotCorrect, gotTotal = correct, total
			return &domain.Progress{
				UserID: uid, ChapterID: chapterID, Accuracy: 0, Streak: 1, LastPracticed: practiced,
			}, nil
		},
	}
	h := NewRevisionHandler(rev)

	rec := serve(t, http.MethodPost, "/revision/progress/update", "/revision/progress/update", h.UpdateProgress,
		`{"chapter_id":3,"correct_answers":0,"total_questions":10}`, userID)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 0, gotCorrect)
	assert.Equal(t, 10, gotTotal)
	p := decodeBody[domain.Progress](t, rec)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, 1, p.Streak)
	assert.True(t, practiced.Equal(p.LastPracticed))
}

func TestUpdateProgressHandlerRejects(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		status  int
		message string
	}{
		{name: "missing correct answers", body: `{"chapter_id":3,"total_questions":10}`,
			status: http.StatusBadRequest, message: "Invalid correct_answers: required field"},
		{name: "zero questions", body: `{"chapter_id":3,"correct_answers":0,"total_questions":0}`,
			status: http.StatusBadRequest, message: "Invalid total_questions: required field"},
		{name: "negative correct", body: `{"chapter_id":3,"correct_answers":-1,"total_questions":4}`,
			status: http.StatusBadRequest, message: "Invalid correct_answers: too small"},
		{name: "more correct than asked", body: `{"chapter_id":3,"correct_answers":5,"total_questions":4}`,
			err: domain.ErrInvalidScore, status: http.StatusBadRequest},
		{name: "unknown chapter", body: `{"chapter_id":3,"correct_answers":1,"total_questions":4}`,
			err: store.ErrChapterNotFound, status: http.StatusNotFound, message: "Chapter not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rev := &mocks.MockRevisionService{
				UpdateProgressFn: func(context.Context, uuid.UUID, int64, int, int) (*domain.Progress, error) {
					if tc.err != nil {
						return nil, tc.err
					}
					return &domain.Progress{}, nil
				},
			}

			rec := serve(t, http.MethodPost, "/revision/progress/update", "/revision/progress/update",
				NewRevisionHandler(rev).UpdateProgress, tc.body, uuid.New())

			assert.Equal(t, tc.status, rec.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, decodeBody[shared.ErrorResponse](t, rec).Error)
			}
		})
	}
}

func TestDailyAndStatsHandlers(t *testing.T) {
	userID := uuid.New()
	rev := &mocks.MockRevisionService{
		DailyRevisionFn: func(_ context.Context, uid uuid.UUID) ([]domain.MCQ, error) {
			assert.Equal(t, userID, uid)
			return sampleMCQs(3), nil
		},
		ProgressStatsFn: func(context.Context, uuid.UUID) (domain.ProgressStats, error) {
			return domain.ProgressStats{Accuracy: 62, CompletedChapters: 2, TotalQuizzes: 3, Streak: 2}, nil
		},
	}
	h := NewRevisionHandler(rev)

	rec := serve(t, http.MethodGet, "/revision/daily", "/revision/daily", h.Daily, "", userID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]domain.MCQ](t, rec), 3)

	rec = serve(t, http.MethodGet, "/revision/progress/stats", "/revision/progress/stats", h.Stats, "", userID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"accuracy":62,"completed_chapters":2,"total_quizzes":3,"streak":2}`, rec.Body.String())
}

func TestDailyHandlerEmpty(t *testing.T) {
	rec := serve(t, http.MethodGet, "/revision/daily", "/revision/daily",
		NewRevisionHandler(&mocks.MockRevisionService{}).Daily, "", uuid.New())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRecordAttemptHandler(t *testing.T) {
	rev := &mocks.MockRevisionService{
		RecordAttemptFn: func(_ context.Context, _ uuid.UUID, mcqID int64, selected string) (*service.AttemptResult, error) {
			if mcqID == 404 {
				return nil, store.ErrMCQNotFound
			}
			if selected == "E" {
				return nil, domain.ErrInvalidOption
			}
			return &service.AttemptResult{IsCorrect: selected == "B", CorrectOption: "B"}, nil
		},
	}
	h := NewRevisionHandler(rev)
	userID := uuid.New()

	rec := serve(t, http.MethodPost, "/revision/attempts", "/revision/attempts", h.RecordAttempt,
		`{"mcq_id":1,"selected_option":"B"}`, userID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_correct":true,"correct_option":"B"}`, rec.Body.String())

	rec = serve(t, http.MethodPost, "/revision/attempts", "/revision/attempts", h.RecordAttempt,
		`{"mcq_id":1,"selected_option":"E"}`, userID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, http.MethodPost, "/revision/attempts", "/revision/attempts", h.RecordAttempt,
		`{"mcq_id":404,"selected_option":"A"}`, userID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "MCQ not found", decodeBody[shared.ErrorResponse](t, rec).Error)

	rec = serve(t, http.MethodPost, "/revision/attempts", "/revision/attempts", h.RecordAttempt,
		`{"mcq_id":1}`, userID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetChapterHandler(t *testing.T) {
	resets := 0
	rev := &mocks.MockRevisionService{
		ResetChapterFn: func(_ context.Context, _ uuid.UUID, chapterID int64) (*service.ResetResult, error) {
			assert.Equal(t, int64(12), chapterID)
			if resets == domain.MaxResetsPerChapter {
				return nil, service.ErrResetLimitReached
			}
			resets++
			return &service.ResetResult{ResetCount: resets, ResetsRemaining: domain.MaxResetsPerChapter - resets}, nil
		},
	}
	h := NewRevisionHandler(rev)
	userID := uuid.New()
	route := "/revision/reset/{chapterId}"

	for i := 1; i <= domain.MaxResetsPerChapter; i++ {
		rec := serve(t, http.MethodPost, route, "/revision/reset/12", h.ResetChapter, "", userID)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, i, decodeBody[service.ResetResult](t, rec).ResetCount)
	}

	rec := serve(t, http.MethodPost, route, "/revision/reset/12", h.ResetChapter, "", userID)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(t, http.MethodPost, route, "/revision/reset/twelve", h.ResetChapter, "", userID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRootAndHealth(t *testing.T) {
	rec := serve(t, http.MethodGet, "/", "/", Root, "", uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to NCERT Smart Revision API"}`, rec.Body.String())

	rec = serve(t, http.MethodGet, "/health", "/health", Health, "", uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
