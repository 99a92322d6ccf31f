package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/api/shared"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/platform/sqlstore"
	"github.com/ncert-revision/revision-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHandler(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewContentHandler(
		sqlstore.NewCatalogStore(db, dialect, discard),
		sqlstore.NewItemStore(db, dialect, discard),
	)
	userID := uuid.New()

	cc := testutils.MustInsertDefaultChapter(t, db)
	other := testutils.MustInsertSiblingChapter(t, db, cc, "Electricity")
	testutils.MustInsertMCQs(t, db, cc.Chapter.ID, 3)
	testutils.MustInsertFlashcards(t, db, cc.Chapter.ID, 2)

	id := func(n int64) string { return strconv.FormatInt(n, 10) }

	t.Run("classes", func(t *testing.T) {
		rec := serve(t, http.MethodGet, "/classes", "/classes", h.ListClasses, "", userID)
		require.Equal(t, http.StatusOK, rec.Code)
		classes := decodeBody[[]domain.SchoolClass](t, rec)
		require.Len(t, classes, 1)
		assert.Equal(t, "Class 10", classes[0].Name)
	})

	t.Run("subjects", func(t *testing.T) {
		rec := serve(t, http.MethodGet, "/subjects/{classId}", "/subjects/"+id(cc.Class.ID), h.ListSubjects, "", userID)
		require.Equal(t, http.StatusOK, rec.Code)
		subjects := decodeBody[[]domain.Subject](t, rec)
		require.Len(t, subjects, 1)
		assert.Equal(t, "Science", subjects[0].Name)
	})

	t.Run("chapters ordered by id", func(t *testing.T) {
		rec := serve(t, http.MethodGet, "/chapters/{subjectId}", "/chapters/"+id(cc.Subject.ID), h.ListChapters, "", userID)
		require.Equal(t, http.StatusOK, rec.Code)
		chapters := decodeBody[[]domain.Chapter](t, rec)
		require.Len(t, chapters, 2)
		assert.Equal(t, cc.Chapter.ID, chapters[0].ID)
		assert.Equal(t, other.Chapter.ID, chapters[1].ID)
	})

	t.Run("items", func(t *testing.T) {
		rec := serve(t, http.MethodGet, "/mcqs/{chapterId}", "/mcqs/"+id(cc.Chapter.ID), h.ListMCQs, "", userID)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody[[]domain.MCQ](t, rec), 3)

		rec = serve(t, http.MethodGet, "/flashcards/{chapterId}", "/flashcards/"+id(cc.Chapter.ID), h.ListFlashcards, "", userID)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody[[]domain.Flashcard](t, rec), 2)
	})

	t.Run("chapter without items is an empty list", func(t *testing.T) {
		rec := serve(t, http.MethodGet, "/mcqs/{chapterId}", "/mcqs/"+id(other.Chapter.ID), h.ListMCQs, "", userID)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		cases := []struct {
			pattern, target string
			handler         http.HandlerFunc
			message         string
		}{
			{"/subjects/{classId}", "/subjects/999", h.ListSubjects, "Class not found"},
			{"/chapters/{subjectId}", "/chapters/999", h.ListChapters, "Subject not found"},
			{"/mcqs/{chapterId}", "/mcqs/999", h.ListMCQs, "Chapter not found"},
			{"/flashcards/{chapterId}", "/flashcards/999", h.ListFlashcards, "Chapter not found"},
		}
		for _, c := range cases {
			rec := serve(t, http.MethodGet, c.pattern, c.target, c.handler, "", userID)
			assert.Equal(t, http.StatusNotFound, rec.Code, c.target)
			assert.Equal(t, c.message, decodeBody[shared.ErrorResponse](t, rec).Error)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := serve(t, http.MethodGet, "/mcqs/{chapterId}", "/mcqs/0", h.ListMCQs, "", userID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
