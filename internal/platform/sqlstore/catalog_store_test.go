package sqlstore_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/ncert-revision/revision-api/internal/platform/sqlstore"
	"github.com/ncert-revision/revision-api/internal/store"
	"github.com/ncert-revision/revision-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.DiscardHandler)

func TestCatalogStoreEnsureIsIdempotent(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	s := sqlstore.NewCatalogStore(db, dialect, discard)
	ctx := context.Background()

	class, err := s.EnsureClass(ctx, "Class 9")
	require.NoError(t, err)
	again, err := s.EnsureClass(ctx, "Class 9")
	require.NoError(t, err)
	assert.Equal(t, class.ID, again.ID)

	subject, err := s.EnsureSubject(ctx, class.ID, "Mathematics")
	require.NoError(t, err)
	chapter, err := s.EnsureChapter(ctx, subject.ID, "Polynomials")
	require.NoError(t, err)
	chapterAgain, err := s.EnsureChapter(ctx, subject.ID, "Polynomials")
	require.NoError(t, err)
	assert.Equal(t, chapter.ID, chapterAgain.ID)

	assert.Equal(t, 1, testutils.CountRows(t, db, "chapters", ""))
}

func TestCatalogStoreListsAndLookups(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	s := sqlstore.NewCatalogStore(db, dialect, discard)
	ctx := context.Background()

	cc := testutils.MustInsertDefaultChapter(t, db)

	classes, err := s.ListClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Class 10", classes[0].Name)

	subjects, err := s.ListSubjects(ctx, cc.Class.ID)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Science", subjects[0].Name)

	chapters, err := s.ListChapters(ctx, cc.Subject.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, cc.Chapter, chapters[0])

	got, err := s.GetChapter(ctx, cc.Chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, cc.Subject.ID, got.SubjectID)

	subjects, err = s.ListSubjects(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestCatalogStoreNotFound(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	s := sqlstore.NewCatalogStore(db, dialect, discard)
	ctx := context.Background()

	_, err := s.GetChapter(ctx, 42)
	assert.ErrorIs(t, err, store.ErrChapterNotFound)
	assert.True(t, store.IsNotFoundError(err))

	_, err = s.GetSubject(ctx, 42)
	assert.ErrorIs(t, err, store.ErrSubjectNotFound)

	_, err = s.GetClass(ctx, 42)
	assert.ErrorIs(t, err, store.ErrClassNotFound)
}

func TestCatalogStoreEnsureSubjectUnknownClass(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	s := sqlstore.NewCatalogStore(db, dialect, discard)

	_, err := s.EnsureSubject(context.Background(), 777, "History")
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestNewCatalogStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { sqlstore.NewCatalogStore(nil, store.DialectSQLite, discard) })
}
