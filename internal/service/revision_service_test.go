package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/platform/sqlstore"
	"github.com/ncert-revision/revision-api/internal/service"
	"github.com/ncert-revision/revision-api/internal/store"
	"github.com/ncert-revision/revision-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type revisionFixture struct {
	svc     service.RevisionService
	users   *sqlstore.UserStore
	chapter domain.ChapterContext
	user    *domain.User
	db      store.DBTX
}

func newRevisionFixture(t *testing.T) *revisionFixture {
	t.Helper()
	db, dialect := testutils.NewTestDB(t)
	users := sqlstore.NewUserStore(db, dialect, bcrypt.MinCost, discard)

	svc, err := service.NewRevisionService(
		db,
		users,
		sqlstore.NewCatalogStore(db, dialect, discard),
		sqlstore.NewItemStore(db, dialect, discard),
		sqlstore.NewProgressStore(db, dialect, discard),
		sqlstore.NewAttemptStore(db, dialect, discard),
		func() time.Time { return fixedNow },
		discard,
	)
	require.NoError(t, err)

	return &revisionFixture{
		svc:     svc,
		users:   users,
		chapter: testutils.MustInsertDefaultChapter(t, db),
		user:    testutils.MustInsertUser(t, db),
		db:      db,
	}
}

func TestUpdateProgress(t *testing.T) {
	f := newRevisionFixture(t)
	ctx := context.Background()

	p, err := f.svc.UpdateProgress(ctx, f.user.ID, f.chapter.Chapter.ID, 8, 10)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, p.Accuracy, 0.001)
	assert.Equal(t, 1, p.Streak)
	assert.Equal(t, fixedNow, p.LastPracticed)

	p, err = f.svc.UpdateProgress(ctx, f.user.ID, f.chapter.Chapter.ID, 6, 10)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, p.Accuracy, 0.001)
	assert.Equal(t, 2, p.Streak)

	assert.Equal(t, 1, testutils.CountRows(t, f.db, "progress", ""))
}

func TestUpdateProgressRejects(t *testing.T) {
	f := newRevisionFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateProgress(ctx, f.user.ID, f.chapter.Chapter.ID, 3, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidScore)

	_, err = f.svc.UpdateProgress(ctx, f.user.ID, 4242, 3, 5)
	assert.ErrorIs(t, err, store.ErrChapterNotFound)
}

func TestProgressStats(t *testing.T) {
	f := newRevisionFixture(t)
	ctx := context.Background()

	stats, err := f.svc.ProgressStats(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressStats{}, stats)

	other := testutils.MustInsertSiblingChapter(t, f.db, f.chapter, "Electricity")
	_, err = f.svc.UpdateProgress(ctx, f.user.ID, f.chapter.Chapter.ID, 10, 10)
	require.NoError(t, err)
	_, err = f.svc.UpdateProgress(ctx, f.user.ID, f.chapter.Chapter.ID, 5, 10)
	require.NoError(t, err)
	_, err = f.svc.UpdateProgress(ctx, f.user.ID, other.Chapter.ID, 1, 2)
	require.NoError(t, err)

	stats, err = f.svc.ProgressStats(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressStats{
		Accuracy:          62,
		CompletedChapters: 2,
		TotalQuizzes:      3,
		Streak:            2,
	}, stats)
}

func TestDailyRevision(t *testing.T) {
	f := newRevisionFixture(t)
	ctx := context.Background()

	empty, err := f.svc.DailyRevision(ctx, f.user.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	testutils.MustInsertMCQs(t, f.db, f.chapter.Chapter.ID, 3)
	class9 := testutils.MustInsertChapter(t, f.db, "Class 9", "Mathematics", "Polynomials")
	testutils.MustInsertMCQs(t, f.db, class9.Chapter.ID, 12)

	t.Run("no class draws from everything", func(t *testing.T) {
		mcqs, err := f.svc.DailyRevision(ctx, f.user.ID)
		require.NoError(t, err)
		assert.Len(t, mcqs, service.DailyRevisionSize)
	})

	t.Run("class filter", func(t *testing.T) {
		f.user.ClassID = &f.chapter.Class.ID
		require.NoError(t, f.users.UpdateProfile(ctx, f.user))

		mcqs, err := f.svc.DailyRevision(ctx, f.user.ID)
		require.NoError(t, err)
		require.Len(t, mcqs, 3)
		for _, m := range mcqs {
			assert.Equal(t, f.chapter.Chapter.ID, m.ChapterID)
		}
	})

	t.Run("empty class falls back", func(t *testing.T) {
		class12 := testutils.MustInsertChapter(t, f.db, "Class 12", "Physics", "Optics")
		f.user.ClassID = &class12.Class.ID
		require.NoError(t, f.users.UpdateProfile(ctx, f.user))

		mcqs, err := f.svc.DailyRevision(ctx, f.user.ID)
		require.NoError(t, err)
		assert.Len(t, mcqs, service.DailyRevisionSize)
	})
}

func TestRecordAttempt(t *testing.T) {
	f := newRevisionFixture(t)
	ctx := context.Background()
	mcqs := testutils.MustInsertMCQs(t, f.db, f.chapter.Chapter.ID, 1)

	res, err := f.svc.RecordAttempt(ctx, f.user.ID, mcqs[0].ID, " a ")
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, "A", res.CorrectOption)

	res, err = f.svc.RecordAttempt(ctx, f.user.ID, mcqs[0].ID, "C")
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Equal(t, "A", res.CorrectOption)

	assert.Equal(t, 2, testutils.CountRows(t, f.db, "user_mcq_attempts", "user_id = $1", f.user.ID))
	assert.Equal(t, 1, testutils.CountRows(t, f.db, "user_mcq_attempts", "is_correct = $1", true))

	_, err = f.svc.RecordAttempt(ctx, f.user.ID, mcqs[0].ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidOption)

	_, err = f.svc.RecordAttempt(ctx, f.user.ID, mcqs[0].ID, "E")
	assert.ErrorIs(t, err, domain.ErrInvalidOption)

	_, err = f.svc.RecordAttempt(ctx, f.user.ID, 999, "A")
	assert.ErrorIs(t, err, store.ErrMCQNotFound)
}

func TestResetChapter(t *testing.T) {
	f := newRevisionFixture(t)
	ctx := context.Background()
	chapterID := f.chapter.Chapter.ID

	for round := 1; round <= domain.MaxResetsPerChapter; round++ {
		mcqs := testutils.MustInsertMCQs(t, f.db, chapterID, 2)
		_, err := f.svc.RecordAttempt(ctx, f.user.ID, mcqs[0].ID, "B")
		require.NoError(t, err)

		res, err := f.svc.ResetChapter(ctx, f.user.ID, chapterID)
		require.NoError(t, err, "reset %d", round)
		assert.Equal(t, round, res.ResetCount)
		assert.Equal(t, domain.MaxResetsPerChapter-round, res.ResetsRemaining)
		assert.Equal(t, 0, testutils.CountRows(t, f.db, "mcqs", "chapter_id = $1", chapterID))
		assert.Equal(t, 0, testutils.CountRows(t, f.db, "user_mcq_attempts", "user_id = $1", f.user.ID))
	}

	testutils.MustInsertMCQs(t, f.db, chapterID, 2)
	_, err := f.svc.ResetChapter(ctx, f.user.ID, chapterID)
	assert.ErrorIs(t, err, service.ErrResetLimitReached)
	assert.Equal(t, 2, testutils.CountRows(t, f.db, "mcqs", "chapter_id = $1", chapterID),
		"refused reset leaves questions in place")

	_, err = f.svc.ResetChapter(ctx, f.user.ID, 31337)
	assert.ErrorIs(t, err, store.ErrChapterNotFound)
}

func TestNewRevisionServiceValidatesDependencies(t *testing.T) {
	_, err := service.NewRevisionService(nil, nil, nil, nil, nil, nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
