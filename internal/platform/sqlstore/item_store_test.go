package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/platform/sqlstore"
	"github.com/ncert-revision/revision-api/internal/store"
	"github.com/ncert-revision/revision-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStoreInsertAndListMCQs(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	s := sqlstore.NewItemStore(db, dialect, discard)
	ctx := context.Background()
	cc := testutils.MustInsertDefaultChapter(t, db)

	set := domain.ItemSet{Kind: domain.KindMultipleChoice, MCQs: testutils.CreateMCQs(cc.Chapter.ID, 3)}
	require.NoError(t, s.Insert(ctx, &set))
	for _, m := range set.MCQs {
		assert.NotZero(t, m.ID)
	}

	got, err := s.List(ctx, cc.Chapter.ID, domain.KindMultipleChoice)
	require.NoError(t, err)
	assert.Equal(t, domain.KindMultipleChoice, got.Kind)
	assert.Equal(t, set.MCQs, got.MCQs)

	cards, err := s.List(ctx, cc.Chapter.ID, domain.KindFlashcard)
	require.NoError(t, err)
	assert.Equal(t, 0, cards.Len())
}

func TestItemStoreInsertAndListFlashcards(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	s := sqlstore.NewItemStore(db, dialect, discard)
	ctx := context.Background()
	cc := testutils.MustInsertDefaultChapter(t, db)

	set := domain.ItemSet{Kind: domain.KindFlashcard, Flashcards: []domain.Flashcard{
		{ChapterID: cc.Chapter.ID, Question: "What is refraction?", Answer: "Bending of light."},
		{ChapterID: cc.Chapter.ID, Question: "Unit of power of a lens?", Answer: "Dioptre."},
	}}
	require.NoError(t, s.Insert(ctx, &set))

	got, err := s.List(ctx, cc.Chapter.ID, domain.KindFlashcard)
	require.NoError(t, err)
	require.Len(t, got.Flashcards, 2)
	assert.Equal(t, "Dioptre.", got.Flashcards[1].Answer)
}

func TestItemStoreInsertRejectsInvalidItem(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	s := sqlstore.NewItemStore(db, dialect, discard)
	cc := testutils.MustInsertDefaultChapter(t, db)

	mcqs := testutils.CreateMCQs(cc.Chapter.ID, 2)
	mcqs[1].Correct = "E"
	set := domain.ItemSet{Kind: domain.KindMultipleChoice, MCQs: mcqs}

	err := s.Insert(context.Background(), &set)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestItemStoreInsertUnknownChapter(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	s := sqlstore.NewItemStore(db, dialect, discard)

	set := domain.ItemSet{Kind: domain.KindMultipleChoice, MCQs: testutils.CreateMCQs(404, 1)}
	err := s.Insert(context.Background(), &set)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestItemStoreGetAndDeleteMCQs(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	s := sqlstore.NewItemStore(db, dialect, discard)
	ctx := context.Background()
	cc := testutils.MustInsertDefaultChapter(t, db)
	mcqs := testutils.MustInsertMCQs(t, db, cc.Chapter.ID, 4)

	got, err := s.GetMCQ(ctx, mcqs[2].ID)
	require.NoError(t, err)
	assert.Equal(t, mcqs[2], *got)

	n, err := s.DeleteMCQsByChapter(ctx, cc.Chapter.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	_, err = s.GetMCQ(ctx, mcqs[2].ID)
	assert.ErrorIs(t, err, store.ErrMCQNotFound)
}

func TestItemStoreRandomMCQs(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	s := sqlstore.NewItemStore(db, dialect, discard)
	ctx := context.Background()

	tenth := testutils.MustInsertChapter(t, db, "Class 10", "Science", "Light")
	ninth := testutils.MustInsertChapter(t, db, "Class 9", "Science", "Motion")
	testutils.MustInsertMCQs(t, db, tenth.Chapter.ID, 6)
	testutils.MustInsertMCQs(t, db, ninth.Chapter.ID, 3)

	all, err := s.RandomMCQs(ctx, nil, 5)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	classID := ninth.Class.ID
	scoped, err := s.RandomMCQs(ctx, &classID, 10)
	require.NoError(t, err)
	require.Len(t, scoped, 3)
	for _, m := range scoped {
		assert.Equal(t, ninth.Chapter.ID, m.ChapterID)
	}
}

func TestItemStoreWithTxRollsBack(t *testing.T) {
	db, dialect := testutils.NewTestDB(t)
	s := sqlstore.NewItemStore(db, dialect, discard)
	cc := testutils.MustInsertDefaultChapter(t, db)

	testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		set := domain.ItemSet{Kind: domain.KindMultipleChoice, MCQs: testutils.CreateMCQs(cc.Chapter.ID, 2)}
		require.NoError(t, s.WithTx(tx).Insert(context.Background(), &set))
		assert.Equal(t, 2, testutils.CountRows(t, tx, "mcqs", ""))
	})

	assert.Equal(t, 0, testutils.CountRows(t, db, "mcqs", ""))
}
