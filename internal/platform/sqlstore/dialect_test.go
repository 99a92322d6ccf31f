package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/platform/sqlstore"
	"github.com/ncert-revision/revision-api/internal/store"
	"github.com/ncert-revision/revision-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestStoresOnEachDialect drives the stores through a typical request path
// on every supported database.
func TestStoresOnEachDialect(t *testing.T) {
	testutils.ForEachDialect(t, func(t *testing.T, db *sql.DB, dialect store.Dialect) {
		ctx := context.Background()
		catalog := sqlstore.NewCatalogStore(db, dialect, discard)
		items := sqlstore.NewItemStore(db, dialect, discard)
		users := sqlstore.NewUserStore(db, dialect, bcrypt.MinCost, discard)
		quota := sqlstore.NewQuotaStore(db, dialect, discard)

		class, err := catalog.EnsureClass(ctx, "Class 8")
		require.NoError(t, err)
		subject, err := catalog.EnsureSubject(ctx, class.ID, "Science")
		require.NoError(t, err)
		chapter, err := catalog.EnsureChapter(ctx, subject.ID, "Friction")
		require.NoError(t, err)

		got, err := catalog.GetChapter(ctx, chapter.ID)
		require.NoError(t, err)
		assert.Equal(t, subject.ID, got.SubjectID)
		gotSubject, err := catalog.GetSubject(ctx, got.SubjectID)
		require.NoError(t, err)
		gotClass, err := catalog.GetClass(ctx, gotSubject.ClassID)
		require.NoError(t, err)
		assert.Equal(t, "Class 8", gotClass.Name)

		set := domain.ItemSet{
			Kind: domain.KindMultipleChoice,
			MCQs: []domain.MCQ{{
				ChapterID: chapter.ID,
				Question:  "Friction opposes?",
				OptionA:   "Motion", OptionB: "Mass", OptionC: "Colour", OptionD: "Heat",
				Correct: domain.OptionA,
			}},
		}
		require.NoError(t, items.Insert(ctx, &set))
		assert.NotZero(t, set.MCQs[0].ID)

		listed, err := items.List(ctx, chapter.ID, domain.KindMultipleChoice)
		require.NoError(t, err)
		assert.Equal(t, set.MCQs, listed.MCQs)

		user, err := domain.NewUser("dialect@example.com", "password123", time.Now())
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, user))
		err = users.Create(ctx, user)
		assert.ErrorIs(t, err, store.ErrEmailExists)

		day := domain.DayOf(time.Now())
		require.NoError(t, quota.Create(ctx, &domain.QuotaRecord{UserID: user.ID, UsageDate: day}))
		ok, err := quota.IncrementBelow(ctx, user.ID, day, 1)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = quota.IncrementBelow(ctx, user.ID, day, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
