package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext password of users built by CreateTestUser.
const TestPassword = "secret-pass"

// CreateTestUser builds a valid student with a random email. It is not saved.
func CreateTestUser(t *testing.T) *domain.User {
	t.Helper()
	email := fmt.Sprintf("student-%s@example.com", uuid.New().String()[:8])
	user, err := domain.NewUser(email, TestPassword, time.Now())
	require.NoError(t, err, "failed to create test user")
	return user
}

// MustInsertUser stores a fresh student and returns it with the password
// already hashed.
func MustInsertUser(t *testing.T, db store.DBTX) *domain.User {
	t.Helper()
	user := CreateTestUser(t)

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	require.NoError(t, err)
	user.HashedPassword = string(hash)
	user.Password = ""

	_, err = db.ExecContext(context.Background(), store.DialectSQLite.Rebind(`
		INSERT INTO users (id, email, user_type, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`),
		user.ID, user.Email, string(user.UserType), user.HashedPassword, user.CreatedAt, user.UpdatedAt)
	require.NoError(t, err, "failed to insert test user")
	return user
}

// MustInsertChapter creates a class, subject and chapter chain and returns
// the full context.
func MustInsertChapter(t *testing.T, db store.DBTX, class, subject, chapter string) domain.ChapterContext {
	t.Helper()
	ctx := context.Background()
	var cc domain.ChapterContext

	err := db.QueryRowContext(ctx, store.DialectSQLite.Rebind(
		`INSERT INTO classes (name) VALUES ($1) RETURNING id`), class).Scan(&cc.Class.ID)
	require.NoError(t, err, "failed to insert class")
	cc.Class.Name = class

	err = db.QueryRowContext(ctx, store.DialectSQLite.Rebind(
		`INSERT INTO subjects (class_id, name) VALUES ($1, $2) RETURNING id`),
		cc.Class.ID, subject).Scan(&cc.Subject.ID)
	require.NoError(t, err, "failed to insert subject")
	cc.Subject.ClassID = cc.Class.ID
	cc.Subject.Name = subject

	err = db.QueryRowContext(ctx, store.DialectSQLite.Rebind(
		`INSERT INTO chapters (subject_id, title) VALUES ($1, $2) RETURNING id`),
		cc.Subject.ID, chapter).Scan(&cc.Chapter.ID)
	require.NoError(t, err, "failed to insert chapter")
	cc.Chapter.SubjectID = cc.Subject.ID
	cc.Chapter.Title = chapter

	return cc
}

// MustInsertDefaultChapter inserts "Class 10 / Science / Light" for tests
// that do not care about the names.
func MustInsertDefaultChapter(t *testing.T, db store.DBTX) domain.ChapterContext {
	t.Helper()
	return MustInsertChapter(t, db, "Class 10", "Science", "Light")
}

// CreateMCQs builds n valid questions for chapterID.
func CreateMCQs(chapterID int64, n int) []domain.MCQ {
	mcqs := make([]domain.MCQ, n)
	for i := range mcqs {
		mcqs[i] = domain.MCQ{
			ChapterID: chapterID,
			Question:  fmt.Sprintf("Question %d?", i+1),
			OptionA:   "first",
			OptionB:   "second",
			OptionC:   "third",
			OptionD:   "fourth",
			Correct:   domain.OptionA,
		}
	}
	return mcqs
}

// MustInsertMCQs stores n questions for the chapter and returns them with IDs.
func MustInsertMCQs(t *testing.T, db store.DBTX, chapterID int64, n int) []domain.MCQ {
	t.Helper()
	mcqs := CreateMCQs(chapterID, n)
	for i := range mcqs {
		m := &mcqs[i]
		err := db.QueryRowContext(context.Background(), store.DialectSQLite.Rebind(`
			INSERT INTO mcqs (chapter_id, question, option_a, option_b, option_c, option_d, correct)
			VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`),
			m.ChapterID, m.Question, m.OptionA, m.OptionB, m.OptionC, m.OptionD, m.Correct).Scan(&m.ID)
		require.NoError(t, err, "failed to insert mcq")
	}
	return mcqs
}

// MustInsertSiblingChapter adds another chapter under the subject of cc.
func MustInsertSiblingChapter(t *testing.T, db store.DBTX, cc domain.ChapterContext, title string) domain.ChapterContext {
	t.Helper()
	sibling := cc
	err := db.QueryRowContext(context.Background(), store.DialectSQLite.Rebind(
		`INSERT INTO chapters (subject_id, title) VALUES ($1, $2) RETURNING id`),
		cc.Subject.ID, title).Scan(&sibling.Chapter.ID)
	require.NoError(t, err, "failed to insert chapter")
	sibling.Chapter.Title = title
	return sibling
}

// MustInsertFlashcards stores n flashcards for the chapter and returns them with IDs.
func MustInsertFlashcards(t *testing.T, db store.DBTX, chapterID int64, n int) []domain.Flashcard {
	t.Helper()
	cards := make([]domain.Flashcard, n)
	for i := range cards {
		f := &cards[i]
		f.ChapterID = chapterID
		f.Question = fmt.Sprintf("Term %d?", i+1)
		f.Answer = fmt.Sprintf("Definition %d", i+1)
		err := db.QueryRowContext(context.Background(), store.DialectSQLite.Rebind(`
			INSERT INTO flashcards (chapter_id, question, answer)
			VALUES ($1, $2, $3) RETURNING id`),
			f.ChapterID, f.Question, f.Answer).Scan(&f.ID)
		require.NoError(t, err, "failed to insert flashcard")
	}
	return cards
}
