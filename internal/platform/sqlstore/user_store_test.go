package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/platform/sqlstore"
	"github.com/ncert-revision/revision-api/internal/store"
	"github.com/ncert-revision/revision-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserStore(t *testing.T) (*sqlstore.UserStore, store.DBTX) {
	t.Helper()
	db, dialect := testutils.NewTestDB(t)
	return sqlstore.NewUserStore(db, dialect, bcrypt.MinCost, discard), db
}

func TestUserStoreCreateHashesPassword(t *testing.T) {
	s, _ := newUserStore(t)
	ctx := context.Background()

	user := testutils.CreateTestUser(t)
	require.NoError(t, s.Create(ctx, user))
	assert.Empty(t, user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(testutils.TestPassword)))

	got, err := s.GetByEmail(ctx, "  "+user.Email+" ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.HashedPassword, got.HashedPassword)
	assert.Equal(t, domain.UserTypeStudent, got.UserType)
	assert.Nil(t, got.Username)
	assert.Nil(t, got.ClassID)
	assert.Nil(t, got.OTPCode)
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	s, _ := newUserStore(t)
	ctx := context.Background()

	first := testutils.CreateTestUser(t)
	require.NoError(t, s.Create(ctx, first))

	second, err := domain.NewUser(first.Email, "another-pass", time.Now())
	require.NoError(t, err)
	err = s.Create(ctx, second)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestUserStoreCreateValidates(t *testing.T) {
	s, _ := newUserStore(t)

	user := testutils.CreateTestUser(t)
	user.Email = "not-an-email"
	assert.ErrorIs(t, s.Create(context.Background(), user), domain.ErrInvalidEmail)
}

func TestUserStoreGetMissing(t *testing.T) {
	s, _ := newUserStore(t)
	ctx := context.Background()

	_, err := s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	_, err = s.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreUpdateProfile(t *testing.T) {
	s, db := newUserStore(t)
	ctx := context.Background()
	cc := testutils.MustInsertDefaultChapter(t, db)

	user := testutils.CreateTestUser(t)
	require.NoError(t, s.Create(ctx, user))

	name, phone := "asha", "9876543210"
	user.Username = &name
	user.Phone = &phone
	user.ClassID = &cc.Class.ID
	user.UserType = domain.UserTypeParent
	user.UpdatedAt = time.Now().UTC()
	require.NoError(t, s.UpdateProfile(ctx, user))

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Username)
	assert.Equal(t, name, *got.Username)
	assert.Equal(t, phone, *got.Phone)
	assert.Equal(t, cc.Class.ID, *got.ClassID)
	assert.Equal(t, domain.UserTypeParent, got.UserType)

	missing := *user
	missing.ID = uuid.New()
	assert.ErrorIs(t, s.UpdateProfile(ctx, &missing), store.ErrUserNotFound)
}

func TestUserStoreSetOTP(t *testing.T) {
	s, _ := newUserStore(t)
	ctx := context.Background()

	user := testutils.CreateTestUser(t)
	require.NoError(t, s.Create(ctx, user))

	code := "123456"
	expires := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Second)
	require.NoError(t, s.SetOTP(ctx, user.ID, &code, &expires))

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OTPCode)
	assert.Equal(t, code, *got.OTPCode)
	assert.True(t, got.OTPExpiresAt.Equal(expires))
	assert.True(t, got.OTPValid(code, time.Now()))

	require.NoError(t, s.SetOTP(ctx, user.ID, nil, nil))
	got, err = s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.OTPCode)
	assert.Nil(t, got.OTPExpiresAt)

	assert.ErrorIs(t, s.SetOTP(ctx, uuid.New(), nil, nil), store.ErrUserNotFound)
}
