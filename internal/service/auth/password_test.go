package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	v := NewBcryptVerifier()

	assert.NoError(t, v.Compare(string(hash), "password123"))
	assert.ErrorIs(t, v.Compare(string(hash), "password124"), ErrPasswordMismatch)

	err = v.Compare("not-a-hash", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}
