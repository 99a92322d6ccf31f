package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("email", "is required", ErrValidation)

	assert.Equal(t, "invalid email: is required", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))

	var vErr *ValidationError
	assert.True(t, errors.As(error(err), &vErr))
	assert.Equal(t, "email", vErr.Field)
}
