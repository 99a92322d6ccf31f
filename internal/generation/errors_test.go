package generation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestQuotaExceededErrorMatchesSentinel(t *testing.T) {
	existing := domain.ItemSet{Kind: domain.KindFlashcard, Flashcards: []domain.Flashcard{{ID: 1}}}
	err := fmt.Errorf("generate: %w", &QuotaExceededError{Limit: 5, Existing: existing})

	assert.ErrorIs(t, err, ErrQuotaExceeded)

	var qe *QuotaExceededError
	assert.True(t, errors.As(err, &qe))
	assert.Equal(t, 1, qe.Existing.Len())
	assert.Contains(t, err.Error(), "limit of 5")
}

func TestErrorHierarchy(t *testing.T) {
	assert.ErrorIs(t, ErrProviderRateLimited, ErrProviderFailure)
	assert.ErrorIs(t, ErrContentBlocked, ErrMalformedResponse)
	assert.NotErrorIs(t, ErrMalformedResponse, ErrProviderFailure)
}
