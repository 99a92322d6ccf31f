package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAccuracy(t *testing.T) {
	acc, err := ScoreAccuracy(3, 4)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, acc, 0.001)

	for _, bad := range [][2]int{{1, 0}, {-1, 4}, {5, 4}} {
		_, err := ScoreAccuracy(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidScore)
	}
}

func TestProgressRecord(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := Progress{Accuracy: 80, Streak: 2}
	p.Record(60, now)

	assert.InDelta(t, 70.0, p.Accuracy, 0.001)
	assert.Equal(t, 3, p.Streak)
	assert.Equal(t, now, p.LastPracticed)
}

func TestSummarizeProgress(t *testing.T) {
	assert.Equal(t, ProgressStats{}, SummarizeProgress(nil))

	stats := SummarizeProgress([]Progress{
		{Accuracy: 90, Streak: 3},
		{Accuracy: 55, Streak: 1},
		{Accuracy: 70, Streak: 4},
	})
	assert.Equal(t, ProgressStats{
		Accuracy:          71,
		CompletedChapters: 3,
		TotalQuizzes:      8,
		Streak:            4,
	}, stats)
}
