package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxResetsPerChapter bounds how often a user may wipe their attempts on a chapter.
const MaxResetsPerChapter = 2

// Progress tracks a user's practice on one chapter.
type Progress struct {
	ID            int64     `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ChapterID     int64     `json:"chapter_id"`
	Accuracy      float64   `json:"accuracy"`
	Streak        int       `json:"streak"`
	LastPracticed time.Time `json:"last_practiced"`
}

// ScoreAccuracy converts a quiz score to a percentage.
func ScoreAccuracy(correct, total int) (float64, error) {
	if total <= 0 || correct < 0 || correct > total {
		return 0, fmt.Errorf("%w: %d of %d", ErrInvalidScore, correct, total)
	}
	return float64(correct) / float64(total) * 100, nil
}

// Record folds a new quiz result into the progress: accuracy is averaged with
// the previous value and the streak grows by one.
func (p *Progress) Record(accuracy float64, now time.Time) {
	p.Accuracy = (p.Accuracy + accuracy) / 2
	p.Streak++
	p.LastPracticed = now.UTC()
}

// ProgressStats summarizes all of a user's progress records.
type ProgressStats struct {
	Accuracy          int `json:"accuracy"`
	CompletedChapters int `json:"completed_chapters"`
	TotalQuizzes      int `json:"total_quizzes"`
	Streak            int `json:"streak"`
}

// SummarizeProgress computes stats over a user's records.
func SummarizeProgress(records []Progress) ProgressStats {
	if len(records) == 0 {
		return ProgressStats{}
	}
	var sum float64
	stats := ProgressStats{CompletedChapters: len(records)}
	for _, r := range records {
		sum += r.Accuracy
		stats.TotalQuizzes += r.Streak
		if r.Streak > stats.Streak {
			stats.Streak = r.Streak
		}
	}
	stats.Accuracy = int(sum / float64(len(records)))
	return stats
}

// MCQAttempt is one answer a user gave to a multiple-choice question.
type MCQAttempt struct {
	ID             int64     `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	ChapterID      int64     `json:"chapter_id"`
	MCQID          int64     `json:"mcq_id"`
	SelectedAnswer string    `json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	AttemptedAt    time.Time `json:"attempted_at"`
}
