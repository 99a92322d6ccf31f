package domain

import (
	"fmt"
	"strings"
)

// ItemKind identifies the variant of a generated study item.
type ItemKind string

const (
	// KindMultipleChoice is a question with four options and one correct marker.
	KindMultipleChoice ItemKind = "multiple_choice"
	// KindFlashcard is a question with a free-text answer.
	KindFlashcard ItemKind = "flashcard"
)

// Valid reports whether k is a known item kind.
func (k ItemKind) Valid() bool {
	return k == KindMultipleChoice || k == KindFlashcard
}

// Choice markers for multiple-choice items.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// NormalizeOption upper-cases and trims a choice marker. An empty marker
// defaults to the first option.
func NormalizeOption(raw string) (string, error) {
	opt := strings.ToUpper(strings.TrimSpace(raw))
	if opt == "" {
		return OptionA, nil
	}
	switch opt {
	case OptionA, OptionB, OptionC, OptionD:
		return opt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOption, raw)
}

// MCQ is a multiple-choice question attached to a chapter.
type MCQ struct {
	ID        int64  `json:"id"`
	ChapterID int64  `json:"chapter_id"`
	Question  string `json:"question"`
	OptionA   string `json:"option_a"`
	OptionB   string `json:"option_b"`
	OptionC   string `json:"option_c"`
	OptionD   string `json:"option_d"`
	Correct   string `json:"correct"`
}

// Validate checks that every text field is present and Correct is A-D.
func (m *MCQ) Validate() error {
	for name, v := range map[string]string{
		"question": m.Question,
		"option_a": m.OptionA,
		"option_b": m.OptionB,
		"option_c": m.OptionC,
		"option_d": m.OptionD,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s", ErrEmptyContent, name)
		}
	}
	switch m.Correct {
	case OptionA, OptionB, OptionC, OptionD:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidOption, m.Correct)
}

// Flashcard is a question/answer pair attached to a chapter.
type Flashcard struct {
	ID        int64  `json:"id"`
	ChapterID int64  `json:"chapter_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

// Validate checks that both sides of the card are present.
func (f *Flashcard) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return fmt.Errorf("%w: question", ErrEmptyContent)
	}
	if strings.TrimSpace(f.Answer) == "" {
		return fmt.Errorf("%w: answer", ErrEmptyContent)
	}
	return nil
}

// ItemSet holds generated items of a single kind. Only the slice matching
// Kind is populated.
type ItemSet struct {
	Kind       ItemKind
	MCQs       []MCQ
	Flashcards []Flashcard
}

// Len returns the number of items of the set's kind.
func (s ItemSet) Len() int {
	if s.Kind == KindFlashcard {
		return len(s.Flashcards)
	}
	return len(s.MCQs)
}

// Truncate keeps at most n items.
func (s ItemSet) Truncate(n int) ItemSet {
	if n < 0 {
		n = 0
	}
	if len(s.MCQs) > n {
		s.MCQs = s.MCQs[:n]
	}
	if len(s.Flashcards) > n {
		s.Flashcards = s.Flashcards[:n]
	}
	return s
}

// WithChapter returns a copy of the set with every item attached to chapterID.
func (s ItemSet) WithChapter(chapterID int64) ItemSet {
	out := ItemSet{Kind: s.Kind}
	if s.MCQs != nil {
		out.MCQs = make([]MCQ, len(s.MCQs))
		for i, m := range s.MCQs {
			m.ChapterID = chapterID
			out.MCQs[i] = m
		}
	}
	if s.Flashcards != nil {
		out.Flashcards = make([]Flashcard, len(s.Flashcards))
		for i, f := range s.Flashcards {
			f.ChapterID = chapterID
			out.Flashcards[i] = f
		}
	}
	return out
}
