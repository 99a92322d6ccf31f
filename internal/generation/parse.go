package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ncert-revision/revision-api/internal/domain"
)

var validate = validator.New()

// rawMCQ is one element of a multiple-choice reply.
type rawMCQ struct {
	Question string `json:"question" validate:"required"`
	OptionA  string `json:"option_a" validate:"required"`
	OptionB  string `json:"option_b" validate:"required"`
	OptionC  string `json:"option_c" validate:"required"`
	OptionD  string `json:"option_d" validate:"required"`
	Correct  string `json:"correct"`
}

// rawFlashcard is one element of a flashcard reply.
type rawFlashcard struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

func decodeArray(text string, out any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON array", ErrMalformedResponse)
	}
	return nil
}

func validateElement(i int, v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: item %d: %v", ErrMalformedResponse, i, err)
	}
	return nil
}

// ParseMCQs decodes sanitized provider text into questions for chapterID.
// Any invalid element rejects the whole reply. A missing or empty correct
// option defaults to A.
func ParseMCQs(text string, chapterID int64) ([]domain.MCQ, error) {
	var raw []rawMCQ
	if err := decodeArray(text, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no items in response", ErrMalformedResponse)
	}

	mcqs := make([]domain.MCQ, 0, len(raw))
	for i, r := range raw {
		r.Question = strings.TrimSpace(r.Question)
		r.OptionA = strings.TrimSpace(r.OptionA)
		r.OptionB = strings.TrimSpace(r.OptionB)
		r.OptionC = strings.TrimSpace(r.OptionC)
		r.OptionD = strings.TrimSpace(r.OptionD)
		if err := validateElement(i, r); err != nil {
			return nil, err
		}
		correct, err := domain.NormalizeOption(r.Correct)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformedResponse, i, err)
		}
		mcqs = append(mcqs, domain.MCQ{
			ChapterID: chapterID,
			Question:  r.Question,
			OptionA:   r.OptionA,
			OptionB:   r.OptionB,
			OptionC:   r.OptionC,
			OptionD:   r.OptionD,
			Correct:   correct,
		})
	}
	return mcqs, nil
}

// ParseFlashcards decodes sanitized provider text into flashcards for
// chapterID. Any invalid element rejects the whole reply.
func ParseFlashcards(text string, chapterID int64) ([]domain.Flashcard, error) {
	var raw []rawFlashcard
	if err := decodeArray(text, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no items in response", ErrMalformedResponse)
	}

	cards := make([]domain.Flashcard, 0, len(raw))
	for i, r := range raw {
		r.Question = strings.TrimSpace(r.Question)
		r.Answer = strings.TrimSpace(r.Answer)
		if err := validateElement(i, r); err != nil {
			return nil, err
		}
		cards = append(cards, domain.Flashcard{
			ChapterID: chapterID,
			Question:  r.Question,
			Answer:    r.Answer,
		})
	}
	return cards, nil
}

// Parse sanitizes raw provider output and parses it into an item set of kind.
func Parse(kind domain.ItemKind, raw string, chapterID int64) (domain.ItemSet, error) {
	text := Sanitize(raw)
	if text == "" {
		return domain.ItemSet{Kind: kind}, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	set := domain.ItemSet{Kind: kind}
	var err error
	switch kind {
	case domain.KindMultipleChoice:
		set.MCQs, err = ParseMCQs(text, chapterID)
	case domain.KindFlashcard:
		set.Flashcards, err = ParseFlashcards(text, chapterID)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrInvalidItemKind, kind)
	}
	return set, err
}
