package trivia

import (
	"errors"
	"fmt"
	"strings"
)

// QuestionType names the kind of answer a question expects.
type QuestionType string

const (
	MultipleChoiceType QuestionType = "MULTIPLE_CHOICE"
	TrueFalseType      QuestionType = "TRUE_FALSE"
	NumericType        QuestionType = "NUMERIC"
	OpenEndedType      QuestionType = "OPEN_ENDED"
	OrderingType       QuestionType = "ORDERING"
)

var ErrInvalidQuestion = errors.New("invalid question")

// Question is one trivia item. The Body carries the type-specific data.
type Question struct {
	Category   string
	Difficulty string
	Prompt     string
	Body       Body
}

// Type reports the question type, or "" when the body is missing.
func (q Question) Type() QuestionType {
	if q.Body == nil {
		return ""
	}
	return q.Body.Type()
}

// Body is implemented only by the five question kinds in this package.
type Body interface {
	Type() QuestionType
	sealed()
}

// MultipleChoice expects a letter (or 1-based digit) picking one of Choices.
// Answer is the canonical letter.
type MultipleChoice struct {
	Choices []string
	Answer  string
}

// TrueFalse stores its canonical answer as written in the catalogue (T, F, TRUE or FALSE).
type TrueFalse struct {
	Answer string
}

// Numeric is correct when the guess is within Tolerance of Answer, inclusive.
type Numeric struct {
	Answer    float64
	Tolerance float64
}

type OpenEnded struct {
	Answer string
}

// Ordering expects a permutation of the 1-based choice indexes whose
// choice texts equal Order.
type Ordering struct {
	Choices []string
	Order   []string
}

func (MultipleChoice) Type() QuestionType { return MultipleChoiceType }
func (TrueFalse) Type() QuestionType      { return TrueFalseType }
func (Numeric) Type() QuestionType        { return NumericType }
func (OpenEnded) Type() QuestionType      { return OpenEndedType }
func (Ordering) Type() QuestionType       { return OrderingType }

func (MultipleChoice) sealed() {}
func (TrueFalse) sealed()      {}
func (Numeric) sealed()        {}
func (OpenEnded) sealed()      {}
func (Ordering) sealed()       {}

// NewQuestion checks the body invariants and returns an immutable question.
func NewQuestion(category, difficulty, prompt string, body Body) (Question, error) {
	if err := validateBody(body); err != nil {
		return Question{}, err
	}
	return Question{
		Category:   category,
		Difficulty: difficulty,
		Prompt:     prompt,
		Body:       body,
	}, nil
}

func validateBody(body Body) error {
	switch b := body.(type) {
	case MultipleChoice:
		if len(b.Choices) == 0 {
			return fmt.Errorf("%w: multiple choice without choices", ErrInvalidQuestion)
		}
		letter := strings.ToUpper(strings.TrimSpace(b.Answer))
		if len(letter) != 1 || letter[0] < 'A' || int(letter[0]-'A') >= len(b.Choices) {
			return fmt.Errorf("%w: answer %q is not one of %d choices", ErrInvalidQuestion, b.Answer, len(b.Choices))
		}
	case TrueFalse:
		if _, ok := normalizeTrueFalse(b.Answer); !ok {
			return fmt.Errorf("%w: true/false answer %q", ErrInvalidQuestion, b.Answer)
		}
	case Numeric:
		if b.Tolerance < 0 {
			return fmt.Errorf("%w: negative tolerance %v", ErrInvalidQuestion, b.Tolerance)
		}
	case OpenEnded:
		if normalizeText(b.Answer) == "" {
			return fmt.Errorf("%w: empty open-ended answer", ErrInvalidQuestion)
		}
	case Ordering:
		if len(b.Choices) == 0 {
			return fmt.Errorf("%w: ordering without choices", ErrInvalidQuestion)
		}
		if len(b.Order) != len(b.Choices) {
			return fmt.Errorf("%w: ordering has %d items for %d choices", ErrInvalidQuestion, len(b.Order), len(b.Choices))
		}
		for _, item := range b.Order {
			if indexOf(b.Choices, item) < 0 {
				return fmt.Errorf("%w: ordering item %q is not a choice", ErrInvalidQuestion, item)
			}
		}
	default:
		return fmt.Errorf("%w: unknown question body %T", ErrInvalidQuestion, body)
	}
	return nil
}

// CanonicalAnswer renders the correct answer for feedback after a miss.
func (q Question) CanonicalAnswer() string {
	switch b := q.Body.(type) {
	case MultipleChoice:
		letter := strings.ToUpper(strings.TrimSpace(b.Answer))
		if len(letter) == 1 {
			if idx := int(letter[0]) - 'A'; idx >= 0 && idx < len(b.Choices) {
				return fmt.Sprintf("%s) %s", letter, b.Choices[idx])
			}
		}
		return letter
	case TrueFalse:
		if t, _ := normalizeTrueFalse(b.Answer); t == "T" {
			return "TRUE"
		}
		return "FALSE"
	case Numeric:
		return fmt.Sprintf("%g", b.Answer)
	case OpenEnded:
		return b.Answer
	case Ordering:
		idx := make([]string, len(b.Order))
		for i, item := range b.Order {
			idx[i] = fmt.Sprintf("%d", indexOf(b.Choices, item)+1)
		}
		return strings.Join(idx, " ") + " (" + strings.Join(b.Order, ", ") + ")"
	}
	return ""
}

func indexOf(items []string, s string) int {
	for i, item := range items {
		if item == s {
			return i
		}
	}
	return -1
}
