package trivia

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Record is the catalogue representation of a question, shared by the JSON
// files and the SQLite store.
type Record struct {
	Type           QuestionType `json:"type"`
	Category       string       `json:"category"`
	Difficulty     string       `json:"difficulty"`
	Prompt         string       `json:"prompt"`
	Choices        []string     `json:"choices,omitempty"`
	Answer         string       `json:"answer,omitempty"`
	NumericAnswer  float64      `json:"numericAnswer,omitempty"`
	Tolerance      float64      `json:"tolerance,omitempty"`
	OrderingAnswer []string     `json:"orderingAnswer,omitempty"`
}

// Question converts the record, checking the per-type invariants.
func (r Record) Question() (Question, error) {
	var body Body
	switch QuestionType(strings.ToUpper(strings.TrimSpace(string(r.Type)))) {
	case MultipleChoiceType:
		body = MultipleChoice{Choices: r.Choices, Answer: r.Answer}
	case TrueFalseType:
		body = TrueFalse{Answer: r.Answer}
	case NumericType:
		body = Numeric{Answer: r.NumericAnswer, Tolerance: r.Tolerance}
	case OpenEndedType:
		body = OpenEnded{Answer: r.Answer}
	case OrderingType:
		body = Ordering{Choices: r.Choices, Order: r.OrderingAnswer}
	default:
		return Question{}, fmt.Errorf("%w: unknown type %q", ErrInvalidQuestion, r.Type)
	}
	return NewQuestion(r.Category, r.Difficulty, r.Prompt, body)
}

// RecordOf is the inverse of Record.Question.
func RecordOf(q Question) Record {
	r := Record{
		Type:       q.Type(),
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Prompt:     q.Prompt,
	}
	switch b := q.Body.(type) {
	case MultipleChoice:
		r.Choices = b.Choices
		r.Answer = b.Answer
	case TrueFalse:
		r.Answer = b.Answer
	case Numeric:
		r.NumericAnswer = b.Answer
		r.Tolerance = b.Tolerance
	case OpenEnded:
		r.Answer = b.Answer
	case Ordering:
		r.Choices = b.Choices
		r.OrderingAnswer = b.Order
	}
	return r
}

// DecodeQuestions reads a JSON array of records. A malformed entry fails
// the whole catalogue with its position.
func DecodeQuestions(r io.Reader) ([]Question, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	questions := make([]Question, 0, len(records))
	for i, rec := range records {
		q, err := rec.Question()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
