package trivia

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustQuestion(t *testing.T, body Body) Question {
	t.Helper()
	q, err := NewQuestion("Science", "EASY", "prompt", body)
	require.NoError(t, err)
	return q
}

func TestNumericToleranceIsInclusive(t *testing.T) {
	q := mustQuestion(t, Numeric{Answer: 10, Tolerance: 0.5})

	tests := []struct {
		input   string
		valid   bool
		correct bool
	}{
		{"10", true, true},
		{"10.5", true, true},
		{"9.5", true, true},
		{"10,5", true, true},
		{" 9,75 ", true, true},
		{"10.51", true, false},
		{"9.49", true, false},
		{"1e1", true, true},
		{"ten", false, false},
		{"NaN", false, false},
		{"inf", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidAnswer(q, tt.input))
			assert.Equal(t, tt.correct, IsCorrect(q, tt.input))
		})
	}
}

func TestNumericDecimalBoundaries(t *testing.T) {
	tests := []struct {
		answer, tolerance float64
		input             string
		correct           bool
	}{
		{3.14, 0.01, "3.13", true},
		{3.14, 0.01, "3.15", true},
		{3.14, 0.01, "3.151", false},
		{0.3, 0.1, "0.4", true},
		{0.3, 0.1, "0.2", true},
		{0.3, 0.1, "0.41", false},
		{8849, 0.1, "8849.1", true},
		{8849, 0.1, "8848.9", true},
		{8849, 0.1, "8849.11", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%g±%g/%s", tt.answer, tt.tolerance, tt.input), func(t *testing.T) {
			q := mustQuestion(t, Numeric{Answer: tt.answer, Tolerance: tt.tolerance})
			assert.Equal(t, tt.correct, IsCorrect(q, tt.input))
		})
	}
}

func TestNumericZeroTolerance(t *testing.T) {
	q := mustQuestion(t, Numeric{Answer: 1969})
	assert.True(t, IsCorrect(q, "1969"))
	assert.False(t, IsCorrect(q, "1970"))
}

func TestTrueFalse(t *testing.T) {
	q := mustQuestion(t, TrueFalse{Answer: "TRUE"})

	for _, in := range []string{"t", "T", "true", "TRUE", " True "} {
		assert.True(t, IsValidAnswer(q, in), in)
		assert.True(t, IsCorrect(q, in), in)
	}
	for _, in := range []string{"f", "FALSE"} {
		assert.True(t, IsValidAnswer(q, in), in)
		assert.False(t, IsCorrect(q, in), in)
	}
	assert.False(t, IsValidAnswer(q, "yes"))
	assert.False(t, IsCorrect(q, "yes"))

	short := mustQuestion(t, TrueFalse{Answer: "f"})
	assert.True(t, IsCorrect(short, "false"))
}

func TestMultipleChoice(t *testing.T) {
	q := mustQuestion(t, MultipleChoice{Choices: []string{"Paris", "Rome", "Madrid", "Berlin"}, Answer: "b"})

	tests := []struct {
		input   string
		valid   bool
		correct bool
	}{
		{"B", true, true},
		{"b", true, true},
		{"2", true, true},
		{"A", true, false},
		{"4", true, false},
		{"D", true, false},
		{"E", false, false},
		{"5", false, false},
		{"0", false, false},
		{"AB", false, false},
		{"Rome", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidAnswer(q, tt.input))
			assert.Equal(t, tt.correct, IsCorrect(q, tt.input))
		})
	}
}

func TestOrdering(t *testing.T) {
	q := mustQuestion(t, Ordering{
		Choices: []string{"Jupiter", "Earth", "Mercury"},
		Order:   []string{"Mercury", "Earth", "Jupiter"},
	})

	tests := []struct {
		input   string
		valid   bool
		correct bool
	}{
		{"3 2 1", true, true},
		{"3;2;1", true, true},
		{" 3, 2 -> 1 ", true, true},
		{"1 2 3", true, false},
		{"2 3 1", true, false},
		{"3 3 1", false, false},
		{"3 2 4", false, false},
		{"0 2 1", false, false},
		{"3 2", false, false},
		{"3 2 1 1", false, false},
		{"abc", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidAnswer(q, tt.input))
			assert.Equal(t, tt.correct, IsCorrect(q, tt.input))
		})
	}
}

func TestOpenEndedNormalisation(t *testing.T) {
	q := mustQuestion(t, OpenEnded{Answer: "Leonardo da Vinci"})

	assert.True(t, IsCorrect(q, "leonardo da vinci"))
	assert.True(t, IsCorrect(q, "  Leonardo   DA  Vinci!! "))
	assert.True(t, IsCorrect(q, "Leonardo, da Vinci."))
	assert.False(t, IsCorrect(q, "Leonardo"))
	assert.False(t, IsCorrect(q, "LeonardodaVinci"))

	assert.True(t, IsValidAnswer(q, "?!"))
	assert.False(t, IsCorrect(q, "?!"))
	assert.False(t, IsValidAnswer(q, "   "))
}

func TestOpenEndedUnicode(t *testing.T) {
	q := mustQuestion(t, OpenEnded{Answer: "Ciudad de México"})
	assert.True(t, IsCorrect(q, "ciudad de méxico"))
	assert.False(t, IsCorrect(q, "ciudad de mexico"))
}

func TestEmptyResponsesAreInvalidForEveryType(t *testing.T) {
	bodies := []Body{
		MultipleChoice{Choices: []string{"a", "b"}, Answer: "A"},
		TrueFalse{Answer: "T"},
		Numeric{Answer: 1},
		OpenEnded{Answer: "x"},
		Ordering{Choices: []string{"a", "b"}, Order: []string{"b", "a"}},
	}
	for _, body := range bodies {
		q := mustQuestion(t, body)
		for _, in := range []string{"", " ", "\t\n"} {
			assert.False(t, IsValidAnswer(q, in), "%s %q", body.Type(), in)
			assert.False(t, IsCorrect(q, in), "%s %q", body.Type(), in)
		}
	}
}

func TestMissingBodyIsNeverValid(t *testing.T) {
	q := Question{Category: "x", Difficulty: "EASY", Prompt: "?"}
	assert.False(t, IsValidAnswer(q, "A"))
	assert.False(t, IsCorrect(q, "A"))
}

func TestCorrectImpliesValid(t *testing.T) {
	questions := []Question{
		mustQuestion(t, MultipleChoice{Choices: []string{"a", "b", "c"}, Answer: "C"}),
		mustQuestion(t, TrueFalse{Answer: "FALSE"}),
		mustQuestion(t, Numeric{Answer: 3.14, Tolerance: 0.01}),
		mustQuestion(t, OpenEnded{Answer: "Blue"}),
		mustQuestion(t, Ordering{Choices: []string{"a", "b"}, Order: []string{"a", "b"}}),
	}
	inputs := []string{"", "c", "3", "F", "false", "3,14", "3.15", "blue", "1 2", "2 1", "1 1", "x", "99"}
	for _, q := range questions {
		for _, in := range inputs {
			if IsCorrect(q, in) {
				assert.True(t, IsValidAnswer(q, in), "%s %q", q.Type(), in)
			}
		}
	}
}
