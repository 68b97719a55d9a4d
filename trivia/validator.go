package trivia

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nonDigits = regexp.MustCompile(`\D+`)

// IsValidAnswer reports whether raw is syntactically acceptable for q.
// It never checks correctness.
func IsValidAnswer(q Question, raw string) bool {
	input := strings.TrimSpace(raw)
	if input == "" {
		return false
	}

	switch b := q.Body.(type) {
	case Numeric:
		_, ok := ParseNumeric(input)
		return ok
	case TrueFalse:
		_, ok := normalizeTrueFalse(input)
		return ok
	case MultipleChoice:
		_, ok := choiceLetter(input, len(b.Choices))
		return ok
	case OpenEnded:
		return true
	case Ordering:
		_, ok := parseOrdering(input, len(b.Choices))
		return ok
	}
	return false
}

// withinTolerance is |v-answer| <= tolerance, allowing for decimal inputs
// such as 3.14±0.01 that float64 cannot hold exactly.
func withinTolerance(v, answer, tolerance float64) bool {
	slack := 1e-9 * math.Max(1, math.Max(math.Abs(answer), math.Abs(tolerance)))
	return math.Abs(v-answer) <= tolerance+slack
}

// IsCorrect reports whether raw answers q correctly. Malformed input is
// simply not correct.
func IsCorrect(q Question, raw string) bool {
	if !IsValidAnswer(q, raw) {
		return false
	}
	input := strings.TrimSpace(raw)

	switch b := q.Body.(type) {
	case Numeric:
		v, _ := ParseNumeric(input)
		return withinTolerance(v, b.Answer, b.Tolerance)
	case TrueFalse:
		got, _ := normalizeTrueFalse(input)
		want, ok := normalizeTrueFalse(b.Answer)
		return ok && got == want
	case MultipleChoice:
		got, _ := choiceLetter(input, len(b.Choices))
		return got == strings.ToUpper(strings.TrimSpace(b.Answer))
	case Ordering:
		idx, _ := parseOrdering(input, len(b.Choices))
		if len(idx) != len(b.Order) {
			return false
		}
		for i, choice := range idx {
			if b.Choices[choice] != b.Order[i] {
				return false
			}
		}
		return true
	case OpenEnded:
		got := normalizeText(input)
		return got != "" && got == normalizeText(b.Answer)
	}
	return false
}

// ParseNumeric accepts either '.' or ',' as the decimal separator.
// NaN and infinities are rejected.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func normalizeTrueFalse(raw string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "T", "TRUE":
		return "T", true
	case "F", "FALSE":
		return "F", true
	}
	return "", false
}

// choiceLetter maps "b" or "2" to "B" when it names one of n choices.
func choiceLetter(raw string, n int) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) != 1 || n <= 0 {
		return "", false
	}
	c := s[0]
	switch {
	case c >= 'A' && int(c-'A') < n:
		return s, true
	case c >= '1' && c <= '9' && int(c-'1') < n:
		return string(rune('A' + c - '1')), true
	}
	return "", false
}

// parseOrdering returns the 0-based choice indexes of a permutation of 1..n.
func parseOrdering(raw string, n int) ([]int, bool) {
	var tokens []string
	for _, tok := range nonDigits.Split(raw, -1) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if n <= 0 || len(tokens) != n {
		return nil, false
	}

	seen := make(map[int]bool, n)
	idx := make([]int, 0, n)
	for _, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil || v < 1 || v > n || seen[v] {
			return nil, false
		}
		seen[v] = true
		idx = append(idx, v-1)
	}
	return idx, true
}

// normalizeText keeps letters, digits and single spaces, uppercased.
func normalizeText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case unicode.IsSpace(r):
			return ' '
		}
		return -1
	}, s)
	return cases.Upper(language.Und).String(strings.Join(strings.Fields(cleaned), " "))
}
