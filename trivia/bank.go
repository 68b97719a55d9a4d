package trivia

import (
	"math/rand/v2"
	"sort"
	"strings"
)

// Bank indexes questions by category then difficulty. Each draw removes the
// question, so a match never sees the same question twice.
type Bank struct {
	questions map[string]map[string][]Question
	rng       *rand.Rand
}

// NewBank shuffles every bucket once. A nil rng uses the global source.
func NewBank(questions []Question, rng *rand.Rand) *Bank {
	b := &Bank{
		questions: make(map[string]map[string][]Question),
		rng:       rng,
	}
	for _, q := range questions {
		byDifficulty, ok := b.questions[q.Category]
		if !ok {
			byDifficulty = make(map[string][]Question)
			b.questions[q.Category] = byDifficulty
		}
		key := difficultyKey(q.Difficulty)
		byDifficulty[key] = append(byDifficulty[key], q)
	}
	for _, byDifficulty := range b.questions {
		for _, list := range byDifficulty {
			b.shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
		}
	}
	return b
}

// difficultyKey folds "easy" and " EASY" into one bucket, as Coverage does.
func difficultyKey(difficulty string) string {
	return strings.ToUpper(strings.TrimSpace(difficulty))
}

func (b *Bank) shuffle(n int, swap func(i, j int)) {
	if b.rng != nil {
		b.rng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}

func (b *Bank) intN(n int) int {
	if b.rng != nil {
		return b.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Categories lists, sorted, the categories that still hold questions.
func (b *Bank) Categories() []string {
	var out []string
	for category := range b.questions {
		if len(b.Difficulties(category)) > 0 {
			out = append(out, category)
		}
	}
	sort.Strings(out)
	return out
}

// Difficulties lists, sorted, the non-empty difficulties of category.
func (b *Bank) Difficulties(category string) []string {
	var out []string
	for difficulty, list := range b.questions[category] {
		if len(list) > 0 {
			out = append(out, difficulty)
		}
	}
	sort.Strings(out)
	return out
}

// Draw removes and returns the next question of the bucket.
func (b *Bank) Draw(category, difficulty string) (Question, bool) {
	key := difficultyKey(difficulty)
	list := b.questions[category][key]
	if len(list) == 0 {
		return Question{}, false
	}
	q := list[0]
	b.questions[category][key] = list[1:]
	return q, true
}

// DrawAny removes a uniformly chosen question from any bucket.
func (b *Bank) DrawAny() (Question, bool) {
	remaining := b.Len()
	if remaining == 0 {
		return Question{}, false
	}
	pick := b.intN(remaining)
	for _, category := range b.Categories() {
		for _, difficulty := range b.Difficulties(category) {
			list := b.questions[category][difficulty]
			if pick < len(list) {
				q := list[pick]
				b.questions[category][difficulty] = append(list[:pick:pick], list[pick+1:]...)
				return q, true
			}
			pick -= len(list)
		}
	}
	return Question{}, false
}

// Len counts the questions left in the bank.
func (b *Bank) Len() int {
	n := 0
	for _, byDifficulty := range b.questions {
		for _, list := range byDifficulty {
			n += len(list)
		}
	}
	return n
}
