package game

import (
	"time"

	"github.com/airylvat/mindwars/trivia"
)

// Answer is what one seat did during a round.
type Answer struct {
	Response string
	Correct  bool
	TooSlow  bool
	Elapsed  time.Duration
	Wager    int
	Delta    int
}

// RoundResult is built once per round and handed by value to the scoring
// and territory steps.
type RoundResult struct {
	Number    int
	Question  trivia.Question
	Answers   [2]Answer
	Conqueror int
	// SpeedBonus is the seat that earned the bonus, or -1.
	SpeedBonus int
}

// faster returns the seat with the lower elapsed time. Seat 0 wins ties.
func faster(r RoundResult) int {
	if r.Answers[0].Elapsed <= r.Answers[1].Elapsed {
		return 0
	}
	return 1
}

// speedBonusSeat names the faster seat when both answered correctly.
func speedBonusSeat(r RoundResult) (int, bool) {
	if !r.Answers[0].Correct || !r.Answers[1].Correct {
		return -1, false
	}
	return faster(r), true
}

// conqueror is the only correct seat, or the faster one when both or
// neither were correct.
func conqueror(r RoundResult) int {
	a, b := r.Answers[0].Correct, r.Answers[1].Correct
	switch {
	case a && !b:
		return 0
	case b && !a:
		return 1
	}
	return faster(r)
}
