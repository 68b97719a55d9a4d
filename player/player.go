package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	StreakThreshold = 3
	StreakBonus     = 3
	SpeedBonus      = 1
)

var (
	ErrEmptyName    = errors.New("player name is empty")
	ErrInvalidWager = errors.New("invalid wager")
)

// Player is one participant of a match. Score and streak only change
// through the scoring methods below.
type Player struct {
	name    string
	score   int
	elapsed time.Duration
	streak  int
}

func New(name string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Player{name: name}, nil
}

func (p *Player) Name() string           { return p.name }
func (p *Player) Score() int             { return p.score }
func (p *Player) Elapsed() time.Duration { return p.elapsed }
func (p *Player) Streak() int            { return p.streak }

// AddElapsed accumulates answer latency. Negative durations are ignored.
func (p *Player) AddElapsed(d time.Duration) {
	if d > 0 {
		p.elapsed += d
	}
}

// Points is the value of a correct non-wagered answer.
func Points(difficulty string) int {
	switch strings.ToUpper(strings.TrimSpace(difficulty)) {
	case "HARD":
		return 30
	case "MEDIUM":
		return 20
	}
	return 10
}

// Award describes what a scoring call added to the player's score.
type Award struct {
	Points      int
	StreakBonus int
}

func (a Award) Total() int { return a.Points + a.StreakBonus }

// AwardCorrect scores a correct standard answer. The streak bonus fires
// every time the streak reaches a multiple of StreakThreshold.
func (p *Player) AwardCorrect(difficulty string) Award {
	a := Award{Points: Points(difficulty)}
	p.streak++
	if p.streak%StreakThreshold == 0 {
		a.StreakBonus = StreakBonus
	}
	p.score += a.Total()
	return a
}

// RecordIncorrect resets the streak. Wrong answers cost nothing.
func (p *Player) RecordIncorrect() {
	p.streak = 0
}

// ValidateWager checks 1 <= stake <= current score.
func (p *Player) ValidateWager(stake int) error {
	if stake < 1 {
		return fmt.Errorf("%w: stake must be at least 1", ErrInvalidWager)
	}
	if stake > p.score {
		return fmt.Errorf("%w: stake %d exceeds score %d", ErrInvalidWager, stake, p.score)
	}
	return nil
}

// CanWager reports whether any stake is possible.
func (p *Player) CanWager() bool {
	return p.score >= 1
}

// SettleWager applies a wagered outcome: +2*stake on a correct answer,
// -stake otherwise. The streak is untouched. It returns the score delta.
func (p *Player) SettleWager(stake int, correct bool) (int, error) {
	if err := p.ValidateWager(stake); err != nil {
		return 0, err
	}
	delta := -stake
	if correct {
		delta = 2 * stake
	}
	p.score += delta
	return delta, nil
}

func (p *Player) AwardSpeedBonus() {
	p.score += SpeedBonus
}

// FormatElapsed renders the accumulated time in seconds.
func (p *Player) FormatElapsed() string {
	return fmt.Sprintf("%.2fs", p.elapsed.Seconds())
}
