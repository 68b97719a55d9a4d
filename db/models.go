package db

import (
	"time"

	"github.com/airylvat/mindwars/game"
)

// MatchRecord is one finished match in the history table. Winner is empty
// on a tie.
type MatchRecord struct {
	ID         string
	PlayedAt   time.Time
	Category   string
	Difficulty string
	Player1    string
	Player2    string
	Score1     int
	Score2     int
	Elapsed1   time.Duration
	Elapsed2   time.Duration
	Territory1 int
	Territory2 int
	Winner     string
	EndedEarly bool
}

// NewMatchRecord flattens a two-player outcome.
func NewMatchRecord(out game.Outcome, playedAt time.Time) MatchRecord {
	r := MatchRecord{
		ID:         out.MatchID,
		PlayedAt:   playedAt.UTC(),
		Category:   out.Category,
		Difficulty: out.Difficulty,
		Territory1: out.Territory[0],
		Territory2: out.Territory[1],
		EndedEarly: out.EndedEarly,
	}
	if len(out.Players) == 2 {
		r.Player1, r.Score1, r.Elapsed1 = out.Players[0].Name(), out.Players[0].Score(), out.Players[0].Elapsed()
		r.Player2, r.Score2, r.Elapsed2 = out.Players[1].Name(), out.Players[1].Score(), out.Players[1].Elapsed()
	}
	if out.Winner != nil {
		r.Winner = out.Winner.Name()
	}
	return r
}
