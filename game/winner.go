package game

import (
	"math"
	"time"

	"github.com/airylvat/mindwars/player"
)

// Winner picks the player with the highest score, then the lowest
// accumulated time. It returns false when the best player is tied on both
// with another player, or when there are no players.
func Winner(players []*player.Player) (*player.Player, bool) {
	var best *player.Player
	for _, p := range players {
		if best == nil || ahead(p, best) {
			best = p
		}
	}
	if best == nil {
		return nil, false
	}
	for _, p := range players {
		if p != best && p.Score() == best.Score() && p.Elapsed() == best.Elapsed() {
			return nil, false
		}
	}
	return best, true
}

func ahead(a, b *player.Player) bool {
	if a.Score() != b.Score() {
		return a.Score() > b.Score()
	}
	return a.Elapsed() < b.Elapsed()
}

// EstimationResponse is one player's guess on a numeric question.
type EstimationResponse struct {
	Player  *player.Player
	Value   float64
	Elapsed time.Duration
}

// EstimationWinner returns the player closest to target; equal distances go
// to the faster answer. On a full tie the earlier response in the slice
// wins, so callers pass responses in seat order.
func EstimationWinner(target float64, responses []EstimationResponse) *player.Player {
	if len(responses) == 0 {
		return nil
	}
	best := responses[0]
	for _, r := range responses[1:] {
		d, bestD := math.Abs(r.Value-target), math.Abs(best.Value-target)
		if d < bestD || (d == bestD && r.Elapsed < best.Elapsed) {
			best = r
		}
	}
	return best.Player
}
