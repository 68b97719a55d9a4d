package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airylvat/mindwars/player"
)

// scored builds a player through the public scoring rules.
func scored(t *testing.T, name string, easyCorrect int, elapsed time.Duration) *player.Player {
	t.Helper()
	p, err := player.New(name)
	require.NoError(t, err)
	for i := 0; i < easyCorrect; i++ {
		p.AwardCorrect("EASY")
		p.RecordIncorrect()
	}
	p.AddElapsed(elapsed)
	return p
}

func TestWinnerHigherScore(t *testing.T) {
	a := scored(t, "a", 2, 9*time.Second)
	b := scored(t, "b", 1, time.Second)

	for _, order := range [][]*player.Player{{a, b}, {b, a}} {
		w, ok := Winner(order)
		require.True(t, ok)
		assert.Same(t, a, w)
	}
}

func TestWinnerFasterOnEqualScore(t *testing.T) {
	a := scored(t, "a", 1, 3*time.Second)
	b := scored(t, "b", 1, 2*time.Second)

	for _, order := range [][]*player.Player{{a, b}, {b, a}} {
		w, ok := Winner(order)
		require.True(t, ok)
		assert.Same(t, b, w)
	}
}

func TestWinnerFullTie(t *testing.T) {
	a := scored(t, "a", 1, 2*time.Second)
	b := scored(t, "b", 1, 2*time.Second)

	for _, order := range [][]*player.Player{{a, b}, {b, a}} {
		w, ok := Winner(order)
		assert.False(t, ok)
		assert.Nil(t, w)
	}
}

func TestWinnerIgnoresTiesBelowTheLeader(t *testing.T) {
	leader := scored(t, "leader", 3, 5*time.Second)
	x := scored(t, "x", 1, 2*time.Second)
	y := scored(t, "y", 1, 2*time.Second)

	orders := [][]*player.Player{
		{x, y, leader},
		{leader, x, y},
		{x, leader, y},
	}
	for _, order := range orders {
		w, ok := Winner(order)
		require.True(t, ok)
		assert.Same(t, leader, w)
	}
}

func TestWinnerTieAtTheTopWithThreePlayers(t *testing.T) {
	a := scored(t, "a", 2, 2*time.Second)
	b := scored(t, "b", 2, 2*time.Second)
	c := scored(t, "c", 1, time.Second)

	for _, order := range [][]*player.Player{{a, b, c}, {c, b, a}, {b, c, a}} {
		_, ok := Winner(order)
		assert.False(t, ok)
	}
}

func TestWinnerEmpty(t *testing.T) {
	w, ok := Winner(nil)
	assert.False(t, ok)
	assert.Nil(t, w)
}

func TestEstimationWinner(t *testing.T) {
	p1 := scored(t, "p1", 0, 0)
	p2 := scored(t, "p2", 0, 0)

	closer := EstimationWinner(50, []EstimationResponse{
		{Player: p1, Value: 48, Elapsed: 2000 * time.Millisecond},
		{Player: p2, Value: 52.5, Elapsed: 1000 * time.Millisecond},
	})
	assert.Same(t, p1, closer)

	faster := EstimationWinner(50, []EstimationResponse{
		{Player: p1, Value: 48, Elapsed: 2000 * time.Millisecond},
		{Player: p2, Value: 48, Elapsed: 1000 * time.Millisecond},
	})
	assert.Same(t, p2, faster)

	mirrored := EstimationWinner(50, []EstimationResponse{
		{Player: p1, Value: 48, Elapsed: 2000 * time.Millisecond},
		{Player: p2, Value: 52, Elapsed: 1000 * time.Millisecond},
	})
	assert.Same(t, p2, mirrored)
}

// On a full tie the first response in the slice is kept.
func TestEstimationWinnerFullTieKeepsFirst(t *testing.T) {
	p1 := scored(t, "p1", 0, 0)
	p2 := scored(t, "p2", 0, 0)
	responses := []EstimationResponse{
		{Player: p1, Value: 49, Elapsed: time.Second},
		{Player: p2, Value: 51, Elapsed: time.Second},
	}
	assert.Same(t, p1, EstimationWinner(50, responses))
	responses[0], responses[1] = responses[1], responses[0]
	assert.Same(t, p2, EstimationWinner(50, responses))

	assert.Nil(t, EstimationWinner(50, nil))
}

func TestRoundRules(t *testing.T) {
	mk := func(c0, c1 bool, e0, e1 time.Duration) RoundResult {
		return RoundResult{Answers: [2]Answer{
			{Correct: c0, Elapsed: e0},
			{Correct: c1, Elapsed: e1},
		}}
	}

	assert.Equal(t, 1, conqueror(mk(false, true, time.Second, 9*time.Second)))
	assert.Equal(t, 0, conqueror(mk(true, false, 9*time.Second, time.Second)))
	assert.Equal(t, 1, conqueror(mk(true, true, 3*time.Second, 2*time.Second)))
	assert.Equal(t, 1, conqueror(mk(false, false, 3*time.Second, 2*time.Second)))
	assert.Equal(t, 0, conqueror(mk(false, false, 2*time.Second, 2*time.Second)), "time ties go to player 1")

	seat, ok := speedBonusSeat(mk(true, true, 3*time.Second, 2*time.Second))
	assert.True(t, ok)
	assert.Equal(t, 1, seat)

	seat, ok = speedBonusSeat(mk(true, true, 2*time.Second, 2*time.Second))
	assert.True(t, ok)
	assert.Equal(t, 0, seat, "time ties go to player 1")

	_, ok = speedBonusSeat(mk(true, false, time.Second, 2*time.Second))
	assert.False(t, ok)
}
