package bench

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"parmcts/pkg/mcts"
)

func TestMain(m *testing.M) {
	mcts.SetSeedGeneratorFn(func() uint64 { return 42 })
	m.Run()
}

// Take-away game, remove 1 to 3 stones, taking the last stone wins.
// Small enough for the arena tests to stay fast.

type nimMove int

type nimState struct {
	stones int
	toMove mcts.Player
}

var _ mcts.GameState[nimMove, *nimState] = (*nimState)(nil)

func newNim(stones int) *nimState {
	return &nimState{stones: stones, toMove: mcts.Player1}
}

func (s *nimState) PlayerToMove() mcts.Player { return s.toMove }

func (s *nimState) Moves() []nimMove {
	moves := make([]nimMove, 0, 3)
	for take := 1; take <= 3 && take <= s.stones; take++ {
		moves = append(moves, nimMove(take))
	}
	return moves
}

func (s *nimState) HasMoves() bool { return s.stones > 0 }

func (s *nimState) DoMove(m nimMove) {
	s.stones -= int(m)
	s.toMove = s.toMove.Other()
}

func (s *nimState) DoRandomMove(rng *rand.Rand) {
	moves := s.Moves()
	s.DoMove(moves[rng.Intn(len(moves))])
}

func (s *nimState) Result(pov mcts.Player) mcts.Result {
	if s.stones > 0 {
		return mcts.Draw
	}
	// The player who took the last stone won and it's the opponent's turn.
	if pov == s.toMove {
		return mcts.Win
	}
	return mcts.Loss
}

func (s *nimState) Clone() *nimState {
	clone := *s
	return &clone
}

func fastOptions(iterations int) *mcts.Options {
	opts := mcts.DefaultOptions()
	return opts.SetThreads(2).SetMaxIterations(iterations)
}

func TestArenaAccounting(t *testing.T) {
	arena := NewArena[nimMove](newNim(9), fastOptions(80), fastOptions(80)).
		Setup(8, 2)

	summary, err := arena.Run()
	require.NoError(t, err)

	require.Equal(t, 8, summary.Games)
	require.Equal(t, summary.Games, summary.P1Wins+summary.P2Wins+summary.Draws)
	// Nim has no draws.
	require.Zero(t, summary.Draws)
	require.Equal(t, summary.Games, arena.Total())
	require.LessOrEqual(t, summary.FirstMoverWins, summary.Games)
	require.Equal(t, 2, summary.Workers)
}

func TestArenaUnevenGameSplit(t *testing.T) {
	arena := NewArena[nimMove](newNim(7), fastOptions(50), fastOptions(50)).
		Setup(5, 3)

	summary, err := arena.Run()
	require.NoError(t, err)
	require.Equal(t, 5, summary.Games)
}

func TestArenaStrongBeatsWeak(t *testing.T) {
	if testing.Short() {
		t.Skip("plays a full series")
	}

	// From nim(10) the side to move is lost with perfect play, so a
	// searching first mover cannot force wins. A deep search as player 2
	// should still dominate a shallow player 1 over a series.
	strong := fastOptions(2000)
	weak := mcts.DefaultOptions().SetThreads(1).SetMaxIterations(2)

	arena := NewArena[nimMove](newNim(10), weak, strong).Setup(20, 2)
	summary, err := arena.Run()
	require.NoError(t, err)
	require.Greater(t, summary.P2Wins, summary.P1Wins)
}

func TestArenaCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	arena := NewArena[nimMove](newNim(9), fastOptions(50), fastOptions(50)).
		Setup(10, 2).
		WithContext(ctx)

	summary, err := arena.Run()
	require.NoError(t, err)
	require.Zero(t, summary.Games)
}

func TestArenaAbortsOnSearchError(t *testing.T) {
	bad := mcts.DefaultOptions().SetThreads(0)

	arena := NewArena[nimMove](newNim(9), bad, fastOptions(50)).Setup(4, 2)
	_, err := arena.Run()
	require.Error(t, err)
	require.True(t, errors.Is(err, mcts.ErrNoThreads))
}
