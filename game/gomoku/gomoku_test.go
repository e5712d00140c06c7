package gomoku

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"parmcts/pkg/mcts"
)

func play(t *testing.T, s *State, moves ...Move) {
	t.Helper()
	for _, m := range moves {
		require.True(t, s.HasMoves(), "game over before move %v", m)
		s.DoMove(m)
	}
}

func TestNewBoard(t *testing.T) {
	s := New(9)

	require.Equal(t, 9, s.Size())
	require.Equal(t, mcts.Player1, s.PlayerToMove())
	require.True(t, s.HasMoves())
	require.Len(t, s.Moves(), 81)

	_, ok := s.LastMove()
	require.False(t, ok)
}

func TestNewDefaultSize(t *testing.T) {
	require.Equal(t, DefaultSize, New(0).Size())
	require.Panics(t, func() { New(3) })
}

func TestDoMove(t *testing.T) {
	s := New(9)
	play(t, s, Move{4, 4})

	require.Equal(t, mcts.Player1, s.At(4, 4))
	require.Equal(t, mcts.Player2, s.PlayerToMove())
	require.Len(t, s.Moves(), 80)

	last, ok := s.LastMove()
	require.True(t, ok)
	require.Equal(t, Move{4, 4}, last)

	require.Panics(t, func() { s.DoMove(Move{4, 4}) }, "occupied cell")
	require.Panics(t, func() { s.DoMove(Move{9, 0}) }, "off the board")
}

func TestWinnerRow(t *testing.T) {
	s := New(9)
	play(t, s,
		Move{0, 0}, Move{1, 0},
		Move{0, 1}, Move{1, 1},
		Move{0, 2}, Move{1, 2},
		Move{0, 3}, Move{1, 3},
		Move{0, 4},
	)

	require.Equal(t, mcts.Player1, s.Winner())
	require.False(t, s.HasMoves())
	require.Empty(t, s.Moves())
}

func TestWinnerColumn(t *testing.T) {
	s := New(9)
	play(t, s,
		Move{0, 0}, Move{0, 1},
		Move{1, 0}, Move{1, 1},
		Move{2, 0}, Move{2, 1},
		Move{3, 0}, Move{3, 1},
		Move{5, 5}, Move{4, 1},
	)

	require.Equal(t, mcts.Player2, s.Winner())
}

func TestWinnerDiagonals(t *testing.T) {
	s := New(9)
	play(t, s,
		Move{0, 0}, Move{0, 1},
		Move{1, 1}, Move{0, 2},
		Move{2, 2}, Move{0, 3},
		Move{3, 3}, Move{0, 5},
		Move{4, 4},
	)
	require.Equal(t, mcts.Player1, s.Winner())

	s = New(9)
	play(t, s,
		Move{0, 4}, Move{8, 0},
		Move{1, 3}, Move{8, 1},
		Move{2, 2}, Move{8, 2},
		Move{3, 1}, Move{8, 3},
		Move{4, 0},
	)
	require.Equal(t, mcts.Player1, s.Winner(), "antidiagonal")
}

func TestWinnerCompletedInTheMiddle(t *testing.T) {
	// The winning stone lands between two runs of two.
	s := New(9)
	play(t, s,
		Move{3, 0}, Move{4, 0},
		Move{3, 1}, Move{4, 1},
		Move{3, 3}, Move{4, 3},
		Move{3, 4}, Move{4, 4},
		Move{3, 2},
	)

	require.Equal(t, mcts.Player1, s.Winner())
}

func TestResultConvention(t *testing.T) {
	s := New(9)
	play(t, s,
		Move{0, 0}, Move{1, 0},
		Move{0, 1}, Move{1, 1},
		Move{0, 2}, Move{1, 2},
		Move{0, 3}, Move{1, 3},
		Move{0, 4},
	)

	// Player 1 won, so the position scores Win for the opposing
	// perspective and Loss for the winner's own.
	require.Equal(t, mcts.Win, s.Result(mcts.Player2))
	require.Equal(t, mcts.Loss, s.Result(mcts.Player1))

	// Scoring is idempotent.
	require.Equal(t, mcts.Win, s.Result(mcts.Player2))
	require.Equal(t, mcts.Loss, s.Result(mcts.Player1))
}

func TestResultDrawOnNeutralPosition(t *testing.T) {
	s := New(9)
	play(t, s, Move{4, 4})

	require.Equal(t, mcts.Draw, s.Result(mcts.Player1))
	require.Equal(t, mcts.Draw, s.Result(mcts.Player2))
}

func TestCloneIsDeep(t *testing.T) {
	s := New(9)
	play(t, s, Move{4, 4})

	clone := s.Clone()
	clone.DoMove(Move{3, 3})

	require.Equal(t, mcts.NoPlayer, s.At(3, 3))
	require.Len(t, s.Moves(), 80)
	require.Len(t, clone.Moves(), 79)
}

func TestMovesIsACopy(t *testing.T) {
	s := New(9)
	moves := s.Moves()
	s.DoMove(moves[0])

	require.Len(t, moves, 81, "returned slice must not alias the board")
}

func TestDoRandomMove(t *testing.T) {
	s := New(9)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 10; i++ {
		s.DoRandomMove(rng)
	}
	require.Len(t, s.empty, 71)
}

func TestParseMove(t *testing.T) {
	s := New(15)

	move, err := s.ParseMove("7E")
	require.NoError(t, err)
	require.Equal(t, Move{7, 14}, move)

	move, err = s.ParseMove(" ab ")
	require.NoError(t, err)
	require.Equal(t, Move{10, 11}, move)

	_, err = s.ParseMove("")
	require.Error(t, err)
	_, err = s.ParseMove("123")
	require.Error(t, err)
	_, err = s.ParseMove("ZZ")
	require.Error(t, err, "off the board")
}

func TestMoveString(t *testing.T) {
	require.Equal(t, "7H", Move{7, 17}.String())
	require.Equal(t, "00", Move{0, 0}.String())
}
