package mcts

import (
	"golang.org/x/exp/rand"
)

// MoveLike is the constraint for move values. Moves are compared for
// equality when a move is promoted from the untried list to a child node,
// and serve as map keys when the per-tree statistics are merged.
type MoveLike comparable

// Player identifies one of the two sides.
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

// Other returns the opponent of p.
func (p Player) Other() Player {
	return 3 - p
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "player 1"
	case Player2:
		return "player 2"
	}
	return "no player"
}

// Result of a finished game, always in [0, 1].
type Result float64

const (
	Loss Result = 0.0
	Draw Result = 0.5
	Win  Result = 1.0
)

// GameState is the contract a game must satisfy to be searched. S is the
// concrete state type itself, so Clone can return it without casts.
//
// The engine never inspects the game beyond these methods. All of them may
// mutate or read the receiver freely: every worker operates on its own
// deep copy obtained through Clone.
type GameState[T MoveLike, S any] interface {
	// PlayerToMove returns the side whose turn it is.
	PlayerToMove() Player

	// Moves returns every legal move, or an empty slice if the game
	// is over. The order must be deterministic for a given position.
	Moves() []T

	// HasMoves reports whether the game is still going.
	HasMoves() bool

	// DoMove applies a legal move. Applying an illegal move is a
	// programming error and may panic.
	DoMove(T)

	// DoRandomMove applies a uniformly random legal move. Requires at
	// least one legal move.
	DoRandomMove(*rand.Rand)

	// Result scores a finished game. The score is counted for the player
	// who made the last move, passed here through the opposite side:
	// Win when pov has lost, Loss when pov has won, Draw otherwise.
	// Only meaningful on terminal states.
	Result(pov Player) Result

	// Clone returns a deep copy sharing no memory with the receiver.
	Clone() S
}
