// Package gomoku implements five-in-a-row on a square board, satisfying
// the search engine's state contract. Player 1 plays X, player 2 plays O.
package gomoku

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	"parmcts/pkg/mcts"
)

const (
	DefaultSize = 15
	winLength   = 5
)

// Board coordinate labels, rows and columns both: "7H" is row 7, column H.
const labels = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Move is one board intersection.
type Move struct {
	Row, Col int
}

func (m Move) String() string {
	return fmt.Sprintf("%c%c", labels[m.Row], labels[m.Col])
}

// State is a gomoku position. The zero value is not usable, use New.
type State struct {
	size    int
	board   []mcts.Player // row major
	toMove  mcts.Player
	lastRow int
	lastCol int
	empty   []Move
}

var _ mcts.GameState[Move, *State] = (*State)(nil)

// New returns an empty board of the given side length, player 1 to move.
func New(size int) *State {
	if size <= 0 {
		size = DefaultSize
	}
	if size < winLength || size > len(labels) {
		panic(fmt.Sprintf("gomoku: board size %d out of range [%d, %d]", size, winLength, len(labels)))
	}

	s := &State{
		size:    size,
		board:   make([]mcts.Player, size*size),
		toMove:  mcts.Player1,
		lastRow: -1,
		lastCol: -1,
		empty:   make([]Move, 0, size*size),
	}
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			s.empty = append(s.empty, Move{row, col})
		}
	}
	return s
}

func (s *State) Size() int {
	return s.size
}

// At returns the stone at the given intersection, NoPlayer if empty.
func (s *State) At(row, col int) mcts.Player {
	return s.board[row*s.size+col]
}

// LastMove returns the most recent move, false on an empty board.
func (s *State) LastMove() (Move, bool) {
	if s.lastRow < 0 {
		return Move{}, false
	}
	return Move{s.lastRow, s.lastCol}, true
}

func (s *State) PlayerToMove() mcts.Player {
	return s.toMove
}

func (s *State) DoMove(m Move) {
	if m.Row < 0 || m.Row >= s.size || m.Col < 0 || m.Col >= s.size {
		panic(fmt.Sprintf("gomoku: move %v off the board", m))
	}
	if s.board[m.Row*s.size+m.Col] != mcts.NoPlayer {
		panic(fmt.Sprintf("gomoku: move %v on an occupied cell", m))
	}

	s.board[m.Row*s.size+m.Col] = s.toMove
	for i := range s.empty {
		if s.empty[i] == m {
			s.empty = append(s.empty[:i], s.empty[i+1:]...)
			break
		}
	}
	s.lastRow, s.lastCol = m.Row, m.Col
	s.toMove = s.toMove.Other()
}

func (s *State) DoRandomMove(rng *rand.Rand) {
	if len(s.empty) == 0 {
		panic("gomoku: random move on a full board")
	}
	s.DoMove(s.empty[rng.Intn(len(s.empty))])
}

func (s *State) HasMoves() bool {
	return s.Winner() == mcts.NoPlayer && len(s.empty) > 0
}

func (s *State) Moves() []Move {
	if s.Winner() != mcts.NoPlayer {
		return nil
	}
	// Copied, the engine keeps the slice while the position mutates.
	moves := make([]Move, len(s.empty))
	copy(moves, s.empty)
	return moves
}

// Winner scans for five in a row through the last move, the only place a
// new line can have appeared.
func (s *State) Winner() mcts.Player {
	if s.lastRow < 0 {
		return mcts.NoPlayer
	}

	piece := s.board[s.lastRow*s.size+s.lastCol]
	dirs := [4][2]int{
		{0, 1},  // row
		{1, 0},  // column
		{1, 1},  // diagonal
		{1, -1}, // antidiagonal
	}

	for _, dir := range dirs {
		count := 1
		count += s.countRun(piece, dir[0], dir[1])
		count += s.countRun(piece, -dir[0], -dir[1])
		if count >= winLength {
			return piece
		}
	}
	return mcts.NoPlayer
}

func (s *State) countRun(piece mcts.Player, dRow, dCol int) int {
	count := 0
	row, col := s.lastRow+dRow, s.lastCol+dCol
	for row >= 0 && row < s.size && col >= 0 && col < s.size &&
		s.board[row*s.size+col] == piece {
		count++
		row += dRow
		col += dCol
	}
	return count
}

func (s *State) Result(pov mcts.Player) mcts.Result {
	winner := s.Winner()
	if winner == mcts.NoPlayer {
		return mcts.Draw
	}
	if winner == pov {
		return mcts.Loss
	}
	return mcts.Win
}

func (s *State) Clone() *State {
	clone := *s
	clone.board = make([]mcts.Player, len(s.board))
	copy(clone.board, s.board)
	clone.empty = make([]Move, len(s.empty))
	copy(clone.empty, s.empty)
	return &clone
}

func mark(p mcts.Player) byte {
	switch p {
	case mcts.Player1:
		return 'X'
	case mcts.Player2:
		return 'O'
	}
	return '.'
}

func (s *State) String() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for col := 0; col < s.size; col++ {
		sb.WriteByte(labels[col])
		if col < s.size-1 {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('\n')

	for row := 0; row < s.size; row++ {
		sb.WriteByte(labels[row])
		sb.WriteByte('|')
		for col := 0; col < s.size; col++ {
			sb.WriteByte(mark(s.board[row*s.size+col]))
			if col < s.size-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}

	sb.WriteString(fmt.Sprintf("%c to move\n", mark(s.toMove)))
	return sb.String()
}

// ParseMove reads a move in label coordinates, row label then column
// label, e.g. "7H" or "AC". Lowercase is accepted.
func (s *State) ParseMove(input string) (Move, error) {
	text := strings.ToUpper(strings.TrimSpace(input))
	if len(text) != 2 {
		return Move{}, fmt.Errorf("gomoku: move %q must be a row label and a column label", input)
	}

	row := strings.IndexByte(labels, text[0])
	col := strings.IndexByte(labels, text[1])
	if row < 0 || row >= s.size || col < 0 || col >= s.size {
		return Move{}, fmt.Errorf("gomoku: move %q off the %dx%d board", input, s.size, s.size)
	}
	return Move{row, col}, nil
}
