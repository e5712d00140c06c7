package mcts

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Node is a single node of one search tree. The root is created by the
// grower, the rest of the tree only through AddChild.
//
// Wins and Visits are plain fields on purpose: every tree is private to
// exactly one worker, so no two goroutines ever touch the same node and
// the counters need no synchronization. Do not add atomics here, the
// isolation of the trees is what carries the correctness.
type Node[T MoveLike, S GameState[T, S]] struct {
	// Move that led from the parent to this node, zero value at the root.
	Move T

	// Parent is a non-owning back reference, nil only at the root.
	Parent *Node[T, S]

	// PlayerToMove is the side to move from this node's position. The
	// player who made Move is its opponent, which is why Wins is read
	// through this field during backpropagation.
	PlayerToMove Player

	// Wins accumulates rollout results for the player who moved into
	// this node. Not necessarily an integer, draws add 0.5.
	Wins Result

	// Visits counts the playouts that passed through this node.
	Visits int

	// Untried holds the legal moves not yet expanded into children.
	// Together with the children's moves it always equals the legal
	// move set captured when the node was created.
	Untried []T

	// Children are owned by this node, in expansion order.
	Children []*Node[T, S]
}

func newRootNode[T MoveLike, S GameState[T, S]](state S) *Node[T, S] {
	return &Node[T, S]{
		PlayerToMove: state.PlayerToMove(),
		Untried:      state.Moves(),
	}
}

func newNode[T MoveLike, S GameState[T, S]](state S, move T, parent *Node[T, S]) *Node[T, S] {
	return &Node[T, S]{
		Move:         move,
		Parent:       parent,
		PlayerToMove: state.PlayerToMove(),
		Untried:      state.Moves(),
	}
}

func (node *Node[T, S]) HasUntriedMoves() bool {
	return len(node.Untried) > 0
}

func (node *Node[T, S]) HasChildren() bool {
	return len(node.Children) > 0
}

// UntriedMove picks one of the untried moves uniformly at random. It does
// not remove the move, only AddChild does. Calling it on a node without
// untried moves is a programming error.
func (node *Node[T, S]) UntriedMove(rng *rand.Rand) T {
	if len(node.Untried) == 0 {
		panic("mcts: UntriedMove on a node with no untried moves")
	}
	return node.Untried[rng.Intn(len(node.Untried))]
}

// AddChild materializes 'move' as a new child node snapshotting the legal
// moves and side to move of 'state' (the position after the move), and
// removes it from the untried list. The move must come from that list.
func (node *Node[T, S]) AddChild(move T, state S) *Node[T, S] {
	idx := -1
	for i := range node.Untried {
		if node.Untried[i] == move {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic(fmt.Sprintf("mcts: AddChild called with a move not in the untried list: %v", move))
	}

	child := newNode(state, move, node)
	node.Children = append(node.Children, child)
	node.Untried = append(node.Untried[:idx], node.Untried[idx+1:]...)
	return child
}

// BestChild returns the child with the most visits, the final decision
// policy within one tree. Ties go to the first child in expansion order.
func (node *Node[T, S]) BestChild() *Node[T, S] {
	var best *Node[T, S]
	maxVisits := -1
	for _, child := range node.Children {
		if child.Visits > maxVisits {
			maxVisits = child.Visits
			best = child
		}
	}
	return best
}

// SelectChildUCT returns the child maximizing the UCT score
//
//	wins/visits + sqrt(2 ln(parent.visits) / visits)
//
// Every child has visits >= 1 here, a child only exists after its own
// expansion playout, so the division is safe. Ties go to the first child.
func (node *Node[T, S]) SelectChildUCT() *Node[T, S] {
	var best *Node[T, S]
	maxScore := math.Inf(-1)
	for _, child := range node.Children {
		if score := uctScore(child.Wins, child.Visits, node.Visits); score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

func uctScore(wins Result, visits, parentVisits int) float64 {
	return float64(wins)/float64(visits) +
		math.Sqrt(2.0*math.Log(float64(parentVisits))/float64(visits))
}

// Update records one playout result passing through this node.
func (node *Node[T, S]) Update(result Result) {
	node.Visits++
	node.Wins += result
}

func (node *Node[T, S]) String() string {
	return fmt.Sprintf("[P%d M:%v W/V: %g/%d U: %d]",
		node.PlayerToMove.Other(), node.Move, float64(node.Wins), node.Visits, len(node.Untried))
}
