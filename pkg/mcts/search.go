package mcts

import (
	"time"

	"golang.org/x/exp/rand"
)

// growTree runs one sequential search against a private tree and returns
// the populated root once a stopping condition fires. rootState must be a
// private copy, the grower mutates clones of it on every playout.
//
// One playout:
//  1. selection: descend by UCT while the node is fully expanded,
//  2. expansion: materialize one untried move as a new child,
//  3. rollout: play uniformly random moves to a terminal state,
//  4. backpropagation: update every node on the path to the root.
func growTree[T MoveLike, S GameState[T, S]](
	rootState S,
	seed uint64,
	lim *limiter,
	listener *Listener[T],
	workerID int,
) *Node[T, S] {
	rng := rand.New(rand.NewSource(seed))
	root := newRootNode[T](rootState)

	report := listener != nil && workerID == mainWorkerID
	var nextReport time.Duration
	if report {
		nextReport = listener.interval
	}

	for iter := 1; lim.Ok(iter); iter++ {
		node := root
		state := rootState.Clone()

		// Selection, down to a node with untried moves or no children.
		for !node.HasUntriedMoves() && node.HasChildren() {
			node = node.SelectChildUCT()
			state.DoMove(node.Move)
		}

		// Expansion, unless we already sit on a terminal node.
		if node.HasUntriedMoves() {
			move := node.UntriedMove(rng)
			state.DoMove(move)
			node = node.AddChild(move, state)
		}

		// Rollout until the game ends.
		for state.HasMoves() {
			state.DoRandomMove(rng)
		}

		// Backpropagation. The result is evaluated fresh at every
		// ancestor, the asking player alternates node to node.
		backpropagate(node, state)

		if report {
			if elapsed := lim.timer.Elapsed(); elapsed >= nextReport {
				nextReport = elapsed + listener.interval
				listener.invokeProgress(Progress{
					Worker:   workerID,
					Playouts: iter,
					Elapsed:  elapsed,
					Rate:     float64(iter) / elapsed.Seconds(),
				})
			}
		}
	}

	return root
}

// backpropagate walks the parent links up to the root inclusive, scoring
// the terminal state against each node's own side to move.
func backpropagate[T MoveLike, S GameState[T, S]](node *Node[T, S], state S) {
	for n := node; n != nil; n = n.Parent {
		n.Update(state.Result(n.PlayerToMove))
	}
}
