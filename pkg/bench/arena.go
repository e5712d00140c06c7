// Package bench plays series of games between two search configurations
// over any game implementing the engine's state contract, to compare
// thread counts, budgets or seed policies head to head.
package bench

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/rand"

	"parmcts/pkg/mcts"
)

type MatchResult int

const (
	Player1Win MatchResult = 1
	Player2Win MatchResult = -1
	MatchDraw  MatchResult = 0
)

// Stats count finished games across all arena workers.
type Stats struct {
	p1Wins         atomic.Uint32
	p2Wins         atomic.Uint32
	draws          atomic.Uint32
	firstMoverWins atomic.Uint32
}

func (s *Stats) Total() int {
	return s.P1Wins() + s.P2Wins() + s.Draws()
}

func (s *Stats) P1Wins() int {
	return int(s.p1Wins.Load())
}

func (s *Stats) P2Wins() int {
	return int(s.p2Wins.Load())
}

func (s *Stats) Draws() int {
	return int(s.draws.Load())
}

func (s *Stats) FirstMoverWins() int {
	return int(s.firstMoverWins.Load())
}

type Summary struct {
	Games          int
	P1Wins         int
	P2Wins         int
	Draws          int
	FirstMoverWins int
	Workers        int
}

// Arena plays Games matches between two engine configurations starting
// from one position, distributed over Workers goroutines. Which
// configuration moves first is drawn per game, so a first-mover
// advantage doesn't skew the comparison.
type Arena[T mcts.MoveLike, S mcts.GameState[T, S]] struct {
	Stats
	Player1 *mcts.Options
	Player2 *mcts.Options
	Games   int
	Workers int

	start S
	ctx   context.Context
}

func NewArena[T mcts.MoveLike, S mcts.GameState[T, S]](start S, p1, p2 *mcts.Options) *Arena[T, S] {
	return &Arena[T, S]{
		Player1: p1,
		Player2: p2,
		Games:   100,
		Workers: 2,
		start:   start,
		ctx:     context.Background(),
	}
}

func (a *Arena[T, S]) WithContext(ctx context.Context) *Arena[T, S] {
	a.ctx = ctx
	return a
}

func (a *Arena[T, S]) Setup(games, workers int) *Arena[T, S] {
	a.Games = max(1, games)
	a.Workers = max(1, workers)
	return a
}

// Run blocks until every game finished or the context was cancelled. A
// failing search aborts the whole run, partial results would make the
// comparison meaningless.
func (a *Arena[T, S]) Run() (Summary, error) {
	games := a.Games / a.Workers
	rest := a.Games % a.Workers

	errs := make([]error, a.Workers)
	var wg sync.WaitGroup
	for id := 0; id < a.Workers; id++ {
		delta := 0
		if id < rest {
			delta = 1
		}

		wg.Add(1)
		go func(id, nGames int) {
			defer wg.Done()
			errs[id] = a.worker(id, nGames)
		}(id, games+delta)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Summary{}, err
		}
	}

	return Summary{
		Games:          a.Total(),
		P1Wins:         a.P1Wins(),
		P2Wins:         a.P2Wins(),
		Draws:          a.Draws(),
		FirstMoverWins: a.FirstMoverWins(),
		Workers:        a.Workers,
	}, nil
}

func (a *Arena[T, S]) worker(id, nGames int) error {
	rng := rand.New(rand.NewSource(mcts.SeedGeneratorFn() + uint64(id)))

	// Private option copies, searches write reporting fields into them.
	p1 := *a.Player1
	p2 := *a.Player2

	for i := 0; i < nGames; i++ {
		select {
		case <-a.ctx.Done():
			return nil
		default:
		}

		swapped := rng.Intn(2) == 1
		engines := [2]*mcts.Options{&p1, &p2}
		if swapped {
			engines[0], engines[1] = engines[1], engines[0]
		}

		firstMoverWon, result, err := a.playGame(engines, swapped)
		if err != nil {
			// A cancellation mid game stops the run cleanly, the
			// unfinished game is not counted.
			if a.ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("bench: worker %d game %d: %w", id, i, err)
		}

		switch result {
		case Player1Win:
			a.p1Wins.Add(1)
		case Player2Win:
			a.p2Wins.Add(1)
		default:
			a.draws.Add(1)
		}
		if firstMoverWon {
			a.firstMoverWins.Add(1)
		}
	}
	return nil
}

// playGame runs one match, engines[0] moving first. The result is mapped
// back to the arena's player 1 and 2 regardless of the side swap.
func (a *Arena[T, S]) playGame(engines [2]*mcts.Options, swapped bool) (bool, MatchResult, error) {
	state := a.start.Clone()

	idx := 0
	for state.HasMoves() {
		move, err := mcts.ComputeMoveContext[T](a.ctx, state, engines[idx])
		if err != nil {
			return false, MatchDraw, err
		}
		state.DoMove(move)
		idx ^= 1
	}

	// At a terminal state the side to move lost unless it's a draw, the
	// last mover is the engine that did not get another turn.
	score := state.Result(state.PlayerToMove())
	if score == mcts.Draw {
		return false, MatchDraw, nil
	}

	winnerIdx := idx ^ 1
	if score == mcts.Loss {
		// The side to move somehow won, possible in games where a move
		// can end the game in the opponent's favor.
		winnerIdx = idx
	}

	result := Player1Win
	if (winnerIdx == 0) == swapped {
		result = Player2Win
	}
	return winnerIdx == 0, result, nil
}
