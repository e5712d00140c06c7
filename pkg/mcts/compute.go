package mcts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// The first worker reports progress, the others stay quiet.
const mainWorkerID = 0

// ErrNoPlayouts is returned when no tree completed a single playout, only
// possible with a zero iteration cap.
var ErrNoPlayouts = errors.New("mcts: search completed no playouts")

// ComputeMove runs a full parallel search and returns the best move for
// the side to move. It spawns Options.Threads independent trees, each on
// its own deep copy of the state, joins them and merges the first-ply
// statistics into one decision. See ComputeMoveContext for cancellation.
func ComputeMove[T MoveLike, S GameState[T, S]](state S, opts *Options) (T, error) {
	return ComputeMoveContext(context.Background(), state, opts)
}

// ComputeMoveContext is ComputeMove with external cancellation. Workers
// notice the cancellation between playouts and the merge still runs over
// whatever statistics were gathered.
func ComputeMoveContext[T MoveLike, S GameState[T, S]](ctx context.Context, state S, opts *Options) (T, error) {
	var listener *Listener[T]
	if opts != nil && opts.Verbose {
		listener = verboseListener[T]()
	}
	move, _, err := computeMove(ctx, state, opts, listener)
	return move, err
}

func computeMove[T MoveLike, S GameState[T, S]](
	ctx context.Context,
	state S,
	opts *Options,
	listener *Listener[T],
) (T, *Report[T], error) {
	var zero T
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.validate(ctx); err != nil {
		return zero, nil, err
	}

	moves := state.Moves()
	if len(moves) == 0 {
		return zero, nil, ErrNoMoves
	}
	// Fast path, nothing to search over.
	if len(moves) == 1 {
		return moves[0], nil, nil
	}

	seed := opts.Seed
	if seed == 0 {
		seed = SeedGeneratorFn()
	}

	start := time.Now()
	roots := make([]*Node[T, S], opts.Threads)
	errs := make([]error, opts.Threads)

	var wg sync.WaitGroup
	for id := 0; id < opts.Threads; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			// A panicking worker means missing statistics. Abort the
			// whole search instead of silently biasing the merge.
			defer func() {
				if r := recover(); r != nil {
					errs[id] = fmt.Errorf("mcts: worker %d: %v", id, r)
				}
			}()

			workerSeed := seed
			if !opts.SharedSeed {
				workerSeed += uint64(id)
			}
			roots[id] = growTree(state.Clone(), workerSeed, newLimiter(opts, ctx), listener, id)
		}(id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return zero, nil, err
		}
	}

	report := mergeTrees(roots, opts.Threads, time.Since(start))
	if len(report.Moves) == 0 {
		return zero, nil, ErrNoPlayouts
	}

	opts.BestWins, opts.BestVisits = bestTotals(report)
	listener.invokeStop(*report)
	return report.Best, report, nil
}

// mergeTrees sums visits and wins per distinct first-ply move across all
// roots and picks the move with the highest Beta(1, 1) expected success
// rate. Moves are kept in first-encountered order (worker order, then
// expansion order) so tie breaking is deterministic.
func mergeTrees[T MoveLike, S GameState[T, S]](roots []*Node[T, S], threads int, elapsed time.Duration) *Report[T] {
	index := make(map[T]int)
	report := &Report[T]{
		Elapsed: elapsed,
		Threads: threads,
	}

	for _, root := range roots {
		report.Playouts += root.Visits
		for _, child := range root.Children {
			i, ok := index[child.Move]
			if !ok {
				i = len(report.Moves)
				index[child.Move] = i
				report.Moves = append(report.Moves, MoveStats[T]{Move: child.Move})
			}
			report.Moves[i].Visits += child.Visits
			report.Moves[i].Wins += float64(child.Wins)
		}
	}

	best := -1.0
	for _, ms := range report.Moves {
		if score := ms.Score(); score > best {
			best = score
			report.Best = ms.Move
			report.BestScore = score
		}
	}
	if elapsed > 0 {
		report.Rate = float64(report.Playouts) / elapsed.Seconds()
	}

	return report
}

func bestTotals[T MoveLike](report *Report[T]) (wins float64, visits int) {
	for _, ms := range report.Moves {
		if ms.Move == report.Best {
			return ms.Wins, ms.Visits
		}
	}
	return 0, 0
}

// Search bundles options and an optional listener into a reusable engine
// value, the struct-flavored way to drive the same computation.
type Search[T MoveLike, S GameState[T, S]] struct {
	Options  *Options
	listener *Listener[T]
	report   *Report[T]
}

func NewSearch[T MoveLike, S GameState[T, S]](opts *Options) *Search[T, S] {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Search[T, S]{Options: opts}
}

// Attach a listener for progress and final report callbacks
func (s *Search[T, S]) SetListener(listener *Listener[T]) *Search[T, S] {
	s.listener = listener
	return s
}

func (s *Search[T, S]) ComputeMove(state S) (T, error) {
	return s.ComputeMoveContext(context.Background(), state)
}

func (s *Search[T, S]) ComputeMoveContext(ctx context.Context, state S) (T, error) {
	listener := s.listener
	if listener == nil && s.Options.Verbose {
		listener = verboseListener[T]()
	}
	move, report, err := computeMove(ctx, state, s.Options, listener)
	s.report = report
	return move, err
}

// Report returns the merged statistics of the last search, nil before the
// first one and after a fast-path or failed search.
func (s *Search[T, S]) Report() *Report[T] {
	return s.report
}
