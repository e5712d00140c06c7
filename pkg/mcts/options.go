package mcts

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoMoves is returned when the root position has no legal moves.
	ErrNoMoves = errors.New("mcts: no legal moves at the root")

	// ErrNoThreads is returned for a non-positive parallel tree count.
	ErrNoThreads = errors.New("mcts: thread count must be at least 1")

	// ErrUnbounded is returned when neither an iteration cap nor a time
	// budget is set and the context cannot be cancelled, the search would
	// never stop.
	ErrUnbounded = errors.New("mcts: search has no iteration cap, no time budget and no cancellable context")
)

// Options carries the tunable parameters of one search. The zero value is
// not usable, start from DefaultOptions.
type Options struct {
	// Threads is the number of independent trees grown in parallel.
	Threads int

	// MaxIterations caps the playouts per tree, negative means unbounded.
	MaxIterations int

	// MaxTime is the wall clock budget per tree, checked between
	// playouts. Zero or negative means no time limit.
	MaxTime time.Duration

	// Verbose enables diagnostic output during and after the search.
	Verbose bool

	// Seed pins the master random seed, 0 draws one from SeedGeneratorFn.
	Seed uint64

	// SharedSeed hands the exact same seed to every worker instead of
	// per-worker derived ones. The trees then duplicate a lot of work,
	// it only exists to reproduce the behavior of older engines.
	SharedSeed bool

	// Filled in after a search completes, informational only.
	BestWins   float64
	BestVisits int
}

func DefaultOptions() *Options {
	return &Options{
		Threads:       8,
		MaxIterations: 10000,
	}
}

// Set the number of parallel trees
func (o *Options) SetThreads(threads int) *Options {
	o.Threads = threads
	return o
}

// Set the per-tree playout cap, negative for unbounded
func (o *Options) SetMaxIterations(iterations int) *Options {
	o.MaxIterations = iterations
	return o
}

// Set the per-tree wall clock budget
func (o *Options) SetMaxTime(d time.Duration) *Options {
	o.MaxTime = d
	return o
}

func (o *Options) SetVerbose(verbose bool) *Options {
	o.Verbose = verbose
	return o
}

// Pin the master seed, for reproducible searches
func (o *Options) SetSeed(seed uint64) *Options {
	o.Seed = seed
	return o
}

func (o *Options) SetSharedSeed(shared bool) *Options {
	o.SharedSeed = shared
	return o
}

// validate fails fast before any search work begins.
func (o *Options) validate(ctx context.Context) error {
	if o.Threads < 1 {
		return ErrNoThreads
	}
	if o.MaxIterations < 0 && o.MaxTime <= 0 && ctx.Done() == nil {
		return ErrUnbounded
	}
	return nil
}
