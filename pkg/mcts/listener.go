package mcts

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Progress is a periodic snapshot of one growing tree, reported by the
// first worker only.
type Progress struct {
	Worker   int
	Playouts int
	Elapsed  time.Duration
	Rate     float64 // playouts per second in this tree
}

// MoveStats are the merged first-ply totals of one candidate move.
type MoveStats[T MoveLike] struct {
	Move   T
	Visits int
	Wins   float64
}

// Score is the expected success rate of the move under a uniform
// Beta(1, 1) prior. Smoothed, so low-sample moves don't dominate and a
// zero-visit move never divides by zero.
func (ms MoveStats[T]) Score() float64 {
	return (ms.Wins + 1) / (float64(ms.Visits) + 2)
}

// Report summarizes a finished search across all trees.
type Report[T MoveLike] struct {
	// Moves holds the merged per-move totals, ordered by first
	// encounter: trees in worker order, children in expansion order.
	Moves []MoveStats[T]

	Best      T
	BestScore float64

	Playouts int // total across all trees
	Elapsed  time.Duration
	Rate     float64 // playouts per second across all trees
	Threads  int
}

// Listener receives informational callbacks from a search. Not part of
// the functional contract, a search runs the same with or without one.
type Listener[T MoveLike] struct {
	onProgress func(Progress)
	onStop     func(Report[T])
	interval   time.Duration
}

func NewListener[T MoveLike]() *Listener[T] {
	return &Listener[T]{interval: time.Second}
}

// Attach a periodic progress callback, called by the first worker
func (l *Listener[T]) OnProgress(f func(Progress)) *Listener[T] {
	l.onProgress = f
	return l
}

// Attach a callback for the final merged report
func (l *Listener[T]) OnStop(f func(Report[T])) *Listener[T] {
	l.onStop = f
	return l
}

// Set how often OnProgress fires, default is one second
func (l *Listener[T]) SetInterval(d time.Duration) *Listener[T] {
	if d > 0 {
		l.interval = d
	}
	return l
}

func (l *Listener[T]) invokeProgress(p Progress) {
	if l != nil && l.onProgress != nil {
		l.onProgress(p)
	}
}

func (l *Listener[T]) invokeStop(r Report[T]) {
	if l != nil && l.onStop != nil {
		l.onStop(r)
	}
}

// verboseListener logs what the listener receives, used when
// Options.Verbose is set and no listener was attached by the caller.
func verboseListener[T MoveLike]() *Listener[T] {
	return NewListener[T]().
		OnProgress(func(p Progress) {
			log.Info().
				Int("playouts", p.Playouts).
				Float64("per_second", p.Rate).
				Msg("searching")
		}).
		OnStop(func(r Report[T]) {
			for _, ms := range r.Moves {
				log.Info().
					Str("move", formatMove(ms.Move)).
					Int("visit_pct", percent(ms.Visits, r.Playouts)).
					Int("win_pct", percent(int(ms.Wins+0.5), ms.Visits)).
					Msg("candidate")
			}
			log.Info().
				Str("best", formatMove(r.Best)).
				Float64("score", r.BestScore).
				Int("playouts", r.Playouts).
				Dur("elapsed", r.Elapsed).
				Float64("per_second", r.Rate).
				Int("trees", r.Threads).
				Msg("search done")
		})
}

func formatMove[T MoveLike](move T) string {
	return fmt.Sprint(move)
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(100.0*float64(part)/float64(total) + 0.5)
}
