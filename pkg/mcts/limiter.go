package mcts

import (
	"context"
)

// StopReason tells why a tree stopped growing, valid after the search.
type StopReason int

const (
	StopNone StopReason = iota
	StopIterations
	StopTime
	StopCancel
)

func (sr StopReason) String() string {
	switch sr {
	case StopIterations:
		return "Iterations"
	case StopTime:
		return "Time"
	case StopCancel:
		return "Cancel"
	}
	return "None"
}

// limiter owns the stopping conditions of a single tree: the iteration
// cap, the wall clock budget and external cancellation. Each worker gets
// its own limiter, there is nothing to share.
type limiter struct {
	maxIterations int
	timer         *timer
	ctx           context.Context
	reason        StopReason
}

func newLimiter(opts *Options, ctx context.Context) *limiter {
	return &limiter{
		maxIterations: opts.MaxIterations,
		timer:         newTimer(opts.MaxTime),
		ctx:           ctx,
	}
}

// Ok reports whether playout number 'iter' may run. Checked between
// playouts only, there is no mid-playout preemption. Records the stop
// reason on the first failed check.
func (l *limiter) Ok(iter int) bool {
	select {
	case <-l.ctx.Done():
		l.reason = StopCancel
		return false
	default:
	}

	if l.maxIterations >= 0 && iter > l.maxIterations {
		l.reason = StopIterations
		return false
	}
	if l.timer.IsEnd() {
		l.reason = StopTime
		return false
	}
	return true
}

func (l *limiter) Reason() StopReason {
	return l.reason
}
