package mcts

import "time"

// timer tracks the wall clock budget of one tree on the monotonic clock.
type timer struct {
	start    time.Time
	duration time.Duration
}

func newTimer(budget time.Duration) *timer {
	return &timer{start: time.Now(), duration: budget}
}

// IsEnd reports whether the budget ran out, always false without one.
func (t *timer) IsEnd() bool {
	return t.duration > 0 && time.Since(t.start) >= t.duration
}

func (t *timer) IsSet() bool {
	return t.duration > 0
}

func (t *timer) Reset() {
	t.start = time.Now()
}

func (t *timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
