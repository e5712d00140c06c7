package mcts

import "time"

type SeedGeneratorFnType func() uint64

// SeedGeneratorFn produces the master seed for a search when the options
// don't pin one, by default the current time in nanoseconds.
var SeedGeneratorFn SeedGeneratorFnType = func() uint64 {
	return uint64(time.Now().UnixNano())
}

// Set custom seed generator function, useful for reproducible searches
// in tests
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
