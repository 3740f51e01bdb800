// Package chance provides the injectable random source shared by the sampler
// and the outcome simulator.
package chance

import (
	"math/rand"
	"time"
)

// Source draws uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// New returns a source seeded with seed, or with the current time when seed is 0.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // contest simulation, not security sensitive
}

// Between returns a uniform integer in [lo, hi].
func Between(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo+1)
}

// Pick returns a uniform index into a slice of length n.
func Pick(src Source, n int) int {
	return src.Intn(n)
}
