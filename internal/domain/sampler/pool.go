package sampler

import (
	"sort"

	"github.com/okian/cookoff/internal/domain/chance"
)

// Pool is an ordered set of candidate ids. Stage functions never mutate the
// pool they are given; they return the shrunk pool instead.
type Pool []int

// NewPool returns the distinct ids in ascending order.
func NewPool(ids []int) Pool {
	seen := make(map[int]struct{}, len(ids))
	out := make(Pool, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Without returns a copy of p minus every id in exclude.
func (p Pool) Without(exclude map[int]struct{}) Pool {
	out := make(Pool, 0, len(p))
	for _, id := range p {
		if _, skip := exclude[id]; !skip {
			out = append(out, id)
		}
	}
	return out
}

func (p Pool) clone() Pool {
	out := make(Pool, len(p))
	copy(out, p)
	return out
}

// take removes and returns a uniformly drawn id. p must be non-empty and owned
// by the caller.
func (p Pool) take(src chance.Source) (int, Pool) {
	i := chance.Pick(src, len(p))
	id := p[i]
	return id, append(p[:i], p[i+1:]...)
}

// Reject reports whether a candidate must not be accepted.
type Reject func(id int) bool

// SelectUpTo draws candidates until n are accepted or the pool runs dry.
// Every drawn candidate leaves the pool whether it was accepted or rejected.
func SelectUpTo(src chance.Source, pool Pool, reject Reject, n int) ([]int, Pool) {
	rest := pool.clone()
	accepted := make([]int, 0, n)
	for len(accepted) < n && len(rest) > 0 {
		var id int
		id, rest = rest.take(src)
		if !reject(id) {
			accepted = append(accepted, id)
		}
	}
	return accepted, rest
}

// SelectFirst draws until the first acceptable candidate. Rejected candidates
// leave the pool; ok is false when the pool empties first.
func SelectFirst(src chance.Source, pool Pool, reject Reject) (int, bool, Pool) {
	rest := pool.clone()
	for len(rest) > 0 {
		var id int
		id, rest = rest.take(src)
		if !reject(id) {
			return id, true, rest
		}
	}
	return 0, false, rest
}

// SelectOne draws a single candidate and gives up if it is rejected.
func SelectOne(src chance.Source, pool Pool, reject Reject) (int, bool, Pool) {
	if len(pool) == 0 {
		return 0, false, Pool{}
	}
	id, rest := pool.clone().take(src)
	if reject(id) {
		return 0, false, rest
	}
	return id, true, rest
}
