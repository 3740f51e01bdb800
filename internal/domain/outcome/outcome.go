// Package outcome simulates judge ratings for an episode and resolves the
// winner: highest total, then seniority, then a coin flip.
package outcome

import (
	"fmt"

	"github.com/okian/cookoff/internal/domain/chance"
	"github.com/okian/cookoff/internal/domain/model"
	"github.com/okian/cookoff/internal/domain/ranking"
)

// Default rating bounds.
const (
	DefaultLowestRating  = 1
	DefaultHighestRating = 5
)

// Candidate is a contestant as seen by winner resolution.
type Candidate struct {
	CookID  int
	Total   int
	Ranking ranking.Ranking
}

// Comparator orders two candidates: negative when a should win over b,
// positive when b should, zero when it cannot tell.
type Comparator func(a, b Candidate) int

// ByTotal prefers the higher total.
func ByTotal(a, b Candidate) int { return b.Total - a.Total }

// BySeniority prefers the more senior ranking.
func BySeniority(a, b Candidate) int { return ranking.Compare(a.Ranking, b.Ranking) }

// Simulator rates contestants and picks a winner.
type Simulator struct {
	lowest  int
	highest int
}

// New returns a simulator rating in [1,5] unless configured otherwise.
func New(opts ...Option) *Simulator {
	s := &Simulator{lowest: DefaultLowestRating, highest: DefaultHighestRating}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate draws one rating per judge for every contestant, in contestant and
// then judge order, and resolves the winner.
func (s *Simulator) Simulate(src chance.Source, contestants []model.Contestant, judges []int) (model.Outcome, error) {
	if len(contestants) == 0 {
		return model.Outcome{}, fmt.Errorf("%w: no contestants", ErrPrecondition)
	}
	if len(judges) == 0 {
		return model.Outcome{}, fmt.Errorf("%w: no judges", ErrPrecondition)
	}

	scores := make([]model.Score, len(contestants))
	candidates := make([]Candidate, len(contestants))
	for i, c := range contestants {
		ratings := make([]int, len(judges))
		total := 0
		for j := range judges {
			ratings[j] = chance.Between(src, s.lowest, s.highest)
			total += ratings[j]
		}
		scores[i] = model.Score{CookID: c.CookID, Ratings: ratings, Total: total}
		candidates[i] = Candidate{CookID: c.CookID, Total: total, Ranking: c.Ranking}
	}

	winner, how := Resolve(src, candidates)
	return model.Outcome{Scores: scores, WinnerID: winner, Resolution: how}, nil
}

// Resolve picks the winner among candidates. The unique top total wins
// outright. Tied leaders are compared by seniority in candidate order; a leader
// tied on seniority with the held winner replaces it on a fair coin flip.
// candidates must not be empty.
func Resolve(src chance.Source, candidates []Candidate) (int, model.Resolution) {
	leaders := top(candidates, ByTotal)
	if len(leaders) == 1 {
		return leaders[0].CookID, model.ResolvedByScore
	}

	held := leaders[0]
	for _, c := range leaders[1:] {
		switch cmp := BySeniority(c, held); {
		case cmp < 0:
			held = c
		case cmp == 0:
			if chance.Pick(src, 2) == 1 {
				held = c
			}
		}
	}

	if len(top(leaders, BySeniority)) > 1 {
		return held.CookID, model.ResolvedByCoinFlip
	}
	return held.CookID, model.ResolvedBySeniority
}

// top returns every candidate that no other candidate beats under cmp,
// keeping input order.
func top(candidates []Candidate, cmp Comparator) []Candidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if cmp(c, best) < 0 {
			best = c
		}
	}
	out := make([]Candidate, 0, 1)
	for _, c := range candidates {
		if cmp(c, best) == 0 {
			out = append(out, c)
		}
	}
	return out
}
