// Package recency derives the "recently used" id counts from episode history
// and answers whether an id is saturated within that window.
package recency

import (
	"sort"

	"github.com/okian/cookoff/internal/domain/model"
)

// Default window configuration constants.
const (
	DefaultSize  = 3
	DefaultLimit = 3
)

// Counts is a multiset of entity ids.
type Counts map[int]int

// Window holds per-kind id counts over the most recent episodes.
type Window struct {
	// EpisodeIDs are the episodes the window covers, ascending.
	EpisodeIDs []int
	// ContestantCooks counts cook ids appearing as contestants.
	ContestantCooks Counts
	// ContestantRecipes counts recipe ids cooked by contestants.
	ContestantRecipes Counts
	// Judges counts cook ids appearing as judges.
	Judges Counts
	// Nationalities counts nationality ids assigned to episodes.
	Nationalities Counts
}

// Build returns the window over the size most recent distinct episode ids found
// in history. Fewer episodes than size means all of them. size <= 0 yields an
// empty window.
func Build(h model.History, size int) Window {
	recent := latestEpisodeIDs(h, size)
	in := make(map[int]struct{}, len(recent))
	for _, id := range recent {
		in[id] = struct{}{}
	}

	w := Window{
		EpisodeIDs:        recent,
		ContestantCooks:   Counts{},
		ContestantRecipes: Counts{},
		Judges:            Counts{},
		Nationalities:     Counts{},
	}
	for _, c := range h.Contestants {
		if _, ok := in[c.EpisodeID]; ok {
			w.ContestantCooks[c.CookID]++
			w.ContestantRecipes[c.RecipeID]++
		}
	}
	for _, j := range h.Judges {
		if _, ok := in[j.EpisodeID]; ok {
			w.Judges[j.CookID]++
		}
	}
	for _, n := range h.Nationalities {
		if _, ok := in[n.EpisodeID]; ok {
			w.Nationalities[n.NationalityID]++
		}
	}
	return w
}

// latestEpisodeIDs collects every episode id referenced by history and keeps
// the size largest, ascending.
func latestEpisodeIDs(h model.History, size int) []int {
	if size <= 0 {
		return nil
	}
	seen := map[int]struct{}{}
	add := func(id int) { seen[id] = struct{}{} }
	for _, e := range h.Episodes {
		add(e.ID)
	}
	for _, c := range h.Contestants {
		add(c.EpisodeID)
	}
	for _, j := range h.Judges {
		add(j.EpisodeID)
	}
	for _, n := range h.Nationalities {
		add(n.EpisodeID)
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	if len(ids) > size {
		ids = ids[len(ids)-size:]
	}
	return ids
}
