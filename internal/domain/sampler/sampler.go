// Package sampler draws one candidate episode selection under the recency
// guard: nationalities, then contestants, then recipes, then judges.
package sampler

import (
	"github.com/okian/cookoff/internal/domain/chance"
	"github.com/okian/cookoff/internal/domain/model"
	"github.com/okian/cookoff/internal/domain/ranking"
	"github.com/okian/cookoff/internal/domain/recency"
)

// Guard answers per-kind saturation questions. recency.Guard implements it.
type Guard interface {
	Nationality(id int) bool
	Contestant(id int) bool
	Recipe(id int) bool
	Judge(id int) bool
}

// Sampler produces selection attempts from one reference snapshot. It keeps
// no state between calls to Sample.
type Sampler struct {
	guard Guard
	quota Quota

	nationalities        Pool
	cooks                Pool
	cooksByNationality   map[int]Pool
	recipesByNationality map[int]Pool
	rankings             map[int]ranking.Ranking
}

var _ Guard = recency.Guard{}

// New indexes ref once so each attempt only draws.
func New(ref model.Reference, guard Guard, opts ...Option) *Sampler {
	s := &Sampler{
		guard: guard,
		quota: DefaultQuota(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rankings = make(map[int]ranking.Ranking, len(ref.Cooks))
	cookIDs := make([]int, 0, len(ref.Cooks))
	for _, c := range ref.Cooks {
		s.rankings[c.ID] = c.Ranking
		cookIDs = append(cookIDs, c.ID)
	}
	s.cooks = NewPool(cookIDs)

	recipes := map[int][]int{}
	for _, r := range ref.Recipes {
		recipes[r.NationalityID] = append(recipes[r.NationalityID], r.ID)
	}
	s.recipesByNationality = make(map[int]Pool, len(recipes))
	for nat, ids := range recipes {
		s.recipesByNationality[nat] = NewPool(ids)
	}

	withRecipe := make([]int, 0, len(ref.Nationalities))
	for _, n := range ref.Nationalities {
		if len(s.recipesByNationality[n.ID]) > 0 {
			withRecipe = append(withRecipe, n.ID)
		}
	}
	s.nationalities = NewPool(withRecipe)

	cooks := map[int][]int{}
	for _, nc := range ref.NationalityCooks {
		// Links to cooks missing from the cook table cannot yield a ranking.
		if _, known := s.rankings[nc.CookID]; !known {
			continue
		}
		cooks[nc.NationalityID] = append(cooks[nc.NationalityID], nc.CookID)
	}
	s.cooksByNationality = make(map[int]Pool, len(cooks))
	for nat, ids := range cooks {
		s.cooksByNationality[nat] = NewPool(ids)
	}
	return s
}

// Quota returns the sizes this sampler aims for.
func (s *Sampler) Quota() Quota { return s.quota }

// Sample runs one attempt. The result may fall short of the quota; callers
// decide whether to retry.
func (s *Sampler) Sample(src chance.Source) model.Selection {
	var sel model.Selection
	sel.Nationalities, _ = SelectUpTo(src, s.nationalities, s.guard.Nationality, s.quota.Nationalities)
	sel.Contestants = s.contestants(src, sel.Nationalities)
	sel.Recipes = s.recipes(src, sel.Contestants)
	sel.Judges = s.judges(src, sel.Contestants)
	return sel
}

// contestants picks at most one cook per nationality. A nationality whose pool
// runs dry contributes nobody.
func (s *Sampler) contestants(src chance.Source, nationalities []int) []model.Contestant {
	taken := map[int]struct{}{}
	out := make([]model.Contestant, 0, len(nationalities))
	for _, nat := range nationalities {
		pool := s.cooksByNationality[nat].Without(taken)
		cookID, ok, _ := SelectFirst(src, pool, s.guard.Contestant)
		if !ok {
			continue
		}
		taken[cookID] = struct{}{}
		out = append(out, model.Contestant{
			CookID:        cookID,
			NationalityID: nat,
			Ranking:       s.rankings[cookID],
		})
	}
	return out
}

// recipes gives each contestant one draw from their nationality's unused
// recipes. A saturated draw leaves the contestant without a recipe.
func (s *Sampler) recipes(src chance.Source, contestants []model.Contestant) []model.RecipeAssignment {
	used := map[int]struct{}{}
	out := make([]model.RecipeAssignment, 0, len(contestants))
	for _, c := range contestants {
		pool := s.recipesByNationality[c.NationalityID].Without(used)
		recipeID, ok, _ := SelectOne(src, pool, s.guard.Recipe)
		if !ok {
			continue
		}
		used[recipeID] = struct{}{}
		out = append(out, model.RecipeAssignment{RecipeID: recipeID, CookID: c.CookID})
	}
	return out
}

func (s *Sampler) judges(src chance.Source, contestants []model.Contestant) []int {
	exclude := make(map[int]struct{}, len(contestants))
	for _, c := range contestants {
		exclude[c.CookID] = struct{}{}
	}
	judges, _ := SelectUpTo(src, s.cooks.Without(exclude), s.guard.Judge, s.quota.Judges)
	return judges
}
