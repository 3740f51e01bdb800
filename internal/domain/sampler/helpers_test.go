package sampler_test

import (
	"fmt"

	"github.com/okian/cookoff/internal/domain/model"
	"github.com/okian/cookoff/internal/domain/ranking"
)

// buildReference creates nations 1..n. Nation i owns cooks i*10+1.. and
// recipes i*100+1.. . extraCooks adds judge-only cooks 900+.
func buildReference(n, cooksPer, recipesPer, extraCooks int) model.Reference {
	var ref model.Reference
	titles := ranking.All()
	for i := 1; i <= n; i++ {
		ref.Nationalities = append(ref.Nationalities, model.Nationality{ID: i, Name: fmt.Sprintf("nation-%d", i)})
		for c := 1; c <= cooksPer; c++ {
			id := i*10 + c
			ref.Cooks = append(ref.Cooks, model.Cook{ID: id, FirstName: fmt.Sprintf("cook-%d", id), Ranking: titles[id%len(titles)]})
			ref.NationalityCooks = append(ref.NationalityCooks, model.NationalityCook{NationalityID: i, CookID: id})
		}
		for r := 1; r <= recipesPer; r++ {
			ref.Recipes = append(ref.Recipes, model.Recipe{ID: i*100 + r, NationalityID: i})
		}
	}
	for e := 0; e < extraCooks; e++ {
		ref.Cooks = append(ref.Cooks, model.Cook{ID: 900 + e, Ranking: ranking.CookC})
	}
	return ref
}

// repeatedHistory records the same nationalities, contestants, recipes and
// judges in each of the given episodes.
func repeatedHistory(episodes int, nationalities, contestants, recipes, judges []int) model.History {
	var h model.History
	for e := 1; e <= episodes; e++ {
		h.Episodes = append(h.Episodes, model.EpisodeRecord{ID: e, Season: 1, Number: e})
		for _, n := range nationalities {
			h.Nationalities = append(h.Nationalities, model.NationalityRecord{EpisodeID: e, NationalityID: n})
		}
		for i, c := range contestants {
			recipe := 0
			if i < len(recipes) {
				recipe = recipes[i]
			}
			h.Contestants = append(h.Contestants, model.ContestantRecord{EpisodeID: e, CookID: c, RecipeID: recipe})
		}
		for i, j := range judges {
			h.Judges = append(h.Judges, model.JudgeRecord{EpisodeID: e, CookID: j, JudgeNumber: i + 1})
		}
	}
	return h
}

func recipeNationality(ref model.Reference) map[int]int {
	out := map[int]int{}
	for _, r := range ref.Recipes {
		out[r.ID] = r.NationalityID
	}
	return out
}

func distinct(ids []int) bool {
	seen := map[int]struct{}{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}
