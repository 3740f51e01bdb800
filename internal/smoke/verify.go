package smoke

import (
	"fmt"

	"github.com/okian/cookoff/internal/domain/model"
)

// VerifyEpisode returns every structural violation found in ep.
func VerifyEpisode(ep model.Episode, nationalities, judges int) []error {
	var errs []error
	sel := ep.Selection

	if len(sel.Nationalities) != nationalities {
		errs = append(errs, fmt.Errorf("episode %d: %d nationalities, want %d", ep.ID, len(sel.Nationalities), nationalities))
	}
	if len(sel.Contestants) != nationalities {
		errs = append(errs, fmt.Errorf("episode %d: %d contestants, want %d", ep.ID, len(sel.Contestants), nationalities))
	}
	if len(sel.Recipes) != nationalities {
		errs = append(errs, fmt.Errorf("episode %d: %d recipes, want %d", ep.ID, len(sel.Recipes), nationalities))
	}
	if len(sel.Judges) != judges {
		errs = append(errs, fmt.Errorf("episode %d: %d judges, want %d", ep.ID, len(sel.Judges), judges))
	}

	if dup, ok := firstDuplicate(sel.Nationalities); ok {
		errs = append(errs, fmt.Errorf("episode %d: nationality %d repeated", ep.ID, dup))
	}
	recipeIDs := make([]int, len(sel.Recipes))
	for i, r := range sel.Recipes {
		recipeIDs[i] = r.RecipeID
	}
	if dup, ok := firstDuplicate(recipeIDs); ok {
		errs = append(errs, fmt.Errorf("episode %d: recipe %d repeated", ep.ID, dup))
	}

	contestants := make(map[int]bool, len(sel.Contestants))
	for _, c := range sel.Contestants {
		contestants[c.CookID] = true
	}
	for _, j := range sel.Judges {
		if contestants[j] {
			errs = append(errs, fmt.Errorf("episode %d: cook %d is both contestant and judge", ep.ID, j))
		}
	}
	if !contestants[ep.Outcome.WinnerID] {
		errs = append(errs, fmt.Errorf("episode %d: winner %d is not a contestant", ep.ID, ep.Outcome.WinnerID))
	}

	for _, s := range ep.Outcome.Scores {
		if len(s.Ratings) != len(sel.Judges) {
			errs = append(errs, fmt.Errorf("episode %d: cook %d has %d ratings for %d judges", ep.ID, s.CookID, len(s.Ratings), len(sel.Judges)))
		}
		total := 0
		for _, r := range s.Ratings {
			if r < minRating || r > maxRating {
				errs = append(errs, fmt.Errorf("episode %d: cook %d rating %d out of range", ep.ID, s.CookID, r))
			}
			total += r
		}
		if total != s.Total {
			errs = append(errs, fmt.Errorf("episode %d: cook %d total %d, ratings sum to %d", ep.ID, s.CookID, s.Total, total))
		}
	}
	return errs
}

// VerifySequence checks that episode ids and season slots advance by one.
func VerifySequence(eps []model.Episode, perSeason int) []error {
	var errs []error
	for i := 1; i < len(eps); i++ {
		prev, cur := eps[i-1], eps[i]
		if cur.ID != prev.ID+1 {
			errs = append(errs, fmt.Errorf("episode id %d follows %d", cur.ID, prev.ID))
		}
		wantSeason, wantNumber := prev.Season, prev.Number+1
		if prev.Number >= perSeason {
			wantSeason, wantNumber = prev.Season+1, 1
		}
		if cur.Season != wantSeason || cur.Number != wantNumber {
			errs = append(errs, fmt.Errorf("episode %d: slot S%dE%d, want S%dE%d", cur.ID, cur.Season, cur.Number, wantSeason, wantNumber))
		}
	}
	return errs
}

func firstDuplicate(ids []int) (int, bool) {
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id, true
		}
		seen[id] = true
	}
	return 0, false
}
