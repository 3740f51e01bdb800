package model

import "github.com/okian/cookoff/internal/domain/ranking"

// Contestant is a cook competing for one nationality.
type Contestant struct {
	CookID        int             `json:"cook_id"`
	NationalityID int             `json:"nationality_id"`
	Ranking       ranking.Ranking `json:"ranking"`
}

// RecipeAssignment pairs a contestant with the recipe they cook.
type RecipeAssignment struct {
	RecipeID int `json:"recipe_id"`
	CookID   int `json:"cook_id"`
}

// Selection is the outcome of one sampling attempt. It is only usable once
// every slice has reached its quota.
type Selection struct {
	Nationalities []int              `json:"nationalities"`
	Contestants   []Contestant       `json:"contestants"`
	Recipes       []RecipeAssignment `json:"recipes"`
	Judges        []int              `json:"judges"`
}

// ContestantIDs returns contestant cook ids in selection order.
func (s Selection) ContestantIDs() []int {
	ids := make([]int, len(s.Contestants))
	for i, c := range s.Contestants {
		ids[i] = c.CookID
	}
	return ids
}

// RecipeFor returns the recipe assigned to cookID.
func (s Selection) RecipeFor(cookID int) (int, bool) {
	for _, r := range s.Recipes {
		if r.CookID == cookID {
			return r.RecipeID, true
		}
	}
	return 0, false
}
