// Package model contains domain models passed between layers.
package model

import "github.com/okian/cookoff/internal/domain/ranking"

// Nationality is a cuisine a cook can represent and a recipe can belong to.
type Nationality struct {
	ID   int    `koanf:"id" json:"id"`
	Name string `koanf:"name" json:"name"`
}

// Cook is a person who can compete or judge.
type Cook struct {
	ID        int             `koanf:"id" json:"id"`
	FirstName string          `koanf:"first_name" json:"first_name"`
	LastName  string          `koanf:"last_name" json:"last_name"`
	Ranking   ranking.Ranking `koanf:"ranking" json:"ranking"`
}

// Recipe belongs to exactly one nationality.
type Recipe struct {
	ID            int    `koanf:"id" json:"id"`
	NationalityID int    `koanf:"nationality_id" json:"nationality_id"`
	Name          string `koanf:"name" json:"name"`
}

// NationalityCook links a cook to a nationality they can represent.
type NationalityCook struct {
	NationalityID int `koanf:"nationality_id" json:"nationality_id"`
	CookID        int `koanf:"cook_id" json:"cook_id"`
}

// RecipeCook records that a cook has cooked a recipe.
type RecipeCook struct {
	RecipeID int `koanf:"recipe_id" json:"recipe_id"`
	CookID   int `koanf:"cook_id" json:"cook_id"`
}

// Reference is the read-only snapshot of reference tables used by one run.
type Reference struct {
	Nationalities    []Nationality     `koanf:"nationalities"`
	Cooks            []Cook            `koanf:"cooks"`
	Recipes          []Recipe          `koanf:"recipes"`
	NationalityCooks []NationalityCook `koanf:"nationality_cooks"`
	RecipeCooks      []RecipeCook      `koanf:"recipe_cooks"`
}

// CookByID indexes cooks by id.
func (r Reference) CookByID() map[int]Cook {
	out := make(map[int]Cook, len(r.Cooks))
	for _, c := range r.Cooks {
		out[c.ID] = c
	}
	return out
}

// HasRecipeCook reports whether the recipe/cook pair is already recorded.
func (r Reference) HasRecipeCook(recipeID, cookID int) bool {
	for _, rc := range r.RecipeCooks {
		if rc.RecipeID == recipeID && rc.CookID == cookID {
			return true
		}
	}
	return false
}
