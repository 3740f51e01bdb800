package repository

import (
	"github.com/okian/cookoff/internal/domain/model"
	"github.com/okian/cookoff/internal/domain/ranking"
)

func sampleReference() model.Reference {
	return model.Reference{
		Nationalities: []model.Nationality{{ID: 1, Name: "Greek"}, {ID: 2, Name: "Italian"}},
		Cooks: []model.Cook{
			{ID: 10, FirstName: "Ada", LastName: "Byron", Ranking: ranking.Chef},
			{ID: 20, FirstName: "Alan", LastName: "Turing", Ranking: ranking.CookB},
			{ID: 30, FirstName: "Grace", LastName: "Hopper", Ranking: ranking.SousChef},
		},
		Recipes:          []model.Recipe{{ID: 100, NationalityID: 1, Name: "Moussaka"}, {ID: 200, NationalityID: 2, Name: "Risotto"}},
		NationalityCooks: []model.NationalityCook{{NationalityID: 1, CookID: 10}, {NationalityID: 2, CookID: 20}},
		RecipeCooks:      []model.RecipeCook{{RecipeID: 100, CookID: 10}},
	}
}

func sampleEpisode() model.Episode {
	return model.Episode{
		ID:     1,
		Season: 1,
		Number: 1,
		Image: model.Image{
			URL:         "images/season_1_episode_1.png",
			Description: "This is an image for Episode 1 Season 1",
		},
		Selection: model.Selection{
			Nationalities: []int{1, 2},
			Contestants: []model.Contestant{
				{CookID: 10, NationalityID: 1, Ranking: ranking.Chef},
				{CookID: 20, NationalityID: 2, Ranking: ranking.CookB},
			},
			Recipes: []model.RecipeAssignment{{RecipeID: 100, CookID: 10}, {RecipeID: 200, CookID: 20}},
			Judges:  []int{30},
		},
		Outcome: model.Outcome{
			Scores: []model.Score{
				{CookID: 10, Ratings: []int{5}, Total: 5},
				{CookID: 20, Ratings: []int{3}, Total: 3},
			},
			WinnerID:   10,
			Resolution: model.ResolvedByScore,
		},
		NewRecipeCooks: []model.RecipeCook{{RecipeID: 200, CookID: 20}},
	}
}
