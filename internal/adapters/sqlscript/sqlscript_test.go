package sqlscript_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/cookoff/internal/adapters/sqlscript"
	"github.com/okian/cookoff/internal/domain/model"
)

func episode() model.Episode {
	return model.Episode{
		ID:     12,
		Season: 2,
		Number: 2,
		Image:  model.Image{ID: 12, URL: "images/season_2_episode_2.png", Description: "Chef's image"},
		Selection: model.Selection{
			Nationalities: []int{3, 4},
			Recipes:       []model.RecipeAssignment{{RecipeID: 30, CookID: 7}, {RecipeID: 40, CookID: 8}},
			Judges:        []int{1, 2, 5},
		},
		Outcome: model.Outcome{
			Scores: []model.Score{
				{CookID: 7, Ratings: []int{5, 4, 3}, Total: 12},
				{CookID: 8, Ratings: []int{1, 1, 1}, Total: 3},
			},
			WinnerID: 7,
		},
		NewRecipeCooks: []model.RecipeCook{{RecipeID: 40, CookID: 8}},
	}
}

func TestStatements(t *testing.T) {
	Convey("Given a saved episode", t, func() {
		stmts := sqlscript.Statements(episode())

		Convey("Then statements should follow insertion order", func() {
			So(len(stmts), ShouldEqual, 2+2+2+3+1)
			So(stmts[0], ShouldStartWith, "INSERT INTO image")
			So(stmts[1], ShouldEqual, "INSERT INTO episode (episode_id, season, name, image_id, winner) VALUES (12, 2, 2, 12, 7);")
			So(stmts[2], ShouldEndWith, "VALUES (12, 7, 30, 5, 4, 3);")
			So(stmts[4], ShouldEqual, "INSERT INTO nationality_episode (nationality_id, episode_id) VALUES (3, 12);")
			So(stmts[8], ShouldEqual, "INSERT INTO cook_episode_judge (episode_id, cook_id, judge_number) VALUES (12, 5, 3);")
			So(stmts[9], ShouldEqual, "INSERT INTO recipe_cook (recipe_id, cook_id) VALUES (40, 8);")
		})

		Convey("Then quotes in text values should be escaped", func() {
			So(stmts[0], ShouldContainSubstring, "'Chef''s image'")
		})
	})

	Convey("Given an episode with a single judge", t, func() {
		ep := episode()
		ep.Outcome.Scores[0].Ratings = []int{4}

		Convey("Then missing rating columns should be NULL", func() {
			So(sqlscript.Statements(ep)[2], ShouldEndWith, "VALUES (12, 7, 30, 4, NULL, NULL);")
		})
	})
}

func TestWriterAppend(t *testing.T) {
	Convey("Given a writer under a fresh directory", t, func() {
		path := filepath.Join(t.TempDir(), "sql", "insert_data.sql")
		w := sqlscript.New(path)

		Convey("When appending two episodes", func() {
			So(w.Append(context.Background(), episode()), ShouldBeNil)
			second := episode()
			second.ID = 13
			So(w.Append(context.Background(), second), ShouldBeNil)

			Convey("Then both blocks should be in the file in order", func() {
				raw, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				text := string(raw)
				So(strings.Count(text, "-- Episode"), ShouldEqual, 2)
				So(strings.Index(text, "-- Episode 12"), ShouldBeLessThan, strings.Index(text, "-- Episode 13"))
				So(w.Path(), ShouldEqual, path)
			})
		})

		Convey("When the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			Convey("Then nothing should be written", func() {
				So(w.Append(ctx, episode()), ShouldEqual, context.Canceled)
				_, err := os.Stat(path)
				So(os.IsNotExist(err), ShouldBeTrue)
			})
		})
	})
}
