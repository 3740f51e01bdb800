package service_test

import (
	"context"
	"errors"
	"io"
	"strconv"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/cookoff/internal/adapters/repository"
	service "github.com/okian/cookoff/internal/app"
	"github.com/okian/cookoff/internal/domain/attempt"
	"github.com/okian/cookoff/internal/domain/model"
	"github.com/okian/cookoff/internal/domain/sampler"
	"github.com/okian/cookoff/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func TestService_Generate(t *testing.T) {
	Convey("Given a service over a roomy dataset", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(repository.WithReference(buildReference(25, 3, 3, 5)))
		renderer := &fakeRenderer{}
		script := &fakeScript{}
		ids := 0
		svc := service.New(store,
			service.WithSeed(7),
			service.WithRenderer(renderer),
			service.WithScriptWriter(script),
			service.WithMaxAttempts(50),
			service.WithRunIDGenerator(func() string {
				ids++
				return "run-" + strconv.Itoa(ids)
			}),
		)

		Convey("When generating the first episode", func() {
			res, err := svc.Generate(ctx)

			Convey("Then a complete episode should be persisted", func() {
				So(err, ShouldBeNil)
				So(res.RunID, ShouldEqual, "run-1")
				So(res.Attempts, ShouldBeGreaterThanOrEqualTo, 1)

				ep := res.Episode
				So(ep.ID, ShouldEqual, 1)
				So(ep.Season, ShouldEqual, 1)
				So(ep.Number, ShouldEqual, 1)
				So(len(ep.Selection.Nationalities), ShouldEqual, 10)
				So(len(ep.Selection.Contestants), ShouldEqual, 10)
				So(len(ep.Selection.Recipes), ShouldEqual, 10)
				So(len(ep.Selection.Judges), ShouldEqual, 3)
				So(len(ep.Outcome.Scores), ShouldEqual, 10)
				So(ep.Image.ID, ShouldEqual, 1)
				So(ep.Image.URL, ShouldEqual, "images/season_1_episode_1.png")
				So(ep.Image.Description, ShouldEqual, "This is an image for Episode 1 Season 1")
				So(len(ep.NewRecipeCooks), ShouldEqual, 10)

				h, _ := store.LoadHistory(ctx)
				So(len(h.Episodes), ShouldEqual, 1)
				So(h.Episodes[0].WinnerID, ShouldEqual, ep.Outcome.WinnerID)
				So(len(h.Judges), ShouldEqual, 3)

				So(renderer.calls, ShouldEqual, 1)
				So(len(script.episodes), ShouldEqual, 1)
				So(script.episodes[0].Image.ID, ShouldEqual, 1)
			})

			Convey("And the winner should be one of the contestants", func() {
				So(res.Episode.Selection.ContestantIDs(), ShouldContain, res.Episode.Outcome.WinnerID)
			})

			Convey("And stats should reflect the run", func() {
				st := svc.GetStats()
				So(st.Generated, ShouldEqual, 1)
				So(st.Failed, ShouldEqual, 0)
				So(st.LastEpisodeID, ShouldEqual, 1)
				So(st.LastRunID, ShouldEqual, "run-1")
				So(st.MaxAttempts, ShouldEqual, 50)
			})
		})

		Convey("When generating a full season and one more", func() {
			var last service.Result
			for i := 0; i < 11; i++ {
				res, err := svc.Generate(ctx)
				So(err, ShouldBeNil)
				last = res
			}

			Convey("Then numbering should roll over into season 2", func() {
				So(last.Episode.ID, ShouldEqual, 11)
				So(last.Episode.Season, ShouldEqual, 2)
				So(last.Episode.Number, ShouldEqual, 1)
			})

			Convey("And no nationality should appear in more than three consecutive episodes", func() {
				h, _ := store.LoadHistory(ctx)
				byEpisode := map[int]map[int]bool{}
				for _, n := range h.Nationalities {
					if byEpisode[n.EpisodeID] == nil {
						byEpisode[n.EpisodeID] = map[int]bool{}
					}
					byEpisode[n.EpisodeID][n.NationalityID] = true
				}
				for id := 4; id <= 11; id++ {
					for nat := range byEpisode[id] {
						streak := byEpisode[id-1][nat] && byEpisode[id-2][nat] && byEpisode[id-3][nat]
						So(streak, ShouldBeFalse)
					}
				}
			})
		})
	})
}

func TestService_GenerateFailures(t *testing.T) {
	Convey("Given a dataset with too few nationalities", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(repository.WithReference(buildReference(5, 3, 2, 5)))
		renderer := &fakeRenderer{}
		svc := service.New(store, service.WithSeed(1), service.WithRenderer(renderer), service.WithMaxAttempts(4))

		Convey("When generating", func() {
			res, err := svc.Generate(ctx)

			Convey("Then the attempt budget should be exhausted and nothing written", func() {
				So(errors.Is(err, attempt.ErrAttemptsExhausted), ShouldBeTrue)
				So(res.RunID, ShouldNotBeEmpty)
				So(res.Episode.ID, ShouldEqual, 0)
				So(renderer.calls, ShouldEqual, 0)
				h, _ := store.LoadHistory(ctx)
				So(len(h.Episodes), ShouldEqual, 0)
				So(svc.GetStats().Failed, ShouldEqual, 1)
				So(svc.GetStats().LastError, ShouldContainSubstring, "attempts exhausted")
			})
		})
	})

	Convey("Given a smaller quota over the same dataset", t, func() {
		store := repository.NewMemoryStore(repository.WithReference(buildReference(5, 3, 2, 5)))
		svc := service.New(store,
			service.WithSeed(1),
			service.WithRenderer(&fakeRenderer{}),
			service.WithQuota(sampler.Quota{Nationalities: 3, Judges: 2}),
			service.WithMaxAttempts(50),
		)

		Convey("Then generation should succeed with the configured counts", func() {
			res, err := svc.Generate(context.Background())
			So(err, ShouldBeNil)
			So(len(res.Episode.Selection.Nationalities), ShouldEqual, 3)
			So(len(res.Episode.Selection.Judges), ShouldEqual, 2)
		})
	})

	Convey("Given a renderer that fails", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(repository.WithReference(buildReference(25, 3, 3, 5)))
		svc := service.New(store,
			service.WithSeed(3),
			service.WithMaxAttempts(50),
			service.WithRenderer(&fakeRenderer{err: errors.New("no space")}),
		)

		Convey("Then nothing should be persisted", func() {
			_, err := svc.Generate(ctx)
			So(err, ShouldNotBeNil)
			h, _ := store.LoadHistory(ctx)
			So(len(h.Episodes), ShouldEqual, 0)
		})
	})

	Convey("Given a store that cannot save", t, func() {
		store := failingStore{repository.NewMemoryStore(repository.WithReference(buildReference(25, 3, 3, 5)))}
		svc := service.New(store, service.WithSeed(3), service.WithMaxAttempts(50), service.WithRenderer(&fakeRenderer{}))

		Convey("Then the save error should surface", func() {
			_, err := svc.Generate(context.Background())
			So(errors.Is(err, errDiskFull), ShouldBeTrue)
			So(svc.GetStats().Failed, ShouldEqual, 1)
		})
	})

	Convey("Given a script writer that fails", t, func() {
		store := repository.NewMemoryStore(repository.WithReference(buildReference(25, 3, 3, 5)))
		svc := service.New(store,
			service.WithSeed(3),
			service.WithMaxAttempts(50),
			service.WithRenderer(&fakeRenderer{}),
			service.WithScriptWriter(&fakeScript{err: errors.New("read-only")}),
		)

		Convey("Then the episode should still be generated", func() {
			res, err := svc.Generate(context.Background())
			So(err, ShouldBeNil)
			So(res.Episode.ID, ShouldEqual, 1)
		})
	})
}

func TestService_Reproducible(t *testing.T) {
	Convey("Given two services with the same seed and data", t, func() {
		run := func() model.Episode {
			store := repository.NewMemoryStore(repository.WithReference(buildReference(25, 3, 3, 5)))
			svc := service.New(store, service.WithSeed(99), service.WithMaxAttempts(50), service.WithRenderer(&fakeRenderer{}))
			res, err := svc.Generate(context.Background())
			So(err, ShouldBeNil)
			return res.Episode
		}

		Convey("Then they should produce the same episode", func() {
			a, b := run(), run()
			So(a.Selection, ShouldResemble, b.Selection)
			So(a.Outcome, ShouldResemble, b.Outcome)
		})
	})
}

func TestService_ImageURLPrefix(t *testing.T) {
	Convey("Given an image prefix with a trailing slash", t, func() {
		store := repository.NewMemoryStore(repository.WithReference(buildReference(25, 3, 3, 5)))
		svc := service.New(store,
			service.WithSeed(5),
			service.WithMaxAttempts(50),
			service.WithRenderer(&fakeRenderer{}),
			service.WithImageURLPrefix("/data/images/"),
		)

		Convey("Then the URL should join cleanly", func() {
			res, err := svc.Generate(context.Background())
			So(err, ShouldBeNil)
			So(res.Episode.Image.URL, ShouldEqual, "/data/images/season_1_episode_1.png")
		})
	})
}
