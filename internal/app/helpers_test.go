package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/okian/cookoff/internal/adapters/repository"
	"github.com/okian/cookoff/internal/domain/model"
	"github.com/okian/cookoff/internal/domain/ranking"
)

// buildReference creates n nationalities, each with cooksPer cooks and
// recipesPer recipes, plus extra cooks without a nationality.
func buildReference(n, cooksPer, recipesPer, extra int) model.Reference {
	var ref model.Reference
	ranks := ranking.All()
	for i := 1; i <= n; i++ {
		ref.Nationalities = append(ref.Nationalities, model.Nationality{ID: i, Name: fmt.Sprintf("N%d", i)})
		for c := 0; c < cooksPer; c++ {
			id := i*10 + c
			ref.Cooks = append(ref.Cooks, model.Cook{ID: id, FirstName: "F", LastName: "L", Ranking: ranks[c%len(ranks)]})
			ref.NationalityCooks = append(ref.NationalityCooks, model.NationalityCook{NationalityID: i, CookID: id})
		}
		for r := 0; r < recipesPer; r++ {
			ref.Recipes = append(ref.Recipes, model.Recipe{ID: i*100 + r, NationalityID: i, Name: "R"})
		}
	}
	for e := 0; e < extra; e++ {
		ref.Cooks = append(ref.Cooks, model.Cook{ID: 9000 + e, FirstName: "J", LastName: "J", Ranking: ranking.Chef})
	}
	return ref
}

type fakeRenderer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeRenderer) Render(_ context.Context, season, number int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("season_%d_episode_%d.png", season, number), nil
}

type fakeScript struct {
	episodes []model.Episode
	err      error
}

func (f *fakeScript) Append(_ context.Context, ep model.Episode) error {
	if f.err != nil {
		return f.err
	}
	f.episodes = append(f.episodes, ep)
	return nil
}

// failingStore wraps a MemoryStore and fails SaveEpisode.
type failingStore struct {
	*repository.MemoryStore
}

var errDiskFull = errors.New("disk full")

func (failingStore) SaveEpisode(context.Context, model.Episode) (model.Episode, error) {
	return model.Episode{}, errDiskFull
}
