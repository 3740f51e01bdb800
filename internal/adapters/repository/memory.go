package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/okian/cookoff/internal/domain/model"
	"github.com/okian/cookoff/pkg/metrics"
)

// MemoryStore keeps reference tables and history in process memory.
// Loads return copies so callers can never mutate the stored snapshot.
type MemoryStore struct {
	mu   sync.RWMutex
	ref  model.Reference
	hist model.History
}

// NewMemoryStore constructs an in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadReference implements Store.
func (s *MemoryStore) LoadReference(_ context.Context) (model.Reference, error) {
	start := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	defer observe("load_reference", start)
	return cloneReference(s.ref), nil
}

// LoadHistory implements Store.
func (s *MemoryStore) LoadHistory(_ context.Context) (model.History, error) {
	start := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	defer observe("load_history", start)
	return cloneHistory(s.hist), nil
}

// SaveEpisode implements Store. The image id is the highest stored image id
// plus one.
func (s *MemoryStore) SaveEpisode(ctx context.Context, ep model.Episode) (model.Episode, error) {
	if err := ctx.Err(); err != nil {
		return model.Episode{}, err
	}
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	defer observe("save_episode", start)

	for _, e := range s.hist.Episodes {
		if e.ID == ep.ID {
			metrics.RecordErrorByComponent("repository", "duplicate_episode")
			return model.Episode{}, fmt.Errorf("%w: %d", ErrDuplicateEpisode, ep.ID)
		}
	}

	ep.Image.ID = s.hist.NextImageID()
	s.hist.Images = append(s.hist.Images, ep.Image)
	s.hist.Episodes = append(s.hist.Episodes, model.EpisodeRecord{
		ID:       ep.ID,
		Season:   ep.Season,
		Number:   ep.Number,
		ImageID:  ep.Image.ID,
		WinnerID: ep.Outcome.WinnerID,
	})

	ratings := ep.Outcome.Ratings()
	for _, r := range ep.Selection.Recipes {
		s.hist.Contestants = append(s.hist.Contestants, model.ContestantRecord{
			EpisodeID: ep.ID,
			CookID:    r.CookID,
			RecipeID:  r.RecipeID,
			Ratings:   slices.Clone(ratings[r.CookID]),
		})
	}
	for _, id := range ep.Selection.Nationalities {
		s.hist.Nationalities = append(s.hist.Nationalities, model.NationalityRecord{EpisodeID: ep.ID, NationalityID: id})
	}
	for i, id := range ep.Selection.Judges {
		s.hist.Judges = append(s.hist.Judges, model.JudgeRecord{EpisodeID: ep.ID, CookID: id, JudgeNumber: i + 1})
	}
	for _, rc := range ep.NewRecipeCooks {
		if !s.ref.HasRecipeCook(rc.RecipeID, rc.CookID) {
			s.ref.RecipeCooks = append(s.ref.RecipeCooks, rc)
		}
	}
	return ep, nil
}

func observe(op string, start time.Time) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Microseconds())/1000)
}

func cloneReference(r model.Reference) model.Reference {
	return model.Reference{
		Nationalities:    slices.Clone(r.Nationalities),
		Cooks:            slices.Clone(r.Cooks),
		Recipes:          slices.Clone(r.Recipes),
		NationalityCooks: slices.Clone(r.NationalityCooks),
		RecipeCooks:      slices.Clone(r.RecipeCooks),
	}
}

func cloneHistory(h model.History) model.History {
	contestants := make([]model.ContestantRecord, len(h.Contestants))
	for i, c := range h.Contestants {
		c.Ratings = slices.Clone(c.Ratings)
		contestants[i] = c
	}
	if h.Contestants == nil {
		contestants = nil
	}
	return model.History{
		Episodes:      slices.Clone(h.Episodes),
		Contestants:   contestants,
		Judges:        slices.Clone(h.Judges),
		Nationalities: slices.Clone(h.Nationalities),
		Images:        slices.Clone(h.Images),
	}
}
