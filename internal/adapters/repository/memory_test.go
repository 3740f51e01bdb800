package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/cookoff/internal/domain/model"
)

func TestMemoryStore_LoadReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithReference(sampleReference()))

	ref, err := store.LoadReference(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ref.Cooks) != 3 {
		t.Fatalf("expected 3 cooks, got %d", len(ref.Cooks))
	}
	ref.Cooks[0].FirstName = "mutated"

	again, _ := store.LoadReference(ctx)
	if again.Cooks[0].FirstName != "Ada" {
		t.Errorf("store snapshot was mutated through a loaded copy")
	}
}

func TestMemoryStore_SaveEpisode(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(
		WithReference(sampleReference()),
		WithHistory(model.History{Images: []model.Image{{ID: 4, URL: "old.png"}}}),
	)

	saved, err := store.SaveEpisode(ctx, sampleEpisode())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Image.ID != 5 {
		t.Errorf("expected image id 5, got %d", saved.Image.ID)
	}

	h, _ := store.LoadHistory(ctx)
	if len(h.Episodes) != 1 {
		t.Fatalf("expected 1 episode, got %d", len(h.Episodes))
	}
	ep := h.Episodes[0]
	if ep.ID != 1 || ep.Season != 1 || ep.Number != 1 || ep.ImageID != 5 || ep.WinnerID != 10 {
		t.Errorf("unexpected episode record: %+v", ep)
	}
	if len(h.Contestants) != 2 {
		t.Fatalf("expected 2 contestant rows, got %d", len(h.Contestants))
	}
	if h.Contestants[0].RecipeID != 100 || h.Contestants[0].Ratings[0] != 5 {
		t.Errorf("unexpected contestant row: %+v", h.Contestants[0])
	}
	if len(h.Nationalities) != 2 {
		t.Errorf("expected 2 nationality rows, got %d", len(h.Nationalities))
	}
	if len(h.Judges) != 1 || h.Judges[0].JudgeNumber != 1 || h.Judges[0].CookID != 30 {
		t.Errorf("unexpected judge rows: %+v", h.Judges)
	}
	if got := h.NextEpisodeID(); got != 2 {
		t.Errorf("expected next episode id 2, got %d", got)
	}

	ref, _ := store.LoadReference(ctx)
	if !ref.HasRecipeCook(200, 20) {
		t.Errorf("expected new recipe/cook pair to be recorded")
	}
	if len(ref.RecipeCooks) != 2 {
		t.Errorf("expected 2 recipe cook pairs, got %d", len(ref.RecipeCooks))
	}
}

func TestMemoryStore_SaveEpisodeSkipsKnownRecipeCook(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithReference(sampleReference()))

	ep := sampleEpisode()
	ep.NewRecipeCooks = []model.RecipeCook{{RecipeID: 100, CookID: 10}}
	if _, err := store.SaveEpisode(ctx, ep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ref, _ := store.LoadReference(ctx)
	if len(ref.RecipeCooks) != 1 {
		t.Errorf("expected existing pair not to be duplicated, got %d pairs", len(ref.RecipeCooks))
	}
}

func TestMemoryStore_DuplicateEpisode(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithReference(sampleReference()))

	if _, err := store.SaveEpisode(ctx, sampleEpisode()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := store.SaveEpisode(ctx, sampleEpisode())
	if !errors.Is(err, ErrDuplicateEpisode) {
		t.Fatalf("expected ErrDuplicateEpisode, got %v", err)
	}

	h, _ := store.LoadHistory(ctx)
	if len(h.Images) != 1 {
		t.Errorf("rejected episode must not leave an image behind, got %d images", len(h.Images))
	}
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMemoryStore()

	if _, err := store.SaveEpisode(ctx, sampleEpisode()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
