// Package repository loads reference data and episode history and persists
// generated episodes.
package repository

import (
	"context"

	"github.com/okian/cookoff/internal/domain/model"
)

// Store provides read access to the snapshot a run works from and write
// access for the episode it produces.
type Store interface {
	// LoadReference returns the reference tables (nationalities, cooks,
	// recipes and their associations).
	LoadReference(ctx context.Context) (model.Reference, error)

	// LoadHistory returns every recorded episode and its association rows.
	LoadHistory(ctx context.Context) (model.History, error)

	// SaveEpisode records the episode atomically. The returned episode carries
	// the image id the store assigned.
	SaveEpisode(ctx context.Context, ep model.Episode) (model.Episode, error)
}
