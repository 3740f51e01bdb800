// Package season numbers new episodes within seasons.
package season

import "github.com/okian/cookoff/internal/domain/model"

// DefaultEpisodesPerSeason caps the episodes in one season.
const DefaultEpisodesPerSeason = 10

// Slot is a season number and the episode number within it.
type Slot struct {
	Season int `json:"season"`
	Number int `json:"number"`
}

// Next returns the slot after last. A nil last starts at season 1, episode 1;
// a last episode at or past the cap rolls over to the next season.
func Next(last *Slot, perSeason int) Slot {
	if perSeason <= 0 {
		perSeason = DefaultEpisodesPerSeason
	}
	if last == nil {
		return Slot{Season: 1, Number: 1}
	}
	if last.Number >= perSeason {
		return Slot{Season: last.Season + 1, Number: 1}
	}
	return Slot{Season: last.Season, Number: last.Number + 1}
}

// NextFromHistory returns the slot following the latest recorded episode.
func NextFromHistory(h model.History, perSeason int) Slot {
	last, ok := h.LastEpisode()
	if !ok {
		return Next(nil, perSeason)
	}
	return Next(&Slot{Season: last.Season, Number: last.Number}, perSeason)
}
