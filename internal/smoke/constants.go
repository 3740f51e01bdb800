package smoke

import "time"

// Defaults used by the smoke command.
const (
	DefaultEpisodes     = 5
	DefaultBatch        = 3
	DefaultTimeout      = 30 * time.Second
	DefaultPollInterval = 200 * time.Millisecond
	DefaultJobWait      = 2 * time.Minute

	DefaultNationalities     = 10
	DefaultJudges            = 3
	DefaultEpisodesPerSeason = 10
)

const (
	directoryPermission = 0750
	filePermission      = 0600
	minRating           = 1
	maxRating           = 5
)
