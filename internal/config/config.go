// Package config defines generator configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Validate rejects values the generator cannot run with.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Run modes.
const (
	ModeServe = "serve"
	ModeOnce  = "once"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Mode is serve (HTTP API) or once (generate one episode and exit).
	Mode string `koanf:"mode"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Store selects the reference/history backend: memory or postgres.
	Store string `koanf:"store"`

	// DatabaseURL is the Postgres connection string for the postgres store.
	DatabaseURL string `koanf:"database_url"`

	// DatasetPath is an optional YAML dataset seeding the memory store.
	DatasetPath string `koanf:"dataset_path"`

	// Migrate runs the embedded schema migrations on startup.
	Migrate bool `koanf:"migrate"`

	// WindowSize is the number of most recent episodes the recency window spans.
	WindowSize int `koanf:"window_size"`

	// OverrepresentationLimit is the count at which an id is excluded.
	OverrepresentationLimit int `koanf:"overrepresentation_limit"`

	// MaxAttempts bounds sampler attempts per run.
	MaxAttempts int `koanf:"max_attempts"`

	// NationalityQuota is the number of nationalities, contestants and recipes per episode.
	NationalityQuota int `koanf:"nationality_quota"`

	// JudgeQuota is the number of judges per episode.
	JudgeQuota int `koanf:"judge_quota"`

	// EpisodesPerSeason caps the episode number within a season.
	EpisodesPerSeason int `koanf:"episodes_per_season"`

	// Seed seeds the random source; 0 seeds from the clock.
	Seed int64 `koanf:"seed"`

	// ImageDir is where episode images are written.
	ImageDir string `koanf:"image_dir"`

	// ImageURLPrefix prefixes the stored image URL.
	ImageURLPrefix string `koanf:"image_url_prefix"`

	// SQLScriptPath, when set, receives the INSERT statements of every saved episode.
	SQLScriptPath string `koanf:"sql_script_path"`

	// QueueSize bounds the batch generation job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount is the number of batch job workers.
	WorkerCount int `koanf:"worker_count"`

	// IdempotencyCacheSize bounds the remembered Idempotency-Key results; 0 keeps all.
	IdempotencyCacheSize int `koanf:"idempotency_cache_size"`
}

// New creates a Config with defaults. Context is accepted first to satisfy the
// project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                "info",
		LogFormat:               "text",
		Mode:                    ModeOnce,
		Addr:                    ":9080",
		Store:                   StoreMemory,
		WindowSize:              3,
		OverrepresentationLimit: 3,
		MaxAttempts:             10,
		NationalityQuota:        10,
		JudgeQuota:              3,
		EpisodesPerSeason:       10,
		ImageDir:                "images",
		ImageURLPrefix:          "images",
		QueueSize:               100,
		WorkerCount:             1,
		IdempotencyCacheSize:    10000,
	}
}

// Validate reports the first unusable value, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Mode != ModeServe && c.Mode != ModeOnce:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	case c.Store != StoreMemory && c.Store != StorePostgres:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	case c.Store == StorePostgres && strings.TrimSpace(c.DatabaseURL) == "":
		return fmt.Errorf("%w: database_url is required for the postgres store", ErrInvalidConfig)
	case c.Mode == ModeServe && c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	case c.WindowSize < 0:
		return fmt.Errorf("%w: window_size must not be negative", ErrInvalidConfig)
	case c.OverrepresentationLimit <= 0:
		return fmt.Errorf("%w: overrepresentation_limit must be positive", ErrInvalidConfig)
	case c.MaxAttempts <= 0:
		return fmt.Errorf("%w: max_attempts must be positive", ErrInvalidConfig)
	case c.NationalityQuota <= 0:
		return fmt.Errorf("%w: nationality_quota must be positive", ErrInvalidConfig)
	case c.JudgeQuota <= 0:
		return fmt.Errorf("%w: judge_quota must be positive", ErrInvalidConfig)
	case c.EpisodesPerSeason <= 0:
		return fmt.Errorf("%w: episodes_per_season must be positive", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.IdempotencyCacheSize < 0:
		return fmt.Errorf("%w: idempotency_cache_size must not be negative", ErrInvalidConfig)
	}
	return nil
}
