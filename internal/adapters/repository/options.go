package repository

import (
	"time"

	"github.com/okian/cookoff/internal/domain/model"
)

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithReference seeds the reference tables.
func WithReference(ref model.Reference) MemoryOption {
	return func(s *MemoryStore) {
		s.ref = cloneReference(ref)
	}
}

// WithHistory seeds the episode history.
func WithHistory(h model.History) MemoryOption {
	return func(s *MemoryStore) {
		s.hist = cloneHistory(h)
	}
}

// Options controls database pool and connectivity behavior.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// DefaultOptions returns pool defaults for a generator process.
func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
	}
}
