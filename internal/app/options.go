package service

import (
	"github.com/okian/cookoff/internal/domain/chance"
	"github.com/okian/cookoff/internal/domain/sampler"
	"github.com/okian/cookoff/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRenderer sets the episode image renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithScriptWriter enables the SQL script log.
func WithScriptWriter(w ScriptWriter) Option {
	return func(s *Service) {
		s.script = w
	}
}

// WithSource sets the random source shared by sampling and outcome simulation.
func WithSource(src chance.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.src = src
		}
	}
}

// WithSeed seeds the random source; 0 seeds from the clock.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.src = chance.New(seed)
	}
}

// WithWindowSize sets how many recent episodes the recency window spans.
func WithWindowSize(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.windowSize = n
		}
	}
}

// WithOverrepresentationLimit sets the count at which ids are excluded.
func WithOverrepresentationLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithMaxAttempts sets the sampler attempt budget.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithQuota sets the selection targets.
func WithQuota(q sampler.Quota) Option {
	return func(s *Service) {
		if q.Nationalities > 0 && q.Judges > 0 {
			s.quota = q
		}
	}
}

// WithEpisodesPerSeason sets the season cap.
func WithEpisodesPerSeason(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.perSeason = n
		}
	}
}

// WithImageURLPrefix sets the prefix of stored image URLs.
func WithImageURLPrefix(prefix string) Option {
	return func(s *Service) {
		s.imageURLPrefix = prefix
	}
}

// WithRunIDGenerator overrides how run ids are minted.
func WithRunIDGenerator(f func() string) Option {
	return func(s *Service) {
		if f != nil {
			s.newRunID = f
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithQueueSize sets the capacity of the batch job queue.
func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithWorkerCount sets how many workers drain the job queue.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithIdempotencyCacheSize bounds how many idempotency keys are remembered;
// 0 or less keeps every key.
func WithIdempotencyCacheSize(n int) Option {
	return func(s *Service) {
		s.idemSize = n
	}
}
