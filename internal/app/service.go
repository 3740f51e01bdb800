// Package service provides the episode generation service used by the CLI
// and the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/cookoff/internal/adapters/artwork"
	"github.com/okian/cookoff/internal/adapters/mq/queue"
	"github.com/okian/cookoff/internal/adapters/mq/worker"
	"github.com/okian/cookoff/internal/adapters/repository"
	"github.com/okian/cookoff/internal/domain/attempt"
	"github.com/okian/cookoff/internal/domain/chance"
	"github.com/okian/cookoff/internal/domain/dedupe"
	"github.com/okian/cookoff/internal/domain/model"
	"github.com/okian/cookoff/internal/domain/outcome"
	"github.com/okian/cookoff/internal/domain/recency"
	"github.com/okian/cookoff/internal/domain/sampler"
	"github.com/okian/cookoff/internal/domain/season"
	"github.com/okian/cookoff/pkg/logger"
	"github.com/okian/cookoff/pkg/metrics"
)

// Default sizes of the job queue, worker pool and idempotency cache.
const (
	DefaultQueueSize       = 100
	DefaultWorkerCount     = 1
	DefaultIdempotencySize = 10000
)

// Renderer draws the image for a season slot and returns its file name.
type Renderer interface {
	Render(ctx context.Context, season, number int) (string, error)
}

// ScriptWriter records the statements of a saved episode.
type ScriptWriter interface {
	Append(ctx context.Context, ep model.Episode) error
}

// Result is a successful generation run.
type Result struct {
	RunID    string        `json:"run_id"`
	Episode  model.Episode `json:"episode"`
	Attempts int           `json:"attempts"`
	Duration time.Duration `json:"duration_ns"`
}

// Stats summarizes the runs this service has performed.
type Stats struct {
	Generated     int64  `json:"generated"`
	Failed        int64  `json:"failed"`
	LastRunID     string `json:"last_run_id,omitempty"`
	LastEpisodeID int    `json:"last_episode_id,omitempty"`
	LastSeason    int    `json:"last_season,omitempty"`
	LastNumber    int    `json:"last_number,omitempty"`
	LastError     string `json:"last_error,omitempty"`
	MaxAttempts   int    `json:"max_attempts"`
	WindowSize    int    `json:"window_size"`
	Limit         int    `json:"overrepresentation_limit"`
}

// Service generates one episode per call. Runs are serialized: each run reads
// a fresh snapshot from the store and persists before the next may start.
type Service struct {
	mu sync.Mutex

	store    repository.Store
	renderer Renderer
	script   ScriptWriter
	src      chance.Source

	windowSize     int
	limit          int
	maxAttempts    int
	quota          sampler.Quota
	perSeason      int
	imageURLPrefix string

	newRunID func() string
	logger   logger.Logger

	stats Stats

	idemSize int
	idem     *dedupe.Cache[Result]

	jobsMu      sync.Mutex
	queueSize   int
	workerCount int
	queue       *queue.InMemoryQueue
	tracker     *queue.Tracker
	pool        *worker.Pool
}

// New constructs a Service over store with default configuration.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:          store,
		renderer:       artwork.New("images"),
		src:            chance.New(0),
		windowSize:     recency.DefaultSize,
		limit:          recency.DefaultLimit,
		maxAttempts:    attempt.DefaultMaxAttempts,
		quota:          sampler.DefaultQuota(),
		perSeason:      season.DefaultEpisodesPerSeason,
		imageURLPrefix: "images",
		newRunID:       uuid.NewString,
		idemSize:       DefaultIdempotencySize,
		queueSize:      DefaultQueueSize,
		workerCount:    DefaultWorkerCount,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("generator")
	}
	s.idem = dedupe.New[Result](dedupe.WithMaxSize(s.idemSize))
	return s
}

// Generate runs the full pipeline: snapshot, recency window, bounded
// sampling, outcome simulation, image, persistence and script log. Nothing
// is rendered or persisted when sampling exhausts its budget.
func (s *Service) Generate(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	runID := s.newRunID()
	log := s.logger.With(logger.String("run_id", runID))
	defer func() {
		metrics.RecordRunDuration(float64(time.Since(start).Microseconds()) / 1000)
	}()

	ref, err := s.store.LoadReference(ctx)
	if err != nil {
		return s.fail(ctx, log, runID, "store", fmt.Errorf("load reference: %w", err))
	}
	hist, err := s.store.LoadHistory(ctx)
	if err != nil {
		return s.fail(ctx, log, runID, "store", fmt.Errorf("load history: %w", err))
	}

	episodeID := hist.NextEpisodeID()
	slot := season.NextFromHistory(hist, s.perSeason)
	log.Debug(ctx, "snapshot loaded",
		logger.Int("episode_id", episodeID),
		logger.Int("season", slot.Season),
		logger.Int("number", slot.Number),
		logger.Int("nationalities", len(ref.Nationalities)),
		logger.Int("cooks", len(ref.Cooks)),
		logger.Int("recipes", len(ref.Recipes)),
	)

	window := recency.Build(hist, s.windowSize)
	guard := recency.NewGuard(window, s.limit)
	smp := sampler.New(ref, guard, sampler.WithQuota(s.quota))
	ctrl := attempt.New(smp, s.quota,
		attempt.WithMaxAttempts(s.maxAttempts),
		attempt.WithLogger(log),
	)

	sel, report, err := ctrl.Select(ctx, s.src)
	if err != nil {
		reason := "selection"
		if errors.Is(err, attempt.ErrAttemptsExhausted) {
			reason = "attempts_exhausted"
		}
		log.Error(ctx, "episode failed to be created",
			logger.Int("episode_id", episodeID),
			logger.Int("attempts", report.Attempts),
		)
		return s.fail(ctx, log, runID, reason, err)
	}

	out, err := outcome.New().Simulate(s.src, sel.Contestants, sel.Judges)
	if err != nil {
		return s.fail(ctx, log, runID, "outcome", err)
	}
	metrics.RecordWinnerResolution(string(out.Resolution))

	fileName, err := s.renderer.Render(ctx, slot.Season, slot.Number)
	if err != nil {
		return s.fail(ctx, log, runID, "render", err)
	}

	ep := model.Episode{
		ID:     episodeID,
		Season: slot.Season,
		Number: slot.Number,
		Image: model.Image{
			URL:         s.imageURL(fileName),
			Description: artwork.Describe(slot.Season, slot.Number),
		},
		Selection:      sel,
		Outcome:        out,
		NewRecipeCooks: newRecipeCooks(ref, sel),
	}

	saved, err := s.store.SaveEpisode(ctx, ep)
	if err != nil {
		return s.fail(ctx, log, runID, "store", fmt.Errorf("save episode %d: %w", episodeID, err))
	}

	if s.script != nil {
		if err := s.script.Append(ctx, saved); err != nil {
			metrics.RecordErrorByComponent("sqlscript", "append")
			log.Warn(ctx, "episode saved but sql script append failed", logger.Error(err))
		}
	}

	s.stats.Generated++
	s.stats.LastRunID = runID
	s.stats.LastEpisodeID = saved.ID
	s.stats.LastSeason = saved.Season
	s.stats.LastNumber = saved.Number
	s.stats.LastError = ""
	metrics.RecordEpisodeCreated(saved.ID)

	log.Info(ctx, "episode successfully generated",
		logger.Int("episode_id", saved.ID),
		logger.Int("season", saved.Season),
		logger.Int("number", saved.Number),
		logger.Int("winner_id", saved.Outcome.WinnerID),
		logger.String("resolution", string(saved.Outcome.Resolution)),
		logger.Int("attempts", report.Attempts),
	)

	return Result{
		RunID:    runID,
		Episode:  saved,
		Attempts: report.Attempts,
		Duration: time.Since(start),
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats
	st.MaxAttempts = s.maxAttempts
	st.WindowSize = s.windowSize
	st.Limit = s.limit
	return st
}

func (s *Service) fail(ctx context.Context, log logger.Logger, runID, reason string, err error) (Result, error) {
	s.stats.Failed++
	s.stats.LastRunID = runID
	s.stats.LastError = err.Error()
	metrics.RecordEpisodeFailed(reason)
	if reason != "attempts_exhausted" {
		log.Error(ctx, "generation run failed", logger.String("reason", reason), logger.Error(err))
	}
	return Result{RunID: runID}, err
}

func (s *Service) imageURL(fileName string) string {
	prefix := strings.TrimSuffix(s.imageURLPrefix, "/")
	if prefix == "" {
		return fileName
	}
	return prefix + "/" + fileName
}

// newRecipeCooks lists the assignments whose recipe/cook pair is not yet in
// the reference data.
func newRecipeCooks(ref model.Reference, sel model.Selection) []model.RecipeCook {
	var out []model.RecipeCook
	for _, r := range sel.Recipes {
		if !ref.HasRecipeCook(r.RecipeID, r.CookID) {
			out = append(out, model.RecipeCook{RecipeID: r.RecipeID, CookID: r.CookID})
		}
	}
	return out
}
