package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/cookoff/internal/adapters/mq/queue"
	"github.com/okian/cookoff/internal/domain/model"
	"github.com/okian/cookoff/pkg/logger"
)

// Run executes the complete smoke run and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("smoke")
	client := newHTTPClient(config.BaseURL, config.Timeout)

	log.Info(ctx, "starting cookoff smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("episodes", config.Episodes),
		logger.Int("batch", config.Batch),
		logger.String("timeout", config.Timeout.String()))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, err
	}

	// Step 2: Generate episodes one by one, replaying the first key
	episodes := generateEpisodes(ctx, client, config, stats, log)

	// Step 3: Verify episodes
	for _, err := range VerifySequence(episodes, config.EpisodesPerSeason) {
		stats.Violations++
		log.Error(ctx, "sequence violation", logger.Error(err))
	}

	// Step 4: Run a batch through the worker pool
	if config.Batch > 0 {
		if err := runBatch(ctx, client, config, stats, log); err != nil {
			return stats, err
		}
	}

	// Step 5: Save episodes to file
	if config.OutputFile != "" {
		if err := saveEpisodes(config.OutputFile, episodes); err != nil {
			log.Warn(ctx, "failed to save episodes to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	switch {
	case stats.Violations > 0:
		return stats, fmt.Errorf("%w: %d", ErrViolations, stats.Violations)
	case stats.Failed > 0 || stats.BatchError > 0:
		return stats, fmt.Errorf("%w: %d direct, %d batch", ErrFailures, stats.Failed, stats.BatchError)
	}
	log.Info(ctx, "smoke run completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	if _, err := client.do(ctx, http.MethodGet, "/healthz", nil, nil, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	return nil
}

func generateEpisodes(ctx context.Context, client *HTTPClient, config *Config, stats *Stats, log logger.Logger) []model.Episode {
	tag := uuid.NewString()
	var episodes []model.Episode

	for i := 0; i < config.Episodes; i++ {
		if ctx.Err() != nil {
			break
		}
		key := tag + "-" + strconv.Itoa(i)
		headers := map[string]string{"Idempotency-Key": key}
		stats.Requested++

		var res Result
		resp, err := client.do(ctx, http.MethodPost, "/episodes", nil, headers, &res)
		switch {
		case err == nil:
		case resp != nil && resp.StatusCode == http.StatusUnprocessableEntity:
			stats.Exhausted++
			log.Warn(ctx, "attempt budget exhausted", logger.Int("request", i))
			continue
		default:
			stats.Failed++
			log.Error(ctx, "episode request failed", logger.Int("request", i), logger.Error(err))
			continue
		}

		stats.Generated++
		episodes = append(episodes, res.Episode)
		for _, verr := range VerifyEpisode(res.Episode, config.Nationalities, config.Judges) {
			stats.Violations++
			log.Error(ctx, "episode violation", logger.Error(verr))
		}
		if config.Verbose {
			log.Info(ctx, "episode generated",
				logger.Int("episode_id", res.Episode.ID),
				logger.Int("season", res.Episode.Season),
				logger.Int("number", res.Episode.Number),
				logger.Int("winner_id", res.Episode.Outcome.WinnerID),
				logger.Int("attempts", res.Attempts))
		}

		if i == 0 {
			checkReplay(ctx, client, headers, res, stats, log)
		}
	}
	return episodes
}

// checkReplay resends a completed key and expects the same run back.
func checkReplay(ctx context.Context, client *HTTPClient, headers map[string]string, first Result, stats *Stats, log logger.Logger) {
	var again Result
	resp, err := client.do(ctx, http.MethodPost, "/episodes", nil, headers, &again)
	switch {
	case err != nil:
		stats.Violations++
		log.Error(ctx, "idempotent replay failed", logger.Error(err))
	case resp.StatusCode != http.StatusOK || resp.Header.Get("Idempotent-Replayed") != "true":
		stats.Violations++
		log.Error(ctx, "repeated key was not replayed", logger.Int("status", resp.StatusCode))
	case again.RunID != first.RunID || again.Episode.ID != first.Episode.ID:
		stats.Violations++
		log.Error(ctx, "replay returned a different run",
			logger.String("first", first.RunID),
			logger.String("replay", again.RunID))
	default:
		stats.Replayed++
	}
}

func runBatch(ctx context.Context, client *HTTPClient, config *Config, stats *Stats, log logger.Logger) error {
	var batch batchResponse
	if _, err := client.do(ctx, http.MethodPost, "/episodes/batch", map[string]int{"count": config.Batch}, nil, &batch); err != nil {
		stats.BatchError += config.Batch
		log.Error(ctx, "batch submission failed", logger.Error(err))
		return nil
	}
	stats.BatchError += batch.Rejected

	deadline := time.Now().Add(config.JobWait)
	pending := make(map[string]bool, len(batch.Jobs))
	for _, j := range batch.Jobs {
		pending[j.ID] = true
	}

	for len(pending) > 0 {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %d pending", ErrJobTimeout, len(pending))
		}
		for id := range pending {
			var st queue.Status
			if _, err := client.do(ctx, http.MethodGet, "/jobs/"+id, nil, nil, &st); err != nil {
				log.Warn(ctx, "job poll failed", logger.String("job_id", id), logger.Error(err))
				continue
			}
			switch st.State {
			case queue.StateDone:
				stats.BatchDone++
				delete(pending, id)
			case queue.StateFailed:
				log.Warn(ctx, "batch job failed", logger.String("job_id", id), logger.String("error", st.Error))
				stats.BatchError++
				delete(pending, id)
			}
		}
		if len(pending) == 0 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(config.PollInterval):
		}
	}
	return nil
}

// saveEpisodes writes the generated episodes to a JSON file.
func saveEpisodes(filename string, episodes []model.Episode) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(episodes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal episodes: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.Generated+stats.BatchDone) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("requested", stats.Requested),
		logger.Int("generated", stats.Generated),
		logger.Int("exhausted", stats.Exhausted),
		logger.Int("failed", stats.Failed),
		logger.Int("replayed", stats.Replayed),
		logger.Int("batchDone", stats.BatchDone),
		logger.Int("batchError", stats.BatchError),
		logger.Int("violations", stats.Violations),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("episodesPerSecond", perSecond))
}
