// Package smoke drives a running generator over HTTP and checks the
// episodes it returns.
package smoke

import (
	"time"

	"github.com/okian/cookoff/internal/adapters/mq/queue"
	service "github.com/okian/cookoff/internal/app"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Episodes     int           // Episodes generated one by one via POST /episodes
	Batch        int           // Episodes requested via POST /episodes/batch; 0 skips
	Timeout      time.Duration // HTTP request timeout
	PollInterval time.Duration // Delay between GET /jobs/{id} polls
	JobWait      time.Duration // Upper bound on waiting for batch jobs
	OutputFile   string        // Optional JSON dump of every generated episode
	Verbose      bool          // Log each episode

	Nationalities     int // Expected nationalities, contestants and recipes per episode
	Judges            int // Expected judges per episode
	EpisodesPerSeason int // Season cap the server runs with
}

// Stats holds run statistics.
type Stats struct {
	Requested  int
	Generated  int
	Exhausted  int
	Failed     int
	Replayed   int
	BatchDone  int
	BatchError int
	Violations int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

type batchResponse struct {
	Jobs     []queue.Status `json:"jobs"`
	Rejected int            `json:"rejected"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result mirrors the POST /episodes response.
type Result = service.Result
