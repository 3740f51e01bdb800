// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/cookoff/internal/adapters/mq/queue"
	service "github.com/okian/cookoff/internal/app"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	EpisodeGenerator
	JobSubmitter
	StatsProvider
}

// EpisodeGenerator runs one generation, at most once per idempotency key.
type EpisodeGenerator interface {
	GenerateWithKey(ctx context.Context, key string) (service.Result, bool, error)
}

// JobSubmitter queues batch generation and reports job status.
type JobSubmitter interface {
	Submit(ctx context.Context, n int) ([]queue.Status, error)
	Job(id string) (queue.Status, bool)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	episodesHandler *EpisodesHandler
	jobsHandler     *JobsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		episodesHandler: NewEpisodesHandler(deps, deps),
		jobsHandler:     NewJobsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /episodes", MetricsMiddleware(s.episodesHandler.HandlePostEpisode, "episodes"))
	mux.HandleFunc("POST /episodes/batch", MetricsMiddleware(s.episodesHandler.HandlePostBatch, "episodes_batch"))
	mux.HandleFunc("GET /jobs/{id}", MetricsMiddleware(s.jobsHandler.HandleGetJob, "jobs"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
