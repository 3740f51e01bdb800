package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/cookoff/internal/adapters/mq/queue"
	service "github.com/okian/cookoff/internal/app"
	"github.com/okian/cookoff/internal/domain/attempt"
)

// Request headers.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

const maxBatch = 1000

// EpisodesHandler handles episode generation requests.
type EpisodesHandler struct {
	gen  EpisodeGenerator
	jobs JobSubmitter
}

// NewEpisodesHandler creates a new episodes handler.
func NewEpisodesHandler(gen EpisodeGenerator, jobs JobSubmitter) *EpisodesHandler {
	return &EpisodesHandler{gen: gen, jobs: jobs}
}

// HandlePostEpisode handles POST /episodes requests. A repeated
// Idempotency-Key replays the first successful result with 200.
func (h *EpisodesHandler) HandlePostEpisode(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_episode"
	key := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))

	res, replayed, err := h.gen.GenerateWithKey(r.Context(), key)
	switch {
	case err == nil && replayed:
		w.Header().Set(HeaderReplayed, "true")
		writeJSON(w, http.StatusOK, res)
	case err == nil:
		writeJSON(w, http.StatusCreated, res)
	case errors.Is(err, attempt.ErrAttemptsExhausted):
		writeError(w, http.StatusUnprocessableEntity, "attempts_exhausted", WrapKind(op, ErrUnprocessable, err))
	case errors.Is(err, service.ErrInProgress):
		writeError(w, http.StatusConflict, "in_progress", WrapKind(op, ErrConflict, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	}
}

type batchRequest struct {
	Count int `json:"count"`
}

func (b batchRequest) validate() error {
	switch {
	case b.Count < 1:
		return errors.New("count must be positive")
	case b.Count > maxBatch:
		return errors.New("count must not exceed 1000")
	}
	return nil
}

type batchResponse struct {
	Jobs     []queue.Status `json:"jobs"`
	Rejected int            `json:"rejected"`
}

// HandlePostBatch handles POST /episodes/batch requests. Jobs run on the
// worker pool; poll GET /jobs/{id} for their outcome.
func (h *EpisodesHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch"
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	jobs, err := h.jobs.Submit(r.Context(), req.Count)
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, batchResponse{Jobs: jobs})
	case errors.Is(err, queue.ErrQueueFull) && len(jobs) > 0:
		writeJSON(w, http.StatusAccepted, batchResponse{Jobs: jobs, Rejected: req.Count - len(jobs)})
	case errors.Is(err, queue.ErrQueueFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
	case errors.Is(err, service.ErrNotStarted), errors.Is(err, queue.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	case errors.Is(err, service.ErrInvalidBatch):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	}
}
