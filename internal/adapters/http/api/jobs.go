package api

import (
	"net/http"
	"strings"
)

// JobsHandler handles job status requests.
type JobsHandler struct {
	jobs JobSubmitter
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(jobs JobSubmitter) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// HandleGetJob handles GET /jobs/{id} requests.
func (h *JobsHandler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_job"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	st, ok := h.jobs.Job(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, st)
}
