package queue

import (
	"sync"
	"time"
)

// State is the lifecycle position of a job.
type State string

// Job states.
const (
	StateQueued  State = "queued"
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

const defaultTrackerSize = 1000

// Status is the externally visible state of a job.
type Status struct {
	ID          string    `json:"id"`
	State       State     `json:"state"`
	RunID       string    `json:"run_id,omitempty"`
	EpisodeID   int       `json:"episode_id,omitempty"`
	Error       string    `json:"error,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
	FinishedAt  time.Time `json:"finished_at,omitzero"`
}

// Tracker remembers the status of the most recent jobs. The oldest entry is
// evicted once maxSize is reached.
type Tracker struct {
	mu      sync.RWMutex
	byID    map[string]Status
	order   []string
	maxSize int
}

// NewTracker creates a tracker holding up to maxSize jobs; 0 or less uses the default.
func NewTracker(maxSize int) *Tracker {
	if maxSize <= 0 {
		maxSize = defaultTrackerSize
	}
	return &Tracker{byID: make(map[string]Status), maxSize: maxSize}
}

// Queued records a newly accepted job.
func (t *Tracker) Queued(j Job) Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[j.ID]; !ok {
		if len(t.order) >= t.maxSize {
			delete(t.byID, t.order[0])
			t.order = t.order[1:]
		}
		t.order = append(t.order, j.ID)
	}
	st := Status{ID: j.ID, State: StateQueued, RequestedAt: j.RequestedAt}
	t.byID[j.ID] = st
	return st
}

// Forget drops a job that never made it onto the queue.
func (t *Tracker) Forget(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[id]; !ok {
		return
	}
	delete(t.byID, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Running marks a job as picked up by a worker.
func (t *Tracker) Running(id string) {
	t.update(id, func(s *Status) { s.State = StateRunning })
}

// Done marks a job as finished with an episode.
func (t *Tracker) Done(id, runID string, episodeID int) {
	t.update(id, func(s *Status) {
		s.State = StateDone
		s.RunID = runID
		s.EpisodeID = episodeID
		s.FinishedAt = time.Now()
	})
}

// Failed marks a job as finished without an episode.
func (t *Tracker) Failed(id, runID string, err error) {
	t.update(id, func(s *Status) {
		s.State = StateFailed
		s.RunID = runID
		if err != nil {
			s.Error = err.Error()
		}
		s.FinishedAt = time.Now()
	})
}

// Get returns the status of a job.
func (t *Tracker) Get(id string) (Status, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.byID[id]
	return st, ok
}

// Len returns the number of tracked jobs.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}

func (t *Tracker) update(id string, f func(*Status)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.byID[id]
	if !ok {
		return
	}
	f(&st)
	t.byID[id] = st
}
