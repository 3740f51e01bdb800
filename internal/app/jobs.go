package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/cookoff/internal/adapters/mq/queue"
	"github.com/okian/cookoff/internal/adapters/mq/worker"
	"github.com/okian/cookoff/internal/domain/dedupe"
	"github.com/okian/cookoff/pkg/logger"
)

// GenerateWithKey runs Generate at most once per idempotency key. A repeated
// key replays the stored result and reports replayed. A failed run releases
// the key so the client may retry.
func (s *Service) GenerateWithKey(ctx context.Context, key string) (Result, bool, error) {
	if key == "" {
		res, err := s.Generate(ctx)
		return res, false, err
	}

	prev, st := s.idem.Reserve(ctx, key)
	switch st {
	case dedupe.Completed:
		s.logger.Debug(ctx, "idempotent replay", logger.String("key", key), logger.String("run_id", prev.RunID))
		return prev, true, nil
	case dedupe.Pending:
		return Result{}, false, fmt.Errorf("key %q: %w", key, ErrInProgress)
	}

	res, err := s.Generate(ctx)
	if err != nil {
		s.idem.Release(ctx, key)
		return res, false, err
	}
	s.idem.Complete(ctx, key, res)
	return res, false, nil
}

// GenerateJob adapts Generate for the worker pool.
func (s *Service) GenerateJob(ctx context.Context) (string, int, error) {
	res, err := s.Generate(ctx)
	return res.RunID, res.Episode.ID, err
}

// Start creates the job queue and starts the worker pool. Calling Start on a
// started service is a no-op.
func (s *Service) Start(ctx context.Context) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	if s.pool != nil {
		return
	}
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.tracker = queue.NewTracker(0)
	s.pool = worker.NewPool(s.workerCount, s.queue, s, s.tracker)
	s.pool.Start(ctx)
	s.logger.Info(ctx, "job workers started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queue_size", s.queueSize),
	)
}

// Stop closes the queue and waits for in-flight jobs. Queued jobs that no
// worker picked up are dropped.
func (s *Service) Stop(ctx context.Context) error {
	s.jobsMu.Lock()
	pool := s.pool
	s.jobsMu.Unlock()

	if pool == nil {
		return nil
	}
	if err := pool.Shutdown(ctx); err != nil {
		return fmt.Errorf("stop workers: %w", err)
	}
	return nil
}

// Submit queues n generation jobs. When the queue fills up part way, the
// jobs accepted so far are returned together with queue.ErrQueueFull.
func (s *Service) Submit(ctx context.Context, n int) ([]queue.Status, error) {
	if n < 1 {
		return nil, ErrInvalidBatch
	}

	s.jobsMu.Lock()
	q, tracker := s.queue, s.tracker
	s.jobsMu.Unlock()
	if q == nil {
		return nil, ErrNotStarted
	}

	out := make([]queue.Status, 0, n)
	for i := 0; i < n; i++ {
		j := queue.Job{ID: s.newRunID(), RequestedAt: time.Now()}
		st := tracker.Queued(j)
		if !q.Enqueue(ctx, j) {
			tracker.Forget(j.ID)
			if q.IsClosed() {
				return out, queue.ErrClosed
			}
			return out, fmt.Errorf("accepted %d of %d jobs: %w", len(out), n, queue.ErrQueueFull)
		}
		out = append(out, st)
	}
	return out, nil
}

// Job returns the status of a submitted job.
func (s *Service) Job(id string) (queue.Status, bool) {
	s.jobsMu.Lock()
	tracker := s.tracker
	s.jobsMu.Unlock()

	if tracker == nil {
		return queue.Status{}, false
	}
	return tracker.Get(id)
}
