// Package attempt retries the constrained sampler until a selection meets its
// quota or the attempt budget runs out.
package attempt

import (
	"context"
	"fmt"

	"github.com/okian/cookoff/internal/domain/chance"
	"github.com/okian/cookoff/internal/domain/model"
	"github.com/okian/cookoff/internal/domain/sampler"
	"github.com/okian/cookoff/pkg/logger"
	"github.com/okian/cookoff/pkg/metrics"
)

// DefaultMaxAttempts is the attempt budget used when none is configured.
const DefaultMaxAttempts = 10

// Sampler produces one selection attempt. *sampler.Sampler implements it.
type Sampler interface {
	Sample(src chance.Source) model.Selection
}

var _ Sampler = (*sampler.Sampler)(nil)

// Report describes how a run went, successful or not.
type Report struct {
	Attempts int
	// Failures holds the quota error of every discarded attempt, in order.
	Failures []error
}

// Controller wraps a sampler in a bounded retry loop.
type Controller struct {
	sampler     Sampler
	quota       sampler.Quota
	maxAttempts int
	logger      logger.Logger
}

// New returns a controller that checks attempts against quota.
func New(s Sampler, quota sampler.Quota, opts ...Option) *Controller {
	c := &Controller{
		sampler:     s,
		quota:       quota,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxAttempts returns the configured budget.
func (c *Controller) MaxAttempts() int { return c.maxAttempts }

// Select returns the first attempt that meets the quota. After maxAttempts
// misses it returns ErrAttemptsExhausted and no selection. Nothing carries
// over between attempts.
func (c *Controller) Select(ctx context.Context, src chance.Source) (model.Selection, Report, error) {
	var report Report
	for i := 1; i <= c.maxAttempts; i++ {
		report.Attempts = i
		sel := c.sampler.Sample(src)
		err := c.quota.Check(sel)
		if err == nil {
			metrics.RecordSelectionAttempt("success")
			metrics.ObserveAttemptsPerRun(i)
			c.log().Debug(ctx, "selection attempt met quota", logger.Int("attempt", i))
			return sel, report, nil
		}
		metrics.RecordSelectionAttempt("quota_unmet")
		report.Failures = append(report.Failures, err)
		c.log().Debug(ctx, "selection attempt failed, retrying",
			logger.Int("attempt", i),
			logger.Int("max_attempts", c.maxAttempts),
			logger.Error(err),
		)
	}
	metrics.ObserveAttemptsPerRun(c.maxAttempts)
	return model.Selection{}, report, fmt.Errorf("%w after %d attempts", ErrAttemptsExhausted, c.maxAttempts)
}

func (c *Controller) log() logger.Logger {
	if c.logger == nil {
		return logger.Nop()
	}
	return c.logger
}
