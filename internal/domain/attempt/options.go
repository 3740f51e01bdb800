package attempt

import "github.com/okian/cookoff/pkg/logger"

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithMaxAttempts sets the attempt budget.
func WithMaxAttempts(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithLogger sets the logger used to report failed attempts.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}
