package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrInProgress   = errors.New("request with this idempotency key is in progress")
	ErrNotStarted   = errors.New("job workers not started")
	ErrInvalidBatch = errors.New("batch count must be positive")
)
