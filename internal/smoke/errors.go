package smoke

import "errors"

// Sentinel kinds for smoke run failures.
var (
	ErrUnhealthy  = errors.New("service unhealthy")
	ErrViolations = errors.New("episodes violate selection rules")
	ErrFailures   = errors.New("generation requests failed")
	ErrJobTimeout = errors.New("batch jobs did not finish in time")
)
