package attempt

import "errors"

// Sentinel kinds for attempt errors.
var (
	ErrAttemptsExhausted = errors.New("selection attempts exhausted")
)
