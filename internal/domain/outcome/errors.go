package outcome

import "errors"

// Sentinel kinds for outcome errors.
var (
	ErrPrecondition = errors.New("outcome precondition violated")
)
