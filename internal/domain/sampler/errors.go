package sampler

import "errors"

// Sentinel kinds for sampling errors.
var (
	ErrQuotaUnmet = errors.New("selection quota unmet")
)
