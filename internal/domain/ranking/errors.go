package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrUnknownRanking = errors.New("unknown ranking")
)
