package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrDuplicateEpisode = errors.New("episode already recorded")
	ErrEmptyDatabaseURL = errors.New("database url is empty")
	ErrTooManyRatings   = errors.New("more ratings than rating columns")
	ErrLoadDataset      = errors.New("load dataset failed")
)
