package artwork

import "errors"

// ErrRender reports a failure to write an episode image.
var ErrRender = errors.New("render episode image")
