package sqlscript

import "errors"

// ErrWrite reports a failure to append to the script file.
var ErrWrite = errors.New("write sql script")
