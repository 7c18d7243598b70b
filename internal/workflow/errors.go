package workflow

import "errors"

// ErrTimeout indicates the analysis did not complete within the configured
// analysis timeout.
var ErrTimeout = errors.New("analysis timed out")
