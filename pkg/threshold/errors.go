package threshold

import "errors"

// ErrInvalidThreshold indicates a threshold string that does not match the
// bound or range syntax.
var ErrInvalidThreshold = errors.New("invalid threshold")
