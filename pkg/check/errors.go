package check

import "errors"

// ErrUsage indicates bad or conflicting invocation inputs, detected before
// any network I/O. Reported as Unknown per the plugin convention.
var ErrUsage = errors.New("usage error")
