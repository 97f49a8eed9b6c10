package jobtracker

import "errors"

var (
	// ErrConnection indicates the JobTracker could not be reached or
	// answered with a non-OK status. Always reported as Critical.
	ErrConnection = errors.New("connection to JobTracker failed")

	// ErrEmptyResponse indicates the JobTracker answered with a
	// zero-length body. Always reported as Critical.
	ErrEmptyResponse = errors.New("empty response from JobTracker")

	// ErrFieldMissing indicates the page did not match the expected
	// legacy layout. Reported as Unknown, since it means the parser is
	// stale relative to the JobTracker version, not that the cluster is
	// down.
	ErrFieldMissing = errors.New("expected field not found on status page")

	// ErrUnknownUnit indicates a heap size unit the expansion table does
	// not cover.
	ErrUnknownUnit = errors.New("unrecognized size unit")
)
