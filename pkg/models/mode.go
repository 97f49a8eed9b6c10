package models

// CheckMode selects which JobTracker page is fetched and how it is parsed.
// Exactly one mode is active per run, chosen once at startup.
type CheckMode int

const (
	// ModeClusterSummary reads the cluster summary table on the main
	// status page. This is the default when no other mode is requested.
	ModeClusterSummary CheckMode = iota
	// ModeNodeList verifies that named nodes appear on the active
	// machines page.
	ModeNodeList
	// ModeHeapUsage reads the heap size figures on the main status page.
	ModeHeapUsage
)

// String returns a short name for the mode.
func (m CheckMode) String() string {
	switch m {
	case ModeNodeList:
		return "node-list"
	case ModeHeapUsage:
		return "heap-usage"
	default:
		return "cluster-summary"
	}
}
