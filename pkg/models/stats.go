package models

// ClusterStats holds the eight numeric fields of the cluster summary row
// on the JobTracker main status page, in page column order.
type ClusterStats struct {
	Maps               int
	Reduces            int
	TotalSubmissions   int
	Nodes              int
	MapTaskCapacity    int
	ReduceTaskCapacity int
	AvgTasksPerNode    float64
	BlacklistedNodes   int
}

// HeapStats holds the heap figures parsed from the main status page plus
// the derived byte counts and usage percentage.
type HeapStats struct {
	UsedValue float64
	UsedUnit  string
	MaxValue  float64
	MaxUnit   string
	UsedBytes uint64
	MaxBytes  uint64
	UsedPct   float64
}

// NodeReport is the outcome of checking a node set against the active
// machines page. Found and Missing are sorted by name.
type NodeReport struct {
	Checked int
	Found   []string
	Missing []string
}

// MissingCount returns the number of requested nodes absent from the page.
func (r *NodeReport) MissingCount() int {
	return len(r.Missing)
}
