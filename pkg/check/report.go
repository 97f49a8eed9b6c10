package check

import (
	"fmt"
	"strconv"
	"strings"

	"jtcheck/pkg/models"
	"jtcheck/pkg/threshold"
)

// Report is the final plugin outcome: one line for stdout and the exit
// verdict.
type Report struct {
	Verdict models.Verdict
	Message string
}

const (
	// With more checked nodes than this, the all-present message reports
	// a count instead of listing every name.
	maxListedFound = 5
	// With more missing nodes than this, the failure message reports a
	// count instead of listing every name.
	maxListedMissing = 30
)

// nodeReportLine renders the node-list check message. This mode emits no
// perfdata.
func nodeReportLine(report *models.NodeReport) string {
	if report.MissingCount() == 0 {
		if report.Checked <= maxListedFound {
			return fmt.Sprintf("'%s' found in the active machines list on the JobTracker",
				strings.Join(report.Found, ","))
		}
		return fmt.Sprintf("All %d nodes found in the active machines list on the JobTracker",
			report.Checked)
	}

	if report.MissingCount() <= maxListedMissing {
		return fmt.Sprintf("'%s' not found in the active machines list on the JobTracker",
			strings.Join(report.Missing, ","))
	}
	return fmt.Sprintf("%d nodes not found in the active machines list on the JobTracker",
		report.MissingCount())
}

// heapLine renders the heap-usage message plus perfdata. Unset thresholds
// leave their perfdata slots empty rather than defaulting to zero.
func heapLine(stats *models.HeapStats, warn, crit *threshold.Threshold) string {
	return fmt.Sprintf(
		"JobTracker Heap %.2f%% Used (%.2f %s used, %.2f %s total)"+
			" | 'JobTracker Heap %% Used'=%.2f%%;%s;%s;0;100 'JobTracker Heap Used'=%dB",
		stats.UsedPct, stats.UsedValue, stats.UsedUnit, stats.MaxValue, stats.MaxUnit,
		stats.UsedPct, thresholdSlot(warn), thresholdSlot(crit), stats.UsedBytes)
}

// clusterLine renders the cluster-summary message plus perfdata.
func clusterLine(stats *models.ClusterStats, warn, crit *threshold.Threshold) string {
	return fmt.Sprintf(
		"%d MapReduce nodes available, %d blacklisted nodes"+
			" | 'MapReduce Nodes'=%d;%s;%s 'Blacklisted Nodes'=%d"+
			" Maps=%d Reduces=%d 'Total Submissions'=%d"+
			" 'Map Task Capacity'=%d 'Reduce Task Capacity'=%d 'Avg. Tasks/Node'=%s",
		stats.Nodes, stats.BlacklistedNodes,
		stats.Nodes, thresholdSlot(warn), thresholdSlot(crit), stats.BlacklistedNodes,
		stats.Maps, stats.Reduces, stats.TotalSubmissions,
		stats.MapTaskCapacity, stats.ReduceTaskCapacity,
		strconv.FormatFloat(stats.AvgTasksPerNode, 'g', -1, 64))
}

// thresholdSlot renders a threshold for its perfdata slot, empty when the
// caller supplied none.
func thresholdSlot(t *threshold.Threshold) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// failureLine renders a failure message with its severity keyword prefix.
func failureLine(verdict models.Verdict, err error) string {
	return verdict.String() + ": " + err.Error()
}
