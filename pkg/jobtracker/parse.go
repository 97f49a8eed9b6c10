package jobtracker

import (
	"bufio"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"jtcheck/pkg/log"
	"jtcheck/pkg/models"
)

// The patterns below are deliberately pinned to the exact markup the legacy
// JobTracker emits. Any deviation is a parse failure, never a partial
// result: a changed page means the parser is stale, and guessing at a
// different layout would report wrong numbers as if they were real.

// heapLinePattern matches the heap figures on the main status page, e.g.
// "Cluster Summary (Heap Size is 3.4 GB/8 GB)". Units are two-character
// tokens like MB or GB.
var heapLinePattern = regexp.MustCompile(
	`(?i)Cluster Summary \(Heap Size is (\d+(?:\.\d+)?) (\wB)/(\d+(?:\.\d+)?) (\wB)\)`)

// clusterSummaryPattern matches the summary data row that follows the fixed
// header row on the main status page. Column order and the machines.jsp
// anchor hrefs are part of the contract.
var clusterSummaryPattern = regexp.MustCompile(
	`<th>Maps</th><th>Reduces</th><th>Total Submissions</th>` +
		`<th>Nodes</th><th>Map Task Capacity</th><th>Reduce Task Capacity</th>` +
		`<th>Avg\. Tasks/Node</th><th>Blacklisted Nodes</th></tr>\s*` +
		`<tr><td>(\d+)</td><td>(\d+)</td><td>(\d+)</td>` +
		`<td><a href="machines\.jsp\?type=active">(\d+)</a></td>` +
		`<td>(\d+)</td><td>(\d+)</td><td>(\d+(?:\.\d+)?)</td>` +
		`<td><a href="machines\.jsp\?type=blacklisted">(\d+)</a></td></tr>`)

// pctScale shifts the heap percentage to hundredths for rounding to
// 2 decimal places.
const pctScale = 100

// ParseHeap extracts the heap usage figures from the main status page.
// Only the first matching line counts.
func ParseHeap(body string) (*models.HeapStats, error) {
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		match := heapLinePattern.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}

		used, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: heap used value %q", ErrFieldMissing, match[1])
		}
		maxSize, err := strconv.ParseFloat(match[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: heap max value %q", ErrFieldMissing, match[3])
		}

		usedBytes, err := UnitBytes(used, match[2])
		if err != nil {
			return nil, fmt.Errorf("%w: heap used unit: %w", ErrFieldMissing, err)
		}
		maxBytes, err := UnitBytes(maxSize, match[4])
		if err != nil {
			return nil, fmt.Errorf("%w: heap max unit: %w", ErrFieldMissing, err)
		}
		if maxBytes == 0 {
			return nil, fmt.Errorf("%w: heap maximum is zero", ErrFieldMissing)
		}

		pct := float64(usedBytes) / float64(maxBytes) * 100
		pct = math.Round(pct*pctScale) / pctScale

		log.Debug().
			Str("heap_used", humanize.IBytes(usedBytes)).
			Str("heap_max", humanize.IBytes(maxBytes)).
			Float64("heap_used_pct", pct).
			Msg("Parsed heap summary")

		return &models.HeapStats{
			UsedValue: used,
			UsedUnit:  match[2],
			MaxValue:  maxSize,
			MaxUnit:   match[4],
			UsedBytes: usedBytes,
			MaxBytes:  maxBytes,
			UsedPct:   pct,
		}, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanning status page: %w", ErrFieldMissing, err)
	}

	return nil, fmt.Errorf("%w: heap size line", ErrFieldMissing)
}

// ParseClusterSummary extracts the eight numeric fields of the cluster
// summary row from the main status page.
func ParseClusterSummary(body string) (*models.ClusterStats, error) {
	match := clusterSummaryPattern.FindStringSubmatch(body)
	if match == nil {
		return nil, fmt.Errorf("%w: cluster summary table", ErrFieldMissing)
	}

	ints := make([]int, len(match))
	for i, name := range []string{
		"", "maps", "reduces", "total submissions", "nodes",
		"map task capacity", "reduce task capacity", "", "blacklisted nodes",
	} {
		if name == "" {
			continue
		}
		value, err := strconv.Atoi(match[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q", ErrFieldMissing, name, match[i])
		}
		ints[i] = value
	}

	avgTasks, err := strconv.ParseFloat(match[7], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: avg tasks/node %q", ErrFieldMissing, match[7])
	}

	stats := &models.ClusterStats{
		Maps:               ints[1],
		Reduces:            ints[2],
		TotalSubmissions:   ints[3],
		Nodes:              ints[4],
		MapTaskCapacity:    ints[5],
		ReduceTaskCapacity: ints[6],
		AvgTasksPerNode:    avgTasks,
		BlacklistedNodes:   ints[8],
	}

	log.Debug().
		Int("nodes", stats.Nodes).
		Int("blacklisted", stats.BlacklistedNodes).
		Int("maps", stats.Maps).
		Int("reduces", stats.Reduces).
		Msg("Parsed cluster summary")

	return stats, nil
}

// CheckNodes reports which of the requested nodes appear on the active
// machines page. Nodes are matched as literal <td> cells, either bare or
// with the configured domain suffix appended. The input set is assumed to
// be de-duplicated; matching preserves case as given.
func CheckNodes(body string, nodes []string, domain string) *models.NodeReport {
	report := &models.NodeReport{Checked: len(nodes)}

	for _, node := range nodes {
		if nodeListed(body, node, domain) {
			report.Found = append(report.Found, node)
		} else {
			report.Missing = append(report.Missing, node)
		}
	}

	sort.Strings(report.Found)
	sort.Strings(report.Missing)

	log.Debug().
		Int("checked", report.Checked).
		Int("missing", report.MissingCount()).
		Msg("Checked nodes against active machines list")

	return report
}

func nodeListed(body, node, domain string) bool {
	if strings.Contains(body, "<td>"+node+"</td>") {
		return true
	}
	return domain != "" && strings.Contains(body, "<td>"+node+"."+domain+"</td>")
}
