package check

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"jtcheck/pkg/jobtracker"
	"jtcheck/pkg/models"
)

// stubFetcher serves canned page bodies in place of a live JobTracker.
type stubFetcher struct {
	statusBody   string
	statusErr    error
	machinesBody string
	machinesErr  error
}

func (f *stubFetcher) StatusPage(_ context.Context) (string, error) {
	return f.statusBody, f.statusErr
}

func (f *stubFetcher) ActiveMachinesPage(_ context.Context) (string, error) {
	return f.machinesBody, f.machinesErr
}

// statusPage renders a main status page with the given summary figures.
func statusPage(maps, reduces, submissions, nodes, mapCap, reduceCap int, avgTasks string, blacklisted int) string {
	return fmt.Sprintf(`<html><body>
<h2>Cluster Summary (Heap Size is 3.4 GB/8.0 GB)</h2>
<table border="1" cellpadding="5" cellspacing="0">
<tr><th>Maps</th><th>Reduces</th><th>Total Submissions</th><th>Nodes</th><th>Map Task Capacity</th><th>Reduce Task Capacity</th><th>Avg. Tasks/Node</th><th>Blacklisted Nodes</th></tr>
<tr><td>%d</td><td>%d</td><td>%d</td><td><a href="machines.jsp?type=active">%d</a></td><td>%d</td><td>%d</td><td>%s</td><td><a href="machines.jsp?type=blacklisted">%d</a></td></tr>
</table>
</body></html>`, maps, reduces, submissions, nodes, mapCap, reduceCap, avgTasks, blacklisted)
}

// machinesPage renders an active machines page listing the given nodes.
func machinesPage(nodes ...string) string {
	var rows strings.Builder
	for _, node := range nodes {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>0</td></tr>\n", node, node)
	}
	return "<html><body><table>\n" + rows.String() + "</table></body></html>"
}

// CheckTestSuite tests the end-to-end pipeline against stubbed pages
type CheckTestSuite struct {
	suite.Suite
}

// config builds a validated Config from options, failing the test on a
// usage error.
func (s *CheckTestSuite) config(opts Options) *Config {
	if opts.Host == "" {
		opts.Host = "jt.example.com"
	}
	if opts.Port == 0 {
		opts.Port = jobtracker.DefaultPort
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}

	cfg, err := NewConfig(opts)
	s.Require().NoError(err)
	return cfg
}

// TestClusterSummaryOK tests the default check's exact output line
func (s *CheckTestSuite) TestClusterSummaryOK() {
	fetcher := &stubFetcher{statusBody: statusPage(3, 2, 5, 12, 20, 10, "1.25", 0)}

	report := Run(context.Background(), s.config(Options{}), fetcher)

	s.Equal(models.VerdictOK, report.Verdict)
	s.Equal("12 MapReduce nodes available, 0 blacklisted nodes"+
		" | 'MapReduce Nodes'=12;0;0 'Blacklisted Nodes'=0"+
		" Maps=3 Reduces=2 'Total Submissions'=5"+
		" 'Map Task Capacity'=20 'Reduce Task Capacity'=10 'Avg. Tasks/Node'=1.25",
		report.Message)
}

// TestClusterSummaryNodeCountThresholds tests the alert-below polarity of
// the node count check
func (s *CheckTestSuite) TestClusterSummaryNodeCountThresholds() {
	fetcher := &stubFetcher{statusBody: statusPage(0, 0, 0, 4, 8, 8, "2.0", 0)}

	warning := Run(context.Background(), s.config(Options{Warning: "5", Critical: "2"}), fetcher)
	s.Equal(models.VerdictWarning, warning.Verdict)

	critical := Run(context.Background(), s.config(Options{Warning: "8", Critical: "5"}), fetcher)
	s.Equal(models.VerdictCritical, critical.Verdict)

	ok := Run(context.Background(), s.config(Options{Warning: "3", Critical: "2"}), fetcher)
	s.Equal(models.VerdictOK, ok.Verdict)
}

// TestBlacklistedNodesForceCritical tests the hard override: any
// blacklisted node is Critical even when the node count alone is fine
func (s *CheckTestSuite) TestBlacklistedNodesForceCritical() {
	fetcher := &stubFetcher{statusBody: statusPage(3, 2, 5, 12, 20, 10, "1.25", 2)}

	report := Run(context.Background(), s.config(Options{}), fetcher)

	s.Equal(models.VerdictCritical, report.Verdict)
	s.Contains(report.Message, "2 blacklisted nodes")
}

// TestHeapUsageOK tests the heap check's exact output line with no
// thresholds configured
func (s *CheckTestSuite) TestHeapUsageOK() {
	fetcher := &stubFetcher{statusBody: statusPage(3, 2, 5, 12, 20, 10, "1.25", 0)}

	report := Run(context.Background(), s.config(Options{HeapUsage: true}), fetcher)

	used := 3.4
	usedBytes := uint64(used * float64(1<<30))
	s.Equal(models.VerdictOK, report.Verdict)
	s.Equal(fmt.Sprintf("JobTracker Heap 42.50%% Used (3.40 GB used, 8.00 GB total)"+
		" | 'JobTracker Heap %% Used'=42.50%%;;;0;100 'JobTracker Heap Used'=%dB", usedBytes),
		report.Message)
}

// TestHeapUsageThresholds tests heap verdicts against upper bounds, and
// that configured bounds land in the perfdata slots
func (s *CheckTestSuite) TestHeapUsageThresholds() {
	fetcher := &stubFetcher{statusBody: statusPage(3, 2, 5, 12, 20, 10, "1.25", 0)}

	warning := Run(context.Background(), s.config(Options{HeapUsage: true, Warning: "40", Critical: "90"}), fetcher)
	s.Equal(models.VerdictWarning, warning.Verdict)
	s.Contains(warning.Message, "=42.50%;40;90;0;100")

	critical := Run(context.Background(), s.config(Options{HeapUsage: true, Warning: "30", Critical: "40"}), fetcher)
	s.Equal(models.VerdictCritical, critical.Verdict)

	ok := Run(context.Background(), s.config(Options{HeapUsage: true, Warning: "80", Critical: "90"}), fetcher)
	s.Equal(models.VerdictOK, ok.Verdict)
}

// TestNodeListAllFound tests the all-present message with five or fewer
// checked nodes
func (s *CheckTestSuite) TestNodeListAllFound() {
	fetcher := &stubFetcher{machinesBody: machinesPage("node1", "node2")}

	report := Run(context.Background(), s.config(Options{NodeList: "node2,node1"}), fetcher)

	s.Equal(models.VerdictOK, report.Verdict)
	s.Equal("'node1,node2' found in the active machines list on the JobTracker", report.Message)
}

// TestNodeListAllFoundManyNodes tests the count form of the all-present
// message once more than five nodes are checked
func (s *CheckTestSuite) TestNodeListAllFoundManyNodes() {
	nodes := []string{"node1", "node2", "node3", "node4", "node5", "node6"}
	fetcher := &stubFetcher{machinesBody: machinesPage(nodes...)}

	report := Run(context.Background(), s.config(Options{NodeList: strings.Join(nodes, ",")}), fetcher)

	s.Equal(models.VerdictOK, report.Verdict)
	s.Equal("All 6 nodes found in the active machines list on the JobTracker", report.Message)
}

// TestNodeListMissingDefaultCritical tests that any missing node is
// Critical when no thresholds were supplied
func (s *CheckTestSuite) TestNodeListMissingDefaultCritical() {
	fetcher := &stubFetcher{machinesBody: machinesPage("node1")}

	report := Run(context.Background(), s.config(Options{NodeList: "node1,node3"}), fetcher)

	s.Equal(models.VerdictCritical, report.Verdict)
	s.Equal("'node3' not found in the active machines list on the JobTracker", report.Message)
}

// TestNodeListMissingThresholds tests caller-supplied missing-count bounds
func (s *CheckTestSuite) TestNodeListMissingThresholds() {
	fetcher := &stubFetcher{machinesBody: machinesPage("node1")}
	opts := Options{NodeList: "node1,node2,node3", Warning: "1", Critical: "3"}

	report := Run(context.Background(), s.config(opts), fetcher)

	// Two missing: above warning, within critical.
	s.Equal(models.VerdictWarning, report.Verdict)
	s.Equal("'node2,node3' not found in the active machines list on the JobTracker", report.Message)
}

// TestNodeListManyMissing tests the count form of the failure message once
// more than thirty nodes are missing
func (s *CheckTestSuite) TestNodeListManyMissing() {
	var missing []string
	for i := 1; i <= 31; i++ {
		missing = append(missing, fmt.Sprintf("ghost%02d", i))
	}
	fetcher := &stubFetcher{machinesBody: machinesPage("node1")}

	report := Run(context.Background(), s.config(Options{NodeList: strings.Join(missing, ",")}), fetcher)

	s.Equal(models.VerdictCritical, report.Verdict)
	s.Equal("31 nodes not found in the active machines list on the JobTracker", report.Message)
}

// TestConnectionFailureIsCritical tests that transport errors map to
// Critical with the severity keyword prefix
func (s *CheckTestSuite) TestConnectionFailureIsCritical() {
	fetchErr := fmt.Errorf("%w: GET http://jt.example.com:50030/jobtracker.jsp: connection refused",
		jobtracker.ErrConnection)
	fetcher := &stubFetcher{statusErr: fetchErr}

	report := Run(context.Background(), s.config(Options{}), fetcher)

	s.Equal(models.VerdictCritical, report.Verdict)
	s.True(strings.HasPrefix(report.Message, "CRITICAL: "))
}

// TestEmptyBodyIsCritical tests that an empty page maps to Critical in any
// mode
func (s *CheckTestSuite) TestEmptyBodyIsCritical() {
	fetchErr := fmt.Errorf("%w: GET http://jt.example.com:50030/machines.jsp?type=active",
		jobtracker.ErrEmptyResponse)
	fetcher := &stubFetcher{machinesErr: fetchErr}

	report := Run(context.Background(), s.config(Options{NodeList: "node1"}), fetcher)

	s.Equal(models.VerdictCritical, report.Verdict)
	s.True(strings.HasPrefix(report.Message, "CRITICAL: "))
}

// TestStaleParserIsUnknown tests that a page which no longer matches the
// expected layout maps to Unknown, never Critical or OK
func (s *CheckTestSuite) TestStaleParserIsUnknown() {
	fetcher := &stubFetcher{statusBody: "<html><body>layout changed</body></html>"}

	summary := Run(context.Background(), s.config(Options{}), fetcher)
	s.Equal(models.VerdictUnknown, summary.Verdict)
	s.True(strings.HasPrefix(summary.Message, "UNKNOWN: "))

	heap := Run(context.Background(), s.config(Options{HeapUsage: true}), fetcher)
	s.Equal(models.VerdictUnknown, heap.Verdict)
	s.True(strings.HasPrefix(heap.Message, "UNKNOWN: "))
}

// TestVerdictWorse tests severity ordering for the override rule
func (s *CheckTestSuite) TestVerdictWorse() {
	s.Equal(models.VerdictCritical, models.VerdictOK.Worse(models.VerdictCritical))
	s.Equal(models.VerdictCritical, models.VerdictCritical.Worse(models.VerdictWarning))
	s.Equal(models.VerdictWarning, models.VerdictWarning.Worse(models.VerdictOK))
	s.Equal(models.VerdictCritical, models.VerdictCritical.Worse(models.VerdictUnknown))
}

// TestCheckSuite runs the check test suite
func TestCheckSuite(t *testing.T) {
	suite.Run(t, new(CheckTestSuite))
}
