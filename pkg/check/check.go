package check

import (
	"context"
	"errors"

	"jtcheck/pkg/jobtracker"
	"jtcheck/pkg/log"
	"jtcheck/pkg/models"
)

// Fetcher retrieves JobTracker status pages.
type Fetcher interface {
	StatusPage(ctx context.Context) (string, error)
	ActiveMachinesPage(ctx context.Context) (string, error)
}

// Run executes the configured check: fetch the mode's page, extract its
// fields, evaluate thresholds and format the report. Every failure is
// terminal; there is no retry and no partial result.
func Run(ctx context.Context, cfg *Config, fetcher Fetcher) *Report {
	log.Debug().
		Str("mode", cfg.Mode.String()).
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("Running check")

	switch cfg.Mode {
	case models.ModeNodeList:
		return runNodeList(ctx, cfg, fetcher)
	case models.ModeHeapUsage:
		return runHeapUsage(ctx, cfg, fetcher)
	default:
		return runClusterSummary(ctx, cfg, fetcher)
	}
}

func runNodeList(ctx context.Context, cfg *Config, fetcher Fetcher) *Report {
	body, err := fetcher.ActiveMachinesPage(ctx)
	if err != nil {
		return failureReport(err)
	}

	report := jobtracker.CheckNodes(body, cfg.Nodes, cfg.Domain)
	verdict := evaluateNodeReport(report, cfg.Warn, cfg.Crit)

	return &Report{Verdict: verdict, Message: nodeReportLine(report)}
}

func runHeapUsage(ctx context.Context, cfg *Config, fetcher Fetcher) *Report {
	body, err := fetcher.StatusPage(ctx)
	if err != nil {
		return failureReport(err)
	}

	stats, err := jobtracker.ParseHeap(body)
	if err != nil {
		return failureReport(err)
	}

	verdict := evaluateHeapStats(stats, cfg.Warn, cfg.Crit)

	return &Report{Verdict: verdict, Message: heapLine(stats, cfg.Warn, cfg.Crit)}
}

func runClusterSummary(ctx context.Context, cfg *Config, fetcher Fetcher) *Report {
	body, err := fetcher.StatusPage(ctx)
	if err != nil {
		return failureReport(err)
	}

	stats, err := jobtracker.ParseClusterSummary(body)
	if err != nil {
		return failureReport(err)
	}

	verdict := evaluateClusterStats(stats, cfg.Warn, cfg.Crit)

	return &Report{Verdict: verdict, Message: clusterLine(stats, cfg.Warn, cfg.Crit)}
}

// failureReport maps a pipeline error to its severity: a page that no
// longer matches the expected layout is Unknown (stale parser), everything
// else on the network path is Critical.
func failureReport(err error) *Report {
	verdict := models.VerdictCritical
	if errors.Is(err, jobtracker.ErrFieldMissing) {
		verdict = models.VerdictUnknown
	}

	log.Error().Err(err).Str("verdict", verdict.String()).Msg("Check failed")

	return &Report{Verdict: verdict, Message: failureLine(verdict, err)}
}
