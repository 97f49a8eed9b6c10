package check

import (
	"jtcheck/pkg/models"
	"jtcheck/pkg/threshold"
)

// evaluateThresholds applies warning/critical thresholds to a metric,
// critical first. Absent thresholds never fire.
func evaluateThresholds(value float64, warn, crit *threshold.Threshold) models.Verdict {
	if crit != nil && crit.Breached(value) {
		return models.VerdictCritical
	}
	if warn != nil && warn.Breached(value) {
		return models.VerdictWarning
	}
	return models.VerdictOK
}

// evaluateNodeReport judges the missing-node count. Without caller
// thresholds any missing node is Critical.
func evaluateNodeReport(report *models.NodeReport, warn, crit *threshold.Threshold) models.Verdict {
	if warn == nil && crit == nil {
		if report.MissingCount() > 0 {
			return models.VerdictCritical
		}
		return models.VerdictOK
	}
	return evaluateThresholds(float64(report.MissingCount()), warn, crit)
}

// evaluateClusterStats judges the available-node count, then applies the
// blacklist hard override: any blacklisted node forces Critical regardless
// of the configured thresholds.
func evaluateClusterStats(stats *models.ClusterStats, warn, crit *threshold.Threshold) models.Verdict {
	verdict := evaluateThresholds(float64(stats.Nodes), warn, crit)
	if stats.BlacklistedNodes > 0 {
		verdict = verdict.Worse(models.VerdictCritical)
	}
	return verdict
}

// evaluateHeapStats judges the heap usage percentage against optional
// upper bounds.
func evaluateHeapStats(stats *models.HeapStats, warn, crit *threshold.Threshold) models.Verdict {
	return evaluateThresholds(stats.UsedPct, warn, crit)
}
