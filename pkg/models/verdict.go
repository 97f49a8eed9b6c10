package models

// Verdict is the four-level outcome of a check, ordered by severity.
// The numeric value doubles as the process exit code per the monitoring
// plugin convention.
type Verdict int

const (
	VerdictOK Verdict = iota
	VerdictWarning
	VerdictCritical
	VerdictUnknown
)

// String returns the conventional severity keyword.
func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "OK"
	case VerdictWarning:
		return "WARNING"
	case VerdictCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the process exit status for the verdict.
func (v Verdict) ExitCode() int {
	return int(v)
}

// Worse returns the more severe of the two verdicts. Unknown is not a
// severity and never wins against a real threshold outcome.
func (v Verdict) Worse(other Verdict) Verdict {
	if other == VerdictUnknown {
		return v
	}
	if v == VerdictUnknown || other > v {
		return other
	}
	return v
}
