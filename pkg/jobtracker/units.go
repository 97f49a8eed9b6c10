package jobtracker

import (
	"fmt"
	"strings"
)

// Unit multipliers use the 1024 base: the JobTracker prints "KB"/"MB"/"GB"
// meaning binary units, so the decimal expansion a generic parser would
// apply ("GB" = 10^9) would skew the reported byte counts.
const (
	bytesPerKB = 1 << 10
	bytesPerMB = 1 << 20
	bytesPerGB = 1 << 30
	bytesPerTB = 1 << 40
	bytesPerPB = 1 << 50
)

// UnitBytes expands a value with a size unit into a byte count.
func UnitBytes(value float64, unit string) (uint64, error) {
	if value < 0 {
		return 0, fmt.Errorf("%w: negative size %.2f %s", ErrUnknownUnit, value, unit)
	}

	var multiplier float64
	switch strings.ToUpper(unit) {
	case "B":
		multiplier = 1
	case "KB":
		multiplier = bytesPerKB
	case "MB":
		multiplier = bytesPerMB
	case "GB":
		multiplier = bytesPerGB
	case "TB":
		multiplier = bytesPerTB
	case "PB":
		multiplier = bytesPerPB
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}

	return uint64(value * multiplier), nil
}
