// Package threshold implements the monitoring-plugin threshold
// mini-language: a simple bound or an inclusive "low:high" range, with a
// polarity deciding which side of a bare bound alerts.
package threshold

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind distinguishes the three threshold shapes.
type Kind int

const (
	// KindLower alerts when the value falls below the bound.
	KindLower Kind = iota
	// KindUpper alerts when the value exceeds the bound.
	KindUpper
	// KindRange alerts when the value falls outside the inclusive range.
	KindRange
)

// Polarity selects the alerting side for a bare bound. It is assigned once
// per check mode: node-count checks alert below, missing-node and
// heap-percentage checks alert above.
type Polarity int

const (
	AlertBelow Polarity = iota
	AlertAbove
)

// Threshold is one parsed warning or critical specification.
type Threshold struct {
	Kind  Kind
	Lower float64
	Upper float64

	raw string
}

// Parse converts a threshold string into a Threshold. A bare number becomes
// a lower or upper bound depending on pol; "low:high" becomes a range, and
// the one-sided forms "low:" and ":high" keep their stated side regardless
// of polarity.
func Parse(spec string, pol Polarity) (*Threshold, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("%w: empty threshold", ErrInvalidThreshold)
	}

	t := &Threshold{raw: spec}

	if !strings.Contains(spec, ":") {
		bound, err := strconv.ParseFloat(spec, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidThreshold, spec)
		}
		if pol == AlertBelow {
			t.Kind = KindLower
			t.Lower = bound
		} else {
			t.Kind = KindUpper
			t.Upper = bound
		}
		return t, nil
	}

	const rangeParts = 2
	parts := strings.SplitN(spec, ":", rangeParts)
	low, high := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	switch {
	case low != "" && high != "":
		lower, err := strconv.ParseFloat(low, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidThreshold, spec)
		}
		upper, err := strconv.ParseFloat(high, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidThreshold, spec)
		}
		if lower > upper {
			return nil, fmt.Errorf("%w: range %q is inverted", ErrInvalidThreshold, spec)
		}
		t.Kind = KindRange
		t.Lower = lower
		t.Upper = upper
	case low != "":
		lower, err := strconv.ParseFloat(low, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidThreshold, spec)
		}
		t.Kind = KindLower
		t.Lower = lower
	case high != "":
		upper, err := strconv.ParseFloat(high, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidThreshold, spec)
		}
		t.Kind = KindUpper
		t.Upper = upper
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidThreshold, spec)
	}

	return t, nil
}

// Breached reports whether the value violates the threshold.
func (t *Threshold) Breached(value float64) bool {
	switch t.Kind {
	case KindLower:
		return value < t.Lower
	case KindUpper:
		return value > t.Upper
	default:
		return value < t.Lower || value > t.Upper
	}
}

// NonNegative reports whether every stated bound is >= 0.
func (t *Threshold) NonNegative() bool {
	switch t.Kind {
	case KindLower:
		return t.Lower >= 0
	case KindUpper:
		return t.Upper >= 0
	default:
		return t.Lower >= 0 && t.Upper >= 0
	}
}

// Integral reports whether every stated bound is a whole number.
func (t *Threshold) Integral() bool {
	switch t.Kind {
	case KindLower:
		return t.Lower == math.Trunc(t.Lower)
	case KindUpper:
		return t.Upper == math.Trunc(t.Upper)
	default:
		return t.Lower == math.Trunc(t.Lower) && t.Upper == math.Trunc(t.Upper)
	}
}

// String returns the threshold as given, for perfdata slots.
func (t *Threshold) String() string {
	return t.raw
}
