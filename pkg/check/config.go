// Package check wires the probe pipeline: mode selection, page fetch,
// extraction, threshold evaluation and report formatting.
package check

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"jtcheck/pkg/models"
	"jtcheck/pkg/threshold"
)

// Options is the raw invocation surface as the CLI collected it.
type Options struct {
	Host         string
	Port         int
	NodeList     string   // comma/whitespace separated
	ExtraNodes   []string // trailing positional arguments
	Domain       string
	HeapUsage    bool
	Warning      string
	Critical     string
	RequireNodes bool
	Timeout      time.Duration
}

// Config is the validated, immutable run configuration. It is built once
// and passed explicitly to every component.
type Config struct {
	Host    string
	Port    int
	Mode    models.CheckMode
	Nodes   []string // de-duplicated, empty unless Mode is ModeNodeList
	Domain  string
	Warn    *threshold.Threshold // nil when the caller supplied none
	Crit    *threshold.Threshold
	Timeout time.Duration
}

// NewConfig validates the options, selects the single active check mode and
// parses the thresholds with the mode's polarity.
func NewConfig(opts Options) (*Config, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrUsage)
	}

	nodes := mergeNodes(opts.NodeList, opts.ExtraNodes)
	nodeListGiven := strings.TrimSpace(opts.NodeList) != "" || len(opts.ExtraNodes) > 0

	if nodeListGiven && opts.HeapUsage {
		return nil, fmt.Errorf("%w: node list and heap usage checks are mutually exclusive", ErrUsage)
	}
	if opts.RequireNodes && !nodeListGiven {
		return nil, fmt.Errorf("%w: a node list is required", ErrUsage)
	}
	if nodeListGiven && len(nodes) == 0 {
		return nil, fmt.Errorf("%w: node list is empty", ErrUsage)
	}

	mode := models.ModeClusterSummary
	switch {
	case nodeListGiven:
		mode = models.ModeNodeList
	case opts.HeapUsage:
		mode = models.ModeHeapUsage
	}

	port := opts.Port
	if port <= 0 {
		return nil, fmt.Errorf("%w: invalid port %d", ErrUsage, opts.Port)
	}

	warn, crit, err := parseThresholds(mode, opts.Warning, opts.Critical)
	if err != nil {
		return nil, err
	}

	return &Config{
		Host:    opts.Host,
		Port:    port,
		Mode:    mode,
		Nodes:   nodes,
		Domain:  opts.Domain,
		Warn:    warn,
		Crit:    crit,
		Timeout: opts.Timeout,
	}, nil
}

// parseThresholds applies the mode's polarity and defaulting rules: node
// counts alert below a lower bound (absent bounds default to 0, which never
// fires); missing-node and heap-percentage checks alert above an upper
// bound and absent bounds stay absent.
func parseThresholds(mode models.CheckMode, warning, critical string) (*threshold.Threshold, *threshold.Threshold, error) {
	polarity := threshold.AlertAbove
	if mode == models.ModeClusterSummary {
		polarity = threshold.AlertBelow
		if warning == "" {
			warning = "0"
		}
		if critical == "" {
			critical = "0"
		}
	}

	warn, err := parseThreshold(mode, "warning", warning, polarity)
	if err != nil {
		return nil, nil, err
	}
	crit, err := parseThreshold(mode, "critical", critical, polarity)
	if err != nil {
		return nil, nil, err
	}

	return warn, crit, nil
}

func parseThreshold(mode models.CheckMode, name, spec string, polarity threshold.Polarity) (*threshold.Threshold, error) {
	if spec == "" {
		return nil, nil
	}

	t, err := threshold.Parse(spec, polarity)
	if err != nil {
		return nil, fmt.Errorf("%w: %s threshold: %w", ErrUsage, name, err)
	}
	if !t.NonNegative() {
		return nil, fmt.Errorf("%w: %s threshold %q must be non-negative", ErrUsage, name, spec)
	}
	if mode == models.ModeNodeList && !t.Integral() {
		return nil, fmt.Errorf("%w: %s threshold %q must be a whole node count", ErrUsage, name, spec)
	}

	return t, nil
}

// mergeNodes joins the -n list and the trailing arguments, splits on commas
// and whitespace and drops duplicates while preserving first-seen order.
func mergeNodes(nodeList string, extra []string) []string {
	raw := append([]string{nodeList}, extra...)

	seen := make(map[string]struct{})
	var nodes []string
	for _, chunk := range raw {
		for _, node := range splitNodes(chunk) {
			if _, ok := seen[node]; ok {
				continue
			}
			seen[node] = struct{}{}
			nodes = append(nodes, node)
		}
	}

	return nodes
}

func splitNodes(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
