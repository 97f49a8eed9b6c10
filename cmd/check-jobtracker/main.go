package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"jtcheck/pkg/check"
	"jtcheck/pkg/jobtracker"
	"jtcheck/pkg/log"
	"jtcheck/pkg/models"
)

const version = "1.1.0"

const defaultTimeout = 30 * time.Second

var (
	host         string
	port         int
	nodeList     string
	domain       string
	heapUsage    bool
	warning      string
	critical     string
	requireNodes bool
	timeout      time.Duration
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "check-jobtracker -H host [flags] [node...]",
	Short: "Monitoring plugin for the Hadoop JobTracker status pages",
	Long: "Queries a Hadoop JobTracker's web status pages and reports cluster\n" +
		"summary figures, heap usage or the presence of named nodes, following\n" +
		"the monitoring plugin convention (one line on stdout, exit code\n" +
		"0/1/2/3 for OK/Warning/Critical/Unknown).",
	Version:       version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetDebugMode()
		}

		startWatchdog(timeout)

		cfg, err := check.NewConfig(check.Options{
			Host:         host,
			Port:         port,
			NodeList:     nodeList,
			ExtraNodes:   args,
			Domain:       domain,
			HeapUsage:    heapUsage,
			Warning:      warning,
			Critical:     critical,
			RequireNodes: requireNodes || nodesRequiredByName(),
			Timeout:      timeout,
		})
		if err != nil {
			exitWith(models.VerdictUnknown, "UNKNOWN: "+err.Error())
		}

		client := jobtracker.NewClient(cfg.Host, cfg.Port, cfg.Timeout)
		report := check.Run(cmd.Context(), cfg, client)

		exitWith(report.Verdict, report.Message)
	},
}

func main() {
	flags := rootCmd.Flags()
	flags.StringVarP(&host, "host", "H", "", "JobTracker host (required)")
	flags.IntVarP(&port, "port", "p", jobtracker.DefaultPort, "JobTracker status port")
	flags.StringVarP(&nodeList, "nodes", "n", "", "Comma or whitespace separated node names to verify on the active machines page")
	flags.StringVar(&domain, "domain", "", "Domain suffix nodes may carry on the active machines page")
	flags.BoolVar(&heapUsage, "heap-usage", false, "Check JobTracker heap usage instead of the cluster summary")
	flags.StringVarP(&warning, "warning", "w", "", "Warning threshold (bound or low:high range; meaning depends on the check mode)")
	flags.StringVarP(&critical, "critical", "c", "", "Critical threshold (bound or low:high range; meaning depends on the check mode)")
	flags.BoolVar(&requireNodes, "require-nodes", false, "Fail with a usage error when no node list is given")
	flags.DurationVarP(&timeout, "timeout", "t", defaultTimeout, "Overall wall-clock timeout for the whole run")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	if err := rootCmd.Execute(); err != nil {
		exitWith(models.VerdictUnknown, "UNKNOWN: "+err.Error())
	}
}

// exitWith prints the single plugin line on stdout and terminates with the
// verdict's exit status.
func exitWith(verdict models.Verdict, line string) {
	fmt.Println(line)
	os.Exit(verdict.ExitCode())
}

// startWatchdog aborts the entire process, not just the fetch, when the run
// exceeds the wall-clock timeout.
func startWatchdog(d time.Duration) {
	time.AfterFunc(d, func() {
		exitWith(models.VerdictUnknown, fmt.Sprintf("UNKNOWN: check timed out after %s", d))
	})
}

// nodesRequiredByName mirrors the legacy nodes-only invocation: installed
// under a name containing "nodes" the plugin refuses to run without a node
// list.
func nodesRequiredByName() bool {
	return strings.Contains(filepath.Base(os.Args[0]), "nodes")
}
