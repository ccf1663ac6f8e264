package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ifcore",
	Short: "Audit IFC building models against building-code compliance checkers",
	Long: `IFCore discovers compliance checkers, runs them against an IFC building
model, and aggregates their findings into one report.

Checkers are bound through manifest files (checker_*.yaml) in a checkers
directory; each manifest names the check functions compiled into this build
that it enables, together with their default thresholds.

Examples:
	# Show available commands and global flags
	ifcore --help

	# Run every discovered checker against a model
	ifcore check building.ifc

	# List the checkers this build provides
	ifcore checkers list

	# Print build info
	ifcore version

Output:
	By default, commands write human-readable output to stdout.
	The check command supports structured output (see "ifcore check --help").`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Print the full execution log after the run")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
