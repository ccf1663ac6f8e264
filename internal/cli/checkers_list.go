package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ifcore/internal/checker"
	"ifcore/internal/engine"
	"ifcore/internal/runlog"
)

var checkersListQuiet bool
var checkersCmd = &cobra.Command{
	Use:   "checkers",
	Short: "Manage and list compliance checkers",
	Long: `Manage IFCore compliance checkers.

This command group helps you discover which checker sources a checkers
directory binds and which check functions this build provides.

Examples:
  # List discovered checker sources
  ifcore checkers list

  # List the check functions compiled into this build
  ifcore checkers builtins
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var checkersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered checker sources",
	Long: `List the checker sources discovered in the checkers directory.

Sources are sorted by file name, the order they execute in. Sources that
fail to load are reported on stderr and skipped, exactly as during a run.

Examples:
  ifcore checkers list
  ifcore checkers list --checkers-dir ./my-checkers
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := runlog.New()
		regs, err := engine.Discover(checkersListDir, log)
		if err != nil {
			return err
		}

		for _, reg := range regs {
			if checkersListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), reg.Source)
			} else {
				printRegistration(cmd.OutOrStdout(), reg)
			}
		}
		if !checkersListQuiet {
			for _, line := range log.Lines() {
				fmt.Fprintln(cmd.ErrOrStderr(), line)
			}
		}
		return nil
	},
}

var checkersBuiltinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List the check functions compiled into this build",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range checker.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func printRegistration(w io.Writer, reg engine.Registration) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "CHECKER: %s\n", reg.Source)
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, reg.Name)
	if reg.Description != "" {
		fmt.Fprintln(w, reg.Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Entry points:")
	for _, entry := range reg.EntryPoints {
		fmt.Fprintf(w, "  %s\n", entry)
	}

	if len(reg.Defaults) > 0 {
		keys := make([]string, 0, len(reg.Defaults))
		for k := range reg.Defaults {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Default parameters:")
		for _, k := range keys {
			fmt.Fprintf(w, "  %s = %s\n", k, reg.Defaults[k])
		}
	}
	fmt.Fprintln(w)
}

var checkersListDir string

func init() {
	rootCmd.AddCommand(checkersCmd)
	checkersCmd.AddCommand(checkersListCmd)
	checkersListCmd.Flags().BoolVarP(&checkersListQuiet, "quiet", "q", false, "Only print source file names")
	checkersListCmd.Flags().StringVar(&checkersListDir, "checkers-dir", "./checkers", "Directory scanned for checker manifests")
	checkersCmd.AddCommand(checkersBuiltinsCmd)
}
