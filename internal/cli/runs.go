package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ifcore/internal/engine"
	"ifcore/internal/store"
)

var runsArchivePath string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect archived runs",
	Long: `Inspect runs previously archived with "ifcore check --archive".

Examples:
  ifcore runs list --archive runs.db
  ifcore runs show 20260825T101500.000000000Z --archive runs.db
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(runsArchivePath)
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.List()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No archived runs.")
			return nil
		}
		for _, r := range runs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  checkers=%d failed=%d results=%d\n",
				r.ID, r.Model, r.TotalCheckers, r.FailedCheckers, r.TotalResults)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one archived run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(runsArchivePath)
		if err != nil {
			return err
		}
		defer st.Close()

		run, err := st.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Run:     %s\nCreated: %s\nModel:   %s\n\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05 MST"), run.Model)
		fmt.Fprint(cmd.OutOrStdout(), engine.FormatSummary(&run.Report))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.PersistentFlags().StringVar(&runsArchivePath, "archive", "./runs.db", "Path of the bbolt run archive")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
}
