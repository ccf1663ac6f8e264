package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ifcore/internal/config"
	"ifcore/internal/engine"
	"ifcore/internal/model"
	"ifcore/internal/output"
	"ifcore/internal/store"
)

var cfg = config.New()

var checkCmd = &cobra.Command{
	Use:   "check <model.ifc>",
	Short: "Run all discovered compliance checkers against an IFC model",
	Long: `Run every discovered compliance checker against an IFC model and report
the aggregated findings.

Discovery:
	Checker sources are manifest files named checker_*.yaml inside the
	checkers directory (--checkers-dir). The template manifest
	(checker_template.yaml) is always excluded. A source that fails to load
	is logged and skipped; it never aborts the run.

Parameters:
	Checker thresholds come from each manifest's params block and can be
	overridden per run with repeated --set key=value flags. Checkers ignore
	parameters they do not recognize.

Output:
	Console output is controlled by --console-format (default: text).
	Structured output can be written to a file via --out / --out-format
	(json aggregate or ndjson event stream). --no-console suppresses the
	console sink for machine-readable pipelines. --archive appends the full
	run report to a local run archive readable via "ifcore runs".

Exit codes:
	0 = clean run, no failed findings
	1 = at least one finding failed
	2 = partial failure (some checkers errored)
	3 = fatal error (run did not complete)

Examples:
  # Run all checkers with defaults
  ifcore check building.ifc

  # Only door checkers, stricter width, machine-readable stream
  ifcore check building.ifc --filter doors --set min_width_m=0.9 --no-console --out results.ndjson
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runCheck(args[0]))
	},
}

func runCheck(modelPath string) int {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}
	params, err := config.ParseParamAssignments(cfg.Params.Set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}

	if !cfg.Output.NoConsole {
		fmt.Fprintf(os.Stderr, "Loading IFC model: %s\n", modelPath)
	}
	m, err := model.Load(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}
	if !cfg.Output.NoConsole {
		fmt.Fprintf(os.Stderr, "  Schema: %s\n  Total entities: %d\n", m.Schema(), m.EntityCount())
	}

	eng := engine.New(engine.Options{
		Concurrency:     cfg.Runtime.Concurrency,
		RequireCheckers: cfg.Discovery.RequireCheckers,
	})
	regs, err := eng.Discover(cfg.Discovery.CheckersDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}
	if !cfg.Output.NoConsole {
		fmt.Fprintf(os.Stderr, "Discovered %d checker source(s).\n", len(regs))
	}

	report, err := eng.Run(context.Background(), m, params, cfg.Discovery.Filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output sinks: %v\n", err)
		return 3
	}

	code := exitCodeForReport(report)
	_ = outMgr.Write(output.Event{Type: "run.started", Checkers: report.Summary.TotalCheckers})
	for _, r := range report.Results {
		_ = outMgr.Write(r)
	}
	_ = outMgr.Write(output.Event{Type: "run.finished", Results: report.Summary.TotalResults, ExitCode: code})
	if err := outMgr.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing output sinks: %v\n", err)
	}

	if cfg.Runtime.Verbose {
		for _, line := range report.Log {
			fmt.Fprintln(os.Stderr, line)
		}
	}
	if !cfg.Output.NoConsole && cfg.Output.ConsoleFormat == "text" {
		fmt.Print(engine.FormatSummary(report))
	}

	if cfg.Output.Archive != "" {
		if err := archiveReport(cfg.Output.Archive, modelPath, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error archiving run: %v\n", err)
		}
	}

	return code
}

// exitCodeForReport maps a finished report to the exit code contract:
// 3 is reserved for fatal errors before a report exists.
func exitCodeForReport(report *engine.RunReport) int {
	if report.Summary.FailedCheckers > 0 {
		return 2
	}
	if len(engine.Filter(report.Results, "fail", "")) > 0 {
		return 1
	}
	return 0
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterStatus)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

func archiveReport(path, modelPath string, report *engine.RunReport) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	id, err := st.Save(modelPath, report)
	if err != nil {
		return err
	}
	if !cfg.Output.NoConsole {
		fmt.Fprintf(os.Stderr, "Archived run %s to %s\n", id, path)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&cfg.Discovery.CheckersDir, "checkers-dir", "t", "./checkers", "Directory scanned for checker manifests")
	checkCmd.Flags().StringVarP(&cfg.Discovery.Filter, "filter", "f", "", "Only run checker sources whose file name contains this substring (case-insensitive)")
	checkCmd.Flags().BoolVar(&cfg.Discovery.RequireCheckers, "require-checkers", false, "Fail if discovery finds no checkers")
	checkCmd.Flags().StringArrayVar(&cfg.Params.Set, "set", nil, "Parameter override key=value forwarded to every checker (repeatable)")
	checkCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, "console-format", "text", "Console output format: text, json, ndjson")
	checkCmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterStatus, "console-filter-status", nil, "Only print results with these statuses (pass, fail, warning, blocked, log)")
	checkCmd.Flags().StringVarP(&cfg.Output.Out, "out", "o", "", "Write structured output to this file")
	checkCmd.Flags().StringVar(&cfg.Output.OutFormat, "out-format", "", "Format for --out: json or ndjson (default: inferred from extension)")
	checkCmd.Flags().BoolVar(&cfg.Output.NoConsole, "no-console", false, "Suppress the console sink")
	checkCmd.Flags().StringVar(&cfg.Output.Archive, "archive", "", "Append the run report to this bbolt run archive")
	checkCmd.Flags().IntVar(&cfg.Runtime.Concurrency, "concurrency", 1, "Parallel checker invocations (1 = strictly sequential; order is preserved either way)")
}
