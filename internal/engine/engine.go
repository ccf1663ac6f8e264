// Package engine discovers checker sources, executes their entry points
// against a building model, validates every returned record, and aggregates
// the outcome into a single run report.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ifcore/internal/checker"
	"ifcore/internal/model"
	"ifcore/internal/runlog"
)

// Precondition errors indicate caller misuse and are returned directly from
// Run. Faults inside a checker never surface this way; they are contained and
// reported through the summary and log.
var (
	ErrNotDiscovered = errors.New("no discovery pass has run; call Discover first")
	ErrNilModel      = errors.New("model handle must not be nil")
	ErrNoCheckers    = errors.New("no checkers discovered")
)

type Options struct {
	// Concurrency bounds parallel entry-point invocation. Values <= 1 run
	// strictly sequentially. Final result order, log order, and per-call
	// isolation are identical either way.
	Concurrency int

	// RequireCheckers turns an empty discovery result into an error.
	RequireCheckers bool
}

// Engine orchestrates discovery and execution. Registration state is replaced
// wholesale by each Discover call.
type Engine struct {
	opts       Options
	log        *runlog.Log
	regs       []Registration
	discovered bool
}

func New(opts Options) *Engine {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Engine{opts: opts, log: runlog.New()}
}

// Log exposes the accumulated execution log.
func (e *Engine) Log() *runlog.Log { return e.log }

// Discover scans dir and replaces any previous registration state.
func (e *Engine) Discover(dir string) ([]Registration, error) {
	regs, err := Discover(dir, e.log)
	if err != nil {
		return nil, err
	}
	if e.opts.RequireCheckers && len(regs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCheckers, dir)
	}
	e.regs = regs
	e.discovered = true
	return e.Registrations(), nil
}

// Registrations returns the current registration set in execution order.
func (e *Engine) Registrations() []Registration {
	out := append([]Registration(nil), e.regs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// invocation is one planned entry-point call.
type invocation struct {
	reg   Registration
	entry string
}

// callOutcome carries everything one call produced, so outcomes can be
// aggregated in planned order regardless of how calls were scheduled.
type callOutcome struct {
	detail   CheckerDetail
	results  []AnnotatedResult
	logLines []string
}

// Run invokes every discovered entry point against the model and aggregates
// the results into a RunReport.
//
// Order is deterministic: sources sorted lexicographically, entry points in
// manifest order. filter, when non-empty, restricts execution to sources
// whose identifier contains it case-insensitively; the filter applies before
// invocation and filtered-out calls do not count toward the summary. The
// parameter bag is forwarded to every call on top of the source's manifest
// defaults. Run only returns an error for caller misuse; checker faults are
// contained per call.
func (e *Engine) Run(ctx context.Context, m *model.Model, params checker.Params, filter string) (*RunReport, error) {
	if !e.discovered {
		return nil, ErrNotDiscovered
	}
	if m == nil {
		return nil, ErrNilModel
	}

	calls := e.plan(filter)
	e.log.Infof("orchestrator execution start: %d checker call(s)", len(calls))

	outcomes := make([]callOutcome, len(calls))
	if e.opts.Concurrency > 1 && len(calls) > 1 {
		var g errgroup.Group
		g.SetLimit(e.opts.Concurrency)
		for i, call := range calls {
			i, call := i, call
			g.Go(func() error {
				outcomes[i] = e.invoke(ctx, call, m, params)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, call := range calls {
			outcomes[i] = e.invoke(ctx, call, m, params)
		}
	}

	// Single deterministic aggregation pass in planned order: no result is
	// reordered or deduplicated, and per-call log lines are stitched back in
	// the same order.
	report := &RunReport{}
	summary := ExecutionSummary{TotalCheckers: len(calls)}
	for _, oc := range outcomes {
		e.log.Append(oc.logLines...)
		if oc.detail.Status == OutcomeSuccess {
			summary.SuccessfulCheckers++
		} else {
			summary.FailedCheckers++
		}
		report.Results = append(report.Results, oc.results...)
		summary.CheckerDetails = append(summary.CheckerDetails, oc.detail)
	}
	summary.TotalResults = len(report.Results)

	e.log.Infof("orchestrator execution complete: %d/%d checker(s) succeeded, %d result(s) collected",
		summary.SuccessfulCheckers, summary.TotalCheckers, summary.TotalResults)

	report.Summary = summary
	report.Log = e.log.Lines()
	return report, nil
}

func (e *Engine) plan(filter string) []invocation {
	var calls []invocation
	for _, reg := range e.Registrations() {
		if filter != "" && !strings.Contains(strings.ToLower(reg.Source), strings.ToLower(filter)) {
			continue
		}
		for _, entry := range reg.EntryPoints {
			calls = append(calls, invocation{reg: reg, entry: entry})
		}
	}
	return calls
}

// invoke runs one planned call with full isolation: a returned error, a
// panic, or a contract violation marks this call failed and contributes
// nothing, without affecting any other call.
func (e *Engine) invoke(ctx context.Context, call invocation, m *model.Model, params checker.Params) callOutcome {
	callLog := runlog.New()
	full := call.reg.Source + "::" + call.entry
	callLog.Infof("running %s", full)

	results, err := safeCall(ctx, call.entry, m, call.reg.Defaults.Merge(params))
	if err == nil {
		if verr := checker.ValidateAll(results); verr != nil {
			err = fmt.Errorf("result contract violation: %w", verr)
		}
	}
	if err != nil {
		callLog.Errorf("%s: %v", full, err)
		return callOutcome{
			detail:   CheckerDetail{Checker: full, Status: OutcomeFailed, Error: checker.Str(err.Error())},
			logLines: callLog.Lines(),
		}
	}

	if len(results) == 0 {
		callLog.Warnf("%s: no results returned", full)
	} else {
		callLog.Infof("%s: %d result(s)", full, len(results))
	}

	annotated := make([]AnnotatedResult, 0, len(results))
	for _, r := range results {
		annotated = append(annotated, AnnotatedResult{
			Result:      r,
			CheckerFile: call.reg.Source,
			CheckerName: call.entry,
		})
	}
	return callOutcome{
		detail:   CheckerDetail{Checker: full, Status: OutcomeSuccess, ResultCount: len(results)},
		results:  annotated,
		logLines: callLog.Lines(),
	}
}

// safeCall executes one entry point, converting panics into plain errors.
func safeCall(ctx context.Context, entry string, m *model.Model, params checker.Params) (results []checker.Result, err error) {
	fn, ok := checker.Lookup(entry)
	if !ok {
		return nil, fmt.Errorf("entry point %q is not registered", entry)
	}
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, m, params)
}
