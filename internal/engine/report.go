package engine

import "ifcore/internal/checker"

// AnnotatedResult is a validated checker.Result plus the provenance the
// aggregator attaches: which source and entry point produced it. The wrapped
// result is never modified.
type AnnotatedResult struct {
	checker.Result
	CheckerFile string `json:"_checker_file"`
	CheckerName string `json:"_checker_name"`
}

// Per-call outcome tags recorded in CheckerDetail.Status.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// CheckerDetail records how one entry-point invocation went.
type CheckerDetail struct {
	// Checker identifies the invocation as "source::entry_point".
	Checker     string  `json:"checker"`
	Status      string  `json:"status"`
	ResultCount int     `json:"result_count"`
	Error       *string `json:"error,omitempty"`
}

// ExecutionSummary holds run-level statistics. It is built once per run and
// not modified afterwards.
type ExecutionSummary struct {
	TotalCheckers      int             `json:"total_checkers"`
	SuccessfulCheckers int             `json:"successful_checkers"`
	FailedCheckers     int             `json:"failed_checkers"`
	TotalResults       int             `json:"total_results"`
	CheckerDetails     []CheckerDetail `json:"checker_details"`
}

// RunReport is the sole product of a run: all annotated results in execution
// order, the summary, and the execution log. The engine keeps no reference to
// a report after returning it.
type RunReport struct {
	Results []AnnotatedResult `json:"results"`
	Summary ExecutionSummary  `json:"summary"`
	Log     []string          `json:"log"`
}
