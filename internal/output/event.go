package output

import "ifcore/internal/engine"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit one JSON object per line with a "type" field:
// - run.started
// - checker.result
// - run.finished
//
// JSON mode remains an aggregate array of annotated results.
type Event struct {
	Type string `json:"type"`
	*engine.AnnotatedResult
	Checkers int `json:"checkers,omitempty"`
	Results  int `json:"results,omitempty"`
	ExitCode int `json:"exit_code,omitempty"`
}

func eventFromResult(r engine.AnnotatedResult) Event {
	return Event{Type: "checker.result", AnnotatedResult: &r}
}
