package cli

import (
	"testing"

	"ifcore/internal/checker"
	"ifcore/internal/engine"
)

func reportWith(failedCheckers int, statuses ...checker.Status) *engine.RunReport {
	report := &engine.RunReport{
		Summary: engine.ExecutionSummary{FailedCheckers: failedCheckers},
	}
	for i, status := range statuses {
		report.Results = append(report.Results, engine.AnnotatedResult{
			Result: checker.NewResult("IfcDoor", "Door", status, "a", "r"),
		})
		report.Summary.TotalResults = i + 1
	}
	return report
}

func TestExitCodeForReport(t *testing.T) {
	cases := []struct {
		name   string
		report *engine.RunReport
		want   int
	}{
		{"clean run", reportWith(0, checker.StatusPass, checker.StatusLog), 0},
		{"no results", reportWith(0), 0},
		{"failed finding", reportWith(0, checker.StatusPass, checker.StatusFail), 1},
		{"warnings only", reportWith(0, checker.StatusWarning), 0},
		{"failed checker wins", reportWith(1, checker.StatusFail), 2},
		{"failed checker without findings", reportWith(2), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCodeForReport(tc.report); got != tc.want {
				t.Errorf("exit code = %d, want %d", got, tc.want)
			}
		})
	}
}
