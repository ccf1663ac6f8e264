package engine

import (
	"fmt"
	"sort"
	"strings"

	"ifcore/internal/checker"
)

// Filter returns the results matching the given status and element type.
// Either predicate may be empty, in which case it does not restrict; when
// both are set the intersection is returned. Relative order is preserved and
// the input is never modified.
func Filter(results []AnnotatedResult, status checker.Status, elementType string) []AnnotatedResult {
	if status == "" && elementType == "" {
		return results
	}
	var out []AnnotatedResult
	for _, r := range results {
		if status != "" && r.CheckStatus != status {
			continue
		}
		if elementType != "" && r.ElementType != elementType {
			continue
		}
		out = append(out, r)
	}
	return out
}

// GroupByStatus counts results per status. Only statuses actually present in
// the input appear in the map; absent statuses are omitted, not zero-filled.
func GroupByStatus(results []AnnotatedResult) map[checker.Status]int {
	out := make(map[checker.Status]int)
	for _, r := range results {
		out[r.CheckStatus]++
	}
	return out
}

// FormatSummary renders a run report's summary for humans. Purely
// presentational; the report is not touched.
func FormatSummary(report *RunReport) string {
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "IFCORE ORCHESTRATOR - EXECUTION SUMMARY")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Checkers discovered: %d\n", report.Summary.TotalCheckers)
	fmt.Fprintf(&b, "Checkers successful: %d\n", report.Summary.SuccessfulCheckers)
	fmt.Fprintf(&b, "Checkers failed:     %d\n", report.Summary.FailedCheckers)
	fmt.Fprintf(&b, "Total results:       %d\n", report.Summary.TotalResults)

	byStatus := GroupByStatus(report.Results)
	if len(byStatus) > 0 {
		statuses := make([]string, 0, len(byStatus))
		for s := range byStatus {
			statuses = append(statuses, string(s))
		}
		sort.Strings(statuses)
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Results by status:")
		for _, s := range statuses {
			fmt.Fprintf(&b, "  %s: %d\n", s, byStatus[checker.Status(s)])
		}
	}

	if len(report.Summary.CheckerDetails) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Checker execution details:")
		for _, d := range report.Summary.CheckerDetails {
			if d.Status == OutcomeSuccess {
				fmt.Fprintf(&b, "  ✓ %s: %d result(s)\n", d.Checker, d.ResultCount)
			} else {
				errText := ""
				if d.Error != nil {
					errText = *d.Error
				}
				fmt.Fprintf(&b, "  ✗ %s: %s\n", d.Checker, errText)
			}
		}
	}

	fmt.Fprintln(&b, rule)
	return b.String()
}
