package engine

import (
	"reflect"
	"strings"
	"testing"

	"ifcore/internal/checker"
)

func annotated(name, elementType string, status checker.Status) AnnotatedResult {
	return AnnotatedResult{
		Result:      checker.NewResult(elementType, name, status, "a", "r"),
		CheckerFile: "checker_test.yaml",
		CheckerName: "check_probe_pass",
	}
}

func queryFixture() []AnnotatedResult {
	return []AnnotatedResult{
		annotated("Door-01", "IfcDoor", checker.StatusPass),
		annotated("Wall-01", "IfcWall", checker.StatusFail),
		annotated("Door-02", "IfcDoor", checker.StatusFail),
		annotated("Door-03", "IfcDoor", checker.StatusPass),
		annotated("Space-01", "IfcSpace", checker.StatusWarning),
	}
}

func names(results []AnnotatedResult) []string {
	var out []string
	for _, r := range results {
		out = append(out, r.ElementName)
	}
	return out
}

func TestFilter(t *testing.T) {
	results := queryFixture()
	cases := []struct {
		name        string
		status      checker.Status
		elementType string
		want        []string
	}{
		{"no predicates", "", "", []string{"Door-01", "Wall-01", "Door-02", "Door-03", "Space-01"}},
		{"by status", checker.StatusFail, "", []string{"Wall-01", "Door-02"}},
		{"by type", "", "IfcDoor", []string{"Door-01", "Door-02", "Door-03"}},
		{"intersection", checker.StatusPass, "IfcDoor", []string{"Door-01", "Door-03"}},
		{"no match", checker.StatusBlocked, "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(Filter(results, tc.status, tc.elementType))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Filter = %v, want %v", got, tc.want)
			}
		})
	}

	// The input slice must come back untouched.
	if !reflect.DeepEqual(names(results), names(queryFixture())) {
		t.Error("Filter modified its input")
	}
}

func TestGroupByStatus(t *testing.T) {
	got := GroupByStatus(queryFixture())
	want := map[checker.Status]int{
		checker.StatusPass:    2,
		checker.StatusFail:    2,
		checker.StatusWarning: 1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupByStatus = %v, want %v", got, want)
	}
	if _, present := got[checker.StatusBlocked]; present {
		t.Error("absent status must be omitted, not zero-filled")
	}
}

func TestGroupByStatusEmpty(t *testing.T) {
	if got := GroupByStatus(nil); len(got) != 0 {
		t.Errorf("GroupByStatus(nil) = %v, want empty", got)
	}
}

func TestFormatSummary(t *testing.T) {
	errText := "panic: checker exploded"
	report := &RunReport{
		Results: queryFixture(),
		Summary: ExecutionSummary{
			TotalCheckers:      2,
			SuccessfulCheckers: 1,
			FailedCheckers:     1,
			TotalResults:       5,
			CheckerDetails: []CheckerDetail{
				{Checker: "checker_a.yaml::check_probe_pass", Status: OutcomeSuccess, ResultCount: 5},
				{Checker: "checker_b.yaml::check_probe_panic", Status: OutcomeFailed, Error: &errText},
			},
		},
	}

	out := FormatSummary(report)
	for _, want := range []string{
		"IFCORE ORCHESTRATOR - EXECUTION SUMMARY",
		"Checkers discovered: 2",
		"Checkers failed:     1",
		"Total results:       5",
		"fail: 2",
		"pass: 2",
		"warning: 1",
		"✓ checker_a.yaml::check_probe_pass: 5 result(s)",
		"✗ checker_b.yaml::check_probe_panic: panic: checker exploded",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
