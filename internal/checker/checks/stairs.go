package checks

import (
	"context"
	"fmt"
	"strings"

	"ifcore/internal/checker"
	"ifcore/internal/model"
)

func init() {
	checker.Register("check_stair_dimensions", checkStairDimensions)
}

// checkStairDimensions verifies stair geometry against code limits: tread
// depth at least min_tread_m (default 0.28 m) and riser height at most
// max_riser_m (default 0.19 m).
func checkStairDimensions(_ context.Context, m *model.Model, params checker.Params) ([]checker.Result, error) {
	minTread := params.Float("min_tread_m", 0.28)
	maxRiser := params.Float("max_riser_m", 0.19)

	stairs := m.ByType("IfcStair")
	if len(stairs) == 0 {
		return []checker.Result{
			checker.SummaryResult("Stair Dimensions Check", checker.StatusWarning,
				"0", ">= 1 stair", "No stairs found in model"),
		}, nil
	}

	required := fmt.Sprintf("Tread >= %.3fm, Riser <= %.3fm", minTread, maxRiser)
	var results []checker.Result
	passed, failed, unspecified := 0, 0, 0

	for _, stair := range stairs {
		name := stair.Name()
		if name == "" {
			name = fmt.Sprintf("Stair #%d", stair.ID)
		}

		tread, hasTread := stair.PropertyFloat("", "Tread")
		riser, hasRiser := stair.PropertyFloat("", "Riser")

		res := checker.Result{
			ElementID:     checker.Str(stair.GlobalID()),
			ElementType:   "IfcStair",
			ElementName:   name,
			RequiredValue: required,
		}

		var actual []string
		if hasTread {
			actual = append(actual, fmt.Sprintf("T:%.3fm", tread))
		}
		if hasRiser {
			actual = append(actual, fmt.Sprintf("R:%.3fm", riser))
		}
		if len(actual) > 0 {
			res.ActualValue = strings.Join(actual, ", ")
		} else {
			res.ActualValue = "Not specified"
		}

		if hasTread && hasRiser {
			var issues []string
			if tread < minTread {
				issues = append(issues, fmt.Sprintf("tread too shallow (%.3fm < %.3fm)", tread, minTread))
			}
			if riser > maxRiser {
				issues = append(issues, fmt.Sprintf("riser too tall (%.3fm > %.3fm)", riser, maxRiser))
			}
			if len(issues) == 0 {
				res.CheckStatus = checker.StatusPass
				res.Comment = checker.Str(fmt.Sprintf("Stair dimensions meet code: tread=%.3fm, riser=%.3fm", tread, riser))
				passed++
			} else {
				res.CheckStatus = checker.StatusFail
				res.Comment = checker.Str("Stair dimensions FAIL code: " + strings.Join(issues, ", "))
				failed++
			}
		} else {
			res.CheckStatus = checker.StatusLog
			if len(actual) > 0 {
				res.Comment = checker.Str("Stair dimensions partially specified: " + strings.Join(actual, ", "))
			} else {
				res.Comment = checker.Str("Stair dimensions partially specified: No dimensions")
			}
			unspecified++
		}
		results = append(results, res)
	}

	summaryStatus := checker.StatusPass
	comment := fmt.Sprintf("All %d stair(s) meet code dimensions.", len(stairs))
	if failed > 0 {
		summaryStatus = checker.StatusFail
		comment = fmt.Sprintf("Checked %d stair(s). %d failed dimension check.", len(stairs), failed)
	}
	results = append(results, checker.SummaryResult("Stair Dimensions Check", summaryStatus,
		fmt.Sprintf("Passed: %d, Failed: %d, Unspecified: %d", passed, failed, unspecified),
		"All stairs meet code dimensions",
		comment))
	return results, nil
}
