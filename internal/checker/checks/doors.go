// Package checks provides the compliance check functions compiled into this
// build. Each check registers itself under its entry-point name; checker
// manifests bind sources to these names at discovery time.
package checks

import (
	"context"
	"fmt"

	"ifcore/internal/checker"
	"ifcore/internal/model"
)

// OverallWidth position in the IfcDoor attribute list.
const doorOverallWidthAttr = 9

func init() {
	checker.Register("check_door_accessibility", checkDoorAccessibility)
}

// checkDoorAccessibility verifies that every door meets the minimum clear
// width for accessible routes. Default threshold is 0.8128 m (32 inches).
func checkDoorAccessibility(_ context.Context, m *model.Model, params checker.Params) ([]checker.Result, error) {
	minWidth := params.Float("min_width_m", 0.8128)

	doors := m.ByType("IfcDoor")
	if len(doors) == 0 {
		return []checker.Result{
			checker.SummaryResult("Door Accessibility Check", checker.StatusWarning,
				"0", ">= 1 door", "No doors found in model"),
		}, nil
	}

	required := fmt.Sprintf(">= %.3fm (%.0f inches)", minWidth, minWidth*39.37)
	var results []checker.Result
	passed, failed := 0, 0

	for _, door := range doors {
		name := door.Name()
		if name == "" {
			name = fmt.Sprintf("Door #%d", door.ID)
		}

		width, ok := door.FloatAttr(doorOverallWidthAttr)
		if !ok {
			width, ok = door.PropertyFloat("", "Width")
		}

		res := checker.Result{
			ElementID:     checker.Str(door.GlobalID()),
			ElementType:   "IfcDoor",
			ElementName:   name,
			RequiredValue: required,
		}
		switch {
		case !ok:
			res.CheckStatus = checker.StatusLog
			res.ActualValue = "Not specified"
			res.Comment = checker.Str("Door width not specified in model")
		case width >= minWidth:
			res.CheckStatus = checker.StatusPass
			res.ActualValue = fmt.Sprintf("%.3fm", width)
			res.Comment = checker.Str(fmt.Sprintf("Door width %.3fm meets accessibility standard (>= %.3fm)", width, minWidth))
			passed++
		default:
			res.CheckStatus = checker.StatusFail
			res.ActualValue = fmt.Sprintf("%.3fm", width)
			res.Comment = checker.Str(fmt.Sprintf("Door width %.3fm does NOT meet accessibility standard (>= %.3fm)", width, minWidth))
			failed++
		}
		results = append(results, res)
	}

	summaryStatus := checker.StatusPass
	comment := fmt.Sprintf("All %d door(s) pass accessibility check.", len(doors))
	if failed > 0 {
		summaryStatus = checker.StatusFail
		comment = fmt.Sprintf("Checked %d door(s). %d door(s) failed accessibility check.", len(doors), failed)
	}
	results = append(results, checker.SummaryResult("Door Accessibility Check", summaryStatus,
		fmt.Sprintf("Passed: %d, Failed: %d, Unspecified: %d", passed, failed, len(doors)-passed-failed),
		fmt.Sprintf("All doors >= %.4fm wide", minWidth),
		comment))
	return results, nil
}
