package checks

import (
	"context"
	"fmt"

	"ifcore/internal/checker"
	"ifcore/internal/model"
)

func init() {
	checker.Register("check_window_thermal", checkWindowThermal)
}

// checkWindowThermal verifies window thermal transmittance against the
// maximum allowed U-value (default 2.0 W/m²K).
func checkWindowThermal(_ context.Context, m *model.Model, params checker.Params) ([]checker.Result, error) {
	maxUValue := params.Float("max_u_value", 2.0)

	windows := m.ByType("IfcWindow")
	if len(windows) == 0 {
		return []checker.Result{
			checker.SummaryResult("Window Thermal Check", checker.StatusWarning,
				"0", ">= 1 window", "No windows found in model"),
		}, nil
	}

	required := fmt.Sprintf("<= %.2f W/(m2*K)", maxUValue)
	var results []checker.Result
	passed, failed, unspecified := 0, 0, 0

	for _, window := range windows {
		name := window.Name()
		if name == "" {
			name = fmt.Sprintf("Window #%d", window.ID)
		}

		uValue, ok := window.PropertyFloat("", "U-value")
		if !ok {
			uValue, ok = window.PropertyFloat("", "ThermalTransmittance")
		}

		res := checker.Result{
			ElementID:     checker.Str(window.GlobalID()),
			ElementType:   "IfcWindow",
			ElementName:   name,
			RequiredValue: required,
		}
		switch {
		case !ok:
			res.CheckStatus = checker.StatusLog
			res.ActualValue = "Not specified"
			res.Comment = checker.Str("Window U-value not specified in model")
			unspecified++
		case uValue <= maxUValue:
			res.CheckStatus = checker.StatusPass
			res.ActualValue = fmt.Sprintf("%.2f W/(m2*K)", uValue)
			res.Comment = checker.Str(fmt.Sprintf("Window U-value %.2f meets thermal standard (<= %.2f)", uValue, maxUValue))
			passed++
		default:
			res.CheckStatus = checker.StatusFail
			res.ActualValue = fmt.Sprintf("%.2f W/(m2*K)", uValue)
			res.Comment = checker.Str(fmt.Sprintf("Window U-value %.2f EXCEEDS thermal standard (<= %.2f)", uValue, maxUValue))
			failed++
		}
		results = append(results, res)
	}

	summaryStatus := checker.StatusPass
	comment := fmt.Sprintf("All %d window(s) meet thermal standard.", len(windows))
	if failed > 0 {
		summaryStatus = checker.StatusFail
		comment = fmt.Sprintf("Checked %d window(s). %d failed thermal check.", len(windows), failed)
	}
	results = append(results, checker.SummaryResult("Window Thermal Check", summaryStatus,
		fmt.Sprintf("Passed: %d, Failed: %d, Unspecified: %d", passed, failed, unspecified),
		"All windows U-value "+required,
		comment))
	return results, nil
}
