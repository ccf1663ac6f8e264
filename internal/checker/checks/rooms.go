package checks

import (
	"context"
	"fmt"

	"ifcore/internal/checker"
	"ifcore/internal/model"
)

func init() {
	checker.Register("check_room_heights", checkRoomHeights)
}

// checkRoomHeights verifies that every space meets the minimum ceiling height
// (default 2.4 m).
func checkRoomHeights(_ context.Context, m *model.Model, params checker.Params) ([]checker.Result, error) {
	minHeight := params.Float("min_height_m", 2.4)

	spaces := m.ByType("IfcSpace")
	if len(spaces) == 0 {
		return []checker.Result{
			checker.SummaryResult("Room Height Check", checker.StatusWarning,
				"0", ">= 1 room/space", "No spaces/rooms found in model"),
		}, nil
	}

	required := fmt.Sprintf(">= %.2fm", minHeight)
	var results []checker.Result
	passed, failed, unspecified := 0, 0, 0

	for _, space := range spaces {
		name := space.Name()
		if name == "" {
			name = fmt.Sprintf("Space #%d", space.ID)
		}

		height, ok := space.PropertyFloat("", "Height")
		if !ok {
			height, ok = space.PropertyFloat("", "Ceiling")
		}

		res := checker.Result{
			ElementID:     checker.Str(space.GlobalID()),
			ElementType:   "IfcSpace",
			ElementName:   name,
			RequiredValue: required,
		}
		if long := space.LongName(); long != "" {
			res.ElementNameLong = checker.Str(long)
		}
		switch {
		case !ok:
			res.CheckStatus = checker.StatusLog
			res.ActualValue = "Not specified"
			res.Comment = checker.Str("Room height not specified in model")
			unspecified++
		case height >= minHeight:
			res.CheckStatus = checker.StatusPass
			res.ActualValue = fmt.Sprintf("%.2fm", height)
			res.Comment = checker.Str(fmt.Sprintf("Room height %.2fm meets minimum standard (>= %.2fm)", height, minHeight))
			passed++
		default:
			res.CheckStatus = checker.StatusFail
			res.ActualValue = fmt.Sprintf("%.2fm", height)
			res.Comment = checker.Str(fmt.Sprintf("Room height %.2fm BELOW minimum standard (>= %.2fm)", height, minHeight))
			failed++
		}
		results = append(results, res)
	}

	summaryStatus := checker.StatusPass
	comment := fmt.Sprintf("All %d room(s) meet height standard.", len(spaces))
	if failed > 0 {
		summaryStatus = checker.StatusFail
		comment = fmt.Sprintf("Checked %d room(s). %d below minimum height.", len(spaces), failed)
	}
	results = append(results, checker.SummaryResult("Room Height Check", summaryStatus,
		fmt.Sprintf("Passed: %d, Failed: %d, Unspecified: %d", passed, failed, unspecified),
		fmt.Sprintf("All rooms >= %.2fm height", minHeight),
		comment))
	return results, nil
}
