package checks

import (
	"context"
	"fmt"
	"strings"

	"ifcore/internal/checker"
	"ifcore/internal/model"
)

func init() {
	checker.Register("check_wall_fire_rating", checkWallFireRating)
}

// checkWallFireRating verifies that walls declare the required fire
// resistance classification (default "F60") in a fire-related property set.
func checkWallFireRating(_ context.Context, m *model.Model, params checker.Params) ([]checker.Result, error) {
	requiredRating := params.String("required_rating", "F60")

	walls := m.ByType("IfcWall")
	if len(walls) == 0 {
		return []checker.Result{
			checker.SummaryResult("Wall Fire Rating Check", checker.StatusWarning,
				"0", ">= 1 wall", "No walls found in model"),
		}, nil
	}

	var results []checker.Result
	passed, failed, unspecified := 0, 0, 0

	for _, wall := range walls {
		name := wall.Name()
		if name == "" {
			name = fmt.Sprintf("Wall #%d", wall.ID)
		}

		rating, ok := wall.PropertyString("Fire", "Rating")
		if !ok {
			rating, ok = wall.PropertyString("Fire", "Class")
		}

		res := checker.Result{
			ElementID:     checker.Str(wall.GlobalID()),
			ElementType:   "IfcWall",
			ElementName:   name,
			RequiredValue: requiredRating,
		}
		switch {
		case !ok:
			res.CheckStatus = checker.StatusLog
			res.ActualValue = "Not specified"
			res.Comment = checker.Str("Wall fire rating not specified in model")
			unspecified++
		case rating == requiredRating || strings.Contains(rating, requiredRating):
			res.CheckStatus = checker.StatusPass
			res.ActualValue = rating
			res.Comment = checker.Str("Wall has required fire rating: " + rating)
			passed++
		default:
			res.CheckStatus = checker.StatusFail
			res.ActualValue = rating
			res.Comment = checker.Str(fmt.Sprintf("Wall fire rating %s does NOT meet requirement of %s", rating, requiredRating))
			failed++
		}
		results = append(results, res)
	}

	summaryStatus := checker.StatusPass
	comment := fmt.Sprintf("All %d wall(s) meet fire rating requirement.", len(walls))
	if failed > 0 {
		summaryStatus = checker.StatusFail
		comment = fmt.Sprintf("Checked %d wall(s). %d failed fire rating check.", len(walls), failed)
	}
	results = append(results, checker.SummaryResult("Wall Fire Rating Check", summaryStatus,
		fmt.Sprintf("Passed: %d, Failed: %d, Unspecified: %d", passed, failed, unspecified),
		"All walls rated "+requiredRating,
		comment))
	return results, nil
}
