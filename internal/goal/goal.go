// ABOUTME: Goal amount lookup for an activity type over a duration window.
// ABOUTME: Pure functions; nil means no goal is configured for that window.
package goal

import "github.com/harperreed/trainer/internal/models"

// Duration selects the aggregation window a goal applies to.
type Duration string

const (
	Last24Hours Duration = "last24hours"
	Last7Days   Duration = "last7days"
	Week        Duration = "week"
	Last4Weeks  Duration = "last4weeks"
)

// Amount returns the goal amount for an activity type over the given
// duration, or nil when the type has no applicable goal. A four-week
// window scales the weekly goal by 4, falling back to the daily goal
// times 28.
func Amount(t models.ActivityType, d Duration) *int {
	switch d {
	case Last24Hours:
		return t.DailyAmount
	case Last7Days, Week:
		return t.WeeklyAmount
	case Last4Weeks:
		return last4WeeksAmount(t)
	default:
		return nil
	}
}

func last4WeeksAmount(t models.ActivityType) *int {
	if t.WeeklyAmount != nil {
		amount := *t.WeeklyAmount * 4
		return &amount
	}
	if t.DailyAmount != nil {
		amount := *t.DailyAmount * 28
		return &amount
	}
	return nil
}
