// ABOUTME: Human-friendly timestamp formatting and duration query windows.
// ABOUTME: Used by the CLI list and summary output.
package timefmt

import (
	"fmt"
	"time"

	"github.com/harperreed/trainer/internal/goal"
)

// FormatWhen renders a logged timestamp relative to now:
// under two hours ago as "X minutes ago", same day as a bare time,
// yesterday as "yesterday @ time", anything else (including future
// dates) as "Jan 2 @ 3:04 pm".
func FormatWhen(when, now time.Time) string {
	if when.After(now) {
		return shortDateTime(when)
	}

	diff := now.Sub(when)
	if diff < 2*time.Hour {
		minutes := int(diff.Minutes())
		if minutes <= 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	}

	if sameDay(when, now) {
		return clock(when)
	}
	if sameDay(when, now.AddDate(0, 0, -1)) {
		return "yesterday @ " + clock(when)
	}
	return shortDateTime(when)
}

// DateRange returns the inclusive query window for a goal duration,
// ending at now. Week means the current ISO week, from its Monday.
func DateRange(d goal.Duration, now time.Time) (start, end time.Time) {
	switch d {
	case goal.Last24Hours:
		return now.AddDate(0, 0, -1), now
	case goal.Last7Days:
		return now.AddDate(0, 0, -7), now
	case goal.Last4Weeks:
		return now.AddDate(0, 0, -28), now
	case goal.Week:
		monday := now
		for monday.Weekday() != time.Monday {
			monday = monday.AddDate(0, 0, -1)
		}
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location()), now
	default:
		return now, now
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func clock(t time.Time) string {
	return t.Format("3:04 pm")
}

func shortDateTime(t time.Time) string {
	return fmt.Sprintf("%s @ %s", t.Format("Jan 2"), clock(t))
}
