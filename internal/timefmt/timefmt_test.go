// ABOUTME: Tests for relative timestamp rendering and duration windows.
// ABOUTME: Uses a fixed reference time so results are deterministic.
package timefmt

import (
	"testing"
	"time"

	"github.com/harperreed/trainer/internal/goal"
)

var now = time.Date(2025, 6, 11, 14, 30, 0, 0, time.Local) // Wednesday afternoon

func TestFormatWhen(t *testing.T) {
	tests := []struct {
		name string
		when time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "1 minute ago"},
		{"one minute", now.Add(-1 * time.Minute), "1 minute ago"},
		{"minutes ago", now.Add(-45 * time.Minute), "45 minutes ago"},
		{"almost two hours", now.Add(-119 * time.Minute), "119 minutes ago"},
		{"earlier today", now.Add(-5 * time.Hour), "9:30 am"},
		{"yesterday", now.AddDate(0, 0, -1), "yesterday @ 2:30 pm"},
		{"last week", time.Date(2025, 6, 3, 8, 15, 0, 0, time.Local), "Jun 3 @ 8:15 am"},
		{"future", now.Add(3 * time.Hour), "Jun 11 @ 5:30 pm"},
	}

	for _, tt := range tests {
		if got := FormatWhen(tt.when, now); got != tt.want {
			t.Errorf("%s: FormatWhen = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDateRangeWeekStartsMonday(t *testing.T) {
	start, end := DateRange(goal.Week, now)

	if start.Weekday() != time.Monday {
		t.Errorf("week range starts on %s, want Monday", start.Weekday())
	}
	if start.Format("2006-01-02 15:04:05") != "2025-06-09 00:00:00" {
		t.Errorf("week range start = %v, want 2025-06-09 midnight", start)
	}
	if !end.Equal(now) {
		t.Errorf("week range end = %v, want now", end)
	}
}

func TestDateRangeWeekOnMonday(t *testing.T) {
	monday := time.Date(2025, 6, 9, 1, 0, 0, 0, time.Local)
	start, _ := DateRange(goal.Week, monday)
	if start.Format("2006-01-02") != "2025-06-09" {
		t.Errorf("week range on a Monday starts %v, want same day", start)
	}
}

func TestDateRangeFixedWindows(t *testing.T) {
	tests := []struct {
		d    goal.Duration
		days int
	}{
		{goal.Last24Hours, 1},
		{goal.Last7Days, 7},
		{goal.Last4Weeks, 28},
	}

	for _, tt := range tests {
		start, end := DateRange(tt.d, now)
		if !end.Equal(now) {
			t.Errorf("%s: end = %v, want now", tt.d, end)
		}
		if want := now.AddDate(0, 0, -tt.days); !start.Equal(want) {
			t.Errorf("%s: start = %v, want %v", tt.d, start, want)
		}
	}
}
