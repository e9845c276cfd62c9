// ABOUTME: Week key codec mapping timestamps to ISO-8601 week identifiers.
// ABOUTME: Keys are "YYYY.WW" (Monday start, first-four-day-week rule).
package week

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyPrefix is prepended to a week key to form the storage key for that
// week's activity bucket.
const KeyPrefix = "activities-"

var (
	// ErrBadWeekKey reports a week key that is not of the form YYYY.WW.
	ErrBadWeekKey = errors.New("invalid week key format")

	// ErrBadStorageKey reports a storage key lacking the activities- prefix.
	ErrBadStorageKey = errors.New("invalid storage key format")
)

// Key returns the ISO week identifier for a timestamp, e.g. "2025.03".
// The ISO year can differ from the calendar year at year boundaries:
// late-December dates may fall in week 01 of the following year, and
// early-January dates in week 52/53 of the previous year.
func Key(t time.Time) string {
	year, wk := t.ISOWeek()
	return fmt.Sprintf("%d.%02d", year, wk)
}

// StartDate returns the Monday that begins the given ISO week, at midnight
// in the local time zone.
func StartDate(key string) (time.Time, error) {
	year, wk, err := parse(key)
	if err != nil {
		return time.Time{}, err
	}

	// Find the first Thursday of the year; the Monday of its week starts
	// ISO week 1 (first-four-day-week rule).
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	offset := (int(time.Thursday) - int(jan1.Weekday()) + 7) % 7
	firstThursday := jan1.AddDate(0, 0, offset)
	week1Monday := firstThursday.AddDate(0, 0, -3)

	return week1Monday.AddDate(0, 0, (wk-1)*7), nil
}

// EndDate returns the last instant of the given ISO week: the following
// Sunday at 23:59:59.
func EndDate(key string) (time.Time, error) {
	start, err := StartDate(key)
	if err != nil {
		return time.Time{}, err
	}
	sunday := start.AddDate(0, 0, 6)
	return time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, sunday.Location()), nil
}

// KeysInRange returns every distinct week key touched by any date in
// [start, end] inclusive, in first-encountered order. The walk is
// day-by-day rather than a seven-day stride: two calendar weeks can be
// only days apart across a year boundary (Dec 31 can be week 53 and the
// following Jan 5 week 01), and a week stride would skip one of them.
func KeysInRange(start, end time.Time) []string {
	current := truncateToDay(start)
	last := truncateToDay(end)

	var keys []string
	seen := make(map[string]bool)
	for !current.After(last) {
		k := Key(current)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
		current = current.AddDate(0, 0, 1)
	}
	return keys
}

// StorageKey returns the bucket storage key for a week key, e.g.
// "activities-2025.03".
func StorageKey(weekKey string) string {
	return KeyPrefix + weekKey
}

// FromStorageKey extracts the week key from a bucket storage key.
func FromStorageKey(storageKey string) (string, error) {
	if !strings.HasPrefix(storageKey, KeyPrefix) {
		return "", fmt.Errorf("%w: %q", ErrBadStorageKey, storageKey)
	}
	return strings.TrimPrefix(storageKey, KeyPrefix), nil
}

func parse(key string) (year, wk int, err error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadWeekKey, key)
	}
	year, yerr := strconv.Atoi(parts[0])
	wk, werr := strconv.Atoi(parts[1])
	if yerr != nil || werr != nil || year < 1 || wk < 1 || wk > 53 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadWeekKey, key)
	}
	return year, wk, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
