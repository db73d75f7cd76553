// Package dateutil holds the calendar helpers the tracker keys its
// history by. All functions work in local calendar time and use
// YYYY-MM-DD strings as history keys.
package dateutil

import (
	"math"
	"time"
)

// DayKeyLayout is the history-key date format.
const DayKeyLayout = "2006-01-02"

// DisplayLayout is the dotted format used only for display copy.
const DisplayLayout = "2006.01.02"

// DayKey formats a time as a history key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// DisplayDate formats a time for display.
func DisplayDate(t time.Time) string {
	return t.Format(DisplayLayout)
}

// ParseDayKey parses a history key in local time.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, key, time.Local)
}

// truncate drops the time-of-day component.
func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ISOWeekNumber returns the ISO-8601 week number of t: shift to the
// Thursday of t's week and count weeks from that year's first Thursday.
func ISOWeekNumber(t time.Time) int {
	t = truncate(t)
	dayNum := (int(t.Weekday()) + 6) % 7
	thursday := t.AddDate(0, 0, 3-dayNum)
	firstThursday := time.Date(thursday.Year(), time.January, 4, 0, 0, 0, 0, t.Location())
	diff := thursday.Sub(firstThursday)
	return 1 + int(math.Round(diff.Hours()/(24*7)))
}

// MondayOfWeek returns the Monday of t's week. Sunday counts as the last
// day of the previous span, not the start of a new one.
func MondayOfWeek(t time.Time) time.Time {
	t = truncate(t)
	day := int(t.Weekday())
	diff := 1 - day
	if day == 0 {
		diff = -6
	}
	return t.AddDate(0, 0, diff)
}

// WeekDates returns the seven Monday-anchored day keys of t's week. This
// is the authoritative variant for history reconciliation and weekly
// aggregation.
func WeekDates(t time.Time) []string {
	return weekKeys(t, 7)
}

// WorkweekDates returns the Monday..Friday day keys of t's week, used
// only for the copy-to-week display operation.
func WorkweekDates(t time.Time) []string {
	return weekKeys(t, 5)
}

func weekKeys(t time.Time, n int) []string {
	monday := MondayOfWeek(t)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = DayKey(monday.AddDate(0, 0, i))
	}
	return keys
}

// WeekSeed derives the deterministic pairing seed for the week containing
// t: year*100 + ISO week number.
func WeekSeed(t time.Time) int {
	return t.Year()*100 + ISOWeekNumber(t)
}
