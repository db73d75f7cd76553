package state

import (
	"time"

	"checkmate-bot/internal/dateutil"
	"checkmate-bot/internal/models"
)

// MeetsGoal is the one comparison every view uses to classify a weekly
// count against its goal.
func MeetsGoal(count, goal int) bool {
	return count >= goal
}

// WeeklyCallCount sums a call row's progress checks over the Monday..Sunday
// week containing anchorKey. The active date reads the current view; other
// days read history; a missing day counts as unchecked.
func (tr *Tracker) WeeklyCallCount(idx int, anchorKey string) int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.weeklyCallCount(idx, anchorKey)
}

func (tr *Tracker) weeklyCallCount(idx int, anchorKey string) int {
	anchor, err := dateutil.ParseDayKey(anchorKey)
	if err != nil {
		return 0
	}
	count := 0
	for _, key := range dateutil.WeekDates(anchor) {
		var records []models.CallRecord
		if key == tr.selected {
			records = tr.currentCalls
		} else {
			records = tr.doc.MateHistory[key]
		}
		if idx < len(records) && records[idx].ProgressCheck {
			count++
		}
	}
	return count
}

// WeeklyHabitCount sums one habit column for one mate over the week
// containing anchorKey, with the same current-view/history split as
// WeeklyCallCount.
func (tr *Tracker) WeeklyHabitCount(mateIdx, checkIdx int, anchorKey string) int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	anchor, err := dateutil.ParseDayKey(anchorKey)
	if err != nil {
		return 0
	}
	count := 0
	for _, key := range dateutil.WeekDates(anchor) {
		var records []models.HabitRecord
		if key == tr.selected {
			records = tr.currentHabits
		} else {
			records = tr.doc.HabitHistory[key]
		}
		if mateIdx < len(records) && checkIdx < len(records[mateIdx].CustomChecks) &&
			records[mateIdx].CustomChecks[checkIdx].Checked {
			count++
		}
	}
	return count
}

// DayStatus summarizes one calendar day for the monthly overview.
type DayStatus struct {
	Key           string
	Day           int
	HasData       bool
	MissedCallers []string // callers with an unmet check that day
}

// WeekStatus lists who missed the weekly mate-call goal in one
// Monday-anchored week of the month.
type WeekStatus struct {
	MondayKey   string
	MissedNames []string
}

// MonthOverview is the monthly rollup behind the calendar view.
type MonthOverview struct {
	Year  int
	Month time.Month
	Days  []DayStatus
	Weeks []WeekStatus
}

// Overview builds the monthly rollup for the given month. Weekly goal
// classification reuses the exact per-week counts the detail view uses.
func (tr *Tracker) Overview(year int, month time.Month) MonthOverview {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	ov := MonthOverview{Year: year, Month: month}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	for d := 1; d <= last.Day(); d++ {
		key := dateutil.DayKey(time.Date(year, month, d, 0, 0, 0, 0, time.Local))
		var records []models.CallRecord
		if key == tr.selected {
			records = tr.currentCalls
		} else {
			records = tr.doc.MateHistory[key]
		}
		_, hasCalls := tr.doc.MateHistory[key]
		_, hasHabits := tr.doc.HabitHistory[key]
		status := DayStatus{Key: key, Day: d, HasData: hasCalls || hasHabits || key == tr.selected}
		for _, r := range records {
			if r.CallerName != "" && !r.ProgressCheck {
				status.MissedCallers = append(status.MissedCallers, r.CallerName)
			}
		}
		ov.Days = append(ov.Days, status)
	}

	for monday := dateutil.MondayOfWeek(first); !monday.After(last); monday = monday.AddDate(0, 0, 7) {
		week := WeekStatus{MondayKey: dateutil.DayKey(monday)}
		for idx := 0; idx < models.CallSlots; idx++ {
			if name := tr.callerNameInWeek(idx, monday); name != "" {
				if !MeetsGoal(tr.weeklyCallCount(idx, week.MondayKey), tr.doc.MainWeeklyGoal) {
					week.MissedNames = append(week.MissedNames, name)
				}
			}
		}
		ov.Weeks = append(ov.Weeks, week)
	}
	return ov
}

// callerNameInWeek finds the caller name assigned to a row anywhere in
// the week starting at monday.
func (tr *Tracker) callerNameInWeek(idx int, monday time.Time) string {
	for _, key := range dateutil.WeekDates(monday) {
		var records []models.CallRecord
		if key == tr.selected {
			records = tr.currentCalls
		} else {
			records = tr.doc.MateHistory[key]
		}
		if idx < len(records) && records[idx].CallerName != "" {
			return records[idx].CallerName
		}
	}
	return ""
}
