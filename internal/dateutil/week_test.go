package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := ParseDayKey(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestISOWeekNumberBoundaries(t *testing.T) {
	cases := map[string]int{
		"2024-01-01": 1,  // Monday starting week 1
		"2023-01-01": 52, // Sunday still in 2022's last week
		"2021-01-01": 53, // 2020 is a 53-week year
		"2020-12-31": 53,
		"2024-12-30": 1, // Monday already in 2025 week 1
		"2016-01-02": 53,
		"2019-12-29": 52,
		"2026-08-29": 35,
	}
	for key, want := range cases {
		assert.Equal(t, want, ISOWeekNumber(day(key)), key)
	}
}

func TestISOWeekNumberMatchesStdlib(t *testing.T) {
	d := day("2019-06-01")
	for i := 0; i < 1200; i++ {
		_, want := d.ISOWeek()
		require.Equal(t, want, ISOWeekNumber(d), d.Format(DayKeyLayout))
		d = d.AddDate(0, 0, 1)
	}
}

func TestMondayOfWeek(t *testing.T) {
	// Wednesday and Saturday map to the same Monday.
	assert.Equal(t, "2024-01-01", DayKey(MondayOfWeek(day("2024-01-03"))))
	assert.Equal(t, "2024-01-01", DayKey(MondayOfWeek(day("2024-01-06"))))
	// Monday is its own anchor.
	assert.Equal(t, "2024-01-01", DayKey(MondayOfWeek(day("2024-01-01"))))
	// Sunday belongs to the week that started six days earlier.
	assert.Equal(t, "2024-01-01", DayKey(MondayOfWeek(day("2024-01-07"))))
	assert.Equal(t, "2023-12-25", DayKey(MondayOfWeek(day("2023-12-31"))))
}

func TestWeekDates(t *testing.T) {
	full := WeekDates(day("2024-01-03"))
	require.Equal(t, []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-05", "2024-01-06", "2024-01-07",
	}, full)

	work := WorkweekDates(day("2024-01-03"))
	require.Equal(t, full[:5], work)
}

func TestWeekDatesCrossMonthBoundary(t *testing.T) {
	keys := WeekDates(day("2024-02-01")) // Thursday
	require.Equal(t, "2024-01-29", keys[0])
	require.Equal(t, "2024-02-04", keys[6])
}

func TestWeekSeed(t *testing.T) {
	assert.Equal(t, 202401, WeekSeed(day("2024-01-03")))
	// Late-December days in next year's week 1 keep their calendar year.
	assert.Equal(t, 202401, WeekSeed(day("2024-12-30")))
	assert.Equal(t, 202335, WeekSeed(day("2023-08-30")))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "2024.01.03", DisplayDate(day("2024-01-03")))
}

func TestParseDayKeyRejectsGarbage(t *testing.T) {
	_, err := ParseDayKey("01/03/2024")
	assert.Error(t, err)
}
