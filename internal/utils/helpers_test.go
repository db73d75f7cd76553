package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkmate-bot/internal/models"
)

func TestValidateAmount(t *testing.T) {
	amount, err := ValidateAmount("  5000 ")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, amount)

	amount, err = ValidateAmount("12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, amount)

	_, err = ValidateAmount("abc")
	assert.Error(t, err)
	_, err = ValidateAmount("0")
	assert.Error(t, err)
	_, err = ValidateAmount("-100")
	assert.Error(t, err)
}

func TestBuildCallKeyboard(t *testing.T) {
	records := []models.CallRecord{
		{Slot: 1, CallerName: "Ara", PartnerName: "Bin", ProgressCheck: true},
		{Slot: 2, CallerName: "", PartnerName: "Cho"},
	}
	kb := BuildCallKeyboard(records, "2024-01-03")

	require.Len(t, kb.InlineKeyboard, 2)
	first := kb.InlineKeyboard[0][0]
	assert.Equal(t, "✅ Ara → Bin", first.Text)
	require.NotNil(t, first.CallbackData)
	assert.Equal(t, "call_0_2024-01-03", *first.CallbackData)

	second := kb.InlineKeyboard[1][0]
	assert.Equal(t, "⬜ Row 2 → Cho", second.Text)
	assert.Equal(t, "call_1_2024-01-03", *second.CallbackData)
}

func TestBuildHabitKeyboardPairsButtons(t *testing.T) {
	record := models.HabitRecord{
		MateID:   0,
		MateName: "Ara",
		CustomChecks: []models.CheckItem{
			{ID: "check-0", Label: "Wake-up check", Checked: true},
			{ID: "check-1", Label: "Reading check"},
			{ID: "check-2", Label: "Workout check"},
		},
	}
	kb := BuildHabitKeyboard(0, record, 3, "2024-01-03")

	require.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[1], 1)
	assert.Equal(t, "✅ Wake-up check", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "habit_0_1_2024-01-03", *kb.InlineKeyboard[0][1].CallbackData)
}

func TestBuildHabitKeyboardHonorsItemCount(t *testing.T) {
	checks := make([]models.CheckItem, models.MaxCheckItems)
	for i := range checks {
		checks[i] = models.CheckItem{Label: "x"}
	}
	kb := BuildHabitKeyboard(2, models.HabitRecord{CustomChecks: checks}, 4, "2024-01-03")
	assert.Len(t, kb.InlineKeyboard, 2)
}

func TestBuildMatePickerKeyboard(t *testing.T) {
	mates := []models.Mate{
		{ID: 0, Name: "Ara"},
		{ID: 1, Name: "Bin"},
		{ID: 2},
	}
	kb := BuildMatePickerKeyboard(mates, "2024-01-03")

	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "Ara", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "mate_1_2024-01-03", *kb.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, "Mate C", kb.InlineKeyboard[1][0].Text)
}

func TestGenerateWeeklyCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []WeeklyReportRow{
		{MateName: "Ara", CallCount: 5, HabitCounts: []int{3, 6}},
		{MateName: "Bin", CallCount: 2, HabitCounts: []int{5, 1}},
	}
	err := GenerateWeeklyCSV("2024-01-01", []string{"Wake-up check", "Reading check"}, []int{3, 5}, 5, rows, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Weekly Checkmate Report")
	assert.Contains(t, out, "Week of,2024-01-01")
	assert.Contains(t, out, "Mate Call (goal 5)")
	assert.Contains(t, out, "Wake-up check (goal 3)")
	assert.Contains(t, out, "Ara,5 (met),3 (met),6 (met)")
	assert.Contains(t, out, "Bin,2 (missed),5 (met),1 (missed)")
}

func TestGenerateFineCSV(t *testing.T) {
	var buf bytes.Buffer
	records := []models.FineRecord{
		{ID: "a", Date: "2024-01-03", Amount: 5000, Name: "Ara", Note: "missed call"},
		{ID: "b", Date: "2024-01-04", Amount: 3000, Name: "Bin"},
		{ID: "c", Date: "2024-01-05", Amount: 2000, Name: "Ara"},
	}
	require.NoError(t, GenerateFineCSV(records, &buf))

	out := buf.String()
	assert.Contains(t, out, "Total,10000")
	assert.Contains(t, out, "Entries,3")
	assert.Contains(t, out, "Ara,7000")
	assert.Contains(t, out, "Bin,3000")
	assert.Contains(t, out, "2024-01-03,5000,Ara,missed call")
	// Per-mate totals keep first-seen order.
	assert.Less(t, strings.Index(out, "Ara,7000"), strings.Index(out, "Bin,3000"))
}

func TestGenerateFineCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateFineCSV(nil, &buf))
	out := buf.String()
	assert.Contains(t, out, "Total,0")
	assert.NotContains(t, out, "DETAILED ENTRIES")
}
