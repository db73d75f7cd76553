package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkmate-bot/internal/models"
)

// testDoc returns a default document with five named mates.
func testDoc() *models.Document {
	doc := models.DefaultDocument()
	doc.UserCount = 5
	names := []string{"Ara", "Bin", "Cho", "Dan", "Eun"}
	for i, n := range names {
		doc.Mates[i].Name = n
	}
	return doc
}

// newTestTracker anchors the tracker on Wednesday 2024-01-03.
func newTestTracker(doc *models.Document) *Tracker {
	return New(doc, time.Date(2024, 1, 3, 10, 0, 0, 0, time.Local))
}

// 2024-01-03 is ISO week 1 of 2024, so the fresh pairing derives from
// seed 202401 and is fully reproducible.
func TestFreshPairingIsCalendarSeeded(t *testing.T) {
	tr := newTestTracker(testDoc())
	calls := tr.CurrentCalls()
	require.Len(t, calls, models.CallSlots)

	assert.Equal(t, "Dan", calls[0].CallerName)
	assert.Equal(t, "Cho", calls[0].PartnerName)
	assert.Equal(t, "Bin", calls[1].CallerName)
	assert.Equal(t, "Ara", calls[1].PartnerName)
	assert.Equal(t, "Eun", calls[2].CallerName)
	assert.Equal(t, "Cho", calls[2].PartnerName)
	assert.Equal(t, "Ara", calls[3].CallerName)
	assert.Equal(t, "Bin", calls[3].PartnerName)
	for _, r := range calls {
		assert.False(t, r.ProgressCheck)
	}

	// A second tracker over an identical document derives the same table.
	again := newTestTracker(testDoc())
	assert.Equal(t, calls, again.CurrentCalls())
}

func TestSwitchDateToSelfLeavesHistoryUnchanged(t *testing.T) {
	doc := testDoc()
	doc.MateHistory["2024-01-02"] = []models.CallRecord{
		{Slot: 1, CallerName: "Ara", PartnerName: "Bin", ProgressCheck: true},
	}
	tr := newTestTracker(doc)

	require.NoError(t, tr.SwitchDate("2024-01-03"))

	snap := tr.Snapshot()
	// Only the sibling day seeded above plus the active date (folded in
	// by Snapshot) may exist; switching to self added nothing else.
	require.Len(t, snap.MateHistory, 2)
	assert.Contains(t, snap.MateHistory, "2024-01-02")
	assert.Contains(t, snap.MateHistory, "2024-01-03")
	assert.Equal(t, doc.MateHistory["2024-01-02"], snap.MateHistory["2024-01-02"])
}

func TestSwitchDateSnapshotsAndRestores(t *testing.T) {
	tr := newTestTracker(testDoc())
	require.True(t, tr.ToggleCallCheck(0, "2024-01-03"))
	before := tr.CurrentCalls()

	require.NoError(t, tr.SwitchDate("2024-02-14"))
	require.NotEqual(t, "2024-01-03", tr.SelectedDate())

	require.NoError(t, tr.SwitchDate("2024-01-03"))
	assert.Equal(t, before, tr.CurrentCalls())
}

func TestSwitchDateRejectsBadKey(t *testing.T) {
	tr := newTestTracker(testDoc())
	assert.Error(t, tr.SwitchDate("not-a-date"))
	assert.Equal(t, "2024-01-03", tr.SelectedDate())
}

// A day with no records inherits the sibling day's assignments with all
// progress checks reset.
func TestSiblingInheritance(t *testing.T) {
	doc := testDoc()
	doc.MateHistory["2024-01-01"] = []models.CallRecord{
		{Slot: 1, CallerName: "Cho", PartnerName: "Dan", ProgressCheck: true},
		{Slot: 2, CallerName: "Eun", PartnerName: "Ara", ProgressCheck: true},
		{Slot: 3, CallerName: "Bin", PartnerName: "Cho", ProgressCheck: false},
		{Slot: 4, CallerName: "Dan", PartnerName: "Eun", ProgressCheck: true},
	}
	tr := newTestTracker(doc)

	calls := tr.CurrentCalls()
	require.Len(t, calls, 4)
	assert.Equal(t, "Cho", calls[0].CallerName)
	assert.Equal(t, "Dan", calls[0].PartnerName)
	assert.Equal(t, "Dan", calls[3].CallerName)
	for _, r := range calls {
		assert.False(t, r.ProgressCheck, "inherited checks must reset")
	}
}

// Days in a week with no records anywhere fall back to generation, not
// inheritance from a different week.
func TestNoInheritanceAcrossWeeks(t *testing.T) {
	doc := testDoc()
	doc.MateHistory["2023-12-29"] = []models.CallRecord{
		{Slot: 1, CallerName: "Cho", PartnerName: "Dan"},
	}
	tr := newTestTracker(doc)
	calls := tr.CurrentCalls()
	require.Len(t, calls, models.CallSlots)
	// Matches the calendar-seeded table, not the prior week's single row.
	assert.Equal(t, "Dan", calls[0].CallerName)
}

func TestToggleCallCheckWritesThrough(t *testing.T) {
	tr := newTestTracker(testDoc())
	require.True(t, tr.ToggleCallCheck(1, "2024-01-03"))

	assert.True(t, tr.CurrentCalls()[1].ProgressCheck)
	snap := tr.Snapshot()
	assert.True(t, snap.MateHistory["2024-01-03"][1].ProgressCheck)

	require.True(t, tr.ToggleCallCheck(1, "2024-01-03"))
	assert.False(t, tr.CurrentCalls()[1].ProgressCheck)
}

func TestToggleCallCheckLazyCreatesOtherDay(t *testing.T) {
	tr := newTestTracker(testDoc())
	require.True(t, tr.ToggleCallCheck(2, "2024-01-05"))

	snap := tr.Snapshot()
	records := snap.MateHistory["2024-01-05"]
	require.Len(t, records, models.CallSlots)
	assert.True(t, records[2].ProgressCheck)
	assert.Equal(t, "Ara", records[0].CallerName)
	assert.Empty(t, records[0].PartnerName)

	// The active day's view is untouched.
	assert.False(t, tr.CurrentCalls()[2].ProgressCheck)
}

func TestToggleCallCheckRejectsBadIndex(t *testing.T) {
	tr := newTestTracker(testDoc())
	assert.False(t, tr.ToggleCallCheck(-1, "2024-01-03"))
	assert.False(t, tr.ToggleCallCheck(models.CallSlots, "2024-01-03"))
}

func TestToggleHabitCheckWritesThrough(t *testing.T) {
	tr := newTestTracker(testDoc())
	require.True(t, tr.ToggleHabitCheck(0, 1, "2024-01-03"))

	assert.True(t, tr.CurrentHabits()[0].CustomChecks[1].Checked)
	snap := tr.Snapshot()
	assert.True(t, snap.HabitHistory["2024-01-03"][0].CustomChecks[1].Checked)
}

func TestToggleHabitCheckLazyCreatesOtherDay(t *testing.T) {
	tr := newTestTracker(testDoc())
	require.True(t, tr.ToggleHabitCheck(3, 0, "2024-01-04"))

	snap := tr.Snapshot()
	records := snap.HabitHistory["2024-01-04"]
	require.Len(t, records, models.MaxMates)
	assert.True(t, records[3].CustomChecks[0].Checked)
	assert.Equal(t, "Dan", records[3].MateName)
}

// Migrated v0 days carry fewer habit rows and checks than the current
// schema; toggling beyond the stored shape must widen the day, not
// panic.
func TestToggleHabitCheckOnMigratedShortDay(t *testing.T) {
	tr := New(Upgrade(legacyDoc()), time.Date(2024, 1, 3, 10, 0, 0, 0, time.Local))

	require.True(t, tr.ToggleHabitCheck(5, 0, "2023-11-06"))
	require.True(t, tr.ToggleHabitCheck(0, models.MaxCheckItems-1, "2023-11-06"))

	snap := tr.Snapshot()
	records := snap.HabitHistory["2023-11-06"]
	require.Len(t, records, models.MaxMates)
	require.Len(t, records[0].CustomChecks, models.MaxCheckItems)
	assert.True(t, records[5].CustomChecks[0].Checked)
	assert.True(t, records[0].CustomChecks[models.MaxCheckItems-1].Checked)
	// The legacy data survives the widening.
	assert.Equal(t, "Ara", records[0].MateName)
	assert.True(t, records[0].CustomChecks[0].Checked)
}

func TestMigratedShortDayAsActiveDate(t *testing.T) {
	tr := New(Upgrade(legacyDoc()), time.Date(2023, 11, 6, 10, 0, 0, 0, time.Local))

	habits := tr.CurrentHabits()
	require.NotEmpty(t, habits)
	require.Len(t, habits[0].CustomChecks, models.MaxCheckItems)
	assert.Equal(t, "Ara", habits[0].MateName)

	require.True(t, tr.ToggleHabitCheck(0, models.MaxCheckItems-1, "2023-11-06"))
	require.True(t, tr.SetCheckLabel(0, "Stretching check"))
	require.True(t, tr.SetMateName(7, "Hana"))
}

func TestApplyRandomMatchingPreservesProgress(t *testing.T) {
	tr := newTestTracker(testDoc())
	require.True(t, tr.ToggleCallCheck(0, "2024-01-03"))
	require.True(t, tr.ToggleCallCheck(1, "2024-01-05"))

	require.NoError(t, tr.ApplyRandomMatching(777))

	snap := tr.Snapshot()
	// Matching propagates over the whole Monday..Sunday week.
	for _, key := range []string{"2024-01-01", "2024-01-04", "2024-01-07"} {
		require.Contains(t, snap.MateHistory, key)
	}
	assert.True(t, snap.MateHistory["2024-01-03"][0].ProgressCheck)
	assert.True(t, snap.MateHistory["2024-01-05"][1].ProgressCheck)
	assert.False(t, snap.MateHistory["2024-01-05"][0].ProgressCheck)

	// Every day of the week carries the same new assignment.
	assert.Equal(t, snap.MateHistory["2024-01-01"][0].CallerName, snap.MateHistory["2024-01-07"][0].CallerName)
}

func TestCopyDayToWorkweek(t *testing.T) {
	tr := newTestTracker(testDoc())
	require.True(t, tr.SetCallPartner(0, "Custom Partner"))
	require.True(t, tr.ToggleCallCheck(3, "2024-01-02"))

	require.NoError(t, tr.CopyDayToWorkweek())

	snap := tr.Snapshot()
	for _, key := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"} {
		require.Contains(t, snap.MateHistory, key)
		assert.Equal(t, "Custom Partner", snap.MateHistory[key][0].PartnerName, key)
	}
	// Weekend untouched.
	assert.NotContains(t, snap.MateHistory, "2024-01-06")
	// Target days keep their own progress checks.
	assert.True(t, snap.MateHistory["2024-01-02"][3].ProgressCheck)
}

func TestSetMateNameMirrorsIntoBothViews(t *testing.T) {
	tr := newTestTracker(testDoc())
	require.True(t, tr.SetMateName(1, "Binna"))

	assert.Equal(t, "Binna", tr.Mates()[1].Name)
	assert.Equal(t, "Binna", tr.CurrentHabits()[1].MateName)

	// Call rows carrying the old name pick the rename up too.
	calls := tr.CurrentCalls()
	assert.Equal(t, "Binna", calls[1].CallerName)
	assert.Equal(t, "Binna", calls[3].PartnerName)
	assert.Equal(t, "Dan", calls[0].CallerName)
}

func TestSetCheckLabelUpdatesCurrentView(t *testing.T) {
	tr := newTestTracker(testDoc())
	require.True(t, tr.SetCheckLabel(0, "Morning run"))

	s := tr.Settings()
	assert.Equal(t, "Morning run", s.CheckLabels[0])
	assert.Equal(t, "Morning run", tr.CurrentHabits()[2].CustomChecks[0].Label)
}

func TestSettingValidation(t *testing.T) {
	tr := newTestTracker(testDoc())
	assert.False(t, tr.SetMainWeeklyGoal(0))
	assert.False(t, tr.SetMainWeeklyGoal(8))
	assert.True(t, tr.SetMainWeeklyGoal(7))
	assert.False(t, tr.SetUserCount(11))
	assert.True(t, tr.SetUserCount(3))
	assert.False(t, tr.SetCheckWeeklyGoal(0, 9))
	assert.True(t, tr.SetCheckWeeklyGoal(0, 3))
}

func TestFineLog(t *testing.T) {
	tr := newTestTracker(testDoc())
	id1, err := tr.AddFine("2024-01-03", 5000, "Ara", "missed call")
	require.NoError(t, err)
	_, err = tr.AddFine("2024-01-04", 3000, "Bin", "")
	require.NoError(t, err)
	_, err = tr.AddFine("2024-01-05", 2000, "Ara", "late")
	require.NoError(t, err)

	assert.Equal(t, 10000.0, tr.TotalFine())
	totals := tr.FineTotalsByName()
	assert.Equal(t, 7000.0, totals["Ara"])
	assert.Equal(t, 3000.0, totals["Bin"])

	require.True(t, tr.RemoveFine(id1))
	assert.Equal(t, 5000.0, tr.TotalFine())
	assert.False(t, tr.RemoveFine(id1))

	_, err = tr.AddFine("2024-01-06", -1, "Cho", "")
	assert.Error(t, err)
}

func TestAdminGate(t *testing.T) {
	tr := newTestTracker(testDoc())
	assert.False(t, tr.HasAdminPassword())
	assert.False(t, tr.CheckAdminPassword(""))

	tr.SetAdminPassword("mate-secret")
	assert.True(t, tr.HasAdminPassword())
	assert.True(t, tr.CheckAdminPassword("mate-secret"))
	assert.False(t, tr.CheckAdminPassword("Mate-Secret"))
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	tr := newTestTracker(testDoc())
	snap := tr.Snapshot()
	snap.MateHistory["2024-01-03"][0].ProgressCheck = true
	snap.Mates[0].Name = "Mutated"

	assert.False(t, tr.CurrentCalls()[0].ProgressCheck)
	assert.Equal(t, "Ara", tr.Mates()[0].Name)
}
