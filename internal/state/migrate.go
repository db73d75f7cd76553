package state

import (
	"log"
	"strconv"

	"checkmate-bot/internal/models"
)

// Upgrade brings a loaded document to the current schema version. v0
// documents (no version tag) carry a unified daily history; the split
// into call and habit histories runs only when both target maps are
// empty, so re-running the loader never clobbers migrated data. The
// result is stamped with the current version before its first save.
func Upgrade(doc *models.Document) *models.Document {
	if doc == nil {
		return models.DefaultDocument()
	}
	normalize(doc)
	if doc.SchemaVersion >= models.SchemaVersionCurrent {
		doc.DailyHistory = nil
		return doc
	}
	if len(doc.DailyHistory) > 0 && len(doc.MateHistory) == 0 && len(doc.HabitHistory) == 0 {
		log.Printf("Migrating legacy history (%d days) to split format", len(doc.DailyHistory))
		for date, records := range doc.DailyHistory {
			calls := make([]models.CallRecord, 0, len(records))
			habits := make([]models.HabitRecord, 0, len(records))
			for i, r := range records {
				calls = append(calls, models.CallRecord{
					Slot:          legacySlot(r.MateID, i),
					CallerName:    r.MateName,
					PartnerName:   r.MateCallPartner,
					ProgressCheck: r.ProgressCheck,
				})
				habits = append(habits, models.HabitRecord{
					MateID:       models.MateID(i),
					MateName:     r.MateName,
					CustomChecks: r.CustomChecks,
					Note:         r.Note,
				})
			}
			if len(calls) > models.CallSlots {
				calls = calls[:models.CallSlots]
			}
			if len(habits) > models.MaxMates {
				habits = habits[:models.MaxMates]
			}
			doc.MateHistory[date] = calls
			doc.HabitHistory[date] = habits
		}
	}
	doc.DailyHistory = nil
	doc.SchemaVersion = models.SchemaVersionCurrent
	return doc
}

// legacySlot recovers a 1-based row number from a legacy record id,
// falling back to the record's position.
func legacySlot(id string, pos int) int {
	if n, err := strconv.Atoi(id); err == nil && n >= 1 {
		return n
	}
	return pos + 1
}

// normalize pads truncated slices and clamps counts so the rest of the
// package can index without bounds checks against loaded data.
func normalize(doc *models.Document) {
	for len(doc.Mates) < models.MaxMates {
		doc.Mates = append(doc.Mates, models.Mate{ID: models.MateID(len(doc.Mates))})
	}
	doc.Mates = doc.Mates[:models.MaxMates]
	for i := range doc.Mates {
		doc.Mates[i].ID = models.MateID(i)
	}

	defaults := models.DefaultLabels()
	for len(doc.CheckLabels) < models.MaxCheckItems {
		doc.CheckLabels = append(doc.CheckLabels, defaults[len(doc.CheckLabels)])
	}
	doc.CheckLabels = doc.CheckLabels[:models.MaxCheckItems]
	for len(doc.CheckWeeklyGoal) < models.MaxCheckItems {
		doc.CheckWeeklyGoal = append(doc.CheckWeeklyGoal, 5)
	}
	doc.CheckWeeklyGoal = doc.CheckWeeklyGoal[:models.MaxCheckItems]

	if doc.UserCount < 1 || doc.UserCount > models.MaxMates {
		doc.UserCount = models.MaxMates
	}
	if doc.CheckItemCount < 1 || doc.CheckItemCount > models.MaxCheckItems {
		doc.CheckItemCount = models.MaxCheckItems
	}
	if doc.MainWeeklyGoal < 1 || doc.MainWeeklyGoal > 7 {
		doc.MainWeeklyGoal = 5
	}
	if doc.MateHistory == nil {
		doc.MateHistory = map[string][]models.CallRecord{}
	}
	if doc.HabitHistory == nil {
		doc.HabitHistory = map[string][]models.HabitRecord{}
	}
	if doc.FineRecords == nil {
		doc.FineRecords = []models.FineRecord{}
	}
}
