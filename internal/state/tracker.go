// Package state owns the in-memory checkmate state: settings, roster,
// fine log, the two date-keyed histories and the current-day view bound
// to the chat surface. The Tracker is the single owner of all of it; the
// bot handlers, the debounced syncer and the cron jobs all go through it.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"checkmate-bot/internal/dateutil"
	"checkmate-bot/internal/matching"
	"checkmate-bot/internal/models"
)

// Tracker holds the whole application state for one group. Methods are
// safe for concurrent use; the update loop, the debounce timer and cron
// all fire on different goroutines.
type Tracker struct {
	mu  sync.Mutex
	doc *models.Document

	selected      string // active day key, YYYY-MM-DD
	currentCalls  []models.CallRecord
	currentHabits []models.HabitRecord
}

// New builds a Tracker from a loaded (already upgraded) document and
// selects the day containing now.
func New(doc *models.Document, now time.Time) *Tracker {
	normalize(doc)
	tr := &Tracker{doc: doc, selected: dateutil.DayKey(now)}
	tr.loadDay(tr.selected)
	return tr
}

// SelectedDate returns the active day key.
func (tr *Tracker) SelectedDate() string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.selected
}

// SwitchDate snapshots the current view under the active date and makes
// newKey the active date, loading or initializing its records. Switching
// to the already-active date leaves both history maps untouched.
func (tr *Tracker) SwitchDate(newKey string) error {
	if _, err := dateutil.ParseDayKey(newKey); err != nil {
		return fmt.Errorf("switch date: %w", err)
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if newKey == tr.selected {
		return nil
	}
	tr.doc.MateHistory[tr.selected] = cloneCalls(tr.currentCalls)
	tr.doc.HabitHistory[tr.selected] = cloneHabits(tr.currentHabits)
	tr.selected = newKey
	tr.loadDay(newKey)
	return nil
}

// loadDay binds history[key] to the current view, initializing absent
// days: call records inherit a sibling day of the same week (with checks
// reset) or fall back to a fresh calendar-seeded pairing; habit records
// are synthesized from the roster and label schema.
func (tr *Tracker) loadDay(key string) {
	day, err := dateutil.ParseDayKey(key)
	if err != nil {
		day = time.Now()
	}

	if records, ok := tr.doc.MateHistory[key]; ok {
		tr.currentCalls = cloneCalls(records)
	} else if sibling := tr.findSibling(day, key); sibling != "" {
		inherited := cloneCalls(tr.doc.MateHistory[sibling])
		for i := range inherited {
			inherited[i].ProgressCheck = false
		}
		tr.currentCalls = inherited
	} else {
		tr.currentCalls = tr.generateCalls(dateutil.WeekSeed(day))
	}

	if records, ok := tr.doc.HabitHistory[key]; ok {
		tr.currentHabits = tr.padHabits(records)
	} else {
		tr.currentHabits = tr.synthesizeHabits()
	}
}

// findSibling returns the first day of key's week that already has call
// records, or "" when the week is blank.
func (tr *Tracker) findSibling(day time.Time, key string) string {
	for _, k := range dateutil.WeekDates(day) {
		if k == key {
			continue
		}
		if _, ok := tr.doc.MateHistory[k]; ok {
			return k
		}
	}
	return ""
}

// generateCalls derives a fresh pairing table from the given seed.
func (tr *Tracker) generateCalls(seed int) []models.CallRecord {
	pairs := matching.GeneratePairs(models.CallSlots, tr.doc.UserCount, seed)
	records := make([]models.CallRecord, models.CallSlots)
	for i, p := range pairs {
		records[i] = models.CallRecord{Slot: i + 1}
		if p.CallerIdx >= 0 && p.CallerIdx < tr.doc.UserCount {
			records[i].CallerName = tr.doc.Mates[p.CallerIdx].Name
		}
		if p.PartnerIdx >= 0 && p.PartnerIdx < tr.doc.UserCount {
			records[i].PartnerName = tr.doc.Mates[p.PartnerIdx].DisplayName()
		}
	}
	return records
}

// synthesizeHabits builds blank checklists for the full roster from the
// current label schema.
func (tr *Tracker) synthesizeHabits() []models.HabitRecord {
	records := make([]models.HabitRecord, models.MaxMates)
	for i := range records {
		checks := make([]models.CheckItem, models.MaxCheckItems)
		for idx := range checks {
			checks[idx] = models.CheckItem{
				ID:    fmt.Sprintf("check-%d", idx),
				Label: tr.doc.CheckLabels[idx],
			}
		}
		records[i] = models.HabitRecord{
			MateID:       models.MateID(i),
			MateName:     tr.doc.Mates[i].Name,
			CustomChecks: checks,
		}
	}
	return records
}

// padHabits widens loaded habit records to the full schema. Migrated v0
// days carry only as many rows and checks as the legacy data had, so
// short records are padded with blank checks and synthesized mates
// before anything indexes into them.
func (tr *Tracker) padHabits(records []models.HabitRecord) []models.HabitRecord {
	out := cloneHabits(records)
	if len(out) > models.MaxMates {
		out = out[:models.MaxMates]
	}
	for i := range out {
		for len(out[i].CustomChecks) < models.MaxCheckItems {
			idx := len(out[i].CustomChecks)
			out[i].CustomChecks = append(out[i].CustomChecks, models.CheckItem{
				ID:    fmt.Sprintf("check-%d", idx),
				Label: tr.doc.CheckLabels[idx],
			})
		}
	}
	for len(out) < models.MaxMates {
		i := len(out)
		checks := make([]models.CheckItem, models.MaxCheckItems)
		for idx := range checks {
			checks[idx] = models.CheckItem{
				ID:    fmt.Sprintf("check-%d", idx),
				Label: tr.doc.CheckLabels[idx],
			}
		}
		out = append(out, models.HabitRecord{
			MateID:       models.MateID(i),
			MateName:     tr.doc.Mates[i].Name,
			CustomChecks: checks,
		})
	}
	return out
}

// ToggleCallCheck flips the progress check of a call row. Edits to the
// active date go through the current view and mirror into history;
// other days mutate history directly, lazily creating the day from the
// roster snapshot.
func (tr *Tracker) ToggleCallCheck(idx int, dayKey string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if idx < 0 || idx >= models.CallSlots {
		return false
	}
	if dayKey == tr.selected {
		if idx >= len(tr.currentCalls) {
			return false
		}
		tr.currentCalls[idx].ProgressCheck = !tr.currentCalls[idx].ProgressCheck
		tr.doc.MateHistory[tr.selected] = cloneCalls(tr.currentCalls)
		return true
	}
	records, ok := tr.doc.MateHistory[dayKey]
	if !ok {
		records = tr.blankCalls()
	}
	if idx >= len(records) {
		return false
	}
	records[idx].ProgressCheck = !records[idx].ProgressCheck
	tr.doc.MateHistory[dayKey] = records
	return true
}

// ToggleHabitCheck flips one habit check for a mate, with the same
// active-date write-through rules as ToggleCallCheck.
func (tr *Tracker) ToggleHabitCheck(mateIdx, checkIdx int, dayKey string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if mateIdx < 0 || mateIdx >= models.MaxMates || checkIdx < 0 || checkIdx >= models.MaxCheckItems {
		return false
	}
	if dayKey == tr.selected {
		tr.currentHabits[mateIdx].CustomChecks[checkIdx].Checked = !tr.currentHabits[mateIdx].CustomChecks[checkIdx].Checked
		tr.doc.HabitHistory[tr.selected] = cloneHabits(tr.currentHabits)
		return true
	}
	records, ok := tr.doc.HabitHistory[dayKey]
	if !ok {
		records = tr.synthesizeHabits()
	} else {
		records = tr.padHabits(records)
	}
	records[mateIdx].CustomChecks[checkIdx].Checked = !records[mateIdx].CustomChecks[checkIdx].Checked
	tr.doc.HabitHistory[dayKey] = records
	return true
}

// blankCalls is the lazy-creation roster snapshot for an untouched day:
// callers in roster order, no partners, nothing checked.
func (tr *Tracker) blankCalls() []models.CallRecord {
	records := make([]models.CallRecord, models.CallSlots)
	for i := range records {
		records[i] = models.CallRecord{Slot: i + 1, CallerName: tr.doc.Mates[i].Name}
	}
	return records
}

// ApplyRandomMatching re-derives the pairing with a jittered seed and
// propagates the new assignment across the active week, preserving each
// day's existing progress checks.
func (tr *Tracker) ApplyRandomMatching(jitter int) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	day, err := dateutil.ParseDayKey(tr.selected)
	if err != nil {
		return fmt.Errorf("apply matching: %w", err)
	}
	base := tr.generateCalls(dateutil.WeekSeed(day) + jitter)
	for _, key := range dateutil.WeekDates(day) {
		existing := tr.doc.MateHistory[key]
		updated := cloneCalls(base)
		for i := range updated {
			if i < len(existing) {
				updated[i].ProgressCheck = existing[i].ProgressCheck
			}
		}
		tr.doc.MateHistory[key] = updated
	}
	tr.currentCalls = cloneCalls(tr.doc.MateHistory[tr.selected])
	return nil
}

// CopyDayToWorkweek copies the active day's call assignments over the
// Monday..Friday of its week, keeping each target day's progress checks.
func (tr *Tracker) CopyDayToWorkweek() error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	day, err := dateutil.ParseDayKey(tr.selected)
	if err != nil {
		return fmt.Errorf("copy week: %w", err)
	}
	for _, key := range dateutil.WorkweekDates(day) {
		existing := tr.doc.MateHistory[key]
		updated := cloneCalls(tr.currentCalls)
		for i := range updated {
			if i < len(existing) {
				updated[i].ProgressCheck = existing[i].ProgressCheck
			} else {
				updated[i].ProgressCheck = false
			}
		}
		tr.doc.MateHistory[key] = updated
	}
	tr.currentCalls = cloneCalls(tr.doc.MateHistory[tr.selected])
	return nil
}

// Snapshot folds the current view under the active date and returns a
// deep copy of the whole document, ready to persist.
func (tr *Tracker) Snapshot() *models.Document {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.doc.MateHistory[tr.selected] = cloneCalls(tr.currentCalls)
	tr.doc.HabitHistory[tr.selected] = cloneHabits(tr.currentHabits)
	return cloneDocument(tr.doc)
}

// --- roster & settings setters ---

// SetMateName renames a roster member and mirrors the new name into both
// current views: the habit record and any call rows carrying the old
// name. Historical records keep the name they were written with.
func (tr *Tracker) SetMateName(id models.MateID, name string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if !id.Valid() {
		return false
	}
	old := tr.doc.Mates[id].Name
	tr.doc.Mates[id].Name = name
	tr.currentHabits[id].MateName = name
	tr.doc.HabitHistory[tr.selected] = cloneHabits(tr.currentHabits)
	if old != "" {
		for i := range tr.currentCalls {
			if tr.currentCalls[i].CallerName == old {
				tr.currentCalls[i].CallerName = name
			}
			if tr.currentCalls[i].PartnerName == old {
				tr.currentCalls[i].PartnerName = name
			}
		}
		tr.doc.MateHistory[tr.selected] = cloneCalls(tr.currentCalls)
	}
	return true
}

// SetMateContact updates a roster member's contact field.
func (tr *Tracker) SetMateContact(id models.MateID, contact string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if !id.Valid() {
		return false
	}
	tr.doc.Mates[id].Contact = contact
	return true
}

// SetCallerName edits one call row's caller with write-through.
func (tr *Tracker) SetCallerName(idx int, name string) bool {
	return tr.setCallField(idx, func(r *models.CallRecord) { r.CallerName = name })
}

// SetCallPartner edits one call row's partner with write-through.
func (tr *Tracker) SetCallPartner(idx int, name string) bool {
	return tr.setCallField(idx, func(r *models.CallRecord) { r.PartnerName = name })
}

func (tr *Tracker) setCallField(idx int, set func(*models.CallRecord)) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if idx < 0 || idx >= len(tr.currentCalls) {
		return false
	}
	set(&tr.currentCalls[idx])
	tr.doc.MateHistory[tr.selected] = cloneCalls(tr.currentCalls)
	return true
}

// SetHabitNote updates a mate's note for the active day.
func (tr *Tracker) SetHabitNote(mateIdx int, note string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if mateIdx < 0 || mateIdx >= len(tr.currentHabits) {
		return false
	}
	tr.currentHabits[mateIdx].Note = note
	tr.doc.HabitHistory[tr.selected] = cloneHabits(tr.currentHabits)
	return true
}

// SetCheckLabel renames a habit column. The current view picks the new
// label up immediately; history keeps the label each day was written
// with.
func (tr *Tracker) SetCheckLabel(idx int, label string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if idx < 0 || idx >= models.MaxCheckItems {
		return false
	}
	tr.doc.CheckLabels[idx] = label
	for i := range tr.currentHabits {
		tr.currentHabits[i].CustomChecks[idx].Label = label
	}
	return true
}

// SetCheckWeeklyGoal sets the weekly goal (1..7) for one habit column.
func (tr *Tracker) SetCheckWeeklyGoal(idx, goal int) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if idx < 0 || idx >= models.MaxCheckItems || goal < 1 || goal > 7 {
		return false
	}
	tr.doc.CheckWeeklyGoal[idx] = goal
	return true
}

// SetMainWeeklyGoal sets the weekly mate-call goal (1..7).
func (tr *Tracker) SetMainWeeklyGoal(goal int) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if goal < 1 || goal > 7 {
		return false
	}
	tr.doc.MainWeeklyGoal = goal
	return true
}

// SetUserCount sets the number of active roster slots (1..MaxMates).
func (tr *Tracker) SetUserCount(n int) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if n < 1 || n > models.MaxMates {
		return false
	}
	tr.doc.UserCount = n
	return true
}

// SetCheckItemCount sets how many habit columns are active (1..10).
func (tr *Tracker) SetCheckItemCount(n int) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if n < 1 || n > models.MaxCheckItems {
		return false
	}
	tr.doc.CheckItemCount = n
	return true
}

// SetBankInfo updates the fine deposit account line.
func (tr *Tracker) SetBankInfo(info string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.doc.BankInfo = info
}

// SetFineNotice updates the free-text fine notice.
func (tr *Tracker) SetFineNotice(notice string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.doc.FineNotice = notice
}

// SetSettingsLocked toggles the settings lock flag.
func (tr *Tracker) SetSettingsLocked(locked bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.doc.SettingsLocked = locked
}

// SetUserInfoLocked toggles the roster lock flag.
func (tr *Tracker) SetUserInfoLocked(locked bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.doc.UserInfoLocked = locked
}

// --- fine log ---

// AddFine appends a fine entry and returns its id.
func (tr *Tracker) AddFine(date string, amount float64, name, note string) (string, error) {
	if amount < 0 {
		return "", fmt.Errorf("fine amount must not be negative")
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	record := models.FineRecord{
		ID:     uuid.NewString(),
		Date:   date,
		Amount: amount,
		Name:   name,
		Note:   note,
	}
	tr.doc.FineRecords = append(tr.doc.FineRecords, record)
	return record.ID, nil
}

// RemoveFine deletes the fine entry with the given id.
func (tr *Tracker) RemoveFine(id string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	for i, r := range tr.doc.FineRecords {
		if r.ID == id {
			tr.doc.FineRecords = append(tr.doc.FineRecords[:i], tr.doc.FineRecords[i+1:]...)
			return true
		}
	}
	return false
}

// TotalFine sums all fine amounts.
func (tr *Tracker) TotalFine() float64 {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	total := 0.0
	for _, r := range tr.doc.FineRecords {
		total += r.Amount
	}
	return total
}

// FineTotalsByName sums fines per mate name.
func (tr *Tracker) FineTotalsByName() map[string]float64 {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	totals := make(map[string]float64)
	for _, r := range tr.doc.FineRecords {
		totals[r.Name] += r.Amount
	}
	return totals
}

// FineRecords returns a copy of the fine log.
func (tr *Tracker) FineRecords() []models.FineRecord {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]models.FineRecord, len(tr.doc.FineRecords))
	copy(out, tr.doc.FineRecords)
	return out
}

// --- admin gate ---

// HasAdminPassword reports whether an admin password has been set.
func (tr *Tracker) HasAdminPassword() bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.doc.AdminPassword != ""
}

// CheckAdminPassword compares the candidate against the stored password.
func (tr *Tracker) CheckAdminPassword(candidate string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.doc.AdminPassword != "" && tr.doc.AdminPassword == candidate
}

// SetAdminPassword stores the shared admin password.
func (tr *Tracker) SetAdminPassword(password string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.doc.AdminPassword = password
}

// --- read accessors for the handlers ---

// Mates returns a copy of the active roster slots.
func (tr *Tracker) Mates() []models.Mate {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]models.Mate, tr.doc.UserCount)
	copy(out, tr.doc.Mates[:tr.doc.UserCount])
	return out
}

// CurrentCalls returns a copy of the active day's call rows.
func (tr *Tracker) CurrentCalls() []models.CallRecord {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return cloneCalls(tr.currentCalls)
}

// CurrentHabits returns a copy of the active day's checklists for the
// active roster.
func (tr *Tracker) CurrentHabits() []models.HabitRecord {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	records := cloneHabits(tr.currentHabits)
	if len(records) > tr.doc.UserCount {
		records = records[:tr.doc.UserCount]
	}
	return records
}

// Settings returns a copy of the tunable settings.
func (tr *Tracker) Settings() Settings {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	labels := make([]string, len(tr.doc.CheckLabels))
	copy(labels, tr.doc.CheckLabels)
	goals := make([]int, len(tr.doc.CheckWeeklyGoal))
	copy(goals, tr.doc.CheckWeeklyGoal)
	return Settings{
		UserCount:       tr.doc.UserCount,
		CheckItemCount:  tr.doc.CheckItemCount,
		CheckLabels:     labels,
		CheckWeeklyGoal: goals,
		MainWeeklyGoal:  tr.doc.MainWeeklyGoal,
		SettingsLocked:  tr.doc.SettingsLocked,
		UserInfoLocked:  tr.doc.UserInfoLocked,
		BankInfo:        tr.doc.BankInfo,
		FineNotice:      tr.doc.FineNotice,
	}
}

// Settings is the read-only view of the tunables handed to handlers.
type Settings struct {
	UserCount       int
	CheckItemCount  int
	CheckLabels     []string
	CheckWeeklyGoal []int
	MainWeeklyGoal  int
	SettingsLocked  bool
	UserInfoLocked  bool
	BankInfo        string
	FineNotice      string
}

// --- clone helpers ---

func cloneCalls(records []models.CallRecord) []models.CallRecord {
	out := make([]models.CallRecord, len(records))
	copy(out, records)
	return out
}

func cloneHabits(records []models.HabitRecord) []models.HabitRecord {
	out := make([]models.HabitRecord, len(records))
	for i, r := range records {
		checks := make([]models.CheckItem, len(r.CustomChecks))
		copy(checks, r.CustomChecks)
		r.CustomChecks = checks
		out[i] = r
	}
	return out
}

func cloneDocument(doc *models.Document) *models.Document {
	out := *doc
	out.Mates = append([]models.Mate(nil), doc.Mates...)
	out.FineRecords = append([]models.FineRecord(nil), doc.FineRecords...)
	out.CheckLabels = append([]string(nil), doc.CheckLabels...)
	out.CheckWeeklyGoal = append([]int(nil), doc.CheckWeeklyGoal...)
	out.MateHistory = make(map[string][]models.CallRecord, len(doc.MateHistory))
	for k, v := range doc.MateHistory {
		out.MateHistory[k] = cloneCalls(v)
	}
	out.HabitHistory = make(map[string][]models.HabitRecord, len(doc.HabitHistory))
	for k, v := range doc.HabitHistory {
		out.HabitHistory[k] = cloneHabits(v)
	}
	out.DailyHistory = nil
	return &out
}
