package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"checkmate-bot/internal/config"
	"checkmate-bot/internal/database"
	"checkmate-bot/internal/dateutil"
	"checkmate-bot/internal/models"
	"checkmate-bot/internal/state"
	"checkmate-bot/internal/syncer"
	"checkmate-bot/internal/utils"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	tracker *state.Tracker
	sync    *syncer.Syncer
	db      *database.DB
	config  *config.Config

	mu    sync.Mutex
	admin map[int64]bool // user IDs with an active admin session
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(tracker *state.Tracker, sync *syncer.Syncer, db *database.DB, config *config.Config) *CommandHandler {
	return &CommandHandler{
		tracker: tracker,
		sync:    sync,
		db:      db,
		config:  config,
		admin:   map[int64]bool{},
	}
}

// isAdmin reports whether the user holds an admin session.
func (h *CommandHandler) isAdmin(userID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.admin[userID]
}

func (h *CommandHandler) setAdmin(userID int64, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if on {
		h.admin[userID] = true
	} else {
		delete(h.admin, userID)
	}
}

// SendToday sends the mate-call table for the active date with the
// toggle keyboard.
func (h *CommandHandler) SendToday(bot *tgbotapi.BotAPI, chatID int64) {
	day := h.tracker.SelectedDate()
	records := h.tracker.CurrentCalls()

	var text string
	text += "📞 **MATE CALL STATUS**\n"
	text += fmt.Sprintf("📅 %s (week %d)\n", day, weekOf(day))
	text += fmt.Sprintf("💾 Save status: %s\n\n", h.sync.Status())
	text += "Tap a row to toggle today's check-in.\n"

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = utils.BuildCallKeyboard(records, day)
	bot.Send(msg)
}

// SendHabits sends the mate picker that opens per-mate habit checklists.
func (h *CommandHandler) SendHabits(bot *tgbotapi.BotAPI, chatID int64) {
	day := h.tracker.SelectedDate()
	mates := h.tracker.Mates()

	text := "✅ **HABIT CHECK STATUS**\n"
	text += fmt.Sprintf("📅 %s\n\n", day)
	text += "Pick a mate to open their checklist."

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = utils.BuildMatePickerKeyboard(mates, day)
	bot.Send(msg)
}

// SendChecklist sends one mate's habit keyboard for the given day.
func (h *CommandHandler) SendChecklist(bot *tgbotapi.BotAPI, chatID int64, mateIdx int, dayKey string) {
	habits := h.tracker.CurrentHabits()
	if mateIdx < 0 || mateIdx >= len(habits) {
		bot.Send(tgbotapi.NewMessage(chatID, "Unknown mate."))
		return
	}
	settings := h.tracker.Settings()
	record := habits[mateIdx]

	text := fmt.Sprintf("✅ **%s** — %s\n", displayOr(record.MateName, "Mate"), dayKey)
	if record.Note != "" {
		text += fmt.Sprintf("📝 %s\n", record.Note)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = utils.BuildHabitKeyboard(mateIdx, record, settings.CheckItemCount, dayKey)
	bot.Send(msg)
}

// SwitchDate changes the active date (for /date YYYY-MM-DD).
func (h *CommandHandler) SwitchDate(bot *tgbotapi.BotAPI, chatID int64, arg string) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		arg = dateutil.DayKey(time.Now())
	}
	if err := h.tracker.SwitchDate(arg); err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "Use /date YYYY-MM-DD."))
		return
	}
	h.sync.MarkDirty()
	h.SendToday(bot, chatID)
}

// SendMates sends the roster.
func (h *CommandHandler) SendMates(bot *tgbotapi.BotAPI, chatID int64) {
	mates := h.tracker.Mates()

	text := "👥 **ROSTER**\n"
	for _, m := range mates {
		contact := m.Contact
		if contact == "" {
			contact = "-"
		}
		text += fmt.Sprintf("   %s. %s (%s)\n", m.ID.Letter(), displayOr(m.Name, "unset"), contact)
	}
	text += "\n✏️ /rename <letter> <name> — rename a mate (admin)"

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	bot.Send(msg)
}

// RenameMate handles /rename A Alice (admin only).
func (h *CommandHandler) RenameMate(bot *tgbotapi.BotAPI, chatID, userID int64, args string) {
	if !h.requireAdmin(bot, chatID, userID) {
		return
	}
	fields := strings.Fields(args)
	if len(fields) < 2 {
		bot.Send(tgbotapi.NewMessage(chatID, "Use /rename <letter> <name>."))
		return
	}
	id, ok := parseMateLetter(fields[0])
	if !ok {
		bot.Send(tgbotapi.NewMessage(chatID, "Mate letter must be A..J."))
		return
	}
	name := strings.Join(fields[1:], " ")
	if h.tracker.SetMateName(id, name) {
		h.sync.MarkDirty()
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Mate %s is now %s.", id.Letter(), name)))
	}
}

// SendWeek sends the weekly aggregation for every active mate.
func (h *CommandHandler) SendWeek(bot *tgbotapi.BotAPI, chatID int64) {
	day := h.tracker.SelectedDate()
	settings := h.tracker.Settings()
	anchor, err := dateutil.ParseDayKey(day)
	if err != nil {
		anchor = time.Now()
	}

	var text string
	text += "📈 **WEEKLY STATUS**\n"
	text += fmt.Sprintf("📅 %s ~ %s (week %d)\n\n",
		dateutil.DisplayDate(dateutil.MondayOfWeek(anchor)),
		dateutil.DisplayDate(dateutil.MondayOfWeek(anchor).AddDate(0, 0, 6)),
		dateutil.ISOWeekNumber(anchor))

	text += fmt.Sprintf("📞 **Mate calls** (goal %d/week):\n", settings.MainWeeklyGoal)
	for i, r := range h.tracker.CurrentCalls() {
		count := h.tracker.WeeklyCallCount(i, day)
		text += fmt.Sprintf("   %s: %d/7 %s\n", displayOr(r.CallerName, fmt.Sprintf("Row %d", r.Slot)),
			count, goalMark(count, settings.MainWeeklyGoal))
	}

	text += "\n✅ **Habits:**\n"
	for mateIdx, record := range h.tracker.CurrentHabits() {
		name := displayOr(record.MateName, record.MateID.Letter())
		text += fmt.Sprintf("   **%s**\n", name)
		for checkIdx := 0; checkIdx < settings.CheckItemCount; checkIdx++ {
			count := h.tracker.WeeklyHabitCount(mateIdx, checkIdx, day)
			goal := settings.CheckWeeklyGoal[checkIdx]
			text += fmt.Sprintf("      %s: %d/%d %s\n", settings.CheckLabels[checkIdx], count, goal, goalMark(count, goal))
		}
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	bot.Send(msg)
}

// SendMonth sends the monthly calendar rollup for the active date's month.
func (h *CommandHandler) SendMonth(bot *tgbotapi.BotAPI, chatID int64) {
	day, err := dateutil.ParseDayKey(h.tracker.SelectedDate())
	if err != nil {
		day = time.Now()
	}
	overview := h.tracker.Overview(day.Year(), day.Month())

	var text string
	text += fmt.Sprintf("📆 **%s %d**\n", overview.Month, overview.Year)
	text += "═══════════════════\n\n"

	tracked := 0
	for _, d := range overview.Days {
		if !d.HasData {
			continue
		}
		tracked++
		if len(d.MissedCallers) > 0 {
			text += fmt.Sprintf("   %02d: missed %s\n", d.Day, strings.Join(d.MissedCallers, ", "))
		} else {
			text += fmt.Sprintf("   %02d: all clear ✅\n", d.Day)
		}
	}
	if tracked == 0 {
		text += "   ❌ No tracked days this month\n"
	}

	text += "\n🎯 **Weekly goal misses:**\n"
	anyMiss := false
	for _, w := range overview.Weeks {
		if len(w.MissedNames) == 0 {
			continue
		}
		anyMiss = true
		text += fmt.Sprintf("   Week of %s: %s\n", w.MondayKey, strings.Join(w.MissedNames, ", "))
	}
	if !anyMiss {
		text += "   ✅ Everyone met the weekly goal\n"
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	bot.Send(msg)
}

// AddFine handles /fine <name> <amount> [note].
func (h *CommandHandler) AddFine(bot *tgbotapi.BotAPI, chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		bot.Send(tgbotapi.NewMessage(chatID, "Use /fine <name> <amount> [note]."))
		return
	}
	amount, err := utils.ValidateAmount(fields[1])
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "Invalid amount: "+err.Error()))
		return
	}
	note := strings.Join(fields[2:], " ")
	id, err := h.tracker.AddFine(dateutil.DayKey(time.Now()), amount, fields[0], note)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "Could not record fine: "+err.Error()))
		return
	}
	h.sync.MarkDirty()
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("💰 Fine recorded for **%s**: %.0f\nRemove with /unfine %s", fields[0], amount, id))
	msg.ParseMode = "Markdown"
	bot.Send(msg)
}

// RemoveFine handles /unfine <id>.
func (h *CommandHandler) RemoveFine(bot *tgbotapi.BotAPI, chatID int64, args string) {
	id := strings.TrimSpace(args)
	if id == "" || !h.tracker.RemoveFine(id) {
		bot.Send(tgbotapi.NewMessage(chatID, "No fine entry with that id."))
		return
	}
	h.sync.MarkDirty()
	bot.Send(tgbotapi.NewMessage(chatID, "Fine entry removed."))
}

// SendFines sends the fine status: totals, per-mate accumulation, bank
// info and the shared notice.
func (h *CommandHandler) SendFines(bot *tgbotapi.BotAPI, chatID int64) {
	settings := h.tracker.Settings()
	totals := h.tracker.FineTotalsByName()

	var text string
	text += "💰 **FINE STATUS**\n"
	text += "═══════════════════\n\n"
	text += fmt.Sprintf("Total accumulated: **%.0f**\n\n", h.tracker.TotalFine())

	if len(totals) > 0 {
		names := make([]string, 0, len(totals))
		for name := range totals {
			names = append(names, name)
		}
		sort.Strings(names)
		text += "👥 **Per mate:**\n"
		for _, name := range names {
			text += fmt.Sprintf("   %s: %.0f\n", name, totals[name])
		}
		text += "\n"
	}

	if settings.BankInfo != "" {
		text += fmt.Sprintf("🏦 Deposit account: %s\n", settings.BankInfo)
	}
	if settings.FineNotice != "" {
		text += fmt.Sprintf("📢 %s\n", settings.FineNotice)
	}
	text += "\n🔄 /fine <name> <amount> to add an entry, /export fines for CSV"

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	bot.Send(msg)
}

// Match re-derives the weekly pairing and propagates it across the week
// (admin only, matching is normally locked to the calendar seed).
func (h *CommandHandler) Match(bot *tgbotapi.BotAPI, chatID, userID int64) {
	if !h.requireAdmin(bot, chatID, userID) {
		return
	}
	if err := h.tracker.ApplyRandomMatching(rand.Intn(10000)); err != nil {
		log.Println("Matching failed:", err)
		bot.Send(tgbotapi.NewMessage(chatID, "Matching failed."))
		return
	}
	h.sync.MarkDirty()
	h.SendToday(bot, chatID)
}

// CopyWeek copies the active day's assignments over Monday..Friday.
func (h *CommandHandler) CopyWeek(bot *tgbotapi.BotAPI, chatID, userID int64) {
	if !h.requireAdmin(bot, chatID, userID) {
		return
	}
	if err := h.tracker.CopyDayToWorkweek(); err != nil {
		log.Println("Copy week failed:", err)
		bot.Send(tgbotapi.NewMessage(chatID, "Copy failed."))
		return
	}
	h.sync.MarkDirty()
	bot.Send(tgbotapi.NewMessage(chatID, "Current day's assignments copied to Mon-Fri."))
}

// SendSettings sends the goal and schema configuration.
func (h *CommandHandler) SendSettings(bot *tgbotapi.BotAPI, chatID int64) {
	s := h.tracker.Settings()

	var text string
	text += "⚙️ **SETTINGS**\n"
	text += fmt.Sprintf("   • Active mates: %d\n", s.UserCount)
	text += fmt.Sprintf("   • Habit columns: %d\n", s.CheckItemCount)
	text += fmt.Sprintf("   • Mate-call weekly goal: %d\n", s.MainWeeklyGoal)
	for i := 0; i < s.CheckItemCount; i++ {
		text += fmt.Sprintf("   • %s: %d/week\n", s.CheckLabels[i], s.CheckWeeklyGoal[i])
	}
	text += "\n🔧 Admin: /set users N | /set items N | /set goal N | /set habitgoal I N | /set label I <text>"

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	bot.Send(msg)
}

// Set dispatches the /set subcommands (admin only).
func (h *CommandHandler) Set(bot *tgbotapi.BotAPI, chatID, userID int64, args string) {
	if !h.requireAdmin(bot, chatID, userID) {
		return
	}
	fields := strings.Fields(args)
	if len(fields) < 2 {
		bot.Send(tgbotapi.NewMessage(chatID, "Use /settings to see the available keys."))
		return
	}

	ok := false
	switch fields[0] {
	case "users":
		ok = withInt(fields[1], h.tracker.SetUserCount)
	case "items":
		ok = withInt(fields[1], h.tracker.SetCheckItemCount)
	case "goal":
		ok = withInt(fields[1], h.tracker.SetMainWeeklyGoal)
	case "habitgoal":
		if len(fields) >= 3 {
			ok = withTwoInts(fields[1], fields[2], h.tracker.SetCheckWeeklyGoal)
		}
	case "label":
		if len(fields) >= 3 {
			label := strings.Join(fields[2:], " ")
			ok = withInt(fields[1], func(i int) bool { return h.tracker.SetCheckLabel(i-1, label) })
		}
	case "bank":
		h.tracker.SetBankInfo(strings.Join(fields[1:], " "))
		ok = true
	case "notice":
		h.tracker.SetFineNotice(strings.Join(fields[1:], " "))
		ok = true
	}

	if !ok {
		bot.Send(tgbotapi.NewMessage(chatID, "Could not apply that setting."))
		return
	}
	h.sync.MarkDirty()
	bot.Send(tgbotapi.NewMessage(chatID, "Setting updated."))
}

// Admin handles the shared-password gate: /admin <password> opens a
// session, /admin set <password> does the first-run setup, /admin logout
// drops the session.
func (h *CommandHandler) Admin(bot *tgbotapi.BotAPI, chatID, userID int64, args string) {
	fields := strings.Fields(args)
	switch {
	case len(fields) == 0:
		bot.Send(tgbotapi.NewMessage(chatID, "Use /admin <password>, /admin set <password> or /admin logout."))
	case fields[0] == "logout":
		h.setAdmin(userID, false)
		bot.Send(tgbotapi.NewMessage(chatID, "Admin session closed."))
	case fields[0] == "set":
		if len(fields) < 2 {
			bot.Send(tgbotapi.NewMessage(chatID, "Use /admin set <password>."))
			return
		}
		if h.tracker.HasAdminPassword() && !h.isAdmin(userID) {
			bot.Send(tgbotapi.NewMessage(chatID, "A password is already set. Authenticate first."))
			return
		}
		h.tracker.SetAdminPassword(fields[1])
		h.setAdmin(userID, true)
		h.sync.MarkDirty()
		bot.Send(tgbotapi.NewMessage(chatID, "Admin password set. Session opened."))
	default:
		if h.tracker.CheckAdminPassword(fields[0]) {
			h.setAdmin(userID, true)
			bot.Send(tgbotapi.NewMessage(chatID, "Admin session opened."))
		} else {
			bot.Send(tgbotapi.NewMessage(chatID, "Wrong admin password."))
		}
	}
}

func (h *CommandHandler) requireAdmin(bot *tgbotapi.BotAPI, chatID, userID int64) bool {
	if h.isAdmin(userID) {
		return true
	}
	bot.Send(tgbotapi.NewMessage(chatID, "Admin access required. Use /admin <password>."))
	return false
}

// Reset replaces the stored document with the compiled-in defaults
// (admin only). The in-memory tracker is rebuilt by a restart; this is
// the wholesale document replace.
func (h *CommandHandler) Reset(bot *tgbotapi.BotAPI, chatID, userID int64) {
	if !h.requireAdmin(bot, chatID, userID) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if h.db == nil {
		bot.Send(tgbotapi.NewMessage(chatID, "No remote store configured."))
		return
	}
	if err := h.db.Reset(ctx); err != nil {
		log.Println("Failed to reset document:", err)
		bot.Send(tgbotapi.NewMessage(chatID, "Failed to reset the stored data."))
		return
	}
	bot.Send(tgbotapi.NewMessage(chatID, "Stored data reset to defaults. Restart the bot to pick it up."))
}

// Export sends CSV exports: /export week or /export fines.
func (h *CommandHandler) Export(bot *tgbotapi.BotAPI, chatID int64, args string) {
	switch strings.TrimSpace(args) {
	case "fines":
		h.exportFines(bot, chatID)
	default:
		h.exportWeek(bot, chatID)
	}
}

func (h *CommandHandler) exportWeek(bot *tgbotapi.BotAPI, chatID int64) {
	day := h.tracker.SelectedDate()
	settings := h.tracker.Settings()
	anchor, err := dateutil.ParseDayKey(day)
	if err != nil {
		anchor = time.Now()
	}
	weekStart := dateutil.DayKey(dateutil.MondayOfWeek(anchor))

	var rows []utils.WeeklyReportRow
	for mateIdx, record := range h.tracker.CurrentHabits() {
		row := utils.WeeklyReportRow{MateName: displayOr(record.MateName, record.MateID.Letter())}
		if mateIdx < len(h.tracker.CurrentCalls()) {
			row.CallCount = h.tracker.WeeklyCallCount(mateIdx, day)
		}
		for checkIdx := 0; checkIdx < settings.CheckItemCount; checkIdx++ {
			row.HabitCounts = append(row.HabitCounts, h.tracker.WeeklyHabitCount(mateIdx, checkIdx, day))
		}
		rows = append(rows, row)
	}

	var buffer bytes.Buffer
	err = utils.GenerateWeeklyCSV(weekStart, settings.CheckLabels[:settings.CheckItemCount],
		settings.CheckWeeklyGoal[:settings.CheckItemCount], settings.MainWeeklyGoal, rows, &buffer)
	if err != nil {
		log.Printf("Failed to generate weekly CSV: %v", err)
		bot.Send(tgbotapi.NewMessage(chatID, "⚠️ CSV generation failed."))
		return
	}

	document := tgbotapi.FileBytes{
		Name:  fmt.Sprintf("checkmate_week_%s.csv", weekStart),
		Bytes: buffer.Bytes(),
	}
	documentMsg := tgbotapi.NewDocument(chatID, document)
	documentMsg.Caption = fmt.Sprintf("📊 Weekly report for the week of %s", weekStart)
	bot.Send(documentMsg)
}

func (h *CommandHandler) exportFines(bot *tgbotapi.BotAPI, chatID int64) {
	records := h.tracker.FineRecords()

	var buffer bytes.Buffer
	if err := utils.GenerateFineCSV(records, &buffer); err != nil {
		log.Printf("Failed to generate fine CSV: %v", err)
		bot.Send(tgbotapi.NewMessage(chatID, "⚠️ CSV generation failed."))
		return
	}

	document := tgbotapi.FileBytes{
		Name:  fmt.Sprintf("checkmate_fines_%s.csv", dateutil.DayKey(time.Now())),
		Bytes: buffer.Bytes(),
	}
	documentMsg := tgbotapi.NewDocument(chatID, document)
	documentMsg.Caption = fmt.Sprintf("💰 Fine log (%d entries, %.0f total)", len(records), h.tracker.TotalFine())
	bot.Send(documentMsg)
}

// AnnounceWeeklyMatching is the Monday-morning cron job: switch to today
// so the new week initializes (sibling inheritance or a fresh pairing)
// and post the assignment.
func (h *CommandHandler) AnnounceWeeklyMatching(bot *tgbotapi.BotAPI) {
	today := dateutil.DayKey(time.Now())
	if err := h.tracker.SwitchDate(today); err != nil {
		log.Println("Weekly announcement failed:", err)
		return
	}
	h.sync.MarkDirty()

	var text string
	text += "📣 **NEW WEEK — MATE CALL MATCHING**\n"
	text += "═══════════════════\n\n"
	for _, r := range h.tracker.CurrentCalls() {
		text += fmt.Sprintf("   %d. %s → %s\n", r.Slot, displayOr(r.CallerName, "(open)"), displayOr(r.PartnerName, "(open)"))
	}
	text += "\n🎯 Check in with /today every day!"

	msg := tgbotapi.NewMessage(h.config.ChatID, text)
	msg.ParseMode = "Markdown"
	bot.Send(msg)
}

// MonthlyFineSummary is the first-of-month cron job: post the fine
// rollup and the CSV export.
func (h *CommandHandler) MonthlyFineSummary(bot *tgbotapi.BotAPI) {
	h.SendFines(bot, h.config.ChatID)
	h.exportFines(bot, h.config.ChatID)
}

// SendHelp sends help information
func (h *CommandHandler) SendHelp(bot *tgbotapi.BotAPI, chatID int64) {
	helpText := `**🎯 Checkmate Bot**

**🏠 Daily tracking:**
• /today - Mate-call table with check-in buttons
• /habits - Open a mate's habit checklist
• /date YYYY-MM-DD - Switch the active date
• /week - Weekly counts vs goals
• /month - Monthly calendar rollup

**💰 Fines:**
• /fines - Fine status and per-mate totals
• /fine <name> <amount> [note] - Record a fine
• /unfine <id> - Remove a fine entry
• /export fines - Fine log CSV

**🔧 Management (admin):**
• /admin <password> - Open an admin session
• /mates, /rename <letter> <name> - Roster
• /match - Re-roll this week's pairing
• /copyweek - Copy today's assignment to Mon-Fri
• /settings, /set ... - Goals and labels
• /export - Weekly report CSV
• /reset - Replace stored data with defaults ⚠️

**💡 How it works:**
1. Every ISO week gets a deterministic mate-call pairing
2. Check-ins and habits are tracked per day
3. Weekly goals classify everyone as met/missed
4. Everything autosaves a few moments after each change`

	msg := tgbotapi.NewMessage(chatID, helpText)
	msg.ParseMode = "Markdown"
	bot.Send(msg)
}

// --- small shared helpers ---

func displayOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func goalMark(count, goal int) string {
	if state.MeetsGoal(count, goal) {
		return "✅"
	}
	return "❌"
}

func weekOf(dayKey string) int {
	day, err := dateutil.ParseDayKey(dayKey)
	if err != nil {
		return 0
	}
	return dateutil.ISOWeekNumber(day)
}

func parseMateLetter(s string) (models.MateID, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 || s[0] < 'A' || s[0] > 'J' {
		return 0, false
	}
	return models.MateID(s[0] - 'A'), true
}

func withInt(s string, fn func(int) bool) bool {
	n, err := parsePositiveInt(s)
	if err != nil {
		return false
	}
	return fn(n)
}

func withTwoInts(a, b string, fn func(int, int) bool) bool {
	i, err := parsePositiveInt(a)
	if err != nil {
		return false
	}
	n, err := parsePositiveInt(b)
	if err != nil {
		return false
	}
	return fn(i-1, n)
}

func parsePositiveInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("not a positive number: %q", s)
	}
	return n, nil
}
