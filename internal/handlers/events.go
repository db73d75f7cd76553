package handlers

import (
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"checkmate-bot/internal/config"
	"checkmate-bot/internal/database"
	"checkmate-bot/internal/state"
	"checkmate-bot/internal/syncer"
	"checkmate-bot/internal/utils"
)

// EventHandler handles Telegram events
type EventHandler struct {
	tracker  *state.Tracker
	sync     *syncer.Syncer
	config   *config.Config
	commands *CommandHandler
}

// NewEventHandler creates a new event handler
func NewEventHandler(tracker *state.Tracker, sync *syncer.Syncer, db *database.DB, config *config.Config) *EventHandler {
	return &EventHandler{
		tracker:  tracker,
		sync:     sync,
		config:   config,
		commands: NewCommandHandler(tracker, sync, db, config),
	}
}

// Commands exposes the command handler for cron wiring.
func (h *EventHandler) Commands() *CommandHandler {
	return h.commands
}

// HandleMessage handles incoming messages
func (h *EventHandler) HandleMessage(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	// Ignore messages from bots
	if message.From.IsBot {
		return
	}

	// Only process messages from the configured chat
	if !h.config.IsAuthorizedChat(message.Chat.ID) {
		return
	}

	if message.IsCommand() {
		h.handleCommand(bot, message)
	}
}

// handleCommand processes bot commands
func (h *EventHandler) handleCommand(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID
	args := message.CommandArguments()

	switch message.Command() {
	case "today":
		h.commands.SendToday(bot, chatID)
	case "habits":
		h.commands.SendHabits(bot, chatID)
	case "date":
		h.commands.SwitchDate(bot, chatID, args)
	case "week":
		h.commands.SendWeek(bot, chatID)
	case "month":
		h.commands.SendMonth(bot, chatID)
	case "mates":
		h.commands.SendMates(bot, chatID)
	case "rename":
		h.commands.RenameMate(bot, chatID, userID, args)
	case "fine":
		h.commands.AddFine(bot, chatID, args)
	case "unfine":
		h.commands.RemoveFine(bot, chatID, args)
	case "fines":
		h.commands.SendFines(bot, chatID)
	case "match":
		h.commands.Match(bot, chatID, userID)
	case "copyweek":
		h.commands.CopyWeek(bot, chatID, userID)
	case "settings":
		h.commands.SendSettings(bot, chatID)
	case "set":
		h.commands.Set(bot, chatID, userID, args)
	case "admin":
		h.commands.Admin(bot, chatID, userID, args)
	case "reset":
		h.commands.Reset(bot, chatID, userID)
	case "export":
		h.commands.Export(bot, chatID, args)
	case "help", "start":
		h.commands.SendHelp(bot, chatID)
	}
}

// HandleCallbackQuery handles inline keyboard presses: call-row and
// habit-check toggles plus the mate picker.
func (h *EventHandler) HandleCallbackQuery(bot *tgbotapi.BotAPI, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || !h.config.IsAuthorizedChat(query.Message.Chat.ID) {
		return
	}

	parts := strings.Split(query.Data, "_")
	handled := false

	switch {
	case len(parts) == 3 && parts[0] == "call":
		idx, err := strconv.Atoi(parts[1])
		if err == nil && h.tracker.ToggleCallCheck(idx, parts[2]) {
			h.sync.MarkDirty()
			h.refreshCallKeyboard(bot, query, parts[2])
			handled = true
		}
	case len(parts) == 4 && parts[0] == "habit":
		mateIdx, err1 := strconv.Atoi(parts[1])
		checkIdx, err2 := strconv.Atoi(parts[2])
		if err1 == nil && err2 == nil && h.tracker.ToggleHabitCheck(mateIdx, checkIdx, parts[3]) {
			h.sync.MarkDirty()
			h.refreshHabitKeyboard(bot, query, mateIdx, parts[3])
			handled = true
		}
	case len(parts) == 3 && parts[0] == "mate":
		mateIdx, err := strconv.Atoi(parts[1])
		if err == nil {
			h.commands.SendChecklist(bot, query.Message.Chat.ID, mateIdx, parts[2])
			handled = true
		}
	}

	text := "Updated"
	if !handled {
		text = "Nothing to do"
	}
	if _, err := bot.Request(tgbotapi.NewCallback(query.ID, text)); err != nil {
		log.Println("Failed to answer callback:", err)
	}
}

// refreshCallKeyboard redraws the call table keyboard after a toggle so
// the marks reflect the new state.
func (h *EventHandler) refreshCallKeyboard(bot *tgbotapi.BotAPI, query *tgbotapi.CallbackQuery, dayKey string) {
	if dayKey != h.tracker.SelectedDate() {
		return
	}
	markup := utils.BuildCallKeyboard(h.tracker.CurrentCalls(), dayKey)
	edit := tgbotapi.NewEditMessageReplyMarkup(query.Message.Chat.ID, query.Message.MessageID, markup)
	if _, err := bot.Send(edit); err != nil {
		log.Println("Failed to refresh keyboard:", err)
	}
}

func (h *EventHandler) refreshHabitKeyboard(bot *tgbotapi.BotAPI, query *tgbotapi.CallbackQuery, mateIdx int, dayKey string) {
	if dayKey != h.tracker.SelectedDate() {
		return
	}
	habits := h.tracker.CurrentHabits()
	if mateIdx >= len(habits) {
		return
	}
	settings := h.tracker.Settings()
	markup := utils.BuildHabitKeyboard(mateIdx, habits[mateIdx], settings.CheckItemCount, dayKey)
	edit := tgbotapi.NewEditMessageReplyMarkup(query.Message.Chat.ID, query.Message.MessageID, markup)
	if _, err := bot.Send(edit); err != nil {
		log.Println("Failed to refresh keyboard:", err)
	}
}
