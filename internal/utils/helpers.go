package utils

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"checkmate-bot/internal/models"
)

// ValidateAmount validates and parses a fine amount from string
func ValidateAmount(text string) (float64, error) {
	text = strings.TrimSpace(text)

	amount, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount format")
	}

	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	return amount, nil
}

// BuildCallKeyboard builds the inline keyboard for the daily mate-call
// table: one button per row toggling that row's progress check.
func BuildCallKeyboard(records []models.CallRecord, dayKey string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i, r := range records {
		mark := "⬜"
		if r.ProgressCheck {
			mark = "✅"
		}
		caller := r.CallerName
		if caller == "" {
			caller = fmt.Sprintf("Row %d", r.Slot)
		}
		label := fmt.Sprintf("%s %s → %s", mark, caller, r.PartnerName)
		btn := tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("call_%d_%s", i, dayKey))
		rows = append(rows, []tgbotapi.InlineKeyboardButton{btn})
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BuildHabitKeyboard builds the habit checklist keyboard for one mate,
// two habit buttons per row.
func BuildHabitKeyboard(mateIdx int, record models.HabitRecord, itemCount int, dayKey string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	checks := record.CustomChecks
	if itemCount < len(checks) {
		checks = checks[:itemCount]
	}
	for i := 0; i < len(checks); i += 2 {
		var row []tgbotapi.InlineKeyboardButton

		row = append(row, habitButton(mateIdx, i, checks[i], dayKey))
		if i+1 < len(checks) {
			row = append(row, habitButton(mateIdx, i+1, checks[i+1], dayKey))
		}

		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func habitButton(mateIdx, checkIdx int, check models.CheckItem, dayKey string) tgbotapi.InlineKeyboardButton {
	mark := "⬜"
	if check.Checked {
		mark = "✅"
	}
	return tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("%s %s", mark, check.Label),
		fmt.Sprintf("habit_%d_%d_%s", mateIdx, checkIdx, dayKey),
	)
}

// BuildMatePickerKeyboard lists the active roster so a user can open
// their own checklist.
func BuildMatePickerKeyboard(mates []models.Mate, dayKey string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i := 0; i < len(mates); i += 2 {
		var row []tgbotapi.InlineKeyboardButton
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			mates[i].DisplayName(), fmt.Sprintf("mate_%d_%s", i, dayKey)))
		if i+1 < len(mates) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				mates[i+1].DisplayName(), fmt.Sprintf("mate_%d_%s", i+1, dayKey)))
		}
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
