package bot

import (
	tgmodels "github.com/go-telegram/bot/models"

	"gitlab.com/kofiasante/diligent-bot/internal/models"
)

// menuKeyboard is the field-selection reply keyboard shown with every
// plain reply.
func menuKeyboard() *tgmodels.ReplyKeyboardMarkup {
	return &tgmodels.ReplyKeyboardMarkup{
		Keyboard: [][]tgmodels.KeyboardButton{
			{
				{Text: string(models.FieldName)},
				{Text: string(models.FieldType)},
			},
			{
				{Text: string(models.FieldAmount)},
				{Text: string(models.FieldNotes)},
				{Text: string(models.FieldApt)},
			},
			{
				{Text: models.DoneLabel},
			},
		},
		OneTimeKeyboard: true,
		ResizeKeyboard:  true,
	}
}

// choiceKeyboard renders options as one inline button per row, with the
// option value as the callback payload.
func choiceKeyboard(choices []models.Choice) *tgmodels.InlineKeyboardMarkup {
	rows := make([][]tgmodels.InlineKeyboardButton, 0, len(choices))
	for _, c := range choices {
		rows = append(rows, []tgmodels.InlineKeyboardButton{
			{Text: c.Label, CallbackData: c.Value},
		})
	}
	return &tgmodels.InlineKeyboardMarkup{InlineKeyboard: rows}
}
