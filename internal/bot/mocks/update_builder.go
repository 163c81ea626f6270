package mocks

import (
	"github.com/go-telegram/bot/models"
)

// TextUpdate builds an update carrying one typed message.
func TextUpdate(chatID, userID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID: 1,
			Chat: models.Chat{
				ID:   chatID,
				Type: "private",
			},
			From: &models.User{
				ID:        userID,
				FirstName: "Test",
				Username:  "testuser",
			},
			Text: text,
		},
	}
}

// CallbackUpdate builds an update carrying one button press.
func CallbackUpdate(callbackID string, chatID, userID int64, data string) *models.Update {
	return &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID: callbackID,
			From: models.User{
				ID:        userID,
				FirstName: "Test",
				Username:  "testuser",
			},
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{
					ID: 10,
					Chat: models.Chat{
						ID:   chatID,
						Type: "private",
					},
				},
			},
			Data: data,
		},
	}
}
