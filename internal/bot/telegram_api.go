package bot

import (
	tgbot "github.com/go-telegram/bot"

	"gitlab.com/kofiasante/diligent-bot/internal/bot/mocks"
)

// TelegramAPI is the subset of the Telegram client used by handlers.
type TelegramAPI = mocks.TelegramAPI

// Compile-time check that the real bot satisfies the interface.
var _ TelegramAPI = (*tgbot.Bot)(nil)
