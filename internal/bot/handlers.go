package bot

import (
	"context"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"gitlab.com/kofiasante/diligent-bot/internal/conversation"
	"gitlab.com/kofiasante/diligent-bot/internal/logger"
)

const somethingWrongMsg = "Sorry, something went wrong. Please try again later."

// handleStart handles the /start command.
func (b *Bot) handleStart(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleStartCore(ctx, tgBot, update)
}

// handleStartCore is the testable implementation of handleStart.
func (b *Bot) handleStartCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}

	reply := b.engine.Greeting(update.Message.Chat.ID)
	b.sendReply(ctx, tg, update.Message.Chat.ID, reply)
}

// defaultHandler routes everything that is not /start: typed text goes
// to the engine as a text event, button presses as choice events.
func (b *Bot) defaultHandler(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.defaultHandlerCore(ctx, tgBot, update)
}

// defaultHandlerCore is the testable implementation of defaultHandler.
func (b *Bot) defaultHandlerCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleChoiceCore(ctx, tg, update)
	case update.Message != nil && update.Message.Text != "":
		b.handleTextCore(ctx, tg, update)
	}
}

// handleTextCore feeds one typed message into the engine. Engine errors
// stop here: they are logged and answered with a generic failure text,
// and the session keeps whatever was collected so far.
func (b *Bot) handleTextCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	chatID := update.Message.Chat.ID

	reply, err := b.engine.HandleText(ctx, chatID, update.Message.Text)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("chat_hash", logger.HashChatID(chatID)).
			Msg("Failed to process message")
		b.sendReply(ctx, tg, chatID, conversation.Reply{Text: somethingWrongMsg})
		return
	}

	b.sendReply(ctx, tg, chatID, reply)
}

// handleChoiceCore feeds one button press into the engine.
func (b *Bot) handleChoiceCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	cq := update.CallbackQuery

	_, _ = tg.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cq.ID,
	})

	if cq.Message.Message == nil {
		return
	}
	chatID := cq.Message.Message.Chat.ID

	reply, err := b.engine.HandleChoice(ctx, chatID, cq.Data)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("chat_hash", logger.HashChatID(chatID)).
			Msg("Failed to process selection")
		b.sendReply(ctx, tg, chatID, conversation.Reply{Text: somethingWrongMsg})
		return
	}

	b.sendReply(ctx, tg, chatID, reply)
}

// sendReply renders one engine reply: choices become an inline keyboard,
// plain replies re-attach the field menu. An empty reply sends nothing.
func (b *Bot) sendReply(ctx context.Context, tg TelegramAPI, chatID int64, reply conversation.Reply) {
	if reply.Text == "" {
		return
	}

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   reply.Text,
	}
	if len(reply.Choices) > 0 {
		params.ReplyMarkup = choiceKeyboard(reply.Choices)
	} else {
		params.ReplyMarkup = menuKeyboard()
	}

	if _, err := tg.SendMessage(ctx, params); err != nil {
		logger.Log.Error().
			Err(err).
			Str("chat_hash", logger.HashChatID(chatID)).
			Msg("Failed to send message")
	}
}
