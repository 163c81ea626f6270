// Package bot binds the conversation engine to Telegram.
package bot

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"gitlab.com/kofiasante/diligent-bot/internal/config"
	"gitlab.com/kofiasante/diligent-bot/internal/conversation"
	"gitlab.com/kofiasante/diligent-bot/internal/logger"
)

// Engine is the conversation state machine the bot feeds events into.
type Engine interface {
	Greeting(chatID int64) conversation.Reply
	HandleText(ctx context.Context, chatID int64, text string) (conversation.Reply, error)
	HandleChoice(ctx context.Context, chatID int64, value string) (conversation.Reply, error)
}

// Bot wraps the Telegram bot with application dependencies.
type Bot struct {
	bot    *bot.Bot
	cfg    *config.Config
	engine Engine
}

// New creates a new Bot instance.
func New(cfg *config.Config, engine Engine) (*Bot, error) {
	b := &Bot{
		cfg:    cfg,
		engine: engine,
	}

	opts := []bot.Option{
		bot.WithMiddlewares(b.whitelistMiddleware),
		bot.WithDefaultHandler(b.defaultHandler),
	}

	telegramBot, err := bot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b.bot = telegramBot
	b.registerHandlers()

	return b, nil
}

// Start begins polling for updates.
func (b *Bot) Start(ctx context.Context) {
	logger.Log.Info().Msg("Bot started polling")
	b.bot.Start(ctx)
}

// registerHandlers sets up command handlers. Everything that is not
// /start flows through the default handler into the engine.
func (b *Bot) registerHandlers() {
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, b.handleStart)
}

// whitelistMiddleware checks if the user is whitelisted before processing.
func (b *Bot) whitelistMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
		userID := extractUserID(update)
		if userID == 0 {
			return
		}

		logUserAction(userID, update)

		if !b.cfg.IsUserWhitelisted(userID) {
			logger.Log.Warn().
				Str("user_hash", logger.HashChatID(userID)).
				Msg("Blocked non-whitelisted user")
			if update.Message != nil {
				_, _ = tgBot.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: update.Message.Chat.ID,
					Text:   "⛔ Sorry, you are not authorized to use this bot.",
				})
			}
			return
		}

		next(ctx, tgBot, update)
	}
}

// logUserAction logs the user's input/action.
func logUserAction(userID int64, update *tgmodels.Update) {
	switch {
	case update.Message != nil:
		logger.Log.Info().
			Str("user_hash", logger.HashChatID(userID)).
			Str("chat_hash", logger.HashChatID(update.Message.Chat.ID)).
			Str("text", update.Message.Text).
			Msg("User input")

	case update.CallbackQuery != nil:
		logger.Log.Info().
			Str("user_hash", logger.HashChatID(userID)).
			Str("data", update.CallbackQuery.Data).
			Msg("Callback query")
	}
}

// extractUserID gets the user ID from the supported update types.
func extractUserID(update *tgmodels.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.CallbackQuery != nil {
		return update.CallbackQuery.From.ID
	}
	return 0
}
