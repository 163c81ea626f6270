package bot

import (
	"context"
	"errors"
	"testing"

	tgmodels "github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"

	"gitlab.com/kofiasante/diligent-bot/internal/bot/mocks"
	"gitlab.com/kofiasante/diligent-bot/internal/config"
	"gitlab.com/kofiasante/diligent-bot/internal/conversation"
	"gitlab.com/kofiasante/diligent-bot/internal/models"
)

type fakeEngine struct {
	reply conversation.Reply
	err   error

	textEvents   []string
	choiceEvents []string
}

func (f *fakeEngine) Greeting(_ int64) conversation.Reply {
	return conversation.Reply{Text: "hello there"}
}

func (f *fakeEngine) HandleText(_ context.Context, _ int64, text string) (conversation.Reply, error) {
	f.textEvents = append(f.textEvents, text)
	return f.reply, f.err
}

func (f *fakeEngine) HandleChoice(_ context.Context, _ int64, value string) (conversation.Reply, error) {
	f.choiceEvents = append(f.choiceEvents, value)
	return f.reply, f.err
}

func newTestBot(engine Engine) *Bot {
	return &Bot{
		cfg:    &config.Config{},
		engine: engine,
	}
}

func TestHandleStartCore(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	b := newTestBot(engine)
	mock := mocks.NewMockBot()

	b.handleStartCore(context.Background(), mock, mocks.TextUpdate(55, 55, "/start"))

	msg := mock.LastMessage()
	require.NotNil(t, msg)
	require.Equal(t, "hello there", msg.Text)

	// The greeting carries the field menu.
	markup, ok := msg.ReplyMarkup.(*tgmodels.ReplyKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.Keyboard, 3)
	require.Equal(t, models.DoneLabel, markup.Keyboard[2][0].Text)
}

func TestDefaultHandlerCore(t *testing.T) {
	t.Parallel()

	t.Run("routes typed text into the engine", func(t *testing.T) {
		t.Parallel()
		engine := &fakeEngine{reply: conversation.Reply{Text: "stored"}}
		b := newTestBot(engine)
		mock := mocks.NewMockBot()

		b.defaultHandlerCore(context.Background(), mock, mocks.TextUpdate(55, 55, "Groceries"))

		require.Equal(t, []string{"Groceries"}, engine.textEvents)
		require.Equal(t, "stored", mock.LastMessage().Text)
	})

	t.Run("routes button presses and answers the callback", func(t *testing.T) {
		t.Parallel()
		engine := &fakeEngine{reply: conversation.Reply{Text: "noted"}}
		b := newTestBot(engine)
		mock := mocks.NewMockBot()

		b.defaultHandlerCore(context.Background(), mock, mocks.CallbackUpdate("cb-1", 55, 55, "103"))

		require.Equal(t, []string{"103"}, engine.choiceEvents)
		require.Len(t, mock.AnsweredCallbacks, 1)
		require.Equal(t, "cb-1", mock.AnsweredCallbacks[0].CallbackQueryID)
		require.Equal(t, "noted", mock.LastMessage().Text)
	})

	t.Run("renders choices as an inline keyboard", func(t *testing.T) {
		t.Parallel()
		engine := &fakeEngine{reply: conversation.Reply{
			Text:    "pick one",
			Choices: models.AptChoices,
		}}
		b := newTestBot(engine)
		mock := mocks.NewMockBot()

		b.defaultHandlerCore(context.Background(), mock, mocks.TextUpdate(55, 55, "Apt"))

		msg := mock.LastMessage()
		require.NotNil(t, msg)
		markup, ok := msg.ReplyMarkup.(*tgmodels.InlineKeyboardMarkup)
		require.True(t, ok)
		require.Len(t, markup.InlineKeyboard, 2)
		require.Equal(t, "Option 103", markup.InlineKeyboard[0][0].Text)
		require.Equal(t, "103", markup.InlineKeyboard[0][0].CallbackData)
	})

	t.Run("engine error turns into a generic failure message", func(t *testing.T) {
		t.Parallel()
		engine := &fakeEngine{err: errors.New("store down")}
		b := newTestBot(engine)
		mock := mocks.NewMockBot()

		b.defaultHandlerCore(context.Background(), mock, mocks.TextUpdate(55, 55, "Done"))

		require.Equal(t, somethingWrongMsg, mock.LastMessage().Text)
	})

	t.Run("empty reply sends nothing", func(t *testing.T) {
		t.Parallel()
		engine := &fakeEngine{}
		b := newTestBot(engine)
		mock := mocks.NewMockBot()

		b.defaultHandlerCore(context.Background(), mock, mocks.CallbackUpdate("cb-2", 55, 55, "stale"))

		require.Len(t, mock.AnsweredCallbacks, 1)
		require.Empty(t, mock.SentMessages)
	})
}
