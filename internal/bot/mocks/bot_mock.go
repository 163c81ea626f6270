// Package mocks provides mock implementations for testing bot handlers.
package mocks

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// TelegramAPI defines the interface for Telegram bot operations.
// It lives here to avoid import cycles between bot and mocks packages.
type TelegramAPI interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// SentMessage captures a message sent via MockBot.
type SentMessage struct {
	ChatID      any
	Text        string
	ReplyMarkup models.ReplyMarkup
}

// AnsweredCallback captures a callback query answer via MockBot.
type AnsweredCallback struct {
	CallbackQueryID string
}

// Compile-time check that MockBot implements TelegramAPI.
var _ TelegramAPI = (*MockBot)(nil)

// MockBot simulates Telegram bot operations for testing.
type MockBot struct {
	mu sync.RWMutex

	SentMessages      []SentMessage
	AnsweredCallbacks []AnsweredCallback

	// SendMessageError allows simulating SendMessage failures.
	SendMessageError error

	nextMessageID int
}

// NewMockBot creates a new MockBot instance.
func NewMockBot() *MockBot {
	return &MockBot{
		SentMessages:      make([]SentMessage, 0),
		AnsweredCallbacks: make([]AnsweredCallback, 0),
		nextMessageID:     1000,
	}
}

// SendMessage simulates sending a message.
func (m *MockBot) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendMessageError != nil {
		return nil, m.SendMessageError
	}

	m.SentMessages = append(m.SentMessages, SentMessage{
		ChatID:      params.ChatID,
		Text:        params.Text,
		ReplyMarkup: params.ReplyMarkup,
	})

	msgID := m.nextMessageID
	m.nextMessageID++

	return &models.Message{
		ID:   msgID,
		Text: params.Text,
	}, nil
}

// AnswerCallbackQuery simulates answering a callback query.
func (m *MockBot) AnswerCallbackQuery(_ context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AnsweredCallbacks = append(m.AnsweredCallbacks, AnsweredCallback{
		CallbackQueryID: params.CallbackQueryID,
	})
	return true, nil
}

// LastMessage returns the most recently sent message, or nil.
func (m *MockBot) LastMessage() *SentMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.SentMessages) == 0 {
		return nil
	}
	last := m.SentMessages[len(m.SentMessages)-1]
	return &last
}
