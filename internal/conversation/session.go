package conversation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"gitlab.com/kofiasante/diligent-bot/internal/models"
)

// State identifies the engine's position within one conversation.
type State int

const (
	StateChoosing State = iota
	StateAwaitingFreeText
	StateAwaitingExpenseType
	StateAwaitingApt
)

// fact is one collected field value. Facts keep first-assignment order;
// re-assigning a field updates its value in place.
type fact struct {
	Field models.Field
	Value string
}

// Session holds the conversation state for one chat. Its mutex
// serializes updates for that chat without blocking other chats.
type Session struct {
	mu      sync.Mutex
	state   State
	pending models.Field // field awaiting free-text input; empty otherwise
	facts   []fact
}

func (s *Session) set(field models.Field, value string) {
	for i := range s.facts {
		if s.facts[i].Field == field {
			s.facts[i].Value = value
			return
		}
	}
	s.facts = append(s.facts, fact{Field: field, Value: value})
}

func (s *Session) get(field models.Field) (string, bool) {
	for _, f := range s.facts {
		if f.Field == field {
			return f.Value, true
		}
	}
	return "", false
}

func (s *Session) getOr(field models.Field, fallback string) string {
	if v, ok := s.get(field); ok {
		return v
	}
	return fallback
}

// reset returns the session to a fresh choosing state.
func (s *Session) reset() {
	s.state = StateChoosing
	s.pending = ""
	s.facts = nil
}

// summary renders the collected fields as "<Field> - <value>" lines,
// one per line in first-assignment order, framed by a leading and a
// trailing blank line.
func (s *Session) summary() string {
	lines := make([]string, 0, len(s.facts))
	for _, f := range s.facts {
		lines = append(lines, fmt.Sprintf("%s - %s", f.Field, f.Value))
	}
	return "\n" + strings.Join(lines, "\n") + "\n"
}

// expense extracts the completed record, applying every default in one
// place. Unparseable amount text coerces to exact zero.
func (s *Session) expense() models.Expense {
	amount, err := decimal.NewFromString(s.getOr(models.FieldAmount, "0"))
	if err != nil {
		amount = decimal.Zero
	}

	return models.Expense{
		Name:      s.getOr(models.FieldName, models.DefaultName),
		Category:  s.getOr(models.FieldType, models.DefaultCategory),
		AmountGHS: amount,
		Notes:     s.getOr(models.FieldNotes, ""),
		AptCode:   s.getOr(models.FieldApt, models.DefaultAptCode),
	}
}

// Store keeps one session per chat.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// get returns the session for a chat, creating it on first contact.
func (st *Store) get(chatID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[chatID]; ok {
		return s
	}
	s := &Session{state: StateChoosing}
	st.sessions[chatID] = s
	return s
}
