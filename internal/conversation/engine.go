// Package conversation implements the field-collection state machine
// behind the bot: one session per chat walks the user through picking a
// field, answering it, and finally submitting the assembled record.
package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/kofiasante/diligent-bot/internal/logger"
	"gitlab.com/kofiasante/diligent-bot/internal/models"
)

const (
	greetingMsg = "Hi! My name is Dilligent your expense Botter. " +
		"I will update airtables with your expenses. " +
		"Why don't you tell me what you have spent on?"
	summaryPreface = "Neat! Just so you know, this is what you already told me:"
	summarySuffix  = "You can tell me more, or change your opinion on something."

	chooseExpenseTypeMsg = "Please choose an expense type from the list below:"
	chooseAptMsg         = "Please choose an Apt option from the list below:"

	missingPendingMsg = "I didn't receive the category. Please try again."
	dontUnderstandMsg = "I didn't catch that. Pick a field from the keyboard, or send Done when you are finished."
	finishAnswerMsg   = "Let's finish the field you picked first, then send Done."
	finishChoiceMsg   = "Please pick one of the options first, then send Done."
	successMsg        = "Successfully updated Airtable!"
	failureMsg        = "Failed to update Airtable. Please try again later."
)

// RateSource provides the GHS->USD conversion rate used at completion.
type RateSource interface {
	CurrentRate(ctx context.Context) (decimal.Decimal, error)
}

// RecordSink receives one completed record and reports the identifier
// the remote store assigned to it ("" when none came back).
type RecordSink interface {
	Submit(ctx context.Context, exp models.Expense, amountUSD decimal.Decimal) (string, error)
}

// Reply is one outbound message. A non-empty Choices list must be
// rendered by the transport as discrete selectable options.
type Reply struct {
	Text    string
	Choices []models.Choice
}

// Engine owns the per-chat sessions and drives the state machine. It is
// the sole mutator of session state.
type Engine struct {
	store  *Store
	rates  RateSource
	sink   RecordSink
	tracer trace.Tracer
}

// NewEngine creates an engine with an empty session store.
func NewEngine(rates RateSource, sink RecordSink) *Engine {
	return &Engine{
		store:  NewStore(),
		rates:  rates,
		sink:   sink,
		tracer: otel.Tracer("conversation"),
	}
}

// Greeting returns the opening prompt and puts the session in the
// choosing state. Previously collected fields survive a repeated /start.
func (e *Engine) Greeting(chatID int64) Reply {
	s := e.store.get(chatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateChoosing
	s.pending = ""
	return Reply{Text: greetingMsg}
}

// HandleText processes one typed message for a chat.
func (e *Engine) HandleText(ctx context.Context, chatID int64, text string) (Reply, error) {
	s := e.store.get(chatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	// Slash commands are owned by the transport layer; they are never
	// stored as field values.
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		return Reply{Text: dontUnderstandMsg}, nil
	}

	cmd, field := parseCommand(strings.TrimSpace(text))

	switch s.state {
	case StateChoosing:
		return e.handleChoosing(ctx, chatID, s, cmd, field, text)

	case StateAwaitingFreeText:
		if cmd == cmdDone {
			// Done is only honored from the choosing state.
			return Reply{Text: finishAnswerMsg}, nil
		}
		return e.storeFreeText(s, text), nil

	case StateAwaitingExpenseType:
		if cmd == cmdDone {
			return Reply{Text: finishChoiceMsg}, nil
		}
		return Reply{Text: chooseExpenseTypeMsg, Choices: expenseTypeChoices()}, nil

	case StateAwaitingApt:
		if cmd == cmdDone {
			return Reply{Text: finishChoiceMsg}, nil
		}
		return Reply{Text: chooseAptMsg, Choices: models.AptChoices}, nil
	}

	return Reply{Text: dontUnderstandMsg}, nil
}

func (e *Engine) handleChoosing(
	ctx context.Context,
	chatID int64,
	s *Session,
	cmd command,
	field models.Field,
	text string,
) (Reply, error) {
	switch cmd {
	case cmdDone:
		return e.complete(ctx, chatID, s)

	case cmdSelectField:
		switch field {
		case models.FieldType:
			s.state = StateAwaitingExpenseType
			return Reply{Text: chooseExpenseTypeMsg, Choices: expenseTypeChoices()}, nil
		case models.FieldApt:
			s.state = StateAwaitingApt
			return Reply{Text: chooseAptMsg, Choices: models.AptChoices}, nil
		default:
			s.pending = field
			s.state = StateAwaitingFreeText
			return Reply{Text: fmt.Sprintf(
				"Your %s? Yes, I would love to hear about that!",
				strings.ToLower(string(field)),
			)}, nil
		}

	default:
		logger.Log.Debug().
			Str("chat_hash", logger.HashChatID(chatID)).
			Int("len", len(text)).
			Msg("Unrecognized text while choosing")
		return Reply{Text: dontUnderstandMsg}, nil
	}
}

// storeFreeText commits the typed value against the pending field.
func (e *Engine) storeFreeText(s *Session, text string) Reply {
	if s.pending == "" {
		s.state = StateChoosing
		return Reply{Text: missingPendingMsg}
	}

	s.set(s.pending, text)
	s.pending = ""
	s.state = StateChoosing
	return Reply{Text: summaryPreface + s.summary() + summarySuffix}
}

// HandleChoice processes one option selection for a chat. Selections
// arriving outside an awaiting-choice state (stale button presses) are
// ignored with an empty reply.
func (e *Engine) HandleChoice(_ context.Context, chatID int64, value string) (Reply, error) {
	s := e.store.get(chatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateAwaitingExpenseType:
		s.set(models.FieldType, value)
		s.state = StateChoosing
		return Reply{Text: fmt.Sprintf(
			"You selected the expense type: %s.\n\n%s%s%s",
			value, summaryPreface, s.summary(), summarySuffix,
		)}, nil

	case StateAwaitingApt:
		s.set(models.FieldApt, value)
		s.state = StateChoosing
		return Reply{Text: fmt.Sprintf(
			"You selected the Apt: %s.\n\n%s%s%s",
			value, summaryPreface, s.summary(), summarySuffix,
		)}, nil

	default:
		return Reply{}, nil
	}
}

// complete runs the submission procedure: extract the record with
// defaults, convert the amount, post to the store, then clear the
// session. A client error propagates before the clear so the collected
// fields survive and the user can retry Done.
func (e *Engine) complete(ctx context.Context, chatID int64, s *Session) (Reply, error) {
	ctx, span := e.tracer.Start(ctx, "conversation.complete")
	defer span.End()

	// An uncommitted field selection is discarded.
	s.pending = ""
	exp := s.expense()

	rate, err := e.rates.CurrentRate(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("fetching exchange rate: %w", err)
	}
	amountUSD := exp.AmountGHS.Mul(rate)

	recordID, err := e.sink.Submit(ctx, exp, amountUSD)
	if err != nil {
		return Reply{}, fmt.Errorf("submitting record: %w", err)
	}

	span.SetAttributes(attribute.String("record.id", recordID))
	logger.Log.Info().
		Str("chat_hash", logger.HashChatID(chatID)).
		Str("category", exp.Category).
		Str("apt", exp.AptCode).
		Str("amount_ghs", exp.AmountGHS.String()).
		Str("amount_usd", amountUSD.String()).
		Str("record_id", recordID).
		Msg("Record submitted")

	s.reset()

	if recordID == "" {
		return Reply{Text: failureMsg}, nil
	}
	return Reply{Text: successMsg}, nil
}

func expenseTypeChoices() []models.Choice {
	choices := make([]models.Choice, 0, len(models.ExpenseTypes))
	for _, t := range models.ExpenseTypes {
		choices = append(choices, models.Choice{Label: t, Value: t})
	}
	return choices
}
