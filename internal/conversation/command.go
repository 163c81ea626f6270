package conversation

import "gitlab.com/kofiasante/diligent-bot/internal/models"

// command is the typed form of one inbound text message. Raw text is
// resolved exactly once, at the boundary; transition logic only ever
// sees the typed command.
type command int

const (
	cmdFreeText command = iota
	cmdSelectField
	cmdDone
)

// parseCommand classifies chat text as the done signal, a field
// selector, or plain free text.
func parseCommand(text string) (command, models.Field) {
	if text == models.DoneLabel {
		return cmdDone, ""
	}
	if field, ok := models.ParseField(text); ok {
		return cmdSelectField, field
	}
	return cmdFreeText, ""
}
