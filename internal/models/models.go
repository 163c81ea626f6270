// Package models defines the domain entities for the expense entry bot.
package models

import "github.com/shopspring/decimal"

// Field identifies one record field collected during a conversation.
// The value of each constant is the exact label shown on the field menu.
type Field string

const (
	FieldName   Field = "Name of Expense"
	FieldType   Field = "Expense Type"
	FieldAmount Field = "Amount in GHS"
	FieldNotes  Field = "Notes"
	FieldApt    Field = "Apt"
)

// Fields lists every collectable field in menu order.
var Fields = []Field{FieldName, FieldType, FieldAmount, FieldNotes, FieldApt}

// DoneLabel is the menu button that finishes a conversation.
const DoneLabel = "Done"

// ParseField resolves a field-selector label to its typed Field.
// Matching is an exact string comparison against the menu labels.
func ParseField(text string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == text {
			return f, true
		}
	}
	return "", false
}

// IsChoiceField reports whether a field is answered by picking from a
// fixed option set rather than by typing free text.
func (f Field) IsChoiceField() bool {
	return f == FieldType || f == FieldApt
}

// ExpenseTypes are the selectable expense categories. The stored value
// is the label itself.
var ExpenseTypes = []string{
	"Electric",
	"Water",
	"Internet",
	"DSTV",
	"Cleaning Supplies",
	"Home Repairs and Maintenance",
	"HOA Service Charge",
	"Insurance",
}

// Choice is one selectable option offered to the user.
type Choice struct {
	Label string
	Value string
}

// AptChoices maps apartment display labels to the codes sent downstream.
var AptChoices = []Choice{
	{Label: "Option 103", Value: "103"},
	{Label: "Option 108", Value: "108"},
}

// Defaults used when the user finishes without setting a field.
const (
	DefaultName     = "Unknown"
	DefaultCategory = "Uncategorized"
	DefaultAptCode  = "108"
)

// Expense is one completed record ready for submission.
type Expense struct {
	Name      string
	Category  string
	AmountGHS decimal.Decimal
	Notes     string
	AptCode   string
}
