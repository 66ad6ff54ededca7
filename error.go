package argot

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// MissingItem records one expected-but-absent item for error reporting:
// what was expected, where the search happened, and the scope it covered.
type MissingItem struct {
	// Item describes what the parser expected to find.
	Item Item

	// Position is the pool index the report is anchored to.
	Position int

	// Scope is the range of the pool searched.
	Scope Range
}

// MissingError reports that nothing matched. It is recoverable: Optional,
// Fallback, Many, and a cleanly-losing OrElse branch all swallow it.
type MissingError struct {
	// Items lists every expected item, in declaration order. OrElse merges
	// the lists of two failing branches so the final message can read
	// "expected -a or -b".
	Items []MissingItem
}

// Error implements the error interface.
func (e *MissingError) Error() string {
	if len(e.Items) == 0 {
		return "nothing expected here"
	}

	names := make([]string, 0, len(e.Items))
	for _, mi := range e.Items {
		names = append(names, mi.Item.Describe())
	}

	if len(names) == 1 {
		return "expected " + names[0]
	}

	return "expected one of: " + strings.Join(names, ", ")
}

// LogValue implements slog.LogValuer for structured logging.
func (e *MissingError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", "missing"),
		slog.Int("items", len(e.Items)),
		slog.String("expected", e.Error()),
	)
}

// MessageError reports that a token matched syntactically but failed
// downstream validation, or that some mandatory constraint was not met.
// It is fatal unless explicitly marked recoverable.
type MessageError struct {
	// Text is the message shown to the user.
	Text string

	// Position is the pool index the message refers to, or -1.
	Position int

	// Recoverable allows Fallback and Optional to swallow the error.
	Recoverable bool
}

// Error implements the error interface.
func (e *MessageError) Error() string { return e.Text }

// LogValue implements slog.LogValuer for structured logging.
func (e *MessageError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Text),
		slog.Int("position", e.Position),
		slog.Bool("recoverable", e.Recoverable),
	)
}

// Termination is the help/version outcome. It is not a parse failure: it
// bypasses Optional, Fallback, and catch handling entirely and propagates
// straight to the caller of Eval.
type Termination struct {
	// Output is the rendered text to print.
	Output string

	// Stdout selects the destination stream. Requested help goes to
	// stdout, everything else to stderr.
	Stdout bool
}

// Error implements the error interface.
func (e *Termination) Error() string {
	if e.Stdout {
		return "terminated with output for stdout"
	}

	return "terminated with output for stderr"
}

// Unrendered error positions use this sentinel.
const noPosition = -1

// newMessage creates a fatal MessageError with no position anchor.
func newMessage(format string, args ...any) *MessageError {
	return &MessageError{
		Text:     fmt.Sprintf(format, args...),
		Position: noPosition,
	}
}

// recoverable reports whether err may be swallowed by Optional, Fallback,
// Many, and friends. Missing errors always are; Message errors only when
// flagged; Termination and ambiguity never.
func recoverable(err error) bool {
	var (
		missing *MissingError
		message *MessageError
	)

	switch {
	case errors.As(err, &missing):
		return true
	case errors.As(err, &message):
		return message.Recoverable
	default:
		return false
	}
}

// combine merges the failures of two alternative branches into one.
// Termination wins over everything, a Message beats a Missing, and two
// Missing errors concatenate their expected items.
func combine(a, b error) error {
	var (
		term         *Termination
		message      *MessageError
		missA, missB *MissingError
	)

	switch {
	case errors.As(a, &term):
		return a
	case errors.As(b, &term):
		return b
	case errors.As(a, &message):
		return a
	case errors.As(b, &message):
		return b
	case errors.As(a, &missA) && errors.As(b, &missB):
		items := make([]MissingItem, 0, len(missA.Items)+len(missB.Items))
		items = append(items, missA.Items...)
		items = append(items, missB.Items...)

		return &MissingError{Items: items}
	default:
		return a
	}
}
