package token

// Kind identifies the classification of a single command-line token.
type Kind uint8

const (
	// Word is unclassified value text: a positional candidate or the
	// detached value of a flag.
	Word Kind = iota

	// PosWord is value text forced positional, either by appearing after
	// the "--" marker or by strict-positional classification.
	PosWord

	// Short is a single-letter flag such as "-v".
	Short

	// Long is a named flag such as "--verbose".
	Long
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case PosWord:
		return "positional"
	case Short:
		return "short flag"
	case Long:
		return "long flag"
	default:
		return "unknown"
	}
}

// Token is one classified unit of command-line input.
type Token struct {
	// Name is the flag name: a single letter for Short, the full name for
	// Long, and empty for word kinds.
	Name string

	// Text is the value for word kinds, and the raw input text for flags.
	Text string

	// Kind classifies the token.
	Kind Kind

	// Attached reports that a flag token carries an "="-attached value,
	// which immediately follows it as a Word token.
	Attached bool
}

// IsFlag reports whether the token is a short or long flag.
func (t Token) IsFlag() bool {
	return t.Kind == Short || t.Kind == Long
}

// IsWord reports whether the token is value text of either word kind.
func (t Token) IsWord() bool {
	return t.Kind == Word || t.Kind == PosWord
}

// String renders the token the way a user typed it, for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case Short:
		return "-" + t.Name
	case Long:
		return "--" + t.Name
	default:
		return t.Text
	}
}
