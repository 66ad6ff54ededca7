package token

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"
)

// AmbiguityError reports a bundled short form that can be read both as a
// run of individual flags and as a single flag with an attached value.
// It is produced only by [Tokenize] and is never recoverable.
type AmbiguityError struct {
	// Position is the index of the offending token in the output sequence.
	Position int

	// Text is the raw argument as the user typed it.
	Text string
}

// Error implements the error interface.
func (e *AmbiguityError) Error() string {
	return fmt.Sprintf(
		"app supports both flags and options starting with %q, "+
			"it is not clear what %q means",
		e.Text[:2], e.Text,
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (e *AmbiguityError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", "ambiguous short form"),
		slog.Int("position", e.Position),
		slog.String("text", e.Text),
	)
}

// NoMarker is the marker index returned by [Tokenize] when the input
// contains no "--" separator.
const NoMarker = -1

// Tokenize classifies raw command-line arguments into tokens.
//
// flags lists the short letters known to be flags, and valued the short
// letters known to take a value; both are needed to resolve bundled short
// forms like "-abc":
//
//   - every letter a known flag, first letter not valued: one Short token
//     per letter;
//   - first letter valued, not every letter a flag: a Short token for the
//     first letter plus a Word holding the remainder;
//   - both readings valid: an AmbiguityError, and classification stops;
//   - neither: the whole bundle stays a Word.
//
// marker is the index of the "--" separator token, or NoMarker. The marker
// token itself is emitted (as a PosWord) so that token indices line up with
// the raw input, but callers are expected to treat it as already consumed.
//
// On error the tokens classified so far are still returned.
func Tokenize(raw []string, flags, valued []rune) (toks []Token, marker int, err error) {
	toks = make([]Token, 0, len(raw))
	marker = NoMarker
	posOnly := false

	for _, item := range raw {
		if posOnly {
			toks = append(toks, Token{Kind: PosWord, Text: item})
			continue
		}

		if item == "--" {
			marker = len(toks)
			posOnly = true
			toks = append(toks, Token{Kind: PosWord, Text: item})

			continue
		}

		kind, name, value, attached, ok := split(item)
		if !ok {
			toks = append(toks, Token{Kind: Word, Text: item})
			continue
		}

		switch kind {
		case Long:
			toks = append(toks, Token{
				Kind: Long, Name: name, Text: item, Attached: attached,
			})
			if attached {
				toks = append(toks, Token{Kind: Word, Text: value})
			}

		case Short:
			letters := []rune(name)

			switch {
			case attached:
				// -c=value: the name is always a single letter here.
				toks = append(toks, Token{
					Kind: Short, Name: name, Text: item, Attached: true,
				})
				toks = append(toks, Token{Kind: Word, Text: value})

			case len(letters) == 1:
				toks = append(toks, Token{Kind: Short, Name: name, Text: item})

			default:
				toks, err = disambiguate(toks, item, letters, flags, valued)
				if err != nil {
					// Fail fast: arguments after the ambiguity are not
					// classified.
					return toks, marker, err
				}
			}
		}
	}

	return toks, marker, nil
}

// disambiguate resolves a bundled short form like "-abc" against the known
// flag letters and value-taking letters, appending the resulting tokens.
func disambiguate(
	toks []Token,
	item string,
	letters, flags, valued []rune,
) ([]Token, error) {
	canFlags := true
	for _, r := range letters {
		canFlags = canFlags && slices.Contains(flags, r)
	}

	canArg := slices.Contains(valued, letters[0])

	switch {
	case canFlags && canArg:
		err := &AmbiguityError{Position: len(toks), Text: item}
		toks = append(toks, Token{Kind: Word, Text: item})

		return toks, err

	case canFlags:
		for _, r := range letters {
			toks = append(toks, Token{
				Kind: Short, Name: string(r), Text: "-" + string(r),
			})
		}

	case canArg:
		toks = append(toks, Token{
			Kind: Short, Name: string(letters[0]), Text: item, Attached: true,
		})
		toks = append(toks, Token{Kind: Word, Text: string(letters[1:])})

	default:
		toks = append(toks, Token{Kind: Word, Text: item})
	}

	return toks, nil
}

// split classifies one raw argument as a flag candidate. It reports ok as
// false for anything that is not syntactically a flag: plain words, a bare
// "-", an empty long name, or a malformed short form like "-ab=c".
//
// The attached value, when present, may itself begin with "-"; it is never
// re-classified.
func split(s string) (kind Kind, name, value string, attached, ok bool) {
	switch {
	case strings.HasPrefix(s, "--"):
		body := s[2:]
		if body == "" {
			return 0, "", "", false, false
		}

		name, value, attached = strings.Cut(body, "=")
		if name == "" {
			return 0, "", "", false, false
		}

		return Long, name, value, attached, true

	case strings.HasPrefix(s, "-") && len(s) > 1:
		body := s[1:]

		eq := strings.Index(body, "=")
		_, first := utf8.DecodeRuneInString(body)

		switch {
		case eq < 0:
			return Short, body, "", false, true
		case eq == first:
			// Exactly one letter before "=".
			return Short, body[:eq], body[eq+1:], true, true
		default:
			return 0, "", "", false, false
		}

	default:
		return 0, "", "", false, false
	}
}
