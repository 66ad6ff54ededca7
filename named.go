package argot

import (
	"slices"

	"github.com/ardnew/argot/token"
)

// Named identifies a flag by its short and long names. Build one with
// [Short] or [Long], add aliases with the chainable methods, then turn it
// into a parser with [Named.Switch], [Named.Argument], [Flag], or
// [ReqFlag]:
//
//	speed := Long("speed").Alias('s').Help("speed in KPH").Argument("SPEED")
type Named struct {
	shorts []rune
	longs  []string
	help   string
}

// Short names a flag by a single letter, e.g. Short('v') matches "-v".
func Short(letter rune) Named {
	return Named{shorts: []rune{letter}}
}

// Long names a flag by its full name, e.g. Long("verbose") matches
// "--verbose".
func Long(name string) Named {
	return Named{longs: []string{name}}
}

// Alias adds a hidden short alias.
func (n Named) Alias(letter rune) Named {
	n.shorts = append(slices.Clone(n.shorts), letter)
	return n
}

// AliasLong adds a hidden long alias.
func (n Named) AliasLong(name string) Named {
	n.longs = append(slices.Clone(n.longs), name)
	return n
}

// Help attaches the one-line description shown in help output.
func (n Named) Help(text string) Named {
	n.help = text
	return n
}

// matches reports whether the token refers to one of the names. In
// adjacent mode only flag tokens carrying an "="-attached value match.
func (n Named) matches(t token.Token, adjacent bool) bool {
	if adjacent && !t.Attached {
		return false
	}

	switch t.Kind {
	case token.Short:
		r := []rune(t.Name)
		return len(r) == 1 && slices.Contains(n.shorts, r[0])
	case token.Long:
		return slices.Contains(n.longs, t.Name)
	default:
		return false
	}
}

// item describes the name for help, suggestions, and error reporting,
// preferring the first declared name of each form.
func (n Named) item(kind ItemKind, metavar string) Item {
	it := Item{Kind: kind, Metavar: metavar, Help: n.help}

	if len(n.shorts) > 0 {
		it.Short = n.shorts[0]
	}

	if len(n.longs) > 0 {
		it.Long = n.longs[0]
	}

	return it
}

// parseFlag consumes a named flag with no value. A nil absent pointer
// makes the flag required.
type parseFlag[T any] struct {
	named   Named
	present T
	absent  *T
}

// Flag returns a parser producing present when the named flag occurs on
// the command line and absent otherwise. It never fails.
func Flag[T any](named Named, present, absent T) Parser[T] {
	return parseFlag[T]{named: named, present: present, absent: &absent}
}

// ReqFlag returns a parser producing present when the named flag occurs
// and failing with a missing-item error otherwise.
func ReqFlag[T any](named Named, present T) Parser[T] {
	return parseFlag[T]{named: named, present: present}
}

// Switch returns a parser producing true when the named flag occurs and
// false otherwise. Shorthand for Flag(n, true, false).
func (n Named) Switch() Parser[bool] {
	return Flag(n, true, false)
}

func (p parseFlag[T]) Eval(st *State) (T, error) {
	if st.TakeFlag(p.named) {
		return p.present, nil
	}

	if p.absent != nil {
		st.current = noPosition
		return *p.absent, nil
	}

	var zero T

	return zero, &MissingError{Items: []MissingItem{{
		Item:     p.named.item(ItemFlag, ""),
		Position: st.Scope().Start,
		Scope:    st.Scope(),
	}}}
}

func (p parseFlag[T]) Meta() Meta {
	m := itemMeta(p.named.item(ItemFlag, ""))
	if p.absent != nil {
		return wrapMeta(MetaOptional, m)
	}

	return m
}

// Argument is a parser for a named flag that takes a value, created with
// [Named.Argument]. The value arrives as the raw string; convert it with
// [Map] or [Then].
type Argument struct {
	named    Named
	metavar  string
	adjacent bool
}

// Argument returns a parser consuming the named flag together with its
// value, detached ("--speed 12") or attached ("--speed=12"). metavar is
// the placeholder shown in help and error messages.
func (n Named) Argument(metavar string) Argument {
	return Argument{named: n, metavar: metavar}
}

// Adjacent restricts matching to the attached form only: "--speed=12"
// matches, "--speed 12" does not. Values that begin with "-" are easiest
// to pass this way.
func (a Argument) Adjacent() Argument {
	a.adjacent = true
	return a
}

// Eval implements [Parser].
func (a Argument) Eval(st *State) (string, error) {
	val, found, err := st.TakeArg(a.named, a.adjacent)
	if err != nil {
		return "", err
	}

	if !found {
		return "", &MissingError{Items: []MissingItem{{
			Item:     a.named.item(ItemArgument, a.metavar),
			Position: st.Scope().Start,
			Scope:    st.Scope(),
		}}}
	}

	return val, nil
}

// Meta implements [Parser].
func (a Argument) Meta() Meta {
	return itemMeta(a.named.item(ItemArgument, a.metavar))
}
