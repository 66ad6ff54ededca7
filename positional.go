package argot

// Pos is a parser for a positional value, created with [Positional].
type Pos struct {
	metavar string
	help    string
	strict  bool
}

// Positional returns a parser consuming the first remaining token in
// scope as a bare value. metavar is the placeholder shown in help and
// error messages. The value arrives as the raw string; convert it with
// [Map] or [Then].
func Positional(metavar string) Pos {
	return Pos{metavar: metavar}
}

// Help attaches the one-line description shown in help output.
func (p Pos) Help(text string) Pos {
	p.help = text
	return p
}

// Strict only accepts values on the right side of the "--" marker, which
// is how values that look like flags are passed through literally.
func (p Pos) Strict() Pos {
	p.strict = true
	return p
}

// Eval implements [Parser].
func (p Pos) Eval(st *State) (string, error) {
	val, strict, found, err := st.TakePositionalWord(p.metavar)
	if err != nil {
		return "", err
	}

	if !found {
		return "", &MissingError{Items: []MissingItem{{
			Item:     p.item(),
			Position: st.Scope().Start,
			Scope:    st.Scope(),
		}}}
	}

	if p.strict && !strict {
		return "", &MessageError{
			Text: "expected <" + p.metavar +
				"> to be on the right side of --",
			Position: st.current,
		}
	}

	return val, nil
}

// Meta implements [Parser].
func (p Pos) Meta() Meta {
	return itemMeta(p.item())
}

func (p Pos) item() Item {
	return Item{Kind: ItemPositional, Metavar: p.metavar, Help: p.help}
}

// parseCommand consumes a literal subcommand word and hands the rest of
// the line to a nested invoker.
type parseCommand[T any] struct {
	name string
	sub  *Invoker[T]
}

// Command returns a parser that matches the literal command word at the
// front of the remaining input and then runs sub against everything
// after it. Entering a command deepens the pool's path, which is what
// makes nested alternatives resolve toward the branch the user actually
// chose; the nested invoker also answers its own --help.
func Command[T any](name string, sub *Invoker[T]) Parser[T] {
	return parseCommand[T]{name: name, sub: sub}
}

func (p parseCommand[T]) Eval(st *State) (T, error) {
	if !st.TakeCmd(p.name) {
		var zero T

		return zero, &MissingError{Items: []MissingItem{{
			Item:     p.item(),
			Position: st.Scope().Start,
			Scope:    st.Scope(),
		}}}
	}

	// The command token is consumed; everything the subparser may see
	// starts right after it.
	ix := st.current
	st.path = append(st.path, p.name)
	st.SetScope(Range{Start: ix + 1, End: st.Scope().End})

	return p.sub.eval(st)
}

func (p parseCommand[T]) Meta() Meta {
	return itemMeta(p.item())
}

func (p parseCommand[T]) item() Item {
	return Item{Kind: ItemCommand, Long: p.name, Help: p.sub.config.Description}
}
