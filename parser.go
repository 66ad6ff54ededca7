package argot

// Parser consumes tokens from a pool and produces a value of type T.
//
// Parsers are small immutable objects composed applicatively: each one
// ignores the values produced by its siblings and claims whatever tokens
// it understands, in any order the user typed them. Composition never
// uses inheritance; wrap a parser with the package-level combinators
// ([Map], [Optional], [Many], [OrElse], [Adjacent], [Anywhere], ...) to
// build richer ones.
type Parser[T any] interface {
	// Eval runs the parser against the pool, consuming the tokens it
	// matched. A failed Eval may leave the pool partially consumed;
	// combinators that need rollback clone the pool first and commit only
	// on success.
	Eval(st *State) (T, error)

	// Meta returns the structural description of what the parser accepts,
	// consumed by help rendering, suggestions, and the tokenizer's
	// known-shorts sets.
	Meta() Meta
}

// parsePure produces a fixed value without consuming anything.
type parsePure[T any] struct {
	value T
}

// Pure returns a parser that always succeeds with value and consumes no
// input. Useful to fill fields of a [Construct] composition that do not
// come from the command line.
func Pure[T any](value T) Parser[T] {
	return parsePure[T]{value: value}
}

func (p parsePure[T]) Eval(st *State) (T, error) {
	st.current = noPosition
	return p.value, nil
}

func (p parsePure[T]) Meta() Meta { return Meta{Kind: MetaSkip} }

// parsePureWith defers to a function for the value.
type parsePureWith[T any] struct {
	fn func() (T, error)
}

// PureWith returns a parser that consumes no input and produces whatever
// fn returns. A failing fn becomes a recoverable message error, so
// [Fallback] can still substitute a value.
func PureWith[T any](fn func() (T, error)) Parser[T] {
	return parsePureWith[T]{fn: fn}
}

func (p parsePureWith[T]) Eval(st *State) (T, error) {
	val, err := p.fn()
	if err != nil {
		var zero T
		return zero, &MessageError{
			Text:        err.Error(),
			Position:    noPosition,
			Recoverable: true,
		}
	}

	return val, nil
}

func (p parsePureWith[T]) Meta() Meta { return Meta{Kind: MetaSkip} }

// parseFail always fails with a fixed message.
type parseFail[T any] struct {
	message string
}

// Fail returns a parser that consumes nothing and fails with message.
// Combine it with [OrElse] to require some other branch to succeed:
//
//	must := OrElse(
//		ReqFlag(Long("agree"), struct{}{}),
//		Fail[struct{}]("you must accept the agreement with --agree"),
//	)
func Fail[T any](message string) Parser[T] {
	return parseFail[T]{message: message}
}

func (p parseFail[T]) Eval(st *State) (T, error) {
	st.current = noPosition

	var zero T

	return zero, &MessageError{
		Text:        p.message,
		Position:    noPosition,
		Recoverable: true,
	}
}

func (p parseFail[T]) Meta() Meta { return Meta{Kind: MetaSkip} }

// parseCon wraps a user-supplied sequencing function.
type parseCon[T any] struct {
	build func(*State) (T, error)
	meta  Meta
}

// Construct sequences several parsers by hand into one result. build
// receives the live pool and is expected to call Eval on each component
// in order, returning the assembled value:
//
//	type opts struct {
//		verbose bool
//		speed   string
//	}
//
//	verbose := Short('v').Switch()
//	speed := Long("speed").Argument("SPEED")
//
//	parser := Construct(func(st *State) (opts, error) {
//		var o opts
//		var err error
//		if o.verbose, err = verbose.Eval(st); err != nil {
//			return o, err
//		}
//		if o.speed, err = speed.Eval(st); err != nil {
//			return o, err
//		}
//		return o, nil
//	}, verbose.Meta(), speed.Meta())
//
// The metas of the sequenced components must be passed so that help and
// disambiguation stay accurate.
func Construct[T any](build func(*State) (T, error), metas ...Meta) Parser[T] {
	return parseCon[T]{build: build, meta: andMeta(metas...)}
}

func (p parseCon[T]) Eval(st *State) (T, error) {
	val, err := p.build(st)
	st.current = noPosition

	return val, err
}

func (p parseCon[T]) Meta() Meta { return p.meta }
