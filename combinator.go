package argot

import "errors"

// parseMap transforms the inner result with a pure function.
type parseMap[T, R any] struct {
	inner Parser[T]
	fn    func(T) R
}

// Map returns a parser applying fn to the value produced by p. The
// transformation cannot fail; use [Then] when it can.
func Map[T, R any](p Parser[T], fn func(T) R) Parser[R] {
	return parseMap[T, R]{inner: p, fn: fn}
}

func (p parseMap[T, R]) Eval(st *State) (R, error) {
	val, err := p.inner.Eval(st)
	if err != nil {
		var zero R
		return zero, err
	}

	return p.fn(val), nil
}

func (p parseMap[T, R]) Meta() Meta { return p.inner.Meta() }

// parseThen transforms the inner result with a failing function.
type parseThen[T, R any] struct {
	inner Parser[T]
	fn    func(T) (R, error)
}

// Then returns a parser applying fn to the value produced by p. A failing
// fn turns into a fatal message error anchored at the token that supplied
// the value, e.g. converting with strconv:
//
//	speed := Then(Long("speed").Argument("SPEED"), func(s string) (float64, error) {
//		return strconv.ParseFloat(s, 64)
//	})
func Then[T, R any](p Parser[T], fn func(T) (R, error)) Parser[R] {
	return parseThen[T, R]{inner: p, fn: fn}
}

func (p parseThen[T, R]) Eval(st *State) (R, error) {
	var zero R

	val, err := p.inner.Eval(st)
	if err != nil {
		return zero, err
	}

	out, err := p.fn(val)
	if err != nil {
		return zero, &MessageError{
			Text:     wordAnchor(st) + err.Error(),
			Position: st.current,
		}
	}

	return out, nil
}

func (p parseThen[T, R]) Meta() Meta { return p.inner.Meta() }

// parseGuard validates the inner result.
type parseGuard[T any] struct {
	inner   Parser[T]
	check   func(T) bool
	message string
}

// Guard returns a parser that fails with message when check rejects the
// value produced by p. The failure is fatal: it survives [Optional] and
// [Fallback].
func Guard[T any](p Parser[T], check func(T) bool, message string) Parser[T] {
	return parseGuard[T]{inner: p, check: check, message: message}
}

func (p parseGuard[T]) Eval(st *State) (T, error) {
	val, err := p.inner.Eval(st)
	if err != nil {
		return val, err
	}

	if !p.check(val) {
		var zero T

		return zero, &MessageError{
			Text:     wordAnchor(st) + p.message,
			Position: st.current,
		}
	}

	return val, nil
}

func (p parseGuard[T]) Meta() Meta { return p.inner.Meta() }

// wordAnchor prefixes validation messages with the offending token, when
// the cursor still points at one.
func wordAnchor(st *State) string {
	if st.current == noPosition || st.current >= len(st.items) {
		return ""
	}

	return "couldn't parse " + st.items[st.current].String() + ": "
}

// parseOption evaluates p speculatively: on success the consumption is
// kept, on failure the pool is restored to its pre-attempt state and the
// error is classified. Missing errors are swallowed only when the failed
// attempt consumed nothing; catch additionally swallows message errors.
// Termination always propagates.
func parseOption[T any](p Parser[T], st *State, catch bool) (T, bool, error) {
	var zero T

	orig := st.Clone()

	val, err := p.Eval(st)
	if err == nil {
		return val, true, nil
	}

	failedLen := st.Len()
	st.commit(orig)

	var (
		message *MessageError
		missing *MissingError
	)

	switch {
	case errors.As(err, &message):
		if catch {
			return zero, false, nil
		}

		return zero, false, err

	case errors.As(err, &missing):
		if st.Len() == failedLen {
			return zero, false, nil
		}

		// The attempt consumed part of its input before going missing;
		// swallowing it would silently drop those tokens.
		return zero, false, err

	default:
		return zero, false, err
	}
}

// OptionalOf is an optional wrapper created with [Optional].
type OptionalOf[T any] struct {
	inner Parser[T]
	catch bool
}

// Optional returns a parser producing a pointer to the inner value when
// the inner parser succeeds and nil when its items are absent, restoring
// the pool on the absent path.
func Optional[T any](p Parser[T]) OptionalOf[T] {
	return OptionalOf[T]{inner: p}
}

// Catch additionally swallows fatal message errors, restoring the pool
// and producing nil instead of failing the whole parse.
func (o OptionalOf[T]) Catch() OptionalOf[T] {
	o.catch = true
	return o
}

// Eval implements [Parser].
func (o OptionalOf[T]) Eval(st *State) (*T, error) {
	val, ok, err := parseOption(o.inner, st, o.catch)
	if err != nil || !ok {
		return nil, err
	}

	return &val, nil
}

// Meta implements [Parser].
func (o OptionalOf[T]) Meta() Meta {
	return wrapMeta(MetaOptional, o.inner.Meta())
}

// ManyOf is an unbounded repetition created with [Many] or [Some].
type ManyOf[T any] struct {
	inner   Parser[T]
	message string
	atLeast int
	catch   bool
}

// Many returns a parser applying p repeatedly, collecting results until
// its items run out. Zero occurrences succeed with an empty slice.
//
// The inner parser must consume input whenever it succeeds; a parser
// that can succeed on an empty pool inside Many would loop forever, so
// that case panics as a programmer error.
func Many[T any](p Parser[T]) ManyOf[T] {
	return ManyOf[T]{inner: p}
}

// Some is [Many] requiring at least one occurrence; message reports the
// violation and is recoverable by [Fallback].
func Some[T any](p Parser[T], message string) ManyOf[T] {
	return ManyOf[T]{inner: p, atLeast: 1, message: message}
}

// Catch swallows fatal message errors of individual attempts, ending the
// repetition instead of failing the whole parse.
func (m ManyOf[T]) Catch() ManyOf[T] {
	m.catch = true
	return m
}

// Eval implements [Parser].
func (m ManyOf[T]) Eval(st *State) ([]T, error) {
	var res []T

	length := st.Len()

	for {
		val, ok, err := parseOption(m.inner, st, m.catch)
		if err != nil {
			return nil, err
		}

		if !ok {
			break
		}

		if st.Len() >= length {
			panic("argot: parser inside Many/Some succeeded without consuming input")
		}

		length = st.Len()
		res = append(res, val)

		if length == 0 {
			break
		}
	}

	if len(res) < m.atLeast {
		return nil, &MessageError{
			Text:        m.message,
			Position:    noPosition,
			Recoverable: true,
		}
	}

	return res, nil
}

// Meta implements [Parser].
func (m ManyOf[T]) Meta() Meta {
	kind := MetaOptional
	if m.atLeast > 0 {
		kind = MetaRequired
	}

	return wrapMeta(MetaMany, wrapMeta(kind, m.inner.Meta()))
}

// parseFallback substitutes a value when the inner items are missing.
type parseFallback[T any] struct {
	inner Parser[T]
	fn    func() (T, error)
}

// Fallback returns a parser producing value when the inner parser's
// items are absent. Fatal errors (a present flag with a bad value, a
// failed guard) still propagate; only missing items and recoverable
// messages are substituted.
func Fallback[T any](p Parser[T], value T) Parser[T] {
	return parseFallback[T]{inner: p, fn: func() (T, error) { return value, nil }}
}

// FallbackWith is [Fallback] computing the substitute on demand. An
// error from fn becomes a fatal message error.
func FallbackWith[T any](p Parser[T], fn func() (T, error)) Parser[T] {
	return parseFallback[T]{inner: p, fn: fn}
}

func (p parseFallback[T]) Eval(st *State) (T, error) {
	clone := st.Clone()

	val, err := p.inner.Eval(clone)
	if err == nil {
		st.commit(clone)
		return val, nil
	}

	if !recoverable(err) {
		var zero T
		return zero, err
	}

	val, err = p.fn()
	if err != nil {
		var zero T

		return zero, &MessageError{Text: err.Error(), Position: noPosition}
	}

	return val, nil
}

func (p parseFallback[T]) Meta() Meta {
	return wrapMeta(MetaOptional, p.inner.Meta())
}

// parseHide evaluates normally but disappears from help output.
type parseHide[T any] struct {
	inner Parser[T]
}

// Hide returns a parser behaving exactly like p but absent from help and
// usage output. Its missing-item errors are emptied so the hidden items
// never leak into "expected" lists.
func Hide[T any](p Parser[T]) Parser[T] {
	return parseHide[T]{inner: p}
}

func (p parseHide[T]) Eval(st *State) (T, error) {
	val, err := p.inner.Eval(st)

	var missing *MissingError
	if errors.As(err, &missing) {
		return val, &MissingError{}
	}

	return val, err
}

func (p parseHide[T]) Meta() Meta { return Meta{Kind: MetaSkip} }

// parseGroupHelp attaches a section header in help output.
type parseGroupHelp[T any] struct {
	inner Parser[T]
	note  string
}

// GroupHelp returns a parser behaving exactly like p but listed under
// its own section header in help output.
func GroupHelp[T any](p Parser[T], note string) Parser[T] {
	return parseGroupHelp[T]{inner: p, note: note}
}

func (p parseGroupHelp[T]) Eval(st *State) (T, error) {
	return p.inner.Eval(st)
}

func (p parseGroupHelp[T]) Meta() Meta {
	m := wrapMeta(MetaDecorated, p.inner.Meta())
	m.Note = p.note

	return m
}
