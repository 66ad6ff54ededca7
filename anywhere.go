package argot

import "errors"

// AnywhereOf lifts a positional-style parser out of positional ordering,
// created with [Anywhere].
type AnywhereOf[T any] struct {
	inner Parser[T]
	catch bool
}

// Anywhere returns a parser that tries p starting at every remaining
// token from left to right, keeping the first starting point where it
// succeeds. This lets a parser built from positional words match flag
// style syntax the tokenizer does not know, such as -Dkey=value or +x:
//
//	set := Anywhere(Then(Positional("-D"), parseDefine))
func Anywhere[T any](p Parser[T]) AnywhereOf[T] {
	return AnywhereOf[T]{inner: p}
}

// Catch keeps scanning past candidates where p consumed input before
// failing with a fatal message, instead of failing the whole parse
// there.
func (a AnywhereOf[T]) Catch() AnywhereOf[T] {
	a.catch = true
	return a
}

// Eval implements [Parser].
func (a AnywhereOf[T]) Eval(st *State) (T, error) {
	var zero T

	orig := st.Scope()
	meta := a.inner.Meta()

	// Track the deepest failed attempt so the final missing error names
	// what the most promising candidate still wanted.
	bestConsumed := 0

	bestItems := make([]MissingItem, 0, 1)
	for _, it := range meta.firstItems() {
		bestItems = append(bestItems, MissingItem{Item: it, Scope: orig})
	}

	for cur := orig.Start; cur < orig.End; cur++ {
		if !st.Present(cur) {
			continue
		}

		// Probe with only the candidate token visible. A candidate where
		// the attempt consumes nothing cannot be a starting point: either
		// the parser accepts any position without discriminating, or the
		// group simply does not begin here and a full-scope run would
		// reach past it to unrelated tokens on the right.
		probe := st.Clone()
		probe.SetScope(Range{Start: cur, End: cur + 1})

		_, _ = a.inner.Eval(probe)

		if probe.Len() == 1 {
			continue
		}

		clone := st.Clone()
		clone.SetScope(Range{Start: cur, End: orig.End})

		val, err := a.inner.Eval(clone)
		if err == nil {
			clone.SetScope(orig)
			st.commit(clone)

			return val, nil
		}

		var term *Termination
		if errors.As(err, &term) {
			clone.SetScope(orig)
			st.commit(clone)

			return zero, err
		}

		var message *MessageError
		if errors.As(err, &message) && clone.consumedFrom(st) > 0 && !a.catch {
			clone.SetScope(orig)
			st.commit(clone)

			return zero, err
		}

		var missing *MissingError
		if errors.As(err, &missing) {
			if n := clone.consumedFrom(st); n >= bestConsumed && len(missing.Items) > 0 {
				bestConsumed = n
				bestItems = missing.Items
			}
		}
	}

	// No candidate worked; one last try against an empty pool lets inner
	// fallbacks and pure values produce a result.
	empty, _ := NewState(nil, nil, nil)
	if val, err := a.inner.Eval(empty); err == nil {
		return val, nil
	}

	items := make([]MissingItem, 0, len(bestItems))
	for _, it := range bestItems {
		it.Position = orig.Start
		items = append(items, it)
	}

	return zero, &MissingError{Items: items}
}

// Meta implements [Parser].
func (a AnywhereOf[T]) Meta() Meta {
	return wrapMeta(MetaAnywhere, a.inner.Meta())
}
