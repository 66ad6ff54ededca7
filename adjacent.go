package argot

// parseAdjacent evaluates its inner parser against progressively narrower
// scopes until the consumed tokens form one contiguous block.
type parseAdjacent[T any] struct {
	inner Parser[T]
}

// Adjacent returns a parser requiring the tokens consumed by p to sit
// next to each other in the input, with the block allowed to start
// anywhere in the current scope. This lets groups of related items
// repeat without interleaving:
//
//	point := Construct(func(st *State) (Point, error) { ... },
//		pos.Meta(), x.Meta(), y.Meta())
//	points := Many(Adjacent(point))
func Adjacent[T any](p Parser[T]) Parser[T] {
	return parseAdjacent[T]{inner: p}
}

func (p parseAdjacent[T]) Eval(st *State) (T, error) {
	orig := st.Scope()
	guess := orig

	scratch := st.Clone()

	val, err := p.inner.Eval(scratch)

	// Each pass proposes the tightest contiguous block covering what the
	// previous pass consumed and re-evaluates inside it. The proposal
	// shrinks monotonically, so the pool length bounds the iterations.
	for range st.items {
		refined, ok := refineScope(st, scratch, guess)
		if !ok {
			break
		}

		guess = refined

		scratch = st.Clone()
		scratch.SetScope(guess)

		val, err = p.inner.Eval(scratch)
	}

	// Consumption outside the block belongs to the surrounding context;
	// restore it before committing the narrowed result. The commit
	// happens on failure too, so a partially consumed block surfaces
	// through the pool instead of vanishing under a speculative caller.
	scratch.copyUsage(st, Range{Start: orig.Start, End: guess.Start})
	scratch.copyUsage(st, Range{Start: guess.End, End: orig.End})
	scratch.SetScope(orig)
	st.commit(scratch)

	if err != nil {
		var zero T
		return zero, err
	}

	return val, nil
}

func (p parseAdjacent[T]) Meta() Meta { return p.inner.Meta() }

// refineScope proposes a narrower scope from what scratch consumed out of
// orig: it starts at the first consumed token and ends before the next
// token left present by both pools. Returns false when nothing was
// consumed or the proposal does not narrow cur.
func refineScope(orig, scratch *State, cur Range) (Range, bool) {
	first := noPosition

	for ix := cur.Start; ix < cur.End; ix++ {
		if scratch.state[ix].consumed() && orig.state[ix].present() {
			first = ix
			break
		}
	}

	if first == noPosition {
		return Range{}, false
	}

	end := cur.End

	for ix := first + 1; ix < cur.End; ix++ {
		if scratch.state[ix].present() && orig.state[ix].present() {
			end = ix
			break
		}
	}

	refined := Range{Start: first, End: end}
	if refined == cur {
		return Range{}, false
	}

	return refined, true
}
