package argot

import (
	"log/slog"

	"github.com/ardnew/argot/log"
)

// parseOrElse resolves between two alternative parsers.
type parseOrElse[T any] struct {
	this, that Parser[T]
}

// OrElse returns a parser trying both alternatives against the same pool
// and keeping whichever consumed better. A branch that descended into a
// subcommand wins outright, even when it failed there. Otherwise success
// beats failure, and between two successes the branch that consumed the
// earlier diverging token wins. When both fail the errors merge, keeping
// the more severe of the two.
func OrElse[T any](this, that Parser[T]) Parser[T] {
	return parseOrElse[T]{this: this, that: that}
}

// Choice folds any number of alternatives with [OrElse], left to right.
// It panics on an empty argument list.
func Choice[T any](ps ...Parser[T]) Parser[T] {
	if len(ps) == 0 {
		panic("argot: Choice requires at least one parser")
	}

	p := ps[0]
	for _, q := range ps[1:] {
		p = OrElse(p, q)
	}

	return p
}

func (p parseOrElse[T]) Eval(st *State) (T, error) {
	lhs, rhs := st.Clone(), st.Clone()

	valA, errA := p.this.Eval(lhs)
	valB, errB := p.that.Eval(rhs)

	// A branch that entered a subcommand owns the parse from there on.
	if lhs.depth() != rhs.depth() {
		if lhs.depth() > rhs.depth() {
			st.commit(lhs)
			return valA, errA
		}

		st.commit(rhs)
		return valB, errB
	}

	switch {
	case errA == nil && errB != nil:
		st.commit(lhs)
		return valA, nil

	case errA != nil && errB == nil:
		st.commit(rhs)
		return valB, nil

	case errA != nil:
		// Neither branch parsed; the pool stays untouched so an outer
		// alternative can still try.
		var zero T
		return zero, combine(errA, errB)
	}

	thisWins, diverge := lhs.PickWinner(rhs)

	winner, loser := lhs, rhs
	winMeta, loseMeta := p.this.Meta(), p.that.Meta()
	val := valA

	if !thisWins {
		winner, loser = rhs, lhs
		winMeta, loseMeta = p.that.Meta(), p.this.Meta()
		val = valB
	}

	if diverge != noPosition {
		log.Debug("resolved alternative",
			slog.Int("position", diverge),
			slog.Bool("left", thisWins))

		winner.noteWinner(diverge, winMeta)

		for ix := range winner.state {
			if winner.state[ix].present() && loser.state[ix].consumed() {
				winner.noteConflict(ix, winMeta, loseMeta)
				break
			}
		}

		winner.SaveConflicts(loser, diverge)
	}

	st.commit(winner)

	return val, nil
}

func (p parseOrElse[T]) Meta() Meta {
	return orMeta(p.this.Meta(), p.that.Meta())
}
