package argot

import (
	"maps"
	"slices"

	"github.com/ardnew/argot/token"
)

// Range is a half-open index interval [Start, End) into the token pool.
type Range struct {
	Start, End int
}

// Contains reports whether ix lies inside the range.
func (r Range) Contains(ix int) bool { return ix >= r.Start && ix < r.End }

// Len returns the number of indices covered.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}

	return r.End - r.Start
}

// status tracks what happened to a single token.
type status uint8

const (
	// unparsed: still available for consumption.
	unparsed status = iota

	// parsed: consumed by some primitive.
	parsed

	// conflicted: consumed by the losing branch of an alternative, kept
	// around for error reporting. Still counts as present.
	conflicted
)

// itemState is the per-token bookkeeping slot.
type itemState struct {
	// winner is the pool index that won the alternative, for conflicted.
	winner int

	status status
}

// present reports the token is still available to primitives.
func (s itemState) present() bool { return s.status != parsed }

// consumed reports the token was claimed by a winning parser.
func (s itemState) consumed() bool { return s.status == parsed }

// conflictEntry records both sides of a resolved alternative, keyed by the
// pool position of a branch's first consumed token. Diagnostics only.
type conflictEntry struct {
	Winner Meta
	Loser  Meta
	Solo   bool
}

// State is the token pool every parser evaluates against: the classified
// tokens of one command line, their consumption status, the active scope,
// and the bookkeeping needed for error reporting.
//
// The token slice is shared between clones and never mutated. Everything
// else is per-clone, which is what makes speculative clone-evaluate-swap
// evaluation affordable.
type State struct {
	items     []token.Token
	state     []itemState
	conflicts map[int]conflictEntry
	path      []string
	scope     Range

	// remaining caches the count of present tokens inside the scope.
	remaining int

	// current is the most recently touched index, used to anchor error
	// messages, or noPosition.
	current int
}

// NewState builds a pool from raw command-line arguments. The two rune
// sets name the short letters known to be flags and the short letters
// known to take a value; they drive bundled-short disambiguation.
//
// A non-nil error reports a construction-time ambiguity. The pool is
// still returned so callers can render the error with full context.
func NewState(raw []string, flags, valued []rune) (*State, error) {
	toks, marker, err := token.Tokenize(raw, flags, valued)

	st := &State{
		items:     toks,
		state:     make([]itemState, len(toks)),
		remaining: len(toks),
		current:   noPosition,
		scope:     Range{Start: 0, End: len(toks)},
	}

	if marker != token.NoMarker {
		// The "--" separator occupies a slot so indices line up with the
		// raw input, but nothing may consume it.
		st.state[marker] = itemState{status: parsed}
		st.remaining--
	}

	return st, err
}

// Clone duplicates the mutable bookkeeping while sharing the token slice.
func (st *State) Clone() *State {
	dup := *st
	dup.state = slices.Clone(st.state)
	dup.path = slices.Clone(st.path)

	if st.conflicts != nil {
		dup.conflicts = maps.Clone(st.conflicts)
	}

	return &dup
}

// commit swaps the state of a winning speculative clone into st.
func (st *State) commit(winner *State) {
	*st = *winner
}

// Len returns the count of present tokens inside the active scope.
func (st *State) Len() int { return st.remaining }

// IsEmpty reports whether no tokens remain inside the active scope.
func (st *State) IsEmpty() bool { return st.remaining == 0 }

// Present reports whether the token at ix is in scope and not consumed.
func (st *State) Present(ix int) bool {
	return st.scope.Contains(ix) && ix < len(st.state) && st.state[ix].present()
}

// Get returns the token at ix only while it is present.
func (st *State) Get(ix int) (token.Token, bool) {
	if !st.Present(ix) {
		return token.Token{}, false
	}

	return st.items[ix], true
}

// Remove marks the token at ix consumed, decrements the remaining count,
// and moves the cursor to ix. It is a no-op when the token is out of
// scope or already consumed.
func (st *State) Remove(ix int) {
	if !st.Present(ix) {
		return
	}

	st.current = ix
	st.remaining--
	st.state[ix] = itemState{status: parsed}
}

// Scope returns the active scope.
func (st *State) Scope() Range { return st.scope }

// SetScope replaces the active scope and recounts remaining by scanning
// status inside the new range.
func (st *State) SetScope(r Range) {
	if r.Start < 0 {
		r.Start = 0
	}

	if r.End > len(st.state) {
		r.End = len(st.state)
	}

	st.scope = r

	n := 0
	for ix := r.Start; ix < r.End; ix++ {
		if st.state[ix].present() {
			n++
		}
	}

	st.remaining = n
}

// fullRange covers the entire token slice regardless of scope.
func (st *State) fullRange() Range {
	return Range{Start: 0, End: len(st.items)}
}

// depth is the nesting level of commands entered so far. Deeper branches
// win alternative resolution outright.
func (st *State) depth() int { return len(st.path) }

// firstPresent returns the first present token in scope.
func (st *State) firstPresent() (int, token.Token, bool) {
	for ix := st.scope.Start; ix < st.scope.End; ix++ {
		if st.state[ix].present() {
			return ix, st.items[ix], true
		}
	}

	return noPosition, token.Token{}, false
}

// findPresent returns the first in-scope present token satisfying match.
func (st *State) findPresent(match func(token.Token) bool) (int, bool) {
	for ix := st.scope.Start; ix < st.scope.End; ix++ {
		if st.state[ix].present() && match(st.items[ix]) {
			return ix, true
		}
	}

	return noPosition, false
}

// PickWinner compares two clones' consumption pairwise. The first index
// where consumption differs decides: the pool that consumed there wins.
// Returns whether st wins and the first diverging index (noPosition when
// the clones consumed identically, in which case st wins).
func (st *State) PickWinner(other *State) (bool, int) {
	for ix := range st.state {
		a := st.state[ix].consumed()
		b := other.state[ix].consumed()

		if a != b {
			return a, ix
		}
	}

	return true, noPosition
}

// SaveConflicts marks every token still present in st but consumed by the
// losing branch as conflicted with the token at win. This never changes
// control flow; it only improves later error messages.
func (st *State) SaveConflicts(loser *State, win int) {
	for ix := range st.state {
		if st.state[ix].present() && loser.state[ix].consumed() {
			st.state[ix] = itemState{status: conflicted, winner: win}
		}
	}
}

// firstConflict checks whether the first remaining token in scope lost an
// alternative resolution, returning its index and the winner's index.
func (st *State) firstConflict() (ix, winner int, ok bool) {
	ix, _, ok = st.firstPresent()
	if !ok || st.state[ix].status != conflicted {
		return noPosition, noPosition, false
	}

	return ix, st.state[ix].winner, true
}

// noteWinner records the sole winner of an alternative at pool position ix
// unless something already claimed that position.
func (st *State) noteWinner(ix int, winner Meta) {
	if ix == noPosition {
		return
	}

	if st.conflicts == nil {
		st.conflicts = make(map[int]conflictEntry)
	}

	if _, ok := st.conflicts[ix]; !ok {
		st.conflicts[ix] = conflictEntry{Winner: winner, Solo: true}
	}
}

// noteConflict records a winner/loser pair at the loser's pool position.
func (st *State) noteConflict(ix int, winner, loser Meta) {
	if ix == noPosition {
		return
	}

	if st.conflicts == nil {
		st.conflicts = make(map[int]conflictEntry)
	}

	if _, ok := st.conflicts[ix]; !ok {
		st.conflicts[ix] = conflictEntry{Winner: winner, Loser: loser}
	}
}

// copyUsage copies consumption state for indices in r from src so tokens
// outside a narrowed block retain whatever outcome the outer context
// intended for them. Callers recount remaining via SetScope afterwards.
func (st *State) copyUsage(src *State, r Range) {
	for ix := r.Start; ix < r.End && ix < len(st.state); ix++ {
		st.state[ix] = src.state[ix]
	}
}

// consumedFrom counts tokens consumed in st that were still present in
// orig, the progress a speculative evaluation made.
func (st *State) consumedFrom(orig *State) int {
	n := 0

	for ix := range st.state {
		if st.state[ix].consumed() && orig.state[ix].present() {
			n++
		}
	}

	return n
}

// TakeFlag scans the active scope left to right for a flag token matching
// named and consumes it. Returns false when no such flag is present,
// which is not an error: absence of a flag is not failure.
func (st *State) TakeFlag(named Named) bool {
	ix, ok := st.findPresent(func(t token.Token) bool {
		return named.matches(t, false)
	})
	if !ok {
		return false
	}

	st.Remove(ix)

	return true
}

// TakeArg finds a flag token matching named and consumes both the flag
// and its detached value. The token right after the flag must be a plain
// word; a flag with a missing or strange value is a fatal error. In
// adjacent mode the matcher only accepts flags with an "="-attached
// value. Returns found as false when the flag is absent, which is not an
// error.
func (st *State) TakeArg(named Named, adjacent bool) (value string, found bool, err error) {
	keyIx, ok := st.findPresent(func(t token.Token) bool {
		return named.matches(t, adjacent)
	})
	if !ok {
		return "", false, nil
	}

	valIx := keyIx + 1

	val, ok := st.Get(valIx)
	if !ok || val.Kind != token.Word {
		return "", false, &MessageError{
			Text:     st.items[keyIx].String() + " requires an argument",
			Position: keyIx,
		}
	}

	st.Remove(keyIx)
	st.Remove(valIx)

	return val.Text, true, nil
}

// TakePositionalWord consumes the first present token in scope as a
// positional value for metavar. strict reports the value was forced
// positional by the "--" marker. When the first present token is a flag
// the call fails with a missing-positional error anchored there; an
// empty pool returns found as false, which is not an error.
func (st *State) TakePositionalWord(metavar string) (value string, strict, found bool, err error) {
	ix, tok, ok := st.firstPresent()
	if !ok {
		return "", false, false, nil
	}

	if !tok.IsWord() {
		missing := MissingItem{
			Item:     Item{Kind: ItemPositional, Metavar: metavar},
			Position: ix,
			Scope:    Range{Start: ix, End: ix + 1},
		}

		return "", false, false, &MissingError{Items: []MissingItem{missing}}
	}

	st.Remove(ix)

	return tok.Text, tok.Kind == token.PosWord, true, nil
}

// TakeCmd consumes the first present token in scope when it is a plain
// word equal to the given literal.
func (st *State) TakeCmd(word string) bool {
	ix, tok, ok := st.firstPresent()
	if ok && tok.Kind == token.Word && tok.Text == word {
		st.Remove(ix)
		return true
	}

	st.current = noPosition

	return false
}

// peek returns the first present token in scope without consuming it.
func (st *State) peek() (token.Token, bool) {
	_, tok, ok := st.firstPresent()
	return tok, ok
}
