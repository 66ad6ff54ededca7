package argot

import (
	"errors"
	"testing"
)

// point groups a pair of valued flags that must appear side by side.
type point struct {
	x, y string
}

func pointParser() Parser[point] {
	x := Short('x').Argument("X")
	y := Short('y').Argument("Y")

	build := func(st *State) (point, error) {
		var (
			p   point
			err error
		)

		if p.x, err = x.Eval(st); err != nil {
			return p, err
		}

		if p.y, err = y.Eval(st); err != nil {
			return p, err
		}

		return p, nil
	}

	return Construct(build, x.Meta(), y.Meta())
}

func TestAdjacentContiguousBlock(t *testing.T) {
	p := Adjacent(pointParser())

	st := mustState(t, []string{"-x", "1", "-y", "2"}, nil, []rune{'x', 'y'})

	val, err := p.Eval(st)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if val.x != "1" || val.y != "2" {
		t.Errorf("point = %+v", val)
	}

	if !st.IsEmpty() {
		t.Errorf("pool not empty: %d remaining", st.Len())
	}
}

func TestAdjacentRejectsInterleaved(t *testing.T) {
	p := Adjacent(pointParser())

	st := mustState(t, []string{"-x", "1", "-z", "-y", "2"}, []rune{'z'}, []rune{'x', 'y'})

	_, err := p.Eval(st)
	if err == nil {
		t.Fatal("interleaved tokens accepted as adjacent")
	}

	var missing *MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingError", err)
	}

	if len(missing.Items) != 1 || missing.Items[0].Item.Short != 'y' {
		t.Errorf("missing items = %+v, want -y", missing.Items)
	}

	// The partial block stays consumed so the failure is visible in the
	// pool; speculative callers roll it back themselves.
	if st.Len() != 3 {
		t.Errorf("remaining = %d, want 3", st.Len())
	}
}

func TestAdjacentPartialGroupFails(t *testing.T) {
	p := Many(Adjacent(pointParser()))

	st := mustState(t,
		[]string{"-x", "1", "-y", "2", "-x", "3"},
		nil, []rune{'x', 'y'})

	_, err := p.Eval(st)

	var missing *MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingError for the unpaired group", err)
	}

	if len(missing.Items) != 1 || missing.Items[0].Item.Short != 'y' {
		t.Errorf("missing items = %+v, want -y", missing.Items)
	}

	// The repetition restored the pool before reporting.
	if st.Len() != 2 {
		t.Errorf("remaining = %d, want 2", st.Len())
	}
}

func TestAdjacentRepeatedGroups(t *testing.T) {
	p := Many(Adjacent(pointParser()))

	st := mustState(t,
		[]string{"-x", "1", "-y", "2", "-x", "3", "-y", "4"},
		nil, []rune{'x', 'y'})

	vals, err := p.Eval(st)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if len(vals) != 2 {
		t.Fatalf("groups = %d, want 2 (%+v)", len(vals), vals)
	}

	if vals[0] != (point{x: "1", y: "2"}) || vals[1] != (point{x: "3", y: "4"}) {
		t.Errorf("points = %+v", vals)
	}

	if !st.IsEmpty() {
		t.Errorf("pool not empty: %d remaining", st.Len())
	}
}

func TestAdjacentPreservesOuterTokens(t *testing.T) {
	p := Adjacent(pointParser())

	st := mustState(t,
		[]string{"-v", "-x", "1", "-y", "2", "tail"},
		[]rune{'v'}, []rune{'x', 'y'})

	val, err := p.Eval(st)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if val.x != "1" || val.y != "2" {
		t.Errorf("point = %+v", val)
	}

	// The surrounding flag and word stay available for later parsers.
	if !st.Present(0) || !st.Present(5) {
		t.Error("tokens outside the block were consumed")
	}

	if st.Len() != 2 {
		t.Errorf("remaining = %d, want 2", st.Len())
	}
}

func TestAdjacentScopeRestored(t *testing.T) {
	p := Adjacent(pointParser())

	st := mustState(t, []string{"-x", "1", "-y", "2", "tail"}, nil, []rune{'x', 'y'})

	orig := st.Scope()

	if _, err := p.Eval(st); err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if st.Scope() != orig {
		t.Errorf("scope = %+v, want %+v restored", st.Scope(), orig)
	}
}
