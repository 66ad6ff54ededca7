package argot

import (
	"errors"
	"testing"
)

func TestPositional(t *testing.T) {
	p := Positional("FILE")

	st := mustState(t, []string{"input.txt"}, nil, nil)

	val, err := p.Eval(st)
	if err != nil || val != "input.txt" {
		t.Errorf("Eval = (%q, %v)", val, err)
	}
}

func TestPositionalMissing(t *testing.T) {
	p := Positional("FILE")

	st := mustState(t, []string{}, nil, nil)

	_, err := p.Eval(st)

	var missing *MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingError", err)
	}

	if len(missing.Items) != 1 || missing.Items[0].Item.Metavar != "FILE" {
		t.Errorf("missing items = %+v", missing.Items)
	}
}

func TestPositionalStrict(t *testing.T) {
	p := Positional("ARG").Strict()

	t.Run("after marker", func(t *testing.T) {
		st := mustState(t, []string{"--", "-x"}, nil, nil)

		val, err := p.Eval(st)
		if err != nil || val != "-x" {
			t.Errorf("Eval = (%q, %v), want (-x, nil)", val, err)
		}
	})

	t.Run("before marker", func(t *testing.T) {
		st := mustState(t, []string{"loose"}, nil, nil)

		_, err := p.Eval(st)

		var message *MessageError
		if !errors.As(err, &message) {
			t.Fatalf("err = %v, want MessageError", err)
		}
	})
}

func TestCommandDispatch(t *testing.T) {
	jobs := Fallback[string](Long("jobs").Alias('j').Argument("N"), "1")
	sub := New[string](jobs, WithDescription("compile the project"))

	build := Command("build", sub)

	t.Run("match", func(t *testing.T) {
		st := mustState(t, []string{"build", "--jobs", "4"}, nil, nil)

		val, err := build.Eval(st)
		if err != nil || val != "4" {
			t.Errorf("Eval = (%q, %v), want (4, nil)", val, err)
		}

		if st.depth() != 1 {
			t.Errorf("depth = %d, want 1", st.depth())
		}
	})

	t.Run("wrong word", func(t *testing.T) {
		st := mustState(t, []string{"test"}, nil, nil)

		_, err := build.Eval(st)

		var missing *MissingError
		if !errors.As(err, &missing) {
			t.Fatalf("err = %v, want MissingError", err)
		}

		if len(missing.Items) != 1 || missing.Items[0].Item.Kind != ItemCommand {
			t.Errorf("missing items = %+v", missing.Items)
		}
	})
}

func TestCommandDepthWinsAlternative(t *testing.T) {
	// A branch that entered a subcommand wins the alternative outright,
	// even when the flat branch also succeeds.
	inner := Fallback[string](Long("jobs").Argument("N"), "flat-default")
	sub := New[string](inner)

	p := OrElse(
		Fallback(Command("build", sub), "not taken"),
		Pure("flat"),
	)

	st := mustState(t, []string{"build"}, nil, nil)

	val, err := p.Eval(st)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if val != "flat-default" {
		t.Errorf("value = %q, want flat-default (command branch)", val)
	}
}
