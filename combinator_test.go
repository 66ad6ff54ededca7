package argot

import (
	"errors"
	"strconv"
	"testing"
)

func TestMap(t *testing.T) {
	st := mustState(t, []string{"--speed", "12"}, nil, nil)

	speed := Map(Long("speed").Argument("SPEED"), func(s string) string {
		return s + "mph"
	})

	val, err := speed.Eval(st)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if val != "12mph" {
		t.Errorf("value = %q, want 12mph", val)
	}
}

func TestThenConversion(t *testing.T) {
	speed := Then(Long("speed").Argument("SPEED"), func(s string) (int, error) {
		return strconv.Atoi(s)
	})

	t.Run("valid", func(t *testing.T) {
		st := mustState(t, []string{"--speed", "12"}, nil, nil)

		val, err := speed.Eval(st)
		if err != nil || val != 12 {
			t.Errorf("Eval = (%d, %v), want (12, nil)", val, err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		st := mustState(t, []string{"--speed", "fast"}, nil, nil)

		_, err := speed.Eval(st)

		var message *MessageError
		if !errors.As(err, &message) {
			t.Fatalf("err = %v, want MessageError", err)
		}

		if message.Recoverable {
			t.Error("conversion failure marked recoverable")
		}
	})
}

func TestGuard(t *testing.T) {
	speed := Guard(
		Then(Long("speed").Argument("SPEED"), func(s string) (int, error) {
			return strconv.Atoi(s)
		}),
		func(n int) bool { return n > 0 },
		"speed must be positive",
	)

	t.Run("accepted", func(t *testing.T) {
		st := mustState(t, []string{"--speed", "5"}, nil, nil)

		if val, err := speed.Eval(st); err != nil || val != 5 {
			t.Errorf("Eval = (%d, %v)", val, err)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		st := mustState(t, []string{"--speed=-3"}, nil, nil)

		_, err := speed.Eval(st)

		var message *MessageError
		if !errors.As(err, &message) {
			t.Fatalf("err = %v, want MessageError", err)
		}
	})
}

func TestOptional(t *testing.T) {
	speed := Optional[string](Long("speed").Argument("SPEED"))

	t.Run("present", func(t *testing.T) {
		st := mustState(t, []string{"--speed", "12"}, nil, nil)

		val, err := speed.Eval(st)
		if err != nil || val == nil || *val != "12" {
			t.Errorf("Eval = (%v, %v)", val, err)
		}
	})

	t.Run("absent", func(t *testing.T) {
		st := mustState(t, []string{"--other"}, nil, nil)

		val, err := speed.Eval(st)
		if err != nil || val != nil {
			t.Errorf("Eval = (%v, %v), want (nil, nil)", val, err)
		}

		if st.Len() != 1 {
			t.Errorf("absent path mutated the pool: %d remaining", st.Len())
		}
	})

	t.Run("fatal error propagates", func(t *testing.T) {
		// The flag is present but its value is missing.
		st := mustState(t, []string{"--speed"}, nil, nil)

		if _, err := speed.Eval(st); err == nil {
			t.Error("fatal error swallowed by Optional")
		}
	})

	t.Run("catch swallows fatal", func(t *testing.T) {
		st := mustState(t, []string{"--speed"}, nil, nil)

		val, err := speed.Catch().Eval(st)
		if err != nil || val != nil {
			t.Errorf("Eval = (%v, %v), want (nil, nil)", val, err)
		}

		if st.Len() != 1 {
			t.Errorf("catch left the pool mutated: %d remaining", st.Len())
		}
	})
}

func TestMany(t *testing.T) {
	include := Many[string](Long("include").Alias('I').Argument("DIR"))

	t.Run("several", func(t *testing.T) {
		st := mustState(t, []string{"-I", "a", "-I", "b", "-I", "c"}, nil, []rune{'I'})

		vals, err := include.Eval(st)
		if err != nil {
			t.Fatalf("Eval: %v", err)
		}

		if len(vals) != 3 || vals[0] != "a" || vals[2] != "c" {
			t.Errorf("values = %v", vals)
		}

		if !st.IsEmpty() {
			t.Errorf("pool not empty: %d remaining", st.Len())
		}
	})

	t.Run("zero", func(t *testing.T) {
		st := mustState(t, []string{"--other"}, nil, nil)

		vals, err := include.Eval(st)
		if err != nil || len(vals) != 0 {
			t.Errorf("Eval = (%v, %v), want empty success", vals, err)
		}
	})
}

func TestSomeRequiresOne(t *testing.T) {
	include := Some[string](Long("include").Argument("DIR"), "at least one --include is required")

	st := mustState(t, []string{}, nil, nil)

	_, err := include.Eval(st)

	var message *MessageError
	if !errors.As(err, &message) {
		t.Fatalf("err = %v, want MessageError", err)
	}

	if !message.Recoverable {
		t.Error("some-empty error must stay recoverable for fallbacks")
	}
}

func TestManyPanicsOnZeroConsumption(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic from non-consuming parser inside Many")
		}
	}()

	st := mustState(t, []string{"word"}, nil, nil)

	_, _ = Many(Pure("x")).Eval(st)
}

func TestFallback(t *testing.T) {
	speed := Fallback[string](Long("speed").Argument("SPEED"), "10")

	t.Run("absent", func(t *testing.T) {
		st := mustState(t, []string{}, nil, nil)

		val, err := speed.Eval(st)
		if err != nil || val != "10" {
			t.Errorf("Eval = (%q, %v), want (10, nil)", val, err)
		}
	})

	t.Run("present", func(t *testing.T) {
		st := mustState(t, []string{"--speed", "30"}, nil, nil)

		val, err := speed.Eval(st)
		if err != nil || val != "30" {
			t.Errorf("Eval = (%q, %v), want (30, nil)", val, err)
		}
	})

	t.Run("fatal error not substituted", func(t *testing.T) {
		st := mustState(t, []string{"--speed"}, nil, nil)

		if _, err := speed.Eval(st); err == nil {
			t.Error("fatal error swallowed by Fallback")
		}
	})

	t.Run("recoverable message substituted", func(t *testing.T) {
		some := Fallback(
			Some[string](Long("include").Argument("DIR"), "need one"),
			[]string{"default"},
		)

		st := mustState(t, []string{}, nil, nil)

		vals, err := some.Eval(st)
		if err != nil || len(vals) != 1 || vals[0] != "default" {
			t.Errorf("Eval = (%v, %v)", vals, err)
		}
	})
}

func TestHideEmptiesMissing(t *testing.T) {
	hidden := Hide(ReqFlag(Long("secret"), struct{}{}))

	st := mustState(t, []string{}, nil, nil)

	_, err := hidden.Eval(st)

	var missing *MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingError", err)
	}

	if len(missing.Items) != 0 {
		t.Errorf("hidden items leaked: %+v", missing.Items)
	}

	if hidden.Meta().Kind != MetaSkip {
		t.Error("hidden parser still describes itself")
	}
}

func TestGroupHelpNote(t *testing.T) {
	grouped := GroupHelp(Long("verbose").Switch(), "Debugging:")

	m := grouped.Meta()
	if m.Kind != MetaDecorated || m.Note != "Debugging:" {
		t.Errorf("meta = %+v", m)
	}

	st := mustState(t, []string{"--verbose"}, nil, nil)

	val, err := grouped.Eval(st)
	if err != nil || !val {
		t.Errorf("Eval = (%v, %v)", val, err)
	}
}
