package argot

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/argot/log"
)

// Config carries everything an [Invoker] needs besides the parser: the
// strings framing its help screen and the logger its evaluation reports
// to.
type Config struct {
	// ProgName is the name shown in usage and error output. It defaults
	// to the base name of the executable.
	ProgName string

	// Description introduces the program in help output.
	Description string

	// Header and Footer bracket the option listing in help output.
	Header string
	Footer string

	// Version enables the hidden --version flag when non-empty.
	Version string

	// Logger receives evaluation diagnostics. Defaults to the package
	// default of [log], which discards everything.
	Logger log.Logger
}

// Option configures an [Invoker].
type Option func(*Config)

// WithProgName overrides the program name shown in usage and errors.
func WithProgName(name string) Option {
	return func(c *Config) { c.ProgName = name }
}

// WithDescription sets the descriptive text of the help screen.
func WithDescription(text string) Option {
	return func(c *Config) { c.Description = text }
}

// WithHeader sets text printed before the option listing.
func WithHeader(text string) Option {
	return func(c *Config) { c.Header = text }
}

// WithFooter sets text printed after the option listing.
func WithFooter(text string) Option {
	return func(c *Config) { c.Footer = text }
}

// WithVersion enables the --version flag reporting version.
func WithVersion(version string) Option {
	return func(c *Config) { c.Version = version }
}

// WithLogger routes evaluation diagnostics to l.
func WithLogger(l log.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// Invoker couples a parser with its invocation context. It is the entry
// point of a finished command line interface, and doubles as the target
// of [Command] for subcommands.
type Invoker[T any] struct {
	inner  Parser[T]
	config Config
}

// New creates an Invoker around p.
func New[T any](p Parser[T], opts ...Option) *Invoker[T] {
	cfg := Config{
		ProgName: filepath.Base(os.Args[0]),
		Logger:   log.Default(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Invoker[T]{inner: p, config: cfg}
}

// Meta exposes the structural description of the wrapped parser.
func (iv *Invoker[T]) Meta() Meta { return iv.inner.Meta() }

// RunInner parses args, which must not include the program name. On
// success it returns the parsed value. A [*Termination] error means the
// parse was intercepted by --help or --version and Output should be
// printed rather than treated as failure. [Run] wraps all of this for
// the common case.
func (iv *Invoker[T]) RunInner(args []string) (T, error) {
	var zero T

	flags, valued := iv.inner.Meta().shortSets()

	st, err := NewState(args, flags, valued)
	if err != nil {
		iv.config.Logger.Debug("tokenization failed", slog.Any("error", err))
		return zero, err
	}

	iv.config.Logger.Trace("tokenized arguments",
		slog.Int("tokens", len(st.items)),
		slog.Int("present", st.Len()))

	return iv.eval(st)
}

// helpFlag and versionFlag are probed on every evaluation but never
// listed in the parser itself.
var (
	helpFlag    = Long("help").Alias('h')
	versionFlag = Long("version")
)

// eval runs the wrapped parser against st. Command dispatches here with
// a narrowed scope, which makes --help inside a subcommand render that
// subcommand's page.
func (iv *Invoker[T]) eval(st *State) (T, error) {
	var zero T

	if probe := st.Clone(); probe.TakeFlag(helpFlag) {
		return zero, &Termination{
			Output: helpPage(iv.config, iv.inner.Meta()).Render(),
			Stdout: true,
		}
	}

	if iv.config.Version != "" {
		if probe := st.Clone(); probe.TakeFlag(versionFlag) {
			return zero, &Termination{
				Output: fmt.Sprintf("%s %s\n", iv.config.ProgName, iv.config.Version),
				Stdout: true,
			}
		}
	}

	val, err := iv.inner.Eval(st)
	if err != nil {
		iv.config.Logger.Debug("parse failed", slog.Any("error", err))
		return zero, err
	}

	if !st.IsEmpty() {
		return zero, iv.unexpected(st)
	}

	return val, nil
}

// unexpected reports the first leftover token, preferring the conflict
// record when the token lost an alternative resolution.
func (iv *Invoker[T]) unexpected(st *State) error {
	if ix, win, ok := st.firstConflict(); ok && win >= 0 && win < len(st.items) {
		return &MessageError{
			Text: fmt.Sprintf("%s cannot be used at the same time as %s",
				st.items[ix], st.items[win]),
			Position: ix,
		}
	}

	ix, tok, ok := st.firstPresent()
	if !ok {
		return newMessage("unexpected trailing input")
	}

	text := fmt.Sprintf("%s is not expected in this context", tok)
	if s := suggest(iv.inner.Meta(), tok); s != "" {
		text += fmt.Sprintf(", did you mean %s?", s)
	}

	return &MessageError{Text: text, Position: ix}
}

// Run parses os.Args, prints help, version, or error output, and exits
// the process unless the parse succeeded.
func (iv *Invoker[T]) Run() T {
	val, err := iv.RunInner(os.Args[1:])
	if err == nil {
		return val
	}

	code := 1
	out := os.Stderr

	if term, ok := err.(*Termination); ok {
		if term.Stdout {
			out = os.Stdout
		}

		fmt.Fprint(out, term.Output)
		os.Exit(0)
	}

	fmt.Fprintf(out, "%s: %s\n", iv.config.ProgName, err)
	os.Exit(code)

	return val
}
