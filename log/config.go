package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Level represents the severity of a log message.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug) - 4
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// DefaultLevel is the level used when none is configured.
const DefaultLevel = LevelInfo

// String returns the lowercase name of the level. Offsets between named
// levels fall through to slog's representation.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return strings.ToLower(slog.Level(l).String())
	}
}

// ParseLevel parses a level name, case-insensitively. Unrecognized input
// yields [DefaultLevel]. "trace" is handled here because
// [slog.Level.UnmarshalText] does not know it.
func ParseLevel(s string) Level {
	if strings.EqualFold(strings.TrimSpace(s), "trace") {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format represents the output format for log messages.
type Format int

const (
	FormatText   Format = iota // plain key=value lines
	FormatJSON                 // one JSON object per line
	FormatPretty               // colorized text for terminals
)

// DefaultFormat is the format used when none is configured.
const DefaultFormat = FormatText

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatPretty:
		return "pretty"
	default:
		return "text"
	}
}

// ParseFormat parses a format name, case-insensitively. Unrecognized
// input yields [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "pretty":
		return FormatPretty
	case "text":
		return FormatText
	default:
		return DefaultFormat
	}
}

// config holds the settings a Logger was built with.
type config struct {
	output     io.Writer
	level      Level
	format     Format
	timeLayout string
	caller     bool
}

// Option applies one configuration value to a config.
type Option func(config) config

// apply folds opts over cfg.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// makeConfig builds a config from defaults overridden by opts.
func makeConfig(w io.Writer, opts ...Option) config {
	cfg := config{
		output:     w,
		level:      DefaultLevel,
		format:     DefaultFormat,
		timeLayout: time.RFC3339,
	}

	return apply(cfg, opts...)
}

// WithLevel sets the minimum level a message must have to be emitted.
func WithLevel(l Level) Option {
	return func(c config) config {
		c.level = l
		return c
	}
}

// WithFormat selects the output format.
func WithFormat(f Format) Option {
	return func(c config) config {
		c.format = f
		return c
	}
}

// WithWriter redirects output to w.
func WithWriter(w io.Writer) Option {
	return func(c config) config {
		c.output = w
		return c
	}
}

// WithTimeLayout sets the layout used to render timestamps. An empty
// layout omits the timestamp entirely.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.timeLayout = layout
		return c
	}
}

// WithCaller includes the file and line of the call site in each record.
func WithCaller(enabled bool) Option {
	return func(c config) config {
		c.caller = enabled
		return c
	}
}

// handler builds the slog.Handler described by c.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if c.timeLayout == "" {
					return slog.Attr{}
				}

				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(c.timeLayout))
				}

			case slog.LevelKey:
				// Render "trace" instead of slog's "DEBUG-4".
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(strings.ToUpper(Level(l).String()))
				}
			}

			return a
		},
	}

	switch c.format {
	case FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	case FormatPretty:
		return newPrettyHandler(c.output, opts)
	default:
		return slog.NewTextHandler(c.output, opts)
	}
}
