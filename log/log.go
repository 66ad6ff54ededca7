package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

// Logger is an immutable logging handle. The zero value discards all
// messages.
type Logger struct {
	logger *slog.Logger
	config config
}

// Make creates a [Logger] writing to w, configured by opts. Without
// options the logger emits text records at [DefaultLevel].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{
		logger: slog.New(cfg.handler()),
		config: cfg,
	}
}

// Wrap derives a new Logger from l with opts overriding its settings.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.logger == nil {
		return l
	}

	cfg := apply(l.config, opts...)

	return Logger{
		logger: slog.New(cfg.handler()),
		config: cfg,
	}
}

// With derives a new Logger that includes attrs in every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.logger == nil {
		return l
	}

	return Logger{
		logger: slog.New(l.logger.Handler().WithAttrs(attrs)),
		config: l.config,
	}
}

// Level returns the minimum level l emits.
func (l Logger) Level() Level {
	if l.logger == nil {
		return DefaultLevel
	}

	return l.config.level
}

// Format returns the output format l was built with.
func (l Logger) Format() Format {
	if l.logger == nil {
		return DefaultFormat
	}

	return l.config.format
}

// Enabled reports whether a record at level would be emitted.
func (l Logger) Enabled(level Level) bool {
	if l.logger == nil {
		return false
	}

	return l.logger.Enabled(context.Background(), slog.Level(level))
}

// Trace logs a message at trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(LevelTrace, msg, attrs...)
}

// Debug logs a message at debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(LevelDebug, msg, attrs...)
}

// Info logs a message at info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(LevelInfo, msg, attrs...)
}

// Warn logs a message at warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(LevelWarn, msg, attrs...)
}

// Error logs a message at error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(LevelError, msg, attrs...)
}

func (l Logger) log(level Level, msg string, attrs ...slog.Attr) {
	if l.logger == nil {
		return
	}

	ctx := context.Background()
	if !l.logger.Enabled(ctx, slog.Level(level)) {
		return
	}

	// Skip runtime.Callers, log, and the leveled wrapper to reach the
	// call site slog should report.
	var pcs [1]uintptr

	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.logger.Handler().Handle(ctx, r)
}

// std holds the package default Logger. It starts as a zero value, which
// discards everything.
var std atomic.Pointer[Logger]

// Default returns the package default Logger.
func Default() Logger {
	if l := std.Load(); l != nil {
		return *l
	}

	return Logger{}
}

// SetDefault replaces the package default Logger.
func SetDefault(l Logger) {
	std.Store(&l)
}

// Trace logs to the default Logger at trace level.
func Trace(msg string, attrs ...slog.Attr) { Default().log(LevelTrace, msg, attrs...) }

// Debug logs to the default Logger at debug level.
func Debug(msg string, attrs ...slog.Attr) { Default().log(LevelDebug, msg, attrs...) }

// Info logs to the default Logger at info level.
func Info(msg string, attrs ...slog.Attr) { Default().log(LevelInfo, msg, attrs...) }

// Warn logs to the default Logger at warn level.
func Warn(msg string, attrs ...slog.Attr) { Default().log(LevelWarn, msg, attrs...) }

// Error logs to the default Logger at error level.
func Error(msg string, attrs ...slog.Attr) { Default().log(LevelError, msg, attrs...) }
