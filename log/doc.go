// Package log wraps [log/slog] with a trace level, selectable output
// formats, and a colorized text handler for terminals.
//
// The package keeps a default [Logger] that discards everything, so
// library code can log unconditionally and stay silent unless the host
// application routes the output somewhere:
//
//	log.SetDefault(log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//	))
//
// Loggers are values. Deriving a variant with [Logger.Wrap] or
// [Logger.With] never mutates the original, so handing a Logger to a
// goroutine requires no coordination.
package log
