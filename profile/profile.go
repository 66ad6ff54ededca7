// Package profile provides optional runtime profiling built on
// [github.com/pkg/profile]. It compiles to no-ops unless the build
// carries the pprof tag, so callers can start and stop unconditionally:
//
//	defer profile.Config(func() (string, string, bool) {
//		return "cpu", outDir, true
//	}).Start().Stop()
//
// [Modes] lists the supported profiling modes for the current build.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`

// Config functions return all supported profiler parameters: the mode,
// the output directory, and whether to suppress the profiler's own
// logging.
type Config func() (mode, path string, quiet bool)

// Start initializes the profiler and returns an interface for stopping
// it. Without the pprof build tag, or with an empty mode, the returned
// value is a no-op. Both Start and Stop are always safely callable.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode returns a functional option for setting a profiler's mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

// WithPath returns a functional option for setting a profiler's output
// directory.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

// WithQuiet returns a functional option for silencing profiler logging.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

type ignore struct{}

func (ignore) Stop() {}
