//go:build pprof

package main

import (
	"strings"

	"github.com/ardnew/argot"
	"github.com/ardnew/argot/profile"
)

// profiling holds the profiler flags available when built with the pprof
// tag.
type profiling struct {
	mode string
	dir  string
}

func profileParser() argot.Parser[profiling] {
	mode := argot.Fallback[string](
		argot.Long("pprof").
			Help("enable profiling: "+strings.Join(profile.Modes(), ", ")).
			Argument("MODE"),
		"")

	dir := argot.Fallback[string](
		argot.Long("pprof-dir").
			Help("profile output directory").
			Argument("DIR"),
		"")

	build := func(st *argot.State) (profiling, error) {
		var (
			p   profiling
			err error
		)

		if p.mode, err = mode.Eval(st); err != nil {
			return p, err
		}

		if p.dir, err = dir.Eval(st); err != nil {
			return p, err
		}

		return p, nil
	}

	return argot.Construct(build, mode.Meta(), dir.Meta())
}

// start begins profiling if a mode was requested.
func (p profiling) start() (stop func()) {
	var cfg profile.Config = func() (string, string, bool) {
		return "", "", false
	}

	cfg = profile.WithMode(p.mode)(cfg)
	cfg = profile.WithPath(p.dir)(cfg)
	cfg = profile.WithQuiet(true)(cfg)

	return cfg.Start().Stop
}
