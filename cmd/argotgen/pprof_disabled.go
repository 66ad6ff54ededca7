//go:build !pprof

package main

import "github.com/ardnew/argot"

// profiling is empty when built without the pprof tag.
type profiling struct{}

func profileParser() argot.Parser[profiling] {
	return argot.Pure(profiling{})
}

// start is a no-op when built without the pprof tag.
func (profiling) start() (stop func()) { return func() {} }
