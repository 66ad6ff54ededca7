//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
)

// Version is the semantic version of the argot module embedded at build
// time. The generator CLI prints it for the --version flag.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical module identifier used across the project,
	// appearing in help text and generated file headers.
	Name = "argot"
	// Description is a short, human-readable summary of the project used
	// in help output and documentation.
	Description = "Composable command line parsing with speculative evaluation"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
