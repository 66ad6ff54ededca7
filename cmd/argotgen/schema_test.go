package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSchema = `
package: main
name: demo
description: A demonstration program.
version: 1.2.3
options:
  - long: verbose
    short: v
    help: increase verbosity
    switch: true
  - long: output
    short: o
    metavar: FILE
    default: out.txt
    help: output file
  - long: trace
    switch: true
    when: define("debug") == "1"
positionals:
  - metavar: INPUT
    help: input files
    many: true
`

func writeSchema(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "schema.yaml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	return path
}

func TestLoadSchema(t *testing.T) {
	s, err := LoadSchema(writeSchema(t, sampleSchema))
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}

	if s.Name != "demo" || s.Package != "main" {
		t.Errorf("unexpected identity: name=%q package=%q", s.Name, s.Package)
	}

	if len(s.Options) != 3 || len(s.Positionals) != 1 {
		t.Errorf("got %d options, %d positionals", len(s.Options), len(s.Positionals))
	}
}

func TestLoadSchemaValidation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "missing package",
			text: "name: x",
			want: "package is required",
		},
		{
			name: "missing name",
			text: "package: main",
			want: "name is required",
		},
		{
			name: "nameless option",
			text: "package: main\nname: x\noptions:\n  - help: orphan",
			want: "long or short is required",
		},
		{
			name: "multirune short",
			text: "package: main\nname: x\noptions:\n  - short: vv",
			want: "single letter",
		},
		{
			name: "switch with metavar",
			text: "package: main\nname: x\noptions:\n  - long: v\n    switch: true\n    metavar: N",
			want: "switch excludes",
		},
		{
			name: "positional without metavar",
			text: "package: main\nname: x\npositionals:\n  - help: orphan",
			want: "metavar is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSchema(writeSchema(t, tt.text))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestFilterWhen(t *testing.T) {
	tests := []struct {
		name    string
		defines map[string]string
		want    int
	}{
		{name: "condition false", defines: nil, want: 2},
		{name: "condition true", defines: map[string]string{"debug": "1"}, want: 3},
		{name: "condition wrong value", defines: map[string]string{"debug": "0"}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadSchema(writeSchema(t, sampleSchema))
			if err != nil {
				t.Fatalf("LoadSchema: %v", err)
			}

			if err := s.Filter(tt.defines); err != nil {
				t.Fatalf("Filter: %v", err)
			}

			if len(s.Options) != tt.want {
				t.Errorf("options after filter = %d, want %d", len(s.Options), tt.want)
			}
		})
	}
}

func TestFilterBadExpression(t *testing.T) {
	s := &Schema{
		Package: "main",
		Name:    "x",
		Options: []OptionDef{{Long: "bad", When: "no such ("}},
	}

	if err := s.Filter(nil); err == nil {
		t.Error("expected compile error from malformed when:")
	}
}

func TestParseDefines(t *testing.T) {
	got := ParseDefines([]string{"a=1", "b=x=y", "bare"})

	want := map[string]string{"a": "1", "b": "x=y", "bare": ""}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("defines[%q] = %q, want %q", k, got[k], v)
		}
	}
}
