package main

import (
	"strings"
	"testing"
)

func genSchema() *Schema {
	return &Schema{
		Package:     "main",
		Name:        "demo",
		Description: "A demonstration program.",
		Version:     "1.2.3",
		Options: []OptionDef{
			{Long: "verbose", Short: "v", Switch: true, Help: "increase verbosity"},
			{Long: "output", Short: "o", Metavar: "FILE", Default: "out.txt"},
			{Long: "include", Short: "I", Metavar: "DIR", Many: true},
			{Long: "dry-run", Switch: true},
		},
		Positionals: []PositionalDef{
			{Metavar: "INPUT", Many: true, Help: "input files"},
		},
	}
}

func TestGenerate(t *testing.T) {
	src, err := Generate(genSchema())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	out := string(src)

	for _, want := range []string{
		"// Code generated by argotgen; DO NOT EDIT.",
		"package main",
		`import "github.com/ardnew/argot"`,
		"Verbose bool",
		"Output  string",
		"Include []string",
		"DryRun  bool",
		"Input   []string",
		`argot.Long("verbose").Alias('v').Help("increase verbosity").Switch()`,
		`argot.Fallback(argot.Long("output").Alias('o').Argument("FILE"), "out.txt")`,
		`argot.Many[string](argot.Long("include").Alias('I').Argument("DIR"))`,
		`argot.Many[string](argot.Positional("INPUT").Help("input files"))`,
		`argot.WithProgName("demo")`,
		`argot.WithVersion("1.2.3")`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateShortOnly(t *testing.T) {
	src, err := Generate(&Schema{
		Package: "main",
		Name:    "x",
		Options: []OptionDef{{Short: "q", Switch: true}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(string(src), `argot.Short('q').Switch()`) {
		t.Errorf("short-only option not rendered:\n%s", src)
	}
}

func TestFieldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "verbose", want: "Verbose"},
		{in: "dry-run", want: "DryRun"},
		{in: "INPUT_FILE", want: "InputFile"},
		{in: "log-level", want: "LogLevel"},
	}

	for _, tt := range tests {
		if got := fieldName(tt.in); got != tt.want {
			t.Errorf("fieldName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLocalNameCollisions(t *testing.T) {
	used := map[string]bool{"build": true, "opt": true, "err": true, "st": true}

	if got := localName("type", used); got != "typeOpt" {
		t.Errorf("keyword local = %q, want typeOpt", got)
	}

	first := localName("output", used)
	second := localName("output", used)

	if first == second {
		t.Errorf("colliding locals not distinguished: %q / %q", first, second)
	}
}
