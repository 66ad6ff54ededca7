package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"
)

// Schema is the YAML description of a command line interface.
type Schema struct {
	// Package is the Go package name of the generated file.
	Package string `yaml:"package"`

	// Name is the program name shown in usage and version output.
	Name string `yaml:"name"`

	Description string `yaml:"description"`
	Version     string `yaml:"version"`

	Options     []OptionDef     `yaml:"options"`
	Positionals []PositionalDef `yaml:"positionals"`
}

// OptionDef describes one named flag or argument.
type OptionDef struct {
	// Long and Short name the option. At least one must be set.
	Long  string `yaml:"long"`
	Short string `yaml:"short"`

	Help string `yaml:"help"`

	// Switch makes the option a boolean flag with no value.
	Switch bool `yaml:"switch"`

	// Metavar is the value placeholder of a non-switch option.
	Metavar string `yaml:"metavar"`

	// Default substitutes when the option is absent. Without it a
	// non-switch, non-repeated option is required.
	Default string `yaml:"default"`

	// Many collects repeated occurrences into a slice.
	Many bool `yaml:"many"`

	// When is an expression deciding whether this entry is generated at
	// all, evaluated against the --define table.
	When string `yaml:"when"`
}

// PositionalDef describes one positional value.
type PositionalDef struct {
	Metavar string `yaml:"metavar"`
	Help    string `yaml:"help"`
	Default string `yaml:"default"`
	Many    bool   `yaml:"many"`
	When    string `yaml:"when"`
}

// LoadSchema reads and validates a schema file.
func LoadSchema(path string) (*Schema, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	var s Schema
	if err := yaml.Unmarshal(buf, &s); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Schema) validate() error {
	if s.Package == "" {
		return fmt.Errorf("schema: package is required")
	}

	if s.Name == "" {
		return fmt.Errorf("schema: name is required")
	}

	for ix, opt := range s.Options {
		if opt.Long == "" && opt.Short == "" {
			return fmt.Errorf("schema: options[%d]: long or short is required", ix)
		}

		if opt.Short != "" && utf8.RuneCountInString(opt.Short) != 1 {
			return fmt.Errorf("schema: options[%d]: short %q must be a single letter", ix, opt.Short)
		}

		if opt.Switch && (opt.Metavar != "" || opt.Default != "" || opt.Many) {
			return fmt.Errorf("schema: options[%d]: switch excludes metavar, default, and many", ix)
		}
	}

	for ix, pos := range s.Positionals {
		if pos.Metavar == "" {
			return fmt.Errorf("schema: positionals[%d]: metavar is required", ix)
		}
	}

	return nil
}

// Filter drops every entry whose when: expression evaluates false
// against defines. Entries without a condition always survive.
func (s *Schema) Filter(defines map[string]string) error {
	opts := s.Options[:0]

	for _, opt := range s.Options {
		keep, err := evalWhen(opt.When, defines)
		if err != nil {
			return fmt.Errorf("option %s: %w", opt.Long+opt.Short, err)
		}

		if keep {
			opts = append(opts, opt)
		}
	}

	s.Options = opts

	pos := s.Positionals[:0]

	for _, p := range s.Positionals {
		keep, err := evalWhen(p.When, defines)
		if err != nil {
			return fmt.Errorf("positional %s: %w", p.Metavar, err)
		}

		if keep {
			pos = append(pos, p)
		}
	}

	s.Positionals = pos

	return nil
}

// evalWhen compiles and runs one when: expression. The defines table is
// visible both as the `defines` map and as a `define(key)` lookup that
// returns "" for unset keys.
func evalWhen(source string, defines map[string]string) (bool, error) {
	if strings.TrimSpace(source) == "" {
		return true, nil
	}

	env := whenEnv(defines)

	program, err := expr.Compile(source, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("compile when %q: %w", source, err)
	}

	out, err := vm.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("eval when %q: %w", source, err)
	}

	keep, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("when %q: result is %T, not bool", source, out)
	}

	return keep, nil
}

func whenEnv(defines map[string]string) map[string]any {
	if defines == nil {
		defines = map[string]string{}
	}

	return map[string]any{
		"defines": defines,
		"define": func(key string) string {
			return defines[key]
		},
	}
}

// ParseDefines splits KEY=VALUE pairs from repeated --define flags. A
// bare KEY defines the key as empty, which when: can test with
// `"KEY" in defines`.
func ParseDefines(pairs []string) map[string]string {
	defines := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		defines[key] = value
	}

	return defines
}
