package main

import (
	"bytes"
	"fmt"
	"go/format"
	gotoken "go/token"
	"strings"
	"text/template"
	"unicode"
)

// genField is one Options struct field with its parser expression, fully
// rendered so the template stays declarative.
type genField struct {
	Local string
	Field string
	Type  string
	Expr  string
}

type genView struct {
	Package     string
	Name        string
	Description string
	Version     string
	Fields      []genField
}

var genTemplate = template.Must(template.New("gen").Parse(`// Code generated by argotgen; DO NOT EDIT.

package {{.Package}}

import "github.com/ardnew/argot"

// Options holds the values parsed from the command line.
type Options struct {
{{- range .Fields}}
	{{.Field}} {{.Type}}
{{- end}}
}

// NewInvoker builds the {{.Name}} command line parser.
func NewInvoker() *argot.Invoker[Options] {
{{- range .Fields}}
	{{.Local}} := {{.Expr}}
{{- end}}

	build := func(st *argot.State) (Options, error) {
		var (
			opt Options
			err error
		)
{{- range .Fields}}

		if opt.{{.Field}}, err = {{.Local}}.Eval(st); err != nil {
			return opt, err
		}
{{- end}}

		return opt, nil
	}

	return argot.New(
		argot.Construct(build{{range .Fields}}, {{.Local}}.Meta(){{end}}),
		argot.WithProgName({{printf "%q" .Name}}),
		argot.WithDescription({{printf "%q" .Description}}),
		argot.WithVersion({{printf "%q" .Version}}),
	)
}
`))

// Generate renders the Go source for s, gofmt-formatted.
func Generate(s *Schema) ([]byte, error) {
	view := genView{
		Package:     s.Package,
		Name:        s.Name,
		Description: s.Description,
		Version:     s.Version,
	}

	used := map[string]bool{"build": true, "opt": true, "err": true, "st": true}

	for _, opt := range s.Options {
		name := opt.Long
		if name == "" {
			name = opt.Short
		}

		view.Fields = append(view.Fields, genField{
			Local: localName(name, used),
			Field: fieldName(name),
			Type:  optionType(opt),
			Expr:  optionExpr(opt),
		})
	}

	for _, pos := range s.Positionals {
		view.Fields = append(view.Fields, genField{
			Local: localName(pos.Metavar, used),
			Field: fieldName(pos.Metavar),
			Type:  positionalType(pos),
			Expr:  positionalExpr(pos),
		})
	}

	buf := new(bytes.Buffer)
	if err := genTemplate.Execute(buf, view); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}

	return src, nil
}

func optionType(opt OptionDef) string {
	switch {
	case opt.Switch:
		return "bool"
	case opt.Many:
		return "[]string"
	default:
		return "string"
	}
}

// optionExpr renders the parser expression for one named option.
func optionExpr(opt OptionDef) string {
	var b strings.Builder

	if opt.Long != "" {
		fmt.Fprintf(&b, "argot.Long(%q)", opt.Long)

		if opt.Short != "" {
			fmt.Fprintf(&b, ".Alias(%q)", firstRune(opt.Short))
		}
	} else {
		fmt.Fprintf(&b, "argot.Short(%q)", firstRune(opt.Short))
	}

	if opt.Help != "" {
		fmt.Fprintf(&b, ".Help(%q)", opt.Help)
	}

	if opt.Switch {
		b.WriteString(".Switch()")
		return b.String()
	}

	metavar := opt.Metavar
	if metavar == "" {
		metavar = "VALUE"
	}

	fmt.Fprintf(&b, ".Argument(%q)", metavar)

	switch {
	case opt.Many:
		return "argot.Many[string](" + b.String() + ")"
	case opt.Default != "":
		return fmt.Sprintf("argot.Fallback(%s, %q)", b.String(), opt.Default)
	default:
		return b.String()
	}
}

func positionalType(pos PositionalDef) string {
	if pos.Many {
		return "[]string"
	}

	return "string"
}

func positionalExpr(pos PositionalDef) string {
	var b strings.Builder

	fmt.Fprintf(&b, "argot.Positional(%q)", pos.Metavar)

	if pos.Help != "" {
		fmt.Fprintf(&b, ".Help(%q)", pos.Help)
	}

	switch {
	case pos.Many:
		return "argot.Many[string](" + b.String() + ")"
	case pos.Default != "":
		return fmt.Sprintf("argot.Fallback(%s, %q)", b.String(), pos.Default)
	default:
		return b.String()
	}
}

// fieldName turns a long option or metavar into an exported identifier:
// "dry-run" becomes DryRun, "INPUT_FILE" becomes InputFile.
func fieldName(name string) string {
	var b strings.Builder

	up := true

	for _, r := range strings.ToLower(name) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			up = true
			continue
		}

		if up {
			r = unicode.ToUpper(r)
			up = false
		}

		b.WriteRune(r)
	}

	return b.String()
}

// localName derives an unexported, collision-free variable name.
func localName(name string, used map[string]bool) string {
	field := fieldName(name)
	if field == "" {
		field = "Value"
	}

	local := strings.ToLower(field[:1]) + field[1:]
	if gotoken.IsKeyword(local) {
		local += "Opt"
	}

	for used[local] {
		local += "X"
	}

	used[local] = true

	return local
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}

	return 0
}
