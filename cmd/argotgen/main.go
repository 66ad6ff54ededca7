// Command argotgen generates Go source from a YAML description of a
// command line interface. The generated file builds its parser entirely
// from the public argot API, so the output has no dependency on this
// tool.
//
// Schema entries may carry a when: expression evaluated against the
// --define table, letting one schema produce different interfaces per
// build.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ardnew/argot"
	"github.com/ardnew/argot/log"
	"github.com/ardnew/argot/pkg"
)

type cliOptions struct {
	schemaPath string
	outputPath string
	pkgName    string
	defines    []string
	logLevel   string
	logFormat  string
	prof       profiling
}

func buildCLI() *argot.Invoker[cliOptions] {
	output := argot.Fallback[string](
		argot.Long("output").Alias('o').
			Help("write generated code to FILE instead of stdout").
			Argument("FILE"),
		"")

	pkgName := argot.Fallback[string](
		argot.Long("package").Alias('p').
			Help("override the package name declared in the schema").
			Argument("NAME"),
		"")

	defines := argot.Many[string](
		argot.Long("define").Alias('D').
			Help("define KEY=VALUE for when: conditions (repeatable)").
			Argument("KEY=VALUE"))

	logLevel := argot.Fallback[string](
		argot.Long("log-level").Help("log verbosity: trace, debug, info, warn, error").
			Argument("LEVEL"),
		log.DefaultLevel.String())

	logFormat := argot.Fallback[string](
		argot.Long("log-format").Help("log output format: text, json, pretty").
			Argument("FORMAT"),
		log.DefaultFormat.String())

	prof := profileParser()

	schema := argot.Positional("SCHEMA").Help("YAML schema describing the interface")

	build := func(st *argot.State) (cliOptions, error) {
		var (
			opt cliOptions
			err error
		)

		if opt.outputPath, err = output.Eval(st); err != nil {
			return opt, err
		}

		if opt.pkgName, err = pkgName.Eval(st); err != nil {
			return opt, err
		}

		if opt.defines, err = defines.Eval(st); err != nil {
			return opt, err
		}

		if opt.logLevel, err = logLevel.Eval(st); err != nil {
			return opt, err
		}

		if opt.logFormat, err = logFormat.Eval(st); err != nil {
			return opt, err
		}

		if opt.prof, err = prof.Eval(st); err != nil {
			return opt, err
		}

		if opt.schemaPath, err = schema.Eval(st); err != nil {
			return opt, err
		}

		return opt, nil
	}

	parser := argot.Construct(build,
		output.Meta(),
		pkgName.Meta(),
		defines.Meta(),
		logLevel.Meta(),
		logFormat.Meta(),
		prof.Meta(),
		schema.Meta(),
	)

	return argot.New(parser,
		argot.WithProgName("argotgen"),
		argot.WithDescription(pkg.Description),
		argot.WithVersion(strings.TrimSpace(pkg.Version)),
		argot.WithLogger(log.Default()),
	)
}

func main() {
	opt := buildCLI().Run()

	log.SetDefault(log.Make(os.Stderr,
		log.WithLevel(log.ParseLevel(opt.logLevel)),
		log.WithFormat(log.ParseFormat(opt.logFormat)),
	))

	defer opt.prof.start()()

	if err := run(opt); err != nil {
		fmt.Fprintf(os.Stderr, "argotgen: %s\n", err)
		os.Exit(1)
	}
}

func run(opt cliOptions) error {
	schema, err := LoadSchema(opt.schemaPath)
	if err != nil {
		return err
	}

	if opt.pkgName != "" {
		schema.Package = opt.pkgName
	}

	if err := schema.Filter(ParseDefines(opt.defines)); err != nil {
		return err
	}

	src, err := Generate(schema)
	if err != nil {
		return err
	}

	if opt.outputPath == "" {
		_, err = os.Stdout.Write(src)
		return err
	}

	return os.WriteFile(opt.outputPath, src, 0o644)
}
