/*
File   : ctree/cmd/interp/main.go
Package: main
*/

// Command interp is ctree's entry point: `interp <path>` executes a source
// file; run with no arguments it launches the interactive REPL (spec.md
// §6).
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/deglang/ctree/ast"
	"github.com/deglang/ctree/builtin"
	"github.com/deglang/ctree/environment"
	"github.com/deglang/ctree/eval"
	"github.com/deglang/ctree/lexer"
	"github.com/deglang/ctree/repl"
)

// version is stamped at release time; "dev" otherwise.
var version = "dev"

const banner = `
   _  ______  ____  ___
  | |/_/ /_  \/_  / / _ \
 _>  <_/ __/ / / /_/  __/
/_/|_(_)____//_//_/\___/
`

const separator = "----------------------------------------------------------------"

var redColor = color.New(color.FgRed)

func main() {
	root := &cobra.Command{
		Use:     "interp [path]",
		Short:   "ctree - a tree-walking interpreter with angular Degree arithmetic",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				startRepl()
				return nil
			}
			return runFile(args[0])
		},
	}
	root.SetVersionTemplate("ctree {{.Version}}\n")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func startRepl() {
	r := repl.NewRepl(banner, version, separator, "ctree >> ")
	r.Start(os.Stdout)
}

// runFile reads and interprets a source file. Per spec.md §6, only a
// file-read failure produces a non-zero exit; scan/parse/runtime errors are
// reported to stderr but do not themselves change the exit code.
func runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Could not read file '%s': %v\n", path, err)
		os.Exit(1)
	}

	lx := lexer.New(string(source))
	tokens := lx.Tokenize()
	for _, scanErr := range lx.Errors {
		fmt.Fprintln(os.Stderr, scanErr.Error())
	}

	p := ast.NewParser(tokens)
	statements, hadParseError := p.Parse()
	for _, parseErr := range p.Errors() {
		fmt.Fprintln(os.Stderr, parseErr.Error())
	}

	if len(lx.Errors) > 0 || hadParseError {
		return nil
	}

	env := environment.New()
	builtin.Install(env)

	if err := eval.New().Run(statements, env); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	return nil
}
