/*
File   : ctree/repl/repl.go
Package: repl
*/

// Package repl implements ctree's interactive Read-Eval-Print Loop. Unlike a
// line-at-a-time REPL, ctree buffers input across multiple lines until the
// user's submission ends with `;;`, then evaluates the whole buffer as one
// program; a submission ending `;;;` exits (spec.md §6).
package repl

import (
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/deglang/ctree/ast"
	"github.com/deglang/ctree/builtin"
	"github.com/deglang/ctree/environment"
	"github.com/deglang/ctree/eval"
	"github.com/deglang/ctree/lexer"
)

// Color definitions for REPL output: redColor surfaces diagnostics,
// everything else is decorative framing.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const (
	submitMarker = ";;"
	exitMarker   = ";;;"
)

// Repl is a configured interactive session.
type Repl struct {
	Banner  string
	Version string
	Line    string
	Prompt  string
}

// NewRepl creates a Repl with the given banner, version string, separator
// line, and prompt.
func NewRepl(banner, version, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, Prompt: prompt}
}

func (r *Repl) printBanner(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintln(writer, "Enter a program across one or more lines.")
	cyanColor.Fprintln(writer, "End a submission with ';;' to run it, or ';;;' to exit.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop against writer until the user submits `;;;` or
// input ends (Ctrl+D / EOF). Every submission shares one globals
// environment, so variables and functions defined in one submission are
// visible in the next.
func (r *Repl) Start(writer io.Writer) {
	r.printBanner(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	globals := environment.New()
	builtin.Install(globals)
	evaluator := eval.New()

	var buf strings.Builder

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("\n"))
			return
		}

		trimmed := strings.TrimRight(line, " \t\r")

		if strings.HasSuffix(trimmed, exitMarker) {
			buf.WriteString(strings.TrimSuffix(trimmed, exitMarker))
			r.run(os.Stderr, buf.String(), globals, evaluator)
			return
		}

		if strings.HasSuffix(trimmed, submitMarker) {
			buf.WriteString(strings.TrimSuffix(trimmed, submitMarker))
			rl.SaveHistory(buf.String())
			r.run(os.Stderr, buf.String(), globals, evaluator)
			buf.Reset()
			continue
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

// run scans, parses, and evaluates one submission, reporting every
// diagnostic to writer in the shared `[ln L, col C] Error<loc>: <message>`
// format. A scan or parse error skips evaluation entirely (spec.md §7); a
// runtime error aborts just this submission, and the REPL continues.
func (r *Repl) run(writer io.Writer, source string, globals *environment.Environment, evaluator *eval.Evaluator) {
	if strings.TrimSpace(source) == "" {
		return
	}

	lx := lexer.New(source)
	tokens := lx.Tokenize()
	for _, scanErr := range lx.Errors {
		redColor.Fprintf(writer, "%s\n", scanErr.Error())
	}

	p := ast.NewParser(tokens)
	statements, hadParseError := p.Parse()
	for _, parseErr := range p.Errors() {
		redColor.Fprintf(writer, "%s\n", parseErr.Error())
	}

	if len(lx.Errors) > 0 || hadParseError {
		return
	}

	if err := evaluator.Run(statements, globals); err != nil {
		redColor.Fprintf(writer, "%s\n", err.Error())
	}
}
