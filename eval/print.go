/*
File   : ctree/eval/print.go
Package: eval
*/
package eval

import (
	"fmt"
	"io"

	"github.com/deglang/ctree/value"
)

// printValue writes a value's display form to w with a trailing newline
// (spec.md §4.3, §6). Function values print as the bare `<function>` the
// external contract specifies, not the richer `<function name>` form
// function.Function.String uses for diagnostics.
func printValue(w io.Writer, v value.Value) {
	if v.Kind() == value.FunctionKind {
		fmt.Fprintln(w, "<function>")
		return
	}
	fmt.Fprintln(w, v.String())
}
