/*
File   : ctree/function/function.go
Package: function
*/

// Package function defines the callable runtime value. It sits above value,
// ast, and environment — exactly the split the teacher's objects/function
// package draws — so that value itself never has to import ast or
// environment (see DESIGN.md).
package function

import (
	"github.com/deglang/ctree/ast"
	"github.com/deglang/ctree/environment"
	"github.com/deglang/ctree/value"
)

// Native is the signature of a builtin function body: given already
// evaluated arguments, produce a result or an error.
type Native func(args []value.Value) (value.Value, error)

// Function is a callable value: either a user-defined closure (Body +
// Closure set, Native nil) or a native builtin (Native set, Body/Closure
// nil). Both carry a Name for diagnostics. Arity is the parameter count for
// a closure and -1 for a native, whose callback checks its own argument
// count; the call site checks arity for closures only.
type Function struct {
	Name    string
	Params  []string
	Body    *ast.Block
	Closure *environment.Environment
	Native  Native
}

func (*Function) Kind() value.Kind { return value.FunctionKind }

func (f *Function) String() string {
	return "<function " + f.Name + ">"
}

// Arity is the number of parameters this function expects.
func (f *Function) Arity() int {
	if f.Native != nil {
		// Native arity is enforced inside the Native callback itself;
		// the call site skips the arity check for natives.
		return -1
	}
	return len(f.Params)
}

// IsNative reports whether this Function wraps a Go callback rather than an
// interpreted body.
func (f *Function) IsNative() bool {
	return f.Native != nil
}
