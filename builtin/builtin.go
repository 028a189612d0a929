/*
File   : ctree/builtin/builtin.go
Package: builtin
*/

// Package builtin installs the small set of native functions every ctree
// program starts with: clock (wall-clock seconds), and num/deg (explicit
// Number<->Degree conversion, supplementing the reserved-but-unused num/deg
// keywords — see SPEC_FULL.md §D.1).
package builtin

import (
	"fmt"
	"time"

	"github.com/deglang/ctree/environment"
	"github.com/deglang/ctree/function"
	"github.com/deglang/ctree/value"
)

// Install defines every builtin in the given (normally global) environment.
func Install(env *environment.Environment) {
	env.Define("clock", &function.Function{Name: "clock", Native: clock})
	env.Define("num", &function.Function{Name: "num", Native: numOf})
	env.Define("deg", &function.Function{Name: "deg", Native: degOf})
}

func clock(args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("clock() takes no arguments.")
	}
	return value.Number(float32(time.Now().UnixNano()) / 1e9), nil
}

// numOf converts its single argument to a plain Number, stripping Degree-ness
// if present. It accepts Number and Degree; anything else is an error.
func numOf(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("num() takes exactly one argument.")
	}
	switch x := args[0].(type) {
	case value.Number:
		return x, nil
	case value.Degree:
		return value.Number(x), nil
	default:
		return nil, fmt.Errorf("num() expects a Number or Degree argument.")
	}
}

// degOf converts its single argument to a Degree, the inverse of num().
func degOf(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("deg() takes exactly one argument.")
	}
	switch x := args[0].(type) {
	case value.Number:
		return value.Degree(x), nil
	case value.Degree:
		return x, nil
	default:
		return nil, fmt.Errorf("deg() expects a Number or Degree argument.")
	}
}
