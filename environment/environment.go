/*
File   : ctree/environment/environment.go
Package: environment
*/

// Package environment implements lexically scoped variable bindings as a
// chain of maps, one per block/call frame. Go's garbage collector reclaims
// an Environment once nothing references it, so unlike the original's
// Rc/Weak discipline (parent links kept weak to avoid cycles, children kept
// strong), a plain *Environment parent pointer is sufficient here (spec.md
// §E).
package environment

import (
	"fmt"

	"github.com/deglang/ctree/value"
)

// Environment is one lexical scope: a set of name bindings plus a link to
// the enclosing scope it was opened inside.
type Environment struct {
	values map[string]value.Value
	parent *Environment
}

// New creates a top-level (global) environment with no parent.
func New() *Environment {
	return &Environment{values: make(map[string]value.Value)}
}

// NewEnclosed creates a child scope opened inside parent — used for block
// bodies and function call frames (the latter enclosed by the function's
// captured closure environment, not the caller's).
func NewEnclosed(parent *Environment) *Environment {
	return &Environment{values: make(map[string]value.Value), parent: parent}
}

// Define binds name in this scope, shadowing any binding of the same name
// in an enclosing scope. Redeclaring an existing name in the same scope
// overwrites it.
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get looks up name, walking outward through enclosing scopes.
func (e *Environment) Get(name string) (value.Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("Undefined variable `%s`", name)
}

// Assign rebinds an already-declared name, walking outward to find the
// scope that declared it. It does not create a new binding — assigning an
// undeclared name is an error (spec.md §4.3).
func (e *Environment) Assign(name string, v value.Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = v
			return nil
		}
	}
	return fmt.Errorf("Undefined variable `%s`", name)
}
