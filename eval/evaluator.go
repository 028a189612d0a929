/*
File   : ctree/eval/evaluator.go
Package: eval
*/

// Package eval is the tree-walking evaluator: it recurses directly over the
// ast package's nodes, threading an *environment.Environment handle, and
// returns RuntimeError on any failure (spec.md §4.3).
package eval

import (
	"io"
	"math"
	"os"

	"github.com/deglang/ctree/ast"
	"github.com/deglang/ctree/environment"
	"github.com/deglang/ctree/function"
	"github.com/deglang/ctree/lexer"
	"github.com/deglang/ctree/value"
)

// Evaluator walks a parsed program. It carries no other per-run state;
// every operation threads the environment it is given, so a single
// Evaluator can be reused across REPL submissions sharing one globals
// environment. Writer is where `print` sends its output (default
// os.Stdout); tests redirect it to a buffer instead of swapping the
// process's real stdout.
type Evaluator struct {
	Writer io.Writer
}

// New creates an Evaluator writing to os.Stdout.
func New() *Evaluator {
	return &Evaluator{Writer: os.Stdout}
}

// SetWriter redirects `print` output to w, e.g. a bytes.Buffer in tests.
func (ev *Evaluator) SetWriter(w io.Writer) {
	ev.Writer = w
}

// Run executes a top-level statement list in order against env, stopping at
// the first runtime error (spec.md §5: "a runtime error aborts the current
// top-level statement"). The caller (REPL or file driver) decides whether
// to continue past an error.
func (ev *Evaluator) Run(statements []ast.Stmt, env *environment.Environment) error {
	for _, stmt := range statements {
		if _, err := ev.Execute(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs a single statement, returning value.Nil except when the
// statement is (or contains, via Block propagation) a return — in which
// case the result is a value.ReturnValue sentinel the caller must check for
// and bubble upward without further processing (spec.md §3, §9).
func (ev *Evaluator) Execute(stmt ast.Stmt, env *environment.Environment) (value.Value, error) {
	switch s := stmt.(type) {
	case *ast.BlankStmt:
		return value.Nil, nil

	case *ast.ExpressionStmt:
		if _, err := ev.Evaluate(s.Expression, env); err != nil {
			return nil, err
		}
		return value.Nil, nil

	case *ast.PrintStmt:
		v, err := ev.Evaluate(s.Expression, env)
		if err != nil {
			return nil, err
		}
		printValue(ev.Writer, v)
		return value.Nil, nil

	case *ast.VarStmt:
		var v value.Value = value.Nil
		if s.Init != nil {
			var err error
			v, err = ev.Evaluate(s.Init, env)
			if err != nil {
				return nil, err
			}
		}
		env.Define(s.Name.Lexeme, v)
		return value.Nil, nil

	case *ast.Block:
		return ev.executeBlock(s, environment.NewEnclosed(env))

	case *ast.IfStmt:
		cond, err := ev.Evaluate(s.Condition, env)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(value.Boolean)
		if !ok {
			return nil, runtimeErrorf(s.Keyword, "Expected `Boolean` condition.")
		}
		if bool(b) {
			return ev.Execute(s.Then, env)
		}
		if s.Else != nil {
			return ev.Execute(s.Else, env)
		}
		return value.Nil, nil

	case *ast.WhileStmt:
		for {
			cond, err := ev.Evaluate(s.Condition, env)
			if err != nil {
				return nil, err
			}
			b, ok := cond.(value.Boolean)
			if !ok {
				return nil, runtimeErrorf(s.Keyword, "Expected `Boolean` condition.")
			}
			if !bool(b) {
				return value.Nil, nil
			}
			result, err := ev.Execute(s.Body, env)
			if err != nil {
				return nil, err
			}
			if _, isReturn := result.(value.ReturnValue); isReturn {
				return result, nil
			}
		}

	case *ast.FunctionStmt:
		fn := &function.Function{
			Name:    s.Name.Lexeme,
			Params:  paramNames(s.Params),
			Body:    s.Body,
			Closure: env,
		}
		env.Define(s.Name.Lexeme, fn)
		return value.Nil, nil

	case *ast.ReturnStmt:
		var v value.Value = value.Nil
		if s.Value != nil {
			var err error
			v, err = ev.Evaluate(s.Value, env)
			if err != nil {
				return nil, err
			}
		}
		return value.ReturnValue{Value: v}, nil

	default:
		panic("eval: unhandled statement type")
	}
}

// executeBlock runs statements in blockEnv, returning immediately with a
// value.ReturnValue as soon as one is produced (spec.md §4.3).
func (ev *Evaluator) executeBlock(block *ast.Block, blockEnv *environment.Environment) (value.Value, error) {
	var result value.Value = value.Nil
	for _, stmt := range block.Statements {
		v, err := ev.Execute(stmt, blockEnv)
		if err != nil {
			return nil, err
		}
		result = v
		if _, isReturn := result.(value.ReturnValue); isReturn {
			return result, nil
		}
	}
	return result, nil
}

func paramNames(tokens []lexer.Token) []string {
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = t.Lexeme
	}
	return names
}

// Evaluate computes an expression's value against env.
func (ev *Evaluator) Evaluate(expr ast.Expr, env *environment.Environment) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return ev.Evaluate(e.Inner, env)

	case *ast.Variable:
		v, err := env.Get(e.Name.Lexeme)
		if err != nil {
			return nil, runtimeErrorf(e.Name, "%s", err.Error())
		}
		return v, nil

	case *ast.Assign:
		v, err := ev.Evaluate(e.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(e.Name.Lexeme, v); err != nil {
			return nil, runtimeErrorf(e.Name, "%s", err.Error())
		}
		return v, nil

	case *ast.Unary:
		return ev.evalUnary(e, env)

	case *ast.Binary:
		return ev.evalBinary(e, env)

	case *ast.Logical:
		return ev.evalLogical(e, env)

	case *ast.Call:
		return ev.evalCall(e, env)

	default:
		panic("eval: unhandled expression type")
	}
}

func (ev *Evaluator) evalUnary(e *ast.Unary, env *environment.Environment) (value.Value, error) {
	right, err := ev.Evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	if _, ok := right.(value.Null); ok {
		return value.Nil, nil
	}

	switch e.Operator.Type {
	case lexer.Plus:
		switch x := right.(type) {
		case value.Number:
			return x, nil
		case value.Degree:
			return x, nil
		}
	case lexer.Minus:
		switch x := right.(type) {
		case value.Number:
			return -x, nil
		case value.Degree:
			return -x, nil
		}
	case lexer.Tilde:
		if x, ok := right.(value.Number); ok {
			return value.Number(-math.Floor(float64(x)) - 1), nil
		}
	case lexer.Not:
		if x, ok := right.(value.Boolean); ok {
			return value.Boolean(!bool(x)), nil
		}
	}

	return nil, runtimeErrorf(e.Operator, "Operand type `%s` is invalid for operator `%s`", right.Kind(), e.Operator.Lexeme)
}

func (ev *Evaluator) evalLogical(e *ast.Logical, env *environment.Environment) (value.Value, error) {
	left, err := ev.Evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(value.Boolean)
	if !ok {
		return nil, runtimeErrorf(e.Operator, "Expected `Boolean` operands")
	}

	if e.Operator.Type == lexer.Or && bool(lb) {
		return value.Boolean(true), nil
	}
	if e.Operator.Type == lexer.And && !bool(lb) {
		return value.Boolean(false), nil
	}

	right, err := ev.Evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(value.Boolean)
	if !ok {
		return nil, runtimeErrorf(e.Operator, "Expected `Boolean` operands")
	}
	return rb, nil
}

func (ev *Evaluator) evalCall(e *ast.Call, env *environment.Environment) (value.Value, error) {
	callee, err := ev.Evaluate(e.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := ev.Evaluate(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(*function.Function)
	if !ok {
		return nil, runtimeErrorf(e.Paren, "Can only call functions and classes.")
	}

	if fn.IsNative() {
		v, err := fn.Native(args)
		if err != nil {
			return nil, runtimeErrorf(e.Paren, "%s", err.Error())
		}
		return v, nil
	}

	if len(args) != fn.Arity() {
		return nil, runtimeErrorf(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	callEnv := environment.NewEnclosed(fn.Closure)
	for i, param := range fn.Params {
		callEnv.Define(param, args[i])
	}

	result, err := ev.executeBlock(fn.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if ret, ok := result.(value.ReturnValue); ok {
		return ret.Value, nil
	}
	return result, nil
}
