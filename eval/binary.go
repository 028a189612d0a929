/*
File   : ctree/eval/binary.go
Package: eval
*/
package eval

import (
	"math"

	"github.com/deglang/ctree/ast"
	"github.com/deglang/ctree/environment"
	"github.com/deglang/ctree/lexer"
	"github.com/deglang/ctree/value"
)

// evalBinary implements the operand-type-determines-result-type table of
// spec.md §4.3. Equality/inequality are handled first since they accept any
// operand kinds; every other operator is dispatched by (operator, operand
// kinds).
func (ev *Evaluator) evalBinary(e *ast.Binary, env *environment.Environment) (value.Value, error) {
	left, err := ev.Evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.Evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case lexer.Equals3:
		return value.Boolean(strictEqual(left, right)), nil
	case lexer.Equals2:
		return value.Boolean(looseEqual(left, right)), nil
	case lexer.BangEquals:
		return value.Boolean(!looseEqual(left, right)), nil
	}

	switch l := left.(type) {
	case value.Number:
		if r, ok := right.(value.Number); ok {
			return numberBinary(e.Operator, l, r)
		}
		if r, ok := right.(value.Degree); ok {
			return numberDegreeBinary(e.Operator, l, r)
		}
	case value.Degree:
		if r, ok := right.(value.Degree); ok {
			return degreeBinary(e.Operator, l, r)
		}
		if r, ok := right.(value.Number); ok {
			return degreeNumberBinary(e.Operator, l, r)
		}
	case value.String:
		if r, ok := right.(value.String); ok && e.Operator.Type == lexer.Plus {
			return l + r, nil
		}
	}

	return nil, runtimeErrorf(e.Operator, "Operand types `%s` and `%s` are invalid for operator `%s`", left.Kind(), right.Kind(), e.Operator.Lexeme)
}

func numberBinary(op lexer.Token, l, r value.Number) (value.Value, error) {
	switch op.Type {
	case lexer.Plus:
		return l + r, nil
	case lexer.Minus:
		return l - r, nil
	case lexer.Ast:
		return l * r, nil
	case lexer.Slash:
		return l / r, nil
	case lexer.Slash2:
		return value.Number(euclidDiv(float64(l), float64(r))), nil
	case lexer.Percent:
		return value.Number(euclidRem(float64(l), float64(r))), nil
	case lexer.Ast2:
		return value.Number(math.Pow(float64(l), float64(r))), nil
	case lexer.LAngle2:
		return value.Number(int32(l) << (uint32(int32(r)) & 31)), nil
	case lexer.RAngle2:
		return value.Number(int32(l) >> (uint32(int32(r)) & 31)), nil
	case lexer.Amp:
		return value.Number(int32(l) & int32(r)), nil
	case lexer.Hat:
		return value.Number(int32(l) ^ int32(r)), nil
	case lexer.Bar:
		return value.Number(int32(l) | int32(r)), nil
	case lexer.LAngle:
		return value.Boolean(l < r), nil
	case lexer.LAngleEquals:
		return value.Boolean(l <= r), nil
	case lexer.RAngle:
		return value.Boolean(l > r), nil
	case lexer.RAngleEquals:
		return value.Boolean(l >= r), nil
	}
	return nil, runtimeErrorf(op, "Operand types `%s` and `%s` are invalid for operator `%s`", l.Kind(), r.Kind(), op.Lexeme)
}

func degreeBinary(op lexer.Token, l, r value.Degree) (value.Value, error) {
	switch op.Type {
	case lexer.Plus:
		return l + r, nil
	case lexer.Minus:
		return l - r, nil
	case lexer.Slash:
		// Degrees cancel: Degree / Degree is a plain ratio.
		return value.Number(l / r), nil
	case lexer.Slash2:
		return value.Degree(euclidDiv(float64(l), float64(r))), nil
	case lexer.Percent:
		return value.Degree(euclidRem(float64(l), float64(r))), nil
	case lexer.LAngle:
		return value.Boolean(l < r), nil
	case lexer.LAngleEquals:
		return value.Boolean(l <= r), nil
	case lexer.RAngle:
		return value.Boolean(l > r), nil
	case lexer.RAngleEquals:
		return value.Boolean(l >= r), nil
	}
	return nil, runtimeErrorf(op, "Operand types `%s` and `%s` are invalid for operator `%s`", l.Kind(), r.Kind(), op.Lexeme)
}

func numberDegreeBinary(op lexer.Token, l value.Number, r value.Degree) (value.Value, error) {
	if op.Type == lexer.Ast {
		return value.Degree(l) * r, nil
	}
	return nil, runtimeErrorf(op, "Operand types `%s` and `%s` are invalid for operator `%s`", l.Kind(), r.Kind(), op.Lexeme)
}

func degreeNumberBinary(op lexer.Token, l value.Degree, r value.Number) (value.Value, error) {
	if op.Type == lexer.Ast {
		return l * value.Degree(r), nil
	}
	return nil, runtimeErrorf(op, "Operand types `%s` and `%s` are invalid for operator `%s`", l.Kind(), r.Kind(), op.Lexeme)
}

// strictEqual is `===`: same runtime kind required; Null equals Null.
func strictEqual(l, r value.Value) bool {
	if l.Kind() != r.Kind() {
		return false
	}
	switch a := l.(type) {
	case value.Number:
		return a == r.(value.Number)
	case value.Degree:
		return a == r.(value.Degree)
	case value.String:
		return a == r.(value.String)
	case value.Boolean:
		return a == r.(value.Boolean)
	case value.Null:
		return true
	default:
		return false
	}
}

// looseEqual is `==`: strings compare literally; every other kind coerces
// to its Number magnitude (spec.md §4.4) before comparing.
func looseEqual(l, r value.Value) bool {
	ls, lok := l.(value.String)
	rs, rok := r.(value.String)
	if lok && rok {
		return ls == rs
	}
	return value.Coerce(l) == value.Coerce(r)
}

// euclidDiv matches the original's f32::div_euclid: truncating division
// adjusted so the matching remainder (euclidRem) is never negative,
// whatever the signs of the dividend and divisor.
func euclidDiv(a, b float64) float64 {
	q := math.Trunc(a / b)
	if math.Mod(a, b) < 0 {
		if b > 0 {
			return q - 1
		}
		return q + 1
	}
	return q
}

// euclidRem is the remainder complementing euclidDiv: always non-negative.
func euclidRem(a, b float64) float64 {
	r := math.Mod(a, b)
	if r < 0 {
		r += math.Abs(b)
	}
	return r
}
