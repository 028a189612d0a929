package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deglang/ctree/ast"
	"github.com/deglang/ctree/builtin"
	"github.com/deglang/ctree/environment"
	"github.com/deglang/ctree/lexer"
)

// runProgram scans, parses, and evaluates src against a fresh globals
// environment with builtins installed, capturing everything `print` writes
// into an in-memory buffer rather than the process's real stdout.
func runProgram(t *testing.T, src string) string {
	t.Helper()

	tokens := lexer.New(src).Tokenize()
	p := ast.NewParser(tokens)
	statements, hadError := p.Parse()
	require.False(t, hadError, "unexpected parse errors: %v", p.Errors())

	env := environment.New()
	builtin.Install(env)

	var buf bytes.Buffer
	evaluator := New()
	evaluator.SetWriter(&buf)

	evalErr := evaluator.Run(statements, env)

	require.NoError(t, evalErr)
	return buf.String()
}

func TestArithmeticPrecedence(t *testing.T) {
	out := runProgram(t, "print 1 + 2 * 3;")
	assert.Equal(t, "7\n", out)
}

func TestExponentiationIsRightAssociative(t *testing.T) {
	out := runProgram(t, "print 2 ** 3 ** 2;")
	assert.Equal(t, "512\n", out)
}

func TestBlockScopingShadowsThenRestores(t *testing.T) {
	out := runProgram(t, `var a = 1; { var a = 2; print a; } print a;`)
	assert.Equal(t, "2\n1\n", out)
}

func TestClosureCapturesDefiningScope(t *testing.T) {
	out := runProgram(t, `fun make(n){ fun add(x){ return x + n; } return add; } var a = make(10); print a(5);`)
	assert.Equal(t, "15\n", out)
}

func TestDegreeArithmetic(t *testing.T) {
	out := runProgram(t, `print 90deg + 90deg; print 180deg / 2deg;`)
	assert.Equal(t, "180deg\n90\n", out)
}

func TestWhileLoop(t *testing.T) {
	out := runProgram(t, `var i = 0; while i < 3 { print i; i = i + 1; }`)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestStringConcatAndEquality(t *testing.T) {
	out := runProgram(t, `print "a" + "b"; print 1 == "1"; print 1 === "1";`)
	assert.Equal(t, "ab\ntrue\nfalse\n", out)
}

func TestNullAbsorbsUnaryOperators(t *testing.T) {
	out := runProgram(t, `print -null; print +null; print ~null; print not null;`)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.Equal(t, "null", line)
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	tokens := lexer.New("print missing;").Tokenize()
	p := ast.NewParser(tokens)
	statements, hadError := p.Parse()
	require.False(t, hadError)

	env := environment.New()
	err := New().Run(statements, env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable")
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	tokens := lexer.New(`fun add(a, b){ return a + b; } add(1);`).Tokenize()
	p := ast.NewParser(tokens)
	statements, hadError := p.Parse()
	require.False(t, hadError)

	env := environment.New()
	err := New().Run(statements, env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestCallingNonFunctionIsRuntimeError(t *testing.T) {
	tokens := lexer.New(`var x = 1; x();`).Tokenize()
	p := ast.NewParser(tokens)
	statements, hadError := p.Parse()
	require.False(t, hadError)

	env := environment.New()
	err := New().Run(statements, env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestFloorDivisionAndModuloOnNumbers(t *testing.T) {
	out := runProgram(t, `print -7 // 2; print -7 % 2;`)
	assert.Equal(t, "-4\n1\n", out)
}
