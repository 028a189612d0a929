package function

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deglang/ctree/value"
)

func TestNativeFunctionIsNative(t *testing.T) {
	f := &Function{
		Name:   "clock",
		Native: func(args []value.Value) (value.Value, error) { return value.Number(0), nil },
	}
	assert.True(t, f.IsNative())
	assert.Equal(t, -1, f.Arity())
}

func TestInterpretedFunctionArityMatchesParams(t *testing.T) {
	f := &Function{
		Name:   "add",
		Params: []string{"a", "b"},
	}
	assert.False(t, f.IsNative())
	assert.Equal(t, 2, f.Arity())
}

func TestFunctionKindAndString(t *testing.T) {
	f := &Function{Name: "add"}
	assert.Equal(t, value.FunctionKind, f.Kind())
	assert.Equal(t, "<function add>", f.String())
}
