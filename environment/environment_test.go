package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deglang/ctree/value"
)

func TestDefineAndGet(t *testing.T) {
	env := New()
	env.Define("x", value.Number(42))

	v, err := env.Get("x")
	require.NoError(t, err)
	assert.Equal(t, value.Number(42), v)
}

func TestGetUndefinedReturnsError(t *testing.T) {
	env := New()
	_, err := env.Get("missing")
	assert.Error(t, err)
}

func TestEnclosedLooksUpOuterScope(t *testing.T) {
	outer := New()
	outer.Define("x", value.Number(1))

	inner := NewEnclosed(outer)
	v, err := inner.Get("x")
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v)
}

func TestInnerShadowsOuter(t *testing.T) {
	outer := New()
	outer.Define("x", value.Number(1))

	inner := NewEnclosed(outer)
	inner.Define("x", value.Number(2))

	v, err := inner.Get("x")
	require.NoError(t, err)
	assert.Equal(t, value.Number(2), v)

	outerV, err := outer.Get("x")
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), outerV)
}

func TestAssignRebindsDeclaringScope(t *testing.T) {
	outer := New()
	outer.Define("x", value.Number(1))

	inner := NewEnclosed(outer)
	err := inner.Assign("x", value.Number(9))
	require.NoError(t, err)

	v, err := outer.Get("x")
	require.NoError(t, err)
	assert.Equal(t, value.Number(9), v)
}

func TestAssignUndefinedIsError(t *testing.T) {
	env := New()
	err := env.Assign("nope", value.Number(1))
	assert.Error(t, err)
}
