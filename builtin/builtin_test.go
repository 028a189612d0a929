package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deglang/ctree/environment"
	"github.com/deglang/ctree/function"
	"github.com/deglang/ctree/value"
)

func TestInstallDefinesClockNumDeg(t *testing.T) {
	env := environment.New()
	Install(env)

	for _, name := range []string{"clock", "num", "deg"} {
		v, err := env.Get(name)
		require.NoError(t, err)
		fn, ok := v.(*function.Function)
		require.True(t, ok, "%s should be a *function.Function", name)
		assert.True(t, fn.IsNative())
	}
}

func TestClockTakesNoArguments(t *testing.T) {
	_, err := clock([]value.Value{value.Number(1)})
	assert.Error(t, err)
}

func TestClockReturnsNumber(t *testing.T) {
	v, err := clock(nil)
	require.NoError(t, err)
	_, ok := v.(value.Number)
	assert.True(t, ok)
}

func TestNumOfConvertsDegreeToNumber(t *testing.T) {
	v, err := numOf([]value.Value{value.Degree(90)})
	require.NoError(t, err)
	assert.Equal(t, value.Number(90), v)
}

func TestDegOfConvertsNumberToDegree(t *testing.T) {
	v, err := degOf([]value.Value{value.Number(90)})
	require.NoError(t, err)
	assert.Equal(t, value.Degree(90), v)
}

func TestNumOfRejectsString(t *testing.T) {
	_, err := numOf([]value.Value{value.String("nope")})
	assert.Error(t, err)
}
