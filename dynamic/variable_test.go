package dynamic

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariableZeroValueIsNull(t *testing.T) {
	var v Variable
	assert.Equal(t, TagNull, v.Tag())
}

func TestVariableAccessors(t *testing.T) {
	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	n, ok := Int32(-7).AsInt64()
	assert.True(t, ok)
	assert.EqualValues(t, -7, n)

	u, ok := Uint16(42).AsUint64()
	assert.True(t, ok)
	assert.EqualValues(t, 42, u)

	f, ok := Float64(1.5).AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	bf, ok := BigFloat(big.NewFloat(2.5)).AsBigFloat()
	assert.True(t, ok)
	assert.Equal(t, 2.5, mustFloat64(bf))

	s, ok := String("hi").AsString()
	assert.True(t, ok)
	assert.Equal(t, "hi", s)

	arr, ok := Array([]Variable{Int64(1), Int64(2)}).AsArray()
	assert.True(t, ok)
	assert.Len(t, arr, 2)
}

func TestVariableAccessorMismatchReturnsFalse(t *testing.T) {
	_, ok := Bool(true).AsInt64()
	assert.False(t, ok)
	_, ok = String("x").AsBool()
	assert.False(t, ok)
}

func mustFloat64(f *big.Float) float64 {
	v, _ := f.Float64()
	return v
}
