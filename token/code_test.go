package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeSymbol(t *testing.T) {
	cases := []struct {
		code Code
		want Symbol
	}{
		{Null, SymbolData},
		{Integer, SymbolData},
		{String, SymbolData},
		{BeginArray, SymbolBeginScope},
		{EndObject, SymbolEndScope},
		{NameSeparator, SymbolSeparator},
		{ValueSeparator, SymbolSeparator},
		{End, SymbolEnd},
		{ErrOverflow, SymbolError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.code.Symbol(), "code %v", c.code)
	}
}

func TestCodeCategory(t *testing.T) {
	assert.Equal(t, CategoryData, Integer.Category())
	assert.Equal(t, CategoryStructural, BeginArray.Category())
	assert.Equal(t, CategoryStructural, NameSeparator.Category())
	assert.Equal(t, CategoryStatus, End.Category())
	assert.Equal(t, CategoryStatus, ErrOverflow.Category())
}

func TestArrayCodeRoundTrip(t *testing.T) {
	for _, bits := range []int{8, 16, 32, 64} {
		for elem := ElemInt8; elem <= ElemFloat64; elem++ {
			code, ok := ArrayCode(bits, elem)
			require.True(t, ok)
			gotBits, gotElem, ok := code.CompactArray()
			require.True(t, ok)
			assert.Equal(t, bits, gotBits)
			assert.Equal(t, elem, gotElem)
		}
	}
	_, ok := ArrayCode(24, ElemInt8)
	assert.False(t, ok)
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "begin_array", BeginArray.String())
	assert.Equal(t, "overflow", ErrOverflow.String())
	code, _ := ArrayCode(16, ElemFloat32)
	assert.Equal(t, "array16_float32", code.String())
}

func TestIsError(t *testing.T) {
	assert.False(t, Null.IsError())
	assert.False(t, End.IsError())
	assert.True(t, ErrUnknownToken.IsError())
}
