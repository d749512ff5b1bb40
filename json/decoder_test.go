package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialgo/protocol/token"
)

func TestDecoderArray(t *testing.T) {
	d := NewDecoder([]byte(`[false,true,null]`))
	var codes []token.Code
	for d.Code() != token.End {
		codes = append(codes, d.Code())
		d.Next()
	}
	assert.Equal(t, []token.Code{
		token.BeginArray, token.False, token.ValueSeparator,
		token.True, token.ValueSeparator, token.Null, token.EndArray,
	}, codes)
}

func TestDecoderObject(t *testing.T) {
	d := NewDecoder([]byte(`{"name":"ABC","age":127}`))

	require.Equal(t, token.BeginObject, d.Code())
	d.Next()

	require.Equal(t, token.String, d.Code())
	assert.Equal(t, `"name"`, string(d.Literal()))
	s, err := d.Str()
	require.NoError(t, err)
	assert.Equal(t, "name", s)
	d.Next()

	require.Equal(t, token.NameSeparator, d.Code())
	d.Next()

	require.Equal(t, token.String, d.Code())
	s, err = d.Str()
	require.NoError(t, err)
	assert.Equal(t, "ABC", s)
	d.Next()

	require.Equal(t, token.ValueSeparator, d.Code())
	d.Next()

	require.Equal(t, token.String, d.Code())
	s, err = d.Str()
	require.NoError(t, err)
	assert.Equal(t, "age", s)
	d.Next()

	require.Equal(t, token.NameSeparator, d.Code())
	d.Next()

	require.Equal(t, token.Integer, d.Code())
	n, err := d.Int64(64)
	require.NoError(t, err)
	assert.EqualValues(t, 127, n)
	d.Next()

	require.Equal(t, token.EndObject, d.Code())
}

func TestDecoderTruncatedExponent(t *testing.T) {
	d := NewDecoder([]byte("1e"))
	assert.Equal(t, token.End, d.Code())
}

func TestDecoderTruncatedNumberIsEnd(t *testing.T) {
	d := NewDecoder([]byte("-"))
	assert.Equal(t, token.End, d.Code())
}

func TestDecoderNumberKinds(t *testing.T) {
	d := NewDecoder([]byte("42"))
	assert.Equal(t, token.Integer, d.Code())

	d = NewDecoder([]byte("-17"))
	assert.Equal(t, token.Integer, d.Code())
	n, err := d.Int64(64)
	require.NoError(t, err)
	assert.EqualValues(t, -17, n)

	d = NewDecoder([]byte("3.14"))
	assert.Equal(t, token.Floating, d.Code())

	d = NewDecoder([]byte("1e10"))
	assert.Equal(t, token.Floating, d.Code())
}

func TestDecoderKeywordBoundary(t *testing.T) {
	d := NewDecoder([]byte("nullify"))
	assert.Equal(t, token.ErrUnexpectedToken, d.Code())
}

func TestDecoderMalformedString(t *testing.T) {
	d := NewDecoder([]byte(`"abc` + "\x01" + `def"`))
	assert.Equal(t, token.ErrUnexpectedToken, d.Code())
}

func TestDecoderStringEscapes(t *testing.T) {
	d := NewDecoder([]byte(`"a\"b\\c\/d\be\ff\ng\rh\ti"`))
	require.Equal(t, token.String, d.Code())
	s, err := d.Str()
	require.NoError(t, err)
	assert.Equal(t, "a\"b\\c/d\be\ff\ng\rh\ti", s)
}

func TestDecoderUnicodeEscape(t *testing.T) {
	d := NewDecoder([]byte(`"Aé中"`))
	s, err := d.Str()
	require.NoError(t, err)
	assert.Equal(t, "Aé中", s)

	// \uXXXX expands to 1, 2, or 3 UTF-8 bytes depending on the code point.
	d = NewDecoder([]byte("\"\\u0041\\u00e9\\u4e2d\""))
	s, err = d.Str()
	require.NoError(t, err)
	assert.Equal(t, "Aé中", s)
}

func TestDecoderBadUnicodeEscape(t *testing.T) {
	d := NewDecoder([]byte(`"\uZZZZ"`))
	assert.Equal(t, token.ErrUnexpectedToken, d.Code())
}

func TestDecoderStickyError(t *testing.T) {
	d := NewDecoder([]byte(`@garbage`))
	require.Equal(t, token.ErrUnexpectedToken, d.Code())
	before := d.Code()
	d.Next()
	assert.Equal(t, before, d.Code())
}

func TestDecoderOverflow(t *testing.T) {
	d := NewDecoder([]byte("99999999999999999999"))
	require.Equal(t, token.Integer, d.Code())
	_, err := d.Int64(64)
	assert.ErrorIs(t, err, token.ErrOverflow)
}

func TestDecoderUnsignedRejectsNegative(t *testing.T) {
	d := NewDecoder([]byte("-1"))
	_, err := d.Uint64(64)
	assert.ErrorIs(t, err, token.ErrInvalidValue)
}

func TestDecoderIncompatibleType(t *testing.T) {
	d := NewDecoder([]byte(`"abc"`))
	_, err := d.Int64(64)
	assert.ErrorIs(t, err, token.ErrIncompatibleType)
}

func TestDecoderWhitespace(t *testing.T) {
	d := NewDecoder([]byte(" \t\r\n[ \n 1 , 2 ]"))
	assert.Equal(t, token.BeginArray, d.Code())
	d.Next()
	assert.Equal(t, token.Integer, d.Code())
}
