package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialgo/protocol/buffer"
	"github.com/trialgo/protocol/token"
)

func TestEncoderScalars(t *testing.T) {
	sink := buffer.NewSlice(nil)
	e := NewEncoder(sink)
	require.NoError(t, e.WriteNull())
	require.NoError(t, e.WriteBool(true))
	require.NoError(t, e.WriteBool(false))
	require.NoError(t, e.WriteInt64(-42))
	require.NoError(t, e.WriteUint64(42))
	require.NoError(t, e.WriteFloat64(1.5, 64))
	assert.Equal(t, "nulltruefalse-42421.5", string(sink.Bytes()))
}

func TestEncoderStringEscapes(t *testing.T) {
	sink := buffer.NewSlice(nil)
	e := NewEncoder(sink)
	require.NoError(t, e.WriteString("a\"b\\c\td\ne\x01f"))
	assert.Equal(t, `"a\"b\\c\td\ne\u0001f"`, string(sink.Bytes()))
}

func TestEncoderStringVerbatimHighBytes(t *testing.T) {
	sink := buffer.NewSlice(nil)
	e := NewEncoder(sink)
	require.NoError(t, e.WriteString("héllo"))
	assert.Equal(t, `"héllo"`, string(sink.Bytes()))
}

func TestEncoderStructural(t *testing.T) {
	sink := buffer.NewSlice(nil)
	e := NewEncoder(sink)
	require.NoError(t, e.WriteBegin(token.BeginArray))
	require.NoError(t, e.WriteSeparator(token.ValueSeparator))
	require.NoError(t, e.WriteEnd(token.EndArray))
	require.NoError(t, e.WriteBegin(token.BeginObject))
	require.NoError(t, e.WriteSeparator(token.NameSeparator))
	require.NoError(t, e.WriteEnd(token.EndObject))
	assert.Equal(t, "[,]{:}", string(sink.Bytes()))
}

func TestEncoderRejectsUnknownStructuralCode(t *testing.T) {
	sink := buffer.NewSlice(nil)
	e := NewEncoder(sink)
	assert.ErrorIs(t, e.WriteBegin(token.Integer), token.ErrInvalidValue)
	assert.ErrorIs(t, e.WriteEnd(token.Integer), token.ErrInvalidValue)
	assert.ErrorIs(t, e.WriteSeparator(token.Integer), token.ErrInvalidValue)
}
