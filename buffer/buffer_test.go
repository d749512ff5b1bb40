package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice(t *testing.T) {
	s := NewSlice(nil)
	require.True(t, s.Grow(3))
	require.NoError(t, s.WriteByte('a'))
	n, err := s.Write([]byte("bc"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte("abc"), s.Bytes())
}

func TestFixedRefusesOverflow(t *testing.T) {
	f := NewFixed(make([]byte, 2))
	require.NoError(t, f.WriteByte('a'))
	require.NoError(t, f.WriteByte('b'))
	assert.False(t, f.Grow(1))
	assert.Error(t, f.WriteByte('c'))
	assert.Equal(t, []byte("ab"), f.Bytes())
}

func TestStringBuilder(t *testing.T) {
	var b strings.Builder
	s := NewStringBuilder(&b)
	_, err := s.Write([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi", b.String())
}

func TestWriter(t *testing.T) {
	var b strings.Builder
	s := NewWriter(&b)
	require.True(t, s.Grow(100))
	_, err := s.Write([]byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, "ok", b.String())
}
