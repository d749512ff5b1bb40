package dynamic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialgo/protocol/bintoken"
	"github.com/trialgo/protocol/buffer"
	"github.com/trialgo/protocol/json"
	"github.com/trialgo/protocol/reader"
	"github.com/trialgo/protocol/writer"
)

func TestReadVariableJSON(t *testing.T) {
	r := reader.New(json.NewDecoder([]byte(`{"name":"ABC","age":127,"tags":["x","y"],"ok":true,"nil":null}`)))
	require.True(t, r.Next())
	v, err := ReadVariable(r)
	require.NoError(t, err)
	require.Equal(t, TagMap, v.Tag())

	m, _ := v.AsMap()
	name, ok := m.Get(String("name"))
	require.True(t, ok)
	s, _ := name.AsString()
	assert.Equal(t, "ABC", s)

	age, ok := m.Get(String("age"))
	require.True(t, ok)
	n, _ := age.AsInt64()
	assert.EqualValues(t, 127, n)

	tags, ok := m.Get(String("tags"))
	require.True(t, ok)
	arr, _ := tags.AsArray()
	require.Len(t, arr, 2)
	x, _ := arr[0].AsString()
	assert.Equal(t, "x", x)

	ok2, ok := m.Get(String("ok"))
	require.True(t, ok)
	b, _ := ok2.AsBool()
	assert.True(t, b)

	nilv, ok := m.Get(String("nil"))
	require.True(t, ok)
	assert.Equal(t, TagNull, nilv.Tag())
}

func TestWriteVariableJSONRoundTrip(t *testing.T) {
	m := NewMap()
	m.Set(String("a"), Int64(1))
	m.Set(String("b"), Array([]Variable{Bool(true), Null()}))
	v := MapValue(m)

	sink := buffer.NewSlice(nil)
	w := writer.New(json.NewEncoder(sink))
	require.NoError(t, WriteVariable(w, v))
	assert.Equal(t, `{"a":1,"b":[true,null]}`, string(sink.Bytes()))

	r := reader.New(json.NewDecoder(sink.Bytes()))
	require.True(t, r.Next())
	back, err := ReadVariable(r)
	require.NoError(t, err)
	assert.True(t, Equal(back, v))
}

func TestVariableRoundTripBintoken(t *testing.T) {
	m := NewMap()
	m.Set(String("n"), Int64(42))
	m.Set(String("f"), Float64(2.5))
	v := MapValue(m)

	sink := buffer.NewSlice(nil)
	w := writer.New(bintoken.NewEncoder(sink))
	require.NoError(t, WriteVariable(w, v))

	r := reader.New(bintoken.NewDecoder(sink.Bytes()))
	require.True(t, r.Next())
	back, err := ReadVariable(r)
	require.NoError(t, err)

	backMap, ok := back.AsMap()
	require.True(t, ok)
	n, ok := backMap.Get(String("n"))
	require.True(t, ok)
	nv, _ := n.AsInt64()
	assert.EqualValues(t, 42, nv)

	f, ok := backMap.Get(String("f"))
	require.True(t, ok)
	fv, _ := f.AsFloat64()
	assert.Equal(t, 2.5, fv)
}

func TestReadVariableArray(t *testing.T) {
	r := reader.New(json.NewDecoder([]byte(`[1,2,3]`)))
	require.True(t, r.Next())
	v, err := ReadVariable(r)
	require.NoError(t, err)
	arr, ok := v.AsArray()
	require.True(t, ok)
	require.Len(t, arr, 3)
	n, _ := arr[1].AsInt64()
	assert.EqualValues(t, 2, n)
}

func TestReadVariableEmptyContainer(t *testing.T) {
	r := reader.New(json.NewDecoder([]byte(`[]`)))
	require.True(t, r.Next())
	v, err := ReadVariable(r)
	require.NoError(t, err)
	arr, _ := v.AsArray()
	assert.Empty(t, arr)
}
