package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialgo/protocol/buffer"
	"github.com/trialgo/protocol/token"
)

func TestJSONRoundTripArray(t *testing.T) {
	r := NewJSONReader([]byte(`[false,true,null]`))
	sink := buffer.NewSlice(nil)
	w := NewJSONWriter(sink)
	require.NoError(t, copyTree(r, w))
	assert.Equal(t, `[false,true,null]`, string(sink.Bytes()))
}

func TestJSONRoundTripObject(t *testing.T) {
	r := NewJSONReader([]byte(`{"name":"ABC","age":127}`))
	sink := buffer.NewSlice(nil)
	w := NewJSONWriter(sink)
	require.NoError(t, copyTree(r, w))
	assert.Equal(t, `{"name":"ABC","age":127}`, string(sink.Bytes()))
}

func TestBintokenRoundTripArray(t *testing.T) {
	input := []byte{0xE1, 0xD6, 0xD5, 0xD6, 0xD5, 0xE2} // [false,true,false,true]
	r := NewBintokenReader(input)
	sink := buffer.NewSlice(nil)
	w := NewBintokenWriter(sink)
	require.NoError(t, copyTree(r, w))
	assert.Equal(t, input, sink.Bytes())
}

func TestBintokenRoundTripRecord(t *testing.T) {
	// 127 arrives as a tagged int16 but re-encodes at its narrowest width,
	// an inline byte: the round trip is canonical-form-exact, not
	// input-exact.
	input := []byte{0xE3, 0xDD, 3, 'A', 'B', 'C', 0xD8, 0x7F, 0x00, 0xE4}
	r := NewBintokenReader(input)
	sink := buffer.NewSlice(nil)
	w := NewBintokenWriter(sink)
	require.NoError(t, copyTree(r, w))
	assert.Equal(t, []byte{0xE3, 0xDD, 3, 'A', 'B', 'C', 0x7F, 0xE4}, sink.Bytes())
}

// copyTree drives r to completion, mirroring every token it sees into w: a
// structure-preserving copy, the same traversal shape an archive layer
// performs minus any user-struct mapping.
func copyTree(r interface {
	Next() bool
	Code() token.Code
	Literal() []byte
	Int64(int) (int64, error)
	Float64(int) (float64, error)
	Str() (string, error)
	Err() error
}, w interface {
	Begin(token.Code) error
	End(token.Code) error
	Null() error
	Bool(bool) error
	Int64(int64) error
	Float64(float64, int) error
	String(string) error
}) error {
	for r.Next() {
		switch c := r.Code(); c {
		case token.BeginArray, token.BeginObject, token.BeginRecord, token.BeginAssocArray:
			if err := w.Begin(c); err != nil {
				return err
			}
		case token.EndArray, token.EndObject, token.EndRecord, token.EndAssocArray:
			if err := w.End(c); err != nil {
				return err
			}
		case token.Null:
			if err := w.Null(); err != nil {
				return err
			}
		case token.True:
			if err := w.Bool(true); err != nil {
				return err
			}
		case token.False:
			if err := w.Bool(false); err != nil {
				return err
			}
		case token.Integer, token.Int8, token.Int16, token.Int32, token.Int64:
			n, err := r.Int64(64)
			if err != nil {
				return err
			}
			if err := w.Int64(n); err != nil {
				return err
			}
		case token.Floating:
			f, err := r.Float64(64)
			if err != nil {
				return err
			}
			if err := w.Float64(f, 64); err != nil {
				return err
			}
		case token.Float32:
			f, err := r.Float64(32)
			if err != nil {
				return err
			}
			if err := w.Float64(f, 32); err != nil {
				return err
			}
		case token.Float64:
			f, err := r.Float64(64)
			if err != nil {
				return err
			}
			if err := w.Float64(f, 64); err != nil {
				return err
			}
		case token.String, token.String8, token.String16, token.String32, token.String64:
			s, err := r.Str()
			if err != nil {
				return err
			}
			if err := w.String(s); err != nil {
				return err
			}
		}
	}
	return r.Err()
}
