package bintoken

import (
	"encoding/binary"
	"math"

	"github.com/trialgo/protocol/buffer"
	"github.com/trialgo/protocol/numeric"
	"github.com/trialgo/protocol/token"
)

// Encoder formats scalar and structural tokens as bintoken bytes into a
// buffer.Sink.
//
// Integer emission picks the narrowest tag whose range covers the value:
// inline-byte, then int8, int16, int32, int64 in that order.
type Encoder struct {
	sink buffer.Sink
}

// NewEncoder constructs an Encoder writing into sink.
func NewEncoder(sink buffer.Sink) *Encoder {
	return &Encoder{sink: sink}
}

func (e *Encoder) WriteNull() error   { return e.sink.WriteByte(tagNull) }
func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.sink.WriteByte(tagTrue)
	}
	return e.sink.WriteByte(tagFalse)
}

// WriteInt64 picks the narrowest representation: an inline byte when v
// fits in a signed byte and that exact byte value isn't one of the
// reserved tag bytes, otherwise the narrowest of int8/int16/int32/int64
// whose range covers v.
func (e *Encoder) WriteInt64(v int64) error {
	if v >= math.MinInt8 && v <= math.MaxInt8 {
		b := byte(int8(v))
		if !isReserved(b) {
			return e.sink.WriteByte(b)
		}
	}
	switch numeric.NarrowestSignedWidth(v) {
	case 8:
		return e.writeTagged(tagInt8, []byte{byte(int8(v))})
	case 16:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(int16(v)))
		return e.writeTagged(tagInt16, buf[:])
	case 32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(int32(v)))
		return e.writeTagged(tagInt32, buf[:])
	default:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		return e.writeTagged(tagInt64, buf[:])
	}
}

// WriteUint64 emits v using the same narrowest-signed-tag ladder as
// WriteInt64, rejecting values that overflow int64. The wire has no
// unsigned scalar tag family; an unsigned value is only ever meaningful
// relative to a target width a caller enforces via Decoder.Uint64.
func (e *Encoder) WriteUint64(v uint64) error {
	if v > math.MaxInt64 {
		return token.ErrOverflow
	}
	return e.WriteInt64(int64(v))
}

// WriteFloat64 emits v at exactly the requested precision: bintoken never
// narrows floats.
func (e *Encoder) WriteFloat64(v float64, bitSize int) error {
	if bitSize == 32 {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
		return e.writeTagged(tagFloat32, buf[:])
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	return e.writeTagged(tagFloat64, buf[:])
}

// WriteString picks the narrowest length-prefix width that fits len(s).
func (e *Encoder) WriteString(s string) error {
	tag, lengthWidth := stringTagFor(len(s))
	if err := e.writeLengthPrefixed(tag, lengthWidth, len(s)); err != nil {
		return err
	}
	_, err := e.sink.Write([]byte(s))
	return err
}

func stringTagFor(n int) (tag byte, lengthWidth int) {
	switch numeric.NarrowestLengthTag(n) {
	case 8:
		return tagString8, 1
	case 16:
		return tagString16, 2
	case 32:
		return tagString32, 4
	default:
		return tagString64, 8
	}
}

func (e *Encoder) writeTagged(tag byte, payload []byte) error {
	if !e.sink.Grow(1 + len(payload)) {
		return token.ErrOverflow
	}
	if err := e.sink.WriteByte(tag); err != nil {
		return err
	}
	_, err := e.sink.Write(payload)
	return err
}

func (e *Encoder) writeLengthPrefixed(tag byte, lengthWidth, length int) error {
	if !e.sink.Grow(1 + lengthWidth + length) {
		return token.ErrOverflow
	}
	if err := e.sink.WriteByte(tag); err != nil {
		return err
	}
	var buf [8]byte
	putUint(buf[:lengthWidth], uint64(length))
	_, err := e.sink.Write(buf[:lengthWidth])
	return err
}

func putUint(buf []byte, v uint64) {
	for i := range buf {
		buf[i] = byte(v)
		v >>= 8
	}
}

func (e *Encoder) WriteBegin(c token.Code) error {
	tag, ok := codeToTag[c]
	if !ok {
		return token.ErrInvalidValue
	}
	return e.sink.WriteByte(tag)
}

func (e *Encoder) WriteEnd(c token.Code) error {
	tag, ok := codeToTag[c]
	if !ok {
		return token.ErrInvalidValue
	}
	return e.sink.WriteByte(tag)
}

// WriteSeparator is a no-op: bintoken has no separator bytes between
// array/object elements, length prefixes alone delimit values.
func (e *Encoder) WriteSeparator(c token.Code) error { return nil }

// WriteInt16s packs vals as a compact array.
func (e *Encoder) WriteInt16s(vals []int16) error {
	payload := make([]byte, len(vals)*2)
	for i, v := range vals {
		binary.LittleEndian.PutUint16(payload[i*2:], uint16(v))
	}
	return e.writeCompactArrayTagged(token.ElemInt16, payload)
}

// WriteInt8s packs vals as a compact array.
func (e *Encoder) WriteInt8s(vals []int8) error {
	payload := make([]byte, len(vals))
	for i, v := range vals {
		payload[i] = byte(v)
	}
	return e.writeCompactArrayTagged(token.ElemInt8, payload)
}

// WriteInt32s packs vals as a compact array.
func (e *Encoder) WriteInt32s(vals []int32) error {
	payload := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(payload[i*4:], uint32(v))
	}
	return e.writeCompactArrayTagged(token.ElemInt32, payload)
}

// WriteInt64s packs vals as a compact array.
func (e *Encoder) WriteInt64s(vals []int64) error {
	payload := make([]byte, len(vals)*8)
	for i, v := range vals {
		binary.LittleEndian.PutUint64(payload[i*8:], uint64(v))
	}
	return e.writeCompactArrayTagged(token.ElemInt64, payload)
}

// WriteFloat32s packs vals as a compact array.
func (e *Encoder) WriteFloat32s(vals []float32) error {
	payload := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(payload[i*4:], math.Float32bits(v))
	}
	return e.writeCompactArrayTagged(token.ElemFloat32, payload)
}

// WriteFloat64s packs vals as a compact array.
func (e *Encoder) WriteFloat64s(vals []float64) error {
	payload := make([]byte, len(vals)*8)
	for i, v := range vals {
		binary.LittleEndian.PutUint64(payload[i*8:], math.Float64bits(v))
	}
	return e.writeCompactArrayTagged(token.ElemFloat64, payload)
}

func (e *Encoder) writeCompactArrayTagged(elem token.ElemKind, payload []byte) error {
	lengthBits := numeric.NarrowestLengthTag(len(payload))
	tag, ok := arrayTag(lengthBits, elem)
	if !ok {
		return token.ErrInvalidValue
	}
	if err := e.writeLengthPrefixed(tag, lengthBits/8, len(payload)); err != nil {
		return err
	}
	_, err := e.sink.Write(payload)
	return err
}
