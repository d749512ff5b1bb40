// Package bintoken implements a compact binary tagged wire format: a
// one-byte code per token, optionally followed by a fixed-width or
// length-prefixed payload, all little-endian.
//
// Each Next call consumes exactly one token and returns, leaving tree
// structure to the caller: dispatch is a plain switch on the tag byte,
// each arm reading its fixed-width or length-prefixed payload via
// encoding/binary.LittleEndian.
package bintoken

import (
	"encoding/binary"
	"math"

	"github.com/trialgo/protocol/numeric"
	"github.com/trialgo/protocol/token"
)

// Decoder scans a bintoken byte slice one token at a time without copying
// the input; Literal always returns a sub-slice of the slice passed to
// NewDecoder.
type Decoder struct {
	input   []byte
	pos     int
	code    token.Code
	litFrom int
	litTo   int
}

// NewDecoder constructs a Decoder over input and pre-reads the first token.
func NewDecoder(input []byte) *Decoder {
	d := &Decoder{input: input}
	d.Next()
	return d
}

func (d *Decoder) Code() token.Code     { return d.code }
func (d *Decoder) Literal() []byte      { return d.input[d.litFrom:d.litTo] }
func (d *Decoder) Symbol() token.Symbol { return d.code.Symbol() }

func (d *Decoder) set(code token.Code, from, to int) {
	d.code, d.litFrom, d.litTo = code, from, to
}

func (d *Decoder) fail(err token.Code) { d.set(err, d.pos, d.pos) }

func (d *Decoder) remaining() int { return len(d.input) - d.pos }

// Next reads the next tag byte and its payload, returning the resulting
// code. Once Code() is an error or End, Next is a no-op: errors are sticky
// until the decoder is discarded, and End is a sticky end-of-input signal
// even when it came from a frame truncated mid-payload.
func (d *Decoder) Next() token.Code {
	if d.code.IsError() || d.code == token.End {
		return d.code
	}
	if d.remaining() == 0 {
		d.set(token.End, d.pos, d.pos)
		return d.code
	}

	b := d.input[d.pos]
	start := d.pos
	d.pos++

	if !isReserved(b) {
		d.set(token.Int8, start, d.pos)
		return d.code
	}

	if lengthBits, elem, ok := decodeArrayTag(b); ok {
		d.scanCompactArray(start, lengthBits, elem)
		return d.code
	}

	switch b {
	case tagNull:
		d.set(token.Null, start, d.pos)
	case tagTrue:
		d.set(token.True, start, d.pos)
	case tagFalse:
		d.set(token.False, start, d.pos)
	case tagBeginArray:
		d.set(token.BeginArray, start, d.pos)
	case tagEndArray:
		d.set(token.EndArray, start, d.pos)
	case tagBeginRecord:
		d.set(token.BeginRecord, start, d.pos)
	case tagEndRecord:
		d.set(token.EndRecord, start, d.pos)
	case tagBeginAssocArray:
		d.set(token.BeginAssocArray, start, d.pos)
	case tagEndAssocArray:
		d.set(token.EndAssocArray, start, d.pos)
	case tagInt8:
		d.scanFixed(start, token.Int8, 1)
	case tagInt16:
		d.scanFixed(start, token.Int16, 2)
	case tagInt32:
		d.scanFixed(start, token.Int32, 4)
	case tagInt64:
		d.scanFixed(start, token.Int64, 8)
	case tagFloat32:
		d.scanFixed(start, token.Float32, 4)
	case tagFloat64:
		d.scanFixed(start, token.Float64, 8)
	case tagString8:
		d.scanString(start, token.String8, 1)
	case tagString16:
		d.scanString(start, token.String16, 2)
	case tagString32:
		d.scanString(start, token.String32, 4)
	case tagString64:
		d.scanString(start, token.String64, 8)
	default:
		d.fail(token.ErrUnknownToken)
	}
	return d.code
}

// scanFixed consumes a fixed-width payload. A truncated payload is
// reported as clean End rather than an error: a frame cut off mid-payload
// looks identical to input that simply stopped there.
func (d *Decoder) scanFixed(start int, code token.Code, width int) {
	if d.remaining() < width {
		d.set(token.End, start, start)
		d.pos = len(d.input)
		return
	}
	payloadStart := d.pos
	d.pos += width
	d.set(code, payloadStart, d.pos)
}

// readLengthField reads a width-byte little-endian two's-complement
// length, returning it as an int64 so a negative encoding (high bit set)
// can be distinguished from an overflowing-but-positive one.
func (d *Decoder) readLengthField(width int) (int64, bool) {
	if d.remaining() < width {
		return 0, false
	}
	raw := d.input[d.pos : d.pos+width]
	d.pos += width
	var u uint64
	for i := width - 1; i >= 0; i-- {
		u = u<<8 | uint64(raw[i])
	}
	switch width {
	case 1:
		return int64(int8(u)), true
	case 2:
		return int64(int16(u)), true
	case 4:
		return int64(int32(u)), true
	default:
		return int64(u), true
	}
}

func (d *Decoder) scanString(start int, code token.Code, lengthWidth int) {
	length, ok := d.readLengthField(lengthWidth)
	if !ok {
		d.set(token.End, start, start)
		d.pos = len(d.input)
		return
	}
	if length < 0 {
		d.fail(token.ErrNegativeLength)
		return
	}
	if length > int64(d.remaining()) {
		d.fail(token.ErrOverflow)
		return
	}
	payloadStart := d.pos
	d.pos += int(length)
	d.set(code, payloadStart, d.pos)
}

func (d *Decoder) scanCompactArray(start int, lengthBits int, elem token.ElemKind) {
	code, ok := token.ArrayCode(lengthBits, elem)
	if !ok {
		d.fail(token.ErrUnknownToken)
		return
	}
	length, ok := d.readLengthField(lengthBits / 8)
	if !ok {
		d.set(token.End, start, start)
		d.pos = len(d.input)
		return
	}
	if length < 0 {
		d.fail(token.ErrNegativeLength)
		return
	}
	if length > int64(d.remaining()) {
		d.fail(token.ErrOverflow)
		return
	}
	width := elem.Width()
	if int(length)%width != 0 {
		d.fail(token.ErrUnexpectedToken)
		return
	}
	payloadStart := d.pos
	d.pos += int(length)
	d.set(code, payloadStart, d.pos)
}

// --- value conversion ---

// Int64 converts the current scalar-integer literal (inline int8 or a
// tagged int8/16/32/64) to int64. bitSize is only used to re-validate
// range when the caller wants a narrower width than the wire width.
func (d *Decoder) Int64(bitSize int) (int64, error) {
	lit := d.Literal()
	var v int64
	switch d.code {
	case token.Int8:
		if len(lit) != 1 {
			return 0, token.ErrIncompatibleType
		}
		v = int64(int8(lit[0]))
	case token.Int16:
		v = int64(int16(binary.LittleEndian.Uint16(lit)))
	case token.Int32:
		v = int64(int32(binary.LittleEndian.Uint32(lit)))
	case token.Int64:
		v = int64(binary.LittleEndian.Uint64(lit))
	default:
		return 0, token.ErrIncompatibleType
	}
	min, max := numeric.SignedBounds(bitSize)
	if v < min || v > max {
		d.fail(token.ErrOverflow)
		return 0, token.ErrOverflow
	}
	return v, nil
}

// Uint64 reinterprets the current scalar-integer literal as unsigned,
// failing with ErrOverflow if it is negative or exceeds bitSize.
func (d *Decoder) Uint64(bitSize int) (uint64, error) {
	v, err := d.Int64(64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		d.fail(token.ErrOverflow)
		return 0, token.ErrOverflow
	}
	if uint64(v) > numeric.UnsignedBounds(bitSize) {
		d.fail(token.ErrOverflow)
		return 0, token.ErrOverflow
	}
	return uint64(v), nil
}

// Float64 converts the current Float32/Float64 literal to a float64.
// bitSize is accepted only to satisfy token.Decoder's shared signature:
// the wire already fixes the width via the tag, so there is nothing to
// narrow.
func (d *Decoder) Float64(bitSize int) (float64, error) {
	lit := d.Literal()
	switch d.code {
	case token.Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(lit))), nil
	case token.Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(lit)), nil
	default:
		return 0, token.ErrIncompatibleType
	}
}

// Bytes returns the current String8/16/32/64 literal's raw payload bytes.
// It is not validated as UTF-8.
func (d *Decoder) Bytes() ([]byte, error) {
	switch d.code {
	case token.String8, token.String16, token.String32, token.String64:
		return d.Literal(), nil
	default:
		return nil, token.ErrIncompatibleType
	}
}

// Str returns the current String8/16/32/64 literal's payload as a string.
// bintoken strings carry no escapes, so this is a plain byte copy.
func (d *Decoder) Str() (string, error) {
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompactArray reports the element kind, element count, and raw packed
// payload of the current compact-array token.
func (d *Decoder) CompactArray() (elem token.ElemKind, count int, raw []byte, err error) {
	_, elem, ok := d.code.CompactArray()
	if !ok {
		return 0, 0, nil, token.ErrIncompatibleType
	}
	lit := d.Literal()
	return elem, len(lit) / elem.Width(), lit, nil
}

// Int16s decodes the current compact array token into dst, which must
// have exactly as many elements as the wire payload: a length mismatch in
// either direction fails with ErrIncompatibleType.
func (d *Decoder) Int16s(dst []int16) error {
	elem, count, raw, err := d.CompactArray()
	if err != nil {
		return err
	}
	if elem != token.ElemInt16 || count != len(dst) {
		return token.ErrIncompatibleType
	}
	for i := range dst {
		dst[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return nil
}

// Int8s decodes the current compact array token into dst.
func (d *Decoder) Int8s(dst []int8) error {
	elem, count, raw, err := d.CompactArray()
	if err != nil {
		return err
	}
	if elem != token.ElemInt8 || count != len(dst) {
		return token.ErrIncompatibleType
	}
	for i := range dst {
		dst[i] = int8(raw[i])
	}
	return nil
}

// Int32s decodes the current compact array token into dst.
func (d *Decoder) Int32s(dst []int32) error {
	elem, count, raw, err := d.CompactArray()
	if err != nil {
		return err
	}
	if elem != token.ElemInt32 || count != len(dst) {
		return token.ErrIncompatibleType
	}
	for i := range dst {
		dst[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return nil
}

// Int64s decodes the current compact array token into dst.
func (d *Decoder) Int64s(dst []int64) error {
	elem, count, raw, err := d.CompactArray()
	if err != nil {
		return err
	}
	if elem != token.ElemInt64 || count != len(dst) {
		return token.ErrIncompatibleType
	}
	for i := range dst {
		dst[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return nil
}

// Float32s decodes the current compact array token into dst.
func (d *Decoder) Float32s(dst []float32) error {
	elem, count, raw, err := d.CompactArray()
	if err != nil {
		return err
	}
	if elem != token.ElemFloat32 || count != len(dst) {
		return token.ErrIncompatibleType
	}
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return nil
}

// Float64s decodes the current compact array token into dst.
func (d *Decoder) Float64s(dst []float64) error {
	elem, count, raw, err := d.CompactArray()
	if err != nil {
		return err
	}
	if elem != token.ElemFloat64 || count != len(dst) {
		return token.ErrIncompatibleType
	}
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return nil
}
