// Package dynamic implements the polymorphic in-memory value: a tagged
// union over null, bool, four signed and four unsigned integer widths,
// three floating-point widths, a string, an ordered sequence of variables,
// and an ordered map keyed by variables. Exactly sixteen alternatives,
// dispatched exhaustively through Visit.
package dynamic

import "math/big"

// Tag identifies which alternative a Variable currently holds.
type Tag int

const (
	TagNull Tag = iota
	TagBool
	TagInt8
	TagInt16
	TagInt32
	TagInt64
	TagUint8
	TagUint16
	TagUint32
	TagUint64
	TagFloat32
	TagFloat64
	TagBigFloat
	TagString
	TagArray
	TagMap
)

var tagNames = [...]string{
	"null", "bool",
	"int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64",
	"float32", "float64", "bigfloat",
	"string", "array", "map",
}

func (t Tag) String() string {
	if t >= 0 && int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "tag?"
}

// Variable holds exactly one of the sixteen alternatives named by Tag.
// Array and map alternatives hold Variables recursively; a Variable's
// zero value is TagNull.
type Variable struct {
	tag Tag
	b   bool
	i64 int64
	u64 uint64
	f32 float32
	f64 float64
	big *big.Float
	str string
	arr []Variable
	m   *Map
}

// Tag reports the active alternative.
func (v Variable) Tag() Tag { return v.tag }

// Null returns the null Variable.
func Null() Variable { return Variable{tag: TagNull} }

// Bool wraps a bool.
func Bool(b bool) Variable { return Variable{tag: TagBool, b: b} }

// Int8 wraps an int8.
func Int8(n int8) Variable { return Variable{tag: TagInt8, i64: int64(n)} }

// Int16 wraps an int16.
func Int16(n int16) Variable { return Variable{tag: TagInt16, i64: int64(n)} }

// Int32 wraps an int32.
func Int32(n int32) Variable { return Variable{tag: TagInt32, i64: int64(n)} }

// Int64 wraps an int64.
func Int64(n int64) Variable { return Variable{tag: TagInt64, i64: n} }

// Uint8 wraps a uint8.
func Uint8(n uint8) Variable { return Variable{tag: TagUint8, u64: uint64(n)} }

// Uint16 wraps a uint16.
func Uint16(n uint16) Variable { return Variable{tag: TagUint16, u64: uint64(n)} }

// Uint32 wraps a uint32.
func Uint32(n uint32) Variable { return Variable{tag: TagUint32, u64: uint64(n)} }

// Uint64 wraps a uint64.
func Uint64(n uint64) Variable { return Variable{tag: TagUint64, u64: n} }

// Float32 wraps a float32.
func Float32(f float32) Variable { return Variable{tag: TagFloat32, f32: f} }

// Float64 wraps a float64.
func Float64(f float64) Variable { return Variable{tag: TagFloat64, f64: f} }

// BigFloat wraps an arbitrary-precision float, the third of the three
// floating-point alternatives alongside Float32 and Float64.
func BigFloat(f *big.Float) Variable { return Variable{tag: TagBigFloat, big: f} }

// String wraps a string.
func String(s string) Variable { return Variable{tag: TagString, str: s} }

// Array wraps a sequence of Variables. The slice is held, not copied;
// callers should not mutate it after passing it in.
func Array(elems []Variable) Variable { return Variable{tag: TagArray, arr: elems} }

// MapValue wraps an ordered map.
func MapValue(m *Map) Variable { return Variable{tag: TagMap, m: m} }

// AsBool returns the payload and true if v holds TagBool.
func (v Variable) AsBool() (bool, bool) { return v.b, v.tag == TagBool }

// AsInt64 returns the payload and true if v holds one of the four signed
// integer alternatives, widened to int64.
func (v Variable) AsInt64() (int64, bool) {
	switch v.tag {
	case TagInt8, TagInt16, TagInt32, TagInt64:
		return v.i64, true
	}
	return 0, false
}

// AsUint64 returns the payload and true if v holds one of the four
// unsigned integer alternatives, widened to uint64.
func (v Variable) AsUint64() (uint64, bool) {
	switch v.tag {
	case TagUint8, TagUint16, TagUint32, TagUint64:
		return v.u64, true
	}
	return 0, false
}

// AsFloat32 returns the payload and true if v holds TagFloat32.
func (v Variable) AsFloat32() (float32, bool) { return v.f32, v.tag == TagFloat32 }

// AsFloat64 returns the payload and true if v holds TagFloat64.
func (v Variable) AsFloat64() (float64, bool) { return v.f64, v.tag == TagFloat64 }

// AsBigFloat returns the payload and true if v holds TagBigFloat.
func (v Variable) AsBigFloat() (*big.Float, bool) { return v.big, v.tag == TagBigFloat }

// AsString returns the payload and true if v holds TagString.
func (v Variable) AsString() (string, bool) { return v.str, v.tag == TagString }

// AsArray returns the payload and true if v holds TagArray.
func (v Variable) AsArray() ([]Variable, bool) { return v.arr, v.tag == TagArray }

// AsMap returns the payload and true if v holds TagMap.
func (v Variable) AsMap() (*Map, bool) { return v.m, v.tag == TagMap }
