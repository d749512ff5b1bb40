// Package token defines the closed set of token codes shared by the json
// and bintoken codecs, and the Decoder/Encoder interfaces that the
// tree-aware reader and writer packages drive.
//
// A Code is the exact identity of a token, including error identities: an
// error condition rides inside the stream as just another code rather than
// as a separate out-of-band signal.
package token

import "strconv"

// Code is a flat enumeration of every token identity a decoder can report.
type Code int

const (
	// Null/keyword data.
	Null Code = iota
	True
	False

	// Number data (JSON names these Integer/Floating; bintoken names them
	// by exact width below).
	Integer
	Floating

	// String data (JSON uses String; bintoken uses the widths below).
	String

	// bintoken scalar widths.
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64

	// bintoken string widths, differing only by length-prefix width.
	String8
	String16
	String32
	String64

	// Structural.
	BeginArray
	EndArray
	BeginObject
	EndObject
	BeginRecord
	EndRecord
	BeginAssocArray
	EndAssocArray
	NameSeparator
	ValueSeparator

	// Status: clean end of input at a token boundary.
	End

	// Compact array family: arrayN_T, N in {8,16,32,64}, T one of the six
	// element kinds below. Laid out as a contiguous block so ArrayCode and
	// Code.CompactArray can compute an offset instead of needing 24 named
	// branches.
	arrayCodeBase
)

// compactArrayCount is the number of distinct element kinds an arrayN_T
// frame can carry.
const compactArrayCount = 6

// ElemKind identifies the element type of a compact array token.
type ElemKind int

const (
	ElemInt8 ElemKind = iota
	ElemInt16
	ElemInt32
	ElemInt64
	ElemFloat32
	ElemFloat64
)

// Width is the width in bytes of one element of the given kind.
func (k ElemKind) Width() int {
	switch k {
	case ElemInt8:
		return 1
	case ElemInt16:
		return 2
	case ElemInt32, ElemFloat32:
		return 4
	case ElemInt64, ElemFloat64:
		return 8
	}
	return 0
}

func (k ElemKind) String() string {
	switch k {
	case ElemInt8:
		return "int8"
	case ElemInt16:
		return "int16"
	case ElemInt32:
		return "int32"
	case ElemInt64:
		return "int64"
	case ElemFloat32:
		return "float32"
	case ElemFloat64:
		return "float64"
	}
	return "elem?"
}

// lengthWidths enumerates the supported compact-array length-prefix widths,
// in bits.
var lengthWidths = [4]int{8, 16, 32, 64}

// ArrayCode returns the Code for a compact array whose length prefix is
// lengthBits wide (8/16/32/64) and whose elements are of kind elem. ok is
// false if lengthBits is not one of the supported widths.
func ArrayCode(lengthBits int, elem ElemKind) (code Code, ok bool) {
	widthIdx := -1
	for i, w := range lengthWidths {
		if w == lengthBits {
			widthIdx = i
			break
		}
	}
	if widthIdx < 0 || elem < ElemInt8 || elem > ElemFloat64 {
		return 0, false
	}
	return arrayCodeBase + Code(widthIdx*compactArrayCount+int(elem)), true
}

// CompactArray reports whether c is a compact-array code, and if so its
// length-prefix width in bits and element kind.
func (c Code) CompactArray() (lengthBits int, elem ElemKind, ok bool) {
	if c < arrayCodeBase || c >= errCodeBase {
		return 0, 0, false
	}
	idx := int(c - arrayCodeBase)
	return lengthWidths[idx/compactArrayCount], ElemKind(idx % compactArrayCount), true
}

// errCodeBase is the first error Code; compact array codes occupy
// [arrayCodeBase, errCodeBase).
const errCodeBase = arrayCodeBase + Code(4*compactArrayCount)

// Error kinds. Each is itself a Code so an error condition rides inside the
// decoder's current-code field exactly like any other token.
const (
	ErrUnexpectedToken Code = errCodeBase + iota
	ErrInvalidKey
	ErrInvalidValue
	ErrIncompatibleType
	ErrOverflow
	ErrNegativeLength
	ErrUnbalancedEndArray
	ErrUnbalancedEndObject
	ErrExpectedEndArray
	ErrExpectedEndObject
	ErrExpectedEndRecord
	ErrExpectedEndAssocArray
	ErrUnknownToken
	ErrNotImplemented
	ErrIO
)

// IsError reports whether c is one of the error codes.
func (c Code) IsError() bool {
	return c >= errCodeBase
}

// Symbol is a coarse projection of Code used for structural dispatch.
type Symbol int

const (
	SymbolData Symbol = iota
	SymbolSeparator
	SymbolBeginScope
	SymbolEndScope
	SymbolEnd
	SymbolError
)

// Symbol classifies c into one of the six symbol buckets: data, separator,
// begin-scope, end-scope, end-of-input, or error.
func (c Code) Symbol() Symbol {
	switch {
	case c.IsError():
		return SymbolError
	case c == End:
		return SymbolEnd
	case c == NameSeparator || c == ValueSeparator:
		return SymbolSeparator
	case c == BeginArray || c == BeginObject || c == BeginRecord || c == BeginAssocArray:
		return SymbolBeginScope
	case c == EndArray || c == EndObject || c == EndRecord || c == EndAssocArray:
		return SymbolEndScope
	default:
		return SymbolData
	}
}

// Category is a coarser projection than Symbol: data vs structural vs
// status.
type Category int

const (
	CategoryData Category = iota
	CategoryStructural
	CategoryStatus
)

// Category classifies c at a coarser grain than Symbol.
func (c Code) Category() Category {
	switch c.Symbol() {
	case SymbolEnd, SymbolError:
		return CategoryStatus
	case SymbolBeginScope, SymbolEndScope, SymbolSeparator:
		return CategoryStructural
	default:
		return CategoryData
	}
}

var codeNames = map[Code]string{
	Null: "null", True: "true", False: "false",
	Integer: "integer", Floating: "floating", String: "string",
	Int8: "int8", Int16: "int16", Int32: "int32", Int64: "int64",
	Float32: "float32", Float64: "float64",
	String8: "string8", String16: "string16", String32: "string32", String64: "string64",
	BeginArray: "begin_array", EndArray: "end_array",
	BeginObject: "begin_object", EndObject: "end_object",
	BeginRecord: "begin_record", EndRecord: "end_record",
	BeginAssocArray: "begin_assoc_array", EndAssocArray: "end_assoc_array",
	NameSeparator: "name_separator", ValueSeparator: "value_separator",
	End: "end",

	ErrUnexpectedToken:       "unexpected_token",
	ErrInvalidKey:            "invalid_key",
	ErrInvalidValue:          "invalid_value",
	ErrIncompatibleType:      "incompatible_type",
	ErrOverflow:              "overflow",
	ErrNegativeLength:        "negative_length",
	ErrUnbalancedEndArray:    "unbalanced_end_array",
	ErrUnbalancedEndObject:   "unbalanced_end_object",
	ErrExpectedEndArray:      "expected_end_array",
	ErrExpectedEndObject:     "expected_end_object",
	ErrExpectedEndRecord:     "expected_end_record",
	ErrExpectedEndAssocArray: "expected_end_assoc_array",
	ErrUnknownToken:          "unknown_token",
	ErrNotImplemented:        "not_implemented",
	ErrIO:                    "io_error",
}

// String returns the stable identifier for c, e.g. "begin_array" or
// "overflow". Compact array codes are synthesized from their width/kind.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	if bits, elem, ok := c.CompactArray(); ok {
		return "array" + strconv.Itoa(bits) + "_" + elem.String()
	}
	return "code(" + strconv.Itoa(int(c)) + ")"
}
