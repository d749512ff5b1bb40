package token

// Decoder is the minimal surface both json.Decoder and bintoken.Decoder
// expose, and the only surface reader.Reader needs to layer structural
// invariants on top of a byte scanner.
//
// Implementations pre-read one token at construction; Next advances
// exactly one token and returns the new current code. Once the current
// code is an error code, Next is a no-op: the error is sticky until the
// decoder is discarded.
type Decoder interface {
	Code() Code
	Literal() []byte
	Next() Code

	// Int64, Uint64, Float64 and Str convert the current literal to a
	// typed value. bitSize narrows/validates the target width for the
	// integer and float conversions; Str handles both JSON's escaped text
	// and bintoken's raw length-prefixed payload. All four fail with
	// ErrIncompatibleType if the current code isn't a matching data code.
	Int64(bitSize int) (int64, error)
	Uint64(bitSize int) (uint64, error)
	Float64(bitSize int) (float64, error)
	Str() (string, error)
}

// Encoder is the minimal surface both json.Encoder and bintoken.Encoder
// expose, and the only surface writer.Writer needs to format scalars and
// structural markers. Encoders are "unstructured": they never decide where
// a separator goes, they just emit the one requested.
type Encoder interface {
	WriteNull() error
	WriteBool(v bool) error
	WriteInt64(v int64) error
	WriteUint64(v uint64) error
	WriteFloat64(v float64, bitSize int) error
	WriteString(s string) error
	WriteBegin(c Code) error
	WriteEnd(c Code) error
	WriteSeparator(c Code) error
}
