package json

import (
	"strconv"

	"github.com/trialgo/protocol/buffer"
	"github.com/trialgo/protocol/numeric"
	"github.com/trialgo/protocol/token"
)

// Encoder formats scalar and structural tokens as JSON text into a
// buffer.Sink. It is deliberately unstructured: it never decides separator
// placement, that is writer.Writer's job.
type Encoder struct {
	sink buffer.Sink
}

// NewEncoder constructs an Encoder writing into sink.
func NewEncoder(sink buffer.Sink) *Encoder {
	return &Encoder{sink: sink}
}

func (e *Encoder) writeString(s string) error {
	_, err := e.sink.Write([]byte(s))
	return err
}

func (e *Encoder) WriteNull() error { return e.writeString("null") }

func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.writeString("true")
	}
	return e.writeString("false")
}

func (e *Encoder) WriteInt64(v int64) error {
	return e.writeString(strconv.FormatInt(v, 10))
}

func (e *Encoder) WriteUint64(v uint64) error {
	return e.writeString(strconv.FormatUint(v, 10))
}

func (e *Encoder) WriteFloat64(v float64, bitSize int) error {
	return e.writeString(numeric.FormatFloat(v, bitSize))
}

// WriteString quotes and escapes s: backslash, quote and the C0 controls
// \b\f\n\r\t get their two-character escape, other controls become
// \u00XX, and bytes >= 0x20 are copied verbatim (no re-encoding of
// already-valid UTF-8).
func (e *Encoder) WriteString(s string) error {
	if err := e.sink.WriteByte('"'); err != nil {
		return err
	}
	const hex = "0123456789abcdef"
	for i := 0; i < len(s); i++ {
		c := s[i]
		var err error
		switch {
		case c == '"' || c == '\\':
			_, err = e.sink.Write([]byte{'\\', c})
		case c == '\b':
			_, err = e.sink.Write([]byte{'\\', 'b'})
		case c == '\f':
			_, err = e.sink.Write([]byte{'\\', 'f'})
		case c == '\n':
			_, err = e.sink.Write([]byte{'\\', 'n'})
		case c == '\r':
			_, err = e.sink.Write([]byte{'\\', 'r'})
		case c == '\t':
			_, err = e.sink.Write([]byte{'\\', 't'})
		case c < 0x20:
			_, err = e.sink.Write([]byte{'\\', 'u', '0', '0', hex[c>>4], hex[c&0xF]})
		default:
			err = e.sink.WriteByte(c)
		}
		if err != nil {
			return err
		}
	}
	return e.sink.WriteByte('"')
}

func (e *Encoder) WriteBegin(c token.Code) error {
	switch c {
	case token.BeginArray:
		return e.sink.WriteByte('[')
	case token.BeginObject, token.BeginRecord, token.BeginAssocArray:
		return e.sink.WriteByte('{')
	default:
		return token.ErrInvalidValue
	}
}

func (e *Encoder) WriteEnd(c token.Code) error {
	switch c {
	case token.EndArray:
		return e.sink.WriteByte(']')
	case token.EndObject, token.EndRecord, token.EndAssocArray:
		return e.sink.WriteByte('}')
	default:
		return token.ErrInvalidValue
	}
}

func (e *Encoder) WriteSeparator(c token.Code) error {
	switch c {
	case token.NameSeparator:
		return e.sink.WriteByte(':')
	case token.ValueSeparator:
		return e.sink.WriteByte(',')
	default:
		return token.ErrInvalidValue
	}
}
