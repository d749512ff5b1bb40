// Package json implements an incremental, allocation-light scanner and
// writer for RFC 7159 JSON text, used as the byte-level layer beneath
// reader.Reader and writer.Writer.
//
// Next() advances exactly one lexeme and Literal() exposes the exact
// source slice, with conversion to a typed value deferred to Int64/
// Uint64/Float64/Str so a caller that only wants to skip a value never
// pays for the conversion.
package json

import (
	"github.com/trialgo/protocol/numeric"
	"github.com/trialgo/protocol/token"
)

// Decoder scans a JSON byte slice one token at a time. It never copies the
// input: Literal always returns a sub-slice of the slice passed to
// NewDecoder.
type Decoder struct {
	input   []byte
	pos     int
	code    token.Code
	litFrom int
	litTo   int
}

// NewDecoder constructs a Decoder over input and pre-reads the first
// token, so Code/Literal are valid immediately without a prior call to
// Next.
func NewDecoder(input []byte) *Decoder {
	d := &Decoder{input: input}
	d.Next()
	return d
}

func (d *Decoder) Code() token.Code    { return d.code }
func (d *Decoder) Literal() []byte     { return d.input[d.litFrom:d.litTo] }
func (d *Decoder) Symbol() token.Symbol { return d.code.Symbol() }

// Next scans and returns the next token. Once Code() is an error code or
// End, Next is a no-op: errors are sticky until the decoder is discarded,
// and End is a sticky end-of-input signal even when it was produced by a
// token truncated mid-number rather than by exact exhaustion.
func (d *Decoder) Next() token.Code {
	if d.code.IsError() || d.code == token.End {
		return d.code
	}
	d.skipWhitespace()
	if d.pos >= len(d.input) {
		d.set(token.End, d.pos, d.pos)
		return d.code
	}

	c := d.input[d.pos]
	switch {
	case c == 'f' || c == 'n' || c == 't':
		d.scanKeyword()
	case c == '-' || (c >= '0' && c <= '9'):
		d.scanNumber()
	case c == '"':
		d.scanString()
	case c == '[':
		d.set(token.BeginArray, d.pos, d.pos+1)
		d.pos++
	case c == ']':
		d.set(token.EndArray, d.pos, d.pos+1)
		d.pos++
	case c == '{':
		d.set(token.BeginObject, d.pos, d.pos+1)
		d.pos++
	case c == '}':
		d.set(token.EndObject, d.pos, d.pos+1)
		d.pos++
	case c == ',':
		d.set(token.ValueSeparator, d.pos, d.pos+1)
		d.pos++
	case c == ':':
		d.set(token.NameSeparator, d.pos, d.pos+1)
		d.pos++
	default:
		d.fail(token.ErrUnexpectedToken)
	}
	return d.code
}

func (d *Decoder) set(code token.Code, from, to int) {
	d.code, d.litFrom, d.litTo = code, from, to
}

func (d *Decoder) fail(err token.Code) {
	d.set(err, d.pos, d.pos)
}

func (d *Decoder) skipWhitespace() {
	for d.pos < len(d.input) {
		switch d.input[d.pos] {
		case ' ', '\t', '\r', '\n':
			d.pos++
		default:
			return
		}
	}
}

var keywords = map[byte]struct {
	text []byte
	code token.Code
}{
	'f': {[]byte("false"), token.False},
	'n': {[]byte("null"), token.Null},
	't': {[]byte("true"), token.True},
}

func (d *Decoder) scanKeyword() {
	kw := keywords[d.input[d.pos]]
	start := d.pos
	end := start + len(kw.text)
	if end > len(d.input) || string(d.input[start:end]) != string(kw.text) {
		d.consumeKeywordBoundary(start)
		d.fail(token.ErrUnexpectedToken)
		return
	}
	if end < len(d.input) && isKeywordContinuation(d.input[end]) {
		d.consumeKeywordBoundary(start)
		d.fail(token.ErrUnexpectedToken)
		return
	}
	d.set(kw.code, start, end)
	d.pos = end
}

// consumeKeywordBoundary advances pos to the next non-keyword-like
// character so the sticky error's position reflects the offending run.
func (d *Decoder) consumeKeywordBoundary(from int) {
	i := from
	for i < len(d.input) && isKeywordContinuation(d.input[i]) {
		i++
	}
	d.pos = i
}

func isKeywordContinuation(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (d *Decoder) scanNumber() {
	start := d.pos
	isFloat := false

	if d.input[d.pos] == '-' {
		d.pos++
	}
	digitsStart := d.pos
	for d.pos < len(d.input) && isDigit(d.input[d.pos]) {
		d.pos++
	}
	if d.pos == digitsStart {
		// truncated mid-number (lone '-') or malformed: distinguish by
		// whether we ran off the end of input.
		if d.pos >= len(d.input) {
			d.set(token.End, start, start)
			return
		}
		d.fail(token.ErrUnexpectedToken)
		return
	}

	if d.pos < len(d.input) && d.input[d.pos] == '.' {
		isFloat = true
		d.pos++
		fracStart := d.pos
		for d.pos < len(d.input) && isDigit(d.input[d.pos]) {
			d.pos++
		}
		if d.pos == fracStart {
			if d.pos >= len(d.input) {
				d.set(token.End, start, start)
				return
			}
			d.fail(token.ErrUnexpectedToken)
			return
		}
	}

	if d.pos < len(d.input) && (d.input[d.pos] == 'e' || d.input[d.pos] == 'E') {
		isFloat = true
		expMark := d.pos
		d.pos++
		if d.pos < len(d.input) && (d.input[d.pos] == '+' || d.input[d.pos] == '-') {
			d.pos++
		}
		expDigitsStart := d.pos
		for d.pos < len(d.input) && isDigit(d.input[d.pos]) {
			d.pos++
		}
		if d.pos == expDigitsStart {
			if d.pos >= len(d.input) {
				// Truncated exponent: "1e" with nothing following is
				// truncation, not a syntax error.
				d.set(token.End, start, expMark)
				d.pos = expMark
				return
			}
			d.fail(token.ErrUnexpectedToken)
			return
		}
	}

	code := token.Integer
	if isFloat {
		code = token.Floating
	}
	d.set(code, start, d.pos)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (d *Decoder) scanString() {
	start := d.pos
	d.pos++ // opening quote
	for {
		if d.pos >= len(d.input) {
			d.set(token.End, start, start)
			return
		}
		c := d.input[d.pos]
		switch {
		case c == '"':
			d.pos++
			d.set(token.String, start, d.pos)
			return
		case c == '\\':
			d.pos++
			if !d.skipEscape() {
				return
			}
		case c < 0x20:
			d.fail(token.ErrUnexpectedToken)
			return
		case c < 0x80:
			d.pos++
		default:
			if !d.skipUTF8Continuation(c) {
				return
			}
		}
	}
}

func (d *Decoder) skipEscape() bool {
	if d.pos >= len(d.input) {
		d.set(token.End, d.pos, d.pos)
		return false
	}
	c := d.input[d.pos]
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		d.pos++
		return true
	case 'u':
		d.pos++
		for i := 0; i < 4; i++ {
			if d.pos >= len(d.input) {
				d.set(token.End, d.pos, d.pos)
				return false
			}
			if !isHexDigit(d.input[d.pos]) {
				d.fail(token.ErrUnexpectedToken)
				return false
			}
			d.pos++
		}
		return true
	default:
		d.fail(token.ErrUnexpectedToken)
		return false
	}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// skipUTF8Continuation validates that a multi-byte UTF-8 sequence starting
// at d.pos has well-formed continuation bytes (10xxxxxx). It does not
// decode the code point, only validates shape.
func (d *Decoder) skipUTF8Continuation(lead byte) bool {
	var n int
	switch {
	case lead&0xE0 == 0xC0:
		n = 1
	case lead&0xF0 == 0xE0:
		n = 2
	case lead&0xF8 == 0xF0:
		n = 3
	default:
		d.fail(token.ErrUnexpectedToken)
		return false
	}
	start := d.pos
	d.pos++
	for i := 0; i < n; i++ {
		if d.pos >= len(d.input) {
			d.set(token.End, start, start)
			return false
		}
		if d.input[d.pos]&0xC0 != 0x80 {
			d.fail(token.ErrUnexpectedToken)
			return false
		}
		d.pos++
	}
	return true
}

// --- value conversion ---

// Int64 converts the current Integer literal to a signed integer of the
// given bit width, detecting sign-vs-unsigned-target misuse only via
// Uint64. Fails with ErrIncompatibleType if the current code isn't
// Integer.
func (d *Decoder) Int64(bitSize int) (int64, error) {
	if d.code != token.Integer {
		return 0, token.ErrIncompatibleType
	}
	v, err := numeric.ParseSignedDecimal(d.Literal(), bitSize)
	if err != nil {
		d.fail(err.(token.Code))
	}
	return v, err
}

// Uint64 converts the current Integer literal to an unsigned integer of
// the given bit width. A literal with a leading '-' fails with
// ErrInvalidValue.
func (d *Decoder) Uint64(bitSize int) (uint64, error) {
	if d.code != token.Integer {
		return 0, token.ErrIncompatibleType
	}
	v, err := numeric.ParseUnsignedDecimal(d.Literal(), bitSize)
	if err != nil {
		d.fail(err.(token.Code))
	}
	return v, err
}

// Float64 converts the current Floating (or Integer, widened) literal to
// a float of the given precision.
func (d *Decoder) Float64(bitSize int) (float64, error) {
	if d.code != token.Floating && d.code != token.Integer {
		return 0, token.ErrIncompatibleType
	}
	v, err := numeric.ParseFloat(d.Literal(), bitSize)
	if err != nil {
		d.fail(err.(token.Code))
	}
	return v, err
}

// Str unescapes the current String literal, stripping the enclosing
// quotes and expanding \uXXXX into 1-3 UTF-8 bytes. Surrogate pairs are
// not composed: a \uD8XX\uDCXX pair decodes as two independent escapes,
// which can produce an invalid 3-byte sequence for each half. This is a
// known, accepted limitation rather than a silently "fixed" behavior.
func (d *Decoder) Str() (string, error) {
	if d.code != token.String {
		return "", token.ErrIncompatibleType
	}
	lit := d.Literal()
	body := lit[1 : len(lit)-1] // strip quotes
	out := make([]byte, 0, len(body))

	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		i++
		switch body[i] {
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		case '/':
			out = append(out, '/')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			r := decodeHex4(body[i+1 : i+5])
			out = appendRuneAsUTF8(out, r)
			i += 4
		}
		i++
	}
	return string(out), nil
}

func decodeHex4(h []byte) rune {
	var r rune
	for _, c := range h {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		}
	}
	return r
}

// appendRuneAsUTF8 expands r by explicit byte width rather than using
// unicode/utf8.AppendRune: that stdlib helper would reject or remap a lone
// surrogate half, where this does a byte-for-byte mechanical expansion
// even when r is a surrogate half.
func appendRuneAsUTF8(out []byte, r rune) []byte {
	switch {
	case r <= 0x7F:
		return append(out, byte(r))
	case r <= 0x7FF:
		return append(out, byte(0xC0|r>>6), byte(0x80|r&0x3F))
	default:
		return append(out, byte(0xE0|r>>12), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
	}
}
