// Package writer implements a tree-aware push writer layered on top of any
// token.Encoder: it tracks open scopes, rejects unbalanced End calls and
// non-string keys, and inserts separators automatically between sibling
// values and between a key and its value.
package writer

import "github.com/trialgo/protocol/token"

type scopeKind int

const (
	scopeArray scopeKind = iota
	scopeObject
	scopeRecord
	scopeAssocArray
)

// expectation tracks, for object/assoc_array scopes, whether the next
// value offered is a key (must be a string) or a value (anything), and
// whether a separator is due before the next thing written.
type expectation int

const (
	expectAny expectation = iota
	expectKey
	expectValue
)

type scope struct {
	kind    scopeKind
	expect  expectation
	started bool // at least one child already written, so a separator is due
}

// Writer wraps a token.Encoder and layers structural invariants on top of
// it: begin/end balance, object key/value alternation, and automatic
// separator placement.
type Writer struct {
	enc    token.Encoder
	config *Config
	stack  []scope
	err    *token.Error
	pos    int
}

// Config allows to tune Writer.
type Config struct {
	// MaxDepth, if > 0, bounds the open-scope depth: a Begin that would
	// nest deeper fails with ErrOverflow before any bytes are written.
	MaxDepth int
}

// New wraps enc.
func New(enc token.Encoder) *Writer {
	return NewWithConfig(enc, &Config{})
}

// NewWithConfig is similar to New, but allows specifying writer configuration.
func NewWithConfig(enc token.Encoder, config *Config) *Writer {
	return &Writer{enc: enc, config: config}
}

// Level reports the current open-scope depth.
func (w *Writer) Level() int { return len(w.stack) }

// Err returns the sticky structural error, if any.
func (w *Writer) Err() error {
	if w.err == nil {
		return nil
	}
	return w.err
}

func (w *Writer) fail(code token.Code, context string) error {
	if w.err == nil {
		w.err = token.NewError(code, w.pos, context)
	}
	return w.err
}

// beforeChild validates key/value alternation and emits the separator due
// before the next child of the current scope, for any kind of child:
// scalar, string, or a nested begin.
func (w *Writer) beforeChild(asKey bool) error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) == 0 {
		return nil
	}
	top := &w.stack[len(w.stack)-1]
	if top.expect == expectKey && !asKey {
		return w.fail(token.ErrInvalidKey, "non-string value offered in key position")
	}
	if top.started {
		sep := token.ValueSeparator
		if top.kind == scopeObject || top.kind == scopeAssocArray {
			if top.expect == expectValue {
				sep = token.NameSeparator
			}
		}
		if err := w.enc.WriteSeparator(sep); err != nil {
			return w.fail(token.ErrIO, "writing separator")
		}
	}
	top.started = true
	return nil
}

// afterChild flips the innermost scope's key/value alternation flag once a
// complete child has been written.
func (w *Writer) afterChild() {
	if len(w.stack) == 0 {
		return
	}
	top := &w.stack[len(w.stack)-1]
	switch top.kind {
	case scopeObject, scopeAssocArray:
		if top.expect == expectKey {
			top.expect = expectValue
		} else {
			top.expect = expectKey
		}
	}
}

func kindFor(beginCode token.Code) scopeKind {
	switch beginCode {
	case token.BeginArray:
		return scopeArray
	case token.BeginObject:
		return scopeObject
	case token.BeginRecord:
		return scopeRecord
	default:
		return scopeAssocArray
	}
}

func endCodeFor(kind scopeKind) token.Code {
	switch kind {
	case scopeArray:
		return token.EndArray
	case scopeObject:
		return token.EndObject
	case scopeRecord:
		return token.EndRecord
	default:
		return token.EndAssocArray
	}
}

// Begin opens a new array/object/record/assoc_array scope.
func (w *Writer) Begin(c token.Code) error {
	if w.err == nil && w.config.MaxDepth > 0 && len(w.stack) >= w.config.MaxDepth {
		return w.fail(token.ErrOverflow, "nesting deeper than configured maximum")
	}
	if err := w.beforeChild(false); err != nil {
		return err
	}
	if err := w.enc.WriteBegin(c); err != nil {
		return w.fail(token.ErrIO, "writing begin token")
	}
	kind := kindFor(c)
	w.stack = append(w.stack, scope{kind: kind, expect: initialExpectation(kind)})
	return nil
}

// initialExpectation seeds a freshly-opened scope: inside an object or
// assoc_array the first child of each pair must be a key.
func initialExpectation(kind scopeKind) expectation {
	if kind == scopeObject || kind == scopeAssocArray {
		return expectKey
	}
	return expectAny
}

// End closes the innermost open scope. It fails with ErrUnbalancedEndArray
// or ErrUnbalancedEndObject if there is no open scope or the requested
// close doesn't match the innermost one, and with ErrInvalidValue if an
// object/assoc_array scope is closed mid-pair (a key was written without
// its value).
func (w *Writer) End(c token.Code) error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) == 0 {
		return w.fail(unbalancedErrorFor(c), "end with no open scope")
	}
	top := w.stack[len(w.stack)-1]
	if endCodeFor(top.kind) != c {
		return w.fail(unbalancedErrorFor(c), "end does not match innermost open scope")
	}
	if (top.kind == scopeObject || top.kind == scopeAssocArray) && top.expect == expectValue {
		return w.fail(token.ErrInvalidValue, "scope closed with a key missing its value")
	}
	if err := w.enc.WriteEnd(c); err != nil {
		return w.fail(token.ErrIO, "writing end token")
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.afterChild()
	return nil
}

func unbalancedErrorFor(closer token.Code) token.Code {
	switch closer {
	case token.EndArray:
		return token.ErrUnbalancedEndArray
	case token.EndObject, token.EndRecord, token.EndAssocArray:
		return token.ErrUnbalancedEndObject
	default:
		return token.ErrUnexpectedToken
	}
}

// Null writes a null scalar.
func (w *Writer) Null() error {
	if err := w.beforeChild(false); err != nil {
		return err
	}
	if err := w.enc.WriteNull(); err != nil {
		return w.fail(token.ErrIO, "writing null")
	}
	w.afterChild()
	return nil
}

// Bool writes a boolean scalar.
func (w *Writer) Bool(v bool) error {
	if err := w.beforeChild(false); err != nil {
		return err
	}
	if err := w.enc.WriteBool(v); err != nil {
		return w.fail(token.ErrIO, "writing bool")
	}
	w.afterChild()
	return nil
}

// Int64 writes a signed integer scalar.
func (w *Writer) Int64(v int64) error {
	if err := w.beforeChild(false); err != nil {
		return err
	}
	if err := w.enc.WriteInt64(v); err != nil {
		return w.fail(token.ErrIO, "writing int")
	}
	w.afterChild()
	return nil
}

// Uint64 writes an unsigned integer scalar.
func (w *Writer) Uint64(v uint64) error {
	if err := w.beforeChild(false); err != nil {
		return err
	}
	if err := w.enc.WriteUint64(v); err != nil {
		return w.fail(token.ErrIO, "writing uint")
	}
	w.afterChild()
	return nil
}

// Float64 writes a floating-point scalar at the given bit size (32 or 64).
func (w *Writer) Float64(v float64, bitSize int) error {
	if err := w.beforeChild(false); err != nil {
		return err
	}
	if err := w.enc.WriteFloat64(v, bitSize); err != nil {
		return w.fail(token.ErrIO, "writing float")
	}
	w.afterChild()
	return nil
}

// String writes a string scalar. It is the only value accepted while the
// innermost scope expects a key.
func (w *Writer) String(s string) error {
	if err := w.beforeChild(true); err != nil {
		return err
	}
	if err := w.enc.WriteString(s); err != nil {
		return w.fail(token.ErrIO, "writing string")
	}
	w.afterChild()
	return nil
}
