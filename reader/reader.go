// Package reader implements a tree-aware pull reader layered on top of any
// token.Decoder: it tracks open scopes, rejects unbalanced closers and
// mis-typed object keys, and exposes the current nesting depth.
//
// The state machine is a stack of open containers plus a per-scope
// "what comes next" flag, in the same mark/push/pop style a stack-machine
// decoder uses to track nested structure, generalized here to validate
// structure rather than build a value.
package reader

import "github.com/trialgo/protocol/token"

type scopeKind int

const (
	scopeArray scopeKind = iota
	scopeObject
	scopeRecord
	scopeAssocArray
)

// expectation tracks, for object/assoc_array scopes, whether the next
// value slot is a key (must be a string token) or a value (anything).
type expectation int

const (
	expectAny expectation = iota
	expectKey
	expectValue
)

type scope struct {
	kind   scopeKind
	expect expectation
}

// Reader wraps a token.Decoder and layers structural invariants on top of
// it: level tracking, begin/end balance, and object key/value alternation.
type Reader struct {
	dec     token.Decoder
	config  *Config
	stack   []scope
	err     *token.Error
	pos     int
	started bool

	// pending is the scope opened by the begin token currently surfaced,
	// not yet pushed: Level() increments only after a begin_* is surfaced,
	// mirroring how an end_* decrements before its closer is surfaced, so
	// both brackets report the same depth as their siblings.
	pending    scope
	hasPending bool
}

// Config allows to tune Reader.
type Config struct {
	// MaxDepth, if > 0, bounds the open-scope depth: a begin token that
	// would nest deeper fails with ErrOverflow rather than growing the
	// scope stack without limit.
	MaxDepth int
}

// New wraps dec. The first token is whatever dec already pre-read at
// construction (per token.Decoder's contract).
func New(dec token.Decoder) *Reader {
	return NewWithConfig(dec, &Config{})
}

// NewWithConfig is similar to New, but allows specifying reader configuration.
func NewWithConfig(dec token.Decoder, config *Config) *Reader {
	return &Reader{dec: dec, config: config}
}

// Level reports the current open-scope depth. A begin_* token's level
// increments only after it is surfaced, and an end_*'s decrements before
// it is surfaced, so a closing bracket is reported at the same level as
// its siblings. A pretty-printer indenting by Level()-1 at a closing
// token relies on this.
func (r *Reader) Level() int { return len(r.stack) }

func (r *Reader) Code() token.Code     { return r.dec.Code() }
func (r *Reader) Literal() []byte      { return r.dec.Literal() }
func (r *Reader) Symbol() token.Symbol { return r.dec.Code().Symbol() }

// Int64, Uint64, Float64 and Str convert the current token's literal to a
// typed value, delegating to the underlying decoder.
func (r *Reader) Int64(bitSize int) (int64, error)     { return r.dec.Int64(bitSize) }
func (r *Reader) Uint64(bitSize int) (uint64, error)   { return r.dec.Uint64(bitSize) }
func (r *Reader) Float64(bitSize int) (float64, error) { return r.dec.Float64(bitSize) }
func (r *Reader) Str() (string, error)                 { return r.dec.Str() }

// Err returns the sticky structural error, if any, set by a prior Next.
func (r *Reader) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

func (r *Reader) fail(code token.Code, context string) bool {
	r.err = token.NewError(code, r.pos, context)
	return false
}

// Next advances to the next structural position, skipping separators (they
// are never surfaced as user tokens), validating balance and key/value
// alternation along the way. It returns false at End or on error; callers
// distinguish the two via Err().
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if r.hasPending {
		r.stack = append(r.stack, r.pending)
		r.hasPending = false
	}

	code := r.advanceSkippingSeparators()
	if code.IsError() {
		return r.fail(code, "decoder error")
	}

	switch code {
	case token.End:
		if len(r.stack) > 0 {
			return r.fail(endOfInputErrorFor(r.stack[len(r.stack)-1].kind), "unclosed scope at end of input")
		}
		return false

	case token.EndArray, token.EndObject, token.EndRecord, token.EndAssocArray:
		if len(r.stack) == 0 {
			return r.fail(unbalancedErrorFor(code), "closer with no open scope")
		}
		top := r.stack[len(r.stack)-1]
		if !closerMatches(top.kind, code) {
			return r.fail(unbalancedErrorFor(code), "closer does not match innermost open scope")
		}
		if top.expect == expectValue {
			return r.fail(token.ErrInvalidValue, "scope closed with a key still awaiting its value")
		}
		r.stack = r.stack[:len(r.stack)-1]
		r.afterValue()
		return true

	case token.BeginArray, token.BeginObject, token.BeginRecord, token.BeginAssocArray:
		if !r.beforeValue(code) {
			return false
		}
		if r.config.MaxDepth > 0 && len(r.stack) >= r.config.MaxDepth {
			return r.fail(token.ErrOverflow, "nesting deeper than configured maximum")
		}
		kind := kindFor(code)
		r.pending = scope{kind: kind, expect: initialExpectation(kind)}
		r.hasPending = true
		return true

	case token.String, token.String8, token.String16, token.String32, token.String64:
		if !r.beforeValue(code) {
			return false
		}
		r.afterValue()
		return true

	default:
		if len(r.stack) > 0 && r.stack[len(r.stack)-1].expect == expectKey {
			return r.fail(token.ErrInvalidKey, "non-string token in key position")
		}
		r.afterValue()
		return true
	}
}

// advanceSkippingSeparators produces the next non-separator code. The
// decoder pre-reads one token at construction, so the first call surfaces
// that pre-read token rather than advancing past it; every later call
// advances.
func (r *Reader) advanceSkippingSeparators() token.Code {
	if !r.started {
		r.started = true
		if code := r.dec.Code(); code != token.NameSeparator && code != token.ValueSeparator {
			return code
		}
	}
	for {
		code := r.dec.Next()
		if code != token.NameSeparator && code != token.ValueSeparator {
			return code
		}
	}
}

// beforeValue validates that a non-closer token arriving in a key
// position is a string (of any length-prefix width).
func (r *Reader) beforeValue(code token.Code) bool {
	if len(r.stack) == 0 {
		return true
	}
	top := &r.stack[len(r.stack)-1]
	if top.expect == expectKey && !isStringCode(code) {
		r.fail(token.ErrInvalidKey, "non-string token in key position")
		return false
	}
	return true
}

func isStringCode(c token.Code) bool {
	switch c {
	case token.String, token.String8, token.String16, token.String32, token.String64:
		return true
	default:
		return false
	}
}

// afterValue flips the innermost scope's key/value alternation flag once a
// complete value (scalar, string, or a just-closed nested scope) has been
// consumed.
func (r *Reader) afterValue() {
	if len(r.stack) == 0 {
		return
	}
	top := &r.stack[len(r.stack)-1]
	switch top.kind {
	case scopeObject, scopeAssocArray:
		if top.expect == expectKey {
			top.expect = expectValue
		} else {
			top.expect = expectKey
		}
	}
}

// initialExpectation seeds a freshly-opened scope: inside an object or
// assoc_array the first token of each pair must be a key.
func initialExpectation(kind scopeKind) expectation {
	if kind == scopeObject || kind == scopeAssocArray {
		return expectKey
	}
	return expectAny
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

func closerMatches(kind scopeKind, closer token.Code) bool {
	switch kind {
	case scopeArray:
		return closer == token.EndArray
	case scopeObject:
		return closer == token.EndObject
	case scopeRecord:
		return closer == token.EndRecord
	default:
		return closer == token.EndAssocArray
	}
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

func endOfInputErrorFor(kind scopeKind) token.Code {
	switch kind {
	case scopeArray:
		return token.ErrExpectedEndArray
	case scopeObject:
		return token.ErrExpectedEndObject
	case scopeRecord:
		return token.ErrExpectedEndRecord
	default:
		return token.ErrExpectedEndAssocArray
	}
}

// NextExpect advances and reports whether the resulting token is exactly
// expected. A mismatch is a sticky structural error like any other: callers
// that use NextExpect to drive a known shape (an envelope header, a fixed
// record layout) are expected to discard the reader on a false return
// rather than resume it with a different expectation.
//
// Running out of input with expected's scope still open is itself a
// mismatch, not the scope-specific balance error Next reports to an
// ordinary caller: a caller that named the closer it wanted never gets to
// compare it against anything, so that case is folded into the same
// unexpected_token identity as any other wrong token.
func (r *Reader) NextExpect(expected token.Code) bool {
	if !r.Next() {
		if r.err != nil && isUnclosedScopeAtEOF(r.err.Code) {
			r.err = token.NewError(token.ErrUnexpectedToken, r.err.Pos, "input ended before expected token")
		}
		return false
	}
	if r.Code() != expected {
		return r.fail(token.ErrUnexpectedToken, "token does not match expected code")
	}
	return true
}

// isUnclosedScopeAtEOF reports whether code is one of the scope-specific
// errors endOfInputErrorFor produces when Next hits End with an open scope.
func isUnclosedScopeAtEOF(code token.Code) bool {
	switch code {
	case token.ErrExpectedEndArray, token.ErrExpectedEndObject, token.ErrExpectedEndRecord, token.ErrExpectedEndAssocArray:
		return true
	default:
		return false
	}
}
