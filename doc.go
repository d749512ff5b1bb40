// Package protocol is the facade over the token-oriented codec library: a
// JSON (RFC 7159) text format, a compact binary tagged format ("bintoken"),
// and the format-agnostic reader/writer pair that layers tree structure on
// top of either one.
//
// Use NewJSONReader or NewBintokenReader to pull tokens out of a byte
// slice with structural validation already applied:
//
//	r := protocol.NewJSONReader([]byte(`{"a":[1,2,3]}`))
//	for r.Next() {
//		switch r.Symbol() {
//		case token.SymbolData:
//			// r.Code(), r.Literal()
//		}
//	}
//	if err := r.Err(); err != nil {
//		// ...
//	}
//
// Use NewJSONWriter or NewBintokenWriter to push a value out the other
// direction:
//
//	w := protocol.NewJSONWriter(buffer.NewSlice(nil))
//	w.Begin(token.BeginObject)
//	w.String("a")
//	w.Int64(1)
//	w.End(token.EndObject)
//
// Package dynamic provides Variable, a tagged union that can hold any
// scalar or recursively any array/map of variables, along with
// dynamic.ReadVariable and dynamic.WriteVariable to move a whole value
// through a Reader or Writer regardless of which wire format backs it:
//
//	v, err := dynamic.ReadVariable(r)
//	err = dynamic.WriteVariable(w, v)
//
// A third wire format ("transenc") shares bintoken's structural design and
// is intentionally not implemented here.
package protocol

import (
	"github.com/trialgo/protocol/bintoken"
	"github.com/trialgo/protocol/buffer"
	"github.com/trialgo/protocol/json"
	"github.com/trialgo/protocol/reader"
	"github.com/trialgo/protocol/writer"
)

// NewJSONReader wraps input with a JSON decoder and a structural reader.
func NewJSONReader(input []byte) *reader.Reader {
	return reader.New(json.NewDecoder(input))
}

// NewBintokenReader wraps input with a bintoken decoder and a structural
// reader.
func NewBintokenReader(input []byte) *reader.Reader {
	return reader.New(bintoken.NewDecoder(input))
}

// NewJSONWriter wraps sink with a JSON encoder and a structural writer.
func NewJSONWriter(sink buffer.Sink) *writer.Writer {
	return writer.New(json.NewEncoder(sink))
}

// NewBintokenWriter wraps sink with a bintoken encoder and a structural
// writer.
func NewBintokenWriter(sink buffer.Sink) *writer.Writer {
	return writer.New(bintoken.NewEncoder(sink))
}
