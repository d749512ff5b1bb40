// Package buffer implements a pluggable write-sink abstraction that an
// encoder writes through: grow(n) -> bool, write(byte), write(view). The
// growable in-memory adapter (Slice) is the default; Fixed, StringBuilder
// and Writer adapt other output destinations to the same contract.
package buffer

import (
	"io"
	"strings"
)

// Sink is the capability set an encoder needs from its output. Grow may
// refuse (return false) if capacity cannot be extended further; callers
// must check it and signal the failure upward rather than writing
// anyway: a grow failure must be observed before any byte of the token is
// written, so that a writer never emits a partial token.
type Sink interface {
	Grow(delta int) bool
	WriteByte(b byte) error
	Write(p []byte) (int, error)
}

// Slice is the default Sink: an amortized-growth contiguous byte buffer
// with capacity doubling.
type Slice struct {
	data []byte
}

// NewSlice returns a Sink backed by a growable []byte, optionally starting
// from an existing buffer (which is reused, not copied).
func NewSlice(initial []byte) *Slice {
	return &Slice{data: initial}
}

func (s *Slice) Grow(delta int) bool {
	need := len(s.data) + delta
	if cap(s.data) >= need {
		return true
	}
	grown := make([]byte, len(s.data), nextCap(cap(s.data), need))
	copy(grown, s.data)
	s.data = grown
	return true
}

func (s *Slice) WriteByte(b byte) error {
	s.Grow(1)
	s.data = append(s.data, b)
	return nil
}

func (s *Slice) Write(p []byte) (int, error) {
	s.Grow(len(p))
	s.data = append(s.data, p...)
	return len(p), nil
}

// Bytes returns the accumulated contents. The returned slice aliases the
// Slice's internal storage.
func (s *Slice) Bytes() []byte { return s.data }

func nextCap(have, need int) int {
	if have == 0 {
		have = 16
	}
	for have < need {
		have *= 2
	}
	return have
}

// Fixed is a Sink over a caller-supplied fixed-capacity array: Grow
// refuses once the array is exhausted.
type Fixed struct {
	data []byte
	len  int
}

// NewFixed returns a Sink that writes into data (by reference) and never
// grows past len(data).
func NewFixed(data []byte) *Fixed {
	return &Fixed{data: data}
}

func (f *Fixed) Grow(delta int) bool {
	return f.len+delta <= len(f.data)
}

func (f *Fixed) WriteByte(b byte) error {
	if !f.Grow(1) {
		return io.ErrShortBuffer
	}
	f.data[f.len] = b
	f.len++
	return nil
}

func (f *Fixed) Write(p []byte) (int, error) {
	if !f.Grow(len(p)) {
		return 0, io.ErrShortBuffer
	}
	n := copy(f.data[f.len:], p)
	f.len += n
	return n, nil
}

// Bytes returns the portion of the backing array written so far.
func (f *Fixed) Bytes() []byte { return f.data[:f.len] }

// StringBuilder is a Sink over a *strings.Builder, for callers assembling
// JSON text directly into a string-oriented container.
type StringBuilder struct {
	b *strings.Builder
}

// NewStringBuilder wraps b. Grow always succeeds: strings.Builder grows
// without a hard ceiling.
func NewStringBuilder(b *strings.Builder) *StringBuilder {
	return &StringBuilder{b: b}
}

func (s *StringBuilder) Grow(delta int) bool {
	s.b.Grow(delta)
	return true
}

func (s *StringBuilder) WriteByte(b byte) error {
	return s.b.WriteByte(b)
}

func (s *StringBuilder) Write(p []byte) (int, error) {
	return s.b.Write(p)
}

// Writer is a Sink over an io.Writer: grow always succeeds since nothing
// is pre-sized, and every write is forwarded immediately.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w as a Sink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (s *Writer) Grow(delta int) bool { return true }

func (s *Writer) WriteByte(b byte) error {
	_, err := s.w.Write([]byte{b})
	return err
}

func (s *Writer) Write(p []byte) (int, error) {
	return s.w.Write(p)
}
