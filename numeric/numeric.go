// Package numeric implements the width-parameterized integer and float
// conversions shared by the json and bintoken decoders: parsing a decimal
// literal into a target bit width with overflow detection, and formatting
// values back out.
//
// Parsing delegates to strconv, whose range checking is exact at every
// width, rather than accumulating digits with a wrap check that can admit
// boundary values at the widest unsigned width.
package numeric

import (
	"math"
	"strconv"

	"github.com/trialgo/protocol/token"
)

// SignedBounds returns the inclusive [min, max] range representable by a
// signed integer of the given bit width (8, 16, 32, or 64).
func SignedBounds(bitSize int) (min, max int64) {
	switch bitSize {
	case 8:
		return math.MinInt8, math.MaxInt8
	case 16:
		return math.MinInt16, math.MaxInt16
	case 32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

// UnsignedBounds returns the inclusive [0, max] range representable by an
// unsigned integer of the given bit width.
func UnsignedBounds(bitSize int) (max uint64) {
	switch bitSize {
	case 8:
		return math.MaxUint8
	case 16:
		return math.MaxUint16
	case 32:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}

// ParseSignedDecimal parses an optionally '-'-prefixed decimal literal
// (as produced by a JSON "integer" literal) into an int64, enforcing that
// the mathematical result fits bitSize bits.
func ParseSignedDecimal(lit []byte, bitSize int) (int64, error) {
	v, err := strconv.ParseInt(string(lit), 10, bitSize)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, token.ErrOverflow
		}
		return 0, token.ErrInvalidValue
	}
	return v, nil
}

// ParseUnsignedDecimal parses a decimal literal (no sign) into a uint64,
// enforcing that the result fits bitSize bits. A leading '-' is rejected
// with ErrInvalidValue.
func ParseUnsignedDecimal(lit []byte, bitSize int) (uint64, error) {
	if len(lit) > 0 && lit[0] == '-' {
		return 0, token.ErrInvalidValue
	}
	v, err := strconv.ParseUint(string(lit), 10, bitSize)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, token.ErrOverflow
		}
		return 0, token.ErrInvalidValue
	}
	return v, nil
}

// ParseFloat parses a JSON floating-point literal (digits, optional
// fraction, optional exponent) at the given precision.
func ParseFloat(lit []byte, bitSize int) (float64, error) {
	v, err := strconv.ParseFloat(string(lit), bitSize)
	if err != nil {
		return 0, token.ErrInvalidValue
	}
	return v, nil
}

// FormatFloat renders v using the shortest decimal that round-trips back
// to the same binary value under round-to-nearest-even.
func FormatFloat(v float64, bitSize int) string {
	return strconv.FormatFloat(v, 'g', -1, bitSize)
}

// NarrowestSignedWidth reports the smallest of {8, 16, 32, 64} bit widths
// whose signed range covers v. Whether a width-8 value can further be
// folded into an inline small-int byte, as opposed to an explicit int8
// tag, depends on reserved code bytes the bintoken package owns, so that
// decision is made there, not here.
func NarrowestSignedWidth(v int64) int {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return 8
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return 16
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return 32
	default:
		return 64
	}
}

// NarrowestLengthTag reports the smallest length-prefix width (8/16/32/64
// bits) that can encode a string/array payload of n bytes. Length prefixes
// are read back as two's-complement signed values, so each width holds at
// most its signed maximum (127 for 8 bits).
func NarrowestLengthTag(n int) int {
	switch {
	case n <= math.MaxInt8:
		return 8
	case n <= math.MaxInt16:
		return 16
	case n <= math.MaxInt32:
		return 32
	default:
		return 64
	}
}
