package bintoken

import "github.com/trialgo/protocol/token"

// Tag-byte assignment for the reserved (non-inline) codes.
//
// Only two points of the inline-integer byte space are fixed by
// convention: 0x00 is a non-reserved inline zero, and 0xFF is the
// non-reserved inline -1. Everything else reserved packs into the single
// byte range [0xD4, 0xFF), 43 values (19 scalar/structural tags plus the
// 24 compact-array tags), which keeps 0xFF itself free for inline -1 and
// keeps the entire non-negative byte range [0x00, 0x7F] free for inline
// positive small ints.
const (
	tagNull byte = 0xD4 + iota
	tagTrue
	tagFalse
	tagInt8
	tagInt16
	tagInt32
	tagInt64
	tagFloat32
	tagFloat64
	tagString8
	tagString16
	tagString32
	tagString64
	tagBeginArray
	tagEndArray
	tagBeginRecord
	tagEndRecord
	tagBeginAssocArray
	tagEndAssocArray

	tagArrayBase // first of the 24 compact-array tags
)

const numCompactArrayTags = 4 * 6 // 4 length widths x 6 element kinds

var tagToCode = map[byte]token.Code{
	tagNull:            token.Null,
	tagTrue:            token.True,
	tagFalse:           token.False,
	tagInt8:            token.Int8,
	tagInt16:           token.Int16,
	tagInt32:           token.Int32,
	tagInt64:           token.Int64,
	tagFloat32:         token.Float32,
	tagFloat64:         token.Float64,
	tagString8:         token.String8,
	tagString16:        token.String16,
	tagString32:        token.String32,
	tagString64:        token.String64,
	tagBeginArray:      token.BeginArray,
	tagEndArray:        token.EndArray,
	tagBeginRecord:     token.BeginRecord,
	tagEndRecord:       token.EndRecord,
	tagBeginAssocArray: token.BeginAssocArray,
	tagEndAssocArray:   token.EndAssocArray,
}

var codeToTag = func() map[token.Code]byte {
	m := make(map[token.Code]byte, len(tagToCode))
	for tag, code := range tagToCode {
		m[code] = tag
	}
	return m
}()

// lengthWidthIndex maps a length-prefix bit width to its slot within the
// compact-array tag block.
func lengthWidthIndex(bits int) (int, bool) {
	switch bits {
	case 8:
		return 0, true
	case 16:
		return 1, true
	case 32:
		return 2, true
	case 64:
		return 3, true
	default:
		return 0, false
	}
}

var lengthWidthBits = [4]int{8, 16, 32, 64}

// arrayTag returns the reserved byte for a compact array of the given
// length-prefix width and element kind.
func arrayTag(lengthBits int, elem token.ElemKind) (byte, bool) {
	widthIdx, ok := lengthWidthIndex(lengthBits)
	if !ok || elem < token.ElemInt8 || elem > token.ElemFloat64 {
		return 0, false
	}
	return tagArrayBase + byte(widthIdx*6+int(elem)), true
}

// isReserved reports whether b is one of the reserved tag bytes (as
// opposed to an inline small integer).
func isReserved(b byte) bool {
	if b >= tagArrayBase && int(b)-int(tagArrayBase) < numCompactArrayTags {
		return true
	}
	_, ok := tagToCode[b]
	return ok
}

// decodeArrayTag is the inverse of arrayTag.
func decodeArrayTag(b byte) (lengthBits int, elem token.ElemKind, ok bool) {
	if b < tagArrayBase || int(b)-int(tagArrayBase) >= numCompactArrayTags {
		return 0, 0, false
	}
	idx := int(b - tagArrayBase)
	return lengthWidthBits[idx/6], token.ElemKind(idx % 6), true
}
