package dynamic

import (
	"hash/maphash"
	"math"
	"strings"
)

// Compare implements canonical ordering: first by tag ordinal, then by a
// tag-specific rule (numeric compare for the integer/float alternatives,
// lexicographic for strings, element-wise for arrays, key-order then
// value for maps). It returns <0, 0, or >0 the way strings.Compare does.
func Compare(a, b Variable) int {
	if a.tag != b.tag {
		if a.tag < b.tag {
			return -1
		}
		return 1
	}
	switch a.tag {
	case TagNull:
		return 0
	case TagBool:
		return compareBool(a.b, b.b)
	case TagInt8, TagInt16, TagInt32, TagInt64:
		return compareInt64(a.i64, b.i64)
	case TagUint8, TagUint16, TagUint32, TagUint64:
		return compareUint64(a.u64, b.u64)
	case TagFloat32:
		return compareFloat64(float64(a.f32), float64(b.f32))
	case TagFloat64:
		return compareFloat64(a.f64, b.f64)
	case TagBigFloat:
		return a.big.Cmp(b.big)
	case TagString:
		return strings.Compare(a.str, b.str)
	case TagArray:
		return compareArray(a.arr, b.arr)
	case TagMap:
		return compareMap(a.m, b.m)
	}
	return 0
}

// Equal reports whether a and b are canonically equal.
func Equal(a, b Variable) bool { return Compare(a, b) == 0 }

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareFloat64 totally orders floats: NaN sorts before every other
// value, and all NaNs compare equal regardless of payload bits.
func compareFloat64(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareArray(a, b []Variable) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInt64(int64(len(a)), int64(len(b)))
}

// compareMap walks both maps in insertion order: the first index where
// either the key or the value differs decides the order, and if one map
// is a strict prefix of the other by that measure, the shorter one is
// ordered first.
func compareMap(a, b *Map) int {
	n := len(a.order)
	if len(b.order) < n {
		n = len(b.order)
	}
	for i := 0; i < n; i++ {
		ak, av := a.order[i], a.values[i]
		bk, bv := b.order[i], b.values[i]
		if c := Compare(ak, bk); c != 0 {
			return c
		}
		if c := Compare(av, bv); c != 0 {
			return c
		}
	}
	return compareInt64(int64(len(a.order)), int64(len(b.order)))
}

// hashSeed is process-global so that equal Variables hash equally across
// the lifetime of the process, matching maphash's own seed-per-process
// convention.
var hashSeed = maphash.MakeSeed()

// hashVariable returns a hash consistent with Equal: Equal(a,b) implies
// hashVariable(a) == hashVariable(b).
func hashVariable(seed maphash.Seed, v Variable) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	writeTag(&h, v.tag)
	switch v.tag {
	case TagNull:
	case TagBool:
		writeUint64(&h, boolToUint64(v.b))
	case TagInt8, TagInt16, TagInt32, TagInt64:
		writeUint64(&h, uint64(v.i64))
	case TagUint8, TagUint16, TagUint32, TagUint64:
		writeUint64(&h, v.u64)
	case TagFloat32:
		writeFloatBits(&h, float64(v.f32))
	case TagFloat64:
		writeFloatBits(&h, v.f64)
	case TagBigFloat:
		f, _ := v.big.Float64()
		writeFloatBits(&h, f)
	case TagString:
		h.WriteString(v.str)
	case TagArray:
		for _, elem := range v.arr {
			writeUint64(&h, hashVariable(seed, elem))
		}
	case TagMap:
		for i := range v.m.order {
			writeUint64(&h, hashVariable(seed, v.m.order[i]))
			writeUint64(&h, hashVariable(seed, v.m.values[i]))
		}
	}
	return h.Sum64()
}

func writeTag(h *maphash.Hash, t Tag) {
	writeUint64(h, uint64(t))
}

func writeUint64(h *maphash.Hash, u uint64) {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
	h.Write(b[:])
}

func writeFloatBits(h *maphash.Hash, f float64) {
	// +0/-0 compare equal and all NaNs compare equal, so both collapse to
	// one bit pattern before hashing.
	if f == 0 {
		f = 0
	} else if math.IsNaN(f) {
		f = math.NaN()
	}
	writeUint64(h, math.Float64bits(f))
}

func boolToUint64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
