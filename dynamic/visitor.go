package dynamic

import "math/big"

// Visitor receives the statically-typed payload of whichever alternative a
// Variable holds. All sixteen methods must be implemented; Visit dispatches
// exhaustively, so there is no default/fallback case to lean on.
type Visitor interface {
	VisitNull()
	VisitBool(v bool)
	VisitInt8(v int8)
	VisitInt16(v int16)
	VisitInt32(v int32)
	VisitInt64(v int64)
	VisitUint8(v uint8)
	VisitUint16(v uint16)
	VisitUint32(v uint32)
	VisitUint64(v uint64)
	VisitFloat32(v float32)
	VisitFloat64(v float64)
	VisitBigFloat(v *big.Float)
	VisitString(v string)
	VisitArray(v []Variable)
	VisitMap(v *Map)
}

// MutatingVisitor is Visitor's read-write counterpart: each method returns
// the Variable that should replace the visited one. MutatingVisit uses this
// to rebuild a value in place without the caller re-deriving its Tag.
type MutatingVisitor interface {
	MutateNull() Variable
	MutateBool(v bool) Variable
	MutateInt8(v int8) Variable
	MutateInt16(v int16) Variable
	MutateInt32(v int32) Variable
	MutateInt64(v int64) Variable
	MutateUint8(v uint8) Variable
	MutateUint16(v uint16) Variable
	MutateUint32(v uint32) Variable
	MutateUint64(v uint64) Variable
	MutateFloat32(v float32) Variable
	MutateFloat64(v float64) Variable
	MutateBigFloat(v *big.Float) Variable
	MutateString(v string) Variable
	MutateArray(v []Variable) Variable
	MutateMap(v *Map) Variable
}

// Visit dispatches vis against v's active alternative.
func Visit(vis Visitor, v Variable) {
	switch v.tag {
	case TagNull:
		vis.VisitNull()
	case TagBool:
		vis.VisitBool(v.b)
	case TagInt8:
		vis.VisitInt8(int8(v.i64))
	case TagInt16:
		vis.VisitInt16(int16(v.i64))
	case TagInt32:
		vis.VisitInt32(int32(v.i64))
	case TagInt64:
		vis.VisitInt64(v.i64)
	case TagUint8:
		vis.VisitUint8(uint8(v.u64))
	case TagUint16:
		vis.VisitUint16(uint16(v.u64))
	case TagUint32:
		vis.VisitUint32(uint32(v.u64))
	case TagUint64:
		vis.VisitUint64(v.u64)
	case TagFloat32:
		vis.VisitFloat32(v.f32)
	case TagFloat64:
		vis.VisitFloat64(v.f64)
	case TagBigFloat:
		vis.VisitBigFloat(v.big)
	case TagString:
		vis.VisitString(v.str)
	case TagArray:
		vis.VisitArray(v.arr)
	case TagMap:
		vis.VisitMap(v.m)
	default:
		panic("dynamic: Visit: unreachable tag " + v.tag.String())
	}
}

// MutatingVisit dispatches vis against v's active alternative and returns
// the replacement Variable it produces.
func MutatingVisit(vis MutatingVisitor, v Variable) Variable {
	switch v.tag {
	case TagNull:
		return vis.MutateNull()
	case TagBool:
		return vis.MutateBool(v.b)
	case TagInt8:
		return vis.MutateInt8(int8(v.i64))
	case TagInt16:
		return vis.MutateInt16(int16(v.i64))
	case TagInt32:
		return vis.MutateInt32(int32(v.i64))
	case TagInt64:
		return vis.MutateInt64(v.i64)
	case TagUint8:
		return vis.MutateUint8(uint8(v.u64))
	case TagUint16:
		return vis.MutateUint16(uint16(v.u64))
	case TagUint32:
		return vis.MutateUint32(uint32(v.u64))
	case TagUint64:
		return vis.MutateUint64(v.u64)
	case TagFloat32:
		return vis.MutateFloat32(v.f32)
	case TagFloat64:
		return vis.MutateFloat64(v.f64)
	case TagBigFloat:
		return vis.MutateBigFloat(v.big)
	case TagString:
		return vis.MutateString(v.str)
	case TagArray:
		return vis.MutateArray(v.arr)
	case TagMap:
		return vis.MutateMap(v.m)
	default:
		panic("dynamic: MutatingVisit: unreachable tag " + v.tag.String())
	}
}
