package dynamic

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingVisitor implements Visitor and records which branch fired.
type recordingVisitor struct {
	branch string
}

func (r *recordingVisitor) VisitNull()               { r.branch = "null" }
func (r *recordingVisitor) VisitBool(v bool)          { r.branch = "bool" }
func (r *recordingVisitor) VisitInt8(v int8)          { r.branch = "int8" }
func (r *recordingVisitor) VisitInt16(v int16)        { r.branch = "int16" }
func (r *recordingVisitor) VisitInt32(v int32)        { r.branch = "int32" }
func (r *recordingVisitor) VisitInt64(v int64)        { r.branch = "int64" }
func (r *recordingVisitor) VisitUint8(v uint8)        { r.branch = "uint8" }
func (r *recordingVisitor) VisitUint16(v uint16)      { r.branch = "uint16" }
func (r *recordingVisitor) VisitUint32(v uint32)      { r.branch = "uint32" }
func (r *recordingVisitor) VisitUint64(v uint64)      { r.branch = "uint64" }
func (r *recordingVisitor) VisitFloat32(v float32)    { r.branch = "float32" }
func (r *recordingVisitor) VisitFloat64(v float64)    { r.branch = "float64" }
func (r *recordingVisitor) VisitBigFloat(v *big.Float) { r.branch = "bigfloat" }
func (r *recordingVisitor) VisitString(v string)      { r.branch = "string" }
func (r *recordingVisitor) VisitArray(v []Variable)    { r.branch = "array" }
func (r *recordingVisitor) VisitMap(v *Map)            { r.branch = "map" }

func TestVisitDispatchesExactBranch(t *testing.T) {
	cases := []struct {
		v    Variable
		want string
	}{
		{Null(), "null"},
		{Bool(true), "bool"},
		{Int8(1), "int8"},
		{Int16(1), "int16"},
		{Int32(1), "int32"},
		{Int64(1), "int64"},
		{Uint8(1), "uint8"},
		{Uint16(1), "uint16"},
		{Uint32(1), "uint32"},
		{Uint64(1), "uint64"},
		{Float32(1), "float32"},
		{Float64(1), "float64"},
		{BigFloat(big.NewFloat(1)), "bigfloat"},
		{String("x"), "string"},
		{Array(nil), "array"},
		{MapValue(NewMap()), "map"},
	}
	for _, c := range cases {
		rv := &recordingVisitor{}
		Visit(rv, c.v)
		assert.Equal(t, c.want, rv.branch, "tag %v", c.v.Tag())
	}
}

// doublingVisitor implements MutatingVisitor, doubling numeric payloads and
// leaving everything else as-is.
type doublingVisitor struct{}

func (doublingVisitor) MutateNull() Variable            { return Null() }
func (doublingVisitor) MutateBool(v bool) Variable       { return Bool(v) }
func (doublingVisitor) MutateInt8(v int8) Variable       { return Int8(v * 2) }
func (doublingVisitor) MutateInt16(v int16) Variable     { return Int16(v * 2) }
func (doublingVisitor) MutateInt32(v int32) Variable     { return Int32(v * 2) }
func (doublingVisitor) MutateInt64(v int64) Variable     { return Int64(v * 2) }
func (doublingVisitor) MutateUint8(v uint8) Variable     { return Uint8(v * 2) }
func (doublingVisitor) MutateUint16(v uint16) Variable   { return Uint16(v * 2) }
func (doublingVisitor) MutateUint32(v uint32) Variable   { return Uint32(v * 2) }
func (doublingVisitor) MutateUint64(v uint64) Variable   { return Uint64(v * 2) }
func (doublingVisitor) MutateFloat32(v float32) Variable { return Float32(v * 2) }
func (doublingVisitor) MutateFloat64(v float64) Variable { return Float64(v * 2) }
func (doublingVisitor) MutateBigFloat(v *big.Float) Variable {
	return BigFloat(new(big.Float).Mul(v, big.NewFloat(2)))
}
func (doublingVisitor) MutateString(v string) Variable   { return String(v) }
func (doublingVisitor) MutateArray(v []Variable) Variable { return Array(v) }
func (doublingVisitor) MutateMap(v *Map) Variable         { return MapValue(v) }

func TestMutatingVisitReplacesValue(t *testing.T) {
	out := MutatingVisit(doublingVisitor{}, Int64(21))
	n, ok := out.AsInt64()
	assert.True(t, ok)
	assert.EqualValues(t, 42, n)
}
