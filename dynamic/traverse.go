package dynamic

import (
	"github.com/trialgo/protocol/reader"
	"github.com/trialgo/protocol/token"
	"github.com/trialgo/protocol/writer"
)

// ReadVariable reads one complete value starting at r's current position
// and leaves r positioned at the token immediately following it: the next
// sibling, the parent's closer, or end of input. It is the reader-side
// half of the variable's archive-orthogonal traversal: produced by either
// a json.Decoder or a bintoken.Decoder through the same reader.Reader.
func ReadVariable(r *reader.Reader) (Variable, error) {
	switch r.Symbol() {
	case token.SymbolBeginScope:
		return readContainer(r)
	case token.SymbolData:
		return readScalar(r)
	default:
		return Variable{}, token.NewError(token.ErrUnexpectedToken, 0, "expected a value")
	}
}

func readScalar(r *reader.Reader) (Variable, error) {
	var v Variable
	switch r.Code() {
	case token.Null:
		v = Null()
	case token.True:
		v = Bool(true)
	case token.False:
		v = Bool(false)
	case token.Integer:
		n, err := r.Int64(64)
		if err != nil {
			return Variable{}, err
		}
		v = Int64(n)
	case token.Floating:
		f, err := r.Float64(64)
		if err != nil {
			return Variable{}, err
		}
		v = Float64(f)
	case token.String:
		s, err := r.Str()
		if err != nil {
			return Variable{}, err
		}
		v = String(s)
	case token.Int8:
		n, err := r.Int64(8)
		if err != nil {
			return Variable{}, err
		}
		v = Int8(int8(n))
	case token.Int16:
		n, err := r.Int64(16)
		if err != nil {
			return Variable{}, err
		}
		v = Int16(int16(n))
	case token.Int32:
		n, err := r.Int64(32)
		if err != nil {
			return Variable{}, err
		}
		v = Int32(int32(n))
	case token.Int64:
		n, err := r.Int64(64)
		if err != nil {
			return Variable{}, err
		}
		v = Int64(n)
	case token.Float32:
		f, err := r.Float64(32)
		if err != nil {
			return Variable{}, err
		}
		v = Float32(float32(f))
	case token.Float64:
		f, err := r.Float64(64)
		if err != nil {
			return Variable{}, err
		}
		v = Float64(f)
	case token.String8, token.String16, token.String32, token.String64:
		s, err := r.Str()
		if err != nil {
			return Variable{}, err
		}
		v = String(s)
	default:
		return Variable{}, token.NewError(token.ErrIncompatibleType, 0, "not a scalar data token")
	}
	if !r.Next() {
		if err := r.Err(); err != nil {
			return Variable{}, err
		}
	}
	return v, nil
}

func readContainer(r *reader.Reader) (Variable, error) {
	switch r.Code() {
	case token.BeginArray:
		return readArray(r)
	default:
		return readMap(r)
	}
}

func readArray(r *reader.Reader) (Variable, error) {
	if !r.Next() {
		if err := r.Err(); err != nil {
			return Variable{}, err
		}
	}
	var elems []Variable
	for r.Code() != token.EndArray {
		if err := r.Err(); err != nil {
			return Variable{}, err
		}
		v, err := ReadVariable(r)
		if err != nil {
			return Variable{}, err
		}
		elems = append(elems, v)
	}
	if !r.Next() {
		if err := r.Err(); err != nil {
			return Variable{}, err
		}
	}
	return Array(elems), nil
}

func readMap(r *reader.Reader) (Variable, error) {
	endCode := endCodeForBegin(r.Code())
	if !r.Next() {
		if err := r.Err(); err != nil {
			return Variable{}, err
		}
	}
	m := NewMap()
	for r.Code() != endCode {
		if err := r.Err(); err != nil {
			return Variable{}, err
		}
		key, err := ReadVariable(r)
		if err != nil {
			return Variable{}, err
		}
		value, err := ReadVariable(r)
		if err != nil {
			return Variable{}, err
		}
		m.Set(key, value)
	}
	if !r.Next() {
		if err := r.Err(); err != nil {
			return Variable{}, err
		}
	}
	return MapValue(m), nil
}

func endCodeForBegin(c token.Code) token.Code {
	switch c {
	case token.BeginObject:
		return token.EndObject
	case token.BeginRecord:
		return token.EndRecord
	default:
		return token.EndAssocArray
	}
}

// WriteVariable writes v's full tree through w. This is the writer-side
// half of the traversal: the same Variable can drive a json.Encoder or a
// bintoken.Encoder through the identical call sequence.
func WriteVariable(w *writer.Writer, v Variable) error {
	switch v.tag {
	case TagNull:
		return w.Null()
	case TagBool:
		return w.Bool(v.b)
	case TagInt8, TagInt16, TagInt32, TagInt64:
		return w.Int64(v.i64)
	case TagUint8, TagUint16, TagUint32, TagUint64:
		return w.Uint64(v.u64)
	case TagFloat32:
		return w.Float64(float64(v.f32), 32)
	case TagFloat64:
		return w.Float64(v.f64, 64)
	case TagBigFloat:
		// The wire formats carry only IEEE float32/float64; a big.Float is
		// bridged through float64, which is lossy for precision beyond 53
		// bits. Carrying the full precision would need a bignum wire
		// representation neither format has.
		f, _ := v.big.Float64()
		return w.Float64(f, 64)
	case TagString:
		return w.String(v.str)
	case TagArray:
		if err := w.Begin(token.BeginArray); err != nil {
			return err
		}
		for _, elem := range v.arr {
			if err := WriteVariable(w, elem); err != nil {
				return err
			}
		}
		return w.End(token.EndArray)
	case TagMap:
		// A variable-keyed map is an assoc_array on the wire: bintoken has a
		// dedicated tag pair for it, and the JSON encoder renders the same
		// markers as an object.
		if err := w.Begin(token.BeginAssocArray); err != nil {
			return err
		}
		var werr error
		v.m.Iter(func(key, value Variable) bool {
			if err := WriteVariable(w, key); err != nil {
				werr = err
				return false
			}
			if err := WriteVariable(w, value); err != nil {
				werr = err
				return false
			}
			return true
		})
		if werr != nil {
			return werr
		}
		return w.End(token.EndAssocArray)
	default:
		return token.NewError(token.ErrUnexpectedToken, 0, "unreachable variable tag")
	}
}
