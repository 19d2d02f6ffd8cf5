package typesystem

import "math"

// Equal implements §4.4's structural equality: same tag, recursively
// equal payloads, same scalar metadata, same field names in order with
// equal types and equal explicit layout metadata. It never resolves
// Nominal references; typedef names are compared as strings.
func Equal(a, b Type) bool {
	if a.Tag() != b.Tag() {
		return false
	}

	switch av := a.(type) {
	case AnyKind, ScalarKind, SignedKind, UnsignedKind, RealKind, ComplexKind,
		FixedStringKind, FixedBytesKind,
		Void, Bool, Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64,
		Float16, Float32, Float64, Complex64, Complex128, String:
		return true

	case Typevar:
		return av.Name == b.(Typevar).Name

	case Nominal:
		return av.Name == b.(Nominal).Name

	case Char:
		return av.Encoding == b.(Char).Encoding

	case Bytes:
		return av.TargetAlign == b.(Bytes).TargetAlign

	case FixedString:
		bv := b.(FixedString)
		return av.Size == bv.Size && av.Encoding == bv.Encoding

	case FixedBytes:
		bv := b.(FixedBytes)
		return av.Size == bv.Size && av.Align == bv.Align

	case Pointer:
		return Equal(av.Inner, b.(Pointer).Inner)

	case Option:
		return Equal(av.Inner, b.(Option).Inner)

	case Constr:
		bv := b.(Constr)
		return av.Name == bv.Name && Equal(av.Inner, bv.Inner)

	case Tuple:
		bv := b.(Tuple)
		if av.Variadic != bv.Variadic || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if !equalTupleField(av.Fields[i], bv.Fields[i]) {
				return false
			}
		}
		return true

	case Record:
		bv := b.(Record)
		if av.Variadic != bv.Variadic || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if !equalRecordField(av.Fields[i], bv.Fields[i]) {
				return false
			}
		}
		return true

	case Function:
		bv := b.(Function)
		return Equal(av.Ret, bv.Ret) && Equal(av.Pos, bv.Pos) && Equal(av.Kwds, bv.Kwds)

	case Categorical:
		bv := b.(Categorical)
		if len(av.Values) != len(bv.Values) {
			return false
		}
		for i := range av.Values {
			if !typedValuesEqual(av.Values[i], bv.Values[i]) {
				return false
			}
		}
		return true

	case Array:
		bv := b.(Array)
		if av.Order != bv.Order || len(av.Dims) != len(bv.Dims) || !Equal(av.Dtype, bv.Dtype) {
			return false
		}
		for i := range av.Dims {
			if !EqualDim(av.Dims[i], bv.Dims[i]) {
				return false
			}
		}
		return true
	}

	return false
}

func equalTupleField(a, b TupleField) bool {
	return a.Offset == b.Offset && a.Align == b.Align && a.Pad == b.Pad && Equal(a.Type, b.Type)
}

func equalRecordField(a, b RecordField) bool {
	return a.Name == b.Name && a.Offset == b.Offset && a.Align == b.Align && a.Pad == b.Pad && Equal(a.Type, b.Type)
}

// EqualDim is Equal's counterpart for dimensions.
func EqualDim(a, b Dim) bool {
	if a.DimTag() != b.DimTag() {
		return false
	}
	switch av := a.(type) {
	case FixedDimKind, EllipsisDim:
		return true
	case FixedDim:
		bv := b.(FixedDim)
		return av.Shape == bv.Shape && av.Stride == bv.Stride
	case VarDim:
		return av.Stride == b.(VarDim).Stride
	case SymbolicDim:
		return av.Name == b.(SymbolicDim).Name
	}
	return false
}

// typedValuesEqual compares two TypedValue per §3.4: types must be
// equal, and values compare bitwise (floats by IEEE payload, NaN != NaN).
func typedValuesEqual(a, b TypedValue) bool {
	if !Equal(a.Type, b.Type) {
		return false
	}
	switch av := a.Value.(type) {
	case float32:
		bv, ok := b.Value.(float32)
		if !ok {
			return false
		}
		if math.IsNaN(float64(av)) || math.IsNaN(float64(bv)) {
			return false
		}
		return math.Float32bits(av) == math.Float32bits(bv)
	case float64:
		bv, ok := b.Value.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(av) || math.IsNaN(bv) {
			return false
		}
		return math.Float64bits(av) == math.Float64bits(bv)
	case complex64:
		bv, ok := b.Value.(complex64)
		if !ok {
			return false
		}
		if math.IsNaN(float64(real(av))) || math.IsNaN(float64(imag(av))) ||
			math.IsNaN(float64(real(bv))) || math.IsNaN(float64(imag(bv))) {
			return false
		}
		return math.Float32bits(real(av)) == math.Float32bits(real(bv)) &&
			math.Float32bits(imag(av)) == math.Float32bits(imag(bv))
	case complex128:
		bv, ok := b.Value.(complex128)
		if !ok {
			return false
		}
		if math.IsNaN(real(av)) || math.IsNaN(imag(av)) || math.IsNaN(real(bv)) || math.IsNaN(imag(bv)) {
			return false
		}
		return math.Float64bits(real(av)) == math.Float64bits(real(bv)) &&
			math.Float64bits(imag(av)) == math.Float64bits(imag(bv))
	default:
		return a.Value == b.Value
	}
}
