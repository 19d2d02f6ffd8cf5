package typesystem

import (
	"github.com/wesm/libndtypes2/internal/diagnostics"
)

// Resolver looks up a typedef binding by name. The registry package
// implements this; typesystem depends only on the interface so the two
// packages don't import each other.
type Resolver interface {
	TypedefFind(name string) (Type, bool)
}

// --- Infallible constructors (wildcards, primitives) ------------------

func NewAnyKind() Type            { return AnyKind{meta{abstract: true}} }
func NewScalarKind() Type         { return ScalarKind{meta{abstract: true}} }
func NewSignedKind() Type         { return SignedKind{meta{abstract: true}} }
func NewUnsignedKind() Type       { return UnsignedKind{meta{abstract: true}} }
func NewRealKind() Type           { return RealKind{meta{abstract: true}} }
func NewComplexKind() Type        { return ComplexKind{meta{abstract: true}} }
func NewFixedStringKind() Type    { return FixedStringKind{meta{abstract: true}} }
func NewFixedBytesKind() Type     { return FixedBytesKind{meta{abstract: true}} }
func NewTypevar(name string) Type { return Typevar{meta: meta{abstract: true}, Name: name} }

func primitiveMeta(tag Tag) meta {
	size, align := scalarLayout(tag)
	return meta{size: size, align: align, abstract: false}
}

func NewVoid() Type    { return Void{primitiveMeta(VoidTag)} }
func NewBool() Type    { return Bool{primitiveMeta(BoolTag)} }
func NewInt8() Type    { return Int8{primitiveMeta(Int8Tag)} }
func NewInt16() Type   { return Int16{primitiveMeta(Int16Tag)} }
func NewInt32() Type   { return Int32{primitiveMeta(Int32Tag)} }
func NewInt64() Type   { return Int64{primitiveMeta(Int64Tag)} }
func NewUint8() Type   { return Uint8{primitiveMeta(Uint8Tag)} }
func NewUint16() Type  { return Uint16{primitiveMeta(Uint16Tag)} }
func NewUint32() Type  { return Uint32{primitiveMeta(Uint32Tag)} }
func NewUint64() Type  { return Uint64{primitiveMeta(Uint64Tag)} }
func NewFloat16() Type { return Float16{primitiveMeta(Float16Tag)} }
func NewFloat32() Type { return Float32{primitiveMeta(Float32Tag)} }
func NewFloat64() Type { return Float64{primitiveMeta(Float64Tag)} }

func NewComplex64() Type  { return Complex64{primitiveMeta(Complex64Tag)} }
func NewComplex128() Type { return Complex128{primitiveMeta(Complex128Tag)} }

func NewString() Type {
	size, align := headerLayout()
	return String{meta{size: size, align: align}}
}

func NewChar(enc Encoding) Type {
	return Char{meta: meta{size: uint64(enc.Unit()), align: enc.Unit()}, Encoding: enc}
}

// --- Fallible constructors ---------------------------------------------

func NewBytes(targetAlign uint8, ctx *diagnostics.Context) (Type, bool) {
	if targetAlign < 1 || !isPowerOfTwo(uint64(targetAlign)) {
		ctx.Errorf(diagnostics.InvalidArgumentError, "bytes: align must be a power of two in [1, 255], got %d", targetAlign)
		return nil, false
	}
	size, _ := headerLayout()
	return Bytes{meta: meta{size: size, align: targetAlign}, TargetAlign: targetAlign}, true
}

func NewFixedString(size uint64, enc Encoding, ctx *diagnostics.Context) (Type, bool) {
	unit := enc.Unit()
	return FixedString{
		meta:     meta{size: size * uint64(unit), align: unit},
		Size:     size,
		Encoding: enc,
	}, true
}

func NewFixedBytes(size uint64, align uint8, ctx *diagnostics.Context) (Type, bool) {
	if align < 1 || !isPowerOfTwo(uint64(align)) {
		ctx.Errorf(diagnostics.InvalidArgumentError, "fixed_bytes: align must be a power of two in [1, 255], got %d", align)
		return nil, false
	}
	return FixedBytes{
		meta:  meta{size: size, align: align},
		Size:  size,
		Align: align,
	}, true
}

func NewPointer(inner Type) Type {
	size, align := pointerLayout()
	return Pointer{meta: meta{size: size, align: align, abstract: inner.Abstract()}, Inner: inner}
}

func NewOption(inner Type, ctx *diagnostics.Context) (Type, bool) {
	if inner.Tag() == OptionTag {
		ctx.Fail(diagnostics.TypeError, "option: inner type must not itself be Option")
		return nil, false
	}
	return Option{
		meta:  meta{size: inner.Size(), align: inner.Align(), abstract: inner.Abstract()},
		Inner: inner,
	}, true
}

// NewConstr builds a named single-argument constructor type. The source
// grammar gives it no layout rule of its own; it is treated as a
// transparent wrapper that shares its argument's representation (its
// runtime footprint is exactly inner's, tagged at the type level only).
func NewConstr(name string, inner Type) Type {
	return Constr{
		meta:  meta{size: inner.Size(), align: inner.Align(), abstract: inner.Abstract()},
		Name:  name,
		Inner: inner,
	}
}

func NewNominal(name string, resolver Resolver, ctx *diagnostics.Context) (Type, bool) {
	resolved, ok := resolver.TypedefFind(name)
	if !ok {
		ctx.Fail(diagnostics.ValueError, NewNominalNotFoundError(name).Error())
		return nil, false
	}
	return Nominal{
		meta: meta{size: resolved.Size(), align: resolved.Align(), abstract: resolved.Abstract()},
		Name: name,
	}, true
}

// TupleFieldSpec is a constructor-time field description: Offset/Align/Pad
// are nil when the caller wants the natural (computed) value, non-nil
// when an explicit layout override was supplied (e.g. via a trailing
// `(align=1)` on the field).
type TupleFieldSpec struct {
	Type   Type
	Offset *uint64
	Align  *uint8
	Pad    *uint64
}

type RecordFieldSpec struct {
	Name   string
	Type   Type
	Offset *uint64
	Align  *uint8
	Pad    *uint64
}

func NewTuple(variadic bool, specs []TupleFieldSpec, ctx *diagnostics.Context) (Type, bool) {
	inputs := make([]fieldInput, len(specs))
	anyAbstract := variadic
	for i, s := range specs {
		inputs[i] = fieldInput{
			size:           s.Type.Size(),
			naturalAlign:   s.Type.Align(),
			abstract:       s.Type.Abstract(),
			explicitOffset: s.Offset,
			explicitAlign:  s.Align,
			explicitPad:    s.Pad,
		}
		if s.Type.Abstract() {
			anyAbstract = true
		}
	}

	outputs, size, align, ok, errMsg := computeAggregateLayout(inputs)
	if !ok {
		ctx.Fail(diagnostics.InvalidArgumentError, errMsg)
		return nil, false
	}

	fields := make([]TupleField, len(specs))
	for i, s := range specs {
		fields[i] = TupleField{Type: s.Type, Offset: outputs[i].offset, Align: outputs[i].align, Pad: outputs[i].pad}
	}

	t := Tuple{Variadic: variadic, Fields: fields}
	if anyAbstract {
		t.meta = meta{abstract: true}
	} else {
		t.meta = meta{size: size, align: align, abstract: false}
	}
	return t, true
}

func NewRecord(variadic bool, specs []RecordFieldSpec, ctx *diagnostics.Context) (Type, bool) {
	seen := make(map[string]bool, len(specs))
	inputs := make([]fieldInput, len(specs))
	anyAbstract := variadic
	for i, s := range specs {
		if s.Name == "" {
			ctx.Fail(diagnostics.InvalidArgumentError, "record: field name must not be empty")
			return nil, false
		}
		if seen[s.Name] {
			ctx.Errorf(diagnostics.InvalidArgumentError, "record: duplicate field name %q", s.Name)
			return nil, false
		}
		seen[s.Name] = true

		inputs[i] = fieldInput{
			size:           s.Type.Size(),
			naturalAlign:   s.Type.Align(),
			abstract:       s.Type.Abstract(),
			explicitOffset: s.Offset,
			explicitAlign:  s.Align,
			explicitPad:    s.Pad,
		}
		if s.Type.Abstract() {
			anyAbstract = true
		}
	}

	outputs, size, align, ok, errMsg := computeAggregateLayout(inputs)
	if !ok {
		ctx.Fail(diagnostics.InvalidArgumentError, errMsg)
		return nil, false
	}

	fields := make([]RecordField, len(specs))
	for i, s := range specs {
		fields[i] = RecordField{Name: s.Name, Type: s.Type, Offset: outputs[i].offset, Align: outputs[i].align, Pad: outputs[i].pad}
	}

	r := Record{Variadic: variadic, Fields: fields}
	if anyAbstract {
		r.meta = meta{abstract: true}
	} else {
		r.meta = meta{size: size, align: align, abstract: false}
	}
	return r, true
}

// NewFunction builds Function{ret, pos, kwds}; pos must be a Tuple and
// kwds must be a Record (enforced by the parser, which always builds
// them that way; checked again here defensively).
func NewFunction(ret, pos, kwds Type, ctx *diagnostics.Context) (Type, bool) {
	if pos.Tag() != TupleTag {
		ctx.Fail(diagnostics.TypeError, "function: positional parameters must be a Tuple")
		return nil, false
	}
	if kwds.Tag() != RecordTag {
		ctx.Fail(diagnostics.TypeError, "function: keyword parameters must be a Record")
		return nil, false
	}
	abstract := ret.Abstract() || pos.Abstract() || kwds.Abstract()
	return Function{meta: meta{abstract: abstract}, Ret: ret, Pos: pos, Kwds: kwds}, true
}

func NewCategorical(values []TypedValue, ctx *diagnostics.Context) (Type, bool) {
	if len(values) == 0 {
		ctx.Fail(diagnostics.ValueError, "categorical: value sequence must not be empty")
		return nil, false
	}
	wantTag := values[0].Type.Tag()
	if wantTag != StringTag && !scalarTags[wantTag] {
		ctx.Fail(diagnostics.ValueError, "categorical: values must be concrete primitive scalars or String")
		return nil, false
	}
	for i := range values {
		if values[i].Type.Tag() != wantTag {
			ctx.Fail(diagnostics.ValueError, "categorical: all values must share a single concrete scalar type")
			return nil, false
		}
		for j := 0; j < i; j++ {
			if typedValuesEqual(values[i], values[j]) {
				ctx.Fail(diagnostics.ValueError, "categorical: duplicate value")
				return nil, false
			}
		}
	}
	size, align := pointerLayout()
	return Categorical{meta: meta{size: size, align: align}, Values: values}, true
}

// --- Dimension constructors --------------------------------------------

func NewFixedDimKind() Dim { return FixedDimKind{dimMeta{abstract: true}} }
func NewVarDim(stride int64) Dim {
	return VarDim{dimMeta: dimMeta{abstract: true}, Stride: stride}
}
func NewSymbolicDim(name string) Dim {
	return SymbolicDim{dimMeta: dimMeta{abstract: true}, Name: name}
}
func NewEllipsisDim() Dim { return EllipsisDim{dimMeta{abstract: true}} }

// NewFixedDim builds a FixedDim with an explicit stride; callers that
// want the natural stride pass nil and let NewArray fill it in once the
// dtype/itemsize chain is known.
func NewFixedDim(shape uint64, stride *int64) Dim {
	d := FixedDim{dimMeta: dimMeta{abstract: false}, Shape: shape}
	if stride != nil {
		d.Stride = *stride
	}
	return d
}

// NewArray builds Array{order, dims, dtype} and computes each
// dimension's itemsize/itemalign/stride per §4.3, innermost out.
func NewArray(order byte, dims []Dim, dtype Type, ctx *diagnostics.Context) (Type, bool) {
	if order != 'C' && order != 'F' {
		ctx.Errorf(diagnostics.InvalidArgumentError, "array: order must be 'C' or 'F', got %q", order)
		return nil, false
	}
	if dtype.Tag() == ArrayTag {
		ctx.Fail(diagnostics.TypeError, "array: dtype must not itself be an Array")
		return nil, false
	}

	ellipsisCount := 0
	for i, d := range dims {
		if d.DimTag() == EllipsisDimTag {
			ellipsisCount++
			if i != 0 {
				ctx.Fail(diagnostics.TypeError, "array: an EllipsisDim must be the leftmost dimension")
				return nil, false
			}
		}
	}
	if ellipsisCount > 1 {
		ctx.Fail(diagnostics.TypeError, "array: at most one EllipsisDim may appear")
		return nil, false
	}

	outDims := make([]Dim, len(dims))
	copy(outDims, dims)

	abstract := dtype.Abstract()

	// Walk from the dtype outward (C order: last declared dim is
	// adjacent to dtype; F order: first declared dim is adjacent to
	// dtype), accumulating itemsize.
	indices := make([]int, len(dims))
	for i := range dims {
		if order == 'C' {
			indices[i] = len(dims) - 1 - i
		} else {
			indices[i] = i
		}
	}

	curSize, curAlign := dtype.Size(), dtype.Align()
	for _, idx := range indices {
		d := outDims[idx]
		if d.Abstract() {
			abstract = true
		}
		switch dv := d.(type) {
		case FixedDim:
			itemsize, itemalign := curSize, curAlign
			stride := dv.Stride
			if stride == 0 {
				stride = int64(itemsize)
			}
			dv.dimMeta = dimMeta{itemsize: itemsize, itemalign: itemalign, abstract: false}
			dv.Stride = stride
			outDims[idx] = dv
			curSize = itemsize * dv.Shape
			curAlign = itemalign
		case VarDim:
			itemsize, itemalign := curSize, curAlign
			dv.dimMeta = dimMeta{itemsize: itemsize, itemalign: itemalign, abstract: true}
			outDims[idx] = dv
			curSize = 0
			curAlign = itemalign
		default:
			// FixedDimKind, SymbolicDim, EllipsisDim: abstract, shape
			// unknown, so no further size accumulation is possible.
			curSize = 0
		}
	}

	a := Array{Order: order, Dims: outDims, Dtype: dtype}
	if abstract {
		a.meta = meta{abstract: true}
	} else {
		a.meta = meta{size: curSize, align: curAlign, abstract: false}
	}
	return a, true
}
