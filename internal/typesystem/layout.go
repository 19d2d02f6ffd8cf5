package typesystem

import "github.com/wesm/libndtypes2/internal/config"

// roundUp rounds offset up to the next multiple of align (align must be
// a power of two; every align this package produces is).
func roundUp(offset uint64, align uint8) uint64 {
	a := uint64(align)
	if a <= 1 {
		return offset
	}
	return (offset + a - 1) / a * a
}

// isPowerOfTwo reports whether n is a power of two in [1, 255].
func isPowerOfTwo(n uint64) bool {
	return n >= 1 && n <= 255 && n&(n-1) == 0
}

// scalarLayout returns the fixed (size, align) for a concrete primitive
// scalar tag, per the table in §4.3. It panics on a non-primitive tag;
// callers only reach it from the primitive constructors.
func scalarLayout(tag Tag) (uint64, uint8) {
	switch tag {
	case VoidTag:
		return config.SizeVoid, 1
	case BoolTag:
		return config.SizeBool, config.SizeBool
	case Int8Tag:
		return config.SizeInt8, config.SizeInt8
	case Int16Tag:
		return config.SizeInt16, config.SizeInt16
	case Int32Tag:
		return config.SizeInt32, config.SizeInt32
	case Int64Tag:
		return config.SizeInt64, config.SizeInt64
	case Uint8Tag:
		return config.SizeUint8, config.SizeUint8
	case Uint16Tag:
		return config.SizeUint16, config.SizeUint16
	case Uint32Tag:
		return config.SizeUint32, config.SizeUint32
	case Uint64Tag:
		return config.SizeUint64, config.SizeUint64
	case Float16Tag:
		return config.SizeFloat16, config.SizeFloat16
	case Float32Tag:
		return config.SizeFloat32, config.SizeFloat32
	case Float64Tag:
		return config.SizeFloat64, config.SizeFloat64
	case Complex64Tag:
		return config.SizeComplex64, config.AlignComplex64
	case Complex128Tag:
		return config.SizeComplex128, config.AlignComplex128
	default:
		panic("typesystem: scalarLayout called on non-primitive tag " + tag.String())
	}
}

// pointerLayout returns the (size, align) of a machine pointer, used by
// Pointer, String, and Bytes (a two-word pointer+size header).
func pointerLayout() (uint64, uint8) {
	return config.PointerSize, config.PointerAlign
}

func headerLayout() (uint64, uint8) {
	size, align := pointerLayout()
	return size * 2, align
}

// fieldInput is the layout engine's view of one aggregate field: its
// own size/align (already resolved from its Type) plus the optional
// explicit overrides a parser or caller supplied. A nil pointer means
// "use the natural value".
type fieldInput struct {
	size           uint64
	naturalAlign   uint8
	abstract       bool
	explicitOffset *uint64
	explicitAlign  *uint8
	explicitPad    *uint64
}

// fieldOutput is the resolved (offset, align, pad) for one field.
type fieldOutput struct {
	offset uint64
	align  uint8
	pad    uint64
}

// computeAggregateLayout implements §4.3's Tuple/Record layout rule:
// C-struct-style sequential offsets, round-up to each field's align,
// explicit overrides respected and validated for monotonicity and
// non-overlap. It returns the per-field outputs and the aggregate
// (size, align).
func computeAggregateLayout(fields []fieldInput) ([]fieldOutput, uint64, uint8, bool, string) {
	outputs := make([]fieldOutput, len(fields))
	var cursor uint64
	var maxAlign uint8 = 1

	for i, f := range fields {
		align := f.naturalAlign
		if f.explicitAlign != nil {
			align = *f.explicitAlign
		}

		// effectiveAlign is what this field contributes to offset/maxAlign
		// bookkeeping; align is what gets reported in fieldOutput. An
		// abstract field with no explicit override has no meaningful
		// natural align at all (§3.5: size/align are defined iff abstract
		// is false), so its zero value must not fail the power-of-two
		// check — it contributes no alignment requirement of its own.
		effectiveAlign := align
		if effectiveAlign < 1 || effectiveAlign > 255 || !isPowerOfTwo(uint64(effectiveAlign)) {
			if f.abstract && f.explicitAlign == nil {
				effectiveAlign = 1
			} else {
				return nil, 0, 0, false, "field align must be a power of two in [1, 255]"
			}
		}

		offset := roundUp(cursor, effectiveAlign)
		if f.explicitOffset != nil {
			offset = *f.explicitOffset
			if offset < cursor {
				return nil, 0, 0, false, "explicit field offsets must be monotonically non-decreasing and non-overlapping"
			}
		}

		pad := uint64(0)
		if f.explicitPad != nil {
			pad = *f.explicitPad
		}

		outputs[i] = fieldOutput{offset: offset, align: align, pad: pad}
		cursor = offset + f.size + pad
		if effectiveAlign > maxAlign {
			maxAlign = effectiveAlign
		}
	}

	size := roundUp(cursor, maxAlign)
	return outputs, size, maxAlign, true, ""
}
