package parser

import "github.com/wesm/libndtypes2/internal/typesystem"

// scalarConstructors covers every scalar keyword that takes no
// arguments at all; the parametrized scalars (string, bytes,
// fixed_string, fixed_bytes, char, categorical, pointer) are handled
// directly in parseIdentDtype.
var scalarConstructors = map[string]func() typesystem.Type{
	"void":       typesystem.NewVoid,
	"bool":       typesystem.NewBool,
	"int8":       typesystem.NewInt8,
	"int16":      typesystem.NewInt16,
	"int32":      typesystem.NewInt32,
	"int64":      typesystem.NewInt64,
	"uint8":      typesystem.NewUint8,
	"uint16":     typesystem.NewUint16,
	"uint32":     typesystem.NewUint32,
	"uint64":     typesystem.NewUint64,
	"float16":    typesystem.NewFloat16,
	"float32":    typesystem.NewFloat32,
	"float64":    typesystem.NewFloat64,
	"complex64":  typesystem.NewComplex64,
	"complex128": typesystem.NewComplex128,
}

// kindConstructors covers the kind-lattice wildcards (§3.1): spelled
// without the "Kind" suffix except for the two whose bare spelling
// would otherwise collide with a concrete type name (FixedString,
// FixedBytes).
var kindConstructors = map[string]func() typesystem.Type{
	"Any":             typesystem.NewAnyKind,
	"Scalar":          typesystem.NewScalarKind,
	"Signed":          typesystem.NewSignedKind,
	"Unsigned":        typesystem.NewUnsignedKind,
	"Real":            typesystem.NewRealKind,
	"Complex":         typesystem.NewComplexKind,
	"FixedStringKind": typesystem.NewFixedStringKind,
	"FixedBytesKind":  typesystem.NewFixedBytesKind,
}

var parametrizedDtypeKeywords = map[string]bool{
	"string":       true,
	"bytes":        true,
	"fixed_string": true,
	"fixed_bytes":  true,
	"char":         true,
	"categorical":  true,
	"pointer":      true,
}

// isDtypeKeyword reports whether lit names a reserved dtype production
// rather than a Nominal/Constr/Typevar reference or a SymbolicDim name.
func isDtypeKeyword(lit string) bool {
	if _, ok := scalarConstructors[lit]; ok {
		return true
	}
	if _, ok := kindConstructors[lit]; ok {
		return true
	}
	return parametrizedDtypeKeywords[lit]
}
