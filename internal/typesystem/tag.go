package typesystem

// Tag identifies which case of the type variant a Type value holds.
// The ordering groups the kind-lattice wildcards together; membership
// checks (IsSigned, IsScalar, ...) look tags up in the per-kind sets
// below rather than comparing tag ranges.
type Tag int

const (
	AnyKindTag Tag = iota
	ArrayTag
	OptionTag
	NominalTag
	ConstrTag
	TupleTag
	RecordTag
	FunctionTag
	TypevarTag

	ScalarKindTag
	SignedKindTag
	UnsignedKindTag
	RealKindTag
	ComplexKindTag
	FixedStringKindTag
	FixedBytesKindTag

	VoidTag
	BoolTag
	Int8Tag
	Int16Tag
	Int32Tag
	Int64Tag
	Uint8Tag
	Uint16Tag
	Uint32Tag
	Uint64Tag
	Float16Tag
	Float32Tag
	Float64Tag
	Complex64Tag
	Complex128Tag

	CharTag
	StringTag
	BytesTag
	FixedStringTag
	FixedBytesTag
	CategoricalTag
	PointerTag
)

var tagNames = map[Tag]string{
	AnyKindTag:         "AnyKind",
	ArrayTag:           "Array",
	OptionTag:          "Option",
	NominalTag:         "Nominal",
	ConstrTag:          "Constr",
	TupleTag:           "Tuple",
	RecordTag:          "Record",
	FunctionTag:        "Function",
	TypevarTag:         "Typevar",
	ScalarKindTag:      "ScalarKind",
	SignedKindTag:      "SignedKind",
	UnsignedKindTag:    "UnsignedKind",
	RealKindTag:        "RealKind",
	ComplexKindTag:     "ComplexKind",
	FixedStringKindTag: "FixedStringKind",
	FixedBytesKindTag:  "FixedBytesKind",
	VoidTag:            "Void",
	BoolTag:            "Bool",
	Int8Tag:            "Int8",
	Int16Tag:           "Int16",
	Int32Tag:           "Int32",
	Int64Tag:           "Int64",
	Uint8Tag:           "Uint8",
	Uint16Tag:          "Uint16",
	Uint32Tag:          "Uint32",
	Uint64Tag:          "Uint64",
	Float16Tag:         "Float16",
	Float32Tag:         "Float32",
	Float64Tag:         "Float64",
	Complex64Tag:       "Complex64",
	Complex128Tag:      "Complex128",
	CharTag:            "Char",
	StringTag:          "String",
	BytesTag:           "Bytes",
	FixedStringTag:     "FixedString",
	FixedBytesTag:      "FixedBytes",
	CategoricalTag:     "Categorical",
	PointerTag:         "Pointer",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "UnknownTag"
}

var signedTags = map[Tag]bool{Int8Tag: true, Int16Tag: true, Int32Tag: true, Int64Tag: true}
var unsignedTags = map[Tag]bool{Uint8Tag: true, Uint16Tag: true, Uint32Tag: true, Uint64Tag: true}
var realTags = map[Tag]bool{Float16Tag: true, Float32Tag: true, Float64Tag: true}
var complexTags = map[Tag]bool{Complex64Tag: true, Complex128Tag: true}
var fixedStringTags = map[Tag]bool{FixedStringTag: true}
var fixedBytesTags = map[Tag]bool{FixedBytesTag: true}

// scalarTags is every tag that is a concrete primitive scalar, i.e. the
// leaves under ScalarKind in §3.1's lattice.
var scalarTags = map[Tag]bool{
	VoidTag: true, BoolTag: true,
	Int8Tag: true, Int16Tag: true, Int32Tag: true, Int64Tag: true,
	Uint8Tag: true, Uint16Tag: true, Uint32Tag: true, Uint64Tag: true,
	Float16Tag: true, Float32Tag: true, Float64Tag: true,
	Complex64Tag: true, Complex128Tag: true,
}

// DimTag identifies which case of the dimension variant a Dim value holds.
type DimTag int

const (
	FixedDimKindTag DimTag = iota
	FixedDimTag
	VarDimTag
	SymbolicDimTag
	EllipsisDimTag
)

var dimTagNames = map[DimTag]string{
	FixedDimKindTag: "FixedDimKind",
	FixedDimTag:     "FixedDim",
	VarDimTag:       "VarDim",
	SymbolicDimTag:  "SymbolicDim",
	EllipsisDimTag:  "EllipsisDim",
}

func (t DimTag) String() string {
	if name, ok := dimTagNames[t]; ok {
		return name
	}
	return "UnknownDimTag"
}
