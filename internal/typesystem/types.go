// Package typesystem implements the datashape type algebra: the
// recursive type/dimension/field representation, its layout engine,
// structural equality, and the matching judgment. Every node is a
// native Go value implementing the Type or Dim interface with one
// concrete struct per variant — a tagged union expressed directly in
// the language rather than a discriminator-plus-payload struct.
package typesystem

// Type is the common interface satisfied by every type variant in
// §3.1. Tag identifies the concrete case; Size/Align are the layout
// engine's output and are only meaningful when Abstract() is false.
type Type interface {
	Tag() Tag
	Size() uint64
	Align() uint8
	Abstract() bool
}

// Dim is the common interface satisfied by every dimension variant in
// §3.2. Itemsize/Itemalign are populated once the dimension's
// containing Array has been fully built.
type Dim interface {
	DimTag() DimTag
	Itemsize() uint64
	Itemalign() uint8
	Abstract() bool
}

// meta bundles the three computed fields every Type variant carries,
// embedded by value so each variant's Size/Align/Abstract methods are
// free.
type meta struct {
	size     uint64
	align    uint8
	abstract bool
}

func (m meta) Size() uint64   { return m.size }
func (m meta) Align() uint8   { return m.align }
func (m meta) Abstract() bool { return m.abstract }

// dimMeta is meta's counterpart for dimensions (itemsize/itemalign
// instead of size/align, matching §3.2's naming).
type dimMeta struct {
	itemsize  uint64
	itemalign uint8
	abstract  bool
}

func (m dimMeta) Itemsize() uint64 { return m.itemsize }
func (m dimMeta) Itemalign() uint8 { return m.itemalign }
func (m dimMeta) Abstract() bool   { return m.abstract }

// --- Type variants -------------------------------------------------

type AnyKind struct{ meta }

func (AnyKind) Tag() Tag { return AnyKindTag }

type Array struct {
	meta
	Order byte // 'C' or 'F'
	Dims  []Dim
	Dtype Type
}

func (Array) Tag() Tag { return ArrayTag }

type Option struct {
	meta
	Inner Type
}

func (Option) Tag() Tag { return OptionTag }

type Nominal struct {
	meta
	Name string
}

func (Nominal) Tag() Tag { return NominalTag }

type Constr struct {
	meta
	Name  string
	Inner Type
}

func (Constr) Tag() Tag { return ConstrTag }

type Tuple struct {
	meta
	Variadic bool
	Fields   []TupleField
}

func (Tuple) Tag() Tag { return TupleTag }

type Record struct {
	meta
	Variadic bool
	Fields   []RecordField
}

func (Record) Tag() Tag { return RecordTag }

// Function's ret/pos/kwds are never abstract-triggering on their own;
// a Function is abstract iff any of the three is abstract.
type Function struct {
	meta
	Ret  Type
	Pos  Type // always a Tuple
	Kwds Type // always a Record
}

func (Function) Tag() Tag { return FunctionTag }

type Typevar struct {
	meta
	Name string
}

func (Typevar) Tag() Tag { return TypevarTag }

// Kind-lattice wildcards: each is abstract, carries no payload, and
// matches the subtree of concrete tags named by its *Tags set in
// tag.go (wired up through kindMembers in predicates.go).
type ScalarKind struct{ meta }
type SignedKind struct{ meta }
type UnsignedKind struct{ meta }
type RealKind struct{ meta }
type ComplexKind struct{ meta }
type FixedStringKind struct{ meta }
type FixedBytesKind struct{ meta }

func (ScalarKind) Tag() Tag      { return ScalarKindTag }
func (SignedKind) Tag() Tag      { return SignedKindTag }
func (UnsignedKind) Tag() Tag    { return UnsignedKindTag }
func (RealKind) Tag() Tag        { return RealKindTag }
func (ComplexKind) Tag() Tag     { return ComplexKindTag }
func (FixedStringKind) Tag() Tag { return FixedStringKindTag }
func (FixedBytesKind) Tag() Tag  { return FixedBytesKindTag }

// Concrete primitive scalars. Each is a zero-field struct; its
// size/align come from the layout table (layout.go) and never vary
// per instance, so meta is still carried for interface uniformity.
type (
	Void    struct{ meta }
	Bool    struct{ meta }
	Int8    struct{ meta }
	Int16   struct{ meta }
	Int32   struct{ meta }
	Int64   struct{ meta }
	Uint8   struct{ meta }
	Uint16  struct{ meta }
	Uint32  struct{ meta }
	Uint64  struct{ meta }
	Float16 struct{ meta }
	Float32 struct{ meta }
	Float64 struct{ meta }
)

type Complex64 struct{ meta }
type Complex128 struct{ meta }

func (Void) Tag() Tag       { return VoidTag }
func (Bool) Tag() Tag       { return BoolTag }
func (Int8) Tag() Tag       { return Int8Tag }
func (Int16) Tag() Tag      { return Int16Tag }
func (Int32) Tag() Tag      { return Int32Tag }
func (Int64) Tag() Tag      { return Int64Tag }
func (Uint8) Tag() Tag      { return Uint8Tag }
func (Uint16) Tag() Tag     { return Uint16Tag }
func (Uint32) Tag() Tag     { return Uint32Tag }
func (Uint64) Tag() Tag     { return Uint64Tag }
func (Float16) Tag() Tag    { return Float16Tag }
func (Float32) Tag() Tag    { return Float32Tag }
func (Float64) Tag() Tag    { return Float64Tag }
func (Complex64) Tag() Tag  { return Complex64Tag }
func (Complex128) Tag() Tag { return Complex128Tag }

type Char struct {
	meta
	Encoding Encoding
}

func (Char) Tag() Tag { return CharTag }

type String struct{ meta }

func (String) Tag() Tag { return StringTag }

type Bytes struct {
	meta
	TargetAlign uint8
}

func (Bytes) Tag() Tag { return BytesTag }

type FixedString struct {
	meta
	Size     uint64
	Encoding Encoding
}

func (FixedString) Tag() Tag { return FixedStringTag }

type FixedBytes struct {
	meta
	Size  uint64
	Align uint8
}

func (FixedBytes) Tag() Tag { return FixedBytesTag }

type Categorical struct {
	meta
	Values []TypedValue
}

func (Categorical) Tag() Tag { return CategoricalTag }

type Pointer struct {
	meta
	Inner Type
}

func (Pointer) Tag() Tag { return PointerTag }

// --- Dimension variants ----------------------------------------------

type FixedDimKind struct{ dimMeta }

func (FixedDimKind) DimTag() DimTag { return FixedDimKindTag }

type FixedDim struct {
	dimMeta
	Shape  uint64
	Stride int64
}

func (FixedDim) DimTag() DimTag { return FixedDimTag }

type VarDim struct {
	dimMeta
	Stride int64
}

func (VarDim) DimTag() DimTag { return VarDimTag }

type SymbolicDim struct {
	dimMeta
	Name string
}

func (SymbolicDim) DimTag() DimTag { return SymbolicDimTag }

type EllipsisDim struct{ dimMeta }

func (EllipsisDim) DimTag() DimTag { return EllipsisDimTag }

// --- Fields and typed values ------------------------------------------

// TupleField is one positional element of a Tuple. Offset/Align/Pad are
// either user-supplied (explicit layout) or computed naturally; see
// §4.3.
type TupleField struct {
	Type   Type
	Offset uint64
	Align  uint8
	Pad    uint64
}

// RecordField is one named element of a Record. Name must be non-empty
// and unique within the owning Record (enforced by NewRecord).
type RecordField struct {
	Name   string
	Type   Type
	Offset uint64
	Align  uint8
	Pad    uint64
}

// TypedValue is a scalar value tagged with its concrete type, used by
// Categorical's value set (§3.4). Value holds the corresponding Go
// representation: bool, intN/uintN, float32/float64, complex64/128, or
// string (for the String type). Equality is defined in equal.go.
type TypedValue struct {
	Type  Type
	Value any
}
