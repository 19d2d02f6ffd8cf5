package typesystem

// IsSigned reports whether t's tag is one of Int8..Int64.
func IsSigned(t Type) bool { return signedTags[t.Tag()] }

// IsUnsigned reports whether t's tag is one of Uint8..Uint64.
func IsUnsigned(t Type) bool { return unsignedTags[t.Tag()] }

// IsReal reports whether t's tag is one of Float16..Float64.
func IsReal(t Type) bool { return realTags[t.Tag()] }

// IsComplex reports whether t's tag is Complex64 or Complex128.
func IsComplex(t Type) bool { return complexTags[t.Tag()] }

// IsFixedString reports whether t's tag is FixedString.
func IsFixedString(t Type) bool { return fixedStringTags[t.Tag()] }

// IsFixedBytes reports whether t's tag is FixedBytes.
func IsFixedBytes(t Type) bool { return fixedBytesTags[t.Tag()] }

// IsScalar reports whether t is a concrete primitive scalar (a leaf of
// ScalarKind's subtree).
func IsScalar(t Type) bool { return scalarTags[t.Tag()] }

// kindMembers maps each kind-lattice wildcard tag to the predicate
// testing membership, used by Match (§4.5: "match iff c's tag lies
// within that kind's subtree").
var kindMembers = map[Tag]func(Type) bool{
	ScalarKindTag:      IsScalar,
	SignedKindTag:      IsSigned,
	UnsignedKindTag:    IsUnsigned,
	RealKindTag:        IsReal,
	ComplexKindTag:     IsComplex,
	FixedStringKindTag: IsFixedString,
	FixedBytesKindTag:  IsFixedBytes,
}

// isKindTag reports whether tag is one of the abstract kind wildcards.
func isKindTag(tag Tag) bool {
	_, ok := kindMembers[tag]
	return ok
}
