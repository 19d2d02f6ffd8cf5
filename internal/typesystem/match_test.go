package typesystem

import (
	"testing"

	"github.com/wesm/libndtypes2/internal/diagnostics"
)

func TestMatchReflexiveOnConcretes(t *testing.T) {
	ctx := diagnostics.New()
	concretes := []Type{
		NewInt32(),
		NewFloat64(),
		NewString(),
	}
	rec, _ := NewRecord(false, []RecordFieldSpec{{Name: "a", Type: NewInt32()}}, ctx)
	concretes = append(concretes, rec)

	for _, ty := range concretes {
		if !Match(ty, ty) {
			t.Errorf("Match(%v, %v) = false, want true (reflexivity)", ty.Tag(), ty.Tag())
		}
	}
}

func TestMatchSubsumesKind(t *testing.T) {
	signed := []Type{NewInt8(), NewInt16(), NewInt32(), NewInt64()}
	for _, ty := range signed {
		if !Match(NewSignedKind(), ty) {
			t.Errorf("Match(SignedKind, %v) = false, want true", ty.Tag())
		}
	}
	if Match(NewSignedKind(), NewUint32()) {
		t.Error("Match(SignedKind, Uint32) = true, want false")
	}
	if !Match(NewFixedStringKind(), mustFixedString(t, 4, Utf8)) {
		t.Error("Match(FixedStringKind, FixedString) = false, want true")
	}
}

func mustFixedString(t *testing.T, size uint64, enc Encoding) Type {
	t.Helper()
	ty, ok := NewFixedString(size, enc, diagnostics.New())
	if !ok {
		t.Fatal("NewFixedString failed")
	}
	return ty
}

func TestMatchTypevarBindingConsistency(t *testing.T) {
	ctx := diagnostics.New()
	tv := NewTypevar("T")
	pattern, ok := NewTuple(false, []TupleFieldSpec{{Type: tv}, {Type: tv}}, ctx)
	if !ok {
		t.Fatal("NewTuple pattern failed")
	}

	same, _ := NewTuple(false, []TupleFieldSpec{{Type: NewInt32()}, {Type: NewInt32()}}, diagnostics.New())
	if !Match(pattern, same) {
		t.Error("Match((T,T), (Int32,Int32)) = false, want true")
	}

	diff, _ := NewTuple(false, []TupleFieldSpec{{Type: NewInt32()}, {Type: NewInt64()}}, diagnostics.New())
	if Match(pattern, diff) {
		t.Error("Match((T,T), (Int32,Int64)) = true, want false")
	}
}

func TestMatchEllipsisExpansion(t *testing.T) {
	ctx := diagnostics.New()
	pattern, ok := NewArray('C', []Dim{NewEllipsisDim()}, NewInt32(), ctx)
	if !ok {
		t.Fatal("NewArray pattern failed")
	}

	twoDim, _ := NewArray('C', []Dim{NewFixedDim(2, nil), NewFixedDim(3, nil)}, NewInt32(), diagnostics.New())
	if !Match(pattern, twoDim) {
		t.Error("Match(...*Int32, 2*3*Int32) = false, want true")
	}

	// The ellipsis may also consume zero dimensions, so the pattern
	// matches a bare (non-Array) Int32 directly.
	if !Match(pattern, NewInt32()) {
		t.Error("Match(...*Int32, Int32) = false, want true (zero expansion)")
	}

	mismatchDtype, _ := NewArray('C', []Dim{NewFixedDim(2, nil), NewFixedDim(3, nil)}, NewInt64(), diagnostics.New())
	if Match(pattern, mismatchDtype) {
		t.Error("Match(...*Int32, 2*3*Int64) = true, want false")
	}
}

func TestMatchKindAndTagMismatch(t *testing.T) {
	if Match(NewInt32(), NewInt64()) {
		t.Error("Match(Int32, Int64) = true, want false (different concrete tags)")
	}
}
