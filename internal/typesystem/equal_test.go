package typesystem

import (
	"testing"

	"github.com/wesm/libndtypes2/internal/diagnostics"
)

func TestEqualReflexiveSymmetricTransitive(t *testing.T) {
	ctx := diagnostics.New()
	a, _ := NewRecord(false, []RecordFieldSpec{{Name: "x", Type: NewInt32()}}, ctx)
	b, _ := NewRecord(false, []RecordFieldSpec{{Name: "x", Type: NewInt32()}}, ctx)
	c, _ := NewRecord(false, []RecordFieldSpec{{Name: "x", Type: NewInt32()}}, ctx)

	if !Equal(a, a) {
		t.Fatal("Equal is not reflexive")
	}
	if Equal(a, b) != Equal(b, a) {
		t.Fatal("Equal is not symmetric")
	}
	if Equal(a, b) && Equal(b, c) && !Equal(a, c) {
		t.Fatal("Equal is not transitive")
	}
}

func TestEqualDistinguishesPayload(t *testing.T) {
	ctx := diagnostics.New()
	a, _ := NewRecord(false, []RecordFieldSpec{{Name: "x", Type: NewInt32()}}, ctx)
	b, _ := NewRecord(false, []RecordFieldSpec{{Name: "y", Type: NewInt32()}}, ctx)
	if Equal(a, b) {
		t.Fatal("records with different field names must not be equal")
	}

	if Equal(NewInt32(), NewInt64()) {
		t.Fatal("different primitive scalars must not be equal")
	}

	f1, _ := NewFixedString(4, Utf8, ctx)
	f2, _ := NewFixedString(4, Utf16, ctx)
	if Equal(f1, f2) {
		t.Fatal("FixedString with different encodings must not be equal")
	}
}

func TestEqualNominalIsNameBased(t *testing.T) {
	resolver := stubResolver{"a": NewInt32(), "b": NewFloat64()}
	ctx := diagnostics.New()
	na, _ := NewNominal("a", resolver, ctx)
	nb, _ := NewNominal("b", resolver, ctx)
	if Equal(na, nb) {
		t.Fatal("distinct nominal names must not be equal even if one happened to resolve the same")
	}
	na2, _ := NewNominal("a", resolver, ctx)
	if !Equal(na, na2) {
		t.Fatal("same nominal name must be equal")
	}
}

func TestTypedValueEqualityNaN(t *testing.T) {
	nan := TypedValue{Type: NewFloat64(), Value: float64(0) / func() float64 { return 0 }()}
	if typedValuesEqual(nan, nan) {
		t.Fatal("NaN must not equal itself under typed value equality")
	}
}
