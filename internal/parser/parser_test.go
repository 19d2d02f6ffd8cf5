package parser

import (
	"testing"

	"github.com/wesm/libndtypes2/internal/registry"
	"github.com/wesm/libndtypes2/internal/typesystem"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	r.Init()
	return r
}

func mustParse(t *testing.T, src string, reg *registry.Registry) typesystem.Type {
	t.Helper()
	ty, err := ParseType(src, reg)
	if err != nil {
		t.Fatalf("ParseType(%q) failed: %v", src, err)
	}
	return ty
}

func TestParseScalars(t *testing.T) {
	reg := newTestRegistry(t)
	cases := map[string]typesystem.Type{
		"void":       typesystem.NewVoid(),
		"bool":       typesystem.NewBool(),
		"int32":      typesystem.NewInt32(),
		"float64":    typesystem.NewFloat64(),
		"complex128": typesystem.NewComplex128(),
		"string":     typesystem.NewString(),
	}
	for src, want := range cases {
		got := mustParse(t, src, reg)
		if !typesystem.Equal(got, want) {
			t.Errorf("parse(%q): got %v, want %v", src, got, want)
		}
	}
}

func TestParseKinds(t *testing.T) {
	reg := newTestRegistry(t)
	got := mustParse(t, "Signed", reg)
	if got.Tag() != typesystem.SignedKindTag {
		t.Errorf("got tag %v, want SignedKind", got.Tag())
	}
	if !got.Abstract() {
		t.Error("a kind wildcard must be abstract")
	}
}

func TestParseArrayFixedDims(t *testing.T) {
	reg := newTestRegistry(t)
	got := mustParse(t, "10 * 20 * float64", reg)
	if got.Tag() != typesystem.ArrayTag {
		t.Fatalf("got tag %v, want Array", got.Tag())
	}
	if got.Size() != 1600 || got.Align() != 8 {
		t.Errorf("got size=%d align=%d, want size=1600 align=8", got.Size(), got.Align())
	}
}

func TestParseOptionAndPointer(t *testing.T) {
	reg := newTestRegistry(t)
	got := mustParse(t, "?complex64", reg)
	if got.Tag() != typesystem.OptionTag {
		t.Fatalf("got tag %v, want Option", got.Tag())
	}

	ptr := mustParse(t, "pointer(int64)", reg)
	if ptr.Tag() != typesystem.PointerTag {
		t.Fatalf("got tag %v, want Pointer", ptr.Tag())
	}
}

func TestParseTupleAndRecord(t *testing.T) {
	reg := newTestRegistry(t)
	tup := mustParse(t, "(int32, float64)", reg)
	if tup.Tag() != typesystem.TupleTag {
		t.Fatalf("got tag %v, want Tuple", tup.Tag())
	}

	rec := mustParse(t, "{a : int32, b : ?string}", reg)
	if rec.Tag() != typesystem.RecordTag {
		t.Fatalf("got tag %v, want Record", rec.Tag())
	}
	if rec.Size() != 24 {
		// On a 64-bit target: offset(a)=0 size4, the string header is two
		// 8-byte words (align 8), so b at offset8, size16 -> total 24. A
		// 32-bit target gives 12; accept either layout as long as parse
		// succeeds, this just exercises the path.
		t.Logf("record size = %d", rec.Size())
	}
}

func TestParseRecordFieldAttrs(t *testing.T) {
	reg := newTestRegistry(t)
	rec := mustParse(t, "{a : int8, b : int32 (align=1)}", reg)
	if rec.Align() != 1 {
		t.Errorf("explicit field align=1 should force aggregate align to 1, got %d", rec.Align())
	}
}

func TestParseFunction(t *testing.T) {
	reg := newTestRegistry(t)
	got := mustParse(t, "(int32, y : float64) -> bool", reg)
	if got.Tag() != typesystem.FunctionTag {
		t.Fatalf("got tag %v, want Function", got.Tag())
	}
}

func TestParseEllipsisAndSymbolicDims(t *testing.T) {
	reg := newTestRegistry(t)
	got := mustParse(t, "... * N * int32", reg)
	if got.Tag() != typesystem.ArrayTag {
		t.Fatalf("got tag %v, want Array", got.Tag())
	}
	if !got.Abstract() {
		t.Error("an array with an EllipsisDim must be abstract")
	}
}

func TestParseTypevar(t *testing.T) {
	reg := newTestRegistry(t)
	got := mustParse(t, "T", reg)
	if got.Tag() != typesystem.TypevarTag {
		t.Fatalf("got tag %v, want Typevar (bare uppercase letter)", got.Tag())
	}
}

func TestParseNominalUnresolved(t *testing.T) {
	reg := newTestRegistry(t)
	if _, err := ParseType("not_a_typedef", reg); err == nil {
		t.Error("expected an error resolving an unbound nominal name")
	}
}

func TestParseCharAndFixedString(t *testing.T) {
	reg := newTestRegistry(t)
	ch := mustParse(t, "char(utf8)", reg)
	if ch.Tag() != typesystem.CharTag {
		t.Fatalf("got tag %v, want Char", ch.Tag())
	}

	fs := mustParse(t, "fixed_string(10, utf16)", reg)
	if fs.Tag() != typesystem.FixedStringTag {
		t.Fatalf("got tag %v, want FixedString", fs.Tag())
	}
	if fs.Size() != 20 {
		t.Errorf("fixed_string(10, utf16) size = %d, want 20", fs.Size())
	}
}

func TestParseBytesAndFixedBytes(t *testing.T) {
	reg := newTestRegistry(t)
	if _, err := ParseType("bytes", reg); err == nil {
		t.Error("'bytes' without an align attribute must fail")
	}
	b := mustParse(t, "bytes(align=8)", reg)
	if b.Align() != 8 {
		t.Errorf("got align %d, want 8", b.Align())
	}

	fb := mustParse(t, "fixed_bytes(size=16, align=4)", reg)
	if fb.Size() != 16 || fb.Align() != 4 {
		t.Errorf("got size=%d align=%d, want size=16 align=4", fb.Size(), fb.Align())
	}
}

func TestParseCategorical(t *testing.T) {
	reg := newTestRegistry(t)
	got := mustParse(t, `categorical('up', 'down', 'sideways')`, reg)
	if got.Tag() != typesystem.CategoricalTag {
		t.Fatalf("got tag %v, want Categorical", got.Tag())
	}
}

func TestParseFixedDimKeywordForms(t *testing.T) {
	reg := newTestRegistry(t)
	// bare 'fixed' with no parens is the abstract FixedDimKind wildcard.
	got := mustParse(t, "fixed * int32", reg)
	if !got.Abstract() {
		t.Error("an array over a bare 'fixed' dimension must be abstract")
	}

	// 'fixed(N, stride=X)' supplies an explicit shape and stride override.
	got2 := mustParse(t, "fixed(4, stride=16) * int32", reg)
	if got2.Abstract() {
		t.Error("fixed(4, stride=16) * int32 should be concrete")
	}
}

func TestParseVarDim(t *testing.T) {
	reg := newTestRegistry(t)
	got := mustParse(t, "var * int32", reg)
	if !got.Abstract() {
		t.Error("an array over a VarDim must be abstract")
	}
}

func TestParseArrayOrderAttr(t *testing.T) {
	reg := newTestRegistry(t)
	got, err := ParseType(`10 * 20 * float64 & (order="F")`, reg)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got.Size() != 1600 {
		t.Errorf("F-order array should have the same total size, got %d", got.Size())
	}
}

// TestAttrsIndexBug pins the fix for the source's per-production loops,
// which read seq->ptr[0] on every iteration of an attribute list
// instead of seq->ptr[i]: a second, differently-named attribute in the
// same list must be observed (here, a duplicate name is rejected,
// which could only happen if every entry were actually visited).
func TestAttrsIndexBug(t *testing.T) {
	reg := newTestRegistry(t)
	if _, err := ParseType("fixed_bytes(size=8, size=16)", reg); err == nil {
		t.Fatal("a duplicate attribute name must be rejected, not silently ignored")
	}
}

func TestParseTypedefStatementAndRecursion(t *testing.T) {
	reg := newTestRegistry(t)
	src := "typedef node = {value : int64, next : pointer(node)}\n"
	_, err := ParseProgram(src, reg)
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}
	resolved, ok := reg.TypedefFind("node")
	if !ok {
		t.Fatal("typedef statement did not register 'node'")
	}
	if resolved.Abstract() {
		t.Error("the committed recursive record type must be concrete")
	}
}

func TestParseTypedefThenExpression(t *testing.T) {
	reg := newTestRegistry(t)
	src := "typedef point = {x : float64, y : float64}\n10 * point\n"
	got, err := ParseProgram(src, reg)
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}
	if got == nil || got.Tag() != typesystem.ArrayTag {
		t.Fatalf("expected a trailing Array expression, got %v", got)
	}
}

func TestParseTrailingTokenError(t *testing.T) {
	reg := newTestRegistry(t)
	if _, err := ParseType("int32 int32", reg); err == nil {
		t.Error("trailing garbage after a complete datashape must be an error")
	}
}
