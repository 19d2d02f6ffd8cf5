package printer

import (
	"strings"
	"testing"

	"github.com/wesm/libndtypes2/internal/parser"
	"github.com/wesm/libndtypes2/internal/registry"
	"github.com/wesm/libndtypes2/internal/typesystem"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	r.Init()
	return r
}

// assertRoundTrip is §8's round-trip property: parse(print(t)) equal t
// for a concrete t.
func assertRoundTrip(t *testing.T, src string) {
	t.Helper()
	reg := newTestRegistry(t)
	original, err := parser.ParseType(src, reg)
	if err != nil {
		t.Fatalf("ParseType(%q) failed: %v", src, err)
	}

	printed := Print(original)

	reparsed, err := parser.ParseType(printed, reg)
	if err != nil {
		t.Fatalf("re-parsing printed form %q failed: %v", printed, err)
	}

	if !typesystem.Equal(original, reparsed) {
		t.Fatalf("round trip failed: %q -> printed %q -> reparsed not equal", src, printed)
	}
}

func TestRoundTripScalars(t *testing.T) {
	for _, src := range []string{"void", "bool", "int32", "float64", "complex128", "string"} {
		assertRoundTrip(t, src)
	}
}

func TestRoundTripArray(t *testing.T) {
	assertRoundTrip(t, "10 * 20 * float64")
}

func TestRoundTripOptionAndPointer(t *testing.T) {
	assertRoundTrip(t, "?complex64")
	assertRoundTrip(t, "pointer(int64)")
}

func TestRoundTripTupleAndRecord(t *testing.T) {
	assertRoundTrip(t, "(int32, float64)")
	assertRoundTrip(t, "{a : int32, b : ?string}")
}

func TestRoundTripFunction(t *testing.T) {
	assertRoundTrip(t, "(int32, y : float64) -> bool")
}

func TestRoundTripCharFixedStringFixedBytes(t *testing.T) {
	assertRoundTrip(t, "char(utf8)")
	assertRoundTrip(t, "fixed_string(10, utf16)")
	assertRoundTrip(t, "fixed_bytes(size=16, align=4)")
}

func TestRoundTripCategorical(t *testing.T) {
	assertRoundTrip(t, `categorical("up", "down")`)
}

func TestRoundTripExplicitFieldAlign(t *testing.T) {
	assertRoundTrip(t, "{a : int8, b : int32 (align=1)}")
}

func TestPrintMetaAnnotatesSizeAlign(t *testing.T) {
	reg := newTestRegistry(t)
	ty, err := parser.ParseType("10 * 20 * float64", reg)
	if err != nil {
		t.Fatal(err)
	}
	out := PrintMeta(ty)
	if !strings.Contains(out, "size=1600") || !strings.Contains(out, "align=8") {
		t.Errorf("PrintMeta output missing expected size/align: %q", out)
	}
}

func TestPrintMetaMarksAbstract(t *testing.T) {
	reg := newTestRegistry(t)
	ty, err := parser.ParseType("... * int32", reg)
	if err != nil {
		t.Fatal(err)
	}
	out := PrintMeta(ty)
	if !strings.Contains(out, "abstract") {
		t.Errorf("PrintMeta of an abstract array should mark it abstract, got %q", out)
	}
}

func TestPrintIndentedBreaksRecordFields(t *testing.T) {
	reg := newTestRegistry(t)
	ty, err := parser.ParseType("{a : int32, b : float64}", reg)
	if err != nil {
		t.Fatal(err)
	}
	out := PrintIndented(ty)
	if !strings.Contains(out, "\n") {
		t.Errorf("PrintIndented should break fields across lines, got %q", out)
	}
	if !strings.Contains(out, "    a : int32") {
		t.Errorf("PrintIndented should indent each field, got %q", out)
	}
}

func TestPrintNominalUsesName(t *testing.T) {
	reg := newTestRegistry(t)
	_, err := parser.ParseProgram("typedef point = {x : float64, y : float64}\n", reg)
	if err != nil {
		t.Fatal(err)
	}
	ty, ok := reg.TypedefFind("point")
	if !ok {
		t.Fatal("typedef point not registered")
	}
	nominal, ok := typesystem.NewNominal("point", reg, nil)
	_ = ty
	if ok {
		if got := Print(nominal); got != "point" {
			t.Errorf("Print(Nominal) = %q, want %q", got, "point")
		}
	}
}
