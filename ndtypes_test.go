package ndtypes_test

import (
	"testing"

	"github.com/wesm/libndtypes2"
)

func TestParseTypeAndPrintRoundTrip(t *testing.T) {
	ty, err := ndtypes.ParseType("10 * 20 * float64")
	if err != nil {
		t.Fatalf("ParseType failed: %v", err)
	}
	if ty.Size() != 1600 || ty.Align() != 8 {
		t.Fatalf("got size=%d align=%d, want size=1600 align=8", ty.Size(), ty.Align())
	}

	reparsed, err := ndtypes.ParseType(ndtypes.Print(ty))
	if err != nil {
		t.Fatalf("re-parsing printed form failed: %v", err)
	}
	if !ndtypes.Equal(ty, reparsed) {
		t.Error("print/parse round trip did not produce an equal type")
	}
}

func TestRegistryIsolation(t *testing.T) {
	reg := ndtypes.NewRegistry()
	if _, err := ndtypes.ParseProgramIn("typedef handle = pointer(void)\n", reg); err != nil {
		t.Fatalf("ParseProgramIn failed: %v", err)
	}
	if _, ok := reg.TypedefFind("handle"); !ok {
		t.Error("typedef not registered in the isolated registry")
	}
	if _, ok := ndtypes.TypedefFind("handle"); ok {
		t.Error("typedef leaked into the process-wide registry")
	}
}

func TestMatchTypevar(t *testing.T) {
	ndtypes.Init()
	defer ndtypes.Finalize()

	pattern, err := ndtypes.ParseType("T")
	if err != nil {
		t.Fatal(err)
	}
	concrete, err := ndtypes.ParseType("int32")
	if err != nil {
		t.Fatal(err)
	}
	if !ndtypes.Match(pattern, concrete) {
		t.Error("a bare Typevar should match any concrete type")
	}
}

func TestKindOfUnboundTypedef(t *testing.T) {
	_, err := ndtypes.ParseType("not_a_typedef")
	if err == nil {
		t.Fatal("expected an error resolving an unbound nominal name")
	}
	if got := ndtypes.KindOf(err); got != ndtypes.ValueError {
		t.Errorf("KindOf(err) = %v, want ValueError", got)
	}
}
