package typesystem

import "testing"

func TestEncodingFromStringRoundTrip(t *testing.T) {
	for _, name := range []string{"ascii", "utf8", "utf16", "utf32", "ucs2"} {
		enc, ok := EncodingFromString(name)
		if !ok {
			t.Fatalf("EncodingFromString(%q) failed", name)
		}
		if enc.String() != name {
			t.Errorf("got %q, want %q", enc.String(), name)
		}
	}
}

func TestEncodingUnitSizes(t *testing.T) {
	cases := map[Encoding]uint8{
		Ascii: 1,
		Utf8:  1,
		Utf16: 2,
		Ucs2:  2,
		Utf32: 4,
	}
	for enc, want := range cases {
		if got := enc.Unit(); got != want {
			t.Errorf("%s.Unit() = %d, want %d", enc, got, want)
		}
	}
}

func TestValidateUTF16Accepts(t *testing.T) {
	if err := ValidateUTF16("hello"); err != nil {
		t.Errorf("plain ASCII should validate: %v", err)
	}
	if err := ValidateUTF16("café \U0001F600"); err != nil {
		t.Errorf("BMP + astral-plane text should validate: %v", err)
	}
}

func TestValidateUTF16RejectsInvalidUTF8(t *testing.T) {
	invalid := string([]byte{0xff, 0xfe, 0x80})
	if err := ValidateUTF16(invalid); err == nil {
		t.Error("malformed UTF-8 input must be rejected, not silently replaced")
	}
}
