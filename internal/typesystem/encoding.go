package typesystem

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/wesm/libndtypes2/internal/config"
)

// Encoding is the character encoding tag carried by Char and FixedString.
type Encoding int

const (
	Ascii Encoding = iota
	Utf8
	Utf16
	Utf32
	Ucs2
)

var encodingNames = map[Encoding]string{
	Ascii: "ascii",
	Utf8:  "utf8",
	Utf16: "utf16",
	Utf32: "utf32",
	Ucs2:  "ucs2",
}

var encodingByName = map[string]Encoding{
	"ascii": Ascii,
	"utf8":  Utf8,
	"utf16": Utf16,
	"utf32": Utf32,
	"ucs2":  Ucs2,
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return "unknown"
}

// EncodingFromString parses one of the §3.1 encoding identifiers. The
// second return is false for any other spelling.
func EncodingFromString(s string) (Encoding, bool) {
	enc, ok := encodingByName[s]
	return enc, ok
}

// Unit reports the encoding's code unit size in bytes, used by the
// layout engine for FixedString and by NewChar for Char's size/align.
func (e Encoding) Unit() uint8 {
	switch e {
	case Ascii, Utf8:
		return config.UnitAscii
	case Utf16, Ucs2:
		return config.UnitUtf16
	case Utf32:
		return config.UnitUtf32
	default:
		return 1
	}
}

var utf16Codec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ValidateUTF16 reports whether s is representable without loss in
// UTF-16 (§3.1's wire encoding for Utf16/Ucs2): every code point must
// encode to one or two 16-bit units with no unpaired surrogate. It is
// used by categorical string-literal construction, since a categorical
// value is stored as its UTF-16 transcoding on the wire regardless of
// the source encoding of the datashape text itself.
func ValidateUTF16(s string) error {
	// The encoder silently replaces malformed UTF-8 with U+FFFD, so the
	// input is checked first.
	if !utf8.ValidString(s) {
		return fmt.Errorf("string %q is not valid UTF-8 and cannot be transcoded to UTF-16 without loss", s)
	}
	if _, err := utf16Codec.NewEncoder().String(s); err != nil {
		return fmt.Errorf("string %q is not representable in UTF-16: %w", s, err)
	}
	return nil
}
