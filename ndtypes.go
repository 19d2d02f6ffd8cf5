// Package ndtypes is the public facade over libndtypes2: parse, build,
// compare, and print datashape types without reaching into internal/.
// Grounded on pkg/ext's alias-and-forward pattern (thin type aliases
// plus a handful of constructor wrappers over an internal engine),
// adapted here from a scripting-language FFI surface to a type-system
// library's public API.
package ndtypes

import (
	"github.com/wesm/libndtypes2/internal/diagnostics"
	"github.com/wesm/libndtypes2/internal/parser"
	"github.com/wesm/libndtypes2/internal/printer"
	"github.com/wesm/libndtypes2/internal/registry"
	"github.com/wesm/libndtypes2/internal/typesystem"
)

// Type is a fully resolved datashape type: a dtype, a Tuple/Record
// aggregate, an Array, or one of the abstract pattern-matching kinds.
type Type = typesystem.Type

// Dim is one dimension of an Array: fixed, var, symbolic, or ellipsis.
type Dim = typesystem.Dim

// TypedValue pairs a Type with a concrete Go value, used for
// Categorical's literal set.
type TypedValue = typesystem.TypedValue

// Encoding is a string/char encoding tag (Ascii, Utf8, Utf16, Utf32, Ucs2).
type Encoding = typesystem.Encoding

const (
	Ascii = typesystem.Ascii
	Utf8  = typesystem.Utf8
	Utf16 = typesystem.Utf16
	Utf32 = typesystem.Utf32
	Ucs2  = typesystem.Ucs2
)

// ErrorKind classifies why a call failed (ValueError, TypeError, ...).
type ErrorKind = diagnostics.Kind

const (
	Success              = diagnostics.Success
	MemoryError          = diagnostics.MemoryError
	ValueError           = diagnostics.ValueError
	TypeError            = diagnostics.TypeError
	InvalidArgumentError = diagnostics.InvalidArgumentError
	RuntimeError         = diagnostics.RuntimeError
	NotImplementedError  = diagnostics.NotImplementedError
	LexError             = diagnostics.LexError
	ParseError           = diagnostics.ParseError
	OSError              = diagnostics.OSError
)

// KindOf reports the ErrorKind carried by an error that came from a
// failed Context, as the errors of ParseType, ParseProgram, ParseFile and
// TypedefAdd do. It reports Success for nil and RuntimeError for any
// other error, including the wrapped errors LoadAliases returns.
func KindOf(err error) ErrorKind { return diagnostics.KindOf(err) }

// Registry is a typedef name -> Type table. Most programs use the
// process-wide singleton (Init/Finalize/TypedefAdd/TypedefFind) rather
// than constructing their own.
type Registry = registry.Registry

// NewRegistry returns a freshly initialized Registry, useful for tests
// and any program that wants typedef namespaces isolated from the
// process-wide one.
func NewRegistry() *Registry {
	r := registry.New()
	r.Init()
	return r
}

// Init populates the process-wide registry with the platform pointer
// aliases (size, intptr, uintptr).
func Init() { registry.Init() }

// Finalize empties the process-wide registry.
func Finalize() { registry.Finalize() }

// TypedefAdd binds name to t in the process-wide registry.
func TypedefAdd(name string, t Type) error {
	ctx := diagnostics.New()
	registry.TypedefAdd(name, t, ctx)
	return ctx.Error()
}

// TypedefFind looks up name in the process-wide registry.
func TypedefFind(name string) (Type, bool) { return registry.TypedefFind(name) }

// ParseType parses a single datashape expression against the
// process-wide registry.
func ParseType(src string) (Type, error) {
	return parser.ParseType(src, registry.Global())
}

// ParseTypeIn parses a single datashape expression against reg,
// resolving Nominal references and never mutating the process-wide
// registry.
func ParseTypeIn(src string, reg *Registry) (Type, error) {
	return parser.ParseType(src, reg)
}

// ParseProgram parses a sequence of `typedef` statements followed by an
// optional trailing datashape expression against the process-wide
// registry, returning the trailing expression's Type (nil if the
// source was typedefs only).
func ParseProgram(src string) (Type, error) {
	return parser.ParseProgram(src, registry.Global())
}

// ParseProgramIn is ParseProgram against an explicit registry.
func ParseProgramIn(src string, reg *Registry) (Type, error) {
	return parser.ParseProgram(src, reg)
}

// ParseFile parses the named file as a program (see ParseProgram),
// against the process-wide registry.
func ParseFile(path string) (Type, error) {
	return parser.ParseFile(path, registry.Global())
}

// LoadAliases reads a YAML file of name -> datashape string aliases
// into the process-wide registry.
func LoadAliases(path string) error {
	return registry.Global().LoadAliases(path, ParseType)
}

// Equal reports whether a and b are structurally equal types (§4.4):
// same tag, same recursively-equal payloads, same explicit layout
// metadata. It never resolves Nominal references.
func Equal(a, b Type) bool { return typesystem.Equal(a, b) }

// EqualDim is Equal's counterpart for dimensions.
func EqualDim(a, b Dim) bool { return typesystem.EqualDim(a, b) }

// Match reports whether concrete inhabits the schema described by
// pattern (§4.5): Any and the kind wildcards match their member tags, a
// Typevar binds on first use and must then meet equal types, a
// SymbolicDim binds to one fixed shape the same way, and an EllipsisDim
// absorbs zero or more leading dimensions.
func Match(pattern, concrete Type) bool {
	return typesystem.Match(pattern, concrete)
}

// Print renders t in canonical form: the single-line textual
// representation that ParseType reads back to an equal type.
func Print(t Type) string { return printer.Print(t) }

// PrintDim renders a single dimension in canonical form.
func PrintDim(d Dim) string { return printer.PrintDim(d) }

// PrintMeta renders t the way Print does, with each type node
// additionally carrying its computed size/align/abstract as a
// trailing `#{...}` comment. Not reparsable; for humans and logs.
func PrintMeta(t Type) string { return printer.PrintMeta(t) }

// PrintIndented renders t breaking Tuple/Record fields one per line,
// indented by nesting depth.
func PrintIndented(t Type) string { return printer.PrintIndented(t) }
