// Package printer renders typesystem.Type/Dim values back to datashape
// source text (§4.8): a canonical single-line form that internal/parser
// can read back to an equal type, a meta-annotated form that inlines
// each node's computed size/align, and an indented form that breaks
// Tuple/Record fields one per line. All three share one small
// buffer-and-indent printer, in the shape of prettyprinter's
// CodePrinter (buf/indent/column), generalized from an AST visitor to
// a direct recursive walk over Type/Dim since datashape has no
// expression grammar to speak of.
package printer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/wesm/libndtypes2/internal/typesystem"
)

type printer struct {
	buf       bytes.Buffer
	indent    int
	column    int
	withMeta  bool
	multiline bool
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *printer) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

func (p *printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

// Print renders t in canonical form: the single-line textual
// representation that internal/parser.ParseType reads back to an
// equal type (§8's round-trip property). It carries no layout
// metadata beyond what the grammar itself requires (explicit
// align/pad overrides and explicit FixedDim strides).
func Print(t typesystem.Type) string {
	p := &printer{}
	p.printType(t)
	return p.buf.String()
}

// PrintDim renders a single dimension in canonical form, used when
// composing a dim_seq by hand (tests, diagnostics).
func PrintDim(d typesystem.Dim) string {
	p := &printer{}
	p.printDim(d)
	return p.buf.String()
}

// PrintMeta renders t the way Print does, but with each type node
// additionally carrying its computed size/align/abstract as a trailing
// `#{...}` comment — never part of the grammar, so this
// output is meant for humans and logs, not for feeding back to the
// parser.
func PrintMeta(t typesystem.Type) string {
	p := &printer{withMeta: true}
	p.printType(t)
	return p.buf.String()
}

// PrintIndented renders t breaking Tuple/Record fields one per line,
// indented by nesting depth, e.g. for a REPL or error message showing
// a large record comfortably.
func PrintIndented(t typesystem.Type) string {
	p := &printer{multiline: true}
	p.printType(t)
	return p.buf.String()
}

func (p *printer) metaSuffix(t typesystem.Type) {
	if !p.withMeta {
		return
	}
	if t.Abstract() {
		p.write(" #{abstract}")
		return
	}
	p.write(fmt.Sprintf(" #{size=%d, align=%d}", t.Size(), t.Align()))
}

func (p *printer) printType(t typesystem.Type) {
	switch tv := t.(type) {
	case typesystem.AnyKind:
		p.write("Any")
	case typesystem.ScalarKind:
		p.write("Scalar")
	case typesystem.SignedKind:
		p.write("Signed")
	case typesystem.UnsignedKind:
		p.write("Unsigned")
	case typesystem.RealKind:
		p.write("Real")
	case typesystem.ComplexKind:
		p.write("Complex")
	case typesystem.FixedStringKind:
		p.write("FixedStringKind")
	case typesystem.FixedBytesKind:
		p.write("FixedBytesKind")

	case typesystem.Typevar:
		p.write(tv.Name)
	case typesystem.Nominal:
		p.write(tv.Name)

	case typesystem.Void:
		p.write("void")
	case typesystem.Bool:
		p.write("bool")
	case typesystem.Int8:
		p.write("int8")
	case typesystem.Int16:
		p.write("int16")
	case typesystem.Int32:
		p.write("int32")
	case typesystem.Int64:
		p.write("int64")
	case typesystem.Uint8:
		p.write("uint8")
	case typesystem.Uint16:
		p.write("uint16")
	case typesystem.Uint32:
		p.write("uint32")
	case typesystem.Uint64:
		p.write("uint64")
	case typesystem.Float16:
		p.write("float16")
	case typesystem.Float32:
		p.write("float32")
	case typesystem.Float64:
		p.write("float64")
	case typesystem.Complex64:
		p.write("complex64")
	case typesystem.Complex128:
		p.write("complex128")
	case typesystem.String:
		p.write("string")

	case typesystem.Char:
		p.write("char(" + tv.Encoding.String() + ")")

	case typesystem.Bytes:
		p.write(fmt.Sprintf("bytes(align=%d)", tv.TargetAlign))

	case typesystem.FixedString:
		if tv.Encoding == typesystem.Utf8 {
			p.write(fmt.Sprintf("fixed_string(%d)", tv.Size))
		} else {
			p.write(fmt.Sprintf("fixed_string(%d, %s)", tv.Size, tv.Encoding.String()))
		}

	case typesystem.FixedBytes:
		p.write(fmt.Sprintf("fixed_bytes(size=%d, align=%d)", tv.Size, tv.Align))

	case typesystem.Categorical:
		p.write("categorical(")
		for i, v := range tv.Values {
			if i > 0 {
				p.write(", ")
			}
			p.printTypedValue(v)
		}
		p.write(")")

	case typesystem.Pointer:
		p.write("pointer(")
		p.printType(tv.Inner)
		p.write(")")

	case typesystem.Option:
		p.write("?")
		p.printType(tv.Inner)

	case typesystem.Constr:
		p.write(tv.Name + "(")
		p.printType(tv.Inner)
		p.write(")")

	case typesystem.Tuple:
		p.printTuple(tv)

	case typesystem.Record:
		p.printRecord(tv)

	case typesystem.Function:
		posTuple := tv.Pos.(typesystem.Tuple)
		kwdsRecord := tv.Kwds.(typesystem.Record)
		p.printFunctionParams(posTuple, kwdsRecord)
		p.write(" -> ")
		p.printType(tv.Ret)

	case typesystem.Array:
		p.printArray(tv)

	default:
		p.write(fmt.Sprintf("<unknown type %T>", t))
		return
	}

	p.metaSuffix(t)
}

func (p *printer) printTypedValue(v typesystem.TypedValue) {
	switch val := v.Value.(type) {
	case string:
		p.write(strconv.Quote(val))
	case int64:
		p.write(strconv.FormatInt(val, 10))
	default:
		p.write(fmt.Sprintf("%v", val))
	}
}

func (p *printer) printFieldAttrs(align uint8, pad uint64, hasExplicitAlign, hasExplicitPad bool) {
	if !hasExplicitAlign && !hasExplicitPad {
		return
	}
	p.write("(")
	wrote := false
	if hasExplicitPad {
		p.write(fmt.Sprintf("pad=%d", pad))
		wrote = true
	}
	if hasExplicitAlign {
		if wrote {
			p.write(", ")
		}
		p.write(fmt.Sprintf("align=%d", align))
	}
	p.write(")")
}

func (p *printer) printTuple(tv typesystem.Tuple) {
	p.write("(")
	if p.multiline && len(tv.Fields) > 0 {
		p.writeln()
		p.indent++
		for i, f := range tv.Fields {
			p.writeIndent()
			p.printType(f.Type)
			p.printFieldAttrs(f.Align, f.Pad, f.Align != f.Type.Align(), f.Pad != 0)
			if i < len(tv.Fields)-1 {
				p.write(",")
			}
			p.writeln()
		}
		p.indent--
		p.writeIndent()
	} else {
		for i, f := range tv.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.printType(f.Type)
			p.printFieldAttrs(f.Align, f.Pad, f.Align != f.Type.Align(), f.Pad != 0)
		}
	}
	p.write(")")
}

func (p *printer) printRecord(rv typesystem.Record) {
	p.write("{")
	if p.multiline && len(rv.Fields) > 0 {
		p.writeln()
		p.indent++
		for i, f := range rv.Fields {
			p.writeIndent()
			p.write(f.Name + " : ")
			p.printType(f.Type)
			p.printFieldAttrs(f.Align, f.Pad, f.Align != f.Type.Align(), f.Pad != 0)
			if i < len(rv.Fields)-1 {
				p.write(",")
			}
			p.writeln()
		}
		p.indent--
		p.writeIndent()
	} else {
		for i, f := range rv.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(f.Name + " : ")
			p.printType(f.Type)
			p.printFieldAttrs(f.Align, f.Pad, f.Align != f.Type.Align(), f.Pad != 0)
		}
	}
	p.write("}")
}

func (p *printer) printFunctionParams(pos typesystem.Tuple, kwds typesystem.Record) {
	p.write("(")
	n := 0
	for _, f := range pos.Fields {
		if n > 0 {
			p.write(", ")
		}
		p.printType(f.Type)
		n++
	}
	for _, f := range kwds.Fields {
		if n > 0 {
			p.write(", ")
		}
		p.write(f.Name + " : ")
		p.printType(f.Type)
		n++
	}
	p.write(")")
}

func (p *printer) printArray(av typesystem.Array) {
	for _, d := range av.Dims {
		p.printDim(d)
		p.write(" * ")
	}
	p.printType(av.Dtype)
	if av.Order == 'F' {
		p.write(` & (order="F")`)
	}
}

func (p *printer) printDim(d typesystem.Dim) {
	switch dv := d.(type) {
	case typesystem.FixedDimKind:
		p.write("fixed")
	case typesystem.FixedDim:
		if dv.Stride != int64(dv.Itemsize()) {
			p.write(fmt.Sprintf("fixed(%d, stride=%d)", dv.Shape, dv.Stride))
		} else {
			p.write(strconv.FormatUint(dv.Shape, 10))
		}
	case typesystem.VarDim:
		if dv.Stride != 0 {
			p.write(fmt.Sprintf("var(stride=%d)", dv.Stride))
		} else {
			p.write("var")
		}
	case typesystem.SymbolicDim:
		p.write(dv.Name)
	case typesystem.EllipsisDim:
		p.write("...")
	}
}
