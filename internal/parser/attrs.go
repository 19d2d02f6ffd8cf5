package parser

import (
	"strconv"

	"github.com/wesm/libndtypes2/internal/diagnostics"
	"github.com/wesm/libndtypes2/internal/token"
)

// AttrValueKind is the declared value type of one recognized attribute.
type AttrValueKind int

const (
	AttrInt64 AttrValueKind = iota
	AttrString
)

// AttrSpec describes one recognized attribute name for a production.
type AttrSpec struct {
	Name     string
	Required bool
	Kind     AttrValueKind
	// Max bounds an AttrInt64 value to [0, *Max] inclusive. nil means
	// unbounded (e.g. stride, which may be negative or wider than a
	// byte). Every attribute that ends up cast to an unsigned field
	// (align, pad, size) sets this so a negative or out-of-range literal
	// is rejected here instead of silently wrapping at the cast.
	Max *int64
}

// maxUint8 is the Max bound for align, which is stored in a uint8, and
// for field pad, which is held to the same [0, 255] range.
var maxUint8 = int64(255)

// maxInt64 is the Max bound for fixed_bytes size, which is stored in a
// uint64; it only rules out negative sizes.
var maxInt64 = int64(1<<63 - 1)

// AttrTable is the full recognized attribute set for one production,
// per the table in §4.7.
type AttrTable []AttrSpec

func (t AttrTable) find(name string) (AttrSpec, bool) {
	for _, s := range t {
		if s.Name == name {
			return s, true
		}
	}
	return AttrSpec{}, false
}

// AttrValue is one parsed name=value attribute.
type AttrValue struct {
	Kind AttrValueKind
	Int  int64
	Str  string
}

var (
	fixedDimAttrs = AttrTable{{Name: "stride", Kind: AttrInt64}}
	varDimAttrs   = AttrTable{{Name: "stride", Kind: AttrInt64}}
	bytesAttrs    = AttrTable{{Name: "align", Required: true, Kind: AttrInt64, Max: &maxUint8}}
	fixedBytesAttrs = AttrTable{
		{Name: "size", Required: true, Kind: AttrInt64, Max: &maxInt64},
		{Name: "align", Kind: AttrInt64, Max: &maxUint8},
	}
	tupleFieldAttrs = AttrTable{
		{Name: "pad", Kind: AttrInt64, Max: &maxUint8},
		{Name: "align", Kind: AttrInt64, Max: &maxUint8},
	}
	recordFieldAttrs = AttrTable{
		{Name: "pad", Kind: AttrInt64, Max: &maxUint8},
		{Name: "align", Kind: AttrInt64, Max: &maxUint8},
	}
	arrayAttrs = AttrTable{{Name: "order", Kind: AttrString}}
)

// parseAttrList consumes '(' attr (',' attr)* ')' — curToken must be
// LPAREN on entry — validating each name/value against spec. Every
// attribute in the list is walked and recorded in `seen`, unlike the
// source's per-production loops, which read seq->ptr[0] on every
// iteration instead of seq->ptr[i] and so silently dropped every
// attribute past the first; here a second `align=` or `stride=` is
// caught as a duplicate rather than ignored.
func (p *Parser) parseAttrList(spec AttrTable, ctx *diagnostics.Context) (map[string]AttrValue, bool) {
	p.nextToken() // consume '('

	result := make(map[string]AttrValue)
	seen := make(map[string]bool)

	for p.curToken.Type != token.RPAREN {
		if p.curToken.Type == token.ILLEGAL {
			ctx.Errorf(diagnostics.LexError, "invalid input %q in attribute list", p.curToken.Literal)
			return nil, false
		}
		if p.curToken.Type != token.IDENT {
			ctx.Fail(diagnostics.InvalidArgumentError, "expected attribute name")
			return nil, false
		}
		name := p.curToken.Literal

		attrSpec, ok := spec.find(name)
		if !ok {
			ctx.Errorf(diagnostics.InvalidArgumentError, "unknown attribute %q", name)
			return nil, false
		}
		if seen[name] {
			ctx.Errorf(diagnostics.InvalidArgumentError, "duplicate attribute %q", name)
			return nil, false
		}

		p.nextToken() // consume name
		if p.curToken.Type != token.ASSIGN {
			ctx.Errorf(diagnostics.InvalidArgumentError, "expected '=' after attribute %q", name)
			return nil, false
		}
		p.nextToken() // consume '='

		var value AttrValue
		switch attrSpec.Kind {
		case AttrInt64:
			if p.curToken.Type == token.ILLEGAL {
				ctx.Errorf(diagnostics.LexError, "invalid input %q for attribute %q", p.curToken.Literal, name)
				return nil, false
			}
			if p.curToken.Type != token.INT {
				ctx.Errorf(diagnostics.InvalidArgumentError, "attribute %q must be an integer", name)
				return nil, false
			}
			n, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
			if err != nil {
				ctx.Errorf(diagnostics.ValueError, "attribute %q: malformed integer %q", name, p.curToken.Literal)
				return nil, false
			}
			if attrSpec.Max != nil && (n < 0 || n > *attrSpec.Max) {
				ctx.Errorf(diagnostics.ValueError, "attribute %q: %d is out of range [0, %d]", name, n, *attrSpec.Max)
				return nil, false
			}
			value = AttrValue{Kind: AttrInt64, Int: n}
			p.nextToken()
		case AttrString:
			if p.curToken.Type == token.ILLEGAL {
				ctx.Errorf(diagnostics.LexError, "invalid input %q for attribute %q", p.curToken.Literal, name)
				return nil, false
			}
			if p.curToken.Type != token.STRING {
				ctx.Errorf(diagnostics.InvalidArgumentError, "attribute %q must be a string", name)
				return nil, false
			}
			value = AttrValue{Kind: AttrString, Str: p.curToken.Literal}
			p.nextToken()
		}

		result[name] = value
		seen[name] = true

		if p.curToken.Type == token.COMMA {
			p.nextToken()
			continue
		}
		break
	}

	if p.curToken.Type != token.RPAREN {
		ctx.Fail(diagnostics.InvalidArgumentError, "expected ')' to close attribute list")
		return nil, false
	}
	p.nextToken() // consume ')'

	for _, s := range spec {
		if s.Required && !seen[s.Name] {
			ctx.Errorf(diagnostics.InvalidArgumentError, "missing required attribute %q", s.Name)
			return nil, false
		}
	}

	return result, true
}

func attrAlignPad(attrs map[string]AttrValue) (align *uint8, pad *uint64) {
	if v, ok := attrs["align"]; ok {
		a := uint8(v.Int)
		align = &a
	}
	if v, ok := attrs["pad"]; ok {
		pd := uint64(v.Int)
		pad = &pd
	}
	return
}
