// Package parser implements a recursive-descent reader that builds
// typesystem.Type/Dim values directly from datashape source text (§6.2),
// with no intermediate AST — each grammar production constructs its
// typesystem value as soon as enough tokens have been consumed to know
// it, the way the lexer/parser pair in funxy builds its evaluator tree
// straight out of Parse.
package parser

import (
	"os"
	"strconv"

	"github.com/wesm/libndtypes2/internal/config"
	"github.com/wesm/libndtypes2/internal/diagnostics"
	"github.com/wesm/libndtypes2/internal/lexer"
	"github.com/wesm/libndtypes2/internal/registry"
	"github.com/wesm/libndtypes2/internal/token"
	"github.com/wesm/libndtypes2/internal/typesystem"
)

// Parser reads one datashape source string against a typedef registry,
// resolving Nominal references and installing typedef statements there.
type Parser struct {
	l         *lexer.Lexer
	reg       *registry.Registry
	curToken  token.Token
	peekToken token.Token
}

// New returns a Parser over input, resolving and registering typedefs
// against reg.
func New(input string, reg *registry.Registry) *Parser {
	p := &Parser{l: lexer.New(input), reg: reg}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// ParseType parses src as a single datashape value, resolving Nominal
// references against reg. The root package's LoadAliases wraps it as
// the ParseTypeFunc it hands to registry.LoadAliases.
func ParseType(src string, reg *registry.Registry) (typesystem.Type, error) {
	p := New(src, reg)
	ctx := diagnostics.New()
	t, ok := p.parseDatashape(ctx)
	if !ok {
		return nil, ctx.Error()
	}
	if p.curToken.Type != token.EOF {
		ctx.Errorf(diagnostics.ParseError, "parser: unexpected trailing token %q at end of input", p.curToken.Literal)
		return nil, ctx.Error()
	}
	return t, nil
}

// ParseProgram parses zero or more `typedef NAME = datashape` statements
// followed by an optional final anonymous datashape (§6.4), registering
// each typedef against reg as it is parsed and returning the trailing
// expression's type, if any.
func ParseProgram(src string, reg *registry.Registry) (typesystem.Type, error) {
	p := New(src, reg)
	ctx := diagnostics.New()

	var last typesystem.Type
	for p.curToken.Type == token.TYPEDEF {
		if !p.parseTypedefStatement(ctx) {
			return nil, ctx.Error()
		}
	}
	if p.curToken.Type != token.EOF {
		t, ok := p.parseDatashape(ctx)
		if !ok {
			return nil, ctx.Error()
		}
		last = t
		if p.curToken.Type != token.EOF {
			ctx.Errorf(diagnostics.ParseError, "parser: unexpected trailing token %q at end of input", p.curToken.Literal)
			return nil, ctx.Error()
		}
	}
	return last, nil
}

// ParseFile reads path and parses it as a program (§6.4).
func ParseFile(path string, reg *registry.Registry) (typesystem.Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		ctx := diagnostics.New()
		ctx.Errorf(diagnostics.OSError, "parser: reading %s: %v", path, err)
		return nil, ctx.Error()
	}
	trimmed := path
	if !config.HasSourceExt(trimmed) {
		// Not fatal: the grammar doesn't require a particular extension,
		// this just mirrors config's naming convention for callers that
		// do care (e.g. a future `ndtypes` CLI globbing *.ndt files).
		_ = config.TrimSourceExt(trimmed)
	}
	return ParseProgram(string(data), reg)
}

// parseTypedefStatement parses `typedef NAME = datashape`, using the
// registry's two-phase Reserve/Commit so the datashape body may refer
// to NAME itself (recursive types, §4.6).
func (p *Parser) parseTypedefStatement(ctx *diagnostics.Context) bool {
	p.nextToken() // consume 'typedef'
	if p.curToken.Type != token.IDENT {
		ctx.Fail(diagnostics.ParseError, "expected identifier after 'typedef'")
		return false
	}
	name := p.curToken.Literal
	p.nextToken()

	if p.curToken.Type != token.ASSIGN {
		ctx.Fail(diagnostics.ParseError, "expected '=' in typedef statement")
		return false
	}
	p.nextToken()

	if !p.reg.Reserve(name) {
		ctx.Errorf(diagnostics.ValueError, "typedef: %q is already bound", name)
		return false
	}

	body, ok := p.parseDatashape(ctx)
	if !ok {
		p.reg.Abandon(name)
		return false
	}

	if !p.reg.Commit(name, body, ctx) {
		p.reg.Abandon(name)
		return false
	}
	return true
}

// parseDatashape parses one full datashape production: an optional
// leading dim_seq (each dim separated by '*', the last '*' introducing
// the dtype), then the dtype itself, then an optional array-level
// '&' attr_list for dimension order.
//
// The grammar never places a bare '*' inside a dtype (arrays cannot
// nest as another array's dtype, §3.5), so a single left-to-right scan
// with one token of lookahead is enough to tell a dimension from the
// dtype that terminates the sequence: an unreserved bare NAME is a
// SymbolicDim only when immediately followed by '*'.
func (p *Parser) parseDatashape(ctx *diagnostics.Context) (typesystem.Type, bool) {
	var dims []typesystem.Dim

dimLoop:
	for {
		switch p.curToken.Type {
		case token.INT:
			n, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
			if err != nil || n < 0 {
				ctx.Errorf(diagnostics.ValueError, "fixed dimension: malformed shape %q", p.curToken.Literal)
				return nil, false
			}
			p.nextToken()
			if p.curToken.Type != token.STAR {
				ctx.Fail(diagnostics.ParseError, "a bare integer is only valid as a fixed dimension, followed by '*'")
				return nil, false
			}
			p.nextToken()
			dims = append(dims, typesystem.NewFixedDim(uint64(n), nil))
			continue

		case token.ELLIPSIS:
			p.nextToken()
			if p.curToken.Type != token.STAR {
				ctx.Fail(diagnostics.ParseError, "'...' must be followed by '*'")
				return nil, false
			}
			p.nextToken()
			dims = append(dims, typesystem.NewEllipsisDim())
			continue

		case token.IDENT:
			switch p.curToken.Literal {
			case "fixed":
				d, ok := p.parseFixedDimKeyword(ctx)
				if !ok {
					return nil, false
				}
				if p.curToken.Type != token.STAR {
					ctx.Fail(diagnostics.ParseError, "'fixed' dimension must be followed by '*'")
					return nil, false
				}
				p.nextToken()
				dims = append(dims, d)
				continue
			case "var":
				d, ok := p.parseVarDimKeyword(ctx)
				if !ok {
					return nil, false
				}
				if p.curToken.Type != token.STAR {
					ctx.Fail(diagnostics.ParseError, "'var' dimension must be followed by '*'")
					return nil, false
				}
				p.nextToken()
				dims = append(dims, d)
				continue
			default:
				if isDtypeKeyword(p.curToken.Literal) {
					break dimLoop
				}
				if p.peekToken.Type == token.STAR {
					name := p.curToken.Literal
					p.nextToken() // consume NAME
					p.nextToken() // consume '*'
					dims = append(dims, typesystem.NewSymbolicDim(name))
					continue
				}
				break dimLoop
			}
		default:
			break dimLoop
		}
	}

	dtype, ok := p.parseDtype(ctx)
	if !ok {
		return nil, false
	}

	if len(dims) == 0 {
		return dtype, true
	}

	order := byte('C')
	if p.curToken.Type == token.AMP {
		p.nextToken() // consume '&'
		if p.curToken.Type != token.LPAREN {
			ctx.Fail(diagnostics.ParseError, "expected '(' after '&'")
			return nil, false
		}
		attrs, ok := p.parseAttrList(arrayAttrs, ctx)
		if !ok {
			return nil, false
		}
		if v, present := attrs["order"]; present {
			switch v.Str {
			case "C", "F":
				order = v.Str[0]
			default:
				ctx.Errorf(diagnostics.InvalidArgumentError, "array: order must be \"C\" or \"F\", got %q", v.Str)
				return nil, false
			}
		}
	}

	return typesystem.NewArray(order, dims, dtype, ctx)
}

func (p *Parser) parseFixedDimKeyword(ctx *diagnostics.Context) (typesystem.Dim, bool) {
	p.nextToken() // consume 'fixed'
	if p.curToken.Type != token.LPAREN {
		return typesystem.NewFixedDimKind(), true
	}
	p.nextToken() // consume '('
	if p.curToken.Type != token.INT {
		ctx.Fail(diagnostics.ParseError, "fixed(...): expected a shape integer")
		return nil, false
	}
	shape, err := strconv.ParseUint(p.curToken.Literal, 10, 64)
	if err != nil {
		ctx.Errorf(diagnostics.ValueError, "fixed(...): malformed shape %q", p.curToken.Literal)
		return nil, false
	}
	p.nextToken()

	var stride *int64
	if p.curToken.Type == token.COMMA {
		p.nextToken()
		if p.curToken.Type != token.IDENT || p.curToken.Literal != "stride" {
			ctx.Fail(diagnostics.InvalidArgumentError, "fixed(...): expected 'stride' attribute")
			return nil, false
		}
		p.nextToken()
		if p.curToken.Type != token.ASSIGN {
			ctx.Fail(diagnostics.ParseError, "expected '=' after 'stride'")
			return nil, false
		}
		p.nextToken()
		if p.curToken.Type != token.INT {
			ctx.Fail(diagnostics.InvalidArgumentError, "fixed(...): stride must be an integer")
			return nil, false
		}
		n, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
		if err != nil {
			ctx.Errorf(diagnostics.ValueError, "fixed(...): malformed stride %q", p.curToken.Literal)
			return nil, false
		}
		stride = &n
		p.nextToken()
	}
	if p.curToken.Type != token.RPAREN {
		ctx.Fail(diagnostics.ParseError, "expected ')' to close fixed(...)")
		return nil, false
	}
	p.nextToken()
	return typesystem.NewFixedDim(shape, stride), true
}

func (p *Parser) parseVarDimKeyword(ctx *diagnostics.Context) (typesystem.Dim, bool) {
	p.nextToken() // consume 'var'
	var stride int64
	if p.curToken.Type == token.LPAREN {
		attrs, ok := p.parseAttrList(varDimAttrs, ctx)
		if !ok {
			return nil, false
		}
		if v, present := attrs["stride"]; present {
			stride = v.Int
		}
	}
	return typesystem.NewVarDim(stride), true
}

// isTypevarName applies the single decided heuristic for distinguishing
// a shape/dtype Typevar from a Nominal reference when the grammar gives
// both the same NAME token: a bare identifier of one uppercase letter
// optionally followed by digits (T, N, M, T0, T1, ...) is a Typevar;
// anything else is Nominal (or Constr, if immediately applied to a
// parenthesized argument).
func isTypevarName(name string) bool {
	if len(name) == 0 {
		return false
	}
	r := rune(name[0])
	if r < 'A' || r > 'Z' {
		return false
	}
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// parseDtype parses the dtype production: the non-dimension core of a
// datashape (scalar, kind, nominal/constr/typevar, option, tuple,
// record, or function).
func (p *Parser) parseDtype(ctx *diagnostics.Context) (typesystem.Type, bool) {
	switch p.curToken.Type {
	case token.QUESTION:
		p.nextToken()
		inner, ok := p.parseDtype(ctx)
		if !ok {
			return nil, false
		}
		return typesystem.NewOption(inner, ctx)

	case token.LBRACE:
		return p.parseRecordLiteral(ctx)

	case token.LPAREN:
		pos, kwds, ok := p.parseParenGroup(ctx)
		if !ok {
			return nil, false
		}
		if p.curToken.Type == token.ARROW {
			p.nextToken()
			ret, ok := p.parseDatashape(ctx)
			if !ok {
				return nil, false
			}
			posType, ok := typesystem.NewTuple(false, pos, ctx)
			if !ok {
				return nil, false
			}
			kwdsType, ok := typesystem.NewRecord(false, kwds, ctx)
			if !ok {
				return nil, false
			}
			return typesystem.NewFunction(ret, posType, kwdsType, ctx)
		}
		if len(kwds) > 0 {
			ctx.Fail(diagnostics.ParseError, "named fields are only valid in a function parameter list")
			return nil, false
		}
		return typesystem.NewTuple(false, pos, ctx)

	case token.IDENT:
		return p.parseIdentDtype(ctx)

	case token.ILLEGAL:
		ctx.Errorf(diagnostics.LexError, "invalid input %q while parsing a datashape", p.curToken.Literal)
		return nil, false
	}

	ctx.Errorf(diagnostics.ParseError, "unexpected token %q while parsing a datashape", p.curToken.Literal)
	return nil, false
}

func (p *Parser) parseIdentDtype(ctx *diagnostics.Context) (typesystem.Type, bool) {
	name := p.curToken.Literal

	if ctor, ok := scalarConstructors[name]; ok {
		p.nextToken()
		return ctor(), true
	}
	if ctor, ok := kindConstructors[name]; ok {
		p.nextToken()
		return ctor(), true
	}

	switch name {
	case "string":
		p.nextToken()
		return typesystem.NewString(), true
	case "bytes":
		p.nextToken()
		if p.curToken.Type != token.LPAREN {
			ctx.Fail(diagnostics.ParseError, "'bytes' requires (align=N)")
			return nil, false
		}
		attrs, ok := p.parseAttrList(bytesAttrs, ctx)
		if !ok {
			return nil, false
		}
		return typesystem.NewBytes(uint8(attrs["align"].Int), ctx)
	case "fixed_string":
		return p.parseFixedStringCall(ctx)
	case "fixed_bytes":
		p.nextToken()
		if p.curToken.Type != token.LPAREN {
			ctx.Fail(diagnostics.ParseError, "'fixed_bytes' requires (size=N)")
			return nil, false
		}
		attrs, ok := p.parseAttrList(fixedBytesAttrs, ctx)
		if !ok {
			return nil, false
		}
		align := uint8(0)
		if v, present := attrs["align"]; present {
			align = uint8(v.Int)
		} else {
			align = 1
		}
		return typesystem.NewFixedBytes(uint64(attrs["size"].Int), align, ctx)
	case "char":
		return p.parseCharCall(ctx)
	case "categorical":
		return p.parseCategoricalCall(ctx)
	case "pointer":
		p.nextToken()
		if p.curToken.Type != token.LPAREN {
			ctx.Fail(diagnostics.ParseError, "'pointer' requires (datashape)")
			return nil, false
		}
		p.nextToken()
		inner, ok := p.parseDatashape(ctx)
		if !ok {
			return nil, false
		}
		if p.curToken.Type != token.RPAREN {
			ctx.Fail(diagnostics.ParseError, "expected ')' to close pointer(...)")
			return nil, false
		}
		p.nextToken()
		return typesystem.NewPointer(inner), true
	}

	return p.parseNominalOrConstrOrTypevar(ctx)
}

func (p *Parser) parseFixedStringCall(ctx *diagnostics.Context) (typesystem.Type, bool) {
	p.nextToken() // consume 'fixed_string'
	if p.curToken.Type != token.LPAREN {
		ctx.Fail(diagnostics.ParseError, "'fixed_string' requires (N[, encoding])")
		return nil, false
	}
	p.nextToken()
	if p.curToken.Type != token.INT {
		ctx.Fail(diagnostics.ParseError, "fixed_string(...): expected a size integer")
		return nil, false
	}
	size, err := strconv.ParseUint(p.curToken.Literal, 10, 64)
	if err != nil {
		ctx.Errorf(diagnostics.ValueError, "fixed_string(...): malformed size %q", p.curToken.Literal)
		return nil, false
	}
	p.nextToken()

	enc := typesystem.Utf8
	if p.curToken.Type == token.COMMA {
		p.nextToken()
		if p.curToken.Type != token.IDENT {
			ctx.Fail(diagnostics.ParseError, "fixed_string(...): expected an encoding name")
			return nil, false
		}
		e, ok := typesystem.EncodingFromString(p.curToken.Literal)
		if !ok {
			ctx.Errorf(diagnostics.ValueError, "fixed_string(...): unknown encoding %q", p.curToken.Literal)
			return nil, false
		}
		enc = e
		p.nextToken()
	}
	if p.curToken.Type != token.RPAREN {
		ctx.Fail(diagnostics.ParseError, "expected ')' to close fixed_string(...)")
		return nil, false
	}
	p.nextToken()
	return typesystem.NewFixedString(size, enc, ctx)
}

func (p *Parser) parseCharCall(ctx *diagnostics.Context) (typesystem.Type, bool) {
	p.nextToken() // consume 'char'
	if p.curToken.Type != token.LPAREN {
		ctx.Fail(diagnostics.ParseError, "'char' requires (encoding)")
		return nil, false
	}
	p.nextToken()
	if p.curToken.Type != token.IDENT {
		ctx.Fail(diagnostics.ParseError, "char(...): expected an encoding name")
		return nil, false
	}
	enc, ok := typesystem.EncodingFromString(p.curToken.Literal)
	if !ok {
		ctx.Errorf(diagnostics.ValueError, "char(...): unknown encoding %q", p.curToken.Literal)
		return nil, false
	}
	p.nextToken()
	if p.curToken.Type != token.RPAREN {
		ctx.Fail(diagnostics.ParseError, "expected ')' to close char(...)")
		return nil, false
	}
	p.nextToken()
	return typesystem.NewChar(enc), true
}

func (p *Parser) parseCategoricalCall(ctx *diagnostics.Context) (typesystem.Type, bool) {
	p.nextToken() // consume 'categorical'
	if p.curToken.Type != token.LPAREN {
		ctx.Fail(diagnostics.ParseError, "'categorical' requires (value, ...)")
		return nil, false
	}
	p.nextToken()

	var values []typesystem.TypedValue
	for p.curToken.Type != token.RPAREN {
		switch p.curToken.Type {
		case token.STRING:
			if err := typesystem.ValidateUTF16(p.curToken.Literal); err != nil {
				ctx.Errorf(diagnostics.ValueError, "categorical(...): %v", err)
				return nil, false
			}
			values = append(values, typesystem.TypedValue{Type: typesystem.NewString(), Value: p.curToken.Literal})
			p.nextToken()
		case token.INT:
			n, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
			if err != nil {
				ctx.Errorf(diagnostics.ValueError, "categorical(...): malformed integer %q", p.curToken.Literal)
				return nil, false
			}
			values = append(values, typesystem.TypedValue{Type: typesystem.NewInt64(), Value: n})
			p.nextToken()
		default:
			ctx.Fail(diagnostics.ParseError, "categorical(...): expected a string or integer literal")
			return nil, false
		}
		if p.curToken.Type == token.COMMA {
			p.nextToken()
			continue
		}
		break
	}
	if p.curToken.Type != token.RPAREN {
		ctx.Fail(diagnostics.ParseError, "expected ')' to close categorical(...)")
		return nil, false
	}
	p.nextToken()
	return typesystem.NewCategorical(values, ctx)
}

// parseNominalOrConstrOrTypevar resolves the surface ambiguity between
// the three NAME-headed productions: Typevar (isTypevarName), Constr
// (NAME immediately applied to one parenthesized datashape), and
// Nominal (anything else, resolved against the registry).
func (p *Parser) parseNominalOrConstrOrTypevar(ctx *diagnostics.Context) (typesystem.Type, bool) {
	name := p.curToken.Literal
	p.nextToken()

	if p.curToken.Type == token.LPAREN {
		p.nextToken()
		inner, ok := p.parseDatashape(ctx)
		if !ok {
			return nil, false
		}
		if p.curToken.Type != token.RPAREN {
			ctx.Errorf(diagnostics.ParseError, "expected ')' to close %s(...)", name)
			return nil, false
		}
		p.nextToken()
		return typesystem.NewConstr(name, inner), true
	}

	if isTypevarName(name) {
		return typesystem.NewTypevar(name), true
	}

	return typesystem.NewNominal(name, p.reg, ctx)
}

// parseParenGroup parses `'(' item (',' item)* ')'`, where each item is
// either an unnamed field (tuple/positional) or a `NAME ':' datashape`
// field (record/keyword) — both forms may carry a trailing attr_list.
// curToken must be LPAREN on entry.
func (p *Parser) parseParenGroup(ctx *diagnostics.Context) ([]typesystem.TupleFieldSpec, []typesystem.RecordFieldSpec, bool) {
	p.nextToken() // consume '('

	var pos []typesystem.TupleFieldSpec
	var kwds []typesystem.RecordFieldSpec

	for p.curToken.Type != token.RPAREN {
		if p.curToken.Type == token.EOF {
			ctx.Fail(diagnostics.ParseError, "unexpected end of input in parenthesized list")
			return nil, nil, false
		}

		if p.curToken.Type == token.IDENT && p.peekToken.Type == token.COLON {
			fieldName := p.curToken.Literal
			p.nextToken() // consume name
			p.nextToken() // consume ':'
			ty, ok := p.parseDatashape(ctx)
			if !ok {
				return nil, nil, false
			}
			var align *uint8
			var pad *uint64
			if p.curToken.Type == token.LPAREN {
				attrs, ok := p.parseAttrList(recordFieldAttrs, ctx)
				if !ok {
					return nil, nil, false
				}
				align, pad = attrAlignPad(attrs)
			}
			kwds = append(kwds, typesystem.RecordFieldSpec{Name: fieldName, Type: ty, Align: align, Pad: pad})
		} else {
			ty, ok := p.parseDatashape(ctx)
			if !ok {
				return nil, nil, false
			}
			var align *uint8
			var pad *uint64
			if p.curToken.Type == token.LPAREN {
				attrs, ok := p.parseAttrList(tupleFieldAttrs, ctx)
				if !ok {
					return nil, nil, false
				}
				align, pad = attrAlignPad(attrs)
			}
			pos = append(pos, typesystem.TupleFieldSpec{Type: ty, Align: align, Pad: pad})
		}

		if p.curToken.Type == token.COMMA {
			p.nextToken()
			continue
		}
		break
	}

	if p.curToken.Type != token.RPAREN {
		ctx.Fail(diagnostics.ParseError, "expected ')'")
		return nil, nil, false
	}
	p.nextToken()
	return pos, kwds, true
}

// parseRecordLiteral parses `'{' named_field (',' named_field)* '}'`.
func (p *Parser) parseRecordLiteral(ctx *diagnostics.Context) (typesystem.Type, bool) {
	p.nextToken() // consume '{'

	var fields []typesystem.RecordFieldSpec
	for p.curToken.Type != token.RBRACE {
		if p.curToken.Type != token.IDENT {
			ctx.Fail(diagnostics.ParseError, "expected field name in record")
			return nil, false
		}
		name := p.curToken.Literal
		p.nextToken()
		if p.curToken.Type != token.COLON {
			ctx.Fail(diagnostics.ParseError, "expected ':' after record field name")
			return nil, false
		}
		p.nextToken()
		ty, ok := p.parseDatashape(ctx)
		if !ok {
			return nil, false
		}
		var align *uint8
		var pad *uint64
		if p.curToken.Type == token.LPAREN {
			attrs, ok := p.parseAttrList(recordFieldAttrs, ctx)
			if !ok {
				return nil, false
			}
			align, pad = attrAlignPad(attrs)
		}
		fields = append(fields, typesystem.RecordFieldSpec{Name: name, Type: ty, Align: align, Pad: pad})

		if p.curToken.Type == token.COMMA {
			p.nextToken()
			continue
		}
		break
	}
	if p.curToken.Type != token.RBRACE {
		ctx.Fail(diagnostics.ParseError, "expected '}'")
		return nil, false
	}
	p.nextToken()
	return typesystem.NewRecord(false, fields, ctx)
}
