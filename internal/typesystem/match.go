package typesystem

// MatchEnv is the scoped binding environment built up during one Match
// call: typevar name -> the concrete type it was bound to, and
// symbolic-dimension name -> the shape it was bound to. It is never
// shared across calls and never mutates its inputs.
type MatchEnv struct {
	typevars  map[string]Type
	symbolics map[string]uint64
}

func newMatchEnv() *MatchEnv {
	return &MatchEnv{typevars: map[string]Type{}, symbolics: map[string]uint64{}}
}

func (e *MatchEnv) clone() *MatchEnv {
	out := newMatchEnv()
	for k, v := range e.typevars {
		out.typevars[k] = v
	}
	for k, v := range e.symbolics {
		out.symbolics[k] = v
	}
	return out
}

// Match implements §4.5: does concrete c inhabit the schema described by
// pattern p? It never mutates p or c.
func Match(p, c Type) bool {
	return matchType(p, c, newMatchEnv())
}

func matchType(p, c Type, env *MatchEnv) bool {
	if _, ok := p.(AnyKind); ok {
		return true
	}

	if tv, ok := p.(Typevar); ok {
		if bound, seen := env.typevars[tv.Name]; seen {
			return Equal(bound, c)
		}
		env.typevars[tv.Name] = c
		return true
	}

	if isKindTag(p.Tag()) {
		return kindMembers[p.Tag()](c)
	}

	// An Array pattern whose only dimension is a leading EllipsisDim may
	// also match a bare, non-Array concrete value: the ellipsis is
	// allowed to consume zero dimensions (§4.5/§8 property 6), and with
	// nothing left to consume a zero-dim array and its dtype are the
	// same value.
	if pArr, ok := p.(Array); ok {
		if _, isArray := c.(Array); !isArray {
			if len(pArr.Dims) == 1 && pArr.Dims[0].DimTag() == EllipsisDimTag {
				return matchType(pArr.Dtype, c, env)
			}
			return false
		}
	}

	if p.Tag() != c.Tag() {
		return false
	}

	switch pv := p.(type) {
	case Array:
		cv := c.(Array)
		if pv.Order != cv.Order {
			return false
		}
		if !matchType(pv.Dtype, cv.Dtype, env) {
			return false
		}
		return matchDims(pv.Dims, cv.Dims, env)

	case Option:
		return matchType(pv.Inner, c.(Option).Inner, env)

	case Pointer:
		return matchType(pv.Inner, c.(Pointer).Inner, env)

	case Constr:
		cv := c.(Constr)
		return pv.Name == cv.Name && matchType(pv.Inner, cv.Inner, env)

	case Nominal:
		return pv.Name == c.(Nominal).Name

	case Tuple:
		cv := c.(Tuple)
		if len(pv.Fields) != len(cv.Fields) {
			return false
		}
		for i := range pv.Fields {
			if !matchType(pv.Fields[i].Type, cv.Fields[i].Type, env) {
				return false
			}
		}
		return true

	case Record:
		cv := c.(Record)
		if len(pv.Fields) != len(cv.Fields) {
			return false
		}
		for i := range pv.Fields {
			if pv.Fields[i].Name != cv.Fields[i].Name {
				return false
			}
			if !matchType(pv.Fields[i].Type, cv.Fields[i].Type, env) {
				return false
			}
		}
		return true

	case Function:
		cv := c.(Function)
		return matchType(pv.Ret, cv.Ret, env) &&
			matchType(pv.Pos, cv.Pos, env) &&
			matchType(pv.Kwds, cv.Kwds, env)

	case Char:
		return pv.Encoding == c.(Char).Encoding

	case Bytes:
		return pv.TargetAlign == c.(Bytes).TargetAlign

	case FixedString:
		cv := c.(FixedString)
		return pv.Size == cv.Size && pv.Encoding == cv.Encoding

	case FixedBytes:
		cv := c.(FixedBytes)
		return pv.Size == cv.Size && pv.Align == cv.Align

	case Categorical:
		return Equal(pv, c)

	default:
		// Primitive scalars, String, Void, Bool, etc: the tag check
		// above is the whole judgment, they carry no further payload.
		return true
	}
}

// matchDims implements dimension-list matching left to right with
// ellipsis expansion (§4.5): an EllipsisDim in p consumes zero or more
// leading concrete dimensions, greedily from the left, backtracking to
// shorter matches deterministically on failure. Construction guarantees
// at most one EllipsisDim and that it is leftmost, so it is only ever
// checked at position 0.
func matchDims(p, c []Dim, env *MatchEnv) bool {
	if len(p) > 0 && p[0].DimTag() == EllipsisDimTag {
		rest := p[1:]
		maxConsumed := len(c) - len(rest)
		if maxConsumed < 0 {
			return false
		}
		for consumed := maxConsumed; consumed >= 0; consumed-- {
			trial := env.clone()
			if matchDimList(rest, c[consumed:], trial) {
				*env = *trial
				return true
			}
		}
		return false
	}
	return matchDimList(p, c, env)
}

func matchDimList(p, c []Dim, env *MatchEnv) bool {
	if len(p) != len(c) {
		return false
	}
	for i := range p {
		if !matchDim(p[i], c[i], env) {
			return false
		}
	}
	return true
}

func matchDim(p, c Dim, env *MatchEnv) bool {
	switch pv := p.(type) {
	case FixedDimKind:
		return c.DimTag() == FixedDimTag

	case SymbolicDim:
		cv, ok := c.(FixedDim)
		if !ok {
			return false
		}
		if bound, seen := env.symbolics[pv.Name]; seen {
			return bound == cv.Shape
		}
		env.symbolics[pv.Name] = cv.Shape
		return true

	case FixedDim:
		cv, ok := c.(FixedDim)
		return ok && pv.Shape == cv.Shape

	case VarDim:
		return c.DimTag() == VarDimTag

	default:
		return false
	}
}
