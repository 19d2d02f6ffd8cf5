// Package registry implements the process-wide typedef registry (§4.6):
// a name -> resolved Type mapping consulted by the parser to resolve
// Nominal references and mutated by the `typedef` statement. Readers
// may run concurrently; writers exclude all other accessors.
package registry

import (
	"strconv"
	"sync"

	"github.com/wesm/libndtypes2/internal/config"
	"github.com/wesm/libndtypes2/internal/diagnostics"
	"github.com/wesm/libndtypes2/internal/typesystem"
)

// Registry is a single process-wide typedef table. Most callers use the
// package-level singleton via Init/Finalize/Add/Find; the type is
// exported so tests can construct isolated instances.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]typesystem.Type
	reserved map[string]bool
}

// New returns an empty, uninitialized Registry. Init must be called
// before first use (it populates the platform aliases); see §5's
// happens-before rule.
func New() *Registry {
	return &Registry{bindings: make(map[string]typesystem.Type), reserved: make(map[string]bool)}
}

// Init populates the registry with the platform pointer-width aliases
// (size, intptr, uintptr) per §4.6. It is safe to call again after
// Finalize to reset the registry to its initial state, which is useful
// in tests; this is a deliberate departure from the teacher's
// sync.Once-guarded, call-once prelude, since the registry here is not
// a process-lifetime singleton a test suite can only initialize once.
func (r *Registry) Init() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings = make(map[string]typesystem.Type)
	r.reserved = make(map[string]bool)

	var sizeType typesystem.Type
	if strconv.IntSize == 64 {
		sizeType = typesystem.NewUint64()
	} else {
		sizeType = typesystem.NewUint32()
	}
	r.bindings[config.AliasSize] = sizeType
	r.bindings[config.AliasIntptr] = typesystem.NewPointer(typesystem.NewVoid())
	r.bindings[config.AliasUintptr] = sizeType
}

// Finalize empties the registry (§4.6).
func (r *Registry) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = make(map[string]typesystem.Type)
	r.reserved = make(map[string]bool)
}

// TypedefAdd binds name to t. It fails ValueError if name is already
// bound to a non-equal type; binding to an equal type is idempotent.
func (r *Registry) TypedefAdd(name string, t typesystem.Type, ctx *diagnostics.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.bindings[name]; ok && !r.reserved[name] {
		if typesystem.Equal(existing, t) {
			return true
		}
		ctx.Errorf(diagnostics.ValueError, "typedef: %q is already bound to a different type", name)
		return false
	}

	r.bindings[name] = t
	delete(r.reserved, name)
	return true
}

// TypedefFind returns the type bound to name, implementing the
// typesystem.Resolver interface consumed by typesystem.NewNominal. A
// name that is currently Reserve'd but not yet Commit'd still resolves
// here (to its placeholder), which is exactly what lets a
// self-referential Nominal inside a typedef's own body parse
// successfully; ordinary lookups of an in-flight recursive typedef are
// vanishingly rare and see the same placeholder a recursive reference
// would.
func (r *Registry) TypedefFind(name string) (typesystem.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.bindings[name]
	return t, ok
}

// Reserve installs a placeholder binding for name so that a
// self-referential Nominal(name) appearing while name's own definition
// is still being parsed resolves instead of failing ValueError. It is
// used only by the `typedef` statement parser around the single parse
// call that builds the body; see SPEC_FULL.md §4.6.
func (r *Registry) Reserve(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[name]; ok {
		return false
	}
	r.bindings[name] = placeholder{name: name}
	r.reserved[name] = true
	return true
}

// Commit replaces a Reserve'd placeholder with the fully built type. It
// never triggers the "already bound" conflict for a reservation; if
// name was never reserved, it falls back to TypedefAdd's normal
// equal-or-conflict rule.
func (r *Registry) Commit(name string, t typesystem.Type, ctx *diagnostics.Context) bool {
	r.mu.Lock()
	if r.reserved[name] {
		r.bindings[name] = t
		delete(r.reserved, name)
		r.mu.Unlock()
		return true
	}
	r.mu.Unlock()
	return r.TypedefAdd(name, t, ctx)
}

// Abandon releases a reservation without committing, used when parsing
// the typedef's body fails.
func (r *Registry) Abandon(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reserved[name] {
		delete(r.bindings, name)
		delete(r.reserved, name)
	}
}

// placeholder is the type installed by Reserve. It satisfies
// typesystem.Type so a self-referencing Nominal can resolve against it
// mid-parse; the only caller that ever observes a placeholder's own
// Size/Align/Abstract is NewNominal while building the recursive body
// itself, and whatever it builds (typically wrapped in a Pointer) is
// baked permanently into the committed type's fields — Commit replaces
// the *binding*, not the Nominal/Pointer objects already constructed
// against it mid-parse. Abstract is therefore false, not true: a
// pointer indirection's own layout never depends on what it points to
// (a pointer is always machine-word sized), so the placeholder must
// read as already-resolved, or every ordinary recursive record would
// incorrectly commit as abstract forever.
type placeholder struct{ name string }

func (placeholder) Tag() typesystem.Tag { return typesystem.NominalTag }
func (placeholder) Size() uint64        { return 0 }
func (placeholder) Align() uint8        { return 1 }
func (placeholder) Abstract() bool      { return false }
