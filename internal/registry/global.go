package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wesm/libndtypes2/internal/diagnostics"
	"github.com/wesm/libndtypes2/internal/typesystem"
)

// global is the process-wide registry consulted by the parser's
// default resolver. Package-level Init/Finalize/Add/Find operate on it.
var global = New()

// Init populates the process-wide registry with the platform aliases.
func Init() { global.Init() }

// Finalize empties the process-wide registry.
func Finalize() { global.Finalize() }

// TypedefAdd binds name in the process-wide registry.
func TypedefAdd(name string, t typesystem.Type, ctx *diagnostics.Context) bool {
	return global.TypedefAdd(name, t, ctx)
}

// TypedefFind looks up name in the process-wide registry.
func TypedefFind(name string) (typesystem.Type, bool) {
	return global.TypedefFind(name)
}

// Global returns the process-wide registry singleton, e.g. to pass as
// a typesystem.Resolver.
func Global() *Registry { return global }

// aliasFile is the on-disk shape of a platform-alias override file: a
// flat map of typedef name to its datashape source string, e.g.
//
//	node_id: uint64
//	handle: pointer(void)
type aliasFile map[string]string

// ParseTypeFunc turns one datashape source expression into a Type,
// resolving Nominal references against the registry it closes over.
// internal/parser supplies this (bound to its own Parser), since
// registry cannot import parser: parser already imports registry to
// resolve Nominal and to register typedef statements.
type ParseTypeFunc func(src string) (typesystem.Type, error)

// LoadAliases reads a YAML file of supplementary name -> datashape
// string aliases and registers each as a typedef. Grounded on
// ext/config.go's gopkg.in/yaml.v3-driven LoadConfig — the same
// declarative-configuration concern, repurposed from Go-dependency
// bindings to datashape platform aliases.
func (r *Registry) LoadAliases(path string, parseType ParseTypeFunc) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("registry: reading alias file %s: %w", path, err)
	}

	var aliases aliasFile
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return fmt.Errorf("registry: parsing alias file %s: %w", path, err)
	}

	for name, src := range aliases {
		ty, err := parseType(src)
		if err != nil {
			return fmt.Errorf("registry: alias %q: %w", name, err)
		}
		ctx := diagnostics.New()
		if !r.TypedefAdd(name, ty, ctx) {
			return fmt.Errorf("registry: alias %q: %w", name, ctx.Error())
		}
	}
	return nil
}
