package hir

import (
	"mica/internal/source"
)

// Resolution is what a name resolves to inside a scope.
type Resolution struct {
	Def ModuleDef
}

// ScopeKind labels a scope in the chain. Only module scopes exist today;
// the kinds for function parameters and blocks are reserved for the scoping
// the next phase will push.
type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota
	ScopeParams
	ScopeBlock
)

// Scope is one tier of the resolver: a name-to-resolution mapping.
type Scope struct {
	Kind  ScopeKind
	names map[source.StringID]Resolution
}

// Resolver is an ordered stack of scopes used for name lookup during
// inference and validation. Each construction produces an independent
// value; resolvers are never shared as mutable state between callers.
type Resolver struct {
	scopes []Scope
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{scopes: make([]Scope, 0, 2)}
}

// Push adds a scope on top of the stack and returns the resolver for
// chaining.
func (r *Resolver) Push(scope Scope) *Resolver {
	r.scopes = append(r.scopes, scope)
	return r
}

// PushModuleScope pushes the flat scope of the file's module: the builtin
// types, shadowed by the module's own declarations. For a duplicated name
// the first declaration wins, matching the collision anchor in the module's
// structural diagnostics.
func (r *Resolver) PushModuleScope(db *DB, file source.FileID) *Resolver {
	names := make(map[source.StringID]Resolution)

	for _, b := range db.BuiltinTypes() {
		names[b.Name] = Resolution{Def: DefOfBuiltin(b)}
	}
	for _, def := range db.ModuleData(file).Definitions() {
		name := def.Name(db)
		if _, taken := names[name]; taken {
			// builtins yield to declarations; declarations keep first-wins
			if existing := names[name]; existing.Def.Kind != DefBuiltinType {
				continue
			}
		}
		names[name] = Resolution{Def: def}
	}

	return r.Push(Scope{Kind: ScopeModule, names: names})
}

// Lookup resolves a name from the innermost scope outwards.
func (r *Resolver) Lookup(name source.StringID) (Resolution, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if res, ok := r.scopes[i].names[name]; ok {
			return res, true
		}
	}
	return Resolution{}, false
}

// LookupType resolves a name and keeps only type-namespace results:
// builtins, structs, and type aliases.
func (r *Resolver) LookupType(name source.StringID) (Resolution, bool) {
	res, ok := r.Lookup(name)
	if !ok {
		return Resolution{}, false
	}
	switch res.Def.Kind {
	case DefBuiltinType, DefStruct, DefTypeAlias:
		return res, true
	default:
		return res, false
	}
}

// Depth returns the number of scopes on the stack.
func (r *Resolver) Depth() int {
	return len(r.scopes)
}
