package hir

import (
	"fmt"

	"mica/internal/diag"
	"mica/internal/source"
	"mica/internal/types"
)

// LowerResult maps every type-reference slot of one definition to its
// resolved semantic type. Unresolved references lower to the unknown
// sentinel and record a pending diagnostic; the result stays total over
// the slots so consumers never hit a missing entry.
type LowerResult struct {
	resolved []types.TypeID
	diags    []lowerDiagnostic
}

type lowerDiagnostic struct {
	code diag.Code
	ref  LocalTypeRefID
	msg  string
}

// TypeOf returns the lowered type for the slot.
func (l *LowerResult) TypeOf(id LocalTypeRefID) types.TypeID {
	if int(id) >= len(l.resolved) {
		panic(fmt.Sprintf("hir: type ref %d out of range for this lower result", id))
	}
	return l.resolved[id]
}

// HasErrors reports whether any reference failed to lower.
func (l *LowerResult) HasErrors() bool {
	return len(l.diags) > 0
}

// addDiagnostics replays the pending findings into the sink, positioned via
// the definition's type-ref source map.
func (l *LowerResult) addDiagnostics(db *DB, file source.FileID, src *TypeRefSourceMap, sink diag.Reporter) {
	for _, d := range l.diags {
		sp, ok := src.SpanOf(d.ref)
		if !ok {
			sp = source.Span{File: file}
		}
		diag.Error(sink, d.code, sp, d.msg)
	}
}

// lowerQuery resolves every slot of a TypeRefMap through the definition's
// resolver. Pure in (refs, resolver contents) for one epoch.
func lowerQuery(db *DB, refs *TypeRefMap, resolver *Resolver) *LowerResult {
	res := &LowerResult{
		resolved: make([]types.TypeID, refs.Len()),
	}
	for i := 0; i < refs.Len(); i++ {
		id := LocalTypeRefID(i)
		res.resolved[id] = lowerRef(db, refs.Get(id), id, resolver, res)
	}
	return res
}

func lowerRef(db *DB, ref TypeRef, id LocalTypeRefID, resolver *Resolver, out *LowerResult) types.TypeID {
	switch ref.Kind {
	case TypeRefUnit:
		return db.Types().Builtins().Unit
	case TypeRefPath:
		return lowerPath(db, ref.Name, id, resolver, out, 0)
	default:
		// Missing annotation: lowers to the unknown sentinel silently; the
		// absence was already policy-resolved when the slot was allocated.
		return db.Types().Builtins().Unknown
	}
}

// aliasChaseLimit bounds recursion through alias targets so `type A = A`
// degrades to unknown instead of diverging.
const aliasChaseLimit = 32

func lowerPath(db *DB, name source.StringID, id LocalTypeRefID, resolver *Resolver, out *LowerResult, depth int) types.TypeID {
	if depth > aliasChaseLimit {
		out.diags = append(out.diags, lowerDiagnostic{
			code: diag.SemaUnresolvedType,
			ref:  id,
			msg:  fmt.Sprintf("type `%s` is part of an alias cycle", db.Strings().MustLookup(name)),
		})
		return db.Types().Builtins().Unknown
	}

	res, ok := resolver.Lookup(name)
	if !ok {
		out.diags = append(out.diags, lowerDiagnostic{
			code: diag.SemaUnresolvedType,
			ref:  id,
			msg:  fmt.Sprintf("cannot resolve type `%s`", db.Strings().MustLookup(name)),
		})
		return db.Types().Builtins().Unknown
	}

	switch res.Def.Kind {
	case DefBuiltinType:
		return res.Def.Builtin.Type
	case DefStruct:
		return res.Def.Struct.Ty(db)
	case DefTypeAlias:
		// Chase the alias target in its own module's resolver.
		alias := res.Def.TypeAlias
		data := alias.Data(db)
		targetRef := data.TypeRefMap().Get(data.TypeRef())
		switch targetRef.Kind {
		case TypeRefUnit:
			return db.Types().Builtins().Unit
		case TypeRefPath:
			return lowerPath(db, targetRef.Name, id, alias.resolver(db), out, depth+1)
		default:
			return db.Types().Builtins().Unknown
		}
	default:
		out.diags = append(out.diags, lowerDiagnostic{
			code: diag.SemaUnresolvedType,
			ref:  id,
			msg:  fmt.Sprintf("`%s` is not a type", db.Strings().MustLookup(name)),
		})
		return db.Types().Builtins().Unknown
	}
}

func lowerStructQuery(db *DB, s Struct) *LowerResult {
	return lowerQuery(db, s.Data(db).TypeRefMap(), s.resolver(db))
}

func lowerTypeAliasQuery(db *DB, t TypeAlias) *LowerResult {
	return lowerQuery(db, t.Data(db).TypeRefMap(), t.resolver(db))
}

func lowerFunctionQuery(db *DB, f Function) *LowerResult {
	return lowerQuery(db, f.Data(db).TypeRefMap(), f.resolver(db))
}
