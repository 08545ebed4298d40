package hir

import (
	"mica/internal/diag"
	"mica/internal/item"
	"mica/internal/source"
)

// Module is the semantic view of one source file. It is a cheap value
// handle; everything it exposes is computed on demand through the DB.
type Module struct {
	File source.FileID
}

// ModuleFor wraps a file in its module handle.
func ModuleFor(file source.FileID) Module {
	return Module{File: file}
}

// Declarations returns every definition declared in the module, in item
// order. Colliding definitions are included: duplicates are reported, not
// dropped.
func (m Module) Declarations(db *DB) []ModuleDef {
	return db.ModuleData(m.File).Definitions()
}

// resolver builds the module-level scope chain.
func (m Module) resolver(db *DB) *Resolver {
	return NewResolver().PushModuleScope(db, m.File)
}

// Diagnostics walks the module and every declaration in deterministic
// order: structural diagnostics first, then per declaration its own phases.
// Nothing short-circuits; the sink accumulates everything.
func (m Module) Diagnostics(db *DB, sink diag.Reporter) {
	data := db.ModuleData(m.File)
	for _, d := range data.diagnostics {
		d.addTo(db, m, sink)
	}
	for _, decl := range data.definitions {
		decl.diagnostics(db, sink)
	}
}

// ModuleData is the per-file aggregate: definitions in item-tree order plus
// the structural diagnostics discovered while aggregating.
type ModuleData struct {
	definitions []ModuleDef
	diagnostics []defDiagnostic
}

// Definitions returns the definitions in item-tree order.
func (d *ModuleData) Definitions() []ModuleDef {
	return d.definitions
}

// DuplicateNames returns the structural duplicate-name records, in
// detection order. Exposed for tools that need the colliding handles
// rather than rendered diagnostics.
func (d *ModuleData) DuplicateNames() []DuplicateName {
	out := make([]DuplicateName, 0, len(d.diagnostics))
	for _, diag := range d.diagnostics {
		if dup, ok := diag.(DuplicateName); ok {
			out = append(out, dup)
		}
	}
	return out
}

// moduleDataQuery discovers the file's top-level definitions, assigns
// interned identities, and detects name collisions. Every item produces a
// definition even when its name collides; a collision cites the *first*
// occurrence of the name, never a later one, so diagnostics stay anchored
// under repeated collisions.
func moduleDataQuery(db *DB, file source.FileID) *ModuleData {
	tree := db.ItemTree(file)
	data := &ModuleData{}
	firstByName := make(map[source.StringID]item.Entry)

	for _, entry := range tree.TopLevel() {
		name := tree.EntryName(entry)

		if first, ok := firstByName[name]; ok {
			data.diagnostics = append(data.diagnostics, DuplicateName{
				Name:            name,
				Definition:      entry,
				FirstDefinition: first,
			})
		} else {
			firstByName[name] = entry
		}

		switch entry.Kind {
		case item.KindFn:
			id := db.internFunction(FunctionLoc{File: file, Value: entry.Fn})
			data.definitions = append(data.definitions, DefOfFunction(Function{ID: id}))
		case item.KindStruct:
			id := db.internStruct(StructLoc{File: file, Value: entry.Struct})
			data.definitions = append(data.definitions, DefOfStruct(Struct{ID: id}))
		case item.KindAlias:
			id := db.internTypeAlias(TypeAliasLoc{File: file, Value: entry.Alias})
			data.definitions = append(data.definitions, DefOfTypeAlias(TypeAlias{ID: id}))
		}
	}
	return data
}
