package hir

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"mica/internal/diag"
	"mica/internal/item"
	"mica/internal/parser"
	"mica/internal/source"
	"mica/internal/types"
)

// derivedCacheSize bounds each per-definition memo cache. Intern tables
// and per-file module data are exact maps and never evict.
const derivedCacheSize = 4096

// DB owns every table of the semantic layer: the interners that hand out
// stable identities, the parsed item trees, and the memo caches for
// derived data. Handles (Module, Function, Struct, TypeAlias) are plain
// values; every operation on them goes through a DB.
//
// A DB is not safe for concurrent use. Callers that parse files in
// parallel should parse outside the DB and install the results with
// SetItemTree before querying; the string interner alone is shared-safe.
type DB struct {
	fs      *source.FileSet
	strings *source.Interner
	typeTab *types.Interner

	fns     *internTable[FunctionLoc, FunctionID]
	structs *internTable[StructLoc, StructID]
	aliases *internTable[TypeAliasLoc, TypeAliasID]

	trees      map[source.FileID]*item.Tree
	parseDiags map[source.FileID]*diag.Bag
	modules    map[source.FileID]*ModuleData

	fnData    *lru.Cache[FunctionID, *FunctionData]
	structDat *lru.Cache[StructID, *StructData]
	aliasData *lru.Cache[TypeAliasID, *TypeAliasData]

	fnLower     *lru.Cache[FunctionID, *LowerResult]
	structLower *lru.Cache[StructID, *LowerResult]
	aliasLower  *lru.Cache[TypeAliasID, *LowerResult]

	bodies   *lru.Cache[FunctionID, *Body]
	bodyMaps *lru.Cache[FunctionID, *BodySourceMap]
	infers   *lru.Cache[FunctionID, *InferenceResult]

	builtins []BuiltinType
}

// NewDB builds an empty database over the file set. The string interner is
// shared with the lexer and parser so names compare by ID everywhere.
func NewDB(fs *source.FileSet, strings *source.Interner) *DB {
	db := &DB{
		fs:      fs,
		strings: strings,
		typeTab: types.NewInterner(),

		fns:     newInternTable[FunctionLoc, FunctionID](),
		structs: newInternTable[StructLoc, StructID](),
		aliases: newInternTable[TypeAliasLoc, TypeAliasID](),

		trees:      make(map[source.FileID]*item.Tree),
		parseDiags: make(map[source.FileID]*diag.Bag),
		modules:    make(map[source.FileID]*ModuleData),

		fnData:    mustLRU[FunctionID, *FunctionData](),
		structDat: mustLRU[StructID, *StructData](),
		aliasData: mustLRU[TypeAliasID, *TypeAliasData](),

		fnLower:     mustLRU[FunctionID, *LowerResult](),
		structLower: mustLRU[StructID, *LowerResult](),
		aliasLower:  mustLRU[TypeAliasID, *LowerResult](),

		bodies:   mustLRU[FunctionID, *Body](),
		bodyMaps: mustLRU[FunctionID, *BodySourceMap](),
		infers:   mustLRU[FunctionID, *InferenceResult](),
	}

	b := db.typeTab.Builtins()
	for _, seed := range []struct {
		name string
		ty   types.TypeID
	}{
		{"bool", b.Bool},
		{"string", b.String},
		{"int", b.Int},
		{"uint", b.Uint},
		{"float", b.Float},
	} {
		db.builtins = append(db.builtins, BuiltinType{
			Name: strings.Intern(seed.name),
			Type: seed.ty,
		})
	}
	return db
}

func mustLRU[K comparable, V any]() *lru.Cache[K, V] {
	c, err := lru.New[K, V](derivedCacheSize)
	if err != nil {
		panic(fmt.Errorf("hir: lru init: %w", err))
	}
	return c
}

// Files returns the underlying file set.
func (db *DB) Files() *source.FileSet {
	return db.fs
}

// Strings returns the shared string interner.
func (db *DB) Strings() *source.Interner {
	return db.strings
}

// Types returns the semantic type interner.
func (db *DB) Types() *types.Interner {
	return db.typeTab
}

// BuiltinTypes returns the language built-ins every module scope starts
// with, in a fixed order.
func (db *DB) BuiltinTypes() []BuiltinType {
	return db.builtins
}

// ItemTree returns the parsed item tree for the file, parsing on demand.
// Parse diagnostics land in the file's parse bag, not in module
// diagnostics; ParseDiagnostics hands them out.
func (db *DB) ItemTree(file source.FileID) *item.Tree {
	if tree, ok := db.trees[file]; ok {
		return tree
	}
	f := db.fs.Get(file)
	if f == nil {
		panic(fmt.Sprintf("hir: file %d is not in the file set", file))
	}
	bag := diag.NewBag(0)
	tree := parser.ParseFile(f, db.strings, diag.BagReporter{Bag: bag})
	db.trees[file] = tree
	db.parseDiags[file] = bag
	return tree
}

// SetItemTree installs an externally parsed tree, replacing any cached
// one. Derived data for the file must be invalidated by the caller when
// the file changed; Invalidate does both.
func (db *DB) SetItemTree(file source.FileID, tree *item.Tree, parseDiags *diag.Bag) {
	db.trees[file] = tree
	db.parseDiags[file] = parseDiags
}

// ParseDiagnostics returns the parse bag for a file already run through
// ItemTree or SetItemTree, or nil.
func (db *DB) ParseDiagnostics(file source.FileID) *diag.Bag {
	return db.parseDiags[file]
}

// ModuleData aggregates the file's definitions, memoized per file.
func (db *DB) ModuleData(file source.FileID) *ModuleData {
	if data, ok := db.modules[file]; ok {
		return data
	}
	data := moduleDataQuery(db, file)
	db.modules[file] = data
	return data
}

// FnData returns the derived record for a function identity.
func (db *DB) FnData(id FunctionID) *FunctionData {
	return memo(db.fnData, id, func() *FunctionData { return fnDataQuery(db, id) })
}

// StructData returns the derived record for a struct identity.
func (db *DB) StructData(id StructID) *StructData {
	return memo(db.structDat, id, func() *StructData { return structDataQuery(db, id) })
}

// TypeAliasData returns the derived record for an alias identity.
func (db *DB) TypeAliasData(id TypeAliasID) *TypeAliasData {
	return memo(db.aliasData, id, func() *TypeAliasData { return typeAliasDataQuery(db, id) })
}

// LowerFunction resolves every type reference of the function's signature.
func (db *DB) LowerFunction(f Function) *LowerResult {
	return memo(db.fnLower, f.ID, func() *LowerResult { return lowerFunctionQuery(db, f) })
}

// LowerStruct resolves every field type reference of the struct.
func (db *DB) LowerStruct(s Struct) *LowerResult {
	return memo(db.structLower, s.ID, func() *LowerResult { return lowerStructQuery(db, s) })
}

// LowerTypeAlias resolves the alias target reference.
func (db *DB) LowerTypeAlias(t TypeAlias) *LowerResult {
	return memo(db.aliasLower, t.ID, func() *LowerResult { return lowerTypeAliasQuery(db, t) })
}

// Body returns the function's body skeleton.
func (db *DB) Body(def DefWithBody) *Body {
	return memo(db.bodies, def.Function.ID, func() *Body { return bodyQuery(db, def) })
}

// BodySourceMap returns the span table for the function's body.
func (db *DB) BodySourceMap(def DefWithBody) *BodySourceMap {
	return memo(db.bodyMaps, def.Function.ID, func() *BodySourceMap { return bodySourceMapQuery(db, def) })
}

// Infer returns the typed view of the function's body.
func (db *DB) Infer(def DefWithBody) *InferenceResult {
	return memo(db.infers, def.Function.ID, func() *InferenceResult { return inferQuery(db, def) })
}

// internFunction assigns (or reuses) the stable ID for a function location.
func (db *DB) internFunction(loc FunctionLoc) FunctionID {
	return db.fns.Intern(loc)
}

func (db *DB) internStruct(loc StructLoc) StructID {
	return db.structs.Intern(loc)
}

func (db *DB) internTypeAlias(loc TypeAliasLoc) TypeAliasID {
	return db.aliases.Intern(loc)
}

// lookupFunction recovers the location behind an ID. Panics on IDs this DB
// never handed out.
func (db *DB) lookupFunction(id FunctionID) FunctionLoc {
	return db.fns.Lookup(id)
}

func (db *DB) lookupStruct(id StructID) StructLoc {
	return db.structs.Lookup(id)
}

func (db *DB) lookupTypeAlias(id TypeAliasID) TypeAliasLoc {
	return db.aliases.Lookup(id)
}

// Invalidate drops everything derived from the file: its tree, parse bag,
// module data, and every per-definition record rooted in it. Intern tables
// survive so identities stay stable across edits.
func (db *DB) Invalidate(file source.FileID) {
	delete(db.trees, file)
	delete(db.parseDiags, file)
	delete(db.modules, file)

	for i := 1; i <= db.fns.Len(); i++ {
		id := FunctionID(i)
		if db.fns.Lookup(id).File == file {
			db.fnData.Remove(id)
			db.fnLower.Remove(id)
			db.bodies.Remove(id)
			db.bodyMaps.Remove(id)
			db.infers.Remove(id)
		}
	}
	for i := 1; i <= db.structs.Len(); i++ {
		id := StructID(i)
		if db.structs.Lookup(id).File == file {
			db.structDat.Remove(id)
			db.structLower.Remove(id)
		}
	}
	for i := 1; i <= db.aliases.Len(); i++ {
		id := TypeAliasID(i)
		if db.aliases.Lookup(id).File == file {
			db.aliasData.Remove(id)
			db.aliasLower.Remove(id)
		}
	}
}

func memo[K comparable, V any](c *lru.Cache[K, V], key K, compute func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	c.Add(key, v)
	return v
}
