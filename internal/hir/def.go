package hir

import (
	"mica/internal/diag"
	"mica/internal/source"
	"mica/internal/types"
)

// Visibility of a definition. Private unless the syntax carries an explicit
// `pub` marker.
type Visibility uint8

const (
	Private Visibility = iota
	Public
)

func (v Visibility) IsPublic() bool  { return v == Public }
func (v Visibility) IsPrivate() bool { return v == Private }

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

// BuiltinType is a definition-like handle for a primitive type available in
// every module scope without being declared.
type BuiltinType struct {
	Name source.StringID
	Type types.TypeID
}

// DefKind discriminates ModuleDef variants.
type DefKind uint8

const (
	DefFunction DefKind = iota
	DefBuiltinType
	DefStruct
	DefTypeAlias
)

// ModuleDef is a thin, copyable reference to one definition: a closed tagged
// union over {Function, BuiltinType, Struct, TypeAlias}. It owns no data;
// everything derived hangs off the typed ID inside.
type ModuleDef struct {
	Kind      DefKind
	Function  Function
	Builtin   BuiltinType
	Struct    Struct
	TypeAlias TypeAlias
}

func DefOfFunction(f Function) ModuleDef   { return ModuleDef{Kind: DefFunction, Function: f} }
func DefOfBuiltin(b BuiltinType) ModuleDef { return ModuleDef{Kind: DefBuiltinType, Builtin: b} }
func DefOfStruct(s Struct) ModuleDef       { return ModuleDef{Kind: DefStruct, Struct: s} }
func DefOfTypeAlias(t TypeAlias) ModuleDef { return ModuleDef{Kind: DefTypeAlias, TypeAlias: t} }

// Name returns the declared name of the definition.
func (d ModuleDef) Name(db *DB) source.StringID {
	switch d.Kind {
	case DefFunction:
		return d.Function.Name(db)
	case DefBuiltinType:
		return d.Builtin.Name
	case DefStruct:
		return d.Struct.Name(db)
	case DefTypeAlias:
		return d.TypeAlias.Name(db)
	}
	return source.NoStringID
}

// DefWithBody is the closed set of definitions that carry executable code.
// Today that is only Function; the union exists so inference callers do not
// change when more body-carrying kinds appear.
type DefWithBody struct {
	Function Function
}

func BodyOwner(f Function) DefWithBody { return DefWithBody{Function: f} }

// Infer returns the inference result for the definition's body.
func (d DefWithBody) Infer(db *DB) *InferenceResult {
	return db.Infer(d)
}

// Body returns the definition's body.
func (d DefWithBody) Body(db *DB) *Body {
	return db.Body(d)
}

// BodySourceMap maps the body's expressions back to syntax positions.
func (d DefWithBody) BodySourceMap(db *DB) *BodySourceMap {
	return db.BodySourceMap(d)
}

// resolver builds the name-resolution scope chain for code inside the
// definition.
func (d DefWithBody) resolver(db *DB) *Resolver {
	return d.Function.resolver(db)
}

// DefWithStruct is the closed set of definitions that carry fields.
type DefWithStruct struct {
	Struct Struct
}

func FieldOwner(s Struct) DefWithStruct { return DefWithStruct{Struct: s} }

func (d DefWithStruct) Fields(db *DB) []StructField {
	return d.Struct.Fields(db)
}

func (d DefWithStruct) Field(db *DB, name source.StringID) (StructField, bool) {
	return d.Struct.Field(db, name)
}

func (d DefWithStruct) Module(db *DB) Module {
	return d.Struct.Module(db)
}

func (d DefWithStruct) Data(db *DB) *StructData {
	return d.Struct.Data(db)
}

// diagnostics dispatches by definition kind, in the fixed per-kind phase
// order. BuiltinType produces nothing.
func (d ModuleDef) diagnostics(db *DB, sink diag.Reporter) {
	switch d.Kind {
	case DefFunction:
		d.Function.Diagnostics(db, sink)
	case DefStruct:
		d.Struct.Diagnostics(db, sink)
	case DefTypeAlias:
		d.TypeAlias.Diagnostics(db, sink)
	case DefBuiltinType:
	}
}
