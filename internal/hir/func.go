package hir

import (
	"mica/internal/diag"
	"mica/internal/source"
	"mica/internal/types"
)

// Function is a cheap value handle for one function definition.
type Function struct {
	ID FunctionID
}

// FunctionData is the immutable descriptive record derived from a
// function's item-tree entry. It is computed once per identity and shared
// read-only afterwards.
type FunctionData struct {
	name       source.StringID
	params     []LocalTypeRefID
	visibility Visibility
	retType    LocalTypeRefID
	typeRefs   TypeRefMap
	typeRefSrc TypeRefSourceMap
	isExtern   bool
}

// fnDataQuery derives FunctionData from the item tree. Pure in (id, item
// tree epoch): re-invoking with an unchanged tree returns structurally
// equal data.
func fnDataQuery(db *DB, id FunctionID) *FunctionData {
	loc := db.lookupFunction(id)
	tree := db.ItemTree(loc.File)
	fn := tree.Fn(loc.Value)

	builder := NewTypeRefBuilder()

	// Every declared parameter gets a slot; a missing annotation holds the
	// unknown marker so parameter counts survive malformed input.
	params := make([]LocalTypeRefID, 0, fn.ParamsCount)
	for _, p := range tree.CollectParams(fn) {
		params = append(params, builder.AllocOpt(p.Type))
	}

	var retType LocalTypeRefID
	if fn.Ret.Present() {
		retType = builder.Alloc(fn.Ret)
	} else {
		retType = builder.Unit()
	}

	refs, src := builder.Finish()
	return &FunctionData{
		name:       fn.Name,
		params:     params,
		visibility: Visibility(fn.Visibility),
		retType:    retType,
		typeRefs:   refs,
		typeRefSrc: src,
		isExtern:   fn.IsExtern,
	}
}

func (d *FunctionData) Name() source.StringID {
	return d.name
}

func (d *FunctionData) Params() []LocalTypeRefID {
	return d.params
}

func (d *FunctionData) Visibility() Visibility {
	return d.visibility
}

func (d *FunctionData) RetType() LocalTypeRefID {
	return d.retType
}

func (d *FunctionData) TypeRefMap() *TypeRefMap {
	return &d.typeRefs
}

func (d *FunctionData) TypeRefSourceMap() *TypeRefSourceMap {
	return &d.typeRefSrc
}

func (d *FunctionData) IsExtern() bool {
	return d.isExtern
}

// Module returns the module that declares the function.
func (f Function) Module(db *DB) Module {
	return Module{File: db.lookupFunction(f.ID).File}
}

func (f Function) Name(db *DB) source.StringID {
	return f.Data(db).name
}

func (f Function) Visibility(db *DB) Visibility {
	return f.Data(db).visibility
}

func (f Function) Data(db *DB) *FunctionData {
	return db.FnData(f.ID)
}

func (f Function) IsExtern(db *DB) bool {
	return f.Data(db).isExtern
}

// Ty returns the function's signature type.
func (f Function) Ty(db *DB) types.TypeID {
	data := f.Data(db)
	lower := db.LowerFunction(f)
	params := make([]types.TypeID, 0, len(data.params))
	for _, p := range data.params {
		params = append(params, lower.TypeOf(p))
	}
	return db.Types().Fn(params, lower.TypeOf(data.retType))
}

func (f Function) Infer(db *DB) *InferenceResult {
	return db.Infer(BodyOwner(f))
}

func (f Function) body(db *DB) *Body {
	return db.Body(BodyOwner(f))
}

// resolver builds the scope chain for code inside the function. Today that
// is exactly the enclosing module's resolver.
func (f Function) resolver(db *DB) *Resolver {
	return f.Module(db).resolver(db)
}

// Diagnostics runs the function's sub-phases in fixed order: signature
// lowering, body construction, inference, then body validation.
func (f Function) Diagnostics(db *DB, sink diag.Reporter) {
	data := f.Data(db)
	lower := db.LowerFunction(f)
	lower.addDiagnostics(db, f.Module(db).File, data.TypeRefSourceMap(), sink)
	body := f.body(db)
	body.addDiagnostics(db, BodyOwner(f), sink)
	infer := f.Infer(db)
	infer.addDiagnostics(db, f, sink)
	validator := newExprValidator(f, db)
	validator.validateBody(sink)
}
