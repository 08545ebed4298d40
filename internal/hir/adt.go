package hir

import (
	"mica/internal/diag"
	"mica/internal/source"
	"mica/internal/types"
)

// Struct is a cheap value handle for one struct definition.
type Struct struct {
	ID StructID
}

// LocalFieldID indexes a field inside its parent struct's data.
type LocalFieldID uint32

// FieldData is one field's derived record inside StructData.
type FieldData struct {
	Name    source.StringID
	TypeRef LocalTypeRefID
}

// StructData is the immutable descriptive record for a struct definition.
type StructData struct {
	name       source.StringID
	visibility Visibility
	fields     []FieldData
	typeRefs   TypeRefMap
	typeRefSrc TypeRefSourceMap
}

func structDataQuery(db *DB, id StructID) *StructData {
	loc := db.lookupStruct(id)
	tree := db.ItemTree(loc.File)
	st := tree.Struct(loc.Value)

	builder := NewTypeRefBuilder()
	fields := make([]FieldData, 0, st.FieldsCount)
	for _, f := range tree.CollectFields(st) {
		fields = append(fields, FieldData{
			Name:    f.Name,
			TypeRef: builder.AllocOpt(f.Type),
		})
	}

	refs, src := builder.Finish()
	return &StructData{
		name:       st.Name,
		visibility: Visibility(st.Visibility),
		fields:     fields,
		typeRefs:   refs,
		typeRefSrc: src,
	}
}

func (d *StructData) Name() source.StringID {
	return d.name
}

func (d *StructData) Visibility() Visibility {
	return d.visibility
}

// Fields returns the field records in declaration order.
func (d *StructData) Fields() []FieldData {
	return d.fields
}

func (d *StructData) TypeRefMap() *TypeRefMap {
	return &d.typeRefs
}

func (d *StructData) TypeRefSourceMap() *TypeRefSourceMap {
	return &d.typeRefSrc
}

// StructField is a (parent, local index) pair. It owns nothing; validity is
// tied to the parent's data.
type StructField struct {
	Parent Struct
	ID     LocalFieldID
}

// Name returns the field's declared name.
func (f StructField) Name(db *DB) source.StringID {
	data := f.Parent.Data(db)
	if int(f.ID) >= len(data.fields) {
		panic("hir: StructField does not belong to its claimed parent")
	}
	return data.fields[f.ID].Name
}

// Ty returns the field's lowered type.
func (f StructField) Ty(db *DB) types.TypeID {
	data := f.Parent.Data(db)
	if int(f.ID) >= len(data.fields) {
		panic("hir: StructField does not belong to its claimed parent")
	}
	lower := f.Parent.Lower(db)
	return lower.TypeOf(data.fields[f.ID].TypeRef)
}

func (s Struct) Module(db *DB) Module {
	return Module{File: db.lookupStruct(s.ID).File}
}

func (s Struct) Data(db *DB) *StructData {
	return db.StructData(s.ID)
}

func (s Struct) Name(db *DB) source.StringID {
	return s.Data(db).name
}

func (s Struct) Visibility(db *DB) Visibility {
	return s.Data(db).visibility
}

// Fields returns handles for every field in declaration order.
func (s Struct) Fields(db *DB) []StructField {
	data := s.Data(db)
	out := make([]StructField, 0, len(data.fields))
	for i := range data.fields {
		out = append(out, StructField{Parent: s, ID: LocalFieldID(i)})
	}
	return out
}

// Field returns the handle for the named field, if declared.
func (s Struct) Field(db *DB, name source.StringID) (StructField, bool) {
	for i, f := range s.Data(db).fields {
		if f.Name == name {
			return StructField{Parent: s, ID: LocalFieldID(i)}, true
		}
	}
	return StructField{}, false
}

// Ty returns the nominal type of the struct.
func (s Struct) Ty(db *DB) types.TypeID {
	return db.Types().Struct(uint32(s.ID))
}

// Lower resolves the struct's type references into semantic types.
func (s Struct) Lower(db *DB) *LowerResult {
	return db.LowerStruct(s)
}

func (s Struct) resolver(db *DB) *Resolver {
	return s.Module(db).resolver(db)
}

// Diagnostics replays the lowering findings for all field type references.
func (s Struct) Diagnostics(db *DB, sink diag.Reporter) {
	data := s.Data(db)
	lower := s.Lower(db)
	lower.addDiagnostics(db, s.Module(db).File, data.TypeRefSourceMap(), sink)
}

// TypeAlias is a cheap value handle for one type-alias definition.
type TypeAlias struct {
	ID TypeAliasID
}

// TypeAliasData is the immutable descriptive record for a type alias.
type TypeAliasData struct {
	name       source.StringID
	visibility Visibility
	typeRef    LocalTypeRefID
	typeRefs   TypeRefMap
	typeRefSrc TypeRefSourceMap
}

func typeAliasDataQuery(db *DB, id TypeAliasID) *TypeAliasData {
	loc := db.lookupTypeAlias(id)
	tree := db.ItemTree(loc.File)
	al := tree.Alias(loc.Value)

	builder := NewTypeRefBuilder()
	typeRef := builder.AllocOpt(al.Target)

	refs, src := builder.Finish()
	return &TypeAliasData{
		name:       al.Name,
		visibility: Visibility(al.Visibility),
		typeRef:    typeRef,
		typeRefs:   refs,
		typeRefSrc: src,
	}
}

func (d *TypeAliasData) Name() source.StringID {
	return d.name
}

func (d *TypeAliasData) Visibility() Visibility {
	return d.visibility
}

// TypeRef returns the slot holding the aliased type reference.
func (d *TypeAliasData) TypeRef() LocalTypeRefID {
	return d.typeRef
}

func (d *TypeAliasData) TypeRefMap() *TypeRefMap {
	return &d.typeRefs
}

func (d *TypeAliasData) TypeRefSourceMap() *TypeRefSourceMap {
	return &d.typeRefSrc
}

func (t TypeAlias) Module(db *DB) Module {
	return Module{File: db.lookupTypeAlias(t.ID).File}
}

func (t TypeAlias) Data(db *DB) *TypeAliasData {
	return db.TypeAliasData(t.ID)
}

func (t TypeAlias) Name(db *DB) source.StringID {
	return t.Data(db).name
}

func (t TypeAlias) Visibility(db *DB) Visibility {
	return t.Data(db).visibility
}

// TypeRef returns the aliased type-reference slot.
func (t TypeAlias) TypeRef(db *DB) LocalTypeRefID {
	return t.Data(db).typeRef
}

// Ty returns the lowered target type of the alias.
func (t TypeAlias) Ty(db *DB) types.TypeID {
	return t.Lower(db).TypeOf(t.Data(db).typeRef)
}

// Lower resolves the aliased type reference into a semantic type.
func (t TypeAlias) Lower(db *DB) *LowerResult {
	return db.LowerTypeAlias(t)
}

func (t TypeAlias) resolver(db *DB) *Resolver {
	return t.Module(db).resolver(db)
}

// Diagnostics replays the lowering findings, then checks the aliased
// reference actually names a usable type target.
func (t TypeAlias) Diagnostics(db *DB, sink diag.Reporter) {
	data := t.Data(db)
	lower := t.Lower(db)
	lower.addDiagnostics(db, t.Module(db).File, data.TypeRefSourceMap(), sink)

	validator := newTypeAliasValidator(t, db)
	validator.validateTargetTypeExistence(sink)
}
