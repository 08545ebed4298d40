// Package item defines the per-file item tree: a flattened, ordered list of
// top-level declarations with their syntactic payloads. The tree is the
// input for module aggregation and the per-definition data queries; it
// carries no semantic information beyond names, spans, and raw type
// annotations.
package item

import "mica/internal/source"

// Kind discriminates top-level entries.
type Kind uint8

const (
	KindFn Kind = iota
	KindStruct
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindFn:
		return "function"
	case KindStruct:
		return "struct"
	case KindAlias:
		return "type alias"
	default:
		return "invalid"
	}
}

// Visibility of a top-level item. Private unless a `pub` marker is present.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisPublic
)

func (v Visibility) String() string {
	if v == VisPublic {
		return "public"
	}
	return "private"
}

// Entry references one top-level item: a kind tag plus the ID into the
// matching payload arena. Entries are comparable values; two equal entries
// denote the same syntactic item within one tree.
type Entry struct {
	Kind   Kind
	Fn     FnID
	Struct StructID
	Alias  AliasID
}

// FnItem is the item-tree payload of one function declaration.
type FnItem struct {
	Name        source.StringID
	NameSpan    source.Span
	Visibility  Visibility
	IsExtern    bool
	ParamsStart ParamID
	ParamsCount uint32
	Ret         TypeSyn // missing when no `->` annotation was written
	Body        []StmtID
	Span        source.Span
}

// Param is one declared function parameter. An absent annotation keeps the
// slot with a missing TypeSyn so parameter counts survive malformed input.
type Param struct {
	Name source.StringID
	Type TypeSyn
	Span source.Span
}

// StructItem is the payload of one struct declaration.
type StructItem struct {
	Name        source.StringID
	NameSpan    source.Span
	Visibility  Visibility
	FieldsStart FieldID
	FieldsCount uint32
	Span        source.Span
}

// Field is one declared struct field, in declaration order.
type Field struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeSyn
	Span     source.Span
}

// AliasItem is the payload of one type-alias declaration.
type AliasItem struct {
	Name       source.StringID
	NameSpan   source.Span
	Visibility Visibility
	Target     TypeSyn
	Span       source.Span
}

// StmtKind classifies body statements.
type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtReturn
	StmtExpr
)

// Stmt is one body statement.
type Stmt struct {
	Kind StmtKind
	// StmtLet
	Name     source.StringID
	NameSpan source.Span
	Ann      TypeSyn
	Init     ExprID // 0 when the let has no initializer
	// StmtReturn / StmtExpr
	Value ExprID // 0 for a bare `return;`
	Span  source.Span
}

// ExprKind classifies body expressions.
type ExprKind uint8

const (
	ExprIntLit ExprKind = iota
	ExprFloatLit
	ExprStringLit
	ExprBoolLit
	ExprName
	ExprCall
)

// Expr is one body expression.
type Expr struct {
	Kind   ExprKind
	Text   string          // literal text as written
	Name   source.StringID // ExprName
	Callee ExprID          // ExprCall
	Args   []ExprID        // ExprCall
	Span   source.Span
}

// Tree is the flattened item list for one file. Top-level order equals
// source order; all payloads are arena-allocated with 1-based IDs.
type Tree struct {
	File    source.FileID
	Entries []Entry

	Fns     *Arena[FnItem]
	Structs *Arena[StructItem]
	Aliases *Arena[AliasItem]
	Fields  *Arena[Field]
	Params  *Arena[Param]
	Stmts   *Arena[Stmt]
	Exprs   *Arena[Expr]
}

// NewTree creates an empty tree for the file.
func NewTree(file source.FileID) *Tree {
	const capHint = 1 << 4
	return &Tree{
		File:    file,
		Fns:     NewArena[FnItem](capHint),
		Structs: NewArena[StructItem](capHint),
		Aliases: NewArena[AliasItem](capHint),
		Fields:  NewArena[Field](capHint),
		Params:  NewArena[Param](capHint),
		Stmts:   NewArena[Stmt](capHint),
		Exprs:   NewArena[Expr](capHint),
	}
}

// TopLevel returns the entries in source order.
func (t *Tree) TopLevel() []Entry {
	return t.Entries
}

// Fn returns the payload for the function ID, or nil.
func (t *Tree) Fn(id FnID) *FnItem {
	return t.Fns.Get(uint32(id))
}

// Struct returns the payload for the struct ID, or nil.
func (t *Tree) Struct(id StructID) *StructItem {
	return t.Structs.Get(uint32(id))
}

// Alias returns the payload for the alias ID, or nil.
func (t *Tree) Alias(id AliasID) *AliasItem {
	return t.Aliases.Get(uint32(id))
}

func (t *Tree) Field(id FieldID) *Field {
	return t.Fields.Get(uint32(id))
}

func (t *Tree) Param(id ParamID) *Param {
	return t.Params.Get(uint32(id))
}

func (t *Tree) Stmt(id StmtID) *Stmt {
	return t.Stmts.Get(uint32(id))
}

func (t *Tree) Expr(id ExprID) *Expr {
	return t.Exprs.Get(uint32(id))
}

// CollectFields returns the fields of a struct in declaration order.
func (t *Tree) CollectFields(s *StructItem) []Field {
	if s == nil || s.FieldsCount == 0 || !s.FieldsStart.IsValid() {
		return nil
	}
	out := make([]Field, 0, s.FieldsCount)
	base := uint32(s.FieldsStart)
	for off := uint32(0); off < s.FieldsCount; off++ {
		if f := t.Fields.Get(base + off); f != nil {
			out = append(out, *f)
		}
	}
	return out
}

// CollectParams returns the parameters of a function in declaration order.
func (t *Tree) CollectParams(f *FnItem) []Param {
	if f == nil || f.ParamsCount == 0 || !f.ParamsStart.IsValid() {
		return nil
	}
	out := make([]Param, 0, f.ParamsCount)
	base := uint32(f.ParamsStart)
	for off := uint32(0); off < f.ParamsCount; off++ {
		if p := t.Params.Get(base + off); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// EntryName returns the declared name of a top-level entry.
func (t *Tree) EntryName(e Entry) source.StringID {
	switch e.Kind {
	case KindFn:
		return t.Fn(e.Fn).Name
	case KindStruct:
		return t.Struct(e.Struct).Name
	case KindAlias:
		return t.Alias(e.Alias).Name
	}
	return source.NoStringID
}

// EntryNameSpan returns the span of the entry's name token, for positioning
// name-related diagnostics.
func (t *Tree) EntryNameSpan(e Entry) source.Span {
	switch e.Kind {
	case KindFn:
		return t.Fn(e.Fn).NameSpan
	case KindStruct:
		return t.Struct(e.Struct).NameSpan
	case KindAlias:
		return t.Alias(e.Alias).NameSpan
	}
	return source.Span{}
}

// EntrySpan returns the full span of the entry's declaration.
func (t *Tree) EntrySpan(e Entry) source.Span {
	switch e.Kind {
	case KindFn:
		return t.Fn(e.Fn).Span
	case KindStruct:
		return t.Struct(e.Struct).Span
	case KindAlias:
		return t.Alias(e.Alias).Span
	}
	return source.Span{}
}
