package hir

import (
	"mica/internal/item"
	"mica/internal/source"
)

// LocalTypeRefID is a slot in one definition's TypeRefMap. Slots are local
// to their map; they mean nothing across definitions.
type LocalTypeRefID uint32

// TypeRefKind classifies a type-reference slot.
type TypeRefKind uint8

const (
	// TypeRefUnknown marks an absent or unparseable annotation. The slot is
	// still allocated so positional invariants (parameter counts) hold.
	TypeRefUnknown TypeRefKind = iota
	TypeRefUnit
	TypeRefPath
)

// TypeRef is one unresolved type mention owned by a definition's data.
type TypeRef struct {
	Kind TypeRefKind
	Name source.StringID // valid for TypeRefPath
}

// TypeRefMap is the immutable slot table produced by a TypeRefBuilder.
type TypeRefMap struct {
	refs []TypeRef
}

// Get returns the type reference in the slot.
func (m *TypeRefMap) Get(id LocalTypeRefID) TypeRef {
	return m.refs[id]
}

// Len returns the number of slots.
func (m *TypeRefMap) Len() int {
	return len(m.refs)
}

// TypeRefSourceMap maps slots back to the syntax spans they came from, for
// positioning lowering diagnostics. Synthesized slots (the unit sentinel,
// missing annotations) may carry an empty span.
type TypeRefSourceMap struct {
	spans map[LocalTypeRefID]source.Span
}

// SpanOf returns the syntax span for the slot.
func (m *TypeRefSourceMap) SpanOf(id LocalTypeRefID) (source.Span, bool) {
	sp, ok := m.spans[id]
	return sp, ok
}

// TypeRefBuilder allocates slots for one definition and freezes them into a
// map/source-map pair. The allocate-then-finalize discipline keeps the
// results immutable and shareable.
type TypeRefBuilder struct {
	refs  []TypeRef
	spans map[LocalTypeRefID]source.Span
	unit  LocalTypeRefID
	// hasUnit tracks whether the canonical unit slot was allocated yet.
	hasUnit bool
}

func NewTypeRefBuilder() *TypeRefBuilder {
	return &TypeRefBuilder{
		spans: make(map[LocalTypeRefID]source.Span),
	}
}

// Alloc allocates a slot for a written annotation.
func (b *TypeRefBuilder) Alloc(syn item.TypeSyn) LocalTypeRefID {
	switch syn.Kind {
	case item.TypeSynNamed:
		return b.push(TypeRef{Kind: TypeRefPath, Name: syn.Name}, syn.Span)
	case item.TypeSynUnit:
		return b.push(TypeRef{Kind: TypeRefUnit}, syn.Span)
	default:
		return b.push(TypeRef{Kind: TypeRefUnknown}, syn.Span)
	}
}

// AllocOpt allocates a slot even when no annotation was written; the slot
// holds the unknown marker so the parameter keeps its position.
func (b *TypeRefBuilder) AllocOpt(syn item.TypeSyn) LocalTypeRefID {
	if !syn.Present() {
		return b.push(TypeRef{Kind: TypeRefUnknown}, syn.Span)
	}
	return b.Alloc(syn)
}

// Unit returns the canonical unit sentinel slot, allocating it on first use.
func (b *TypeRefBuilder) Unit() LocalTypeRefID {
	if !b.hasUnit {
		b.unit = b.push(TypeRef{Kind: TypeRefUnit}, source.Span{})
		b.hasUnit = true
	}
	return b.unit
}

// Finish freezes the builder into an immutable map and source map.
func (b *TypeRefBuilder) Finish() (TypeRefMap, TypeRefSourceMap) {
	return TypeRefMap{refs: b.refs}, TypeRefSourceMap{spans: b.spans}
}

func (b *TypeRefBuilder) push(ref TypeRef, sp source.Span) LocalTypeRefID {
	id := LocalTypeRefID(len(b.refs))
	b.refs = append(b.refs, ref)
	if sp != (source.Span{}) {
		b.spans[id] = sp
	}
	return id
}
