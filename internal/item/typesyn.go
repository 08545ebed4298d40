package item

import "mica/internal/source"

// TypeSynKind classifies a syntactic type annotation.
type TypeSynKind uint8

const (
	// TypeSynMissing is the zero value: no annotation was written.
	TypeSynMissing TypeSynKind = iota
	// TypeSynNamed is a single-segment path like `int` or `Vec`.
	TypeSynNamed
	// TypeSynUnit is the `()` marker.
	TypeSynUnit
)

// TypeSyn is an unresolved, purely syntactic mention of a type. Resolution
// into a semantic type happens in the lowering pass.
type TypeSyn struct {
	Kind TypeSynKind
	Name source.StringID // valid for TypeSynNamed
	Span source.Span
}

func (t TypeSyn) Present() bool {
	return t.Kind != TypeSynMissing
}
