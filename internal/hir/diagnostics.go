package hir

import (
	"fmt"

	"mica/internal/diag"
	"mica/internal/item"
	"mica/internal/source"
)

// defDiagnostic is a structural diagnostic recorded while aggregating a
// module. It carries item handles, not copies, so rendering can map the
// colliding items back to syntax positions.
type defDiagnostic interface {
	addTo(db *DB, owner Module, sink diag.Reporter)
}

// DuplicateName records one top-level name collision: the offending item
// and the first item that took the name.
type DuplicateName struct {
	Name            source.StringID
	Definition      item.Entry
	FirstDefinition item.Entry
}

func (d DuplicateName) addTo(db *DB, owner Module, sink diag.Reporter) {
	tree := db.ItemTree(owner.File)
	name := db.Strings().MustLookup(d.Name)
	diag.Error(sink, diag.SemaDuplicateName,
		tree.EntryNameSpan(d.Definition),
		fmt.Sprintf("the name `%s` is defined multiple times", name),
		diag.Note{
			Span: tree.EntryNameSpan(d.FirstDefinition),
			Msg:  fmt.Sprintf("first definition of `%s` is here", name),
		})
}
