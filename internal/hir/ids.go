package hir

import (
	"mica/internal/item"
	"mica/internal/source"
)

// FunctionID identifies an interned function definition.
type FunctionID uint32

// StructID identifies an interned struct definition.
type StructID uint32

// TypeAliasID identifies an interned type-alias definition.
type TypeAliasID uint32

// Invalid ID constants (zero is sentinel).
const (
	NoFunctionID  FunctionID  = 0
	NoStructID    StructID    = 0
	NoTypeAliasID TypeAliasID = 0
)

func (id FunctionID) IsValid() bool  { return id != NoFunctionID }
func (id StructID) IsValid() bool    { return id != NoStructID }
func (id TypeAliasID) IsValid() bool { return id != NoTypeAliasID }

// FunctionLoc names a function definition by its syntactic position: the
// file plus the local handle in that file's item tree. Value equality means
// "the same definition".
type FunctionLoc struct {
	File  source.FileID
	Value item.FnID
}

// StructLoc names a struct definition by its syntactic position.
type StructLoc struct {
	File  source.FileID
	Value item.StructID
}

// TypeAliasLoc names a type-alias definition by its syntactic position.
type TypeAliasLoc struct {
	File  source.FileID
	Value item.AliasID
}
