// Package types provides the semantic type descriptors and the interner
// that hands out stable TypeIDs for them. The item tree and the hir layer
// never store type structure directly, only TypeIDs.
package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindUnknown is the error sentinel: an annotation that was missing or
	// failed to resolve lowers to it instead of being dropped.
	KindUnknown
	KindUnit
	KindBool
	KindString
	KindInt
	KindUint
	KindFloat
	// KindStruct is a nominal struct type; Payload carries the definition
	// identity assigned by the hir layer.
	KindStruct
	// KindFn is a function signature; Payload indexes the interner's
	// signature table.
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnknown:
		return "{unknown}"
	case KindUnit:
		return "()"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindStruct:
		return "struct"
	case KindFn:
		return "fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Payload uint32 // struct definition identity or signature index
}

// FnSig stores the parameter and return types of a function type.
type FnSig struct {
	Params []TypeID
	Ret    TypeID
}
