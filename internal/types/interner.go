package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types every compilation needs.
type Builtins struct {
	Invalid TypeID
	Unknown TypeID
	Unit    TypeID
	Bool    TypeID
	String  TypeID
	Int     TypeID
	Uint    TypeID
	Float   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Intern is idempotent: structurally equal descriptors share one ID.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	sigs     []FnSig
	sigIndex map[string]uint32
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:    make(map[Type]TypeID, 64),
		sigIndex: make(map[string]uint32, 16),
	}
	in.sigs = append(in.sigs, FnSig{}) // reserve 0 as invalid sentinel
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unknown = in.Intern(Type{Kind: KindUnknown})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Uint = in.Intern(Type{Kind: KindUint})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	return in
}

// Builtins returns the TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// BuiltinByName maps a primitive type name to its TypeID.
func (in *Interner) BuiltinByName(name string) (TypeID, bool) {
	switch name {
	case "bool":
		return in.builtins.Bool, true
	case "string":
		return in.builtins.String, true
	case "int":
		return in.builtins.Int, true
	case "uint":
		return in.builtins.Uint, true
	case "float":
		return in.builtins.Float, true
	default:
		return NoTypeID, false
	}
}

// Intern ensures the descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Struct returns the nominal type for a struct definition identity.
func (in *Interner) Struct(def uint32) TypeID {
	return in.Intern(Type{Kind: KindStruct, Payload: def})
}

// Fn interns a function signature and returns its TypeID. Structurally
// equal signatures share one ID.
func (in *Interner) Fn(params []TypeID, ret TypeID) TypeID {
	key := sigKey(params, ret)
	if idx, ok := in.sigIndex[key]; ok {
		return in.Intern(Type{Kind: KindFn, Payload: idx})
	}
	lenSigs, err := safecast.Conv[uint32](len(in.sigs))
	if err != nil {
		panic(fmt.Errorf("len(sigs) overflow: %w", err))
	}
	in.sigs = append(in.sigs, FnSig{
		Params: append([]TypeID(nil), params...),
		Ret:    ret,
	})
	in.sigIndex[key] = lenSigs
	return in.Intern(Type{Kind: KindFn, Payload: lenSigs})
}

// Sig returns the signature table entry for a KindFn type.
func (in *Interner) Sig(t Type) (FnSig, bool) {
	if t.Kind != KindFn || t.Payload == 0 || int(t.Payload) >= len(in.sigs) {
		return FnSig{}, false
	}
	return in.sigs[t.Payload], true
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

func sigKey(params []TypeID, ret TypeID) string {
	var sb strings.Builder
	for _, p := range params {
		fmt.Fprintf(&sb, "%d,", p)
	}
	fmt.Fprintf(&sb, "->%d", ret)
	return sb.String()
}
