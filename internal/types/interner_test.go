package types

import "testing"

func TestInternIdempotent(t *testing.T) {
	in := NewInterner()

	id1 := in.Intern(Type{Kind: KindBool})
	id2 := in.Intern(Type{Kind: KindBool})
	if id1 != id2 {
		t.Errorf("structurally equal types must share an ID: %d != %d", id1, id2)
	}
	if id1 != in.Builtins().Bool {
		t.Errorf("bool must resolve to the seeded builtin: %d != %d", id1, in.Builtins().Bool)
	}
}

func TestInternDistinct(t *testing.T) {
	in := NewInterner()
	if in.Builtins().Int == in.Builtins().Uint {
		t.Error("distinct descriptors must get distinct IDs")
	}
	if in.Struct(1) == in.Struct(2) {
		t.Error("distinct struct identities must get distinct IDs")
	}
	if in.Struct(1) != in.Struct(1) {
		t.Error("same struct identity must share one ID")
	}
}

func TestBuiltinByName(t *testing.T) {
	in := NewInterner()
	cases := map[string]TypeID{
		"bool":   in.Builtins().Bool,
		"int":    in.Builtins().Int,
		"uint":   in.Builtins().Uint,
		"float":  in.Builtins().Float,
		"string": in.Builtins().String,
	}
	for name, want := range cases {
		got, ok := in.BuiltinByName(name)
		if !ok || got != want {
			t.Errorf("BuiltinByName(%q) = %d, ok=%v, want %d", name, got, ok, want)
		}
	}
	if _, ok := in.BuiltinByName("Vec"); ok {
		t.Error("non-builtin name must not resolve")
	}
}

func TestFnSignatureInterning(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	f1 := in.Fn([]TypeID{b.Int, b.Int}, b.Int)
	f2 := in.Fn([]TypeID{b.Int, b.Int}, b.Int)
	f3 := in.Fn([]TypeID{b.Int}, b.Int)
	if f1 != f2 {
		t.Error("equal signatures must share one ID")
	}
	if f1 == f3 {
		t.Error("different arity must give a different ID")
	}

	tt := in.MustLookup(f1)
	sig, ok := in.Sig(tt)
	if !ok || len(sig.Params) != 2 || sig.Ret != b.Int {
		t.Errorf("Sig = %+v, ok=%v", sig, ok)
	}
}

func TestMustLookupPanics(t *testing.T) {
	in := NewInterner()
	defer func() {
		if recover() == nil {
			t.Error("MustLookup must panic for NoTypeID")
		}
	}()
	in.MustLookup(NoTypeID)
}
