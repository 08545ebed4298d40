package hir

import (
	"strings"
	"testing"

	"mica/internal/diag"
)

func TestParamWithoutAnnotationKeepsSlot(t *testing.T) {
	db, file := compile(t, `fn f(x, y: int) {}`)
	fn := ModuleFor(file).Declarations(db)[0].Function
	data := fn.Data(db)
	if len(data.Params()) != 2 {
		t.Fatalf("params = %d, want 2 (missing annotation still occupies a slot)", len(data.Params()))
	}

	lower := db.LowerFunction(fn)
	b := db.Types().Builtins()
	if got := lower.TypeOf(data.Params()[0]); got != b.Unknown {
		t.Errorf("unannotated param = %v, want unknown sentinel %v", got, b.Unknown)
	}
	if got := lower.TypeOf(data.Params()[1]); got != b.Int {
		t.Errorf("annotated param = %v, want int %v", got, b.Int)
	}
	// The missing annotation is policy, not an error.
	if lower.HasErrors() {
		t.Errorf("unexpected lowering diagnostics")
	}
}

func TestMissingReturnAnnotationIsUnit(t *testing.T) {
	db, file := compile(t, `fn f() {}`)
	fn := ModuleFor(file).Declarations(db)[0].Function
	data := fn.Data(db)
	lower := db.LowerFunction(fn)
	if got := lower.TypeOf(data.RetType()); got != db.Types().Builtins().Unit {
		t.Errorf("return type = %v, want unit", got)
	}
}

func TestStructFieldsInDeclarationOrder(t *testing.T) {
	db, file := compile(t, `struct Point { x: float, y: float }`)
	s := ModuleFor(file).Declarations(db)[0].Struct

	fields := s.Fields(db)
	if len(fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(fields))
	}
	wantNames := []string{"x", "y"}
	for i, f := range fields {
		if got := db.Strings().MustLookup(f.Name(db)); got != wantNames[i] {
			t.Errorf("field[%d] = %q, want %q", i, got, wantNames[i])
		}
		if got := f.Ty(db); got != db.Types().Builtins().Float {
			t.Errorf("field[%d] type = %v, want float", i, got)
		}
	}

	if _, ok := s.Field(db, db.Strings().Intern("y")); !ok {
		t.Error("Field(y) not found")
	}
	if _, ok := s.Field(db, db.Strings().Intern("z")); ok {
		t.Error("Field(z) found, want miss")
	}
}

func TestStructFieldRejectsForeignParent(t *testing.T) {
	db, file := compile(t, `struct One { a: int }`)
	s := ModuleFor(file).Declarations(db)[0].Struct

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a field outside its parent")
		}
	}()
	StructField{Parent: s, ID: 99}.Name(db)
}

func TestAliasUnresolvedTarget(t *testing.T) {
	db, file := compile(t, `type Alias = Missing;`)
	bag := moduleDiags(db, file)
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.SemaUnresolvedType {
		t.Fatalf("codes = %v, want exactly [%v]", got, diag.SemaUnresolvedType)
	}
	if msg := bag.Items()[0].Message; !strings.Contains(msg, "Missing") {
		t.Errorf("message %q does not name the unresolved type", msg)
	}
}

func TestAliasChainResolvesToStruct(t *testing.T) {
	db, file := compile(t, `
struct S { a: int }
type A = S;
type B = A;
fn f(p: B) {}
`)
	decls := ModuleFor(file).Declarations(db)
	s := decls[0].Struct
	fn := decls[3].Function

	lower := db.LowerFunction(fn)
	if got := lower.TypeOf(fn.Data(db).Params()[0]); got != s.Ty(db) {
		t.Errorf("param through alias chain = %v, want struct type %v", got, s.Ty(db))
	}
	if bag := moduleDiags(db, file); bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestAliasCycleDegradesToUnknown(t *testing.T) {
	db, file := compile(t, `
type A = B;
type B = A;
`)
	bag := moduleDiags(db, file)
	if !bag.HasErrors() {
		t.Fatal("alias cycle produced no diagnostics")
	}
	for _, d := range bag.Items() {
		if d.Code != diag.SemaUnresolvedType {
			t.Errorf("code = %v, want %v", d.Code, diag.SemaUnresolvedType)
		}
	}
}

func TestAliasTargetMustBeAType(t *testing.T) {
	db, file := compile(t, `
fn f() {}
type T = f;
`)
	bag := moduleDiags(db, file)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SemaUnresolvedType && strings.Contains(d.Message, "not a type") {
			found = true
		}
	}
	if !found {
		t.Fatalf("no not-a-type diagnostic in %v", bag.Items())
	}
}

func TestAliasWithoutTargetIsInvalid(t *testing.T) {
	db, file := compile(t, `type T;`)
	bag := moduleDiags(db, file)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SemaInvalidAliasTarget {
			found = true
		}
	}
	if !found {
		t.Fatalf("no invalid-alias-target diagnostic in %v", bag.Items())
	}
}

func TestLoweringDoesNotShortCircuit(t *testing.T) {
	db, file := compile(t, `
type A = MissingOne;
type B = MissingTwo;
fn f(p: MissingThree) {}
`)
	codes := codesOf(moduleDiags(db, file))
	if len(codes) != 3 {
		t.Fatalf("codes = %v, want one unresolved per declaration", codes)
	}
	for i, c := range codes {
		if c != diag.SemaUnresolvedType {
			t.Errorf("codes[%d] = %v, want %v", i, c, diag.SemaUnresolvedType)
		}
	}
}

func TestDeclarationShadowsBuiltin(t *testing.T) {
	db, file := compile(t, `
struct int { v: float }
fn f(p: int) {}
`)
	decls := ModuleFor(file).Declarations(db)
	s := decls[0].Struct
	fn := decls[1].Function

	lower := db.LowerFunction(fn)
	if got := lower.TypeOf(fn.Data(db).Params()[0]); got != s.Ty(db) {
		t.Errorf("param = %v, want the declared struct %v, not the builtin", got, s.Ty(db))
	}
}
