package hir

import (
	"testing"

	"mica/internal/diag"
	"mica/internal/source"
)

func compile(t *testing.T, src string) (*DB, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.AddVirtual("test.mc", []byte(src))
	return NewDB(fs, source.NewInterner()), file
}

func moduleDiags(db *DB, file source.FileID) *diag.Bag {
	bag := diag.NewBag(0)
	ModuleFor(file).Diagnostics(db, diag.BagReporter{Bag: bag})
	return bag
}

func codesOf(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestDeclarationsInItemOrder(t *testing.T) {
	db, file := compile(t, `
fn run() {}
struct Point { x: float, y: float }
type Id = int;
`)
	decls := ModuleFor(file).Declarations(db)
	if len(decls) != 3 {
		t.Fatalf("declarations = %d, want 3", len(decls))
	}

	wantKinds := []DefKind{DefFunction, DefStruct, DefTypeAlias}
	wantNames := []string{"run", "Point", "Id"}
	for i, decl := range decls {
		if decl.Kind != wantKinds[i] {
			t.Errorf("decl[%d].Kind = %v, want %v", i, decl.Kind, wantKinds[i])
		}
		name := db.Strings().MustLookup(decl.Name(db))
		if name != wantNames[i] {
			t.Errorf("decl[%d] name = %q, want %q", i, name, wantNames[i])
		}
	}
}

func TestDuplicateNamesKeepAllDefinitions(t *testing.T) {
	db, file := compile(t, `
fn foo(x) {}
fn foo(y) {}
struct foo { v: int }
`)
	decls := ModuleFor(file).Declarations(db)
	if len(decls) != 3 {
		t.Fatalf("declarations = %d, want 3 (duplicates are reported, not dropped)", len(decls))
	}

	dups := db.ModuleData(file).DuplicateNames()
	if len(dups) != 2 {
		t.Fatalf("duplicate records = %d, want 2", len(dups))
	}
	// Every later collision cites the *original* first occurrence.
	tree := db.ItemTree(file)
	firstSpan := tree.EntryNameSpan(dups[0].FirstDefinition)
	for i, dup := range dups {
		if got := tree.EntryNameSpan(dup.FirstDefinition); got != firstSpan {
			t.Errorf("dup[%d] cites %v, want the first occurrence at %v", i, got, firstSpan)
		}
	}

	bag := moduleDiags(db, file)
	var seen int
	for _, d := range bag.Items() {
		if d.Code != diag.SemaDuplicateName {
			continue
		}
		seen++
		if len(d.Notes) != 1 {
			t.Fatalf("duplicate diagnostic without a first-definition note: %+v", d)
		}
		if d.Notes[0].Span != firstSpan {
			t.Errorf("note span = %v, want first occurrence %v", d.Notes[0].Span, firstSpan)
		}
	}
	if seen != 2 {
		t.Errorf("duplicate diagnostics = %d, want 2", seen)
	}
}

func TestStructuralDiagnosticsComeFirst(t *testing.T) {
	db, file := compile(t, `
type foo = Missing;
type foo = int;
`)
	codes := codesOf(moduleDiags(db, file))
	if len(codes) < 2 {
		t.Fatalf("codes = %v, want duplicate before unresolved", codes)
	}
	if codes[0] != diag.SemaDuplicateName {
		t.Errorf("codes[0] = %v, want %v", codes[0], diag.SemaDuplicateName)
	}
	if codes[1] != diag.SemaUnresolvedType {
		t.Errorf("codes[1] = %v, want %v", codes[1], diag.SemaUnresolvedType)
	}
}

func TestInterningIsIdempotent(t *testing.T) {
	db, file := compile(t, `
fn a() {}
fn b() {}
`)
	first := ModuleFor(file).Declarations(db)
	second := ModuleFor(file).Declarations(db)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("decl[%d] handle changed between queries: %+v vs %+v", i, first[i], second[i])
		}
	}
	if first[0].Function.ID == first[1].Function.ID {
		t.Error("distinct locations shared one FunctionID")
	}
}

func TestInvalidateKeepsIdentitiesStable(t *testing.T) {
	db, file := compile(t, `fn keep() {}`)
	before := ModuleFor(file).Declarations(db)[0].Function

	db.Invalidate(file)

	after := ModuleFor(file).Declarations(db)[0].Function
	if before.ID != after.ID {
		t.Fatalf("FunctionID changed across invalidation: %d vs %d", before.ID, after.ID)
	}
	if got := db.Strings().MustLookup(after.Name(db)); got != "keep" {
		t.Errorf("name after invalidation = %q, want %q", got, "keep")
	}
}

func TestVisibilityDefaultsToPrivate(t *testing.T) {
	db, file := compile(t, `
pub fn exported() {}
fn local() {}
`)
	decls := ModuleFor(file).Declarations(db)
	if vis := decls[0].Function.Visibility(db); !vis.IsPublic() {
		t.Errorf("exported visibility = %v, want public", vis)
	}
	if vis := decls[1].Function.Visibility(db); !vis.IsPrivate() {
		t.Errorf("local visibility = %v, want private", vis)
	}
}

func TestDerivedDataIsDeterministic(t *testing.T) {
	const src = `
struct S { a: int }
fn f(p: S) -> int { return p; }
`
	db1, file1 := compile(t, src)
	db2, file2 := compile(t, src)

	bag1 := moduleDiags(db1, file1)
	bag2 := moduleDiags(db2, file2)
	c1, c2 := codesOf(bag1), codesOf(bag2)
	if len(c1) != len(c2) {
		t.Fatalf("diagnostic counts differ: %v vs %v", c1, c2)
	}
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Errorf("code[%d] differs: %v vs %v", i, c1[i], c2[i])
		}
	}
}
