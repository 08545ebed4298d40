package hir

import (
	"strings"
	"testing"

	"mica/internal/diag"
)

func TestReturnTypeChecked(t *testing.T) {
	db, file := compile(t, `fn f() -> int { return "nope"; }`)
	codes := codesOf(moduleDiags(db, file))
	if len(codes) != 1 || codes[0] != diag.SemaTypeMismatch {
		t.Fatalf("codes = %v, want [%v]", codes, diag.SemaTypeMismatch)
	}
}

func TestReturnMatchingTypeIsClean(t *testing.T) {
	db, file := compile(t, `fn f(x: int) -> int { return x; }`)
	if bag := moduleDiags(db, file); bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestBareReturnIsUnit(t *testing.T) {
	db, file := compile(t, `fn f() { return; }`)
	if bag := moduleDiags(db, file); bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLetAnnotationMismatch(t *testing.T) {
	db, file := compile(t, `fn f() { let x: int = "text"; }`)
	bag := moduleDiags(db, file)
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.SemaTypeMismatch {
		t.Fatalf("codes = %v, want [%v]", got, diag.SemaTypeMismatch)
	}
	msg := bag.Items()[0].Message
	if !strings.Contains(msg, "int") || !strings.Contains(msg, "string") {
		t.Errorf("message %q should name both types", msg)
	}
}

func TestLetBindingPropagates(t *testing.T) {
	db, file := compile(t, `
fn f() -> int {
	let x = 1;
	let y: int = x;
	return y;
}`)
	if bag := moduleDiags(db, file); bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestUnresolvedName(t *testing.T) {
	db, file := compile(t, `fn f() { ghost; }`)
	bag := moduleDiags(db, file)
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.SemaUnresolvedName {
		t.Fatalf("codes = %v, want [%v]", got, diag.SemaUnresolvedName)
	}
	if msg := bag.Items()[0].Message; !strings.Contains(msg, "ghost") {
		t.Errorf("message %q does not name the unresolved identifier", msg)
	}
}

func TestCallArityMismatch(t *testing.T) {
	db, file := compile(t, `
fn id(x: int) -> int { return x; }
fn g() { id(); }
`)
	codes := codesOf(moduleDiags(db, file))
	if len(codes) != 1 || codes[0] != diag.SemaArgCountMismatch {
		t.Fatalf("codes = %v, want [%v]", codes, diag.SemaArgCountMismatch)
	}
}

func TestCallArgTypeMismatch(t *testing.T) {
	db, file := compile(t, `
fn id(x: int) -> int { return x; }
fn g() { id(true); }
`)
	codes := codesOf(moduleDiags(db, file))
	if len(codes) != 1 || codes[0] != diag.SemaTypeMismatch {
		t.Fatalf("codes = %v, want [%v]", codes, diag.SemaTypeMismatch)
	}
}

func TestCallResultFeedsReturn(t *testing.T) {
	db, file := compile(t, `
fn id(x: int) -> int { return x; }
fn g() -> int { return id(1); }
`)
	if bag := moduleDiags(db, file); bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestCalleeMustBeCallable(t *testing.T) {
	db, file := compile(t, `
fn f() {
	let x: int = 1;
	x();
}`)
	codes := codesOf(moduleDiags(db, file))
	if len(codes) != 1 || codes[0] != diag.SemaNotCallable {
		t.Fatalf("codes = %v, want [%v]", codes, diag.SemaNotCallable)
	}
}

func TestUnknownCalleeStaysQuiet(t *testing.T) {
	// The unresolved callee is reported once; the call itself adds nothing.
	db, file := compile(t, `fn f() { ghost(1); }`)
	codes := codesOf(moduleDiags(db, file))
	if len(codes) != 1 || codes[0] != diag.SemaUnresolvedName {
		t.Fatalf("codes = %v, want only the unresolved callee", codes)
	}
}

func TestUnreachableAfterReturn(t *testing.T) {
	db, file := compile(t, `
fn f() -> int {
	return 1;
	let x = 2;
	let y = 3;
}`)
	bag := moduleDiags(db, file)
	var warns int
	for _, d := range bag.Items() {
		if d.Code == diag.SemaUnreachableCode {
			warns++
			if d.Severity != diag.SevWarning {
				t.Errorf("severity = %v, want warning", d.Severity)
			}
		}
	}
	if warns != 1 {
		t.Fatalf("unreachable warnings = %d, want exactly 1 for the whole tail", warns)
	}
}

func TestExternFunctionHasNoBodyDiagnostics(t *testing.T) {
	db, file := compile(t, `extern fn write(fd: int, data: string) -> int;`)
	if bag := moduleDiags(db, file); bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestInferredExprTypes(t *testing.T) {
	db, file := compile(t, `fn f() { let x = 1.5; }`)
	fn := ModuleFor(file).Declarations(db)[0].Function

	body := db.Body(BodyOwner(fn))
	tree := db.ItemTree(file)
	stmt := tree.Stmt(body.Stmts()[0])

	res := fn.Infer(db)
	if got := res.TypeOf(db, stmt.Init); got != db.Types().Builtins().Float {
		t.Errorf("literal type = %v, want float", got)
	}
}
