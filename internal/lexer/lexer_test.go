package lexer

import (
	"testing"

	"mica/internal/diag"
	"mica/internal/source"
	"mica/internal/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mc", []byte(src))
	bag := diag.NewBag(64)
	toks := ScanAll(fs.Get(id), diag.BagReporter{Bag: bag})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestScanFunction(t *testing.T) {
	toks, bag := scan(t, "pub fn add(a: int, b: int) -> int { return a; }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	want := []token.Kind{
		token.KwPub, token.KwFn, token.Ident, token.LParen,
		token.Ident, token.Colon, token.Ident, token.Comma,
		token.Ident, token.Colon, token.Ident, token.RParen,
		token.Arrow, token.Ident, token.LBrace,
		token.KwReturn, token.Ident, token.Semi,
		token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanLiteralsAndComments(t *testing.T) {
	toks, bag := scan(t, "// comment\nlet x = 3.25; let s = \"hi\"; let b = true;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	var sawFloat, sawString, sawTrue bool
	for _, tk := range toks {
		switch tk.Kind {
		case token.FloatLit:
			sawFloat = tk.Text == "3.25"
		case token.StringLit:
			sawString = tk.Text == `"hi"`
		case token.KwTrue:
			sawTrue = true
		}
	}
	if !sawFloat || !sawString || !sawTrue {
		t.Errorf("missing literals: float=%v string=%v true=%v", sawFloat, sawString, sawTrue)
	}
}

func TestScanUnknownChar(t *testing.T) {
	toks, bag := scan(t, "fn f() { return 1 $ ; }")
	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1", bag.Len())
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("code = %v", bag.Items()[0].Code)
	}
	// Scanning continues past the bad byte.
	if toks[len(toks)-1].Kind != token.EOF {
		t.Error("stream must end in EOF")
	}
}

func TestScanLongGarbageRun(t *testing.T) {
	// A long run of unknown bytes must be swallowed iteratively, one
	// diagnostic per byte, without growing the stack.
	garbage := make([]byte, 1<<16)
	for i := range garbage {
		garbage[i] = '$'
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mc", append(garbage, []byte("fn f() {}")...))
	bag := diag.NewBag(0)
	toks := ScanAll(fs.Get(id), diag.BagReporter{Bag: bag})

	if bag.Len() != 1<<16 {
		t.Fatalf("diagnostics = %d, want %d", bag.Len(), 1<<16)
	}
	if toks[0].Kind != token.KwFn {
		t.Errorf("first token = %v, want 'fn'", toks[0].Kind)
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Error("stream must end in EOF")
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, bag := scan(t, `let s = "oops`)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
}

func TestScanSpans(t *testing.T) {
	toks, _ := scan(t, "fn foo")
	// "foo" occupies bytes 3..6
	ident := toks[1]
	if ident.Span.Start != 3 || ident.Span.End != 6 {
		t.Errorf("ident span = %v", ident.Span)
	}
	if ident.Text != "foo" {
		t.Errorf("ident text = %q", ident.Text)
	}
}
