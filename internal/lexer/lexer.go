// Package lexer converts Mica source bytes into a token stream.
//
// The lexer never aborts: unknown characters and unterminated literals are
// reported through the diag.Reporter and scanning continues at the next
// byte, so the parser always receives a stream ending in EOF.
package lexer

import (
	"fmt"

	"mica/internal/diag"
	"mica/internal/source"
	"mica/internal/token"
)

// Lexer scans one file. Position state is byte-oriented; spans are produced
// in file-local offsets.
type Lexer struct {
	file     *source.File
	reporter diag.Reporter
	pos      uint32
}

// New creates a lexer over the file, reporting problems to r.
func New(file *source.File, r diag.Reporter) *Lexer {
	return &Lexer{file: file, reporter: r}
}

// ScanAll tokenizes the whole file. The returned slice always ends with an
// EOF token.
func ScanAll(file *source.File, r diag.Reporter) []token.Token {
	lx := New(file, r)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token, skipping whitespace and line comments.
// Unknown characters are swallowed one at a time until a token starts.
func (lx *Lexer) Next() token.Token {
	for {
		lx.skipTrivia()

		start := lx.pos
		b, ok := lx.peek()
		if !ok {
			return lx.make(token.EOF, start, start)
		}

		switch {
		case isIdentStart(b):
			return lx.scanIdent(start)
		case isDigit(b):
			return lx.scanNumber(start)
		case b == '"':
			return lx.scanString(start)
		}

		lx.pos++
		switch b {
		case '(':
			return lx.make(token.LParen, start, lx.pos)
		case ')':
			return lx.make(token.RParen, start, lx.pos)
		case '{':
			return lx.make(token.LBrace, start, lx.pos)
		case '}':
			return lx.make(token.RBrace, start, lx.pos)
		case ':':
			return lx.make(token.Colon, start, lx.pos)
		case ',':
			return lx.make(token.Comma, start, lx.pos)
		case ';':
			return lx.make(token.Semi, start, lx.pos)
		case '=':
			return lx.make(token.Assign, start, lx.pos)
		case '-':
			if next, ok := lx.peek(); ok && next == '>' {
				lx.pos++
				return lx.make(token.Arrow, start, lx.pos)
			}
		}

		diag.Error(lx.reporter, diag.LexUnknownChar, lx.span(start, lx.pos),
			fmt.Sprintf("unknown character %q", rune(b)))
	}
}

func (lx *Lexer) scanIdent(start uint32) token.Token {
	for {
		b, ok := lx.peek()
		if !ok || !isIdentPart(b) {
			break
		}
		lx.pos++
	}
	text := string(lx.file.Content[start:lx.pos])
	if kw, ok := token.LookupKeyword(text); ok {
		return lx.make(kw, start, lx.pos)
	}
	return lx.make(token.Ident, start, lx.pos)
}

func (lx *Lexer) scanNumber(start uint32) token.Token {
	kind := token.IntLit
	for {
		b, ok := lx.peek()
		if !ok {
			break
		}
		if b == '.' && kind == token.IntLit {
			// Fraction only when a digit follows; "1." alone is malformed.
			if next, ok := lx.peekAt(1); ok && isDigit(next) {
				kind = token.FloatLit
				lx.pos++
				continue
			}
			lx.pos++
			diag.Error(lx.reporter, diag.LexBadNumber, lx.span(start, lx.pos),
				"numeric literal must not end with '.'")
			return lx.make(token.IntLit, start, lx.pos)
		}
		if !isDigit(b) {
			break
		}
		lx.pos++
	}
	return lx.make(kind, start, lx.pos)
}

func (lx *Lexer) scanString(start uint32) token.Token {
	lx.pos++ // opening quote
	for {
		b, ok := lx.peek()
		if !ok || b == '\n' {
			diag.Error(lx.reporter, diag.LexUnterminatedString, lx.span(start, lx.pos),
				"unterminated string literal")
			return lx.make(token.StringLit, start, lx.pos)
		}
		lx.pos++
		if b == '"' {
			return lx.make(token.StringLit, start, lx.pos)
		}
	}
}

func (lx *Lexer) skipTrivia() {
	for {
		b, ok := lx.peek()
		if !ok {
			return
		}
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			lx.pos++
		case b == '/' && lx.peekIs(1, '/'):
			for {
				b, ok := lx.peek()
				if !ok || b == '\n' {
					break
				}
				lx.pos++
			}
		default:
			return
		}
	}
}

func (lx *Lexer) peek() (byte, bool) {
	if int(lx.pos) >= len(lx.file.Content) {
		return 0, false
	}
	return lx.file.Content[lx.pos], true
}

func (lx *Lexer) peekAt(offset uint32) (byte, bool) {
	if int(lx.pos+offset) >= len(lx.file.Content) {
		return 0, false
	}
	return lx.file.Content[lx.pos+offset], true
}

func (lx *Lexer) peekIs(offset uint32, want byte) bool {
	b, ok := lx.peekAt(offset)
	return ok && b == want
}

func (lx *Lexer) span(start, end uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: end}
}

func (lx *Lexer) make(kind token.Kind, start, end uint32) token.Token {
	return token.Token{
		Kind: kind,
		Span: lx.span(start, end),
		Text: string(lx.file.Content[start:end]),
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
