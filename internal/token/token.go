// Package token defines lexical token kinds for the Mica front end.
// Invariants:
//   - Token.Span matches Text exactly (Start..End).
//   - Built-in type names (int, uint, float, bool, string) are identifiers.
//     They are recognized by the semantic layer, not the lexer.
package token

import "mica/internal/source"

// Token is one lexical unit with its source position.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) Is(kind Kind) bool {
	return t.Kind == kind
}
