// Package parser builds the per-file item tree from a token stream.
//
// The parser never aborts a file: every syntax error is reported through
// the diag.Reporter and recovery skips to the next token that can start a
// top-level item. Malformed declarations still produce an item-tree entry
// whenever a name was seen, so later phases observe every declaration the
// user wrote.
package parser

import (
	"fmt"

	"mica/internal/diag"
	"mica/internal/item"
	"mica/internal/lexer"
	"mica/internal/source"
	"mica/internal/token"
)

// ParseFile tokenizes and parses one file into its item tree. Identifier
// names are interned into the provided interner.
func ParseFile(file *source.File, interner *source.Interner, reporter diag.Reporter) *item.Tree {
	toks := lexer.ScanAll(file, reporter)
	p := &parser{
		toks:     toks,
		tree:     item.NewTree(file.ID),
		interner: interner,
		reporter: reporter,
	}
	p.parseFile()
	return p.tree
}

type parser struct {
	toks     []token.Token
	pos      int
	tree     *item.Tree
	interner *source.Interner
	reporter diag.Reporter
}

func (p *parser) parseFile() {
	for !p.at(token.EOF) {
		if !p.parseItem() {
			p.recoverToItemStart()
		}
	}
}

// parseItem parses one top-level declaration. Returns false when the
// current token cannot begin an item.
func (p *parser) parseItem() bool {
	vis := item.VisPrivate
	if p.at(token.KwPub) {
		p.bump()
		vis = item.VisPublic
	}

	isExtern := false
	if p.at(token.KwExtern) {
		p.bump()
		isExtern = true
	}

	switch {
	case p.at(token.KwFn):
		p.parseFn(vis, isExtern)
		return true
	case p.at(token.KwStruct):
		p.parseStruct(vis)
		return true
	case p.at(token.KwType):
		p.parseAlias(vis)
		return true
	default:
		diag.Error(p.reporter, diag.ParseExpectedItem, p.peek().Span,
			fmt.Sprintf("expected a top-level item, found %s", p.peek().Kind))
		return false
	}
}

func (p *parser) parseFn(vis item.Visibility, isExtern bool) {
	start := p.peek().Span
	p.bump() // fn

	name, nameSpan, ok := p.expectName("function")
	if !ok {
		return
	}

	paramsStart, paramsCount := p.parseParams()

	ret := item.TypeSyn{}
	if p.at(token.Arrow) {
		p.bump()
		ret = p.parseType()
	}

	fn := item.FnItem{
		Name:        name,
		NameSpan:    nameSpan,
		Visibility:  vis,
		IsExtern:    isExtern,
		ParamsStart: paramsStart,
		ParamsCount: paramsCount,
		Ret:         ret,
	}

	if isExtern {
		p.expect(token.Semi)
	} else {
		fn.Body = p.parseBlock()
	}
	fn.Span = start.Cover(p.prev().Span)

	id := item.FnID(p.tree.Fns.Allocate(fn))
	p.tree.Entries = append(p.tree.Entries, item.Entry{Kind: item.KindFn, Fn: id})
}

// parseParams consumes "(" param ("," param)* ")" and returns the arena
// range. A parameter without a type annotation still occupies a slot.
func (p *parser) parseParams() (item.ParamID, uint32) {
	if !p.expect(token.LParen) {
		return item.NoParamID, 0
	}

	var start item.ParamID
	var count uint32
	for !p.at(token.RParen) && !p.at(token.EOF) {
		pname, pnameSpan, ok := p.expectName("parameter")
		if !ok {
			break
		}
		param := item.Param{Name: pname, Span: pnameSpan}
		if p.at(token.Colon) {
			p.bump()
			param.Type = p.parseType()
			param.Span = pnameSpan.Cover(param.Type.Span)
		}
		id := item.ParamID(p.tree.Params.Allocate(param))
		if count == 0 {
			start = id
		}
		count++

		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.expect(token.RParen)
	return start, count
}

func (p *parser) parseStruct(vis item.Visibility) {
	start := p.peek().Span
	p.bump() // struct

	name, nameSpan, ok := p.expectName("struct")
	if !ok {
		return
	}

	var fieldsStart item.FieldID
	var fieldsCount uint32
	if p.expect(token.LBrace) {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			fname, fnameSpan, ok := p.expectName("field")
			if !ok {
				break
			}
			field := item.Field{Name: fname, NameSpan: fnameSpan, Span: fnameSpan}
			if p.expect(token.Colon) {
				field.Type = p.parseType()
				field.Span = fnameSpan.Cover(field.Type.Span)
			} else {
				diag.Error(p.reporter, diag.ParseBadField, fnameSpan,
					"struct field requires a type annotation")
			}
			id := item.FieldID(p.tree.Fields.Allocate(field))
			if fieldsCount == 0 {
				fieldsStart = id
			}
			fieldsCount++

			if p.at(token.Comma) {
				p.bump()
				continue
			}
			break
		}
		p.expect(token.RBrace)
	}

	id := item.StructID(p.tree.Structs.Allocate(item.StructItem{
		Name:        name,
		NameSpan:    nameSpan,
		Visibility:  vis,
		FieldsStart: fieldsStart,
		FieldsCount: fieldsCount,
		Span:        start.Cover(p.prev().Span),
	}))
	p.tree.Entries = append(p.tree.Entries, item.Entry{Kind: item.KindStruct, Struct: id})
}

func (p *parser) parseAlias(vis item.Visibility) {
	start := p.peek().Span
	p.bump() // type

	name, nameSpan, ok := p.expectName("type alias")
	if !ok {
		return
	}

	var target item.TypeSyn
	if p.expect(token.Assign) {
		target = p.parseType()
	}
	p.expect(token.Semi)

	id := item.AliasID(p.tree.Aliases.Allocate(item.AliasItem{
		Name:       name,
		NameSpan:   nameSpan,
		Visibility: vis,
		Target:     target,
		Span:       start.Cover(p.prev().Span),
	}))
	p.tree.Entries = append(p.tree.Entries, item.Entry{Kind: item.KindAlias, Alias: id})
}

// parseType parses a type annotation: a named path or the `()` unit marker.
// On failure reports and returns a missing TypeSyn.
func (p *parser) parseType() item.TypeSyn {
	switch {
	case p.at(token.Ident):
		tok := p.bump()
		return item.TypeSyn{
			Kind: item.TypeSynNamed,
			Name: p.interner.Intern(tok.Text),
			Span: tok.Span,
		}
	case p.at(token.LParen):
		open := p.bump()
		if p.at(token.RParen) {
			closing := p.bump()
			return item.TypeSyn{Kind: item.TypeSynUnit, Span: open.Span.Cover(closing.Span)}
		}
		diag.Error(p.reporter, diag.ParseExpectedType, open.Span, "expected ')' to close the unit type")
		return item.TypeSyn{Span: open.Span}
	default:
		diag.Error(p.reporter, diag.ParseExpectedType, p.peek().Span,
			fmt.Sprintf("expected a type, found %s", p.peek().Kind))
		return item.TypeSyn{Span: p.peek().Span}
	}
}

// recoverToItemStart skips tokens until the next plausible item boundary.
func (p *parser) recoverToItemStart() {
	for !p.at(token.EOF) {
		p.bump()
		if p.peek().Kind.IsItemStart() {
			return
		}
	}
}

func (p *parser) expectName(what string) (source.StringID, source.Span, bool) {
	if !p.at(token.Ident) {
		diag.Error(p.reporter, diag.ParseExpectedName, p.peek().Span,
			fmt.Sprintf("expected a %s name, found %s", what, p.peek().Kind))
		return source.NoStringID, p.peek().Span, false
	}
	tok := p.bump()
	return p.interner.Intern(tok.Text), tok.Span, true
}

func (p *parser) expect(kind token.Kind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	diag.Error(p.reporter, diag.ParseExpectedToken, p.peek().Span,
		fmt.Sprintf("expected %s, found %s", kind, p.peek().Kind))
	return false
}

func (p *parser) at(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *parser) prev() token.Token {
	if p.pos == 0 {
		return p.toks[0]
	}
	return p.toks[p.pos-1]
}

func (p *parser) bump() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}
