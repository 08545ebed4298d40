package parser

import (
	"fmt"

	"mica/internal/diag"
	"mica/internal/item"
	"mica/internal/token"
)

// parseBlock consumes "{" stmt* "}" and returns the statement IDs in source
// order. Errors inside a statement skip to the next ';' or '}'.
func (p *parser) parseBlock() []item.StmtID {
	if !p.expect(token.LBrace) {
		return nil
	}

	var stmts []item.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		id, ok := p.parseStmt()
		if ok {
			stmts = append(stmts, id)
			continue
		}
		p.recoverToStmtEnd()
	}
	p.expect(token.RBrace)
	return stmts
}

func (p *parser) parseStmt() (item.StmtID, bool) {
	switch {
	case p.at(token.KwLet):
		return p.parseLet()
	case p.at(token.KwReturn):
		return p.parseReturn()
	default:
		start := p.peek().Span
		expr, ok := p.parseExpr()
		if !ok {
			return item.NoStmtID, false
		}
		p.expect(token.Semi)
		id := item.StmtID(p.tree.Stmts.Allocate(item.Stmt{
			Kind:  item.StmtExpr,
			Value: expr,
			Span:  start.Cover(p.prev().Span),
		}))
		return id, true
	}
}

func (p *parser) parseLet() (item.StmtID, bool) {
	start := p.peek().Span
	p.bump() // let

	name, nameSpan, ok := p.expectName("binding")
	if !ok {
		return item.NoStmtID, false
	}

	stmt := item.Stmt{Kind: item.StmtLet, Name: name, NameSpan: nameSpan}
	if p.at(token.Colon) {
		p.bump()
		stmt.Ann = p.parseType()
	}
	if p.at(token.Assign) {
		p.bump()
		init, ok := p.parseExpr()
		if !ok {
			return item.NoStmtID, false
		}
		stmt.Init = init
	}
	p.expect(token.Semi)
	stmt.Span = start.Cover(p.prev().Span)

	return item.StmtID(p.tree.Stmts.Allocate(stmt)), true
}

func (p *parser) parseReturn() (item.StmtID, bool) {
	start := p.peek().Span
	p.bump() // return

	stmt := item.Stmt{Kind: item.StmtReturn}
	if !p.at(token.Semi) && !p.at(token.RBrace) {
		value, ok := p.parseExpr()
		if !ok {
			return item.NoStmtID, false
		}
		stmt.Value = value
	}
	p.expect(token.Semi)
	stmt.Span = start.Cover(p.prev().Span)

	return item.StmtID(p.tree.Stmts.Allocate(stmt)), true
}

// parseExpr parses a primary expression followed by any number of call
// suffixes.
func (p *parser) parseExpr() (item.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return item.NoExprID, false
	}

	for p.at(token.LParen) {
		open := p.bump()
		var args []item.ExprID
		for !p.at(token.RParen) && !p.at(token.EOF) {
			arg, ok := p.parseExpr()
			if !ok {
				return item.NoExprID, false
			}
			args = append(args, arg)
			if p.at(token.Comma) {
				p.bump()
				continue
			}
			break
		}
		p.expect(token.RParen)
		calleeSpan := p.tree.Expr(expr).Span
		expr = item.ExprID(p.tree.Exprs.Allocate(item.Expr{
			Kind:   item.ExprCall,
			Callee: expr,
			Args:   args,
			Span:   calleeSpan.Cover(open.Span).Cover(p.prev().Span),
		}))
	}
	return expr, true
}

func (p *parser) parsePrimary() (item.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.bump()
		return p.allocExpr(item.ExprIntLit, tok), true
	case token.FloatLit:
		p.bump()
		return p.allocExpr(item.ExprFloatLit, tok), true
	case token.StringLit:
		p.bump()
		return p.allocExpr(item.ExprStringLit, tok), true
	case token.KwTrue, token.KwFalse:
		p.bump()
		return p.allocExpr(item.ExprBoolLit, tok), true
	case token.Ident:
		p.bump()
		return item.ExprID(p.tree.Exprs.Allocate(item.Expr{
			Kind: item.ExprName,
			Name: p.interner.Intern(tok.Text),
			Text: tok.Text,
			Span: tok.Span,
		})), true
	default:
		diag.Error(p.reporter, diag.ParseUnexpectedToken, tok.Span,
			fmt.Sprintf("expected an expression, found %s", tok.Kind))
		return item.NoExprID, false
	}
}

func (p *parser) allocExpr(kind item.ExprKind, tok token.Token) item.ExprID {
	return item.ExprID(p.tree.Exprs.Allocate(item.Expr{
		Kind: kind,
		Text: tok.Text,
		Span: tok.Span,
	}))
}

// recoverToStmtEnd skips past the next ';' or stops before '}'.
func (p *parser) recoverToStmtEnd() {
	for !p.at(token.EOF) && !p.at(token.RBrace) {
		tok := p.bump()
		if tok.Kind == token.Semi {
			return
		}
	}
}
