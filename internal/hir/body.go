package hir

import (
	"mica/internal/diag"
	"mica/internal/item"
	"mica/internal/source"
)

// Body is the executable part of a definition: the parameter names and the
// statement list from the item tree. It is derived once per identity and
// shared read-only.
type Body struct {
	file   source.FileID
	params []source.StringID
	stmts  []item.StmtID
}

func bodyQuery(db *DB, def DefWithBody) *Body {
	fn := def.Function
	loc := db.lookupFunction(fn.ID)
	tree := db.ItemTree(loc.File)
	it := tree.Fn(loc.Value)

	params := make([]source.StringID, 0, it.ParamsCount)
	for _, p := range tree.CollectParams(it) {
		params = append(params, p.Name)
	}

	return &Body{
		file:   loc.File,
		params: params,
		stmts:  it.Body,
	}
}

// Params returns the parameter names in declaration order.
func (b *Body) Params() []source.StringID {
	return b.params
}

// Stmts returns the top-level statements in source order.
func (b *Body) Stmts() []item.StmtID {
	return b.stmts
}

// addDiagnostics reports problems found while constructing the body. The
// current grammar surfaces all of those during parsing, so this phase is
// empty today; it stays in the fixed phase order so body-construction
// findings land before inference findings once they exist.
func (b *Body) addDiagnostics(_ *DB, _ DefWithBody, _ diag.Reporter) {}

// BodySourceMap maps body expressions and statements back to their syntax
// spans for diagnostic positioning.
type BodySourceMap struct {
	exprSpans map[item.ExprID]source.Span
	stmtSpans map[item.StmtID]source.Span
}

func bodySourceMapQuery(db *DB, def DefWithBody) *BodySourceMap {
	body := db.Body(def)
	tree := db.ItemTree(body.file)

	m := &BodySourceMap{
		exprSpans: make(map[item.ExprID]source.Span),
		stmtSpans: make(map[item.StmtID]source.Span),
	}
	for _, sid := range body.stmts {
		m.collectStmt(tree, sid)
	}
	return m
}

func (m *BodySourceMap) collectStmt(tree *item.Tree, sid item.StmtID) {
	stmt := tree.Stmt(sid)
	if stmt == nil {
		return
	}
	m.stmtSpans[sid] = stmt.Span
	if stmt.Init.IsValid() {
		m.collectExpr(tree, stmt.Init)
	}
	if stmt.Value.IsValid() {
		m.collectExpr(tree, stmt.Value)
	}
}

func (m *BodySourceMap) collectExpr(tree *item.Tree, eid item.ExprID) {
	expr := tree.Expr(eid)
	if expr == nil {
		return
	}
	m.exprSpans[eid] = expr.Span
	if expr.Callee.IsValid() {
		m.collectExpr(tree, expr.Callee)
	}
	for _, arg := range expr.Args {
		m.collectExpr(tree, arg)
	}
}

// ExprSpan returns the span of a body expression.
func (m *BodySourceMap) ExprSpan(id item.ExprID) (source.Span, bool) {
	sp, ok := m.exprSpans[id]
	return sp, ok
}

// StmtSpan returns the span of a body statement.
func (m *BodySourceMap) StmtSpan(id item.StmtID) (source.Span, bool) {
	sp, ok := m.stmtSpans[id]
	return sp, ok
}
