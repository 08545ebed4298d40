package hir

import (
	"fmt"

	"mica/internal/diag"
	"mica/internal/item"
	"mica/internal/source"
	"mica/internal/types"
)

// InferenceResult assigns a semantic type to every expression of one body.
// Diagnostics found during inference are recorded and replayed into any
// sink; the result itself stays total and immutable.
type InferenceResult struct {
	exprTypes map[item.ExprID]types.TypeID
	diags     []inferDiagnostic
}

type inferDiagnostic struct {
	code diag.Code
	sev  diag.Severity
	span source.Span
	msg  string
}

// TypeOf returns the inferred type of the expression, or the unknown
// sentinel for expressions outside this body.
func (r *InferenceResult) TypeOf(db *DB, id item.ExprID) types.TypeID {
	if t, ok := r.exprTypes[id]; ok {
		return t
	}
	return db.Types().Builtins().Unknown
}

// HasErrors reports whether inference recorded any error findings.
func (r *InferenceResult) HasErrors() bool {
	for _, d := range r.diags {
		if d.sev >= diag.SevError {
			return true
		}
	}
	return false
}

// addDiagnostics replays the recorded findings into the sink.
func (r *InferenceResult) addDiagnostics(_ *DB, _ Function, sink diag.Reporter) {
	for _, d := range r.diags {
		if sink == nil {
			continue
		}
		sink.Report(d.code, d.sev, d.span, d.msg, nil)
	}
}

// inferQuery walks the body once, in source order, threading a local
// environment of parameters and let bindings over the module resolver.
func inferQuery(db *DB, def DefWithBody) *InferenceResult {
	fn := def.Function
	body := db.Body(def)
	data := fn.Data(db)
	lower := db.LowerFunction(fn)

	ctx := &inferCtx{
		db:       db,
		tree:     db.ItemTree(body.file),
		resolver: def.resolver(db),
		env:      make(map[source.StringID]types.TypeID),
		result: &InferenceResult{
			exprTypes: make(map[item.ExprID]types.TypeID),
		},
	}

	// Parameters enter the environment with their lowered types; slots
	// without annotations contribute the unknown sentinel.
	for i, name := range body.params {
		if i < len(data.params) {
			ctx.env[name] = lower.TypeOf(data.params[i])
		}
	}
	retType := lower.TypeOf(data.retType)

	for _, sid := range body.stmts {
		ctx.inferStmt(sid, retType)
	}
	return ctx.result
}

type inferCtx struct {
	db       *DB
	tree     *item.Tree
	resolver *Resolver
	env      map[source.StringID]types.TypeID
	result   *InferenceResult
}

func (ctx *inferCtx) inferStmt(sid item.StmtID, retType types.TypeID) {
	stmt := ctx.tree.Stmt(sid)
	if stmt == nil {
		return
	}

	switch stmt.Kind {
	case item.StmtLet:
		var initType types.TypeID
		if stmt.Init.IsValid() {
			initType = ctx.inferExpr(stmt.Init)
		} else {
			initType = ctx.unknown()
		}

		bindType := initType
		if stmt.Ann.Present() {
			annType := ctx.typeOfSyn(stmt.Ann)
			if ctx.known(annType) && ctx.known(initType) && annType != initType {
				ctx.errorf(diag.SemaTypeMismatch, ctx.exprSpan(stmt.Init),
					"expected `%s`, found `%s`", ctx.typeName(annType), ctx.typeName(initType))
			}
			bindType = annType
		}
		ctx.env[stmt.Name] = bindType

	case item.StmtReturn:
		valueType := ctx.db.Types().Builtins().Unit
		span := stmt.Span
		if stmt.Value.IsValid() {
			valueType = ctx.inferExpr(stmt.Value)
			span = ctx.exprSpan(stmt.Value)
		}
		if ctx.known(retType) && ctx.known(valueType) && valueType != retType {
			ctx.errorf(diag.SemaTypeMismatch, span,
				"expected `%s`, found `%s`", ctx.typeName(retType), ctx.typeName(valueType))
		}

	case item.StmtExpr:
		ctx.inferExpr(stmt.Value)
	}
}

func (ctx *inferCtx) inferExpr(eid item.ExprID) types.TypeID {
	expr := ctx.tree.Expr(eid)
	if expr == nil {
		return ctx.unknown()
	}

	var ty types.TypeID
	switch expr.Kind {
	case item.ExprIntLit:
		ty = ctx.db.Types().Builtins().Int
	case item.ExprFloatLit:
		ty = ctx.db.Types().Builtins().Float
	case item.ExprStringLit:
		ty = ctx.db.Types().Builtins().String
	case item.ExprBoolLit:
		ty = ctx.db.Types().Builtins().Bool
	case item.ExprName:
		ty = ctx.inferName(expr)
	case item.ExprCall:
		ty = ctx.inferCall(expr)
	default:
		ty = ctx.unknown()
	}

	ctx.result.exprTypes[eid] = ty
	return ty
}

func (ctx *inferCtx) inferName(expr *item.Expr) types.TypeID {
	if t, ok := ctx.env[expr.Name]; ok {
		return t
	}
	res, ok := ctx.resolver.Lookup(expr.Name)
	if !ok {
		ctx.errorf(diag.SemaUnresolvedName, expr.Span,
			"cannot resolve name `%s`", expr.Text)
		return ctx.unknown()
	}
	switch res.Def.Kind {
	case DefFunction:
		return res.Def.Function.Ty(ctx.db)
	default:
		ctx.errorf(diag.SemaUnresolvedName, expr.Span,
			"`%s` is not a value", expr.Text)
		return ctx.unknown()
	}
}

func (ctx *inferCtx) inferCall(expr *item.Expr) types.TypeID {
	calleeType := ctx.inferExpr(expr.Callee)
	argTypes := make([]types.TypeID, 0, len(expr.Args))
	for _, arg := range expr.Args {
		argTypes = append(argTypes, ctx.inferExpr(arg))
	}

	if !ctx.known(calleeType) {
		// The callee already produced a finding; stay quiet here.
		return ctx.unknown()
	}

	tt := ctx.db.Types().MustLookup(calleeType)
	sig, ok := ctx.db.Types().Sig(tt)
	if !ok {
		ctx.errorf(diag.SemaNotCallable, expr.Span,
			"expression of type `%s` is not callable", tt.Kind)
		return ctx.unknown()
	}

	if len(argTypes) != len(sig.Params) {
		ctx.errorf(diag.SemaArgCountMismatch, expr.Span,
			"expected %d argument(s), found %d", len(sig.Params), len(argTypes))
		return sig.Ret
	}
	for i, at := range argTypes {
		want := sig.Params[i]
		if ctx.known(want) && ctx.known(at) && want != at {
			ctx.errorf(diag.SemaTypeMismatch, ctx.exprSpan(expr.Args[i]),
				"expected `%s`, found `%s`", ctx.typeName(want), ctx.typeName(at))
		}
	}
	return sig.Ret
}

// typeOfSyn resolves a body-local type annotation. Unresolvable names are
// reported at the annotation's span.
func (ctx *inferCtx) typeOfSyn(syn item.TypeSyn) types.TypeID {
	switch syn.Kind {
	case item.TypeSynUnit:
		return ctx.db.Types().Builtins().Unit
	case item.TypeSynNamed:
		res, ok := ctx.resolver.LookupType(syn.Name)
		if !ok {
			ctx.errorf(diag.SemaUnresolvedType, syn.Span,
				"cannot resolve type `%s`", ctx.db.Strings().MustLookup(syn.Name))
			return ctx.unknown()
		}
		switch res.Def.Kind {
		case DefBuiltinType:
			return res.Def.Builtin.Type
		case DefStruct:
			return res.Def.Struct.Ty(ctx.db)
		case DefTypeAlias:
			return res.Def.TypeAlias.Ty(ctx.db)
		}
		return ctx.unknown()
	default:
		return ctx.unknown()
	}
}

func (ctx *inferCtx) exprSpan(eid item.ExprID) source.Span {
	if expr := ctx.tree.Expr(eid); expr != nil {
		return expr.Span
	}
	return source.Span{File: ctx.tree.File}
}

func (ctx *inferCtx) known(t types.TypeID) bool {
	return t != types.NoTypeID && t != ctx.db.Types().Builtins().Unknown
}

func (ctx *inferCtx) unknown() types.TypeID {
	return ctx.db.Types().Builtins().Unknown
}

func (ctx *inferCtx) typeName(t types.TypeID) string {
	tt, ok := ctx.db.Types().Lookup(t)
	if !ok {
		return "{invalid}"
	}
	if tt.Kind == types.KindStruct {
		data := Struct{ID: StructID(tt.Payload)}.Data(ctx.db)
		return ctx.db.Strings().MustLookup(data.Name())
	}
	return tt.Kind.String()
}

func (ctx *inferCtx) errorf(code diag.Code, span source.Span, format string, args ...any) {
	ctx.result.diags = append(ctx.result.diags, inferDiagnostic{
		code: code,
		sev:  diag.SevError,
		span: span,
		msg:  fmt.Sprintf(format, args...),
	})
}
