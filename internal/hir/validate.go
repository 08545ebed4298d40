package hir

import (
	"fmt"

	"mica/internal/diag"
	"mica/internal/item"
)

// exprValidator runs the structural body checks that need no type
// information beyond the inference result.
type exprValidator struct {
	fn Function
	db *DB
}

func newExprValidator(fn Function, db *DB) *exprValidator {
	return &exprValidator{fn: fn, db: db}
}

// validateBody flags statements that can never execute. Only one warning
// is produced per block: everything past the first return is covered by
// a single finding anchored at the first dead statement.
func (v *exprValidator) validateBody(sink diag.Reporter) {
	body := v.db.Body(BodyOwner(v.fn))
	tree := v.db.ItemTree(body.file)

	seenReturn := false
	for _, sid := range body.stmts {
		stmt := tree.Stmt(sid)
		if stmt == nil {
			continue
		}
		if seenReturn {
			diag.Warning(sink, diag.SemaUnreachableCode, stmt.Span,
				"unreachable statement")
			return
		}
		if stmt.Kind == item.StmtReturn {
			seenReturn = true
		}
	}
}

// typeAliasValidator runs the declaration checks lowering stays silent on.
type typeAliasValidator struct {
	alias TypeAlias
	db    *DB
}

func newTypeAliasValidator(alias TypeAlias, db *DB) *typeAliasValidator {
	return &typeAliasValidator{alias: alias, db: db}
}

// validateTargetTypeExistence requires the alias to name a target type.
// Missing annotations lower to the unknown sentinel without a finding,
// which is right for parameters but not for an alias declaration.
func (v *typeAliasValidator) validateTargetTypeExistence(sink diag.Reporter) {
	data := v.alias.Data(v.db)
	ref := data.TypeRefMap().Get(data.TypeRef())
	if ref.Kind != TypeRefUnknown {
		return
	}

	sp, ok := data.TypeRefSourceMap().SpanOf(data.TypeRef())
	if !ok {
		loc := v.db.lookupTypeAlias(v.alias.ID)
		sp = v.db.ItemTree(loc.File).EntryNameSpan(item.Entry{Kind: item.KindAlias, Alias: loc.Value})
	}
	name := v.db.Strings().MustLookup(data.Name())
	diag.Error(sink, diag.SemaInvalidAliasTarget, sp,
		fmt.Sprintf("type alias `%s` is missing a target type", name))
}
