package typer

import (
	"github.com/efflang/ec/pkg/ast"
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/types"
)

// checkStmt is checkExpr's statement-level counterpart (spec §4.3).
func (t *Typer) checkStmt(s ast.Stmt, expected types.ValueType) (types.ValueType, types.Effects) {
	ty, eff := t.synthOrCheckStmt(s, expected)
	t.setChecked(s, ty, eff)
	return t.Engine.Substitute(ty), t.Engine.SubstituteEffects(eff)
}

func (t *Typer) synthOrCheckStmt(s ast.Stmt, expected types.ValueType) (types.ValueType, types.Effects) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return t.checkExpr(n.Value, expected)
	case *ast.Val:
		return t.checkVal(n, expected)
	case *ast.Scope:
		return t.checkScopeStmt(n, expected)
	case *ast.State:
		return t.checkState(n, expected)
	case *ast.TryHandle:
		return t.checkTryHandle(n, expected)
	case *ast.Shift:
		return t.checkShift(n, expected)
	case *ast.Region:
		t.pushFocus("region", nil)
		defer t.popFocus()
		return t.checkStmt(n.Body, expected)
	case *ast.Hole:
		return types.Bottom{}, types.Effects{}
	default:
		diag.Raise("unhandled ast.Stmt variant %T", s)
		return nil, types.Effects{}
	}
}

func (t *Typer) checkVal(n *ast.Val, expected types.ValueType) (types.ValueType, types.Effects) {
	boundTy, boundEff := t.checkExpr(n.Bound, nil)

	mark := t.Ctx.Backup()
	t.Ctx.BindValue(n.Sym, boundTy)
	restTy, restEff := t.checkStmt(n.Rest, expected)
	t.Ctx.Restore(mark)

	return restTy, boundEff.Union(restEff)
}

func (t *Typer) checkScopeStmt(n *ast.Scope, expected types.ValueType) (types.ValueType, types.Effects) {
	mark := t.Ctx.Backup()
	defEff := t.checkDefinitionGroup(n.Defs)
	restTy, restEff := t.checkStmt(n.Rest, expected)
	t.Ctx.Restore(mark)
	return restTy, defEff.Union(restEff)
}

func (t *Typer) checkState(n *ast.State, expected types.ValueType) (types.ValueType, types.Effects) {
	initTy, initEff := t.checkExpr(n.Init, nil)

	mark := t.Ctx.Backup()
	t.Ctx.BindValue(n.Sym, initTy)
	restTy, restEff := t.checkStmt(n.Rest, expected)
	t.Ctx.Restore(mark)

	return restTy, initEff.Union(restEff)
}

// checkShift binds Param to a fresh unification variable standing for the
// value the captured continuation will eventually be resumed with, then
// checks Body against expected. It records no control effect for the
// shift itself (neither which effect it shifts out of nor that effect's
// evidence): the effects it returns are exactly Body's.
func (t *Typer) checkShift(n *ast.Shift, expected types.ValueType) (types.ValueType, types.Effects) {
	scope := t.Engine.EnterScope()
	paramTy := t.Engine.FreshValueVar(scope)

	mark := t.Ctx.Backup()
	t.Ctx.BindValue(n.Param, paramTy)
	bodyTy, bodyEff := t.checkStmt(n.Body, expected)
	t.Ctx.Restore(mark)

	for _, err := range t.Engine.LeaveScope(scope, bodyTy) {
		t.reportEscape(err)
	}

	return bodyTy, bodyEff
}
