package typer

import (
	"github.com/pkg/errors"

	"github.com/efflang/ec/pkg/ast"
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// checkExpr is the bidirectional entry point for expressions (spec §4.3).
// expected == nil means synthesis; otherwise e is checked against it.
func (t *Typer) checkExpr(e ast.Expr, expected types.ValueType) (types.ValueType, types.Effects) {
	ty, eff := t.synthOrCheckExpr(e, expected)
	t.setChecked(e, ty, eff)
	return t.Engine.Substitute(ty), t.Engine.SubstituteEffects(eff)
}

func (t *Typer) synthOrCheckExpr(e ast.Expr, expected types.ValueType) (types.ValueType, types.Effects) {
	switch n := e.(type) {
	case *ast.Var:
		return t.checkVar(n, expected)
	case *ast.Literal:
		return t.checkLiteral(n, expected)
	case *ast.If:
		return t.checkIf(n, expected)
	case *ast.Match:
		return t.checkMatch(n, expected)
	case *ast.Call:
		return t.checkCall(n, expected)
	case *ast.Box:
		return t.checkBox(n, expected)
	case *ast.Assign:
		return t.checkAssign(n, expected)
	default:
		diag.Raise("unhandled ast.Expr variant %T", e)
		return nil, types.Effects{}
	}
}

func (t *Typer) checkVar(n *ast.Var, expected types.ValueType) (types.ValueType, types.Effects) {
	if n.Sym.Kind == symbols.BlockSymbol {
		t.report(&diag.TypeMismatch{
			Left:     n.Sym,
			Right:    strStringer("a value"),
			Cause:    errors.New("blocks are not first-class values; use Box"),
			Location: t.currentLoc(),
		})
		return fallback(expected), types.Effects{}
	}
	ty, ok := t.lookupValue(n.Sym)
	if !ok {
		return fallback(expected), types.Effects{}
	}
	if expected != nil {
		if err := t.Engine.RequireSubtype(ty, expected); t.reportMismatch(ty, expected, err) {
			return expected, types.Effects{}
		}
	}
	return ty, types.Effects{}
}

func (t *Typer) checkLiteral(n *ast.Literal, expected types.ValueType) (types.ValueType, types.Effects) {
	ty := literalType(n)
	if expected != nil {
		if err := t.Engine.RequireSubtype(ty, expected); t.reportMismatch(ty, expected, err) {
			return expected, types.Effects{}
		}
	}
	return ty, types.Effects{}
}

func (t *Typer) checkIf(n *ast.If, expected types.ValueType) (types.ValueType, types.Effects) {
	t.pushFocus("condition of if", nil)
	_, condEff := t.checkExpr(n.Cond, types.BoolType)
	t.popFocus()

	t.pushFocus("then-branch of if", nil)
	thenTy, thenEff := t.checkStmt(n.Then, expected)
	t.popFocus()

	t.pushFocus("else-branch of if", nil)
	elseTy, elseEff := t.checkStmt(n.Else, expected)
	t.popFocus()

	eff := condEff.Union(thenEff).Union(elseEff)

	if expected != nil {
		return expected, eff
	}
	scope := t.Engine.EnterScope()
	joined, err := t.Engine.Join(scope, []types.ValueType{thenTy, elseTy})
	for _, escErr := range t.Engine.LeaveScope(scope, joined) {
		t.reportEscape(escErr)
	}
	if err != nil {
		t.reportMismatch(thenTy, elseTy, err)
		return thenTy, eff
	}
	return joined, eff
}

func (t *Typer) checkMatch(n *ast.Match, expected types.ValueType) (types.ValueType, types.Effects) {
	scrutinee, scrutEff := t.checkExpr(n.Scrutinee, nil)
	eff := scrutEff

	var branchTypes []types.ValueType
	for _, c := range n.Cases {
		bindings := t.checkPattern(scrutinee, c.Pattern)
		mark := t.Ctx.Backup()
		for sym, ty := range bindings {
			t.Ctx.BindValue(sym, ty)
		}
		ty, beff := t.checkStmt(c.Body, expected)
		t.Ctx.Restore(mark)
		eff = eff.Union(beff)
		branchTypes = append(branchTypes, ty)
	}
	if n.Default != nil {
		ty, deff := t.checkStmt(n.Default, expected)
		eff = eff.Union(deff)
		branchTypes = append(branchTypes, ty)
	}

	if expected != nil {
		return expected, eff
	}
	if len(branchTypes) == 0 {
		return types.Bottom{}, eff
	}
	scope := t.Engine.EnterScope()
	joined, err := t.Engine.Join(scope, branchTypes)
	for _, escErr := range t.Engine.LeaveScope(scope, joined) {
		t.reportEscape(escErr)
	}
	if err != nil {
		t.reportMismatch(branchTypes[0], branchTypes[len(branchTypes)-1], err)
		return branchTypes[0], eff
	}
	return joined, eff
}

func (t *Typer) checkBox(n *ast.Box, expected types.ValueType) (types.ValueType, types.Effects) {
	var expectedFn *types.Function
	if boxed, ok := expected.(types.Boxed); ok {
		expectedFn = boxed.Block
	}
	// Boxing a block is itself a pure value construction: the effects the
	// block performs belong to invoking it (an App/Call on the boxed
	// value), not to this Box expression.
	fn, captures := t.checkBlockLit(n.Block, expectedFn)
	return types.Boxed{Block: fn, Captures: captures}, types.Effects{}
}

func (t *Typer) checkAssign(n *ast.Assign, expected types.ValueType) (types.ValueType, types.Effects) {
	targetTy, ok := t.lookupValue(n.Target.Sym)
	if !ok {
		targetTy = fallback(expected)
	}
	_, valEff := t.checkExpr(n.Value, targetTy)
	if expected != nil {
		if err := t.Engine.RequireSubtype(types.UnitType, expected); t.reportMismatch(types.UnitType, expected, err) {
			return expected, valEff
		}
	}
	return types.UnitType, valEff
}

// fallback returns expected if it was supplied (so a failed synthesis
// still lets the caller keep checking against its own expectation), or
// Bottom otherwise — Bottom being a subtype of everything keeps later
// requireSubtype calls from cascading into unrelated diagnostics.
func fallback(expected types.ValueType) types.ValueType {
	if expected != nil {
		return expected
	}
	return types.Bottom{}
}
