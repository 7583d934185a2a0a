package typer

import (
	"github.com/efflang/ec/pkg/ast"
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// checkTryHandle elaborates every handler against a shared result type ret
// (spec §4.3 "Handlers"): expected, if the caller supplied one, or else
// whatever the guarded body synthesizes. effectsOut drops each handler's
// declared effect from the body's effects and adds back whatever its
// operation bodies themselves still perform.
func (t *Typer) checkTryHandle(n *ast.TryHandle, expected types.ValueType) (types.ValueType, types.Effects) {
	bodyTy, bodyEff := t.checkStmt(n.Body, expected)
	ret := bodyTy
	if expected != nil {
		ret = expected
	}

	handled := types.Effects{}
	handlerEff := types.Effects{}

	for _, h := range n.Handlers {
		iface := types.EffectInterface{Sym: h.EffectName, Args: h.TArgs}
		if !bodyEff.Contains(iface) {
			t.report(&diag.UnusedHandler{Interface: h.EffectName, Location: t.currentLoc()})
		}
		handled = handled.Union(types.NewEffects(iface))
		handlerEff = handlerEff.Union(t.checkHandler(h, ret))
	}

	return ret, bodyEff.Minus(handled).Union(handlerEff)
}

// checkHandler requires h's interface to declare every operation h.Ops
// implements exactly once, elaborates each op clause, and returns the union
// of whatever effects the op bodies themselves perform.
func (t *Typer) checkHandler(h ast.Handler, ret types.ValueType) types.Effects {
	ifaceDef, ok := t.Interfaces[h.EffectName]
	if !ok {
		t.report(&diag.ResolutionError{Name: h.EffectName.Name, Location: t.currentLoc()})
		return types.Effects{}
	}

	counts := map[symbols.Symbol]int{}
	for _, clause := range h.Ops {
		counts[clause.Op]++
	}
	for _, declared := range ifaceDef.Ops {
		if counts[declared.Op] == 0 {
			t.report(&diag.MissingOperation{Op: declared.Op, Interface: h.EffectName, Location: t.currentLoc()})
		}
	}

	ifaceTParams := map[string]types.ValueType{}
	for i, p := range ifaceDef.TParams {
		if i < len(h.TArgs) {
			ifaceTParams[p.Name] = h.TArgs[i]
		}
	}

	seen := map[symbols.Symbol]bool{}
	effOut := types.Effects{}

	for _, clause := range h.Ops {
		declared := findOpSig(ifaceDef, clause.Op)
		if declared == nil {
			t.report(&diag.ResolutionError{Name: clause.Op.Name, Location: t.currentLoc()})
			continue
		}
		if seen[clause.Op] {
			t.report(&diag.DuplicateOperation{Op: clause.Op, Location: t.currentLoc()})
		}
		seen[clause.Op] = true

		effOut = effOut.Union(t.checkOpClause(clause, declared, ifaceTParams, ret))
	}

	return effOut
}

// checkOpClause instantiates declared's own (non-interface) type parameters
// as existentials in a dedicated scope, binds the clause's value parameters
// and its resume continuation, checks Body against ret, and reports any
// existential still reachable from ret when that scope closes.
func (t *Typer) checkOpClause(clause ast.OpClause, declared *ast.OpSig, ifaceTParams map[string]types.ValueType, ret types.ValueType) types.Effects {
	instantiated := substituteTypeParamsInFunction(declared.Type, ifaceTParams)

	scope := t.Engine.EnterScope()
	_, _, concrete := t.Engine.Instantiate(scope, instantiated, nil)

	if len(clause.Params) != len(concrete.VParams) {
		t.report(&diag.Arity{Expected: len(concrete.VParams), Actual: len(clause.Params), Location: t.currentLoc()})
	}
	n := len(clause.Params)
	if len(concrete.VParams) < n {
		n = len(concrete.VParams)
	}

	mark := t.Ctx.Backup()
	for i := 0; i < n; i++ {
		t.Ctx.BindValue(clause.Params[i], concrete.VParams[i])
	}
	t.Ctx.BindValue(clause.Resume, t.resumeType(declared.Bidirectional, concrete.Result, ret))

	bodyTy, bodyEff := t.checkStmt(clause.Body, ret)
	t.Ctx.Restore(mark)

	// bodyEff's own existentials must be reported too: a clause whose
	// effect row still mentions one of the just-introduced existentials
	// leaks it just as surely as returning it in bodyTy would.
	live := []types.ValueType{ret, bodyTy}
	for id := range t.Engine.SubstituteEffects(bodyEff).FreeVars() {
		live = append(live, types.UnificationVar{ID: id})
	}

	for _, err := range t.Engine.LeaveScope(scope, live...) {
		t.reportEscape(err)
	}

	return bodyEff
}

// resumeType gives the captured continuation its type: a bidirectional
// operation's resume produces a further boxed function (a second shot at
// resuming) rather than resuming immediately, per spec §4.3.
func (t *Typer) resumeType(bidirectional bool, opResult, ret types.ValueType) types.ValueType {
	if bidirectional {
		return types.Boxed{Block: &types.Function{
			Result: types.Boxed{Block: &types.Function{Result: ret}},
		}}
	}
	return types.Boxed{Block: &types.Function{
		VParams: []types.ValueType{opResult},
		Result:  ret,
	}}
}

func findOpSig(ifaceDef *ast.EffectDef, op symbols.Symbol) *ast.OpSig {
	for i := range ifaceDef.Ops {
		if ifaceDef.Ops[i].Op == op {
			return &ifaceDef.Ops[i]
		}
	}
	return nil
}

// substituteTypeParamsInFunction replaces fn's rigid Var occurrences named
// in byName, leaving fn's own TParams (the operation's existentials) alone
// for Instantiate to mint fresh variables for. It mirrors pkg/unify's
// unexported substituteRigid, duplicated here because handler elaboration
// needs to substitute the enclosing interface's type parameters separately
// from the operation's own, a two-stage substitution Instantiate's single
// targs list cannot express.
func substituteTypeParamsInFunction(fn *types.Function, byName map[string]types.ValueType) *types.Function {
	vparams := make([]types.ValueType, len(fn.VParams))
	for i, v := range fn.VParams {
		vparams[i] = substituteTypeParams(v, byName)
	}
	bparams := make([]*types.Function, len(fn.BParams))
	for i, b := range fn.BParams {
		bparams[i] = substituteTypeParamsInFunction(b, byName)
	}
	return &types.Function{
		TParams: fn.TParams,
		CParams: fn.CParams,
		VParams: vparams,
		BParams: bparams,
		Result:  substituteTypeParams(fn.Result, byName),
		Effects: fn.Effects,
	}
}

func substituteTypeParams(t types.ValueType, byName map[string]types.ValueType) types.ValueType {
	switch v := t.(type) {
	case types.Var:
		if repl, ok := byName[v.Sym.Name]; ok {
			return repl
		}
		return v
	case types.Constructor:
		args := make([]types.ValueType, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteTypeParams(a, byName)
		}
		return types.Constructor{Sym: v.Sym, Args: args}
	case types.Boxed:
		return types.Boxed{Block: substituteTypeParamsInFunction(v.Block, byName), Captures: v.Captures}
	default:
		return t
	}
}
