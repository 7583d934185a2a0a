package typer

import (
	"log/slog"

	"github.com/efflang/ec/pkg/ast"
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// checkCall dispatches a Call to overload resolution (IdTarget) or checks
// an already-known boxed function directly (ExprTarget), per spec §4.3
// "Calls".
func (t *Typer) checkCall(n *ast.Call, expected types.ValueType) (types.ValueType, types.Effects) {
	switch target := n.Target.(type) {
	case ast.IdTarget:
		return t.resolveOverload(n, target, expected)
	case ast.ExprTarget:
		fnTy, fnEff := t.checkExpr(target.Expr, nil)
		boxed, ok := fnTy.(types.Boxed)
		if !ok {
			t.report(&diag.TypeMismatch{
				Left:     fnTy,
				Right:    strStringer("a boxed function"),
				Cause:    nil,
				Location: t.currentLoc(),
			})
			return fallback(expected), fnEff
		}
		resTy, resEff, _ := t.checkCallAgainst(boxed.Block, n, expected)
		return resTy, fnEff.Union(resEff)
	default:
		diag.Raise("unhandled ast.CallTarget variant %T", n.Target)
		return nil, types.Effects{}
	}
}

// resolveOverload implements spec §4.3.1's scope-layered resolution: each
// candidate in the innermost layer is tried in isolation (its own bag fork,
// its own engine/context snapshot); exactly one success commits that
// candidate and rewrites the call target to name it, several successes is
// Ambiguous, and zero successes falls through to the next outer layer.
func (t *Typer) resolveOverload(n *ast.Call, target ast.IdTarget, expected types.ValueType) (types.ValueType, types.Effects) {
	type success struct {
		sym symbols.Symbol
		fn  *types.Function
	}

	var totalTried int
	var innermostFailures *diag.Bag

	for layerIdx, layer := range target.Layers {
		var winners []success
		layerFailures := diag.NewBag()

		for _, sym := range layer {
			fn, ok := t.Ctx.LookupFunctionType(sym)
			if !ok {
				continue
			}
			totalTried++

			engSnap := t.Engine.Snapshot()
			ctxMark := t.Ctx.Backup()
			trialBag := t.Bag.Fork()

			saved := t.Bag
			t.Bag = trialBag
			t.checkCallAgainst(fn, n, expected)
			t.Bag = saved

			// Any diagnostic at all disqualifies this candidate, not just a
			// fatal one: a buffered TypeMismatch is exactly what a failed
			// argument unification looks like, and HasErrors alone would
			// wrongly call that candidate a winner (per spec §7, Buffered
			// severity only means "checking continues", not "this trial
			// succeeded").
			if !trialBag.Empty() {
				slog.Debug("overload candidate rejected", "symbol", sym.Name, "layer", layerIdx)
				layerFailures.Merge(trialBag)
				t.Engine.Restore(engSnap)
				t.Ctx.Restore(ctxMark)
				continue
			}

			slog.Debug("overload candidate accepted", "symbol", sym.Name, "layer", layerIdx)
			t.Engine.Restore(engSnap)
			t.Ctx.Restore(ctxMark)
			winners = append(winners, success{sym: sym, fn: fn})
		}

		if layerIdx == 0 {
			innermostFailures = layerFailures
		}

		switch len(winners) {
		case 0:
			continue
		case 1:
			sym := winners[0].sym
			resTy, resEff, targs := t.checkCallAgainst(winners[0].fn, n, expected)
			resolved := sym
			target.Resolved = &resolved
			n.Target = target
			n.TArgs = targs
			return resTy, resEff
		default:
			var candidates []symbols.Symbol
			for _, w := range winners {
				candidates = append(candidates, w.sym)
			}
			t.report(&diag.Ambiguous{Candidates: candidates, Location: t.currentLoc()})
			resTy, resEff, targs := t.checkCallAgainst(winners[0].fn, n, expected)
			n.TArgs = targs
			return resTy, resEff
		}
	}

	if totalTried == 0 {
		if len(target.Layers) > 0 && len(target.Layers[0]) > 0 {
			t.report(&diag.ResolutionError{Name: target.Layers[0][0].Name, Location: t.currentLoc()})
		} else {
			diag.Raise("overload call has no candidates in any layer")
		}
		return fallback(expected), types.Effects{}
	}

	if innermostFailures != nil {
		t.Bag.Merge(innermostFailures)
	}
	return fallback(expected), types.Effects{}
}

// checkCallAgainst instantiates fn and checks n's arguments against its
// (partly solved) parameter types, accumulating effects. It mints fn's type
// parameters into the engine's current scope rather than a dedicated one
// (see Engine.CurrentScope) since a call's inferred type arguments are meant
// to flow into its result, not be reported as escaping.
func (t *Typer) checkCallAgainst(fn *types.Function, n *ast.Call, expected types.ValueType) (types.ValueType, types.Effects, []types.ValueType) {
	scope := t.Engine.CurrentScope()
	targs, _, concrete := t.Engine.Instantiate(scope, fn, n.TArgs)

	eff := types.Effects{}
	vi, bi := 0, 0
	for _, a := range n.Args {
		switch arg := a.(type) {
		case ast.ValueArg:
			var want types.ValueType
			if vi < len(concrete.VParams) {
				want = concrete.VParams[vi]
			}
			_, argEff := t.checkExpr(arg.Expr, want)
			eff = eff.Union(argEff)
			vi++
		case ast.BlockArg:
			var want *types.Function
			if bi < len(concrete.BParams) {
				want = concrete.BParams[bi]
			}
			blockFn, _ := t.checkBlockLit(arg.Block, want)
			eff = eff.Union(blockFn.Effects)
			bi++
		}
	}

	if vi != len(concrete.VParams) || bi != len(concrete.BParams) {
		t.report(&diag.Arity{
			Expected: len(concrete.VParams) + len(concrete.BParams),
			Actual:   vi + bi,
			Location: t.currentLoc(),
		})
	}

	eff = eff.Union(concrete.Effects)

	if expected != nil {
		if err := t.Engine.RequireSubtype(concrete.Result, expected); t.reportMismatch(concrete.Result, expected, err) {
			return expected, eff, targs
		}
	}

	return concrete.Result, eff, targs
}
