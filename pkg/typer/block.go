package typer

import (
	"github.com/efflang/ec/pkg/ast"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// checkBlockLit checks a block literal's body and assembles its Function
// type. When expectedFn is non-nil, its parameter/result/effect shape is
// propagated in (spec §4.3 "checkBlockArgument"); otherwise every part is
// synthesized.
func (t *Typer) checkBlockLit(b *ast.BlockLit, expectedFn *types.Function) (*types.Function, types.CaptureSet) {
	scope := t.Engine.EnterScope()
	mark := t.Ctx.Backup()

	paramTypes := make([]types.ValueType, len(b.Params))
	for i := range b.Params {
		if expectedFn != nil && i < len(expectedFn.VParams) {
			paramTypes[i] = expectedFn.VParams[i]
		} else {
			paramTypes[i] = t.Engine.FreshValueVar(scope)
		}
	}
	for i, sym := range b.Params {
		t.Ctx.BindValue(sym, paramTypes[i])
	}

	pushedEffects := false
	if expectedFn != nil && !expectedFn.Effects.Empty() {
		t.Ctx.PushEffects(expectedFn.Effects)
		pushedEffects = true
	}

	var expectedResult types.ValueType
	if expectedFn != nil {
		expectedResult = expectedFn.Result
	}
	resultTy, bodyEff := t.checkStmt(b.Body, expectedResult)

	if pushedEffects {
		t.Ctx.PopEffects()
	}

	var bparams []*types.Function
	if expectedFn != nil {
		bparams = expectedFn.BParams
	}

	fn := &types.Function{
		TParams: b.TParams,
		VParams: paramTypes,
		BParams: bparams,
		Result:  resultTy,
		Effects: bodyEff,
	}

	live := append([]types.ValueType{fn.Result}, fn.VParams...)
	for _, err := range t.Engine.LeaveScope(scope, live...) {
		t.reportEscape(err)
	}

	t.Ctx.Restore(mark)

	return t.Engine.SubstituteFunction(fn), t.inferCaptures(b)
}

// inferCaptures approximates the capture set a block literal closes over:
// every block symbol it references that it does not itself declare. This
// module has no outer-scope liveness pass (that lives upstream of the
// typer, in name resolution); it only has enough information, from the
// symbols a block's body mentions, to name what it closes over.
func (t *Typer) inferCaptures(b *ast.BlockLit) types.CaptureSet {
	declared := make(map[symbols.Symbol]struct{})
	for _, s := range b.DeclaredSymbols() {
		declared[s] = struct{}{}
	}

	var caps []types.Capture
	for _, sym := range b.ReferencedSymbols() {
		if sym.Kind != symbols.BlockSymbol {
			continue
		}
		if _, ok := declared[sym]; ok {
			continue
		}
		caps = append(caps, types.CaptureOf{Block: sym})
	}
	return types.NewCaptureSet(caps...)
}
