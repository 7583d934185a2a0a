package mlback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

func TestCheckExternsAcceptsAnOrdinaryMonomorphicValue(t *testing.T) {
	ext := ir.Extern{ID: symbols.New("print", symbols.BlockSymbol), Target: "val externPrint = print"}
	assert.Nil(t, checkExterns([]ir.Extern{ext}))
}

func TestCheckExternsRejectsAPolymorphicExtern(t *testing.T) {
	tv := symbols.New("a", symbols.TypeSymbol)
	ext := ir.Extern{ID: symbols.New("id", symbols.BlockSymbol), TParams: []symbols.Symbol{tv}}
	err := checkExterns([]ir.Extern{ext})
	require.NotNil(t, err)
	var poly *diag.PolymorphicExtern
	require.ErrorAs(t, err, &poly)
}

func TestCheckExternsRejectsAHigherOrderExtern(t *testing.T) {
	ext := ir.Extern{
		ID:    symbols.New("withCallback", symbols.BlockSymbol),
		BType: &types.Function{BParams: []*types.Function{{}}},
	}
	err := checkExterns([]ir.Extern{ext})
	require.NotNil(t, err)
	var ho *diag.HigherOrderExtern
	require.ErrorAs(t, err, &ho)
}

func TestMainCallWithNoMainDefIsANoOp(t *testing.T) {
	tr := newTransformer()
	assert.Equal(t, mlast.RawValue{Text: "unitVal"}, tr.mainCall(nil))
}

func TestMainCallAppliesTwoIdentityContinuations(t *testing.T) {
	tr := newTransformer()
	mainSym := symbols.New("main", symbols.BlockSymbol)
	out := tr.mainCall(&mainSym)
	call, ok := out.(mlast.Call)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: tr.names.of(mainSym)}, call.Fn)
	require.Len(t, call.Args, 2)
	assert.Equal(t, call.Args[0], call.Args[1])
	lam, ok := call.Args[0].(mlast.Lambda)
	require.True(t, ok)
	require.Len(t, lam.Params, 1)
}

func TestTransformLowersAModuleWithAMainDef(t *testing.T) {
	mainID := symbols.New("main", symbols.BlockSymbol)
	k1 := symbols.New("k1", symbols.ValueSymbol)
	k2 := symbols.New("k2", symbols.ValueSymbol)

	mod := &ir.Module{
		Definitions: []ir.Definition{
			ir.Def{ID: mainID, Block: ir.BlockLit{
				Params: []ir.Param{{Sym: k1}, {Sym: k2}},
				Body:   ir.Return{Value: ir.Literal{Kind: ir.UnitLiteral}},
			}},
		},
	}

	top, err := Transform(mod)
	require.Nil(t, err)
	require.NotNil(t, top)
	require.Len(t, top.Bindings, 1)
	_, isFun := top.Bindings[0].(mlast.FunBind)
	assert.True(t, isFun)

	call, ok := top.MainCall.(mlast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
}

func TestTransformReturnsDiagnosticOnMutualRecursionInsteadOfPanicking(t *testing.T) {
	even := symbols.New("even", symbols.BlockSymbol)
	odd := symbols.New("odd", symbols.BlockSymbol)

	mod := &ir.Module{
		Definitions: []ir.Definition{
			ir.Def{ID: even, Block: ir.BlockLit{Body: ir.App{Block: ir.BlockVar{Sym: odd}}}},
			ir.Def{ID: odd, Block: ir.BlockLit{Body: ir.App{Block: ir.BlockVar{Sym: even}}}},
		},
	}

	var top *mlast.Toplevel
	var err diag.Diagnostic
	assert.NotPanics(t, func() { top, err = Transform(mod) })
	assert.Nil(t, top)
	require.NotNil(t, err)
	var mutual *diag.MutualRecursionUnsupported
	require.ErrorAs(t, err, &mutual)
}
