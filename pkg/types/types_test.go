package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

func TestEffectsUnionDeduplicates(t *testing.T) {
	fail := symbols.New("Fail", symbols.TypeSymbol)
	state := symbols.New("State", symbols.TypeSymbol)

	a := types.NewEffects(types.EffectInterface{Sym: fail})
	b := types.NewEffects(types.EffectInterface{Sym: fail}, types.EffectInterface{Sym: state})

	union := a.Union(b)
	assert.Len(t, union.Elems(), 2)
}

func TestEffectsMinusRemovesHandled(t *testing.T) {
	fail := symbols.New("Fail", symbols.TypeSymbol)
	state := symbols.New("State", symbols.TypeSymbol)

	body := types.NewEffects(types.EffectInterface{Sym: fail}, types.EffectInterface{Sym: state})
	handled := types.NewEffects(types.EffectInterface{Sym: fail})

	out := body.Minus(handled)
	require.Len(t, out.Elems(), 1)
	assert.Equal(t, state.Name, out.Elems()[0].(types.EffectInterface).Sym.Name)
}

func TestEffectsEqualPanicsOnNonConcrete(t *testing.T) {
	alias := types.EffectAlias{Name: "Ambient"}
	row := types.NewEffects(alias)
	assert.Panics(t, func() {
		row.Equal(types.NewEffects())
	})
}

func TestEffectsEqualIsSetEquality(t *testing.T) {
	fail := symbols.New("Fail", symbols.TypeSymbol)
	state := symbols.New("State", symbols.TypeSymbol)

	a := types.NewEffects(types.EffectInterface{Sym: fail}, types.EffectInterface{Sym: state})
	b := types.NewEffects(types.EffectInterface{Sym: state}, types.EffectInterface{Sym: fail})

	assert.True(t, a.Equal(b))
}

func TestDealiasExpandsTypeAliasParams(t *testing.T) {
	tparam := symbols.New("a", symbols.TypeSymbol)
	alias := types.TypeAlias{
		Name:    "Pair",
		TParams: []symbols.Symbol{tparam},
		RHS:     types.Var{Sym: tparam},
		Args:    []types.ValueType{types.IntType},
	}

	dealiased := types.Dealias(alias)
	assert.Equal(t, types.IntType.String(), dealiased.String())
}

func TestDealiasExpandsEffectAlias(t *testing.T) {
	fail := symbols.New("Fail", symbols.TypeSymbol)
	alias := types.EffectAlias{
		Name: "Ambient",
		Effs: types.NewEffects(types.EffectInterface{Sym: fail}),
	}

	out := types.DealiasEffect(alias)
	require.Len(t, out.Elems(), 1)
	assert.Equal(t, fail.Name, out.Elems()[0].(types.EffectInterface).Sym.Name)
}

func TestCaptureSetUnionDeduplicates(t *testing.T) {
	f := symbols.New("f", symbols.BlockSymbol)
	a := types.NewCaptureSet(types.CaptureOf{Block: f})
	b := types.NewCaptureSet(types.CaptureOf{Block: f}, types.CaptureParam{Name: "c"})

	union := a.Union(b)
	assert.Len(t, union.Elems(), 2)
}

func TestBoxedFreeVarsExcludesCaptureIDs(t *testing.T) {
	fn := &types.Function{Result: types.UnificationVar{ID: 0, Scope: 1}}
	boxed := types.Boxed{
		Block:    fn,
		Captures: types.NewCaptureSet(types.CaptureUnificationVar{ID: 0, Scope: 1}),
	}

	// Capture unification variable 0 must not appear as if it were value
	// unification variable 0: the two id spaces are independent.
	free := boxed.FreeVars()
	assert.True(t, free.Contains(0))
	assert.Len(t, free, 1)

	captFree := types.CaptureFreeVars(boxed)
	assert.True(t, captFree.Contains(0))
}
