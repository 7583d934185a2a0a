package unify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
	"github.com/efflang/ec/pkg/unify"
)

func TestRequireEqualBindsUnificationVar(t *testing.T) {
	e := unify.New()
	scope := e.EnterScope()
	v := e.FreshValueVar(scope)

	require.NoError(t, e.RequireEqual(v, types.IntType))
	assert.Equal(t, types.IntType.String(), e.Substitute(v).String())
}

func TestRequireEqualConstructorArgsAreInvariant(t *testing.T) {
	e := unify.New()
	listSym := symbols.New("List", symbols.TypeSymbol)
	scope := e.EnterScope()
	v := e.FreshValueVar(scope)

	left := types.Constructor{Sym: listSym, Args: []types.ValueType{v}}
	right := types.Constructor{Sym: listSym, Args: []types.ValueType{types.IntType}}

	require.NoError(t, e.RequireEqual(left, right))
	assert.Equal(t, types.IntType.String(), e.Substitute(v).String())
}

func TestRequireEqualConstructorHeadMismatch(t *testing.T) {
	e := unify.New()
	listSym := symbols.New("List", symbols.TypeSymbol)
	optSym := symbols.New("Option", symbols.TypeSymbol)

	left := types.Constructor{Sym: listSym, Args: []types.ValueType{types.IntType}}
	right := types.Constructor{Sym: optSym, Args: []types.ValueType{types.IntType}}

	assert.Error(t, e.RequireEqual(left, right))
}

func TestRequireSubtypeBottomIsSubtypeOfEverything(t *testing.T) {
	e := unify.New()
	assert.NoError(t, e.RequireSubtype(types.Bottom{}, types.IntType))
}

func TestOccursCheckFails(t *testing.T) {
	e := unify.New()
	listSym := symbols.New("List", symbols.TypeSymbol)
	scope := e.EnterScope()
	v := e.FreshValueVar(scope)

	self := types.Constructor{Sym: listSym, Args: []types.ValueType{v}}
	assert.Error(t, e.RequireEqual(v, self))
}

func TestSnapshotRestoreUndoesBindings(t *testing.T) {
	e := unify.New()
	scope := e.EnterScope()
	v := e.FreshValueVar(scope)

	snap := e.Snapshot()
	require.NoError(t, e.RequireEqual(v, types.IntType))
	assert.Equal(t, types.IntType.String(), e.Substitute(v).String())

	e.Restore(snap)
	restored := e.Substitute(v)
	uv, isVar := restored.(types.UnificationVar)
	require.True(t, isVar, "expected %s to be unresolved again after Restore", restored)
	assert.Equal(t, v.ID, uv.ID)
}

func TestLeaveScopeReportsEscapingVar(t *testing.T) {
	e := unify.New()
	scope := e.EnterScope()
	v := e.FreshValueVar(scope)

	errs := e.LeaveScope(scope, v)
	require.Len(t, errs, 1)
}

func TestLeaveScopeAllowsSolvedVar(t *testing.T) {
	e := unify.New()
	scope := e.EnterScope()
	v := e.FreshValueVar(scope)
	require.NoError(t, e.RequireEqual(v, types.IntType))

	errs := e.LeaveScope(scope, v)
	assert.Empty(t, errs)
}

func TestRequireEqualAcrossScopesBindsDeeperIntoShallower(t *testing.T) {
	e := unify.New()
	outerScope := e.EnterScope()
	outer := e.FreshValueVar(outerScope)

	innerScope := e.EnterScope()
	inner := e.FreshValueVar(innerScope)

	require.NoError(t, e.RequireEqual(outer, inner))

	// inner, not outer, must have been bound: leaving the inner scope with
	// outer still live must not report outer as escaping.
	resolvedOuter := e.Substitute(outer)
	_, outerStillVar := resolvedOuter.(types.UnificationVar)
	assert.True(t, outerStillVar, "outer-scope var should remain unsolved, got %s", resolvedOuter)

	errs := e.LeaveScope(innerScope, outer)
	assert.Empty(t, errs, "outer-scope var live past LeaveScope must not be reported as escaping")
}

func TestInstantiateReplacesTypeParamsWithFreshVars(t *testing.T) {
	e := unify.New()
	tparam := symbols.New("a", symbols.TypeSymbol)
	fn := &types.Function{
		TParams: []symbols.Symbol{tparam},
		VParams: []types.ValueType{types.Var{Sym: tparam}},
		Result:  types.Var{Sym: tparam},
	}

	scope := e.EnterScope()
	targs, _, concrete := e.Instantiate(scope, fn, nil)

	require.Len(t, targs, 1)
	assert.IsType(t, types.UnificationVar{}, targs[0])
	assert.Equal(t, targs[0].String(), concrete.Result.String())
	assert.Equal(t, targs[0].String(), concrete.VParams[0].String())
}

func TestInstantiateHonorsSuppliedTargs(t *testing.T) {
	e := unify.New()
	tparam := symbols.New("a", symbols.TypeSymbol)
	fn := &types.Function{
		TParams: []symbols.Symbol{tparam},
		Result:  types.Var{Sym: tparam},
	}

	scope := e.EnterScope()
	targs, _, concrete := e.Instantiate(scope, fn, []types.ValueType{types.StringType})

	require.Len(t, targs, 1)
	assert.Equal(t, types.StringType.String(), targs[0].String())
	assert.Equal(t, types.StringType.String(), concrete.Result.String())
}

func TestRequireSubregionGrowsUnresolvedUpperBound(t *testing.T) {
	e := unify.New()
	f := symbols.New("f", symbols.BlockSymbol)
	scope := e.EnterScope()
	capVar := e.FreshCaptureVar(scope)

	sub := types.NewCaptureSet(types.CaptureOf{Block: f})
	sup := types.NewCaptureSet(capVar)

	require.NoError(t, e.RequireSubregion(sub, sup))
}

func TestRequireSubregionFailsWhenNotASubset(t *testing.T) {
	e := unify.New()
	f := symbols.New("f", symbols.BlockSymbol)
	g := symbols.New("g", symbols.BlockSymbol)

	sub := types.NewCaptureSet(types.CaptureOf{Block: f})
	sup := types.NewCaptureSet(types.CaptureOf{Block: g})

	assert.Error(t, e.RequireSubregion(sub, sup))
}

func TestJoinOfIdenticalTypesReturnsThatType(t *testing.T) {
	e := unify.New()
	scope := e.EnterScope()
	joined, err := e.Join(scope, []types.ValueType{types.IntType, types.IntType})
	require.NoError(t, err)
	assert.Equal(t, types.IntType.String(), joined.String())
}

func TestJoinAbsorbsBottom(t *testing.T) {
	e := unify.New()
	scope := e.EnterScope()
	joined, err := e.Join(scope, []types.ValueType{types.Bottom{}, types.IntType})
	require.NoError(t, err)
	assert.Equal(t, types.IntType.String(), joined.String())
}

func TestJoinOfIncompatibleConstructorsFails(t *testing.T) {
	e := unify.New()
	scope := e.EnterScope()
	listSym := symbols.New("List", symbols.TypeSymbol)
	other := types.Constructor{Sym: listSym, Args: []types.ValueType{types.IntType}}

	_, err := e.Join(scope, []types.ValueType{types.IntType, other})
	// Int and List[Int] are both constructors, invariant and incompatible,
	// so RequireSubtype degrades to RequireEqual and the join fails.
	assert.Error(t, err)
}
