package cps_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/cps"
	"github.com/efflang/ec/pkg/mlast"
)

func intLit(v int64) mlast.Expr { return mlast.RawValue{Text: mlast.FormatInt(v)} }

func TestStaticApplyRunsGoFunction(t *testing.T) {
	var seen mlast.Expr
	k := cps.Static{F: func(e mlast.Expr) mlast.Expr {
		seen = e
		return mlast.Tuple{Elems: []mlast.Expr{e}}
	}}
	out := k.Apply(intLit(1))
	assert.Equal(t, intLit(1), seen)
	assert.Equal(t, mlast.Tuple{Elems: []mlast.Expr{intLit(1)}}, out)
}

func TestDynamicApplyEmitsCall(t *testing.T) {
	k := cps.Dynamic{Expr: mlast.Variable{Name: "kont"}}
	out := k.Apply(intLit(1))
	assert.Equal(t, mlast.Call{Fn: mlast.Variable{Name: "kont"}, Args: []mlast.Expr{intLit(1)}}, out)
}

func TestStaticReifyWrapsInLambda(t *testing.T) {
	k := cps.Static{F: func(e mlast.Expr) mlast.Expr { return e }}
	reified := k.Reify()
	lam, ok := reified.(mlast.Lambda)
	require.True(t, ok)
	require.Len(t, lam.Params, 1)
	named, ok := lam.Params[0].(mlast.Named)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: named.Name}, lam.Body)
}

func TestDynamicReifyIsIdentity(t *testing.T) {
	e := mlast.Variable{Name: "kont"}
	k := cps.Dynamic{Expr: e}
	assert.Equal(t, e, k.Reify())
}

func TestPureAppliesContinuationToExpression(t *testing.T) {
	prog := cps.Pure(intLit(1))
	out := prog(cps.Dynamic{Expr: mlast.Variable{Name: "k"}})
	assert.Equal(t, mlast.Call{Fn: mlast.Variable{Name: "k"}, Args: []mlast.Expr{intLit(1)}}, out)
}

func TestRunUsesIdentityContinuation(t *testing.T) {
	prog := cps.Pure(intLit(1))
	assert.Equal(t, intLit(1), prog.Run())
}

func TestFlatMapSequencesIntoNextComputation(t *testing.T) {
	prog := cps.Pure(intLit(1)).FlatMap(func(a mlast.Expr) cps.CPS {
		return cps.Pure(mlast.Call{Fn: mlast.Variable{Name: "succ"}, Args: []mlast.Expr{a}})
	})
	assert.Equal(t, mlast.Call{Fn: mlast.Variable{Name: "succ"}, Args: []mlast.Expr{intLit(1)}}, prog.Run())
}

func TestJoinLeavesAnAlreadyDynamicContinuationAlone(t *testing.T) {
	var capturedK cps.Continuation
	prog := cps.Join(func(k cps.Continuation) mlast.Expr {
		capturedK = k
		return k.Apply(intLit(0))
	})
	named := cps.Dynamic{Expr: mlast.Variable{Name: "k0"}}
	out := prog(named)
	assert.Equal(t, named, capturedK)
	assert.Equal(t, mlast.Call{Fn: mlast.Variable{Name: "k0"}, Args: []mlast.Expr{intLit(0)}}, out)
}

func TestJoinNamesAStaticContinuationBeforeBranching(t *testing.T) {
	var branchACall, branchBCall mlast.Expr
	prog := cps.Join(func(k cps.Continuation) mlast.Expr {
		branchACall = k.Apply(intLit(1))
		branchBCall = k.Apply(intLit(2))
		return mlast.If{Cond: mlast.RawValue{Text: "trueVal"}, Then: branchACall, Else: branchBCall}
	})
	ret := mlast.Variable{Name: "ret"}
	out := prog(cps.Static{F: func(e mlast.Expr) mlast.Expr {
		return mlast.Call{Fn: ret, Args: []mlast.Expr{e}}
	}})

	let, ok := out.(mlast.Let)
	require.True(t, ok)
	require.Len(t, let.Bindings, 1)
	bind, ok := let.Bindings[0].(mlast.ValBind)
	require.True(t, ok)

	lam, ok := bind.Expr.(mlast.Lambda)
	require.True(t, ok)
	require.Len(t, lam.Params, 1)
	named, ok := lam.Params[0].(mlast.Named)
	require.True(t, ok)
	assert.Equal(t, mlast.Call{Fn: ret, Args: []mlast.Expr{mlast.Variable{Name: named.Name}}}, lam.Body)

	ifExpr, ok := let.Body.(mlast.If)
	require.True(t, ok)
	assert.Equal(t, mlast.Call{Fn: mlast.Variable{Name: bind.Name}, Args: []mlast.Expr{intLit(1)}}, ifExpr.Then)
	assert.Equal(t, mlast.Call{Fn: mlast.Variable{Name: bind.Name}, Args: []mlast.Expr{intLit(2)}}, ifExpr.Else)
}

func TestResetRunsToCompletionAndRepresentsAsPure(t *testing.T) {
	prog := cps.Reset(cps.Pure(intLit(1)))
	out := prog(cps.Dynamic{Expr: mlast.Variable{Name: "k"}})
	assert.Equal(t, mlast.Call{Fn: mlast.Variable{Name: "k"}, Args: []mlast.Expr{intLit(1)}}, out)
}

func TestLiftFoldsStepsOutermostFirst(t *testing.T) {
	var order []string
	step := func(tag string) cps.LiftStep {
		return func(m cps.CPS) cps.CPS {
			order = append(order, tag)
			return m
		}
	}
	m := cps.Pure(intLit(1))
	out := cps.Lift([]cps.LiftStep{step("outer"), step("inner")}, m)
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, intLit(1), out.Run())
}
