package mlback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/cps"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
	"github.com/efflang/ec/pkg/symbols"
)

func TestLowerTermReturnAppliesContinuationToTheValue(t *testing.T) {
	tr := newTransformer()
	prog := tr.lowerTerm(intReturn(42))
	out := prog(cps.Dynamic{Expr: mlast.Variable{Name: "k"}})
	want := mlast.Call{Fn: mlast.Variable{Name: "k"}, Args: []mlast.Expr{mlast.RawValue{Text: mlast.FormatInt(42)}}}
	assert.Equal(t, want, out)
}

func TestLowerIfJoinsBothBranchesOnOneNamedContinuation(t *testing.T) {
	tr := newTransformer()
	cond := symbols.New("cond", symbols.ValueSymbol)
	term := ir.If{
		Cond: ir.ValueVar{Sym: cond},
		Then: intReturn(1),
		Else: intReturn(2),
	}

	out := tr.lowerTerm(term)(cps.Dynamic{Expr: mlast.Variable{Name: "k"}})

	// A Dynamic continuation at the top means Join's k.Apply calls straight
	// through without naming a fresh let-binding.
	ifExpr, ok := out.(mlast.If)
	require.True(t, ok)
	assert.Equal(t,
		mlast.Call{Fn: mlast.Variable{Name: "k"}, Args: []mlast.Expr{mlast.RawValue{Text: mlast.FormatInt(1)}}},
		ifExpr.Then)
	assert.Equal(t,
		mlast.Call{Fn: mlast.Variable{Name: "k"}, Args: []mlast.Expr{mlast.RawValue{Text: mlast.FormatInt(2)}}},
		ifExpr.Else)
}

func TestLowerValLetBindsTheBoundTermsResult(t *testing.T) {
	tr := newTransformer()
	x := symbols.New("x", symbols.ValueSymbol)
	term := ir.Val{
		ID:    x,
		Bound: intReturn(1),
		Body:  ir.Return{Value: ir.ValueVar{Sym: x}},
	}

	out := tr.lowerTerm(term)(cps.Dynamic{Expr: mlast.Variable{Name: "k"}})
	let, ok := out.(mlast.Let)
	require.True(t, ok)
	require.Len(t, let.Bindings, 1)
	bind, ok := let.Bindings[0].(mlast.ValBind)
	require.True(t, ok)
	assert.Equal(t, mlast.RawValue{Text: mlast.FormatInt(1)}, bind.Expr)
	assert.Equal(t, tr.names.of(x), bind.Name)
}

func TestLowerAppAppendsContinuationAsTrailingArg(t *testing.T) {
	tr := newTransformer()
	f := symbols.New("f", symbols.BlockSymbol)
	x := symbols.New("x", symbols.ValueSymbol)
	term := ir.App{Block: ir.BlockVar{Sym: f}, Args: []ir.Expr{ir.ValueVar{Sym: x}}}

	out := tr.lowerTerm(term)(cps.Dynamic{Expr: mlast.Variable{Name: "k"}})
	call, ok := out.(mlast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	assert.Equal(t, mlast.Variable{Name: tr.names.of(x)}, call.Args[0])
	assert.Equal(t, mlast.Variable{Name: "k"}, call.Args[1])
}

func TestLowerAppRecognisesStateGetAsDeref(t *testing.T) {
	tr := newTransformer()
	cell := symbols.New("cell", symbols.BlockSymbol)
	get := symbols.New("get", symbols.ValueSymbol)
	ev := symbols.New("ev", symbols.ValueSymbol)

	term := ir.App{
		Block: ir.Member{Receiver: ir.BlockVar{Sym: cell}, Op: get},
		Args:  []ir.Expr{ir.ValueVar{Sym: ev}},
	}

	out := tr.lowerTerm(term)(cps.Dynamic{Expr: mlast.Variable{Name: "k"}})
	call, ok := out.(mlast.Call)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: "k"}, call.Fn)
	require.Len(t, call.Args, 1)
	deref, ok := call.Args[0].(mlast.Deref)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: tr.names.of(cell)}, deref.Cell)
}

func TestLowerAppRecognisesStatePutAsAssign(t *testing.T) {
	tr := newTransformer()
	cell := symbols.New("cell", symbols.BlockSymbol)
	put := symbols.New("put", symbols.ValueSymbol)
	ev := symbols.New("ev", symbols.ValueSymbol)

	term := ir.App{
		Block: ir.Member{Receiver: ir.BlockVar{Sym: cell}, Op: put},
		Args:  []ir.Expr{ir.ValueVar{Sym: ev}, ir.Literal{Kind: ir.IntLiteral, Int: 7}},
	}

	out := tr.lowerTerm(term)(cps.Dynamic{Expr: mlast.Variable{Name: "k"}})
	call, ok := out.(mlast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
	assign, ok := call.Args[0].(mlast.Assign)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: tr.names.of(cell)}, assign.Cell)
	assert.Equal(t, mlast.RawValue{Text: mlast.FormatInt(7)}, assign.Value)
}

// TestLowerTryWithNoHandlersMatchesTheWorkedScenario reproduces the
// documented end-to-end example: Try(body=BlockLit([],[ev],Return(7)),
// handlers=[]) reduces to k(reset(body(lift))) once CPS-lowered against an
// already-named continuation.
func TestLowerTryWithNoHandlersMatchesTheWorkedScenario(t *testing.T) {
	tr := newTransformer()
	ev := symbols.New("ev", symbols.ValueSymbol)
	term := ir.Try{
		Body:     ir.BlockLit{Params: []ir.Param{{Sym: ev}}, Body: intReturn(7)},
		Handlers: nil,
	}

	out := tr.lowerTerm(term)(cps.Dynamic{Expr: mlast.Variable{Name: "k"}})
	call, ok := out.(mlast.Call)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: "k"}, call.Fn)
	require.Len(t, call.Args, 1)

	bodyCall, ok := call.Args[0].(mlast.Call)
	require.True(t, ok)
	require.Len(t, bodyCall.Args, 1)
	assert.Equal(t, mlast.Variable{Name: "lift"}, bodyCall.Args[0])

	bodyFn, ok := bodyCall.Fn.(mlast.Lambda)
	require.True(t, ok)
	require.Len(t, bodyFn.Params, 1)
	named, ok := bodyFn.Params[0].(mlast.Named)
	require.True(t, ok)
	assert.Equal(t, tr.names.of(ev), named.Name)
	assert.Equal(t, mlast.RawValue{Text: mlast.FormatInt(7)}, bodyFn.Body)
}

func TestLowerTryInstallsOneHandlerValuePerHandlerImpl(t *testing.T) {
	tr := newTransformer()
	iface := symbols.New("State", symbols.TypeSymbol)
	op := symbols.New("get", symbols.ValueSymbol)
	tr.lowerInterface(ir.Interface{ID: iface, Ops: []ir.InterfaceOp{{Op: op}}})

	k := symbols.New("k", symbols.ValueSymbol)
	handler := ir.HandlerImpl{
		Interface: iface,
		Ops: []ir.OpImpl{{Op: op, Body: ir.BlockLit{
			Params: []ir.Param{{Sym: k}},
			Body:   ir.Return{Value: ir.ValueVar{Sym: k}},
		}}},
	}
	term := ir.Try{Body: ir.BlockLit{Body: intReturn(1)}, Handlers: []ir.HandlerImpl{handler}}

	out := tr.lowerTerm(term)(cps.Dynamic{Expr: mlast.Variable{Name: "kk"}})
	call, ok := out.(mlast.Call)
	require.True(t, ok)
	bodyCall, ok := call.Args[0].(mlast.Call)
	require.True(t, ok)
	require.Len(t, bodyCall.Args, 2)
	assert.Equal(t, mlast.Variable{Name: "lift"}, bodyCall.Args[0])
	_, isMake := bodyCall.Args[1].(mlast.Make)
	assert.True(t, isMake)
}

// TestLowerHandlerImplThreadsNonEmptyEvidenceThroughLift confirms a
// HandlerImpl's Evidence is not silently dropped: when it names a lift
// path, the assembled handler value is wrapped in a call to the runtime's
// lift primitive rather than handed to Try bare.
func TestLowerHandlerImplThreadsNonEmptyEvidenceThroughLift(t *testing.T) {
	tr := newTransformer()
	iface := symbols.New("State", symbols.TypeSymbol)
	op := symbols.New("get", symbols.ValueSymbol)
	tr.lowerInterface(ir.Interface{ID: iface, Ops: []ir.InterfaceOp{{Op: op}}})

	outer := symbols.New("outerEv", symbols.ValueSymbol)
	handler := ir.HandlerImpl{
		Interface: iface,
		Evidence:  ir.Evidence{ir.LiftVar{Sym: outer}},
		Ops: []ir.OpImpl{{Op: op, Body: ir.BlockLit{
			Body: ir.Return{Value: ir.Literal{Kind: ir.IntLiteral, Int: 0}},
		}}},
	}

	out := tr.lowerHandlerImpl(handler)
	call, ok := out.(mlast.Call)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: "lift"}, call.Fn)
	require.Len(t, call.Args, 2)
	assert.Equal(t, mlast.Variable{Name: tr.names.of(outer)}, call.Args[0])
	_, isMake := call.Args[1].(mlast.Make)
	assert.True(t, isMake)
}

func TestLowerShiftBuildsLiftCallCapturingContinuation(t *testing.T) {
	tr := newTransformer()
	k := symbols.New("k", symbols.ValueSymbol)
	term := ir.Shift{
		Evidence: nil,
		Block: ir.BlockLit{
			Params: []ir.Param{{Sym: k}},
			Body:   ir.Return{Value: ir.ValueVar{Sym: k}},
		},
	}

	out := tr.lowerTerm(term)(cps.Dynamic{Expr: mlast.Variable{Name: "outer"}})
	// cps.Pure applies the ambient continuation to the lift call, so
	// "outer" appears once, wrapping it.
	call, ok := out.(mlast.Call)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: "outer"}, call.Fn)
	require.Len(t, call.Args, 1)

	liftCall, ok := call.Args[0].(mlast.Call)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: "lift"}, liftCall.Fn)
	require.Len(t, liftCall.Args, 2)
	assert.Equal(t, mlast.Variable{Name: "here"}, liftCall.Args[0])
	_, isLambda := liftCall.Args[1].(mlast.Lambda)
	assert.True(t, isLambda)
}

func TestLowerShiftRejectsABlockWithTheWrongArity(t *testing.T) {
	tr := newTransformer()
	term := ir.Shift{Block: ir.BlockLit{Params: nil}}
	assert.Panics(t, func() { tr.lowerTerm(term) })
}

func TestLowerRegionWrapsBodyInWithRegionCall(t *testing.T) {
	tr := newTransformer()
	sym := symbols.New("r", symbols.ValueSymbol)
	term := ir.Region{Sym: sym, Body: intReturn(1)}

	out := tr.lowerTerm(term)(cps.Dynamic{Expr: mlast.Variable{Name: "k"}})
	call, ok := out.(mlast.Call)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: "k"}, call.Fn)
	require.Len(t, call.Args, 1)

	withRegion, ok := call.Args[0].(mlast.Call)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: "withRegion"}, withRegion.Fn)
	require.Len(t, withRegion.Args, 1)
	_, isLambda := withRegion.Args[0].(mlast.Lambda)
	assert.True(t, isLambda)
}
