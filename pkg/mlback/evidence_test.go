package mlback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
	"github.com/efflang/ec/pkg/symbols"
)

func TestLowerEvidenceEmptyIsHere(t *testing.T) {
	tr := newTransformer()
	assert.Equal(t, mlast.Variable{Name: "here"}, tr.lowerEvidence(nil))
}

func TestLowerEvidenceSingleStepLowersDirectly(t *testing.T) {
	tr := newTransformer()
	out := tr.lowerEvidence(ir.Evidence{ir.LiftTry{}})
	assert.Equal(t, mlast.Variable{Name: "lift"}, out)
}

func TestLowerEvidenceRegIsAliasedToTry(t *testing.T) {
	tr := newTransformer()
	assert.Equal(t, tr.lowerEvidence(ir.Evidence{ir.LiftTry{}}), tr.lowerEvidence(ir.Evidence{ir.LiftReg{}}))
}

func TestLowerEvidenceMultipleStepsRightFoldsThroughNested(t *testing.T) {
	tr := newTransformer()
	ev := symbols.New("ev", symbols.BlockSymbol)
	out := tr.lowerEvidence(ir.Evidence{ir.LiftTry{}, ir.LiftVar{Sym: ev}})
	call, ok := out.(mlast.Call)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: "nested"}, call.Fn)
	require.Len(t, call.Args, 2)
	assert.Equal(t, mlast.Variable{Name: "lift"}, call.Args[0])
	assert.Equal(t, mlast.Variable{Name: tr.names.of(ev)}, call.Args[1])
}

func TestLowerEvidenceThreeStepsNestsTwice(t *testing.T) {
	tr := newTransformer()
	a := symbols.New("a", symbols.BlockSymbol)
	b := symbols.New("b", symbols.BlockSymbol)
	out := tr.lowerEvidence(ir.Evidence{ir.LiftVar{Sym: a}, ir.LiftVar{Sym: b}, ir.LiftTry{}})

	outer, ok := out.(mlast.Call)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: tr.names.of(a)}, outer.Args[0])

	inner, ok := outer.Args[1].(mlast.Call)
	require.True(t, ok)
	assert.Equal(t, mlast.Variable{Name: tr.names.of(b)}, inner.Args[0])
	assert.Equal(t, mlast.Variable{Name: "lift"}, inner.Args[1])
}
