package mlback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/symbols"
)

func intReturn(v int64) ir.Term {
	return ir.Return{Value: ir.Literal{Kind: ir.IntLiteral, Int: v}}
}

func TestOrderDefinitionsSortsAcyclicRunByDependency(t *testing.T) {
	g := symbols.New("g", symbols.BlockSymbol)
	f := symbols.New("f", symbols.BlockSymbol)

	// f depends on g; declared in reverse dependency order so a stable
	// pass-through would get it wrong.
	defs := []ir.Definition{
		ir.Def{ID: f, Block: ir.BlockLit{Body: ir.App{Block: ir.BlockVar{Sym: g}}}},
		ir.Def{ID: g, Block: ir.BlockLit{Body: intReturn(1)}},
	}

	ordered, err := orderDefinitions(defs)
	require.Nil(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, g, ordered[0].(ir.Def).ID)
	assert.Equal(t, f, ordered[1].(ir.Def).ID)
}

func TestOrderDefinitionsLeavesLetsInPlaceBetweenDefRuns(t *testing.T) {
	x := symbols.New("x", symbols.ValueSymbol)
	f := symbols.New("f", symbols.BlockSymbol)
	g := symbols.New("g", symbols.BlockSymbol)

	defs := []ir.Definition{
		ir.Def{ID: f, Block: ir.BlockLit{Body: intReturn(1)}},
		ir.Let{ID: &x, Expr: ir.Literal{Kind: ir.IntLiteral, Int: 2}},
		ir.Def{ID: g, Block: ir.BlockLit{Body: intReturn(3)}},
	}

	ordered, err := orderDefinitions(defs)
	require.Nil(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, f, ordered[0].(ir.Def).ID)
	assert.Equal(t, &x, ordered[1].(ir.Let).ID)
	assert.Equal(t, g, ordered[2].(ir.Def).ID)
}

func TestOrderDefinitionsDoesNotTreatSelfRecursionAsACycle(t *testing.T) {
	f := symbols.New("f", symbols.BlockSymbol)
	defs := []ir.Definition{
		ir.Def{ID: f, Block: ir.BlockLit{Body: ir.App{Block: ir.BlockVar{Sym: f}}}},
	}

	ordered, err := orderDefinitions(defs)
	require.Nil(t, err)
	require.Len(t, ordered, 1)
}

func TestOrderDefinitionsReportsMutualRecursionCycle(t *testing.T) {
	even := symbols.New("even", symbols.BlockSymbol)
	odd := symbols.New("odd", symbols.BlockSymbol)

	defs := []ir.Definition{
		ir.Def{ID: even, Block: ir.BlockLit{Body: ir.App{Block: ir.BlockVar{Sym: odd}}}},
		ir.Def{ID: odd, Block: ir.BlockLit{Body: ir.App{Block: ir.BlockVar{Sym: even}}}},
	}

	_, err := orderDefinitions(defs)
	require.NotNil(t, err)
	assert.ElementsMatch(t, []symbols.Symbol{even, odd}, err.Names)
	assert.Equal(t, diag.FatalToCompilation, err.Severity())
}
