package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/ast"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

func TestCheckedRoundTrip(t *testing.T) {
	v := &ast.Var{Sym: symbols.New("x", symbols.ValueSymbol)}

	_, _, ok := v.Checked()
	assert.False(t, ok)

	v.SetChecked(types.IntType, types.NewEffects())
	ty, eff, ok := v.Checked()
	require.True(t, ok)
	assert.Equal(t, types.IntType.String(), ty.String())
	assert.True(t, eff.Empty())
}

func TestIfReferencesAllBranches(t *testing.T) {
	cond := &ast.Var{Sym: symbols.New("c", symbols.ValueSymbol)}
	then := &ast.ExprStmt{Value: &ast.Var{Sym: symbols.New("t", symbols.ValueSymbol)}}
	els := &ast.ExprStmt{Value: &ast.Var{Sym: symbols.New("e", symbols.ValueSymbol)}}

	iff := &ast.If{Cond: cond, Then: then, Else: els}
	refs := iff.ReferencedSymbols()
	assert.Len(t, refs, 3)
}

func TestValChainsDeclaredSymbols(t *testing.T) {
	x := symbols.New("x", symbols.ValueSymbol)
	y := symbols.New("y", symbols.ValueSymbol)

	inner := &ast.ExprStmt{Value: &ast.Var{Sym: y}}
	val := &ast.Val{Sym: x, Bound: &ast.Literal{Kind: ast.IntLiteral, Int: 1}, Rest: inner}

	decls := val.DeclaredSymbols()
	require.Len(t, decls, 1)
	assert.Equal(t, x, decls[0])
}

func TestWalkVisitsNestedNodes(t *testing.T) {
	inner := &ast.Var{Sym: symbols.New("inner", symbols.ValueSymbol)}
	box := &ast.Box{Block: &ast.BlockLit{Body: &ast.ExprStmt{Value: inner}}}

	var visited []ast.Node
	box.Walk(func(n ast.Node) bool {
		visited = append(visited, n)
		return true
	})

	assert.Len(t, visited, 4) // Box, BlockLit, ExprStmt, Var
}

func TestWalkCanSkipChildren(t *testing.T) {
	inner := &ast.Var{Sym: symbols.New("inner", symbols.ValueSymbol)}
	box := &ast.Box{Block: &ast.BlockLit{Body: &ast.ExprStmt{Value: inner}}}

	count := 0
	box.Walk(func(n ast.Node) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestFunDefFullyAnnotatedRequiresEveryParamAndResult(t *testing.T) {
	sym := symbols.New("f", symbols.BlockSymbol)
	d := &ast.FunDef{
		Sym:     sym,
		VParams: []ast.Param{{Sym: symbols.New("x", symbols.ValueSymbol)}},
		Body:    &ast.ExprStmt{Value: &ast.Literal{Kind: ast.UnitLiteral}},
	}
	assert.False(t, d.FullyAnnotated())

	d.VParams[0].Type = types.IntType
	d.Result = types.IntType
	assert.True(t, d.FullyAnnotated())

	ft := d.FunctionType()
	require.Len(t, ft.VParams, 1)
	assert.Equal(t, types.IntType.String(), ft.Result.String())
}

func TestTagPatternDeclaredSymbolsCollectsNested(t *testing.T) {
	a := symbols.New("a", symbols.ValueSymbol)
	b := symbols.New("b", symbols.ValueSymbol)
	ctor := symbols.New("Cons", symbols.TypeSymbol)

	p := ast.TagPattern{Ctor: ctor, Nested: []ast.Pattern{ast.AnyPattern{Sym: a}, ast.AnyPattern{Sym: b}}}
	assert.Equal(t, []symbols.Symbol{a, b}, ast.DeclaredSymbols(p))
}
