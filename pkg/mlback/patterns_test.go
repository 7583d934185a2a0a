package mlback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
	"github.com/efflang/ec/pkg/symbols"
)

func TestLowerPatternIgnoreAndVar(t *testing.T) {
	tr := newTransformer()
	assert.Equal(t, mlast.WildPat{}, tr.lowerPattern(ir.IgnorePattern{}))

	x := symbols.New("x", symbols.ValueSymbol)
	assert.Equal(t, mlast.VarPat{Name: tr.names.of(x)}, tr.lowerPattern(ir.AnyPattern{Sym: x}))
}

func TestLowerPatternLiteralRendersThroughLowerLiteral(t *testing.T) {
	tr := newTransformer()
	pat := tr.lowerPattern(ir.LiteralPattern{Value: ir.Literal{Kind: ir.IntLiteral, Int: 3}})
	assert.Equal(t, mlast.LitPat{Text: "3"}, pat)
}

func TestLowerTagPatternNullaryHasNoArg(t *testing.T) {
	tr := newTransformer()
	nilCtor := symbols.New("Nil", symbols.ValueSymbol)
	pat := tr.lowerPattern(ir.TagPattern{Ctor: nilCtor})
	ctorPat, ok := pat.(mlast.CtorPat)
	require.True(t, ok)
	assert.Equal(t, tr.names.of(nilCtor), ctorPat.Ctor)
	assert.Nil(t, ctorPat.Arg)
}

func TestLowerTagPatternSingleNestedIsBareArg(t *testing.T) {
	tr := newTransformer()
	some := symbols.New("Some", symbols.ValueSymbol)
	x := symbols.New("x", symbols.ValueSymbol)
	pat := tr.lowerPattern(ir.TagPattern{Ctor: some, Nested: []ir.Pattern{ir.AnyPattern{Sym: x}}})
	ctorPat, ok := pat.(mlast.CtorPat)
	require.True(t, ok)
	assert.Equal(t, mlast.VarPat{Name: tr.names.of(x)}, ctorPat.Arg)
}

func TestLowerTagPatternMultiNestedIsTuplePat(t *testing.T) {
	tr := newTransformer()
	cons := symbols.New("Cons", symbols.ValueSymbol)
	h := symbols.New("h", symbols.ValueSymbol)
	rest := symbols.New("t", symbols.ValueSymbol)
	pat := tr.lowerPattern(ir.TagPattern{
		Ctor:   cons,
		Nested: []ir.Pattern{ir.AnyPattern{Sym: h}, ir.AnyPattern{Sym: rest}},
	})
	ctorPat, ok := pat.(mlast.CtorPat)
	require.True(t, ok)
	tuple, ok := ctorPat.Arg.(mlast.TuplePat)
	require.True(t, ok)
	require.Len(t, tuple.Elems, 2)
}
