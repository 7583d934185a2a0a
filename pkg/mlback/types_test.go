package mlback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/mlast"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

func TestLowerTypeBuiltins(t *testing.T) {
	tr := newTransformer()
	assert.Equal(t, mlast.TyCon{Name: "int"}, tr.lowerType(types.IntType))
	assert.Equal(t, mlast.TyCon{Name: "bool"}, tr.lowerType(types.BoolType))
	assert.Equal(t, mlast.TyCon{Name: "unit"}, tr.lowerType(types.UnitType))
	assert.Equal(t, mlast.TyCon{Name: "real"}, tr.lowerType(types.DoubleType))
	assert.Equal(t, mlast.TyCon{Name: "string"}, tr.lowerType(types.StringType))
}

func TestLowerTypeVar(t *testing.T) {
	tr := newTransformer()
	a := symbols.New("a", symbols.TypeSymbol)
	assert.Equal(t, mlast.TyVar{Name: tr.names.of(a)}, tr.lowerType(types.Var{Sym: a}))
}

func TestLowerTypeConstructorWithArgs(t *testing.T) {
	tr := newTransformer()
	listSym := symbols.New("list", symbols.TypeSymbol)
	ty := types.Constructor{Sym: listSym, Args: []types.ValueType{types.IntType}}
	out := tr.lowerType(ty)
	tycon, ok := out.(mlast.TyCon)
	require.True(t, ok)
	assert.Equal(t, tr.names.of(listSym), tycon.Name)
	require.Len(t, tycon.Args, 1)
	assert.Equal(t, mlast.TyCon{Name: "int"}, tycon.Args[0])
}

func TestLowerTypeUnificationVarPanics(t *testing.T) {
	tr := newTransformer()
	assert.Panics(t, func() { tr.lowerType(types.UnificationVar{}) })
}
