package mlback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

func TestLowerDataSingleCtorGetsRecordAccessors(t *testing.T) {
	tr := newTransformer()
	pointID := symbols.New("point", symbols.TypeSymbol)
	ctor := symbols.New("Point", symbols.ValueSymbol)
	xField := symbols.New("x", symbols.ValueSymbol)
	yField := symbols.New("y", symbols.ValueSymbol)

	data := ir.Data{
		ID: pointID,
		Ctors: []ir.DataCtor{{
			Sym: ctor,
			Fields: []ir.DataField{
				{Sym: xField, Type: types.IntType},
				{Sym: yField, Type: types.IntType},
			},
		}},
	}

	bindings := tr.lowerData(data)
	require.Len(t, bindings, 3) // datatype + 2 accessors
	_, ok := bindings[0].(mlast.DataBind)
	require.True(t, ok)

	accessorX, ok := bindings[1].(mlast.FunBind)
	require.True(t, ok)
	assert.Equal(t, tr.names.of(xField), accessorX.Name)

	assert.True(t, tr.ctors[ctor])
}

func TestLowerDataSumTypeRegistersEachCtor(t *testing.T) {
	tr := newTransformer()
	listID := symbols.New("list", symbols.TypeSymbol)
	nilCtor := symbols.New("Nil", symbols.ValueSymbol)
	consCtor := symbols.New("Cons", symbols.ValueSymbol)

	data := ir.Data{
		ID: listID,
		Ctors: []ir.DataCtor{
			{Sym: nilCtor},
			{Sym: consCtor, Fields: []ir.DataField{
				{Sym: symbols.New("head", symbols.ValueSymbol), Type: types.IntType},
				{Sym: symbols.New("tail", symbols.ValueSymbol), Type: types.IntType},
			}},
		},
	}

	bindings := tr.lowerData(data)
	require.Len(t, bindings, 1) // no record accessors for a multi-ctor sum
	assert.True(t, tr.ctors[nilCtor])
	assert.True(t, tr.ctors[consCtor])
}

func TestLowerInterfaceSharesShapeAcrossSameArityInterfaces(t *testing.T) {
	tr := newTransformer()
	readerID := symbols.New("Reader", symbols.TypeSymbol)
	writerID := symbols.New("Writer", symbols.TypeSymbol)
	readOp := symbols.New("read", symbols.ValueSymbol)
	writeOp := symbols.New("write", symbols.ValueSymbol)

	bindings1 := tr.lowerInterface(ir.Interface{ID: readerID, Ops: []ir.InterfaceOp{{Op: readOp}}})
	bindings2 := tr.lowerInterface(ir.Interface{ID: writerID, Ops: []ir.InterfaceOp{{Op: writeOp}}})

	require.NotEmpty(t, bindings1)
	assert.Empty(t, bindings2)
	assert.Same(t, tr.interfaceShapes[readerID], tr.interfaceShapes[writerID])

	refRead, ok := tr.opAccessors[readOp]
	require.True(t, ok)
	refWrite, ok := tr.opAccessors[writeOp]
	require.True(t, ok)
	assert.Equal(t, refRead.index, refWrite.index)
}
