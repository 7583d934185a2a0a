package mlback

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/efflang/ec/pkg/symbols"
)

func TestNamesOfIsStableForTheSameSymbol(t *testing.T) {
	n := newNames()
	x := symbols.New("x", symbols.ValueSymbol)
	first := n.of(x)
	assert.Equal(t, first, n.of(x))
}

func TestNamesOfDisambiguatesSameDisplayNameDifferentSymbols(t *testing.T) {
	n := newNames()
	x1 := symbols.New("x", symbols.ValueSymbol)
	x2 := symbols.New("x", symbols.ValueSymbol)
	assert.NotEqual(t, n.of(x1), n.of(x2))
}

func TestNamesOfSanitizesIllegalCharacters(t *testing.T) {
	n := newNames()
	weird := symbols.New("x-y!z", symbols.ValueSymbol)
	name := n.of(weird)
	assert.Equal(t, "x_y_z", name)
}

func TestNamesOfEmptyNameFallsBackToV(t *testing.T) {
	n := newNames()
	anon := symbols.New("", symbols.ValueSymbol)
	assert.Equal(t, "v", n.of(anon))
}

func TestFreshTmpNeverCollidesWithANameAlreadyMinted(t *testing.T) {
	tr := newTransformer()
	taken := symbols.New("t1", symbols.ValueSymbol)
	tr.names.of(taken) // reserves the literal string "t1"

	got := tr.freshTmp()
	assert.NotEqual(t, "t1", got)
}

func TestFreshTmpReturnsDistinctNamesAcrossCalls(t *testing.T) {
	tr := newTransformer()
	a := tr.freshTmp()
	b := tr.freshTmp()
	assert.NotEqual(t, a, b)
}
