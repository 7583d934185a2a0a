package diag_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/symbols"
)

func TestBagHasErrorsIgnoresBufferedOnly(t *testing.T) {
	b := diag.NewBag()
	b.Add(&diag.TypeMismatch{Left: stringer("Int"), Right: stringer("Bool")})
	assert.False(t, b.HasErrors())

	b.Add(&diag.Ambiguous{Candidates: []symbols.Symbol{symbols.New("f", symbols.BlockSymbol)}})
	assert.True(t, b.HasErrors())
}

func TestForkAndMergePromotesOnlyOnCall(t *testing.T) {
	parent := diag.NewBag()
	trial := parent.Fork()
	trial.Add(&diag.TypeMismatch{Left: stringer("Int"), Right: stringer("String")})

	assert.True(t, parent.Empty())
	parent.Merge(trial)
	assert.False(t, parent.Empty())
}

func TestResolutionErrorIsFatalToDefinition(t *testing.T) {
	err := &diag.ResolutionError{Name: "unbound"}
	assert.Equal(t, diag.FatalToDefinition, err.Severity())
	assert.Contains(t, err.Error(), "unbound")
}

func TestAmbiguousListsCandidateNames(t *testing.T) {
	a := symbols.New("a", symbols.BlockSymbol)
	b := symbols.New("b", symbols.BlockSymbol)
	err := &diag.Ambiguous{Candidates: []symbols.Symbol{a, b}}
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")
	assert.Equal(t, diag.FatalToCall, err.Severity())
}

func TestMutualRecursionUnsupportedNamesBothDefinitions(t *testing.T) {
	even := symbols.New("even", symbols.BlockSymbol)
	odd := symbols.New("odd", symbols.BlockSymbol)
	err := &diag.MutualRecursionUnsupported{Names: []symbols.Symbol{even, odd}}
	assert.Contains(t, err.Error(), "even")
	assert.Contains(t, err.Error(), "odd")
	assert.Equal(t, diag.FatalToCompilation, err.Severity())
}

func TestRaisePanicsWithInternalInvariant(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		inv, ok := r.(*diag.InternalInvariant)
		require.True(t, ok)
		assert.Contains(t, inv.Error(), "shift block must take exactly one parameter")
	}()
	diag.Raise("shift block must take exactly one parameter, got %d", 2)
}

func TestSourceErrorFallsBackToPlainMessageWithoutSource(t *testing.T) {
	inner := &diag.ResolutionError{Name: "x"}
	se := diag.NewSourceError(inner, nil, "")
	assert.Equal(t, inner.Error(), se.Error())
}

func TestSourceErrorHighlightsLocation(t *testing.T) {
	inner := &diag.ResolutionError{Name: "x"}
	loc := &diag.SourceLocation{Filename: "a.eff", Line: 2, Column: 5, Length: 1}
	se := diag.NewSourceError(inner, loc, "line one\nlet x = y\nline three")
	out := se.Error()
	assert.Contains(t, out, "a.eff:2:5")
	assert.Contains(t, out, "let x = y")
}

func TestWriteYAMLRoundTripsKindAndSeverity(t *testing.T) {
	b := diag.NewBag()
	b.Add(&diag.ResolutionError{Name: "x"})

	var buf bytes.Buffer
	require.NoError(t, diag.WriteYAML(&buf, b))
	assert.Contains(t, buf.String(), "kind: ResolutionError")
	assert.Contains(t, buf.String(), "severity: fatal-to-definition")
}

type stringer string

func (s stringer) String() string { return string(s) }
