package ast

import (
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// Handler elaborates one `handler` clause of a TryHandle: EffectName names
// the Interface symbol it implements, TArgs gives the handler's type
// instantiation, and every declared operation of that interface must
// appear exactly once among Ops (spec §4.3 "Handlers").
type Handler struct {
	EffectName symbols.Symbol
	TArgs      []types.ValueType
	Ops        []OpClause
}

func (h Handler) ReferencedSymbols() []symbols.Symbol {
	var out []symbols.Symbol
	for _, op := range h.Ops {
		out = concat(out, op.ReferencedSymbols())
	}
	return out
}

func (h Handler) walk(fn func(Node) bool) {
	for _, op := range h.Ops {
		op.walk(fn)
	}
}

// OpClause handles one operation of the interface a Handler implements.
// Resume is the symbol bound to the captured continuation inside Body
// (spec §4.3: its type depends on whether the operation is bidirectional).
type OpClause struct {
	Op     symbols.Symbol
	Params []symbols.Symbol
	Body   Stmt
	Resume symbols.Symbol
}

func (c OpClause) DeclaredSymbols() []symbols.Symbol {
	return concat(c.Params, []symbols.Symbol{c.Resume}, c.Body.DeclaredSymbols())
}

func (c OpClause) ReferencedSymbols() []symbols.Symbol { return c.Body.ReferencedSymbols() }

func (c OpClause) walk(fn func(Node) bool) { c.Body.Walk(fn) }
