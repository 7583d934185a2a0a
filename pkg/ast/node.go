// Package ast defines the node shapes the front end (name resolution, out
// of scope here) is contracted to hand the typer: a tree with every binder
// and reference already carrying a symbols.Symbol, ready for checkExpr/
// checkStmt to walk and annotate. There is no parser in this package.
package ast

import (
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// Node is the common contract for every tree node: it can be walked, it
// reports the symbols it declares and references, and once checked it
// carries its inferred value type and the concrete effects it performs
// (spec §4.3: "every node is wrapped so its inferred type and effects are
// stored for later substitution").
type Node interface {
	// Walk visits this node and its children; fn returning false skips the
	// children of the node it was just called with.
	Walk(fn func(Node) bool)
	DeclaredSymbols() []symbols.Symbol
	ReferencedSymbols() []symbols.Symbol
	SetChecked(t types.ValueType, eff types.Effects)
	Checked() (t types.ValueType, eff types.Effects, ok bool)
}

// checkResult is embedded by every node to store the result of checkExpr/
// checkStmt, once it has run.
type checkResult struct {
	t   types.ValueType
	eff types.Effects
	ok  bool
}

func (c *checkResult) SetChecked(t types.ValueType, eff types.Effects) {
	c.t, c.eff, c.ok = t, eff, true
}

func (c *checkResult) Checked() (types.ValueType, types.Effects, bool) {
	return c.t, c.eff, c.ok
}

// Expr is the expression-level subset of Node: literals, variables, calls,
// conditionals, boxing, and assignment (spec §4.3's "Expressions").
type Expr interface {
	Node
	isExpr()
}

// Stmt is the statement-level subset of Node: the effect- and binding-
// sequencing forms whose shape mirrors the Lifted IR's Term grammar
// (spec §3) one stage earlier, before an external lifter inserts evidence.
type Stmt interface {
	Node
	isStmt()
}
