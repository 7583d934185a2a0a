// Package mlback is the ML Transformer (spec §4.5): it lowers a Lifted IR
// Module into a target-ML Toplevel, by topologically ordering definitions,
// elaborating declarations (records, sums, and the arity-shared interface
// object shape), CPS-lowering statements through pkg/cps's combinators, and
// lowering expressions, blocks, and implementations. Transform is the one
// entry point; everything else is a subscope of one call and is discarded
// once it returns (spec §5's "torn down on return" discipline).
package mlback

import (
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/symbols"
)

// accessorRef locates operation op's projection within the shared object
// shape of its declaring interface's arity (spec §4.5.2).
type accessorRef struct {
	shape *objectShape
	index int
}

// transformer holds the state one Transform call needs: the symbol-to-
// identifier naming table, the arity-indexed interface object cache, and
// the lookup tables built while lowering Decls that expression/block
// lowering later consults (which symbols are constructors, which operation
// projects to which accessor). All of it is scoped to this call; re-entry
// on a live transformer is forbidden (nothing here is safe to reuse across
// compilations).
type transformer struct {
	names           *names
	objects         *objectCache
	interfaceShapes map[symbols.Symbol]*objectShape
	opAccessors     map[symbols.Symbol]accessorRef
	ctors           map[symbols.Symbol]bool
	tmpCounter      int
}

func newTransformer() *transformer {
	return &transformer{
		names:           newNames(),
		objects:         newObjectCache(),
		interfaceShapes: make(map[symbols.Symbol]*objectShape),
		opAccessors:     make(map[symbols.Symbol]accessorRef),
		ctors:           make(map[symbols.Symbol]bool),
	}
}

// shapeOf returns the shared object shape for the interface named iface,
// panicking with InternalInvariant if it was never declared — a Member or
// New referencing an interface pkg/mlback never saw a Decl for is a bug in
// the lifter, not a recoverable diagnostic.
func (tr *transformer) shapeOf(iface symbols.Symbol) *objectShape {
	shape, ok := tr.interfaceShapes[iface]
	if !ok {
		diag.Raise("interface %s has no registered object shape", iface.Name)
	}
	return shape
}
