package ir

import "github.com/efflang/ec/pkg/symbols"

// Definition is one binding inside a Scope. Let binds a value (or
// discards it, when ID is nil — the wildcard form); Def binds a block,
// letting Scope's definitions be mutually recursive across Defs.
type Definition interface {
	isDefinition()
}

// Let binds Expr's value to ID. A nil ID is the wildcard form: Expr still
// runs for its effects, but the result is discarded.
type Let struct {
	ID   *symbols.Symbol
	Expr Expr
}

func (Let) isDefinition() {}

// Def binds Block to ID.
type Def struct {
	ID    symbols.Symbol
	Block Block
}

func (Def) isDefinition() {}
