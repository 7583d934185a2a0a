package ir

import "github.com/efflang/ec/pkg/symbols"

// Pattern is one arm of a Match; shaped identically to the typer's own
// pattern grammar since the lifter does not change pattern structure,
// only the term it guards (spec §3, §4.3).
type Pattern interface {
	isPattern()
}

// IgnorePattern ("_") matches anything and binds nothing.
type IgnorePattern struct{}

func (IgnorePattern) isPattern() {}

// AnyPattern binds the scrutinee to Sym unconditionally.
type AnyPattern struct{ Sym symbols.Symbol }

func (AnyPattern) isPattern() {}

// LiteralPattern matches a scrutinee equal to Value.
type LiteralPattern struct{ Value Literal }

func (LiteralPattern) isPattern() {}

// TagPattern matches a constructor application, binding Nested
// positionally to its fields.
type TagPattern struct {
	Ctor   symbols.Symbol
	Nested []Pattern
}

func (TagPattern) isPattern() {}
