package ast

import "github.com/efflang/ec/pkg/symbols"

// Pattern is one arm of checkPattern(scrutineeType, pattern) → Symbol →
// ValueType bindings (spec §4.3 "Patterns").
type Pattern interface {
	isPattern()
	declaredSymbols() []symbols.Symbol
}

// IgnorePattern ("_") binds nothing.
type IgnorePattern struct{}

func (IgnorePattern) isPattern()                     {}
func (IgnorePattern) declaredSymbols() []symbols.Symbol { return nil }

// AnyPattern binds the scrutinee to Sym unconditionally.
type AnyPattern struct {
	Sym symbols.Symbol
}

func (AnyPattern) isPattern()                          {}
func (a AnyPattern) declaredSymbols() []symbols.Symbol { return []symbols.Symbol{a.Sym} }

// LiteralPattern matches only a scrutinee equal to Value.
type LiteralPattern struct {
	Value *Literal
}

func (LiteralPattern) isPattern()                     {}
func (LiteralPattern) declaredSymbols() []symbols.Symbol { return nil }

// TagPattern matches a constructor application: Ctor identifies the data
// constructor, and Nested checks its payload positionally. Existential
// type parameters on constructors are not allowed here (spec §4.3).
type TagPattern struct {
	Ctor   symbols.Symbol
	Nested []Pattern
}

func (TagPattern) isPattern() {}
func (t TagPattern) declaredSymbols() []symbols.Symbol {
	var out []symbols.Symbol
	for _, n := range t.Nested {
		out = append(out, n.declaredSymbols()...)
	}
	return out
}

// DeclaredSymbols exposes a pattern's bound symbols to callers outside the
// package (the checker itself uses the same unexported method directly).
func DeclaredSymbols(p Pattern) []symbols.Symbol { return p.declaredSymbols() }
