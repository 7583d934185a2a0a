package ast

import (
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// Var references a symbol as a value. Referencing a BlockSymbol this way
// is a hard error in the typer (spec §4.3: "blocks are not first-class
// values; use Box").
type Var struct {
	checkResult
	Sym symbols.Symbol
}

func (*Var) isExpr()                          {}
func (v *Var) DeclaredSymbols() []symbols.Symbol   { return nil }
func (v *Var) ReferencedSymbols() []symbols.Symbol { return []symbols.Symbol{v.Sym} }
func (v *Var) Walk(fn func(Node) bool)             { fn(v) }

// LiteralKind tags the primitive shape of a Literal's value.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	BoolLiteral
	UnitLiteral
	DoubleLiteral
	StringLiteral
)

// Literal is a constant of one of the builtin types.
type Literal struct {
	checkResult
	Kind LiteralKind
	Int  int64
	Bool bool
	Dbl  float64
	Str  string
}

func (*Literal) isExpr()                              {}
func (l *Literal) DeclaredSymbols() []symbols.Symbol   { return nil }
func (l *Literal) ReferencedSymbols() []symbols.Symbol { return nil }
func (l *Literal) Walk(fn func(Node) bool)             { fn(l) }

// If joins Then and Else's types (spec §4.3).
type If struct {
	checkResult
	Cond       Expr
	Then, Else Stmt
}

func (*If) isExpr() {}
func (i *If) DeclaredSymbols() []symbols.Symbol { return nil }
func (i *If) ReferencedSymbols() []symbols.Symbol {
	return concat(i.Cond.ReferencedSymbols(), i.Then.ReferencedSymbols(), i.Else.ReferencedSymbols())
}
func (i *If) Walk(fn func(Node) bool) {
	if !fn(i) {
		return
	}
	i.Cond.Walk(fn)
	i.Then.Walk(fn)
	i.Else.Walk(fn)
}

// MatchCase is one arm of a Match.
type MatchCase struct {
	Pattern Pattern
	Body    Stmt
}

// Match checks Scrutinee, then joins every case's (and the default's)
// result type (spec §4.3).
type Match struct {
	checkResult
	Scrutinee Expr
	Cases     []MatchCase
	Default   Stmt
}

func (*Match) isExpr() {}
func (m *Match) DeclaredSymbols() []symbols.Symbol { return nil }
func (m *Match) ReferencedSymbols() []symbols.Symbol {
	out := m.Scrutinee.ReferencedSymbols()
	for _, c := range m.Cases {
		out = concat(out, c.Body.ReferencedSymbols())
	}
	if m.Default != nil {
		out = concat(out, m.Default.ReferencedSymbols())
	}
	return out
}
func (m *Match) Walk(fn func(Node) bool) {
	if !fn(m) {
		return
	}
	m.Scrutinee.Walk(fn)
	for _, c := range m.Cases {
		c.Body.Walk(fn)
	}
	if m.Default != nil {
		m.Default.Walk(fn)
	}
}

// CallTarget is either a name to resolve by overload (spec §4.3.1's
// scope-layered candidate sets) or an already-known expression that must
// check to a Boxed function type.
type CallTarget interface {
	isCallTarget()
}

// IdTarget carries the scope layers overload resolution walks outward
// through: Layers[0] is the innermost scope, consulted first.
type IdTarget struct {
	Layers [][]symbols.Symbol
	// Resolved is set by overload resolution once a unique candidate wins
	// (spec §4.3.1 step 3: "rewrite the call target to name that
	// candidate").
	Resolved *symbols.Symbol
}

func (IdTarget) isCallTarget() {}

// ExprTarget requires the wrapped expression to check to Boxed(Function).
// Method-call syntax is forbidden in source (spec §4.3); this variant only
// covers "call this already-computed boxed function".
type ExprTarget struct {
	Expr Expr
}

func (ExprTarget) isCallTarget() {}

// Arg is one call argument: either a value expression or a block literal
// passed positionally as a block parameter.
type Arg interface {
	isArg()
	referencedSymbols() []symbols.Symbol
	walk(fn func(Node) bool)
}

type ValueArg struct{ Expr Expr }

func (ValueArg) isArg()                                {}
func (a ValueArg) referencedSymbols() []symbols.Symbol  { return a.Expr.ReferencedSymbols() }
func (a ValueArg) walk(fn func(Node) bool)              { a.Expr.Walk(fn) }

type BlockArg struct{ Block *BlockLit }

func (BlockArg) isArg()                               {}
func (a BlockArg) referencedSymbols() []symbols.Symbol { return a.Block.ReferencedSymbols() }
func (a BlockArg) walk(fn func(Node) bool)             { a.Block.Walk(fn) }

// Call enters overload resolution when Target is an IdTarget, or checks
// Target directly when it is an ExprTarget (spec §4.3 "Calls").
type Call struct {
	checkResult
	Target CallTarget
	TArgs  []types.ValueType
	Args   []Arg
}

func (*Call) isExpr() {}
func (c *Call) DeclaredSymbols() []symbols.Symbol { return nil }
func (c *Call) ReferencedSymbols() []symbols.Symbol {
	var out []symbols.Symbol
	if et, ok := c.Target.(ExprTarget); ok {
		out = et.Expr.ReferencedSymbols()
	} else if it, ok := c.Target.(IdTarget); ok {
		for _, layer := range it.Layers {
			out = concat(out, layer)
		}
	}
	for _, a := range c.Args {
		out = concat(out, a.referencedSymbols())
	}
	return out
}
func (c *Call) Walk(fn func(Node) bool) {
	if !fn(c) {
		return
	}
	if et, ok := c.Target.(ExprTarget); ok {
		et.Expr.Walk(fn)
	}
	for _, a := range c.Args {
		a.walk(fn)
	}
}

// BlockLit is a second-class block value: it has no ValueType of its own
// until Box'd. TParams/Params mirror types.Function's TParams/VParams; it
// has no CParams of its own — the capture set a block closes over is
// inferred by the typer, not declared by the front end.
type BlockLit struct {
	checkResult
	TParams []symbols.Symbol
	Params  []symbols.Symbol
	Body    Stmt
}

func (b *BlockLit) DeclaredSymbols() []symbols.Symbol {
	return concat(b.TParams, b.Params)
}

func (b *BlockLit) ReferencedSymbols() []symbols.Symbol { return b.Body.ReferencedSymbols() }
func (b *BlockLit) Walk(fn func(Node) bool) {
	if !fn(b) {
		return
	}
	b.Body.Walk(fn)
}

// Box lifts a second-class block to a first-class Boxed value. When the
// expected type is Boxed(tpe, _), tpe is propagated into checking b's
// parameters and body (spec §4.3).
type Box struct {
	checkResult
	Block *BlockLit
}

func (*Box) isExpr() {}
func (b *Box) DeclaredSymbols() []symbols.Symbol   { return nil }
func (b *Box) ReferencedSymbols() []symbols.Symbol { return b.Block.ReferencedSymbols() }
func (b *Box) Walk(fn func(Node) bool) {
	if !fn(b) {
		return
	}
	b.Block.Walk(fn)
}

// Assign requires Target to be a VarBinder: a Var referencing a mutable
// binding (spec §4.3).
type Assign struct {
	checkResult
	Target *Var
	Value  Expr
}

func (*Assign) isExpr() {}
func (a *Assign) DeclaredSymbols() []symbols.Symbol { return nil }
func (a *Assign) ReferencedSymbols() []symbols.Symbol {
	return concat(a.Target.ReferencedSymbols(), a.Value.ReferencedSymbols())
}
func (a *Assign) Walk(fn func(Node) bool) {
	if !fn(a) {
		return
	}
	a.Target.Walk(fn)
	a.Value.Walk(fn)
}

func concat(lists ...[]symbols.Symbol) []symbols.Symbol {
	var out []symbols.Symbol
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
