package ir

import (
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// Expr is a pure, value-producing node. Terms hold Exprs in their operand
// positions (App's Args, If's Cond, Val's bound value once it has been
// reduced to a value); Expr itself never sequences effects directly —
// Run is the one exception, and it only appears where the lifter has
// already proven its operand Term is effect-free.
type Expr interface {
	isExpr()
}

// ValueVar references a bound value-typed symbol.
type ValueVar struct{ Sym symbols.Symbol }

func (ValueVar) isExpr() {}

// LiteralKind tags Literal's payload field.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	BoolLiteral
	UnitLiteral
	DoubleLiteral
	StringLiteral
)

// Literal is a constant value.
type Literal struct {
	Kind LiteralKind
	Int  int64
	Bool bool
	Dbl  float64
	Str  string
}

func (Literal) isExpr() {}

// PureApp applies a constructor or a known-pure extern function to Args.
// Ordinary (possibly effectful) calls go through Term's App instead; the
// lifter only emits PureApp where it has proven Args can be evaluated
// without sequencing.
type PureApp struct {
	Ctor  symbols.Symbol
	TArgs []types.ValueType
	Args  []Expr
}

func (PureApp) isExpr() {}

// Select projects Field out of Record, the lowering of a record accessor
// application once inlined (spec §4.5.2).
type Select struct {
	Record Expr
	Field  symbols.Symbol
}

func (Select) isExpr() {}

// Box turns a block into a first-class value, capturing the variables its
// body closes over.
type Box struct {
	Block    Block
	Captures []symbols.Symbol
}

func (Box) isExpr() {}

// Run reduces an effect-free Term to the Expr that is its only possible
// outcome (spec §4.4's run combinator applied at the lifted-IR level).
type Run struct{ Stmt Term }

func (Run) isExpr() {}
