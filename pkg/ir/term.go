// Package ir is the Lifted IR's data model (spec §3): a passive,
// externally-produced tree in which effect handling has already been made
// explicit via evidence parameters. Nothing in this package builds an IR
// tree — that is the external lifter's job, between the Typer and the ML
// Transformer (pkg/mlback). This package only defines the node shapes and
// the structural helpers (dependency-graph construction, free-variable
// collection) the ML Transformer needs to consume one.
package ir

import (
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// Term is a statement-level, effect-sequencing node. Val/Scope/State carry
// a trailing continuation (Body); the rest are terminal.
type Term interface {
	isTerm()
}

// Return wraps a pure value as the tail of a Term chain.
type Return struct{ Value Expr }

func (Return) isTerm() {}

// App calls a block with type and value/block arguments. The continuation
// the CPS lowering will pass is implicit here — it is threaded in by the
// ML Transformer, not carried on the node.
type App struct {
	Block Block
	TArgs []types.ValueType
	Args  []Expr
}

func (App) isTerm() {}

// If evaluates Cond and continues into Then or Else.
type If struct {
	Cond       Expr
	Then, Else Term
}

func (If) isTerm() {}

// Val binds the result of Bound to ID, then continues into Body.
type Val struct {
	ID    symbols.Symbol
	Bound Term
	Body  Term
}

func (Val) isTerm() {}

// MatchClause is one arm of a Match.
type MatchClause struct {
	Pattern Pattern
	Body    Term
}

// Match dispatches on Scrutinee's runtime tag.
type Match struct {
	Scrutinee Expr
	Clauses   []MatchClause
	Default   Term
}

func (Match) isTerm() {}

// Hole marks unreachable code; its static type is Bottom.
type Hole struct{}

func (Hole) isTerm() {}

// Scope introduces a (possibly mutually-recursive) group of local
// definitions visible to Body.
type Scope struct {
	Definitions []Definition
	Body        Term
}

func (Scope) isTerm() {}

// State declares a mutable cell: Init's value is stored, Region says which
// region it belongs to (global or a local withRegion scope), and Evidence
// carries the lifts needed to reach that region's implementation.
type State struct {
	ID       symbols.Symbol
	Init     Expr
	Region   RegionID
	Evidence Evidence
	Body     Term
}

func (State) isTerm() {}

// RegionID names the region a State cell is allocated in. Global set marks
// the single global region (spec's Non-goals: "region inference beyond
// a single global region plus local withRegion scopes"); otherwise Sym
// names the local region, so the zero value is a local region, not the
// global one.
type RegionID struct {
	Sym    symbols.Symbol
	Global bool
}

// Try runs Body with Handlers installed, each entry paired with the
// Evidence its operations need to reach their own effect's implementation.
// Body is itself a block taking the evidence parameter(s) a nested Shift
// reaches back to this Try through (spec §8 scenario 4: Body =
// BlockLit([], [ev], ...)), not a bare Term — there would otherwise be
// nothing for a Shift's Evidence to name when it references this Try's ev
// symbol via LiftVar.
type Try struct {
	Body     BlockLit
	Handlers []HandlerImpl
}

func (Try) isTerm() {}

// HandlerImpl is one handler installed by a Try, already elaborated into
// block form by the Typer/lifter (its operations are BlockLit-shaped).
type HandlerImpl struct {
	Interface symbols.Symbol
	TArgs     []types.ValueType
	Evidence  Evidence
	Ops       []OpImpl
}

// OpImpl is one operation implementation inside a HandlerImpl.
type OpImpl struct {
	Op   symbols.Symbol
	Body BlockLit
}

// Shift captures the continuation up to the nearest enclosing Try's
// prompt. Block must take exactly one parameter (the continuation); a
// Shift whose Block doesn't is a compiler bug (spec §4.5.3).
type Shift struct {
	Evidence Evidence
	Block    BlockLit
}

func (Shift) isTerm() {}

// Region opens a fresh local region for Body's State cells.
type Region struct {
	Sym  symbols.Symbol
	Body Term
}

func (Region) isTerm() {}
