// Package mlast is the target language's AST: the closed set of
// Standard-ML expression, pattern, type and binding constructors the ML
// Transformer (pkg/mlback) is allowed to emit, plus a buffer-based emitter
// (emit.go) that prints a Toplevel as source text. Nothing here parses or
// checks anything, it only knows how to print itself.
package mlast

// Expr is a target-level expression.
type Expr interface {
	isExpr()
}

// Variable references a bound name.
type Variable struct{ Name string }

func (Variable) isExpr() {}

// Lambda is an n-argument anonymous function; BlockLit lowering always
// produces one with the continuation as its trailing parameter (spec
// §4.5.5).
type Lambda struct {
	Params []Param
	Body   Expr
}

func (Lambda) isExpr() {}

// Call applies Fn to Args, an uncurried (tupled) application.
type Call struct {
	Fn   Expr
	Args []Expr
}

func (Call) isExpr() {}

// If is a conditional expression.
type If struct {
	Cond, Then, Else Expr
}

func (If) isExpr() {}

// Let introduces Bindings, scoped over Body.
type Let struct {
	Bindings []Binding
	Body     Expr
}

func (Let) isExpr() {}

// Tuple builds an n-ary tuple value.
type Tuple struct{ Elems []Expr }

func (Tuple) isExpr() {}

// Make applies a datatype constructor to Payload; Payload is nil for a
// nullary constructor (spec §6's optPayload).
type Make struct {
	Ctor    string
	Payload Expr
}

func (Make) isExpr() {}

// Clause is one arm of a Match.
type Clause struct {
	Pattern Pattern
	Body    Expr
}

// Match dispatches on Scrutinee's shape; Default is nil when Clauses are
// already exhaustive (spec §6's optDefault).
type Match struct {
	Scrutinee Expr
	Clauses   []Clause
	Default   Expr
}

func (Match) isExpr() {}

// Ref allocates a fresh mutable cell holding Init.
type Ref struct{ Init Expr }

func (Ref) isExpr() {}

// Deref reads a ref cell's current contents (`!cell`).
type Deref struct{ Cell Expr }

func (Deref) isExpr() {}

// Assign stores Value into Cell (`cell := value`), an imperative
// expression of type unit.
type Assign struct {
	Cell, Value Expr
}

func (Assign) isExpr() {}

// RawExpr escapes to literal target source text for a whole expression —
// used for the runtime primitives this layer references by name but does
// not itself implement (lift, nested, here, fresh, withRegion) and for
// raising the Hole exception.
type RawExpr struct{ Text string }

func (RawExpr) isExpr() {}

// RawValue is RawExpr's atomic counterpart: a single hard-coded runtime
// name used as a value (unitVal, trueVal, falseVal), never itself an
// application.
type RawValue struct{ Text string }

func (RawValue) isExpr() {}

// MLString is a string literal; Value is the unescaped Go string, escaped
// to target syntax by the emitter.
type MLString struct{ Value string }

func (MLString) isExpr() {}

// Param is one parameter of a Lambda or FunBind: either a plain name
// (Named) or a pattern to destructure (Patterned), per spec §6.
type Param interface {
	isParam()
}

// Named is a parameter bound by name.
type Named struct{ Name string }

func (Named) isParam() {}

// Patterned is a parameter destructured by Pattern.
type Patterned struct{ Pattern Pattern }

func (Patterned) isParam() {}
