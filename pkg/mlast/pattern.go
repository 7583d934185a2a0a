package mlast

// Pattern is a target-level pattern, matched left to right by a Match
// clause or used to destructure a Patterned parameter.
type Pattern interface {
	isPattern()
}

// WildPat ("_") matches anything and binds nothing.
type WildPat struct{}

func (WildPat) isPattern() {}

// VarPat binds the scrutinee to Name.
type VarPat struct{ Name string }

func (VarPat) isPattern() {}

// LitPat matches a literal value, already rendered to target syntax by the
// transformer (it knows the literal's own formatting rules; this package
// only places the text).
type LitPat struct{ Text string }

func (LitPat) isPattern() {}

// CtorPat matches a datatype constructor application; Arg is nil for a
// nullary constructor.
type CtorPat struct {
	Ctor string
	Arg  Pattern
}

func (CtorPat) isPattern() {}

// TuplePat matches a tuple positionally: interface/record accessors use
// this to project one field by position out of a single-constructor
// datatype's tuple payload (spec §4.5.2's `(_, _, arg, _)`).
type TuplePat struct{ Elems []Pattern }

func (TuplePat) isPattern() {}
