// Package types is the algebraic data model for value types, block types,
// effects, and capture sets (spec §3). It has no parser and no I/O surface:
// every constructor here is pure data plus the substitution/equality
// operations the unifier and typer need.
package types

import (
	"fmt"
	"strings"

	"github.com/efflang/ec/pkg/symbols"
)

// ValueType is any of the variants in spec §3: Var, UnificationVar,
// Constructor, Boxed, Builtin, TypeAlias, Bottom.
type ValueType interface {
	fmt.Stringer
	// Apply substitutes unification variables per subs, returning a
	// (possibly identical) ValueType.
	Apply(Subs) ValueType
	// FreeVars returns the unification variables occurring in this type.
	FreeVars() VarSet
	// isValueType is unexported so only this package can add variants,
	// matching spec §9's "model IR nodes as tagged variants" discipline.
	isValueType()
}

// Var is a rigid, bound type variable — e.g. an existential introduced at a
// handler site, or a data/interface type parameter.
type Var struct {
	Sym symbols.Symbol
}

func (Var) isValueType()            {}
func (v Var) String() string        { return v.Sym.Name }
func (v Var) Apply(Subs) ValueType  { return v }
func (v Var) FreeVars() VarSet      { return nil }

// UnificationVar is a metavariable created by the unifier within some scope
// (spec §4.2). It is solved, promoted, or reported escaping when its
// creating scope closes.
type UnificationVar struct {
	ID    int64
	Scope int
}

func (UnificationVar) isValueType() {}
func (u UnificationVar) String() string {
	return fmt.Sprintf("?%d@%d", u.ID, u.Scope)
}
func (u UnificationVar) Apply(s Subs) ValueType {
	if t, ok := s.Lookup(u.ID); ok {
		return t.Apply(s)
	}
	return u
}
func (u UnificationVar) FreeVars() VarSet { return VarSet{u.ID: {}} }

// Constructor applies a type constructor (a TypeSymbol) to argument types.
// Constructors are invariant in their arguments (spec §4.2).
type Constructor struct {
	Sym  symbols.Symbol
	Args []ValueType
}

func (Constructor) isValueType() {}
func (c Constructor) String() string {
	if len(c.Args) == 0 {
		return c.Sym.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", c.Sym.Name, strings.Join(parts, ", "))
}
func (c Constructor) Apply(s Subs) ValueType {
	args := make([]ValueType, len(c.Args))
	changed := false
	for i, a := range c.Args {
		args[i] = a.Apply(s)
		if args[i].String() != a.String() {
			changed = true
		}
	}
	if !changed {
		return c
	}
	return Constructor{Sym: c.Sym, Args: args}
}
func (c Constructor) FreeVars() VarSet {
	var out VarSet
	for _, a := range c.Args {
		out = out.Union(a.FreeVars())
	}
	return out
}

// Boxed is the first-class value form of a second-class block: Box(b)
// produces a Boxed carrying the block's function type and the capture set
// it closes over (spec §4.3 "blocks are not first-class values; use Box").
type Boxed struct {
	Block    *Function
	Captures CaptureSet
}

func (Boxed) isValueType() {}
func (b Boxed) String() string {
	return fmt.Sprintf("Boxed[%s]%s", b.Block.String(), b.Captures.String())
}
func (b Boxed) Apply(s Subs) ValueType {
	block := b.Block.Apply(s)
	captures := b.Captures.Apply(s)
	if block == b.Block && captures.Equal(b.Captures) {
		return b
	}
	return Boxed{Block: block, Captures: captures}
}
// FreeVars returns only the value unification variables free in b. Capture
// unification variables live in a separate id space (see CaptureFreeVars)
// and must not be merged into the same VarSet: both start numbering at
// zero, so a naive union would make unrelated variables alias.
func (b Boxed) FreeVars() VarSet {
	return b.Block.FreeVars()
}

// Builtin enumerates the primitive value types.
type Builtin int

const (
	IntType Builtin = iota
	BoolType
	UnitType
	DoubleType
	StringType
)

func (b Builtin) isValueType() {}
func (b Builtin) String() string {
	switch b {
	case IntType:
		return "Int"
	case BoolType:
		return "Bool"
	case UnitType:
		return "Unit"
	case DoubleType:
		return "Double"
	case StringType:
		return "String"
	default:
		return "<builtin?>"
	}
}
func (b Builtin) Apply(Subs) ValueType { return b }
func (b Builtin) FreeVars() VarSet     { return nil }

// TypeAlias is a named, parameterized alias over another ValueType. Aliases
// must be dealiased (see Dealias) before any comparison or unification;
// spec §3 requires that no alias survive into a concrete type.
type TypeAlias struct {
	Name    string
	TParams []symbols.Symbol
	RHS     ValueType
	// Args, when non-nil, are the instantiation arguments at this
	// occurrence (an alias used unapplied, e.g. as a bare name, has no
	// Args and dealiases via its own TParams-as-identity).
	Args []ValueType
}

func (TypeAlias) isValueType() {}
func (a TypeAlias) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s[%s]", a.Name, strings.Join(parts, ", "))
}
func (a TypeAlias) Apply(s Subs) ValueType {
	args := make([]ValueType, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.Apply(s)
	}
	return TypeAlias{Name: a.Name, TParams: a.TParams, RHS: a.RHS, Args: args}
}
func (a TypeAlias) FreeVars() VarSet {
	var out VarSet
	for _, arg := range a.Args {
		out = out.Union(arg.FreeVars())
	}
	return out
}

// Bottom is the type of expressions that never return (e.g. Hole).
// It is a subtype of every ValueType.
type Bottom struct{}

func (Bottom) isValueType()        {}
func (Bottom) String() string      { return "Bottom" }
func (Bottom) Apply(Subs) ValueType { return Bottom{} }
func (Bottom) FreeVars() VarSet     { return nil }
