package types

import (
	"fmt"
	"strings"

	"github.com/efflang/ec/pkg/symbols"
)

// BlockType is either a Function (spec §3's "Function(tparams, cparams,
// vparams, bparams, result, effects)") or an Interface (a capability type).
type BlockType interface {
	fmt.Stringer
	FreeVars() VarSet
	isBlockType()
}

// Function is the type of a second-class block: its own type parameters,
// capture parameters, value parameters, nested block parameters, result
// type, and the effects it performs.
type Function struct {
	TParams []symbols.Symbol
	CParams []symbols.Symbol
	VParams []ValueType
	BParams []*Function
	Result  ValueType
	Effects Effects
}

func (*Function) isBlockType() {}

func (f *Function) String() string {
	vparts := make([]string, len(f.VParams))
	for i, v := range f.VParams {
		vparts[i] = v.String()
	}
	bparts := make([]string, len(f.BParams))
	for i, b := range f.BParams {
		bparts[i] = fmt.Sprintf("{%s}", b.String())
	}
	tparts := make([]string, len(f.TParams))
	for i, t := range f.TParams {
		tparts[i] = t.Name
	}
	prefix := ""
	if len(tparts) > 0 {
		prefix = fmt.Sprintf("[%s]", strings.Join(tparts, ", "))
	}
	params := append(append([]string{}, vparts...), bparts...)
	eff := ""
	if !f.Effects.Empty() {
		eff = fmt.Sprintf(" / %s", f.Effects.String())
	}
	return fmt.Sprintf("%s(%s): %s%s", prefix, strings.Join(params, ", "), f.Result.String(), eff)
}

// Apply substitutes within a Function, preserving its concrete *Function
// type so callers in pkg/unify and pkg/typer don't need a type assertion
// on every use (the overwhelmingly common case — most substitution targets
// in the typer are known to be Functions, not arbitrary BlockTypes).
func (f *Function) Apply(s Subs) *Function {
	vparams := make([]ValueType, len(f.VParams))
	for i, v := range f.VParams {
		vparams[i] = v.Apply(s)
	}
	bparams := make([]*Function, len(f.BParams))
	for i, b := range f.BParams {
		bparams[i] = b.Apply(s)
	}
	return &Function{
		TParams: f.TParams,
		CParams: f.CParams,
		VParams: vparams,
		BParams: bparams,
		Result:  f.Result.Apply(s),
		Effects: f.Effects.Apply(s),
	}
}

func (f *Function) FreeVars() VarSet {
	out := f.Result.FreeVars()
	for _, v := range f.VParams {
		out = out.Union(v.FreeVars())
	}
	for _, b := range f.BParams {
		out = out.Union(b.FreeVars())
	}
	out = out.Union(f.Effects.FreeVars())
	return out
}

// Arity is the number of value parameters plus block parameters. Nothing
// in this module calls it.
func (f *Function) Arity() int { return len(f.VParams) + len(f.BParams) }

// Interface is a capability type: an effect-operation interface symbol
// applied to type arguments.
type Interface struct {
	Sym  symbols.Symbol
	Args []ValueType
}

func (Interface) isBlockType() {}
func (i Interface) String() string {
	if len(i.Args) == 0 {
		return i.Sym.Name
	}
	parts := make([]string, len(i.Args))
	for j, a := range i.Args {
		parts[j] = a.String()
	}
	return fmt.Sprintf("%s[%s]", i.Sym.Name, strings.Join(parts, ", "))
}
func (i Interface) Apply(s Subs) BlockType {
	args := make([]ValueType, len(i.Args))
	for j, a := range i.Args {
		args[j] = a.Apply(s)
	}
	return Interface{Sym: i.Sym, Args: args}
}
func (i Interface) FreeVars() VarSet {
	var out VarSet
	for _, a := range i.Args {
		out = out.Union(a.FreeVars())
	}
	return out
}

var _ BlockType = (*Function)(nil)
var _ BlockType = Interface{}
