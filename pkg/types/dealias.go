package types

import "github.com/efflang/ec/pkg/symbols"

// Dealias expands t for as long as t itself is a TypeAlias, substituting
// each alias's declared type parameters for its instantiation arguments.
// An alias nested inside a Constructor's arguments or a Boxed block is
// left in place, unless it is reached while substituting an alias's
// parameters.
func Dealias(t ValueType) ValueType {
	alias, ok := t.(TypeAlias)
	if !ok {
		return t
	}
	return Dealias(substituteAliasParams(alias.RHS, alias.TParams, alias.Args))
}

// substituteAliasParams replaces each TParams[i] occurrence (as a Var) in
// rhs with args[i]. Aliases are rigid-parameterized, not unification-
// variable-parameterized, so this is a plain structural rewrite rather
// than a Subs application.
func substituteAliasParams(rhs ValueType, params []symbols.Symbol, args []ValueType) ValueType {
	if len(params) == 0 {
		return rhs
	}
	byName := make(map[string]ValueType, len(params))
	for i, p := range params {
		if i < len(args) {
			byName[p.Name] = args[i]
		}
	}
	return rewriteVars(rhs, byName)
}

func rewriteVars(t ValueType, byName map[string]ValueType) ValueType {
	switch v := t.(type) {
	case Var:
		if repl, ok := byName[v.Sym.Name]; ok {
			return repl
		}
		return v
	case Constructor:
		args := make([]ValueType, len(v.Args))
		for i, a := range v.Args {
			args[i] = rewriteVars(a, byName)
		}
		return Constructor{Sym: v.Sym, Args: args}
	case Boxed:
		return Boxed{Block: rewriteVarsInFunction(v.Block, byName), Captures: v.Captures}
	case TypeAlias:
		args := make([]ValueType, len(v.Args))
		for i, a := range v.Args {
			args[i] = rewriteVars(a, byName)
		}
		return Dealias(TypeAlias{Name: v.Name, TParams: v.TParams, RHS: v.RHS, Args: args})
	default:
		return t
	}
}

func rewriteVarsInFunction(f *Function, byName map[string]ValueType) *Function {
	vparams := make([]ValueType, len(f.VParams))
	for i, v := range f.VParams {
		vparams[i] = rewriteVars(v, byName)
	}
	return &Function{
		TParams: f.TParams,
		CParams: f.CParams,
		VParams: vparams,
		BParams: f.BParams,
		Result:  rewriteVars(f.Result, byName),
		Effects: f.Effects,
	}
}

// DealiasEffect expands an EffectAlias the same way Dealias expands a
// TypeAlias, returning the (possibly multi-element) Effects it stands for.
func DealiasEffect(e Effect) Effects {
	alias, ok := e.(EffectAlias)
	if !ok {
		return NewEffects(e)
	}
	byName := make(map[string]ValueType, len(alias.TParams))
	for i, p := range alias.TParams {
		if i < len(alias.Args) {
			byName[p.Name] = alias.Args[i]
		}
	}
	var out Effects
	for _, inner := range alias.Effs.Elems() {
		for _, expanded := range DealiasEffect(inner).Elems() {
			out = out.add(rewriteEffectVars(expanded, byName))
		}
	}
	return out
}

func rewriteEffectVars(e Effect, byName map[string]ValueType) Effect {
	switch v := e.(type) {
	case EffectInterface:
		args := make([]ValueType, len(v.Args))
		for i, a := range v.Args {
			args[i] = rewriteVars(a, byName)
		}
		return EffectInterface{Sym: v.Sym, Args: args}
	default:
		return e
	}
}
