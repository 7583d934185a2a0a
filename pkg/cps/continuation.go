// Package cps is the two-level continuation abstraction the ML Transformer
// (pkg/mlback) lowers Lifted IR terms through (spec §4.4): a continuation
// is either inlined at transformation time (Static) or represented by a
// target-level expression the transformer must emit a call against
// (Dynamic), and a CPS value picks one target expression to produce once
// it is handed a continuation of either shape.
package cps

import "github.com/efflang/ec/pkg/mlast"

// Continuation is a place a CPS value's result can go: apply it to a
// value expression, or turn it into (or recover) a target-level function
// of its own, depending on which of Static/Dynamic it is.
type Continuation interface {
	// Apply feeds e into the continuation, producing the target expression
	// that runs "the rest of the computation" on e.
	Apply(e mlast.Expr) mlast.Expr

	// Reify returns a target expression denoting the continuation itself:
	// a Dynamic continuation already is one; a Static one is wrapped in a
	// fresh lambda so the rest of the computation can be named and reused.
	Reify() mlast.Expr

	// Reflect returns the continuation as a plain Go function from a value
	// expression to the target expression that applies it: a Static
	// continuation already is one; a Dynamic one is wrapped in a call.
	Reflect() func(mlast.Expr) mlast.Expr
}

// Static is a meta-level continuation: applying it runs Go code at
// transformation time rather than emitting a call, the same way
// hayabusa-cloud-kont's Cont[R,A] is itself a Go function rather than a
// reified value — the difference here is that a Static continuation
// additionally knows how to reify itself into a named target-level
// function when a join point needs to share it.
type Static struct {
	F func(mlast.Expr) mlast.Expr
}

func (s Static) Apply(e mlast.Expr) mlast.Expr { return s.F(e) }

func (s Static) Reify() mlast.Expr {
	a := freshName("k")
	return mlast.Lambda{Params: []mlast.Param{mlast.Named{Name: a}}, Body: s.F(mlast.Variable{Name: a})}
}

func (s Static) Reflect() func(mlast.Expr) mlast.Expr { return s.F }

// Dynamic is a continuation already reified as a target expression
// (typically a variable bound at an earlier join point); applying it
// emits a call against that expression.
type Dynamic struct {
	Expr mlast.Expr
}

func (d Dynamic) Apply(e mlast.Expr) mlast.Expr {
	return mlast.Call{Fn: d.Expr, Args: []mlast.Expr{e}}
}

func (d Dynamic) Reify() mlast.Expr { return d.Expr }

func (d Dynamic) Reflect() func(mlast.Expr) mlast.Expr {
	return func(e mlast.Expr) mlast.Expr { return mlast.Call{Fn: d.Expr, Args: []mlast.Expr{e}} }
}
