package cps

import "github.com/efflang/ec/pkg/mlast"

// CPS is a computation that has not yet picked where its result goes: give
// it a Continuation and it produces the target expression that runs to
// completion against it.
type CPS func(k Continuation) mlast.Expr

// identity is the continuation Run feeds to a CPS value, per hayabusa-
// cloud-kont's Return[R,A](a) = k(a): it hands back exactly what it was
// given.
func identity(e mlast.Expr) mlast.Expr { return e }

// Pure lifts an already-evaluated expression into CPS: applying any
// continuation to it is just applying the continuation.
func Pure(e mlast.Expr) CPS {
	return func(k Continuation) mlast.Expr { return k.Apply(e) }
}

// Inline wraps a builder that already knows how to consume a Continuation
// directly, for the cases — calls, matches, ifs — where the transformer
// needs full control over how its subterms interact with k rather than
// going through FlatMap/Pure.
func Inline(prog func(k Continuation) mlast.Expr) CPS { return CPS(prog) }

// Join is like Inline, but first forces a Static continuation to be named:
// it let-binds k as a fresh target-level function and hands prog a Dynamic
// continuation pointing at that binding. Control-flow joins (if, match,
// shift) call this instead of Inline so that each branch applies the same
// named continuation rather than inlining (and duplicating) its code once
// per branch.
func Join(prog func(k Continuation) mlast.Expr) CPS {
	return func(k Continuation) mlast.Expr {
		if _, alreadyDynamic := k.(Dynamic); alreadyDynamic {
			return prog(k)
		}
		name := freshName("k")
		named := Dynamic{Expr: mlast.Variable{Name: name}}
		return mlast.Let{
			Bindings: []mlast.Binding{mlast.ValBind{Name: name, Expr: k.Reify()}},
			Body:     prog(named),
		}
	}
}

// FlatMap sequences prog into f: run prog with a Static continuation that,
// once prog produces a value a, hands a to f and applies the resulting
// computation to the original k. This is the combinator Val/App lowering
// uses to sequence one term's result into the next (spec §4.5.3).
func (prog CPS) FlatMap(f func(a mlast.Expr) CPS) CPS {
	return func(k Continuation) mlast.Expr {
		return prog(Static{F: func(a mlast.Expr) mlast.Expr {
			return f(a)(k)
		}})
	}
}

// Run closes prog off with the identity continuation, for the one place
// the transformer is allowed to assume prog is effect-free and just wants
// the resulting pure expression (spec §4.4's run, mirrored by pkg/ir's Run
// node at the IR level).
func (prog CPS) Run() mlast.Expr {
	return prog(Static{F: identity})
}

// Reset runs prog to completion under a fresh prompt and re-presents the
// result as a Pure computation at the enclosing level, the CPS-combinator
// half of installing a delimiter (hayabusa-cloud-kont's
// Reset(m) = Return(Run(m))); the other half — actually emitting the call
// against the handler's evidence-list argument — is the ML Transformer's
// job when it lowers a Try term (spec §4.5.4), not this combinator's.
func Reset(prog CPS) CPS {
	return Pure(prog.Run())
}

// LiftStep is one step of threading a computation across an evidence
// boundary (one enclosing Try, Region, or evidence-carrying block
// parameter); pkg/mlback's evidence lowering builds the concrete steps
// from an ir.Evidence path, this package only knows how to fold them.
type LiftStep func(CPS) CPS

// Lift threads m through each step in turn, outermost first, the
// combinator form of spec §4.4's "lift(evidence, m) — threads m through a
// list of evidence lifts".
func Lift(steps []LiftStep, m CPS) CPS {
	out := m
	for _, step := range steps {
		out = step(out)
	}
	return out
}
