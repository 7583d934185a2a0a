package mlback

import (
	"github.com/efflang/ec/pkg/cps"
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
)

// lowerTerm CPS-lowers one statement-level node through pkg/cps's
// combinators, following spec §4.5.3's equation for each Term variant
// exactly.
func (tr *transformer) lowerTerm(t ir.Term) cps.CPS {
	switch n := t.(type) {
	case ir.Return:
		return cps.Pure(tr.lowerExpr(n.Value))
	case ir.App:
		return tr.lowerApp(n)
	case ir.If:
		return tr.lowerIf(n)
	case ir.Val:
		return tr.lowerVal(n)
	case ir.Match:
		return tr.lowerMatch(n)
	case ir.Hole:
		return cps.Inline(func(cps.Continuation) mlast.Expr {
			return mlast.RawExpr{Text: "raise Hole"}
		})
	case ir.Scope:
		return tr.lowerScope(n)
	case ir.State:
		return tr.lowerState(n)
	case ir.Try:
		return tr.lowerTry(n)
	case ir.Shift:
		return tr.lowerShift(n)
	case ir.Region:
		return tr.lowerRegion(n)
	default:
		diag.Raise("unknown Term %T", t)
		return nil
	}
}

// lowerApp lowers an ordinary effectful call: "inline(k ↦ call(⟦b⟧,
// ⟦args⟧ ++ [k.reify]))", except for the two syntactically-recognised
// state accesses, which never reach the general case (spec §4.5.3).
func (tr *transformer) lowerApp(n ir.App) cps.CPS {
	if e, ok := tr.tryStateGet(n); ok {
		return cps.Pure(e)
	}
	if e, ok := tr.tryStatePut(n); ok {
		return cps.Pure(e)
	}
	return cps.Inline(func(k cps.Continuation) mlast.Expr {
		args := make([]mlast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = tr.lowerExpr(a)
		}
		args = append(args, k.Reify())
		return mlast.Call{Fn: tr.lowerBlock(n.Block), Args: args}
	})
}

// tryStateGet recognises App(Member(x, get), _, [ev]) and lowers it to a
// plain dereference, ignoring ev: state cells are already accessible
// without going through the evidence machinery (spec §4.5.3).
func (tr *transformer) tryStateGet(n ir.App) (mlast.Expr, bool) {
	member, ok := n.Block.(ir.Member)
	if !ok || member.Op.Name != "get" || len(n.Args) != 1 {
		return nil, false
	}
	recv, ok := member.Receiver.(ir.BlockVar)
	if !ok {
		return nil, false
	}
	return mlast.Deref{Cell: mlast.Variable{Name: tr.names.of(recv.Sym)}}, true
}

// tryStatePut recognises App(Member(x, put), _, [ev, v]) and lowers it to
// an assignment, ignoring ev for the same reason tryStateGet does.
func (tr *transformer) tryStatePut(n ir.App) (mlast.Expr, bool) {
	member, ok := n.Block.(ir.Member)
	if !ok || member.Op.Name != "put" || len(n.Args) != 2 {
		return nil, false
	}
	recv, ok := member.Receiver.(ir.BlockVar)
	if !ok {
		return nil, false
	}
	return mlast.Assign{
		Cell:  mlast.Variable{Name: tr.names.of(recv.Sym)},
		Value: tr.lowerExpr(n.Args[1]),
	}, true
}

// lowerIf joins both branches on a single named continuation so neither
// branch duplicates whatever comes after the If (spec §4.5.3).
func (tr *transformer) lowerIf(n ir.If) cps.CPS {
	return cps.Join(func(k cps.Continuation) mlast.Expr {
		return mlast.If{
			Cond: tr.lowerExpr(n.Cond),
			Then: tr.lowerTerm(n.Then)(k),
			Else: tr.lowerTerm(n.Else)(k),
		}
	})
}

// lowerVal sequences Bound's result into Body: "⟦b⟧.flatMap(v ↦ inline(k ↦
// let x = v in ⟦body⟧(k)))" (spec §4.5.3).
func (tr *transformer) lowerVal(n ir.Val) cps.CPS {
	return tr.lowerTerm(n.Bound).FlatMap(func(v mlast.Expr) cps.CPS {
		return cps.Inline(func(k cps.Continuation) mlast.Expr {
			return mlast.Let{
				Bindings: []mlast.Binding{mlast.ValBind{Name: tr.names.of(n.ID), Expr: v}},
				Body:     tr.lowerTerm(n.Body)(k),
			}
		})
	})
}

// lowerMatch joins every clause and the default on a single named
// continuation, the same reasoning as lowerIf (spec §4.5.3).
func (tr *transformer) lowerMatch(n ir.Match) cps.CPS {
	return cps.Join(func(k cps.Continuation) mlast.Expr {
		clauses := make([]mlast.Clause, len(n.Clauses))
		for i, c := range n.Clauses {
			clauses[i] = mlast.Clause{Pattern: tr.lowerPattern(c.Pattern), Body: tr.lowerTerm(c.Body)(k)}
		}
		var def mlast.Expr
		if n.Default != nil {
			def = tr.lowerTerm(n.Default)(k)
		}
		return mlast.Match{Scrutinee: tr.lowerExpr(n.Scrutinee), Clauses: clauses, Default: def}
	})
}

// lowerScope topologically orders its Defs (order.go), then lets them in
// ahead of Body: "inline(k ↦ let [sorted defs] in ⟦body⟧(k))" (spec
// §4.5.1, §4.5.3). A dependency cycle aborts the whole pass immediately.
func (tr *transformer) lowerScope(n ir.Scope) cps.CPS {
	return cps.Inline(func(k cps.Continuation) mlast.Expr {
		ordered, err := orderDefinitions(n.Definitions)
		if err != nil {
			raiseFatal(err)
		}
		bindings := make([]mlast.Binding, len(ordered))
		for i, d := range ordered {
			bindings[i] = tr.lowerDefinition(d)
		}
		return mlast.Let{Bindings: bindings, Body: tr.lowerTerm(n.Body)(k)}
	})
}

// lowerState declares a mutable cell, choosing ref or the runtime's region
// allocator by where it lives (spec §4.5.3). The Evidence field is not
// consulted — per the state-get/put rule, cells are already accessible
// without it.
func (tr *transformer) lowerState(n ir.State) cps.CPS {
	return cps.Inline(func(k cps.Continuation) mlast.Expr {
		init := tr.lowerExpr(n.Init)
		var bound mlast.Expr
		if n.Region.Global {
			bound = mlast.Ref{Init: init}
		} else {
			bound = mlast.Call{
				Fn:   mlast.Variable{Name: "fresh"},
				Args: []mlast.Expr{mlast.Variable{Name: tr.names.of(n.Region.Sym)}, init},
			}
		}
		return mlast.Let{
			Bindings: []mlast.Binding{mlast.ValBind{Name: tr.names.of(n.ID), Expr: bound}},
			Body:     tr.lowerTerm(n.Body)(k),
		}
	})
}

// lowerTry installs Handlers around Body under a fresh prompt: Body is
// lowered to a lambda over its own declared evidence parameter(s) (so a
// nested Shift's LiftVar has something to bind to), its inner term is run
// to completion under the identity continuation (the "reset" half), and
// that lambda is called with the runtime's lift primitive followed by
// each handler value in turn (spec §4.5.3's "call(reset(call(⟦body⟧,
// [liftOp] ++ ⟦handlers⟧)), [k.reify])"; spec §8 scenario 4 is this rule
// with Handlers=[], reducing to λk. k(reset(body(lift)))).
func (tr *transformer) lowerTry(n ir.Try) cps.CPS {
	return cps.Inline(func(k cps.Continuation) mlast.Expr {
		params := make([]mlast.Param, len(n.Body.Params))
		for i, p := range n.Body.Params {
			params[i] = mlast.Named{Name: tr.names.of(p.Sym)}
		}
		bodyFn := mlast.Lambda{Params: params, Body: cps.Reset(tr.lowerTerm(n.Body.Body)).Run()}

		args := []mlast.Expr{mlast.Variable{Name: "lift"}}
		for _, h := range n.Handlers {
			args = append(args, tr.lowerHandlerImpl(h))
		}
		return k.Apply(mlast.Call{Fn: bodyFn, Args: args})
	})
}

// lowerHandlerImpl assembles a handler's implementation value exactly as
// New would, then threads it through the Evidence the IR says this
// handler's own operations need to reach their own effect's implementation
// (the same lift(evidence, value) idiom lowerShift uses), so a handler
// installed deeper than its effect's home scope still resolves correctly.
func (tr *transformer) lowerHandlerImpl(h ir.HandlerImpl) mlast.Expr {
	shape := tr.shapeOf(h.Interface)
	made := mlast.Make{Ctor: shape.typeName, Payload: tupleIfMultiple(tr.lowerOpImpls(h.Ops))}
	if len(h.Evidence) == 0 {
		return made
	}
	return mlast.Call{
		Fn:   mlast.Variable{Name: "lift"},
		Args: []mlast.Expr{tr.lowerEvidence(h.Evidence), made},
	}
}

// lowerShift captures the continuation up to the nearest enclosing Try's
// prompt by handing the runtime's lift primitive Evidence and a lambda
// binding that capture (spec §4.5.3's "lift(ev, inline(k1 ↦ let kparam =
// λ(ev, a). call(ev)(call(k1.reify)(a)) in ⟦body⟧.reify()))"). The lift
// call is returned through cps.Pure, so the ambient continuation at
// Shift's use site is applied to its result; k1 is the parameter of the
// lambda handed to lift, and kparam resumes through it.
func (tr *transformer) lowerShift(n ir.Shift) cps.CPS {
	if len(n.Block.Params) != 1 || n.Block.Params[0].IsBlock {
		diag.Raise("shift block must take exactly one value parameter")
	}
	kparamSym := n.Block.Params[0].Sym
	ev := tr.lowerEvidence(n.Evidence)

	k1 := tr.freshTmp()
	evLocal := tr.freshTmp()
	a := tr.freshTmp()
	kparamBody := mlast.Lambda{
		Params: []mlast.Param{mlast.Named{Name: evLocal}, mlast.Named{Name: a}},
		Body: mlast.Call{
			Fn: mlast.Variable{Name: evLocal},
			Args: []mlast.Expr{
				mlast.Call{Fn: mlast.Variable{Name: k1}, Args: []mlast.Expr{mlast.Variable{Name: a}}},
			},
		},
	}
	letBody := mlast.Let{
		Bindings: []mlast.Binding{mlast.ValBind{Name: tr.names.of(kparamSym), Expr: kparamBody}},
		Body:     tr.lowerTerm(n.Block.Body).Run(),
	}
	inlinePart := mlast.Lambda{Params: []mlast.Param{mlast.Named{Name: k1}}, Body: letBody}
	liftCall := mlast.Call{Fn: mlast.Variable{Name: "lift"}, Args: []mlast.Expr{ev, inlinePart}}
	return cps.Pure(liftCall)
}

// lowerRegion opens a fresh local region, handing Body a function of the
// new region handle (spec §4.5.3's "call(withRegion, [⟦body⟧])").
func (tr *transformer) lowerRegion(n ir.Region) cps.CPS {
	return cps.Inline(func(k cps.Continuation) mlast.Expr {
		regionFn := mlast.Lambda{
			Params: []mlast.Param{mlast.Named{Name: tr.names.of(n.Sym)}},
			Body:   tr.lowerTerm(n.Body).Run(),
		}
		call := mlast.Call{Fn: mlast.Variable{Name: "withRegion"}, Args: []mlast.Expr{regionFn}}
		return k.Apply(call)
	})
}
