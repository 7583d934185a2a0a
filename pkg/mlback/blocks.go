package mlback

import (
	"github.com/efflang/ec/pkg/cps"
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
)

// lowerBlock lowers a second-class computation to the target expression
// that denotes it (spec §4.5.5).
func (tr *transformer) lowerBlock(b ir.Block) mlast.Expr {
	switch n := b.(type) {
	case ir.BlockVar:
		return mlast.Variable{Name: tr.names.of(n.Sym)}
	case ir.BlockLit:
		return tr.lowerBlockLit(n)
	case ir.Member:
		return tr.lowerMember(n)
	case ir.Unbox:
		return tr.lowerExpr(n.Value)
	case ir.New:
		return tr.lowerNew(n)
	default:
		diag.Raise("unknown Block %T", b)
		return nil
	}
}

// lowerBlockLitShape builds a BlockLit's parameter list (its own params
// plus a freshly named trailing continuation) and the body CPS-lowered
// against that continuation (spec §4.5.5: "λ(p1,...,pn,k). ⟦body⟧(Variable
// k)"). Shared by lowerBlockLit (an Expr) and lowerDefBlockLit (a Binding)
// so the two never drift apart.
func (tr *transformer) lowerBlockLitShape(b ir.BlockLit) ([]mlast.Param, mlast.Expr) {
	params := make([]mlast.Param, len(b.Params))
	for i, p := range b.Params {
		params[i] = mlast.Named{Name: tr.names.of(p.Sym)}
	}
	k := tr.freshTmp()
	params = append(params, mlast.Named{Name: k})
	body := tr.lowerTerm(b.Body)(cps.Dynamic{Expr: mlast.Variable{Name: k}})
	return params, body
}

func (tr *transformer) lowerBlockLit(b ir.BlockLit) mlast.Expr {
	params, body := tr.lowerBlockLitShape(b)
	return mlast.Lambda{Params: params, Body: body}
}

// lowerMember projects operation Op out of Receiver by calling the
// accessor shared by every interface of Op's declaring interface's arity
// (spec §4.5.2, §4.5.5).
func (tr *transformer) lowerMember(n ir.Member) mlast.Expr {
	ref, ok := tr.opAccessors[n.Op]
	if !ok {
		diag.Raise("operation %s has no registered accessor", n.Op.Name)
	}
	accessor := ref.shape.accessors[ref.index]
	return mlast.Call{Fn: mlast.Variable{Name: accessor}, Args: []mlast.Expr{tr.lowerBlock(n.Receiver)}}
}

// lowerNew assembles a fresh implementation value: one Lambda per
// operation, wrapped in the shared arity-indexed constructor (spec
// §4.5.5: "New(interface, targs, ops) → Make(Objectₐᵣᵢₜᵧ, tuple(⟦opᵢ⟧))").
func (tr *transformer) lowerNew(n ir.New) mlast.Expr {
	shape := tr.shapeOf(n.Interface)
	return mlast.Make{Ctor: shape.typeName, Payload: tupleIfMultiple(tr.lowerOpImpls(n.Ops))}
}

func (tr *transformer) lowerOpImpls(ops []ir.OpImpl) []mlast.Expr {
	out := make([]mlast.Expr, len(ops))
	for i, op := range ops {
		out[i] = tr.lowerBlockLit(op.Body)
	}
	return out
}
