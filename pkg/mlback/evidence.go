package mlback

import (
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
)

// lowerEvidence renders an Evidence path as the target expression a Shift
// composes against the runtime's prompt machinery (spec §4.5.4): empty is
// here, one step lowers directly, and more than one right-folds through
// nested.
func (tr *transformer) lowerEvidence(ev ir.Evidence) mlast.Expr {
	if len(ev) == 0 {
		return mlast.Variable{Name: "here"}
	}
	return tr.lowerEvidenceFrom(ev, 0)
}

func (tr *transformer) lowerEvidenceFrom(ev ir.Evidence, i int) mlast.Expr {
	step := tr.lowerLift(ev[i])
	if i == len(ev)-1 {
		return step
	}
	return mlast.Call{
		Fn:   mlast.Variable{Name: "nested"},
		Args: []mlast.Expr{step, tr.lowerEvidenceFrom(ev, i+1)},
	}
}

// lowerLift renders one Lift step. Try() and Reg() both reference the
// runtime's generic lift primitive by name — Reg() is deliberately aliased
// to the same primitive as Try() rather than given its own, an approximate
// treatment spec §9 flags as an open question rather than a resolved
// design. Var(x) references x's own evidence parameter directly.
func (tr *transformer) lowerLift(l ir.Lift) mlast.Expr {
	switch n := l.(type) {
	case ir.LiftTry:
		return mlast.Variable{Name: "lift"}
	case ir.LiftReg:
		return mlast.Variable{Name: "lift"}
	case ir.LiftVar:
		return mlast.Variable{Name: tr.names.of(n.Sym)}
	default:
		diag.Raise("unknown Lift %T", l)
		return nil
	}
}
