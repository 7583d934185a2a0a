package mlback

import (
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
)

// lowerPattern renders one Match clause's pattern. A TagPattern's fields
// are positional, the same tuple-payload convention DataCtor lowering
// uses for its constructors (spec §4.5.2).
func (tr *transformer) lowerPattern(p ir.Pattern) mlast.Pattern {
	switch n := p.(type) {
	case ir.IgnorePattern:
		return mlast.WildPat{}
	case ir.AnyPattern:
		return mlast.VarPat{Name: tr.names.of(n.Sym)}
	case ir.LiteralPattern:
		return mlast.LitPat{Text: mlast.EmitExpr(tr.lowerLiteral(n.Value))}
	case ir.TagPattern:
		return tr.lowerTagPattern(n)
	default:
		diag.Raise("unknown Pattern %T", p)
		return nil
	}
}

func (tr *transformer) lowerTagPattern(n ir.TagPattern) mlast.Pattern {
	if len(n.Nested) == 0 {
		return mlast.CtorPat{Ctor: tr.names.of(n.Ctor)}
	}
	var arg mlast.Pattern
	if len(n.Nested) == 1 {
		arg = tr.lowerPattern(n.Nested[0])
	} else {
		elems := make([]mlast.Pattern, len(n.Nested))
		for i, nested := range n.Nested {
			elems[i] = tr.lowerPattern(nested)
		}
		arg = mlast.TuplePat{Elems: elems}
	}
	return mlast.CtorPat{Ctor: tr.names.of(n.Ctor), Arg: arg}
}
