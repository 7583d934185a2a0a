package mlback

import (
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
	"github.com/efflang/ec/pkg/symbols"
)

// lowerDefinition lowers one Scope-level or top-level binding (spec
// §4.5.6): Let becomes a ValBind (or an AnonBind, for the wildcard form),
// and Def becomes a FunBind when its Block is a literal (so the bound
// name can recurse through itself) or an ordinary ValBind otherwise.
func (tr *transformer) lowerDefinition(d ir.Definition) mlast.Binding {
	switch n := d.(type) {
	case ir.Let:
		if n.ID == nil {
			return mlast.AnonBind{Expr: tr.lowerExpr(n.Expr)}
		}
		return mlast.ValBind{Name: tr.names.of(*n.ID), Expr: tr.lowerExpr(n.Expr)}
	case ir.Def:
		if lit, ok := n.Block.(ir.BlockLit); ok {
			return tr.lowerDefBlockLit(n.ID, lit)
		}
		return mlast.ValBind{Name: tr.names.of(n.ID), Expr: tr.lowerBlock(n.Block)}
	default:
		diag.Raise("unknown Definition %T", d)
		return nil
	}
}

func (tr *transformer) lowerDefBlockLit(id symbols.Symbol, lit ir.BlockLit) mlast.Binding {
	params, body := tr.lowerBlockLitShape(lit)
	return mlast.FunBind{Name: tr.names.of(id), Params: params, Body: body}
}
