package mlback

import (
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/mlast"
	"github.com/efflang/ec/pkg/types"
)

// lowerType renders t as a DataBind constructor payload's type annotation
// (spec §6's optPayloadType). This is the only place in the transformer
// that touches types.ValueType's shape directly: once CPS lowering starts,
// every value is an untyped mlast.Expr and the target compiler's own
// inference takes over.
func (tr *transformer) lowerType(t types.ValueType) mlast.Type {
	switch n := types.Dealias(t).(type) {
	case types.Var:
		return mlast.TyVar{Name: tr.names.of(n.Sym)}
	case types.Constructor:
		args := make([]mlast.Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = tr.lowerType(a)
		}
		return mlast.TyCon{Name: tr.names.of(n.Sym), Args: args}
	case types.Builtin:
		return mlast.TyCon{Name: builtinName(n)}
	case types.Boxed:
		return mlast.TyCon{Name: "Boxed"}
	case types.Bottom:
		return mlast.TyVar{Name: "bottom"}
	case types.UnificationVar:
		diag.Raise("unresolved unification variable %s reached the ML Transformer", n)
		return nil
	default:
		diag.Raise("unknown ValueType %T reached the ML Transformer", t)
		return nil
	}
}

func builtinName(b types.Builtin) string {
	switch b {
	case types.IntType:
		return "int"
	case types.BoolType:
		return "bool"
	case types.UnitType:
		return "unit"
	case types.DoubleType:
		return "real"
	case types.StringType:
		return "string"
	default:
		diag.Raise("unknown builtin type %v", b)
		return ""
	}
}
