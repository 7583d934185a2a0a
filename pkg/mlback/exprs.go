package mlback

import (
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
)

// lowerExpr lowers one pure value-producing node (spec §4.5.5).
func (tr *transformer) lowerExpr(e ir.Expr) mlast.Expr {
	switch n := e.(type) {
	case ir.ValueVar:
		return mlast.Variable{Name: tr.names.of(n.Sym)}
	case ir.Literal:
		return tr.lowerLiteral(n)
	case ir.PureApp:
		return tr.lowerPureApp(n)
	case ir.Select:
		return mlast.Call{Fn: mlast.Variable{Name: tr.names.of(n.Field)}, Args: []mlast.Expr{tr.lowerExpr(n.Record)}}
	case ir.Box:
		return tr.lowerBlock(n.Block)
	case ir.Run:
		return tr.lowerTerm(n.Stmt).Run()
	default:
		diag.Raise("unknown Expr %T", e)
		return nil
	}
}

func (tr *transformer) lowerLiteral(n ir.Literal) mlast.Expr {
	switch n.Kind {
	case ir.IntLiteral:
		return mlast.RawValue{Text: mlast.FormatInt(n.Int)}
	case ir.BoolLiteral:
		if n.Bool {
			return mlast.RawValue{Text: "trueVal"}
		}
		return mlast.RawValue{Text: "falseVal"}
	case ir.UnitLiteral:
		return mlast.RawValue{Text: "unitVal"}
	case ir.DoubleLiteral:
		return mlast.RawValue{Text: mlast.FormatFloat(n.Dbl)}
	case ir.StringLiteral:
		return mlast.MLString{Value: n.Str}
	default:
		diag.Raise("unknown LiteralKind %v", n.Kind)
		return nil
	}
}

// lowerPureApp distinguishes a constructor application, which Make must
// build, from an ordinary pure function call, which is just a Call — the
// two are only told apart by consulting tr.ctors, populated while lowering
// each Data declaration's constructors (decls.go), since precheckDefinitions
// binds both kinds of symbol through the same block-typed mechanism and
// Kind alone can't distinguish them.
func (tr *transformer) lowerPureApp(n ir.PureApp) mlast.Expr {
	args := make([]mlast.Expr, len(n.Args))
	for i, a := range n.Args {
		args[i] = tr.lowerExpr(a)
	}
	if tr.ctors[n.Ctor] {
		return mlast.Make{Ctor: tr.names.of(n.Ctor), Payload: tupleIfMultiple(args)}
	}
	return mlast.Call{Fn: mlast.Variable{Name: tr.names.of(n.Ctor)}, Args: args}
}

// tupleIfMultiple is the Make/Call payload convention shared by constructor
// application, New, and Try's handler installation: nil for zero arguments,
// the bare expression for exactly one, otherwise a Tuple.
func tupleIfMultiple(args []mlast.Expr) mlast.Expr {
	switch len(args) {
	case 0:
		return nil
	case 1:
		return args[0]
	default:
		return mlast.Tuple{Elems: args}
	}
}
