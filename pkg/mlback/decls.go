package mlback

import (
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
)

// lowerDecl lowers one type declaration to the Bindings it contributes
// (spec §4.5.2): a record's datatype plus one accessor per field, a sum's
// datatype with one constructor per variant, or — for an Interface — the
// shared arity-indexed object shape, whose Bindings are empty once another
// interface of the same arity has already been declared.
func (tr *transformer) lowerDecl(d ir.Decl) []mlast.Binding {
	switch n := d.(type) {
	case ir.Data:
		return tr.lowerData(n)
	case ir.Interface:
		return tr.lowerInterface(n)
	default:
		diag.Raise("unknown Decl %T", d)
		return nil
	}
}

func (tr *transformer) lowerData(n ir.Data) []mlast.Binding {
	typeName := tr.names.of(n.ID)
	tparams := make([]string, len(n.TParams))
	for i, p := range n.TParams {
		tparams[i] = tr.names.of(p)
	}

	ctors := make([]mlast.DataCtor, len(n.Ctors))
	for i, c := range n.Ctors {
		ctors[i] = mlast.DataCtor{Name: tr.names.of(c.Sym), Payload: tr.fieldsPayload(c.Fields)}
		tr.ctors[c.Sym] = true
	}
	bindings := []mlast.Binding{mlast.DataBind{Name: typeName, TypeVars: tparams, Ctors: ctors}}

	if len(n.Ctors) == 1 {
		bindings = append(bindings, tr.recordAccessors(n.Ctors[0])...)
	}
	return bindings
}

// fieldsPayload builds a constructor's payload type: nil for a nullary
// constructor, the bare field type for exactly one field (spec §8's
// "single-field constructors omit tupling"), otherwise a tuple.
func (tr *transformer) fieldsPayload(fields []ir.DataField) mlast.Type {
	switch len(fields) {
	case 0:
		return nil
	case 1:
		return tr.lowerType(fields[0].Type)
	default:
		elems := make([]mlast.Type, len(fields))
		for i, f := range fields {
			elems[i] = tr.lowerType(f.Type)
		}
		return mlast.TyTuple{Elems: elems}
	}
}

// recordAccessors builds one accessor function per field of a
// single-constructor Data declaration, named after the field's own symbol
// so Select lowering (spec §4.5.5) calls exactly the function built here.
func (tr *transformer) recordAccessors(ctor ir.DataCtor) []mlast.Binding {
	ctorName := tr.names.of(ctor.Sym)
	arity := len(ctor.Fields)
	var out []mlast.Binding
	for i, f := range ctor.Fields {
		out = append(out, accessorBindingNamed(ctorName, tr.names.of(f.Sym), arity, i))
	}
	return out
}

func (tr *transformer) lowerInterface(n ir.Interface) []mlast.Binding {
	shape, bindings := tr.objects.shapeFor(len(n.Ops))
	tr.interfaceShapes[n.ID] = shape
	for i, op := range n.Ops {
		tr.opAccessors[op.Op] = accessorRef{shape: shape, index: i}
	}
	return bindings
}
