package mlback

import (
	"fmt"

	"github.com/efflang/ec/pkg/mlast"
)

// objectShape is one arity's entry in the interface-sharing cache: the
// datatype name and the ordered accessor names every interface of that
// arity reuses (spec §4.5.2, §9's "interface-sharing by arity").
type objectShape struct {
	typeName  string
	accessors []string
}

// objectCache maps an interface's arity to the (Objectₙ, accessors) pair
// every interface of that arity shares. It is scoped to one transformer
// instance, matching spec §5's "torn down on return" discipline for
// back-end subscopes — nothing here is a package-level global.
type objectCache struct {
	byArity map[int]*objectShape
	arities []int // first-seen order, for deterministic DataBind emission
}

func newObjectCache() *objectCache {
	return &objectCache{byArity: make(map[int]*objectShape)}
}

// shapeFor returns the shared shape for arity n, emitting its datatype and
// accessor bindings into decls the first time this arity is seen. Later
// calls for the same arity only register the alias, per §4.5.2: "The first
// interface of a given arity emits its datatype; subsequent ones only
// register accessor aliases."
func (c *objectCache) shapeFor(n int) (*objectShape, []mlast.Binding) {
	if shape, ok := c.byArity[n]; ok {
		return shape, nil
	}

	typeName := fmt.Sprintf("Object%d", n)
	tparams := make([]string, n)
	accessors := make([]string, n)
	for i := 0; i < n; i++ {
		tparams[i] = fmt.Sprintf("a%d", i+1)
		accessors[i] = fmt.Sprintf("member%dof%d", i+1, n)
	}

	shape := &objectShape{typeName: typeName, accessors: accessors}
	c.byArity[n] = shape
	c.arities = append(c.arities, n)

	payload := tupleOfVars(tparams)
	dataBind := mlast.DataBind{
		Name:     typeName,
		TypeVars: tparams,
		Ctors:    []mlast.DataCtor{{Name: typeName, Payload: payload}},
	}

	bindings := []mlast.Binding{dataBind}
	for i, accessor := range accessors {
		bindings = append(bindings, accessorBindingNamed(typeName, accessor, n, i))
	}
	return shape, bindings
}

// tupleOfVars builds the payload type for an n-ary object: bare if n == 1
// (spec §8's boundary case: "single-field constructors omit tupling"),
// otherwise a tuple of type variables.
func tupleOfVars(tparams []string) mlast.Type {
	if len(tparams) == 1 {
		return mlast.TyVar{Name: tparams[0]}
	}
	elems := make([]mlast.Type, len(tparams))
	for i, p := range tparams {
		elems[i] = mlast.TyVar{Name: p}
	}
	return mlast.TyTuple{Elems: elems}
}

// accessorBindingNamed builds `fun memberᵢofₙ (Objectₙ (_,...,x,...,_)) = x`,
// the positional projection spec §4.5.2 describes for both the shared
// interface object and record accessors, under a caller-chosen
// function/field name, projecting field index (0-based) out of an
// arity-many single-constructor datatype.
func accessorBindingNamed(ctor, funcName string, arity, index int) mlast.Binding {
	const argName = "arg"
	var pat mlast.Pattern
	if arity == 1 {
		pat = mlast.VarPat{Name: argName}
	} else {
		elems := make([]mlast.Pattern, arity)
		for i := range elems {
			if i == index {
				elems[i] = mlast.VarPat{Name: argName}
			} else {
				elems[i] = mlast.WildPat{}
			}
		}
		pat = mlast.TuplePat{Elems: elems}
	}
	return mlast.FunBind{
		Name:   funcName,
		Params: []mlast.Param{mlast.Patterned{Pattern: mlast.CtorPat{Ctor: ctor, Arg: pat}}},
		Body:   mlast.Variable{Name: argName},
	}
}
