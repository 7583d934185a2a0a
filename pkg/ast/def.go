package ast

import (
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// Def is a top-level (or Scope-local) definition. The definition phase's
// precheck pass (spec §4.3) assigns a type to Symbol() directly from
// annotations when every part of a Def is annotated; its synth pass then
// re-walks Body (for FunDef) to check it against that assigned type.
type Def interface {
	isDef()
	Symbol() symbols.Symbol
	DeclaredSymbols() []symbols.Symbol
	ReferencedSymbols() []symbols.Symbol
	Walk(fn func(Node) bool)
}

// Param is a value parameter; Type is nil when the parameter has no
// annotation (precheck then cannot assemble a type for the owning Def
// without re-walking its body).
type Param struct {
	Sym  symbols.Symbol
	Type types.ValueType
}

// BlockParam is a block (second-class function) parameter.
type BlockParam struct {
	Sym  symbols.Symbol
	Type *types.Function
}

// FunDef is a `fun` definition with a body.
type FunDef struct {
	Sym     symbols.Symbol
	TParams []symbols.Symbol
	CParams []symbols.Symbol
	VParams []Param
	BParams []BlockParam
	Result  types.ValueType // nil if unannotated
	Effects types.Effects
	Body    Stmt
}

func (*FunDef) isDef()                      {}
func (d *FunDef) Symbol() symbols.Symbol     { return d.Sym }
func (d *FunDef) DeclaredSymbols() []symbols.Symbol {
	out := []symbols.Symbol{d.Sym}
	out = concat(out, d.TParams, d.CParams)
	for _, p := range d.VParams {
		out = append(out, p.Sym)
	}
	for _, b := range d.BParams {
		out = append(out, b.Sym)
	}
	return concat(out, d.Body.DeclaredSymbols())
}
func (d *FunDef) ReferencedSymbols() []symbols.Symbol { return d.Body.ReferencedSymbols() }
func (d *FunDef) Walk(fn func(Node) bool)             { d.Body.Walk(fn) }

// FullyAnnotated reports whether every value and block parameter, plus the
// result, carries a type annotation — the precheck pass's condition for
// assigning Sym a type without walking Body (spec §4.3).
func (d *FunDef) FullyAnnotated() bool {
	if d.Result == nil {
		return false
	}
	for _, p := range d.VParams {
		if p.Type == nil {
			return false
		}
	}
	for _, b := range d.BParams {
		if b.Type == nil {
			return false
		}
	}
	return true
}

// FunctionType assembles d's Function type from its annotations. Callers
// must check FullyAnnotated first.
func (d *FunDef) FunctionType() *types.Function {
	vparams := make([]types.ValueType, len(d.VParams))
	for i, p := range d.VParams {
		vparams[i] = p.Type
	}
	bparams := make([]*types.Function, len(d.BParams))
	for i, b := range d.BParams {
		bparams[i] = b.Type
	}
	return &types.Function{
		TParams: d.TParams,
		CParams: d.CParams,
		VParams: vparams,
		BParams: bparams,
		Result:  d.Result,
		Effects: d.Effects,
	}
}

// ExternFunDef declares a foreign function by its full type, with no body
// for the typer to check.
type ExternFunDef struct {
	Sym  symbols.Symbol
	Type *types.Function
}

func (*ExternFunDef) isDef()                          {}
func (d *ExternFunDef) Symbol() symbols.Symbol        { return d.Sym }
func (d *ExternFunDef) DeclaredSymbols() []symbols.Symbol { return []symbols.Symbol{d.Sym} }
func (d *ExternFunDef) ReferencedSymbols() []symbols.Symbol {
	return referencedTypeSymbols(d.Type.Result)
}
func (d *ExternFunDef) Walk(fn func(Node) bool) {}

// OpSig declares one operation of an effect interface. Bidirectional ops
// give their handler's resume a block-typed continuation (spec §4.3).
type OpSig struct {
	Op            symbols.Symbol
	Type          *types.Function
	Bidirectional bool
}

// EffectDef declares an effect interface.
type EffectDef struct {
	Sym     symbols.Symbol
	TParams []symbols.Symbol
	Ops     []OpSig
}

func (*EffectDef) isDef()                  {}
func (d *EffectDef) Symbol() symbols.Symbol { return d.Sym }
func (d *EffectDef) DeclaredSymbols() []symbols.Symbol {
	out := concat([]symbols.Symbol{d.Sym}, d.TParams)
	for _, op := range d.Ops {
		out = append(out, op.Op)
	}
	return out
}
func (d *EffectDef) ReferencedSymbols() []symbols.Symbol { return nil }
func (d *EffectDef) Walk(fn func(Node) bool)             {}

// Ctor is one constructor of a DataDef.
type Ctor struct {
	Sym    symbols.Symbol
	Fields []types.ValueType
}

// DataDef declares a sum type (spec §4.5.2 "Sum data type").
type DataDef struct {
	Sym     symbols.Symbol
	TParams []symbols.Symbol
	Ctors   []Ctor
}

func (*DataDef) isDef()                   {}
func (d *DataDef) Symbol() symbols.Symbol { return d.Sym }
func (d *DataDef) DeclaredSymbols() []symbols.Symbol {
	out := concat([]symbols.Symbol{d.Sym}, d.TParams)
	for _, c := range d.Ctors {
		out = append(out, c.Sym)
	}
	return out
}
func (d *DataDef) ReferencedSymbols() []symbols.Symbol {
	var out []symbols.Symbol
	for _, c := range d.Ctors {
		for _, f := range c.Fields {
			out = concat(out, referencedTypeSymbols(f))
		}
	}
	return out
}
func (d *DataDef) Walk(fn func(Node) bool) {}

// RecordField is one field of a RecordDef.
type RecordField struct {
	Sym  symbols.Symbol
	Type types.ValueType
}

// RecordDef declares a record type — a data type with exactly one
// constructor, whose fields each get an accessor function (spec §4.5.2).
type RecordDef struct {
	Sym     symbols.Symbol
	TParams []symbols.Symbol
	Fields  []RecordField
}

func (*RecordDef) isDef()                   {}
func (d *RecordDef) Symbol() symbols.Symbol { return d.Sym }
func (d *RecordDef) DeclaredSymbols() []symbols.Symbol {
	out := concat([]symbols.Symbol{d.Sym}, d.TParams)
	for _, f := range d.Fields {
		out = append(out, f.Sym)
	}
	return out
}
func (d *RecordDef) ReferencedSymbols() []symbols.Symbol {
	var out []symbols.Symbol
	for _, f := range d.Fields {
		out = concat(out, referencedTypeSymbols(f.Type))
	}
	return out
}
func (d *RecordDef) Walk(fn func(Node) bool) {}

// TypeDef declares a value-type alias.
type TypeDef struct {
	Sym     symbols.Symbol
	TParams []symbols.Symbol
	RHS     types.ValueType
}

func (*TypeDef) isDef()                   {}
func (d *TypeDef) Symbol() symbols.Symbol { return d.Sym }
func (d *TypeDef) DeclaredSymbols() []symbols.Symbol {
	return concat([]symbols.Symbol{d.Sym}, d.TParams)
}
func (d *TypeDef) ReferencedSymbols() []symbols.Symbol { return referencedTypeSymbols(d.RHS) }
func (d *TypeDef) Walk(fn func(Node) bool)             {}

// EffectAliasDef declares a named, possibly-parameterized set of effects.
type EffectAliasDef struct {
	Sym     symbols.Symbol
	TParams []symbols.Symbol
	Effs    types.Effects
}

func (*EffectAliasDef) isDef()                   {}
func (d *EffectAliasDef) Symbol() symbols.Symbol { return d.Sym }
func (d *EffectAliasDef) DeclaredSymbols() []symbols.Symbol {
	return concat([]symbols.Symbol{d.Sym}, d.TParams)
}
func (d *EffectAliasDef) ReferencedSymbols() []symbols.Symbol { return nil }
func (d *EffectAliasDef) Walk(fn func(Node) bool)             {}

// referencedTypeSymbols walks a ValueType collecting the TypeSymbols it
// mentions, used by the ReferencedSymbols methods of the definitions in
// this file.
func referencedTypeSymbols(t types.ValueType) []symbols.Symbol {
	switch v := t.(type) {
	case types.Var:
		return []symbols.Symbol{v.Sym}
	case types.Constructor:
		out := []symbols.Symbol{v.Sym}
		for _, a := range v.Args {
			out = concat(out, referencedTypeSymbols(a))
		}
		return out
	case types.Boxed:
		return referencedFunctionTypeSymbols(v.Block)
	case types.TypeAlias:
		var out []symbols.Symbol
		for _, a := range v.Args {
			out = concat(out, referencedTypeSymbols(a))
		}
		return out
	default:
		return nil
	}
}

func referencedFunctionTypeSymbols(f *types.Function) []symbols.Symbol {
	var out []symbols.Symbol
	for _, v := range f.VParams {
		out = concat(out, referencedTypeSymbols(v))
	}
	for _, b := range f.BParams {
		out = concat(out, referencedFunctionTypeSymbols(b))
	}
	return concat(out, referencedTypeSymbols(f.Result))
}
