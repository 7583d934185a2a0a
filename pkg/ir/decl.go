package ir

import (
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// Decl is a module-level declaration that introduces a type, as opposed
// to a Definition which introduces a value or block. The ML Transformer
// elaborates these once per shape (by arity) rather than once per
// declaration (spec §4.5.2).
type Decl interface {
	isDecl()
}

// DataField is one field of a DataCtor: Sym names the record accessor the
// ML Transformer builds for it (unused for a sum variant's positional
// fields, which have no accessor), Type is the field's value type.
type DataField struct {
	Sym  symbols.Symbol
	Type types.ValueType
}

// DataCtor is one constructor of a Data declaration. Fields carries a
// symbol per field so a record declaration's accessor functions (spec
// §4.5.2) can be named consistently with the Select nodes that call them.
type DataCtor struct {
	Sym    symbols.Symbol
	Fields []DataField
}

// Data declares a sum type.
type Data struct {
	ID      symbols.Symbol
	TParams []symbols.Symbol
	Ctors   []DataCtor
}

func (Data) isDecl() {}

// InterfaceOp is one operation signature of an Interface declaration.
type InterfaceOp struct {
	Op   symbols.Symbol
	Type *types.Function
}

// Interface declares an effect's operation signatures, lowered to the
// object shape an implementation value (New, HandlerImpl) must match.
type Interface struct {
	ID      symbols.Symbol
	TParams []symbols.Symbol
	Ops     []InterfaceOp
}

func (Interface) isDecl() {}
