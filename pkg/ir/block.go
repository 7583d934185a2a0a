package ir

import (
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// Block is a second-class computation: a reference to one (BlockVar), a
// literal with a body (BlockLit), a projection out of an implementation
// (Member), the inverse of Box (Unbox), or a freshly assembled handler
// implementation (New).
type Block interface {
	isBlock()
}

// BlockVar references a bound block-typed symbol.
type BlockVar struct{ Sym symbols.Symbol }

func (BlockVar) isBlock() {}

// BlockLit is a block literal: TParams for polymorphic blocks, Params for
// its value/block arguments, Body its effect-sequencing term.
type BlockLit struct {
	TParams []symbols.Symbol
	Params  []Param
	Body    Term
}

func (BlockLit) isBlock() {}

// Param is one parameter of a BlockLit; IsBlock distinguishes a
// block-typed parameter (itself second-class) from a value-typed one.
type Param struct {
	Sym     symbols.Symbol
	Type    types.ValueType // set when !IsBlock
	BType   *types.Function // set when IsBlock
	IsBlock bool
}

// Member projects operation Op out of Receiver, an implementation value —
// the lowering of method-style effect-operation calls (spec §4.5.5).
type Member struct {
	Receiver Block
	Op       symbols.Symbol
	Type     *types.Function
}

func (Member) isBlock() {}

// Unbox recovers the block Box captured as a first-class value.
type Unbox struct{ Value Expr }

func (Unbox) isBlock() {}

// New assembles a fresh implementation value for an effect interface out
// of OpImpls, used where a handler is installed inline rather than via
// Try (e.g. New(Implementation) inside a Region's resource object).
type New struct {
	Interface symbols.Symbol
	TArgs     []types.ValueType
	Ops       []OpImpl
}

func (New) isBlock() {}
