package ir

import (
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// Extern is a foreign definition bound directly to target-level source
// text rather than lowered from a body (spec §6's "externs"). TParams
// non-empty or BType non-nil with a non-empty BParams list are both
// structural errors the ML Transformer rejects before it emits anything
// (spec §7: "polymorphic externs, higher-order externs").
type Extern struct {
	ID      symbols.Symbol
	TParams []symbols.Symbol
	Type    types.ValueType // set when ID is value-typed
	BType   *types.Function // set when ID is block-typed
	Target  string          // verbatim target-language source text
}

// Module is the Lifted IR's top-level compilation unit: the upstream
// contract the external lifter hands to the ML Transformer (spec §6).
// Path is used only by the emitter, to name the output file.
type Module struct {
	Path        string
	Decls       []Decl
	Externs     []Extern
	Definitions []Definition
}
