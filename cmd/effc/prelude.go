package main

import (
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/typectx"
	"github.com/efflang/ec/pkg/types"
)

// prelude bundles the small set of built-in bindings published into every
// typectx.Context's fallback database, plus the symbols fixtures.go uses
// to reference them from a Call's IdTarget layer. Symbol identity is by
// creation, not by name (pkg/symbols), so a fixture that wants to call
// "add" must close over the exact Symbol minted here, not re-mint one.
type prelude struct {
	Add   symbols.Symbol
	Eq    symbols.Symbol
	Print symbols.Symbol
}

// buildPrelude publishes a handful of externally-resolved bindings into a
// fresh Database, standing in for the Prelude the front end (out of
// scope for this repo) would otherwise seed a compilation unit's
// typectx.Context with.
func buildPrelude() (*typectx.Database, prelude) {
	db := typectx.NewDatabase()

	p := prelude{
		Add:   symbols.New("add", symbols.BlockSymbol),
		Eq:    symbols.New("eq", symbols.BlockSymbol),
		Print: symbols.New("print", symbols.BlockSymbol),
	}

	db.PublishBlock(p.Add, &types.Function{
		VParams: []types.ValueType{types.IntType, types.IntType},
		Result:  types.IntType,
	})
	db.PublishBlock(p.Eq, &types.Function{
		VParams: []types.ValueType{types.IntType, types.IntType},
		Result:  types.BoolType,
	})
	db.PublishBlock(p.Print, &types.Function{
		VParams: []types.ValueType{types.StringType},
		Result:  types.UnitType,
	})

	return db, p
}
