package typectx

import (
	"log/slog"

	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// Database is a read-only, never-journaled table of symbols bound in other
// compilation units. It is consulted by Context only on a local miss, and
// it is never mutated by Restore — cross-module bindings don't participate
// in speculative overload resolution, since a symbol imported from an
// already-checked module cannot be in flux.
type Database struct {
	values   map[symbols.Symbol]types.ValueType
	blocks   map[symbols.Symbol]*types.Function
	captures map[symbols.Symbol]types.CaptureSet
}

// NewDatabase creates an empty cross-module database.
func NewDatabase() *Database {
	return &Database{
		values:   make(map[symbols.Symbol]types.ValueType),
		blocks:   make(map[symbols.Symbol]*types.Function),
		captures: make(map[symbols.Symbol]types.CaptureSet),
	}
}

// Publish exposes sym's value type to every Context that falls back to
// this database, once sym's owning module has finished checking.
func (d *Database) Publish(sym symbols.Symbol, t types.ValueType) {
	slog.Debug("publish value binding", "symbol", sym.Name, "type", t.String())
	d.values[sym] = t
}

// PublishBlock exposes sym's function type.
func (d *Database) PublishBlock(sym symbols.Symbol, f *types.Function) {
	slog.Debug("publish block binding", "symbol", sym.Name, "type", f.String())
	d.blocks[sym] = f
}

// PublishCapture exposes sym's capture set.
func (d *Database) PublishCapture(sym symbols.Symbol, cs types.CaptureSet) {
	slog.Debug("publish capture binding", "symbol", sym.Name, "captures", cs.String())
	d.captures[sym] = cs
}

func (d *Database) LookupValue(sym symbols.Symbol) (types.ValueType, bool) {
	t, ok := d.values[sym]
	return t, ok
}

func (d *Database) LookupFunctionType(sym symbols.Symbol) (*types.Function, bool) {
	f, ok := d.blocks[sym]
	return f, ok
}

func (d *Database) LookupCapture(sym symbols.Symbol) (types.CaptureSet, bool) {
	cs, ok := d.captures[sym]
	return cs, ok
}
