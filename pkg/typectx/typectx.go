// Package typectx holds the typing context described in spec §9: every
// symbol occurrence in an annotated tree has its type recorded here, not on
// the symbol itself. It is backed by a journaled map rather than a
// persistent data structure: bindings are appended to a log, and Restore
// replays that log backwards to undo exactly what was added since a given
// Mark. This is what makes overload resolution's snapshot/try/rollback
// loop (§4.3.1) cheap.
package typectx

import (
	"log/slog"

	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

type entryKind int

const (
	valueEntry entryKind = iota
	blockEntry
	captureEntry
)

type logEntry struct {
	kind entryKind
	sym  symbols.Symbol

	prevValue   types.ValueType
	prevBlock   *types.Function
	prevCapture types.CaptureSet
	hadPrev     bool
}

// Context is the typing context: three symbol-keyed maps (value, block,
// capture) plus a lexically-scoped effect stack, backed by a journal for
// cheap snapshot/restore.
type Context struct {
	values   map[symbols.Symbol]types.ValueType
	blocks   map[symbols.Symbol]*types.Function
	captures map[symbols.Symbol]types.CaptureSet

	effectStack []types.Effects

	journal []logEntry

	fallback *Database
}

// New creates an empty Context. fallback, if non-nil, is consulted on a
// local miss — the cross-module lookup path for symbols bound in another
// compilation unit.
func New(fallback *Database) *Context {
	return &Context{
		values:   make(map[symbols.Symbol]types.ValueType),
		blocks:   make(map[symbols.Symbol]*types.Function),
		captures: make(map[symbols.Symbol]types.CaptureSet),
		fallback: fallback,
	}
}

// Mark is an opaque journal position returned by Backup and consumed by
// Restore.
type Mark int

// Backup returns the context's current journal position.
func (c *Context) Backup() Mark { return Mark(len(c.journal)) }

// Restore undoes every binding made since m, replaying the journal
// backwards so each entry's previous value (if any) is reinstated.
func (c *Context) Restore(m Mark) {
	for i := len(c.journal) - 1; i >= int(m); i-- {
		e := c.journal[i]
		switch e.kind {
		case valueEntry:
			if e.hadPrev {
				c.values[e.sym] = e.prevValue
			} else {
				delete(c.values, e.sym)
			}
		case blockEntry:
			if e.hadPrev {
				c.blocks[e.sym] = e.prevBlock
			} else {
				delete(c.blocks, e.sym)
			}
		case captureEntry:
			if e.hadPrev {
				c.captures[e.sym] = e.prevCapture
			} else {
				delete(c.captures, e.sym)
			}
		}
	}
	c.journal = c.journal[:m]
}

// BindValue records sym's ValueType.
func (c *Context) BindValue(sym symbols.Symbol, t types.ValueType) {
	slog.Debug("bind value", "symbol", sym.Name, "type", t.String())
	prev, had := c.values[sym]
	c.journal = append(c.journal, logEntry{kind: valueEntry, sym: sym, prevValue: prev, hadPrev: had})
	c.values[sym] = t
}

// BindBlock records sym's Function type.
func (c *Context) BindBlock(sym symbols.Symbol, f *types.Function) {
	slog.Debug("bind block", "symbol", sym.Name, "type", f.String())
	prev, had := c.blocks[sym]
	c.journal = append(c.journal, logEntry{kind: blockEntry, sym: sym, prevBlock: prev, hadPrev: had})
	c.blocks[sym] = f
}

// BindCapture records sym's capture set.
func (c *Context) BindCapture(sym symbols.Symbol, cs types.CaptureSet) {
	prev, had := c.captures[sym]
	c.journal = append(c.journal, logEntry{kind: captureEntry, sym: sym, prevCapture: prev, hadPrev: had})
	c.captures[sym] = cs
}

// LookupValue returns sym's ValueType, falling back to the cross-module
// database on a local miss.
func (c *Context) LookupValue(sym symbols.Symbol) (types.ValueType, bool) {
	if t, ok := c.values[sym]; ok {
		return t, true
	}
	if c.fallback != nil {
		return c.fallback.LookupValue(sym)
	}
	return nil, false
}

// LookupFunctionType returns sym's Function type, falling back to the
// cross-module database on a local miss. This is the lookup overload
// resolution (§4.3.1) uses to resolve each candidate's signature.
func (c *Context) LookupFunctionType(sym symbols.Symbol) (*types.Function, bool) {
	if f, ok := c.blocks[sym]; ok {
		return f, true
	}
	if c.fallback != nil {
		return c.fallback.LookupFunctionType(sym)
	}
	return nil, false
}

// LookupCapture returns sym's capture set, falling back to the cross-module
// database on a local miss.
func (c *Context) LookupCapture(sym symbols.Symbol) (types.CaptureSet, bool) {
	if cs, ok := c.captures[sym]; ok {
		return cs, true
	}
	if c.fallback != nil {
		return c.fallback.LookupCapture(sym)
	}
	return types.CaptureSet{}, false
}

// PushEffects enters a lexical region in which effs are ambient (e.g. the
// effects an enclosing handler body already has evidence for). It is the
// caller's responsibility to pair every PushEffects with a PopEffects; the
// effect stack is not part of the journal since it tracks lexical, not
// speculative, scope.
func (c *Context) PushEffects(effs types.Effects) {
	slog.Debug("enter lexical effect region", "effects", effs.String(), "depth", len(c.effectStack)+1)
	c.effectStack = append(c.effectStack, effs)
}

// PopEffects leaves the most recently pushed lexical effect region.
func (c *Context) PopEffects() {
	if len(c.effectStack) == 0 {
		panic("typectx: PopEffects with no matching PushEffects")
	}
	slog.Debug("leave lexical effect region", "depth", len(c.effectStack))
	c.effectStack = c.effectStack[:len(c.effectStack)-1]
}

// CurrentEffects returns the union of every effect row currently pushed on
// the lexical stack.
func (c *Context) CurrentEffects() types.Effects {
	var out types.Effects
	for _, e := range c.effectStack {
		out = out.Union(e)
	}
	return out
}
