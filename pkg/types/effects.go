package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/efflang/ec/pkg/symbols"
)

// Effect is one element of an Effects row: an EffectInterface, an
// EffectBuiltin, an EffectBlockApp, or an EffectAlias (spec §3). Aliases must be dealiased
// before they are stored as part of a concrete Effects value.
type Effect interface {
	fmt.Stringer
	apply(Subs) Effect
	freeVars() VarSet
	isConcrete() bool
	// key identifies an effect for deduplication/set-equality purposes,
	// independent of String()'s human-readable form.
	key() string
}

// EffectInterface names an effect by the interface symbol implementing it
// (the common case: an effect is "the capability named by this interface").
type EffectInterface struct {
	Sym  symbols.Symbol
	Args []ValueType
}

func (e EffectInterface) String() string {
	if len(e.Args) == 0 {
		return e.Sym.Name
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", e.Sym.Name, strings.Join(parts, ", "))
}
func (e EffectInterface) apply(s Subs) Effect {
	args := make([]ValueType, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Apply(s)
	}
	return EffectInterface{Sym: e.Sym, Args: args}
}
func (e EffectInterface) freeVars() VarSet {
	var out VarSet
	for _, a := range e.Args {
		out = out.Union(a.FreeVars())
	}
	return out
}
func (e EffectInterface) isConcrete() bool {
	return len(e.freeVars()) == 0
}
func (e EffectInterface) key() string { return "iface:" + e.String() }

// EffectBuiltin names one of the handful of built-in effects the runtime
// always knows about (e.g. divergence, partiality) without an interface.
type EffectBuiltin struct {
	Name string
}

func (e EffectBuiltin) String() string         { return e.Name }
func (e EffectBuiltin) apply(Subs) Effect       { return e }
func (e EffectBuiltin) freeVars() VarSet        { return nil }
func (e EffectBuiltin) isConcrete() bool        { return true }
func (e EffectBuiltin) key() string             { return "builtin:" + e.Name }

// EffectBlockApp is an effect produced by applying a block-typed effect
// constructor (an interface parameterized by further block arguments) to
// arguments — used when handler bodies re-expose an inherited effect.
type EffectBlockApp struct {
	Iface symbols.Symbol
	Args  []ValueType
}

func (e EffectBlockApp) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Iface.Name, strings.Join(parts, ", "))
}
func (e EffectBlockApp) apply(s Subs) Effect {
	args := make([]ValueType, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Apply(s)
	}
	return EffectBlockApp{Iface: e.Iface, Args: args}
}
func (e EffectBlockApp) freeVars() VarSet {
	var out VarSet
	for _, a := range e.Args {
		out = out.Union(a.FreeVars())
	}
	return out
}
func (e EffectBlockApp) isConcrete() bool { return len(e.freeVars()) == 0 }
func (e EffectBlockApp) key() string      { return "blockapp:" + e.String() }

// EffectAlias is a named alias for a (possibly parameterized) set of
// effects. Like TypeAlias, it must be dealiased before a concrete Effects
// value may contain it; see Dealias.
type EffectAlias struct {
	Name    string
	TParams []symbols.Symbol
	Effs    Effects
	Args    []ValueType
}

func (e EffectAlias) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", e.Name, strings.Join(parts, ", "))
}
func (e EffectAlias) apply(s Subs) Effect {
	args := make([]ValueType, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Apply(s)
	}
	return EffectAlias{Name: e.Name, TParams: e.TParams, Effs: e.Effs, Args: args}
}
func (e EffectAlias) freeVars() VarSet {
	var out VarSet
	for _, a := range e.Args {
		out = out.Union(a.FreeVars())
	}
	return out
}
func (e EffectAlias) isConcrete() bool { return false }
func (e EffectAlias) key() string      { return "alias:" + e.String() }

// Effects is a deduplicated multiset of Effect elements (spec §3: "Effects
// is a multiset semantically, stored deduplicated"). A zero Effects is the
// empty row.
type Effects struct {
	elems []Effect
}

// NewEffects builds a deduplicated Effects row from a list of effects. It
// does not check concreteness: a row holding an EffectAlias or an effect
// whose arguments contain unification variables is built as given, and
// only Equal panics on such a row.
func NewEffects(effs ...Effect) Effects {
	var out Effects
	for _, e := range effs {
		out = out.add(e)
	}
	return out
}

func (e Effects) add(eff Effect) Effects {
	k := eff.key()
	for _, existing := range e.elems {
		if existing.key() == k {
			return e
		}
	}
	next := make([]Effect, len(e.elems)+1)
	copy(next, e.elems)
	next[len(e.elems)] = eff
	return Effects{elems: next}
}

// Union returns the deduplicated union of two Effects rows.
func (e Effects) Union(other Effects) Effects {
	out := e
	for _, eff := range other.elems {
		out = out.add(eff)
	}
	return out
}

// Minus returns e with every effect whose key appears in other removed —
// used by handler lowering's "effectsOut = (bodyEffs − handledSet) ∪ ..."
// (spec §4.3 Handlers).
func (e Effects) Minus(other Effects) Effects {
	remove := make(map[string]struct{}, len(other.elems))
	for _, eff := range other.elems {
		remove[eff.key()] = struct{}{}
	}
	var out Effects
	for _, eff := range e.elems {
		if _, drop := remove[eff.key()]; !drop {
			out = out.add(eff)
		}
	}
	return out
}

// Contains reports whether eff's key is among e's elements.
func (e Effects) Contains(eff Effect) bool {
	for _, existing := range e.elems {
		if existing.key() == eff.key() {
			return true
		}
	}
	return false
}

// Empty reports whether the row has no elements.
func (e Effects) Empty() bool { return len(e.elems) == 0 }

// Elems returns the row's elements in a stable (key-sorted) order.
func (e Effects) Elems() []Effect {
	out := append([]Effect{}, e.elems...)
	sort.Slice(out, func(i, j int) bool { return out[i].key() < out[j].key() })
	return out
}

// Concrete reports whether every element is concrete (spec §3's
// precondition for set-based equality).
func (e Effects) Concrete() bool {
	for _, eff := range e.elems {
		if !eff.isConcrete() {
			return false
		}
	}
	return true
}

// Equal compares two Effects rows as sets: effect constructors are
// invariant, so equality requires exactly the same key set (spec §4.2).
// Equal panics if either row is not concrete, per spec §3's stated
// precondition — callers must dealias/fully-solve before comparing.
func (e Effects) Equal(other Effects) bool {
	if !e.Concrete() || !other.Concrete() {
		panic("types: Effects.Equal called on a non-concrete effect row")
	}
	if len(e.elems) != len(other.elems) {
		return false
	}
	for _, eff := range e.elems {
		if !other.Contains(eff) {
			return false
		}
	}
	return true
}

func (e Effects) Apply(s Subs) Effects {
	if len(e.elems) == 0 {
		return e
	}
	var out Effects
	for _, eff := range e.elems {
		out = out.add(eff.apply(s))
	}
	return out
}

func (e Effects) FreeVars() VarSet {
	var out VarSet
	for _, eff := range e.elems {
		out = out.Union(eff.freeVars())
	}
	return out
}

func (e Effects) String() string {
	elems := e.Elems()
	parts := make([]string, len(elems))
	for i, eff := range elems {
		parts[i] = eff.String()
	}
	return strings.Join(parts, " + ")
}
