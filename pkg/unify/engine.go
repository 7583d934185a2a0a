// Package unify implements the scoped constraint solver described in
// spec §4.2: enterScope/leaveScope bracket a unification region,
// freshValueVar/freshCaptureVar mint scope-stamped metavariables, and
// requireSubtype/requireEqual/requireSubregion record obligations against a
// trail-backed substitution that speculative overload resolution can
// snapshot and roll back.
package unify

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/efflang/ec/pkg/types"
)

// Engine is the unifier's mutable state: a union-find-style substitution
// with a trail of bindings, plus the scope bookkeeping needed to detect
// variables escaping the region that created them.
type Engine struct {
	subs types.Subs

	captSubs map[int64]types.CaptureSet

	valueScope map[int64]int
	captScope  map[int64]int

	trail      []binding
	captTrail  []captBinding
	marks      []scopeMark
	curScope   int

	nextValueID int64
	nextCaptID  int64
}

type captBinding struct {
	id  int64
	was types.CaptureSet
	had bool
}

// New creates an Engine with an empty substitution, already inside scope 0
// (the top-level/module scope).
func New() *Engine {
	return &Engine{
		subs:       types.NewSubs(),
		captSubs:   make(map[int64]types.CaptureSet),
		valueScope: make(map[int64]int),
		captScope:  make(map[int64]int),
	}
}

// Snapshot is an opaque marker produced by Snapshot and consumed by
// Restore, used by overload resolution (spec §4.3.1) to try a candidate and
// back out cleanly on failure.
type Snapshot struct {
	trailLen     int
	captTrailLen int
	nextValueID  int64
	nextCaptID   int64
}

// Snapshot captures the engine's current state for later Restore.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		trailLen:     len(e.trail),
		captTrailLen: len(e.captTrail),
		nextValueID:  e.nextValueID,
		nextCaptID:   e.nextCaptID,
	}
}

// Restore undoes every binding made since s was taken.
func (e *Engine) Restore(s Snapshot) {
	for i := len(e.trail) - 1; i >= s.trailLen; i-- {
		b := e.trail[i]
		if b.had {
			e.subs = e.subs.Bind(b.id, b.was)
		} else {
			e.unbindValue(b.id)
		}
	}
	e.trail = e.trail[:s.trailLen]

	for i := len(e.captTrail) - 1; i >= s.captTrailLen; i-- {
		b := e.captTrail[i]
		if b.had {
			e.captSubs[b.id] = b.was
		} else {
			delete(e.captSubs, b.id)
		}
	}
	e.captTrail = e.captTrail[:s.captTrailLen]

	e.nextValueID = s.nextValueID
	e.nextCaptID = s.nextCaptID
}

func (e *Engine) unbindValue(id int64) {
	// types.Subs has no Unbind; rebuild without id since this path is only
	// hit by Restore, which is cold relative to Bind.
	fresh := types.NewSubs()
	for _, other := range e.liveBindings() {
		if other != id {
			if t, ok := e.subs.Lookup(other); ok {
				fresh = fresh.Bind(other, t)
			}
		}
	}
	e.subs = fresh
}

func (e *Engine) liveBindings() []int64 {
	ids := make([]int64, 0, e.subs.Len())
	for id := int64(0); id < e.nextValueID; id++ {
		if _, ok := e.subs.Lookup(id); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// CurrentScope returns the scope number checking is currently nested inside,
// without opening a new one. Call instantiation (spec §4.3.1) mints its
// fresh type variables here rather than in a dedicated child scope: those
// variables are meant to flow into the call's result and get solved by
// whatever scope the call itself lives in, not reported as escaping the
// moment the call finishes checking.
func (e *Engine) CurrentScope() int { return e.curScope }

// EnterScope opens a fresh unification region and returns its scope number.
func (e *Engine) EnterScope() int {
	e.curScope++
	e.marks = append(e.marks, scopeMark{
		trailLen:    len(e.trail),
		nextValueID: e.nextValueID,
		nextCaptID:  e.nextCaptID,
	})
	slog.Debug("enter unification scope", "scope", e.curScope)
	return e.curScope
}

// LeaveScope closes the most recently entered scope. Every unification
// variable created in that scope which is (a) still unsolved and (b) free
// in one of live must be reported via EscapingSkolem; all others are
// simply no longer tracked (their bindings, if any, remain in subs — they
// were promoted by being solved to something from an outer scope).
func (e *Engine) LeaveScope(scope int, live ...types.ValueType) []error {
	if len(e.marks) == 0 {
		panic("unify: LeaveScope with no matching EnterScope")
	}
	e.marks = e.marks[:len(e.marks)-1]

	liveVars := types.VarSet{}
	liveCaptVars := types.VarSet{}
	for _, t := range live {
		substituted := e.Substitute(t)
		liveVars = liveVars.Union(substituted.FreeVars())
		liveCaptVars = liveCaptVars.Union(types.CaptureFreeVars(substituted))
	}

	var errs []error
	for id, s := range e.valueScope {
		if s != scope {
			continue
		}
		if _, solved := e.subs.Lookup(id); solved {
			continue
		}
		if liveVars.Contains(id) {
			errs = append(errs, escapingSkolem(types.UnificationVar{ID: id, Scope: s}, scope))
		}
	}
	for id, s := range e.captScope {
		if s != scope {
			continue
		}
		if _, solved := e.captSubs[id]; solved {
			continue
		}
		if liveCaptVars.Contains(id) {
			errs = append(errs, escapingSkolem(types.CaptureUnificationVar{ID: id, Scope: s}, scope))
		}
	}
	e.curScope--
	if len(errs) > 0 {
		slog.Debug("leave unification scope", "scope", scope, "escaped", len(errs))
	} else {
		slog.Debug("leave unification scope", "scope", scope)
	}
	return errs
}

// freshValueVar mints a fresh value unification variable stamped with scope.
func (e *Engine) FreshValueVar(scope int) types.UnificationVar {
	id := e.nextValueID
	e.nextValueID++
	e.valueScope[id] = scope
	return types.UnificationVar{ID: id, Scope: scope}
}

// freshCaptureVar mints a fresh capture unification variable stamped with
// scope.
func (e *Engine) FreshCaptureVar(scope int) types.CaptureUnificationVar {
	id := e.nextCaptID
	e.nextCaptID++
	e.captScope[id] = scope
	return types.CaptureUnificationVar{ID: id, Scope: scope}
}

// Instantiate replaces fn's type parameters with fresh unification
// variables (or targs, if supplied) and its capture parameters with fresh
// capture unification variables, returning the chosen type arguments, the
// chosen capture arguments, and the resulting concrete Function.
func (e *Engine) Instantiate(scope int, fn *types.Function, targs []types.ValueType) ([]types.ValueType, []types.CaptureSet, *types.Function) {
	typeArgs := make([]types.ValueType, len(fn.TParams))
	byName := make(map[string]types.ValueType, len(fn.TParams))
	for i, p := range fn.TParams {
		var arg types.ValueType
		if i < len(targs) {
			arg = targs[i]
		} else {
			arg = e.FreshValueVar(scope)
		}
		typeArgs[i] = arg
		byName[p.Name] = arg
	}

	captureArgs := make([]types.CaptureSet, len(fn.CParams))
	captByName := make(map[string]types.CaptureSet, len(fn.CParams))
	for i := range fn.CParams {
		fresh := types.NewCaptureSet(e.FreshCaptureVar(scope))
		captureArgs[i] = fresh
		captByName[fn.CParams[i].Name] = fresh
	}

	concrete := instantiateFunction(fn, byName, captByName)
	return typeArgs, captureArgs, concrete
}

func instantiateFunction(fn *types.Function, byName map[string]types.ValueType, captByName map[string]types.CaptureSet) *types.Function {
	vparams := make([]types.ValueType, len(fn.VParams))
	for i, v := range fn.VParams {
		vparams[i] = substituteRigid(v, byName)
	}
	bparams := make([]*types.Function, len(fn.BParams))
	for i, b := range fn.BParams {
		bparams[i] = instantiateFunction(b, byName, captByName)
	}
	return &types.Function{
		VParams: vparams,
		BParams: bparams,
		Result:  substituteRigid(fn.Result, byName),
		Effects: fn.Effects,
	}
}

// substituteRigid replaces rigid Var occurrences by name, the counterpart to
// pkg/types' unification-variable Apply used during instantiation of a
// function's own TParams (which are Vars, not UnificationVars, until this
// point).
func substituteRigid(t types.ValueType, byName map[string]types.ValueType) types.ValueType {
	switch v := t.(type) {
	case types.Var:
		if repl, ok := byName[v.Sym.Name]; ok {
			return repl
		}
		return v
	case types.Constructor:
		args := make([]types.ValueType, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteRigid(a, byName)
		}
		return types.Constructor{Sym: v.Sym, Args: args}
	case types.Boxed:
		return types.Boxed{Block: instantiateFunction(v.Block, byName, nil), Captures: v.Captures}
	default:
		return t
	}
}

// Substitute applies the engine's current solved substitution to t.
func (e *Engine) Substitute(t types.ValueType) types.ValueType {
	return t.Apply(e.subs)
}

// SubstituteFunction applies the current substitution to a Function,
// preserving its concrete type.
func (e *Engine) SubstituteFunction(f *types.Function) *types.Function {
	return f.Apply(e.subs)
}

func (e *Engine) bindValue(id int64, t types.ValueType) {
	old, had := e.subs.Lookup(id)
	e.trail = append(e.trail, binding{id: id, was: old, had: had})
	e.subs = e.subs.Bind(id, t)
}

func (e *Engine) bindCapture(id int64, cs types.CaptureSet) {
	old, had := e.captSubs[id]
	e.captTrail = append(e.captTrail, captBinding{id: id, was: old, had: had})
	e.captSubs[id] = cs
}

// RequireEqual unifies a and b, binding unresolved unification variables as
// needed; constructors are invariant in their arguments (spec §4.2).
func (e *Engine) RequireEqual(a, b types.ValueType) error {
	a, b = e.Substitute(a), e.Substitute(b)

	if av, ok := a.(types.UnificationVar); ok {
		return e.bindVarOrOccursCheck(av, b)
	}
	if bv, ok := b.(types.UnificationVar); ok {
		return e.bindVarOrOccursCheck(bv, a)
	}

	switch av := a.(type) {
	case types.Bottom:
		if _, ok := b.(types.Bottom); ok {
			return nil
		}
		return fail(a, b, "Bottom does not equal %s", b)
	case types.Builtin:
		if bv, ok := b.(types.Builtin); ok && av == bv {
			return nil
		}
		return fail(a, b, "builtin type mismatch")
	case types.Var:
		if bv, ok := b.(types.Var); ok && av.Sym.ID() == bv.Sym.ID() {
			return nil
		}
		return fail(a, b, "rigid variable mismatch")
	case types.Constructor:
		bv, ok := b.(types.Constructor)
		if !ok || av.Sym.ID() != bv.Sym.ID() || len(av.Args) != len(bv.Args) {
			return fail(a, b, "constructor head mismatch")
		}
		for i := range av.Args {
			if err := e.RequireEqual(av.Args[i], bv.Args[i]); err != nil {
				return err
			}
		}
		return nil
	case types.Boxed:
		bv, ok := b.(types.Boxed)
		if !ok {
			return fail(a, b, "cannot equate boxed block with non-boxed value")
		}
		if err := e.RequireFunctionEqual(av.Block, bv.Block); err != nil {
			return err
		}
		if !av.Captures.Equal(bv.Captures) {
			return fail(a, b, "capture sets differ")
		}
		return nil
	default:
		return fail(a, b, "unsupported value type in RequireEqual")
	}
}

// bindVarOrOccursCheck binds v to t, or v's end of the equation to the other
// when t is itself a unification variable. Per spec §4.2, when both sides
// are unification variables in different scopes the deeper-scoped one is
// solved into the shallower one, so a variable that outlives its scope
// never ends up substituting through to one that doesn't.
func (e *Engine) bindVarOrOccursCheck(v types.UnificationVar, t types.ValueType) error {
	if other, ok := t.(types.UnificationVar); ok {
		if other.ID == v.ID {
			return nil
		}
		if e.valueScope[other.ID] > e.valueScope[v.ID] {
			e.bindValue(other.ID, v)
			return nil
		}
		e.bindValue(v.ID, other)
		return nil
	}
	if t.FreeVars().Contains(v.ID) {
		return fail(v, t, "occurs check failed")
	}
	e.bindValue(v.ID, t)
	return nil
}

// RequireFunctionEqual unifies two Function types argument-by-argument, with
// effects compared by set equality (invariant, per spec §4.2).
func (e *Engine) RequireFunctionEqual(a, b *types.Function) error {
	if len(a.VParams) != len(b.VParams) || len(a.BParams) != len(b.BParams) {
		return fail(funcStringer{a}, funcStringer{b}, "arity mismatch")
	}
	for i := range a.VParams {
		if err := e.RequireEqual(a.VParams[i], b.VParams[i]); err != nil {
			return err
		}
	}
	for i := range a.BParams {
		if err := e.RequireFunctionEqual(a.BParams[i], b.BParams[i]); err != nil {
			return err
		}
	}
	if err := e.RequireEqual(a.Result, b.Result); err != nil {
		return err
	}
	aEff, bEff := e.substituteEffects(a.Effects), e.substituteEffects(b.Effects)
	if aEff.Concrete() && bEff.Concrete() {
		if !aEff.Equal(bEff) {
			return fail(funcStringer{a}, funcStringer{b}, "effect rows differ")
		}
		return nil
	}
	return nil
}

func (e *Engine) substituteEffects(eff types.Effects) types.Effects {
	return eff.Apply(e.subs)
}

// SubstituteEffects applies the engine's current solved substitution to an
// effect row, the Effects counterpart to Substitute/SubstituteFunction.
func (e *Engine) SubstituteEffects(eff types.Effects) types.Effects {
	return e.substituteEffects(eff)
}

type funcStringer struct{ f *types.Function }

func (s funcStringer) String() string { return s.f.String() }

// RequireSubtype records sub <: sup. Function effects and value-type
// constructors are invariant, so subtyping only has genuine room to move at
// Bottom (a subtype of everything) and at unresolved unification variables.
func (e *Engine) RequireSubtype(sub, sup types.ValueType) error {
	sub, sup = e.Substitute(sub), e.Substitute(sup)

	if _, ok := sub.(types.Bottom); ok {
		return nil
	}

	if subVar, ok := sub.(types.UnificationVar); ok {
		if _, supIsVar := sup.(types.UnificationVar); !supIsVar {
			return e.bindVarOrOccursCheck(subVar, sup)
		}
	}
	if supVar, ok := sup.(types.UnificationVar); ok {
		return e.bindVarOrOccursCheck(supVar, sub)
	}

	return e.RequireEqual(sub, sup)
}

// RequireSubregion records sub ⊆ sup over capture sets, growing any single
// unresolved capture unification variable on either side to the solution
// that makes the constraint hold.
func (e *Engine) RequireSubregion(sub, sup types.CaptureSet) error {
	sub = e.substituteCaptureSet(sub)
	sup = e.substituteCaptureSet(sup)

	var supVar *types.CaptureUnificationVar
	var supRest []types.Capture
	for _, c := range sup.Elems() {
		if v, ok := c.(types.CaptureUnificationVar); ok && supVar == nil {
			vv := v
			supVar = &vv
			continue
		}
		supRest = append(supRest, c)
	}

	missing := subtractCaptures(sub.Elems(), supRest)
	if len(missing) == 0 {
		return nil
	}
	if supVar == nil {
		return errors.Errorf("capture region %s is not a subset of %s", sub, sup)
	}
	grown := sup.Union(types.NewCaptureSet(missing...))
	e.bindCapture(supVar.ID, grown)
	return nil
}

func subtractCaptures(a, b []types.Capture) []types.Capture {
	var out []types.Capture
	for _, c := range a {
		if _, isVar := c.(types.CaptureUnificationVar); isVar {
			continue
		}
		found := false
		for _, o := range b {
			if o.String() == c.String() {
				found = true
				break
			}
		}
		if !found {
			out = append(out, c)
		}
	}
	return out
}

func (e *Engine) substituteCaptureSet(cs types.CaptureSet) types.CaptureSet {
	var out types.CaptureSet
	for _, c := range cs.Elems() {
		if v, ok := c.(types.CaptureUnificationVar); ok {
			if resolved, bound := e.captSubs[v.ID]; bound {
				out = out.Union(e.substituteCaptureSet(resolved))
				continue
			}
		}
		out = out.Union(types.NewCaptureSet(c))
	}
	return out
}

// Join returns the least upper bound of ts under the current constraint
// set. If every element is structurally identical after substitution, that
// type is the join; Bottom elements are absorbed. Otherwise a fresh
// unification variable is introduced and each element is required to be
// its subtype, deferring the exact bound to further solving.
func (e *Engine) Join(scope int, ts []types.ValueType) (types.ValueType, error) {
	var nonBottom []types.ValueType
	for _, t := range ts {
		t = e.Substitute(t)
		if _, ok := t.(types.Bottom); ok {
			continue
		}
		nonBottom = append(nonBottom, t)
	}
	if len(nonBottom) == 0 {
		return types.Bottom{}, nil
	}

	same := true
	for _, t := range nonBottom[1:] {
		if t.String() != nonBottom[0].String() {
			same = false
			break
		}
	}
	if same {
		return nonBottom[0], nil
	}

	result := e.FreshValueVar(scope)
	for _, t := range nonBottom {
		if err := e.RequireSubtype(t, result); err != nil {
			return nil, err
		}
	}
	return e.Substitute(result), nil
}
