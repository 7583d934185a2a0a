// Package typer implements the bidirectional type-and-effect checker
// described in spec §4.3: checkExpr/checkStmt over pkg/ast's tree, backed
// by pkg/unify's constraint solver and pkg/typectx's journaled typing
// context, buffering diagnostics into a pkg/diag.Bag rather than failing
// fast wherever the policy in §7 allows checking to continue.
package typer

import (
	"fmt"

	"github.com/efflang/ec/pkg/ast"
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/typectx"
	"github.com/efflang/ec/pkg/types"
	"github.com/efflang/ec/pkg/unify"
)

// Typer holds everything one compilation unit's checking needs: the
// unification engine, the typing context, and the diagnostic buffer it
// accumulates into as it walks.
type Typer struct {
	Engine *unify.Engine
	Ctx    *typectx.Context
	Bag    *diag.Bag

	// focus is a stack of human-readable descriptions of what is currently
	// being checked ("call to f", "then-branch of if", ...), used to give
	// diagnostics raised without an attached ast.Node a location-free but
	// still useful point of reference. The front end that produces
	// pkg/ast trees is out of scope for this module and does not attach
	// source positions to nodes; when it does, diag.SourceLocation is
	// threaded through unchanged (see WithFocusLocation).
	focus []string
	loc   []*diag.SourceLocation

	// Interfaces maps an effect-interface symbol to its declaration, set
	// by the definition phase's precheck pass (definitions.go). Handler
	// elaboration (handler.go) looks here to enumerate an interface's
	// required operations.
	Interfaces map[symbols.Symbol]*ast.EffectDef

	// Ctors maps a data constructor symbol to the DataDef that declares
	// it, set alongside Interfaces. checkPattern doesn't need this (a
	// constructor's Function type, registered in Ctx, is enough), and no
	// other code in this module reads it; pkg/mlback records constructors
	// in its own table as it lowers data declarations.
	Ctors map[symbols.Symbol]*ast.DataDef
}

// New creates a Typer over a fresh unification engine and the given
// typing context (fallback, if any, is wired into ctx by its caller).
func New(ctx *typectx.Context) *Typer {
	return &Typer{
		Engine: unify.New(),
		Ctx:    ctx,
		Bag:    diag.NewBag(),
	}
}

// pushFocus/popFocus bracket a region of checking for diagnostic context.
func (t *Typer) pushFocus(what string, loc *diag.SourceLocation) {
	t.focus = append(t.focus, what)
	t.loc = append(t.loc, loc)
}

func (t *Typer) popFocus() {
	t.focus = t.focus[:len(t.focus)-1]
	t.loc = t.loc[:len(t.loc)-1]
}

// currentLoc returns the nearest enclosing focus frame's location, if any.
func (t *Typer) currentLoc() *diag.SourceLocation {
	for i := len(t.loc) - 1; i >= 0; i-- {
		if t.loc[i] != nil {
			return t.loc[i]
		}
	}
	return nil
}

// report buffers d into the current bag.
func (t *Typer) report(d diag.Diagnostic) { t.Bag.Add(d) }

// strStringer adapts a plain string to fmt.Stringer for ad hoc diagnostic
// payloads that don't otherwise have a ValueType/Function to point at.
type strStringer string

func (s strStringer) String() string { return string(s) }

// reportMismatch buffers a TypeMismatch built from err at the current
// focus, if err is non-nil, and returns whether it buffered anything —
// callers use this to decide whether to fall back to a Bottom/expected
// type and keep walking (spec §7's "buffered diagnostic at focus; trial
// may swallow").
func (t *Typer) reportMismatch(left, right fmt.Stringer, err error) bool {
	if err == nil {
		return false
	}
	t.report(&diag.TypeMismatch{Left: left, Right: right, Cause: err, Location: t.currentLoc()})
	return true
}

// lookupFunctionType resolves sym's function type through the typing
// context, buffering a ResolutionError and returning false on a miss
// (spec §4.1's lookupFunctionType: "fails if a block symbol has no
// function type yet, signalling mutual recursion without annotation").
func (t *Typer) lookupFunctionType(sym symbols.Symbol) (*types.Function, bool) {
	f, ok := t.Ctx.LookupFunctionType(sym)
	if !ok {
		t.report(&diag.ResolutionError{Name: sym.Name, Location: t.currentLoc()})
	}
	return f, ok
}

// lookupValue resolves sym's value type, buffering a ResolutionError on a
// miss.
func (t *Typer) lookupValue(sym symbols.Symbol) (types.ValueType, bool) {
	v, ok := t.Ctx.LookupValue(sym)
	if !ok {
		t.report(&diag.ResolutionError{Name: sym.Name, Location: t.currentLoc()})
	}
	return v, ok
}

// CheckExpr is the exported entry point for checking one expression in
// isolation; the driver and tests use it directly, while every node inside
// this package recurses through the unexported checkExpr.
func (t *Typer) CheckExpr(e ast.Expr, expected types.ValueType) (types.ValueType, types.Effects) {
	return t.checkExpr(e, expected)
}

// CheckStmt is CheckExpr's statement-level counterpart.
func (t *Typer) CheckStmt(s ast.Stmt, expected types.ValueType) (types.ValueType, types.Effects) {
	return t.checkStmt(s, expected)
}

// CheckDefinitionGroup is the exported entry point for the definition phase
// (spec §4.3): the driver calls it once per compilation unit with every
// top-level definition.
func (t *Typer) CheckDefinitionGroup(defs []ast.Def) types.Effects {
	return t.checkDefinitionGroup(defs)
}

// setChecked records a node's solved type/effects, applying the engine's
// current substitution so later phases never see a unification variable
// (spec §8 invariant 2: "no Effects stored on a tree contains a
// unification variable").
func (t *Typer) setChecked(n ast.Node, ty types.ValueType, eff types.Effects) {
	n.SetChecked(t.Engine.Substitute(ty), t.Engine.SubstituteEffects(eff))
}
