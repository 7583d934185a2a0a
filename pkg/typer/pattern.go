package typer

import (
	"github.com/efflang/ec/pkg/ast"
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
	"github.com/efflang/ec/pkg/unify"
)

// checkPattern matches scrutinee against p, returning the bindings it
// introduces. Arity mismatches are buffered but do not stop the match
// (spec §4.3 "Patterns": "Arity mismatches are errors but do not abort").
func (t *Typer) checkPattern(scrutinee types.ValueType, p ast.Pattern) map[symbols.Symbol]types.ValueType {
	switch pat := p.(type) {
	case ast.IgnorePattern:
		return nil
	case ast.AnyPattern:
		return map[symbols.Symbol]types.ValueType{pat.Sym: scrutinee}
	case ast.LiteralPattern:
		lit := literalType(pat.Value)
		if err := t.Engine.RequireEqual(scrutinee, lit); err != nil {
			t.reportMismatch(t.Engine.Substitute(scrutinee), lit, err)
		}
		return nil
	case ast.TagPattern:
		return t.checkTagPattern(scrutinee, pat)
	default:
		return nil
	}
}

// checkTagPattern instantiates the constructor's function type with fresh
// unification variables scoped to the match — not truly rigid, but made
// to behave like rigid variables by the scope-escape check below, which
// implements "existential type parameters on constructors are not
// allowed" (spec §4.3): any instantiated variable that is not pinned down
// by unifying against scrutinee or a nested pattern by the time the scope
// closes is reported the same way any other escaping skolem would be.
func (t *Typer) checkTagPattern(scrutinee types.ValueType, pat ast.TagPattern) map[symbols.Symbol]types.ValueType {
	ctorFn, ok := t.lookupFunctionType(pat.Ctor)
	if !ok {
		return nil
	}

	scope := t.Engine.EnterScope()
	_, _, concrete := t.Engine.Instantiate(scope, ctorFn, nil)

	if err := t.Engine.RequireSubtype(scrutinee, concrete.Result); err != nil {
		t.reportMismatch(t.Engine.Substitute(scrutinee), concrete.Result, err)
	}

	if len(pat.Nested) != len(concrete.VParams) {
		t.report(&diag.Arity{Expected: len(concrete.VParams), Actual: len(pat.Nested), Location: t.currentLoc()})
	}

	n := len(pat.Nested)
	if len(concrete.VParams) < n {
		n = len(concrete.VParams)
	}

	bindings := map[symbols.Symbol]types.ValueType{}
	for i := 0; i < n; i++ {
		for sym, ty := range t.checkPattern(concrete.VParams[i], pat.Nested[i]) {
			bindings[sym] = ty
		}
	}

	live := append([]types.ValueType{concrete.Result}, concrete.VParams...)
	for _, err := range t.Engine.LeaveScope(scope, live...) {
		t.reportEscape(err)
	}

	return bindings
}

// reportEscape converts a *unify.EscapingSkolem into the matching
// diag.EscapingSkolem; any other error from LeaveScope is a bug in this
// package, since LeaveScope is documented to only ever return that kind.
func (t *Typer) reportEscape(err error) {
	if es, ok := err.(*unify.EscapingSkolem); ok {
		t.report(&diag.EscapingSkolem{Var: es.Var, Scope: es.Scope, Location: t.currentLoc()})
		return
	}
	diag.Raise("LeaveScope returned an unexpected error type: %T", err)
}

// literalType maps a literal's kind to its builtin type.
func literalType(l *ast.Literal) types.ValueType {
	switch l.Kind {
	case ast.IntLiteral:
		return types.IntType
	case ast.BoolLiteral:
		return types.BoolType
	case ast.UnitLiteral:
		return types.UnitType
	case ast.DoubleLiteral:
		return types.DoubleType
	case ast.StringLiteral:
		return types.StringType
	default:
		diag.Raise("unknown literal kind %d", l.Kind)
		return nil
	}
}
