package typer

import (
	"log/slog"

	"github.com/efflang/ec/pkg/ast"
	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// checkDefinitionGroup runs the definition phase (spec §4.3) over one group
// of mutually-visible definitions: a precheck pass that assigns every
// fully-annotated definition its type up front (so the group may call each
// other out of order), followed by a synth pass that walks every body.
// Declaring a definition is itself pure — whatever effects its body
// performs belong to calling it, not to this group existing — so the
// returned Effects is always empty; the signature still returns one so a
// caller never needs to special-case "no definitions here".
func (t *Typer) checkDefinitionGroup(defs []ast.Def) types.Effects {
	slog.Debug("enter precheck phase", "definitions", len(defs))
	t.precheckDefinitions(defs)
	slog.Debug("enter synth phase", "definitions", len(defs))
	for _, d := range defs {
		t.synthDefinition(d)
	}
	slog.Debug("leave synth phase")
	return types.Effects{}
}

// precheckDefinitions assigns a type to every definition whose shape makes
// one available without walking a body: fully-annotated FunDefs, externs,
// interfaces and their operations, and the constructor functions data and
// record declarations introduce.
func (t *Typer) precheckDefinitions(defs []ast.Def) {
	for _, d := range defs {
		switch n := d.(type) {
		case *ast.FunDef:
			if n.FullyAnnotated() {
				t.Ctx.BindBlock(n.Sym, n.FunctionType())
			}
		case *ast.ExternFunDef:
			t.Ctx.BindBlock(n.Sym, n.Type)
		case *ast.EffectDef:
			if t.Interfaces == nil {
				t.Interfaces = map[symbols.Symbol]*ast.EffectDef{}
			}
			t.Interfaces[n.Sym] = n
			for i := range n.Ops {
				t.Ctx.BindBlock(n.Ops[i].Op, n.Ops[i].Type)
			}
		case *ast.DataDef:
			if t.Ctors == nil {
				t.Ctors = map[symbols.Symbol]*ast.DataDef{}
			}
			for _, ctor := range n.Ctors {
				t.Ctors[ctor.Sym] = n
				t.Ctx.BindBlock(ctor.Sym, ctorFunctionType(n, ctor))
			}
		case *ast.RecordDef:
			t.Ctx.BindBlock(n.Sym, recordCtorFunctionType(n))
			for _, f := range n.Fields {
				t.Ctx.BindBlock(f.Sym, recordAccessorFunctionType(n, f))
			}
		case *ast.TypeDef, *ast.EffectAliasDef:
			// No function type to register; referenced only from other
			// ValueTypes/Effects, which already carry the alias inline.
		}
	}
}

// synthDefinition re-walks a definition's body once its — and its group's —
// precheck types are all visible, checking it against its declared type
// where one was assigned and synthesizing the rest where it wasn't. Only
// FunDef carries a body in this tree; every other Def variant is fully
// determined by precheck.
func (t *Typer) synthDefinition(d ast.Def) {
	n, ok := d.(*ast.FunDef)
	if !ok {
		return
	}

	t.pushFocus("definition "+n.Sym.Name, nil)
	defer t.popFocus()

	mark := t.Ctx.Backup()

	vparams := make([]types.ValueType, len(n.VParams))
	for i, p := range n.VParams {
		if p.Type != nil {
			vparams[i] = p.Type
		} else {
			vparams[i] = t.Engine.FreshValueVar(t.Engine.CurrentScope())
		}
		t.Ctx.BindValue(p.Sym, vparams[i])
	}
	bparams := make([]*types.Function, len(n.BParams))
	for i, b := range n.BParams {
		bparams[i] = b.Type
		if bparams[i] != nil {
			t.Ctx.BindBlock(b.Sym, bparams[i])
		}
	}

	bodyTy, bodyEff := t.checkStmt(n.Body, n.Result)

	t.Ctx.Restore(mark)

	result := n.Result
	if result == nil {
		result = bodyTy
	}

	fn := &types.Function{
		TParams: n.TParams,
		CParams: n.CParams,
		VParams: vparams,
		BParams: bparams,
		Result:  result,
		Effects: bodyEff,
	}
	t.Ctx.BindBlock(n.Sym, t.Engine.SubstituteFunction(fn))

	for _, eff := range bodyEff.Elems() {
		t.report(&diag.UnhandledControlEffect{Eff: eff, Location: t.currentLoc()})
	}
}

func ctorFunctionType(d *ast.DataDef, ctor ast.Ctor) *types.Function {
	args := make([]types.ValueType, len(d.TParams))
	for i, p := range d.TParams {
		args[i] = types.Var{Sym: p}
	}
	return &types.Function{
		TParams: d.TParams,
		VParams: ctor.Fields,
		Result:  types.Constructor{Sym: d.Sym, Args: args},
	}
}

func recordCtorFunctionType(d *ast.RecordDef) *types.Function {
	args := make([]types.ValueType, len(d.TParams))
	fields := make([]types.ValueType, len(d.Fields))
	for i, p := range d.TParams {
		args[i] = types.Var{Sym: p}
	}
	for i, f := range d.Fields {
		fields[i] = f.Type
	}
	return &types.Function{
		TParams: d.TParams,
		VParams: fields,
		Result:  types.Constructor{Sym: d.Sym, Args: args},
	}
}

func recordAccessorFunctionType(d *ast.RecordDef, field ast.RecordField) *types.Function {
	args := make([]types.ValueType, len(d.TParams))
	for i, p := range d.TParams {
		args[i] = types.Var{Sym: p}
	}
	return &types.Function{
		TParams: d.TParams,
		VParams: []types.ValueType{types.Constructor{Sym: d.Sym, Args: args}},
		Result:  field.Type,
	}
}
