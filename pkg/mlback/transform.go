package mlback

import (
	"log/slog"

	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/mlast"
	"github.com/efflang/ec/pkg/symbols"
)

// Transform lowers a whole Lifted IR Module into a target Toplevel,
// elaborating its declarations, checking its externs, and CPS-lowering
// its definitions in topological order. It returns the first structural
// error encountered (mutual recursion, a polymorphic extern, a
// higher-order extern) rather than any partial result, matching the
// policy that the back end aborts on the first such error (spec §7).
// An internal-invariant bug still panics past this call uncaught.
func Transform(mod *ir.Module) (*mlast.Toplevel, diag.Diagnostic) {
	tr := newTransformer()
	var result *mlast.Toplevel
	var fatal diag.Diagnostic

	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			sig, ok := r.(fatalSignal)
			if !ok {
				panic(r)
			}
			fatal = sig.d
		}()
		result = tr.transform(mod)
	}()

	return result, fatal
}

func (tr *transformer) transform(mod *ir.Module) *mlast.Toplevel {
	slog.Debug("enter lowering phase", "module", mod.Path, "decls", len(mod.Decls), "externs", len(mod.Externs), "definitions", len(mod.Definitions))

	if err := checkExterns(mod.Externs); err != nil {
		raiseFatal(err)
	}

	var bindings []mlast.Binding
	for _, d := range mod.Decls {
		bindings = append(bindings, tr.lowerDecl(d)...)
	}
	for _, ext := range mod.Externs {
		bindings = append(bindings, mlast.RawBind{Text: ext.Target})
	}

	ordered, err := orderDefinitions(mod.Definitions)
	if err != nil {
		raiseFatal(err)
	}

	var mainSym *symbols.Symbol
	for _, d := range ordered {
		bindings = append(bindings, tr.lowerDefinition(d))
		if def, ok := d.(ir.Def); ok && def.ID.Name == "main" {
			sym := def.ID
			mainSym = &sym
		}
	}

	slog.Debug("leave lowering phase", "module", mod.Path, "bindings", len(bindings))
	return &mlast.Toplevel{Bindings: bindings, MainCall: tr.mainCall(mainSym)}
}

// checkExterns rejects the two extern shapes the back end cannot marshal
// across the foreign boundary (spec §7): a polymorphic extern, which
// would need a different binding per instantiation, and a higher-order
// extern, whose block parameter has no representation on the other side.
func checkExterns(externs []ir.Extern) diag.Diagnostic {
	for _, ext := range externs {
		if len(ext.TParams) > 0 {
			return &diag.PolymorphicExtern{Name: ext.ID}
		}
		if ext.BType != nil && len(ext.BType.BParams) > 0 {
			return &diag.HigherOrderExtern{Name: ext.ID}
		}
	}
	return nil
}

// mainCall builds the call that runs the module's entry point: the Def
// literally named "main", applied to two identity continuations (spec
// §4.5.7: "runMain(m) = m(id, id)"). A module with no such Def — a
// library with nothing to run on its own — gets a no-op call instead.
func (tr *transformer) mainCall(mainSym *symbols.Symbol) mlast.Expr {
	if mainSym == nil {
		return mlast.RawValue{Text: "unitVal"}
	}
	identity := mlast.Lambda{Params: []mlast.Param{mlast.Named{Name: "x"}}, Body: mlast.Variable{Name: "x"}}
	return mlast.Call{
		Fn:   mlast.Variable{Name: tr.names.of(*mainSym)},
		Args: []mlast.Expr{identity, identity},
	}
}
