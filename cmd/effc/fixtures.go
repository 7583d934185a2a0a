package main

import (
	"fmt"
	"sort"

	"github.com/efflang/ec/pkg/ast"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/symbols"
	"github.com/efflang/ec/pkg/types"
)

// Fixtures stand in for the front end and the external lifter, both out
// of scope for this repository (spec's "begins at the Typer" and "Lifted
// IR is the upstream contract the external lifter hands to the ML
// Transformer"). `check` exercises the Typer over a fixture definition
// group; `compile` exercises the ML Transformer over a fixture Lifted IR
// module. Real front-end/lifter output would arrive in the same shapes.

// checkFixtures names the definition groups "effc check" can type-check.
var checkFixtures = map[string]func(prelude) []ast.Def{
	"arith": arithCheckFixture,
}

// compileFixtures names the Lifted IR modules "effc compile" can lower.
var compileFixtures = map[string]func() *ir.Module{
	"greeter": greeterCompileFixture,
}

func fixtureNames(m map[string]func(prelude) []ast.Def) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func compileFixtureNames() []string {
	names := make([]string, 0, len(compileFixtures))
	for n := range compileFixtures {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// arithCheckFixture declares `fun main(x: int): int = add(x, 1)`, enough
// to exercise overload resolution against a Prelude binding and the
// definition phase's precheck/synth split.
func arithCheckFixture(p prelude) []ast.Def {
	x := symbols.New("x", symbols.ValueSymbol)
	main := symbols.New("main", symbols.BlockSymbol)

	return []ast.Def{
		&ast.FunDef{
			Sym:     main,
			VParams: []ast.Param{{Sym: x, Type: types.IntType}},
			Result:  types.IntType,
			Effects: types.NewEffects(),
			Body: &ast.ExprStmt{
				Value: &ast.Call{
					Target: ast.IdTarget{Layers: [][]symbols.Symbol{{p.Add}}},
					Args: []ast.Arg{
						ast.ValueArg{Expr: &ast.Var{Sym: x}},
						ast.ValueArg{Expr: &ast.Literal{Kind: ast.IntLiteral, Int: 1}},
					},
				},
			},
		},
	}
}

// greeterCompileFixture builds a module declaring a "Greeter" effect
// interface, installing an inline implementation of it via New/Box, and
// calling its one operation through Member/Unbox/App/Run — enough to
// exercise the interface-object machinery, not just a bare literal body.
func greeterCompileFixture() *ir.Module {
	greeterIface := symbols.New("Greeter", symbols.TypeSymbol)
	greetOp := symbols.New("greet", symbols.ValueSymbol)
	greetType := &types.Function{
		VParams: []types.ValueType{types.StringType},
		Result:  types.UnitType,
	}

	sParam := symbols.New("s", symbols.ValueSymbol)
	g := symbols.New("g", symbols.ValueSymbol)
	mainSym := symbols.New("main", symbols.BlockSymbol)

	putsSym := symbols.New("puts", symbols.BlockSymbol)

	body := ir.Val{
		ID: g,
		Bound: ir.Return{Value: ir.Box{Block: ir.New{
			Interface: greeterIface,
			Ops: []ir.OpImpl{{
				Op: greetOp,
				Body: ir.BlockLit{
					Params: []ir.Param{{Sym: sParam, Type: types.StringType}},
					Body: ir.App{
						Block: ir.BlockVar{Sym: putsSym},
						Args:  []ir.Expr{ir.ValueVar{Sym: sParam}},
					},
				},
			}},
		}}},
		Body: ir.Return{Value: ir.Run{Stmt: ir.App{
			Block: ir.Member{
				Receiver: ir.Unbox{Value: ir.ValueVar{Sym: g}},
				Op:       greetOp,
				Type:     greetType,
			},
			Args: []ir.Expr{ir.Literal{Kind: ir.StringLiteral, Str: "hello, effects"}},
		}}},
	}

	return &ir.Module{
		Path: "demo/greeter",
		Decls: []ir.Decl{
			ir.Interface{ID: greeterIface, Ops: []ir.InterfaceOp{{Op: greetOp, Type: greetType}}},
		},
		Externs: []ir.Extern{
			{ID: putsSym, BType: &types.Function{
				VParams: []types.ValueType{types.StringType},
				Result:  types.UnitType,
			}, Target: "fun (s, k) = k (print s)"},
		},
		Definitions: []ir.Definition{
			ir.Def{ID: mainSym, Block: ir.BlockLit{Body: body}},
		},
	}
}

func lookupCheckFixture(name string) ([]ast.Def, prelude, error) {
	build, ok := checkFixtures[name]
	if !ok {
		return nil, prelude{}, fmt.Errorf("unknown check fixture %q (have: %v)", name, fixtureNames(checkFixtures))
	}
	_, p := buildPrelude()
	return build(p), p, nil
}

func lookupCompileFixture(name string) (*ir.Module, error) {
	build, ok := compileFixtures[name]
	if !ok {
		return nil, fmt.Errorf("unknown compile fixture %q (have: %v)", name, compileFixtureNames())
	}
	return build(), nil
}
