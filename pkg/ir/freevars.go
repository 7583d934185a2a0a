package ir

import "github.com/efflang/ec/pkg/symbols"

// FreeSymbols collects the value/block symbols t references, used by the
// ML Transformer to build the dependency graph it topologically sorts
// before emitting top-level definitions (spec §4.5.1).
func FreeSymbols(t Term) []symbols.Symbol {
	switch n := t.(type) {
	case Return:
		return exprFreeSymbols(n.Value)
	case App:
		out := blockFreeSymbols(n.Block)
		for _, a := range n.Args {
			out = append(out, exprFreeSymbols(a)...)
		}
		return out
	case If:
		out := exprFreeSymbols(n.Cond)
		out = append(out, FreeSymbols(n.Then)...)
		return append(out, FreeSymbols(n.Else)...)
	case Val:
		return append(FreeSymbols(n.Bound), FreeSymbols(n.Body)...)
	case Match:
		out := exprFreeSymbols(n.Scrutinee)
		for _, c := range n.Clauses {
			out = append(out, FreeSymbols(c.Body)...)
		}
		if n.Default != nil {
			out = append(out, FreeSymbols(n.Default)...)
		}
		return out
	case Hole:
		return nil
	case Scope:
		out := evidenceFreeSymbols(nil)
		for _, d := range n.Definitions {
			out = append(out, definitionFreeSymbols(d)...)
		}
		return append(out, FreeSymbols(n.Body)...)
	case State:
		out := exprFreeSymbols(n.Init)
		out = append(out, evidenceFreeSymbols(n.Evidence)...)
		return append(out, FreeSymbols(n.Body)...)
	case Try:
		out := blockLitFreeSymbols(n.Body)
		for _, h := range n.Handlers {
			out = append(out, evidenceFreeSymbols(h.Evidence)...)
			for _, op := range h.Ops {
				out = append(out, blockLitFreeSymbols(op.Body)...)
			}
		}
		return out
	case Shift:
		return append(evidenceFreeSymbols(n.Evidence), blockLitFreeSymbols(n.Block)...)
	case Region:
		return FreeSymbols(n.Body)
	default:
		return nil
	}
}

func exprFreeSymbols(e Expr) []symbols.Symbol {
	switch n := e.(type) {
	case ValueVar:
		return []symbols.Symbol{n.Sym}
	case Literal:
		return nil
	case PureApp:
		out := []symbols.Symbol{n.Ctor}
		for _, a := range n.Args {
			out = append(out, exprFreeSymbols(a)...)
		}
		return out
	case Select:
		return exprFreeSymbols(n.Record)
	case Box:
		return append(blockFreeSymbols(n.Block), n.Captures...)
	case Run:
		return FreeSymbols(n.Stmt)
	default:
		return nil
	}
}

func blockFreeSymbols(b Block) []symbols.Symbol {
	switch n := b.(type) {
	case BlockVar:
		return []symbols.Symbol{n.Sym}
	case BlockLit:
		return blockLitFreeSymbols(n)
	case Member:
		return blockFreeSymbols(n.Receiver)
	case Unbox:
		return exprFreeSymbols(n.Value)
	case New:
		var out []symbols.Symbol
		for _, op := range n.Ops {
			out = append(out, blockLitFreeSymbols(op.Body)...)
		}
		return out
	default:
		return nil
	}
}

func blockLitFreeSymbols(b BlockLit) []symbols.Symbol { return FreeSymbols(b.Body) }

// DefinitionFreeSymbols collects the symbols one Definition references,
// used by the ML Transformer to build the dependency graph it
// topologically sorts within a run of Defs (spec §4.5.1).
func DefinitionFreeSymbols(d Definition) []symbols.Symbol {
	return definitionFreeSymbols(d)
}

func definitionFreeSymbols(d Definition) []symbols.Symbol {
	switch n := d.(type) {
	case Let:
		return exprFreeSymbols(n.Expr)
	case Def:
		return blockFreeSymbols(n.Block)
	default:
		return nil
	}
}

func evidenceFreeSymbols(ev Evidence) []symbols.Symbol {
	var out []symbols.Symbol
	for _, l := range ev {
		if v, ok := l.(LiftVar); ok {
			out = append(out, v.Sym)
		}
	}
	return out
}
