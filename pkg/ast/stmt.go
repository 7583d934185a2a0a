package ast

import "github.com/efflang/ec/pkg/symbols"

// ExprStmt is a body whose only statement is evaluating an expression —
// the common terminal case for a block whose tail has no further bindings.
type ExprStmt struct {
	checkResult
	Value Expr
}

func (*ExprStmt) isStmt()                               {}
func (s *ExprStmt) DeclaredSymbols() []symbols.Symbol    { return nil }
func (s *ExprStmt) ReferencedSymbols() []symbols.Symbol  { return s.Value.ReferencedSymbols() }
func (s *ExprStmt) Walk(fn func(Node) bool) {
	if !fn(s) {
		return
	}
	s.Value.Walk(fn)
}

// Val binds Sym to Bound's value, then continues into Rest (spec §3's
// Val(id, bound, body), one stage before evidence lifting).
type Val struct {
	checkResult
	Sym   symbols.Symbol
	Bound Expr
	Rest  Stmt
}

func (*Val) isStmt() {}
func (v *Val) DeclaredSymbols() []symbols.Symbol {
	return concat([]symbols.Symbol{v.Sym}, v.Rest.DeclaredSymbols())
}
func (v *Val) ReferencedSymbols() []symbols.Symbol {
	return concat(v.Bound.ReferencedSymbols(), v.Rest.ReferencedSymbols())
}
func (v *Val) Walk(fn func(Node) bool) {
	if !fn(v) {
		return
	}
	v.Bound.Walk(fn)
	v.Rest.Walk(fn)
}

// Scope introduces a group of mutually-recursive local definitions before
// Rest (spec §3's Scope(definitions, body)).
type Scope struct {
	checkResult
	Defs []Def
	Rest Stmt
}

func (*Scope) isStmt() {}
func (s *Scope) DeclaredSymbols() []symbols.Symbol {
	out := s.Rest.DeclaredSymbols()
	for _, d := range s.Defs {
		out = concat(d.DeclaredSymbols(), out)
	}
	return out
}
func (s *Scope) ReferencedSymbols() []symbols.Symbol {
	out := s.Rest.ReferencedSymbols()
	for _, d := range s.Defs {
		out = concat(d.ReferencedSymbols(), out)
	}
	return out
}
func (s *Scope) Walk(fn func(Node) bool) {
	if !fn(s) {
		return
	}
	for _, d := range s.Defs {
		d.Walk(fn)
	}
	s.Rest.Walk(fn)
}

// State declares a mutable cell initialised to Init, then continues into
// Rest (spec §3's State(id, init, region, evidence, body); the region and
// evidence fields are filled in by the external lifter, not here).
type State struct {
	checkResult
	Sym  symbols.Symbol
	Init Expr
	Rest Stmt
}

func (*State) isStmt() {}
func (s *State) DeclaredSymbols() []symbols.Symbol {
	return concat([]symbols.Symbol{s.Sym}, s.Rest.DeclaredSymbols())
}
func (s *State) ReferencedSymbols() []symbols.Symbol {
	return concat(s.Init.ReferencedSymbols(), s.Rest.ReferencedSymbols())
}
func (s *State) Walk(fn func(Node) bool) {
	if !fn(s) {
		return
	}
	s.Init.Walk(fn)
	s.Rest.Walk(fn)
}

// TryHandle runs Body under a fresh set of Handlers (spec §4.3
// "Handlers"); it is terminal, like the Lifted IR's Try(body, handlers).
type TryHandle struct {
	checkResult
	Body     Stmt
	Handlers []Handler
}

func (*TryHandle) isStmt() {}
func (t *TryHandle) DeclaredSymbols() []symbols.Symbol { return nil }
func (t *TryHandle) ReferencedSymbols() []symbols.Symbol {
	out := t.Body.ReferencedSymbols()
	for _, h := range t.Handlers {
		out = concat(out, h.ReferencedSymbols())
	}
	return out
}
func (t *TryHandle) Walk(fn func(Node) bool) {
	if !fn(t) {
		return
	}
	t.Body.Walk(fn)
	for _, h := range t.Handlers {
		h.walk(fn)
	}
}

// Shift captures the continuation up to the nearest enclosing prompt,
// binding it to Param for the duration of Body (spec §3's
// Shift(evidence, blockLit); here blockLit's single parameter is Param and
// its body is Body directly, since it is a compiler bug for a shift's
// block to take anything but exactly one parameter).
type Shift struct {
	checkResult
	Param symbols.Symbol
	Body  Stmt
}

func (*Shift) isStmt() {}
func (s *Shift) DeclaredSymbols() []symbols.Symbol {
	return concat([]symbols.Symbol{s.Param}, s.Body.DeclaredSymbols())
}
func (s *Shift) ReferencedSymbols() []symbols.Symbol { return s.Body.ReferencedSymbols() }
func (s *Shift) Walk(fn func(Node) bool) {
	if !fn(s) {
		return
	}
	s.Body.Walk(fn)
}

// Region opens a fresh local region for Body's state cells (spec §3's
// Region(body)).
type Region struct {
	checkResult
	Body Stmt
}

func (*Region) isStmt() {}
func (r *Region) DeclaredSymbols() []symbols.Symbol   { return r.Body.DeclaredSymbols() }
func (r *Region) ReferencedSymbols() []symbols.Symbol { return r.Body.ReferencedSymbols() }
func (r *Region) Walk(fn func(Node) bool) {
	if !fn(r) {
		return
	}
	r.Body.Walk(fn)
}

// Hole marks unreachable code (spec §3's Hole term); its type is Bottom.
type Hole struct {
	checkResult
}

func (*Hole) isStmt()                               {}
func (h *Hole) DeclaredSymbols() []symbols.Symbol    { return nil }
func (h *Hole) ReferencedSymbols() []symbols.Symbol  { return nil }
func (h *Hole) Walk(fn func(Node) bool)              { fn(h) }
