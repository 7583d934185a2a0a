package ir

import "github.com/efflang/ec/pkg/symbols"

// Lift is one step of an Evidence path: a way to get from the evidence
// available at a use site to the evidence a particular handler's
// implementation needs (spec §4.5.4: here/nested/lift composition).
type Lift interface {
	isLift()
}

// LiftTry steps across one enclosing Try.
type LiftTry struct{}

func (LiftTry) isLift() {}

// LiftReg steps across one enclosing Region.
type LiftReg struct{}

func (LiftReg) isLift() {}

// LiftVar steps across a block parameter that itself carries evidence,
// identified by Sym.
type LiftVar struct{ Sym symbols.Symbol }

func (LiftVar) isLift() {}

// Evidence is a possibly-empty ordered list of lifts locating the
// implementation a Shift, State, or HandlerImpl needs to reach. An empty
// Evidence means "here": no lift needed.
type Evidence []Lift
