package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/efflang/ec/pkg/symbols"
)

// Capture is one atom of a CaptureSet: a reference to a block symbol, a
// capture-set parameter, or a capture unification variable (spec §3).
type Capture interface {
	fmt.Stringer
	key() string
}

// CaptureOf references the capture set of a specific block symbol (a
// function, handler, or operation closing over some environment).
type CaptureOf struct {
	Block symbols.Symbol
}

func (c CaptureOf) String() string { return c.Block.Name }
func (c CaptureOf) key() string    { return "of:" + c.Block.String() }

// CaptureParam references a capture-set parameter bound by an enclosing
// function or block literal's CParams.
type CaptureParam struct {
	Name string
}

func (c CaptureParam) String() string { return c.Name }
func (c CaptureParam) key() string    { return "param:" + c.Name }

// CaptureUnificationVar is a metavariable over capture sets, created by
// freshCaptureVar (spec §4.2) and solved like any other unification
// variable.
type CaptureUnificationVar struct {
	ID    int64
	Scope int
}

func (c CaptureUnificationVar) String() string {
	return fmt.Sprintf("?c%d@%d", c.ID, c.Scope)
}
func (c CaptureUnificationVar) key() string { return fmt.Sprintf("cuvar:%d", c.ID) }

// CaptureSet is a set of Capture atoms.
type CaptureSet struct {
	elems []Capture
}

// NewCaptureSet builds a deduplicated CaptureSet.
func NewCaptureSet(caps ...Capture) CaptureSet {
	var out CaptureSet
	for _, c := range caps {
		out = out.add(c)
	}
	return out
}

func (c CaptureSet) add(cap Capture) CaptureSet {
	k := cap.key()
	for _, existing := range c.elems {
		if existing.key() == k {
			return c
		}
	}
	next := make([]Capture, len(c.elems)+1)
	copy(next, c.elems)
	next[len(c.elems)] = cap
	return CaptureSet{elems: next}
}

// Union returns the deduplicated union of two capture sets.
func (c CaptureSet) Union(other CaptureSet) CaptureSet {
	out := c
	for _, cap := range other.elems {
		out = out.add(cap)
	}
	return out
}

// Equal compares two capture sets by member key set.
func (c CaptureSet) Equal(other CaptureSet) bool {
	if len(c.elems) != len(other.elems) {
		return false
	}
	for _, cap := range c.elems {
		found := false
		for _, o := range other.elems {
			if o.key() == cap.key() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Apply returns c unchanged. Subs holds only value-type bindings; capture
// unification variables are solved in pkg/unify's separate capture
// substitution (Engine.substituteCaptureSet), which Apply does not see, so
// a CaptureUnificationVar in c is left as it is.
func (c CaptureSet) Apply(s Subs) CaptureSet {
	return c
}

func (c CaptureSet) FreeVars() VarSet {
	var out VarSet
	for _, cap := range c.elems {
		if cv, ok := cap.(CaptureUnificationVar); ok {
			if out == nil {
				out = VarSet{}
			}
			out[cv.ID] = struct{}{}
		}
	}
	return out
}

// Elems returns the set's elements in a stable order.
func (c CaptureSet) Elems() []Capture {
	out := append([]Capture{}, c.elems...)
	sort.Slice(out, func(i, j int) bool { return out[i].key() < out[j].key() })
	return out
}

func (c CaptureSet) String() string {
	elems := c.Elems()
	parts := make([]string, len(elems))
	for i, cap := range elems {
		parts[i] = cap.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
