// Package symbols defines the identities that flow from name resolution
// through the typer and into the back end. Symbols are created once, during
// name resolution (external to this module), and never change identity
// afterward; everything this module knows about a symbol lives in a typing
// context (pkg/typectx), not on the symbol itself.
package symbols

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies what a Symbol denotes.
type Kind int

const (
	// ValueSymbol denotes a let-bound or pattern-bound value.
	ValueSymbol Kind = iota
	// BlockSymbol denotes a function, parameter, handler, or operation.
	// Block symbols are second-class: Var on a BlockSymbol is a typing error.
	BlockSymbol
	// TypeSymbol denotes a type constructor, data type, or interface.
	TypeSymbol
	// CaptureSymbol denotes a capture-set parameter introduced by a block
	// literal or function definition.
	CaptureSymbol
)

func (k Kind) String() string {
	switch k {
	case ValueSymbol:
		return "value"
	case BlockSymbol:
		return "block"
	case TypeSymbol:
		return "type"
	case CaptureSymbol:
		return "capture"
	default:
		return "unknown"
	}
}

// Symbol is a globally unique identity. Two Symbols are the same binding iff
// they are ==; Name is display-only and is never used for equality.
type Symbol struct {
	id   uuid.UUID
	seq  int64
	Name string
	Kind Kind
}

// global sequence counter. Sequence numbers (not the UUID text) back the
// deterministic "sort by symbol identity" ordering required by spec §5,
// since uuid.NewV7 is only coarsely time-ordered and ordering diagnostics
// must be exact even for symbols minted within the same tick.
var nextSeq int64

// New creates a fresh Symbol. Called exactly once per binding site by name
// resolution (external to this module); this module only ever consumes
// Symbols that already exist.
func New(name string, kind Kind) Symbol {
	id, err := uuid.NewV7()
	if err != nil {
		// uuid.NewV7 only fails if the system entropy source is broken;
		// fall back to a random v4 rather than propagating an error through
		// every call site that mints a symbol.
		id = uuid.New()
	}
	nextSeq++
	return Symbol{id: id, seq: nextSeq, Name: name, Kind: kind}
}

// ID returns the symbol's globally unique identity.
func (s Symbol) ID() uuid.UUID { return s.id }

// Seq returns the monotonic creation order, used to make candidate
// iteration and diagnostic ordering deterministic (spec §5).
func (s Symbol) Seq() int64 { return s.seq }

// Less orders symbols by creation sequence, giving overload-resolution and
// diagnostic output a stable, deterministic order independent of map
// iteration.
func Less(a, b Symbol) bool { return a.seq < b.seq }

func (s Symbol) String() string {
	return fmt.Sprintf("%s/%s", s.Name, s.Kind)
}

// IsZero reports whether s is the zero Symbol (never minted by New).
func (s Symbol) IsZero() bool { return s.seq == 0 }
