package diag

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/efflang/ec/pkg/symbols"
)

// Severity says how far a diagnostic's effect propagates once raised.
type Severity int

const (
	// Buffered diagnostics are recorded and checking continues.
	Buffered Severity = iota
	// FatalToDefinition aborts checking the current definition only.
	FatalToDefinition
	// FatalToCall aborts the enclosing call expression only.
	FatalToCall
	// FatalToCompilation aborts the whole back-end pass.
	FatalToCompilation
	// Bug is raised by panicking rather than being buffered.
	Bug
)

func (s Severity) String() string {
	switch s {
	case Buffered:
		return "buffered"
	case FatalToDefinition:
		return "fatal-to-definition"
	case FatalToCall:
		return "fatal-to-call"
	case FatalToCompilation:
		return "fatal-to-compilation"
	case Bug:
		return "bug"
	default:
		return "unknown"
	}
}

// Diagnostic is one member of the closed error taxonomy. Every kind below
// is a distinct Go type rather than a variant tag on a shared struct, so a
// type switch over Diagnostic exhaustively enumerates the taxonomy (the
// same discipline pkg/ast and pkg/ir use for their node interfaces).
type Diagnostic interface {
	error
	Severity() Severity
	Loc() *SourceLocation
}

// ResolutionError is raised when a lookup finds no binding for a symbol.
// Fatal to the definition being checked; checking continues with the next
// definition.
type ResolutionError struct {
	Name     string
	Location *SourceLocation
}

func (e *ResolutionError) Error() string        { return fmt.Sprintf("%q is not defined", e.Name) }
func (e *ResolutionError) Severity() Severity    { return FatalToDefinition }
func (e *ResolutionError) Loc() *SourceLocation  { return e.Location }

// TypeMismatch is raised by a failed unification require*. Buffered; a
// trial inside overload resolution may discard it along with its whole
// local buffer.
type TypeMismatch struct {
	Left, Right fmt.Stringer
	Cause       error
	Location    *SourceLocation
}

func (e *TypeMismatch) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot unify %s with %s: %s", e.Left, e.Right, e.Cause)
	}
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}
func (e *TypeMismatch) Unwrap() error          { return e.Cause }
func (e *TypeMismatch) Severity() Severity     { return Buffered }
func (e *TypeMismatch) Loc() *SourceLocation   { return e.Location }

// EscapingSkolem is raised when a scope closes with a rigid type variable
// it introduced still reachable from a live type.
type EscapingSkolem struct {
	Var      fmt.Stringer
	Scope    int
	Location *SourceLocation
}

func (e *EscapingSkolem) Error() string {
	return errors.Errorf("%s escapes its creating scope %d", e.Var, e.Scope).Error()
}
func (e *EscapingSkolem) Severity() Severity    { return Buffered }
func (e *EscapingSkolem) Loc() *SourceLocation  { return e.Location }

// EscapingEffect is raised when a scope closes with an effect row still
// mentioning a handler local to that scope.
type EscapingEffect struct {
	Eff      fmt.Stringer
	Scope    int
	Location *SourceLocation
}

func (e *EscapingEffect) Error() string {
	return errors.Errorf("effect %s escapes its creating scope %d", e.Eff, e.Scope).Error()
}
func (e *EscapingEffect) Severity() Severity   { return Buffered }
func (e *EscapingEffect) Loc() *SourceLocation { return e.Location }

// Arity is raised when a call or pattern supplies the wrong number of
// arguments/fields.
type Arity struct {
	Expected, Actual int
	Location         *SourceLocation
}

func (e *Arity) Error() string {
	return fmt.Sprintf("expected %d arguments, got %d", e.Expected, e.Actual)
}
func (e *Arity) Severity() Severity   { return Buffered }
func (e *Arity) Loc() *SourceLocation { return e.Location }

// MissingOperation is raised when a handler omits an operation its
// interface declares.
type MissingOperation struct {
	Op        symbols.Symbol
	Interface symbols.Symbol
	Location  *SourceLocation
}

func (e *MissingOperation) Error() string {
	return fmt.Sprintf("handler for %s is missing operation %s", e.Interface.Name, e.Op.Name)
}
func (e *MissingOperation) Severity() Severity   { return Buffered }
func (e *MissingOperation) Loc() *SourceLocation { return e.Location }

// DuplicateOperation is raised when a handler implements the same
// operation more than once.
type DuplicateOperation struct {
	Op       symbols.Symbol
	Location *SourceLocation
}

func (e *DuplicateOperation) Error() string {
	return fmt.Sprintf("operation %s implemented more than once", e.Op.Name)
}
func (e *DuplicateOperation) Severity() Severity   { return Buffered }
func (e *DuplicateOperation) Loc() *SourceLocation { return e.Location }

// UnusedHandler is raised when a handler's declared effect is never
// performed by the body it guards, per spec §4.3 "Handlers".
type UnusedHandler struct {
	Interface symbols.Symbol
	Location  *SourceLocation
}

func (e *UnusedHandler) Error() string {
	return fmt.Sprintf("handler for %s is never used by the guarded body", e.Interface.Name)
}
func (e *UnusedHandler) Severity() Severity   { return Buffered }
func (e *UnusedHandler) Loc() *SourceLocation { return e.Location }

// Ambiguous is raised when overload resolution ends a call site with more
// than one surviving candidate. Fatal to the enclosing call.
type Ambiguous struct {
	Candidates []symbols.Symbol
	Location   *SourceLocation
}

func (e *Ambiguous) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.Name
	}
	return fmt.Sprintf("ambiguous call: candidates %v all apply", names)
}
func (e *Ambiguous) Severity() Severity   { return FatalToCall }
func (e *Ambiguous) Loc() *SourceLocation { return e.Location }

// UnhandledControlEffect is raised when a definition's inferred effect row
// still contains a control effect at its top level once checking finishes.
type UnhandledControlEffect struct {
	Eff      fmt.Stringer
	Location *SourceLocation
}

func (e *UnhandledControlEffect) Error() string {
	return fmt.Sprintf("unhandled effect %s escapes the top level of this definition", e.Eff)
}
func (e *UnhandledControlEffect) Severity() Severity   { return Buffered }
func (e *UnhandledControlEffect) Loc() *SourceLocation { return e.Location }

// MutualRecursionUnsupported is raised by the ML Transformer's definition
// sort when a dependency group cannot be ordered acyclically. Fatal to the
// whole back-end pass (spec's back end "aborts on the first structural
// error").
type MutualRecursionUnsupported struct {
	Names []symbols.Symbol
}

func (e *MutualRecursionUnsupported) Error() string {
	names := make([]string, len(e.Names))
	for i, n := range e.Names {
		names[i] = n.Name
	}
	return fmt.Sprintf("mutual recursion between %v is not supported by this back end", names)
}
func (e *MutualRecursionUnsupported) Severity() Severity   { return FatalToCompilation }
func (e *MutualRecursionUnsupported) Loc() *SourceLocation { return nil }

// PolymorphicExtern is raised when an extern definition carries its own
// type parameters; the back end has no way to specialize a verbatim
// target-code binding per instantiation (spec §7).
type PolymorphicExtern struct {
	Name symbols.Symbol
}

func (e *PolymorphicExtern) Error() string {
	return fmt.Sprintf("extern %s is polymorphic, which this back end does not support", e.Name.Name)
}
func (e *PolymorphicExtern) Severity() Severity   { return FatalToCompilation }
func (e *PolymorphicExtern) Loc() *SourceLocation { return nil }

// HigherOrderExtern is raised when an extern's block type itself takes a
// block parameter; the back end has no way to marshal a higher-order
// capability across the foreign boundary (spec §7).
type HigherOrderExtern struct {
	Name symbols.Symbol
}

func (e *HigherOrderExtern) Error() string {
	return fmt.Sprintf("extern %s is higher-order, which this back end does not support", e.Name.Name)
}
func (e *HigherOrderExtern) Severity() Severity   { return FatalToCompilation }
func (e *HigherOrderExtern) Loc() *SourceLocation { return nil }

// InternalInvariant is panicked, never buffered, when the back end
// encounters an IR shape its lowering rules assumed could not occur (e.g.
// a Shift whose block is not a single-parameter literal). Recover it only
// at the driver's outermost boundary, where it is reported as a bug.
type InternalInvariant struct {
	Message string
}

func (e *InternalInvariant) Error() string { return "internal invariant violated: " + e.Message }

// Raise panics with an *InternalInvariant built from format/args.
func Raise(format string, args ...any) {
	panic(&InternalInvariant{Message: errors.Errorf(format, args...).Error()})
}
