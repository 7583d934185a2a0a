package unify

import (
	"fmt"

	"github.com/pkg/errors"
)

// Failure is the error type every require* operation fails with. The Typer
// lifts it into a diagnostic at the current focus.
type Failure struct {
	Left, Right fmt.Stringer
	Cause       error
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("cannot unify %s with %s: %s", f.Left, f.Right, f.Cause)
	}
	return fmt.Sprintf("cannot unify %s with %s", f.Left, f.Right)
}

func (f *Failure) Unwrap() error { return f.Cause }

func fail(left, right fmt.Stringer, format string, args ...any) *Failure {
	return &Failure{Left: left, Right: right, Cause: errors.Errorf(format, args...)}
}

// EscapingSkolem reports a rigid variable or unsolved unification variable
// that would escape the scope in which it was created.
type EscapingSkolem struct {
	Var   fmt.Stringer
	Scope int
}

func (e *EscapingSkolem) Error() string {
	return errors.Errorf("%s escapes its creating scope %d", e.Var, e.Scope).Error()
}

// escapingSkolem wraps v as an *EscapingSkolem; v is typically a
// types.ValueType or a types.Capture.
func escapingSkolem(v fmt.Stringer, scope int) *EscapingSkolem {
	return &EscapingSkolem{Var: v, Scope: scope}
}
