package main

import (
	"fmt"
	"io"

	"github.com/efflang/ec/pkg/diag"
)

// recoverInvariant runs fn, turning an *diag.InternalInvariant panic into
// an error instead of letting it escape the process. diag.Raise is used
// throughout pkg/mlback and pkg/typer for shapes their lowering/checking
// rules assume cannot occur (spec's Bug severity); this is the one place
// in the whole program such a panic is allowed to surface, matching the
// rule that internal invariant failures are reported as bugs, never as
// ordinary control flow inside a package.
func recoverInvariant(w io.Writer, koutput string, fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		inv, ok := r.(*diag.InternalInvariant)
		if !ok {
			panic(r)
		}
		fmt.Fprintf(w, "bug: %s\n", inv.Error())
		err = fmt.Errorf("internal invariant violated")
	}()
	return fn()
}

// renderDiagnostics writes every entry of bag to w, as plain text or as a
// YAML document per koutput ("text" or "yaml"; any other value falls back
// to text). It reports whether any entry is severe enough to fail the
// run: everything above diag.Buffered, per §6's "exit code 0 on success,
// non-zero on any diagnostic of severity Error" (this taxonomy has no
// single "Error" tag — every non-Buffered severity is fatal to some
// scope, so any of them fails the overall run).
func renderDiagnostics(w io.Writer, bag *diag.Bag, koutput string) (failed bool) {
	if bag.Empty() {
		return false
	}

	if koutput == "yaml" {
		_ = diag.WriteYAML(w, bag)
	} else {
		for _, d := range bag.Entries() {
			fmt.Fprintf(w, "%s: %s\n", d.Severity(), d.Error())
		}
	}

	return bag.HasErrors()
}

// renderFatal writes a single fatal diagnostic — the ML Transformer's
// structural error return (mutual recursion, a polymorphic or
// higher-order extern) — in the same two formats.
func renderFatal(w io.Writer, d diag.Diagnostic, koutput string) {
	if koutput == "yaml" {
		bag := diag.NewBag()
		bag.Add(d)
		_ = diag.WriteYAML(w, bag)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", d.Severity(), d.Error())
}
