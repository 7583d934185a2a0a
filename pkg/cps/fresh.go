package cps

import "fmt"

// freshCounter backs freshName the same way pkg/symbols backs Symbol
// identity with a monotonic sequence counter: these names never need to
// survive past one compilation run, so a package-level counter (reset by
// nothing — each run starts a fresh process) is enough, with no attempt at
// global uniqueness beyond that run.
var freshCounter int

// freshName mints a target-level identifier, used where a combinator must
// name something with no corresponding source symbol (join's let-bound
// continuation, a static continuation's reified parameter).
func freshName(prefix string) string {
	freshCounter++
	return fmt.Sprintf("%s%d", prefix, freshCounter)
}
