package mlback

import "github.com/efflang/ec/pkg/diag"

// fatalSignal carries a FatalToCompilation-severity diagnostic up through
// a panic/recover, the same discipline diag.Raise uses for Bug-severity
// InternalInvariant — Transform is the only place that recovers it. An
// InternalInvariant panic is never wrapped this way and propagates past
// Transform unrecovered, to the driver's own outermost boundary.
type fatalSignal struct{ d diag.Diagnostic }

func raiseFatal(d diag.Diagnostic) { panic(fatalSignal{d}) }
