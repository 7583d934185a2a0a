package unify

import "github.com/efflang/ec/pkg/types"

// binding is one trail entry: the unification variable id that was bound,
// and the type it was bound to, so an undo can restore exactly the prior
// (unbound) state.
type binding struct {
	id  int64
	was types.ValueType // nil if id was previously unbound
	had bool
}

// scopeMark records the trail length and next-id counters at the moment a
// scope opened. LeaveScope pops it without reading it and rolls nothing
// back; undoing bindings is done only by Snapshot/Restore.
type scopeMark struct {
	trailLen    int
	nextValueID int64
	nextCaptID  int64
}
