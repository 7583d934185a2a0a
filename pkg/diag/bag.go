package diag

// Bag accumulates diagnostics for one compilation unit (or, nested, for
// one overload-resolution trial). The Typer keeps a single top-level Bag
// per compilation and buffers into it as it checks each definition;
// overload resolution calls Fork per candidate and only Merges the
// winner's fork back in (spec §7's "local buffer per trial; promote only
// the winner's").
type Bag struct {
	entries []Diagnostic
}

// NewBag returns an empty Bag.
func NewBag() *Bag { return &Bag{} }

// Add records d.
func (b *Bag) Add(d Diagnostic) { b.entries = append(b.entries, d) }

// Fork returns a fresh, independent Bag for a trial whose diagnostics
// should not be visible until (and unless) the trial is chosen.
func (b *Bag) Fork() *Bag { return NewBag() }

// Merge appends other's entries onto b, in order.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.entries = append(b.entries, other.entries...)
}

// Entries returns the accumulated diagnostics in the order they were
// added.
func (b *Bag) Entries() []Diagnostic { return b.entries }

// Empty reports whether no diagnostics have been recorded.
func (b *Bag) Empty() bool { return len(b.entries) == 0 }

// HasErrors reports whether any recorded diagnostic is severe enough that
// downstream phases must not run (anything other than Buffered). The
// driver calls this after each phase (spec §6/§7: "a non-empty
// error-severity set skips downstream phases").
func (b *Bag) HasErrors() bool {
	for _, d := range b.entries {
		if d.Severity() != Buffered {
			return true
		}
	}
	return false
}

// BySeverity groups entries by their severity, preserving relative order
// within each group.
func (b *Bag) BySeverity() map[Severity][]Diagnostic {
	out := make(map[Severity][]Diagnostic)
	for _, d := range b.entries {
		out[d.Severity()] = append(out[d.Severity()], d)
	}
	return out
}
