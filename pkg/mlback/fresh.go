package mlback

import "fmt"

// freshTmp returns a target identifier guaranteed distinct from every name
// (*names).of has handed out so far — used for BlockLit's trailing
// continuation parameter and Shift's captured-continuation binding, the
// places the transformer itself introduces a binder with no source symbol
// behind it.
func (tr *transformer) freshTmp() string {
	for {
		tr.tmpCounter++
		candidate := fmt.Sprintf("t%d", tr.tmpCounter)
		if !tr.names.taken[candidate] {
			tr.names.taken[candidate] = true
			return candidate
		}
	}
}
