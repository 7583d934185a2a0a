package mlback

import (
	"fmt"

	"github.com/efflang/ec/pkg/symbols"
)

// names assigns each symbol a stable, unique target identifier. Two
// distinct symbols with the same display Name (shadowing, or unrelated
// definitions that happen to share a name) must not collide in the
// emitted toplevel (spec §8's "contains each source definition symbol at
// most once" is only meaningful if distinct symbols get distinct names).
type names struct {
	bySymbol map[symbols.Symbol]string
	taken    map[string]bool
}

func newNames() *names {
	return &names{bySymbol: make(map[symbols.Symbol]string), taken: make(map[string]bool)}
}

// of returns sym's target identifier, minting one on first use: the
// sanitized display name if it is still free, otherwise that name suffixed
// with sym's creation sequence (never its name) to break the tie
// deterministically.
func (n *names) of(sym symbols.Symbol) string {
	if name, ok := n.bySymbol[sym]; ok {
		return name
	}
	base := sanitize(sym.Name)
	name := base
	if n.taken[name] {
		name = fmt.Sprintf("%s_%d", base, sym.Seq())
	}
	n.taken[name] = true
	n.bySymbol[sym] = name
	return name
}

// sanitize strips characters an SML identifier cannot contain; the front
// end already produces lowercase value names and capitalized constructors,
// so no case rewriting happens here.
func sanitize(s string) string {
	if s == "" {
		return "v"
	}
	out := make([]rune, 0, len(s))
	for i, r := range s {
		if isIdentChar(r) && !(i == 0 && r >= '0' && r <= '9') {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}

func isIdentChar(r rune) bool {
	return r == '_' || r == '\'' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
