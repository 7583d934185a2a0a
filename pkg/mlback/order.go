package mlback

import (
	"sort"

	"github.com/efflang/ec/pkg/diag"
	"github.com/efflang/ec/pkg/ir"
	"github.com/efflang/ec/pkg/symbols"
)

// orderDefinitions keeps each Let in its source position (it may run for
// effect) and topologically sorts every maximal run of consecutive Defs
// between Lets by dependency, raising MutualRecursionUnsupported if a run
// contains a cycle (spec §4.5.1).
func orderDefinitions(defs []ir.Definition) ([]ir.Definition, *diag.MutualRecursionUnsupported) {
	var out []ir.Definition
	i := 0
	for i < len(defs) {
		if _, ok := defs[i].(ir.Def); !ok {
			out = append(out, defs[i])
			i++
			continue
		}
		j := i
		for j < len(defs) {
			if _, ok := defs[j].(ir.Def); !ok {
				break
			}
			j++
		}
		sorted, err := topoSortDefs(defs[i:j])
		if err != nil {
			return nil, err
		}
		out = append(out, sorted...)
		i = j
	}
	return out, nil
}

// topoSortDefs performs Kahn's algorithm over one run's dependency graph
// (free variables ∩ the run's own defined ids), grounded on pkg/dang's
// orderByDependencies/topologicalSort. A self-dependency (ordinary
// recursion) is not an edge — only references to a *different* Def in the
// run count, so simple recursion never looks like a cycle.
func topoSortDefs(defs []ir.Definition) ([]ir.Definition, *diag.MutualRecursionUnsupported) {
	n := len(defs)
	if n <= 1 {
		return defs, nil
	}

	declared := make(map[symbols.Symbol]int, n)
	for i, d := range defs {
		declared[d.(ir.Def).ID] = i
	}

	dependencies := make(map[int][]int)
	for i, d := range defs {
		for _, ref := range ir.DefinitionFreeSymbols(d) {
			if depIndex, exists := declared[ref]; exists && depIndex != i {
				dependencies[i] = append(dependencies[i], depIndex)
			}
		}
	}

	inDegree := make([]int, n)
	for dependent, deps := range dependencies {
		inDegree[dependent] = len(deps)
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	result := make([]ir.Definition, 0, n)
	processed := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, defs[current])
		processed++

		for dependent, deps := range dependencies {
			for _, dep := range deps {
				if dep == current {
					inDegree[dependent]--
					if inDegree[dependent] == 0 {
						queue = append(queue, dependent)
					}
				}
			}
		}
	}

	if processed != n {
		return nil, cycleError(defs, declared, dependencies, inDegree)
	}
	return result, nil
}

// cycleError reports every symbol still unprocessed once Kahn's algorithm
// stalls, ordered by symbol creation sequence (symbols.Less) (spec §8
// scenario 7: "both names in the message").
func cycleError(defs []ir.Definition, declared map[symbols.Symbol]int, dependencies map[int][]int, inDegree []int) *diag.MutualRecursionUnsupported {
	var names []symbols.Symbol
	for sym, idx := range declared {
		if inDegree[idx] > 0 {
			names = append(names, sym)
		}
	}
	sort.Slice(names, func(i, j int) bool { return symbols.Less(names[i], names[j]) })
	return &diag.MutualRecursionUnsupported{Names: names}
}
