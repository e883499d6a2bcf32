// SPDX-License-Identifier: MIT
//
// File: cycles.go
// Role: Diagnostic report of the elementary cycles in the edge relation.
// Determinism:
//   - Each cycle is reported once, starting at its smallest NodeID.
//   - Successors are followed in edge creation order; the result is sorted.

package cgraph

import (
	"slices"
)

// Path colors of the cycle search.
type color uint8

const (
	white color = iota // not on the current path
	gray                // on the current path
)

// Cycles returns every elementary cycle of the successor relation.
// Each cycle is closed and starts at its smallest NodeID: [a, b, a].
// A self-loop is [a, a].
//
// Evaluation never needs this: cycles are already safe there. It exists so
// callers can audit rule sets before shipping them.
//
// Complexity: exponential in the worst case, as the number of elementary
// cycles can be; rule graphs are small and mostly acyclic.
func (g *Graph[K, V]) Cycles() [][]NodeID {
	marks := make([]color, g.nodes.Len())
	path := make([]NodeID, 0, 16)
	var cycles [][]NodeID

	var walk func(root, id NodeID)
	walk = func(root, id NodeID) {
		// 1) Put id on the current path.
		marks[id] = gray
		path = append(path, id)

		// 2) Follow successors that stay above root; closing back at root is a cycle.
		n, _ := g.nodes.Get(id)
		for _, eid := range n.Succs {
			e, _ := g.edges.Get(eid)
			switch {
			case e.Succ == root:
				cyc := make([]NodeID, 0, len(path)+1)
				cyc = append(cyc, path...)
				cycles = append(cycles, append(cyc, root))
			case e.Succ > root && marks[e.Succ] == white:
				walk(root, e.Succ)
			}
		}

		// 3) Backtrack.
		path = path[:len(path)-1]
		marks[id] = white
	}

	// Rooting every search at the smallest node of its cycle makes each
	// cycle appear exactly once, already in canonical rotation.
	for _, root := range g.nodes.Keys() {
		walk(root, root)
	}

	slices.SortFunc(cycles, func(a, b []NodeID) int { return slices.Compare(a, b) })
	return cycles
}
