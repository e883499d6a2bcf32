// SPDX-License-Identifier: MIT
//
// File: dot.go
// Role: Graphviz DOT export for reviewing rule graphs.

package cgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDOT writes g in Graphviz DOT syntax.
//
// Value nodes are ellipses labelled with their value; ALL, ANY and IN nodes are
// boxes labelled with their kind. Info labels, when set, follow on a second line.
// Weak edges are dashed; Negative edges end in a tee.
//
// Output is deterministic (ascending ids).
func (g *Graph[K, V]) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph constraints {")
	g.nodes.Range(func(id NodeID, n Node[K, V]) bool {
		label, shape := n.Kind.String(), "box"
		switch n.Kind {
		case KindValue:
			label, shape = n.Value.String(), "ellipse"
		case KindIn:
			label = fmt.Sprintf("%v in %v", n.InKey, n.InValues)
		}
		if info, _ := g.info.Get(id); info != "" {
			label += "\n" + info
		}
		fmt.Fprintf(bw, "  n%d [label=%s, shape=%s];\n", id, strconv.Quote(label), shape)
		return true
	})
	g.edges.Range(func(_ EdgeID, e Edge) bool {
		style, head := "solid", "normal"
		if e.Strength == Weak {
			style = "dashed"
		}
		if e.Relation == Negative {
			head = "tee"
		}
		fmt.Fprintf(bw, "  n%d -> n%d [style=%s, arrowhead=%s];\n", e.Pred, e.Succ, style, head)
		return true
	})
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}
