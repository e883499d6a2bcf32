// SPDX-License-Identifier: MIT
package cgraph_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/constraintgraph/cgraph"
)

// TestCycles reports a 2-cycle, a self-loop, and ignores acyclic parts.
func TestCycles(t *testing.T) {
	b := newBuilder()
	n0 := mustFact(t, b, visa)
	n1 := mustFact(t, b, usd)
	n2 := mustFact(t, b, eur)
	n3 := mustFact(t, b, amex)

	for _, e := range [][2]cgraph.NodeID{{n0, n1}, {n1, n2}, {n2, n1}, {n3, n3}} {
		_, err := b.MakeEdge(e[0], e[1], cgraph.Strong, cgraph.Positive)
		require.NoError(t, err)
	}
	g := b.Build()

	want := [][]cgraph.NodeID{{n1, n2, n1}, {n3, n3}}
	if diff := cmp.Diff(want, g.Cycles()); diff != "" {
		t.Fatalf("Cycles mismatch (-want +got):\n%s", diff)
	}

	acyclic, _ := paymentGraph(t)
	require.Empty(t, acyclic.Cycles())
}

// TestCycles_SharedNodes reports every elementary cycle through a common node,
// including ones that a plain back-edge walk would skip.
func TestCycles_SharedNodes(t *testing.T) {
	b := newBuilder()
	a := mustFact(t, b, visa)
	bb := mustFact(t, b, usd)
	c := mustFact(t, b, eur)

	for _, e := range [][2]cgraph.NodeID{{a, bb}, {bb, a}, {a, c}, {c, bb}} {
		_, err := b.MakeEdge(e[0], e[1], cgraph.Strong, cgraph.Positive)
		require.NoError(t, err)
	}
	g := b.Build()

	want := [][]cgraph.NodeID{{a, bb, a}, {a, c, bb, a}}
	if diff := cmp.Diff(want, g.Cycles()); diff != "" {
		t.Fatalf("Cycles mismatch (-want +got):\n%s", diff)
	}
}

// TestWriteDOT checks node shapes and edge styles.
func TestWriteDOT(t *testing.T) {
	b := newBuilder()
	p := mustFact(t, b, visa)
	in, err := b.MakeInAggregator([]fact{usd}, "", nil, nil)
	require.NoError(t, err)
	_, err = b.MakeAllAggregator([]cgraph.AllMember{
		{Node: p, Strength: cgraph.Weak, Relation: cgraph.Negative},
		{Node: in},
	}, "gate", nil, nil)
	require.NoError(t, err)
	g := b.Build()

	var buf bytes.Buffer
	require.NoError(t, g.WriteDOT(&buf))
	want := "digraph constraints {\n" +
		"  n0 [label=\"{payment_method visa}\\nvisa\", shape=ellipse];\n" +
		"  n1 [label=\"currency in [{currency USD}]\", shape=box];\n" +
		"  n2 [label=\"all\\ngate\", shape=box];\n" +
		"  n0 -> n2 [style=dashed, arrowhead=tee];\n" +
		"  n1 -> n2 [style=solid, arrowhead=normal];\n" +
		"}\n"
	require.Equal(t, want, buf.String())
}
