// SPDX-License-Identifier: MIT
//
// File: graph.go
// Role: The frozen constraint graph and its read-only accessors.
// Concurrency:
//   - A Graph never changes after Build; every method is safe for concurrent use.
//   - Returned Node values and slices are copies; modifying them never reaches the graph.

package cgraph

import (
	"slices"

	"github.com/katalvlaran/constraintgraph/densemap"
)

// Graph is an immutable constraint graph produced by Builder.Build.
type Graph[K comparable, V Value[K]] struct {
	domains *densemap.Map[DomainID, DomainInfo]
	nodes   *densemap.Map[NodeID, Node[K, V]]
	edges   *densemap.Map[EdgeID, Edge]
	info    *densemap.Map[NodeID, string]
	meta    *densemap.Map[NodeID, Metadata]

	domainIndex map[string]DomainID
	valueIndex  map[NodeValue[K, V]]NodeID

	// nodeDomains[id] lists the domain identifiers of node id (nil when unscoped).
	nodeDomains [][]string
}

// NodeCount returns the number of nodes. O(1).
func (g *Graph[K, V]) NodeCount() int { return g.nodes.Len() }

// EdgeCount returns the number of edges. O(1).
func (g *Graph[K, V]) EdgeCount() int { return g.edges.Len() }

// DomainCount returns the number of registered domains. O(1).
func (g *Graph[K, V]) DomainCount() int { return g.domains.Len() }

// Node returns a copy of the node stored under id.
// Its slices are cloned, so callers may retain and modify them freely.
func (g *Graph[K, V]) Node(id NodeID) (Node[K, V], bool) {
	n, ok := g.nodes.Get(id)
	if !ok {
		return Node[K, V]{}, false
	}
	n.InValues = slices.Clone(n.InValues)
	n.Domains = slices.Clone(n.Domains)
	n.Preds = slices.Clone(n.Preds)
	n.Succs = slices.Clone(n.Succs)

	return n, true
}

// Edge returns the edge stored under id.
func (g *Graph[K, V]) Edge(id EdgeID) (Edge, bool) {
	return g.edges.Get(id)
}

// EdgeBetween returns the edge pred → succ if one exists. O(deg(succ)).
func (g *Graph[K, V]) EdgeBetween(pred, succ NodeID) (Edge, bool) {
	n, ok := g.nodes.Get(succ)
	if !ok {
		return Edge{}, false
	}
	for _, eid := range n.Preds {
		if e, _ := g.edges.Get(eid); e.Pred == pred {
			return e, true
		}
	}

	return Edge{}, false
}

// Domain returns the domain stored under id.
func (g *Graph[K, V]) Domain(id DomainID) (DomainInfo, bool) {
	return g.domains.Get(id)
}

// DomainByIdentifier resolves a domain identifier to its id.
func (g *Graph[K, V]) DomainByIdentifier(identifier string) (DomainID, bool) {
	id, ok := g.domainIndex[identifier]
	return id, ok
}

// NodeDomains returns a copy of the domain identifiers attached to id,
// in declaration order.
func (g *Graph[K, V]) NodeDomains(id NodeID) []string {
	if int(id) >= len(g.nodeDomains) {
		return nil
	}
	return slices.Clone(g.nodeDomains[id])
}

// NodeInfo returns the human-readable label given at construction ("" if none).
func (g *Graph[K, V]) NodeInfo(id NodeID) (string, bool) {
	return g.info.Get(id)
}

// NodeMetadata returns the metadata attached at construction, or nil.
func (g *Graph[K, V]) NodeMetadata(id NodeID) Metadata {
	m, _ := g.meta.Get(id)
	return m
}

// LookupValue returns the value node deduplicated under nv.
func (g *Graph[K, V]) LookupValue(nv NodeValue[K, V]) (NodeID, bool) {
	id, ok := g.valueIndex[nv]
	return id, ok
}

// LookupFact is LookupValue(ValueOf(v)).
func (g *Graph[K, V]) LookupFact(v V) (NodeID, bool) {
	return g.LookupValue(ValueOf[K](v))
}

// LookupKey is LookupValue(KeyOf(k)).
func (g *Graph[K, V]) LookupKey(k K) (NodeID, bool) {
	return g.LookupValue(KeyOf[K, V](k))
}

// Nodes returns every node id in ascending order.
func (g *Graph[K, V]) Nodes() []NodeID { return g.nodes.Keys() }

// Edges returns every edge in ascending id order.
func (g *Graph[K, V]) Edges() []Edge {
	out := make([]Edge, 0, g.edges.Len())
	g.edges.Range(func(_ EdgeID, e Edge) bool {
		out = append(out, e)
		return true
	})

	return out
}
