// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Handles, enums and the node/edge data model shared by Builder and Graph.
// Policy:
//   - Node kinds are a closed set tagged by NodeKind; evaluation switches on it exhaustively.
//   - Handles are dense uint32 indices into densemap arenas, never pointers.

package cgraph

import (
	"fmt"
	"strings"
)

// DomainID identifies a registered domain inside one graph.
type DomainID uint32

// NodeID identifies a node inside one graph.
type NodeID uint32

// EdgeID identifies an edge inside one graph.
type EdgeID uint32

// Value is the constraint on caller-supplied fact types.
// Equality over the whole value drives node deduplication; Key groups values
// that answer the same question (e.g. every "payment_method" value).
type Value[K comparable] interface {
	comparable
	Key() K
}

// Metadata is an optional, behavior-free payload attached to a node.
// It is never consulted during evaluation; callers recover their concrete
// type with a type assertion.
type Metadata interface {
	Describe() string
}

// DomainInfo describes a registered domain.
type DomainInfo struct {
	Identifier  string
	Description string
}

// Strength says whether an edge is mandatory (Strong) or advisory (Weak)
// for its successor.
type Strength uint8

const (
	Strong Strength = iota
	Weak
)

// String implements fmt.Stringer.
func (s Strength) String() string {
	switch s {
	case Strong:
		return "strong"
	case Weak:
		return "weak"
	default:
		return fmt.Sprintf("Strength(%d)", uint8(s))
	}
}

// ParseStrength accepts "strong" or "weak", case-insensitively.
func ParseStrength(s string) (Strength, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strong":
		return Strong, nil
	case "weak":
		return Weak, nil
	}

	return 0, fmt.Errorf("cgraph: unknown strength %q", s)
}

// Relation says whether a true predecessor supports (Positive) or
// opposes (Negative) its successor.
type Relation uint8

const (
	Positive Relation = iota
	Negative
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return fmt.Sprintf("Relation(%d)", uint8(r))
	}
}

// ParseRelation accepts "positive" or "negative", case-insensitively.
func ParseRelation(s string) (Relation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return Positive, nil
	case "negative":
		return Negative, nil
	}

	return 0, fmt.Errorf("cgraph: unknown relation %q", s)
}

// ValueKind tags the two shapes of a NodeValue.
type ValueKind uint8

const (
	// FactValue asserts one concrete value.
	FactValue ValueKind = iota
	// KeyValue asserts that some value is present for a key.
	KeyValue
)

// NodeValue is the deduplication key of a value node.
// Build one with ValueOf or KeyOf.
type NodeValue[K comparable, V Value[K]] struct {
	kind  ValueKind
	key   K
	value V
}

// ValueOf wraps a concrete fact.
func ValueOf[K comparable, V Value[K]](v V) NodeValue[K, V] {
	return NodeValue[K, V]{kind: FactValue, key: v.Key(), value: v}
}

// KeyOf wraps a bare key: the node holds whenever any value for k is asserted.
func KeyOf[K comparable, V Value[K]](k K) NodeValue[K, V] {
	return NodeValue[K, V]{kind: KeyValue, key: k}
}

// Kind reports which shape nv has.
func (nv NodeValue[K, V]) Kind() ValueKind { return nv.kind }

// Key returns the comparison key for either shape.
func (nv NodeValue[K, V]) Key() K { return nv.key }

// Value returns the wrapped fact; ok is false for KeyOf values.
func (nv NodeValue[K, V]) Value() (v V, ok bool) {
	return nv.value, nv.kind == FactValue
}

// String renders the value for traces and DOT labels.
func (nv NodeValue[K, V]) String() string {
	if nv.kind == KeyValue {
		return fmt.Sprintf("%v=*", nv.key)
	}

	return fmt.Sprintf("%v", nv.value)
}

// NodeKind tags the node variants.
type NodeKind uint8

const (
	KindValue NodeKind = iota
	KindAll
	KindAny
	KindIn
)

// String implements fmt.Stringer.
func (k NodeKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindAll:
		return "all"
	case KindAny:
		return "any"
	case KindIn:
		return "in"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// Node is a graph vertex. Which payload fields are meaningful depends on Kind:
// Value for KindValue, InKey/InValues for KindIn, none for KindAll/KindAny.
//
// Nodes returned by Graph share their slices with the graph and must be
// treated as read-only.
type Node[K comparable, V Value[K]] struct {
	ID   NodeID
	Kind NodeKind

	Value NodeValue[K, V]

	InKey    K
	InValues []V // deduplicated, first-seen order
	inSet    map[V]struct{}

	Domains []DomainID
	Preds   []EdgeID // incoming, creation order
	Succs   []EdgeID // outgoing, creation order
}

// Contains reports whether v is a member of an In aggregator's set.
// It is always false for other kinds.
func (n Node[K, V]) Contains(v V) bool {
	_, ok := n.inSet[v]
	return ok
}

// Edge is a directed, labelled connection Pred → Succ.
type Edge struct {
	ID       EdgeID
	Pred     NodeID
	Succ     NodeID
	Strength Strength
	Relation Relation
}

// AllMember describes one input of an ALL aggregator.
type AllMember struct {
	Node     NodeID
	Relation Relation
	Strength Strength
}

// AnyMember describes one input of an ANY aggregator. Its edge is always Strong.
type AnyMember struct {
	Node     NodeID
	Relation Relation
}
