// SPDX-License-Identifier: MIT
//
// File: builder.go
// Role: Incremental, validated construction of a constraint graph.
// Policy:
//   - Every method either commits its whole effect or fails before mutating state.
//   - Value nodes are deduplicated by NodeValue; first writer wins for info, metadata and domains.
//   - At most one edge per ordered (pred, succ) pair; a differing re-declaration is an error.
//   - Build moves the arenas into a Graph; the Builder is unusable afterwards.
// Concurrency:
//   - Single writer. A Builder must not be shared between goroutines without external locking.

package cgraph

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/constraintgraph/densemap"
)

// Method names used as error prefixes.
const (
	methodMakeDomain        = "MakeDomain"
	methodMakeValueNode     = "MakeValueNode"
	methodMakeEdge          = "MakeEdge"
	methodMakeAllAggregator = "MakeAllAggregator"
	methodMakeAnyAggregator = "MakeAnyAggregator"
	methodMakeInAggregator  = "MakeInAggregator"
)

type edgeKey struct {
	pred, succ NodeID
}

// Builder constructs a Graph. The zero value is not usable; call NewBuilder.
type Builder[K comparable, V Value[K]] struct {
	cfg   builderConfig
	built bool

	domains *densemap.Map[DomainID, DomainInfo]
	nodes   *densemap.Map[NodeID, Node[K, V]]
	edges   *densemap.Map[EdgeID, Edge]

	// info and meta are parallel to nodes: same handle, same length.
	info *densemap.Map[NodeID, string]
	meta *densemap.Map[NodeID, Metadata]

	domainIndex map[string]DomainID
	valueIndex  map[NodeValue[K, V]]NodeID
	edgeIndex   map[edgeKey]EdgeID
}

// NewBuilder returns an empty Builder.
func NewBuilder[K comparable, V Value[K]](opts ...BuilderOption) *Builder[K, V] {
	return &Builder[K, V]{
		cfg:         newBuilderConfig(opts),
		domains:     densemap.New[DomainID, DomainInfo](),
		nodes:       densemap.New[NodeID, Node[K, V]](),
		edges:       densemap.New[EdgeID, Edge](),
		info:        densemap.New[NodeID, string](),
		meta:        densemap.New[NodeID, Metadata](),
		domainIndex: make(map[string]DomainID),
		valueIndex:  make(map[NodeValue[K, V]]NodeID),
		edgeIndex:   make(map[edgeKey]EdgeID),
	}
}

// MakeDomain registers identifier and returns its id. Re-registering an
// identifier returns the existing id and keeps the first description.
//
// Errors:
//   - ErrBuilderConsumed after Build.
//
// Complexity: O(1).
func (b *Builder[K, V]) MakeDomain(identifier, description string) (DomainID, error) {
	if b.built {
		return 0, wrapf(methodMakeDomain, ErrBuilderConsumed, "domain %q", identifier)
	}
	if id, ok := b.domainIndex[identifier]; ok {
		return id, nil
	}

	id := b.domains.Push(DomainInfo{Identifier: identifier, Description: description})
	b.domainIndex[identifier] = id
	b.cfg.logger.Debug("domain registered",
		zap.String("domain", identifier), zap.Uint32("id", uint32(id)))

	return id, nil
}

// MakeValueNode returns the node for value, creating it on first sight.
//
// Implementation:
//   - Stage 1: Resolve every domain identifier (ErrDomainNotFound on the first miss).
//   - Stage 2: On a dedup hit return the existing id; info, metadata and domains of
//     this call are ignored.
//   - Stage 3: Otherwise push the node with its info and metadata slots.
//
// Complexity: O(len(domains)).
func (b *Builder[K, V]) MakeValueNode(
	value NodeValue[K, V],
	info string,
	domains []string,
	meta Metadata,
) (NodeID, error) {
	if b.built {
		return 0, wrapf(methodMakeValueNode, ErrBuilderConsumed, "value %v", value)
	}
	domainIDs, err := b.resolveDomains(methodMakeValueNode, domains)
	if err != nil {
		return 0, err
	}
	if id, ok := b.valueIndex[value]; ok {
		return id, nil
	}

	id := b.pushNode(Node[K, V]{Kind: KindValue, Value: value, Domains: domainIDs}, info, meta)
	b.valueIndex[value] = id
	b.cfg.logger.Debug("value node created",
		zap.Uint32("node", uint32(id)), zap.Stringer("value", value), zap.String("info", info))

	return id, nil
}

// MakeFactNode is MakeValueNode(ValueOf(v), ...).
func (b *Builder[K, V]) MakeFactNode(v V, info string, domains []string, meta Metadata) (NodeID, error) {
	return b.MakeValueNode(ValueOf[K](v), info, domains, meta)
}

// MakeKeyNode is MakeValueNode(KeyOf(k), ...).
func (b *Builder[K, V]) MakeKeyNode(k K, info string, domains []string, meta Metadata) (NodeID, error) {
	return b.MakeValueNode(KeyOf[K, V](k), info, domains, meta)
}

// MakeEdge connects pred → succ.
//
// Behavior highlights:
//   - Same (pred, succ) with equal strength and relation returns the existing id.
//   - Same pair with different attributes fails with ErrConflictingEdge.
//   - Self-loops are allowed; evaluation treats them as unmet dependencies.
//
// Errors:
//   - ErrNodeNotFound if either endpoint is unknown.
//   - ErrConflictingEdge as above.
//   - ErrBuilderConsumed after Build.
//
// Complexity: O(1) amortized.
func (b *Builder[K, V]) MakeEdge(pred, succ NodeID, strength Strength, relation Relation) (EdgeID, error) {
	if b.built {
		return 0, wrapf(methodMakeEdge, ErrBuilderConsumed, "%d->%d", pred, succ)
	}
	if err := b.ensureNode(methodMakeEdge, pred); err != nil {
		return 0, err
	}
	if err := b.ensureNode(methodMakeEdge, succ); err != nil {
		return 0, err
	}

	if id, ok := b.edgeIndex[edgeKey{pred, succ}]; ok {
		existing, _ := b.edges.Get(id)
		if existing.Strength == strength && existing.Relation == relation {
			return id, nil
		}
		b.cfg.logger.Debug("edge conflict",
			zap.Uint32("pred", uint32(pred)), zap.Uint32("succ", uint32(succ)),
			zap.Stringer("have_strength", existing.Strength), zap.Stringer("want_strength", strength),
			zap.Stringer("have_relation", existing.Relation), zap.Stringer("want_relation", relation))
		return 0, wrapf(methodMakeEdge, ErrConflictingEdge,
			"%d->%d exists as %s/%s, requested %s/%s",
			pred, succ, existing.Strength, existing.Relation, strength, relation)
	}

	return b.link(pred, succ, strength, relation), nil
}

// MakeAllAggregator creates a conjunction over members and wires one edge per
// member into it.
//
// Implementation:
//   - Stage 1: Validate every member exists and that repeated members agree on
//     strength and relation, so no edge creation can fail after the node is pushed.
//   - Stage 2: Resolve domains.
//   - Stage 3: Push the aggregator, then link member edges in input order.
//
// Errors: ErrNodeNotFound, ErrConflictingEdge, ErrDomainNotFound, ErrBuilderConsumed.
//
// Complexity: O(len(members) + len(domains)).
func (b *Builder[K, V]) MakeAllAggregator(
	members []AllMember,
	info string,
	meta Metadata,
	domains []string,
) (NodeID, error) {
	if b.built {
		return 0, wrapf(methodMakeAllAggregator, ErrBuilderConsumed, "%q", info)
	}
	seen := make(map[NodeID]AllMember, len(members))
	for _, m := range members {
		if err := b.ensureNode(methodMakeAllAggregator, m.Node); err != nil {
			return 0, err
		}
		if prev, ok := seen[m.Node]; ok && prev != m {
			return 0, wrapf(methodMakeAllAggregator, ErrConflictingEdge,
				"member %d listed as %s/%s and %s/%s",
				m.Node, prev.Strength, prev.Relation, m.Strength, m.Relation)
		}
		seen[m.Node] = m
	}
	domainIDs, err := b.resolveDomains(methodMakeAllAggregator, domains)
	if err != nil {
		return 0, err
	}

	id := b.pushNode(Node[K, V]{Kind: KindAll, Domains: domainIDs}, info, meta)
	for _, m := range members {
		if _, dup := b.edgeIndex[edgeKey{m.Node, id}]; dup {
			continue
		}
		b.link(m.Node, id, m.Strength, m.Relation)
	}
	b.cfg.logger.Debug("all aggregator created",
		zap.Uint32("node", uint32(id)), zap.Int("members", len(seen)), zap.String("info", info))

	return id, nil
}

// MakeAnyAggregator creates a disjunction over members. Every member edge is
// Strong: a satisfied branch fully satisfies the aggregator.
//
// Errors: ErrNodeNotFound, ErrConflictingEdge, ErrDomainNotFound, ErrBuilderConsumed.
func (b *Builder[K, V]) MakeAnyAggregator(
	members []AnyMember,
	info string,
	meta Metadata,
	domains []string,
) (NodeID, error) {
	if b.built {
		return 0, wrapf(methodMakeAnyAggregator, ErrBuilderConsumed, "%q", info)
	}
	seen := make(map[NodeID]Relation, len(members))
	for _, m := range members {
		if err := b.ensureNode(methodMakeAnyAggregator, m.Node); err != nil {
			return 0, err
		}
		if prev, ok := seen[m.Node]; ok && prev != m.Relation {
			return 0, wrapf(methodMakeAnyAggregator, ErrConflictingEdge,
				"member %d listed as %s and %s", m.Node, prev, m.Relation)
		}
		seen[m.Node] = m.Relation
	}
	domainIDs, err := b.resolveDomains(methodMakeAnyAggregator, domains)
	if err != nil {
		return 0, err
	}

	id := b.pushNode(Node[K, V]{Kind: KindAny, Domains: domainIDs}, info, meta)
	for _, m := range members {
		if _, dup := b.edgeIndex[edgeKey{m.Node, id}]; dup {
			continue
		}
		b.link(m.Node, id, Strong, m.Relation)
	}
	b.cfg.logger.Debug("any aggregator created",
		zap.Uint32("node", uint32(id)), zap.Int("members", len(seen)), zap.String("info", info))

	return id, nil
}

// MakeInAggregator creates a set-membership node over values. It has no
// incoming edges; evaluation compares the context's values for the shared key
// against the set.
//
// Errors:
//   - ErrNoInAggregatorValues when values is empty.
//   - *MalformedGraphError (matches ErrMalformedGraph) when keys differ.
//   - ErrDomainNotFound, ErrBuilderConsumed.
func (b *Builder[K, V]) MakeInAggregator(
	values []V,
	info string,
	meta Metadata,
	domains []string,
) (NodeID, error) {
	if b.built {
		return 0, wrapf(methodMakeInAggregator, ErrBuilderConsumed, "%q", info)
	}
	if len(values) == 0 {
		return 0, wrapf(methodMakeInAggregator, ErrNoInAggregatorValues, "%q", info)
	}
	key := values[0].Key()
	set := make(map[V]struct{}, len(values))
	ordered := make([]V, 0, len(values))
	for _, v := range values {
		if v.Key() != key {
			return 0, wrapf(methodMakeInAggregator,
				&MalformedGraphError{Reason: "values for 'in' aggregator not of same key"},
				"%v vs %v", key, v.Key())
		}
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		ordered = append(ordered, v)
	}
	domainIDs, err := b.resolveDomains(methodMakeInAggregator, domains)
	if err != nil {
		return 0, err
	}

	id := b.pushNode(Node[K, V]{
		Kind:     KindIn,
		InKey:    key,
		InValues: ordered,
		inSet:    set,
		Domains:  domainIDs,
	}, info, meta)
	b.cfg.logger.Debug("in aggregator created",
		zap.Uint32("node", uint32(id)), zap.Int("values", len(ordered)), zap.String("info", info))

	return id, nil
}

// Build freezes the builder into an immutable Graph. Later calls on b fail
// with ErrBuilderConsumed; a second Build returns nil.
//
// Complexity: O(V) to precompute per-node domain identifiers.
func (b *Builder[K, V]) Build() *Graph[K, V] {
	if b.built {
		return nil
	}
	b.built = true

	g := &Graph[K, V]{
		domains:     b.domains,
		nodes:       b.nodes,
		edges:       b.edges,
		info:        b.info,
		meta:        b.meta,
		domainIndex: b.domainIndex,
		valueIndex:  b.valueIndex,
		nodeDomains: make([][]string, b.nodes.Len()),
	}
	b.nodes.Range(func(id NodeID, n Node[K, V]) bool {
		if len(n.Domains) == 0 {
			return true
		}
		names := make([]string, len(n.Domains))
		for i, d := range n.Domains {
			di, _ := b.domains.Get(d)
			names[i] = di.Identifier
		}
		g.nodeDomains[id] = names
		return true
	})
	b.cfg.logger.Debug("graph built",
		zap.Int("nodes", g.NodeCount()), zap.Int("edges", g.EdgeCount()), zap.Int("domains", g.DomainCount()))

	b.domains, b.nodes, b.edges, b.info, b.meta = nil, nil, nil, nil, nil
	b.domainIndex, b.valueIndex, b.edgeIndex = nil, nil, nil

	return g
}

// pushNode stores n together with its info and metadata slots and stamps its id.
func (b *Builder[K, V]) pushNode(n Node[K, V], info string, meta Metadata) NodeID {
	id := b.nodes.Push(n)
	b.info.Push(info)
	b.meta.Push(meta)
	stored, _ := b.nodes.GetMut(id)
	stored.ID = id

	return id
}

// link creates an edge assumed valid and absent from the index.
func (b *Builder[K, V]) link(pred, succ NodeID, strength Strength, relation Relation) EdgeID {
	id := b.edges.Push(Edge{Pred: pred, Succ: succ, Strength: strength, Relation: relation})
	e, _ := b.edges.GetMut(id)
	e.ID = id
	b.edgeIndex[edgeKey{pred, succ}] = id

	p, _ := b.nodes.GetMut(pred)
	p.Succs = append(p.Succs, id)
	s, _ := b.nodes.GetMut(succ)
	s.Preds = append(s.Preds, id)

	return id
}

func (b *Builder[K, V]) ensureNode(method string, id NodeID) error {
	if !b.nodes.ContainsKey(id) {
		return wrapf(method, ErrNodeNotFound, "node %d", id)
	}
	return nil
}

func (b *Builder[K, V]) resolveDomains(method string, identifiers []string) ([]DomainID, error) {
	if len(identifiers) == 0 {
		return nil, nil
	}
	out := make([]DomainID, 0, len(identifiers))
	for _, ident := range identifiers {
		id, ok := b.domainIndex[ident]
		if !ok {
			return nil, wrapf(method, ErrDomainNotFound, "domain %q", ident)
		}
		out = append(out, id)
	}

	return out, nil
}
