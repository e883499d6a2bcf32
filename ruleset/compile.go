// SPDX-License-Identifier: MIT
//
// File: compile.go
// Role: Drive cgraph.Builder from a Document.
// Policy:
//   - Declarations are applied in document order: domains, nodes, then edges.
//   - Names resolve only to nodes declared earlier.
//   - Two names declaring the same fact share one node (value dedup).

package ruleset

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/constraintgraph/cgraph"
)

// Compiled is a built graph plus the name table of its document.
type Compiled struct {
	Graph *cgraph.Graph[string, Fact]
	nodes map[string]cgraph.NodeID
}

// NodeID resolves a declared node name.
func (c *Compiled) NodeID(name string) (cgraph.NodeID, bool) {
	id, ok := c.nodes[name]
	return id, ok
}

// Names returns every declared node name, sorted.
func (c *Compiled) Names() []string {
	out := make([]string, 0, len(c.nodes))
	for name := range c.nodes {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Evaluate resolves name and evaluates it against facts.
func (c *Compiled) Evaluate(facts cgraph.Context[string, Fact], name string, opts ...cgraph.EvalOption) (*cgraph.Verdict, error) {
	id, ok := c.nodes[name]
	if !ok {
		return nil, fmt.Errorf("ruleset: Evaluate(%q): %w", name, ErrUnknownNode)
	}

	return c.Graph.Evaluate(facts, id, opts...)
}

type compiler struct {
	b     *cgraph.Builder[string, Fact]
	names map[string]cgraph.NodeID
}

// Compile builds doc into a graph. Builder options (e.g. a logger) are passed through.
//
// Errors wrap the first failure: ErrUnknownNode, ErrDuplicateNode, ErrUnknownKind,
// ErrBadAttribute, or any cgraph construction sentinel.
func Compile(doc *Document, opts ...cgraph.BuilderOption) (*Compiled, error) {
	if doc == nil {
		return nil, fmt.Errorf("ruleset: Compile: nil document: %w", ErrBadAttribute)
	}
	c := &compiler{
		b:     cgraph.NewBuilder[string, Fact](opts...),
		names: make(map[string]cgraph.NodeID, len(doc.Nodes)),
	}

	for _, d := range doc.Domains {
		if d.ID == "" {
			return nil, fmt.Errorf("ruleset: domain without id: %w", ErrBadAttribute)
		}
		if _, err := c.b.MakeDomain(d.ID, d.Description); err != nil {
			return nil, err
		}
	}
	for i := range doc.Nodes {
		if err := c.node(&doc.Nodes[i]); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Edges {
		if err := c.edge(e); err != nil {
			return nil, err
		}
	}

	return &Compiled{Graph: c.b.Build(), nodes: c.names}, nil
}

func (c *compiler) node(n *NodeDef) error {
	if n.Name == "" {
		return fmt.Errorf("ruleset: node without name: %w", ErrBadAttribute)
	}
	if _, dup := c.names[n.Name]; dup {
		return fmt.Errorf("ruleset: node %q: %w", n.Name, ErrDuplicateNode)
	}

	info := n.Info
	if info == "" {
		info = n.Name
	}
	meta := NodeSource{Name: n.Name}

	var (
		id  cgraph.NodeID
		err error
	)
	switch n.Kind {
	case KindValue:
		if n.Field == "" || n.Value == "" {
			return fmt.Errorf("ruleset: node %q: value needs field and value: %w", n.Name, ErrBadAttribute)
		}
		id, err = c.b.MakeFactNode(Fact{Field: n.Field, Value: n.Value}, info, n.Domains, meta)
	case KindKey:
		if n.Field == "" {
			return fmt.Errorf("ruleset: node %q: key needs field: %w", n.Name, ErrBadAttribute)
		}
		id, err = c.b.MakeKeyNode(n.Field, info, n.Domains, meta)
	case KindIn:
		if n.Field == "" {
			return fmt.Errorf("ruleset: node %q: in needs field: %w", n.Name, ErrBadAttribute)
		}
		values := make([]Fact, len(n.Values))
		for i, v := range n.Values {
			values[i] = Fact{Field: n.Field, Value: v}
		}
		id, err = c.b.MakeInAggregator(values, info, meta, n.Domains)
	case KindAll:
		var members []cgraph.AllMember
		if members, err = c.allMembers(n); err != nil {
			return err
		}
		id, err = c.b.MakeAllAggregator(members, info, meta, n.Domains)
	case KindAny:
		var members []cgraph.AnyMember
		if members, err = c.anyMembers(n); err != nil {
			return err
		}
		id, err = c.b.MakeAnyAggregator(members, info, meta, n.Domains)
	default:
		return fmt.Errorf("ruleset: node %q: kind %q: %w", n.Name, n.Kind, ErrUnknownKind)
	}
	if err != nil {
		return fmt.Errorf("ruleset: node %q: %w", n.Name, err)
	}
	c.names[n.Name] = id

	return nil
}

func (c *compiler) allMembers(n *NodeDef) ([]cgraph.AllMember, error) {
	out := make([]cgraph.AllMember, 0, len(n.Members))
	for _, m := range n.Members {
		id, err := c.resolve(n.Name, m.Node)
		if err != nil {
			return nil, err
		}
		rel, st, err := parseAttrs(m.Relation, m.Strength)
		if err != nil {
			return nil, fmt.Errorf("ruleset: node %q member %q: %w", n.Name, m.Node, err)
		}
		out = append(out, cgraph.AllMember{Node: id, Relation: rel, Strength: st})
	}

	return out, nil
}

func (c *compiler) anyMembers(n *NodeDef) ([]cgraph.AnyMember, error) {
	out := make([]cgraph.AnyMember, 0, len(n.Members))
	for _, m := range n.Members {
		id, err := c.resolve(n.Name, m.Node)
		if err != nil {
			return nil, err
		}
		if m.Strength != "" {
			if st, err := cgraph.ParseStrength(m.Strength); err != nil || st != cgraph.Strong {
				return nil, fmt.Errorf("ruleset: node %q member %q: any members are always strong: %w",
					n.Name, m.Node, ErrBadAttribute)
			}
		}
		rel, _, err := parseAttrs(m.Relation, "")
		if err != nil {
			return nil, fmt.Errorf("ruleset: node %q member %q: %w", n.Name, m.Node, err)
		}
		out = append(out, cgraph.AnyMember{Node: id, Relation: rel})
	}

	return out, nil
}

func (c *compiler) edge(e EdgeDef) error {
	from, err := c.resolve("edge", e.From)
	if err != nil {
		return err
	}
	to, err := c.resolve("edge", e.To)
	if err != nil {
		return err
	}
	rel, st, err := parseAttrs(e.Relation, e.Strength)
	if err != nil {
		return fmt.Errorf("ruleset: edge %q->%q: %w", e.From, e.To, err)
	}
	if _, err = c.b.MakeEdge(from, to, st, rel); err != nil {
		return fmt.Errorf("ruleset: edge %q->%q: %w", e.From, e.To, err)
	}

	return nil
}

func (c *compiler) resolve(owner, name string) (cgraph.NodeID, error) {
	id, ok := c.names[name]
	if !ok {
		return 0, fmt.Errorf("ruleset: %s references %q: %w", owner, name, ErrUnknownNode)
	}
	return id, nil
}

// parseAttrs applies the positive/strong defaults.
func parseAttrs(relation, strength string) (cgraph.Relation, cgraph.Strength, error) {
	rel, st := cgraph.Positive, cgraph.Strong
	var err error
	if relation != "" {
		if rel, err = cgraph.ParseRelation(relation); err != nil {
			return 0, 0, fmt.Errorf("%v: %w", err, ErrBadAttribute)
		}
	}
	if strength != "" {
		if st, err = cgraph.ParseStrength(strength); err != nil {
			return 0, 0, fmt.Errorf("%v: %w", err, ErrBadAttribute)
		}
	}

	return rel, st, nil
}
