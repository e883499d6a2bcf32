// SPDX-License-Identifier: MIT
// Package cgraph is a domain-agnostic constraint graph: rules of the form
// "if these facts hold, this proposition holds", frozen into an immutable
// graph and evaluated against a context of asserted facts.
//
// Construction goes through Builder only:
//
//	b := cgraph.NewBuilder[string, Fact]()
//	_, _ = b.MakeDomain("merchant", "merchant configuration")
//	visa, _ := b.MakeFactNode(Fact{"pm", "visa"}, "visa", nil, nil)
//	ok, _ := b.MakeAllAggregator([]cgraph.AllMember{{Node: visa}}, "card allowed", nil, nil)
//	g := b.Build()
//
// Evaluation is read-only and safe for concurrent use:
//
//	v, err := g.Evaluate(cgraph.NewFacts[string](Fact{"pm", "visa"}), ok)
//
// Node kinds:
//
//	Value(v) / Key(k)  – satisfied when the context asserts v / any value for k
//	All                – conjunction over incoming edges
//	Any                – disjunction over incoming edges (all edges Strong)
//	In(set)            – the context's values for the set's key are all members
//
// Edges carry a Strength (Strong mandatory, Weak advisory) and a Relation
// (Positive supports, Negative opposes). At most one edge exists per ordered
// node pair; re-declaring it differently fails with ErrConflictingEdge.
//
// Domains scope nodes: a Facts entry asserted under a domain is only visible to
// nodes carrying that domain, and WithDomains restricts which predecessors an
// evaluation considers.
//
// Errors:
//
//	ErrDomainNotFound        – unregistered domain identifier
//	ErrNodeNotFound          – unknown node id (construction or Evaluate target)
//	ErrConflictingEdge       – (pred, succ) re-declared with other attributes
//	ErrNoInAggregatorValues  – empty IN aggregator
//	ErrMalformedGraph        – structural violation (*MalformedGraphError)
//	ErrBuilderConsumed       – Builder used after Build
package cgraph
