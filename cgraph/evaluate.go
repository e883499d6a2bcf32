// SPDX-License-Identifier: MIT
//
// File: evaluate.go
// Role: Satisfiability of a target node against a fact context.
// Policy:
//   - Pure: no graph mutation; the memo table is private to one call.
//   - Each node is visited at most once per call (unvisited → inProgress → done).
//   - A predecessor met while inProgress is a cycle; its edge contributes "unsatisfied".
//   - An unknown target is the only error; everything else is a verdict.
// Determinism:
//   - Predecessors are read in edge creation order, so verdicts and traces are
//     identical for identical (graph, context, target, options).

package cgraph

import (
	"go.uber.org/zap"
)

const methodEvaluate = "Evaluate"

// Visitation states, after the three-colour DFS marking.
type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	satisfied
	unsatisfied
)

// Reading is the contribution of one incoming edge to its successor.
type Reading struct {
	Edge     EdgeID
	Pred     NodeID
	Strength Strength
	Relation Relation

	// PredSatisfied is the predecessor's own verdict (false when Cyclic).
	PredSatisfied bool
	// Cyclic is set when the predecessor was still being evaluated.
	Cyclic bool
	// Satisfied is the edge's contribution after applying Relation.
	Satisfied bool
}

// Step records the outcome for one visited node.
type Step struct {
	Node      NodeID
	Kind      NodeKind
	Info      string
	Satisfied bool

	// Readings lists the edges consulted, in predecessor order (ALL/ANY only).
	Readings []Reading
	// Decisive lists the edges that determined the outcome:
	//   ALL satisfied   – the Strong edges that held
	//   ALL unsatisfied – the edges that blocked
	//   ANY satisfied   – the edges that held
	//   ANY unsatisfied – every consulted edge
	Decisive []EdgeID
}

// Trace lists every visited node in completion order; the target is last.
type Trace struct {
	Steps []Step
}

// Step returns the recorded step for id.
func (t Trace) Step(id NodeID) (Step, bool) {
	for _, s := range t.Steps {
		if s.Node == id {
			return s, true
		}
	}
	return Step{}, false
}

// Verdict is the result of one Evaluate call.
type Verdict struct {
	Target    NodeID
	Satisfied bool
	Mode      Mode
	Trace     Trace
}

// Evaluate decides whether target is satisfied by facts.
//
// Implementation:
//   - Stage 1: Resolve options and the domain scope.
//   - Stage 2: Depth-first over predecessors with a per-call memo.
//   - Stage 3: Package the verdict and trace.
//
// Node rules:
//   - Value(v): facts hold v for the node's domains. Key(k): facts have any value for k.
//   - In(set): facts have at least one value for the key, and every such value is in set.
//   - All: every counted Strong reading holds; unmet Weak readings block only if
//     the WeakPolicy says so (BestEffort) and are skipped entirely in Strict.
//   - Any: at least one reading holds, regardless of strength and mode.
//
// Errors:
//   - ErrNodeNotFound if target is unknown.
//
// Complexity: O(V + E) over the reachable predecessor subgraph.
func (g *Graph[K, V]) Evaluate(facts Context[K, V], target NodeID, opts ...EvalOption) (*Verdict, error) {
	if !g.nodes.ContainsKey(target) {
		return nil, wrapf(methodEvaluate, ErrNodeNotFound, "target %d", target)
	}
	o := DefaultEvalOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if facts == nil {
		facts = emptyContext[K, V]{}
	}

	ev := &evaluator[K, V]{
		g:     g,
		facts: facts,
		opts:  o,
		state: make(map[NodeID]visitState),
	}
	if len(o.Domains) > 0 {
		ev.scope = make(map[DomainID]struct{}, len(o.Domains))
		for _, ident := range o.Domains {
			if id, ok := g.domainIndex[ident]; ok {
				ev.scope[id] = struct{}{}
			}
		}
	}

	ok := ev.visit(target)
	o.Logger.Debug("constraint evaluated",
		zap.Uint32("target", uint32(target)),
		zap.Bool("satisfied", ok),
		zap.Stringer("mode", o.Mode),
		zap.Int("visited", len(ev.steps)))

	return &Verdict{Target: target, Satisfied: ok, Mode: o.Mode, Trace: Trace{Steps: ev.steps}}, nil
}

// Check is Evaluate without the trace.
func (g *Graph[K, V]) Check(facts Context[K, V], target NodeID, opts ...EvalOption) (bool, error) {
	v, err := g.Evaluate(facts, target, opts...)
	if err != nil {
		return false, err
	}
	return v.Satisfied, nil
}

type evaluator[K comparable, V Value[K]] struct {
	g     *Graph[K, V]
	facts Context[K, V]
	opts  EvalOptions
	scope map[DomainID]struct{} // nil = unrestricted
	state map[NodeID]visitState
	steps []Step
}

func (ev *evaluator[K, V]) visit(id NodeID) bool {
	// 1) Memo hit: a finished node is never re-evaluated.
	switch ev.state[id] {
	case satisfied:
		return true
	case unsatisfied:
		return false
	}
	// 2) Mark in progress; a read that reaches id again is a cycle.
	ev.state[id] = inProgress

	// 3) Decide by kind; aggregators recurse through read.
	node, _ := ev.g.nodes.Get(id)
	info, _ := ev.g.info.Get(id)
	step := Step{Node: id, Kind: node.Kind, Info: info}

	switch node.Kind {
	case KindValue:
		step.Satisfied = ev.checkValue(node)
	case KindIn:
		step.Satisfied = ev.checkIn(node)
	case KindAll:
		step.Satisfied, step.Readings, step.Decisive = ev.checkAll(node)
	case KindAny:
		step.Satisfied, step.Readings, step.Decisive = ev.checkAny(node)
	}

	// 4) Memoise and record the step in completion order.
	if step.Satisfied {
		ev.state[id] = satisfied
	} else {
		ev.state[id] = unsatisfied
	}
	ev.steps = append(ev.steps, step)

	return step.Satisfied
}

func (ev *evaluator[K, V]) checkValue(node Node[K, V]) bool {
	// Facts are looked up within the node's own domains.
	domains := ev.g.NodeDomains(node.ID)
	if v, ok := node.Value.Value(); ok {
		return ev.facts.Holds(v, domains)
	}

	// Key node: any value for the key will do.
	return len(ev.facts.Values(node.Value.Key(), domains)) > 0
}

func (ev *evaluator[K, V]) checkIn(node Node[K, V]) bool {
	// 1) No value for the key at all is not membership.
	found := ev.facts.Values(node.InKey, ev.g.NodeDomains(node.ID))
	if len(found) == 0 {
		return false
	}
	// 2) Every asserted value must be a member.
	for _, v := range found {
		if !node.Contains(v) {
			return false
		}
	}

	return true
}

func (ev *evaluator[K, V]) checkAll(node Node[K, V]) (bool, []Reading, []EdgeID) {
	var (
		readings []Reading
		blocking []EdgeID
		held     []EdgeID
	)
	for _, eid := range node.Preds {
		// 1) Skip edges outside the domain scope, and Weak edges in Strict.
		e, _ := ev.g.edges.Get(eid)
		if !ev.inScope(e.Pred) {
			continue
		}
		if e.Strength == Weak && ev.opts.Mode == Strict {
			continue
		}

		// 2) Read the edge and sort it into held or blocking.
		//    An unmet Weak edge blocks only if the policy says so.
		r := ev.read(e)
		readings = append(readings, r)
		switch {
		case r.Satisfied:
			if e.Strength == Strong {
				held = append(held, eid)
			}
		case e.Strength == Strong || ev.opts.WeakPolicy(ev.opts.Mode, r):
			blocking = append(blocking, eid)
		}
	}
	// 3) Any blocker decides; otherwise the held Strong edges are decisive.
	if len(blocking) > 0 {
		return false, readings, blocking
	}

	return true, readings, held
}

func (ev *evaluator[K, V]) checkAny(node Node[K, V]) (bool, []Reading, []EdgeID) {
	var (
		readings []Reading
		held     []EdgeID
		all      []EdgeID
	)
	// 1) Every in-scope edge is read, whatever its strength.
	for _, eid := range node.Preds {
		e, _ := ev.g.edges.Get(eid)
		if !ev.inScope(e.Pred) {
			continue
		}
		r := ev.read(e)
		readings = append(readings, r)
		all = append(all, eid)
		if r.Satisfied {
			held = append(held, eid)
		}
	}
	// 2) One held edge suffices; when none holds, all of them are decisive.
	if len(held) > 0 {
		return true, readings, held
	}

	return false, readings, all
}

// read evaluates the predecessor of e and applies the relation.
func (ev *evaluator[K, V]) read(e Edge) Reading {
	r := Reading{Edge: e.ID, Pred: e.Pred, Strength: e.Strength, Relation: e.Relation}
	// A predecessor still in progress closes a cycle: unsatisfied, whatever the relation.
	if ev.state[e.Pred] == inProgress {
		r.Cyclic = true
		return r
	}
	// Negative edges hold exactly when the predecessor does not.
	r.PredSatisfied = ev.visit(e.Pred)
	r.Satisfied = r.PredSatisfied == (e.Relation == Positive)

	return r
}

func (ev *evaluator[K, V]) inScope(id NodeID) bool {
	if ev.scope == nil {
		return true
	}
	n, _ := ev.g.nodes.Get(id)
	if len(n.Domains) == 0 {
		return true
	}
	for _, d := range n.Domains {
		if _, ok := ev.scope[d]; ok {
			return true
		}
	}

	return false
}
