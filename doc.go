// Package constraintgraph is an in-memory engine for eligibility and routing
// rules: build an immutable graph of "if these facts hold, this proposition
// holds", then ask whether a target proposition is satisfied by a context of
// asserted facts.
//
// What is inside:
//
//	densemap/  append-only arena with stable integer handles
//	cgraph/    domains, value and aggregator nodes (ALL, ANY, IN), Builder,
//	           frozen Graph, Evaluate/EvaluateAll, traces, DOT export
//	ruleset/   YAML and HCL rule documents compiled into a cgraph.Graph
//
// The engine knows nothing about the decisions it backs. Callers own the
// graph's lifetime and the fact context; the engine has no I/O, no
// persistence and no query language.
//
// Quick ASCII example:
//
//	visa ──┐
//	       ANY ──┐
//	mc   ──┘     ALL ── eligible
//	currency ∈ {USD, EUR} ──┘
//
//	go get github.com/katalvlaran/constraintgraph
package constraintgraph
