// SPDX-License-Identifier: MIT
//
// File: batch.go
// Role: Concurrent evaluation of many targets against one graph and context.

package cgraph

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const methodEvaluateAll = "EvaluateAll"

// EvaluateAll evaluates every target concurrently and returns the verdicts in
// target order. The graph is shared read-only; facts must be safe for
// concurrent reads (Facts is).
//
// Errors:
//   - ctx.Err() if ctx is cancelled before every target has started.
//   - ErrNodeNotFound (wrapped) for the first unknown target encountered.
//
// Complexity: O(Σ reachable subgraph) spread over GOMAXPROCS workers.
func EvaluateAll[K comparable, V Value[K]](
	ctx context.Context,
	g *Graph[K, V],
	facts Context[K, V],
	targets []NodeID,
	opts ...EvalOption,
) ([]*Verdict, error) {
	out := make([]*Verdict, len(targets))
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.GOMAXPROCS(0))

	for i, target := range targets {
		i, target := i, target
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := g.Evaluate(facts, target, opts...)
			if err != nil {
				return wrapf(methodEvaluateAll, err, "target #%d", i)
			}
			out[i] = v
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
