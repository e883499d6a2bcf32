// SPDX-License-Identifier: MIT
// Shared fixtures for cgraph tests.

package cgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/constraintgraph/cgraph"
)

// fact is the value type used across tests: Key groups facts by field.
type fact struct {
	key, val string
}

func (f fact) Key() string { return f.key }

// note is a Metadata payload.
type note string

func (n note) Describe() string { return string(n) }

type (
	builder = cgraph.Builder[string, fact]
	graph   = cgraph.Graph[string, fact]
	facts   = cgraph.Facts[string, fact]
)

var (
	visa       = fact{"payment_method", "visa"}
	mastercard = fact{"payment_method", "mastercard"}
	amex       = fact{"payment_method", "amex"}
	usd        = fact{"currency", "USD"}
	eur        = fact{"currency", "EUR"}
	recurring  = fact{"setup_future_usage", "off_session"}
)

const (
	domainMerchant = "merchant"
	domainProfile  = "profile"
)

func newBuilder() *builder {
	return cgraph.NewBuilder[string, fact]()
}

func newFacts(vs ...fact) *facts {
	return cgraph.NewFacts[string, fact](vs...)
}

// mustFact creates a fact node and fails the test on error.
func mustFact(t *testing.T, b *builder, f fact, domains ...string) cgraph.NodeID {
	t.Helper()
	id, err := b.MakeFactNode(f, f.val, domains, nil)
	require.NoError(t, err, "MakeFactNode(%v)", f)
	return id
}

// mustVerdict evaluates target and fails the test on error.
func mustVerdict(t *testing.T, g *graph, ctx cgraph.Context[string, fact], target cgraph.NodeID, opts ...cgraph.EvalOption) *cgraph.Verdict {
	t.Helper()
	v, err := g.Evaluate(ctx, target, opts...)
	require.NoError(t, err, "Evaluate(%d)", target)
	return v
}
