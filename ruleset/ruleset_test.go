// SPDX-License-Identifier: MIT
package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/constraintgraph/cgraph"
	"github.com/katalvlaran/constraintgraph/ruleset"
)

const cardRulesYAML = `
domains:
  - id: merchant
    description: merchant configuration
  - id: merchant
    description: ignored second description
nodes:
  - {name: visa, kind: value, field: payment_method, value: visa}
  - {name: mastercard, kind: value, field: payment_method, value: mastercard}
  - {name: card, kind: any, members: [{node: visa}, {node: mastercard}]}
  - {name: currency_ok, kind: in, field: currency, values: [USD, EUR]}
  - {name: mandate, kind: value, field: setup_future_usage, value: off_session, domains: [merchant]}
  - name: eligible
    kind: all
    info: card payments in supported currencies
    domains: [merchant]
    members:
      - {node: card}
      - {node: currency_ok}
      - {node: mandate, strength: weak}
  - {name: has_country, kind: key, field: billing_country}
edges:
  - {from: has_country, to: eligible, strength: weak}
`

const cardRulesHCL = `
domain "merchant" {
  description = "merchant configuration"
}
domain "merchant" {
  description = "ignored second description"
}

node "visa" {
  kind  = "value"
  field = "payment_method"
  value = "visa"
}
node "mastercard" {
  kind  = "value"
  field = "payment_method"
  value = "mastercard"
}
node "card" {
  kind = "any"
  member { node = "visa" }
  member { node = "mastercard" }
}
node "currency_ok" {
  kind   = "in"
  field  = "currency"
  values = ["USD", "EUR"]
}
node "mandate" {
  kind    = "value"
  field   = "setup_future_usage"
  value   = "off_session"
  domains = ["merchant"]
}
node "eligible" {
  kind    = "all"
  info    = "card payments in supported currencies"
  domains = ["merchant"]
  member { node = "card" }
  member { node = "currency_ok" }
  member {
    node     = "mandate"
    strength = "weak"
  }
}
node "has_country" {
  kind  = "key"
  field = "billing_country"
}

edge {
  from     = "has_country"
  to       = "eligible"
  strength = "weak"
}
`

// RulesetSuite checks both encodings compile to the same graph.
type RulesetSuite struct {
	suite.Suite
	yaml *ruleset.Compiled
	hcl  *ruleset.Compiled
}

func (s *RulesetSuite) SetupTest() {
	yd, err := ruleset.ParseYAML([]byte(cardRulesYAML))
	require.NoError(s.T(), err)
	hd, err := ruleset.ParseHCL("cards.hcl", []byte(cardRulesHCL))
	require.NoError(s.T(), err)
	require.Empty(s.T(), cmp.Diff(yd, hd, cmpopts.EquateEmpty()), "YAML and HCL documents differ")

	s.yaml, err = ruleset.Compile(yd)
	require.NoError(s.T(), err)
	s.hcl, err = ruleset.Compile(hd)
	require.NoError(s.T(), err)
}

func (s *RulesetSuite) TestShape() {
	for _, c := range []*ruleset.Compiled{s.yaml, s.hcl} {
		require.Equal(s.T(), 7, c.Graph.NodeCount())
		require.Equal(s.T(), 6, c.Graph.EdgeCount())
		require.Equal(s.T(), 1, c.Graph.DomainCount())
		require.Equal(s.T(),
			[]string{"card", "currency_ok", "eligible", "has_country", "mandate", "mastercard", "visa"},
			c.Names())

		id, ok := c.NodeID("eligible")
		require.True(s.T(), ok)
		info, _ := c.Graph.NodeInfo(id)
		require.Equal(s.T(), "card payments in supported currencies", info)
		require.Equal(s.T(), "ruleset node eligible", c.Graph.NodeMetadata(id).Describe())
		require.Equal(s.T(), []string{"merchant"}, c.Graph.NodeDomains(id))

		dom, _ := c.Graph.DomainByIdentifier("merchant")
		di, _ := c.Graph.Domain(dom)
		require.Equal(s.T(), "merchant configuration", di.Description)
	}
}

func (s *RulesetSuite) TestEvaluate() {
	for _, c := range []*ruleset.Compiled{s.yaml, s.hcl} {
		ok := ruleset.NewFacts(
			ruleset.Fact{Field: "payment_method", Value: "mastercard"},
			ruleset.Fact{Field: "currency", Value: "EUR"},
		)
		v, err := c.Evaluate(ok, "eligible")
		require.NoError(s.T(), err)
		require.True(s.T(), v.Satisfied)

		v, err = c.Evaluate(ok, "eligible", cgraph.WithWeakPolicy(cgraph.BlockingWeak))
		require.NoError(s.T(), err)
		require.False(s.T(), v.Satisfied, "mandate and billing country are missing")

		ok.Assert(ruleset.Fact{Field: "setup_future_usage", Value: "off_session"}, "merchant")
		ok.Assert(ruleset.Fact{Field: "billing_country", Value: "DE"})
		v, err = c.Evaluate(ok, "eligible", cgraph.WithWeakPolicy(cgraph.BlockingWeak))
		require.NoError(s.T(), err)
		require.True(s.T(), v.Satisfied)

		bad := ruleset.NewFacts(
			ruleset.Fact{Field: "payment_method", Value: "visa"},
			ruleset.Fact{Field: "currency", Value: "JPY"},
		)
		v, err = c.Evaluate(bad, "eligible")
		require.NoError(s.T(), err)
		require.False(s.T(), v.Satisfied)

		_, err = c.Evaluate(bad, "nope")
		require.ErrorIs(s.T(), err, ruleset.ErrUnknownNode)
	}
}

func TestRulesetSuite(t *testing.T) {
	suite.Run(t, new(RulesetSuite))
}

// TestCompile_Errors covers the document validation failures.
func TestCompile_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"forward reference", `
nodes:
  - {name: agg, kind: all, members: [{node: later}]}
  - {name: later, kind: key, field: x}
`, ruleset.ErrUnknownNode},
		{"duplicate name", `
nodes:
  - {name: a, kind: key, field: x}
  - {name: a, kind: key, field: y}
`, ruleset.ErrDuplicateNode},
		{"unknown kind", `
nodes:
  - {name: a, kind: maybe}
`, ruleset.ErrUnknownKind},
		{"bad strength", `
nodes:
  - {name: a, kind: key, field: x}
  - {name: b, kind: all, members: [{node: a, strength: medium}]}
`, ruleset.ErrBadAttribute},
		{"weak any member", `
nodes:
  - {name: a, kind: key, field: x}
  - {name: b, kind: any, members: [{node: a, strength: weak}]}
`, ruleset.ErrBadAttribute},
		{"value without field", `
nodes:
  - {name: a, kind: value, value: x}
`, ruleset.ErrBadAttribute},
		{"empty in", `
nodes:
  - {name: a, kind: in, field: x}
`, cgraph.ErrNoInAggregatorValues},
		{"unknown domain", `
nodes:
  - {name: a, kind: key, field: x, domains: [ghost]}
`, cgraph.ErrDomainNotFound},
		{"conflicting edge", `
nodes:
  - {name: a, kind: key, field: x}
  - {name: b, kind: all, members: [{node: a}]}
edges:
  - {from: a, to: b, relation: negative}
`, cgraph.ErrConflictingEdge},
		{"edge to unknown", `
nodes:
  - {name: a, kind: key, field: x}
edges:
  - {from: a, to: z}
`, ruleset.ErrUnknownNode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := ruleset.ParseYAML([]byte(tc.src))
			require.NoError(t, err)
			_, err = ruleset.Compile(doc)
			require.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("nil document", func(t *testing.T) {
		c, err := ruleset.Compile(nil)
		require.ErrorIs(t, err, ruleset.ErrBadAttribute)
		require.Nil(t, c)
	})
}

// TestParse_Errors covers decoder failures.
func TestParse_Errors(t *testing.T) {
	_, err := ruleset.ParseYAML([]byte("nodes:\n  - {name: a, kynd: key}\n"))
	require.Error(t, err, "unknown fields are rejected")

	_, err = ruleset.ParseHCL("bad.hcl", []byte(`node "a" { kind = `))
	require.Error(t, err)

	_, err = ruleset.ParseHCL("bad.hcl", []byte(`node "a" { colour = "blue" }`))
	require.Error(t, err)

	doc, err := ruleset.ParseYAML(nil)
	require.NoError(t, err)
	c, err := ruleset.Compile(doc)
	require.NoError(t, err)
	require.Zero(t, c.Graph.NodeCount())
}

// TestLoad dispatches on file extension.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "rules.yml")
	hcl := filepath.Join(dir, "rules.hcl")
	txt := filepath.Join(dir, "rules.txt")
	require.NoError(t, os.WriteFile(yml, []byte(cardRulesYAML), 0o600))
	require.NoError(t, os.WriteFile(hcl, []byte(cardRulesHCL), 0o600))
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o600))

	a, err := ruleset.Load(yml)
	require.NoError(t, err)
	b, err := ruleset.Load(hcl)
	require.NoError(t, err)
	require.Len(t, a.Nodes, 7)
	require.Len(t, b.Nodes, 7)

	_, err = ruleset.Load(txt)
	require.ErrorIs(t, err, ruleset.ErrUnsupportedFormat)

	_, err = ruleset.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
