// SPDX-License-Identifier: MIT

package ruleset

import (
	"errors"

	"github.com/katalvlaran/constraintgraph/cgraph"
)

var (
	// ErrUnknownNode indicates a member or edge referenced an undeclared node name.
	ErrUnknownNode = errors.New("ruleset: unknown node")

	// ErrDuplicateNode indicates a node name was declared twice.
	ErrDuplicateNode = errors.New("ruleset: duplicate node name")

	// ErrUnknownKind indicates a node kind outside value/key/in/all/any.
	ErrUnknownKind = errors.New("ruleset: unknown node kind")

	// ErrBadAttribute indicates a missing or unparsable attribute.
	ErrBadAttribute = errors.New("ruleset: bad attribute")

	// ErrUnsupportedFormat indicates Load was given an unrecognised file extension.
	ErrUnsupportedFormat = errors.New("ruleset: unsupported format")
)

// Node kinds accepted in NodeDef.Kind.
const (
	KindValue = "value"
	KindKey   = "key"
	KindIn    = "in"
	KindAll   = "all"
	KindAny   = "any"
)

// Fact is the value type of compiled graphs: one field set to one value.
type Fact struct {
	Field string
	Value string
}

// Key implements cgraph.Value.
func (f Fact) Key() string { return f.Field }

// String renders field=value.
func (f Fact) String() string { return f.Field + "=" + f.Value }

// NewFacts returns a context holding fs as global entries.
func NewFacts(fs ...Fact) *cgraph.Facts[string, Fact] {
	return cgraph.NewFacts[string](fs...)
}

// NodeSource is the metadata attached to every compiled node.
type NodeSource struct {
	Name string
}

// Describe implements cgraph.Metadata.
func (s NodeSource) Describe() string { return "ruleset node " + s.Name }

// Document is a complete rule definition.
type Document struct {
	Domains []DomainDef `yaml:"domains" hcl:"domain,block"`
	Nodes   []NodeDef   `yaml:"nodes" hcl:"node,block"`
	Edges   []EdgeDef   `yaml:"edges" hcl:"edge,block"`
}

// DomainDef declares a domain.
type DomainDef struct {
	ID          string `yaml:"id" hcl:"id,label"`
	Description string `yaml:"description" hcl:"description,optional"`
}

// NodeDef declares a node. Which fields apply depends on Kind.
type NodeDef struct {
	Name    string      `yaml:"name" hcl:"name,label"`
	Kind    string      `yaml:"kind" hcl:"kind"`
	Info    string      `yaml:"info" hcl:"info,optional"`
	Field   string      `yaml:"field" hcl:"field,optional"`
	Value   string      `yaml:"value" hcl:"value,optional"`
	Values  []string    `yaml:"values" hcl:"values,optional"`
	Domains []string    `yaml:"domains" hcl:"domains,optional"`
	Members []MemberDef `yaml:"members" hcl:"member,block"`
}

// MemberDef is one input of an all/any node.
type MemberDef struct {
	Node     string `yaml:"node" hcl:"node"`
	Relation string `yaml:"relation" hcl:"relation,optional"`
	Strength string `yaml:"strength" hcl:"strength,optional"`
}

// EdgeDef declares a free-standing edge.
type EdgeDef struct {
	From     string `yaml:"from" hcl:"from"`
	To       string `yaml:"to" hcl:"to"`
	Relation string `yaml:"relation" hcl:"relation,optional"`
	Strength string `yaml:"strength" hcl:"strength,optional"`
}
