// SPDX-License-Identifier: MIT
// Package ruleset turns serialized rule definitions into a cgraph.Graph.
//
// The same Document can be written in YAML:
//
//	domains:
//	  - id: merchant
//	    description: merchant configuration
//	nodes:
//	  - {name: visa, kind: value, field: payment_method, value: visa}
//	  - {name: usd_or_eur, kind: in, field: currency, values: [USD, EUR]}
//	  - name: eligible
//	    kind: all
//	    members:
//	      - {node: visa}
//	      - {node: usd_or_eur, strength: weak}
//	edges:
//	  - {from: visa, to: usd_or_eur, relation: negative}
//
// or in HCL:
//
//	domain "merchant" { description = "merchant configuration" }
//	node "visa" {
//	  kind  = "value"
//	  field = "payment_method"
//	  value = "visa"
//	}
//	node "eligible" {
//	  kind = "all"
//	  member { node = "visa" }
//	}
//
// Node kinds: value (field+value), key (field), in (field+values), all and any
// (members). Nodes must be declared before they are referenced. Relation
// defaults to positive and strength to strong.
package ruleset
