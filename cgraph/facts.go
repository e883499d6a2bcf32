// SPDX-License-Identifier: MIT
//
// File: facts.go
// Role: The fact context consulted by Evaluate, and a map-backed default implementation.

package cgraph

import "sync"

// Context is the runtime set of asserted facts an evaluation runs against.
//
// domains lists the domain identifiers of the node being checked; an empty
// slice means the node is unscoped. Implementations decide which of their
// entries are eligible for those domains and must be safe for concurrent reads.
type Context[K comparable, V Value[K]] interface {
	// Holds reports whether v is asserted and eligible for domains.
	Holds(v V, domains []string) bool
	// Values returns the distinct eligible values asserted for key, in assertion order.
	Values(key K, domains []string) []V
}

type scopedFact[V any] struct {
	value  V
	domain string // "" = global
}

// Facts is the default Context.
//
// An entry asserted without domains is global and eligible for every node.
// An entry asserted under a domain is eligible for nodes carrying that domain
// and for unscoped nodes.
type Facts[K comparable, V Value[K]] struct {
	mu    sync.RWMutex
	byKey map[K][]scopedFact[V]
	size  int
}

// NewFacts returns a Facts holding values as global entries.
func NewFacts[K comparable, V Value[K]](values ...V) *Facts[K, V] {
	f := &Facts[K, V]{byKey: make(map[K][]scopedFact[V])}
	for _, v := range values {
		f.Assert(v)
	}

	return f
}

// Assert records v globally, or once per domain when domains are given.
// Re-asserting an identical entry is a no-op. It returns f for chaining.
func (f *Facts[K, V]) Assert(v V, domains ...string) *Facts[K, V] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(domains) == 0 {
		f.add(v, "")
		return f
	}
	for _, d := range domains {
		f.add(v, d)
	}

	return f
}

func (f *Facts[K, V]) add(v V, domain string) {
	k := v.Key()
	for _, sf := range f.byKey[k] {
		if sf.value == v && sf.domain == domain {
			return
		}
	}
	f.byKey[k] = append(f.byKey[k], scopedFact[V]{value: v, domain: domain})
	f.size++
}

// Len returns the number of stored entries (a value asserted under two
// domains counts twice).
func (f *Facts[K, V]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.size
}

// Holds implements Context.
func (f *Facts[K, V]) Holds(v V, domains []string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, sf := range f.byKey[v.Key()] {
		if sf.value == v && eligible(sf.domain, domains) {
			return true
		}
	}

	return false
}

// Values implements Context.
func (f *Facts[K, V]) Values(key K, domains []string) []V {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []V
	for _, sf := range f.byKey[key] {
		if !eligible(sf.domain, domains) || containsValue(out, sf.value) {
			continue
		}
		out = append(out, sf.value)
	}

	return out
}

func eligible(entryDomain string, nodeDomains []string) bool {
	if entryDomain == "" || len(nodeDomains) == 0 {
		return true
	}
	for _, d := range nodeDomains {
		if d == entryDomain {
			return true
		}
	}

	return false
}

func containsValue[V comparable](vs []V, v V) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}

// emptyContext stands in for a nil Context.
type emptyContext[K comparable, V Value[K]] struct{}

func (emptyContext[K, V]) Holds(V, []string) bool { return false }
func (emptyContext[K, V]) Values(K, []string) []V { return nil }
