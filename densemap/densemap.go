// SPDX-License-Identifier: MIT
//
// File: densemap.go
// Role: Generic append-only arena keyed by dense integer handles.
// Policy:
//   - No removal; handles are stable.
//   - Out-of-range lookups report absence, they never panic.

package densemap

// Map stores values of type V addressed by handles of type K.
// The zero value is an empty, ready-to-use Map.
type Map[K ~uint32, V any] struct {
	data []V
}

// New returns an empty Map.
func New[K ~uint32, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// WithCapacity returns an empty Map with room for n values before reallocation.
func WithCapacity[K ~uint32, V any](n int) *Map[K, V] {
	if n < 0 {
		n = 0
	}
	return &Map[K, V]{data: make([]V, 0, n)}
}

// Push appends v and returns its handle. Handles start at 0 and grow by one.
// Complexity: O(1) amortized.
func (m *Map[K, V]) Push(v V) K {
	id := K(len(m.data))
	m.data = append(m.data, v)

	return id
}

// Get returns the value stored under k.
// Complexity: O(1).
func (m *Map[K, V]) Get(k K) (V, bool) {
	if !m.ContainsKey(k) {
		var zero V
		return zero, false
	}

	return m.data[k], true
}

// GetMut returns a pointer to the value stored under k.
// The pointer is invalidated by the next Push, which may reallocate.
func (m *Map[K, V]) GetMut(k K) (*V, bool) {
	if !m.ContainsKey(k) {
		return nil, false
	}

	return &m.data[k], true
}

// ContainsKey reports whether k was handed out by this Map.
func (m *Map[K, V]) ContainsKey(k K) bool {
	return uint64(k) < uint64(len(m.data))
}

// Len returns the number of stored values.
func (m *Map[K, V]) Len() int {
	return len(m.data)
}

// Keys returns every handle in ascending order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.data))
	for i := range m.data {
		out[i] = K(i)
	}

	return out
}

// Range calls fn for each entry in ascending handle order until fn returns false.
func (m *Map[K, V]) Range(fn func(k K, v V) bool) {
	for i := range m.data {
		if !fn(K(i), m.data[i]) {
			return
		}
	}
}
