// SPDX-License-Identifier: MIT
// Package densemap provides an append-only, index-addressed arena.
//
// A Map hands out small integer handles on Push and never removes entries,
// so a handle stays valid for the Map's whole lifetime. Graph structures use
// these handles instead of pointers: nodes list edge ids, edges list node ids,
// and the cyclic references never need shared ownership.
//
// Operations:
//
//	Push(v) K              // O(1) amortized, ids strictly increasing from 0
//	Get(k) (V, bool)       // O(1), false for out-of-range ids
//	GetMut(k) (*V, bool)   // O(1), pointer valid until the next Push
//	ContainsKey(k) bool    // O(1)
//	Len() int              // O(1)
//	Keys() []K             // O(n), ascending
//	Range(fn)              // O(n), ascending, stops when fn returns false
//
// A Map is not safe for concurrent mutation. Concurrent reads are safe once
// writers have stopped.
package densemap
