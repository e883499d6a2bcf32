// SPDX-License-Identifier: MIT
//
// File: errors.go
// Role: Sentinel errors for construction and evaluation.
// Policy:
//   - Callers branch with errors.Is; never compare strings.
//   - Call sites add method context with %w (see wrapf).

package cgraph

import (
	"errors"
	"fmt"
)

var (
	// ErrDomainNotFound indicates a construction call named an unregistered domain.
	ErrDomainNotFound = errors.New("cgraph: domain not found")

	// ErrNodeNotFound indicates a construction or evaluation call referenced an unknown node id.
	ErrNodeNotFound = errors.New("cgraph: node not found")

	// ErrConflictingEdge indicates an existing (pred, succ) edge was re-created
	// with a different strength or relation.
	ErrConflictingEdge = errors.New("cgraph: conflicting edge created")

	// ErrNoInAggregatorValues indicates an IN aggregator was requested with no values.
	ErrNoInAggregatorValues = errors.New("cgraph: no values for in aggregator")

	// ErrMalformedGraph is the catch-all for structural violations.
	// Concrete failures are reported as *MalformedGraphError, which matches it.
	ErrMalformedGraph = errors.New("cgraph: malformed graph")

	// ErrBuilderConsumed indicates a Builder was used after Build.
	ErrBuilderConsumed = errors.New("cgraph: builder already built")
)

// MalformedGraphError carries the reason for a structural violation.
type MalformedGraphError struct {
	Reason string
}

// Error implements error.
func (e *MalformedGraphError) Error() string {
	return "cgraph: malformed graph: " + e.Reason
}

// Is makes errors.Is(err, ErrMalformedGraph) hold.
func (e *MalformedGraphError) Is(target error) bool {
	return target == ErrMalformedGraph
}

// wrapf prefixes err with the method name and a formatted detail,
// keeping err reachable for errors.Is.
func wrapf(method string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
