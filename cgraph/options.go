// SPDX-License-Identifier: MIT
//
// File: options.go
// Role: Functional options for Builder and Evaluate.
// Policy:
//   - Option constructors panic on nil arguments; algorithms never panic.
//   - Defaults come from DefaultEvalOptions and newBuilderConfig.

package cgraph

import "go.uber.org/zap"

// BuilderOption customizes a Builder.
type BuilderOption func(*builderConfig)

type builderConfig struct {
	logger *zap.Logger
}

func newBuilderConfig(opts []BuilderOption) builderConfig {
	cfg := builderConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithBuilderLogger routes construction diagnostics to l at debug level.
func WithBuilderLogger(l *zap.Logger) BuilderOption {
	if l == nil {
		panic("cgraph: WithBuilderLogger(nil)")
	}
	return func(c *builderConfig) { c.logger = l }
}

// Mode selects how Weak edges take part in evaluation.
type Mode uint8

const (
	// BestEffort traverses Weak edges and records them in the trace; whether an
	// unmet Weak reading blocks an ALL aggregator is decided by the WeakPolicy.
	BestEffort Mode = iota
	// Strict ignores Weak edges entirely.
	Strict
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "best-effort"
}

// WeakPolicy reports whether an unmet reading on a Weak edge blocks the ALL
// aggregator it feeds. It is only consulted in BestEffort mode.
type WeakPolicy func(mode Mode, r Reading) bool

// AdvisoryWeak never lets a Weak edge block: Weak readings are informational.
func AdvisoryWeak(Mode, Reading) bool { return false }

// BlockingWeak treats an unmet Weak reading like a Strong one.
func BlockingWeak(Mode, Reading) bool { return true }

// EvalOption customizes a single Evaluate call.
type EvalOption func(*EvalOptions)

// EvalOptions holds the resolved evaluation settings.
type EvalOptions struct {
	// Mode defaults to BestEffort.
	Mode Mode

	// Domains, when non-empty, restricts evaluation to edges whose predecessor
	// carries one of these domain identifiers. Nodes without domains are always
	// in scope; unknown identifiers match nothing.
	Domains []string

	// WeakPolicy defaults to AdvisoryWeak.
	WeakPolicy WeakPolicy

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultEvalOptions returns BestEffort, unrestricted domains, AdvisoryWeak and a no-op logger.
func DefaultEvalOptions() EvalOptions {
	return EvalOptions{
		Mode:       BestEffort,
		Domains:    nil,
		WeakPolicy: AdvisoryWeak,
		Logger:     zap.NewNop(),
	}
}

// WithMode selects Strict or BestEffort.
func WithMode(m Mode) EvalOption {
	return func(o *EvalOptions) { o.Mode = m }
}

// WithDomains restricts evaluation to the given domain identifiers.
func WithDomains(identifiers ...string) EvalOption {
	ids := append([]string(nil), identifiers...)
	return func(o *EvalOptions) { o.Domains = ids }
}

// WithWeakPolicy replaces the Weak-edge policy.
func WithWeakPolicy(p WeakPolicy) EvalOption {
	if p == nil {
		panic("cgraph: WithWeakPolicy(nil)")
	}
	return func(o *EvalOptions) { o.WeakPolicy = p }
}

// WithLogger routes evaluation diagnostics to l at debug level.
func WithLogger(l *zap.Logger) EvalOption {
	if l == nil {
		panic("cgraph: WithLogger(nil)")
	}
	return func(o *EvalOptions) { o.Logger = l }
}
