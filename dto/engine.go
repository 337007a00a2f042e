package dto

import (
	"go.uber.org/zap"

	"dto-inflator/options"
)

// MergeMode selects how Deflate combines declared attributes with the
// overflow bag.
type MergeMode int

const (
	// MergeRecursive collects both values of a key present on both sides,
	// the overflow value first, recursing into records.
	MergeRecursive MergeMode = iota
	// MergeOverlay lets declared attributes win over overflow entries.
	MergeOverlay
)

func (m MergeMode) String() string {
	switch m {
	case MergeRecursive:
		return "recursive"
	case MergeOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// ParseMergeMode parses "recursive" or "overlay".
func ParseMergeMode(s string) (MergeMode, bool) {
	switch s {
	case "recursive", "":
		return MergeRecursive, true
	case "overlay":
		return MergeOverlay, true
	default:
		return 0, false
	}
}

// Engine inflates and deflates DTOs registered in a Registry. An Engine
// is safe for concurrent use.
type Engine struct {
	registry    *Registry
	logger      *zap.Logger
	merge       MergeMode
	conversions options.CategoryEnum
	parallelism int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Unresolved nested types and overflow writes
// are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMergeMode sets how Deflate merges the overflow bag.
func WithMergeMode(m MergeMode) Option {
	return func(e *Engine) {
		e.merge = m
	}
}

// WithConversions sets the value conversions allowed when assigning input
// values to typed attributes. The default is options.CategoryDefault.
func WithConversions(c options.CategoryEnum) Option {
	return func(e *Engine) {
		e.conversions = c
	}
}

// WithParallelism sets how many top-level items a batch inflates at once.
// Values below 2 inflate sequentially.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// New returns an engine over reg. A nil reg gets a fresh registry.
func New(reg *Registry, opts ...Option) *Engine {
	if reg == nil {
		reg = NewRegistry()
	}

	e := &Engine{
		registry:    reg,
		logger:      zap.NewNop(),
		merge:       MergeRecursive,
		conversions: options.CategoryDefault,
		parallelism: 1,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Registry returns the engine's registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// CallOption configures a single inflate call.
type CallOption func(*callConfig)

type callConfig struct {
	shortKeys bool
}

// ShortKeys makes the call expand short aliases before anything else.
func ShortKeys() CallOption {
	return WithShortKeys(true)
}

// WithShortKeys turns short-key expansion on or off.
func WithShortKeys(on bool) CallOption {
	return func(c *callConfig) {
		c.shortKeys = on
	}
}

func newCallConfig(opts []CallOption) callConfig {
	var c callConfig
	for _, opt := range opts {
		opt(&c)
	}

	return c
}
