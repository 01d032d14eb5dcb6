package shinrai

import (
	"log/slog"

	"github.com/ashita-ai/shinrai/annotation"
	"github.com/ashita-ai/shinrai/merge"
	"github.com/ashita-ai/shinrai/subjective"
)

// Option configures an Engine.
type Option func(*resolvedOptions)

// resolvedOptions holds all extension points after applying defaults.
// Unexported — callers use the With* functions.
type resolvedOptions struct {
	logger  *slog.Logger
	version string

	mergeStrategy    merge.Strategy
	mergeCombination merge.Combination

	robustThreshold *float64
	decayHalfLife   *float64
	decayFunc       subjective.DecayFunc

	walkKeys annotation.KeySet

	batchConcurrency int
}

// WithLogger overrides the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *resolvedOptions) { o.logger = logger }
}

// WithVersion sets the version reported in telemetry.
func WithVersion(version string) Option {
	return func(o *resolvedOptions) { o.version = version }
}

// WithConflictStrategy overrides the merge conflict strategy from
// config (SHINRAI_MERGE_STRATEGY env var).
func WithConflictStrategy(s merge.Strategy) Option {
	return func(o *resolvedOptions) { o.mergeStrategy = s }
}

// WithCombination overrides the agreement confidence combination from
// config (SHINRAI_MERGE_COMBINATION env var).
func WithCombination(c merge.Combination) Option {
	return func(o *resolvedOptions) { o.mergeCombination = c }
}

// WithRobustThreshold overrides the robust-fusion discord threshold
// from config (SHINRAI_ROBUST_THRESHOLD env var).
func WithRobustThreshold(threshold float64) Option {
	return func(o *resolvedOptions) { o.robustThreshold = &threshold }
}

// WithDecayHalfLife overrides the default decay half-life from config
// (SHINRAI_DECAY_HALF_LIFE env var).
func WithDecayHalfLife(halfLife float64) Option {
	return func(o *resolvedOptions) { o.decayHalfLife = &halfLife }
}

// WithDecayFunc replaces the exponential decay used by Engine.Decay.
// The factor it returns is validated on every call.
func WithDecayFunc(fn subjective.DecayFunc) Option {
	return func(o *resolvedOptions) { o.decayFunc = fn }
}

// WithWalkKeys restricts the annotation keys recognized by the walk
// facade. Defaults to annotation.DefaultKeys.
func WithWalkKeys(keys annotation.KeySet) Option {
	return func(o *resolvedOptions) { o.walkKeys = keys }
}

// WithBatchConcurrency overrides the batch worker bound from config
// (SHINRAI_BATCH_CONCURRENCY env var).
func WithBatchConcurrency(n int) Option {
	return func(o *resolvedOptions) { o.batchConcurrency = n }
}
