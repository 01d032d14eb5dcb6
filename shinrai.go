// Package shinrai is the public API for embedding the shinrai
// confidence and compliance algebra engine.
//
// The algebra itself lives in importable packages (subjective,
// compliance, annotation, merge, temporal, inference, lineage) and is
// pure: no I/O, no configuration, no logging. The Engine wraps those
// packages with the operational surface an embedding service wants:
// environment-driven defaults, structured logging, OpenTelemetry
// instruments, and bounded concurrent batch processing.
//
//	engine, err := shinrai.New(
//	    shinrai.WithVersion(version),
//	    shinrai.WithLogger(logger),
//	    shinrai.WithConflictStrategy(merge.StrategyWeightedVote),
//	)
//	if err != nil { ... }
//	defer engine.Close(ctx)
//
// The import graph enforces a strict no-cycle rule: shinrai (root)
// imports internal/* and the algebra packages, but they never import
// the root.
package shinrai

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ashita-ai/shinrai/annotation"
	"github.com/ashita-ai/shinrai/compliance"
	"github.com/ashita-ai/shinrai/internal/config"
	"github.com/ashita-ai/shinrai/internal/telemetry"
	"github.com/ashita-ai/shinrai/lineage"
	"github.com/ashita-ai/shinrai/merge"
	"github.com/ashita-ai/shinrai/subjective"
	"github.com/ashita-ai/shinrai/temporal"
)

// Engine is the configured algebra facade. Construct with New().
// Engine has no public fields — use New() options to configure it.
// All methods are safe for concurrent use: the engine holds no mutable
// state after construction.
type Engine struct {
	cfg          config.Config
	logger       *slog.Logger
	instruments  *telemetry.Instruments
	otelShutdown telemetry.Shutdown

	mergeOpts     merge.Options
	robustOpts    []subjective.RobustOption
	decayHalfLife float64
	decayFunc     subjective.DecayFunc
	walkKeys      annotation.KeySet
	concurrency   int
	version       string
}

// New constructs an Engine from environment configuration and options.
func New(opts ...Option) (*Engine, error) {
	o := resolvedOptions{}
	for _, fn := range opts {
		fn(&o)
	}

	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.LogLevel),
		}))
	}
	logger = logger.With("component", "shinrai")

	version := o.version
	if version == "" {
		version = "dev"
	}

	otelShutdown, err := telemetry.Init(context.Background(), cfg.OTELEndpoint, cfg.ServiceName, version, cfg.OTELInsecure)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	instruments, err := telemetry.NewInstruments("github.com/ashita-ai/shinrai")
	if err != nil {
		return nil, fmt.Errorf("init instruments: %w", err)
	}

	e := &Engine{
		cfg:          cfg,
		logger:       logger,
		instruments:  instruments,
		otelShutdown: otelShutdown,
		version:      version,
		walkKeys:     o.walkKeys,
		decayFunc:    o.decayFunc,
	}

	e.mergeOpts = merge.Options{
		Strategy:    merge.Strategy(cfg.MergeStrategy),
		Combination: merge.Combination(cfg.MergeCombination),
	}
	if o.mergeStrategy != "" {
		e.mergeOpts.Strategy = o.mergeStrategy
	}
	if o.mergeCombination != "" {
		e.mergeOpts.Combination = o.mergeCombination
	}

	threshold := cfg.RobustThreshold
	if o.robustThreshold != nil {
		threshold = *o.robustThreshold
	}
	e.robustOpts = []subjective.RobustOption{subjective.WithThreshold(threshold)}

	e.decayHalfLife = cfg.DecayHalfLife
	if o.decayHalfLife != nil {
		e.decayHalfLife = *o.decayHalfLife
	}
	if e.decayHalfLife <= 0 {
		return nil, fmt.Errorf("decay half-life must be positive, got %v", e.decayHalfLife)
	}

	e.concurrency = cfg.BatchConcurrency
	if o.batchConcurrency > 0 {
		e.concurrency = o.batchConcurrency
	}

	return e, nil
}

// Close flushes telemetry. Call during graceful shutdown.
func (e *Engine) Close(ctx context.Context) error {
	return e.otelShutdown(ctx)
}

// AnnotatedValues walks a document and returns every property value
// carrying at least one recognized annotation, in deterministic order.
func (e *Engine) AnnotatedValues(doc annotation.Document) []annotation.Annotated {
	return annotation.WalkDocument(doc, e.walkKeys)
}

// Merge merges two or more annotated documents using the engine's
// configured strategy and combination.
func (e *Engine) Merge(ctx context.Context, docs []annotation.Document) (annotation.Document, merge.Report, error) {
	merged, report, err := merge.Merge(docs, e.mergeOpts)
	if err != nil {
		return annotation.Document{}, merge.Report{}, err
	}
	e.instruments.MergesTotal.Add(ctx, 1)
	e.instruments.ConflictsTotal.Add(ctx, int64(report.PropertiesConflicted))
	e.logger.InfoContext(ctx, "graphs merged",
		"merge_id", report.ID,
		"sources", report.SourceCount,
		"nodes_merged", report.NodesMerged,
		"agreed", report.PropertiesAgreed,
		"conflicted", report.PropertiesConflicted,
	)
	return merged, report, nil
}

// MergeResult pairs one batch's merged document with its report.
type MergeResult struct {
	Document annotation.Document
	Report   merge.Report
}

// MergeBatches merges independent document sets concurrently, bounded
// by the configured batch concurrency. Results are returned in input
// order; the first error cancels the remaining work.
func (e *Engine) MergeBatches(ctx context.Context, batches [][]annotation.Document) ([]MergeResult, error) {
	if len(batches) == 0 {
		return nil, nil
	}
	runID := uuid.New()
	start := time.Now()

	results := make([]MergeResult, len(batches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, docs := range batches {
		i, docs := i, docs
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			merged, report, err := e.Merge(ctx, docs)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			results[i] = MergeResult{Document: merged, Report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.logger.ErrorContext(ctx, "batch merge failed", "run_id", runID, "error", err)
		return nil, err
	}

	elapsed := time.Since(start)
	e.instruments.BatchDurationMilli.Record(ctx, float64(elapsed.Milliseconds()))
	e.logger.InfoContext(ctx, "batch merge completed",
		"run_id", runID,
		"batches", len(batches),
		"elapsed", elapsed,
	)
	return results, nil
}

// Diff computes the semantic diff of two documents.
func (e *Engine) Diff(a, b annotation.Document) merge.DiffResult {
	return merge.Diff(a, b)
}

// QueryAtTime returns the graph state at a timestamp. See
// temporal.QueryAtTime for the pass-through semantics of propertyName.
func (e *Engine) QueryAtTime(nodes []annotation.Node, timestamp, propertyName string) ([]annotation.Node, error) {
	return temporal.QueryAtTime(nodes, timestamp, propertyName)
}

// TemporalDiff classifies what changed between two points in time.
func (e *Engine) TemporalDiff(nodes []annotation.Node, t1, t2 string) (temporal.DiffResult, error) {
	return temporal.Diff(nodes, t1, t2)
}

// RobustFuse performs byzantine-resistant fusion with the engine's
// configured discord threshold.
func (e *Engine) RobustFuse(ctx context.Context, opinions []subjective.Opinion) (subjective.Opinion, []int, error) {
	fused, removed, err := subjective.RobustFuse(opinions, e.robustOpts...)
	if err != nil {
		return subjective.Opinion{}, nil, err
	}
	if len(removed) > 0 {
		e.logger.WarnContext(ctx, "robust fusion removed discordant sources",
			"removed", removed, "total", len(opinions))
	}
	return fused, removed, nil
}

// Decay ages an opinion by elapsed time with the engine's configured
// half-life and decay function.
func (e *Engine) Decay(op subjective.Opinion, elapsed float64) (subjective.Opinion, error) {
	return subjective.DecayOpinion(op, elapsed, e.decayHalfLife, e.decayFunc)
}

// ErasureAssessment computes composite erasure completeness over the
// lineage scope of sourceID.
func (e *Engine) ErasureAssessment(ctx context.Context, sourceID string, provider lineage.Provider) (compliance.Opinion, error) {
	op, err := lineage.ErasureScopeAssessment(sourceID, provider)
	if err != nil {
		return compliance.Opinion{}, err
	}
	e.instruments.AssessmentsTotal.Add(ctx, 1)
	e.logger.InfoContext(ctx, "erasure scope assessed",
		"source", sourceID,
		"completeness", op.Lawfulness(),
	)
	return op, nil
}

// ContaminationRisk computes residual contamination at nodeID.
func (e *Engine) ContaminationRisk(ctx context.Context, nodeID string, provider lineage.Provider) (compliance.Opinion, error) {
	op, err := lineage.ContaminationRisk(nodeID, provider)
	if err != nil {
		return compliance.Opinion{}, err
	}
	e.instruments.AssessmentsTotal.Add(ctx, 1)
	return op, nil
}

// ReviewDueAssessment applies the review-due trigger per the schedule
// provider.
func (e *Engine) ReviewDueAssessment(ctx context.Context, op compliance.Opinion, assessmentID string, assessmentTime float64, schedule lineage.ReviewScheduleProvider) (compliance.Opinion, error) {
	out, err := lineage.ReviewDueAssessment(op, assessmentID, assessmentTime, schedule)
	if err != nil {
		return compliance.Opinion{}, err
	}
	e.instruments.AssessmentsTotal.Add(ctx, 1)
	return out, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
