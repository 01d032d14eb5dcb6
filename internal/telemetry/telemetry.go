// Package telemetry initializes OpenTelemetry tracing and metrics
// exporters and holds the engine's instruments.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Shutdown combines multiple shutdown functions.
type Shutdown func(ctx context.Context) error

// Init configures the global OpenTelemetry tracer and meter providers.
// If endpoint is empty, OTEL is disabled and no-op providers are used.
// Returns a shutdown function that must be called on engine close.
func Init(ctx context.Context, endpoint, serviceName, version string, insecure bool) (Shutdown, error) {
	if endpoint == "" {
		return func(ctx context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create resource: %w", err)
	}

	// Trace exporter.
	traceOpts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpoint),
	}
	if insecure {
		traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
	}
	traceExp, err := otlptracehttp.New(ctx, traceOpts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp,
			sdktrace.WithBatchTimeout(5*time.Second),
		),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	// Metric exporter.
	metricOpts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(endpoint),
	}
	if insecure {
		metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
	}
	metricExp, err := otlpmetrichttp.New(ctx, metricOpts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(metricExp,
				sdkmetric.WithInterval(15*time.Second),
			),
		),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	shutdown := func(ctx context.Context) error {
		var firstErr error
		if err := tp.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := mp.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		return firstErr
	}

	return shutdown, nil
}

// Meter returns the global meter for the given instrumentation scope.
func Meter(name string) metric.Meter {
	return otel.GetMeterProvider().Meter(name)
}

// Instruments are the engine's metrics. All instruments come from the
// global meter provider, so they are no-ops until Init runs with an
// endpoint.
type Instruments struct {
	MergesTotal        metric.Int64Counter
	ConflictsTotal     metric.Int64Counter
	AssessmentsTotal   metric.Int64Counter
	BatchDurationMilli metric.Float64Histogram
}

// NewInstruments creates the engine instruments under the given scope.
func NewInstruments(scope string) (*Instruments, error) {
	meter := Meter(scope)

	merges, err := meter.Int64Counter("shinrai.merges.total",
		metric.WithDescription("Graph merge runs completed"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: merges counter: %w", err)
	}
	conflicts, err := meter.Int64Counter("shinrai.merge.conflicts.total",
		metric.WithDescription("Property conflicts encountered during merges"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: conflicts counter: %w", err)
	}
	assessments, err := meter.Int64Counter("shinrai.assessments.total",
		metric.WithDescription("Compliance assessments evaluated"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: assessments counter: %w", err)
	}
	batchDuration, err := meter.Float64Histogram("shinrai.batch.duration",
		metric.WithDescription("Batch fan-out wall time"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: batch histogram: %w", err)
	}

	return &Instruments{
		MergesTotal:        merges,
		ConflictsTotal:     conflicts,
		AssessmentsTotal:   assessments,
		BatchDurationMilli: batchDuration,
	}, nil
}
