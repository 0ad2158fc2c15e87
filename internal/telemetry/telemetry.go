package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"users-api/internal/config"
)

const instrumentationName = "users-api"

// Metrics holds the OpenTelemetry metric instruments
type Metrics struct {
	Invocations metric.Int64Counter
	ColdStarts  metric.Int64Counter
	StoreErrors metric.Int64Counter
}

// Telemetry bundles the tracer and metric instruments used by handlers and
// repositories. Providers are taken from the otel globals, so nothing is
// exported unless the process installs an SDK.
type Telemetry struct {
	Tracer  trace.Tracer
	Metrics *Metrics
	service string
}

// New creates telemetry backed by the global OpenTelemetry providers
func New(cfg config.TelemetryConfig) *Telemetry {
	meterName := cfg.MetricsNamespace
	if meterName == "" {
		meterName = instrumentationName
	}
	return &Telemetry{
		Tracer:  otel.Tracer(instrumentationName),
		Metrics: initMetrics(otel.Meter(meterName)),
		service: cfg.ServiceName,
	}
}

// Noop returns telemetry that records nothing
func Noop() *Telemetry {
	return &Telemetry{
		Tracer:  tracenoop.NewTracerProvider().Tracer(instrumentationName),
		Metrics: initMetrics(metricnoop.NewMeterProvider().Meter(instrumentationName)),
	}
}

// initMetrics creates all metric instruments
func initMetrics(meter metric.Meter) *Metrics {
	invocations, _ := meter.Int64Counter("users.invocations",
		metric.WithDescription("Total number of handled requests"),
		metric.WithUnit("{request}"),
	)

	coldStarts, _ := meter.Int64Counter("users.cold_start",
		metric.WithDescription("Invocations served by a fresh execution environment"),
		metric.WithUnit("{invocation}"),
	)

	storeErrors, _ := meter.Int64Counter("users.store.errors",
		metric.WithDescription("Failed user store operations"),
		metric.WithUnit("{error}"),
	)

	return &Metrics{
		Invocations: invocations,
		ColdStarts:  coldStarts,
		StoreErrors: storeErrors,
	}
}

// StartSpan starts a new span named after the operation
func (t *Telemetry) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if t == nil || t.Tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	if t.service != "" {
		attrs = append(attrs, attribute.String("service.name", t.service))
	}
	return t.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span, if any, and ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// RecordInvocation counts a handled request by route and status code
func (t *Telemetry) RecordInvocation(ctx context.Context, route string, status int) {
	if t == nil || t.Metrics == nil {
		return
	}
	t.Metrics.Invocations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.Int("status_code", status),
	))
}

// RecordColdStart counts the first invocation of an execution environment
func (t *Telemetry) RecordColdStart(ctx context.Context, function string) {
	if t == nil || t.Metrics == nil {
		return
	}
	t.Metrics.ColdStarts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("function_name", function),
	))
}

// RecordStoreError counts a failed store operation
func (t *Telemetry) RecordStoreError(ctx context.Context, backend, op string) {
	if t == nil || t.Metrics == nil {
		return
	}
	t.Metrics.StoreErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("db.system", backend),
		attribute.String("db.operation", op),
	))
}
