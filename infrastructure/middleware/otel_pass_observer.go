package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/benchlens/benchlens/internal/engine"
	"github.com/benchlens/benchlens/internal/ports"
)

// WithTracing returns an engine option that attaches an OpenTelemetry
// pass observer without a metrics collector.
func WithTracing() engine.Option {
	return engine.WithObserver(NewOTelPassObserver(nil))
}

var _ ports.PassObserver = (*OTelPassObserver)(nil)

// tracerName identifies spans created by the pass observer.
const tracerName = "score-engine"

// OTelPassObserver implements observability for engine compute passes
// using OpenTelemetry tracing. It opens one span per pass and records the
// number of models the pass touched.
type OTelPassObserver struct {
	metrics ports.MetricsCollector
}

// NewOTelPassObserver creates a new OpenTelemetry pass observer. The
// metrics collector is optional; when present, per-pass model counts are
// also recorded as metrics.
func NewOTelPassObserver(metrics ports.MetricsCollector) *OTelPassObserver {
	return &OTelPassObserver{metrics: metrics}
}

// PassStart implements the PassObserver interface. It starts a span for
// the pass and returns the span-carrying context.
func (o *OTelPassObserver) PassStart(ctx context.Context, pass string) context.Context {
	tracer := otel.Tracer(tracerName)
	ctx, _ = tracer.Start(ctx, "Engine."+pass)
	return ctx
}

// PassEnd implements the PassObserver interface. It finalizes the span
// and records the pass's model count.
func (o *OTelPassObserver) PassEnd(ctx context.Context, pass string, models int) {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetAttributes(
		attribute.String("engine.pass", pass),
		attribute.Int("engine.models", models),
	)
	span.AddEvent("pass.completed", trace.WithAttributes(
		attribute.Int("models_processed", models),
	))

	if o.metrics != nil {
		o.metrics.RecordCounter("pass_"+pass, 1, map[string]string{"pass": pass})
	}
}
