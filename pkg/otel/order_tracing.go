package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Span names, one per Engine Facade / Intent Dispatcher operation.
	SpanProcessIntent = "process_intent"
	SpanMatch         = "match"
	SpanPublishEvent  = "publish_event"

	// Attribute keys.
	AttributeOrderID           = "order.id"
	AttributeOrderSide         = "order.side"
	AttributeIntentKind        = "intent.kind"
	AttributeOrderQuantity     = "order.quantity"
	AttributeOrderPrice        = "order.price"
	AttributeRemainingQuantity = "order.remaining_quantity"
	AttributeEventKind         = "event.kind"
)

// StartSpan starts a new span for an engine operation on the matching
// engine tracer. Returns a nil span if tracing was never initialized.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := Tracer()
	if tracer == nil {
		return ctx, nil
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// AddAttributes adds attributes to a span. A nil span is a no-op.
func AddAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	span.SetAttributes(attrs...)
}
