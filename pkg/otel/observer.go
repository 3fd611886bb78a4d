package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/arjunvedula/matchcore/pkg/core"
)

// Observer implements core.Observer by emitting one span per Process call
// on the matching engine tracer. It carries no state of its own; ctx is
// fixed at construction since the Engine Facade's Process signature (§4.7)
// takes no context.
type Observer struct {
	ctx context.Context
}

// NewObserver builds an Observer that starts spans against ctx's trace, if
// any, falling back to context.Background().
func NewObserver(ctx context.Context) *Observer {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Observer{ctx: ctx}
}

// ObserveIntent implements core.Observer.
func (o *Observer) ObserveIntent(kind core.IntentKind, elapsed time.Duration, err error) {
	_, span := StartSpan(o.ctx, SpanProcessIntent,
		attribute.String(AttributeIntentKind, intentKindString(kind)),
		attribute.Int64("intent.elapsed_ns", elapsed.Nanoseconds()),
	)
	if span == nil {
		return
	}
	defer span.End()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
}

// ObserveEvent implements core.Observer.
func (o *Observer) ObserveEvent(kind core.EventKind) {
	_, span := StartSpan(o.ctx, SpanPublishEvent, attribute.String(AttributeEventKind, eventKindString(kind)))
	if span == nil {
		return
	}
	span.End()
}

func intentKindString(kind core.IntentKind) string {
	switch kind {
	case core.IntentAddLimit:
		return "add_limit"
	case core.IntentCancel:
		return "cancel"
	case core.IntentMarket:
		return "market"
	case core.IntentStopLoss:
		return "stop_loss"
	default:
		return "unknown"
	}
}

func eventKindString(kind core.EventKind) string {
	switch kind {
	case core.EventCancelAck:
		return "cancel_ack"
	case core.EventTrade:
		return "trade"
	case core.EventOrderFullyFilled:
		return "order_fully_filled"
	case core.EventOrderPartiallyFilled:
		return "order_partially_filled"
	default:
		return "unknown"
	}
}

var _ core.Observer = (*Observer)(nil)
