package core

import "time"

// Observer receives engine-level telemetry around each Process call. It is
// the seam pkg/otel and pkg/metrics hook into; a nil Observer (the default)
// costs nothing extra. Kept in core so the engine never imports an
// instrumentation package directly.
type Observer interface {
	// ObserveIntent is called once per Process call with the intent's kind,
	// how long dispatch took, and whether it returned an error.
	ObserveIntent(kind IntentKind, elapsed time.Duration, err error)
	// ObserveEvent is called once for every event the dispatch produced.
	ObserveEvent(kind EventKind)
}

// MultiObserver fans telemetry out to every Observer it holds, in order.
type MultiObserver []Observer

// ObserveIntent implements Observer.
func (m MultiObserver) ObserveIntent(kind IntentKind, elapsed time.Duration, err error) {
	for _, o := range m {
		o.ObserveIntent(kind, elapsed, err)
	}
}

// ObserveEvent implements Observer.
func (m MultiObserver) ObserveEvent(kind EventKind) {
	for _, o := range m {
		o.ObserveEvent(kind)
	}
}

// noopObserver is the default Observer.
type noopObserver struct{}

func (noopObserver) ObserveIntent(IntentKind, time.Duration, error) {}
func (noopObserver) ObserveEvent(EventKind)                         {}

// Engine is the single entry point described in §4.7: a synchronous,
// single-threaded facade over a Price-Time Index and an Event Sink. It
// holds no persisted state of its own beyond the backend it was built with,
// and it is not safe for concurrent use — the caller serializes intents.
type Engine struct {
	backend  OrderBookBackend
	sink     EventSink
	observer Observer
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithObserver attaches telemetry. Passing nil is equivalent to omitting
// the option.
func WithObserver(o Observer) EngineOption {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// NewEngine builds an Engine over backend, publishing every emitted event to
// sink in the order the dispatch produces them.
func NewEngine(backend OrderBookBackend, sink EventSink, opts ...EngineOption) *Engine {
	e := &Engine{backend: backend, sink: sink, observer: noopObserver{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Backend exposes the underlying Price-Time Index, chiefly for the Book
// Inspector and for tests that assert on book state directly.
func (e *Engine) Backend() OrderBookBackend { return e.backend }

// observingSink wraps the engine's sink so every published event is also
// reported to the observer, without the dispatch functions needing to know
// telemetry exists.
type observingSink struct {
	sink     EventSink
	observer Observer
}

func (s observingSink) Publish(ev Event) {
	s.observer.ObserveEvent(ev.Kind)
	s.sink.Publish(ev)
}

// Process routes in to the appropriate Intent Dispatcher operation (§4.3–
// §4.6) and publishes whatever events that operation produces. It returns
// an error only for programmer-level failures — an invalid intent, a
// duplicate orderId, or an unrecognized kind — never for ordinary business
// outcomes such as an unknown cancel target or an unfilled residual (§7).
func (e *Engine) Process(in Intent) error {
	start := time.Now()
	sink := observingSink{sink: e.sink, observer: e.observer}

	var err error
	switch in.Kind {
	case IntentAddLimit:
		err = dispatchAddLimit(e.backend, sink, in)
	case IntentCancel:
		err = dispatchCancel(e.backend, sink, in)
	case IntentMarket:
		err = dispatchMarket(e.backend, sink, in)
	case IntentStopLoss:
		err = dispatchStopLoss(e.backend, sink, in)
	default:
		err = ErrUnknownIntentKind
	}

	e.observer.ObserveIntent(in.Kind, time.Since(start), err)
	return err
}
