// Package metrics provides a Prometheus Collector for the matching engine,
// trimmed from the source's much larger multi-subsystem collector down to
// the handful of series an order-matching Engine Facade can actually
// produce: intents processed, events emitted, dispatch latency, and book
// depth.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arjunvedula/matchcore/pkg/core"
)

var (
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds every metric the engine reports.
type Collector struct {
	IntentsTotal    *prometheus.CounterVec
	IntentErrors    *prometheus.CounterVec
	IntentLatency   *prometheus.HistogramVec
	EventsTotal     *prometheus.CounterVec
	OrderbookDepth  *prometheus.GaugeVec
}

// GetCollector returns the process-wide singleton Collector, registering its
// metrics with the default Prometheus registry the first time it is called.
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

func newCollector() *Collector {
	c := &Collector{
		IntentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "matchcore",
				Subsystem: "engine",
				Name:      "intents_total",
				Help:      "Total number of intents processed, by kind.",
			},
			[]string{"kind"},
		),
		IntentErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "matchcore",
				Subsystem: "engine",
				Name:      "intent_errors_total",
				Help:      "Total number of intents that returned a programmer-level error, by kind.",
			},
			[]string{"kind"},
		),
		IntentLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "matchcore",
				Subsystem: "engine",
				Name:      "intent_latency_seconds",
				Help:      "Process() dispatch latency, by intent kind.",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"kind"},
		),
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "matchcore",
				Subsystem: "engine",
				Name:      "events_total",
				Help:      "Total number of events emitted, by kind.",
			},
			[]string{"kind"},
		),
		OrderbookDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "matchcore",
				Subsystem: "book",
				Name:      "depth",
				Help:      "Resting order count, by side.",
			},
			[]string{"side"},
		),
	}

	prometheus.MustRegister(c.IntentsTotal)
	prometheus.MustRegister(c.IntentErrors)
	prometheus.MustRegister(c.IntentLatency)
	prometheus.MustRegister(c.EventsTotal)
	prometheus.MustRegister(c.OrderbookDepth)

	return c
}

// Handler returns the Prometheus HTTP scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveIntent implements core.Observer.
func (c *Collector) ObserveIntent(kind core.IntentKind, elapsed time.Duration, err error) {
	label := intentKindLabel(kind)
	c.IntentsTotal.WithLabelValues(label).Inc()
	c.IntentLatency.WithLabelValues(label).Observe(elapsed.Seconds())
	if err != nil {
		c.IntentErrors.WithLabelValues(label).Inc()
	}
}

// ObserveEvent implements core.Observer.
func (c *Collector) ObserveEvent(kind core.EventKind) {
	c.EventsTotal.WithLabelValues(eventKindLabel(kind)).Inc()
}

// RecordDepth publishes current side depths. Callers drive this themselves
// after Process returns — the engine has no background goroutine to do it.
func (c *Collector) RecordDepth(backend core.OrderBookBackend) {
	c.OrderbookDepth.WithLabelValues("buy").Set(float64(backend.Depth(core.Buy)))
	c.OrderbookDepth.WithLabelValues("sell").Set(float64(backend.Depth(core.Sell)))
}

func intentKindLabel(kind core.IntentKind) string {
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

func eventKindLabel(kind core.EventKind) string {
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

var _ core.Observer = (*Collector)(nil)
