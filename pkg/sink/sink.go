// Package sink provides EventSink implementations: an in-memory collector
// for tests and verification drivers, and a fan-out sink for wiring several
// collaborators (a collector, a logger, a Kafka publisher) to the same
// engine without the engine knowing any of them exist.
package sink

import (
	"sync"

	"github.com/arjunvedula/matchcore/pkg/core"
)

// Collector buffers every published event into an ordered, thread-safe
// list — the "buffer events into an ordered list for post-hoc
// verification" sink named in §6.
type Collector struct {
	mu     sync.Mutex
	events []core.Event
}

// NewCollector builds an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Publish implements core.EventSink.
func (c *Collector) Publish(e core.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of everything published so far, in publish order.
func (c *Collector) Events() []core.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Strings renders Events() with Event.String(), for comparing against a
// fixture like the canonical scenario in §8.
func (c *Collector) Strings() []string {
	events := c.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.String()
	}
	return out
}

// Reset clears everything collected so far.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}

// Fanout publishes every event to each of its sinks, in order. A panic or
// slowness in one sink is not isolated from the others — §5 already makes
// the caller responsible for a slow sink, and fan-out does not change that.
type Fanout []core.EventSink

// Publish implements core.EventSink.
func (f Fanout) Publish(e core.Event) {
	for _, s := range f {
		s.Publish(e)
	}
}
