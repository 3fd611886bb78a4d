package messaging

import "github.com/arjunvedula/matchcore/pkg/core"

// NoopPublisher is a no-op EventPublisher, for tests and drivers that don't
// need an external sink.
type NoopPublisher struct{}

// SendEvent does nothing.
func (NoopPublisher) SendEvent(core.Event) error { return nil }

var _ EventPublisher = NoopPublisher{}
