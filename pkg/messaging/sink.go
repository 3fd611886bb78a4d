package messaging

import (
	"github.com/rs/zerolog"

	"github.com/arjunvedula/matchcore/pkg/core"
)

// Sink adapts an EventPublisher to core.EventSink. A publish failure is
// logged and swallowed — per §5 the engine has no facility for propagating
// a sink error back to the caller, it can only block or not.
type Sink struct {
	Publisher EventPublisher
	Logger    zerolog.Logger
}

// Publish implements core.EventSink.
func (s Sink) Publish(e core.Event) {
	if err := s.Publisher.SendEvent(e); err != nil {
		s.Logger.Error().Err(err).Str("event", e.String()).Msg("messaging: failed to publish event")
	}
}

var _ core.EventSink = Sink{}
