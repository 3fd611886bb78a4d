// Package messaging decouples the engine's Event Sink from any particular
// transport, the same role the source's MessageSender interface plays for
// its DoneMessage type.
package messaging

import "github.com/arjunvedula/matchcore/pkg/core"

// EventPublisher sends one already-occurred engine Event to an external
// system. Implementations must not block the caller indefinitely — §5
// makes a slow sink the engine caller's problem, not the engine's.
type EventPublisher interface {
	SendEvent(event core.Event) error
}

// Envelope is the wire representation of an Event, carrying the fields
// every EventKind can populate so a single JSON shape covers all of them.
type Envelope struct {
	Kind              string  `json:"kind"`
	OrderID           int32   `json:"orderId,omitempty"`
	Quantity          int64   `json:"quantity,omitempty"`
	Price             float64 `json:"price,omitempty"`
	FilledQuantity    int64   `json:"filledQuantity,omitempty"`
	RemainingQuantity int64   `json:"remainingQuantity,omitempty"`
}

// ToEnvelope converts an Event to its wire form.
func ToEnvelope(e core.Event) Envelope {
	return Envelope{
		Kind:              eventKindName(e.Kind),
		OrderID:           e.OrderID,
		Quantity:          e.Quantity,
		Price:             e.Price,
		FilledQuantity:    e.FilledQuantity,
		RemainingQuantity: e.RemainingQuantity,
	}
}

func eventKindName(kind core.EventKind) string {
	switch kind {
	case core.EventCancelAck:
		return "CancelAck"
	case core.EventTrade:
		return "TradeEvent"
	case core.EventOrderFullyFilled:
		return "OrderFullyFilled"
	case core.EventOrderPartiallyFilled:
		return "OrderPartiallyFilled"
	default:
		return "Unknown"
	}
}
