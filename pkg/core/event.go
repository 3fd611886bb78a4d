package core

import (
	"fmt"
	"strconv"
	"strings"
)

// EventKind identifies which variant an Event carries (§3). The source's
// class hierarchy is reimplemented as a tagged sum with one constructor per
// kind and exhaustive switch dispatch at the consumer (§9 "Polymorphic
// message envelope").
type EventKind int

// Event kinds.
const (
	EventCancelAck EventKind = iota
	EventTrade
	EventOrderFullyFilled
	EventOrderPartiallyFilled
)

// Event is the tagged union of everything the engine can publish. Only the
// fields relevant to Kind are populated; callers should switch on Kind.
type Event struct {
	Kind EventKind

	// CancelAck / OrderFullyFilled / OrderPartiallyFilled
	OrderID int32

	// TradeEvent
	Quantity int64
	Price    float64

	// OrderPartiallyFilled
	FilledQuantity    int64
	RemainingQuantity int64
}

// CancelAckEvent builds a CancelAck(orderId) event.
func CancelAckEvent(orderID int32) Event {
	return Event{Kind: EventCancelAck, OrderID: orderID}
}

// TradeEventOf builds a TradeEvent(qty, price) event.
func TradeEventOf(qty int64, price float64) Event {
	return Event{Kind: EventTrade, Quantity: qty, Price: price}
}

// OrderFullyFilledEvent builds an OrderFullyFilled(orderId) event.
func OrderFullyFilledEvent(orderID int32) Event {
	return Event{Kind: EventOrderFullyFilled, OrderID: orderID}
}

// OrderPartiallyFilledEvent builds an OrderPartiallyFilled(orderId, filledQty, remainingQty) event.
func OrderPartiallyFilledEvent(orderID int32, filledQty, remainingQty int64) Event {
	return Event{
		Kind:              EventOrderPartiallyFilled,
		OrderID:           orderID,
		FilledQuantity:    filledQty,
		RemainingQuantity: remainingQty,
	}
}

// String renders an Event the way the canonical scenario in spec §8 prints it.
func (e Event) String() string {
	switch e.Kind {
	case EventCancelAck:
		return fmt.Sprintf("CancelAck(%d)", e.OrderID)
	case EventTrade:
		return fmt.Sprintf("TradeEvent(%d,%s)", e.Quantity, formatPrice(e.Price))
	case EventOrderFullyFilled:
		return fmt.Sprintf("OrderFullyFilled(%d)", e.OrderID)
	case EventOrderPartiallyFilled:
		return fmt.Sprintf("OrderPartiallyFilled(%d,%d,%d)", e.OrderID, e.FilledQuantity, e.RemainingQuantity)
	default:
		return "UnknownEvent"
	}
}

// formatPrice renders a price the way the canonical scenario does: the
// shortest decimal representation with at least one fractional digit.
func formatPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// EventSink receives every engine-emitted event in publish order (§1, §6).
// Process invokes it synchronously; a slow sink blocks the caller (§5).
type EventSink interface {
	Publish(Event)
}

// EventSinkFunc adapts a plain function to EventSink.
type EventSinkFunc func(Event)

// Publish calls f(e).
func (f EventSinkFunc) Publish(e Event) { f(e) }
