package core

// OrderBookBackend is the Price–Time Index of §4.1: two ordered multisets
// keyed by (price, orderId) with the side-specific ordering of I4, plus an
// identity index for O(1) lookup. Implementations must never let the
// ordered collection and the identity index diverge (I3).
type OrderBookBackend interface {
	// GetByID looks up a resting order without removing it. Returns nil if absent.
	GetByID(orderID int32) *Order

	// Insert adds order to the side-appropriate ordered collection and to
	// the identity index. The caller must ensure orderID is not already
	// present (I1); implementations panic on violation (§7 error kind 4).
	Insert(order *Order)

	// PeekBest returns the best (highest-priority) resting order on side
	// without removing it. Returns nil if that side is empty.
	PeekBest(side Side) *Order

	// PopBest removes and returns the best resting order on side. Returns
	// nil if that side is empty.
	PopBest(side Side) *Order

	// RemoveByID removes orderID from both structures. Idempotent: returns
	// whether a removal actually occurred.
	RemoveByID(orderID int32) bool

	// Depth returns the number of resting orders on side.
	Depth(side Side) int

	// Levels returns, for side in priority order, the price of each
	// occupied price level and the resting orders at that level in
	// arrival (FIFO) order. Used by the Book Inspector (§4.7/§4.8).
	Levels(side Side) []PriceLevel
}

// PriceLevel is a read-only snapshot of one occupied price level, used by
// the Book Inspector. It is not part of the backend's mutable state.
type PriceLevel struct {
	Price  float64
	Orders []*Order
}
