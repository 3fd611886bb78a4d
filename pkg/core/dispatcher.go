package core

// dispatchAddLimit implements §4.3: construct a resting LIMIT order, insert
// it on its own side, then let it take liquidity from the opposite side.
func dispatchAddLimit(backend OrderBookBackend, sink EventSink, in Intent) error {
	order, err := NewLimitOrder(in.OrderID, in.Side, in.Quantity, in.Price)
	if err != nil {
		return err
	}
	if backend.GetByID(in.OrderID) != nil {
		return ErrDuplicateOrderID
	}
	backend.Insert(order)
	match(backend, sink, order)
	return nil
}

// dispatchCancel implements §4.4: remove a resting order and acknowledge it.
// An unknown orderId is a normal business outcome, not an error (§7) — it is
// silently ignored and no event is published.
func dispatchCancel(backend OrderBookBackend, sink EventSink, in Intent) error {
	if backend.RemoveByID(in.OrderID) {
		sink.Publish(CancelAckEvent(in.OrderID))
	}
	return nil
}

// dispatchMarket implements §4.5: construct a MARKET order, insert it on its
// own side, then drain the opposite side regardless of price. Any quantity
// left unfilled once the opposite side runs dry keeps resting on the
// taker's own side — it was already inserted there before matching ran.
func dispatchMarket(backend OrderBookBackend, sink EventSink, in Intent) error {
	reference := 0.0
	if best := backend.PeekBest(in.Side.Opposite()); best != nil {
		reference = best.Price()
	}
	order, err := NewMarketOrder(in.OrderID, in.Side, in.Quantity, reference)
	if err != nil {
		return err
	}
	if backend.GetByID(in.OrderID) != nil {
		return ErrDuplicateOrderID
	}
	backend.Insert(order)
	match(backend, sink, order)
	return nil
}

// shouldTrigger reports whether a stop order on side with the given
// stopPrice would activate against the current best quote on the opposite
// side. A sell stop activates once the market has fallen to or through
// stopPrice (best bid <= stopPrice); a buy stop activates once the market
// has risen to or through stopPrice (best ask >= stopPrice).
func shouldTrigger(backend OrderBookBackend, side Side, stopPrice float64) bool {
	best := backend.PeekBest(side.Opposite())
	if best == nil {
		return false
	}
	if side == Sell {
		return !priceLess(stopPrice, best.Price())
	}
	return !priceLess(best.Price(), stopPrice)
}

// dispatchStopLoss implements §4.6. A stop that triggers at acceptance time
// is dispatched exactly like a Market order. A stop that does not trigger
// is inserted as an ordinary resting order priced at its stop price and
// then treated identically to a freshly added limit order — it is never
// re-examined for triggering later, even as the book moves.
func dispatchStopLoss(backend OrderBookBackend, sink EventSink, in Intent) error {
	if shouldTrigger(backend, in.Side, in.StopPrice) {
		return dispatchMarket(backend, sink, MarketIntent(in.OrderID, in.Side, in.Quantity))
	}

	order, err := NewStopOrder(in.OrderID, in.Side, in.Quantity, in.StopPrice)
	if err != nil {
		return err
	}
	if backend.GetByID(in.OrderID) != nil {
		return ErrDuplicateOrderID
	}
	backend.Insert(order)
	match(backend, sink, order)
	return nil
}
