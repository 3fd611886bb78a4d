package core

// crosses reports whether a resting order at makerPrice on the opposite side
// of takerSide would trade against a limit-priced taker at takerPrice (I4:
// ties count as a cross). Market takers never consult this — every resting
// order crosses a market order.
func crosses(takerSide Side, takerPrice, makerPrice float64) bool {
	if takerSide == Buy {
		return !priceLess(takerPrice, makerPrice)
	}
	return !priceLess(makerPrice, takerPrice)
}

// match runs taker against the opposite side of backend until taker is
// exhausted, the opposite side runs dry, or (for a priced taker) the best
// remaining quote no longer crosses. It implements the Case A / Case B
// algorithm exactly, including the Case A double TradeEvent on simultaneous
// maker-and-taker exhaustion — that duplication is a property of the source
// this engine reproduces, not a bug to fix here.
func match(backend OrderBookBackend, sink EventSink, taker *Order) {
	oppSide := taker.Side().Opposite()
	priced := taker.Kind() != KindMarket

	for taker.RemainingQuantity() > 0 {
		maker := backend.PeekBest(oppSide)
		if maker == nil {
			return
		}
		if priced && !crosses(taker.Side(), taker.Price(), maker.Price()) {
			return
		}

		makerQty := maker.RemainingQuantity()
		takerQty := taker.RemainingQuantity()

		if makerQty <= takerQty {
			// Case A: the maker is exhausted (or exactly matched).
			backend.PopBest(oppSide)
			sink.Publish(OrderFullyFilledEvent(maker.ID()))
			sink.Publish(TradeEventOf(makerQty, maker.Price()))

			taker.decrease(makerQty)
			if taker.RemainingQuantity() == 0 {
				sink.Publish(OrderFullyFilledEvent(taker.ID()))
				sink.Publish(TradeEventOf(makerQty, taker.Price()))
				backend.RemoveByID(taker.ID())
				return
			}
			sink.Publish(OrderPartiallyFilledEvent(taker.ID(), makerQty, taker.RemainingQuantity()))
			continue
		}

		// Case B: the maker absorbs the whole taker and keeps resting.
		tradeQty := takerQty
		maker.decrease(tradeQty)
		sink.Publish(OrderPartiallyFilledEvent(maker.ID(), tradeQty, maker.RemainingQuantity()))
		sink.Publish(TradeEventOf(tradeQty, taker.Price()))

		taker.decrease(tradeQty)
		backend.RemoveByID(taker.ID())
		return
	}
}
