package core

// Order is the resting representation of an intent once it has been
// accepted by the book (§3). A *Order is shared between the identity
// index and the side-appropriate ordered collection — the two must
// never diverge (I3).
type Order struct {
	id                int32
	side              Side
	kind              OrderKind
	remainingQuantity int64
	price             float64
}

// NewLimitOrder builds a resting LIMIT order.
func NewLimitOrder(id int32, side Side, qty int64, price float64) (*Order, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	return &Order{id: id, side: side, kind: KindLimit, remainingQuantity: qty, price: price}, nil
}

// NewMarketOrder builds a MARKET order. referencePrice is recorded on the
// record as an informational field only (§4.5) — it never restricts matching.
func NewMarketOrder(id int32, side Side, qty int64, referencePrice float64) (*Order, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &Order{id: id, side: side, kind: KindMarket, remainingQuantity: qty, price: referencePrice}, nil
}

// NewStopOrder builds a resting STOP_LOSS order priced at its stop price (§4.6).
func NewStopOrder(id int32, side Side, qty int64, stopPrice float64) (*Order, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if stopPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	return &Order{id: id, side: side, kind: KindStopLoss, remainingQuantity: qty, price: stopPrice}, nil
}

// ID returns the order's caller-assigned identifier.
func (o *Order) ID() int32 { return o.id }

// Side returns the order's side.
func (o *Order) Side() Side { return o.side }

// Kind returns the order's kind.
func (o *Order) Kind() OrderKind { return o.kind }

// Price returns the order's price field (§3: limit price, market reference
// price, or stop price depending on Kind).
func (o *Order) Price() float64 { return o.price }

// RemainingQuantity returns the quantity still unfilled (I2: always > 0
// while the order is resting).
func (o *Order) RemainingQuantity() int64 { return o.remainingQuantity }

// decrease reduces the remaining quantity by qty. qty must not exceed
// RemainingQuantity(); the matcher is the only caller.
func (o *Order) decrease(qty int64) {
	o.remainingQuantity -= qty
}

// String implements fmt.Stringer.
func (o *Order) String() string {
	return o.kind.String() + " " + o.side.String()
}
