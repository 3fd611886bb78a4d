package core

// IntentKind identifies which variant an Intent carries (§3).
type IntentKind int

// Intent kinds.
const (
	IntentAddLimit IntentKind = iota
	IntentCancel
	IntentMarket
	IntentStopLoss
)

// Intent is the tagged union of everything the engine accepts as input.
// Only the fields relevant to Kind are populated.
type Intent struct {
	Kind    IntentKind
	OrderID int32
	Side    Side

	// AddLimit / Market / StopLoss
	Quantity int64

	// AddLimit
	Price float64

	// StopLoss
	StopPrice float64
}

// AddLimitIntent builds an AddLimit(orderId, side, qty, price) intent.
func AddLimitIntent(orderID int32, side Side, qty int64, price float64) Intent {
	return Intent{Kind: IntentAddLimit, OrderID: orderID, Side: side, Quantity: qty, Price: price}
}

// CancelIntent builds a Cancel(orderId) intent.
func CancelIntent(orderID int32) Intent {
	return Intent{Kind: IntentCancel, OrderID: orderID}
}

// MarketIntent builds a Market(orderId, side, qty) intent.
func MarketIntent(orderID int32, side Side, qty int64) Intent {
	return Intent{Kind: IntentMarket, OrderID: orderID, Side: side, Quantity: qty}
}

// StopLossIntent builds a StopLoss(orderId, side, qty, stopPrice) intent.
func StopLossIntent(orderID int32, side Side, qty int64, stopPrice float64) Intent {
	return Intent{Kind: IntentStopLoss, OrderID: orderID, Side: side, Quantity: qty, StopPrice: stopPrice}
}
