// Package memory implements the Price-Time Index (§4.1) as an in-process,
// non-persistent backend: one google/btree-ordered set of price levels per
// side, each level a FIFO queue of resting orders, plus a flat identity
// index for O(1) lookup by orderId.
package memory

import (
	"sync"

	"github.com/google/btree"

	"github.com/arjunvedula/matchcore/pkg/core"
)

const btreeDegree = 32

// levelItem is the btree.Item stored in each side's tree. Both sides use
// the same ascending-by-price ordering; which end counts as "best" is a
// property of the side, not of the item.
type levelItem struct {
	price float64
	level *core.PriceLevel
}

// Less implements btree.Item.
func (a *levelItem) Less(than btree.Item) bool {
	return a.price < than.(*levelItem).price
}

// side is one half of the book: a btree of occupied price levels, ordered
// ascending by price, plus a flag for which end is "best".
type side struct {
	tree *btree.BTree
	desc bool // true for bids (best = highest price), false for asks (best = lowest price)
}

func newSide(desc bool) *side {
	return &side{tree: btree.New(btreeDegree), desc: desc}
}

func (s *side) get(key float64) *core.PriceLevel {
	item := s.tree.Get(&levelItem{price: key})
	if item == nil {
		return nil
	}
	return item.(*levelItem).level
}

func (s *side) getOrCreate(key float64) *core.PriceLevel {
	if lvl := s.get(key); lvl != nil {
		return lvl
	}
	lvl := &core.PriceLevel{Price: key}
	s.tree.ReplaceOrInsert(&levelItem{price: key, level: lvl})
	return lvl
}

func (s *side) remove(key float64) {
	s.tree.Delete(&levelItem{price: key})
}

func (s *side) best() *core.PriceLevel {
	var item btree.Item
	if s.desc {
		item = s.tree.Max()
	} else {
		item = s.tree.Min()
	}
	if item == nil {
		return nil
	}
	return item.(*levelItem).level
}

func (s *side) depth() int {
	n := 0
	s.tree.Ascend(func(item btree.Item) bool {
		n += len(item.(*levelItem).level.Orders)
		return true
	})
	return n
}

// snapshot returns every occupied level in priority order.
func (s *side) snapshot() []core.PriceLevel {
	out := make([]core.PriceLevel, 0, s.tree.Len())
	walk := func(item btree.Item) bool {
		lvl := item.(*levelItem).level
		orders := make([]*core.Order, len(lvl.Orders))
		copy(orders, lvl.Orders)
		out = append(out, core.PriceLevel{Price: lvl.Price, Orders: orders})
		return true
	}
	if s.desc {
		s.tree.Descend(walk)
	} else {
		s.tree.Ascend(walk)
	}
	return out
}

// location records where a resting order lives, so RemoveByID never has to
// search a whole side.
type location struct {
	side core.Side
	key  float64
}

// Backend is the in-memory OrderBookBackend (§4.1). The Engine Facade is
// documented as single-threaded (§5), but Backend guards its own state with
// a mutex so it can also be driven directly by tests and the Book Inspector
// from a different goroutine than the engine.
type Backend struct {
	mu    sync.Mutex
	bids  *side // Buy side, best = highest price
	asks  *side // Sell side, best = lowest price
	byID  map[int32]*core.Order
	where map[int32]location
}

// New builds an empty Backend.
func New() *Backend {
	return &Backend{
		bids:  newSide(true),
		asks:  newSide(false),
		byID:  make(map[int32]*core.Order),
		where: make(map[int32]location),
	}
}

func (b *Backend) sideFor(s core.Side) *side {
	if s == core.Buy {
		return b.bids
	}
	return b.asks
}

// GetByID implements core.OrderBookBackend.
func (b *Backend) GetByID(orderID int32) *core.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.byID[orderID]
}

// Insert implements core.OrderBookBackend.
func (b *Backend) Insert(order *core.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.byID[order.ID()]; exists {
		panic(core.ErrDuplicateOrderID)
	}

	key := core.PriceKey(order.Price())
	s := b.sideFor(order.Side())
	lvl := s.getOrCreate(key)
	lvl.Orders = append(lvl.Orders, order)

	b.byID[order.ID()] = order
	b.where[order.ID()] = location{side: order.Side(), key: key}
}

// PeekBest implements core.OrderBookBackend.
func (b *Backend) PeekBest(side core.Side) *core.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	lvl := b.sideFor(side).best()
	if lvl == nil || len(lvl.Orders) == 0 {
		return nil
	}
	return lvl.Orders[0]
}

// PopBest implements core.OrderBookBackend.
func (b *Backend) PopBest(side core.Side) *core.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.sideFor(side)
	lvl := s.best()
	if lvl == nil || len(lvl.Orders) == 0 {
		return nil
	}
	order := lvl.Orders[0]
	lvl.Orders = lvl.Orders[1:]
	if len(lvl.Orders) == 0 {
		s.remove(core.PriceKey(lvl.Price))
	}
	delete(b.byID, order.ID())
	delete(b.where, order.ID())
	return order
}

// RemoveByID implements core.OrderBookBackend.
func (b *Backend) RemoveByID(orderID int32) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	loc, ok := b.where[orderID]
	if !ok {
		return false
	}
	s := b.sideFor(loc.side)
	lvl := s.get(loc.key)
	if lvl == nil {
		delete(b.byID, orderID)
		delete(b.where, orderID)
		return true
	}
	for i, o := range lvl.Orders {
		if o.ID() == orderID {
			lvl.Orders = append(lvl.Orders[:i], lvl.Orders[i+1:]...)
			break
		}
	}
	if len(lvl.Orders) == 0 {
		s.remove(loc.key)
	}
	delete(b.byID, orderID)
	delete(b.where, orderID)
	return true
}

// Depth implements core.OrderBookBackend.
func (b *Backend) Depth(side core.Side) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sideFor(side).depth()
}

// Levels implements core.OrderBookBackend.
func (b *Backend) Levels(side core.Side) []core.PriceLevel {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sideFor(side).snapshot()
}

var _ core.OrderBookBackend = (*Backend)(nil)
