// Package generator builds synthetic Intent sequences for load testing and
// demos, in the spirit of the source's generateRandomOrder helper: fixed
// price/quantity bands tuned for a high matching probability rather than a
// faithful model of any real market.
package generator

import (
	"math/rand/v2"

	"github.com/arjunvedula/matchcore/pkg/core"
)

// Sequential produces AddLimit intents with consecutive orderIds alternating
// side: even ids buy at Center-Step and odd ids sell at Center+Step, so with
// a positive Step the book holds one level per side and no two orders cross.
type Sequential struct {
	NextOrderID int32
	Center      float64
	Step        float64
	Quantity    int64
}

// Next returns the next intent and advances internal state.
func (s *Sequential) Next() core.Intent {
	id := s.NextOrderID
	s.NextOrderID++

	side := core.Buy
	price := s.Center - s.Step
	if id%2 == 1 {
		side = core.Sell
		price = s.Center + s.Step
	}
	return core.AddLimitIntent(id, side, s.Quantity, price)
}

// Random produces a mix of intent kinds around a fixed price center, sized
// to have a reasonable chance of crossing the resting book — the same
// tradeoff the source's fixed-price/fixed-quantity load generator makes.
type Random struct {
	rng         *rand.Rand
	nextOrderID int32

	// Center is the price new limit and stop orders cluster around.
	Center float64
	// Spread is the maximum distance from Center a generated price can land.
	Spread float64
	// MaxQuantity bounds generated order quantity (always >= 1).
	MaxQuantity int64
	// known is the set of orderIds issued so far, for generating Cancels
	// against orders that plausibly still rest in the book.
	known []int32
}

// NewRandom builds a Random generator seeded from seed, so a run is
// reproducible given the same seed and the same sequence of calls.
func NewRandom(seed uint64, center, spread float64, maxQuantity int64) *Random {
	return &Random{
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		nextOrderID: 1,
		Center:      center,
		Spread:      spread,
		MaxQuantity: maxQuantity,
	}
}

// Next returns the next randomly-chosen intent.
func (r *Random) Next() core.Intent {
	if len(r.known) > 2 && r.rng.Float64() < 0.1 {
		target := r.known[r.rng.IntN(len(r.known))]
		return core.CancelIntent(target)
	}

	id := r.nextOrderID
	r.nextOrderID++
	r.known = append(r.known, id)

	side := core.Buy
	if r.rng.Float64() < 0.5 {
		side = core.Sell
	}
	qty := int64(1) + r.rng.Int64N(r.MaxQuantity)

	switch {
	case r.rng.Float64() < 0.1:
		return core.MarketIntent(id, side, qty)
	case r.rng.Float64() < 0.15:
		return core.StopLossIntent(id, side, qty, r.randomPrice())
	default:
		return core.AddLimitIntent(id, side, qty, r.randomPrice())
	}
}

func (r *Random) randomPrice() float64 {
	offset := (r.rng.Float64()*2 - 1) * r.Spread
	price := r.Center + offset
	if price <= 0 {
		price = r.Center
	}
	return price
}
