package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunvedula/matchcore/pkg/core"
)

func mustLimit(t *testing.T, id int32, side core.Side, qty int64, price float64) *core.Order {
	t.Helper()
	o, err := core.NewLimitOrder(id, side, qty, price)
	require.NoError(t, err)
	return o
}

func TestBackend_InsertAndPeekBest(t *testing.T) {
	b := New()
	b.Insert(mustLimit(t, 1, core.Buy, 10, 100))
	b.Insert(mustLimit(t, 2, core.Buy, 10, 102))
	b.Insert(mustLimit(t, 3, core.Buy, 10, 101))

	best := b.PeekBest(core.Buy)
	require.NotNil(t, best)
	assert.Equal(t, int32(2), best.ID(), "bids order by highest price first")
}

func TestBackend_AsksBestIsLowestPrice(t *testing.T) {
	b := New()
	b.Insert(mustLimit(t, 1, core.Sell, 10, 105))
	b.Insert(mustLimit(t, 2, core.Sell, 10, 101))
	b.Insert(mustLimit(t, 3, core.Sell, 10, 103))

	best := b.PeekBest(core.Sell)
	require.NotNil(t, best)
	assert.Equal(t, int32(2), best.ID())
}

func TestBackend_SamePriceFIFO(t *testing.T) {
	b := New()
	b.Insert(mustLimit(t, 1, core.Buy, 10, 100))
	b.Insert(mustLimit(t, 2, core.Buy, 10, 100))
	b.Insert(mustLimit(t, 3, core.Buy, 10, 100))

	assert.Equal(t, int32(1), b.PopBest(core.Buy).ID())
	assert.Equal(t, int32(2), b.PopBest(core.Buy).ID())
	assert.Equal(t, int32(3), b.PopBest(core.Buy).ID())
	assert.Nil(t, b.PopBest(core.Buy))
}

func TestBackend_RemoveByIDFromMiddleOfLevel(t *testing.T) {
	b := New()
	b.Insert(mustLimit(t, 1, core.Buy, 10, 100))
	b.Insert(mustLimit(t, 2, core.Buy, 10, 100))
	b.Insert(mustLimit(t, 3, core.Buy, 10, 100))

	assert.True(t, b.RemoveByID(2))
	assert.False(t, b.RemoveByID(2), "idempotent")
	assert.Nil(t, b.GetByID(2))

	assert.Equal(t, int32(1), b.PopBest(core.Buy).ID())
	assert.Equal(t, int32(3), b.PopBest(core.Buy).ID())
}

func TestBackend_PopBestRemovesEmptyLevel(t *testing.T) {
	b := New()
	b.Insert(mustLimit(t, 1, core.Buy, 10, 100))
	b.PopBest(core.Buy)
	assert.Equal(t, 0, b.Depth(core.Buy))
	assert.Empty(t, b.Levels(core.Buy))
}

func TestBackend_InsertDuplicateIDPanics(t *testing.T) {
	b := New()
	b.Insert(mustLimit(t, 1, core.Buy, 10, 100))
	assert.Panics(t, func() {
		b.Insert(mustLimit(t, 1, core.Buy, 5, 101))
	})
}

func TestBackend_PriceToleranceSharesALevel(t *testing.T) {
	b := New()
	b.Insert(mustLimit(t, 1, core.Buy, 10, 100))
	b.Insert(mustLimit(t, 2, core.Buy, 10, 100+1e-10))

	levels := b.Levels(core.Buy)
	require.Len(t, levels, 1)
	assert.Len(t, levels[0].Orders, 2)
}

func TestBackend_LevelsOrderedByPriority(t *testing.T) {
	b := New()
	b.Insert(mustLimit(t, 1, core.Sell, 10, 105))
	b.Insert(mustLimit(t, 2, core.Sell, 10, 101))
	b.Insert(mustLimit(t, 3, core.Sell, 10, 103))

	levels := b.Levels(core.Sell)
	require.Len(t, levels, 3)
	assert.InDelta(t, 101.0, levels[0].Price, 1e-8)
	assert.InDelta(t, 103.0, levels[1].Price, 1e-8)
	assert.InDelta(t, 105.0, levels[2].Price, 1e-8)
}

func TestBackend_DepthCountsOrdersNotLevels(t *testing.T) {
	b := New()
	b.Insert(mustLimit(t, 1, core.Buy, 10, 100))
	b.Insert(mustLimit(t, 2, core.Buy, 10, 100))
	b.Insert(mustLimit(t, 3, core.Buy, 10, 101))

	assert.Equal(t, 3, b.Depth(core.Buy))
}
