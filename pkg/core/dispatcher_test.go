package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunvedula/matchcore/pkg/backend/memory"
	"github.com/arjunvedula/matchcore/pkg/core"
)

func TestDispatcher_CancelUnknownOrderIsSilentlyDropped(t *testing.T) {
	sink := &collector{}
	engine := core.NewEngine(memory.New(), sink)

	require.NoError(t, engine.Process(core.CancelIntent(999)))
	assert.Empty(t, sink.events)
}

func TestDispatcher_DuplicateOrderIDIsAnError(t *testing.T) {
	engine := core.NewEngine(memory.New(), &collector{})

	require.NoError(t, engine.Process(core.AddLimitIntent(1, core.Buy, 10, 100)))
	assert.ErrorIs(t, engine.Process(core.AddLimitIntent(1, core.Buy, 5, 90)), core.ErrDuplicateOrderID)
}

func TestDispatcher_UnknownIntentKindIsAnErrorAndEmitsNothing(t *testing.T) {
	sink := &collector{}
	engine := core.NewEngine(memory.New(), sink)

	err := engine.Process(core.Intent{Kind: core.IntentKind(99)})
	assert.ErrorIs(t, err, core.ErrUnknownIntentKind)
	assert.Empty(t, sink.events)
}

// TestDispatcher_TradeQuantityConservation covers P4: what the taker loses
// is exactly what makers gained, trade-for-trade.
func TestDispatcher_TradeQuantityConservation(t *testing.T) {
	backend := memory.New()
	sink := &collector{}
	engine := core.NewEngine(backend, sink)

	require.NoError(t, engine.Process(core.AddLimitIntent(1, core.Sell, 4, 100)))
	require.NoError(t, engine.Process(core.AddLimitIntent(2, core.Sell, 6, 101)))
	sink.events = nil

	require.NoError(t, engine.Process(core.AddLimitIntent(3, core.Buy, 7, 101)))

	var traded int64
	for _, e := range sink.events {
		if e.Kind == core.EventTrade {
			traded += e.Quantity
		}
	}
	assert.Equal(t, int64(7), traded)
}

func TestDispatcher_InvalidQuantityIsRejected(t *testing.T) {
	engine := core.NewEngine(memory.New(), &collector{})
	err := engine.Process(core.AddLimitIntent(1, core.Buy, 0, 100))
	assert.ErrorIs(t, err, core.ErrInvalidQuantity)
}

func TestDispatcher_InvalidPriceIsRejected(t *testing.T) {
	engine := core.NewEngine(memory.New(), &collector{})
	err := engine.Process(core.AddLimitIntent(1, core.Buy, 10, 0))
	assert.ErrorIs(t, err, core.ErrInvalidPrice)
}
