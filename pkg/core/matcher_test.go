package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunvedula/matchcore/pkg/backend/memory"
	"github.com/arjunvedula/matchcore/pkg/core"
)

// TestEngine_CaseB_MakerTrimmedStaysResting exercises a taker fully consumed
// against a larger maker (§4.2 Case B).
func TestEngine_CaseB_MakerTrimmedStaysResting(t *testing.T) {
	backend := memory.New()
	sink := &collector{}
	engine := core.NewEngine(backend, sink)

	require.NoError(t, engine.Process(core.AddLimitIntent(1, core.Sell, 20, 100)))
	sink.events = nil

	require.NoError(t, engine.Process(core.AddLimitIntent(2, core.Buy, 5, 100)))

	assert.Equal(t, []string{"OrderPartiallyFilled(1,5,15)", "TradeEvent(5,100.0)"}, sink.strings())
	assert.Nil(t, backend.GetByID(2), "fully consumed taker never rests")

	maker := backend.GetByID(1)
	require.NotNil(t, maker)
	assert.Equal(t, int64(15), maker.RemainingQuantity())
}

// TestEngine_MarketSweepsMultipleLevels exercises a market taker walking
// two price levels until the taker itself is exhausted, leaving the rest of
// the second level resting.
func TestEngine_MarketSweepsMultipleLevels(t *testing.T) {
	backend := memory.New()
	sink := &collector{}
	engine := core.NewEngine(backend, sink)

	require.NoError(t, engine.Process(core.AddLimitIntent(1, core.Sell, 3, 100)))
	require.NoError(t, engine.Process(core.AddLimitIntent(2, core.Sell, 4, 101)))
	sink.events = nil

	require.NoError(t, engine.Process(core.MarketIntent(3, core.Buy, 5)))

	assert.Equal(t, []string{
		"OrderFullyFilled(1)", "TradeEvent(3,100.0)", "OrderPartiallyFilled(3,3,2)",
		"OrderPartiallyFilled(2,2,2)", "TradeEvent(2,100.0)",
	}, sink.strings())
	assert.Nil(t, backend.GetByID(3))

	remaining := backend.GetByID(2)
	require.NotNil(t, remaining)
	assert.Equal(t, int64(2), remaining.RemainingQuantity())
}

// TestEngine_TriggeredStopDispatchesAsMarket exercises the §4.6 trigger path.
func TestEngine_TriggeredStopDispatchesAsMarket(t *testing.T) {
	backend := memory.New()
	sink := &collector{}
	engine := core.NewEngine(backend, sink)

	require.NoError(t, engine.Process(core.AddLimitIntent(1, core.Buy, 10, 100)))
	sink.events = nil

	// A SELL stop triggers once stopPrice >= the best bid; 110 >= 100 here.
	require.NoError(t, engine.Process(core.StopLossIntent(2, core.Sell, 5, 110)))

	assert.Equal(t, []string{"OrderPartiallyFilled(1,5,5)", "TradeEvent(5,100.0)"}, sink.strings())
	assert.Nil(t, backend.GetByID(2))
}
