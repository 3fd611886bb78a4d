package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunvedula/matchcore/pkg/backend/memory"
	"github.com/arjunvedula/matchcore/pkg/core"
)

// collector is a minimal EventSink that records events in publish order,
// the same role the source's "buffer into an ordered list" sink plays (§6).
type collector struct {
	events []core.Event
}

func (c *collector) Publish(e core.Event) { c.events = append(c.events, e) }

func (c *collector) strings() []string {
	out := make([]string, len(c.events))
	for i, e := range c.events {
		out[i] = e.String()
	}
	return out
}

// TestEngine_CanonicalScenario feeds the end-to-end fixture and asserts the
// exact emitted event stream, in order.
func TestEngine_CanonicalScenario(t *testing.T) {
	sink := &collector{}
	engine := core.NewEngine(memory.New(), sink)

	intents := []core.Intent{
		core.AddLimitIntent(100000, core.Sell, 1, 1075),
		core.AddLimitIntent(100001, core.Buy, 9, 1000),
		core.AddLimitIntent(100002, core.Buy, 30, 975),
		core.AddLimitIntent(100003, core.Sell, 10, 1050),
		core.AddLimitIntent(100004, core.Buy, 10, 950),
		core.AddLimitIntent(100005, core.Sell, 2, 1025),
		core.AddLimitIntent(100006, core.Buy, 1, 1000),
		core.CancelIntent(100004),
		core.AddLimitIntent(100007, core.Sell, 5, 1025),
		core.AddLimitIntent(100008, core.Buy, 3, 1050),
		core.MarketIntent(100009, core.Sell, 3),
		core.MarketIntent(100010, core.Buy, 10),
		core.StopLossIntent(100011, core.Sell, 30, 1000),
	}

	for _, in := range intents {
		require.NoError(t, engine.Process(in))
	}

	expected := []string{
		"CancelAck(100004)",
		"OrderFullyFilled(100005)", "TradeEvent(2,1025.0)", "OrderPartiallyFilled(100008,2,1)",
		"OrderPartiallyFilled(100007,1,4)", "TradeEvent(1,1050.0)",
		"OrderPartiallyFilled(100002,3,27)", "TradeEvent(3,975.0)",
		"OrderFullyFilled(100007)", "TradeEvent(4,1025.0)", "OrderPartiallyFilled(100010,4,6)",
		"OrderPartiallyFilled(100003,6,4)", "TradeEvent(6,1025.0)",
		"OrderFullyFilled(100002)", "TradeEvent(27,975.0)", "OrderPartiallyFilled(100011,27,3)",
		"OrderPartiallyFilled(100001,3,6)", "TradeEvent(3,975.0)",
	}

	assert.Equal(t, expected, sink.strings())
}

// TestEngine_SingleAddLimitProducesNoEvents covers micro-scenario (a).
func TestEngine_SingleAddLimitProducesNoEvents(t *testing.T) {
	sink := &collector{}
	engine := core.NewEngine(memory.New(), sink)

	require.NoError(t, engine.Process(core.AddLimitIntent(1, core.Buy, 10, 100)))
	assert.Empty(t, sink.events)
}

// TestEngine_EqualPriceCrossesInArrivalOrder covers micro-scenario (b).
func TestEngine_EqualPriceCrossesInArrivalOrder(t *testing.T) {
	sink := &collector{}
	engine := core.NewEngine(memory.New(), sink)

	require.NoError(t, engine.Process(core.AddLimitIntent(1, core.Sell, 5, 100)))
	require.NoError(t, engine.Process(core.AddLimitIntent(2, core.Sell, 5, 100)))
	sink.events = nil

	require.NoError(t, engine.Process(core.AddLimitIntent(3, core.Buy, 5, 100)))

	assert.Equal(t, []string{"OrderFullyFilled(1)", "TradeEvent(5,100.0)", "OrderFullyFilled(3)", "TradeEvent(5,100.0)"}, sink.strings())
}

// TestEngine_MarketBuyAgainstEmptyBookRestsAtZero covers micro-scenario (c).
func TestEngine_MarketBuyAgainstEmptyBookRestsAtZero(t *testing.T) {
	backend := memory.New()
	engine := core.NewEngine(backend, &collector{})

	require.NoError(t, engine.Process(core.MarketIntent(1, core.Buy, 10)))

	resting := backend.GetByID(1)
	require.NotNil(t, resting)
	assert.Equal(t, int64(10), resting.RemainingQuantity())
	assert.InDelta(t, 0.0, resting.Price(), 1e-8)
}

// TestEngine_CancelIsIdempotent covers P5.
func TestEngine_CancelIsIdempotent(t *testing.T) {
	sink := &collector{}
	engine := core.NewEngine(memory.New(), sink)

	require.NoError(t, engine.Process(core.AddLimitIntent(1, core.Buy, 10, 100)))
	sink.events = nil

	require.NoError(t, engine.Process(core.CancelIntent(1)))
	require.NoError(t, engine.Process(core.CancelIntent(1)))

	assert.Equal(t, []string{"CancelAck(1)"}, sink.strings())
}

// TestEngine_AddThenCancelIsANoOp covers P6.
func TestEngine_AddThenCancelIsANoOp(t *testing.T) {
	backend := memory.New()
	sink := &collector{}
	engine := core.NewEngine(backend, sink)

	require.NoError(t, engine.Process(core.AddLimitIntent(1, core.Buy, 10, 100)))
	require.NoError(t, engine.Process(core.CancelIntent(1)))

	assert.Equal(t, []string{"CancelAck(1)"}, sink.strings())
	assert.Equal(t, 0, backend.Depth(core.Buy))
	assert.Nil(t, backend.GetByID(1))
}

// TestEngine_NonCrossingBookProducesNoTrades covers P7.
func TestEngine_NonCrossingBookProducesNoTrades(t *testing.T) {
	sink := &collector{}
	engine := core.NewEngine(memory.New(), sink)

	require.NoError(t, engine.Process(core.AddLimitIntent(1, core.Sell, 10, 200)))
	require.NoError(t, engine.Process(core.AddLimitIntent(2, core.Buy, 10, 100)))
	require.NoError(t, engine.Process(core.AddLimitIntent(3, core.Sell, 5, 150)))
	require.NoError(t, engine.Process(core.AddLimitIntent(4, core.Buy, 5, 90)))

	for _, e := range sink.events {
		assert.NotEqual(t, core.EventTrade, e.Kind)
	}
}

// TestEngine_UntriggeredStopRestsAndIsNeverReevaluated exercises the
// peculiarity recorded in §9: once a stop fails to trigger at acceptance
// time, later book movement through its stop price does not reconsider it.
func TestEngine_UntriggeredStopRestsAndIsNeverReevaluated(t *testing.T) {
	backend := memory.New()
	sink := &collector{}
	engine := core.NewEngine(backend, sink)

	// Best ask is 110; a SELL stop at 100 only triggers when a best bid at
	// or below 100 exists, so with no bids at all it rests untriggered.
	require.NoError(t, engine.Process(core.AddLimitIntent(1, core.Sell, 10, 110)))
	require.NoError(t, engine.Process(core.StopLossIntent(2, core.Sell, 5, 100)))

	resting := backend.GetByID(2)
	require.NotNil(t, resting)
	assert.Equal(t, core.KindStopLoss, resting.Kind())

	// A buy that crosses 100 now arrives. Because the stop was already
	// accepted as an ordinary resting order, it participates in matching
	// like any maker at its price — it is not "triggered" a second time,
	// it simply trades.
	require.NoError(t, engine.Process(core.AddLimitIntent(3, core.Buy, 5, 100)))
	assert.Nil(t, backend.GetByID(2))
}
