// Command basic runs the canonical example driver described in §6: it
// feeds a fixed in-memory intent fixture through an Engine and verifies the
// emitted event stream exactly matches the expected fixture, exiting
// non-zero on mismatch.
package main

import (
	"fmt"
	"os"

	"github.com/arjunvedula/matchcore/pkg/backend/memory"
	"github.com/arjunvedula/matchcore/pkg/core"
	"github.com/arjunvedula/matchcore/pkg/sink"
)

var intents = []core.Intent{
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

var expected = []string{
	"CancelAck(100004)",
	"OrderFullyFilled(100005)", "TradeEvent(2,1025.0)", "OrderPartiallyFilled(100008,2,1)",
	"OrderPartiallyFilled(100007,1,4)", "TradeEvent(1,1050.0)",
	"OrderPartiallyFilled(100002,3,27)", "TradeEvent(3,975.0)",
	"OrderFullyFilled(100007)", "TradeEvent(4,1025.0)", "OrderPartiallyFilled(100010,4,6)",
	"OrderPartiallyFilled(100003,6,4)", "TradeEvent(6,1025.0)",
	"OrderFullyFilled(100002)", "TradeEvent(27,975.0)", "OrderPartiallyFilled(100011,27,3)",
	"OrderPartiallyFilled(100001,3,6)", "TradeEvent(3,975.0)",
}

func main() {
	collector := sink.NewCollector()
	engine := core.NewEngine(memory.New(), collector)

	for _, intent := range intents {
		if err := engine.Process(intent); err != nil {
			fmt.Fprintf(os.Stderr, "process failed: %v\n", err)
			os.Exit(1)
		}
	}

	got := collector.Strings()
	if !equal(got, expected) {
		fmt.Fprintln(os.Stderr, "event stream mismatch")
		fmt.Fprintln(os.Stderr, "expected:")
		for _, e := range expected {
			fmt.Fprintln(os.Stderr, "  "+e)
		}
		fmt.Fprintln(os.Stderr, "got:")
		for _, e := range got {
			fmt.Fprintln(os.Stderr, "  "+e)
		}
		os.Exit(1)
	}

	fmt.Println("canonical scenario verified:", len(got), "events")
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
