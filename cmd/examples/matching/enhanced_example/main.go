// Command enhanced_example narrates a sequence of intents against the
// matching engine, printing the Book Inspector's view of the book after
// every step — a worked walkthrough of price-time priority, partial fills,
// and market sweeps rather than a verification fixture.
package main

import (
	"fmt"
	"os"

	"github.com/arjunvedula/matchcore/pkg/backend/memory"
	"github.com/arjunvedula/matchcore/pkg/core"
	"github.com/arjunvedula/matchcore/pkg/inspector"
	"github.com/arjunvedula/matchcore/pkg/sink"
)

func main() {
	backend := memory.New()
	collector := sink.NewCollector()
	engine := core.NewEngine(backend, collector)
	insp := inspector.New(os.Stdout, false)

	fmt.Println("===== MATCHCORE WALKTHROUGH =====")
	fmt.Println()

	fmt.Println("STEP 1: resting sell orders at three price levels")
	step(engine, collector, insp, backend,
		core.AddLimitIntent(1, core.Sell, 5, 10.0),
		core.AddLimitIntent(2, core.Sell, 3, 10.5),
		core.AddLimitIntent(3, core.Sell, 7, 11.0),
	)

	fmt.Println("STEP 2: a buy that matches the lowest sell exactly")
	step(engine, collector, insp, backend,
		core.AddLimitIntent(4, core.Buy, 3, 10.0),
	)

	fmt.Println("STEP 3: a buy that crosses multiple price levels")
	step(engine, collector, insp, backend,
		core.AddLimitIntent(5, core.Buy, 8, 11.0),
	)

	fmt.Println("STEP 4: a market buy sweeping whatever remains")
	step(engine, collector, insp, backend,
		core.MarketIntent(6, core.Buy, 4),
	)

	fmt.Println("===== DONE =====")
}

func step(engine *core.Engine, collector *sink.Collector, insp *inspector.Inspector, backend core.OrderBookBackend, intents ...core.Intent) {
	before := len(collector.Events())
	for _, in := range intents {
		if err := engine.Process(in); err != nil {
			fmt.Printf("  error: %v\n", err)
		}
	}
	for _, e := range collector.Events()[before:] {
		fmt.Println("  event:", e.String())
	}
	insp.Dump(backend)
	fmt.Println()
}
