// Package inspector implements the Book Inspector named in §4.7/§4.8: a
// debug-channel-only dump of the current book state, rendered as a
// tabwriter-aligned, color-coded table in the style of the source's
// order-book console client.
package inspector

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/arjunvedula/matchcore/pkg/core"
)

// Inspector dumps book snapshots to an io.Writer. The zero value writes to
// nothing useful; use New.
type Inspector struct {
	w      io.Writer
	cyan   func(format string, a ...interface{}) string
	red    func(format string, a ...interface{}) string
	green  func(format string, a ...interface{}) string
	noColor bool
}

// New builds an Inspector writing to w. When noColor is true, output carries
// no ANSI escapes — useful when w is redirected to a file or a CI log.
func New(w io.Writer, noColor bool) *Inspector {
	color.NoColor = noColor
	return &Inspector{
		w:       w,
		cyan:    color.New(color.FgCyan).SprintfFunc(),
		red:     color.New(color.FgRed).SprintfFunc(),
		green:   color.New(color.FgGreen).SprintfFunc(),
		noColor: noColor,
	}
}

// Dump renders the current state of backend: asks from worst to best price,
// a separator, then bids from best to worst. Intended for the debug channel
// only (§4.7) — production deployments may silence it entirely by never
// calling Dump.
func (in *Inspector) Dump(backend core.OrderBookBackend) {
	tw := tabwriter.NewWriter(in.w, 0, 0, 3, ' ', tabwriter.AlignRight)
	defer tw.Flush()

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", in.cyan("PRICE"), in.cyan("QTY"), in.cyan("ORDERS"), in.cyan("SIDE"))

	asks := backend.Levels(core.Sell)
	for i := len(asks) - 1; i >= 0; i-- {
		in.printLevel(tw, asks[i], in.red("ASK"))
	}

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", "---", "---", "---", "---")

	for _, level := range backend.Levels(core.Buy) {
		in.printLevel(tw, level, in.green("BID"))
	}
}

func (in *Inspector) printLevel(tw *tabwriter.Writer, level core.PriceLevel, side string) {
	var qty int64
	for _, o := range level.Orders {
		qty += o.RemainingQuantity()
	}
	fmt.Fprintf(tw, "%.8g\t%d\t%d\t%s\n", level.Price, qty, len(level.Orders), side)
}
