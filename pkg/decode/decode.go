// Package decode implements the intent-line decoder described in §6: one
// intent per line, comma-separated fields, a leading code selecting the
// intent kind. Malformed or unparseable lines are skipped and logged
// rather than causing the caller to fail.
package decode

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arjunvedula/matchcore/pkg/core"
)

var errInvalidSide = errors.New("decode: side must be 0 (BUY) or 1 (SELL)")

// Decoder turns input lines into Intents. It is stateless; a zero-value
// Decoder with a Logger attached is ready to use.
type Decoder struct {
	Logger zerolog.Logger
}

// New builds a Decoder that logs diagnostics to logger.
func New(logger zerolog.Logger) *Decoder {
	return &Decoder{Logger: logger}
}

// Line decodes a single input line. It returns ok=false for blank lines,
// comment-only lines, and malformed/unrecognized lines, and in every such
// case the caller should simply move to the next line (§7 error kind 1).
// Malformed and unrecognized lines log a diagnostic to the error channel;
// blank and comment-only lines are skipped silently.
func (d *Decoder) Line(raw string) (intent core.Intent, ok bool) {
	line := stripComment(raw)
	line = strings.TrimSpace(line)
	if line == "" {
		return core.Intent{}, false
	}

	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	code, err := strconv.Atoi(fields[0])
	if err != nil {
		d.Logger.Error().Str("line", raw).Err(err).Msg("decode: malformed leading code")
		return core.Intent{}, false
	}

	switch code {
	case 0:
		return d.addLimit(raw, fields)
	case 1:
		return d.cancel(raw, fields)
	case 5:
		return d.market(raw, fields)
	case 6:
		return d.stopLoss(raw, fields)
	default:
		d.Logger.Error().Str("line", raw).Int("code", code).Msg("decode: unrecognized leading code")
		return core.Intent{}, false
	}
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

func (d *Decoder) addLimit(raw string, fields []string) (core.Intent, bool) {
	if len(fields) != 5 {
		return d.malformed(raw, "AddLimit requires orderId, side, qty, price")
	}
	orderID, side, qty, err := d.orderSideQty(fields[1:4])
	if err != nil {
		return d.malformed(raw, err.Error())
	}
	price, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return d.malformed(raw, "invalid price")
	}
	return core.AddLimitIntent(orderID, side, qty, price), true
}

func (d *Decoder) cancel(raw string, fields []string) (core.Intent, bool) {
	if len(fields) != 2 {
		return d.malformed(raw, "Cancel requires orderId")
	}
	orderID, err := parseOrderID(fields[1])
	if err != nil {
		return d.malformed(raw, "invalid orderId")
	}
	return core.CancelIntent(orderID), true
}

func (d *Decoder) market(raw string, fields []string) (core.Intent, bool) {
	if len(fields) != 4 {
		return d.malformed(raw, "Market requires orderId, side, qty")
	}
	orderID, side, qty, err := d.orderSideQty(fields[1:4])
	if err != nil {
		return d.malformed(raw, err.Error())
	}
	return core.MarketIntent(orderID, side, qty), true
}

func (d *Decoder) stopLoss(raw string, fields []string) (core.Intent, bool) {
	if len(fields) != 5 {
		return d.malformed(raw, "StopLoss requires orderId, side, qty, stopPrice")
	}
	orderID, side, qty, err := d.orderSideQty(fields[1:4])
	if err != nil {
		return d.malformed(raw, err.Error())
	}
	stopPrice, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return d.malformed(raw, "invalid stopPrice")
	}
	return core.StopLossIntent(orderID, side, qty, stopPrice), true
}

func (d *Decoder) orderSideQty(fields []string) (int32, core.Side, int64, error) {
	orderID, err := parseOrderID(fields[0])
	if err != nil {
		return 0, 0, 0, err
	}
	side, err := parseSide(fields[1])
	if err != nil {
		return 0, 0, 0, err
	}
	qty, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return 0, 0, 0, err
	}
	return orderID, side, qty, nil
}

func parseOrderID(field string) (int32, error) {
	v, err := strconv.ParseInt(field, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func parseSide(field string) (core.Side, error) {
	switch field {
	case "0":
		return core.Buy, nil
	case "1":
		return core.Sell, nil
	default:
		return 0, errInvalidSide
	}
}

func (d *Decoder) malformed(raw, reason string) (core.Intent, bool) {
	d.Logger.Error().Str("line", raw).Str("reason", reason).Msg("decode: malformed intent line")
	return core.Intent{}, false
}
