package decode_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunvedula/matchcore/pkg/core"
	"github.com/arjunvedula/matchcore/pkg/decode"
)

func newDecoder() *decode.Decoder {
	return decode.New(zerolog.Nop())
}

func TestDecoder_AddLimit(t *testing.T) {
	d := newDecoder()
	in, ok := d.Line("0,100000,1,1,1075")
	require.True(t, ok)
	assert.Equal(t, core.AddLimitIntent(100000, core.Sell, 1, 1075), in)
}

func TestDecoder_Cancel(t *testing.T) {
	d := newDecoder()
	in, ok := d.Line("1,100004")
	require.True(t, ok)
	assert.Equal(t, core.CancelIntent(100004), in)
}

func TestDecoder_Market(t *testing.T) {
	d := newDecoder()
	in, ok := d.Line("5,100009,1,3")
	require.True(t, ok)
	assert.Equal(t, core.MarketIntent(100009, core.Sell, 3), in)
}

func TestDecoder_StopLoss(t *testing.T) {
	d := newDecoder()
	in, ok := d.Line("6,100011,1,30,1000")
	require.True(t, ok)
	assert.Equal(t, core.StopLossIntent(100011, core.Sell, 30, 1000), in)
}

func TestDecoder_StripsTrailingComment(t *testing.T) {
	d := newDecoder()
	in, ok := d.Line("0,1,0,10,100 // a buy")
	require.True(t, ok)
	assert.Equal(t, core.AddLimitIntent(1, core.Buy, 10, 100), in)
}

func TestDecoder_SkipsBlankAndCommentOnlyLines(t *testing.T) {
	d := newDecoder()
	_, ok := d.Line("")
	assert.False(t, ok)
	_, ok = d.Line("   ")
	assert.False(t, ok)
	_, ok = d.Line("// just a comment")
	assert.False(t, ok)
}

func TestDecoder_UnrecognizedCodeIsSkipped(t *testing.T) {
	d := newDecoder()
	_, ok := d.Line("9,1,0,10,100")
	assert.False(t, ok)
}

func TestDecoder_MalformedFieldCountIsSkipped(t *testing.T) {
	d := newDecoder()
	_, ok := d.Line("0,1,0,10")
	assert.False(t, ok)
}

func TestDecoder_InvalidSideIsSkipped(t *testing.T) {
	d := newDecoder()
	_, ok := d.Line("0,1,7,10,100")
	assert.False(t, ok)
}
