package desk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/bus"
	"main/internal/histdata"
	"main/internal/ops"
	"main/internal/schema"
)

type seqIDs struct{ n int }

func (s *seqIDs) NextID(cusip string) string {
	s.n++
	return fmt.Sprintf("%s-%d", cusip, s.n)
}

func writeFeed(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

// marketDataLine renders a five-level book whose top-of-book spread is
// exactly one tick.
func marketDataLine(bond schema.Bond) string {
	mid := schema.Price(100 * 256)
	fields := []string{bond.Tenor, "MKT", bond.CUSIP}
	for level := schema.Price(0); level < 5; level++ {
		bid := mid - level
		offer := mid + 1 + level
		fields = append(fields,
			bid.Decimal().String(), offer.Decimal().String(), "1000000")
	}
	return strings.Join(fields, ",")
}

func buildDesk(t *testing.T, dataDir string) *Desk {
	t.Helper()
	cfg, err := ops.Load("")
	require.NoError(t, err)
	cfg.Feeds = ops.FeedsConfig{
		Trades:     filepath.Join(dataDir, "trades.txt"),
		MarketData: filepath.Join(dataDir, "marketdata.txt"),
		Prices:     filepath.Join(dataDir, "prices.txt"),
		Inquiries:  filepath.Join(dataDir, "inquiries.txt"),
	}
	captured := time.Date(2017, time.December, 8, 15, 30, 0, 0, time.UTC)
	d, err := Build(cfg, Options{
		IDs: &seqIDs{},
		Now: func() time.Time { return captured },
	})
	require.NoError(t, err)
	return d
}

func TestReplayTradeFeed(t *testing.T) {
	dir := t.TempDir()
	writeFeed(t, dir, "trades.txt",
		"2Y,T1,100-160,TRSY1,1000000,BUY",
		"2Y,T1,100-160,TRSY2,500000,SELL",
	)
	writeFeed(t, dir, "marketdata.txt")
	writeFeed(t, dir, "prices.txt")
	writeFeed(t, dir, "inquiries.txt")

	d := buildDesk(t, dir)
	require.NoError(t, d.Replay())

	p, err := d.Position.Position("2Y")
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), p.Quantity("TRSY1"))
	assert.Equal(t, int64(-500_000), p.Quantity("TRSY2"))
	assert.Equal(t, int64(500_000), p.AggregateQuantity())

	entry, err := d.Risk.Risk("2Y")
	require.NoError(t, err)
	assert.True(t, entry.Value.Equal(decimal.RequireFromString("1050")),
		"risk: got %s", entry.Value)

	snapshot := d.Metrics.Snapshot()
	assert.Equal(t, uint64(2), snapshot.EventCounts[schema.EventTrade])
	assert.Equal(t, uint64(2), snapshot.Replayed)
}

func TestReplayMarketDataChain(t *testing.T) {
	dir := t.TempDir()
	reg := schema.DefaultRegistry()
	tenYear, _ := reg.Bond("10Y")

	writeFeed(t, dir, "trades.txt")
	writeFeed(t, dir, "marketdata.txt", marketDataLine(tenYear))
	writeFeed(t, dir, "prices.txt")
	writeFeed(t, dir, "inquiries.txt")

	d := buildDesk(t, dir)
	var legs []schema.ExecutionOrder
	d.ExecAlgo.Subscribe(bus.ListenerFunc[schema.ExecutionOrder](func(o schema.ExecutionOrder) error {
		legs = append(legs, o)
		return nil
	}))

	require.NoError(t, d.Replay())

	// both legs executed, booked and netted: the cross is flat overall
	require.Len(t, legs, 2)
	assert.Equal(t, int64(0), legs[0].VisibleQuantity+legs[1].VisibleQuantity)
	p, err := d.Position.Position("10Y")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.AggregateQuantity())

	trade, err := d.Booking.Trade(legs[0].OrderID)
	require.NoError(t, err)
	assert.Equal(t, schema.SideBuy, trade.Side)
	assert.Equal(t, int64(1_000_000), trade.Quantity)
}

func TestReplayPriceChain(t *testing.T) {
	dir := t.TempDir()
	writeFeed(t, dir, "trades.txt")
	writeFeed(t, dir, "marketdata.txt")
	writeFeed(t, dir, "prices.txt", "5Y,9128283C2,100.015625,0.0078125")
	writeFeed(t, dir, "inquiries.txt")

	d := buildDesk(t, dir)
	require.NoError(t, d.Replay())

	ps, err := d.Streaming.Stream("5Y")
	require.NoError(t, err)
	assert.Equal(t, schema.Price(100*256+3), ps.Bid.Price)
	assert.Equal(t, schema.Price(100*256+5), ps.Offer.Price)
	assert.Positive(t, ps.Bid.VisibleQuantity)

	quote, err := d.GUI.Quote("5Y")
	require.NoError(t, err)
	assert.Equal(t, ps.Bid.Price, quote.Bid)
	assert.Equal(t, ps.Offer.Price, quote.Offer)
	captured := time.Date(2017, time.December, 8, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, captured.UnixMilli(), quote.CapturedAt)
}

func TestReplayInquiryAndArchive(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	writeFeed(t, dir, "trades.txt",
		"2Y,T1,100-160,TRSY1,1000000,BUY",
	)
	writeFeed(t, dir, "marketdata.txt")
	writeFeed(t, dir, "prices.txt")
	writeFeed(t, dir, "inquiries.txt", "I1,30Y,SELL,2000000,100,RECEIVED")

	d := buildDesk(t, dir)
	pub, err := histdata.NewFilePublisher(t.Context(), outDir, []string{"TRSY1", "TRSY2", "TRSY3"}, 0)
	require.NoError(t, err)
	d.Archive(pub)

	require.NoError(t, d.Replay())
	require.NoError(t, pub.Close())

	stored, err := d.Inquiry.Inquiry("I1")
	require.NoError(t, err)
	assert.Equal(t, schema.InquiryStateQuoted, stored.State)
	assert.Equal(t, schema.Price(100*256), stored.Price)

	inquiries, err := os.ReadFile(filepath.Join(outDir, histdata.InquiriesFile))
	require.NoError(t, err)
	assert.Equal(t, "I1,30Y,SELL,2000000,100,DONE\n", string(inquiries))

	positions, err := os.ReadFile(filepath.Join(outDir, histdata.PositionsFile))
	require.NoError(t, err)
	assert.Equal(t, "2Y,TRSY1,1000000,TRSY2,0,TRSY3,0,Aggregate,1000000\n", string(positions))
}
