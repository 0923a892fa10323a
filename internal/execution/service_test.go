package execution

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/bus"
	"main/internal/schema"
)

type fixedRouter struct{ book string }

func (r fixedRouter) RouteBook() string { return r.book }

func TestExecuteOrderBooksTrade(t *testing.T) {
	svc := NewService(bus.NewDispatcher(0), fixedRouter{book: "TRSY2"})
	reg := schema.DefaultRegistry()
	bond, _ := reg.Bond("7Y")

	var notified []string
	svc.Subscribe(bus.ListenerFunc[schema.ExecutionOrder](func(o schema.ExecutionOrder) error {
		notified = append(notified, o.OrderID)
		return nil
	}))

	buy := schema.ExecutionOrder{
		Bond: bond, Side: schema.PricingSideBid, OrderID: "O1",
		Type: schema.OrderTypeLimit, Price: 100 * 256, VisibleQuantity: 3_000_000,
	}
	require.NoError(t, svc.ExecuteOrder(buy, schema.MarketBrokerTec))

	trade, err := svc.Trade("O1")
	require.NoError(t, err)
	assert.Equal(t, "O1", trade.TradeID)
	assert.Equal(t, "TRSY2", trade.Book)
	assert.Equal(t, schema.SideBuy, trade.Side)
	assert.Equal(t, int64(3_000_000), trade.Quantity)
	assert.Equal(t, []string{"O1"}, notified)
}

func TestExecuteOrderSellLeg(t *testing.T) {
	svc := NewService(bus.NewDispatcher(0), fixedRouter{book: "TRSY1"})
	reg := schema.DefaultRegistry()
	bond, _ := reg.Bond("7Y")

	sell := schema.ExecutionOrder{
		Bond: bond, Side: schema.PricingSideOffer, OrderID: "O2",
		Type: schema.OrderTypeLimit, Price: 100*256 + 1, VisibleQuantity: -3_000_000,
	}
	require.NoError(t, svc.ExecuteOrder(sell, schema.MarketBrokerTec))

	trade, err := svc.Trade("O2")
	require.NoError(t, err)
	assert.Equal(t, schema.SideSell, trade.Side)
	assert.Equal(t, int64(3_000_000), trade.Quantity)
	assert.Equal(t, int64(-3_000_000), trade.SignedQuantity())
}

func TestTradeNotFound(t *testing.T) {
	svc := NewService(bus.NewDispatcher(0), fixedRouter{book: "TRSY1"})
	_, err := svc.Trade("nope")
	require.ErrorIs(t, err, bus.ErrNotFound)
}

func TestRandomRouter(t *testing.T) {
	_, err := NewRandomRouter(nil, rand.New(rand.NewSource(1)))
	require.Error(t, err)

	books := []string{"TRSY1", "TRSY2", "TRSY3"}
	router, err := NewRandomRouter(books, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		book := router.RouteBook()
		assert.Contains(t, books, book)
		seen[book] = true
	}
	assert.Len(t, seen, 3)
}
