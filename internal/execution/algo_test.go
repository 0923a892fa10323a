package execution

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/bus"
	"main/internal/schema"
)

type seqIDs struct{ n int }

func (s *seqIDs) NextID(cusip string) string {
	s.n++
	return fmt.Sprintf("%s-%d", cusip, s.n)
}

func bookWithSpreads(tenor string, spreads ...schema.Price) schema.OrderBook {
	reg := schema.DefaultRegistry()
	bond, _ := reg.Bond(tenor)
	book := schema.OrderBook{Bond: bond}
	mid := schema.Price(100 * 256)
	for i, spread := range spreads {
		qty := int64(i+1) * 1_000_000
		book.Bids = append(book.Bids, schema.Order{Price: mid, Quantity: qty, Side: schema.PricingSideBid})
		book.Offers = append(book.Offers, schema.Order{Price: mid + spread, Quantity: qty, Side: schema.PricingSideOffer})
	}
	return book
}

func TestBestExecutionLegs(t *testing.T) {
	svc := NewAlgoService(bus.NewDispatcher(0), &seqIDs{})
	book := bookWithSpreads("2Y", 2, 1, 1)

	bid, offer, err := svc.BestExecution(book)
	require.NoError(t, err)

	// first qualifying level wins
	assert.Equal(t, book.Bids[1].Price, bid.Price)
	assert.Equal(t, book.Offers[1].Price, offer.Price)
	assert.Equal(t, int64(0), bid.VisibleQuantity+offer.VisibleQuantity)
	assert.Equal(t, int64(2_000_000), bid.VisibleQuantity)
	assert.Equal(t, schema.PricingSideBid, bid.Side)
	assert.Equal(t, schema.PricingSideOffer, offer.Side)
	assert.Equal(t, schema.OrderTypeLimit, bid.Type)
	assert.Equal(t, schema.OrderTypeLimit, offer.Type)
	assert.Zero(t, bid.HiddenQuantity)
	assert.Zero(t, offer.HiddenQuantity)
	assert.False(t, bid.IsChildOrder)
	assert.Equal(t, bid.OrderID, bid.ParentOrderID)
	assert.Equal(t, offer.OrderID, offer.ParentOrderID)
	assert.NotEqual(t, bid.OrderID, offer.OrderID)
}

func TestBestExecutionNoMatch(t *testing.T) {
	svc := NewAlgoService(bus.NewDispatcher(0), &seqIDs{})
	_, _, err := svc.BestExecution(bookWithSpreads("2Y", 2, 3, 4))
	require.ErrorIs(t, err, ErrNoMatch)

	_, _, err = svc.BestExecution(bookWithSpreads("2Y"))
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestOnBookStoresAndNotifiesBothLegs(t *testing.T) {
	svc := NewAlgoService(bus.NewDispatcher(0), &seqIDs{})
	var legs []schema.ExecutionOrder
	svc.Subscribe(bus.ListenerFunc[schema.ExecutionOrder](func(o schema.ExecutionOrder) error {
		legs = append(legs, o)
		return nil
	}))

	require.NoError(t, svc.OnBook(bookWithSpreads("5Y", 1)))
	require.Len(t, legs, 2)
	assert.Equal(t, schema.PricingSideBid, legs[0].Side)
	assert.Equal(t, schema.PricingSideOffer, legs[1].Side)

	stored, err := svc.Order(legs[1].OrderID)
	require.NoError(t, err)
	assert.Equal(t, legs[1], stored)
}

func TestClockIDSourceUnique(t *testing.T) {
	src := NewClockIDSource()
	a := src.NextID("912828F62")
	b := src.NextID("912828F62")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "912828F62")
}
