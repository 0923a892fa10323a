// Package execution selects crossable bid/offer pairs from order books
// and routes the resulting legs to settlement books as trades.
package execution

import (
	"errors"

	"main/internal/bus"
	"main/internal/schema"
)

var ErrNoMatch = errors.New("no bid/offer level at matching spread")

// matchSpread is the spread at which a level pair is crossed: one tick (1/256).
const matchSpread = schema.PriceTick

// AlgoService scans ingested order books for a crossable level pair and
// emits the two execution legs of the match.
type AlgoService struct {
	store *bus.Store[schema.ExecutionOrder]
	ids   IDSource
}

// NewAlgoService creates a best-execution service.
func NewAlgoService(d *bus.Dispatcher, ids IDSource) *AlgoService {
	return &AlgoService{
		store: bus.NewStore(d, func(o schema.ExecutionOrder) string { return o.OrderID }),
		ids:   ids,
	}
}

// BestExecution selects the first level where the offer sits exactly one
// tick above the bid and builds the two legs of the cross: a BID-side
// buy leg and an OFFER-side sell leg of equal size.
func (s *AlgoService) BestExecution(book schema.OrderBook) (bid, offer schema.ExecutionOrder, err error) {
	match := -1
	for i := 0; i < book.Depth(); i++ {
		if book.Offers[i].Price-book.Bids[i].Price == matchSpread {
			match = i
			break
		}
	}
	if match < 0 {
		return schema.ExecutionOrder{}, schema.ExecutionOrder{}, ErrNoMatch
	}

	quantity := book.Bids[match].Quantity
	bidID := s.ids.NextID(book.Bond.CUSIP)
	offerID := s.ids.NextID(book.Bond.CUSIP)

	bid = schema.ExecutionOrder{
		Bond:            book.Bond,
		Side:            schema.PricingSideBid,
		OrderID:         bidID,
		Type:            schema.OrderTypeLimit,
		Price:           book.Bids[match].Price,
		VisibleQuantity: quantity,
		ParentOrderID:   bidID,
	}
	offer = schema.ExecutionOrder{
		Bond:            book.Bond,
		Side:            schema.PricingSideOffer,
		OrderID:         offerID,
		Type:            schema.OrderTypeLimit,
		Price:           book.Offers[match].Price,
		VisibleQuantity: -quantity,
		ParentOrderID:   offerID,
	}
	return bid, offer, nil
}

// OnBook runs best execution for an ingested book, stores both legs by
// order id and fans them out to subscribers.
func (s *AlgoService) OnBook(book schema.OrderBook) error {
	bid, offer, err := s.BestExecution(book)
	if err != nil {
		return err
	}
	if err := s.store.Ingest(bid); err != nil {
		return err
	}
	return s.store.Ingest(offer)
}

// Order returns a stored execution leg by order id.
func (s *AlgoService) Order(id string) (schema.ExecutionOrder, error) {
	return s.store.Get(id)
}

// Subscribe registers a listener for emitted execution legs.
func (s *AlgoService) Subscribe(l bus.Listener[schema.ExecutionOrder]) {
	s.store.Subscribe(l)
}
