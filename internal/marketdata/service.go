// Package marketdata maintains the per-bond order book and fans new
// books out to the execution chain.
package marketdata

import (
	"errors"

	"main/internal/bus"
	"main/internal/schema"
)

var ErrUnevenBook = errors.New("order book stacks differ in length")

// Service stores the latest order book per tenor.
type Service struct {
	store *bus.Store[schema.OrderBook]
}

// NewService creates a market data service on the given dispatcher.
func NewService(d *bus.Dispatcher) *Service {
	return &Service{
		store: bus.NewStore(d, func(b schema.OrderBook) string { return b.Bond.Tenor }),
	}
}

// Ingest replaces or inserts the book for its bond and notifies
// subscribers with the raw order book.
func (s *Service) Ingest(book schema.OrderBook) error {
	if len(book.Bids) != len(book.Offers) {
		return ErrUnevenBook
	}
	return s.store.Ingest(book)
}

// AggregateDepth returns the stored book for a tenor.
func (s *Service) AggregateDepth(tenor string) (schema.OrderBook, error) {
	return s.store.Get(tenor)
}

// BestBidOffer returns the level pair with the tightest spread.
func (s *Service) BestBidOffer(tenor string) (schema.Order, schema.Order, error) {
	book, err := s.store.Get(tenor)
	if err != nil {
		return schema.Order{}, schema.Order{}, err
	}
	if book.Depth() == 0 {
		return schema.Order{}, schema.Order{}, ErrUnevenBook
	}
	best := 0
	spread := book.Offers[0].Price - book.Bids[0].Price
	for i := 1; i < book.Depth(); i++ {
		if next := book.Offers[i].Price - book.Bids[i].Price; next < spread {
			spread = next
			best = i
		}
	}
	return book.Bids[best], book.Offers[best], nil
}

// Subscribe registers a listener for ingested order books.
func (s *Service) Subscribe(l bus.Listener[schema.OrderBook]) {
	s.store.Subscribe(l)
}
