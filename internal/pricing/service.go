// Package pricing stores mid/spread price observations and feeds them
// to the streaming chain.
package pricing

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Service stores the latest price quote per tenor.
type Service struct {
	store *bus.Store[schema.PriceQuote]
}

// NewService creates a pricing service.
func NewService(d *bus.Dispatcher) *Service {
	return &Service{
		store: bus.NewStore(d, func(q schema.PriceQuote) string { return q.Bond.Tenor }),
	}
}

// Ingest replaces or inserts the quote for its bond and notifies
// subscribers.
func (s *Service) Ingest(quote schema.PriceQuote) error {
	return s.store.Ingest(quote)
}

// Quote returns the stored quote for a tenor.
func (s *Service) Quote(tenor string) (schema.PriceQuote, error) {
	return s.store.Get(tenor)
}

// Subscribe registers a listener for price quotes.
func (s *Service) Subscribe(l bus.Listener[schema.PriceQuote]) {
	s.store.Subscribe(l)
}
