// Package booking records trades against settlement books and feeds
// them to position keeping.
package booking

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Service stores booked trades keyed by trade id.
type Service struct {
	store *bus.Store[schema.Trade]
}

// NewService creates a trade booking service.
func NewService(d *bus.Dispatcher) *Service {
	return &Service{
		store: bus.NewStore(d, func(t schema.Trade) string { return t.TradeID }),
	}
}

// BookTrade inserts or overwrites a trade and notifies subscribers.
// A rebooked trade id replaces the prior booking.
func (s *Service) BookTrade(trade schema.Trade) error {
	return s.store.Ingest(trade)
}

// Trade returns a booked trade by id.
func (s *Service) Trade(id string) (schema.Trade, error) {
	return s.store.Get(id)
}

// Subscribe registers a listener for booked trades.
func (s *Service) Subscribe(l bus.Listener[schema.Trade]) {
	s.store.Subscribe(l)
}
