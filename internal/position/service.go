// Package position nets booked trades into signed per-book positions.
package position

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Service stores one position per bond, keyed by tenor.
type Service struct {
	store *bus.Store[schema.Position]
}

// NewService creates a position service.
func NewService(d *bus.Dispatcher) *Service {
	return &Service{
		store: bus.NewStore(d, func(p schema.Position) string { return p.Bond.Tenor }),
	}
}

// AddTrade applies a booked trade to the bond's position. Buys add the
// quantity to the trade's book, sells subtract it. The updated position
// is fanned out to subscribers.
func (s *Service) AddTrade(trade schema.Trade) error {
	current, err := s.store.Get(trade.Bond.Tenor)
	if err != nil {
		current = schema.NewPosition(trade.Bond)
	}
	return s.store.Ingest(current.WithBookDelta(trade.Book, trade.SignedQuantity()))
}

// Position returns the stored position for a tenor.
func (s *Service) Position(tenor string) (schema.Position, error) {
	return s.store.Get(tenor)
}

// Subscribe registers a listener for position updates.
func (s *Service) Subscribe(l bus.Listener[schema.Position]) {
	s.store.Subscribe(l)
}
