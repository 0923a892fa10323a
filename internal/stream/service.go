package stream

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Service is the streaming publication point: the last derived stream
// per tenor, fanned out to display and history subscribers.
type Service struct {
	store *bus.Store[schema.PriceStream]
}

// NewService creates a streaming service.
func NewService(d *bus.Dispatcher) *Service {
	return &Service{
		store: bus.NewStore(d, func(ps schema.PriceStream) string { return ps.Bond.Tenor }),
	}
}

// PublishPrice replaces or inserts the stream for its bond and notifies
// subscribers.
func (s *Service) PublishPrice(stream schema.PriceStream) error {
	return s.store.Ingest(stream)
}

// Stream returns the stored price stream for a tenor.
func (s *Service) Stream(tenor string) (schema.PriceStream, error) {
	return s.store.Get(tenor)
}

// Subscribe registers a listener for published price streams.
func (s *Service) Subscribe(l bus.Listener[schema.PriceStream]) {
	s.store.Subscribe(l)
}
