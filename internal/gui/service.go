// Package gui captures the latest two-sided quote per bond for display.
package gui

import (
	"time"

	"main/internal/bus"
	"main/internal/schema"
)

// Service records streamed quotes with a capture timestamp. Every push
// overwrites the previous snapshot and is forwarded unconditionally.
type Service struct {
	store *bus.Store[schema.GUIQuote]
	now   func() time.Time
}

// NewService creates a display capture service with the given clock.
func NewService(d *bus.Dispatcher, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store: bus.NewStore(d, func(q schema.GUIQuote) string { return q.Bond.Tenor }),
		now:   now,
	}
}

// OnStream snapshots the stream's top of book with the current time.
func (s *Service) OnStream(stream schema.PriceStream) error {
	return s.store.Ingest(schema.GUIQuote{
		Bond:       stream.Bond,
		Bid:        stream.Bid.Price,
		Offer:      stream.Offer.Price,
		CapturedAt: s.now().UnixMilli(),
	})
}

// Quote returns the latest captured quote for a tenor.
func (s *Service) Quote(tenor string) (schema.GUIQuote, error) {
	return s.store.Get(tenor)
}

// Subscribe registers a listener for captured quotes.
func (s *Service) Subscribe(l bus.Listener[schema.GUIQuote]) {
	s.store.Subscribe(l)
}
