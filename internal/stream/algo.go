// Package stream derives two-sided streamable quotes from price
// observations and publishes them downstream.
package stream

import (
	"main/internal/bus"
	"main/internal/schema"
)

// AlgoService turns mid/spread quotes into two-sided price streams with
// sized bid and offer legs.
type AlgoService struct {
	store *bus.Store[schema.PriceStream]
	sizes SizeSource
}

// NewAlgoService creates a streaming algo service.
func NewAlgoService(d *bus.Dispatcher, sizes SizeSource) *AlgoService {
	return &AlgoService{
		store: bus.NewStore(d, func(ps schema.PriceStream) string { return ps.Bond.Tenor }),
		sizes: sizes,
	}
}

// OnPrice derives a stream from the quote: bid and offer sit half the
// spread below and above the mid, sized independently from the source.
func (s *AlgoService) OnPrice(quote schema.PriceQuote) error {
	half := quote.Spread / 2
	return s.store.Ingest(schema.PriceStream{
		Bond: quote.Bond,
		Bid: schema.PriceStreamOrder{
			Price:           quote.Mid - half,
			VisibleQuantity: s.sizes.VisibleSize(),
			HiddenQuantity:  s.sizes.HiddenSize(),
			Side:            schema.PricingSideBid,
		},
		Offer: schema.PriceStreamOrder{
			Price:           quote.Mid + half,
			VisibleQuantity: s.sizes.VisibleSize(),
			HiddenQuantity:  s.sizes.HiddenSize(),
			Side:            schema.PricingSideOffer,
		},
	})
}

// Stream returns the stored price stream for a tenor.
func (s *AlgoService) Stream(tenor string) (schema.PriceStream, error) {
	return s.store.Get(tenor)
}

// Subscribe registers a listener for derived price streams.
func (s *AlgoService) Subscribe(l bus.Listener[schema.PriceStream]) {
	s.store.Subscribe(l)
}
