package schema

// PriceQuote is a mid/spread price observation for one bond.
type PriceQuote struct {
	Bond   Bond
	Mid    Price
	Spread Price
}

// PriceStreamOrder is one side of a streamed two-sided quote.
type PriceStreamOrder struct {
	Price           Price
	VisibleQuantity int64
	HiddenQuantity  int64
	Side            PricingSide
}

// PriceStream is a derived two-sided quote ready for downstream publication.
type PriceStream struct {
	Bond  Bond
	Bid   PriceStreamOrder
	Offer PriceStreamOrder
}

// GUIQuote is the display sink's snapshot of the latest two-sided quote.
type GUIQuote struct {
	Bond       Bond
	Bid        Price
	Offer      Price
	CapturedAt int64 // epoch milliseconds
}
